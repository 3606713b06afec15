package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/usecase/transaction"
)

// CreateTransactionRequest represents the request body for transaction creation.
// Type "transfer" moves money between two accounts of the user and requires
// to_account_id; category_id is ignored for transfers.
type CreateTransactionRequest struct {
	AccountID   string          `json:"account_id" binding:"required"`
	ToAccountID *string         `json:"to_account_id,omitempty"`
	CategoryID  *string         `json:"category_id,omitempty"`
	Type        string          `json:"type" binding:"required,oneof=expense income transfer"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date" binding:"required"`
	Description string          `json:"description,omitempty"`
}

// UpdateTransactionRequest represents the request body for transaction update.
type UpdateTransactionRequest struct {
	AccountID   *string          `json:"account_id,omitempty"`
	CategoryID  *string          `json:"category_id,omitempty"`
	Type        *string          `json:"type,omitempty" binding:"omitempty,oneof=expense income"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Date        *string          `json:"date,omitempty"`
	Description *string          `json:"description,omitempty"`
}

// ImportRowRequest is one already-parsed statement line. Amount is signed
// when type is omitted: negative amounts are expenses.
type ImportRowRequest struct {
	Date        string          `json:"date" binding:"required"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        *string         `json:"type,omitempty" binding:"omitempty,oneof=expense income"`
	CategoryID  *string         `json:"category_id,omitempty"`
}

// ImportTransactionsRequest represents the request body for a batch import.
type ImportTransactionsRequest struct {
	AccountID string             `json:"account_id" binding:"required"`
	Rows      []ImportRowRequest `json:"rows" binding:"required,dive"`
}

// TransactionAccountResponse represents account information in transaction response.
type TransactionAccountResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TransactionCategoryResponse represents category information in transaction response.
type TransactionCategoryResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
	Type  string `json:"type"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID          string                       `json:"id"`
	AccountID   string                       `json:"account_id"`
	CategoryID  string                       `json:"category_id"`
	Type        string                       `json:"type"`
	Amount      string                       `json:"amount"`
	Date        string                       `json:"date"`
	Status      string                       `json:"status"`
	Description string                       `json:"description"`
	TransferID  *string                      `json:"transfer_id,omitempty"`
	Source      string                       `json:"source"`
	Account     *TransactionAccountResponse  `json:"account,omitempty"`
	Category    *TransactionCategoryResponse `json:"category,omitempty"`
	CreatedAt   time.Time                    `json:"created_at"`
	UpdatedAt   time.Time                    `json:"updated_at"`
}

// TransferResponse represents both legs of a transfer.
type TransferResponse struct {
	TransferID string              `json:"transfer_id"`
	Outgoing   TransactionResponse `json:"outgoing"`
	Incoming   TransactionResponse `json:"incoming"`
}

// UpdateTransactionResponse represents an edited transaction and, for
// transfers, its counter leg.
type UpdateTransactionResponse struct {
	Transaction TransactionResponse  `json:"transaction"`
	CounterLeg  *TransactionResponse `json:"counter_leg,omitempty"`
}

// TransactionsResponse wraps the transactions touched by an operation.
type TransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// ImportTransactionsResponse represents the result of a batch import.
type ImportTransactionsResponse struct {
	ImportedCount int                   `json:"imported_count"`
	RuleMatched   int                   `json:"rule_matched"`
	Transactions  []TransactionResponse `json:"transactions"`
}

// DeleteTransactionResponse represents the result of a deletion.
type DeleteTransactionResponse struct {
	DeletedIDs           []string `json:"deleted_ids"`
	ReleasedInstallments int64    `json:"released_installments"`
	UnlinkedRecords      int64    `json:"unlinked_records"`
}

// TransactionPaginationResponse represents pagination information in API responses.
type TransactionPaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// TransactionTotalsResponse represents aggregated totals in API responses.
type TransactionTotalsResponse struct {
	CompletedIncome  string `json:"completed_income"`
	CompletedExpense string `json:"completed_expense"`
	PendingIncome    string `json:"pending_income"`
	PendingExpense   string `json:"pending_expense"`
	Net              string `json:"net"`
	Projected        string `json:"projected"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse         `json:"transactions"`
	Pagination   TransactionPaginationResponse `json:"pagination"`
	Totals       TransactionTotalsResponse     `json:"totals"`
}

// ToTransactionResponse converts a TransactionOutput to a TransactionResponse DTO.
func ToTransactionResponse(txn *transaction.TransactionOutput) TransactionResponse {
	response := TransactionResponse{
		ID:          txn.ID.String(),
		AccountID:   txn.AccountID.String(),
		CategoryID:  txn.CategoryID.String(),
		Type:        string(txn.Type),
		Amount:      Money(txn.Amount),
		Date:        Date(txn.Date),
		Status:      string(txn.Status),
		Description: txn.Description,
		TransferID:  OptionalID(txn.TransferID),
		Source:      string(txn.Source),
		CreatedAt:   txn.CreatedAt,
		UpdatedAt:   txn.UpdatedAt,
	}

	if txn.Account != nil {
		response.Account = &TransactionAccountResponse{
			ID:   txn.Account.ID.String(),
			Name: txn.Account.Name,
		}
	}

	if txn.Category != nil {
		response.Category = &TransactionCategoryResponse{
			ID:    txn.Category.ID.String(),
			Name:  txn.Category.Name,
			Color: txn.Category.Color,
			Icon:  txn.Category.Icon,
			Type:  string(txn.Category.Type),
		}
	}

	return response
}

// ToTransactionResponses converts a slice of outputs.
func ToTransactionResponses(outputs []*transaction.TransactionOutput) []TransactionResponse {
	responses := make([]TransactionResponse, len(outputs))
	for i, txn := range outputs {
		responses[i] = ToTransactionResponse(txn)
	}
	return responses
}

// ToTransactionListResponse converts a ListTransactionsOutput to TransactionListResponse.
func ToTransactionListResponse(output *transaction.ListTransactionsOutput) TransactionListResponse {
	return TransactionListResponse{
		Transactions: ToTransactionResponses(output.Transactions),
		Pagination: TransactionPaginationResponse{
			Page:       output.Pagination.Page,
			Limit:      output.Pagination.Limit,
			Total:      output.Pagination.Total,
			TotalPages: output.Pagination.TotalPages,
		},
		Totals: TransactionTotalsResponse{
			CompletedIncome:  Money(output.Totals.CompletedIncome),
			CompletedExpense: Money(output.Totals.CompletedExpense),
			PendingIncome:    Money(output.Totals.PendingIncome),
			PendingExpense:   Money(output.Totals.PendingExpense),
			Net:              Money(output.Totals.Net),
			Projected:        Money(output.Totals.Projected),
		},
	}
}
