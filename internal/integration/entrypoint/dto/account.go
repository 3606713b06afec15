package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/usecase/account"
)

// CreateAccountRequest represents the request body for account creation.
type CreateAccountRequest struct {
	Name           string          `json:"name" binding:"required,min=1,max=100"`
	Kind           string          `json:"kind,omitempty"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
}

// UpdateAccountRequest represents the request body for account update.
type UpdateAccountRequest struct {
	Name *string `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Kind *string `json:"kind,omitempty"`
}

// AccountResponse represents a single account in API responses.
type AccountResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Kind           string    `json:"kind"`
	InitialBalance string    `json:"initial_balance"`
	Balance        string    `json:"balance"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// AccountListResponse represents the response for listing accounts.
type AccountListResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// BalanceAuditResponse compares the stored balance with the closed-form one.
type BalanceAuditResponse struct {
	AccountID        string `json:"account_id"`
	AccountName      string `json:"account_name"`
	InitialBalance   string `json:"initial_balance"`
	StoredBalance    string `json:"stored_balance"`
	CompletedIncome  string `json:"completed_income"`
	CompletedExpense string `json:"completed_expense"`
	DerivedBalance   string `json:"derived_balance"`
	Drift            string `json:"drift"`
	InSync           bool   `json:"in_sync"`
}

// StatementEntryResponse represents one movement of a statement day.
type StatementEntryResponse struct {
	TransactionID string `json:"transaction_id"`
	AccountID     string `json:"account_id"`
	CategoryID    string `json:"category_id"`
	Type          string `json:"type"`
	Status        string `json:"status"`
	Amount        string `json:"amount"`
	Description   string `json:"description"`
}

// StatementDayResponse groups the movements of one date.
type StatementDayResponse struct {
	Date    string                   `json:"date"`
	Balance string                   `json:"balance"`
	Entries []StatementEntryResponse `json:"entries"`
}

// StatementResponse represents a monthly statement.
type StatementResponse struct {
	AccountID        *string                `json:"account_id,omitempty"`
	MonthStart       string                 `json:"month_start"`
	MonthEnd         string                 `json:"month_end"`
	OpeningBalance   string                 `json:"opening_balance"`
	CompletedIncome  string                 `json:"completed_income"`
	CompletedExpense string                 `json:"completed_expense"`
	PendingIncome    string                 `json:"pending_income"`
	PendingExpense   string                 `json:"pending_expense"`
	ClosingBalance   string                 `json:"closing_balance"`
	ProjectedBalance string                 `json:"projected_balance"`
	Days             []StatementDayResponse `json:"days"`
}

// ToAccountResponse converts an AccountOutput to an AccountResponse DTO.
func ToAccountResponse(a *account.AccountOutput) AccountResponse {
	return AccountResponse{
		ID:             a.ID.String(),
		Name:           a.Name,
		Kind:           string(a.Kind),
		InitialBalance: Money(a.InitialBalance),
		Balance:        Money(a.Balance),
		Active:         a.Active,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// ToAccountListResponse converts a ListAccountsOutput to an AccountListResponse.
func ToAccountListResponse(output *account.ListAccountsOutput) AccountListResponse {
	accounts := make([]AccountResponse, len(output.Accounts))
	for i, a := range output.Accounts {
		accounts[i] = ToAccountResponse(a)
	}
	return AccountListResponse{Accounts: accounts}
}

// ToBalanceAuditResponse converts a BalanceAuditOutput to its DTO.
func ToBalanceAuditResponse(a *account.BalanceAuditOutput) BalanceAuditResponse {
	return BalanceAuditResponse{
		AccountID:        a.AccountID.String(),
		AccountName:      a.AccountName,
		InitialBalance:   Money(a.InitialBalance),
		StoredBalance:    Money(a.StoredBalance),
		CompletedIncome:  Money(a.CompletedIncome),
		CompletedExpense: Money(a.CompletedExpense),
		DerivedBalance:   Money(a.DerivedBalance),
		Drift:            Money(a.Drift),
		InSync:           a.InSync,
	}
}

// ToStatementResponse converts a GetStatementOutput to a StatementResponse.
func ToStatementResponse(output *account.GetStatementOutput) StatementResponse {
	days := make([]StatementDayResponse, len(output.Days))
	for i, day := range output.Days {
		entries := make([]StatementEntryResponse, len(day.Entries))
		for j, e := range day.Entries {
			entries[j] = StatementEntryResponse{
				TransactionID: e.TransactionID.String(),
				AccountID:     e.AccountID.String(),
				CategoryID:    e.CategoryID.String(),
				Type:          string(e.Type),
				Status:        string(e.Status),
				Amount:        Money(e.Amount),
				Description:   e.Description,
			}
		}
		days[i] = StatementDayResponse{
			Date:    Date(day.Date),
			Balance: Money(day.Balance),
			Entries: entries,
		}
	}

	return StatementResponse{
		AccountID:        OptionalID(output.AccountID),
		MonthStart:       Date(output.MonthStart),
		MonthEnd:         Date(output.MonthEnd),
		OpeningBalance:   Money(output.OpeningBalance),
		CompletedIncome:  Money(output.CompletedIncome),
		CompletedExpense: Money(output.CompletedExpense),
		PendingIncome:    Money(output.PendingIncome),
		PendingExpense:   Money(output.PendingExpense),
		ClosingBalance:   Money(output.ClosingBalance),
		ProjectedBalance: Money(output.ProjectedBalance),
		Days:             days,
	}
}
