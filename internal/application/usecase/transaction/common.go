// Package transaction contains transaction-related use cases.
package transaction

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/usecase/ledger"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

const (
	transferOutPrefix = "Transf. para "
	transferInPrefix  = "Transf. de "
	transferMarker    = "Transf. "
)

// TransactionOutput represents a single transaction in the output.
type TransactionOutput struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	AccountID   uuid.UUID
	CategoryID  uuid.UUID
	Type        entity.TransactionType
	Amount      decimal.Decimal
	Date        time.Time
	Status      entity.TransactionStatus
	Description string
	TransferID  *uuid.UUID
	Source      entity.TransactionSource
	Account     *AccountOutput
	Category    *CategoryOutput
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AccountOutput represents account information in transaction output.
type AccountOutput struct {
	ID   uuid.UUID
	Name string
}

// CategoryOutput represents category information in transaction output.
type CategoryOutput struct {
	ID    uuid.UUID
	Name  string
	Color string
	Icon  string
	Type  entity.CategoryType
}

func toTransactionOutput(txn *entity.Transaction) *TransactionOutput {
	return &TransactionOutput{
		ID:          txn.ID,
		UserID:      txn.UserID,
		AccountID:   txn.AccountID,
		CategoryID:  txn.CategoryID,
		Type:        txn.Type,
		Amount:      txn.Amount,
		Date:        txn.Date,
		Status:      txn.Status,
		Description: txn.Description,
		TransferID:  txn.TransferID,
		Source:      txn.Source,
		CreatedAt:   txn.CreatedAt,
		UpdatedAt:   txn.UpdatedAt,
	}
}

func toTransactionOutputWithRefs(txn *entity.Transaction, account *entity.Account, category *entity.Category) *TransactionOutput {
	output := toTransactionOutput(txn)
	if account != nil {
		output.Account = &AccountOutput{ID: account.ID, Name: account.Name}
	}
	if category != nil {
		output.Category = &CategoryOutput{
			ID:    category.ID,
			Name:  category.Name,
			Color: category.Color,
			Icon:  category.Icon,
			Type:  category.Type,
		}
	}
	return output
}

// translateError maps repository sentinels to transaction errors and wraps
// anything unclassified as a storage failure of op.
func translateError(op string, err error) error {
	switch {
	case errors.Is(err, domainerror.ErrTransactionNotFound):
		return domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionNotFound,
			"transaction not found",
			domainerror.ErrTransactionNotFound,
		)
	case errors.Is(err, domainerror.ErrTransactionStatusChanged):
		return domainerror.NewTransactionError(
			domainerror.ErrCodeStatusChanged,
			"transaction was modified concurrently, retry the operation",
			domainerror.ErrTransactionStatusChanged,
		)
	}
	return domainerror.NewStorageError(op, err)
}

func validateTransactionType(t entity.TransactionType) error {
	if !entity.IsValidTransactionType(t) {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be 'expense' or 'income'",
			domainerror.ErrInvalidTransactionType,
		)
	}
	return nil
}

// transferDescription builds a leg description such as
// "Transf. para Savings: rent".
func transferDescription(prefix, counterparty, base string) string {
	description := prefix + counterparty
	if base != "" {
		description += ": " + base
	}
	return truncate(description, ledger.MaxDescriptionLength)
}

// transferBase recovers the user-entered part of a leg description.
func transferBase(description string) string {
	if !strings.HasPrefix(description, transferMarker) {
		return description
	}
	if _, after, ok := strings.Cut(description, ": "); ok {
		return after
	}
	return ""
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// transferLegs returns the expense and income legs of a transfer.
func transferLegs(legs []*entity.Transaction) (out, in *entity.Transaction, err error) {
	for _, leg := range legs {
		switch leg.Type {
		case entity.TransactionTypeExpense:
			out = leg
		case entity.TransactionTypeIncome:
			in = leg
		}
	}
	if out == nil || in == nil {
		return nil, nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransferCounterLegMissing,
			"transfer counter leg not found",
			domainerror.ErrTransferCounterLegMissing,
		)
	}
	return out, in, nil
}
