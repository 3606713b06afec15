// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the direction of a ledger movement.
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
	// TransactionTypeTransfer is accepted as input only. A transfer is stored
	// as one expense leg and one income leg sharing a TransferID.
	TransactionTypeTransfer TransactionType = "transfer"
)

// TransactionStatus represents whether a movement already affected its account balance.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
)

// TransactionSource records which operation produced a ledger row.
type TransactionSource string

const (
	TransactionSourceManual         TransactionSource = "manual"
	TransactionSourceTransfer       TransactionSource = "transfer"
	TransactionSourceImport         TransactionSource = "import"
	TransactionSourceInvoicePayment TransactionSource = "invoice_payment"
	TransactionSourceDebtPayment    TransactionSource = "debt_payment"
	TransactionSourceInvestment     TransactionSource = "investment"
)

// Transaction represents a movement of money on one account.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	AccountID   uuid.UUID
	CategoryID  uuid.UUID
	Type        TransactionType
	Amount      decimal.Decimal // Always positive; Type carries the sign
	Date        time.Time
	Status      TransactionStatus
	Description string
	TransferID  *uuid.UUID // Shared by both legs of a transfer
	Source      TransactionSource
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTransaction creates a new Transaction entity. The status is derived from
// the transaction date relative to today.
func NewTransaction(
	userID uuid.UUID,
	accountID uuid.UUID,
	categoryID uuid.UUID,
	transactionType TransactionType,
	amount decimal.Decimal,
	date time.Time,
	today time.Time,
	description string,
	source TransactionSource,
) *Transaction {
	now := time.Now().UTC()
	date = DateOf(date)

	return &Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		AccountID:   accountID,
		CategoryID:  categoryID,
		Type:        transactionType,
		Amount:      amount,
		Date:        date,
		Status:      StatusForDate(date, today),
		Description: description,
		Source:      source,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// StatusForDate derives the status of a movement dated on date, given today.
// Anything dated today or earlier is completed; future dates stay pending.
func StatusForDate(date, today time.Time) TransactionStatus {
	if DateOf(date).After(DateOf(today)) {
		return TransactionStatusPending
	}
	return TransactionStatusCompleted
}

// IsCompleted reports whether the transaction already affected its account.
func (t *Transaction) IsCompleted() bool {
	return t.Status == TransactionStatusCompleted
}

// IsTransferLeg reports whether the transaction is one side of a transfer.
func (t *Transaction) IsTransferLeg() bool {
	return t.TransferID != nil
}

// IsBookedByRecord reports whether another ledger record owns the movement:
// an invoice settlement, a debt payment or an investment cash leg. Such rows
// keep their amount, date, account and type until they are deleted.
func (t *Transaction) IsBookedByRecord() bool {
	switch t.Source {
	case TransactionSourceInvoicePayment, TransactionSourceDebtPayment, TransactionSourceInvestment:
		return true
	default:
		return false
	}
}

// SignedAmount returns +amount for income and -amount for expense.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TransactionTypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// BalanceEffect returns the delta this transaction contributes to its account
// balance in its current status.
func (t *Transaction) BalanceEffect() decimal.Decimal {
	if !t.IsCompleted() {
		return decimal.Zero
	}
	return t.SignedAmount()
}

// IsValidTransactionType reports whether t can be stored on a ledger row.
func IsValidTransactionType(t TransactionType) bool {
	return t == TransactionTypeExpense || t == TransactionTypeIncome
}

// IsValidTransactionStatus reports whether s is a known status.
func IsValidTransactionStatus(s TransactionStatus) bool {
	return s == TransactionStatusPending || s == TransactionStatusCompleted
}

// TransactionWithRefs represents a transaction together with its account and category.
type TransactionWithRefs struct {
	Transaction *Transaction
	Account     *Account
	Category    *Category
}

// TransactionTotals represents aggregated totals split by status.
type TransactionTotals struct {
	CompletedIncome  decimal.Decimal
	CompletedExpense decimal.Decimal
	PendingIncome    decimal.Decimal
	PendingExpense   decimal.Decimal
}

// Net returns completed income minus completed expense.
func (t TransactionTotals) Net() decimal.Decimal {
	return t.CompletedIncome.Sub(t.CompletedExpense)
}

// Projected returns the net including pending movements.
func (t TransactionTotals) Projected() decimal.Decimal {
	return t.Net().Add(t.PendingIncome).Sub(t.PendingExpense)
}

// Add accumulates a single transaction into the totals.
func (t *TransactionTotals) Add(txn *Transaction) {
	switch {
	case txn.IsCompleted() && txn.Type == TransactionTypeIncome:
		t.CompletedIncome = t.CompletedIncome.Add(txn.Amount)
	case txn.IsCompleted() && txn.Type == TransactionTypeExpense:
		t.CompletedExpense = t.CompletedExpense.Add(txn.Amount)
	case txn.Type == TransactionTypeIncome:
		t.PendingIncome = t.PendingIncome.Add(txn.Amount)
	case txn.Type == TransactionTypeExpense:
		t.PendingExpense = t.PendingExpense.Add(txn.Amount)
	}
}
