package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountKind represents the kind of account.
type AccountKind string

const (
	AccountKindChecking   AccountKind = "checking"
	AccountKindInvestment AccountKind = "investment"
)

// Account represents a money-holding account owned by a single user.
//
// Balance is maintained exclusively through atomic deltas applied in the same
// database transaction as the movement that causes them. InitialBalance is
// fixed at creation.
type Account struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Name           string
	Kind           AccountKind
	InitialBalance decimal.Decimal
	Balance        decimal.Decimal
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewAccount creates a new active Account whose balance starts at initialBalance.
func NewAccount(userID uuid.UUID, name string, kind AccountKind, initialBalance decimal.Decimal) *Account {
	now := time.Now().UTC()

	return &Account{
		ID:             uuid.New(),
		UserID:         userID,
		Name:           name,
		Kind:           kind,
		InitialBalance: initialBalance,
		Balance:        initialBalance,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// IsValidAccountKind reports whether k is a known account kind.
func IsValidAccountKind(k AccountKind) bool {
	return k == AccountKindChecking || k == AccountKindInvestment
}

// BalanceAudit compares the stored balance with the closed-form balance
// initial_balance + completed income - completed expense.
type BalanceAudit struct {
	AccountID        uuid.UUID
	AccountName      string
	InitialBalance   decimal.Decimal
	StoredBalance    decimal.Decimal
	CompletedIncome  decimal.Decimal
	CompletedExpense decimal.Decimal
}

// DerivedBalance returns the closed-form balance.
func (a BalanceAudit) DerivedBalance() decimal.Decimal {
	return a.InitialBalance.Add(a.CompletedIncome).Sub(a.CompletedExpense)
}

// Drift returns stored minus derived.
func (a BalanceAudit) Drift() decimal.Decimal {
	return a.StoredBalance.Sub(a.DerivedBalance())
}

// InSync reports whether the stored balance matches the closed form.
func (a BalanceAudit) InSync() bool {
	return a.Drift().IsZero()
}
