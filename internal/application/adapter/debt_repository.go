// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// DebtRepository defines the interface for debt persistence operations.
type DebtRepository interface {
	// Create creates a new debt in the database.
	Create(ctx context.Context, debt *entity.Debt) error

	// FindByID retrieves a debt owned by userID.
	FindByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*entity.Debt, error)

	// FindByIDForUpdate retrieves a debt and locks its row until the
	// surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*entity.Debt, error)

	// FindByUser retrieves every debt of a user.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Debt, error)

	// Update updates an existing debt, including its current balance.
	Update(ctx context.Context, debt *entity.Debt) error

	// Delete removes a debt and its payments.
	Delete(ctx context.Context, id uuid.UUID) error

	// CreatePayment stores a payment row.
	CreatePayment(ctx context.Context, payment *entity.DebtPayment) error

	// FindPayments retrieves the payments of a debt, newest first.
	FindPayments(ctx context.Context, debtID uuid.UUID) ([]*entity.DebtPayment, error)

	// UnlinkTransaction clears the linked transaction of the payments booked
	// by transactionID.
	UnlinkTransaction(ctx context.Context, transactionID uuid.UUID) (int64, error)

	// CountPayments returns how many payments a debt has.
	CountPayments(ctx context.Context, debtID uuid.UUID) (int, error)

	// SumOutstanding sums the current balance of every debt of a user.
	SumOutstanding(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)
}
