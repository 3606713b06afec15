// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// AccountRepository defines the interface for account persistence operations.
type AccountRepository interface {
	// Create creates a new account in the database.
	Create(ctx context.Context, account *entity.Account) error

	// FindByID retrieves an account owned by userID.
	FindByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*entity.Account, error)

	// FindByUser retrieves the accounts of a user, optionally including inactive ones.
	FindByUser(ctx context.Context, userID uuid.UUID, includeInactive bool) ([]*entity.Account, error)

	// FindAll retrieves every account in the ledger. Used by balance audits.
	FindAll(ctx context.Context) ([]*entity.Account, error)

	// Update persists name, kind and active flag. It never touches the balance.
	Update(ctx context.Context, account *entity.Account) error

	// ApplyDelta atomically adds delta to the stored balance.
	ApplyDelta(ctx context.Context, id uuid.UUID, userID uuid.UUID, delta decimal.Decimal) error
}
