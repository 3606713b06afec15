// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// InvestmentRepository defines the interface for positions and their operations.
type InvestmentRepository interface {
	// Create creates a new investment in the database.
	Create(ctx context.Context, investment *entity.Investment) error

	// FindByID retrieves an investment owned by userID.
	FindByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*entity.Investment, error)

	// FindByIDForUpdate retrieves an investment and locks its row until the
	// surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*entity.Investment, error)

	// FindByUser retrieves every investment of a user.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Investment, error)

	// Update persists the position and its descriptive fields.
	Update(ctx context.Context, investment *entity.Investment) error

	// Delete removes an investment and its operations.
	Delete(ctx context.Context, id uuid.UUID) error

	// CreateOperation stores an operation audit row.
	CreateOperation(ctx context.Context, operation *entity.InvestmentOperation) error

	// UnlinkTransaction clears the cash leg of the operations booked by
	// transactionID.
	UnlinkTransaction(ctx context.Context, transactionID uuid.UUID) (int64, error)

	// FindOperations retrieves the operations of an investment, newest first.
	FindOperations(ctx context.Context, investmentID uuid.UUID) ([]*entity.InvestmentOperation, error)
}
