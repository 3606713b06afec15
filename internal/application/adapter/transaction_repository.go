// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// TransactionFilter defines filter options for listing transactions.
type TransactionFilter struct {
	UserID     uuid.UUID
	AccountID  *uuid.UUID
	CategoryID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	Type       *entity.TransactionType
	Status     *entity.TransactionStatus

	// ExcludeTransfers drops both legs of every transfer.
	ExcludeTransfers bool
}

// TransactionPagination defines pagination options.
type TransactionPagination struct {
	Page  int
	Limit int
}

// TransactionListResult represents the result of listing transactions.
type TransactionListResult struct {
	Transactions []*entity.TransactionWithRefs
	Total        int64
	Page         int
	Limit        int
	TotalPages   int
}

// TransactionRepository defines the interface for transaction persistence operations.
type TransactionRepository interface {
	// Create creates a new transaction in the database.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction owned by userID.
	FindByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*entity.Transaction, error)

	// FindByTransferID retrieves both legs of a transfer.
	FindByTransferID(ctx context.Context, transferID uuid.UUID, userID uuid.UUID) ([]*entity.Transaction, error)

	// FindByFilter retrieves transactions based on filter criteria with pagination,
	// newest first.
	FindByFilter(ctx context.Context, filter TransactionFilter, pagination TransactionPagination) (*TransactionListResult, error)

	// FindAll retrieves every transaction matching filter, oldest first.
	FindAll(ctx context.Context, filter TransactionFilter) ([]*entity.Transaction, error)

	// GetTotals aggregates amounts matching filter split by type and status.
	GetTotals(ctx context.Context, filter TransactionFilter) (*entity.TransactionTotals, error)

	// Update persists the mutable fields of a transaction whose stored status is
	// still expectedStatus. Returns ErrTransactionStatusChanged otherwise.
	Update(ctx context.Context, transaction *entity.Transaction, expectedStatus entity.TransactionStatus) error

	// UpdateStatus moves a transaction from one status to another.
	// Returns ErrTransactionStatusChanged when the stored status is not from.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.TransactionStatus) error

	// Delete removes a transaction whose stored status is still expectedStatus.
	// Returns ErrTransactionStatusChanged otherwise.
	Delete(ctx context.Context, id uuid.UUID, expectedStatus entity.TransactionStatus) error
}
