// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// CategoryAmount is the aggregated amount of one category within a period.
type CategoryAmount struct {
	CategoryID       uuid.UUID
	CategoryName     string
	CategoryColor    string
	CategoryIcon     string
	Amount           decimal.Decimal
	TransactionCount int
}

// DashboardRepository defines read-only aggregations used by the dashboard.
type DashboardRepository interface {
	// GetCategoryBreakdown sums completed transactions of txType within
	// [start, end] per category, largest first. Transfers are left out.
	GetCategoryBreakdown(
		ctx context.Context,
		userID uuid.UUID,
		txType entity.TransactionType,
		start, end time.Time,
	) ([]CategoryAmount, error)
}
