// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// dashboardRepository implements the adapter.DashboardRepository interface.
type dashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository creates a new dashboard repository instance.
func NewDashboardRepository(db *gorm.DB) adapter.DashboardRepository {
	return &dashboardRepository{
		db: db,
	}
}

// GetCategoryBreakdown returns completed amounts grouped by category.
func (r *dashboardRepository) GetCategoryBreakdown(
	ctx context.Context,
	userID uuid.UUID,
	txType entity.TransactionType,
	start, end time.Time,
) ([]adapter.CategoryAmount, error) {
	var results []struct {
		CategoryID       uuid.UUID       `gorm:"column:category_id"`
		CategoryName     string          `gorm:"column:category_name"`
		CategoryColor    string          `gorm:"column:category_color"`
		CategoryIcon     string          `gorm:"column:category_icon"`
		Amount           decimal.Decimal `gorm:"column:amount"`
		TransactionCount int             `gorm:"column:transaction_count"`
	}

	err := conn(ctx, r.db).
		Table("transactions t").
		Select(`
			t.category_id AS category_id,
			c.name AS category_name,
			c.color AS category_color,
			c.icon AS category_icon,
			COALESCE(SUM(t.amount), 0) AS amount,
			COUNT(*) AS transaction_count
		`).
		Joins("JOIN categories c ON c.id = t.category_id").
		Where("t.user_id = ?", userID).
		Where("t.type = ?", string(txType)).
		Where("t.status = ?", string(entity.TransactionStatusCompleted)).
		Where("t.transfer_id IS NULL").
		Where("t.transaction_date >= ? AND t.transaction_date <= ?", entity.DateOf(start), entity.DateOf(end)).
		Group("t.category_id, c.name, c.color, c.icon").
		Order("amount DESC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	breakdown := make([]adapter.CategoryAmount, len(results))
	for i, row := range results {
		breakdown[i] = adapter.CategoryAmount{
			CategoryID:       row.CategoryID,
			CategoryName:     row.CategoryName,
			CategoryColor:    row.CategoryColor,
			CategoryIcon:     row.CategoryIcon,
			Amount:           row.Amount,
			TransactionCount: row.TransactionCount,
		}
	}
	return breakdown, nil
}
