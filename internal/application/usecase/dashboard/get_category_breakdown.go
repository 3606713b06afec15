package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// GetCategoryBreakdownInput represents the input for getting category breakdown.
type GetCategoryBreakdownInput struct {
	UserID uuid.UUID
	Month  string                 // YYYY-MM, defaults to the current month
	Type   entity.TransactionType // Defaults to expense
}

// CategoryBreakdownItem represents a single category in the breakdown.
type CategoryBreakdownItem struct {
	CategoryID       uuid.UUID
	CategoryName     string
	CategoryColor    string
	CategoryIcon     string
	Amount           decimal.Decimal
	Percentage       float64
	TransactionCount int
}

// GetCategoryBreakdownOutput represents the output of getting category breakdown.
type GetCategoryBreakdownOutput struct {
	StartDate   time.Time
	EndDate     time.Time
	PeriodLabel string
	Type        entity.TransactionType
	Total       decimal.Decimal
	Categories  []CategoryBreakdownItem
}

// GetCategoryBreakdownUseCase handles getting completed amounts by category.
type GetCategoryBreakdownUseCase struct {
	dashboardRepo adapter.DashboardRepository
	clock         adapter.Clock
	location      *time.Location
}

// NewGetCategoryBreakdownUseCase creates a new GetCategoryBreakdownUseCase instance.
func NewGetCategoryBreakdownUseCase(dashboardRepo adapter.DashboardRepository, clock adapter.Clock, location *time.Location) *GetCategoryBreakdownUseCase {
	return &GetCategoryBreakdownUseCase{
		dashboardRepo: dashboardRepo,
		clock:         clock,
		location:      location,
	}
}

// Execute retrieves the breakdown by category for the month.
func (uc *GetCategoryBreakdownUseCase) Execute(ctx context.Context, input GetCategoryBreakdownInput) (*GetCategoryBreakdownOutput, error) {
	txType := input.Type
	if txType == "" {
		txType = entity.TransactionTypeExpense
	}
	if txType != entity.TransactionTypeExpense && txType != entity.TransactionTypeIncome {
		return nil, domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidBreakdownType,
			"type must be income or expense",
			domainerror.ErrInvalidBreakdownType,
		)
	}

	month, err := resolveMonth(input.Month, uc.clock, uc.location)
	if err != nil {
		return nil, err
	}
	monthEnd := entity.MonthEnd(month)

	rows, err := uc.dashboardRepo.GetCategoryBreakdown(ctx, input.UserID, txType, month, monthEnd)
	if err != nil {
		return nil, domainerror.NewStorageError("category breakdown", fmt.Errorf("failed to get category breakdown: %w", err))
	}

	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.Amount)
	}

	categories := make([]CategoryBreakdownItem, 0, len(rows))
	for _, row := range rows {
		var percentage float64
		if !total.IsZero() {
			pct := row.Amount.Mul(decimal.NewFromInt(100)).Div(total)
			percentage, _ = pct.Round(2).Float64()
		}
		categories = append(categories, CategoryBreakdownItem{
			CategoryID:       row.CategoryID,
			CategoryName:     row.CategoryName,
			CategoryColor:    row.CategoryColor,
			CategoryIcon:     row.CategoryIcon,
			Amount:           row.Amount,
			Percentage:       percentage,
			TransactionCount: row.TransactionCount,
		})
	}

	return &GetCategoryBreakdownOutput{
		StartDate:   month,
		EndDate:     monthEnd,
		PeriodLabel: MonthLabel(month),
		Type:        txType,
		Total:       total,
		Categories:  categories,
	}, nil
}
