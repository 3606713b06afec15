package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

const (
	// DefaultTrendMonths is the window used when none is requested.
	DefaultTrendMonths = 6
	// MaxTrendMonths bounds the number of monthly aggregations per request.
	MaxTrendMonths = 24
)

// GetTrendsInput represents the input for getting trends.
type GetTrendsInput struct {
	UserID uuid.UUID
	Month  string // Last month of the window, defaults to the current month
	Months int    // Window size, defaults to DefaultTrendMonths
}

// TrendPoint represents the totals of one month.
type TrendPoint struct {
	Month          time.Time
	PeriodLabel    string
	Income         decimal.Decimal
	Expenses       decimal.Decimal
	Net            decimal.Decimal
	PendingIncome  decimal.Decimal
	PendingExpense decimal.Decimal
}

// GetTrendsOutput represents the output of getting trends.
type GetTrendsOutput struct {
	StartDate time.Time
	EndDate   time.Time
	Trends    []TrendPoint
}

// GetTrendsUseCase handles getting monthly income/expense trends.
type GetTrendsUseCase struct {
	transactionRepo adapter.TransactionRepository
	clock           adapter.Clock
	location        *time.Location
}

// NewGetTrendsUseCase creates a new GetTrendsUseCase instance.
func NewGetTrendsUseCase(transactionRepo adapter.TransactionRepository, clock adapter.Clock, location *time.Location) *GetTrendsUseCase {
	return &GetTrendsUseCase{
		transactionRepo: transactionRepo,
		clock:           clock,
		location:        location,
	}
}

// Execute retrieves one point per month, oldest first. Months without
// movements are reported with zero totals.
func (uc *GetTrendsUseCase) Execute(ctx context.Context, input GetTrendsInput) (*GetTrendsOutput, error) {
	count := input.Months
	if count == 0 {
		count = DefaultTrendMonths
	}
	if count < 1 || count > MaxTrendMonths {
		return nil, domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidTrendWindow,
			fmt.Sprintf("months must be between 1 and %d", MaxTrendMonths),
			domainerror.ErrInvalidTrendWindow,
		)
	}

	last, err := resolveMonth(input.Month, uc.clock, uc.location)
	if err != nil {
		return nil, err
	}

	periods := MonthSeries(last, count)
	trends := make([]TrendPoint, 0, len(periods))
	for _, period := range periods {
		start, end := period.PeriodStart, period.PeriodEnd
		totals, err := uc.transactionRepo.GetTotals(ctx, adapter.TransactionFilter{
			UserID:           input.UserID,
			StartDate:        &start,
			EndDate:          &end,
			ExcludeTransfers: true,
		})
		if err != nil {
			return nil, domainerror.NewStorageError("dashboard trends", fmt.Errorf("failed to get totals for %s: %w", period.PeriodLabel, err))
		}
		trends = append(trends, TrendPoint{
			Month:          start,
			PeriodLabel:    period.PeriodLabel,
			Income:         totals.CompletedIncome,
			Expenses:       totals.CompletedExpense,
			Net:            totals.Net(),
			PendingIncome:  totals.PendingIncome,
			PendingExpense: totals.PendingExpense,
		})
	}

	return &GetTrendsOutput{
		StartDate: periods[0].PeriodStart,
		EndDate:   periods[len(periods)-1].PeriodEnd,
		Trends:    trends,
	}, nil
}
