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

// GetSummaryInput represents the input for the monthly summary.
type GetSummaryInput struct {
	UserID uuid.UUID
	Month  string // YYYY-MM, defaults to the current month
}

// GetSummaryOutput represents the financial position of a user for a month.
type GetSummaryOutput struct {
	Month            time.Time
	PeriodLabel      string
	TotalBalance     decimal.Decimal
	CompletedIncome  decimal.Decimal
	CompletedExpense decimal.Decimal
	PendingIncome    decimal.Decimal
	PendingExpense   decimal.Decimal
	ProjectedBalance decimal.Decimal
	OpenInvoices     decimal.Decimal
	OutstandingDebt  decimal.Decimal
	InvestmentValue  decimal.Decimal
	AccountCount     int
}

// GetSummaryUseCase aggregates balances, monthly totals and liabilities.
type GetSummaryUseCase struct {
	accountRepo     adapter.AccountRepository
	transactionRepo adapter.TransactionRepository
	cardRepo        adapter.CreditCardRepository
	debtRepo        adapter.DebtRepository
	investmentRepo  adapter.InvestmentRepository
	clock           adapter.Clock
	location        *time.Location
}

// NewGetSummaryUseCase creates a new GetSummaryUseCase instance.
func NewGetSummaryUseCase(
	accountRepo adapter.AccountRepository,
	transactionRepo adapter.TransactionRepository,
	cardRepo adapter.CreditCardRepository,
	debtRepo adapter.DebtRepository,
	investmentRepo adapter.InvestmentRepository,
	clock adapter.Clock,
	location *time.Location,
) *GetSummaryUseCase {
	return &GetSummaryUseCase{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		cardRepo:        cardRepo,
		debtRepo:        debtRepo,
		investmentRepo:  investmentRepo,
		clock:           clock,
		location:        location,
	}
}

// Execute builds the summary. Monthly totals leave transfers out since
// both legs belong to the same user.
func (uc *GetSummaryUseCase) Execute(ctx context.Context, input GetSummaryInput) (*GetSummaryOutput, error) {
	month, err := resolveMonth(input.Month, uc.clock, uc.location)
	if err != nil {
		return nil, err
	}
	monthEnd := entity.MonthEnd(month)

	accounts, err := uc.accountRepo.FindByUser(ctx, input.UserID, false)
	if err != nil {
		return nil, domainerror.NewStorageError("dashboard summary", fmt.Errorf("failed to list accounts: %w", err))
	}
	total := decimal.Zero
	for _, account := range accounts {
		total = total.Add(account.Balance)
	}

	totals, err := uc.transactionRepo.GetTotals(ctx, adapter.TransactionFilter{
		UserID:           input.UserID,
		StartDate:        &month,
		EndDate:          &monthEnd,
		ExcludeTransfers: true,
	})
	if err != nil {
		return nil, domainerror.NewStorageError("dashboard summary", fmt.Errorf("failed to get monthly totals: %w", err))
	}

	invoices, err := uc.cardRepo.SumUnpaidDue(ctx, input.UserID, month, monthEnd)
	if err != nil {
		return nil, domainerror.NewStorageError("dashboard summary", fmt.Errorf("failed to sum open invoices: %w", err))
	}

	debt, err := uc.debtRepo.SumOutstanding(ctx, input.UserID)
	if err != nil {
		return nil, domainerror.NewStorageError("dashboard summary", fmt.Errorf("failed to sum outstanding debt: %w", err))
	}

	investments, err := uc.investmentRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, domainerror.NewStorageError("dashboard summary", fmt.Errorf("failed to list investments: %w", err))
	}
	marketValue := decimal.Zero
	for _, inv := range investments {
		marketValue = marketValue.Add(inv.MarketValue())
	}

	return &GetSummaryOutput{
		Month:            month,
		PeriodLabel:      MonthLabel(month),
		TotalBalance:     total,
		CompletedIncome:  totals.CompletedIncome,
		CompletedExpense: totals.CompletedExpense,
		PendingIncome:    totals.PendingIncome,
		PendingExpense:   totals.PendingExpense,
		ProjectedBalance: total.Add(totals.PendingIncome).Sub(totals.PendingExpense),
		OpenInvoices:     invoices,
		OutstandingDebt:  debt,
		InvestmentValue:  marketValue.Round(2),
		AccountCount:     len(accounts),
	}, nil
}
