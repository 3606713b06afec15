package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	creditcard "github.com/finance-tracker/ledger/internal/application/usecase/credit_card"
	"github.com/finance-tracker/ledger/internal/application/usecase/debt"
	"github.com/finance-tracker/ledger/internal/application/usecase/investment"
	"github.com/finance-tracker/ledger/internal/application/usecase/transaction"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/test/ledgertest"
)

type fixture struct {
	h         *ledgertest.Harness
	userID    uuid.UUID
	food      *entity.Category
	transport *entity.Category
	salary    *entity.Category
}

// seed books one month of activity for a user:
// checking 1000 + salary 3000 - food 200 - transport 50 - transfer 300 - february food 40 = 4410,
// savings 500 + transfer 300 = 800, plus pending food 80 and pending income 100.
func seed(t *testing.T) *fixture {
	t.Helper()
	h := ledgertest.New(t)
	ctx := context.Background()
	f := &fixture{
		h:         h,
		userID:    uuid.New(),
		food:      h.Category(t, "Food", entity.CategoryTypeExpense),
		transport: h.Category(t, "Transport", entity.CategoryTypeExpense),
		salary:    h.Category(t, "Salary", entity.CategoryTypeIncome),
	}

	checking := h.Account(t, f.userID, "Checking", "1000")
	savings := h.Account(t, f.userID, "Savings", "500")

	create := transaction.NewCreateTransactionUseCase(h.Transactor, h.Poster)
	book := func(category *entity.Category, txType entity.TransactionType, amount string, date time.Time) {
		t.Helper()
		_, err := create.Execute(ctx, transaction.CreateTransactionInput{
			UserID:      f.userID,
			AccountID:   checking.ID,
			CategoryID:  category.ID,
			Type:        txType,
			Amount:      ledgertest.Dec(amount),
			Date:        date,
			Description: category.Name,
		})
		require.NoError(t, err)
	}
	book(f.salary, entity.TransactionTypeIncome, "3000", ledgertest.Date(2024, time.March, 5))
	book(f.food, entity.TransactionTypeExpense, "200", ledgertest.Date(2024, time.March, 10))
	book(f.transport, entity.TransactionTypeExpense, "50", ledgertest.Date(2024, time.March, 12))
	book(f.food, entity.TransactionTypeExpense, "80", ledgertest.Date(2024, time.March, 20))
	book(f.salary, entity.TransactionTypeIncome, "100", ledgertest.Date(2024, time.March, 25))
	book(f.food, entity.TransactionTypeExpense, "40", ledgertest.Date(2024, time.February, 10))

	_, err := transaction.NewCreateTransferUseCase(h.Transactor, h.Poster).Execute(ctx, transaction.CreateTransferInput{
		UserID:        f.userID,
		FromAccountID: checking.ID,
		ToAccountID:   savings.ID,
		Amount:        ledgertest.Dec("300"),
		Date:          ledgertest.Date(2024, time.March, 14),
		Description:   "Reserva",
	})
	require.NoError(t, err)

	card, err := creditcard.NewCreateCardUseCase(h.Cards).Execute(ctx, creditcard.CreateCardInput{
		UserID:    f.userID,
		Name:      "Nubank",
		DueDay:    10,
		CardLimit: ledgertest.Dec("5000"),
	})
	require.NoError(t, err)
	_, err = creditcard.NewRecordPurchaseUseCase(h.Transactor, h.Cards, h.Categories, h.Poster, ledgertest.Currency).
		Execute(ctx, creditcard.RecordPurchaseInput{
			CardID:        card.Card.ID,
			UserID:        f.userID,
			CategoryID:    f.food.ID,
			Description:   "Mercado",
			TotalAmount:   ledgertest.Dec("300"),
			Installments:  3,
			FirstDueMonth: "2024-03",
		})
	require.NoError(t, err)

	_, err = debt.NewCreateDebtUseCase(h.Debts).Execute(ctx, debt.CreateDebtInput{
		UserID:       f.userID,
		Name:         "Empréstimo",
		TotalAmount:  ledgertest.Dec("1000"),
		InterestRate: ledgertest.Dec("1"),
		StartDate:    ledgertest.Date(2024, time.January, 1),
		DueDay:       5,
	})
	require.NoError(t, err)

	_, err = investment.NewCreateInvestmentUseCase(h.Investments).Execute(ctx, investment.CreateInvestmentInput{
		UserID:       f.userID,
		Name:         "Tesouro Selic",
		Type:         entity.InvestmentTypeTreasure,
		Quantity:     ledgertest.Dec("10"),
		AveragePrice: ledgertest.Dec("10"),
		CurrentPrice: ledgertest.Dec("12"),
	})
	require.NoError(t, err)

	h.RequireClosed(t)
	return f
}

func requireDashboardCode(t *testing.T, err error, code domainerror.DashboardErrorCode) {
	t.Helper()
	var dashErr *domainerror.DashboardError
	require.ErrorAs(t, err, &dashErr)
	assert.Equal(t, code, dashErr.Code)
	assert.True(t, domainerror.IsPrecondition(err))
}

func TestGetSummary(t *testing.T) {
	f := seed(t)
	h := f.h
	uc := NewGetSummaryUseCase(h.Accounts, h.Transactions, h.Cards, h.Debts, h.Investments, h.Clock, time.UTC)

	tests := []struct {
		name  string
		month string
	}{
		{name: "explicit month", month: "2024-03"},
		{name: "defaults to current month", month: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := uc.Execute(context.Background(), GetSummaryInput{UserID: f.userID, Month: tt.month})
			require.NoError(t, err)

			assert.Equal(t, ledgertest.Date(2024, time.March, 1), out.Month)
			assert.Equal(t, "Mar 2024", out.PeriodLabel)
			assert.Equal(t, 2, out.AccountCount)
			assert.Equal(t, "5210.00", out.TotalBalance.StringFixed(2))
			assert.Equal(t, "3000.00", out.CompletedIncome.StringFixed(2))
			assert.Equal(t, "250.00", out.CompletedExpense.StringFixed(2))
			assert.Equal(t, "100.00", out.PendingIncome.StringFixed(2))
			assert.Equal(t, "80.00", out.PendingExpense.StringFixed(2))
			assert.Equal(t, "5230.00", out.ProjectedBalance.StringFixed(2))
			assert.Equal(t, "100.00", out.OpenInvoices.StringFixed(2))
			assert.Equal(t, "1000.00", out.OutstandingDebt.StringFixed(2))
			assert.Equal(t, "120.00", out.InvestmentValue.StringFixed(2))
		})
	}

	t.Run("other users see nothing", func(t *testing.T) {
		out, err := uc.Execute(context.Background(), GetSummaryInput{UserID: uuid.New(), Month: "2024-03"})
		require.NoError(t, err)
		assert.True(t, out.TotalBalance.IsZero())
		assert.True(t, out.OpenInvoices.IsZero())
		assert.True(t, out.OutstandingDebt.IsZero())
		assert.Zero(t, out.AccountCount)
	})

	t.Run("invalid month", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), GetSummaryInput{UserID: f.userID, Month: "2024-13"})
		requireDashboardCode(t, err, domainerror.ErrCodeInvalidDashboardMonth)
	})
}

func TestGetCategoryBreakdown(t *testing.T) {
	f := seed(t)
	uc := NewGetCategoryBreakdownUseCase(f.h.Dashboard, f.h.Clock, time.UTC)
	ctx := context.Background()

	out, err := uc.Execute(ctx, GetCategoryBreakdownInput{UserID: f.userID, Month: "2024-03"})
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionTypeExpense, out.Type)
	assert.Equal(t, "250.00", out.Total.StringFixed(2))
	require.Len(t, out.Categories, 2)

	assert.Equal(t, f.food.ID, out.Categories[0].CategoryID)
	assert.Equal(t, "200.00", out.Categories[0].Amount.StringFixed(2))
	assert.Equal(t, 80.0, out.Categories[0].Percentage)
	assert.Equal(t, 1, out.Categories[0].TransactionCount)
	assert.Equal(t, f.transport.ID, out.Categories[1].CategoryID)
	assert.Equal(t, 20.0, out.Categories[1].Percentage)

	income, err := uc.Execute(ctx, GetCategoryBreakdownInput{UserID: f.userID, Month: "2024-03", Type: entity.TransactionTypeIncome})
	require.NoError(t, err)
	require.Len(t, income.Categories, 1)
	assert.Equal(t, "Salary", income.Categories[0].CategoryName)
	assert.Equal(t, 100.0, income.Categories[0].Percentage)

	empty, err := uc.Execute(ctx, GetCategoryBreakdownInput{UserID: f.userID, Month: "2023-12"})
	require.NoError(t, err)
	assert.Empty(t, empty.Categories)
	assert.True(t, empty.Total.IsZero())

	_, err = uc.Execute(ctx, GetCategoryBreakdownInput{UserID: f.userID, Type: entity.TransactionType("transfer")})
	requireDashboardCode(t, err, domainerror.ErrCodeInvalidBreakdownType)
}

func TestGetTrends(t *testing.T) {
	f := seed(t)
	uc := NewGetTrendsUseCase(f.h.Transactions, f.h.Clock, time.UTC)
	ctx := context.Background()

	out, err := uc.Execute(ctx, GetTrendsInput{UserID: f.userID, Months: 3})
	require.NoError(t, err)
	assert.Equal(t, ledgertest.Date(2024, time.January, 1), out.StartDate)
	assert.Equal(t, ledgertest.Date(2024, time.March, 31), out.EndDate)
	require.Len(t, out.Trends, 3)

	labels := []string{out.Trends[0].PeriodLabel, out.Trends[1].PeriodLabel, out.Trends[2].PeriodLabel}
	assert.Equal(t, []string{"Jan 2024", "Fev 2024", "Mar 2024"}, labels)

	assert.True(t, out.Trends[0].Income.IsZero())
	assert.True(t, out.Trends[0].Expenses.IsZero())
	assert.Equal(t, "40.00", out.Trends[1].Expenses.StringFixed(2))
	assert.Equal(t, "-40.00", out.Trends[1].Net.StringFixed(2))

	march := out.Trends[2]
	assert.Equal(t, "3000.00", march.Income.StringFixed(2))
	assert.Equal(t, "250.00", march.Expenses.StringFixed(2))
	assert.Equal(t, "2750.00", march.Net.StringFixed(2))
	assert.Equal(t, "100.00", march.PendingIncome.StringFixed(2))
	assert.Equal(t, "80.00", march.PendingExpense.StringFixed(2))

	defaults, err := uc.Execute(ctx, GetTrendsInput{UserID: f.userID})
	require.NoError(t, err)
	assert.Len(t, defaults.Trends, DefaultTrendMonths)

	for _, months := range []int{-1, MaxTrendMonths + 1} {
		_, err := uc.Execute(ctx, GetTrendsInput{UserID: f.userID, Months: months})
		requireDashboardCode(t, err, domainerror.ErrCodeInvalidTrendWindow)
	}
}

func TestMonthSeries(t *testing.T) {
	tests := []struct {
		name   string
		last   time.Time
		count  int
		labels []string
	}{
		{
			name:   "crosses year boundary",
			last:   ledgertest.Date(2024, time.February, 29),
			count:  3,
			labels: []string{"Dez 2023", "Jan 2024", "Fev 2024"},
		},
		{
			name:   "single month",
			last:   ledgertest.Date(2024, time.October, 31),
			count:  1,
			labels: []string{"Out 2024"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series := MonthSeries(tt.last, tt.count)
			require.Len(t, series, tt.count)
			for i, period := range series {
				assert.Equal(t, tt.labels[i], period.PeriodLabel)
				assert.Equal(t, 1, period.PeriodStart.Day())
				assert.Equal(t, entity.MonthEnd(period.PeriodStart), period.PeriodEnd)
			}
		})
	}
}
