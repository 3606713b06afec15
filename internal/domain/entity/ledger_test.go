package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestStatusForDate(t *testing.T) {
	today := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		date     time.Time
		expected TransactionStatus
	}{
		{name: "yesterday", date: today.AddDate(0, 0, -1), expected: TransactionStatusCompleted},
		{name: "today late in the day", date: today.Add(23 * time.Hour), expected: TransactionStatusCompleted},
		{name: "tomorrow", date: today.AddDate(0, 0, 1), expected: TransactionStatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusForDate(tt.date, today))
		})
	}
}

func TestTransactionBalanceEffect(t *testing.T) {
	today := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	expense := NewTransaction(uuid.New(), uuid.New(), uuid.New(), TransactionTypeExpense, dec("200"), today, today, "", TransactionSourceManual)
	assert.Equal(t, "-200", expense.BalanceEffect().String())

	income := NewTransaction(uuid.New(), uuid.New(), uuid.New(), TransactionTypeIncome, dec("500"), today.AddDate(0, 0, 1), today, "", TransactionSourceManual)
	assert.Equal(t, TransactionStatusPending, income.Status)
	assert.True(t, income.BalanceEffect().IsZero())
	assert.Equal(t, "500", income.SignedAmount().String())

	var totals TransactionTotals
	totals.Add(expense)
	totals.Add(income)
	assert.Equal(t, "-200", totals.Net().String())
	assert.Equal(t, "300", totals.Projected().String())
}

func TestTodayIn(t *testing.T) {
	saoPaulo := time.FixedZone("BRT", -3*60*60)
	now := time.Date(2024, time.March, 16, 1, 30, 0, 0, time.UTC)

	assert.Equal(t, 16, TodayIn(now, time.UTC).Day())
	assert.Equal(t, 15, TodayIn(now, saoPaulo).Day())
}

func TestAddMonthsClampsDay(t *testing.T) {
	jan31 := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), AddMonths(jan31, 1))
	assert.Equal(t, time.Date(2024, time.April, 30, 0, 0, 0, 0, time.UTC), AddMonths(jan31, 3))
	assert.Equal(t, time.Date(2023, time.February, 28, 0, 0, 0, 0, time.UTC), DayInMonth(time.Date(2023, time.February, 1, 0, 0, 0, 0, time.UTC), 31))
}

func TestParseMonth(t *testing.T) {
	month, err := ParseMonth("2024-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), month)

	_, err = ParseMonth("01/2024")
	assert.Error(t, err)
}

func TestBalanceAudit(t *testing.T) {
	audit := BalanceAudit{
		InitialBalance:   dec("1000"),
		StoredBalance:    dec("800"),
		CompletedIncome:  dec("0"),
		CompletedExpense: dec("200"),
	}
	assert.True(t, audit.InSync())

	audit.StoredBalance = dec("810")
	assert.False(t, audit.InSync())
	assert.Equal(t, "10", audit.Drift().String())
}

func TestInvestmentApply(t *testing.T) {
	inv := NewInvestment(uuid.New(), "Petrobras", "PETR4", InvestmentTypeStock, decimal.Zero, decimal.Zero, decimal.Zero)
	day := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	inv.Apply(NewInvestmentOperation(inv.ID, OperationTypeBuy, day, dec("10"), dec("10"), decimal.Zero))
	inv.Apply(NewInvestmentOperation(inv.ID, OperationTypeBuy, day, dec("10"), dec("20"), decimal.Zero))
	assert.Equal(t, "15", inv.AveragePrice.String())
	assert.Equal(t, "20", inv.Quantity.String())

	sell := NewInvestmentOperation(inv.ID, OperationTypeSell, day, dec("5"), dec("18"), dec("1"))
	realized := inv.Apply(sell)
	assert.Equal(t, "15", inv.AveragePrice.String())
	assert.Equal(t, "15", inv.Quantity.String())
	assert.Equal(t, "18", inv.CurrentPrice.String())
	assert.Equal(t, "14", realized.String())
	assert.Equal(t, "89", sell.TotalAmount.String())

	dividend := NewInvestmentOperation(inv.ID, OperationTypeDividend, day, dec("15"), dec("0.5"), decimal.Zero)
	assert.True(t, inv.Apply(dividend).IsZero())
	assert.Equal(t, "7.5", dividend.TotalAmount.String())
	assert.Equal(t, "15", inv.Quantity.String())

	assert.Equal(t, "PETR4", inv.Label())
	assert.Equal(t, "45", inv.UnrealizedGain().String())
}

func TestOperationTypeCashLeg(t *testing.T) {
	assert.Equal(t, TransactionTypeExpense, OperationTypeBuy.CashDirection())
	assert.Equal(t, TransactionTypeIncome, OperationTypeSell.CashDirection())
	assert.Equal(t, SystemKeyInvestmentRedemption, OperationTypeSell.SystemCategory())
	assert.Equal(t, SystemKeyInvestmentIncome, OperationTypeInterest.SystemCategory())
}

func TestDebtApplyPrincipalFloorsAtZero(t *testing.T) {
	debt := NewDebt(uuid.New(), "Carro", "Banco", dec("1000"), dec("1"), time.Now(), 10, nil, nil)

	debt.ApplyPrincipal(dec("400"))
	assert.Equal(t, "600", debt.CurrentBalance.String())
	assert.Equal(t, "6", debt.EstimatedInterest().String())

	debt.ApplyPrincipal(dec("900"))
	assert.True(t, debt.CurrentBalance.IsZero())
	assert.Equal(t, "1000", debt.PaidPrincipal().String())
}

func TestDebtProjectSchedule(t *testing.T) {
	from := time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC)
	value := dec("400")
	debt := NewDebt(uuid.New(), "Carro", "Banco", dec("1000"), dec("1"), from, 31, nil, &value)

	schedule := debt.ProjectSchedule(from, 0)
	require.Len(t, schedule.Rows, 3)
	assert.False(t, schedule.NeverAmortizes)

	first := schedule.Rows[0]
	assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), first.DueDate)
	assert.Equal(t, "10", first.Interest.String())
	assert.Equal(t, "390", first.Principal.String())
	assert.Equal(t, "610", first.Remaining.String())

	last := schedule.Rows[2]
	assert.True(t, last.Remaining.IsZero())
	assert.True(t, last.Payment.LessThan(value))

	stuck := dec("5")
	debt.InstallmentValue = &stuck
	schedule = debt.ProjectSchedule(from, 0)
	assert.True(t, schedule.NeverAmortizes)
	assert.Empty(t, schedule.Rows)

	installments := 4
	debt.InstallmentValue = nil
	debt.TotalInstallments = &installments
	debt.InterestRate = decimal.Zero
	schedule = debt.ProjectSchedule(from, 2)
	require.Len(t, schedule.Rows, 2)
	assert.Equal(t, "500", schedule.Rows[0].Payment.String())
}
