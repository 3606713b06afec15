package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitAmount(t *testing.T) {
	tests := []struct {
		name     string
		total    string
		parts    int
		expected []string
	}{
		{name: "even split", total: "1000", parts: 4, expected: []string{"250", "250", "250", "250"}},
		{name: "remainder goes to the first part", total: "100", parts: 3, expected: []string{"33.34", "33.33", "33.33"}},
		{name: "two cents over three", total: "0.02", parts: 3, expected: []string{"0.01", "0.01", "0"}},
		{name: "single part", total: "59.90", parts: 1, expected: []string{"59.9"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amounts, err := SplitAmount(decimal.RequireFromString(tt.total), tt.parts, "BRL")
			require.NoError(t, err)
			require.Len(t, amounts, len(tt.expected))

			sum := decimal.Zero
			for i, amount := range amounts {
				assert.True(t, decimal.RequireFromString(tt.expected[i]).Equal(amount), "part %d: got %s", i, amount)
				sum = sum.Add(amount)
			}
			assert.True(t, sum.Equal(decimal.RequireFromString(tt.total)))
		})
	}

	_, err := SplitAmount(decimal.NewFromInt(10), 0, "BRL")
	assert.Error(t, err)

	_, err = SplitAmount(decimal.NewFromInt(10), 2, "XXX-UNKNOWN")
	assert.Error(t, err)
}

func TestBuildInstallments(t *testing.T) {
	purchase := NewCreditCardPurchase(
		uuid.New(), uuid.New(), "Notebook",
		decimal.NewFromInt(900), 3,
		time.Date(2023, time.December, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC),
	)

	installments, err := purchase.BuildInstallments("BRL")
	require.NoError(t, err)
	require.Len(t, installments, 3)

	for i, inst := range installments {
		assert.Equal(t, i+1, inst.InstallmentNumber)
		assert.Equal(t, purchase.ID, inst.PurchaseID)
		assert.True(t, inst.Amount.Equal(decimal.NewFromInt(300)))
		assert.False(t, inst.Paid)
		assert.Equal(t, time.Month(i+1), inst.DueDate.Month())
		assert.Equal(t, 1, inst.DueDate.Day())
	}
}

func TestNewInvoice(t *testing.T) {
	cardID := uuid.New()
	purchase := &CreditCardPurchase{ID: uuid.New(), CardID: cardID}
	line := func(due time.Time, amount string, paid bool) InvoiceLine {
		return InvoiceLine{
			Purchase: purchase,
			Installment: &Installment{
				ID:      uuid.New(),
				Amount:  decimal.RequireFromString(amount),
				DueDate: due,
				Paid:    paid,
			},
		}
	}

	invoice := NewInvoice(cardID, time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC), []InvoiceLine{
		line(time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC), "10", false),
		line(time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), "20", false),
		line(time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), "30.50", false),
		line(time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC), "99", true),
		line(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), "40", false),
	})

	assert.Len(t, invoice.Lines, 2)
	assert.Equal(t, "50.50", invoice.Total().StringFixed(2))
	assert.Len(t, invoice.InstallmentIDs(), 2)
	assert.False(t, invoice.IsEmpty())
	assert.Equal(t, 29, invoice.MonthEnd.Day())

	assert.True(t, NewInvoice(cardID, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), nil).IsEmpty())
}

func TestFormatAmount(t *testing.T) {
	assert.Contains(t, FormatAmount(decimal.RequireFromString("1234.5"), "BRL"), "1.234,50")
	assert.Equal(t, "12.30", FormatAmount(decimal.RequireFromString("12.3"), "XXX-UNKNOWN"))
}
