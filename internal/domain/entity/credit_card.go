package entity

import (
	"fmt"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreditCard represents a credit card owned by a user.
type CreditCard struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	DueDay    int
	CardLimit decimal.Decimal
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCreditCard creates a new active CreditCard entity.
func NewCreditCard(userID uuid.UUID, name string, dueDay int, cardLimit decimal.Decimal) *CreditCard {
	now := time.Now().UTC()

	return &CreditCard{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		DueDay:    dueDay,
		CardLimit: cardLimit,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsValidDueDay reports whether day is a valid day of month for a due date.
func IsValidDueDay(day int) bool {
	return day >= 1 && day <= 31
}

// CreditCardWithUsage represents a card together with its committed limit.
type CreditCardWithUsage struct {
	Card      *CreditCard
	UsedLimit decimal.Decimal // Sum of unpaid installments
}

// AvailableLimit returns the limit not yet committed to unpaid installments.
func (c CreditCardWithUsage) AvailableLimit() decimal.Decimal {
	return c.Card.CardLimit.Sub(c.UsedLimit)
}

// CreditCardPurchase represents a purchase split into monthly installments.
type CreditCardPurchase struct {
	ID            uuid.UUID
	CardID        uuid.UUID
	CategoryID    uuid.UUID
	Description   string
	TotalAmount   decimal.Decimal
	Installments  int
	PurchaseDate  time.Time
	FirstDueMonth time.Time // Always the first day of a month
	CreatedAt     time.Time
}

// NewCreditCardPurchase creates a new CreditCardPurchase entity.
func NewCreditCardPurchase(
	cardID uuid.UUID,
	categoryID uuid.UUID,
	description string,
	totalAmount decimal.Decimal,
	installments int,
	purchaseDate time.Time,
	firstDueMonth time.Time,
) *CreditCardPurchase {
	return &CreditCardPurchase{
		ID:            uuid.New(),
		CardID:        cardID,
		CategoryID:    categoryID,
		Description:   description,
		TotalAmount:   totalAmount,
		Installments:  installments,
		PurchaseDate:  DateOf(purchaseDate),
		FirstDueMonth: MonthStart(firstDueMonth),
		CreatedAt:     time.Now().UTC(),
	}
}

// Installment represents one monthly share of a purchase.
type Installment struct {
	ID                uuid.UUID
	PurchaseID        uuid.UUID
	InstallmentNumber int
	Amount            decimal.Decimal
	DueDate           time.Time
	Paid              bool
	PaidTransactionID *uuid.UUID
	CreatedAt         time.Time
}

// BuildInstallments generates the full installment schedule of a purchase.
//
// The total is split in the currency's minor unit; leftover minor units are
// handed out one each to the earliest installments, so the schedule always
// sums exactly to the purchase total.
func (p *CreditCardPurchase) BuildInstallments(currency string) ([]*Installment, error) {
	amounts, err := SplitAmount(p.TotalAmount, p.Installments, currency)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	installments := make([]*Installment, p.Installments)
	for i := range installments {
		installments[i] = &Installment{
			ID:                uuid.New(),
			PurchaseID:        p.ID,
			InstallmentNumber: i + 1,
			Amount:            amounts[i],
			DueDate:           AddMonths(p.FirstDueMonth, i),
			CreatedAt:         now,
		}
	}
	return installments, nil
}

// SplitAmount divides total into n parts in the minor unit of currency,
// distributing the remainder round-robin from the first part.
func SplitAmount(total decimal.Decimal, n int, currency string) ([]decimal.Decimal, error) {
	if n < 1 {
		return nil, fmt.Errorf("cannot split into %d parts", n)
	}
	cur := money.GetCurrency(currency)
	if cur == nil {
		return nil, fmt.Errorf("unknown currency %q", currency)
	}

	exp := int32(cur.Fraction)
	minor := total.Shift(exp).Round(0).IntPart()
	parts, err := money.New(minor, cur.Code).Split(n)
	if err != nil {
		return nil, fmt.Errorf("failed to split amount: %w", err)
	}

	amounts := make([]decimal.Decimal, len(parts))
	for i, part := range parts {
		amounts[i] = decimal.New(part.Amount(), -exp)
	}
	return amounts, nil
}

// FormatAmount renders amount in currency using go-money's display template.
func FormatAmount(amount decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return amount.StringFixed(2)
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, cur.Code).Display()
}

// PurchaseWithInstallments represents a purchase and its schedule.
type PurchaseWithInstallments struct {
	Purchase     *CreditCardPurchase
	Installments []*Installment
}

// PaidCount returns how many installments are already settled.
func (p PurchaseWithInstallments) PaidCount() int {
	count := 0
	for _, inst := range p.Installments {
		if inst.Paid {
			count++
		}
	}
	return count
}

// InvoiceLine is a single unpaid installment inside an invoice.
type InvoiceLine struct {
	Installment *Installment
	Purchase    *CreditCardPurchase
}

// Invoice is the derived monthly bill of a card: its unpaid installments due
// within the calendar month.
type Invoice struct {
	CardID     uuid.UUID
	MonthStart time.Time
	MonthEnd   time.Time
	Lines      []InvoiceLine
}

// NewInvoice builds an invoice for month from lines, keeping only unpaid
// installments due inside the month.
func NewInvoice(cardID uuid.UUID, month time.Time, lines []InvoiceLine) *Invoice {
	inv := &Invoice{
		CardID:     cardID,
		MonthStart: MonthStart(month),
		MonthEnd:   MonthEnd(month),
	}
	for _, line := range lines {
		if line.Installment.Paid {
			continue
		}
		due := DateOf(line.Installment.DueDate)
		if due.Before(inv.MonthStart) || due.After(inv.MonthEnd) {
			continue
		}
		inv.Lines = append(inv.Lines, line)
	}
	return inv
}

// Total returns the sum of the invoice's installment amounts.
func (i *Invoice) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range i.Lines {
		total = total.Add(line.Installment.Amount)
	}
	return total
}

// IsEmpty reports whether nothing is due in the invoice month.
func (i *Invoice) IsEmpty() bool {
	return len(i.Lines) == 0
}

// InstallmentIDs returns the IDs of every installment in the invoice.
func (i *Invoice) InstallmentIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(i.Lines))
	for idx, line := range i.Lines {
		ids[idx] = line.Installment.ID
	}
	return ids
}
