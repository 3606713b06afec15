package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxScheduleRows bounds an amortization projection.
const MaxScheduleRows = 600

var hundred = decimal.NewFromInt(100)

// Debt represents money owed by a user.
//
// CurrentBalance starts at TotalAmount and only decreases through payments.
// The manual edit path is the only way to raise it.
type Debt struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	Name              string
	Lender            string
	TotalAmount       decimal.Decimal
	CurrentBalance    decimal.Decimal
	InterestRate      decimal.Decimal // Monthly, in percent
	StartDate         time.Time
	DueDay            int
	TotalInstallments *int
	InstallmentValue  *decimal.Decimal
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewDebt creates a new Debt whose outstanding balance equals its total.
func NewDebt(
	userID uuid.UUID,
	name string,
	lender string,
	totalAmount decimal.Decimal,
	interestRate decimal.Decimal,
	startDate time.Time,
	dueDay int,
	totalInstallments *int,
	installmentValue *decimal.Decimal,
) *Debt {
	now := time.Now().UTC()

	return &Debt{
		ID:                uuid.New(),
		UserID:            userID,
		Name:              name,
		Lender:            lender,
		TotalAmount:       totalAmount,
		CurrentBalance:    totalAmount,
		InterestRate:      interestRate,
		StartDate:         DateOf(startDate),
		DueDay:            dueDay,
		TotalInstallments: totalInstallments,
		InstallmentValue:  installmentValue,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// EstimatedInterest returns one month of simple interest on the current balance,
// rounded to cents.
func (d *Debt) EstimatedInterest() decimal.Decimal {
	return d.CurrentBalance.Mul(d.InterestRate).Div(hundred).Round(2)
}

// ApplyPrincipal decreases the outstanding balance by principal, floored at zero.
func (d *Debt) ApplyPrincipal(principal decimal.Decimal) {
	d.CurrentBalance = decimal.Max(decimal.Zero, d.CurrentBalance.Sub(principal))
	d.UpdatedAt = time.Now().UTC()
}

// PaidPrincipal returns how much of the original principal has been paid down.
func (d *Debt) PaidPrincipal() decimal.Decimal {
	return d.TotalAmount.Sub(d.CurrentBalance)
}

// DebtPayment represents a payment recorded against a debt.
type DebtPayment struct {
	ID              uuid.UUID
	DebtID          uuid.UUID
	Date            time.Time
	Amount          decimal.Decimal
	PrincipalAmount decimal.Decimal
	InterestAmount  decimal.Decimal
	TransactionID   *uuid.UUID
	CreatedAt       time.Time
}

// NewDebtPayment creates a new DebtPayment entity.
func NewDebtPayment(
	debtID uuid.UUID,
	date time.Time,
	amount decimal.Decimal,
	principal decimal.Decimal,
	interest decimal.Decimal,
	transactionID *uuid.UUID,
) *DebtPayment {
	return &DebtPayment{
		ID:              uuid.New(),
		DebtID:          debtID,
		Date:            DateOf(date),
		Amount:          amount,
		PrincipalAmount: principal,
		InterestAmount:  interest,
		TransactionID:   transactionID,
		CreatedAt:       time.Now().UTC(),
	}
}

// ScheduleRow is one projected month of an amortization schedule.
type ScheduleRow struct {
	Number    int
	DueDate   time.Time
	Payment   decimal.Decimal
	Interest  decimal.Decimal
	Principal decimal.Decimal
	Remaining decimal.Decimal
}

// Schedule is a projected amortization of a debt's outstanding balance.
type Schedule struct {
	Rows           []ScheduleRow
	TotalInterest  decimal.Decimal
	NeverAmortizes bool
}

// ProjectSchedule projects the remaining payments of the debt starting the
// month after from. The payment per month is InstallmentValue when known,
// otherwise the balance spread evenly over the remaining installments
// (TotalInstallments minus paymentsMade). Without either, nothing is projected.
func (d *Debt) ProjectSchedule(from time.Time, paymentsMade int) Schedule {
	schedule := Schedule{TotalInterest: decimal.Zero}
	if !d.CurrentBalance.IsPositive() {
		return schedule
	}

	var payment decimal.Decimal
	switch {
	case d.InstallmentValue != nil && d.InstallmentValue.IsPositive():
		payment = *d.InstallmentValue
	case d.TotalInstallments != nil && *d.TotalInstallments > paymentsMade:
		remaining := int64(*d.TotalInstallments - paymentsMade)
		payment = d.CurrentBalance.Div(decimal.NewFromInt(remaining)).RoundUp(2)
	default:
		return schedule
	}

	rate := d.InterestRate.Div(hundred)
	balance := d.CurrentBalance
	month := MonthStart(from)

	for n := 1; balance.IsPositive() && n <= MaxScheduleRows; n++ {
		month = AddMonths(month, 1)
		interest := balance.Mul(rate).Round(2)
		if !payment.GreaterThan(interest) {
			schedule.NeverAmortizes = true
			return schedule
		}

		principal := payment.Sub(interest)
		pay := payment
		if principal.GreaterThan(balance) {
			principal = balance
			pay = principal.Add(interest)
		}
		balance = balance.Sub(principal)

		schedule.Rows = append(schedule.Rows, ScheduleRow{
			Number:    n,
			DueDate:   DayInMonth(month, d.DueDay),
			Payment:   pay,
			Interest:  interest,
			Principal: principal,
			Remaining: balance,
		})
		schedule.TotalInterest = schedule.TotalInterest.Add(interest)
	}
	return schedule
}
