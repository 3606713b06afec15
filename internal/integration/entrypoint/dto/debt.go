package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/usecase/debt"
)

// CreateDebtRequest represents the request body for debt creation.
type CreateDebtRequest struct {
	Name              string           `json:"name" binding:"required,min=1"`
	Lender            string           `json:"lender,omitempty"`
	TotalAmount       decimal.Decimal  `json:"total_amount"`
	InterestRate      decimal.Decimal  `json:"interest_rate"`
	StartDate         string           `json:"start_date" binding:"required"`
	DueDay            int              `json:"due_day" binding:"required"`
	TotalInstallments *int             `json:"total_installments,omitempty"`
	InstallmentValue  *decimal.Decimal `json:"installment_value,omitempty"`
}

// UpdateDebtRequest represents the request body for debt update.
type UpdateDebtRequest struct {
	Name              *string          `json:"name,omitempty" binding:"omitempty,min=1"`
	Lender            *string          `json:"lender,omitempty"`
	InterestRate      *decimal.Decimal `json:"interest_rate,omitempty"`
	DueDay            *int             `json:"due_day,omitempty"`
	TotalInstallments *int             `json:"total_installments,omitempty"`
	InstallmentValue  *decimal.Decimal `json:"installment_value,omitempty"`
	CurrentBalance    *decimal.Decimal `json:"current_balance,omitempty"`
}

// RecordPaymentRequest represents the request body for a debt payment.
type RecordPaymentRequest struct {
	Date        *string          `json:"date,omitempty"`
	Amount      decimal.Decimal  `json:"amount"`
	Principal   *decimal.Decimal `json:"principal,omitempty"`
	Interest    *decimal.Decimal `json:"interest,omitempty"`
	AccountID   *string          `json:"account_id,omitempty"`
	Description string           `json:"description,omitempty"`
}

// DebtResponse represents a single debt in API responses.
type DebtResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Lender            string    `json:"lender"`
	TotalAmount       string    `json:"total_amount"`
	CurrentBalance    string    `json:"current_balance"`
	PaidPrincipal     string    `json:"paid_principal"`
	InterestRate      string    `json:"interest_rate"`
	EstimatedInterest string    `json:"estimated_interest"`
	StartDate         string    `json:"start_date"`
	DueDay            int       `json:"due_day"`
	TotalInstallments *int      `json:"total_installments,omitempty"`
	InstallmentValue  *string   `json:"installment_value,omitempty"`
	PaymentCount      *int      `json:"payment_count,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// DebtListResponse represents the response for listing debts.
type DebtListResponse struct {
	Debts            []DebtResponse `json:"debts"`
	TotalOutstanding string         `json:"total_outstanding"`
}

// PaymentResponse represents a single debt payment.
type PaymentResponse struct {
	ID              string    `json:"id"`
	DebtID          string    `json:"debt_id"`
	Date            string    `json:"date"`
	Amount          string    `json:"amount"`
	PrincipalAmount string    `json:"principal_amount"`
	InterestAmount  string    `json:"interest_amount"`
	TransactionID   *string   `json:"transaction_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// RecordPaymentResponse represents a recorded payment and the updated debt.
type RecordPaymentResponse struct {
	Payment PaymentResponse `json:"payment"`
	Debt    DebtResponse    `json:"debt"`
}

// PaymentListResponse represents the payment history of a debt.
type PaymentListResponse struct {
	Payments       []PaymentResponse `json:"payments"`
	TotalPaid      string            `json:"total_paid"`
	TotalPrincipal string            `json:"total_principal"`
	TotalInterest  string            `json:"total_interest"`
}

// ScheduleRowResponse represents one projected payment.
type ScheduleRowResponse struct {
	Number    int    `json:"number"`
	DueDate   string `json:"due_date"`
	Payment   string `json:"payment"`
	Interest  string `json:"interest"`
	Principal string `json:"principal"`
	Remaining string `json:"remaining"`
}

// ScheduleResponse represents the projected amortization of a debt.
type ScheduleResponse struct {
	DebtID         string                `json:"debt_id"`
	CurrentBalance string                `json:"current_balance"`
	Rows           []ScheduleRowResponse `json:"rows"`
	TotalInterest  string                `json:"total_interest"`
	NeverAmortizes bool                  `json:"never_amortizes"`
}

// ToDebtResponse converts a DebtOutput to a DebtResponse DTO.
func ToDebtResponse(d *debt.DebtOutput) DebtResponse {
	return DebtResponse{
		ID:                d.ID.String(),
		Name:              d.Name,
		Lender:            d.Lender,
		TotalAmount:       Money(d.TotalAmount),
		CurrentBalance:    Money(d.CurrentBalance),
		PaidPrincipal:     Money(d.PaidPrincipal),
		InterestRate:      d.InterestRate.String(),
		EstimatedInterest: Money(d.EstimatedInterest),
		StartDate:         Date(d.StartDate),
		DueDay:            d.DueDay,
		TotalInstallments: d.TotalInstallments,
		InstallmentValue:  OptionalMoney(d.InstallmentValue),
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

// ToDebtListResponse converts a ListDebtsOutput to a DebtListResponse.
func ToDebtListResponse(output *debt.ListDebtsOutput) DebtListResponse {
	debts := make([]DebtResponse, len(output.Debts))
	for i, d := range output.Debts {
		debts[i] = ToDebtResponse(d)
	}
	return DebtListResponse{
		Debts:            debts,
		TotalOutstanding: Money(output.TotalOutstanding),
	}
}

// ToPaymentResponse converts a PaymentOutput to a PaymentResponse DTO.
func ToPaymentResponse(p *debt.PaymentOutput) PaymentResponse {
	return PaymentResponse{
		ID:              p.ID.String(),
		DebtID:          p.DebtID.String(),
		Date:            Date(p.Date),
		Amount:          Money(p.Amount),
		PrincipalAmount: Money(p.PrincipalAmount),
		InterestAmount:  Money(p.InterestAmount),
		TransactionID:   OptionalID(p.TransactionID),
		CreatedAt:       p.CreatedAt,
	}
}

// ToPaymentListResponse converts a ListPaymentsOutput to a PaymentListResponse.
func ToPaymentListResponse(output *debt.ListPaymentsOutput) PaymentListResponse {
	payments := make([]PaymentResponse, len(output.Payments))
	for i, p := range output.Payments {
		payments[i] = ToPaymentResponse(p)
	}
	return PaymentListResponse{
		Payments:       payments,
		TotalPaid:      Money(output.TotalPaid),
		TotalPrincipal: Money(output.TotalPrincipal),
		TotalInterest:  Money(output.TotalInterest),
	}
}

// ToScheduleResponse converts a ProjectScheduleOutput to a ScheduleResponse.
func ToScheduleResponse(output *debt.ProjectScheduleOutput) ScheduleResponse {
	rows := make([]ScheduleRowResponse, len(output.Rows))
	for i, row := range output.Rows {
		rows[i] = ScheduleRowResponse{
			Number:    row.Number,
			DueDate:   Date(row.DueDate),
			Payment:   Money(row.Payment),
			Interest:  Money(row.Interest),
			Principal: Money(row.Principal),
			Remaining: Money(row.Remaining),
		}
	}
	return ScheduleResponse{
		DebtID:         output.DebtID.String(),
		CurrentBalance: Money(output.CurrentBalance),
		Rows:           rows,
		TotalInterest:  Money(output.TotalInterest),
		NeverAmortizes: output.NeverAmortizes,
	}
}
