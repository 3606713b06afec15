package debt

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// ListPaymentsInput represents the input for listing debt payments.
type ListPaymentsInput struct {
	DebtID uuid.UUID
	UserID uuid.UUID
}

// ListPaymentsOutput represents the payments of a debt, newest first.
type ListPaymentsOutput struct {
	Payments       []*PaymentOutput
	TotalPaid      decimal.Decimal
	TotalPrincipal decimal.Decimal
	TotalInterest  decimal.Decimal
}

// ListPaymentsUseCase lists the payments of a debt.
type ListPaymentsUseCase struct {
	debtRepo adapter.DebtRepository
}

// NewListPaymentsUseCase creates a new ListPaymentsUseCase instance.
func NewListPaymentsUseCase(debtRepo adapter.DebtRepository) *ListPaymentsUseCase {
	return &ListPaymentsUseCase{
		debtRepo: debtRepo,
	}
}

// Execute performs the listing.
func (uc *ListPaymentsUseCase) Execute(ctx context.Context, input ListPaymentsInput) (*ListPaymentsOutput, error) {
	debt, err := findDebt(ctx, uc.debtRepo.FindByID, input.DebtID, input.UserID)
	if err != nil {
		return nil, err
	}

	payments, err := uc.debtRepo.FindPayments(ctx, debt.ID)
	if err != nil {
		return nil, domainerror.NewStorageError("list debt payments", fmt.Errorf("failed to list payments: %w", err))
	}

	output := &ListPaymentsOutput{
		Payments:       make([]*PaymentOutput, len(payments)),
		TotalPaid:      decimal.Zero,
		TotalPrincipal: decimal.Zero,
		TotalInterest:  decimal.Zero,
	}
	for i, payment := range payments {
		output.Payments[i] = toPaymentOutput(payment)
		output.TotalPaid = output.TotalPaid.Add(payment.Amount)
		output.TotalPrincipal = output.TotalPrincipal.Add(payment.PrincipalAmount)
		output.TotalInterest = output.TotalInterest.Add(payment.InterestAmount)
	}
	return output, nil
}
