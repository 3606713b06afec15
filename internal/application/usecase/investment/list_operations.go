package investment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// ListOperationsInput represents the input for listing operations.
type ListOperationsInput struct {
	InvestmentID uuid.UUID
	UserID       uuid.UUID
}

// ListOperationsOutput represents the operation history of a position.
type ListOperationsOutput struct {
	Operations   []*OperationOutput
	RealizedGain decimal.Decimal
	Income       decimal.Decimal // Dividends and interest
}

// ListOperationsUseCase lists the operations of a position, newest first.
type ListOperationsUseCase struct {
	investmentRepo adapter.InvestmentRepository
}

// NewListOperationsUseCase creates a new ListOperationsUseCase instance.
func NewListOperationsUseCase(investmentRepo adapter.InvestmentRepository) *ListOperationsUseCase {
	return &ListOperationsUseCase{
		investmentRepo: investmentRepo,
	}
}

// Execute performs the listing.
func (uc *ListOperationsUseCase) Execute(ctx context.Context, input ListOperationsInput) (*ListOperationsOutput, error) {
	inv, err := findInvestment(ctx, uc.investmentRepo.FindByID, input.InvestmentID, input.UserID)
	if err != nil {
		return nil, err
	}

	ops, err := uc.investmentRepo.FindOperations(ctx, inv.ID)
	if err != nil {
		return nil, domainerror.NewStorageError("list investment operations", fmt.Errorf("failed to list operations: %w", err))
	}

	output := &ListOperationsOutput{
		Operations:   make([]*OperationOutput, len(ops)),
		RealizedGain: decimal.Zero,
		Income:       decimal.Zero,
	}
	for i, op := range ops {
		output.Operations[i] = toOperationOutput(op)
		switch op.Type {
		case entity.OperationTypeSell:
			if op.RealizedGain != nil {
				output.RealizedGain = output.RealizedGain.Add(*op.RealizedGain)
			}
		case entity.OperationTypeDividend, entity.OperationTypeInterest:
			output.Income = output.Income.Add(op.TotalAmount)
		}
	}
	return output, nil
}
