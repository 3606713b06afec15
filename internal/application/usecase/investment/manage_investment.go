package investment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// CreateInvestmentInput represents the input for investment creation.
type CreateInvestmentInput struct {
	UserID       uuid.UUID
	Name         string
	Ticker       string
	Type         entity.InvestmentType
	Quantity     decimal.Decimal // Optional opening position
	AveragePrice decimal.Decimal
	CurrentPrice decimal.Decimal // Defaults to AveragePrice
}

// CreateInvestmentOutput represents the output of investment creation.
type CreateInvestmentOutput struct {
	Investment *InvestmentOutput
}

// CreateInvestmentUseCase handles investment creation logic.
type CreateInvestmentUseCase struct {
	investmentRepo adapter.InvestmentRepository
}

// NewCreateInvestmentUseCase creates a new CreateInvestmentUseCase instance.
func NewCreateInvestmentUseCase(investmentRepo adapter.InvestmentRepository) *CreateInvestmentUseCase {
	return &CreateInvestmentUseCase{
		investmentRepo: investmentRepo,
	}
}

// Execute performs the investment creation.
func (uc *CreateInvestmentUseCase) Execute(ctx context.Context, input CreateInvestmentInput) (*CreateInvestmentOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewInvestmentError(
			domainerror.ErrCodeMissingInvestmentFields,
			"name is required",
			domainerror.ErrInvestmentNameRequired,
		)
	}
	if err := validateType(input.Type); err != nil {
		return nil, err
	}
	if input.Quantity.IsNegative() || input.AveragePrice.IsNegative() || input.CurrentPrice.IsNegative() {
		return nil, invalidValues("quantity and prices must not be negative")
	}

	current := input.CurrentPrice
	if current.IsZero() {
		current = input.AveragePrice
	}

	inv := entity.NewInvestment(
		input.UserID,
		name,
		strings.ToUpper(strings.TrimSpace(input.Ticker)),
		input.Type,
		input.Quantity,
		input.AveragePrice,
		current,
	)
	if err := uc.investmentRepo.Create(ctx, inv); err != nil {
		return nil, domainerror.NewStorageError("create investment", fmt.Errorf("failed to create investment: %w", err))
	}

	return &CreateInvestmentOutput{Investment: toInvestmentOutput(inv)}, nil
}

// ListInvestmentsInput represents the input for listing investments.
type ListInvestmentsInput struct {
	UserID uuid.UUID
}

// ListInvestmentsOutput represents the positions of a user with portfolio totals.
type ListInvestmentsOutput struct {
	Investments    []*InvestmentOutput
	MarketValue    decimal.Decimal
	CostBasis      decimal.Decimal
	UnrealizedGain decimal.Decimal
}

// ListInvestmentsUseCase lists the positions of a user.
type ListInvestmentsUseCase struct {
	investmentRepo adapter.InvestmentRepository
}

// NewListInvestmentsUseCase creates a new ListInvestmentsUseCase instance.
func NewListInvestmentsUseCase(investmentRepo adapter.InvestmentRepository) *ListInvestmentsUseCase {
	return &ListInvestmentsUseCase{
		investmentRepo: investmentRepo,
	}
}

// Execute performs the listing.
func (uc *ListInvestmentsUseCase) Execute(ctx context.Context, input ListInvestmentsInput) (*ListInvestmentsOutput, error) {
	investments, err := uc.investmentRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, domainerror.NewStorageError("list investments", fmt.Errorf("failed to list investments: %w", err))
	}

	output := &ListInvestmentsOutput{
		Investments:    make([]*InvestmentOutput, len(investments)),
		MarketValue:    decimal.Zero,
		CostBasis:      decimal.Zero,
		UnrealizedGain: decimal.Zero,
	}
	for i, inv := range investments {
		item := toInvestmentOutput(inv)
		output.Investments[i] = item
		output.MarketValue = output.MarketValue.Add(item.MarketValue)
		output.CostBasis = output.CostBasis.Add(item.CostBasis)
		output.UnrealizedGain = output.UnrealizedGain.Add(item.UnrealizedGain)
	}
	return output, nil
}

// UpdateInvestmentInput represents the input for investment update.
// Quantity and average price only change through operations.
type UpdateInvestmentInput struct {
	InvestmentID uuid.UUID
	UserID       uuid.UUID
	Name         *string
	Ticker       *string
	Type         *entity.InvestmentType
	CurrentPrice *decimal.Decimal
}

// UpdateInvestmentOutput represents the output of investment update.
type UpdateInvestmentOutput struct {
	Investment *InvestmentOutput
}

// UpdateInvestmentUseCase edits descriptive fields and marks the price.
type UpdateInvestmentUseCase struct {
	transactor     adapter.Transactor
	investmentRepo adapter.InvestmentRepository
}

// NewUpdateInvestmentUseCase creates a new UpdateInvestmentUseCase instance.
func NewUpdateInvestmentUseCase(transactor adapter.Transactor, investmentRepo adapter.InvestmentRepository) *UpdateInvestmentUseCase {
	return &UpdateInvestmentUseCase{
		transactor:     transactor,
		investmentRepo: investmentRepo,
	}
}

// Execute performs the update.
func (uc *UpdateInvestmentUseCase) Execute(ctx context.Context, input UpdateInvestmentInput) (*UpdateInvestmentOutput, error) {
	var output *UpdateInvestmentOutput
	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		inv, err := findInvestment(ctx, uc.investmentRepo.FindByIDForUpdate, input.InvestmentID, input.UserID)
		if err != nil {
			return err
		}

		if input.Name != nil {
			name := strings.TrimSpace(*input.Name)
			if name == "" {
				return domainerror.NewInvestmentError(
					domainerror.ErrCodeMissingInvestmentFields,
					"name is required",
					domainerror.ErrInvestmentNameRequired,
				)
			}
			inv.Name = name
		}
		if input.Ticker != nil {
			inv.Ticker = strings.ToUpper(strings.TrimSpace(*input.Ticker))
		}
		if input.Type != nil {
			if err := validateType(*input.Type); err != nil {
				return err
			}
			inv.Type = *input.Type
		}
		if input.CurrentPrice != nil {
			if input.CurrentPrice.IsNegative() {
				return invalidValues("current price must not be negative")
			}
			inv.CurrentPrice = *input.CurrentPrice
		}

		inv.UpdatedAt = time.Now().UTC()
		if err := uc.investmentRepo.Update(ctx, inv); err != nil {
			return domainerror.NewStorageError("update investment", fmt.Errorf("failed to update investment: %w", err))
		}
		output = &UpdateInvestmentOutput{Investment: toInvestmentOutput(inv)}
		return nil
	})
	if err != nil {
		return nil, domainerror.NewStorageError("update investment", err)
	}
	return output, nil
}

// DeleteInvestmentInput represents the input for investment deletion.
type DeleteInvestmentInput struct {
	InvestmentID uuid.UUID
	UserID       uuid.UUID
}

// DeleteInvestmentOutput represents the output of investment deletion.
type DeleteInvestmentOutput struct {
	Success bool
}

// DeleteInvestmentUseCase removes a position with its operation history.
// Linked ledger transactions stay in place.
type DeleteInvestmentUseCase struct {
	transactor     adapter.Transactor
	investmentRepo adapter.InvestmentRepository
}

// NewDeleteInvestmentUseCase creates a new DeleteInvestmentUseCase instance.
func NewDeleteInvestmentUseCase(transactor adapter.Transactor, investmentRepo adapter.InvestmentRepository) *DeleteInvestmentUseCase {
	return &DeleteInvestmentUseCase{
		transactor:     transactor,
		investmentRepo: investmentRepo,
	}
}

// Execute performs the deletion.
func (uc *DeleteInvestmentUseCase) Execute(ctx context.Context, input DeleteInvestmentInput) (*DeleteInvestmentOutput, error) {
	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		inv, err := findInvestment(ctx, uc.investmentRepo.FindByID, input.InvestmentID, input.UserID)
		if err != nil {
			return err
		}
		if err := uc.investmentRepo.Delete(ctx, inv.ID); err != nil {
			return domainerror.NewStorageError("delete investment", fmt.Errorf("failed to delete investment: %w", err))
		}
		return nil
	})
	if err != nil {
		return nil, domainerror.NewStorageError("delete investment", err)
	}

	slog.Debug("Investment deleted", "userID", input.UserID, "investmentID", input.InvestmentID)
	return &DeleteInvestmentOutput{Success: true}, nil
}
