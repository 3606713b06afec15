package debt

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

// CreateDebtInput represents the input for debt creation.
type CreateDebtInput struct {
	UserID            uuid.UUID
	Name              string
	Lender            string
	TotalAmount       decimal.Decimal
	InterestRate      decimal.Decimal // Monthly, in percent
	StartDate         time.Time
	DueDay            int
	TotalInstallments *int
	InstallmentValue  *decimal.Decimal
}

// CreateDebtOutput represents the output of debt creation.
type CreateDebtOutput struct {
	Debt *DebtOutput
}

// CreateDebtUseCase handles debt creation logic.
type CreateDebtUseCase struct {
	debtRepo adapter.DebtRepository
}

// NewCreateDebtUseCase creates a new CreateDebtUseCase instance.
func NewCreateDebtUseCase(debtRepo adapter.DebtRepository) *CreateDebtUseCase {
	return &CreateDebtUseCase{
		debtRepo: debtRepo,
	}
}

// Execute performs the debt creation. The outstanding balance starts at the
// total amount.
func (uc *CreateDebtUseCase) Execute(ctx context.Context, input CreateDebtInput) (*CreateDebtOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || input.StartDate.IsZero() {
		return nil, domainerror.NewDebtError(
			domainerror.ErrCodeMissingDebtFields,
			"name and start date are required",
			domainerror.ErrDebtFieldsRequired,
		)
	}
	if !input.TotalAmount.IsPositive() {
		return nil, domainerror.NewDebtError(
			domainerror.ErrCodeInvalidDebtAmount,
			"total amount must be greater than zero",
			domainerror.ErrInvalidDebtAmount,
		)
	}
	if err := validateCents("total amount", input.TotalAmount); err != nil {
		return nil, err
	}
	if err := validateInterestRate(input.InterestRate); err != nil {
		return nil, err
	}
	if err := validateDueDay(input.DueDay); err != nil {
		return nil, err
	}
	if err := validateInstallments(input.TotalInstallments, input.InstallmentValue); err != nil {
		return nil, err
	}

	debt := entity.NewDebt(
		input.UserID,
		name,
		strings.TrimSpace(input.Lender),
		input.TotalAmount.Round(2),
		input.InterestRate,
		input.StartDate,
		input.DueDay,
		input.TotalInstallments,
		input.InstallmentValue,
	)
	if err := uc.debtRepo.Create(ctx, debt); err != nil {
		return nil, domainerror.NewStorageError("create debt", fmt.Errorf("failed to create debt: %w", err))
	}

	return &CreateDebtOutput{Debt: toDebtOutput(debt)}, nil
}

// ListDebtsInput represents the input for listing debts.
type ListDebtsInput struct {
	UserID uuid.UUID
}

// ListDebtsOutput represents the output of listing debts.
type ListDebtsOutput struct {
	Debts            []*DebtOutput
	TotalOutstanding decimal.Decimal
}

// ListDebtsUseCase lists the debts of a user.
type ListDebtsUseCase struct {
	debtRepo adapter.DebtRepository
}

// NewListDebtsUseCase creates a new ListDebtsUseCase instance.
func NewListDebtsUseCase(debtRepo adapter.DebtRepository) *ListDebtsUseCase {
	return &ListDebtsUseCase{
		debtRepo: debtRepo,
	}
}

// Execute performs the listing.
func (uc *ListDebtsUseCase) Execute(ctx context.Context, input ListDebtsInput) (*ListDebtsOutput, error) {
	debts, err := uc.debtRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, domainerror.NewStorageError("list debts", fmt.Errorf("failed to list debts: %w", err))
	}

	output := &ListDebtsOutput{
		Debts:            make([]*DebtOutput, len(debts)),
		TotalOutstanding: decimal.Zero,
	}
	for i, debt := range debts {
		output.Debts[i] = toDebtOutput(debt)
		output.TotalOutstanding = output.TotalOutstanding.Add(debt.CurrentBalance)
	}
	return output, nil
}

// GetDebtInput represents the input for debt retrieval.
type GetDebtInput struct {
	DebtID uuid.UUID
	UserID uuid.UUID
}

// GetDebtOutput represents the output of debt retrieval.
type GetDebtOutput struct {
	Debt         *DebtOutput
	PaymentCount int
}

// GetDebtUseCase retrieves a single debt.
type GetDebtUseCase struct {
	debtRepo adapter.DebtRepository
}

// NewGetDebtUseCase creates a new GetDebtUseCase instance.
func NewGetDebtUseCase(debtRepo adapter.DebtRepository) *GetDebtUseCase {
	return &GetDebtUseCase{
		debtRepo: debtRepo,
	}
}

// Execute performs the retrieval.
func (uc *GetDebtUseCase) Execute(ctx context.Context, input GetDebtInput) (*GetDebtOutput, error) {
	debt, err := findDebt(ctx, uc.debtRepo.FindByID, input.DebtID, input.UserID)
	if err != nil {
		return nil, err
	}

	count, err := uc.debtRepo.CountPayments(ctx, debt.ID)
	if err != nil {
		return nil, domainerror.NewStorageError("count debt payments", fmt.Errorf("failed to count payments: %w", err))
	}
	return &GetDebtOutput{Debt: toDebtOutput(debt), PaymentCount: count}, nil
}

// UpdateDebtInput represents the input for debt update. Every field is optional.
type UpdateDebtInput struct {
	DebtID            uuid.UUID
	UserID            uuid.UUID
	Name              *string
	Lender            *string
	InterestRate      *decimal.Decimal
	DueDay            *int
	TotalInstallments *int
	InstallmentValue  *decimal.Decimal
	CurrentBalance    *decimal.Decimal
}

// UpdateDebtOutput represents the output of debt update.
type UpdateDebtOutput struct {
	Debt *DebtOutput
}

// UpdateDebtUseCase edits a debt. It is the only path that may raise the
// outstanding balance.
type UpdateDebtUseCase struct {
	transactor adapter.Transactor
	debtRepo   adapter.DebtRepository
}

// NewUpdateDebtUseCase creates a new UpdateDebtUseCase instance.
func NewUpdateDebtUseCase(transactor adapter.Transactor, debtRepo adapter.DebtRepository) *UpdateDebtUseCase {
	return &UpdateDebtUseCase{
		transactor: transactor,
		debtRepo:   debtRepo,
	}
}

// Execute performs the update.
func (uc *UpdateDebtUseCase) Execute(ctx context.Context, input UpdateDebtInput) (*UpdateDebtOutput, error) {
	var output *UpdateDebtOutput
	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		debt, err := findDebt(ctx, uc.debtRepo.FindByIDForUpdate, input.DebtID, input.UserID)
		if err != nil {
			return err
		}
		if err := applyDebtUpdate(debt, input); err != nil {
			return err
		}

		debt.UpdatedAt = time.Now().UTC()
		if err := uc.debtRepo.Update(ctx, debt); err != nil {
			return domainerror.NewStorageError("update debt", fmt.Errorf("failed to update debt: %w", err))
		}
		output = &UpdateDebtOutput{Debt: toDebtOutput(debt)}
		return nil
	})
	if err != nil {
		return nil, domainerror.NewStorageError("update debt", err)
	}
	return output, nil
}

func applyDebtUpdate(debt *entity.Debt, input UpdateDebtInput) error {
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return domainerror.NewDebtError(
				domainerror.ErrCodeMissingDebtFields,
				"name is required",
				domainerror.ErrDebtFieldsRequired,
			)
		}
		debt.Name = name
	}
	if input.Lender != nil {
		debt.Lender = strings.TrimSpace(*input.Lender)
	}
	if input.InterestRate != nil {
		if err := validateInterestRate(*input.InterestRate); err != nil {
			return err
		}
		debt.InterestRate = *input.InterestRate
	}
	if input.DueDay != nil {
		if err := validateDueDay(*input.DueDay); err != nil {
			return err
		}
		debt.DueDay = *input.DueDay
	}
	if err := validateInstallments(input.TotalInstallments, input.InstallmentValue); err != nil {
		return err
	}
	if input.TotalInstallments != nil {
		debt.TotalInstallments = input.TotalInstallments
	}
	if input.InstallmentValue != nil {
		debt.InstallmentValue = input.InstallmentValue
	}
	if input.CurrentBalance != nil {
		if input.CurrentBalance.IsNegative() {
			return domainerror.NewDebtError(
				domainerror.ErrCodeInvalidDebtAmount,
				"current balance must not be negative",
				domainerror.ErrInvalidDebtAmount,
			)
		}
		if err := validateCents("current balance", *input.CurrentBalance); err != nil {
			return err
		}
		debt.CurrentBalance = input.CurrentBalance.Round(2)
	}
	return nil
}

// DeleteDebtInput represents the input for debt deletion.
type DeleteDebtInput struct {
	DebtID uuid.UUID
	UserID uuid.UUID
}

// DeleteDebtOutput represents the output of debt deletion.
type DeleteDebtOutput struct {
	Success bool
}

// DeleteDebtUseCase removes a debt with its payments. Linked ledger
// transactions stay in place.
type DeleteDebtUseCase struct {
	transactor adapter.Transactor
	debtRepo   adapter.DebtRepository
}

// NewDeleteDebtUseCase creates a new DeleteDebtUseCase instance.
func NewDeleteDebtUseCase(transactor adapter.Transactor, debtRepo adapter.DebtRepository) *DeleteDebtUseCase {
	return &DeleteDebtUseCase{
		transactor: transactor,
		debtRepo:   debtRepo,
	}
}

// Execute performs the deletion.
func (uc *DeleteDebtUseCase) Execute(ctx context.Context, input DeleteDebtInput) (*DeleteDebtOutput, error) {
	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		debt, err := findDebt(ctx, uc.debtRepo.FindByID, input.DebtID, input.UserID)
		if err != nil {
			return err
		}
		if err := uc.debtRepo.Delete(ctx, debt.ID); err != nil {
			return domainerror.NewStorageError("delete debt", fmt.Errorf("failed to delete debt: %w", err))
		}
		return nil
	})
	if err != nil {
		return nil, domainerror.NewStorageError("delete debt", err)
	}

	slog.Debug("Debt deleted", "userID", input.UserID, "debtID", input.DebtID)
	return &DeleteDebtOutput{Success: true}, nil
}
