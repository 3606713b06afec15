package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/usecase/ledger"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// CreateAccountInput represents the input for account creation.
type CreateAccountInput struct {
	UserID         uuid.UUID
	Name           string
	Kind           entity.AccountKind // Optional, defaults to checking
	InitialBalance decimal.Decimal
}

// CreateAccountOutput represents the output of account creation.
type CreateAccountOutput struct {
	Account *AccountOutput
}

// CreateAccountUseCase handles account creation logic.
type CreateAccountUseCase struct {
	accountRepo adapter.AccountRepository
}

// NewCreateAccountUseCase creates a new CreateAccountUseCase instance.
func NewCreateAccountUseCase(accountRepo adapter.AccountRepository) *CreateAccountUseCase {
	return &CreateAccountUseCase{
		accountRepo: accountRepo,
	}
}

// Execute creates an account whose balance starts at the initial balance.
func (uc *CreateAccountUseCase) Execute(ctx context.Context, input CreateAccountInput) (*CreateAccountOutput, error) {
	name, err := normalizeName(input.Name)
	if err != nil {
		return nil, err
	}

	kind := input.Kind
	if kind == "" {
		kind = entity.AccountKindChecking
	}
	if err := validateKind(kind); err != nil {
		return nil, err
	}

	if !ledger.IsCents(input.InitialBalance) {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeInvalidInitialBalance,
			"initial balance must have at most two decimal places",
			domainerror.ErrInvalidInitialBalance,
		)
	}

	account := entity.NewAccount(input.UserID, name, kind, input.InitialBalance)
	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, domainerror.NewStorageError("create account", fmt.Errorf("failed to create account: %w", err))
	}

	slog.Debug("Account created", "userID", input.UserID, "accountID", account.ID)

	return &CreateAccountOutput{
		Account: toAccountOutput(account),
	}, nil
}
