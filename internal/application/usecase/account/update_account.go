package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// UpdateAccountInput represents the input for account update.
// Balances are never edited here.
type UpdateAccountInput struct {
	AccountID uuid.UUID
	UserID    uuid.UUID
	Name      *string
	Kind      *entity.AccountKind
}

// UpdateAccountOutput represents the output of account update.
type UpdateAccountOutput struct {
	Account *AccountOutput
}

// UpdateAccountUseCase handles account update logic.
type UpdateAccountUseCase struct {
	accountRepo adapter.AccountRepository
}

// NewUpdateAccountUseCase creates a new UpdateAccountUseCase instance.
func NewUpdateAccountUseCase(accountRepo adapter.AccountRepository) *UpdateAccountUseCase {
	return &UpdateAccountUseCase{
		accountRepo: accountRepo,
	}
}

// Execute performs the account update.
func (uc *UpdateAccountUseCase) Execute(ctx context.Context, input UpdateAccountInput) (*UpdateAccountOutput, error) {
	account, err := findAccount(ctx, uc.accountRepo, input.AccountID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name, err := normalizeName(*input.Name)
		if err != nil {
			return nil, err
		}
		account.Name = name
	}
	if input.Kind != nil {
		if err := validateKind(*input.Kind); err != nil {
			return nil, err
		}
		account.Kind = *input.Kind
	}

	if err := uc.accountRepo.Update(ctx, account); err != nil {
		return nil, domainerror.NewStorageError("update account", fmt.Errorf("failed to update account: %w", err))
	}

	return &UpdateAccountOutput{Account: toAccountOutput(account)}, nil
}

// DeactivateAccountInput represents the input for account deactivation.
type DeactivateAccountInput struct {
	AccountID uuid.UUID
	UserID    uuid.UUID
}

// DeactivateAccountOutput represents the output of account deactivation.
type DeactivateAccountOutput struct {
	Success bool
}

// DeactivateAccountUseCase hides an account from new mutations while keeping
// its history readable.
type DeactivateAccountUseCase struct {
	accountRepo adapter.AccountRepository
}

// NewDeactivateAccountUseCase creates a new DeactivateAccountUseCase instance.
func NewDeactivateAccountUseCase(accountRepo adapter.AccountRepository) *DeactivateAccountUseCase {
	return &DeactivateAccountUseCase{
		accountRepo: accountRepo,
	}
}

// Execute performs the deactivation. Deactivating twice is a no-op.
func (uc *DeactivateAccountUseCase) Execute(ctx context.Context, input DeactivateAccountInput) (*DeactivateAccountOutput, error) {
	account, err := findAccount(ctx, uc.accountRepo, input.AccountID, input.UserID)
	if err != nil {
		return nil, err
	}
	if !account.Active {
		return &DeactivateAccountOutput{Success: true}, nil
	}

	account.Active = false
	if err := uc.accountRepo.Update(ctx, account); err != nil {
		return nil, domainerror.NewStorageError("deactivate account", fmt.Errorf("failed to deactivate account: %w", err))
	}

	slog.Info("Account deactivated", "userID", input.UserID, "accountID", input.AccountID)

	return &DeactivateAccountOutput{Success: true}, nil
}
