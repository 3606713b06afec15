package account

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// ListAccountsInput represents the input for listing accounts.
type ListAccountsInput struct {
	UserID          uuid.UUID
	IncludeInactive bool
}

// ListAccountsOutput represents the output of listing accounts.
type ListAccountsOutput struct {
	Accounts []*AccountOutput
}

// ListAccountsUseCase handles listing accounts logic.
type ListAccountsUseCase struct {
	accountRepo adapter.AccountRepository
}

// NewListAccountsUseCase creates a new ListAccountsUseCase instance.
func NewListAccountsUseCase(accountRepo adapter.AccountRepository) *ListAccountsUseCase {
	return &ListAccountsUseCase{
		accountRepo: accountRepo,
	}
}

// Execute performs the account listing.
func (uc *ListAccountsUseCase) Execute(ctx context.Context, input ListAccountsInput) (*ListAccountsOutput, error) {
	accounts, err := uc.accountRepo.FindByUser(ctx, input.UserID, input.IncludeInactive)
	if err != nil {
		return nil, domainerror.NewStorageError("list accounts", fmt.Errorf("failed to list accounts: %w", err))
	}

	output := &ListAccountsOutput{
		Accounts: make([]*AccountOutput, len(accounts)),
	}
	for i, account := range accounts {
		output.Accounts[i] = toAccountOutput(account)
	}
	return output, nil
}

// GetAccountInput represents the input for reading one account.
type GetAccountInput struct {
	AccountID uuid.UUID
	UserID    uuid.UUID
}

// GetAccountOutput represents the output of reading one account.
type GetAccountOutput struct {
	Account *AccountOutput
}

// GetAccountUseCase reads a single account, active or not.
type GetAccountUseCase struct {
	accountRepo adapter.AccountRepository
}

// NewGetAccountUseCase creates a new GetAccountUseCase instance.
func NewGetAccountUseCase(accountRepo adapter.AccountRepository) *GetAccountUseCase {
	return &GetAccountUseCase{
		accountRepo: accountRepo,
	}
}

// Execute performs the account lookup.
func (uc *GetAccountUseCase) Execute(ctx context.Context, input GetAccountInput) (*GetAccountOutput, error) {
	account, err := findAccount(ctx, uc.accountRepo, input.AccountID, input.UserID)
	if err != nil {
		return nil, err
	}
	return &GetAccountOutput{Account: toAccountOutput(account)}, nil
}
