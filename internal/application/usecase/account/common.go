// Package account contains account-related use cases.
package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// MaxAccountNameLength is the maximum allowed length for account names.
const MaxAccountNameLength = 100

// AccountOutput represents a single account in the output.
type AccountOutput struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Name           string
	Kind           entity.AccountKind
	InitialBalance decimal.Decimal
	Balance        decimal.Decimal
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func toAccountOutput(account *entity.Account) *AccountOutput {
	return &AccountOutput{
		ID:             account.ID,
		UserID:         account.UserID,
		Name:           account.Name,
		Kind:           account.Kind,
		InitialBalance: account.InitialBalance,
		Balance:        account.Balance,
		Active:         account.Active,
		CreatedAt:      account.CreatedAt,
		UpdatedAt:      account.UpdatedAt,
	}
}

func findAccount(ctx context.Context, accountRepo adapter.AccountRepository, id, userID uuid.UUID) (*entity.Account, error) {
	account, err := accountRepo.FindByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, domainerror.ErrAccountNotFound) {
			return nil, domainerror.NewAccountError(
				domainerror.ErrCodeAccountNotFound,
				"account not found",
				domainerror.ErrAccountNotFound,
			)
		}
		return nil, domainerror.NewStorageError("find account", fmt.Errorf("failed to find account: %w", err))
	}
	return account, nil
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > MaxAccountNameLength {
		return "", domainerror.NewAccountError(
			domainerror.ErrCodeAccountNameRequired,
			fmt.Sprintf("account name is required and must not exceed %d characters", MaxAccountNameLength),
			domainerror.ErrAccountNameRequired,
		)
	}
	return name, nil
}

func validateKind(kind entity.AccountKind) error {
	if !entity.IsValidAccountKind(kind) {
		return domainerror.NewAccountError(
			domainerror.ErrCodeInvalidAccountKind,
			"account kind must be 'checking' or 'investment'",
			domainerror.ErrInvalidAccountKind,
		)
	}
	return nil
}
