// Package ledger contains the balance-effect rules shared by every use case
// that books movements onto accounts.
package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// MaxDescriptionLength is the maximum allowed length for transaction descriptions.
const MaxDescriptionLength = 255

// Poster books ledger transactions and keeps account balances in step with them.
//
// Every balance change goes through ApplyDelta, a single atomic increment.
// Callers are expected to run Post and Apply inside a unit of work.
type Poster struct {
	accountRepo     adapter.AccountRepository
	categoryRepo    adapter.CategoryRepository
	transactionRepo adapter.TransactionRepository
	clock           adapter.Clock
	location        *time.Location
	refs            entity.CategoryRefs
}

// NewPoster creates a new Poster instance.
func NewPoster(
	accountRepo adapter.AccountRepository,
	categoryRepo adapter.CategoryRepository,
	transactionRepo adapter.TransactionRepository,
	clock adapter.Clock,
	location *time.Location,
	refs entity.CategoryRefs,
) *Poster {
	if location == nil {
		location = time.UTC
	}
	return &Poster{
		accountRepo:     accountRepo,
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
		clock:           clock,
		location:        location,
		refs:            refs,
	}
}

// Today returns the ledger's current calendar date.
func (p *Poster) Today() time.Time {
	return entity.TodayIn(p.clock.Now(), p.location)
}

// Refs returns the resolved system category IDs.
func (p *Poster) Refs() entity.CategoryRefs {
	return p.refs
}

// FindAccount loads an account owned by userID, active or not.
func (p *Poster) FindAccount(ctx context.Context, userID, accountID uuid.UUID) (*entity.Account, error) {
	account, err := p.accountRepo.FindByID(ctx, accountID, userID)
	if err != nil {
		if errors.Is(err, domainerror.ErrAccountNotFound) {
			return nil, domainerror.NewAccountError(
				domainerror.ErrCodeAccountNotFound,
				"account not found",
				domainerror.ErrAccountNotFound,
			)
		}
		return nil, domainerror.NewStorageError("find account", err)
	}
	return account, nil
}

// RequireAccount loads an account owned by userID and rejects inactive ones.
func (p *Poster) RequireAccount(ctx context.Context, userID, accountID uuid.UUID) (*entity.Account, error) {
	account, err := p.FindAccount(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	if !account.Active {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeAccountInactive,
			"account is inactive",
			domainerror.ErrAccountInactive,
		)
	}
	return account, nil
}

// RequireCategory loads a category and checks it can classify a transaction of type t.
func (p *Poster) RequireCategory(ctx context.Context, categoryID uuid.UUID, t entity.TransactionType) (*entity.Category, error) {
	category, err := p.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTxnCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFoundForTransaction,
			)
		}
		return nil, domainerror.NewStorageError("find category", err)
	}

	if !category.Matches(t) {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTxnCategoryMismatch,
			"category type must match transaction type",
			domainerror.ErrCategoryTypeMismatch,
		)
	}
	return category, nil
}

// ResolveCategory returns the system category for key, falling back to the
// first category of categoryType when the system category is not configured.
func (p *Poster) ResolveCategory(ctx context.Context, key entity.SystemKey, categoryType entity.CategoryType) (uuid.UUID, error) {
	if id := p.refs.Get(key); id != uuid.Nil {
		return id, nil
	}
	return p.FirstCategory(ctx, categoryType)
}

// FirstCategory returns the first category of categoryType.
func (p *Poster) FirstCategory(ctx context.Context, categoryType entity.CategoryType) (uuid.UUID, error) {
	category, err := p.categoryRepo.FindFirstByType(ctx, categoryType)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return uuid.Nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTxnCategoryNotFound,
				"no category of type "+string(categoryType)+" exists",
				domainerror.ErrCategoryNotFoundForTransaction,
			)
		}
		return uuid.Nil, domainerror.NewStorageError("find fallback category", err)
	}
	return category.ID, nil
}

// Post stores txn and applies its balance effect to the account.
func (p *Poster) Post(ctx context.Context, txn *entity.Transaction) error {
	if err := p.transactionRepo.Create(ctx, txn); err != nil {
		return domainerror.NewStorageError("create transaction", err)
	}
	return p.Apply(ctx, txn.UserID, txn.AccountID, txn.BalanceEffect())
}

// Apply adds delta to an account balance. A zero delta is a no-op.
func (p *Poster) Apply(ctx context.Context, userID, accountID uuid.UUID, delta decimal.Decimal) error {
	if delta.IsZero() {
		return nil
	}
	if err := p.accountRepo.ApplyDelta(ctx, accountID, userID, delta); err != nil {
		if errors.Is(err, domainerror.ErrAccountNotFound) {
			return domainerror.NewAccountError(
				domainerror.ErrCodeAccountNotFound,
				"account not found",
				domainerror.ErrAccountNotFound,
			)
		}
		return domainerror.NewStorageError("apply balance delta", err)
	}
	return nil
}

// IsCents reports whether amount has at most two decimal places.
func IsCents(amount decimal.Decimal) bool {
	return amount.Equal(amount.Round(2))
}

// ValidateAmount rejects zero and negative amounts and amounts finer than a cent.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidTransactionAmount,
		)
	}
	if !IsCents(amount) {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must have at most two decimal places",
			domainerror.ErrInvalidTransactionAmount,
		)
	}
	return nil
}

// ValidateDescription rejects descriptions longer than MaxDescriptionLength.
func ValidateDescription(description string) error {
	if len([]rune(description)) > MaxDescriptionLength {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeDescriptionTooLong,
			"description must not exceed 255 characters",
			domainerror.ErrDescriptionTooLong,
		)
	}
	return nil
}
