// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/usecase/ledger"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	UserID      uuid.UUID
	AccountID   uuid.UUID
	CategoryID  uuid.UUID
	Type        entity.TransactionType
	Amount      decimal.Decimal
	Date        time.Time
	Description string
	Source      entity.TransactionSource
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *TransactionOutput
}

// CreateTransactionUseCase handles transaction creation logic.
type CreateTransactionUseCase struct {
	transactor adapter.Transactor
	poster     *ledger.Poster
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(transactor adapter.Transactor, poster *ledger.Poster) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactor: transactor,
		poster:     poster,
	}
}

// Execute validates and books a single income or expense. Its status is
// derived from the date, and a completed transaction moves the account
// balance in the same unit of work.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	if input.Type == entity.TransactionTypeTransfer {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transfers must be created with a destination account",
			domainerror.ErrInvalidTransactionType,
		)
	}

	var output *TransactionOutput
	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		output, err = uc.post(ctx, input)
		return err
	})
	if err != nil {
		return nil, domainerror.NewStorageError("create transaction", err)
	}

	slog.Debug("Transaction created",
		"userID", input.UserID,
		"transactionID", output.ID,
		"status", output.Status,
	)

	return &CreateTransactionOutput{Transaction: output}, nil
}

// post runs the create path inside the caller's unit of work.
func (uc *CreateTransactionUseCase) post(ctx context.Context, input CreateTransactionInput) (*TransactionOutput, error) {
	if err := validateTransactionType(input.Type); err != nil {
		return nil, err
	}
	if err := ledger.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}
	if err := ledger.ValidateDescription(input.Description); err != nil {
		return nil, err
	}
	if input.Date.IsZero() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			"transaction date is required",
			domainerror.ErrInvalidTransactionDate,
		)
	}

	account, err := uc.poster.RequireAccount(ctx, input.UserID, input.AccountID)
	if err != nil {
		return nil, err
	}
	category, err := uc.poster.RequireCategory(ctx, input.CategoryID, input.Type)
	if err != nil {
		return nil, err
	}

	source := input.Source
	if source == "" {
		source = entity.TransactionSourceManual
	}

	txn := entity.NewTransaction(
		input.UserID,
		account.ID,
		category.ID,
		input.Type,
		input.Amount,
		input.Date,
		uc.poster.Today(),
		input.Description,
		source,
	)
	if err := uc.poster.Post(ctx, txn); err != nil {
		return nil, err
	}

	return toTransactionOutputWithRefs(txn, account, category), nil
}
