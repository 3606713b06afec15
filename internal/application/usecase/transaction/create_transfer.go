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

// CreateTransferInput represents the input for transfer creation.
type CreateTransferInput struct {
	UserID        uuid.UUID
	FromAccountID uuid.UUID
	ToAccountID   uuid.UUID
	Amount        decimal.Decimal
	Date          time.Time
	Description   string
}

// CreateTransferOutput represents the output of transfer creation.
type CreateTransferOutput struct {
	TransferID uuid.UUID
	Outgoing   *TransactionOutput
	Incoming   *TransactionOutput
}

// CreateTransferUseCase handles transfers between two accounts of a user.
type CreateTransferUseCase struct {
	transactor adapter.Transactor
	poster     *ledger.Poster
}

// NewCreateTransferUseCase creates a new CreateTransferUseCase instance.
func NewCreateTransferUseCase(transactor adapter.Transactor, poster *ledger.Poster) *CreateTransferUseCase {
	return &CreateTransferUseCase{
		transactor: transactor,
		poster:     poster,
	}
}

// Execute books an expense leg on the source account and an income leg on
// the destination account, linked by a shared transfer ID.
func (uc *CreateTransferUseCase) Execute(ctx context.Context, input CreateTransferInput) (*CreateTransferOutput, error) {
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
	if input.FromAccountID == input.ToAccountID {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeSameTransferAccount,
			"source and destination accounts must differ",
			domainerror.ErrSameTransferAccount,
		)
	}

	refs := uc.poster.Refs()
	if refs.TransferOut == uuid.Nil || refs.TransferIn == uuid.Nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransferCategoriesMissing,
			"transfer categories are not configured",
			domainerror.ErrTransferCategoriesMissing,
		)
	}

	var output *CreateTransferOutput
	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		from, err := uc.poster.RequireAccount(ctx, input.UserID, input.FromAccountID)
		if err != nil {
			return err
		}
		to, err := uc.poster.RequireAccount(ctx, input.UserID, input.ToAccountID)
		if err != nil {
			return err
		}

		today := uc.poster.Today()
		transferID := uuid.New()

		outgoing := entity.NewTransaction(
			input.UserID,
			from.ID,
			refs.TransferOut,
			entity.TransactionTypeExpense,
			input.Amount,
			input.Date,
			today,
			transferDescription(transferOutPrefix, to.Name, input.Description),
			entity.TransactionSourceTransfer,
		)
		outgoing.TransferID = &transferID

		incoming := entity.NewTransaction(
			input.UserID,
			to.ID,
			refs.TransferIn,
			entity.TransactionTypeIncome,
			input.Amount,
			input.Date,
			today,
			transferDescription(transferInPrefix, from.Name, input.Description),
			entity.TransactionSourceTransfer,
		)
		incoming.TransferID = &transferID

		if err := uc.poster.Post(ctx, outgoing); err != nil {
			return err
		}
		if err := uc.poster.Post(ctx, incoming); err != nil {
			return err
		}

		output = &CreateTransferOutput{
			TransferID: transferID,
			Outgoing:   toTransactionOutputWithRefs(outgoing, from, nil),
			Incoming:   toTransactionOutputWithRefs(incoming, to, nil),
		}
		return nil
	})
	if err != nil {
		return nil, domainerror.NewStorageError("create transfer", err)
	}

	slog.Info("Transfer created",
		"userID", input.UserID,
		"transferID", output.TransferID,
		"fromAccountID", input.FromAccountID,
		"toAccountID", input.ToAccountID,
		"amount", input.Amount.StringFixed(2),
		"status", output.Outgoing.Status,
	)

	return output, nil
}
