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

// UpdateTransactionInput represents the input for transaction update.
// Nil fields are left unchanged.
type UpdateTransactionInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
	AccountID     *uuid.UUID
	CategoryID    *uuid.UUID
	Type          *entity.TransactionType
	Amount        *decimal.Decimal
	Date          *time.Time
	Description   *string
}

// UpdateTransactionOutput represents the output of transaction update.
type UpdateTransactionOutput struct {
	Transaction *TransactionOutput
	// CounterLeg is set when the edited transaction is a transfer leg.
	CounterLeg *TransactionOutput
}

// UpdateTransactionUseCase handles transaction update logic.
type UpdateTransactionUseCase struct {
	transactor      adapter.Transactor
	transactionRepo adapter.TransactionRepository
	poster          *ledger.Poster
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(
	transactor adapter.Transactor,
	transactionRepo adapter.TransactionRepository,
	poster *ledger.Poster,
) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		transactor:      transactor,
		transactionRepo: transactionRepo,
		poster:          poster,
	}
}

// Execute edits a transaction. The old balance effect is reversed on the old
// account and the new effect applied on the new account, each as its own
// atomic delta, so no balance is ever recomputed and written back.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	var output *UpdateTransactionOutput
	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		txn, err := uc.transactionRepo.FindByID(ctx, input.TransactionID, input.UserID)
		if err != nil {
			return translateError("find transaction", err)
		}

		if txn.IsTransferLeg() {
			output, err = uc.updateTransfer(ctx, txn, input)
			return err
		}

		output, err = uc.updateSingle(ctx, txn, input)
		return err
	})
	if err != nil {
		return nil, domainerror.NewStorageError("update transaction", err)
	}

	slog.Debug("Transaction updated",
		"userID", input.UserID,
		"transactionID", input.TransactionID,
	)

	return output, nil
}

func (uc *UpdateTransactionUseCase) updateSingle(ctx context.Context, txn *entity.Transaction, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	old := *txn

	if txn.IsBookedByRecord() && changesLedgerFields(txn, input) {
		return nil, bookedImmutableError(txn)
	}

	if input.Type != nil {
		if err := validateTransactionType(*input.Type); err != nil {
			return nil, err
		}
		txn.Type = *input.Type
	}
	if input.Amount != nil {
		if err := ledger.ValidateAmount(*input.Amount); err != nil {
			return nil, err
		}
		txn.Amount = *input.Amount
	}
	if input.Description != nil {
		if err := ledger.ValidateDescription(*input.Description); err != nil {
			return nil, err
		}
		txn.Description = *input.Description
	}
	if input.Date != nil {
		txn.Date = entity.DateOf(*input.Date)
	}
	if input.CategoryID != nil {
		txn.CategoryID = *input.CategoryID
	}

	var account *entity.Account
	var err error
	if input.AccountID != nil && *input.AccountID != old.AccountID {
		account, err = uc.poster.RequireAccount(ctx, txn.UserID, *input.AccountID)
	} else {
		account, err = uc.poster.FindAccount(ctx, txn.UserID, txn.AccountID)
	}
	if err != nil {
		return nil, err
	}
	txn.AccountID = account.ID

	category, err := uc.poster.RequireCategory(ctx, txn.CategoryID, txn.Type)
	if err != nil {
		return nil, err
	}

	txn.Status = entity.StatusForDate(txn.Date, uc.poster.Today())
	if err := uc.rebook(ctx, &old, txn); err != nil {
		return nil, err
	}

	return &UpdateTransactionOutput{
		Transaction: toTransactionOutputWithRefs(txn, account, category),
	}, nil
}

// updateTransfer edits one leg of a transfer and mirrors amount, date,
// status and description onto the counter leg.
func (uc *UpdateTransactionUseCase) updateTransfer(ctx context.Context, txn *entity.Transaction, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	if (input.Type != nil && *input.Type != txn.Type) ||
		(input.CategoryID != nil && *input.CategoryID != txn.CategoryID) {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransferLegImmutable,
			"the type and category of a transfer leg cannot be changed",
			domainerror.ErrTransferLegImmutable,
		)
	}

	legs, err := uc.transactionRepo.FindByTransferID(ctx, *txn.TransferID, txn.UserID)
	if err != nil {
		return nil, translateError("find transfer legs", err)
	}
	out, in, err := transferLegs(legs)
	if err != nil {
		return nil, err
	}

	edited, counter := out, in
	if txn.ID == in.ID {
		edited, counter = in, out
	}
	oldEdited, oldCounter := *edited, *counter

	if input.Amount != nil {
		if err := ledger.ValidateAmount(*input.Amount); err != nil {
			return nil, err
		}
		edited.Amount = *input.Amount
		counter.Amount = *input.Amount
	}
	if input.Date != nil {
		edited.Date = entity.DateOf(*input.Date)
		counter.Date = edited.Date
	}

	base := transferBase(edited.Description)
	if input.Description != nil {
		if err := ledger.ValidateDescription(*input.Description); err != nil {
			return nil, err
		}
		base = *input.Description
	}

	var editedAccount *entity.Account
	if input.AccountID != nil && *input.AccountID != edited.AccountID {
		if *input.AccountID == counter.AccountID {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeSameTransferAccount,
				"source and destination accounts must differ",
				domainerror.ErrSameTransferAccount,
			)
		}
		editedAccount, err = uc.poster.RequireAccount(ctx, edited.UserID, *input.AccountID)
	} else {
		editedAccount, err = uc.poster.FindAccount(ctx, edited.UserID, edited.AccountID)
	}
	if err != nil {
		return nil, err
	}
	edited.AccountID = editedAccount.ID

	counterAccount, err := uc.poster.FindAccount(ctx, counter.UserID, counter.AccountID)
	if err != nil {
		return nil, err
	}

	if input.Description != nil || edited.AccountID != oldEdited.AccountID {
		outAccount, inAccount := editedAccount, counterAccount
		if edited.ID == in.ID {
			outAccount, inAccount = counterAccount, editedAccount
		}
		out.Description = transferDescription(transferOutPrefix, inAccount.Name, base)
		in.Description = transferDescription(transferInPrefix, outAccount.Name, base)
	}

	status := entity.StatusForDate(edited.Date, uc.poster.Today())
	edited.Status = status
	counter.Status = status

	if err := uc.rebook(ctx, &oldEdited, edited); err != nil {
		return nil, err
	}
	if err := uc.rebook(ctx, &oldCounter, counter); err != nil {
		return nil, err
	}

	return &UpdateTransactionOutput{
		Transaction: toTransactionOutputWithRefs(edited, editedAccount, nil),
		CounterLeg:  toTransactionOutputWithRefs(counter, counterAccount, nil),
	}, nil
}

// rebook persists updated, reverses the effect old had and applies the new one.
func (uc *UpdateTransactionUseCase) rebook(ctx context.Context, old, updated *entity.Transaction) error {
	if err := uc.transactionRepo.Update(ctx, updated, old.Status); err != nil {
		return translateError("update transaction", err)
	}
	if err := uc.poster.Apply(ctx, old.UserID, old.AccountID, old.BalanceEffect().Neg()); err != nil {
		return err
	}
	return uc.poster.Apply(ctx, updated.UserID, updated.AccountID, updated.BalanceEffect())
}

// changesLedgerFields reports whether input would alter anything besides the
// description. Repeating the current value is not a change.
func changesLedgerFields(txn *entity.Transaction, input UpdateTransactionInput) bool {
	switch {
	case input.AccountID != nil && *input.AccountID != txn.AccountID:
		return true
	case input.CategoryID != nil && *input.CategoryID != txn.CategoryID:
		return true
	case input.Type != nil && *input.Type != txn.Type:
		return true
	case input.Amount != nil && !input.Amount.Equal(txn.Amount):
		return true
	case input.Date != nil && !entity.DateOf(*input.Date).Equal(txn.Date):
		return true
	}
	return false
}
