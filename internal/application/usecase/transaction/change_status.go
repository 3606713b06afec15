// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/usecase/ledger"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// ChangeStatusInput represents the input for completing or reverting a transaction.
type ChangeStatusInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
}

// ChangeStatusOutput represents the output of a status change. It holds every
// leg that changed, which is two for transfers.
type ChangeStatusOutput struct {
	Transactions []*TransactionOutput
}

// statusChange moves transactions between pending and completed.
type statusChange struct {
	transactor      adapter.Transactor
	transactionRepo adapter.TransactionRepository
	poster          *ledger.Poster
	from            entity.TransactionStatus
	to              entity.TransactionStatus
}

// CompleteTransactionUseCase marks a pending transaction as completed.
type CompleteTransactionUseCase struct {
	statusChange
}

// NewCompleteTransactionUseCase creates a new CompleteTransactionUseCase instance.
func NewCompleteTransactionUseCase(
	transactor adapter.Transactor,
	transactionRepo adapter.TransactionRepository,
	poster *ledger.Poster,
) *CompleteTransactionUseCase {
	return &CompleteTransactionUseCase{statusChange{
		transactor:      transactor,
		transactionRepo: transactionRepo,
		poster:          poster,
		from:            entity.TransactionStatusPending,
		to:              entity.TransactionStatusCompleted,
	}}
}

// RevertTransactionUseCase moves a completed transaction back to pending.
type RevertTransactionUseCase struct {
	statusChange
}

// NewRevertTransactionUseCase creates a new RevertTransactionUseCase instance.
func NewRevertTransactionUseCase(
	transactor adapter.Transactor,
	transactionRepo adapter.TransactionRepository,
	poster *ledger.Poster,
) *RevertTransactionUseCase {
	return &RevertTransactionUseCase{statusChange{
		transactor:      transactor,
		transactionRepo: transactionRepo,
		poster:          poster,
		from:            entity.TransactionStatusCompleted,
		to:              entity.TransactionStatusPending,
	}}
}

// Execute applies the transaction's signed amount once and sets it completed.
// Both legs of a transfer are completed together.
func (uc *CompleteTransactionUseCase) Execute(ctx context.Context, input ChangeStatusInput) (*ChangeStatusOutput, error) {
	return uc.execute(ctx, input)
}

// Execute applies the exact inverse of the transaction's effect and sets it
// pending. Both legs of a transfer are reverted together.
func (uc *RevertTransactionUseCase) Execute(ctx context.Context, input ChangeStatusInput) (*ChangeStatusOutput, error) {
	return uc.execute(ctx, input)
}

func (uc *statusChange) execute(ctx context.Context, input ChangeStatusInput) (*ChangeStatusOutput, error) {
	var output ChangeStatusOutput
	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		txn, err := uc.transactionRepo.FindByID(ctx, input.TransactionID, input.UserID)
		if err != nil {
			return translateError("find transaction", err)
		}
		if txn.Status != uc.from {
			return uc.wrongStatusError()
		}
		if uc.to == entity.TransactionStatusPending && txn.IsBookedByRecord() {
			return bookedImmutableError(txn)
		}

		legs := []*entity.Transaction{txn}
		if txn.IsTransferLeg() {
			legs, err = uc.transactionRepo.FindByTransferID(ctx, *txn.TransferID, txn.UserID)
			if err != nil {
				return translateError("find transfer legs", err)
			}
		}

		for _, leg := range legs {
			if leg.Status != uc.from {
				continue
			}
			if err := uc.transactionRepo.UpdateStatus(ctx, leg.ID, uc.from, uc.to); err != nil {
				return translateError("update transaction status", err)
			}

			delta := leg.SignedAmount()
			if uc.to == entity.TransactionStatusPending {
				delta = delta.Neg()
			}
			if err := uc.poster.Apply(ctx, leg.UserID, leg.AccountID, delta); err != nil {
				return err
			}

			leg.Status = uc.to
			output.Transactions = append(output.Transactions, toTransactionOutput(leg))
		}
		return nil
	})
	if err != nil {
		return nil, domainerror.NewStorageError("change transaction status", err)
	}

	slog.Debug("Transaction status changed",
		"userID", input.UserID,
		"transactionID", input.TransactionID,
		"from", uc.from,
		"to", uc.to,
	)

	return &output, nil
}

// bookedImmutableError rejects changes that would desync txn from the record
// that booked it. Deleting the transaction releases that record instead.
func bookedImmutableError(txn *entity.Transaction) error {
	return domainerror.NewTransactionError(
		domainerror.ErrCodeBookedTransactionImmutable,
		"a "+string(txn.Source)+" transaction can only change its description or be deleted",
		domainerror.ErrBookedTransactionImmutable,
	)
}

func (uc *statusChange) wrongStatusError() error {
	if uc.to == entity.TransactionStatusCompleted {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeAlreadyCompleted,
			"transaction is already completed",
			domainerror.ErrTransactionAlreadyCompleted,
		)
	}
	return domainerror.NewTransactionError(
		domainerror.ErrCodeAlreadyPending,
		"transaction is already pending",
		domainerror.ErrTransactionAlreadyPending,
	)
}
