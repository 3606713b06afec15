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

// DeleteTransactionInput represents the input for transaction deletion.
type DeleteTransactionInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
}

// DeleteTransactionOutput represents the output of transaction deletion.
type DeleteTransactionOutput struct {
	DeletedIDs           []uuid.UUID
	ReleasedInstallments int64

	// UnlinkedRecords counts debt payments and investment operations that
	// kept their history but lost the deleted cash movement.
	UnlinkedRecords int64
}

// DeleteTransactionUseCase handles transaction deletion logic.
type DeleteTransactionUseCase struct {
	transactor      adapter.Transactor
	transactionRepo adapter.TransactionRepository
	cardRepo        adapter.CreditCardRepository
	debtRepo        adapter.DebtRepository
	investmentRepo  adapter.InvestmentRepository
	poster          *ledger.Poster
}

// NewDeleteTransactionUseCase creates a new DeleteTransactionUseCase instance.
func NewDeleteTransactionUseCase(
	transactor adapter.Transactor,
	transactionRepo adapter.TransactionRepository,
	cardRepo adapter.CreditCardRepository,
	debtRepo adapter.DebtRepository,
	investmentRepo adapter.InvestmentRepository,
	poster *ledger.Poster,
) *DeleteTransactionUseCase {
	return &DeleteTransactionUseCase{
		transactor:      transactor,
		transactionRepo: transactionRepo,
		cardRepo:        cardRepo,
		debtRepo:        debtRepo,
		investmentRepo:  investmentRepo,
		poster:          poster,
	}
}

// Execute removes a transaction and reverses its balance effect. Deleting a
// transfer leg removes both legs. Deleting an invoice payment reopens the
// installments it settled. Debt payments and investment operations keep their
// rows with the transaction link cleared; the debt balance and the position
// are not recomputed.
func (uc *DeleteTransactionUseCase) Execute(ctx context.Context, input DeleteTransactionInput) (*DeleteTransactionOutput, error) {
	output := &DeleteTransactionOutput{}
	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		txn, err := uc.transactionRepo.FindByID(ctx, input.TransactionID, input.UserID)
		if err != nil {
			return translateError("find transaction", err)
		}

		legs := []*entity.Transaction{txn}
		if txn.IsTransferLeg() {
			legs, err = uc.transactionRepo.FindByTransferID(ctx, *txn.TransferID, txn.UserID)
			if err != nil {
				return translateError("find transfer legs", err)
			}
		}

		for _, leg := range legs {
			if err := uc.transactionRepo.Delete(ctx, leg.ID, leg.Status); err != nil {
				return translateError("delete transaction", err)
			}
			if err := uc.poster.Apply(ctx, leg.UserID, leg.AccountID, leg.BalanceEffect().Neg()); err != nil {
				return err
			}
			output.DeletedIDs = append(output.DeletedIDs, leg.ID)
		}

		switch txn.Source {
		case entity.TransactionSourceInvoicePayment:
			released, err := uc.cardRepo.ReleaseInstallments(ctx, txn.ID)
			if err != nil {
				return domainerror.NewStorageError("release installments", err)
			}
			output.ReleasedInstallments = released
		case entity.TransactionSourceDebtPayment:
			unlinked, err := uc.debtRepo.UnlinkTransaction(ctx, txn.ID)
			if err != nil {
				return domainerror.NewStorageError("unlink debt payment", err)
			}
			output.UnlinkedRecords = unlinked
		case entity.TransactionSourceInvestment:
			unlinked, err := uc.investmentRepo.UnlinkTransaction(ctx, txn.ID)
			if err != nil {
				return domainerror.NewStorageError("unlink investment operation", err)
			}
			output.UnlinkedRecords = unlinked
		}
		return nil
	})
	if err != nil {
		return nil, domainerror.NewStorageError("delete transaction", err)
	}

	slog.Debug("Transaction deleted",
		"userID", input.UserID,
		"transactionID", input.TransactionID,
		"legs", len(output.DeletedIDs),
	)

	return output, nil
}
