package investment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/usecase/ledger"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// RecordOperationInput represents the input for recording an operation.
type RecordOperationInput struct {
	InvestmentID uuid.UUID
	UserID       uuid.UUID
	Type         entity.OperationType
	Date         *time.Time // Optional, defaults to today
	Quantity     decimal.Decimal
	Price        decimal.Decimal
	Fees         decimal.Decimal
	AccountID    *uuid.UUID // Optional, books the cash leg when set
}

// RecordOperationOutput represents the output of recording an operation.
type RecordOperationOutput struct {
	Operation  *OperationOutput
	Investment *InvestmentOutput
}

// RecordOperationUseCase applies a buy, sell, dividend or interest operation
// to a position.
type RecordOperationUseCase struct {
	transactor     adapter.Transactor
	investmentRepo adapter.InvestmentRepository
	poster         *ledger.Poster
}

// NewRecordOperationUseCase creates a new RecordOperationUseCase instance.
func NewRecordOperationUseCase(transactor adapter.Transactor, investmentRepo adapter.InvestmentRepository, poster *ledger.Poster) *RecordOperationUseCase {
	return &RecordOperationUseCase{
		transactor:     transactor,
		investmentRepo: investmentRepo,
		poster:         poster,
	}
}

// Execute records the operation. The linked transaction, the audit row and
// the recomputed position are written in one unit of work.
func (uc *RecordOperationUseCase) Execute(ctx context.Context, input RecordOperationInput) (*RecordOperationOutput, error) {
	if !entity.IsValidOperationType(input.Type) {
		return nil, domainerror.NewInvestmentError(
			domainerror.ErrCodeInvalidOperationType,
			"type must be one of buy, sell, dividend or interest",
			domainerror.ErrInvalidOperationType,
		)
	}
	if !input.Quantity.IsPositive() || !input.Price.IsPositive() {
		return nil, invalidValues("quantity and price must be greater than zero")
	}
	if input.Fees.IsNegative() {
		return nil, invalidValues("fees must not be negative")
	}

	today := uc.poster.Today()
	date := today
	if input.Date != nil {
		date = *input.Date
	}

	op := entity.NewInvestmentOperation(input.InvestmentID, input.Type, date, input.Quantity, input.Price, input.Fees)
	if !op.TotalAmount.IsPositive() {
		return nil, invalidValues("fees must be lower than the operation value")
	}

	var output *RecordOperationOutput
	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		inv, err := findInvestment(ctx, uc.investmentRepo.FindByIDForUpdate, input.InvestmentID, input.UserID)
		if err != nil {
			return err
		}

		if op.Type == entity.OperationTypeSell && op.Quantity.GreaterThan(inv.Quantity) {
			return domainerror.NewInvestmentError(
				domainerror.ErrCodeInsufficientQuantity,
				fmt.Sprintf("cannot sell %s, position holds %s", op.Quantity.String(), inv.Quantity.String()),
				domainerror.ErrInsufficientQuantity,
			)
		}

		if input.AccountID != nil {
			txn, err := uc.bookTransaction(ctx, inv, op, *input.AccountID, today)
			if err != nil {
				return err
			}
			op.TransactionID = &txn.ID
		}

		realized := inv.Apply(op)
		if op.Type == entity.OperationTypeSell {
			gain := realized.Round(2)
			op.RealizedGain = &gain
		}

		if err := uc.investmentRepo.CreateOperation(ctx, op); err != nil {
			return domainerror.NewStorageError("create investment operation", fmt.Errorf("failed to create operation: %w", err))
		}
		if err := uc.investmentRepo.Update(ctx, inv); err != nil {
			return domainerror.NewStorageError("update investment position", fmt.Errorf("failed to update position: %w", err))
		}

		output = &RecordOperationOutput{
			Operation:  toOperationOutput(op),
			Investment: toInvestmentOutput(inv),
		}
		return nil
	})
	if err != nil {
		return nil, domainerror.NewStorageError("record investment operation", err)
	}

	slog.Info("Investment operation recorded",
		"userID", input.UserID,
		"investmentID", input.InvestmentID,
		"type", input.Type,
		"amount", output.Operation.TotalAmount.StringFixed(2),
		"quantity", output.Investment.Quantity.String(),
	)

	return output, nil
}

func (uc *RecordOperationUseCase) bookTransaction(
	ctx context.Context,
	inv *entity.Investment,
	op *entity.InvestmentOperation,
	accountID uuid.UUID,
	today time.Time,
) (*entity.Transaction, error) {
	account, err := uc.poster.RequireAccount(ctx, inv.UserID, accountID)
	if err != nil {
		return nil, err
	}

	direction := op.Type.CashDirection()
	categoryID, err := uc.poster.ResolveCategory(ctx, op.Type.SystemCategory(), entity.CategoryType(direction))
	if err != nil {
		return nil, err
	}

	txn := entity.NewTransaction(
		inv.UserID,
		account.ID,
		categoryID,
		direction,
		op.TotalAmount,
		op.Date,
		today,
		OperationDescription(op.Type, inv.Label()),
		entity.TransactionSourceInvestment,
	)
	if err := uc.poster.Post(ctx, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

// OperationDescription is the description of the cash leg of an operation,
// e.g. "Compra - PETR4".
func OperationDescription(t entity.OperationType, label string) string {
	switch t {
	case entity.OperationTypeBuy:
		return "Compra - " + label
	case entity.OperationTypeSell:
		return "Venda - " + label
	default:
		return "Proventos - " + label
	}
}
