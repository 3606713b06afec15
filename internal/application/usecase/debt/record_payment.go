package debt

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/usecase/ledger"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// RecordPaymentInput represents the input for recording a debt payment.
type RecordPaymentInput struct {
	DebtID      uuid.UUID
	UserID      uuid.UUID
	Date        *time.Time // Optional, defaults to today
	Amount      decimal.Decimal
	Principal   *decimal.Decimal
	Interest    *decimal.Decimal
	AccountID   *uuid.UUID // Optional, books a linked expense when set
	Description string
}

// RecordPaymentOutput represents the output of recording a debt payment.
type RecordPaymentOutput struct {
	Payment *PaymentOutput
	Debt    *DebtOutput
}

// RecordPaymentUseCase records a payment against a debt and amortizes its
// outstanding balance.
type RecordPaymentUseCase struct {
	transactor adapter.Transactor
	debtRepo   adapter.DebtRepository
	poster     *ledger.Poster
}

// NewRecordPaymentUseCase creates a new RecordPaymentUseCase instance.
func NewRecordPaymentUseCase(transactor adapter.Transactor, debtRepo adapter.DebtRepository, poster *ledger.Poster) *RecordPaymentUseCase {
	return &RecordPaymentUseCase{
		transactor: transactor,
		debtRepo:   debtRepo,
		poster:     poster,
	}
}

// Execute records the payment. The linked transaction, the payment row and
// the balance decrease are written in one unit of work.
func (uc *RecordPaymentUseCase) Execute(ctx context.Context, input RecordPaymentInput) (*RecordPaymentOutput, error) {
	if !input.Amount.IsPositive() {
		return nil, domainerror.NewDebtError(
			domainerror.ErrCodeInvalidPaymentAmount,
			"payment amount must be greater than zero",
			domainerror.ErrInvalidPaymentAmount,
		)
	}
	if !ledger.IsCents(input.Amount) {
		return nil, domainerror.NewDebtError(
			domainerror.ErrCodeInvalidPaymentAmount,
			"payment amount must have at most two decimal places",
			domainerror.ErrInvalidPaymentAmount,
		)
	}
	description := strings.TrimSpace(input.Description)
	if err := ledger.ValidateDescription(description); err != nil {
		return nil, err
	}

	today := uc.poster.Today()
	date := today
	if input.Date != nil {
		date = *input.Date
	}
	amount := input.Amount.Round(2)

	var output *RecordPaymentOutput
	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		debt, err := findDebt(ctx, uc.debtRepo.FindByIDForUpdate, input.DebtID, input.UserID)
		if err != nil {
			return err
		}

		principal, interest, err := SplitPayment(debt, amount, input.Principal, input.Interest)
		if err != nil {
			return err
		}

		var transactionID *uuid.UUID
		if input.AccountID != nil {
			txn, err := uc.bookTransaction(ctx, debt, *input.AccountID, amount, date, today, description)
			if err != nil {
				return err
			}
			transactionID = &txn.ID
		}

		payment := entity.NewDebtPayment(debt.ID, date, amount, principal, interest, transactionID)
		if err := uc.debtRepo.CreatePayment(ctx, payment); err != nil {
			return domainerror.NewStorageError("create debt payment", fmt.Errorf("failed to create debt payment: %w", err))
		}

		debt.ApplyPrincipal(principal)
		if err := uc.debtRepo.Update(ctx, debt); err != nil {
			return domainerror.NewStorageError("update debt balance", fmt.Errorf("failed to update debt balance: %w", err))
		}

		output = &RecordPaymentOutput{
			Payment: toPaymentOutput(payment),
			Debt:    toDebtOutput(debt),
		}
		return nil
	})
	if err != nil {
		return nil, domainerror.NewStorageError("record debt payment", err)
	}

	slog.Info("Debt payment recorded",
		"userID", input.UserID,
		"debtID", input.DebtID,
		"amount", output.Payment.Amount.StringFixed(2),
		"principal", output.Payment.PrincipalAmount.StringFixed(2),
		"interest", output.Payment.InterestAmount.StringFixed(2),
		"remaining", output.Debt.CurrentBalance.StringFixed(2),
	)

	return output, nil
}

func (uc *RecordPaymentUseCase) bookTransaction(
	ctx context.Context,
	debt *entity.Debt,
	accountID uuid.UUID,
	amount decimal.Decimal,
	date, today time.Time,
	description string,
) (*entity.Transaction, error) {
	account, err := uc.poster.RequireAccount(ctx, debt.UserID, accountID)
	if err != nil {
		return nil, err
	}
	categoryID, err := uc.poster.ResolveCategory(ctx, entity.SystemKeyDebtPayment, entity.CategoryTypeExpense)
	if err != nil {
		return nil, err
	}
	if description == "" {
		description = PaymentDescription(debt.Name)
	}

	txn := entity.NewTransaction(
		debt.UserID,
		account.ID,
		categoryID,
		entity.TransactionTypeExpense,
		amount,
		date,
		today,
		description,
		entity.TransactionSourceDebtPayment,
	)
	if err := uc.poster.Post(ctx, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

// SplitPayment divides amount into principal and interest.
//
// With no split given, interest is one month of simple interest on the
// current balance, capped at amount, and principal is the rest. With one part
// given, the other is the remainder. With both given they must sum to amount.
func SplitPayment(debt *entity.Debt, amount decimal.Decimal, principal, interest *decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	var p, i decimal.Decimal
	switch {
	case principal == nil && interest == nil:
		i = decimal.Min(debt.EstimatedInterest(), amount)
		p = amount.Sub(i)
	case principal != nil && interest == nil:
		p = principal.Round(2)
		i = amount.Sub(p)
	case principal == nil && interest != nil:
		i = interest.Round(2)
		p = amount.Sub(i)
	default:
		p, i = principal.Round(2), interest.Round(2)
		if !p.Add(i).Equal(amount) {
			return decimal.Zero, decimal.Zero, domainerror.NewDebtError(
				domainerror.ErrCodePaymentSplitMismatch,
				fmt.Sprintf("principal %s plus interest %s must equal %s", p.StringFixed(2), i.StringFixed(2), amount.StringFixed(2)),
				domainerror.ErrPaymentSplitMismatch,
			)
		}
	}

	if p.IsNegative() || i.IsNegative() {
		return decimal.Zero, decimal.Zero, domainerror.NewDebtError(
			domainerror.ErrCodeInvalidPaymentAmount,
			"principal and interest must not be negative",
			domainerror.ErrInvalidPaymentAmount,
		)
	}
	return p, i, nil
}

// PaymentDescription is the default description of a linked debt payment.
func PaymentDescription(debtName string) string {
	return "Pagamento Dívida - " + debtName
}
