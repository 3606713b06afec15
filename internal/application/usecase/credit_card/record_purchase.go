package creditcard

import (
	"context"
	"errors"
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

// RecordPurchaseInput represents the input for recording a card purchase.
type RecordPurchaseInput struct {
	CardID        uuid.UUID
	UserID        uuid.UUID
	CategoryID    uuid.UUID
	Description   string
	TotalAmount   decimal.Decimal
	Installments  int
	PurchaseDate  *time.Time // Optional, defaults to today
	FirstDueMonth string     // Optional YYYY-MM, defaults to the current month
}

// RecordPurchaseOutput represents the output of recording a purchase.
type RecordPurchaseOutput struct {
	Purchase *PurchaseOutput
}

// RecordPurchaseUseCase splits a purchase into installments on a card.
// Recording a purchase never touches an account balance.
type RecordPurchaseUseCase struct {
	transactor   adapter.Transactor
	cardRepo     adapter.CreditCardRepository
	categoryRepo adapter.CategoryRepository
	poster       *ledger.Poster
	currency     string
}

// NewRecordPurchaseUseCase creates a new RecordPurchaseUseCase instance.
func NewRecordPurchaseUseCase(
	transactor adapter.Transactor,
	cardRepo adapter.CreditCardRepository,
	categoryRepo adapter.CategoryRepository,
	poster *ledger.Poster,
	currency string,
) *RecordPurchaseUseCase {
	return &RecordPurchaseUseCase{
		transactor:   transactor,
		cardRepo:     cardRepo,
		categoryRepo: categoryRepo,
		poster:       poster,
		currency:     currency,
	}
}

// Execute records the purchase and its full installment schedule.
func (uc *RecordPurchaseUseCase) Execute(ctx context.Context, input RecordPurchaseInput) (*RecordPurchaseOutput, error) {
	if !input.TotalAmount.IsPositive() {
		return nil, domainerror.NewCreditCardError(
			domainerror.ErrCodeInvalidPurchaseAmount,
			"purchase amount must be greater than zero",
			domainerror.ErrInvalidPurchaseAmount,
		)
	}
	if !ledger.IsCents(input.TotalAmount) {
		return nil, domainerror.NewCreditCardError(
			domainerror.ErrCodeInvalidPurchaseAmount,
			"purchase amount must have at most two decimal places",
			domainerror.ErrInvalidPurchaseAmount,
		)
	}
	if input.Installments < 1 || input.Installments > MaxInstallments {
		return nil, domainerror.NewCreditCardError(
			domainerror.ErrCodeInvalidInstallments,
			fmt.Sprintf("installments must be between 1 and %d", MaxInstallments),
			domainerror.ErrInvalidInstallments,
		)
	}

	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, domainerror.NewCreditCardError(
			domainerror.ErrCodeMissingCreditCardFields,
			"description is required",
			domainerror.ErrPurchaseDescriptionRequired,
		)
	}
	if err := ledger.ValidateDescription(description); err != nil {
		return nil, err
	}

	today := uc.poster.Today()
	purchaseDate := today
	if input.PurchaseDate != nil {
		purchaseDate = *input.PurchaseDate
	}
	firstDue := today
	if input.FirstDueMonth != "" {
		parsed, err := parseMonth(input.FirstDueMonth)
		if err != nil {
			return nil, err
		}
		firstDue = parsed
	}

	var output *RecordPurchaseOutput
	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		card, err := findCard(ctx, uc.cardRepo, input.CardID, input.UserID, true)
		if err != nil {
			return err
		}
		if err := uc.requireExpenseCategory(ctx, input.CategoryID); err != nil {
			return err
		}

		purchase := entity.NewCreditCardPurchase(
			card.ID,
			input.CategoryID,
			description,
			input.TotalAmount.Round(2),
			input.Installments,
			purchaseDate,
			firstDue,
		)
		installments, err := purchase.BuildInstallments(uc.currency)
		if err != nil {
			return domainerror.NewCreditCardError(
				domainerror.ErrCodeInvalidInstallments,
				"failed to build installment schedule",
				err,
			)
		}

		if err := uc.cardRepo.CreatePurchase(ctx, purchase, installments); err != nil {
			return domainerror.NewStorageError("create purchase", fmt.Errorf("failed to create purchase: %w", err))
		}

		output = &RecordPurchaseOutput{Purchase: toPurchaseOutput(purchase, installments)}
		return nil
	})
	if err != nil {
		return nil, domainerror.NewStorageError("record purchase", err)
	}

	slog.Info("Credit card purchase recorded",
		"userID", input.UserID,
		"cardID", input.CardID,
		"purchaseID", output.Purchase.ID,
		"total", output.Purchase.TotalAmount.StringFixed(2),
		"installments", output.Purchase.Installments,
	)

	return output, nil
}

func (uc *RecordPurchaseUseCase) requireExpenseCategory(ctx context.Context, categoryID uuid.UUID) error {
	category, err := uc.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return domainerror.NewCreditCardError(
				domainerror.ErrCodeCardCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFound,
			)
		}
		return domainerror.NewStorageError("find category", fmt.Errorf("failed to find category: %w", err))
	}
	if category.Type != entity.CategoryTypeExpense {
		return domainerror.NewCreditCardError(
			domainerror.ErrCodeCardCategoryMismatch,
			"purchase category must be an expense category",
			domainerror.ErrCategoryTypeMismatch,
		)
	}
	return nil
}
