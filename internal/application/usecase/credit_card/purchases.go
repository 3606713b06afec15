package creditcard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// ListPurchasesInput represents the input for listing purchases of a card.
type ListPurchasesInput struct {
	CardID uuid.UUID
	UserID uuid.UUID
}

// ListPurchasesOutput represents the purchases of a card.
type ListPurchasesOutput struct {
	Purchases []*PurchaseOutput
}

// ListPurchasesUseCase lists the purchases of a card with their schedules.
type ListPurchasesUseCase struct {
	cardRepo adapter.CreditCardRepository
}

// NewListPurchasesUseCase creates a new ListPurchasesUseCase instance.
func NewListPurchasesUseCase(cardRepo adapter.CreditCardRepository) *ListPurchasesUseCase {
	return &ListPurchasesUseCase{
		cardRepo: cardRepo,
	}
}

// Execute performs the listing, newest purchase first.
func (uc *ListPurchasesUseCase) Execute(ctx context.Context, input ListPurchasesInput) (*ListPurchasesOutput, error) {
	card, err := findCard(ctx, uc.cardRepo, input.CardID, input.UserID, false)
	if err != nil {
		return nil, err
	}

	purchases, err := uc.cardRepo.FindPurchasesByCard(ctx, card.ID)
	if err != nil {
		return nil, domainerror.NewStorageError("list purchases", fmt.Errorf("failed to list purchases: %w", err))
	}

	output := &ListPurchasesOutput{
		Purchases: make([]*PurchaseOutput, len(purchases)),
	}
	for i, p := range purchases {
		output.Purchases[i] = toPurchaseOutput(p.Purchase, p.Installments)
	}
	return output, nil
}

// DeletePurchaseInput represents the input for purchase deletion.
type DeletePurchaseInput struct {
	CardID     uuid.UUID
	PurchaseID uuid.UUID
	UserID     uuid.UUID
}

// DeletePurchaseOutput represents the output of purchase deletion.
type DeletePurchaseOutput struct {
	Success bool
}

// DeletePurchaseUseCase removes a purchase whose installments are all unpaid.
type DeletePurchaseUseCase struct {
	transactor adapter.Transactor
	cardRepo   adapter.CreditCardRepository
}

// NewDeletePurchaseUseCase creates a new DeletePurchaseUseCase instance.
func NewDeletePurchaseUseCase(transactor adapter.Transactor, cardRepo adapter.CreditCardRepository) *DeletePurchaseUseCase {
	return &DeletePurchaseUseCase{
		transactor: transactor,
		cardRepo:   cardRepo,
	}
}

// Execute performs the deletion.
func (uc *DeletePurchaseUseCase) Execute(ctx context.Context, input DeletePurchaseInput) (*DeletePurchaseOutput, error) {
	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		card, err := findCard(ctx, uc.cardRepo, input.CardID, input.UserID, false)
		if err != nil {
			return err
		}

		purchase, err := uc.cardRepo.FindPurchaseByID(ctx, input.PurchaseID, card.ID)
		if err != nil {
			if errors.Is(err, domainerror.ErrPurchaseNotFound) {
				return domainerror.NewCreditCardError(
					domainerror.ErrCodePurchaseNotFound,
					"purchase not found",
					domainerror.ErrPurchaseNotFound,
				)
			}
			return domainerror.NewStorageError("find purchase", fmt.Errorf("failed to find purchase: %w", err))
		}

		if purchase.PaidCount() > 0 {
			return domainerror.NewCreditCardError(
				domainerror.ErrCodePurchaseHasPaidInstallments,
				"cannot delete a purchase with paid installments",
				domainerror.ErrPurchaseHasPaidInstallments,
			)
		}

		if err := uc.cardRepo.DeletePurchase(ctx, purchase.Purchase.ID); err != nil {
			return domainerror.NewStorageError("delete purchase", fmt.Errorf("failed to delete purchase: %w", err))
		}
		return nil
	})
	if err != nil {
		return nil, domainerror.NewStorageError("delete purchase", err)
	}

	slog.Debug("Credit card purchase deleted",
		"userID", input.UserID,
		"cardID", input.CardID,
		"purchaseID", input.PurchaseID,
	)

	return &DeletePurchaseOutput{Success: true}, nil
}
