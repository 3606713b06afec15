package creditcard

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// CreateCardInput represents the input for card creation.
type CreateCardInput struct {
	UserID    uuid.UUID
	Name      string
	DueDay    int
	CardLimit decimal.Decimal
}

// CreateCardOutput represents the output of card creation.
type CreateCardOutput struct {
	Card *CardOutput
}

// CreateCardUseCase handles card creation logic.
type CreateCardUseCase struct {
	cardRepo adapter.CreditCardRepository
}

// NewCreateCardUseCase creates a new CreateCardUseCase instance.
func NewCreateCardUseCase(cardRepo adapter.CreditCardRepository) *CreateCardUseCase {
	return &CreateCardUseCase{
		cardRepo: cardRepo,
	}
}

// Execute performs the card creation.
func (uc *CreateCardUseCase) Execute(ctx context.Context, input CreateCardInput) (*CreateCardOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewCreditCardError(
			domainerror.ErrCodeMissingCreditCardFields,
			"card name is required",
			domainerror.ErrCreditCardNameRequired,
		)
	}
	if err := validateDueDay(input.DueDay); err != nil {
		return nil, err
	}
	if err := validateLimit(input.CardLimit); err != nil {
		return nil, err
	}

	card := entity.NewCreditCard(input.UserID, name, input.DueDay, input.CardLimit.Round(2))
	if err := uc.cardRepo.Create(ctx, card); err != nil {
		return nil, domainerror.NewStorageError("create credit card", fmt.Errorf("failed to create credit card: %w", err))
	}

	return &CreateCardOutput{
		Card: toCardOutput(entity.CreditCardWithUsage{Card: card, UsedLimit: decimal.Zero}),
	}, nil
}

// ListCardsInput represents the input for listing cards.
type ListCardsInput struct {
	UserID          uuid.UUID
	IncludeInactive bool
}

// ListCardsOutput represents the output of listing cards.
type ListCardsOutput struct {
	Cards []*CardOutput
}

// ListCardsUseCase lists cards with their used and available limit.
type ListCardsUseCase struct {
	cardRepo adapter.CreditCardRepository
}

// NewListCardsUseCase creates a new ListCardsUseCase instance.
func NewListCardsUseCase(cardRepo adapter.CreditCardRepository) *ListCardsUseCase {
	return &ListCardsUseCase{
		cardRepo: cardRepo,
	}
}

// Execute performs the card listing.
func (uc *ListCardsUseCase) Execute(ctx context.Context, input ListCardsInput) (*ListCardsOutput, error) {
	cards, err := uc.cardRepo.FindByUser(ctx, input.UserID, input.IncludeInactive)
	if err != nil {
		return nil, domainerror.NewStorageError("list credit cards", fmt.Errorf("failed to list credit cards: %w", err))
	}

	output := &ListCardsOutput{
		Cards: make([]*CardOutput, len(cards)),
	}
	for i, card := range cards {
		output.Cards[i], err = withUsage(ctx, uc.cardRepo, card)
		if err != nil {
			return nil, err
		}
	}
	return output, nil
}

// UpdateCardInput represents the input for card update.
type UpdateCardInput struct {
	CardID    uuid.UUID
	UserID    uuid.UUID
	Name      *string
	DueDay    *int
	CardLimit *decimal.Decimal
}

// UpdateCardOutput represents the output of card update.
type UpdateCardOutput struct {
	Card *CardOutput
}

// UpdateCardUseCase handles card update logic.
type UpdateCardUseCase struct {
	cardRepo adapter.CreditCardRepository
}

// NewUpdateCardUseCase creates a new UpdateCardUseCase instance.
func NewUpdateCardUseCase(cardRepo adapter.CreditCardRepository) *UpdateCardUseCase {
	return &UpdateCardUseCase{
		cardRepo: cardRepo,
	}
}

// Execute performs the card update. Existing installments keep their due
// dates when the due day changes.
func (uc *UpdateCardUseCase) Execute(ctx context.Context, input UpdateCardInput) (*UpdateCardOutput, error) {
	card, err := findCard(ctx, uc.cardRepo, input.CardID, input.UserID, false)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domainerror.NewCreditCardError(
				domainerror.ErrCodeMissingCreditCardFields,
				"card name is required",
				domainerror.ErrCreditCardNameRequired,
			)
		}
		card.Name = name
	}
	if input.DueDay != nil {
		if err := validateDueDay(*input.DueDay); err != nil {
			return nil, err
		}
		card.DueDay = *input.DueDay
	}
	if input.CardLimit != nil {
		if err := validateLimit(*input.CardLimit); err != nil {
			return nil, err
		}
		card.CardLimit = input.CardLimit.Round(2)
	}

	if err := uc.cardRepo.Update(ctx, card); err != nil {
		return nil, domainerror.NewStorageError("update credit card", fmt.Errorf("failed to update credit card: %w", err))
	}

	output, err := withUsage(ctx, uc.cardRepo, card)
	if err != nil {
		return nil, err
	}
	return &UpdateCardOutput{Card: output}, nil
}

// DeactivateCardInput represents the input for card deactivation.
type DeactivateCardInput struct {
	CardID uuid.UUID
	UserID uuid.UUID
}

// DeactivateCardOutput represents the output of card deactivation.
type DeactivateCardOutput struct {
	Success bool
}

// DeactivateCardUseCase stops a card from taking new purchases. Its
// purchases and invoices stay readable and payable.
type DeactivateCardUseCase struct {
	cardRepo adapter.CreditCardRepository
}

// NewDeactivateCardUseCase creates a new DeactivateCardUseCase instance.
func NewDeactivateCardUseCase(cardRepo adapter.CreditCardRepository) *DeactivateCardUseCase {
	return &DeactivateCardUseCase{
		cardRepo: cardRepo,
	}
}

// Execute performs the deactivation.
func (uc *DeactivateCardUseCase) Execute(ctx context.Context, input DeactivateCardInput) (*DeactivateCardOutput, error) {
	card, err := findCard(ctx, uc.cardRepo, input.CardID, input.UserID, false)
	if err != nil {
		return nil, err
	}
	if !card.Active {
		return &DeactivateCardOutput{Success: true}, nil
	}

	card.Active = false
	if err := uc.cardRepo.Update(ctx, card); err != nil {
		return nil, domainerror.NewStorageError("deactivate credit card", fmt.Errorf("failed to deactivate credit card: %w", err))
	}
	return &DeactivateCardOutput{Success: true}, nil
}
