// Package creditcard contains credit card, purchase and invoice use cases.
package creditcard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// MaxInstallments bounds the number of installments of a single purchase.
const MaxInstallments = 48

// CardOutput represents a credit card with its committed limit.
type CardOutput struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Name           string
	DueDay         int
	CardLimit      decimal.Decimal
	UsedLimit      decimal.Decimal
	AvailableLimit decimal.Decimal
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func toCardOutput(usage entity.CreditCardWithUsage) *CardOutput {
	return &CardOutput{
		ID:             usage.Card.ID,
		UserID:         usage.Card.UserID,
		Name:           usage.Card.Name,
		DueDay:         usage.Card.DueDay,
		CardLimit:      usage.Card.CardLimit,
		UsedLimit:      usage.UsedLimit,
		AvailableLimit: usage.AvailableLimit(),
		Active:         usage.Card.Active,
		CreatedAt:      usage.Card.CreatedAt,
		UpdatedAt:      usage.Card.UpdatedAt,
	}
}

// InstallmentOutput represents one installment of a purchase.
type InstallmentOutput struct {
	ID                uuid.UUID
	InstallmentNumber int
	Amount            decimal.Decimal
	DueDate           time.Time
	Paid              bool
	PaidTransactionID *uuid.UUID
}

// PurchaseOutput represents a purchase and its installment schedule.
type PurchaseOutput struct {
	ID            uuid.UUID
	CardID        uuid.UUID
	CategoryID    uuid.UUID
	Description   string
	TotalAmount   decimal.Decimal
	Installments  int
	PurchaseDate  time.Time
	FirstDueMonth time.Time
	PaidCount     int
	Schedule      []InstallmentOutput
	CreatedAt     time.Time
}

func toPurchaseOutput(purchase *entity.CreditCardPurchase, installments []*entity.Installment) *PurchaseOutput {
	output := &PurchaseOutput{
		ID:            purchase.ID,
		CardID:        purchase.CardID,
		CategoryID:    purchase.CategoryID,
		Description:   purchase.Description,
		TotalAmount:   purchase.TotalAmount,
		Installments:  purchase.Installments,
		PurchaseDate:  purchase.PurchaseDate,
		FirstDueMonth: purchase.FirstDueMonth,
		Schedule:      make([]InstallmentOutput, len(installments)),
		CreatedAt:     purchase.CreatedAt,
	}
	for i, inst := range installments {
		if inst.Paid {
			output.PaidCount++
		}
		output.Schedule[i] = InstallmentOutput{
			ID:                inst.ID,
			InstallmentNumber: inst.InstallmentNumber,
			Amount:            inst.Amount,
			DueDate:           inst.DueDate,
			Paid:              inst.Paid,
			PaidTransactionID: inst.PaidTransactionID,
		}
	}
	return output
}

// findCard loads a card owned by userID. When requireActive is set, a
// deactivated card is rejected.
func findCard(ctx context.Context, cardRepo adapter.CreditCardRepository, id, userID uuid.UUID, requireActive bool) (*entity.CreditCard, error) {
	card, err := cardRepo.FindByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCreditCardNotFound) {
			return nil, domainerror.NewCreditCardError(
				domainerror.ErrCodeCreditCardNotFound,
				"credit card not found",
				domainerror.ErrCreditCardNotFound,
			)
		}
		return nil, domainerror.NewStorageError("find credit card", fmt.Errorf("failed to find credit card: %w", err))
	}

	if requireActive && !card.Active {
		return nil, domainerror.NewCreditCardError(
			domainerror.ErrCodeCreditCardInactive,
			"credit card is inactive",
			domainerror.ErrCreditCardInactive,
		)
	}
	return card, nil
}

func withUsage(ctx context.Context, cardRepo adapter.CreditCardRepository, card *entity.CreditCard) (*CardOutput, error) {
	used, err := cardRepo.UsedLimit(ctx, card.ID)
	if err != nil {
		return nil, domainerror.NewStorageError("compute used limit", fmt.Errorf("failed to compute used limit: %w", err))
	}
	return toCardOutput(entity.CreditCardWithUsage{Card: card, UsedLimit: used}), nil
}

func validateDueDay(day int) error {
	if !entity.IsValidDueDay(day) {
		return domainerror.NewCreditCardError(
			domainerror.ErrCodeInvalidDueDay,
			"due day must be between 1 and 31",
			domainerror.ErrInvalidDueDay,
		)
	}
	return nil
}

func validateLimit(limit decimal.Decimal) error {
	if limit.IsNegative() {
		return domainerror.NewCreditCardError(
			domainerror.ErrCodeInvalidCardLimit,
			"card limit must not be negative",
			domainerror.ErrInvalidCardLimit,
		)
	}
	return nil
}

func parseMonth(month string) (time.Time, error) {
	parsed, err := entity.ParseMonth(month)
	if err != nil {
		return time.Time{}, domainerror.NewCreditCardError(
			domainerror.ErrCodeInvalidInvoiceMonth,
			"month must be in YYYY-MM format",
			err,
		)
	}
	return parsed, nil
}
