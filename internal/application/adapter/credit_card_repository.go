// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// CreditCardRepository defines the interface for cards, purchases and installments.
type CreditCardRepository interface {
	// Create creates a new credit card in the database.
	Create(ctx context.Context, card *entity.CreditCard) error

	// FindByID retrieves a card owned by userID.
	FindByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*entity.CreditCard, error)

	// FindByUser retrieves the cards of a user, optionally including inactive ones.
	FindByUser(ctx context.Context, userID uuid.UUID, includeInactive bool) ([]*entity.CreditCard, error)

	// Update updates name, due day, limit and active flag.
	Update(ctx context.Context, card *entity.CreditCard) error

	// UsedLimit returns the sum of unpaid installments of a card.
	UsedLimit(ctx context.Context, cardID uuid.UUID) (decimal.Decimal, error)

	// CreatePurchase stores a purchase together with its installments.
	CreatePurchase(ctx context.Context, purchase *entity.CreditCardPurchase, installments []*entity.Installment) error

	// FindPurchaseByID retrieves a purchase of a card with its installments.
	FindPurchaseByID(ctx context.Context, id uuid.UUID, cardID uuid.UUID) (*entity.PurchaseWithInstallments, error)

	// FindPurchasesByCard retrieves every purchase of a card with installments,
	// newest first.
	FindPurchasesByCard(ctx context.Context, cardID uuid.UUID) ([]*entity.PurchaseWithInstallments, error)

	// DeletePurchase removes a purchase and its installments.
	DeletePurchase(ctx context.Context, id uuid.UUID) error

	// FindUnpaidInstallments returns the unpaid installments of a card due
	// within [start, end], with their purchases.
	FindUnpaidInstallments(ctx context.Context, cardID uuid.UUID, start, end time.Time) ([]entity.InvoiceLine, error)

	// MarkInstallmentsPaid flags the given installments as paid by transactionID.
	// Only rows still unpaid are touched; the number of updated rows is returned.
	MarkInstallmentsPaid(ctx context.Context, ids []uuid.UUID, transactionID uuid.UUID) (int64, error)

	// ReleaseInstallments marks every installment settled by transactionID as unpaid again.
	ReleaseInstallments(ctx context.Context, transactionID uuid.UUID) (int64, error)

	// SumUnpaidDue sums unpaid installments due within [start, end] across all
	// active cards of a user.
	SumUnpaidDue(ctx context.Context, userID uuid.UUID, start, end time.Time) (decimal.Decimal, error)
}
