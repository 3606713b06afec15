// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/persistence/model"
)

// creditCardRepository implements the adapter.CreditCardRepository interface.
type creditCardRepository struct {
	db *gorm.DB
}

// NewCreditCardRepository creates a new credit card repository instance.
func NewCreditCardRepository(db *gorm.DB) adapter.CreditCardRepository {
	return &creditCardRepository{
		db: db,
	}
}

// Create creates a new credit card in the database.
func (r *creditCardRepository) Create(ctx context.Context, card *entity.CreditCard) error {
	cardModel := model.CreditCardFromEntity(card)
	result := conn(ctx, r.db).Create(cardModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a card owned by userID.
func (r *creditCardRepository) FindByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*entity.CreditCard, error) {
	var cardModel model.CreditCardModel
	result := conn(ctx, r.db).Where("id = ? AND user_id = ?", id, userID).First(&cardModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCreditCardNotFound
		}
		return nil, result.Error
	}
	return cardModel.ToEntity(), nil
}

// FindByUser retrieves the cards of a user ordered by name.
func (r *creditCardRepository) FindByUser(ctx context.Context, userID uuid.UUID, includeInactive bool) ([]*entity.CreditCard, error) {
	query := conn(ctx, r.db).Where("user_id = ?", userID)
	if !includeInactive {
		query = query.Where("active = ?", true)
	}

	var cardModels []model.CreditCardModel
	result := query.Order("name ASC, created_at ASC").Find(&cardModels)
	if result.Error != nil {
		return nil, result.Error
	}

	cards := make([]*entity.CreditCard, len(cardModels))
	for i := range cardModels {
		cards[i] = cardModels[i].ToEntity()
	}
	return cards, nil
}

// Update updates name, due day, limit and active flag.
func (r *creditCardRepository) Update(ctx context.Context, card *entity.CreditCard) error {
	result := conn(ctx, r.db).
		Model(&model.CreditCardModel{}).
		Where("id = ? AND user_id = ?", card.ID, card.UserID).
		Updates(map[string]interface{}{
			"name":       card.Name,
			"due_day":    card.DueDay,
			"card_limit": card.CardLimit,
			"active":     card.Active,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrCreditCardNotFound
	}
	return nil
}

// UsedLimit returns the sum of unpaid installments of a card.
func (r *creditCardRepository) UsedLimit(ctx context.Context, cardID uuid.UUID) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	result := conn(ctx, r.db).
		Model(&model.InstallmentModel{}).
		Joins("JOIN credit_card_purchases ON credit_card_purchases.id = installments.purchase_id").
		Where("credit_card_purchases.credit_card_id = ? AND installments.paid = ?", cardID, false).
		Select("COALESCE(SUM(installments.amount), 0) AS total").
		Scan(&row)
	if result.Error != nil {
		return decimal.Zero, result.Error
	}
	return row.Total.Round(2), nil
}

// CreatePurchase stores a purchase together with its installments.
func (r *creditCardRepository) CreatePurchase(ctx context.Context, purchase *entity.CreditCardPurchase, installments []*entity.Installment) error {
	db := conn(ctx, r.db)

	if err := db.Create(model.CreditCardPurchaseFromEntity(purchase)).Error; err != nil {
		return err
	}

	installmentModels := make([]*model.InstallmentModel, len(installments))
	for i, inst := range installments {
		installmentModels[i] = model.InstallmentFromEntity(inst)
	}
	if len(installmentModels) == 0 {
		return nil
	}
	return db.Create(&installmentModels).Error
}

// FindPurchaseByID retrieves a purchase of a card with its installments.
func (r *creditCardRepository) FindPurchaseByID(ctx context.Context, id uuid.UUID, cardID uuid.UUID) (*entity.PurchaseWithInstallments, error) {
	var purchaseModel model.CreditCardPurchaseModel
	result := conn(ctx, r.db).
		Preload("InstallmentRows", orderByInstallmentNumber).
		Where("id = ? AND credit_card_id = ?", id, cardID).
		First(&purchaseModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrPurchaseNotFound
		}
		return nil, result.Error
	}
	return purchaseModel.ToEntityWithInstallments(), nil
}

// FindPurchasesByCard retrieves every purchase of a card, newest first.
func (r *creditCardRepository) FindPurchasesByCard(ctx context.Context, cardID uuid.UUID) ([]*entity.PurchaseWithInstallments, error) {
	var purchaseModels []model.CreditCardPurchaseModel
	result := conn(ctx, r.db).
		Preload("InstallmentRows", orderByInstallmentNumber).
		Where("credit_card_id = ?", cardID).
		Order("purchase_date DESC, created_at DESC").
		Find(&purchaseModels)
	if result.Error != nil {
		return nil, result.Error
	}

	purchases := make([]*entity.PurchaseWithInstallments, len(purchaseModels))
	for i := range purchaseModels {
		purchases[i] = purchaseModels[i].ToEntityWithInstallments()
	}
	return purchases, nil
}

// DeletePurchase removes a purchase and its installments.
func (r *creditCardRepository) DeletePurchase(ctx context.Context, id uuid.UUID) error {
	db := conn(ctx, r.db)

	if err := db.Where("purchase_id = ?", id).Delete(&model.InstallmentModel{}).Error; err != nil {
		return err
	}

	result := db.Delete(&model.CreditCardPurchaseModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrPurchaseNotFound
	}
	return nil
}

// FindUnpaidInstallments returns the unpaid installments of a card due within [start, end].
func (r *creditCardRepository) FindUnpaidInstallments(ctx context.Context, cardID uuid.UUID, start, end time.Time) ([]entity.InvoiceLine, error) {
	var installmentModels []model.InstallmentModel
	result := conn(ctx, r.db).
		Preload("Purchase").
		Where("purchase_id IN (SELECT id FROM credit_card_purchases WHERE credit_card_id = ?)", cardID).
		Where("paid = ?", false).
		Where("due_date >= ? AND due_date <= ?", entity.DateOf(start), entity.DateOf(end)).
		Order("due_date ASC, created_at ASC, installment_number ASC").
		Find(&installmentModels)
	if result.Error != nil {
		return nil, result.Error
	}

	lines := make([]entity.InvoiceLine, 0, len(installmentModels))
	for i := range installmentModels {
		im := &installmentModels[i]
		if im.Purchase == nil {
			continue
		}
		lines = append(lines, entity.InvoiceLine{
			Installment: im.ToEntity(),
			Purchase:    im.Purchase.ToEntity(),
		})
	}
	return lines, nil
}

// MarkInstallmentsPaid flags the still unpaid installments among ids as paid.
func (r *creditCardRepository) MarkInstallmentsPaid(ctx context.Context, ids []uuid.UUID, transactionID uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	result := conn(ctx, r.db).
		Model(&model.InstallmentModel{}).
		Where("id IN ? AND paid = ?", ids, false).
		Updates(map[string]interface{}{
			"paid":                true,
			"paid_transaction_id": transactionID,
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// ReleaseInstallments marks every installment settled by transactionID as unpaid again.
func (r *creditCardRepository) ReleaseInstallments(ctx context.Context, transactionID uuid.UUID) (int64, error) {
	result := conn(ctx, r.db).
		Model(&model.InstallmentModel{}).
		Where("paid_transaction_id = ?", transactionID).
		Updates(map[string]interface{}{
			"paid":                false,
			"paid_transaction_id": nil,
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// SumUnpaidDue sums unpaid installments due within [start, end] across the
// active cards of a user.
func (r *creditCardRepository) SumUnpaidDue(ctx context.Context, userID uuid.UUID, start, end time.Time) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	result := conn(ctx, r.db).
		Model(&model.InstallmentModel{}).
		Joins("JOIN credit_card_purchases ON credit_card_purchases.id = installments.purchase_id").
		Joins("JOIN credit_cards ON credit_cards.id = credit_card_purchases.credit_card_id").
		Where("credit_cards.user_id = ? AND credit_cards.active = ?", userID, true).
		Where("installments.paid = ?", false).
		Where("installments.due_date >= ? AND installments.due_date <= ?", entity.DateOf(start), entity.DateOf(end)).
		Select("COALESCE(SUM(installments.amount), 0) AS total").
		Scan(&row)
	if result.Error != nil {
		return decimal.Zero, result.Error
	}
	return row.Total.Round(2), nil
}

func orderByInstallmentNumber(db *gorm.DB) *gorm.DB {
	return db.Order("installment_number ASC")
}
