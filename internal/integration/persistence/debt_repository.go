// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/persistence/model"
)

// debtRepository implements the adapter.DebtRepository interface.
type debtRepository struct {
	db *gorm.DB
}

// NewDebtRepository creates a new debt repository instance.
func NewDebtRepository(db *gorm.DB) adapter.DebtRepository {
	return &debtRepository{
		db: db,
	}
}

// Create creates a new debt in the database.
func (r *debtRepository) Create(ctx context.Context, debt *entity.Debt) error {
	result := conn(ctx, r.db).Create(model.DebtFromEntity(debt))
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a debt owned by userID.
func (r *debtRepository) FindByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*entity.Debt, error) {
	return r.findByID(conn(ctx, r.db), id, userID)
}

// FindByIDForUpdate retrieves a debt and locks its row.
func (r *debtRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*entity.Debt, error) {
	return r.findByID(forUpdate(conn(ctx, r.db)), id, userID)
}

func (r *debtRepository) findByID(db *gorm.DB, id uuid.UUID, userID uuid.UUID) (*entity.Debt, error) {
	var debtModel model.DebtModel
	result := db.Where("id = ? AND user_id = ?", id, userID).First(&debtModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrDebtNotFound
		}
		return nil, result.Error
	}
	return debtModel.ToEntity(), nil
}

// FindByUser retrieves every debt of a user ordered by name.
func (r *debtRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Debt, error) {
	var debtModels []model.DebtModel
	result := conn(ctx, r.db).
		Where("user_id = ?", userID).
		Order("name ASC, created_at ASC").
		Find(&debtModels)
	if result.Error != nil {
		return nil, result.Error
	}

	debts := make([]*entity.Debt, len(debtModels))
	for i := range debtModels {
		debts[i] = debtModels[i].ToEntity()
	}
	return debts, nil
}

// Update updates an existing debt in the database.
func (r *debtRepository) Update(ctx context.Context, debt *entity.Debt) error {
	result := conn(ctx, r.db).Save(model.DebtFromEntity(debt))
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete removes a debt and its payments.
func (r *debtRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := conn(ctx, r.db)

	if err := db.Where("debt_id = ?", id).Delete(&model.DebtPaymentModel{}).Error; err != nil {
		return err
	}

	result := db.Delete(&model.DebtModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrDebtNotFound
	}
	return nil
}

// CreatePayment stores a payment row.
func (r *debtRepository) CreatePayment(ctx context.Context, payment *entity.DebtPayment) error {
	result := conn(ctx, r.db).Create(model.DebtPaymentFromEntity(payment))
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// UnlinkTransaction clears transaction_id on payments booked by transactionID.
func (r *debtRepository) UnlinkTransaction(ctx context.Context, transactionID uuid.UUID) (int64, error) {
	result := conn(ctx, r.db).
		Model(&model.DebtPaymentModel{}).
		Where("transaction_id = ?", transactionID).
		Update("transaction_id", nil)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// FindPayments retrieves the payments of a debt, newest first.
func (r *debtRepository) FindPayments(ctx context.Context, debtID uuid.UUID) ([]*entity.DebtPayment, error) {
	var paymentModels []model.DebtPaymentModel
	result := conn(ctx, r.db).
		Where("debt_id = ?", debtID).
		Order("payment_date DESC, created_at DESC").
		Find(&paymentModels)
	if result.Error != nil {
		return nil, result.Error
	}

	payments := make([]*entity.DebtPayment, len(paymentModels))
	for i := range paymentModels {
		payments[i] = paymentModels[i].ToEntity()
	}
	return payments, nil
}

// CountPayments returns how many payments a debt has.
func (r *debtRepository) CountPayments(ctx context.Context, debtID uuid.UUID) (int, error) {
	var count int64
	result := conn(ctx, r.db).
		Model(&model.DebtPaymentModel{}).
		Where("debt_id = ?", debtID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return int(count), nil
}

// SumOutstanding sums the current balance of every debt of a user.
func (r *debtRepository) SumOutstanding(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	result := conn(ctx, r.db).
		Model(&model.DebtModel{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(current_balance), 0) AS total").
		Scan(&row)
	if result.Error != nil {
		return decimal.Zero, result.Error
	}
	return row.Total.Round(2), nil
}
