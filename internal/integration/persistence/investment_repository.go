// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/persistence/model"
)

// investmentRepository implements the adapter.InvestmentRepository interface.
type investmentRepository struct {
	db *gorm.DB
}

// NewInvestmentRepository creates a new investment repository instance.
func NewInvestmentRepository(db *gorm.DB) adapter.InvestmentRepository {
	return &investmentRepository{
		db: db,
	}
}

// Create creates a new investment in the database.
func (r *investmentRepository) Create(ctx context.Context, investment *entity.Investment) error {
	result := conn(ctx, r.db).Create(model.InvestmentFromEntity(investment))
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves an investment owned by userID.
func (r *investmentRepository) FindByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*entity.Investment, error) {
	return r.findByID(conn(ctx, r.db), id, userID)
}

// FindByIDForUpdate retrieves an investment and locks its row.
func (r *investmentRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*entity.Investment, error) {
	return r.findByID(forUpdate(conn(ctx, r.db)), id, userID)
}

func (r *investmentRepository) findByID(db *gorm.DB, id uuid.UUID, userID uuid.UUID) (*entity.Investment, error) {
	var investmentModel model.InvestmentModel
	result := db.Where("id = ? AND user_id = ?", id, userID).First(&investmentModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrInvestmentNotFound
		}
		return nil, result.Error
	}
	return investmentModel.ToEntity(), nil
}

// FindByUser retrieves every investment of a user ordered by name.
func (r *investmentRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Investment, error) {
	var investmentModels []model.InvestmentModel
	result := conn(ctx, r.db).
		Where("user_id = ?", userID).
		Order("name ASC, created_at ASC").
		Find(&investmentModels)
	if result.Error != nil {
		return nil, result.Error
	}

	investments := make([]*entity.Investment, len(investmentModels))
	for i := range investmentModels {
		investments[i] = investmentModels[i].ToEntity()
	}
	return investments, nil
}

// Update persists the position and its descriptive fields.
func (r *investmentRepository) Update(ctx context.Context, investment *entity.Investment) error {
	result := conn(ctx, r.db).Save(model.InvestmentFromEntity(investment))
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete removes an investment and its operations.
func (r *investmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := conn(ctx, r.db)

	if err := db.Where("investment_id = ?", id).Delete(&model.InvestmentOperationModel{}).Error; err != nil {
		return err
	}

	result := db.Delete(&model.InvestmentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrInvestmentNotFound
	}
	return nil
}

// CreateOperation stores an operation audit row.
func (r *investmentRepository) CreateOperation(ctx context.Context, operation *entity.InvestmentOperation) error {
	result := conn(ctx, r.db).Create(model.InvestmentOperationFromEntity(operation))
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// UnlinkTransaction clears transaction_id on operations whose cash leg was transactionID.
func (r *investmentRepository) UnlinkTransaction(ctx context.Context, transactionID uuid.UUID) (int64, error) {
	result := conn(ctx, r.db).
		Model(&model.InvestmentOperationModel{}).
		Where("transaction_id = ?", transactionID).
		Update("transaction_id", nil)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// FindOperations retrieves the operations of an investment, newest first.
func (r *investmentRepository) FindOperations(ctx context.Context, investmentID uuid.UUID) ([]*entity.InvestmentOperation, error) {
	var operationModels []model.InvestmentOperationModel
	result := conn(ctx, r.db).
		Where("investment_id = ?", investmentID).
		Order("operation_date DESC, created_at DESC").
		Find(&operationModels)
	if result.Error != nil {
		return nil, result.Error
	}

	operations := make([]*entity.InvestmentOperation, len(operationModels))
	for i := range operationModels {
		operations[i] = operationModels[i].ToEntity()
	}
	return operations, nil
}
