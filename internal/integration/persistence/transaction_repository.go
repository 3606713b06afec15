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

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// Create creates a new transaction in the database.
func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(transaction)
	result := conn(ctx, r.db).Create(transactionModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a transaction owned by userID.
func (r *transactionRepository) FindByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := conn(ctx, r.db).Where("id = ? AND user_id = ?", id, userID).First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

// FindByTransferID retrieves both legs of a transfer, expense leg first.
func (r *transactionRepository) FindByTransferID(ctx context.Context, transferID uuid.UUID, userID uuid.UUID) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	result := conn(ctx, r.db).
		Where("transfer_id = ? AND user_id = ?", transferID, userID).
		Order("type ASC").
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return transactionsToEntities(transactionModels), nil
}

// FindByFilter retrieves transactions based on filter criteria with pagination.
func (r *transactionRepository) FindByFilter(ctx context.Context, filter adapter.TransactionFilter, pagination adapter.TransactionPagination) (*adapter.TransactionListResult, error) {
	query := applyTransactionFilter(conn(ctx, r.db).Model(&model.TransactionModel{}), filter)

	// Get total count
	var total int64
	countQuery := query.Session(&gorm.Session{})
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	// Calculate pagination
	offset := (pagination.Page - 1) * pagination.Limit
	totalPages := int((total + int64(pagination.Limit) - 1) / int64(pagination.Limit))
	if totalPages == 0 {
		totalPages = 1
	}

	var transactionModels []model.TransactionModel
	result := query.
		Preload("Account").
		Preload("Category").
		Order("transaction_date DESC, created_at DESC").
		Offset(offset).
		Limit(pagination.Limit).
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.TransactionWithRefs, len(transactionModels))
	for i := range transactionModels {
		transactions[i] = transactionModels[i].ToEntityWithRefs()
	}

	return &adapter.TransactionListResult{
		Transactions: transactions,
		Total:        total,
		Page:         pagination.Page,
		Limit:        pagination.Limit,
		TotalPages:   totalPages,
	}, nil
}

// FindAll retrieves every transaction matching filter in chronological order.
func (r *transactionRepository) FindAll(ctx context.Context, filter adapter.TransactionFilter) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	result := applyTransactionFilter(conn(ctx, r.db), filter).
		Order("transaction_date ASC, created_at ASC").
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return transactionsToEntities(transactionModels), nil
}

// GetTotals aggregates amounts matching filter split by type and status.
func (r *transactionRepository) GetTotals(ctx context.Context, filter adapter.TransactionFilter) (*entity.TransactionTotals, error) {
	var totals struct {
		CompletedIncome  decimal.Decimal
		CompletedExpense decimal.Decimal
		PendingIncome    decimal.Decimal
		PendingExpense   decimal.Decimal
	}

	const sumCase = "COALESCE(SUM(CASE WHEN type = ? AND status = ? THEN amount ELSE 0 END), 0)"
	income := string(entity.TransactionTypeIncome)
	expense := string(entity.TransactionTypeExpense)
	completed := string(entity.TransactionStatusCompleted)
	pending := string(entity.TransactionStatusPending)

	result := applyTransactionFilter(conn(ctx, r.db).Model(&model.TransactionModel{}), filter).
		Select(
			sumCase+" AS completed_income, "+
				sumCase+" AS completed_expense, "+
				sumCase+" AS pending_income, "+
				sumCase+" AS pending_expense",
			income, completed,
			expense, completed,
			income, pending,
			expense, pending,
		).
		Scan(&totals)
	if result.Error != nil {
		return nil, result.Error
	}

	return &entity.TransactionTotals{
		CompletedIncome:  totals.CompletedIncome.Round(2),
		CompletedExpense: totals.CompletedExpense.Round(2),
		PendingIncome:    totals.PendingIncome.Round(2),
		PendingExpense:   totals.PendingExpense.Round(2),
	}, nil
}

// Update persists the mutable fields of a transaction guarded by its stored status.
func (r *transactionRepository) Update(ctx context.Context, transaction *entity.Transaction, expectedStatus entity.TransactionStatus) error {
	result := conn(ctx, r.db).
		Model(&model.TransactionModel{}).
		Where("id = ? AND user_id = ? AND status = ?", transaction.ID, transaction.UserID, string(expectedStatus)).
		Updates(map[string]interface{}{
			"account_id":       transaction.AccountID,
			"category_id":      transaction.CategoryID,
			"type":             string(transaction.Type),
			"amount":           transaction.Amount,
			"transaction_date": entity.DateOf(transaction.Date),
			"status":           string(transaction.Status),
			"description":      transaction.Description,
			"updated_at":       time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTransactionStatusChanged
	}
	return nil
}

// UpdateStatus moves a transaction from one status to another.
func (r *transactionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.TransactionStatus) error {
	result := conn(ctx, r.db).
		Model(&model.TransactionModel{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(map[string]interface{}{
			"status":     string(to),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTransactionStatusChanged
	}
	return nil
}

// Delete removes a transaction whose stored status is still expectedStatus.
func (r *transactionRepository) Delete(ctx context.Context, id uuid.UUID, expectedStatus entity.TransactionStatus) error {
	result := conn(ctx, r.db).
		Where("id = ? AND status = ?", id, string(expectedStatus)).
		Delete(&model.TransactionModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTransactionStatusChanged
	}
	return nil
}

func applyTransactionFilter(query *gorm.DB, filter adapter.TransactionFilter) *gorm.DB {
	query = query.Where("user_id = ?", filter.UserID)

	if filter.AccountID != nil {
		query = query.Where("account_id = ?", *filter.AccountID)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.StartDate != nil {
		query = query.Where("transaction_date >= ?", entity.DateOf(*filter.StartDate))
	}
	if filter.EndDate != nil {
		query = query.Where("transaction_date <= ?", entity.DateOf(*filter.EndDate))
	}
	if filter.Type != nil {
		query = query.Where("type = ?", string(*filter.Type))
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.ExcludeTransfers {
		query = query.Where("transfer_id IS NULL")
	}
	return query
}

func transactionsToEntities(models []model.TransactionModel) []*entity.Transaction {
	transactions := make([]*entity.Transaction, len(models))
	for i := range models {
		transactions[i] = models[i].ToEntity()
	}
	return transactions
}
