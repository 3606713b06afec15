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

// accountRepository implements the adapter.AccountRepository interface.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository instance.
func NewAccountRepository(db *gorm.DB) adapter.AccountRepository {
	return &accountRepository{
		db: db,
	}
}

// Create creates a new account in the database.
func (r *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	accountModel := model.AccountFromEntity(account)
	result := conn(ctx, r.db).Create(accountModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves an account owned by userID.
func (r *accountRepository) FindByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*entity.Account, error) {
	var accountModel model.AccountModel
	result := conn(ctx, r.db).Where("id = ? AND user_id = ?", id, userID).First(&accountModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrAccountNotFound
		}
		return nil, result.Error
	}
	return accountModel.ToEntity(), nil
}

// FindByUser retrieves the accounts of a user ordered by name.
func (r *accountRepository) FindByUser(ctx context.Context, userID uuid.UUID, includeInactive bool) ([]*entity.Account, error) {
	query := conn(ctx, r.db).Where("user_id = ?", userID)
	if !includeInactive {
		query = query.Where("active = ?", true)
	}

	var accountModels []model.AccountModel
	result := query.Order("name ASC, created_at ASC").Find(&accountModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return accountsToEntities(accountModels), nil
}

// FindAll retrieves every account in the ledger.
func (r *accountRepository) FindAll(ctx context.Context) ([]*entity.Account, error) {
	var accountModels []model.AccountModel
	result := conn(ctx, r.db).Order("user_id ASC, name ASC").Find(&accountModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return accountsToEntities(accountModels), nil
}

// Update persists name, kind and active flag.
func (r *accountRepository) Update(ctx context.Context, account *entity.Account) error {
	result := conn(ctx, r.db).
		Model(&model.AccountModel{}).
		Where("id = ? AND user_id = ?", account.ID, account.UserID).
		Updates(map[string]interface{}{
			"name":       account.Name,
			"kind":       string(account.Kind),
			"active":     account.Active,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrAccountNotFound
	}
	return nil
}

// ApplyDelta atomically adds delta to the stored balance.
func (r *accountRepository) ApplyDelta(ctx context.Context, id uuid.UUID, userID uuid.UUID, delta decimal.Decimal) error {
	result := conn(ctx, r.db).
		Model(&model.AccountModel{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{
			"balance":    gorm.Expr("balance + ?", delta),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrAccountNotFound
	}
	return nil
}

func accountsToEntities(models []model.AccountModel) []*entity.Account {
	accounts := make([]*entity.Account, len(models))
	for i := range models {
		accounts[i] = models[i].ToEntity()
	}
	return accounts
}
