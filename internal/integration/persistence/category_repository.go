// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/persistence/model"
)

// categoryRepository implements the adapter.CategoryRepository interface.
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository instance.
func NewCategoryRepository(db *gorm.DB) adapter.CategoryRepository {
	return &categoryRepository{
		db: db,
	}
}

// Create creates a new category in the database.
func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	categoryModel := model.CategoryFromEntity(category)
	result := conn(ctx, r.db).Create(categoryModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a category by its ID.
func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	var categoryModel model.CategoryModel
	result := conn(ctx, r.db).Where("id = ?", id).First(&categoryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCategoryNotFound
		}
		return nil, result.Error
	}
	return categoryModel.ToEntity(), nil
}

// FindAll retrieves all categories ordered by name, optionally filtered by type.
func (r *categoryRepository) FindAll(ctx context.Context, categoryType *entity.CategoryType) ([]*entity.Category, error) {
	query := conn(ctx, r.db)
	if categoryType != nil {
		query = query.Where("type = ?", string(*categoryType))
	}

	var categoryModels []model.CategoryModel
	result := query.Order("name ASC, type ASC").Find(&categoryModels)
	if result.Error != nil {
		return nil, result.Error
	}

	categories := make([]*entity.Category, len(categoryModels))
	for i := range categoryModels {
		categories[i] = categoryModels[i].ToEntity()
	}
	return categories, nil
}

// FindBySystemKey retrieves the seeded category for key.
func (r *categoryRepository) FindBySystemKey(ctx context.Context, key entity.SystemKey) (*entity.Category, error) {
	var categoryModel model.CategoryModel
	result := conn(ctx, r.db).Where("system_key = ?", string(key)).First(&categoryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCategoryNotFound
		}
		return nil, result.Error
	}
	return categoryModel.ToEntity(), nil
}

// FindFirstByType retrieves the oldest category of a type, user-defined first.
func (r *categoryRepository) FindFirstByType(ctx context.Context, categoryType entity.CategoryType) (*entity.Category, error) {
	var categoryModel model.CategoryModel
	result := conn(ctx, r.db).
		Where("type = ?", string(categoryType)).
		Order("system_key IS NOT NULL, created_at ASC").
		Limit(1).
		Find(&categoryModel)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, domainerror.ErrCategoryNotFound
	}
	return categoryModel.ToEntity(), nil
}

// ExistsByNameAndType checks if a category with the given name and type exists.
func (r *categoryRepository) ExistsByNameAndType(ctx context.Context, name string, categoryType entity.CategoryType, excludeID *uuid.UUID) (bool, error) {
	query := conn(ctx, r.db).
		Model(&model.CategoryModel{}).
		Where("LOWER(name) = ? AND type = ?", strings.ToLower(name), string(categoryType))
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	result := query.Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// Update updates an existing category in the database.
func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	categoryModel := model.CategoryFromEntity(category)
	result := conn(ctx, r.db).Save(categoryModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete removes a category from the database.
// Rules assigning the category are removed with it.
func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.CategoryRuleModel{}, "category_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.CategoryModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrCategoryNotFound
		}
		return nil
	})
}

// IsInUse reports whether any transaction or purchase references the category.
func (r *categoryRepository) IsInUse(ctx context.Context, id uuid.UUID) (bool, error) {
	db := conn(ctx, r.db)

	var count int64
	if err := db.Model(&model.TransactionModel{}).Where("category_id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}

	if err := db.Model(&model.CreditCardPurchaseModel{}).Where("category_id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
