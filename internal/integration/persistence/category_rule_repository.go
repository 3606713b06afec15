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

// categoryRuleRepository implements the adapter.CategoryRuleRepository interface.
type categoryRuleRepository struct {
	db *gorm.DB
}

// NewCategoryRuleRepository creates a new category rule repository instance.
func NewCategoryRuleRepository(db *gorm.DB) adapter.CategoryRuleRepository {
	return &categoryRuleRepository{
		db: db,
	}
}

// Create creates a new category rule in the database.
func (r *categoryRuleRepository) Create(ctx context.Context, rule *entity.CategoryRule) error {
	return conn(ctx, r.db).Create(model.CategoryRuleFromEntity(rule)).Error
}

// FindByID retrieves a rule owned by userID.
func (r *categoryRuleRepository) FindByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*entity.CategoryRule, error) {
	var ruleModel model.CategoryRuleModel
	result := conn(ctx, r.db).Where("id = ? AND user_id = ?", id, userID).First(&ruleModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCategoryRuleNotFound
		}
		return nil, result.Error
	}
	return ruleModel.ToEntity(), nil
}

// FindByUser retrieves the user's rules with their categories, highest priority first.
func (r *categoryRuleRepository) FindByUser(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]*entity.CategoryRuleWithCategory, error) {
	query := conn(ctx, r.db).Preload("Category").Where("user_id = ?", userID)
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var ruleModels []model.CategoryRuleModel
	if err := query.Order("priority DESC, created_at ASC").Find(&ruleModels).Error; err != nil {
		return nil, err
	}

	rules := make([]*entity.CategoryRuleWithCategory, len(ruleModels))
	for i := range ruleModels {
		rules[i] = ruleModels[i].ToEntityWithCategory()
	}
	return rules, nil
}

// Update updates an existing category rule in the database.
func (r *categoryRuleRepository) Update(ctx context.Context, rule *entity.CategoryRule) error {
	result := conn(ctx, r.db).
		Model(&model.CategoryRuleModel{}).
		Where("id = ?", rule.ID).
		Updates(map[string]interface{}{
			"pattern":     rule.Pattern,
			"category_id": rule.CategoryID,
			"priority":    rule.Priority,
			"active":      rule.Active,
			"updated_at":  rule.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrCategoryRuleNotFound
	}
	return nil
}

// Delete removes a category rule from the database.
func (r *categoryRuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.db).Delete(&model.CategoryRuleModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrCategoryRuleNotFound
	}
	return nil
}

// ExistsByPattern checks if the user already has a rule with pattern.
func (r *categoryRuleRepository) ExistsByPattern(ctx context.Context, userID uuid.UUID, pattern string, excludeID *uuid.UUID) (bool, error) {
	query := conn(ctx, r.db).
		Model(&model.CategoryRuleModel{}).
		Where("user_id = ? AND pattern = ?", userID, pattern)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetMaxPriority returns the highest priority among the user's rules, or 0.
func (r *categoryRuleRepository) GetMaxPriority(ctx context.Context, userID uuid.UUID) (int, error) {
	var maxPriority int
	err := conn(ctx, r.db).
		Model(&model.CategoryRuleModel{}).
		Where("user_id = ?", userID).
		Select("COALESCE(MAX(priority), 0)").
		Scan(&maxPriority).Error
	return maxPriority, err
}

// CountByCategory returns how many rules assign the category.
func (r *categoryRuleRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64
	err := conn(ctx, r.db).
		Model(&model.CategoryRuleModel{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	return count, err
}
