package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// CategoryRuleModel represents the category_rules table in the database.
type CategoryRuleModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Pattern    string    `gorm:"type:varchar(255);not null"`
	CategoryID uuid.UUID `gorm:"type:uuid;not null;index"`
	Priority   int       `gorm:"not null;default:0"`
	Active     bool      `gorm:"not null"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`

	// Relationships (not loaded by default, use Preload)
	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID"`
}

// TableName returns the table name for the CategoryRuleModel.
func (CategoryRuleModel) TableName() string {
	return "category_rules"
}

// ToEntity converts a CategoryRuleModel to a domain CategoryRule entity.
func (m *CategoryRuleModel) ToEntity() *entity.CategoryRule {
	return &entity.CategoryRule{
		ID:         m.ID,
		UserID:     m.UserID,
		Pattern:    m.Pattern,
		CategoryID: m.CategoryID,
		Priority:   m.Priority,
		Active:     m.Active,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// ToEntityWithCategory converts a CategoryRuleModel with its preloaded Category.
func (m *CategoryRuleModel) ToEntityWithCategory() *entity.CategoryRuleWithCategory {
	result := &entity.CategoryRuleWithCategory{
		Rule: m.ToEntity(),
	}
	if m.Category != nil {
		result.Category = m.Category.ToEntity()
	}
	return result
}

// CategoryRuleFromEntity creates a CategoryRuleModel from a domain CategoryRule entity.
func CategoryRuleFromEntity(rule *entity.CategoryRule) *CategoryRuleModel {
	return &CategoryRuleModel{
		ID:         rule.ID,
		UserID:     rule.UserID,
		Pattern:    rule.Pattern,
		CategoryID: rule.CategoryID,
		Priority:   rule.Priority,
		Active:     rule.Active,
		CreatedAt:  rule.CreatedAt,
		UpdatedAt:  rule.UpdatedAt,
	}
}
