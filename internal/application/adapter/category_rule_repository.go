package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// CategoryRuleRepository defines the interface for category rule persistence operations.
type CategoryRuleRepository interface {
	// Create creates a new category rule in the database.
	Create(ctx context.Context, rule *entity.CategoryRule) error

	// FindByID retrieves a rule owned by userID.
	FindByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*entity.CategoryRule, error)

	// FindByUser retrieves the rules of a user with their categories, highest
	// priority first. activeOnly skips disabled rules.
	FindByUser(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]*entity.CategoryRuleWithCategory, error)

	// Update updates an existing category rule in the database.
	Update(ctx context.Context, rule *entity.CategoryRule) error

	// Delete removes a category rule from the database.
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByPattern checks if the user already has a rule with pattern,
	// ignoring excludeID when set.
	ExistsByPattern(ctx context.Context, userID uuid.UUID, pattern string, excludeID *uuid.UUID) (bool, error)

	// GetMaxPriority returns the highest priority among the user's rules, or 0.
	GetMaxPriority(ctx context.Context, userID uuid.UUID) (int, error)

	// CountByCategory returns how many rules assign the category.
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
}
