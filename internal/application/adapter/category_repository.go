// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence operations.
type CategoryRepository interface {
	// Create creates a new category in the database.
	Create(ctx context.Context, category *entity.Category) error

	// FindByID retrieves a category by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// FindAll retrieves all categories, optionally filtered by type.
	FindAll(ctx context.Context, categoryType *entity.CategoryType) ([]*entity.Category, error)

	// FindBySystemKey retrieves the seeded category for key.
	FindBySystemKey(ctx context.Context, key entity.SystemKey) (*entity.Category, error)

	// FindFirstByType retrieves the oldest category of a type, preferring
	// user-defined categories over system ones.
	FindFirstByType(ctx context.Context, categoryType entity.CategoryType) (*entity.Category, error)

	// ExistsByNameAndType checks if a category with the given name and type exists,
	// ignoring excludeID when set.
	ExistsByNameAndType(ctx context.Context, name string, categoryType entity.CategoryType, excludeID *uuid.UUID) (bool, error)

	// Update updates an existing category in the database.
	Update(ctx context.Context, category *entity.Category) error

	// Delete removes a category from the database.
	Delete(ctx context.Context, id uuid.UUID) error

	// IsInUse reports whether any transaction or purchase references the category.
	IsInUse(ctx context.Context, id uuid.UUID) (bool, error)
}
