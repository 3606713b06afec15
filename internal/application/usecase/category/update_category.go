package category

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// UpdateCategoryInput represents the input for category update.
// The type of a category is fixed once created.
type UpdateCategoryInput struct {
	CategoryID uuid.UUID
	Name       *string // Optional
	Color      *string // Optional
	Icon       *string // Optional
}

// UpdateCategoryOutput represents the output of category update.
type UpdateCategoryOutput struct {
	Category *CategoryOutput
}

// UpdateCategoryUseCase handles category update logic.
type UpdateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewUpdateCategoryUseCase creates a new UpdateCategoryUseCase instance.
func NewUpdateCategoryUseCase(categoryRepo adapter.CategoryRepository) *UpdateCategoryUseCase {
	return &UpdateCategoryUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute performs the category update. System categories keep their name;
// only their icon and color can change.
func (uc *UpdateCategoryUseCase) Execute(ctx context.Context, input UpdateCategoryInput) (*UpdateCategoryOutput, error) {
	category, err := findCategory(ctx, uc.categoryRepo, input.CategoryID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name != category.Name {
			if category.IsSystem() {
				return nil, domainerror.NewCategoryError(
					domainerror.ErrCodeSystemCategory,
					"system categories cannot be renamed",
					domainerror.ErrSystemCategory,
				)
			}
			if err := validateName(name); err != nil {
				return nil, err
			}
			if err := ensureUniqueName(ctx, uc.categoryRepo, name, category.Type, &category.ID); err != nil {
				return nil, err
			}
			category.Name = name
		}
	}

	if input.Color != nil {
		if err := validateColor(*input.Color); err != nil {
			return nil, err
		}
		if *input.Color != "" {
			category.Color = *input.Color
		}
	}

	if input.Icon != nil {
		if err := validateIcon(*input.Icon); err != nil {
			return nil, err
		}
		if *input.Icon != "" {
			category.Icon = *input.Icon
		}
	}

	category.UpdatedAt = time.Now().UTC()
	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		return nil, domainerror.NewStorageError("update category", fmt.Errorf("failed to update category: %w", err))
	}

	return &UpdateCategoryOutput{
		Category: toCategoryOutput(category),
	}, nil
}
