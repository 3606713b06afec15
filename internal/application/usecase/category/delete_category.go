package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// DeleteCategoryInput represents the input for category deletion.
type DeleteCategoryInput struct {
	CategoryID uuid.UUID
}

// DeleteCategoryOutput represents the output of category deletion.
type DeleteCategoryOutput struct {
	Success bool
}

// DeleteCategoryUseCase handles category deletion logic.
type DeleteCategoryUseCase struct {
	transactor   adapter.Transactor
	categoryRepo adapter.CategoryRepository
}

// NewDeleteCategoryUseCase creates a new DeleteCategoryUseCase instance.
func NewDeleteCategoryUseCase(transactor adapter.Transactor, categoryRepo adapter.CategoryRepository) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{
		transactor:   transactor,
		categoryRepo: categoryRepo,
	}
}

// Execute deletes a category nothing references. The reference check and the
// delete share one unit of work.
func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, input DeleteCategoryInput) (*DeleteCategoryOutput, error) {
	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		category, err := findCategory(ctx, uc.categoryRepo, input.CategoryID)
		if err != nil {
			return err
		}

		if category.IsSystem() {
			return domainerror.NewCategoryError(
				domainerror.ErrCodeSystemCategory,
				"system categories cannot be deleted",
				domainerror.ErrSystemCategory,
			)
		}

		inUse, err := uc.categoryRepo.IsInUse(ctx, category.ID)
		if err != nil {
			return fmt.Errorf("failed to check category usage: %w", err)
		}
		if inUse {
			return domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryInUse,
				"category is referenced by transactions or purchases",
				domainerror.ErrCategoryInUse,
			)
		}

		if err := uc.categoryRepo.Delete(ctx, category.ID); err != nil {
			return fmt.Errorf("failed to delete category: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, domainerror.NewStorageError("delete category", err)
	}

	return &DeleteCategoryOutput{
		Success: true,
	}, nil
}
