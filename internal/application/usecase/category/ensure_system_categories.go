package category

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// EnsureSystemCategoriesInput represents the input for system category resolution.
type EnsureSystemCategoriesInput struct {
	// Overrides holds configured category IDs. A non-nil ID wins over the
	// seeded category for its key.
	Overrides entity.CategoryRefs
}

// EnsureSystemCategoriesOutput represents the resolved system categories.
type EnsureSystemCategoriesOutput struct {
	Refs    entity.CategoryRefs
	Created int
}

// EnsureSystemCategoriesUseCase seeds the system categories and resolves their IDs.
type EnsureSystemCategoriesUseCase struct {
	transactor   adapter.Transactor
	categoryRepo adapter.CategoryRepository
}

// NewEnsureSystemCategoriesUseCase creates a new EnsureSystemCategoriesUseCase instance.
func NewEnsureSystemCategoriesUseCase(transactor adapter.Transactor, categoryRepo adapter.CategoryRepository) *EnsureSystemCategoriesUseCase {
	return &EnsureSystemCategoriesUseCase{
		transactor:   transactor,
		categoryRepo: categoryRepo,
	}
}

// Execute is idempotent: categories already seeded are reused as they are.
func (uc *EnsureSystemCategoriesUseCase) Execute(ctx context.Context, input EnsureSystemCategoriesInput) (*EnsureSystemCategoriesOutput, error) {
	output := &EnsureSystemCategoriesOutput{}

	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, sc := range entity.SystemCategories {
			if id := input.Overrides.Get(sc.Key); id != uuid.Nil {
				if err := uc.checkOverride(ctx, sc, id); err != nil {
					return err
				}
				output.Refs.Set(sc.Key, id)
				continue
			}

			category, err := uc.categoryRepo.FindBySystemKey(ctx, sc.Key)
			if err == nil {
				output.Refs.Set(sc.Key, category.ID)
				continue
			}
			if !errors.Is(err, domainerror.ErrCategoryNotFound) {
				return fmt.Errorf("failed to find system category %s: %w", sc.Key, err)
			}

			category = entity.NewCategory(sc.Name, sc.Type, sc.Icon, sc.Color)
			key := sc.Key
			category.SystemKey = &key
			if err := uc.categoryRepo.Create(ctx, category); err != nil {
				return fmt.Errorf("failed to seed system category %s: %w", sc.Key, err)
			}
			output.Refs.Set(sc.Key, category.ID)
			output.Created++
		}
		return nil
	})
	if err != nil {
		return nil, domainerror.NewStorageError("ensure system categories", err)
	}

	if output.Created > 0 {
		slog.Info("System categories seeded", "created", output.Created)
	}

	return output, nil
}

// checkOverride verifies a configured ID points at a category of the right type.
func (uc *EnsureSystemCategoriesUseCase) checkOverride(ctx context.Context, sc entity.SystemCategory, id uuid.UUID) error {
	category, err := findCategory(ctx, uc.categoryRepo, id)
	if err != nil {
		return err
	}
	if category.Type != sc.Type {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidCategoryType,
			fmt.Sprintf("configured category for %s must be of type %s", sc.Key, sc.Type),
			domainerror.ErrInvalidCategoryType,
		)
	}
	return nil
}
