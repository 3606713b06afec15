// Package category contains category-related use cases.
package category

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

const (
	// MaxCategoryNameLength is the maximum allowed length for category names.
	MaxCategoryNameLength = 50
	// MaxIconLength is the maximum allowed length for icon names.
	MaxIconLength = 50
)

// hexColorRegex is compiled once at package level for performance.
var hexColorRegex = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

// CategoryOutput represents a single category in the output.
type CategoryOutput struct {
	ID        uuid.UUID
	Name      string
	Type      entity.CategoryType
	Icon      string
	Color     string
	SystemKey *entity.SystemKey
	CreatedAt time.Time
	UpdatedAt time.Time
}

func toCategoryOutput(category *entity.Category) *CategoryOutput {
	return &CategoryOutput{
		ID:        category.ID,
		Name:      category.Name,
		Type:      category.Type,
		Icon:      category.Icon,
		Color:     category.Color,
		SystemKey: category.SystemKey,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
}

func findCategory(ctx context.Context, categoryRepo adapter.CategoryRepository, id uuid.UUID) (*entity.Category, error) {
	category, err := categoryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFound,
			)
		}
		return nil, domainerror.NewStorageError("find category", fmt.Errorf("failed to find category: %w", err))
	}
	return category, nil
}

func validateName(name string) error {
	if name == "" {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeMissingCategoryFields,
			"category name is required",
			domainerror.ErrCategoryNameRequired,
		)
	}
	if utf8.RuneCountInString(name) > MaxCategoryNameLength {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameTooLong,
			fmt.Sprintf("category name must not exceed %d characters", MaxCategoryNameLength),
			domainerror.ErrCategoryNameTooLong,
		)
	}
	return nil
}

func validateColor(color string) error {
	if color != "" && !hexColorRegex.MatchString(color) {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidColorFormat,
			"color must be a valid hex format (#XXXXXX)",
			domainerror.ErrInvalidColorFormat,
		)
	}
	return nil
}

func validateIcon(icon string) error {
	if utf8.RuneCountInString(icon) > MaxIconLength {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeIconTooLong,
			fmt.Sprintf("icon must not exceed %d characters", MaxIconLength),
			domainerror.ErrIconTooLong,
		)
	}
	return nil
}

func ensureUniqueName(ctx context.Context, categoryRepo adapter.CategoryRepository, name string, categoryType entity.CategoryType, excludeID *uuid.UUID) error {
	exists, err := categoryRepo.ExistsByNameAndType(ctx, name, categoryType, excludeID)
	if err != nil {
		return domainerror.NewStorageError("check category name", fmt.Errorf("failed to check category name existence: %w", err))
	}
	if exists {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameExists,
			"a category with this name and type already exists",
			domainerror.ErrCategoryNameExists,
		)
	}
	return nil
}
