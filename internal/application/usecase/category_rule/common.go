// Package categoryrule contains the use cases of the rules that categorize
// imported statement lines.
package categoryrule

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// MaxPatternLength is the maximum allowed length for regex patterns.
const MaxPatternLength = 255

// RuleOutput represents a rule together with the category it assigns.
type RuleOutput struct {
	ID           uuid.UUID
	Pattern      string
	CategoryID   uuid.UUID
	CategoryName string
	CategoryType entity.CategoryType
	Priority     int
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func toRuleOutput(rule *entity.CategoryRule, category *entity.Category) *RuleOutput {
	out := &RuleOutput{
		ID:         rule.ID,
		Pattern:    rule.Pattern,
		CategoryID: rule.CategoryID,
		Priority:   rule.Priority,
		Active:     rule.Active,
		CreatedAt:  rule.CreatedAt,
		UpdatedAt:  rule.UpdatedAt,
	}
	if category != nil {
		out.CategoryName = category.Name
		out.CategoryType = category.Type
	}
	return out
}

func findRule(ctx context.Context, ruleRepo adapter.CategoryRuleRepository, id, userID uuid.UUID) (*entity.CategoryRule, error) {
	rule, err := ruleRepo.FindByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryRuleNotFound) {
			return nil, domainerror.NewCategoryRuleError(
				domainerror.ErrCodeCategoryRuleNotFound,
				"category rule not found",
				domainerror.ErrCategoryRuleNotFound,
			)
		}
		return nil, domainerror.NewStorageError("find category rule", fmt.Errorf("failed to find category rule: %w", err))
	}
	return rule, nil
}

// normalizePattern trims and validates a pattern.
func normalizePattern(pattern string) (string, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return "", domainerror.NewCategoryRuleError(
			domainerror.ErrCodeMissingRuleFields,
			"pattern is required",
			domainerror.ErrCategoryRuleMissingFields,
		)
	}
	if len(pattern) > MaxPatternLength {
		return "", domainerror.NewCategoryRuleError(
			domainerror.ErrCodePatternTooLong,
			fmt.Sprintf("pattern must not exceed %d characters", MaxPatternLength),
			domainerror.ErrPatternTooLong,
		)
	}
	if _, err := entity.CompilePattern(pattern); err != nil {
		return "", domainerror.NewCategoryRuleError(
			domainerror.ErrCodeInvalidPattern,
			"invalid regex pattern: "+err.Error(),
			domainerror.ErrInvalidPattern,
		)
	}
	return pattern, nil
}

func ensureUniquePattern(ctx context.Context, ruleRepo adapter.CategoryRuleRepository, userID uuid.UUID, pattern string, excludeID *uuid.UUID) error {
	exists, err := ruleRepo.ExistsByPattern(ctx, userID, pattern, excludeID)
	if err != nil {
		return domainerror.NewStorageError("check rule pattern", fmt.Errorf("failed to check pattern existence: %w", err))
	}
	if exists {
		return domainerror.NewCategoryRuleError(
			domainerror.ErrCodeCategoryRulePatternExists,
			"a rule with this pattern already exists",
			domainerror.ErrCategoryRulePatternExists,
		)
	}
	return nil
}

// targetCategory loads the category a rule assigns. System categories are
// reserved for movements the ledger books itself.
func targetCategory(ctx context.Context, categoryRepo adapter.CategoryRepository, id uuid.UUID) (*entity.Category, error) {
	category, err := categoryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, domainerror.NewCategoryRuleError(
				domainerror.ErrCodeCategoryNotFoundForRule,
				"category not found",
				domainerror.ErrCategoryNotFound,
			)
		}
		return nil, domainerror.NewStorageError("find rule category", fmt.Errorf("failed to find category: %w", err))
	}
	if category.IsSystem() {
		return nil, domainerror.NewCategoryRuleError(
			domainerror.ErrCodeSystemCategoryRule,
			"rules cannot assign system categories",
			domainerror.ErrSystemCategoryRule,
		)
	}
	return category, nil
}
