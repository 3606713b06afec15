package categoryrule

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// UpdateCategoryRuleInput represents the input for category rule update.
type UpdateCategoryRuleInput struct {
	UserID     uuid.UUID
	RuleID     uuid.UUID
	Pattern    *string
	CategoryID *uuid.UUID
	Priority   *int
	Active     *bool
}

// UpdateCategoryRuleOutput represents the output of category rule update.
type UpdateCategoryRuleOutput struct {
	Rule *RuleOutput
}

// UpdateCategoryRuleUseCase handles category rule update logic.
type UpdateCategoryRuleUseCase struct {
	ruleRepo     adapter.CategoryRuleRepository
	categoryRepo adapter.CategoryRepository
}

// NewUpdateCategoryRuleUseCase creates a new UpdateCategoryRuleUseCase instance.
func NewUpdateCategoryRuleUseCase(ruleRepo adapter.CategoryRuleRepository, categoryRepo adapter.CategoryRepository) *UpdateCategoryRuleUseCase {
	return &UpdateCategoryRuleUseCase{
		ruleRepo:     ruleRepo,
		categoryRepo: categoryRepo,
	}
}

// Execute applies the provided fields to the rule.
func (uc *UpdateCategoryRuleUseCase) Execute(ctx context.Context, input UpdateCategoryRuleInput) (*UpdateCategoryRuleOutput, error) {
	rule, err := findRule(ctx, uc.ruleRepo, input.RuleID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Pattern != nil {
		pattern, err := normalizePattern(*input.Pattern)
		if err != nil {
			return nil, err
		}
		if pattern != rule.Pattern {
			if err := ensureUniquePattern(ctx, uc.ruleRepo, input.UserID, pattern, &rule.ID); err != nil {
				return nil, err
			}
		}
		rule.Pattern = pattern
	}

	var category *entity.Category
	if input.CategoryID != nil {
		category, err = targetCategory(ctx, uc.categoryRepo, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		rule.CategoryID = category.ID
	} else {
		category, err = uc.categoryRepo.FindByID(ctx, rule.CategoryID)
		if err != nil {
			return nil, domainerror.NewStorageError("find rule category", fmt.Errorf("failed to find category: %w", err))
		}
	}

	if input.Priority != nil {
		rule.Priority = *input.Priority
	}
	if input.Active != nil {
		rule.Active = *input.Active
	}
	rule.UpdatedAt = time.Now().UTC()

	if err := uc.ruleRepo.Update(ctx, rule); err != nil {
		return nil, domainerror.NewStorageError("update category rule", fmt.Errorf("failed to update category rule: %w", err))
	}

	return &UpdateCategoryRuleOutput{
		Rule: toRuleOutput(rule, category),
	}, nil
}
