package categoryrule

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// CreateCategoryRuleInput represents the input for category rule creation.
type CreateCategoryRuleInput struct {
	UserID     uuid.UUID
	Pattern    string
	CategoryID uuid.UUID
	Priority   *int // Optional, defaults to max priority + 1
}

// CreateCategoryRuleOutput represents the output of category rule creation.
type CreateCategoryRuleOutput struct {
	Rule *RuleOutput
}

// CreateCategoryRuleUseCase handles category rule creation logic.
type CreateCategoryRuleUseCase struct {
	ruleRepo     adapter.CategoryRuleRepository
	categoryRepo adapter.CategoryRepository
}

// NewCreateCategoryRuleUseCase creates a new CreateCategoryRuleUseCase instance.
func NewCreateCategoryRuleUseCase(ruleRepo adapter.CategoryRuleRepository, categoryRepo adapter.CategoryRepository) *CreateCategoryRuleUseCase {
	return &CreateCategoryRuleUseCase{
		ruleRepo:     ruleRepo,
		categoryRepo: categoryRepo,
	}
}

// Execute performs the category rule creation.
func (uc *CreateCategoryRuleUseCase) Execute(ctx context.Context, input CreateCategoryRuleInput) (*CreateCategoryRuleOutput, error) {
	pattern, err := normalizePattern(input.Pattern)
	if err != nil {
		return nil, err
	}

	category, err := targetCategory(ctx, uc.categoryRepo, input.CategoryID)
	if err != nil {
		return nil, err
	}

	if err := ensureUniquePattern(ctx, uc.ruleRepo, input.UserID, pattern, nil); err != nil {
		return nil, err
	}

	var priority int
	if input.Priority != nil {
		priority = *input.Priority
	} else {
		maxPriority, err := uc.ruleRepo.GetMaxPriority(ctx, input.UserID)
		if err != nil {
			return nil, domainerror.NewStorageError("rule priority", fmt.Errorf("failed to get max priority: %w", err))
		}
		priority = maxPriority + 1
	}

	rule := entity.NewCategoryRule(input.UserID, pattern, category.ID, priority)
	if err := uc.ruleRepo.Create(ctx, rule); err != nil {
		return nil, domainerror.NewStorageError("create category rule", fmt.Errorf("failed to create category rule: %w", err))
	}

	slog.Info("Category rule created",
		"userID", input.UserID,
		"ruleID", rule.ID,
		"categoryID", category.ID,
		"priority", rule.Priority,
	)

	return &CreateCategoryRuleOutput{
		Rule: toRuleOutput(rule, category),
	}, nil
}
