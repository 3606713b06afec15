package categoryrule

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// DeleteCategoryRuleInput represents the input for category rule deletion.
type DeleteCategoryRuleInput struct {
	UserID uuid.UUID
	RuleID uuid.UUID
}

// DeleteCategoryRuleUseCase handles category rule deletion logic.
type DeleteCategoryRuleUseCase struct {
	ruleRepo adapter.CategoryRuleRepository
}

// NewDeleteCategoryRuleUseCase creates a new DeleteCategoryRuleUseCase instance.
func NewDeleteCategoryRuleUseCase(ruleRepo adapter.CategoryRuleRepository) *DeleteCategoryRuleUseCase {
	return &DeleteCategoryRuleUseCase{
		ruleRepo: ruleRepo,
	}
}

// Execute removes the rule. Transactions it categorized keep their category.
func (uc *DeleteCategoryRuleUseCase) Execute(ctx context.Context, input DeleteCategoryRuleInput) error {
	rule, err := findRule(ctx, uc.ruleRepo, input.RuleID, input.UserID)
	if err != nil {
		return err
	}
	if err := uc.ruleRepo.Delete(ctx, rule.ID); err != nil {
		return domainerror.NewStorageError("delete category rule", fmt.Errorf("failed to delete category rule: %w", err))
	}
	return nil
}
