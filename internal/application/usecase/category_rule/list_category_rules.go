package categoryrule

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// ListCategoryRulesInput represents the input for listing rules.
type ListCategoryRulesInput struct {
	UserID     uuid.UUID
	ActiveOnly bool
}

// ListCategoryRulesOutput represents the output of listing rules.
type ListCategoryRulesOutput struct {
	Rules []*RuleOutput
}

// ListCategoryRulesUseCase lists a user's rules in evaluation order.
type ListCategoryRulesUseCase struct {
	ruleRepo adapter.CategoryRuleRepository
}

// NewListCategoryRulesUseCase creates a new ListCategoryRulesUseCase instance.
func NewListCategoryRulesUseCase(ruleRepo adapter.CategoryRuleRepository) *ListCategoryRulesUseCase {
	return &ListCategoryRulesUseCase{
		ruleRepo: ruleRepo,
	}
}

// Execute retrieves the rules, highest priority first.
func (uc *ListCategoryRulesUseCase) Execute(ctx context.Context, input ListCategoryRulesInput) (*ListCategoryRulesOutput, error) {
	rules, err := uc.ruleRepo.FindByUser(ctx, input.UserID, input.ActiveOnly)
	if err != nil {
		return nil, domainerror.NewStorageError("list category rules", fmt.Errorf("failed to list category rules: %w", err))
	}

	output := &ListCategoryRulesOutput{
		Rules: make([]*RuleOutput, len(rules)),
	}
	for i, r := range rules {
		output.Rules[i] = toRuleOutput(r.Rule, r.Category)
	}
	return output, nil
}
