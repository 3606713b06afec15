package categoryrule

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/test/ledgertest"
)

func requireRuleCode(t *testing.T, err error, code domainerror.CategoryRuleErrorCode) {
	t.Helper()
	var ruleErr *domainerror.CategoryRuleError
	require.ErrorAs(t, err, &ruleErr)
	assert.Equal(t, code, ruleErr.Code)
}

func intPtr(v int) *int { return &v }

func TestCreateCategoryRule(t *testing.T) {
	h := ledgertest.New(t)
	uc := NewCreateCategoryRuleUseCase(h.Rules, h.Categories)
	ctx := context.Background()
	userID := uuid.New()
	transport := h.Category(t, "Transport", entity.CategoryTypeExpense)

	first, err := uc.Execute(ctx, CreateCategoryRuleInput{UserID: userID, Pattern: "  uber ", CategoryID: transport.ID})
	require.NoError(t, err)
	assert.Equal(t, "uber", first.Rule.Pattern)
	assert.Equal(t, "Transport", first.Rule.CategoryName)
	assert.Equal(t, 1, first.Rule.Priority)
	assert.True(t, first.Rule.Active)

	second, err := uc.Execute(ctx, CreateCategoryRuleInput{UserID: userID, Pattern: "99 ?pop", CategoryID: transport.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, second.Rule.Priority, "defaults to max priority + 1")

	pinned, err := uc.Execute(ctx, CreateCategoryRuleInput{UserID: userID, Pattern: "taxi", CategoryID: transport.ID, Priority: intPtr(50)})
	require.NoError(t, err)
	assert.Equal(t, 50, pinned.Rule.Priority)

	tests := []struct {
		name  string
		input CreateCategoryRuleInput
		code  domainerror.CategoryRuleErrorCode
	}{
		{name: "duplicate pattern", input: CreateCategoryRuleInput{UserID: userID, Pattern: "uber", CategoryID: transport.ID}, code: domainerror.ErrCodeCategoryRulePatternExists},
		{name: "empty pattern", input: CreateCategoryRuleInput{UserID: userID, Pattern: "  ", CategoryID: transport.ID}, code: domainerror.ErrCodeMissingRuleFields},
		{name: "invalid regex", input: CreateCategoryRuleInput{UserID: userID, Pattern: "([a-z", CategoryID: transport.ID}, code: domainerror.ErrCodeInvalidPattern},
		{name: "too long", input: CreateCategoryRuleInput{UserID: userID, Pattern: strings.Repeat("a", MaxPatternLength+1), CategoryID: transport.ID}, code: domainerror.ErrCodePatternTooLong},
		{name: "unknown category", input: CreateCategoryRuleInput{UserID: userID, Pattern: "bus", CategoryID: uuid.New()}, code: domainerror.ErrCodeCategoryNotFoundForRule},
		{name: "system category", input: CreateCategoryRuleInput{UserID: userID, Pattern: "ted", CategoryID: h.Refs.TransferOut}, code: domainerror.ErrCodeSystemCategoryRule},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(ctx, tt.input)
			requireRuleCode(t, err, tt.code)
		})
	}

	_, err = uc.Execute(ctx, CreateCategoryRuleInput{UserID: uuid.New(), Pattern: "uber", CategoryID: transport.ID})
	assert.NoError(t, err, "patterns are unique per user")
}

func TestListAndUpdateCategoryRules(t *testing.T) {
	h := ledgertest.New(t)
	create := NewCreateCategoryRuleUseCase(h.Rules, h.Categories)
	update := NewUpdateCategoryRuleUseCase(h.Rules, h.Categories)
	list := NewListCategoryRulesUseCase(h.Rules)
	ctx := context.Background()
	userID := uuid.New()
	transport := h.Category(t, "Transport", entity.CategoryTypeExpense)
	food := h.Category(t, "Food", entity.CategoryTypeExpense)

	uber, err := create.Execute(ctx, CreateCategoryRuleInput{UserID: userID, Pattern: "uber", CategoryID: transport.ID})
	require.NoError(t, err)
	ifood, err := create.Execute(ctx, CreateCategoryRuleInput{UserID: userID, Pattern: "ifood", CategoryID: food.ID})
	require.NoError(t, err)

	out, err := list.Execute(ctx, ListCategoryRulesInput{UserID: userID})
	require.NoError(t, err)
	require.Len(t, out.Rules, 2)
	assert.Equal(t, "ifood", out.Rules[0].Pattern, "highest priority first")
	assert.Equal(t, "Food", out.Rules[0].CategoryName)

	pattern := "uber ?eats"
	inactive := false
	updated, err := update.Execute(ctx, UpdateCategoryRuleInput{
		UserID:     userID,
		RuleID:     uber.Rule.ID,
		Pattern:    &pattern,
		CategoryID: &food.ID,
		Active:     &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, "uber ?eats", updated.Rule.Pattern)
	assert.Equal(t, food.ID, updated.Rule.CategoryID)
	assert.False(t, updated.Rule.Active)

	active, err := list.Execute(ctx, ListCategoryRulesInput{UserID: userID, ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, active.Rules, 1)
	assert.Equal(t, ifood.Rule.ID, active.Rules[0].ID)

	taken := "IFOOD"
	_, err = update.Execute(ctx, UpdateCategoryRuleInput{UserID: userID, RuleID: uber.Rule.ID, Pattern: &taken})
	assert.NoError(t, err, "uniqueness is on the stored pattern text")

	dup := "ifood"
	_, err = update.Execute(ctx, UpdateCategoryRuleInput{UserID: userID, RuleID: uber.Rule.ID, Pattern: &dup})
	requireRuleCode(t, err, domainerror.ErrCodeCategoryRulePatternExists)

	_, err = update.Execute(ctx, UpdateCategoryRuleInput{UserID: userID, RuleID: ifood.Rule.ID, Pattern: &dup, Priority: intPtr(9)})
	assert.NoError(t, err, "keeping its own pattern is not a conflict")

	_, err = update.Execute(ctx, UpdateCategoryRuleInput{UserID: uuid.New(), RuleID: ifood.Rule.ID, Priority: intPtr(1)})
	requireRuleCode(t, err, domainerror.ErrCodeCategoryRuleNotFound)
}

func TestDeleteCategoryRule(t *testing.T) {
	h := ledgertest.New(t)
	create := NewCreateCategoryRuleUseCase(h.Rules, h.Categories)
	del := NewDeleteCategoryRuleUseCase(h.Rules)
	ctx := context.Background()
	userID := uuid.New()
	transport := h.Category(t, "Transport", entity.CategoryTypeExpense)

	rule, err := create.Execute(ctx, CreateCategoryRuleInput{UserID: userID, Pattern: "uber", CategoryID: transport.ID})
	require.NoError(t, err)

	err = del.Execute(ctx, DeleteCategoryRuleInput{UserID: uuid.New(), RuleID: rule.Rule.ID})
	requireRuleCode(t, err, domainerror.ErrCodeCategoryRuleNotFound)

	require.NoError(t, del.Execute(ctx, DeleteCategoryRuleInput{UserID: userID, RuleID: rule.Rule.ID}))
	assert.Equal(t, int64(0), h.Count(t, "category_rules"))

	err = del.Execute(ctx, DeleteCategoryRuleInput{UserID: userID, RuleID: rule.Rule.ID})
	requireRuleCode(t, err, domainerror.ErrCodeCategoryRuleNotFound)
}

func TestTestPattern(t *testing.T) {
	h := ledgertest.New(t)
	uc := NewTestPatternUseCase(h.Transactions)
	ctx := context.Background()
	userID := uuid.New()
	account := h.Account(t, userID, "Checking", "1000.00")
	food := h.Category(t, "Food", entity.CategoryTypeExpense)

	post := func(owner uuid.UUID, description, amount string) {
		txn := entity.NewTransaction(owner, account.ID, food.ID, entity.TransactionTypeExpense,
			ledgertest.Dec(amount), h.Today(), h.Today(), description, entity.TransactionSourceManual)
		require.NoError(t, h.Transactions.Create(ctx, txn))
	}
	post(userID, "UBER *TRIP", "21.50")
	post(userID, "Uber Eats", "48.00")
	post(userID, "Padaria", "12.00")
	post(uuid.New(), "uber", "10.00")

	out, err := uc.Execute(ctx, TestPatternInput{UserID: userID, Pattern: "^uber"})
	require.NoError(t, err)
	assert.Equal(t, 2, out.MatchCount)
	require.Len(t, out.MatchingTransactions, 2)

	capped, err := uc.Execute(ctx, TestPatternInput{UserID: userID, Pattern: "uber", Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, capped.MatchCount, "count ignores the limit")
	assert.Len(t, capped.MatchingTransactions, 1)

	_, err = uc.Execute(ctx, TestPatternInput{UserID: userID, Pattern: "(uber"})
	requireRuleCode(t, err, domainerror.ErrCodeInvalidPattern)
}
