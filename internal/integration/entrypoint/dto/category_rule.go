package dto

import (
	"time"

	categoryrule "github.com/finance-tracker/ledger/internal/application/usecase/category_rule"
)

// CreateCategoryRuleRequest represents the request body for rule creation.
type CreateCategoryRuleRequest struct {
	Pattern    string `json:"pattern" binding:"required"`
	CategoryID string `json:"category_id" binding:"required"`
	Priority   *int   `json:"priority,omitempty"`
}

// UpdateCategoryRuleRequest represents the request body for rule update.
type UpdateCategoryRuleRequest struct {
	Pattern    *string `json:"pattern,omitempty"`
	CategoryID *string `json:"category_id,omitempty"`
	Priority   *int    `json:"priority,omitempty"`
	Active     *bool   `json:"active,omitempty"`
}

// TestPatternRequest represents the request body for previewing a pattern.
type TestPatternRequest struct {
	Pattern string `json:"pattern" binding:"required"`
	Limit   int    `json:"limit,omitempty"`
}

// CategoryRuleResponse represents a single rule in API responses.
type CategoryRuleResponse struct {
	ID           string    `json:"id"`
	Pattern      string    `json:"pattern"`
	CategoryID   string    `json:"category_id"`
	CategoryName string    `json:"category_name"`
	CategoryType string    `json:"category_type"`
	Priority     int       `json:"priority"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CategoryRuleListResponse represents the response for listing rules.
type CategoryRuleListResponse struct {
	Rules []CategoryRuleResponse `json:"rules"`
}

// MatchingTransactionResponse is a transaction matched by a previewed pattern.
type MatchingTransactionResponse struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Date        string `json:"date"`
}

// TestPatternResponse represents the result of previewing a pattern.
type TestPatternResponse struct {
	MatchCount           int                           `json:"match_count"`
	MatchingTransactions []MatchingTransactionResponse `json:"matching_transactions"`
}

// ToCategoryRuleResponse converts a RuleOutput to a CategoryRuleResponse DTO.
func ToCategoryRuleResponse(r *categoryrule.RuleOutput) CategoryRuleResponse {
	return CategoryRuleResponse{
		ID:           r.ID.String(),
		Pattern:      r.Pattern,
		CategoryID:   r.CategoryID.String(),
		CategoryName: r.CategoryName,
		CategoryType: string(r.CategoryType),
		Priority:     r.Priority,
		Active:       r.Active,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// ToCategoryRuleListResponse converts a ListCategoryRulesOutput to its DTO.
func ToCategoryRuleListResponse(output *categoryrule.ListCategoryRulesOutput) CategoryRuleListResponse {
	rules := make([]CategoryRuleResponse, len(output.Rules))
	for i, r := range output.Rules {
		rules[i] = ToCategoryRuleResponse(r)
	}
	return CategoryRuleListResponse{Rules: rules}
}

// ToTestPatternResponse converts a TestPatternOutput to its DTO.
func ToTestPatternResponse(output *categoryrule.TestPatternOutput) TestPatternResponse {
	matches := make([]MatchingTransactionResponse, len(output.MatchingTransactions))
	for i, m := range output.MatchingTransactions {
		matches[i] = MatchingTransactionResponse{
			ID:          m.ID.String(),
			Description: m.Description,
			Amount:      Money(m.Amount),
			Date:        Date(m.Date),
		}
	}
	return TestPatternResponse{
		MatchCount:           output.MatchCount,
		MatchingTransactions: matches,
	}
}
