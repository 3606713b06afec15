package entity

import (
	"regexp"
	"sort"
	"time"

	"github.com/google/uuid"
)

// CategoryRule assigns a category to imported rows whose description matches
// Pattern. Patterns are regular expressions matched case-insensitively.
type CategoryRule struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Pattern    string
	CategoryID uuid.UUID
	Priority   int // Higher priority rules are checked first
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewCategoryRule creates a new active CategoryRule entity.
func NewCategoryRule(userID uuid.UUID, pattern string, categoryID uuid.UUID, priority int) *CategoryRule {
	now := time.Now().UTC()

	return &CategoryRule{
		ID:         uuid.New(),
		UserID:     userID,
		Pattern:    pattern,
		CategoryID: categoryID,
		Priority:   priority,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// CompilePattern compiles a rule pattern the way the matcher applies it.
func CompilePattern(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile("(?i)" + pattern)
}

// CategoryRuleWithCategory represents a rule with the category it assigns.
type CategoryRuleWithCategory struct {
	Rule     *CategoryRule
	Category *Category
}

type compiledRule struct {
	re           *regexp.Regexp
	categoryID   uuid.UUID
	categoryType CategoryType
}

// RuleMatcher resolves categories for descriptions against a fixed rule set.
type RuleMatcher struct {
	rules []compiledRule
}

// NewRuleMatcher compiles the active rules, highest priority first. Rules
// whose pattern no longer compiles or whose category is missing are skipped.
func NewRuleMatcher(rules []*CategoryRuleWithCategory) *RuleMatcher {
	ordered := make([]*CategoryRuleWithCategory, 0, len(rules))
	for _, r := range rules {
		if r.Rule.Active && r.Category != nil {
			ordered = append(ordered, r)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Rule.Priority != ordered[j].Rule.Priority {
			return ordered[i].Rule.Priority > ordered[j].Rule.Priority
		}
		return ordered[i].Rule.CreatedAt.Before(ordered[j].Rule.CreatedAt)
	})

	m := &RuleMatcher{rules: make([]compiledRule, 0, len(ordered))}
	for _, r := range ordered {
		re, err := CompilePattern(r.Rule.Pattern)
		if err != nil {
			continue
		}
		m.rules = append(m.rules, compiledRule{
			re:           re,
			categoryID:   r.Category.ID,
			categoryType: r.Category.Type,
		})
	}
	return m
}

// Match returns the category of the first rule matching description whose
// category has the given type.
func (m *RuleMatcher) Match(description string, categoryType CategoryType) (uuid.UUID, bool) {
	if m == nil {
		return uuid.Nil, false
	}
	for _, r := range m.rules {
		if r.categoryType == categoryType && r.re.MatchString(description) {
			return r.categoryID, true
		}
	}
	return uuid.Nil, false
}

// Len returns the number of usable rules.
func (m *RuleMatcher) Len() int {
	if m == nil {
		return 0
	}
	return len(m.rules)
}
