package error

import "errors"

// Category rule errors. Rules only categorize imported rows, so none of these
// ever touch a balance.
var (
	// ErrCategoryRuleNotFound is returned when the user owns no rule with the given ID.
	ErrCategoryRuleNotFound = errors.New("category rule not found")

	// ErrCategoryRulePatternExists is returned when the user already has a rule with the pattern.
	ErrCategoryRulePatternExists = errors.New("category rule pattern already exists")

	// ErrInvalidPattern is returned when the pattern is not a valid regular expression.
	ErrInvalidPattern = errors.New("invalid regex pattern")

	// ErrPatternTooLong is returned when the pattern exceeds the maximum length.
	ErrPatternTooLong = errors.New("pattern too long")

	// ErrCategoryRuleMissingFields is returned when the pattern is empty.
	ErrCategoryRuleMissingFields = errors.New("pattern is required")

	// ErrSystemCategoryRule is returned when a rule targets a system category.
	ErrSystemCategoryRule = errors.New("rules cannot assign system categories")
)

// CategoryRuleErrorCode defines error codes for category rule errors.
// Format: RUL-XXYYYY where XX is category and YYYY is specific error.
type CategoryRuleErrorCode string

const (
	// Pattern validation errors (01XXXX)
	ErrCodeMissingRuleFields CategoryRuleErrorCode = "RUL-010001"
	ErrCodeInvalidPattern    CategoryRuleErrorCode = "RUL-010002"
	ErrCodePatternTooLong    CategoryRuleErrorCode = "RUL-010003"

	// Lookup errors (02XXXX)
	ErrCodeCategoryRuleNotFound    CategoryRuleErrorCode = "RUL-020001"
	ErrCodeCategoryNotFoundForRule CategoryRuleErrorCode = "RUL-020002"

	// Integrity errors (03XXXX)
	ErrCodeCategoryRulePatternExists CategoryRuleErrorCode = "RUL-030001"
	ErrCodeSystemCategoryRule        CategoryRuleErrorCode = "RUL-030002"
)

// CategoryRuleError carries a rule error code alongside its sentinel.
type CategoryRuleError struct {
	Code    CategoryRuleErrorCode
	Message string
	Err     error
}

func (e *CategoryRuleError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *CategoryRuleError) Unwrap() error {
	return e.Err
}

// NewCategoryRuleError creates a new CategoryRuleError.
func NewCategoryRuleError(code CategoryRuleErrorCode, message string, err error) *CategoryRuleError {
	return &CategoryRuleError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
