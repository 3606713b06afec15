package error

import "errors"

// Debt domain errors.
var (
	// ErrDebtNotFound is returned when a debt is not found for the user.
	ErrDebtNotFound = errors.New("debt not found")

	// ErrDebtFieldsRequired is returned when a debt has no name or start date.
	ErrDebtFieldsRequired = errors.New("debt name and start date are required")

	// ErrInvalidDebtAmount is returned when a debt amount is not positive.
	ErrInvalidDebtAmount = errors.New("invalid debt amount")

	// ErrInvalidInterestRate is returned when the interest rate is negative.
	ErrInvalidInterestRate = errors.New("invalid interest rate")

	// ErrInvalidPaymentAmount is returned when a payment amount or split part is invalid.
	ErrInvalidPaymentAmount = errors.New("invalid payment amount")

	// ErrPaymentSplitMismatch is returned when principal plus interest differs from the total.
	ErrPaymentSplitMismatch = errors.New("principal plus interest must equal the payment amount")
)

// DebtErrorCode defines error codes for debt errors.
// Format: DBT-XXYYYY where XX is category and YYYY is specific error.
type DebtErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeDebtNotFound         DebtErrorCode = "DBT-010001"
	ErrCodeInvalidDebtAmount    DebtErrorCode = "DBT-010002"
	ErrCodeInvalidInterestRate  DebtErrorCode = "DBT-010003"
	ErrCodeInvalidPaymentAmount DebtErrorCode = "DBT-010004"
	ErrCodePaymentSplitMismatch DebtErrorCode = "DBT-010005"
	ErrCodeInvalidDebtDueDay    DebtErrorCode = "DBT-010006"
	ErrCodeMissingDebtFields    DebtErrorCode = "DBT-010007"
)

// DebtError represents a debt error with code and message.
type DebtError struct {
	Code    DebtErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *DebtError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *DebtError) Unwrap() error {
	return e.Err
}

// NewDebtError creates a new DebtError with the given code and message.
func NewDebtError(code DebtErrorCode, message string, err error) *DebtError {
	return &DebtError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
