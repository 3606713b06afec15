package error

import "errors"

// Investment domain errors.
var (
	// ErrInvestmentNotFound is returned when an investment is not found for the user.
	ErrInvestmentNotFound = errors.New("investment not found")

	// ErrInvestmentNameRequired is returned when an investment has no name.
	ErrInvestmentNameRequired = errors.New("investment name is required")

	// ErrInvalidInvestmentType is returned when the asset class is unknown.
	ErrInvalidInvestmentType = errors.New("invalid investment type")

	// ErrInvalidOperationType is returned when the operation type is unknown.
	ErrInvalidOperationType = errors.New("invalid operation type")

	// ErrInvalidOperationValues is returned when quantity, price or fees are invalid.
	ErrInvalidOperationValues = errors.New("invalid operation values")

	// ErrInsufficientQuantity is returned when selling more than the position holds.
	ErrInsufficientQuantity = errors.New("insufficient quantity")
)

// InvestmentErrorCode defines error codes for investment errors.
// Format: INV-XXYYYY where XX is category and YYYY is specific error.
type InvestmentErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvestmentNotFound      InvestmentErrorCode = "INV-010001"
	ErrCodeInvalidInvestmentType   InvestmentErrorCode = "INV-010002"
	ErrCodeInvalidOperationType    InvestmentErrorCode = "INV-010003"
	ErrCodeInvalidOperationValues  InvestmentErrorCode = "INV-010004"
	ErrCodeMissingInvestmentFields InvestmentErrorCode = "INV-010005"

	// State errors (02XXXX)
	ErrCodeInsufficientQuantity InvestmentErrorCode = "INV-020001"
)

// InvestmentError represents an investment error with code and message.
type InvestmentError struct {
	Code    InvestmentErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *InvestmentError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *InvestmentError) Unwrap() error {
	return e.Err
}

// NewInvestmentError creates a new InvestmentError with the given code and message.
func NewInvestmentError(code InvestmentErrorCode, message string, err error) *InvestmentError {
	return &InvestmentError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
