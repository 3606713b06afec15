package error

import "errors"

// Account domain errors.
var (
	// ErrAccountNotFound is returned when an account is not found for the user.
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccountInactive is returned when a mutation references a deactivated account.
	ErrAccountInactive = errors.New("account is inactive")

	// ErrInvalidAccountKind is returned when the account kind is invalid.
	ErrInvalidAccountKind = errors.New("invalid account kind")

	// ErrAccountNameRequired is returned when the account name is empty.
	ErrAccountNameRequired = errors.New("account name is required")

	// ErrInvalidMonth is returned when a month is not in YYYY-MM form.
	ErrInvalidMonth = errors.New("invalid month")

	// ErrInvalidInitialBalance is returned when the initial balance is finer than a cent.
	ErrInvalidInitialBalance = errors.New("invalid initial balance")
)

// AccountErrorCode defines error codes for account errors.
// Format: ACC-XXYYYY where XX is category and YYYY is specific error.
type AccountErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeAccountNotFound       AccountErrorCode = "ACC-010001"
	ErrCodeInvalidAccountKind    AccountErrorCode = "ACC-010002"
	ErrCodeAccountNameRequired   AccountErrorCode = "ACC-010003"
	ErrCodeInvalidMonth          AccountErrorCode = "ACC-010004"
	ErrCodeInvalidInitialBalance AccountErrorCode = "ACC-010005"

	// State errors (02XXXX)
	ErrCodeAccountInactive AccountErrorCode = "ACC-020001"
)

// AccountError represents an account error with code and message.
type AccountError struct {
	Code    AccountErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AccountError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AccountError) Unwrap() error {
	return e.Err
}

// NewAccountError creates a new AccountError with the given code and message.
func NewAccountError(code AccountErrorCode, message string, err error) *AccountError {
	return &AccountError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
