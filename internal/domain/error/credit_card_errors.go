package error

import "errors"

// Credit card domain errors.
var (
	// ErrCreditCardNotFound is returned when a card is not found for the user.
	ErrCreditCardNotFound = errors.New("credit card not found")

	// ErrCreditCardNameRequired is returned when the card name is empty.
	ErrCreditCardNameRequired = errors.New("credit card name is required")

	// ErrCreditCardInactive is returned when recording a purchase on a deactivated card.
	ErrCreditCardInactive = errors.New("credit card is inactive")

	// ErrInvalidDueDay is returned when the due day is outside 1..31.
	ErrInvalidDueDay = errors.New("invalid due day")

	// ErrInvalidCardLimit is returned when the card limit is negative.
	ErrInvalidCardLimit = errors.New("invalid card limit")

	// ErrInvalidInstallments is returned when a purchase has fewer than one installment.
	ErrInvalidInstallments = errors.New("invalid installments")

	// ErrPurchaseDescriptionRequired is returned when a purchase has no description.
	ErrPurchaseDescriptionRequired = errors.New("purchase description is required")

	// ErrInvalidPurchaseAmount is returned when the purchase total is not positive.
	ErrInvalidPurchaseAmount = errors.New("invalid purchase amount")

	// ErrPurchaseNotFound is returned when a purchase is not found on the card.
	ErrPurchaseNotFound = errors.New("purchase not found")

	// ErrPurchaseHasPaidInstallments is returned when deleting a partially settled purchase.
	ErrPurchaseHasPaidInstallments = errors.New("purchase has paid installments")

	// ErrInvoiceEmpty is returned when paying a month with nothing due.
	ErrInvoiceEmpty = errors.New("invoice has no pending installments")

	// ErrInvoiceChanged is returned when installments were settled concurrently.
	ErrInvoiceChanged = errors.New("invoice changed concurrently")
)

// CreditCardErrorCode defines error codes for credit card errors.
// Format: CRD-XXYYYY where XX is category and YYYY is specific error.
type CreditCardErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeCreditCardNotFound      CreditCardErrorCode = "CRD-010001"
	ErrCodeInvalidDueDay           CreditCardErrorCode = "CRD-010002"
	ErrCodeInvalidCardLimit        CreditCardErrorCode = "CRD-010003"
	ErrCodeInvalidInstallments     CreditCardErrorCode = "CRD-010004"
	ErrCodeInvalidPurchaseAmount   CreditCardErrorCode = "CRD-010005"
	ErrCodePurchaseNotFound        CreditCardErrorCode = "CRD-010006"
	ErrCodeCardCategoryNotFound    CreditCardErrorCode = "CRD-010007"
	ErrCodeCardCategoryMismatch    CreditCardErrorCode = "CRD-010008"
	ErrCodeInvalidInvoiceMonth     CreditCardErrorCode = "CRD-010009"
	ErrCodeMissingCreditCardFields CreditCardErrorCode = "CRD-010010"

	// State errors (02XXXX)
	ErrCodeCreditCardInactive          CreditCardErrorCode = "CRD-020001"
	ErrCodePurchaseHasPaidInstallments CreditCardErrorCode = "CRD-020002"
	ErrCodeInvoiceEmpty                CreditCardErrorCode = "CRD-020003"
	ErrCodeInvoiceChanged              CreditCardErrorCode = "CRD-020004"
)

// CreditCardError represents a credit card error with code and message.
type CreditCardError struct {
	Code    CreditCardErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CreditCardError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CreditCardError) Unwrap() error {
	return e.Err
}

// NewCreditCardError creates a new CreditCardError with the given code and message.
func NewCreditCardError(code CreditCardErrorCode, message string, err error) *CreditCardError {
	return &CreditCardError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
