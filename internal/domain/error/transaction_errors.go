// Package error defines domain-specific errors for the ledger service.
package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is not found in the system.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidTransactionType is returned when the transaction type is invalid.
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrInvalidTransactionDate is returned when the transaction date is invalid.
	ErrInvalidTransactionDate = errors.New("invalid transaction date")

	// ErrInvalidTransactionAmount is returned when the transaction amount is not positive.
	ErrInvalidTransactionAmount = errors.New("invalid transaction amount")

	// ErrCategoryNotFoundForTransaction is returned when the specified category is not found.
	ErrCategoryNotFoundForTransaction = errors.New("category not found")

	// ErrCategoryTypeMismatch is returned when the category type differs from the transaction type.
	ErrCategoryTypeMismatch = errors.New("category type does not match transaction type")

	// ErrDescriptionTooLong is returned when the transaction description exceeds the maximum length.
	ErrDescriptionTooLong = errors.New("description too long")

	// ErrTransactionAlreadyCompleted is returned when completing a completed transaction.
	ErrTransactionAlreadyCompleted = errors.New("transaction is already completed")

	// ErrTransactionAlreadyPending is returned when reverting a pending transaction.
	ErrTransactionAlreadyPending = errors.New("transaction is already pending")

	// ErrTransactionStatusChanged is returned when a concurrent writer changed the status first.
	ErrTransactionStatusChanged = errors.New("transaction status changed concurrently")

	// ErrSameTransferAccount is returned when a transfer source equals its destination.
	ErrSameTransferAccount = errors.New("transfer source and destination must differ")

	// ErrTransferCategoriesMissing is returned when the transfer categories are not configured.
	ErrTransferCategoriesMissing = errors.New("transfer categories are not configured")

	// ErrTransferLegImmutable is returned when editing a field a transfer leg cannot change.
	ErrTransferLegImmutable = errors.New("transfer leg field cannot be changed")

	// ErrTransferCounterLegMissing is returned when a transfer leg has lost its counterpart.
	ErrTransferCounterLegMissing = errors.New("transfer counter leg not found")

	// ErrBookedTransactionImmutable is returned when editing or reverting a
	// movement owned by an invoice settlement, debt payment or investment operation.
	ErrBookedTransactionImmutable = errors.New("transaction is booked by another record")

	// ErrEmptyImportBatch is returned when an import batch has no rows.
	ErrEmptyImportBatch = errors.New("import batch is empty")

	// ErrImportBatchTooLarge is returned when an import batch exceeds the row limit.
	ErrImportBatchTooLarge = errors.New("import batch is too large")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTransactionType   TransactionErrorCode = "TXN-010001"
	ErrCodeInvalidTransactionDate   TransactionErrorCode = "TXN-010002"
	ErrCodeInvalidTransactionAmount TransactionErrorCode = "TXN-010003"
	ErrCodeTransactionNotFound      TransactionErrorCode = "TXN-010004"
	ErrCodeNotAuthorizedTransaction TransactionErrorCode = "TXN-010005"
	ErrCodeTxnCategoryNotFound      TransactionErrorCode = "TXN-010006"
	ErrCodeTxnCategoryMismatch      TransactionErrorCode = "TXN-010007"
	ErrCodeDescriptionTooLong       TransactionErrorCode = "TXN-010008"
	ErrCodeMissingTransactionFields TransactionErrorCode = "TXN-010010"
	ErrCodeEmptyImportBatch         TransactionErrorCode = "TXN-010011"
	ErrCodeImportBatchTooLarge      TransactionErrorCode = "TXN-010012"

	// State errors (02XXXX)
	ErrCodeAlreadyCompleted TransactionErrorCode = "TXN-020001"
	ErrCodeAlreadyPending   TransactionErrorCode = "TXN-020002"
	ErrCodeStatusChanged    TransactionErrorCode = "TXN-020003"

	// Transfer errors (03XXXX)
	ErrCodeSameTransferAccount       TransactionErrorCode = "TXN-030001"
	ErrCodeTransferCategoriesMissing TransactionErrorCode = "TXN-030002"
	ErrCodeTransferLegImmutable      TransactionErrorCode = "TXN-030003"
	ErrCodeTransferCounterLegMissing TransactionErrorCode = "TXN-030004"

	// Booked movement errors (04XXXX)
	ErrCodeBookedTransactionImmutable TransactionErrorCode = "TXN-040001"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
