package error

import (
	"errors"
	"fmt"
)

// StorageError wraps a persistence failure. Callers may retry or alert; it
// never indicates bad input.
type StorageError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError wraps err as a storage failure of op. A nil err stays nil,
// and errors that are already classified pass through unchanged.
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsPrecondition(err) || IsStorage(err) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

// IsStorage reports whether err is a storage failure.
func IsStorage(err error) bool {
	var storageErr *StorageError
	return errors.As(err, &storageErr)
}

// IsPrecondition reports whether err is a rejected request the caller can
// correct. Precondition failures happen before any write becomes visible.
func IsPrecondition(err error) bool {
	var (
		accountErr     *AccountError
		transactionErr *TransactionError
		categoryErr    *CategoryError
		cardErr        *CreditCardError
		debtErr        *DebtError
		investmentErr  *InvestmentError
		authErr        *AuthError
		dashboardErr   *DashboardError
		ruleErr        *CategoryRuleError
	)
	return errors.As(err, &accountErr) ||
		errors.As(err, &transactionErr) ||
		errors.As(err, &categoryErr) ||
		errors.As(err, &cardErr) ||
		errors.As(err, &debtErr) ||
		errors.As(err, &investmentErr) ||
		errors.As(err, &authErr) ||
		errors.As(err, &dashboardErr) ||
		errors.As(err, &ruleErr)
}
