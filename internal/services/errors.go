package services

import (
	"errors"
	"fmt"

	"erp-ledger/internal/repositories"
)

// Ledger error kinds. Callers match them with errors.Is.
var (
	// ErrNotFound is returned when an order, invoice, product or customer id does not resolve.
	ErrNotFound = errors.New("not found")

	// ErrInvalidAmount is returned when a payment amount is zero or negative.
	ErrInvalidAmount = errors.New("payment amount must be greater than zero")

	// ErrExceedsBalance is returned when a payment is larger than the remaining balance.
	ErrExceedsBalance = errors.New("payment exceeds remaining balance")

	// ErrNegativeTotal is returned when discounts push an order total below zero.
	ErrNegativeTotal = errors.New("total cannot be negative")

	// ErrInvalidTransition is returned when an invoice status change is not allowed.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrValidation is returned for malformed input such as an unknown status.
	ErrValidation = errors.New("validation failed")

	// ErrCorruptPersistedState is recovered during load and only ever logged.
	ErrCorruptPersistedState = repositories.ErrCorruptPersistedState
)

// LedgerError wraps a ledger error kind with the operation that failed
type LedgerError struct {
	Op      string
	Err     error
	Details string
}

func (e *LedgerError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %v: %s", e.Op, e.Err, e.Details)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *LedgerError) Unwrap() error {
	return e.Err
}

func (e *LedgerError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

func newLedgerError(op string, err error, details string) *LedgerError {
	return &LedgerError{Op: op, Err: err, Details: details}
}

// ValidationError reports a rejected input field
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s (value: %v)", e.Field, e.Message, e.Value)
}

// Is lets errors.Is(err, ErrValidation) match any ValidationError
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}
