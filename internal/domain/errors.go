package domain

import (
	"fmt"
	"strings"
)

// Error types for consistent error handling across the API.

// ErrNotFound indicates a resource was not found.
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrExternalService indicates a failure in an external service call.
type ErrExternalService struct {
	Service string
	Err     error
}

func (e *ErrExternalService) Error() string {
	return fmt.Sprintf("external service error [%s]: %v", e.Service, e.Err)
}

func (e *ErrExternalService) Unwrap() error {
	return e.Err
}

// ErrTimeout indicates an operation exceeded its deadline.
type ErrTimeout struct {
	Operation string
}

func (e *ErrTimeout) Error() string {
	return fmt.Sprintf("operation timed out: %s", e.Operation)
}

// ErrCircuitOpen indicates the circuit breaker is open.
type ErrCircuitOpen struct {
	Service string
}

func (e *ErrCircuitOpen) Error() string {
	return fmt.Sprintf("circuit breaker open for service: %s", e.Service)
}

// ErrValidation indicates a validation error (bad input).
// When Field is empty the message is reported verbatim.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("validation error on '%s': %s", e.Field, e.Message)
}

// ErrNotCalculable indicates a calculation was requested while the
// dashboard guard (non-empty selection, non-zero duration) does not hold.
type ErrNotCalculable struct {
	SelectionSize int
	Duration      Duration
}

func (e *ErrNotCalculable) Error() string {
	switch {
	case e.SelectionSize == 0 && e.Duration == DurationNone:
		return "nothing to calculate: no transaction type selected and duration is 0"
	case e.SelectionSize == 0:
		return "nothing to calculate: no transaction type selected"
	default:
		return "nothing to calculate: duration is 0"
	}
}

// ErrMissingCoefficient indicates a transaction type has no entry in the
// calculator's coefficient tables.
type ErrMissingCoefficient struct {
	TransactionType TransactionType
}

func (e *ErrMissingCoefficient) Error() string {
	return fmt.Sprintf("no calculator coefficients for transaction type %q", e.TransactionType)
}

// ErrInvalidCatalog lists every hierarchy violation found while indexing a catalog.
type ErrInvalidCatalog struct {
	Problems []string
}

func (e *ErrInvalidCatalog) Error() string {
	return "invalid transaction type catalog: " + strings.Join(e.Problems, "; ")
}
