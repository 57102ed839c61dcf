package pipestock

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the stores and protocols. Handlers map these to
// HTTP status codes; everything else is treated as a persistence failure.
var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrNotFound          = errors.New("stock item not found")
	ErrInvalidOperation  = errors.New("invalid operation")
)

// ValidationError rejects a malformed request before any store access.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func validationErr(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
