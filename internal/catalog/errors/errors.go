// Package errors defines the failure taxonomy shared by the catalog handlers
// and the transport layer.
package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrProductNotFound is returned when a product does not exist or is no longer
// available. The two conditions are indistinguishable to callers.
var ErrProductNotFound = errors.New("product not found or unavailable")

// ValidationError reports invalid input or a violated domain invariant.
// MissingIDs is populated only by batch validation.
type ValidationError struct {
	Reason     string
	MissingIDs []uuid.UUID
}

func (e *ValidationError) Error() string {
	if len(e.MissingIDs) == 0 {
		return e.Reason
	}
	ids := make([]string, len(e.MissingIDs))
	for i, id := range e.MissingIDs {
		ids[i] = id.String()
	}
	return fmt.Sprintf("%s: [%s]", e.Reason, strings.Join(ids, ", "))
}

// NewValidationError creates a ValidationError with the given reason.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// StorageError wraps a persistence failure. The cause is kept for logs; callers
// should treat it as opaque.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure in %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// DispatchError indicates an intent with no registered handler. This is a wiring
// defect, not a runtime condition.
type DispatchError struct {
	Intent string
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("no handler registered for intent %q", e.Intent)
}
