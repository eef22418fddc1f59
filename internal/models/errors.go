package models

import (
	"errors"
	"fmt"
)

// Domain error taxonomy. Handlers map these onto HTTP status codes;
// everything else is treated as an internal error.
var (
	// ErrNotFound means a referenced couple/list/item does not resolve in
	// the caller's current view.
	ErrNotFound = errors.New("not found")

	// ErrValidation means required shared context is missing or a request
	// field is out of range.
	ErrValidation = errors.New("validation failed")

	// ErrOwnershipViolation means an edit tried to flip an entity's hidden
	// flag. Hiddenness is wedded to the access scope chosen at creation;
	// changing it would require re-creating the entity under the other
	// scope, so the edit is rejected outright.
	ErrOwnershipViolation = errors.New("hidden visibility cannot be changed after creation")
)

// ValidationErrorf wraps ErrValidation with a formatted reason.
func ValidationErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrValidation}, args...)...)
}
