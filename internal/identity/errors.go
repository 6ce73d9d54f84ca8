package identity

import (
	"errors"
	"fmt"
)

// Sentinel errors for account creation. The typed errors below match them via errors.Is.
var (
	ErrMissingLoginValue    = errors.New("login value is missing")
	ErrMissingRequiredField = errors.New("missing required field")
	ErrDuplicateField       = errors.New("duplicate field")
	ErrInvalidField         = errors.New("invalid field")
)

// MissingFieldError reports a required record field that is absent or empty.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing %s", e.Field)
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingRequiredField
}

// DuplicateFieldError reports a unique field whose value is already taken,
// whether found by the pre-check or raised by the store on insert.
type DuplicateFieldError struct {
	Field string
	Value string
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("user with %s %q already exists", e.Field, e.Value)
}

func (e *DuplicateFieldError) Is(target error) bool {
	return target == ErrDuplicateField
}

// InvalidFieldError reports a present field with an unusable value.
type InvalidFieldError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

func (e *InvalidFieldError) Is(target error) bool {
	return target == ErrInvalidField
}
