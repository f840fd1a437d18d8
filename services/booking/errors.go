package booking

import "fmt"

// ConflictError reports a booking that cannot proceed because of current
// scheduling state (slot taken, duplicate same-day appointment). Nothing is
// mutated when one is returned.
type ConflictError struct {
	Code    string
	Message string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewConflictError(msg string) error {
	return &ConflictError{
		Code:    "bookingConflict",
		Message: msg,
	}
}

// NotFoundError hides whether the requested record exists at all from callers
// who do not own it.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(what string) error {
	return &NotFoundError{Message: what + " not found"}
}

// ValidationError reports bad booking input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validationError: %s", e.Message)
}

func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}
