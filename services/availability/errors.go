package availability

import "fmt"

// ValidationError reports bad generator input. Nothing is mutated when one is
// returned.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validationError: %s", e.Message)
}

func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}
