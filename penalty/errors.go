package penalty

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is matched by every ValidationError.
	ErrValidation = errors.New("invalid arrest report")
	// ErrPersistence wraps failures returned by the Store.
	ErrPersistence = errors.New("failed to persist arrest report")
)

// ValidationError represents a rejected form field
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// Is allows error comparison using errors.Is
func (e ValidationError) Is(target error) bool {
	return target == ErrValidation
}
