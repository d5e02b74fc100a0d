package strategist

import (
	"errors"
	"fmt"
)

// InputError reports an unusable request. The server answers 400.
type InputError struct {
	Message string
	Cause   error
}

// Error implements the error interface
func (e *InputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Cause.Error())
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *InputError) Unwrap() error {
	return e.Cause
}

// IsInputError checks if an error is an input error
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}
