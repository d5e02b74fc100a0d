package client

import (
	"errors"
	"fmt"
)

// ErrorType categorizes a failed call to the analysis service
type ErrorType string

const (
	// ErrTypeService indicates a non-2xx response
	ErrTypeService ErrorType = "service"

	// ErrTypeNetwork indicates the request never produced a response
	ErrTypeNetwork ErrorType = "network"

	// ErrTypeTimeout indicates the request or its context timed out
	ErrTypeTimeout ErrorType = "timeout"

	// ErrTypeDecode indicates a 2xx response whose body could not be read
	ErrTypeDecode ErrorType = "decode"
)

// ServiceError is returned by every failed Client call
type ServiceError struct {
	// Type categorizes the error
	Type ErrorType `json:"type"`

	// StatusCode is set for ErrTypeService
	StatusCode int `json:"status_code,omitempty"`

	// Message is the text shown to the user: the server's own message or
	// a generic fallback
	Message string `json:"message"`

	// Cause is the underlying transport or decode error
	Cause error `json:"-"`
}

// Error implements the error interface
func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// Is matches another ServiceError of the same type
func (e *ServiceError) Is(target error) bool {
	if se, ok := target.(*ServiceError); ok {
		return e.Type == se.Type
	}
	return false
}

// NewServiceError creates an error for a non-2xx response
func NewServiceError(status int, message string) *ServiceError {
	return &ServiceError{
		Type:       ErrTypeService,
		StatusCode: status,
		Message:    message,
	}
}

// NewTransportError creates a network, timeout or decode error
func NewTransportError(errType ErrorType, message string, cause error) *ServiceError {
	return &ServiceError{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// IsServiceError reports whether the service answered with a failure status
func IsServiceError(err error) bool {
	var se *ServiceError
	return errors.As(err, &se) && se.Type == ErrTypeService
}

// IsTransportError reports whether no usable response was received
func IsTransportError(err error) bool {
	var se *ServiceError
	if !errors.As(err, &se) {
		return false
	}
	switch se.Type {
	case ErrTypeNetwork, ErrTypeTimeout, ErrTypeDecode:
		return true
	default:
		return false
	}
}

// UserMessage returns the text to show for err: the service message when
// there is one, otherwise err's own text
func UserMessage(err error) string {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Message
	}
	return err.Error()
}
