package domain

import (
	"errors"
	"fmt"
)

// ValidationError reports raw input that failed a value type's rule.
// Field names the offending attribute so handlers can surface it.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// OperationError reports an illegal state transition or a structural
// invariant violation on an otherwise valid aggregate.
type OperationError struct {
	Message string
}

func (e *OperationError) Error() string {
	return e.Message
}

func NewOperationError(format string, args ...any) error {
	return &OperationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err (or anything it wraps) is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsOperation reports whether err (or anything it wraps) is an OperationError.
func IsOperation(err error) bool {
	var oe *OperationError
	return errors.As(err, &oe)
}

// AsValidation unwraps err into a ValidationError, or returns nil.
func AsValidation(err error) *ValidationError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}
