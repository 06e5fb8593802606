package core

import "github.com/pkg/errors"

// FieldError ties a rejected value to the record field that caused it.
type FieldError struct {
	Field string
	Error string
}

// ValidationError rejects a user action before any mutation happens. The API
// layer renders Fields as a field -> message map on a 400 response.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// shutdown signals an integrity problem the server should not survive.
type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

// IsShutdown reports whether err (at its cause) asks for a graceful shutdown.
func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
