package errors

import (
	"errors"
	"fmt"
)

// InternalError is the error type carried through the application. It wraps
// an optional cause, a public hint safe to return to API consumers, and a
// mark (one of the sentinels in marks.go).
type InternalError struct {
	message           string
	hint              string
	reportableDetails map[string]interface{}
	cause             error
	mark              error
}

func (e *InternalError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s", e.message, e.cause.Error())
	}
	return e.message
}

// Unwrap exposes the cause chain to errors.Is / errors.As.
func (e *InternalError) Unwrap() error {
	return e.cause
}

// Is matches the mark as well as the cause chain.
func (e *InternalError) Is(target error) bool {
	if e.mark != nil && errors.Is(e.mark, target) {
		return true
	}
	return false
}

// Hint returns the public, user-safe hint for this error.
func (e *InternalError) Hint() string {
	return e.hint
}

// ReportableDetails returns structured details safe to expose to callers.
func (e *InternalError) ReportableDetails() map[string]interface{} {
	return e.reportableDetails
}

// Mark returns the sentinel this error was marked with.
func (e *InternalError) Mark() error {
	return e.mark
}

// ErrorBuilder builds an InternalError fluently. Terminate the chain with
// Mark, which returns the finished error.
type ErrorBuilder struct {
	err *InternalError
}

// NewError starts building an error with the given internal message.
func NewError(message string) *ErrorBuilder {
	return &ErrorBuilder{err: &InternalError{message: message}}
}

// NewErrorf starts building an error with a formatted internal message.
func NewErrorf(format string, args ...interface{}) *ErrorBuilder {
	return NewError(fmt.Sprintf(format, args...))
}

// WithError starts building an error wrapping an existing cause.
func WithError(err error) *ErrorBuilder {
	var ie *InternalError
	if errors.As(err, &ie) {
		// Preserve hint and details when re-wrapping one of our own errors.
		return &ErrorBuilder{err: &InternalError{
			message:           ie.message,
			hint:              ie.hint,
			reportableDetails: ie.reportableDetails,
			cause:             err,
		}}
	}
	return &ErrorBuilder{err: &InternalError{message: err.Error(), cause: err}}
}

// WithHint attaches a user-safe hint.
func (b *ErrorBuilder) WithHint(hint string) *ErrorBuilder {
	b.err.hint = hint
	return b
}

// WithHintf attaches a formatted user-safe hint.
func (b *ErrorBuilder) WithHintf(format string, args ...interface{}) *ErrorBuilder {
	b.err.hint = fmt.Sprintf(format, args...)
	return b
}

// WithReportableDetails attaches structured details exposed in API responses.
func (b *ErrorBuilder) WithReportableDetails(details map[string]interface{}) *ErrorBuilder {
	b.err.reportableDetails = details
	return b
}

// Mark classifies the error with one of the sentinel marks and returns it.
func (b *ErrorBuilder) Mark(mark error) error {
	b.err.mark = mark
	return b.err
}
