// Package apperror defines the small set of error kinds every domain failure
// is reduced to before it reaches a caller, and how each kind maps onto HTTP.
package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"catalog-backend/internal/shared/validation"
)

// Kind classifies a failure.
type Kind string

const (
	KindValidation Kind = "VALIDATION_FAILED"
	KindNotFound   Kind = "NOT_FOUND"
	KindConflict   Kind = "CONFLICT"
	KindUnexpected Kind = "UNEXPECTED"
)

// Label is the short error label shown to clients.
func (k Kind) Label() string {
	switch k {
	case KindValidation:
		return "Validation Failed"
	case KindNotFound:
		return "Resource Not Found"
	case KindConflict:
		return "Conflict"
	default:
		return "Internal Server Error"
	}
}

// HTTPStatus maps a kind to its transport status code.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified failure.
type Error struct {
	Kind    Kind
	Message string

	// NotFound
	Entity string
	Field  string
	Key    any

	// ValidationFailed
	Fields map[string]string

	// Extra structured context (e.g. book_count on delete conflicts).
	Details map[string]any

	Err error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Kind == KindUnexpected {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap records cause as the underlying error so errors.Is keeps matching
// domain sentinels.
func (e *Error) Wrap(cause error) *Error {
	e.Err = cause
	return e
}

// WithDetail attaches a structured detail.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// Validation builds a ValidationFailed error from per-field messages.
func Validation(fields map[string]string) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: "request validation failed",
		Fields:  fields,
	}
}

// InvalidParam is a ValidationFailed error for a single path or query parameter.
func InvalidParam(name, message string) *Error {
	return Validation(map[string]string{name: message})
}

// FromValidation converts binding and rule errors into ValidationFailed.
// Errors that carry no field information become a body-level message.
func FromValidation(err error) *Error {
	if fields, ok := validation.FieldErrors(err); ok {
		return Validation(fields).Wrap(err)
	}
	return Validation(map[string]string{validation.BodyField: err.Error()}).Wrap(err)
}

// NotFound reports a missing entity looked up by field = key.
func NotFound(entity, field string, key any) *Error {
	return &Error{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found with %s = '%v'", entity, field, key),
		Entity:  entity,
		Field:   field,
		Key:     key,
	}
}

// Conflict reports a violated uniqueness or referential invariant.
func Conflict(format string, args ...any) *Error {
	return &Error{
		Kind:    KindConflict,
		Message: fmt.Sprintf(format, args...),
	}
}

// Unexpected wraps any other failure.
func Unexpected(err error) *Error {
	return &Error{
		Kind:    KindUnexpected,
		Message: "unexpected error",
		Err:     err,
	}
}

// As returns the classified error in err's chain, if any.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf classifies err. Anything unclassified is Unexpected.
func KindOf(err error) Kind {
	if appErr, ok := As(err); ok {
		return appErr.Kind
	}
	return KindUnexpected
}

// Is reports whether err is classified as kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
