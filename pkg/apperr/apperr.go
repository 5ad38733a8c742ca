// pkg/apperr/apperr.go
package apperr

import "fmt"

// Kind classifies every failure the validation engine and the CRUD
// dispatcher can produce. All of them are recovered locally and turned
// into the uniform action result; none propagate as raw errors.
type Kind string

const (
	Unauthorized     Kind = "unauthorized"
	InvalidInput     Kind = "invalid_input"
	NotFound         Kind = "not_found"
	RelationMismatch Kind = "relation_mismatch"
	Conflict         Kind = "conflict"
)

// Error carries the failure kind plus a user-facing (Spanish) message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Unauthorizedf(format string, args ...interface{}) *Error {
	return New(Unauthorized, format, args...)
}

func Invalidf(format string, args ...interface{}) *Error {
	return New(InvalidInput, format, args...)
}

func NotFoundf(format string, args ...interface{}) *Error {
	return New(NotFound, format, args...)
}

func Mismatchf(format string, args ...interface{}) *Error {
	return New(RelationMismatch, format, args...)
}

func Conflictf(format string, args ...interface{}) *Error {
	return New(Conflict, format, args...)
}

// StorageFailure is the catch-all for unexpected storage errors; the UI
// never sees the raw error.
func StorageFailure() *Error {
	return Conflictf("La operación no pudo completarse, intenta de nuevo")
}
