package models

import (
	"errors"
	"fmt"
)

// ErrorNotFound signals that a referenced article, version, group or
// language does not exist.
type ErrorNotFound struct {
	Message string
}

func (e ErrorNotFound) Error() string { return e.Message }

// ErrorConflict signals that the requested change would violate an
// invariant, such as a second draft for an article or a duplicate language
// inside a translation group.
type ErrorConflict struct {
	Message string
}

func (e ErrorConflict) Error() string { return e.Message }

// ErrorPermission signals that the caller's role does not allow the
// requested operation.
type ErrorPermission struct {
	Message string
}

func (e ErrorPermission) Error() string { return e.Message }

// ErrorTransientDependency wraps a failure of a best-effort external call.
// Callers recover from it locally; it is never surfaced to API consumers.
type ErrorTransientDependency struct {
	Message string
	Err     error
}

func (e ErrorTransientDependency) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e ErrorTransientDependency) Unwrap() error { return e.Err }

// ErrorUnauthorized signals a failed login or a missing/invalid token.
type ErrorUnauthorized struct {
	Message string
}

func (e ErrorUnauthorized) Error() string { return e.Message }

// ErrorInternalServer signals an unexpected storage or infrastructure
// failure with no partial state committed.
type ErrorInternalServer struct {
	Message string
}

func (e ErrorInternalServer) Error() string { return e.Message }

func NewErrorNotFound(format string, args ...interface{}) error {
	return ErrorNotFound{Message: fmt.Sprintf(format, args...)}
}

func NewErrorConflict(format string, args ...interface{}) error {
	return ErrorConflict{Message: fmt.Sprintf(format, args...)}
}

func NewErrorPermission(format string, args ...interface{}) error {
	return ErrorPermission{Message: fmt.Sprintf(format, args...)}
}

func NewErrorTransient(message string, err error) error {
	return ErrorTransientDependency{Message: message, Err: err}
}

func NewErrorUnauthorized(format string, args ...interface{}) error {
	return ErrorUnauthorized{Message: fmt.Sprintf(format, args...)}
}

func NewErrorInternalServer(format string, args ...interface{}) error {
	return ErrorInternalServer{Message: fmt.Sprintf(format, args...)}
}

func IsNotFound(err error) bool {
	var e ErrorNotFound
	return errors.As(err, &e)
}

func IsConflict(err error) bool {
	var e ErrorConflict
	return errors.As(err, &e)
}

func IsPermission(err error) bool {
	var e ErrorPermission
	return errors.As(err, &e)
}

func IsTransientDependency(err error) bool {
	var e ErrorTransientDependency
	return errors.As(err, &e)
}

func IsUnauthorized(err error) bool {
	var e ErrorUnauthorized
	return errors.As(err, &e)
}
