package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is the application error carried from services to handlers. It holds
// the HTTP status the handler should answer with, so no operation has to guess
// a code after the fact.
type Error struct {
	HTTPCode int
	Message  string
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (%v)", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(httpCode int, message string) *Error {
	return &Error{HTTPCode: httpCode, Message: message}
}

func Wrap(err error, httpCode int, message string) *Error {
	return &Error{HTTPCode: httpCode, Message: message, Err: err}
}

func NotFound(entity string) *Error {
	return New(http.StatusNotFound, entity+" not found")
}

func Unauthorized() *Error {
	return New(http.StatusUnauthorized, "You are not authorized to perform this action")
}

func Forbidden() *Error {
	return New(http.StatusForbidden, "Access denied")
}

func InvalidRequest(message string) *Error {
	return New(http.StatusBadRequest, message)
}

func Conflict(message string) *Error {
	return New(http.StatusUnprocessableEntity, message)
}

func Internal(err error) *Error {
	return Wrap(err, http.StatusInternalServerError, "Something went wrong")
}

// Status extracts the HTTP status for any error, defaulting to 500 for
// unexpected ones.
func Status(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.HTTPCode
	}
	return http.StatusInternalServerError
}

// MessageOf extracts the user-visible message for any error.
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Something went wrong"
}
