package errors

import "net/http"

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

// Constructors for the failure kinds the services return.
// Handlers map anything else to 500.

func Validation(msg string) error {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusBadRequest}
}

func InvalidAssertion(msg string) error {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusUnauthorized}
}

func NotFound(msg string) error {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusNotFound}
}

func AlreadyExists(msg string) error {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusConflict}
}

func Forbidden(msg string) error {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusForbidden}
}

func Unauthorized(msg string) error {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusUnauthorized}
}

// Unavailable marks a backend failure or timeout. Distinct from validation
// so callers can tell "fix your input" apart from "try again later".
func Unavailable(msg string) error {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusServiceUnavailable}
}

func statusOf(err error) int {
	if e, ok := err.(*ErrorWithStatusCode); ok {
		return e.StatusCode
	}
	return http.StatusInternalServerError
}

func IsNotFound(err error) bool {
	return statusOf(err) == http.StatusNotFound
}

func IsAlreadyExists(err error) bool {
	return statusOf(err) == http.StatusConflict
}

func IsValidation(err error) bool {
	return statusOf(err) == http.StatusBadRequest
}

func IsUnavailable(err error) bool {
	return statusOf(err) == http.StatusServiceUnavailable
}
