package errs

import (
	"net/http"
)

// statusCode derives the default machine code from the status text,
// e.g. 422 -> "UNPROCESSABLE_ENTITY".
func statusCode(status int) string {
	return MakeUpperCaseWithUnderscores(http.StatusText(status))
}

func newHTTPError(status int, message string, code *string) *HTTPError {
	e := &HTTPError{
		Code:    statusCode(status),
		Message: message,
		Status:  status,
	}
	if code != nil {
		e.Code = *code
	}
	return e
}

// NewBadRequestError builds a 400. code replaces the default "BAD_REQUEST"
// when non-nil; errors lists the offending fields, if any.
func NewBadRequestError(message string, override bool, code *string, errors []FieldError) *HTTPError {
	e := newHTTPError(http.StatusBadRequest, message, code)
	e.Override = override
	e.Errors = errors
	return e
}

// NewNotFoundError builds a 404.
func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	e := newHTTPError(http.StatusNotFound, message, code)
	e.Override = override
	return e
}

// NewUnprocessableEntityError builds a 422: the request parsed, but the
// store rejected the values it carried.
func NewUnprocessableEntityError(message string, errors []FieldError) *HTTPError {
	e := newHTTPError(http.StatusUnprocessableEntity, message, nil)
	e.Errors = errors
	return e
}

// NewInternalServerError builds a 500 with a client-facing message.
// The underlying cause is logged, never rendered.
func NewInternalServerError(message string) *HTTPError {
	if message == "" {
		message = http.StatusText(http.StatusInternalServerError)
	}
	return newHTTPError(http.StatusInternalServerError, message, nil)
}
