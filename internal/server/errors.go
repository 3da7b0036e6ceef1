package server

import (
	"errors"
	"net/http"
)

// HTTPError is an error with an HTTP status and a user-facing message.
type HTTPError struct {
	// Err is the underlying cause; logged, never shown.
	Err error

	// Message is shown to the user.
	Message string

	// ErrorCode is a stable machine-readable code for clients.
	ErrorCode string

	// RequestID is filled in by the error handler when available.
	RequestID string

	Code int
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// StatusText returns the standard text for the status code.
func (e *HTTPError) StatusText() string {
	return http.StatusText(e.Code)
}

// HTTPErrorOption configures an HTTPError.
type HTTPErrorOption func(*HTTPError)

// NewHTTPError creates an HTTPError.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	e := &HTTPError{Code: code, Message: message}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func WithErrorCode(code string) HTTPErrorOption {
	return func(e *HTTPError) {
		e.ErrorCode = code
	}
}

func WithError(err error) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Err = err
	}
}

func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message, opts...)
}

func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusNotFound, message, opts...)
}

func ErrMethodNotAllowed(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusMethodNotAllowed, message, opts...)
}

func ErrUnsupportedMediaType(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusUnsupportedMediaType, message, opts...)
}

func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusInternalServerError, message, opts...)
}

// AsHTTPError extracts an *HTTPError from err's chain.
func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	if errors.As(err, &he) {
		return he, true
	}
	return nil, false
}
