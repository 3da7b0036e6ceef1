package middlewares

import (
	"errors"
	"fmt"
)

// PanicError is a recovered panic.
type PanicError struct {
	Value any
	Stack []byte // nil when stack capture is disabled
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// IsPanicError reports whether err wraps a *PanicError.
func IsPanicError(err error) bool {
	var pe *PanicError
	return errors.As(err, &pe)
}

// AsPanicError extracts the *PanicError from err's chain.
func AsPanicError(err error) (*PanicError, bool) {
	var pe *PanicError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
