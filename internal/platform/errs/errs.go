// Package errs defines the error kinds services surface to handlers.
package errs

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/hms/hms/internal/platform/store"
)

// ErrInvalidInput marks request data that failed boundary validation.
var ErrInvalidInput = errors.New("invalid input")

// Invalidf builds an ErrInvalidInput with field detail.
func Invalidf(format string, a ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrInvalidInput}, a...)...)
}

// Status maps a service error to an HTTP status code.
func Status(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
