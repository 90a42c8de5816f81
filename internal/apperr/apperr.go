// Package apperr defines the error taxonomy shared by all services. Handlers
// never translate errors themselves; the Fiber error handler maps these
// sentinels to HTTP status codes in one place.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrValidation marks malformed or missing input fields.
	ErrValidation = errors.New("validation failed")

	// ErrConflict marks uniqueness violations such as an already registered email.
	ErrConflict = errors.New("conflict")

	// ErrUnauthorized marks missing/invalid/expired credentials or tokens.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound marks resources that are absent or owned by another user.
	// The two cases are deliberately indistinguishable.
	ErrNotFound = errors.New("not found")
)

// Validationf wraps ErrValidation with a formatted message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrValidation)...)
}

// Conflictf wraps ErrConflict with a formatted message.
func Conflictf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrConflict)...)
}

// Unauthorizedf wraps ErrUnauthorized with a formatted message.
func Unauthorizedf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrUnauthorized)...)
}

// NotFoundf wraps ErrNotFound with a formatted message.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

// StatusCode maps a taxonomy error to its HTTP status. Unrecognized errors
// map to 500 so store-level failures never leak details to clients.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
