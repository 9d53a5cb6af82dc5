// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import (
	"errors"
	"net/http"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"error"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// Validation wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}

// E is a typed domain error carrying the HTTP status the handler should
// respond with. Services return *E for every expected failure; anything
// else is treated as an internal error.
type E struct {
	Code   int
	Detail string
}

func (e *E) Error() string { return e.Detail }

func Invalid(msg string) *E          { return &E{Code: http.StatusBadRequest, Detail: msg} }
func Unauthorized(msg string) *E     { return &E{Code: http.StatusUnauthorized, Detail: msg} }
func Forbidden(msg string) *E        { return &E{Code: http.StatusForbidden, Detail: msg} }
func NotFound(msg string) *E         { return &E{Code: http.StatusNotFound, Detail: msg} }
func Conflict(msg string) *E         { return &E{Code: http.StatusConflict, Detail: msg} }
func CapacityExceeded(msg string) *E { return &E{Code: http.StatusBadRequest, Detail: msg} }

// Status maps any error to the HTTP status code and safe message to return.
// Unrecognized errors become a generic 500 so internals never leak.
func Status(err error) (int, string) {
	var e *E
	if errors.As(err, &e) {
		return e.Code, e.Detail
	}
	return http.StatusInternalServerError, "Error interno del servidor"
}

// IsExpected reports whether err is a typed domain error (4xx) as opposed to
// an unexpected persistence failure.
func IsExpected(err error) bool {
	var e *E
	return errors.As(err, &e)
}
