package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrProductNotFound is returned when a product lookup finds no row.
	ErrProductNotFound = errors.New("Product Not Found")
	// ErrUserNotFound is returned when a token resolves to no stored user.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken is returned when registering an already registered email.
	ErrEmailTaken = errors.New("email is already registered")
)

// ErrorResponse is the body of every single-failure response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
	}
}

// MapError maps domain errors to HTTP errors. ErrEmailTaken is not mapped
// here: its status is a config knob the auth handler applies itself. Anything
// unrecognized becomes a 500 with a generic message; internal detail never
// reaches the caller.
func MapError(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrProductNotFound):
		return NewHTTPError(http.StatusNotFound, ErrProductNotFound.Error())
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusUnauthorized, ErrUserNotFound.Error())
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidCredentials.Error())
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
