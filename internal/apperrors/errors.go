package apperrors

import (
	"errors"
	"net/http"
)

// Common errors
var (
	// Authentication and authorization
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// Resource errors
	ErrNotFound = errors.New("resource not found")
	ErrConflict = errors.New("conflict")

	// Request errors
	ErrBadRequest = errors.New("bad request")
	ErrInvalidID  = errors.New("invalid id")

	// ErrNoOp is returned when an update had nothing to apply or the
	// requested state transition was already satisfied.
	ErrNoOp = errors.New("no-op update")

	// ErrUpstream wraps failures of the identity provider or payment processor.
	ErrUpstream = errors.New("upstream service error")
)

// CustomError pairs a sentinel with a message that is safe to show to clients.
type CustomError struct {
	Err     error
	Message string
}

func (e *CustomError) Error() string {
	if e.Message == "" {
		return e.Err.Error()
	}
	return e.Message
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewUnauthorizedError creates an authentication error with a client message
func NewUnauthorizedError(message string) error {
	return &CustomError{Err: ErrUnauthorized, Message: message}
}

// NewForbiddenError creates an authorization error with a client message
func NewForbiddenError(message string) error {
	return &CustomError{Err: ErrForbidden, Message: message}
}

// NewNotFoundError creates a not-found error with a client message
func NewNotFoundError(message string) error {
	return &CustomError{Err: ErrNotFound, Message: message}
}

// NewBadRequestError creates a bad-request error with a client message
func NewBadRequestError(message string) error {
	return &CustomError{Err: ErrBadRequest, Message: message}
}

// NewNoOpError creates a no-op error with a client message
func NewNoOpError(message string) error {
	return &CustomError{Err: ErrNoOp, Message: message}
}

// NewConflictError creates a conflict error with a client message
func NewConflictError(message string) error {
	return &CustomError{Err: ErrConflict, Message: message}
}

// upstreamError keeps the provider cause for logs while matching ErrUpstream.
// Only message is shown to clients.
type upstreamError struct {
	message string
	cause   error
}

func (e *upstreamError) Error() string {
	if e.cause == nil {
		return e.message
	}
	return e.message + ": " + e.cause.Error()
}

func (e *upstreamError) Unwrap() []error {
	return []error{ErrUpstream, e.cause}
}

// NewUpstreamError wraps a failure returned by an external provider.
func NewUpstreamError(message string, cause error) error {
	return &upstreamError{message: message, cause: cause}
}

// StatusCode maps an error to the HTTP status reported to clients.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrBadRequest), errors.Is(err, ErrInvalidID), errors.Is(err, ErrNoOp):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the message that may be shown to clients. Internal
// errors never expose their text.
func PublicMessage(err error) string {
	var custom *CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		return custom.Message
	}
	var upstream *upstreamError
	if errors.As(err, &upstream) && upstream.message != "" {
		return upstream.message
	}
	switch StatusCode(err) {
	case http.StatusUnauthorized:
		return "unauthorized access"
	case http.StatusForbidden:
		return "Forbidden access"
	case http.StatusNotFound:
		return "Not found"
	case http.StatusBadRequest:
		if errors.Is(err, ErrInvalidID) {
			return "Invalid id"
		}
		return "Bad request"
	case http.StatusConflict:
		return "Conflict"
	case http.StatusBadGateway:
		return "Upstream service error"
	default:
		return "Internal server error"
	}
}
