package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors shared across services. Handlers map them to HTTP statuses
// with HTTPStatus; everything below the service layer is translated into one
// of these before it crosses the service boundary.
var (
	// ErrNotFound is returned when an id or username lookup misses.
	ErrNotFound = errors.New("resource not found")
	// ErrNotModified is returned when an update matches the stored document exactly.
	ErrNotModified = errors.New("resource is already up-to-date")
	// ErrConflict is returned when a unique value (username) already exists.
	ErrConflict = errors.New("resource already exists")
	// ErrInvalidCredentials covers both unknown-username and wrong-password,
	// so login failures carry no enumeration signal.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrTokenExpired is returned for tokens past their expiry.
	ErrTokenExpired = errors.New("token has expired")
	// ErrTokenMalformed is returned for tokens that cannot be parsed.
	ErrTokenMalformed = errors.New("token is malformed")
	// ErrTokenSignature is returned for tokens whose signature does not verify.
	ErrTokenSignature = errors.New("token signature is invalid")
	// ErrUnauthorized is returned when no credentials accompany a protected request.
	ErrUnauthorized = errors.New("authentication required")
	// ErrConfig is returned when required startup configuration is missing.
	ErrConfig = errors.New("missing required configuration")
)

// ValidationError flags malformed or missing input fields.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validation builds a ValidationError with a formatted message.
func Validation(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// StorageError wraps a document-store failure. The underlying error is kept
// for logging; callers outside the service layer only see a generic failure.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("storage: %s: %v", e.Op, e.Err) }
func (e *StorageError) Unwrap() error { return e.Err }

// Storage wraps err as a StorageError for the given operation.
func Storage(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// IsStorage reports whether err is a StorageError.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

// HTTPStatus maps a service error to the HTTP status a handler should use.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrTokenMalformed),
		errors.Is(err, ErrTokenSignature),
		errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case IsValidation(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
