package apperror

import (
	"errors"
	"fmt"
)

// Sentinel errors for the outcome kinds the services produce. Callers match
// them with errors.Is; AppError carries the human-readable message.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation error")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")

	// ErrStorage is the single generic kind every database failure collapses
	// into: connectivity loss, bad SQL, constraint violations. Layers above
	// never distinguish them and never retry.
	ErrStorage = errors.New("storage error")
)

type AppError struct {
	Err     error  // actual error
	Message string // Human-readable error message
	Field   string // Optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource string, id int64) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %d", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

func Conflict(message string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: message,
	}
}

// Unauthorized returns an AppError for failed authentication. Login uses one
// message for both "no such account" and "wrong credential" so the response
// does not reveal which check failed.
func Unauthorized(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}

// Storage wraps a database error into the generic storage kind. The original
// cause stays reachable through the chain for errors.Is/As and logging; the
// message exposed to callers names only the failed operation.
func Storage(op string, cause error) *AppError {
	return &AppError{
		Err:     fmt.Errorf("%w: %s: %w", ErrStorage, op, cause),
		Message: fmt.Sprintf("storage failure during %s", op),
	}
}
