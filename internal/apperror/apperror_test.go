package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorsIs(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
	}{
		{
			name:      "NotFound wraps ErrNotFound",
			err:       NotFound("entry", 42),
			target:    ErrNotFound,
			wantMatch: true,
		},
		{
			name:      "ValidationFailed wraps ErrValidation",
			err:       ValidationFailed("username", "username must not be empty"),
			target:    ErrValidation,
			wantMatch: true,
		},
		{
			name:      "Conflict wraps ErrConflict",
			err:       Conflict("username already exists"),
			target:    ErrConflict,
			wantMatch: true,
		},
		{
			name:      "Unauthorized wraps ErrUnauthorized",
			err:       Unauthorized("wrong username or password"),
			target:    ErrUnauthorized,
			wantMatch: true,
		},
		{
			name:      "Storage wraps ErrStorage",
			err:       Storage("entry insert", errors.New("connection refused")),
			target:    ErrStorage,
			wantMatch: true,
		},
		{
			name:      "NotFound does NOT match ErrValidation",
			err:       NotFound("entry", 42),
			target:    ErrValidation,
			wantMatch: false,
		},
		{
			name:      "Storage does NOT match ErrNotFound",
			err:       Storage("account lookup", errors.New("timeout")),
			target:    ErrNotFound,
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.target); got != tt.wantMatch {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.wantMatch)
			}
		})
	}
}

func TestErrorsIsThroughWrapping(t *testing.T) {
	// Services wrap repository errors with fmt.Errorf("...: %w", err);
	// the sentinel must stay reachable through the chain.
	inner := Storage("credential update", errors.New("broken pipe"))
	outer := fmt.Errorf("service/account: changing password: %w", inner)

	if !errors.Is(outer, ErrStorage) {
		t.Error("wrapped storage error no longer matches ErrStorage")
	}

	var appErr *AppError
	if !errors.As(outer, &appErr) {
		t.Fatal("wrapped error no longer extractable as *AppError")
	}
	if appErr.Message != "storage failure during credential update" {
		t.Errorf("Message = %q, want the operation-only message", appErr.Message)
	}
}

func TestStorageKeepsCause(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := Storage("entry listing", cause)

	if !errors.Is(err, cause) {
		t.Error("original cause not reachable through the chain")
	}
	// The user-facing message must not leak the driver error.
	if err.Error() != "storage failure during entry listing" {
		t.Errorf("Error() = %q, leaks the cause", err.Error())
	}
}
