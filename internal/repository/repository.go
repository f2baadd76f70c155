// Package repository declares the storage gateway interfaces the service
// layer depends on. The concrete database/sql implementation lives in the
// sqldb subpackage; tests substitute in-memory fakes.
package repository

import (
	"context"

	"github.com/mfarouk/diary-server/internal/model"
)

// AccountRepository is the account side of the storage gateway.
type AccountRepository interface {
	// FindAccountByName returns the account with the given username, or an
	// apperror.ErrNotFound error if no such row exists. Not-found is a valid
	// result, distinct from storage failure.
	FindAccountByName(ctx context.Context, username string) (*model.Account, error)

	// CreateAccount inserts a new account and writes the storage-assigned id
	// back into the struct. Uniqueness of the username is the caller's
	// responsibility (check-then-insert in the service layer).
	CreateAccount(ctx context.Context, account *model.Account) error

	// SetCredential unconditionally updates the stored password for the given
	// username. It succeeds as a no-op when the username does not exist.
	SetCredential(ctx context.Context, username, password string) error
}

// EntryRepository is the diary side of the storage gateway. Every operation
// is a single statement round trip.
type EntryRepository interface {
	// ListEntries returns all entries owned by the given account, ordered by
	// id ascending.
	ListEntries(ctx context.Context, ownerID int64) ([]model.Entry, error)

	// CreateEntry inserts a new entry and writes the storage-assigned id back
	// into the struct. Any caller-supplied id is ignored.
	CreateEntry(ctx context.Context, entry *model.Entry) error

	// UpdateEntry rewrites the six descriptive fields of the row matching
	// entry.ID. Identity and owner are never changed.
	UpdateEntry(ctx context.Context, entry *model.Entry) error

	// DeleteEntry removes the entry with the given id.
	DeleteEntry(ctx context.Context, id int64) error
}
