package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mfarouk/diary-server/internal/apperror"
	"github.com/mfarouk/diary-server/internal/model"
	"github.com/mfarouk/diary-server/internal/repository"
)

// EntryService handles the diary record operations, always in the context
// of an owning account id supplied explicitly by the caller. There is no
// ambient current-user state at this layer.
type EntryService struct {
	entries repository.EntryRepository
	logger  *slog.Logger
}

// NewEntryService creates an EntryService.
func NewEntryService(entries repository.EntryRepository, logger *slog.Logger) *EntryService {
	return &EntryService{
		entries: entries,
		logger:  logger,
	}
}

// List returns the entries owned by ownerID, ordered by id ascending.
// An account with no entries yields an empty slice, not an error.
func (s *EntryService) List(ctx context.Context, ownerID int64) ([]model.Entry, error) {
	if ownerID <= 0 {
		return nil, apperror.ValidationFailed("ownerId", "owner id is required")
	}

	entries, err := s.entries.ListEntries(ctx, ownerID)
	if err != nil {
		s.logger.Error("failed to list entries",
			slog.Int64("ownerID", ownerID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("service/entry: listing entries for owner %d: %w", ownerID, err)
	}

	return entries, nil
}

// Add validates and persists a new entry for entry.UserID. The entry's id
// field is ignored on the way in; storage assigns the real one and it is
// reported back through the struct.
func (s *EntryService) Add(ctx context.Context, entry *model.Entry) error {
	if err := validEntry(entry); err != nil {
		return err
	}

	entry.ID = 0
	if err := s.entries.CreateEntry(ctx, entry); err != nil {
		s.logger.Error("failed to add entry",
			slog.Int64("ownerID", entry.UserID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("service/entry: adding entry for owner %d: %w", entry.UserID, err)
	}

	s.logger.Info("entry added",
		slog.Int64("entryID", entry.ID),
		slog.Int64("ownerID", entry.UserID),
	)

	return nil
}

// Update rewrites the six descriptive fields of the entry matching
// entry.ID. The caller is responsible for passing an entry that belongs to
// the current session's account; this layer performs no ownership re-check,
// and the storage statement never touches the owner column.
func (s *EntryService) Update(ctx context.Context, entry *model.Entry) error {
	if entry.ID <= 0 {
		return apperror.ValidationFailed("id", "entry id is required")
	}
	if err := validEntry(entry); err != nil {
		return err
	}

	if err := s.entries.UpdateEntry(ctx, entry); err != nil {
		return fmt.Errorf("service/entry: updating entry %d: %w", entry.ID, err)
	}

	s.logger.Info("entry updated", slog.Int64("entryID", entry.ID))
	return nil
}

// Delete removes the entry with the given id. Like Update, ownership is the
// caller's responsibility.
func (s *EntryService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperror.ValidationFailed("id", "entry id is required")
	}

	if err := s.entries.DeleteEntry(ctx, id); err != nil {
		return fmt.Errorf("service/entry: deleting entry %d: %w", id, err)
	}

	s.logger.Info("entry deleted", slog.Int64("entryID", id))
	return nil
}

// validEntry applies the boundary checks for create and update: task name,
// date, and time must be non-empty after trimming. Duration, address, and
// details may be empty. All six fields are stored exactly as supplied —
// date and time are free text and never parsed.
func validEntry(entry *model.Entry) error {
	if entry == nil {
		return apperror.ValidationFailed("entry", "entry must not be nil")
	}
	if strings.TrimSpace(entry.Name) == "" {
		return apperror.ValidationFailed("name", "task name is required")
	}
	if strings.TrimSpace(entry.Date) == "" {
		return apperror.ValidationFailed("date", "date is required")
	}
	if strings.TrimSpace(entry.Time) == "" {
		return apperror.ValidationFailed("time", "time is required")
	}
	if entry.UserID <= 0 {
		return apperror.ValidationFailed("userId", "owner id is required")
	}
	return nil
}
