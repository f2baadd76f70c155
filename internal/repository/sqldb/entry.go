package sqldb

import (
	"context"

	"github.com/mfarouk/diary-server/internal/apperror"
	"github.com/mfarouk/diary-server/internal/model"
	"github.com/mfarouk/diary-server/internal/repository"
)

// compile-time check that *Store implements repository.EntryRepository
var _ repository.EntryRepository = (*Store)(nil)

// ListEntries returns every entry owned by ownerID, ordered by id
// ascending. The original system left the order to the database; the
// explicit sort key makes listings deterministic.
func (s *Store) ListEntries(ctx context.Context, ownerID int64) ([]model.Entry, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT id, name, duration, address, date, time, details, user_id
		 FROM diary
		 WHERE user_id = ?
		 ORDER BY id ASC`,
		ownerID,
	)
	if err != nil {
		return nil, apperror.Storage("entry listing", err)
	}
	defer rows.Close()

	entries := []model.Entry{}
	for rows.Next() {
		var e model.Entry
		if err := rows.Scan(
			&e.ID, &e.Name, &e.Duration, &e.Address,
			&e.Date, &e.Time, &e.Details, &e.UserID,
		); err != nil {
			return nil, apperror.Storage("entry row scan", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Storage("entry iteration", err)
	}

	return entries, nil
}

// CreateEntry inserts a new diary row and writes the assigned id back into
// the struct. Whatever id the caller set is discarded.
func (s *Store) CreateEntry(ctx context.Context, entry *model.Entry) error {
	res, err := s.conn.ExecContext(ctx,
		`INSERT INTO diary (name, duration, address, date, time, details, user_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.Name,
		entry.Duration,
		entry.Address,
		entry.Date,
		entry.Time,
		entry.Details,
		entry.UserID,
	)
	if err != nil {
		return apperror.Storage("entry insert", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return apperror.Storage("entry insert", err)
	}
	entry.ID = id

	return nil
}

// UpdateEntry rewrites the six descriptive fields of the row matching
// entry.ID. The id and user_id columns are never part of the SET clause.
// Returns a not-found error when no row matched.
func (s *Store) UpdateEntry(ctx context.Context, entry *model.Entry) error {
	res, err := s.conn.ExecContext(ctx,
		`UPDATE diary
		 SET name = ?, duration = ?, address = ?, date = ?, time = ?, details = ?
		 WHERE id = ?`,
		entry.Name,
		entry.Duration,
		entry.Address,
		entry.Date,
		entry.Time,
		entry.Details,
		entry.ID,
	)
	if err != nil {
		return apperror.Storage("entry update", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return apperror.Storage("entry update", err)
	}
	if affected == 0 {
		return apperror.NotFound("entry", entry.ID)
	}

	return nil
}

// DeleteEntry removes the entry with the given id. Same rows-affected
// pattern as UpdateEntry to detect not-found.
func (s *Store) DeleteEntry(ctx context.Context, id int64) error {
	res, err := s.conn.ExecContext(ctx,
		`DELETE FROM diary WHERE id = ?`,
		id,
	)
	if err != nil {
		return apperror.Storage("entry delete", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return apperror.Storage("entry delete", err)
	}
	if affected == 0 {
		return apperror.NotFound("entry", id)
	}

	return nil
}
