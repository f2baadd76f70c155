package sqldb

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mfarouk/diary-server/internal/apperror"
	"github.com/mfarouk/diary-server/internal/model"
	"github.com/mfarouk/diary-server/internal/repository"
)

// compile-time check that *Store implements repository.AccountRepository
var _ repository.AccountRepository = (*Store)(nil)

// FindAccountByName retrieves the account with the given username.
// Returns an error matching apperror.ErrNotFound when no row exists; any
// other failure is wrapped into the generic storage kind.
func (s *Store) FindAccountByName(ctx context.Context, username string) (*model.Account, error) {
	var a model.Account

	err := s.conn.QueryRowContext(ctx,
		`SELECT id, username, password FROM user WHERE username = ?`,
		username,
	).Scan(&a.ID, &a.Username, &a.Password)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &apperror.AppError{
				Err:     apperror.ErrNotFound,
				Message: "account not found",
			}
		}
		return nil, apperror.Storage("account lookup", err)
	}

	return &a, nil
}

// CreateAccount inserts a new account row and writes the assigned id back
// into the struct. Both supported drivers report auto-increment keys
// through LastInsertId.
func (s *Store) CreateAccount(ctx context.Context, account *model.Account) error {
	res, err := s.conn.ExecContext(ctx,
		`INSERT INTO user (username, password) VALUES (?, ?)`,
		account.Username,
		account.Password,
	)
	if err != nil {
		return apperror.Storage("account insert", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return apperror.Storage("account insert", err)
	}
	account.ID = id

	return nil
}

// SetCredential updates the stored password for the given username. The
// update is unconditional: when the username does not exist, zero rows match
// and the call still succeeds. No rows-affected check on purpose.
func (s *Store) SetCredential(ctx context.Context, username, password string) error {
	_, err := s.conn.ExecContext(ctx,
		`UPDATE user SET password = ? WHERE username = ?`,
		password,
		username,
	)
	if err != nil {
		return apperror.Storage("credential update", err)
	}

	return nil
}
