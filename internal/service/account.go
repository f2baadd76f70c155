// Package service contains the business logic layer: validation, the
// account and entry rules, and orchestration of the storage gateway. It
// knows nothing about HTTP; handlers translate its domain errors.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mfarouk/diary-server/internal/apperror"
	"github.com/mfarouk/diary-server/internal/model"
	"github.com/mfarouk/diary-server/internal/repository"
)

const loginFailedMessage = "wrong username or password"

// AccountService handles registration, login, and password changes.
//
// Credentials are stored and compared as plain strings, exactly as the
// system this replaces did. Login performs a verbatim, case-sensitive
// comparison; there is no hashing or normalization anywhere in the flow.
type AccountService struct {
	accounts repository.AccountRepository
	logger   *slog.Logger
}

// NewAccountService creates an AccountService. The repository is injected
// as an interface so tests can substitute an in-memory fake.
func NewAccountService(accounts repository.AccountRepository, logger *slog.Logger) *AccountService {
	return &AccountService{
		accounts: accounts,
		logger:   logger,
	}
}

// Login authenticates an account by username and credential.
//
// The username is trimmed before the lookup; the credential is compared
// verbatim. A missing account and a wrong credential both return the same
// unauthorized error, so callers cannot tell which check failed.
func (s *AccountService) Login(ctx context.Context, username, password string) (*model.Account, error) {
	username, err := validCredentialPair(username, password)
	if err != nil {
		return nil, err
	}

	account, err := s.accounts.FindAccountByName(ctx, username)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Unauthorized(loginFailedMessage)
		}
		return nil, fmt.Errorf("service/account: login lookup for %q: %w", username, err)
	}

	if account.Password != password {
		return nil, apperror.Unauthorized(loginFailedMessage)
	}

	s.logger.Info("account logged in",
		slog.Int64("accountID", account.ID),
		slog.String("username", account.Username),
	)

	return account, nil
}

// Register creates a new account with a unique username.
//
// Uniqueness is enforced by looking the name up first: an existing account
// yields a conflict error and nothing is written. The lookup and the insert
// are two separate statements, so two concurrent registrations of the same
// name race; the UNIQUE index in the store turns the loser's insert into a
// storage error instead of a duplicate row.
func (s *AccountService) Register(ctx context.Context, username, password string) (*model.Account, error) {
	username, err := validCredentialPair(username, password)
	if err != nil {
		return nil, err
	}

	_, err = s.accounts.FindAccountByName(ctx, username)
	switch {
	case err == nil:
		return nil, apperror.Conflict("username already exists")
	case errors.Is(err, apperror.ErrNotFound):
		// free to register
	default:
		return nil, fmt.Errorf("service/account: register lookup for %q: %w", username, err)
	}

	account := &model.Account{
		Username: username,
		Password: password,
	}
	if err := s.accounts.CreateAccount(ctx, account); err != nil {
		s.logger.Error("failed to create account",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("service/account: creating account %q: %w", username, err)
	}

	s.logger.Info("account registered",
		slog.Int64("accountID", account.ID),
		slog.String("username", account.Username),
	)

	return account, nil
}

// ChangePassword sets a new credential for the given username.
//
// The update is blind: no existence check, no re-authentication, and a
// username with no account is a silent no-op. That is the contract the
// storage gateway's SetCredential provides.
func (s *AccountService) ChangePassword(ctx context.Context, username, newPassword string) error {
	username, err := validCredentialPair(username, newPassword)
	if err != nil {
		return err
	}

	if err := s.accounts.SetCredential(ctx, username, newPassword); err != nil {
		s.logger.Error("failed to change password",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("service/account: changing password for %q: %w", username, err)
	}

	s.logger.Info("password changed", slog.String("username", username))
	return nil
}

// validCredentialPair applies the shared boundary checks: username and
// credential must be non-empty after trimming. The trimmed username is
// returned for use; the credential is validated trimmed but used verbatim,
// matching the original system (which trimmed the name field only).
func validCredentialPair(username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", apperror.ValidationFailed("username", "username must not be empty")
	}
	if strings.TrimSpace(password) == "" {
		return "", apperror.ValidationFailed("password", "password must not be empty")
	}
	return username, nil
}
