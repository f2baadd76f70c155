package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/mfarouk/diary-server/internal/auth"
	"github.com/mfarouk/diary-server/internal/service"
)

// AccountHandler exposes registration, login/logout, the current-session
// probe, and password changes over HTTP.
type AccountHandler struct {
	accounts *service.AccountService
	tokens   *auth.TokenService
	logger   *slog.Logger
}

// NewAccountHandler creates an AccountHandler.
func NewAccountHandler(accounts *service.AccountService, tokens *auth.TokenService, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		accounts: accounts,
		tokens:   tokens,
		logger:   logger,
	}
}

// credentialsRequest is the body of both register and login calls.
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// accountResponse is the public view of an account. The credential never
// appears in responses.
type accountResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// HandleRegister creates a new account.
//
// HTTP: POST /api/register
// Body: {"username": "...", "password": "..."}
// 201 with the account on success, 409 when the name is taken.
func (h *AccountHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid register JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "invalid JSON body"})
		return
	}

	account, err := h.accounts.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, accountResponse{ID: account.ID, Username: account.Username})
}

// HandleLogin authenticates and starts a session.
//
// HTTP: POST /api/login
// On success the session token is set as an HttpOnly cookie and the account
// is returned. Wrong name and wrong password are indistinguishable (401).
func (h *AccountHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid login JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "invalid JSON body"})
		return
	}

	account, err := h.accounts.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := h.tokens.Generate(account.ID, account.Username)
	if err != nil {
		h.logger.Error("failed to issue session token",
			slog.Int64("accountID", account.ID),
			slog.String("error", err.Error()),
		)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal_error", Message: "could not start session"})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(12 * time.Hour),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, accountResponse{ID: account.ID, Username: account.Username})
}

// HandleLogout ends the session by expiring the cookie. The token itself is
// stateless, so there is nothing to revoke server-side.
//
// HTTP: POST /api/logout
func (h *AccountHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

// HandleMe returns the identity of the current session.
//
// HTTP: GET /api/me (authenticated)
func (h *AccountHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "valid session required"})
		return
	}

	writeJSON(w, http.StatusOK, accountResponse{ID: session.AccountID, Username: session.Username})
}

// changePasswordRequest is the body of a password change.
type changePasswordRequest struct {
	NewPassword string `json:"newPassword"`
}

// HandleChangePassword sets a new credential for the session's account.
// No re-authentication is required; the update is blind.
//
// HTTP: PUT /api/password (authenticated)
func (h *AccountHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "valid session required"})
		return
	}

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid password JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "invalid JSON body"})
		return
	}

	if err := h.accounts.ChangePassword(r.Context(), session.Username, req.NewPassword); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
