package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mfarouk/diary-server/internal/auth"
	"github.com/mfarouk/diary-server/internal/model"
	"github.com/mfarouk/diary-server/internal/service"
)

// EntryHandler exposes the diary CRUD operations. Every route is behind
// RequireAuth; the owning account always comes from the session context,
// never from the request body.
type EntryHandler struct {
	entries *service.EntryService
	logger  *slog.Logger
}

// NewEntryHandler creates an EntryHandler.
func NewEntryHandler(entries *service.EntryService, logger *slog.Logger) *EntryHandler {
	return &EntryHandler{
		entries: entries,
		logger:  logger,
	}
}

// entryRequest is the body of create and update calls. The six descriptive
// fields only — id comes from the URL, the owner from the session.
type entryRequest struct {
	Name     string `json:"name"`
	Duration string `json:"duration"`
	Address  string `json:"address"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Details  string `json:"details"`
}

// HandleList returns the session account's entries, id ascending.
//
// HTTP: GET /api/entries
func (h *EntryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "valid session required"})
		return
	}

	entries, err := h.entries.List(r.Context(), session.AccountID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// HandleCreate adds a new entry owned by the session account.
//
// HTTP: POST /api/entries
func (h *EntryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "valid session required"})
		return
	}

	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid entry JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "invalid JSON body"})
		return
	}

	entry := req.toModel(session.AccountID)
	if err := h.entries.Add(r.Context(), entry); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

// HandleUpdate rewrites the descriptive fields of an existing entry.
//
// HTTP: PUT /api/entries/{id}
func (h *EntryHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "valid session required"})
		return
	}

	id, err := entryID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "invalid entry id"})
		return
	}

	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid entry JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "invalid JSON body"})
		return
	}

	entry := req.toModel(session.AccountID)
	entry.ID = id
	if err := h.entries.Update(r.Context(), entry); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

// HandleDelete removes an entry by id.
//
// HTTP: DELETE /api/entries/{id}
func (h *EntryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := entryID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "invalid entry id"})
		return
	}

	if err := h.entries.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (req *entryRequest) toModel(ownerID int64) *model.Entry {
	return &model.Entry{
		Name:     req.Name,
		Duration: req.Duration,
		Address:  req.Address,
		Date:     req.Date,
		Time:     req.Time,
		Details:  req.Details,
		UserID:   ownerID,
	}
}

func entryID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
