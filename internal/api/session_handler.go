package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"membox/backend/internal/interfaces"
)

// SessionHandler handles HTTP requests for the session store. All routes sit
// behind RequireUser, so the acting user is always present in the context.
type SessionHandler struct {
	service interfaces.SessionService
}

func NewSessionHandler(svc interfaces.SessionService) *SessionHandler {
	return &SessionHandler{service: svc}
}

// HandleListSessions godoc
// @Summary      List the acting user's sessions
// @Description  Returns only sessions owned by the acting user, most recently updated first.
// @Tags         Sessions
// @Produce      json
// @Success      200  {array}  model.Session
// @Failure      401  {object}  ErrorResponse
// @Router       /v1/sessions [get]
func (h *SessionHandler) HandleListSessions(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	sessions, err := h.service.ListSessions(r.Context(), user.ID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, sessions)
}

// HandleCreateSession godoc
// @Summary      Start a new chat session
// @Tags         Sessions
// @Produce      json
// @Success      201  {object}  model.Session
// @Failure      401  {object}  ErrorResponse
// @Router       /v1/sessions [post]
func (h *SessionHandler) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	session, err := h.service.CreateSession(r.Context(), user.ID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, session)
}

// HandleGetSession godoc
// @Summary      Get a session with its messages
// @Tags         Sessions
// @Produce      json
// @Param        sessionID  path  string  true  "Session ID"
// @Success      200  {object}  model.FullSession
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /v1/sessions/{sessionID} [get]
func (h *SessionHandler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	sessionID := chi.URLParam(r, "sessionID")

	fullSession, err := h.service.GetFullSession(r.Context(), user.ID, sessionID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, fullSession)
}

// HandleSelectSession godoc
// @Summary      Make a session the current one
// @Tags         Sessions
// @Produce      json
// @Param        sessionID  path  string  true  "Session ID"
// @Success      200  {object}  StatusResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /v1/sessions/{sessionID}/select [post]
func (h *SessionHandler) HandleSelectSession(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	sessionID := chi.URLParam(r, "sessionID")

	if err := h.service.SelectSession(r.Context(), user.ID, sessionID); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// HandleDeleteSession godoc
// @Summary      Delete a session
// @Description  Removes the session; if it was current, the store falls back to the most recently updated remaining session.
// @Tags         Sessions
// @Produce      json
// @Param        sessionID  path  string  true  "Session ID"
// @Success      200  {object}  StatusResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /v1/sessions/{sessionID} [delete]
func (h *SessionHandler) HandleDeleteSession(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	sessionID := chi.URLParam(r, "sessionID")

	if err := h.service.DeleteSession(r.Context(), user.ID, sessionID); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}
