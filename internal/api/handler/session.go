package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wordvote/wordvote/internal/api/apierr"
	"github.com/wordvote/wordvote/internal/api/request"
	"github.com/wordvote/wordvote/internal/api/response"
	"github.com/wordvote/wordvote/internal/model"
	"github.com/wordvote/wordvote/internal/services/session"
)

// SessionHandler handles session-related endpoints
type SessionHandler struct {
	controller *session.Controller
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(controller *session.Controller) *SessionHandler {
	return &SessionHandler{controller: controller}
}

// Create handles POST /api/v1/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess, err := h.controller.Create(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.SessionFromModel(sess))
}

// Join handles POST /api/v1/sessions/join
func (h *SessionHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req request.JoinSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Code == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("code is required"))
		return
	}

	player, err := h.controller.Join(r.Context(), req.Code, req.Name)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.JoinFromModel(player))
}

// Submit handles POST /api/v1/sessions/{id}/words
func (h *SessionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sessionID := model.SessionID(mux.Vars(r)["id"])

	var req request.SubmitWordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	err := h.controller.Submit(
		r.Context(),
		sessionID,
		model.PlayerID(req.PlayerID),
		req.PlayerToken,
		req.Word,
	)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.OK{OK: true})
}

// Close handles POST /api/v1/sessions/{id}/close
func (h *SessionHandler) Close(w http.ResponseWriter, r *http.Request) {
	sessionID := model.SessionID(mux.Vars(r)["id"])

	var req request.CloseSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if err := h.controller.Close(r.Context(), sessionID, req.HostToken); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.OK{OK: true})
}

// RestoreHost handles POST /api/v1/sessions/{id}/restore-host
func (h *SessionHandler) RestoreHost(w http.ResponseWriter, r *http.Request) {
	sessionID := model.SessionID(mux.Vars(r)["id"])

	var req request.RestoreHostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	code, ok, err := h.controller.RestoreHost(r.Context(), sessionID, req.HostToken)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RestoreHost{OK: ok, Code: string(code)})
}

// RestorePlayer handles POST /api/v1/sessions/{id}/restore-player
func (h *SessionHandler) RestorePlayer(w http.ResponseWriter, r *http.Request) {
	sessionID := model.SessionID(mux.Vars(r)["id"])

	var req request.RestorePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	restore, ok, err := h.controller.RestorePlayer(
		r.Context(),
		sessionID,
		model.PlayerID(req.PlayerID),
		req.PlayerToken,
	)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	resp := response.RestorePlayer{OK: ok}
	if ok {
		resp.Code = string(restore.Code)
		resp.Name = restore.Name
	}
	response.JSON(w, http.StatusOK, resp)
}

// Snapshot handles GET /api/v1/sessions/{code}
func (h *SessionHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	snapshot, err := h.controller.Snapshot(r.Context(), code)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SnapshotFromModel(snapshot))
}
