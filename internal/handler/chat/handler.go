package chat

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/coordinator-insight/backend/internal/model/chat"
	chatService "github.com/coordinator-insight/backend/internal/service/chat"
	"github.com/coordinator-insight/backend/pkg/utils"
)

// Handler serves chat sessions over HTTP.
type Handler struct {
	chatSvc  *chatService.Service
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// New creates a chat handler.
func New(chatSvc *chatService.Service, logger *zap.Logger, checkOrigin func(*http.Request) bool) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if checkOrigin == nil {
		checkOrigin = func(*http.Request) bool { return true }
	}
	return &Handler{
		chatSvc: chatSvc,
		logger:  logger.Named("chat-handler"),
		upgrader: websocket.Upgrader{
			CheckOrigin:     checkOrigin,
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes mounts the chat routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", h.handleCreateSession)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", h.handleGetSession)
			r.Delete("/", h.handleCloseSession)
			r.Put("/draft", h.handleSetDraft)
			r.Post("/messages", h.handleSubmit)
			r.Post("/panel", h.handlePanel)
			r.Get("/events", h.handleEvents)
			r.Get("/ws", h.handleWebSocket)
		})
	})
}

type createSessionRequest struct {
	Open bool `json:"open"`
}

type textRequest struct {
	Text *string `json:"text"`
}

type panelRequest struct {
	Open bool `json:"open"`
}

// SubmitResponse is the submit result. A rejected submit is not an error.
type SubmitResponse struct {
	Accepted  bool          `json:"accepted"`
	Abandoned bool          `json:"abandoned,omitempty"`
	Reason    string        `json:"reason,omitempty"`
	Session   chat.Snapshot `json:"session"`
}

// handleCreateSession creates a session.
func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var payload createSessionRequest
	if err := utils.DecodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.chatSvc.CreateSession(r.Context())
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if payload.Open {
		session.OpenPanel()
	}

	utils.RespondJSON(w, http.StatusCreated, session.Snapshot())
}

func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, ok := h.lookup(w, r)
	if !ok {
		return
	}
	utils.RespondJSON(w, http.StatusOK, session.Snapshot())
}

func (h *Handler) handleCloseSession(w http.ResponseWriter, r *http.Request) {
	if err := h.chatSvc.CloseSession(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		h.respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSetDraft(w http.ResponseWriter, r *http.Request) {
	session, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var payload textRequest
	if err := utils.DecodeJSON(r, &payload); err != nil || payload.Text == nil {
		utils.RespondError(w, http.StatusBadRequest, "text is required")
		return
	}

	session.SetDraft(*payload.Text)
	utils.RespondJSON(w, http.StatusOK, session.Snapshot())
}

// handleSubmit submits a message and waits for the mentor reply. Without text
// the current draft is submitted.
func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	session, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var payload textRequest
	if err := utils.DecodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	draft := session.Snapshot().Draft
	if payload.Text != nil {
		draft = *payload.Text
	}

	// a client disconnect must not cancel the in-flight request
	ctx := context.WithoutCancel(r.Context())
	resp, err := submit(ctx, session, draft)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, resp)
}

func (h *Handler) handlePanel(w http.ResponseWriter, r *http.Request) {
	session, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var payload panelRequest
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if payload.Open {
		session.OpenPanel()
	} else {
		session.ClosePanel()
	}
	utils.RespondJSON(w, http.StatusOK, session.Snapshot())
}

// submit maps session outcomes to a response. Validation rejections and
// abandoned calls are not errors.
func submit(ctx context.Context, session *chatService.Session, draft string) (SubmitResponse, error) {
	err := session.Submit(ctx, draft)
	resp := SubmitResponse{Accepted: err == nil}
	switch {
	case err == nil:
	case errors.Is(err, chatService.ErrValidationRejected):
		resp.Reason = rejectionReason(err)
	case errors.Is(err, chatService.ErrRequestAbandoned):
		resp.Accepted = true
		resp.Abandoned = true
	default:
		return SubmitResponse{}, err
	}
	resp.Session = session.Snapshot()
	return resp, nil
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, chatService.ErrEmptyDraft):
		return "empty"
	case errors.Is(err, chatService.ErrRequestPending):
		return "pending"
	default:
		return "rejected"
	}
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (*chatService.Session, bool) {
	session, err := h.chatSvc.GetSession(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		h.respondServiceError(w, err)
		return nil, false
	}
	return session, true
}

func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, chatService.ErrSessionNotFound):
		utils.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, chatService.ErrSessionClosed):
		utils.RespondError(w, http.StatusGone, err.Error())
	default:
		h.logger.Error("chat request failed", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "internal error")
	}
}
