package handler

import (
	"net/http"

	"mingle/internal/middleware"
	"mingle/internal/service"
	apperr "mingle/pkg/errors"
	"mingle/pkg/logger"
)

type ConversationHandler struct {
	conversations service.ConversationService
	logger        *logger.Logger
}

func NewConversationHandler(conversations service.ConversationService, logger *logger.Logger) *ConversationHandler {
	return &ConversationHandler{conversations: conversations, logger: logger}
}

// List returns one summary per counterparty the caller has exchanged
// messages with.
func (h *ConversationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, h.logger, apperr.Unauthorized("authentication required"))
		return
	}

	summaries, err := h.conversations.Conversations(r.Context(), userID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, summaries)
}

func (h *ConversationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, h.logger, apperr.Unauthorized("authentication required"))
		return
	}
	counterpartyID, err := pathUUID(r, "userId")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	if err := h.conversations.MarkRead(r.Context(), userID, counterpartyID); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "read"})
}

func (h *ConversationHandler) Send(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, h.logger, apperr.Unauthorized("authentication required"))
		return
	}
	receiverID, err := pathUUID(r, "userId")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	message, err := h.conversations.Send(r.Context(), userID, receiverID, req.Content)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, message)
}

func (h *ConversationHandler) Thread(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, h.logger, apperr.Unauthorized("authentication required"))
		return
	}
	otherID, err := pathUUID(r, "userId")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	messages, err := h.conversations.Thread(r.Context(), userID, otherID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, messages)
}
