package handler

import (
	"net/http"

	"mingle/internal/middleware"
	"mingle/internal/service"
	apperr "mingle/pkg/errors"
	"mingle/pkg/logger"
)

type NotificationHandler struct {
	notifications service.NotificationService
	logger        *logger.Logger
}

func NewNotificationHandler(notifications service.NotificationService, logger *logger.Logger) *NotificationHandler {
	return &NotificationHandler{notifications: notifications, logger: logger}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, h.logger, apperr.Unauthorized("authentication required"))
		return
	}

	notifications, err := h.notifications.List(r.Context(), userID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, notifications)
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, h.logger, apperr.Unauthorized("authentication required"))
		return
	}
	notificationID, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	notification, err := h.notifications.MarkRead(r.Context(), userID, notificationID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, notification)
}
