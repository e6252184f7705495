package handler

import (
	"net/http"

	"mingle/internal/middleware"
	"mingle/internal/service"
	apperr "mingle/pkg/errors"
	"mingle/pkg/logger"

	"github.com/gorilla/sessions"
)

type AdminHandler struct {
	admin  service.AdminService
	store  sessions.Store
	logger *logger.Logger
}

func NewAdminHandler(admin service.AdminService, store sessions.Store, logger *logger.Logger) *AdminHandler {
	return &AdminHandler{admin: admin, store: store, logger: logger}
}

// Login authenticates an admin account and starts an admin session.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	user, err := h.admin.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	if err := middleware.SignIn(h.store, w, r, user); err != nil {
		respondError(w, h.logger, apperr.Internal("could not start session"))
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.admin.Stats(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.admin.ListUsers(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

func (h *AdminHandler) UserDetails(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "userId")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	details, err := h.admin.UserDetails(r.Context(), userID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, details)
}

func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "userId")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	if err := h.admin.DeleteUser(r.Context(), userID); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *AdminHandler) ToggleSuspend(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "userId")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	suspended, err := h.admin.ToggleSuspend(r.Context(), userID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"suspended": suspended})
}

func (h *AdminHandler) Activity(w http.ResponseWriter, r *http.Request) {
	activity, err := h.admin.Activity(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, activity)
}

func (h *AdminHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	postID, err := pathUUID(r, "postId")
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

	post, err := h.admin.UpdatePost(r.Context(), postID, req.Content)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, post)
}

func (h *AdminHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	postID, err := pathUUID(r, "postId")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	if err := h.admin.DeletePost(r.Context(), postID); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *AdminHandler) SuspiciousContent(w http.ResponseWriter, r *http.Request) {
	flagged, err := h.admin.SuspiciousContent(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, flagged)
}
