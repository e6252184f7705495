package handler

import (
	"net/http"

	"mingle/internal/middleware"
	"mingle/internal/service"
	apperr "mingle/pkg/errors"
	"mingle/pkg/logger"

	"github.com/gorilla/sessions"
)

type credentials struct {
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

type AuthHandler struct {
	auth   service.AuthService
	store  sessions.Store
	logger *logger.Logger
}

func NewAuthHandler(auth service.AuthService, store sessions.Store, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, store: store, logger: logger}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	user, err := h.auth.Register(r.Context(), req.DisplayName, req.Email, req.Password)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	if err := middleware.SignIn(h.store, w, r, user); err != nil {
		respondError(w, h.logger, apperr.Internal("could not start session"))
		return
	}
	respondJSON(w, http.StatusCreated, user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	user, err := h.auth.Login(r.Context(), req.Email, req.Password)
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

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := middleware.SignOut(h.store, w, r); err != nil {
		respondError(w, h.logger, apperr.Internal("could not end session"))
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}
