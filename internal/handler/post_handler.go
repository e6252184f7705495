package handler

import (
	"net/http"

	"mingle/internal/middleware"
	"mingle/internal/service"
	apperr "mingle/pkg/errors"
	"mingle/pkg/logger"

	"github.com/google/uuid"
)

type PostHandler struct {
	posts  service.PostService
	logger *logger.Logger
}

func NewPostHandler(posts service.PostService, logger *logger.Logger) *PostHandler {
	return &PostHandler{posts: posts, logger: logger}
}

// List returns the feed, optionally filtered to one author via ?author=.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	authorID := uuid.Nil
	if raw := r.URL.Query().Get("author"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			respondError(w, h.logger, apperr.InvalidArg("invalid author id"))
			return
		}
		authorID = parsed
	}

	posts, err := h.posts.List(r.Context(), authorID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, posts)
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, h.logger, apperr.Unauthorized("authentication required"))
		return
	}

	var req struct {
		Content string `json:"content"`
		Image   string `json:"image"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	post, err := h.posts.Create(r.Context(), userID, req.Content, req.Image)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, post)
}

func (h *PostHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, h.logger, apperr.Unauthorized("authentication required"))
		return
	}
	postID, err := pathUUID(r, "postId")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	liked, err := h.posts.ToggleLike(r.Context(), userID, postID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"liked": liked})
}

func (h *PostHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, h.logger, apperr.Unauthorized("authentication required"))
		return
	}
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

	comment, err := h.posts.AddComment(r.Context(), userID, postID, req.Content)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, comment)
}

func (h *PostHandler) Comments(w http.ResponseWriter, r *http.Request) {
	postID, err := pathUUID(r, "postId")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	comments, err := h.posts.Comments(r.Context(), postID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, comments)
}
