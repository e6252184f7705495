package handler

import (
	"net/http"
	"strconv"

	"mingle/internal/middleware"
	"mingle/internal/service"
	apperr "mingle/pkg/errors"
	"mingle/pkg/logger"

	"github.com/gorilla/mux"
)

type SearchHandler struct {
	search service.SearchService
	logger *logger.Logger
}

func NewSearchHandler(search service.SearchService, logger *logger.Logger) *SearchHandler {
	return &SearchHandler{search: search, logger: logger}
}

// Search runs the combined user, post and message lookup for ?q=.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, h.logger, apperr.Unauthorized("authentication required"))
		return
	}

	results, err := h.search.Search(r.Context(), userID, r.URL.Query().Get("q"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, results)
}

func (h *SearchHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, h.logger, apperr.Unauthorized("authentication required"))
		return
	}

	entries, err := h.search.History(r.Context(), userID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

func (h *SearchHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, h.logger, apperr.Unauthorized("authentication required"))
		return
	}

	if err := h.search.ClearHistory(r.Context(), userID); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func (h *SearchHandler) DeleteHistoryItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, h.logger, apperr.Unauthorized("authentication required"))
		return
	}

	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, h.logger, apperr.InvalidArg("invalid history id"))
		return
	}

	if err := h.search.DeleteHistoryItem(r.Context(), userID, uint(id)); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
