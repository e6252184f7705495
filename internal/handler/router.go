package handler

import (
	"net/http"

	"mingle/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router bundles everything the HTTP surface needs.
type Router struct {
	Auth          *AuthHandler
	Users         *UserHandler
	Posts         *PostHandler
	Conversations *ConversationHandler
	Notifications *NotificationHandler
	Search        *SearchHandler
	Admin         *AdminHandler

	Store       sessions.Store
	RateLimiter *middleware.RateLimiter
}

// Build assembles the full route table.
func (rt *Router) Build() *mux.Router {
	root := mux.NewRouter()
	root.Use(middleware.Metrics)
	root.Use(rt.RateLimiter.Middleware)

	root.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	root.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := root.PathPrefix("/api").Subrouter()

	// No session required.
	api.HandleFunc("/auth/register", rt.Auth.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", rt.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", rt.Auth.Logout).Methods(http.MethodPost)
	api.HandleFunc("/admin/login", rt.Admin.Login).Methods(http.MethodPost)

	authed := api.NewRoute().Subrouter()
	authed.Use(middleware.Auth(rt.Store))

	authed.HandleFunc("/me", rt.Users.Me).Methods(http.MethodGet)
	authed.HandleFunc("/me", rt.Users.UpdateProfile).Methods(http.MethodPut)
	authed.HandleFunc("/users", rt.Users.List).Methods(http.MethodGet)
	authed.HandleFunc("/users/{userId}", rt.Users.Profile).Methods(http.MethodGet)

	authed.HandleFunc("/posts", rt.Posts.List).Methods(http.MethodGet)
	authed.HandleFunc("/posts", rt.Posts.Create).Methods(http.MethodPost)
	authed.HandleFunc("/posts/{postId}/like", rt.Posts.ToggleLike).Methods(http.MethodPost)
	authed.HandleFunc("/posts/{postId}/comments", rt.Posts.Comments).Methods(http.MethodGet)
	authed.HandleFunc("/posts/{postId}/comments", rt.Posts.AddComment).Methods(http.MethodPost)

	authed.HandleFunc("/conversations", rt.Conversations.List).Methods(http.MethodGet)
	authed.HandleFunc("/conversations/{userId}/messages", rt.Conversations.Thread).Methods(http.MethodGet)
	authed.HandleFunc("/conversations/{userId}/messages", rt.Conversations.Send).Methods(http.MethodPost)
	authed.HandleFunc("/conversations/{userId}/read", rt.Conversations.MarkRead).Methods(http.MethodPost)

	authed.HandleFunc("/notifications", rt.Notifications.List).Methods(http.MethodGet)
	authed.HandleFunc("/notifications/{id}/read", rt.Notifications.MarkRead).Methods(http.MethodPost)

	authed.HandleFunc("/search", rt.Search.Search).Methods(http.MethodGet)
	authed.HandleFunc("/search/history", rt.Search.History).Methods(http.MethodGet)
	authed.HandleFunc("/search/history", rt.Search.ClearHistory).Methods(http.MethodDelete)
	authed.HandleFunc("/search/history/{id}", rt.Search.DeleteHistoryItem).Methods(http.MethodDelete)

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Auth(rt.Store), middleware.AdminOnly)

	admin.HandleFunc("/stats", rt.Admin.Stats).Methods(http.MethodGet)
	admin.HandleFunc("/activity", rt.Admin.Activity).Methods(http.MethodGet)
	admin.HandleFunc("/suspicious", rt.Admin.SuspiciousContent).Methods(http.MethodGet)
	admin.HandleFunc("/users", rt.Admin.ListUsers).Methods(http.MethodGet)
	admin.HandleFunc("/users/{userId}", rt.Admin.UserDetails).Methods(http.MethodGet)
	admin.HandleFunc("/users/{userId}", rt.Admin.DeleteUser).Methods(http.MethodDelete)
	admin.HandleFunc("/users/{userId}/suspend", rt.Admin.ToggleSuspend).Methods(http.MethodPost)
	admin.HandleFunc("/posts/{postId}", rt.Admin.UpdatePost).Methods(http.MethodPut)
	admin.HandleFunc("/posts/{postId}", rt.Admin.DeletePost).Methods(http.MethodDelete)

	return root
}
