package middleware

import (
	"context"
	"net/http"

	"mingle/internal/entity"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	// SessionName is the cookie under which the login session lives.
	SessionName = "auth-session"

	sessionUserKey = "user_id"
	sessionRoleKey = "role"
)

type contextKey int

const (
	userIDKey contextKey = iota
	roleKey
)

// UserID returns the authenticated user's ID from the request context.
func UserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}

// IsAdmin reports whether the authenticated user carries the admin role.
func IsAdmin(ctx context.Context) bool {
	role, _ := ctx.Value(roleKey).(string)
	return role == entity.RoleAdmin
}

// SignIn stores the user's identity in the session cookie.
func SignIn(store sessions.Store, w http.ResponseWriter, r *http.Request, user *entity.User) error {
	session, _ := store.Get(r, SessionName)
	session.Values[sessionUserKey] = user.ID.String()
	session.Values[sessionRoleKey] = user.Role
	return session.Save(r, w)
}

// SignOut expires the session cookie.
func SignOut(store sessions.Store, w http.ResponseWriter, r *http.Request) error {
	session, _ := store.Get(r, SessionName)
	session.Options.MaxAge = -1
	return session.Save(r, w)
}

// Auth rejects requests without a valid login session and puts the caller's
// identity on the request context.
func Auth(store sessions.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := store.Get(r, SessionName)
			if err != nil {
				unauthorized(w)
				return
			}

			raw, ok := session.Values[sessionUserKey].(string)
			if !ok {
				unauthorized(w)
				return
			}
			userID, err := uuid.Parse(raw)
			if err != nil {
				unauthorized(w)
				return
			}
			role, _ := session.Values[sessionRoleKey].(string)

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			ctx = context.WithValue(ctx, roleKey, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminOnly must run after Auth; it rejects non-admin callers.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsAdmin(r.Context()) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":"admin access required"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"authentication required"}`))
}
