package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"mingle/internal/entity"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedInRequest(t *testing.T, store sessions.Store, user *entity.User, target string) *http.Request {
	t.Helper()

	rec := httptest.NewRecorder()
	login := httptest.NewRequest(http.MethodPost, "/login", nil)
	require.NoError(t, SignIn(store, rec, login, user))

	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestAuth(t *testing.T) {
	store := sessions.NewCookieStore([]byte("test-secret"))
	user := &entity.User{ID: uuid.New(), Role: entity.RoleUser}

	var gotID uuid.UUID
	called := false
	protected := Auth(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		gotID, _ = UserID(r.Context())
	}))

	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, signedInRequest(t, store, user, "/me"))

	assert.True(t, called)
	assert.Equal(t, user.ID, gotID)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuth_NoSession(t *testing.T) {
	store := sessions.NewCookieStore([]byte("test-secret"))

	protected := Auth(store)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run without a session")
	}))

	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminOnly(t *testing.T) {
	store := sessions.NewCookieStore([]byte("test-secret"))

	called := false
	guarded := Auth(store)(AdminOnly(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	})))

	rec := httptest.NewRecorder()
	regular := &entity.User{ID: uuid.New(), Role: entity.RoleUser}
	guarded.ServeHTTP(rec, signedInRequest(t, store, regular, "/admin/stats"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, called)

	rec = httptest.NewRecorder()
	admin := &entity.User{ID: uuid.New(), Role: entity.RoleAdmin}
	guarded.ServeHTTP(rec, signedInRequest(t, store, admin, "/admin/stats"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestSignOut(t *testing.T) {
	store := sessions.NewCookieStore([]byte("test-secret"))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	require.NoError(t, SignOut(store, rec, req))

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Less(t, cookies[0].MaxAge, 0)
}
