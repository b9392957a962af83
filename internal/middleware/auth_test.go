package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xylphy/AI-Driven-Recruitment-sub000/internal/model"
	"github.com/Xylphy/AI-Driven-Recruitment-sub000/internal/token"
)

func newTestCodec(t *testing.T) *token.Codec {
	t.Helper()

	codec, err := token.NewCodec("test-master-secret", time.Hour, 7*24*time.Hour)
	require.NoError(t, err)
	return codec
}

func claimsEchoHandler(t *testing.T) http.Handler {
	t.Helper()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("anonymous"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(claims.UserID))
	})
}

func requestWithAccessCookie(t *testing.T, codec *token.Codec, userID string, role string) *http.Request {
	t.Helper()

	signed, err := codec.IssueAccess(userID, role)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
	req.AddCookie(&http.Cookie{Name: AccessCookieName, Value: signed})
	return req
}

func TestAuthenticate_ValidToken(t *testing.T) {
	codec := newTestCodec(t)
	mw := NewAuthMiddleware(codec)

	rec := httptest.NewRecorder()
	mw.Authenticate(claimsEchoHandler(t)).ServeHTTP(rec, requestWithAccessCookie(t, codec, "u1", model.RoleAdmin))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", rec.Body.String())
}

func TestAuthenticate_MissingCookieYieldsAnonymous(t *testing.T) {
	mw := NewAuthMiddleware(newTestCodec(t))

	req := httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
	rec := httptest.NewRecorder()
	mw.Authenticate(claimsEchoHandler(t)).ServeHTTP(rec, req)

	// An absent token is a valid unauthenticated state, not an error.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "anonymous", rec.Body.String())
}

func TestAuthenticate_InvalidTokenYieldsAnonymous(t *testing.T) {
	mw := NewAuthMiddleware(newTestCodec(t))

	req := httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
	req.AddCookie(&http.Cookie{Name: AccessCookieName, Value: "garbage"})
	rec := httptest.NewRecorder()
	mw.Authenticate(claimsEchoHandler(t)).ServeHTTP(rec, req)

	assert.Equal(t, "anonymous", rec.Body.String())
}

func TestRequireAuth_RejectsAnonymous(t *testing.T) {
	codec := newTestCodec(t)
	mw := NewAuthMiddleware(codec)
	handler := mw.Authenticate(mw.RequireAuth(claimsEchoHandler(t)))

	req := httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_PassesAuthenticated(t *testing.T) {
	codec := newTestCodec(t)
	mw := NewAuthMiddleware(codec)
	handler := mw.Authenticate(mw.RequireAuth(claimsEchoHandler(t)))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithAccessCookie(t, codec, "u1", model.RoleCandidate))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoles(t *testing.T) {
	codec := newTestCodec(t)
	mw := NewAuthMiddleware(codec)
	adminOnly := mw.Authenticate(mw.RequireRoles(model.RoleAdmin, model.RoleSuperAdmin)(claimsEchoHandler(t)))

	tests := []struct {
		name string
		role string
		want int
	}{
		{"admin allowed", model.RoleAdmin, http.StatusOK},
		{"super admin allowed", model.RoleSuperAdmin, http.StatusOK},
		{"hr officer forbidden", model.RoleHROfficer, http.StatusForbidden},
		{"candidate forbidden", model.RoleCandidate, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			adminOnly.ServeHTTP(rec, requestWithAccessCookie(t, codec, "u1", tt.role))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRequireRoles_AnonymousGets401(t *testing.T) {
	codec := newTestCodec(t)
	mw := NewAuthMiddleware(codec)
	adminOnly := mw.Authenticate(mw.RequireRoles(model.RoleAdmin)(claimsEchoHandler(t)))

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	rec := httptest.NewRecorder()
	adminOnly.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
