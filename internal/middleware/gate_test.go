package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xylphy/AI-Driven-Recruitment-sub000/internal/csrf"
	"github.com/Xylphy/AI-Driven-Recruitment-sub000/internal/ratelimit"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

func newTestGate(origins []string, broadMax int) *Gate {
	guard := csrf.NewGuard(false, time.Hour)
	broad := ratelimit.New(broadMax, time.Minute)
	return NewGate(origins, guard, broad)
}

func csrfPair(t *testing.T) (*http.Cookie, string) {
	t.Helper()

	guard := csrf.NewGuard(false, time.Hour)
	rec := httptest.NewRecorder()
	value, err := guard.Issue(rec)
	require.NoError(t, err)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0], value
}

func withAccessCookie(req *http.Request) *http.Request {
	req.AddCookie(&http.Cookie{Name: AccessCookieName, Value: "present"})
	return req
}

func TestGate_AllowsSameOriginWithoutOriginHeader(t *testing.T) {
	gate := newTestGate(nil, 100)
	handler := gate.Handler(okHandler())

	req := withAccessCookie(httptest.NewRequest(http.MethodGet, "/api/jobs", nil))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGate_RejectsUnknownOrigin(t *testing.T) {
	gate := newTestGate([]string{"https://jobs.example.com"}, 100)
	handler := gate.Handler(okHandler())

	req := withAccessCookie(httptest.NewRequest(http.MethodGet, "/api/jobs", nil))
	req.Header.Set("Origin", "https://evil.example.net")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGate_AllowsConfiguredOrigin(t *testing.T) {
	gate := newTestGate([]string{"https://jobs.example.com"}, 100)
	handler := gate.Handler(okHandler())

	req := withAccessCookie(httptest.NewRequest(http.MethodGet, "/api/jobs", nil))
	req.Header.Set("Origin", "https://jobs.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://jobs.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestGate_PreflightShortCircuits(t *testing.T) {
	gate := newTestGate([]string{"https://jobs.example.com"}, 100)
	called := false
	handler := gate.Handler(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/jobs", nil)
	req.Header.Set("Origin", "https://jobs.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.False(t, called)
}

func TestGate_PreflightFromUnknownOriginRejected(t *testing.T) {
	gate := newTestGate([]string{"https://jobs.example.com"}, 100)
	handler := gate.Handler(okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/api/jobs", nil)
	req.Header.Set("Origin", "https://evil.example.net")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	// Origin policy fires before the CORS layer can short-circuit the
	// preflight.
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGate_MutatingRequestNeedsCSRF(t *testing.T) {
	gate := newTestGate(nil, 100)
	handler := gate.Handler(okHandler())

	req := withAccessCookie(httptest.NewRequest(http.MethodPost, "/api/jobs", nil))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGate_MutatingRequestWithCSRFPasses(t *testing.T) {
	gate := newTestGate(nil, 100)
	handler := gate.Handler(okHandler())

	cookie, value := csrfPair(t)
	req := withAccessCookie(httptest.NewRequest(http.MethodPost, "/api/jobs", nil))
	req.AddCookie(cookie)
	req.Header.Set(csrf.HeaderName, value)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGate_MismatchedCSRFRejected(t *testing.T) {
	gate := newTestGate(nil, 100)
	handler := gate.Handler(okHandler())

	cookie, _ := csrfPair(t)
	req := withAccessCookie(httptest.NewRequest(http.MethodPost, "/api/jobs", nil))
	req.AddCookie(cookie)
	req.Header.Set(csrf.HeaderName, "wrong")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGate_AuthPathsAreCSRFExempt(t *testing.T) {
	gate := newTestGate(nil, 100)
	handler := gate.Handler(okHandler())

	// Logout carries no CSRF token once the session is gone; it must still
	// go through.
	req := httptest.NewRequest(http.MethodPost, "/api/auth/jwt", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGate_ProtectedPathNeedsTokenCookie(t *testing.T) {
	gate := newTestGate(nil, 100)
	handler := gate.Handler(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGate_PublicPathsSkipTokenPresence(t *testing.T) {
	gate := newTestGate(nil, 100)
	handler := gate.Handler(okHandler())

	public := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/auth/jwt"},
		{http.MethodPost, "/api/auth/jwt"},
		{http.MethodGet, "/api/auth/refresh"},
		{http.MethodGet, "/api/auth/csrf"},
		{http.MethodPost, "/api/auth/register"},
		{http.MethodGet, "/health"},
	}

	for _, tt := range public {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, "%s %s", tt.method, tt.path)
	}
}

func TestGate_RateLimitsNonAPIRoutes(t *testing.T) {
	gate := newTestGate(nil, 2)
	handler := gate.Handler(okHandler())

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestGate_APIRoutesSkipEdgeRateLimit(t *testing.T) {
	gate := newTestGate(nil, 1)
	handler := gate.Handler(okHandler())

	// The API middleware chain carries its own limiter tier; the edge gate
	// must not double-count those calls.
	for i := 0; i < 5; i++ {
		req := withAccessCookie(httptest.NewRequest(http.MethodGet, "/api/jobs", nil))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}
