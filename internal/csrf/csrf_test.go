package csrf

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func issueToken(t *testing.T, guard *Guard) (string, *http.Cookie) {
	t.Helper()

	rec := httptest.NewRecorder()
	value, err := guard.Issue(rec)
	require.NoError(t, err)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return value, cookies[0]
}

func TestGuard_IssueSetsCookie(t *testing.T) {
	guard := NewGuard(true, time.Hour)

	value, cookie := issueToken(t, guard)

	assert.Equal(t, CookieName, cookie.Name)
	assert.Equal(t, value, cookie.Value)
	assert.Len(t, value, 64) // 32 bytes hex-encoded
	assert.Equal(t, 3600, cookie.MaxAge)
	assert.True(t, cookie.Secure)
	assert.False(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
}

func TestGuard_IssueValuesAreUnique(t *testing.T) {
	guard := NewGuard(false, time.Hour)

	first, _ := issueToken(t, guard)
	second, _ := issueToken(t, guard)
	assert.NotEqual(t, first, second)
}

func TestGuard_VerifyMatch(t *testing.T) {
	guard := NewGuard(false, time.Hour)
	value, cookie := issueToken(t, guard)

	req := httptest.NewRequest(http.MethodPost, "/api/jobs", nil)
	req.AddCookie(cookie)
	req.Header.Set(HeaderName, value)

	assert.True(t, guard.Verify(req))
}

func TestGuard_VerifyMismatch(t *testing.T) {
	guard := NewGuard(false, time.Hour)
	_, cookie := issueToken(t, guard)

	req := httptest.NewRequest(http.MethodPost, "/api/jobs", nil)
	req.AddCookie(cookie)
	req.Header.Set(HeaderName, "something-else")

	assert.False(t, guard.Verify(req))
}

func TestGuard_VerifyMissingCookie(t *testing.T) {
	guard := NewGuard(false, time.Hour)
	value, _ := issueToken(t, guard)

	req := httptest.NewRequest(http.MethodPost, "/api/jobs", nil)
	req.Header.Set(HeaderName, value)

	assert.False(t, guard.Verify(req))
}

func TestGuard_VerifyEmptyHeader(t *testing.T) {
	guard := NewGuard(false, time.Hour)
	_, cookie := issueToken(t, guard)

	req := httptest.NewRequest(http.MethodPost, "/api/jobs", nil)
	req.AddCookie(cookie)

	assert.False(t, guard.Verify(req))
}
