// Package csrf implements double-submit cookie protection: a random value is
// set in a cookie the client can read, and mutating requests must echo it in
// a header. Validity is pure cookie/header equality; nothing is stored
// server-side.
package csrf

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"
)

const (
	CookieName = "csrf_token"
	HeaderName = "X-CSRF-Token"

	tokenBytes = 32
)

type Guard struct {
	secure bool
	ttl    time.Duration
}

// NewGuard configures issuance. secure should be true in production so the
// cookie is only sent over TLS.
func NewGuard(secure bool, ttl time.Duration) *Guard {
	if ttl <= 0 {
		ttl = time.Hour
	}

	return &Guard{secure: secure, ttl: ttl}
}

// Issue sets a fresh csrf_token cookie and returns the plaintext value so the
// caller can also include it in the response body. The cookie is not
// HttpOnly: client-side code must read it to echo it in the header.
func (g *Guard) Issue(w http.ResponseWriter) (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate csrf token: %w", err)
	}
	value := hex.EncodeToString(buf)

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(g.ttl.Seconds()),
		Secure:   g.secure,
		HttpOnly: false,
		SameSite: http.SameSiteStrictMode,
	})

	return value, nil
}

// Verify reports whether the request's X-CSRF-Token header matches its
// csrf_token cookie. Missing cookie or empty header always fails.
func (g *Guard) Verify(r *http.Request) bool {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return false
	}

	return r.Header.Get(HeaderName) == cookie.Value
}
