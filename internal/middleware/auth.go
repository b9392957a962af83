package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Xylphy/AI-Driven-Recruitment-sub000/internal/token"
)

// Cookie names are part of the public contract with the frontend.
const (
	AccessCookieName  = "token"
	RefreshCookieName = "refreshToken"

	// RefreshCookiePath scopes the refresh token so browsers only transmit
	// it to the refresh endpoint.
	RefreshCookiePath = "/api/auth/refresh"
)

type accessVerifier interface {
	VerifyAccess(tokenString string) (*token.AccessClaims, error)
}

type contextKey string

const authClaimsContextKey contextKey = "auth_claims"

type AuthMiddleware struct {
	verifier accessVerifier
}

func NewAuthMiddleware(verifier accessVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// Authenticate builds the per-request authentication context exactly once, at
// the top of the API tree. A missing or invalid token cookie yields a nil
// claims value rather than an error: unauthenticated is a valid state, and
// the decision to reject belongs to RequireAuth further down the chain.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(AccessCookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.verifier.VerifyAccess(cookie.Value)
		if err != nil {
			slog.Debug("access token rejected", "error", err)
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), authClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ClaimsFromContext(r.Context()); !ok {
			writeJSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireRoles gates a route on the authenticated role. Role names are exact
// matches against the closed enumeration; there is no hierarchy.
func (m *AuthMiddleware) RequireRoles(allowedRoles ...string) func(http.Handler) http.Handler {
	roleSet := map[string]struct{}{}
	for _, role := range allowedRoles {
		roleSet[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
				return
			}

			if _, allowed := roleSet[claims.Role]; !allowed {
				writeJSONError(w, http.StatusForbidden, "FORBIDDEN", "insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func ClaimsFromContext(ctx context.Context) (*token.AccessClaims, bool) {
	claims, ok := ctx.Value(authClaimsContextKey).(*token.AccessClaims)
	return claims, ok && claims != nil
}
