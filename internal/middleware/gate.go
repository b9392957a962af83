package middleware

import (
	"net/http"
	"strings"

	"github.com/rs/cors"

	"github.com/Xylphy/AI-Driven-Recruitment-sub000/internal/csrf"
	"github.com/Xylphy/AI-Driven-Recruitment-sub000/internal/ratelimit"
	"github.com/Xylphy/AI-Driven-Recruitment-sub000/pkg/apierror"
)

// Gate is the single edge filter every inbound request passes before routing:
// origin policy, broad rate limiting, CSRF double-submit and access-token
// presence, in that order. It fails fast; once a check rejects, nothing
// downstream runs.
type Gate struct {
	csrfGuard      *csrf.Guard
	broad          *ratelimit.Limiter
	allowedOrigins map[string]struct{}
	cors           *cors.Cors
}

func NewGate(origins []string, csrfGuard *csrf.Guard, broad *ratelimit.Limiter) *Gate {
	allowed := map[string]struct{}{}
	for _, origin := range origins {
		allowed[strings.TrimRight(origin, "/")] = struct{}{}
	}

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", csrf.HeaderName, "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		MaxAge:           3600,
		AllowCredentials: true,
	})

	return &Gate{
		csrfGuard:      csrfGuard,
		broad:          broad,
		allowedOrigins: allowed,
		cors:           corsHandler,
	}
}

func (g *Gate) Handler(next http.Handler) http.Handler {
	gated := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// API routes carry their own rate-limiting tier in the middleware
		// chain; gating them here as well would double-count every call.
		if !strings.HasPrefix(r.URL.Path, "/api/") {
			if !g.broad.Check(ratelimit.ClientKey(r)).Allowed {
				w.Header().Set("Retry-After", "60")
				writeAPIError(w, apierror.RateLimited())
				return
			}
		}

		if mutating(r.Method) && !csrfExempt(r.URL.Path) {
			if !g.csrfGuard.Verify(r) {
				writeJSONError(w, http.StatusForbidden, "FORBIDDEN", "missing or invalid CSRF token")
				return
			}
		}

		// Presence only. Validity is established once, in the
		// authentication middleware.
		if !publicPath(r.Method, r.URL.Path) {
			if cookie, err := r.Cookie(AccessCookieName); err != nil || cookie.Value == "" {
				writeJSONError(w, http.StatusForbidden, "FORBIDDEN", "missing access token")
				return
			}
		}

		next.ServeHTTP(w, r)
	})

	// rs/cors attaches the response headers for allowed cross-origin
	// requests and short-circuits OPTIONS preflights.
	withCORS := g.cors.Handler(gated)

	// Origin policy runs ahead of the CORS layer so a disallowed origin is
	// rejected 403 on every method, preflight included.
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !g.originAllowed(r) {
			writeJSONError(w, http.StatusForbidden, "FORBIDDEN", "origin not allowed")
			return
		}

		withCORS.ServeHTTP(w, r)
	})
}

// originAllowed accepts same-origin traffic (no Origin header, or one whose
// host matches the request host) and explicitly configured origins.
func (g *Gate) originAllowed(r *http.Request) bool {
	origin := strings.TrimSpace(r.Header.Get("Origin"))
	if origin == "" {
		return true
	}

	trimmed := strings.TrimRight(origin, "/")
	if _, ok := g.allowedOrigins[trimmed]; ok {
		return true
	}

	host := trimmed
	if i := strings.Index(host, "://"); i >= 0 {
		host = host[i+3:]
	}
	return host == r.Host
}

func mutating(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	}
	return true
}

// The auth endpoints are CSRF-exempt: no CSRF cookie exists before login, and
// logout must stay idempotent after cookies are gone.
func csrfExempt(path string) bool {
	return strings.HasPrefix(path, "/api/auth/")
}

// publicPath lists the path+method pairs reachable without an access-token
// cookie: the session lifecycle itself plus health checks.
func publicPath(method string, path string) bool {
	switch path {
	case "/api/auth/jwt":
		return method == http.MethodGet || method == http.MethodPost
	case "/api/auth/refresh", "/api/auth/csrf":
		return method == http.MethodGet
	case "/api/auth/register":
		return method == http.MethodPost
	case "/health":
		return method == http.MethodGet
	}
	return false
}
