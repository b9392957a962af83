package middleware

import (
	"net/http"
	"strconv"

	"github.com/Xylphy/AI-Driven-Recruitment-sub000/internal/ratelimit"
	"github.com/Xylphy/AI-Driven-Recruitment-sub000/pkg/apierror"
)

// RateLimit wraps routes with a sliding-window limiter keyed by client
// address. The limiter itself never fails; a denial surfaces as 429.
func RateLimit(limiter *ratelimit.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			result := limiter.Check(ratelimit.ClientKey(r))

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))

			if !result.Allowed {
				w.Header().Set("Retry-After", "60")
				writeAPIError(w, apierror.RateLimited())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
