package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Xylphy/AI-Driven-Recruitment-sub000/internal/model"
)

// Timeout aborts requests that outlive the configured deadline with a 503 in
// the standard response envelope.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	body, _ := json.Marshal(model.APIResponse{
		Success: false,
		Error: &model.APIError{
			Code:    "REQUEST_TIMEOUT",
			Message: "request timed out",
		},
	})

	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, timeout, string(body))
	}
}
