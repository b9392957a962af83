package model

type APIResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
	Meta    *Meta     `json:"meta,omitempty"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// SessionResponse is the body returned by login, refresh and CSRF issuance.
// The tokens themselves travel only in cookies; the CSRF value is duplicated
// here so the client can start echoing it immediately.
type SessionResponse struct {
	Message   string `json:"message"`
	Status    int    `json:"status"`
	CSRFToken string `json:"csrfToken,omitempty"`
}
