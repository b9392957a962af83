package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/Xylphy/AI-Driven-Recruitment-sub000/internal/csrf"
	"github.com/Xylphy/AI-Driven-Recruitment-sub000/internal/middleware"
	"github.com/Xylphy/AI-Driven-Recruitment-sub000/internal/model"
	"github.com/Xylphy/AI-Driven-Recruitment-sub000/internal/service"
	"github.com/Xylphy/AI-Driven-Recruitment-sub000/pkg/apierror"
)

// AuthHandler exposes the session lifecycle. Side effects are confined to
// Set-Cookie headers and the JSON body; cookies are the whole session.
type AuthHandler struct {
	service   *service.AuthService
	csrfGuard *csrf.Guard
	secure    bool
}

func NewAuthHandler(service *service.AuthService, csrfGuard *csrf.Guard, secure bool) *AuthHandler {
	return &AuthHandler{service: service, csrfGuard: csrfGuard, secure: secure}
}

// Login exchanges the provider uid carried as a bearer credential for the
// access/refresh cookie pair plus a fresh CSRF token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	uid := bearerCredential(r)
	if uid == "" {
		writeError(w, apierror.Unauthorized("missing bearer credential"))
		return
	}

	_, pair, err := h.service.Login(r.Context(), uid)
	if err != nil {
		writeError(w, err)
		return
	}

	h.setSessionCookies(w, pair)
	csrfToken, err := h.csrfGuard.Issue(w)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.SessionResponse{
		Message:   "Logged in",
		Status:    http.StatusOK,
		CSRFToken: csrfToken,
	})
}

// Refresh rotates the token pair. Any verification failure clears both
// cookies and forces a re-login; the client never keeps a half-valid session.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(middleware.RefreshCookieName)
	if err != nil || cookie.Value == "" {
		writeError(w, apierror.Unauthorized("missing refresh token"))
		return
	}

	_, pair, err := h.service.Refresh(r.Context(), cookie.Value)
	if err != nil {
		h.clearSessionCookies(w)
		writeError(w, err)
		return
	}

	h.setSessionCookies(w, pair)
	csrfToken, err := h.csrfGuard.Issue(w)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.SessionResponse{
		Message:   "Session refreshed",
		Status:    http.StatusOK,
		CSRFToken: csrfToken,
	})
}

// Logout clears both cookies unconditionally. Idempotent: logging out an
// already-clean client is still a success.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearSessionCookies(w)
	writeJSON(w, http.StatusOK, model.SessionResponse{
		Message: "Logged out",
		Status:  http.StatusOK,
	})
}

// CSRFToken issues a standalone CSRF cookie for clients that need one before
// any mutating call.
func (h *AuthHandler) CSRFToken(w http.ResponseWriter, r *http.Request) {
	csrfToken, err := h.csrfGuard.Issue(w)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.SessionResponse{
		Message:   "CSRF token issued",
		Status:    http.StatusOK,
		CSRFToken: csrfToken,
	})
}

// Register creates the local account for a freshly provider-authenticated
// identity. Sits behind the tight rate limiter.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	uid := bearerCredential(r)
	if uid == "" {
		writeError(w, apierror.Unauthorized("missing bearer credential"))
		return
	}

	var payload model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body", ""))
		return
	}

	user, err := h.service.Register(r.Context(), uid, payload.FullName, payload.Email)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, user, nil)
}

// Me returns the authenticated user's claims view, mostly for the frontend
// to hydrate its session state.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, apierror.Unauthorized("authentication required"))
		return
	}

	writeSuccess(w, http.StatusOK, map[string]string{
		"id":   claims.UserID,
		"role": claims.Role,
	}, nil)
}

func (h *AuthHandler) setSessionCookies(w http.ResponseWriter, pair model.TokenPair) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessCookieName,
		Value:    pair.AccessToken,
		Path:     "/",
		MaxAge:   int(h.service.AccessTTL().Seconds()),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.RefreshCookieName,
		Value:    pair.RefreshToken,
		Path:     middleware.RefreshCookiePath,
		MaxAge:   int(h.service.RefreshTTL().Seconds()),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookies(w http.ResponseWriter) {
	expired := time.Unix(0, 0)

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  expired,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.RefreshCookieName,
		Value:    "",
		Path:     middleware.RefreshCookiePath,
		MaxAge:   -1,
		Expires:  expired,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func bearerCredential(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return ""
	}

	return strings.TrimSpace(header[7:])
}
