package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Xylphy/AI-Driven-Recruitment-sub000/internal/middleware"
	"github.com/Xylphy/AI-Driven-Recruitment-sub000/internal/model"
	"github.com/Xylphy/AI-Driven-Recruitment-sub000/internal/service"
	"github.com/Xylphy/AI-Driven-Recruitment-sub000/internal/token"
	"github.com/Xylphy/AI-Driven-Recruitment-sub000/pkg/apierror"
)

type ApplicationHandler struct {
	service *service.ApplicationService
}

func NewApplicationHandler(service *service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

func (h *ApplicationHandler) Apply(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	claims, err := requireClaims(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.ApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body", ""))
		return
	}

	application, err := h.service.Apply(r.Context(), chi.URLParam(r, "job_id"), claims.UserID, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, application, nil)
}

func (h *ApplicationHandler) List(w http.ResponseWriter, r *http.Request) {
	applications, err := h.service.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, applications, nil)
}

func (h *ApplicationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.ApplicationStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body", ""))
		return
	}

	application, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "application_id"), payload.Status)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, application, nil)
}

// requireClaims fetches the caller identity from the request context. The
// RequireAuth middleware upstream guarantees it is present on gated routes.
func requireClaims(r *http.Request) (*token.AccessClaims, error) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		return nil, apierror.Unauthorized("authentication required")
	}
	return claims, nil
}
