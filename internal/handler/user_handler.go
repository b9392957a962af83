package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Xylphy/AI-Driven-Recruitment-sub000/internal/model"
	"github.com/Xylphy/AI-Driven-Recruitment-sub000/pkg/apierror"
)

type userDirectory interface {
	List(ctx context.Context) ([]model.AuthUser, error)
	UpdateRole(ctx context.Context, userID string, role string) error
}

// UserHandler covers the admin-only user management surface.
type UserHandler struct {
	users userDirectory
}

func NewUserHandler(users userDirectory) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, users, nil)
}

func (h *UserHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.UserRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body", ""))
		return
	}

	if !model.ValidRole(payload.Role) {
		writeError(w, apierror.BadRequest("invalid role", payload.Role))
		return
	}

	userID := chi.URLParam(r, "user_id")
	if err := h.users.UpdateRole(r.Context(), userID, payload.Role); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]string{"id": userID, "role": payload.Role}, nil)
}
