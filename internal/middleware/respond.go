package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/Xylphy/AI-Driven-Recruitment-sub000/internal/model"
	"github.com/Xylphy/AI-Driven-Recruitment-sub000/pkg/apierror"
)

func writeJSONError(w http.ResponseWriter, status int, code string, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: false,
		Error: &model.APIError{
			Code:    code,
			Message: message,
		},
	})
}

func writeAPIError(w http.ResponseWriter, apiErr *apierror.APIError) {
	writeJSONError(w, apiErr.HTTPStatus, apiErr.Code, apiErr.Message)
}
