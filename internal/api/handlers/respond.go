package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/audiopanel/backend/internal/domain"
	"github.com/audiopanel/backend/internal/logging"
	"github.com/audiopanel/backend/internal/service"
	"gorm.io/gorm"
)

// FieldError is one entry of the details array on validation failures.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type errorBody struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Error: message})
}

func respondValidationError(w http.ResponseWriter, details []FieldError) {
	writeJSON(w, http.StatusBadRequest, errorBody{Error: "Validation error", Details: details})
}

// respondServiceError translates the service layer's typed errors into HTTP
// statuses. Anything unrecognized is logged and becomes a generic 500.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		respondError(w, http.StatusNotFound, "Product not found")
	case errors.Is(err, domain.ErrUserNotFound):
		respondError(w, http.StatusNotFound, "User not found")
	case errors.Is(err, domain.ErrNotOwner):
		respondError(w, http.StatusForbidden, "Not authorized to access this product")
	case errors.Is(err, domain.ErrEmailTaken):
		respondError(w, http.StatusBadRequest, "User with this email already exists")
	case errors.Is(err, domain.ErrInvalidRole):
		respondError(w, http.StatusBadRequest, "Invalid role")
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		respondError(w, http.StatusConflict, "Resource already exists")
	default:
		logging.FromContext(r.Context()).Error("unhandled error", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}
