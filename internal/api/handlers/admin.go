package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/audiopanel/backend/internal/api/middleware"
	"github.com/audiopanel/backend/internal/domain"
	"github.com/audiopanel/backend/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type AdminHandler struct {
	adminService *service.AdminService
}

func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

type updateRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.adminService.Stats(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 10)

	result, err := h.adminService.ListUsers(r.Context(), page, limit)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	admin, ok := middleware.GetUser(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}

	if id == admin.ID {
		respondError(w, http.StatusBadRequest, "Cannot delete yourself")
		return
	}

	if err := h.adminService.DeleteUser(r.Context(), id); err != nil {
		respondServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
}

func (h *AdminHandler) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	admin, ok := middleware.GetUser(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}

	var req updateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if details := checkStruct(req); details != nil {
		respondValidationError(w, details)
		return
	}

	role := domain.Role(req.Role)
	if !domain.ValidRole(role) {
		respondError(w, http.StatusBadRequest, "Invalid role")
		return
	}
	if id == admin.ID && role != domain.RoleAdmin {
		respondError(w, http.StatusBadRequest, "Cannot demote yourself")
		return
	}

	user, err := h.adminService.UpdateUserRole(r.Context(), id, role)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": "User role updated successfully", "user": user})
}

func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 10)

	result, err := h.adminService.ListProducts(r.Context(), page, limit)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}

	if err := h.adminService.DeleteProduct(r.Context(), id); err != nil {
		respondServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}
