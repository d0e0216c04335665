package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/mtlprog/punchclock/internal/domain"
	"github.com/mtlprog/punchclock/internal/handler/dto"
	"github.com/mtlprog/punchclock/internal/repository"
)

// handleListUsers lists all users, including deactivated ones.
// @Summary List users
// @Description Lists all users ordered by name. Admin only.
// @Tags users
// @Produce json
// @Success 200 {object} dto.UsersListResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /users [get]
func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userRepo.List(r.Context(), false)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	resp := dto.UsersListResponse{
		Users: make([]dto.UserResponse, len(users)),
		Total: len(users),
	}
	for i, user := range users {
		resp.Users[i] = dto.ToUserResponse(user)
	}

	respondJSON(w, http.StatusOK, resp)
}

// handleCreateUser provisions a new user identity.
// @Summary Create user
// @Description Creates a user with a bearer token. Identity provisioning only; credentials management is out of scope.
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "User creation request"
// @Success 201 {object} dto.UserResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /users [post]
func (h *Handler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if req.Name == "" {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "name is required")
		return
	}
	if len(req.Token) < 16 {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "token must be at least 16 characters")
		return
	}

	role := domain.UserRoleEmployee
	if req.Role != "" {
		role = domain.UserRole(req.Role)
		if !role.IsValid() {
			respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "role must be 'employee' or 'admin'")
			return
		}
	}

	user := &domain.User{
		Name:     req.Name,
		Role:     role,
		Token:    req.Token,
		IsActive: true,
	}
	if err := h.userRepo.Create(r.Context(), user); err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToUserResponse(user))
}

// handleUpdateUser renames, re-roles, or deactivates a user.
// @Summary Update user
// @Description Applies the provided fields to a user; omitted fields are unchanged. Admin only.
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body dto.UpdateUserRequest true "Fields to change"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /users/{id} [patch]
func (h *Handler) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := extractUserID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	fields := repository.UpdateFields{
		Name:     req.Name,
		IsActive: req.IsActive,
	}
	if req.Name != nil && *req.Name == "" {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "name cannot be empty")
		return
	}
	if req.Role != nil {
		role := domain.UserRole(*req.Role)
		if !role.IsValid() {
			respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "role must be 'employee' or 'admin'")
			return
		}
		fields.Role = &role
	}
	if fields.Name == nil && fields.Role == nil && fields.IsActive == nil {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "at least one field is required")
		return
	}

	user, err := h.userRepo.Update(r.Context(), userID, fields)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToUserResponse(user))
}

// handleUserSummary returns another user's daily summary for admin reports.
// @Summary Per-user daily summary
// @Description Aggregates one user's work and break minutes for a day (UTC, defaults to today). Admin only.
// @Tags admin
// @Produce json
// @Param id path string true "User ID"
// @Param date query string false "Day to summarize (YYYY-MM-DD)"
// @Success 200 {object} dto.DailySummaryResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /users/{id}/summary [get]
func (h *Handler) handleUserSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := extractUserID(w, r)
	if !ok {
		return
	}

	// Resolve the user first so a missing ID is a 404, not an empty summary.
	if _, err := h.userRepo.GetByID(ctx, userID); err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	summary, err := h.attendanceService.DaySummary(ctx, userID, r.URL.Query().Get("date"), time.Now().UTC())
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToDailySummaryResponse(summary))
}
