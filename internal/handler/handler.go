package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/mtlprog/punchclock/docs" // Import generated docs
	"github.com/mtlprog/punchclock/internal/handler/dto"
	"github.com/mtlprog/punchclock/internal/middleware"
	"github.com/mtlprog/punchclock/internal/repository"
	"github.com/mtlprog/punchclock/internal/service"
	"github.com/mtlprog/punchclock/internal/static"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	pool              *pgxpool.Pool
	attendanceService *service.AttendanceService
	eventRepo         *repository.EventRepository
	userRepo          *repository.UserRepository
	authMiddleware    *middleware.AuthMiddleware
}

// New creates a new Handler instance with all dependencies.
func New(pool *pgxpool.Pool) *Handler {
	eventRepo := repository.NewEventRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	attendanceService := service.NewAttendanceService(pool, eventRepo, userRepo)

	authMiddleware := middleware.NewAuthMiddleware(userRepo)

	return &Handler{
		pool:              pool,
		attendanceService: attendanceService,
		eventRepo:         eventRepo,
		userRepo:          userRepo,
		authMiddleware:    authMiddleware,
	}
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Health check
	mux.HandleFunc("GET /healthz", h.handleHealthz)

	// API usage guide
	mux.HandleFunc("GET /usage.md", h.handleUsageMd)

	// Swagger UI
	mux.HandleFunc("GET /swagger/", httpSwagger.Handler())

	// Clock actions for the authenticated user
	mux.Handle("POST /api/v1/attendance/clock-in", h.authed(h.handleClockIn))
	mux.Handle("POST /api/v1/attendance/clock-out", h.authed(h.handleClockOut))
	mux.Handle("POST /api/v1/attendance/break-start", h.authed(h.handleBreakStart))
	mux.Handle("POST /api/v1/attendance/break-end", h.authed(h.handleBreakEnd))

	// Derived views for the authenticated user
	mux.Handle("GET /api/v1/attendance/status", h.authed(h.handleStatus))
	mux.Handle("GET /api/v1/attendance/summary", h.authed(h.handleSummary))
	mux.Handle("GET /api/v1/attendance/logs", h.authed(h.handleLogs))

	// Admin reporting
	mux.Handle("GET /api/v1/attendance/overview", h.admin(h.handleOverview))
	mux.Handle("GET /api/v1/attendance/stale", h.admin(h.handleStaleClockIns))

	// Admin user management
	mux.Handle("GET /api/v1/users", h.admin(h.handleListUsers))
	mux.Handle("POST /api/v1/users", h.admin(h.handleCreateUser))
	mux.Handle("PATCH /api/v1/users/{id}", h.admin(h.handleUpdateUser))
	mux.Handle("GET /api/v1/users/{id}/summary", h.admin(h.handleUserSummary))
}

// authed wraps a handler with bearer-token authentication.
func (h *Handler) authed(fn http.HandlerFunc) http.Handler {
	return h.authMiddleware.Authenticate(fn)
}

// admin wraps a handler with authentication plus the admin role gate.
func (h *Handler) admin(fn http.HandlerFunc) http.Handler {
	return h.authMiddleware.Authenticate(h.authMiddleware.RequireAdmin(fn))
}

// handleHealthz returns 200 OK if the database is reachable.
func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.pool.Ping(ctx); err != nil {
		slog.Error("database health check failed", "error", err)
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// handleUsageMd serves the embedded usage guide.
func (h *Handler) handleUsageMd(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(static.UsageMd))
}

// Ping checks if the database is reachable (used for testing).
func (h *Handler) Ping(ctx context.Context) error {
	return h.pool.Ping(ctx)
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// respondError writes a standard error response.
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, dto.NewErrorResponse(code, message))
}

// extractUserID extracts and validates the user ID path parameter.
// Returns (userID, true) if valid, ("", false) if invalid (error already sent to client).
func extractUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := r.PathValue("id")
	if userID == "" {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "user id is required")
		return "", false
	}

	if _, err := uuid.Parse(userID); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "user id must be a valid UUID")
		return "", false
	}

	return userID, true
}
