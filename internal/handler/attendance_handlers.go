package handler

import (
	"net/http"
	"time"

	"github.com/mtlprog/punchclock/internal/config"
	"github.com/mtlprog/punchclock/internal/domain"
	"github.com/mtlprog/punchclock/internal/handler/dto"
	"github.com/mtlprog/punchclock/internal/middleware"
)

// recordEvent appends a clock event for the authenticated user and writes
// the stored event back. All four clock action endpoints share it.
func (h *Handler) recordEvent(w http.ResponseWriter, r *http.Request, eventType domain.EventType) {
	ctx := r.Context()

	user, err := middleware.GetUserFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	event, err := h.attendanceService.RecordEvent(ctx, user.ID, eventType, time.Now().UTC())
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToEventResponse(event))
}

// handleClockIn records an IN event.
// @Summary Clock in
// @Description Records a clock-in event for the authenticated user. Fails if the user is already clocked in or on break.
// @Tags attendance
// @Produce json
// @Success 201 {object} dto.EventResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /attendance/clock-in [post]
func (h *Handler) handleClockIn(w http.ResponseWriter, r *http.Request) {
	h.recordEvent(w, r, domain.EventTypeIn)
}

// handleClockOut records an OUT event.
// @Summary Clock out
// @Description Records a clock-out event for the authenticated user.
// @Tags attendance
// @Produce json
// @Success 201 {object} dto.EventResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /attendance/clock-out [post]
func (h *Handler) handleClockOut(w http.ResponseWriter, r *http.Request) {
	h.recordEvent(w, r, domain.EventTypeOut)
}

// handleBreakStart records a BREAK_START event.
// @Summary Start a break
// @Description Records a break-start event for the authenticated user. Only valid while clocked in.
// @Tags attendance
// @Produce json
// @Success 201 {object} dto.EventResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /attendance/break-start [post]
func (h *Handler) handleBreakStart(w http.ResponseWriter, r *http.Request) {
	h.recordEvent(w, r, domain.EventTypeBreakStart)
}

// handleBreakEnd records a BREAK_END event.
// @Summary End a break
// @Description Records a break-end event for the authenticated user. Only valid while on break.
// @Tags attendance
// @Produce json
// @Success 201 {object} dto.EventResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /attendance/break-end [post]
func (h *Handler) handleBreakEnd(w http.ResponseWriter, r *http.Request) {
	h.recordEvent(w, r, domain.EventTypeBreakEnd)
}

// handleStatus returns the authenticated user's derived attendance status.
// @Summary Current attendance status
// @Description Derives the current status (CLOCKED_IN, CLOCKED_OUT, ON_BREAK) from the user's event log.
// @Tags attendance
// @Produce json
// @Success 200 {object} dto.StatusResponse
// @Security BearerAuth
// @Router /attendance/status [get]
func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := middleware.GetUserFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	status, last, err := h.attendanceService.CurrentStatus(ctx, user.ID)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToStatusResponse(user.ID, status, last))
}

// handleSummary returns the authenticated user's daily summary.
// @Summary Daily attendance summary
// @Description Aggregates work and break minutes for one calendar day (UTC). Defaults to today.
// @Tags attendance
// @Produce json
// @Param date query string false "Day to summarize (YYYY-MM-DD)"
// @Success 200 {object} dto.DailySummaryResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /attendance/summary [get]
func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := middleware.GetUserFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	summary, err := h.attendanceService.DaySummary(ctx, user.ID, r.URL.Query().Get("date"), time.Now().UTC())
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToDailySummaryResponse(summary))
}

// handleLogs returns the authenticated user's raw event log.
// @Summary Raw attendance log
// @Description Lists the user's events newest first, or one day's events oldest first when date is given.
// @Tags attendance
// @Produce json
// @Param date query string false "Restrict to one day (YYYY-MM-DD)"
// @Success 200 {object} dto.LogsResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /attendance/logs [get]
func (h *Handler) handleLogs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := middleware.GetUserFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	var events []domain.AttendanceEvent
	if date := r.URL.Query().Get("date"); date != "" {
		events, err = h.attendanceService.LogsForUserOnDate(ctx, user.ID, date, time.Now().UTC())
	} else {
		events, err = h.attendanceService.LogsForUser(ctx, user.ID)
	}
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.LogsResponse{
		Events: dto.ToEventResponses(events),
		Total:  len(events),
	})
}

// handleOverview returns the live status of every active user.
// @Summary Live status overview
// @Description Resolves the current attendance status of every active user. Admin only.
// @Tags admin
// @Produce json
// @Success 200 {object} dto.OverviewResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /attendance/overview [get]
func (h *Handler) handleOverview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	overview, err := h.attendanceService.Overview(ctx)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	resp := dto.OverviewResponse{Users: make([]dto.OverviewEntry, len(overview))}
	for i, entry := range overview {
		statusResp := dto.ToStatusResponse(entry.User.ID, entry.Status, entry.LastEvent)
		resp.Users[i] = dto.OverviewEntry{
			UserID:    entry.User.ID,
			Name:      entry.User.Name,
			Status:    statusResp.Status,
			LastEvent: statusResp.LastEvent,
		}
	}

	respondJSON(w, http.StatusOK, resp)
}

// handleStaleClockIns runs the forgotten clock-out scan.
// @Summary Stale clock-in scan
// @Description Finds active users who appear clocked in with no event for longer than the threshold. Admin only.
// @Tags admin
// @Produce json
// @Param threshold query string false "Staleness threshold as a Go duration (default 12h)"
// @Success 200 {object} dto.StaleClockInsResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /attendance/stale [get]
func (h *Handler) handleStaleClockIns(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	threshold := config.DefaultStaleAfter
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed <= 0 {
			respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "threshold must be a positive duration")
			return
		}
		threshold = parsed
	}

	now := time.Now().UTC()
	stale, err := h.attendanceService.ScanStaleClockIns(ctx, now, threshold)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	resp := dto.StaleClockInsResponse{
		Stale:     make([]dto.StaleClockInResponse, len(stale)),
		Threshold: threshold.String(),
		ScannedAt: now,
	}
	for i, entry := range stale {
		resp.Stale[i] = dto.StaleClockInResponse{
			UserID:      entry.UserID,
			LastEventAt: entry.LastEventAt,
		}
	}

	respondJSON(w, http.StatusOK, resp)
}
