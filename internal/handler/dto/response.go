package dto

import (
	"time"

	"github.com/mtlprog/punchclock/internal/domain"
)

// EventResponse represents a single attendance event.
type EventResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	RecordedAt time.Time `json:"recorded_at"`
	Type       string    `json:"type"`
}

// StatusResponse represents the derived attendance status of a user.
type StatusResponse struct {
	UserID    string         `json:"user_id"`
	Status    string         `json:"status"`
	LastEvent *EventResponse `json:"last_event"`
}

// DailySummaryResponse represents the aggregated totals for one day.
type DailySummaryResponse struct {
	Date              string          `json:"date"`
	TotalWorkMinutes  int             `json:"total_work_minutes"`
	TotalBreakMinutes int             `json:"total_break_minutes"`
	IsEveningShift    bool            `json:"is_evening_shift"`
	Events            []EventResponse `json:"events"`
}

// LogsResponse represents a list of raw attendance events.
type LogsResponse struct {
	Events []EventResponse `json:"events"`
	Total  int             `json:"total"`
}

// OverviewEntry represents one user's live status in the admin overview.
type OverviewEntry struct {
	UserID    string         `json:"user_id"`
	Name      string         `json:"name"`
	Status    string         `json:"status"`
	LastEvent *EventResponse `json:"last_event"`
}

// OverviewResponse represents the admin live-status overview.
type OverviewResponse struct {
	Users []OverviewEntry `json:"users"`
}

// StaleClockInResponse represents one suspected forgotten clock-out.
type StaleClockInResponse struct {
	UserID      string    `json:"user_id"`
	LastEventAt time.Time `json:"last_event_at"`
}

// StaleClockInsResponse represents the stale scan result.
type StaleClockInsResponse struct {
	Stale     []StaleClockInResponse `json:"stale"`
	Threshold string                 `json:"threshold"`
	ScannedAt time.Time              `json:"scanned_at"`
}

// UserResponse represents a user in management endpoints. The token is never
// echoed back.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// UsersListResponse represents the response for GET /users.
type UsersListResponse struct {
	Users []UserResponse `json:"users"`
	Total int            `json:"total"`
}

// ToEventResponse converts a domain.AttendanceEvent to EventResponse.
func ToEventResponse(event *domain.AttendanceEvent) EventResponse {
	return EventResponse{
		ID:         event.ID,
		UserID:     event.UserID,
		RecordedAt: event.RecordedAt,
		Type:       string(event.Type),
	}
}

// ToEventResponses converts a slice of events.
func ToEventResponses(events []domain.AttendanceEvent) []EventResponse {
	out := make([]EventResponse, len(events))
	for i := range events {
		out[i] = ToEventResponse(&events[i])
	}
	return out
}

// ToStatusResponse converts a derived status with its triggering event.
func ToStatusResponse(userID string, status domain.Status, last *domain.AttendanceEvent) StatusResponse {
	resp := StatusResponse{
		UserID: userID,
		Status: string(status),
	}
	if last != nil {
		event := ToEventResponse(last)
		resp.LastEvent = &event
	}
	return resp
}

// ToDailySummaryResponse converts a domain.DailySummary.
func ToDailySummaryResponse(summary domain.DailySummary) DailySummaryResponse {
	return DailySummaryResponse{
		Date:              summary.Date,
		TotalWorkMinutes:  summary.TotalWorkMinutes,
		TotalBreakMinutes: summary.TotalBreakMinutes,
		IsEveningShift:    summary.IsEveningShift,
		Events:            ToEventResponses(summary.Events),
	}
}

// ToUserResponse converts a domain.User.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Role:      string(user.Role),
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}
}
