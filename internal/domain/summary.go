package domain

import "time"

// DailySummary holds the aggregated work and break totals for one calendar day.
// It is derived from the event log and recomputed per query, never persisted.
type DailySummary struct {
	Date              string
	TotalWorkMinutes  int
	TotalBreakMinutes int
	IsEveningShift    bool
	Events            []AttendanceEvent
}

// StaleClockIn flags a user who appears clocked in but whose last event is
// older than the staleness threshold, suggesting a forgotten clock-out.
type StaleClockIn struct {
	UserID      string
	LastEventAt time.Time
}

// UserStatus pairs a user with their currently derived attendance status.
type UserStatus struct {
	User      *User
	Status    Status
	LastEvent *AttendanceEvent
}
