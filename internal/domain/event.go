package domain

import "time"

// EventType represents the type of a clock event.
type EventType string

const (
	EventTypeIn         EventType = "IN"
	EventTypeOut        EventType = "OUT"
	EventTypeBreakStart EventType = "BREAK_START"
	EventTypeBreakEnd   EventType = "BREAK_END"
)

// IsValid checks if the event type is one of the allowed values.
func (t EventType) IsValid() bool {
	switch t {
	case EventTypeIn, EventTypeOut, EventTypeBreakStart, EventTypeBreakEnd:
		return true
	default:
		return false
	}
}

// OpensWork returns true if the event starts an active work period.
func (t EventType) OpensWork() bool {
	return t == EventTypeIn || t == EventTypeBreakEnd
}

// ClosesWork returns true if the event ends an active work period.
func (t EventType) ClosesWork() bool {
	return t == EventTypeOut || t == EventTypeBreakStart
}

// AttendanceEvent is a single append-only clock log entry for a user.
// Events are never updated or deleted once recorded.
type AttendanceEvent struct {
	ID         string
	UserID     string
	RecordedAt time.Time
	Type       EventType
	CreatedAt  time.Time
}

// Status is the attendance state derived from a user's event log.
// It is never persisted; it is recomputed from the log on every read.
type Status string

const (
	StatusClockedIn  Status = "CLOCKED_IN"
	StatusClockedOut Status = "CLOCKED_OUT"
	StatusOnBreak    Status = "ON_BREAK"
)
