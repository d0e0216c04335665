// Package timeline derives attendance state from append-only event logs.
// Every function is pure: it reads a snapshot of events and computes a value,
// with no side effects and no errors. Malformed logs (duplicate INs, missing
// OUTs, out-of-order timestamps) degrade to defined fallbacks instead of
// failing, because the log is append-only and historical entries can never be
// repaired in place.
package timeline

import (
	"sort"
	"time"

	"github.com/mtlprog/punchclock/internal/domain"
)

// DateLayout is the calendar-day format used for filtering and summaries.
const DateLayout = "2006-01-02"

// DayOf returns the UTC calendar day of an instant in YYYY-MM-DD form.
// Timestamps are stored as instants and rendered in UTC, so comparing days
// is equivalent to a prefix match on the RFC 3339 representation.
func DayOf(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// sortAscending returns a copy of events ordered oldest first. The sort is
// stable: events sharing an identical timestamp keep their relative order,
// which for equal instants is implementation-defined, not a guarantee.
func sortAscending(events []domain.AttendanceEvent) []domain.AttendanceEvent {
	sorted := make([]domain.AttendanceEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].RecordedAt.Before(sorted[j].RecordedAt)
	})
	return sorted
}

// ResolveStatus derives the current attendance status from a user's full
// event history, in any order. The chronologically latest event decides:
// IN and BREAK_END mean clocked in (nothing newer can have closed the
// interval), BREAK_START means on break, OUT means clocked out. An empty log
// or an unrecognized event type falls back to clocked out with no last event.
func ResolveStatus(events []domain.AttendanceEvent) (domain.Status, *domain.AttendanceEvent) {
	if len(events) == 0 {
		return domain.StatusClockedOut, nil
	}

	sorted := sortAscending(events)
	last := sorted[len(sorted)-1]

	switch last.Type {
	case domain.EventTypeIn, domain.EventTypeBreakEnd:
		return domain.StatusClockedIn, &last
	case domain.EventTypeBreakStart:
		return domain.StatusOnBreak, &last
	case domain.EventTypeOut:
		return domain.StatusClockedOut, &last
	default:
		return domain.StatusClockedOut, nil
	}
}

// FilterDay returns the events whose timestamp falls on the given UTC
// calendar day, oldest first.
func FilterDay(events []domain.AttendanceEvent, date string) []domain.AttendanceEvent {
	filtered := make([]domain.AttendanceEvent, 0, len(events))
	for _, event := range events {
		if DayOf(event.RecordedAt) == date {
			filtered = append(filtered, event)
		}
	}
	return sortAscending(filtered)
}

// StaleSince reports whether the log describes a forgotten clock-out: the
// user is clocked in (on break does not count) and the last event is older
// than the threshold. Returns the last event when stale.
func StaleSince(events []domain.AttendanceEvent, now time.Time, threshold time.Duration) (*domain.AttendanceEvent, bool) {
	status, last := ResolveStatus(events)
	if status != domain.StatusClockedIn || last == nil {
		return nil, false
	}
	if now.Sub(last.RecordedAt) > threshold {
		return last, true
	}
	return nil, false
}
