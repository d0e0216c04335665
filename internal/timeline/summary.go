package timeline

import (
	"math"
	"time"

	"github.com/mtlprog/punchclock/internal/domain"
)

const (
	// eveningShiftStartHour is the wall-clock hour, in the zone the event was
	// recorded in, from which an active period can qualify as an evening shift.
	eveningShiftStartHour = 20

	// eveningShiftMinDuration is the minimum continuous active period for a
	// day to be flagged as an evening shift.
	eveningShiftMinDuration = 6 * time.Hour
)

// Summarize replays one calendar day of a user's log and aggregates total
// work and break durations. It walks the day's events oldest first, keeping
// at most one open work interval and one open break interval:
//
//   - IN opens a work interval, silently overwriting any unclosed one
//     (a duplicate IN is tolerated, not an error).
//   - OUT closes the open work interval; a stray OUT with no open interval
//     is a no-op.
//   - BREAK_START closes the open work interval (a break interrupts work)
//     and opens a break interval.
//   - BREAK_END closes the open break interval and reopens a work interval.
//
// Only when date is the calendar day of now are intervals still open at the
// end of the walk closed at now; for past days unclosed intervals are
// dropped. Totals are clamped to zero and rounded to whole minutes after the
// walk, never mid-computation.
func Summarize(events []domain.AttendanceEvent, date string, now time.Time) domain.DailySummary {
	dayEvents := FilterDay(events, date)
	isToday := DayOf(now) == date

	var totalWork, totalBreak time.Duration
	var openWorkStart, openBreakStart *time.Time

	for _, event := range dayEvents {
		at := event.RecordedAt

		switch event.Type {
		case domain.EventTypeIn:
			openWorkStart = &at
		case domain.EventTypeOut:
			if openWorkStart != nil {
				totalWork += at.Sub(*openWorkStart)
				openWorkStart = nil
			}
		case domain.EventTypeBreakStart:
			if openWorkStart != nil {
				totalWork += at.Sub(*openWorkStart)
				openWorkStart = nil
			}
			openBreakStart = &at
		case domain.EventTypeBreakEnd:
			if openBreakStart != nil {
				totalBreak += at.Sub(*openBreakStart)
				openBreakStart = nil
			}
			openWorkStart = &at
		}
	}

	if isToday {
		if openWorkStart != nil {
			totalWork += now.Sub(*openWorkStart)
		}
		if openBreakStart != nil {
			totalBreak += now.Sub(*openBreakStart)
		}
	}

	return domain.DailySummary{
		Date:              date,
		TotalWorkMinutes:  clampMinutes(totalWork),
		TotalBreakMinutes: clampMinutes(totalBreak),
		IsEveningShift:    isEveningShift(dayEvents, isToday, now),
		Events:            dayEvents,
	}
}

// clampMinutes rounds a duration to whole minutes and clamps it to zero.
// Negative totals can only arise from out-of-order timestamps in a corrupted
// log; they are reported as zero rather than propagated.
func clampMinutes(d time.Duration) int {
	minutes := int(math.Round(d.Minutes()))
	if minutes < 0 {
		return 0
	}
	return minutes
}

// isEveningShift scans the day's events, oldest first, for an active period
// opening at or after 20:00 wall-clock time. The hour is read in the zone the
// timestamp was recorded in, while day filtering stays on the UTC rendering;
// both halves match the stored-instant semantics of the log. The period
// closes at the next OUT or BREAK_START, or at now when the day is today and
// nothing closed it. The first window lasting at least six hours flags the
// day; the scan stops there.
func isEveningShift(dayEvents []domain.AttendanceEvent, isToday bool, now time.Time) bool {
	for i, event := range dayEvents {
		if !event.Type.OpensWork() || event.RecordedAt.Hour() < eveningShiftStartHour {
			continue
		}

		var closedAt *time.Time
		for j := i + 1; j < len(dayEvents); j++ {
			if dayEvents[j].Type.ClosesWork() {
				at := dayEvents[j].RecordedAt
				closedAt = &at
				break
			}
		}
		if closedAt == nil && isToday {
			closedAt = &now
		}

		if closedAt != nil && closedAt.Sub(event.RecordedAt) >= eveningShiftMinDuration {
			return true
		}
	}
	return false
}
