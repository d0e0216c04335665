package timeline_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtlprog/punchclock/internal/domain"
	"github.com/mtlprog/punchclock/internal/timeline"
)

const day = "2025-06-02"

// pastNow is on a later day, so the summarized day is never "today".
var pastNow = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

func TestSummarize_PlainWorkDay(t *testing.T) {
	events := []domain.AttendanceEvent{
		at(9, 0, domain.EventTypeIn),
		at(17, 0, domain.EventTypeOut),
	}

	summary := timeline.Summarize(events, day, pastNow)

	assert.Equal(t, 480, summary.TotalWorkMinutes)
	assert.Equal(t, 0, summary.TotalBreakMinutes)
	assert.False(t, summary.IsEveningShift)
}

func TestSummarize_BreakInterruptsWork(t *testing.T) {
	events := []domain.AttendanceEvent{
		at(9, 0, domain.EventTypeIn),
		at(12, 0, domain.EventTypeBreakStart),
		at(12, 30, domain.EventTypeBreakEnd),
		at(17, 0, domain.EventTypeOut),
	}

	summary := timeline.Summarize(events, day, pastNow)

	// (12:00-09:00) + (17:00-12:30) = 180 + 270
	assert.Equal(t, 450, summary.TotalWorkMinutes)
	assert.Equal(t, 30, summary.TotalBreakMinutes)
}

func TestSummarize_OpenIntervalClosedAtNowForToday(t *testing.T) {
	events := []domain.AttendanceEvent{at(9, 0, domain.EventTypeIn)}
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	summary := timeline.Summarize(events, day, now)

	assert.Equal(t, 60, summary.TotalWorkMinutes)
}

func TestSummarize_OpenBreakClosedAtNowForToday(t *testing.T) {
	events := []domain.AttendanceEvent{
		at(9, 0, domain.EventTypeIn),
		at(12, 0, domain.EventTypeBreakStart),
	}
	now := time.Date(2025, 6, 2, 12, 45, 0, 0, time.UTC)

	summary := timeline.Summarize(events, day, now)

	assert.Equal(t, 180, summary.TotalWorkMinutes)
	assert.Equal(t, 45, summary.TotalBreakMinutes)
}

// Unclosed intervals on past days are dropped, not extrapolated.
func TestSummarize_OpenIntervalDroppedForPastDay(t *testing.T) {
	events := []domain.AttendanceEvent{at(9, 0, domain.EventTypeIn)}

	summary := timeline.Summarize(events, day, pastNow)

	assert.Equal(t, 0, summary.TotalWorkMinutes)
}

func TestSummarize_MalformedLogs(t *testing.T) {
	tests := []struct {
		name      string
		events    []domain.AttendanceEvent
		wantWork  int
		wantBreak int
	}{
		{
			name: "duplicate IN overwrites open interval",
			events: []domain.AttendanceEvent{
				at(9, 0, domain.EventTypeIn),
				at(10, 0, domain.EventTypeIn),
				at(11, 0, domain.EventTypeOut),
			},
			wantWork: 60,
		},
		{
			name:   "stray OUT is a no-op",
			events: []domain.AttendanceEvent{at(9, 0, domain.EventTypeOut)},
		},
		{
			name:   "stray BREAK_END reopens work",
			events: []domain.AttendanceEvent{
				at(9, 0, domain.EventTypeBreakEnd),
				at(10, 0, domain.EventTypeOut),
			},
			wantWork: 60,
		},
		{
			name: "unknown event type is skipped",
			events: []domain.AttendanceEvent{
				at(9, 0, domain.EventTypeIn),
				at(9, 30, domain.EventType("LUNCH")),
				at(10, 0, domain.EventTypeOut),
			},
			wantWork: 60,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := timeline.Summarize(tt.events, day, pastNow)

			assert.Equal(t, tt.wantWork, summary.TotalWorkMinutes)
			assert.Equal(t, tt.wantBreak, summary.TotalBreakMinutes)
			assert.GreaterOrEqual(t, summary.TotalWorkMinutes, 0)
			assert.GreaterOrEqual(t, summary.TotalBreakMinutes, 0)
		})
	}
}

func TestSummarize_EmptyLog(t *testing.T) {
	summary := timeline.Summarize(nil, day, pastNow)

	assert.Equal(t, day, summary.Date)
	assert.Zero(t, summary.TotalWorkMinutes)
	assert.Zero(t, summary.TotalBreakMinutes)
	assert.False(t, summary.IsEveningShift)
	assert.Empty(t, summary.Events)
}

func TestSummarize_ReturnsDayEventsAscending(t *testing.T) {
	events := []domain.AttendanceEvent{
		at(17, 0, domain.EventTypeOut),
		at(9, 0, domain.EventTypeIn),
		{RecordedAt: time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC), Type: domain.EventTypeIn},
	}

	summary := timeline.Summarize(events, day, pastNow)

	require.Len(t, summary.Events, 2)
	assert.True(t, summary.Events[0].RecordedAt.Before(summary.Events[1].RecordedAt))
}

// Evening work is recorded as instants; the wall-clock hour is read in the
// zone the event was recorded in, so a 20:00-02:00 local shift east of UTC
// stays within one UTC day and can be classified.
func TestSummarize_EveningShift(t *testing.T) {
	zone := time.FixedZone("UTC+10", 10*60*60)
	evening := func(dayOfMonth, hour, minute int, eventType domain.EventType) domain.AttendanceEvent {
		return domain.AttendanceEvent{
			UserID:     "user-1",
			RecordedAt: time.Date(2025, 6, dayOfMonth, hour, minute, 0, 0, zone),
			Type:       eventType,
		}
	}

	t.Run("six hours after 20:00 flags the day", func(t *testing.T) {
		events := []domain.AttendanceEvent{
			evening(2, 20, 0, domain.EventTypeIn), // 10:00 UTC June 2
			evening(3, 2, 0, domain.EventTypeOut), // 16:00 UTC June 2
		}

		summary := timeline.Summarize(events, day, pastNow)

		assert.True(t, summary.IsEveningShift)
		assert.Equal(t, 360, summary.TotalWorkMinutes)
	})

	t.Run("five hours 59 minutes does not", func(t *testing.T) {
		events := []domain.AttendanceEvent{
			evening(2, 20, 0, domain.EventTypeIn),
			evening(3, 1, 59, domain.EventTypeOut),
		}

		summary := timeline.Summarize(events, day, pastNow)

		assert.False(t, summary.IsEveningShift)
	})

	t.Run("open evening window closes at now for today", func(t *testing.T) {
		events := []domain.AttendanceEvent{
			evening(2, 20, 15, domain.EventTypeIn), // 10:15 UTC June 2
		}
		now := time.Date(2025, 6, 2, 16, 20, 0, 0, time.UTC)

		summary := timeline.Summarize(events, day, now)

		assert.True(t, summary.IsEveningShift)
	})

	t.Run("daytime shift of equal length does not qualify", func(t *testing.T) {
		events := []domain.AttendanceEvent{
			at(9, 0, domain.EventTypeIn),
			at(17, 0, domain.EventTypeOut),
		}

		summary := timeline.Summarize(events, day, pastNow)

		assert.False(t, summary.IsEveningShift)
	})

	t.Run("BREAK_END after 20:00 can open the window", func(t *testing.T) {
		events := []domain.AttendanceEvent{
			evening(2, 19, 0, domain.EventTypeIn),          // 09:00 UTC
			evening(2, 20, 30, domain.EventTypeBreakStart), // 10:30 UTC
			evening(2, 21, 0, domain.EventTypeBreakEnd),    // 11:00 UTC
			evening(3, 3, 30, domain.EventTypeOut),         // 17:30 UTC, 6h30m later
		}

		summary := timeline.Summarize(events, day, pastNow)

		assert.True(t, summary.IsEveningShift)
	})
}
