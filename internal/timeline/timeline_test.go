package timeline_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtlprog/punchclock/internal/domain"
	"github.com/mtlprog/punchclock/internal/timeline"
)

// at builds an event on 2025-06-02 UTC at the given clock time.
func at(hour, minute int, eventType domain.EventType) domain.AttendanceEvent {
	return domain.AttendanceEvent{
		ID:         "event",
		UserID:     "user-1",
		RecordedAt: time.Date(2025, 6, 2, hour, minute, 0, 0, time.UTC),
		Type:       eventType,
	}
}

func TestResolveStatus_EmptyLog(t *testing.T) {
	status, last := timeline.ResolveStatus(nil)

	assert.Equal(t, domain.StatusClockedOut, status)
	assert.Nil(t, last)
}

func TestResolveStatus_LastEventDecides(t *testing.T) {
	tests := []struct {
		name   string
		events []domain.AttendanceEvent
		want   domain.Status
	}{
		{
			name:   "single IN",
			events: []domain.AttendanceEvent{at(9, 0, domain.EventTypeIn)},
			want:   domain.StatusClockedIn,
		},
		{
			name: "IN then OUT",
			events: []domain.AttendanceEvent{
				at(9, 0, domain.EventTypeIn),
				at(17, 0, domain.EventTypeOut),
			},
			want: domain.StatusClockedOut,
		},
		{
			name: "on break",
			events: []domain.AttendanceEvent{
				at(9, 0, domain.EventTypeIn),
				at(12, 0, domain.EventTypeBreakStart),
			},
			want: domain.StatusOnBreak,
		},
		{
			name: "back from break",
			events: []domain.AttendanceEvent{
				at(9, 0, domain.EventTypeIn),
				at(12, 0, domain.EventTypeBreakStart),
				at(12, 30, domain.EventTypeBreakEnd),
			},
			want: domain.StatusClockedIn,
		},
		{
			name: "unordered input",
			events: []domain.AttendanceEvent{
				at(17, 0, domain.EventTypeOut),
				at(9, 0, domain.EventTypeIn),
			},
			want: domain.StatusClockedOut,
		},
		{
			name: "duplicate IN tolerated",
			events: []domain.AttendanceEvent{
				at(9, 0, domain.EventTypeIn),
				at(10, 0, domain.EventTypeIn),
			},
			want: domain.StatusClockedIn,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, last := timeline.ResolveStatus(tt.events)

			assert.Equal(t, tt.want, status)
			require.NotNil(t, last)
		})
	}
}

func TestResolveStatus_UnknownTypeFallsBack(t *testing.T) {
	events := []domain.AttendanceEvent{
		at(9, 0, domain.EventTypeIn),
		at(10, 0, domain.EventType("LUNCH")),
	}

	status, last := timeline.ResolveStatus(events)

	assert.Equal(t, domain.StatusClockedOut, status)
	assert.Nil(t, last)
}

// Reading the same snapshot twice yields identical results (pure function).
func TestResolveStatus_Idempotent(t *testing.T) {
	events := []domain.AttendanceEvent{
		at(9, 0, domain.EventTypeIn),
		at(12, 0, domain.EventTypeBreakStart),
	}

	status1, last1 := timeline.ResolveStatus(events)
	status2, last2 := timeline.ResolveStatus(events)

	assert.Equal(t, status1, status2)
	assert.Equal(t, last1, last2)
}

// Equal timestamps have no defined winner; the stable sort makes the outcome
// depend on input order. This pins the behavior as implementation-defined
// rather than asserting a contract.
func TestResolveStatus_EqualTimestampsAreOrderDependent(t *testing.T) {
	in := at(9, 0, domain.EventTypeIn)
	out := at(9, 0, domain.EventTypeOut)

	status, _ := timeline.ResolveStatus([]domain.AttendanceEvent{in, out})
	assert.Equal(t, domain.StatusClockedOut, status)

	status, _ = timeline.ResolveStatus([]domain.AttendanceEvent{out, in})
	assert.Equal(t, domain.StatusClockedIn, status)
}

func TestResolveStatus_DoesNotMutateInput(t *testing.T) {
	events := []domain.AttendanceEvent{
		at(17, 0, domain.EventTypeOut),
		at(9, 0, domain.EventTypeIn),
	}

	timeline.ResolveStatus(events)

	assert.Equal(t, domain.EventTypeOut, events[0].Type, "input slice must not be reordered")
}

func TestFilterDay(t *testing.T) {
	otherDay := domain.AttendanceEvent{
		UserID:     "user-1",
		RecordedAt: time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC),
		Type:       domain.EventTypeIn,
	}
	events := []domain.AttendanceEvent{
		at(17, 0, domain.EventTypeOut),
		otherDay,
		at(9, 0, domain.EventTypeIn),
	}

	filtered := timeline.FilterDay(events, "2025-06-02")

	require.Len(t, filtered, 2)
	assert.Equal(t, domain.EventTypeIn, filtered[0].Type, "ascending order")
	assert.Equal(t, domain.EventTypeOut, filtered[1].Type)
}

func TestStaleSince(t *testing.T) {
	now := time.Date(2025, 6, 2, 22, 0, 0, 0, time.UTC)
	threshold := 12 * time.Hour

	tests := []struct {
		name   string
		events []domain.AttendanceEvent
		stale  bool
	}{
		{
			name:   "clocked in 13h ago",
			events: []domain.AttendanceEvent{at(9, 0, domain.EventTypeIn)},
			stale:  true,
		},
		{
			name:   "clocked in 11h ago",
			events: []domain.AttendanceEvent{at(11, 0, domain.EventTypeIn)},
			stale:  false,
		},
		{
			name: "on break is not stale",
			events: []domain.AttendanceEvent{
				at(8, 0, domain.EventTypeIn),
				at(9, 0, domain.EventTypeBreakStart),
			},
			stale: false,
		},
		{
			name: "clocked out is not stale",
			events: []domain.AttendanceEvent{
				at(1, 0, domain.EventTypeIn),
				at(2, 0, domain.EventTypeOut),
			},
			stale: false,
		},
		{
			name:   "empty log",
			events: nil,
			stale:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			last, stale := timeline.StaleSince(tt.events, now, threshold)

			assert.Equal(t, tt.stale, stale)
			if tt.stale {
				require.NotNil(t, last)
				assert.Equal(t, tt.events[0].RecordedAt, last.RecordedAt)
			} else {
				assert.Nil(t, last)
			}
		})
	}
}

func TestStaleSince_ExactThresholdIsNotStale(t *testing.T) {
	now := time.Date(2025, 6, 2, 21, 0, 0, 0, time.UTC)

	_, stale := timeline.StaleSince(
		[]domain.AttendanceEvent{at(9, 0, domain.EventTypeIn)},
		now, 12*time.Hour,
	)

	assert.False(t, stale, "staleness requires strictly more than the threshold")
}

func TestDayOf(t *testing.T) {
	utcPlus10 := time.FixedZone("UTC+10", 10*60*60)

	assert.Equal(t, "2025-06-02", timeline.DayOf(time.Date(2025, 6, 2, 23, 59, 0, 0, time.UTC)))
	// 08:00 on June 3rd at UTC+10 is still June 2nd in UTC.
	assert.Equal(t, "2025-06-02", timeline.DayOf(time.Date(2025, 6, 3, 8, 0, 0, 0, utcPlus10)))
}
