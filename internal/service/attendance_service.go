package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mtlprog/punchclock/internal/domain"
	"github.com/mtlprog/punchclock/internal/repository"
	"github.com/mtlprog/punchclock/internal/timeline"
)

// AttendanceService coordinates event ingestion and the derived attendance
// views. All derivation is delegated to the timeline package; the service
// only loads snapshots and enforces the ingestion-time transition policy.
type AttendanceService struct {
	pool      *pgxpool.Pool
	eventRepo *repository.EventRepository
	userRepo  *repository.UserRepository
	validator *Validator
}

// NewAttendanceService creates a new AttendanceService.
func NewAttendanceService(
	pool *pgxpool.Pool,
	eventRepo *repository.EventRepository,
	userRepo *repository.UserRepository,
) *AttendanceService {
	return &AttendanceService{
		pool:      pool,
		eventRepo: eventRepo,
		userRepo:  userRepo,
		validator: NewValidator(),
	}
}

// RecordEvent appends a clock event to a user's log after validating the
// transition against the user's current derived status. The user row is
// locked for the duration of the transaction so concurrent appends for the
// same user serialize and each one validates against a settled log.
func (s *AttendanceService) RecordEvent(
	ctx context.Context,
	userID string,
	eventType domain.EventType,
	at time.Time,
) (*domain.AttendanceEvent, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && err.Error() != "tx is closed" {
			slog.Error("failed to rollback transaction", "error", err)
		}
	}()

	user, err := s.userRepo.GetByIDForUpdate(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	events, err := s.eventRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load event log: %w", err)
	}

	status, _ := timeline.ResolveStatus(events)

	if err := s.validator.CanRecord(user, status, eventType); err != nil {
		return nil, err
	}

	event := &domain.AttendanceEvent{
		UserID:     userID,
		RecordedAt: at,
		Type:       eventType,
	}

	if err := s.eventRepo.Append(ctx, tx, event); err != nil {
		return nil, fmt.Errorf("append event: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	slog.Info("attendance event recorded",
		"user_id", userID,
		"event_id", event.ID,
		"type", eventType,
		"previous_status", status,
	)

	return event, nil
}

// CurrentStatus resolves a user's attendance status from their full log.
func (s *AttendanceService) CurrentStatus(ctx context.Context, userID string) (domain.Status, *domain.AttendanceEvent, error) {
	events, err := s.eventRepo.ListByUser(ctx, userID)
	if err != nil {
		return "", nil, fmt.Errorf("load event log: %w", err)
	}

	status, last := timeline.ResolveStatus(events)
	return status, last, nil
}

// DaySummary aggregates one calendar day of a user's log. An empty date
// defaults to the current UTC day.
func (s *AttendanceService) DaySummary(ctx context.Context, userID, date string, now time.Time) (domain.DailySummary, error) {
	date, err := normalizeDate(date, now)
	if err != nil {
		return domain.DailySummary{}, err
	}

	events, err := s.eventRepo.ListByUser(ctx, userID)
	if err != nil {
		return domain.DailySummary{}, fmt.Errorf("load event log: %w", err)
	}

	return timeline.Summarize(events, date, now), nil
}

// LogsForUser returns a user's full event history, newest first, for display.
func (s *AttendanceService) LogsForUser(ctx context.Context, userID string) ([]domain.AttendanceEvent, error) {
	events, err := s.eventRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load event log: %w", err)
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].RecordedAt.After(events[j].RecordedAt)
	})
	return events, nil
}

// LogsForUserOnDate returns one day of a user's log, oldest first. An empty
// date defaults to the current UTC day.
func (s *AttendanceService) LogsForUserOnDate(ctx context.Context, userID, date string, now time.Time) ([]domain.AttendanceEvent, error) {
	date, err := normalizeDate(date, now)
	if err != nil {
		return nil, err
	}

	events, err := s.eventRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load event log: %w", err)
	}

	return timeline.FilterDay(events, date), nil
}

// Overview resolves the current status of every active user.
func (s *AttendanceService) Overview(ctx context.Context) ([]domain.UserStatus, error) {
	users, err := s.userRepo.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	overview := make([]domain.UserStatus, 0, len(users))
	for _, user := range users {
		events, err := s.eventRepo.ListByUser(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("load event log for user %s: %w", user.ID, err)
		}

		status, last := timeline.ResolveStatus(events)
		overview = append(overview, domain.UserStatus{
			User:      user,
			Status:    status,
			LastEvent: last,
		})
	}

	return overview, nil
}

// ScanStaleClockIns finds active users who appear clocked in but whose last
// event is older than the threshold, suggesting a forgotten clock-out. The
// scan is read-only; surfacing the warnings is the caller's concern.
func (s *AttendanceService) ScanStaleClockIns(ctx context.Context, now time.Time, threshold time.Duration) ([]domain.StaleClockIn, error) {
	users, err := s.userRepo.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	var stale []domain.StaleClockIn
	for _, user := range users {
		events, err := s.eventRepo.ListByUser(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("load event log for user %s: %w", user.ID, err)
		}

		if last, ok := timeline.StaleSince(events, now, threshold); ok {
			stale = append(stale, domain.StaleClockIn{
				UserID:      user.ID,
				LastEventAt: last.RecordedAt,
			})
		}
	}

	slog.Info("stale clock-in scan completed",
		"users_scanned", len(users),
		"stale_found", len(stale),
	)

	return stale, nil
}

// normalizeDate validates a YYYY-MM-DD date, defaulting to the UTC day of now.
func normalizeDate(date string, now time.Time) (string, error) {
	if date == "" {
		return timeline.DayOf(now), nil
	}
	if _, err := time.Parse(timeline.DateLayout, date); err != nil {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidDate, date)
	}
	return date, nil
}
