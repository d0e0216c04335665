package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mtlprog/punchclock/internal/domain"
)

// EventRepository handles database operations for attendance events.
// The attendance_events table is append-only: there are no update or delete
// paths, by design.
type EventRepository struct {
	pool *pgxpool.Pool
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

// Append stores a new attendance event within the transaction and fills in
// the generated ID and creation time.
func (r *EventRepository) Append(ctx context.Context, tx pgx.Tx, event *domain.AttendanceEvent) error {
	query, args, err := psql.
		Insert("attendance_events").
		Columns("user_id", "recorded_at", "type").
		Values(event.UserID, event.RecordedAt, event.Type).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build Append query: %w", err)
	}

	err = tx.QueryRow(ctx, query, args...).Scan(&event.ID, &event.CreatedAt)
	if err != nil {
		return fmt.Errorf("append attendance event: %w", err)
	}

	return nil
}

// ListByUser retrieves a user's full event history, oldest first.
func (r *EventRepository) ListByUser(ctx context.Context, userID string) ([]domain.AttendanceEvent, error) {
	query, args, err := psql.
		Select("id", "user_id", "recorded_at", "type", "created_at").
		From("attendance_events").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("recorded_at ASC", "created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ListByUser query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query attendance events: %w", err)
	}
	defer rows.Close()

	var events []domain.AttendanceEvent
	for rows.Next() {
		var event domain.AttendanceEvent
		err := rows.Scan(
			&event.ID,
			&event.UserID,
			&event.RecordedAt,
			&event.Type,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan attendance event: %w", err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return events, nil
}
