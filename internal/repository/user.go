package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mtlprog/punchclock/internal/domain"
)

// userColumns is the shared list of columns for user queries.
var userColumns = []string{"id", "name", "role", "token", "is_active", "created_at"}

// UserRepository handles database operations for users.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// scanUser scans a single row into a User struct.
func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Role,
		&user.Token,
		&user.IsActive,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &user, nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	query, args, err := psql.
		Select(userColumns...).
		From("users").
		Where(sq.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByID query for user: %w", err)
	}

	return scanUser(r.pool.QueryRow(ctx, query, args...))
}

// GetByIDForUpdate retrieves a user by ID with FOR UPDATE lock (within transaction).
// Appends to one user's log are serialized on this lock.
func (r *UserRepository) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, userID string) (*domain.User, error) {
	query, args, err := psql.
		Select(userColumns...).
		From("users").
		Where(sq.Eq{"id": userID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByIDForUpdate query for user %s: %w", userID, err)
	}

	return scanUser(tx.QueryRow(ctx, query, args...))
}

// GetByToken finds a user by authentication token.
func (r *UserRepository) GetByToken(ctx context.Context, token string) (*domain.User, error) {
	query, args, err := psql.
		Select(userColumns...).
		From("users").
		Where(sq.Eq{"token": token}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByToken query: %w", err)
	}

	return scanUser(r.pool.QueryRow(ctx, query, args...))
}

// List retrieves users ordered by name. With activeOnly, deactivated users
// are excluded.
func (r *UserRepository) List(ctx context.Context, activeOnly bool) ([]*domain.User, error) {
	builder := psql.
		Select(userColumns...).
		From("users").
		OrderBy("name ASC")
	if activeOnly {
		builder = builder.Where(sq.Eq{"is_active": true})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build List query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return users, nil
}

// Create inserts a new user and fills in the generated ID and creation time.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query, args, err := psql.
		Insert("users").
		Columns("name", "role", "token", "is_active").
		Values(user.Name, user.Role, user.Token, user.IsActive).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build Create query: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrDuplicateToken
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

// UpdateFields describes the optional user attributes a PATCH may change.
type UpdateFields struct {
	Name     *string
	Role     *domain.UserRole
	IsActive *bool
}

// Update applies the provided fields to a user. Fields left nil are untouched.
func (r *UserRepository) Update(ctx context.Context, userID string, fields UpdateFields) (*domain.User, error) {
	builder := psql.Update("users").Where(sq.Eq{"id": userID})
	if fields.Name != nil {
		builder = builder.Set("name", *fields.Name)
	}
	if fields.Role != nil {
		builder = builder.Set("role", *fields.Role)
	}
	if fields.IsActive != nil {
		builder = builder.Set("is_active", *fields.IsActive)
	}

	query, args, err := builder.
		Suffix("RETURNING " + strings.Join(userColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build Update query for user %s: %w", userID, err)
	}

	return scanUser(r.pool.QueryRow(ctx, query, args...))
}
