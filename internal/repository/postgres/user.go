package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rahulthapa9024/basic-app/internal/model"
)

const uniqueViolation = "23505"

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	db Querier
}

func NewUserRepository(db Querier) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	query := `SELECT id, display_name, email, photo_url, created_at, updated_at
			  FROM users WHERE email = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	query := `SELECT id, display_name, email, photo_url, created_at, updated_at
			  FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	query := `INSERT INTO users (id, display_name, email, photo_url, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id, display_name, email, photo_url, created_at, updated_at`

	prepared := prepareUser(user)
	saved, err := scanUser(r.db.QueryRow(ctx, query,
		prepared.ID, prepared.DisplayName, prepared.Email, prepared.PhotoURL,
		prepared.CreatedAt, prepared.UpdatedAt,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return model.User{}, model.ErrDuplicateKey
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return saved, nil
}

// FindOrCreate inserts user unless a row with the same email exists.
// The no-op update makes RETURNING yield the existing row; xmax = 0 only for fresh inserts.
func (r *UserRepository) FindOrCreate(ctx context.Context, user model.User) (model.User, bool, error) {
	query := `INSERT INTO users (id, display_name, email, photo_url, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
			  RETURNING id, display_name, email, photo_url, created_at, updated_at, (xmax = 0) AS inserted`

	prepared := prepareUser(user)

	var (
		saved    model.User
		inserted bool
	)
	err := r.db.QueryRow(ctx, query,
		prepared.ID, prepared.DisplayName, prepared.Email, prepared.PhotoURL,
		prepared.CreatedAt, prepared.UpdatedAt,
	).Scan(
		&saved.ID, &saved.DisplayName, &saved.Email, &saved.PhotoURL,
		&saved.CreatedAt, &saved.UpdatedAt, &inserted,
	)
	if err != nil {
		return model.User{}, false, fmt.Errorf("failed to find or create user: %w", err)
	}

	return saved, inserted, nil
}

func scanUser(row pgx.Row) (model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID, &user.DisplayName, &user.Email, &user.PhotoURL,
		&user.CreatedAt, &user.UpdatedAt,
	)
	return user, err
}

func prepareUser(user model.User) model.User {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = user.CreatedAt
	}
	return user
}
