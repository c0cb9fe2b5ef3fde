package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Create(ctx context.Context, user User) (User, error)
	// FindOrCreate returns the stored user for user.Email, inserting user when absent.
	// The boolean reports whether a new record was created.
	FindOrCreate(ctx context.Context, user User) (User, bool, error)
}

// User represents a registered account. Email is the natural key.
type User struct {
	ID          uuid.UUID
	DisplayName string
	Email       string
	PhotoURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
