package model

import (
	"context"
	"time"
)

// OTPStore keeps at most one pending one-time password per email.
type OTPStore interface {
	// Put overwrites any pending entry for email.
	Put(ctx context.Context, email, code string, ttl time.Duration) error
	// Get returns ErrNotFound when no entry is pending. Expired entries are returned as is.
	Get(ctx context.Context, email string) (OTPEntry, error)
	Delete(ctx context.Context, email string) error
}

// OTPEntry is a pending one-time password.
type OTPEntry struct {
	Email     string
	Code      string
	ExpiresAt time.Time
}

// Expired reports whether the entry is past its expiry at now.
func (e OTPEntry) Expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}

// CodeGenerator produces one-time password codes.
type CodeGenerator interface {
	Generate() (string, error)
}

// Mailer delivers one-time password codes.
type Mailer interface {
	SendOTP(ctx context.Context, email, code string, expiresAt time.Time) error
}
