package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SessionClaims is the payload of a session token.
type SessionClaims struct {
	Email       string
	DisplayName string
	UserID      uuid.UUID
	IssuedAt    time.Time
	ExpiresAt   time.Time
}

// TokenManager signs and validates session tokens.
type TokenManager interface {
	Issue(user User) (string, SessionClaims, error)
	// Verify checks signature and expiry.
	Verify(token string) (SessionClaims, error)
	// Decode reads claims without checking the signature.
	Decode(token string) (SessionClaims, error)
}

// RevocationStore blocks tokens until their natural expiry.
type RevocationStore interface {
	Block(ctx context.Context, token string, expiresAt time.Time) error
	IsBlocked(ctx context.Context, token string) (bool, error)
}
