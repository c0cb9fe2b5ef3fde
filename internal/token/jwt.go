package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/rahulthapa9024/basic-app/internal/model"
)

// Claims represents session token claims.
type Claims struct {
	jwt.RegisteredClaims
	EmailID     string    `json:"emailId"`
	DisplayName string    `json:"displayName"`
	UserID      uuid.UUID `json:"userId"`
}

// JWT implements TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

var _ model.TokenManager = (*JWT)(nil)

// NewJWT creates a new JWT token manager with the provided secret key and token lifetime.
func NewJWT(secretKey string, ttl time.Duration) *JWT {
	return &JWT{secretKey: []byte(secretKey), ttl: ttl, now: time.Now}
}

// TTL returns the lifetime of issued tokens.
func (j *JWT) TTL() time.Duration {
	return j.ttl
}

// Issue signs a session token for user.
func (j *JWT) Issue(user model.User) (string, model.SessionClaims, error) {
	now := j.now().Truncate(time.Second)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
		EmailID:     user.Email,
		DisplayName: user.DisplayName,
		UserID:      user.ID,
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secretKey)
	if err != nil {
		return "", model.SessionClaims{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	return tokenString, claims.session(), nil
}

// Verify validates signature and expiry and returns the session claims.
func (j *JWT) Verify(tokenString string) (model.SessionClaims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return j.secretKey, nil
	}, jwt.WithTimeFunc(j.now), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return model.SessionClaims{}, fmt.Errorf("%w: %w", model.ErrTokenExpired, err)
		}
		return model.SessionClaims{}, fmt.Errorf("%w: %w", model.ErrInvalidSignature, err)
	}
	if !token.Valid {
		return model.SessionClaims{}, model.ErrInvalidSignature
	}

	return claims.session(), nil
}

// Decode reads claims without verifying the signature.
func (j *JWT) Decode(tokenString string) (model.SessionClaims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return model.SessionClaims{}, fmt.Errorf("%w: %w", model.ErrMalformedToken, err)
	}
	return claims.session(), nil
}

func (c *Claims) session() model.SessionClaims {
	s := model.SessionClaims{
		Email:       c.EmailID,
		DisplayName: c.DisplayName,
		UserID:      c.UserID,
	}
	if c.IssuedAt != nil {
		s.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		s.ExpiresAt = c.ExpiresAt.Time
	}
	return s
}
