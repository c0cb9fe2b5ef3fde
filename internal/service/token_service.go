package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rahulthapa9024/basic-app/internal/logger"
	"github.com/rahulthapa9024/basic-app/internal/model"
)

// TokenService issues, authenticates and revokes session tokens.
// It composes the TokenManager and the RevocationStore.
type TokenService struct {
	manager     model.TokenManager
	revocations model.RevocationStore
	logger      *logger.Logger
}

func NewTokenService(manager model.TokenManager, revocations model.RevocationStore, logger *logger.Logger) *TokenService {
	return &TokenService{manager: manager, revocations: revocations, logger: logger}
}

func (s *TokenService) Issue(user model.User) (string, model.SessionClaims, error) {
	token, claims, err := s.manager.Issue(user)
	if err != nil {
		return "", model.SessionClaims{}, fmt.Errorf("issue session token: %w", err)
	}
	return token, claims, nil
}

// Authenticate verifies token and rejects it when it has been revoked.
// Verification failures and revoked tokens are reported as ErrInvalidToken.
func (s *TokenService) Authenticate(ctx context.Context, token string) (model.SessionClaims, error) {
	if token == "" {
		return model.SessionClaims{}, model.ErrNoToken
	}

	claims, err := s.manager.Verify(token)
	if err != nil {
		s.logger.Debug("Token service: verification failed", "error", err.Error())
		return model.SessionClaims{}, fmt.Errorf("%w: %w", model.ErrInvalidToken, err)
	}
	if claims.Email == "" {
		s.logger.Debug("Token service: token without email claim", "user_id", claims.UserID)
		return model.SessionClaims{}, fmt.Errorf("%w: missing email claim", model.ErrInvalidToken)
	}

	blocked, err := s.revocations.IsBlocked(ctx, token)
	if err != nil {
		s.logger.Error("Token service: failed to check revocation", "error", err.Error())
		return model.SessionClaims{}, fmt.Errorf("check revocation: %w", err)
	}
	if blocked {
		s.logger.Info("Token service: revoked token presented", "user_id", claims.UserID)
		return model.SessionClaims{}, fmt.Errorf("%w: token revoked", model.ErrInvalidToken)
	}

	return claims, nil
}

// Revoke blocks token until its own expiry. The signature is not checked.
func (s *TokenService) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return model.ErrNoToken
	}

	claims, err := s.manager.Decode(token)
	if err != nil {
		if !errors.Is(err, model.ErrMalformedToken) {
			err = fmt.Errorf("%w: %w", model.ErrMalformedToken, err)
		}
		return err
	}
	if claims.ExpiresAt.IsZero() {
		return fmt.Errorf("%w: missing exp claim", model.ErrMalformedToken)
	}

	if err := s.revocations.Block(ctx, token, claims.ExpiresAt); err != nil {
		s.logger.Error("Token service: failed to block token", "error", err.Error())
		return fmt.Errorf("block token: %w", err)
	}

	s.logger.Info("Token service: token revoked",
		"user_id", claims.UserID,
		"expires_at", claims.ExpiresAt)

	return nil
}
