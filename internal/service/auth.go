package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/rahulthapa9024/basic-app/internal/logger"
	"github.com/rahulthapa9024/basic-app/internal/metrics"
	"github.com/rahulthapa9024/basic-app/internal/model"
)

const (
	msgGoogleLoginFields = "Display name, email, and photo URL are required"
	msgEmailRequired     = "Email is required"
	msgVerifyFields      = "Email and OTP are required"
)

// GoogleLoginParams is the profile posted by the browser after a Google popup sign-in.
type GoogleLoginParams struct {
	DisplayName string `validate:"required"`
	Email       string `validate:"required"`
	PhotoURL    string `validate:"required"`
}

// SendOTPParams identifies the mailbox to send a code to.
type SendOTPParams struct {
	Email string `validate:"required"`
}

// VerifyOTPParams carries a code typed in by the user.
type VerifyOTPParams struct {
	Email string `validate:"required"`
	OTP   string `validate:"required"`
}

// Session is an authenticated user together with its signed token.
type Session struct {
	User      model.User
	Token     string
	ExpiresAt time.Time
}

// Auth orchestrates Google and one-time password sign-in, session checks and logout.
type Auth struct {
	userStore model.UserStore
	otpStore  model.OTPStore
	tokens    *TokenService
	mailer    model.Mailer
	codes     model.CodeGenerator
	otpTTL    time.Duration
	validate  *validator.Validate
	logger    *logger.Logger
	now       func() time.Time
}

func NewAuth(
	userStore model.UserStore,
	otpStore model.OTPStore,
	tokens *TokenService,
	mailer model.Mailer,
	codes model.CodeGenerator,
	otpTTL time.Duration,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore: userStore,
		otpStore:  otpStore,
		tokens:    tokens,
		mailer:    mailer,
		codes:     codes,
		otpTTL:    otpTTL,
		validate:  validator.New(),
		logger:    logger,
		now:       time.Now,
	}
}

// GoogleLogin signs in with a Google profile, creating the account on first use.
// An existing account keeps its stored profile.
func (a *Auth) GoogleLogin(ctx context.Context, params GoogleLoginParams) (Session, error) {
	params.Email = normalizeEmail(params.Email)
	if err := a.validate.Struct(params); err != nil {
		return Session{}, model.NewMissingFieldError(msgGoogleLoginFields)
	}

	a.logger.Debug("Auth service: google login", "email", params.Email)

	user, created, err := a.userStore.FindOrCreate(ctx, model.User{
		DisplayName: params.DisplayName,
		Email:       params.Email,
		PhotoURL:    params.PhotoURL,
	})
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(metrics.MethodGoogle, metrics.ResultFailure).Inc()
		a.logger.Error("Auth service: failed to find or create user",
			"email", params.Email,
			"error", err.Error())
		return Session{}, fmt.Errorf("failed to find or create user: %w", err)
	}
	if created {
		metrics.UsersCreatedTotal.Inc()
		a.logger.Info("Auth service: user created", "email", user.Email, "user_id", user.ID)
	}

	session, err := a.startSession(user)
	metrics.LoginsTotal.WithLabelValues(metrics.MethodGoogle, metrics.Result(err)).Inc()
	if err != nil {
		return Session{}, err
	}

	a.logger.Info("Auth service: google login succeeded", "user_id", user.ID)

	return session, nil
}

// SendOTP generates a code for the mailbox, replacing any pending one, and mails it.
// The code is discarded when delivery fails.
func (a *Auth) SendOTP(ctx context.Context, params SendOTPParams) error {
	params.Email = normalizeEmail(params.Email)
	if err := a.validate.Struct(params); err != nil {
		return model.NewMissingFieldError(msgEmailRequired)
	}

	code, err := a.codes.Generate()
	if err != nil {
		return fmt.Errorf("failed to generate otp: %w", err)
	}

	if err := a.otpStore.Put(ctx, params.Email, code, a.otpTTL); err != nil {
		a.logger.Error("Auth service: failed to store otp",
			"email", params.Email,
			"error", err.Error())
		return fmt.Errorf("failed to store otp: %w", err)
	}

	if err := a.mailer.SendOTP(ctx, params.Email, code, a.now().Add(a.otpTTL)); err != nil {
		metrics.OTPSentTotal.WithLabelValues(metrics.ResultFailure).Inc()
		a.logger.Error("Auth service: failed to deliver otp",
			"email", params.Email,
			"error", err.Error())
		if delErr := a.otpStore.Delete(ctx, params.Email); delErr != nil {
			a.logger.Warn("Auth service: failed to discard undelivered otp",
				"email", params.Email,
				"error", delErr.Error())
		}
		return fmt.Errorf("failed to send otp: %w", err)
	}

	metrics.OTPSentTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	a.logger.Info("Auth service: otp sent", "email", params.Email)

	return nil
}

// VerifyOTP consumes a pending code and signs the user in.
// A wrong code leaves the pending entry in place. Accounts are never created here.
func (a *Auth) VerifyOTP(ctx context.Context, params VerifyOTPParams) (Session, error) {
	params.Email = normalizeEmail(params.Email)
	params.OTP = strings.TrimSpace(params.OTP)
	if err := a.validate.Struct(params); err != nil {
		return Session{}, model.NewMissingFieldError(msgVerifyFields)
	}

	session, outcome, err := a.verifyOTP(ctx, params)
	metrics.OTPVerificationsTotal.WithLabelValues(outcome).Inc()
	metrics.LoginsTotal.WithLabelValues(metrics.MethodOTP, metrics.Result(err)).Inc()

	return session, err
}

func (a *Auth) verifyOTP(ctx context.Context, params VerifyOTPParams) (Session, string, error) {
	entry, err := a.otpStore.Get(ctx, params.Email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			a.logger.Info("Auth service: no otp pending", "email", params.Email)
			return Session{}, "no_pending", model.ErrNoOTPPending
		}
		return Session{}, "error", fmt.Errorf("failed to read otp: %w", err)
	}

	if entry.Expired(a.now()) {
		if err := a.otpStore.Delete(ctx, params.Email); err != nil {
			return Session{}, "error", fmt.Errorf("failed to delete expired otp: %w", err)
		}
		a.logger.Info("Auth service: otp expired", "email", params.Email)
		return Session{}, "expired", model.ErrOTPExpired
	}

	if subtle.ConstantTimeCompare([]byte(entry.Code), []byte(params.OTP)) != 1 {
		a.logger.Info("Auth service: invalid otp", "email", params.Email)
		return Session{}, "invalid", model.ErrInvalidCode
	}

	if err := a.otpStore.Delete(ctx, params.Email); err != nil {
		return Session{}, "error", fmt.Errorf("failed to consume otp: %w", err)
	}

	user, err := a.userStore.GetByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			a.logger.Info("Auth service: otp verified for unknown user", "email", params.Email)
			return Session{}, "unknown_user", fmt.Errorf("otp login: %w", err)
		}
		return Session{}, "error", fmt.Errorf("failed to get user by email: %w", err)
	}

	session, err := a.startSession(user)
	if err != nil {
		return Session{}, "error", err
	}

	a.logger.Info("Auth service: otp login succeeded", "user_id", user.ID)

	return session, "success", nil
}

// CheckAuth resolves a session token to the current user record.
func (a *Auth) CheckAuth(ctx context.Context, token string) (model.User, error) {
	claims, err := a.tokens.Authenticate(ctx, token)
	if err != nil {
		return model.User{}, err
	}

	user, err := a.userStore.GetByEmail(ctx, normalizeEmail(claims.Email))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			a.logger.Warn("Auth service: session for missing user", "email", claims.Email)
			return model.User{}, fmt.Errorf("check auth: %w", err)
		}
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

// Logout revokes token until it would have expired on its own.
func (a *Auth) Logout(ctx context.Context, token string) error {
	err := a.tokens.Revoke(ctx, token)
	metrics.LogoutsTotal.WithLabelValues(metrics.Result(err)).Inc()
	return err
}

// normalizeEmail makes every store see one key per mailbox.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (a *Auth) startSession(user model.User) (Session, error) {
	token, claims, err := a.tokens.Issue(user)
	if err != nil {
		a.logger.Error("Auth service: failed to issue token",
			"user_id", user.ID,
			"error", err.Error())
		return Session{}, err
	}

	return Session{User: user, Token: token, ExpiresAt: claims.ExpiresAt}, nil
}
