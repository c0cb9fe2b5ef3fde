package model

import "errors"

var (
	ErrMissingField        = errors.New("missing required field")
	ErrDuplicateKey        = errors.New("duplicate key")
	ErrNotFound            = errors.New("not found")
	ErrNoOTPPending        = errors.New("no otp pending")
	ErrOTPExpired          = errors.New("otp expired")
	ErrInvalidCode         = errors.New("invalid otp code")
	ErrNoToken             = errors.New("no token")
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token expired")
	ErrInvalidSignature    = errors.New("invalid token signature")
	ErrMalformedToken      = errors.New("malformed token")
	ErrRegistryUnavailable = errors.New("revocation registry unavailable")
	ErrNoPhoto             = errors.New("user has no photo")
)

// MissingFieldError is returned when request input lacks a required field.
// Message is safe to show to the client.
type MissingFieldError struct {
	Message string
}

// NewMissingFieldError creates a MissingFieldError with the given message.
func NewMissingFieldError(msg string) *MissingFieldError {
	return &MissingFieldError{Message: msg}
}

func (e *MissingFieldError) Error() string {
	return e.Message
}

// Is makes errors.Is(err, ErrMissingField) hold.
func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}
