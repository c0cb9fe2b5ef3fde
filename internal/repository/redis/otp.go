package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/rahulthapa9024/basic-app/internal/model"
)

const (
	otpPrefix = "otp:"
	// Keys outlive their codes so that reads can still report expiry.
	otpGrace = time.Minute
)

var _ model.OTPStore = (*OTPRepository)(nil)

// OTPRepository keeps pending codes in Redis, shared by every instance.
type OTPRepository struct {
	client goredis.UniversalClient
	now    func() time.Time
}

func NewOTPRepository(client goredis.UniversalClient) *OTPRepository {
	return &OTPRepository{client: client, now: time.Now}
}

func (r *OTPRepository) Put(ctx context.Context, email, code string, ttl time.Duration) error {
	key := otpPrefix + email
	expiresAt := r.now().Add(ttl)

	_, err := r.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, "code", code, "expires_at", expiresAt.UnixMilli())
		pipe.PExpire(ctx, key, max(ttl, 0)+otpGrace)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store otp: %w", err)
	}

	return nil
}

func (r *OTPRepository) Get(ctx context.Context, email string) (model.OTPEntry, error) {
	values, err := r.client.HGetAll(ctx, otpPrefix+email).Result()
	if err != nil {
		return model.OTPEntry{}, fmt.Errorf("failed to read otp: %w", err)
	}
	if len(values) == 0 {
		return model.OTPEntry{}, model.ErrNotFound
	}

	ms, err := strconv.ParseInt(values["expires_at"], 10, 64)
	if err != nil {
		return model.OTPEntry{}, fmt.Errorf("failed to parse otp expiry: %w", err)
	}

	return model.OTPEntry{
		Email:     email,
		Code:      values["code"],
		ExpiresAt: time.UnixMilli(ms),
	}, nil
}

func (r *OTPRepository) Delete(ctx context.Context, email string) error {
	if err := r.client.Del(ctx, otpPrefix+email).Err(); err != nil {
		return fmt.Errorf("failed to delete otp: %w", err)
	}
	return nil
}
