package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/rahulthapa9024/basic-app/internal/model"
)

const (
	revocationPrefix = "token:"
	revocationValue  = "Blocked"
)

var _ model.RevocationStore = (*RevocationRepository)(nil)

// RevocationRepository is a blocklist of session tokens.
// Each entry expires together with the token it blocks.
type RevocationRepository struct {
	client goredis.UniversalClient
}

func NewRevocationRepository(client goredis.UniversalClient) *RevocationRepository {
	return &RevocationRepository{client: client}
}

func (r *RevocationRepository) Block(ctx context.Context, token string, expiresAt time.Time) error {
	key := revocationPrefix + token

	_, err := r.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Set(ctx, key, revocationValue, 0)
		pipe.ExpireAt(ctx, key, expiresAt)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: block token: %w", model.ErrRegistryUnavailable, err)
	}

	return nil
}

func (r *RevocationRepository) IsBlocked(ctx context.Context, token string) (bool, error) {
	n, err := r.client.Exists(ctx, revocationPrefix+token).Result()
	if err != nil {
		return false, fmt.Errorf("%w: check token: %w", model.ErrRegistryUnavailable, err)
	}
	return n > 0, nil
}
