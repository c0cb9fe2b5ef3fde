package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahulthapa9024/basic-app/internal/model"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()
	m := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: m.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
	})
	return m, client
}

func newUnreachableClient(t *testing.T) *goredis.Client {
	t.Helper()
	client := goredis.NewClient(&goredis.Options{
		Addr:         "127.0.0.1:1",
		DialTimeout:  20 * time.Millisecond,
		ReadTimeout:  20 * time.Millisecond,
		WriteTimeout: 20 * time.Millisecond,
		MaxRetries:   -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestNewClient(t *testing.T) {
	m := miniredis.RunT(t)

	client, err := NewClient(context.Background(), Options{Addr: m.Addr()})
	require.NoError(t, err)
	defer client.Close()

	assert.NoError(t, Pinger{Client: client}.Ping(context.Background()))

	_, err = NewClient(context.Background(), Options{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
}

func TestRevocationRepository_Block(t *testing.T) {
	ctx := context.Background()
	m, client := newTestClient(t)
	repo := NewRevocationRepository(client)

	blocked, err := repo.IsBlocked(ctx, "abc.def.ghi")
	require.NoError(t, err)
	assert.False(t, blocked)

	require.NoError(t, repo.Block(ctx, "abc.def.ghi", time.Now().Add(time.Hour)))

	blocked, err = repo.IsBlocked(ctx, "abc.def.ghi")
	require.NoError(t, err)
	assert.True(t, blocked)

	value, err := m.Get("token:abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "Blocked", value)
	assert.Greater(t, m.TTL("token:abc.def.ghi"), 59*time.Minute)

	m.FastForward(time.Hour + time.Second)

	blocked, err = repo.IsBlocked(ctx, "abc.def.ghi")
	require.NoError(t, err)
	assert.False(t, blocked)
}

func TestRevocationRepository_Unavailable(t *testing.T) {
	ctx := context.Background()
	repo := NewRevocationRepository(newUnreachableClient(t))

	err := repo.Block(ctx, "t", time.Now().Add(time.Minute))
	assert.ErrorIs(t, err, model.ErrRegistryUnavailable)

	_, err = repo.IsBlocked(ctx, "t")
	assert.ErrorIs(t, err, model.ErrRegistryUnavailable)
}

func TestOTPRepository(t *testing.T) {
	ctx := context.Background()
	m, client := newTestClient(t)
	repo := NewOTPRepository(client)
	now := time.UnixMilli(time.Now().UnixMilli())
	repo.now = func() time.Time { return now }

	_, err := repo.Get(ctx, "a@example.com")
	assert.ErrorIs(t, err, model.ErrNotFound)

	require.NoError(t, repo.Put(ctx, "a@example.com", "482913", 5*time.Minute))

	entry, err := repo.Get(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "482913", entry.Code)
	assert.Equal(t, "a@example.com", entry.Email)
	assert.True(t, entry.ExpiresAt.Equal(now.Add(5*time.Minute)))
	assert.Equal(t, 5*time.Minute+otpGrace, m.TTL("otp:a@example.com"))

	// Expired but within the grace period: still readable.
	m.FastForward(5*time.Minute + time.Second)
	entry, err = repo.Get(ctx, "a@example.com")
	require.NoError(t, err)
	assert.True(t, entry.Expired(now.Add(5*time.Minute+time.Second)))

	require.NoError(t, repo.Delete(ctx, "a@example.com"))
	_, err = repo.Get(ctx, "a@example.com")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestOTPRepository_Overwrite(t *testing.T) {
	ctx := context.Background()
	_, client := newTestClient(t)
	repo := NewOTPRepository(client)

	require.NoError(t, repo.Put(ctx, "a@example.com", "111111", time.Minute))
	require.NoError(t, repo.Put(ctx, "a@example.com", "222222", time.Minute))

	entry, err := repo.Get(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "222222", entry.Code)
}
