package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahulthapa9024/basic-app/internal/model"
)

func TestOTPRepository_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	repo := NewOTPRepository()
	repo.now = func() time.Time { return now }

	_, err := repo.Get(ctx, "a@example.com")
	assert.ErrorIs(t, err, model.ErrNotFound)

	require.NoError(t, repo.Put(ctx, "a@example.com", "482913", 5*time.Minute))
	entry, err := repo.Get(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "482913", entry.Code)
	assert.Equal(t, now.Add(5*time.Minute), entry.ExpiresAt)

	require.NoError(t, repo.Put(ctx, "a@example.com", "111111", time.Minute))
	entry, err = repo.Get(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "111111", entry.Code)
	assert.Equal(t, 1, repo.Len())

	require.NoError(t, repo.Delete(ctx, "a@example.com"))
	_, err = repo.Get(ctx, "a@example.com")
	assert.ErrorIs(t, err, model.ErrNotFound)

	assert.NoError(t, repo.Delete(ctx, "missing@example.com"))
}

func TestOTPRepository_ExpiredEntriesStay(t *testing.T) {
	ctx := context.Background()
	repo := NewOTPRepository()

	require.NoError(t, repo.Put(ctx, "b@example.com", "000001", -time.Second))

	entry, err := repo.Get(ctx, "b@example.com")
	require.NoError(t, err)
	assert.True(t, entry.Expired(time.Now()))
}

func TestOTPRepository_Concurrent(t *testing.T) {
	ctx := context.Background()
	repo := NewOTPRepository()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			email := fmt.Sprintf("u%d@example.com", i%5)
			_ = repo.Put(ctx, email, fmt.Sprintf("%06d", i), time.Minute)
			_, _ = repo.Get(ctx, email)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 5, repo.Len())
}
