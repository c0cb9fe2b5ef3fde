package memory

import (
	"context"
	"sync"
	"time"

	"github.com/rahulthapa9024/basic-app/internal/model"
)

var _ model.OTPStore = (*OTPRepository)(nil)

// OTPRepository keeps pending codes in process memory.
// Entries are not swept; callers detect expiry on read.
type OTPRepository struct {
	mu      sync.RWMutex
	entries map[string]model.OTPEntry
	now     func() time.Time
}

func NewOTPRepository() *OTPRepository {
	return &OTPRepository{
		entries: make(map[string]model.OTPEntry),
		now:     time.Now,
	}
}

func (r *OTPRepository) Put(_ context.Context, email, code string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[email] = model.OTPEntry{
		Email:     email,
		Code:      code,
		ExpiresAt: r.now().Add(ttl),
	}
	return nil
}

func (r *OTPRepository) Get(_ context.Context, email string) (model.OTPEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[email]
	if !ok {
		return model.OTPEntry{}, model.ErrNotFound
	}
	return entry, nil
}

func (r *OTPRepository) Delete(_ context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, email)
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (r *OTPRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
