package context

import (
	"context"

	"github.com/rahulthapa9024/basic-app/internal/model"
)

type userKey struct{}

// Manager stores the authenticated user in a request context.
type Manager struct{}

// NewManager creates a new context manager.
func NewManager() *Manager {
	return &Manager{}
}

var _ model.ContextManager = (*Manager)(nil)

func (m *Manager) SetUserToContext(ctx context.Context, user model.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

func (m *Manager) GetUserFromContext(ctx context.Context) (model.User, bool) {
	user, ok := ctx.Value(userKey{}).(model.User)
	return user, ok
}
