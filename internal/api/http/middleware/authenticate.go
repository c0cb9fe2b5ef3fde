package middleware

import (
	"context"
	"net/http"

	"github.com/rahulthapa9024/basic-app/internal/api/http/cookie"
	"github.com/rahulthapa9024/basic-app/internal/api/http/response"
	"github.com/rahulthapa9024/basic-app/internal/logger"
	"github.com/rahulthapa9024/basic-app/internal/model"
)

// Authenticator resolves the user behind a session token.
type Authenticator interface {
	CheckAuth(ctx context.Context, token string) (model.User, error)
}

// Authenticate validates the session cookie and injects the user into the request context.
type Authenticate struct {
	auth           Authenticator
	contextManager model.ContextManager
	verbose        bool
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(auth Authenticator, contextManager model.ContextManager, verbose bool, logger *logger.Logger) *Authenticate {
	return &Authenticate{auth: auth, contextManager: contextManager, verbose: verbose, logger: logger}
}

// Handle rejects requests without a valid, unrevoked session.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := m.auth.CheckAuth(r.Context(), cookie.Token(r))
		if err != nil {
			p := response.Classify(err)
			m.logger.Debug("Authenticate: request rejected",
				"path", r.URL.Path,
				"status", p.Status,
				"error", err.Error())
			response.Error(w, p, err, m.verbose)
			return
		}

		next.ServeHTTP(w, r.WithContext(m.contextManager.SetUserToContext(r.Context(), user)))
	})
}
