package cookie

import (
	"net/http"
	"time"
)

// Name is the session cookie name.
const Name = "token"

// Manager writes the session cookie.
type Manager struct {
	secure bool
	maxAge int
}

// NewManager creates a Manager. Secure cookies are used in production.
func NewManager(secure bool, ttl time.Duration) *Manager {
	return &Manager{secure: secure, maxAge: int(ttl.Seconds())}
}

// Set stores token in the session cookie.
func (m *Manager) Set(w http.ResponseWriter, token string) {
	http.SetCookie(w, m.cookie(token, m.maxAge))
}

// Clear removes the session cookie.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, m.cookie("", -1))
}

func (m *Manager) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     Name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteStrictMode,
	}
}

// Token returns the session token of r, or "" when there is none.
func Token(r *http.Request) string {
	c, err := r.Cookie(Name)
	if err != nil {
		return ""
	}
	return c.Value
}
