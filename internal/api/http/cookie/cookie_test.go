package cookie

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_Set(t *testing.T) {
	tests := []struct {
		name   string
		secure bool
	}{
		{name: "development", secure: false},
		{name: "production", secure: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewManager(tt.secure, 7*24*time.Hour).Set(rec, "abc")

			cookies := rec.Result().Cookies()
			require.Len(t, cookies, 1)
			c := cookies[0]
			assert.Equal(t, "token", c.Name)
			assert.Equal(t, "abc", c.Value)
			assert.Equal(t, "/", c.Path)
			assert.Equal(t, 604800, c.MaxAge)
			assert.True(t, c.HttpOnly)
			assert.Equal(t, tt.secure, c.Secure)
			assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
		})
	}
}

func TestManager_Clear(t *testing.T) {
	rec := httptest.NewRecorder()
	NewManager(false, time.Hour).Clear(rec)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "", cookies[0].Value)
	assert.Equal(t, -1, cookies[0].MaxAge)
	assert.Contains(t, rec.Header().Get("Set-Cookie"), "Max-Age=0")
}

func TestToken(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", Token(r))

	r.AddCookie(&http.Cookie{Name: "token", Value: "xyz"})
	assert.Equal(t, "xyz", Token(r))
}
