package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	httpcontext "github.com/rahulthapa9024/basic-app/internal/api/http/context"
	"github.com/rahulthapa9024/basic-app/internal/api/http/cookie"
	"github.com/rahulthapa9024/basic-app/internal/api/http/handler/mocks"
	"github.com/rahulthapa9024/basic-app/internal/model"
	"github.com/rahulthapa9024/basic-app/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuthenticate_Handle(t *testing.T) {
	t.Parallel()

	user := model.User{ID: uuid.New(), Email: "ada@example.com", PhotoURL: "https://img.example.com/a.png"}
	tests := []struct {
		name    string
		token   string
		user    model.User
		err     error
		status  int
		message string
	}{
		{name: "valid session", token: "tok", user: user, status: http.StatusOK},
		{name: "no cookie", err: model.ErrNoToken, status: http.StatusUnauthorized, message: "No token found"},
		{name: "revoked", token: "tok", err: model.ErrInvalidToken, status: http.StatusUnauthorized, message: "Invalid or expired token"},
		{name: "registry down", token: "tok", err: model.ErrRegistryUnavailable, status: http.StatusServiceUnavailable, message: "Service unavailable"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			auth := mocks.NewAuthService(t)
			auth.On("CheckAuth", mock.Anything, tt.token).Return(tt.user, tt.err)
			cm := httpcontext.NewManager()

			var seen model.User
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen, _ = cm.GetUserFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			mw := NewAuthenticate(auth, cm, false, testutil.MakeNoopLogger())
			req := httptest.NewRequest(http.MethodGet, "/user/getImage", nil)
			if tt.token != "" {
				req.AddCookie(&http.Cookie{Name: cookie.Name, Value: tt.token})
			}
			rec := httptest.NewRecorder()
			mw.Handle(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.err == nil {
				assert.Equal(t, user.ID, seen.ID)
				return
			}
			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.message, body["message"])
		})
	}
}
