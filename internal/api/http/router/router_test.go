package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	httpcontext "github.com/rahulthapa9024/basic-app/internal/api/http/context"
	"github.com/rahulthapa9024/basic-app/internal/api/http/cookie"
	"github.com/rahulthapa9024/basic-app/internal/api/http/handler/mocks"
	"github.com/rahulthapa9024/basic-app/internal/model"
	"github.com/rahulthapa9024/basic-app/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newRouter(t *testing.T) (http.Handler, *mocks.AuthService, *mocks.AvatarService) {
	t.Helper()

	auth := mocks.NewAuthService(t)
	avatars := mocks.NewAvatarService(t)
	r := New(auth, avatars, httpcontext.NewManager(), Options{
		AllowedOrigins: []string{"http://localhost:5173"},
		Cookies:        cookie.NewManager(false, time.Hour),
	}, testutil.MakeNoopLogger())
	return r.Register(), auth, avatars
}

func TestRouter_Register(t *testing.T) {
	t.Parallel()

	h, _, _ := newRouter(t)
	if h == nil {
		t.Fatalf("expected non-nil handler")
	}
}

func TestRouter_Metrics(t *testing.T) {
	t.Parallel()

	h, _, _ := newRouter(t)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestRouter_ProtectedRouteRequiresSession(t *testing.T) {
	t.Parallel()

	h, auth, _ := newRouter(t)
	auth.On("CheckAuth", mock.Anything, "").Return(model.User{}, model.ErrNoToken)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/user/image", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestRouter_ImageStreamsForSession(t *testing.T) {
	t.Parallel()

	h, auth, avatars := newRouter(t)
	user := model.User{ID: uuid.New(), Email: "ada@example.com", PhotoURL: "https://img.example.com/a.png"}
	auth.On("CheckAuth", mock.Anything, "tok").Return(user, nil)
	avatars.On("Open", mock.Anything, user).Return(model.Object{
		Body:        io.NopCloser(strings.NewReader("gif")),
		ContentType: "image/gif",
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/user/image", nil)
	req.AddCookie(&http.Cookie{Name: cookie.Name, Value: "tok"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/gif", rec.Header().Get("Content-Type"))
	assert.Equal(t, "gif", rec.Body.String())
}

func TestRouter_CORSPreflight(t *testing.T) {
	t.Parallel()

	h, _, _ := newRouter(t)
	req := httptest.NewRequest(http.MethodOptions, "/user/googleLogin", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestRouter_UnknownRoute(t *testing.T) {
	t.Parallel()

	h, _, _ := newRouter(t)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/user/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
