package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/rahulthapa9024/basic-app/internal/api/http/cookie"
	"github.com/rahulthapa9024/basic-app/internal/api/http/response"
	"github.com/rahulthapa9024/basic-app/internal/logger"
	"github.com/rahulthapa9024/basic-app/internal/model"
	"github.com/rahulthapa9024/basic-app/internal/service"
)

const maxBodyBytes = 1 << 16

// AuthService is the sign-in flow used by the handlers.
type AuthService interface {
	GoogleLogin(ctx context.Context, params service.GoogleLoginParams) (service.Session, error)
	SendOTP(ctx context.Context, params service.SendOTPParams) error
	VerifyOTP(ctx context.Context, params service.VerifyOTPParams) (service.Session, error)
	CheckAuth(ctx context.Context, token string) (model.User, error)
	Logout(ctx context.Context, token string) error
}

// AvatarService opens profile images.
type AvatarService interface {
	Open(ctx context.Context, user model.User) (model.Object, error)
}

// Auth serves the /user endpoints.
type Auth struct {
	auth    AuthService
	avatars AvatarService
	users   model.ContextManager
	cookies *cookie.Manager
	verbose bool
	logger  *logger.Logger
}

func NewAuth(
	auth AuthService,
	avatars AvatarService,
	users model.ContextManager,
	cookies *cookie.Manager,
	verbose bool,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		auth:    auth,
		avatars: avatars,
		users:   users,
		cookies: cookies,
		verbose: verbose,
		logger:  logger,
	}
}

// GoogleLogin handles POST /user/googleLogin.
func (h *Auth) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req googleLoginRequest
	if !h.decode(w, r, &req) {
		return
	}

	session, err := h.auth.GoogleLogin(r.Context(), service.GoogleLoginParams{
		DisplayName: req.DisplayName,
		Email:       req.Email,
		PhotoURL:    req.PhotoURL,
	})
	if err != nil {
		h.fail(w, r, response.Classify(err), err)
		return
	}

	h.cookies.Set(w, session.Token)
	response.JSON(w, http.StatusOK, sessionResponse{
		Success: true,
		Message: "Login successful",
		User:    toUserResponse(session.User),
		Token:   session.Token,
	})
}

// GenerateOTP handles POST /user/generateOTP.
func (h *Auth) GenerateOTP(w http.ResponseWriter, r *http.Request) {
	var req sendOTPRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.auth.SendOTP(r.Context(), service.SendOTPParams{Email: req.Email}); err != nil {
		h.fail(w, r, response.Classify(err), err)
		return
	}

	response.JSON(w, http.StatusOK, sessionResponse{Success: true, Message: "OTP sent successfully"})
}

// VerifyOTP handles POST /user/verifyOTP.
func (h *Auth) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if !h.decode(w, r, &req) {
		return
	}

	session, err := h.auth.VerifyOTP(r.Context(), service.VerifyOTPParams{Email: req.Email, OTP: req.OTP})
	if err != nil {
		h.fail(w, r, response.Classify(err), err)
		return
	}

	h.cookies.Set(w, session.Token)
	response.JSON(w, http.StatusOK, sessionResponse{
		Success: true,
		Message: "OTP verified and login successful",
		User:    toUserResponse(session.User),
		Token:   session.Token,
	})
}

// Check handles GET /user/check.
func (h *Auth) Check(w http.ResponseWriter, r *http.Request) {
	user, err := h.auth.CheckAuth(r.Context(), cookie.Token(r))
	if err != nil {
		h.fail(w, r, response.Classify(err), err)
		return
	}

	response.JSON(w, http.StatusOK, sessionResponse{
		Success: true,
		Message: "User is authenticated",
		User:    toUserResponse(user),
	})
}

// Logout handles POST /user/logout.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	err := h.auth.Logout(r.Context(), cookie.Token(r))
	if err != nil {
		h.fail(w, r, logoutProblem(err), err)
		return
	}

	h.cookies.Clear(w)
	response.JSON(w, http.StatusOK, sessionResponse{Success: true, Message: "Logged out successfully."})
}

// GetImage handles GET /user/getImage. It expects an authenticated user in the context.
func (h *Auth) GetImage(w http.ResponseWriter, r *http.Request) {
	user, ok := h.users.GetUserFromContext(r.Context())
	if !ok {
		h.fail(w, r, response.ProblemNoToken, model.ErrNoToken)
		return
	}

	response.JSON(w, http.StatusOK, imageResponse{Success: true, PhotoURL: user.PhotoURL})
}

// Image handles GET /user/image and streams the mirrored avatar.
func (h *Auth) Image(w http.ResponseWriter, r *http.Request) {
	user, ok := h.users.GetUserFromContext(r.Context())
	if !ok {
		h.fail(w, r, response.ProblemNoToken, model.ErrNoToken)
		return
	}

	obj, err := h.avatars.Open(r.Context(), user)
	if err != nil {
		p := response.Classify(err)
		if p == response.ProblemInternal {
			p = response.Problem{Status: http.StatusBadGateway, Message: "Failed to load profile image"}
		}
		h.fail(w, r, p, err)
		return
	}
	defer obj.Body.Close()

	w.Header().Set("Content-Type", obj.ContentType)
	if obj.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(obj.Size, 10))
	}
	w.Header().Set("Cache-Control", "private, max-age=300")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, obj.Body); err != nil {
		h.logger.Warn("Auth handler: avatar stream interrupted", "user_id", user.ID, "error", err.Error())
	}
}

func logoutProblem(err error) response.Problem {
	switch {
	case errors.Is(err, model.ErrNoToken):
		return response.Problem{Status: http.StatusBadRequest, Message: "No token found in cookies."}
	case errors.Is(err, model.ErrMalformedToken):
		return response.ProblemMalformedToken
	case errors.Is(err, model.ErrRegistryUnavailable):
		return response.Problem{Status: http.StatusServiceUnavailable, Message: "Logout failed"}
	default:
		return response.Problem{Status: http.StatusInternalServerError, Message: "Logout failed"}
	}
}

func (h *Auth) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	h.fail(w, r, response.ProblemBadBody, err)
	return false
}

func (h *Auth) fail(w http.ResponseWriter, r *http.Request, p response.Problem, err error) {
	if p.Status >= http.StatusInternalServerError {
		h.logger.Error("Auth handler: request failed",
			"path", r.URL.Path,
			"status", p.Status,
			"error", err.Error())
	} else {
		h.logger.Debug("Auth handler: request rejected",
			"path", r.URL.Path,
			"status", p.Status,
			"error", err.Error())
	}
	response.Error(w, p, err, h.verbose)
}
