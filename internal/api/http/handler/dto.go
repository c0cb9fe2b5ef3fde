package handler

import "github.com/rahulthapa9024/basic-app/internal/model"

type googleLoginRequest struct {
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	PhotoURL    string `json:"photoURL"`
}

type sendOTPRequest struct {
	Email string `json:"email"`
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type userResponse struct {
	ID          string `json:"_id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL"`
}

type sessionResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	User    *userResponse `json:"user,omitempty"`
	Token   string        `json:"token,omitempty"`
}

type imageResponse struct {
	Success  bool   `json:"success"`
	PhotoURL string `json:"photoURL"`
}

func toUserResponse(u model.User) *userResponse {
	return &userResponse{
		ID:          u.ID.String(),
		Email:       u.Email,
		DisplayName: u.DisplayName,
		PhotoURL:    u.PhotoURL,
	}
}
