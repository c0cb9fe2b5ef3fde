package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rahulthapa9024/basic-app/internal/model"
)

// Problem is an HTTP status with a client-facing message.
type Problem struct {
	Status  int
	Message string
}

// Default problems for the session endpoints.
var (
	ProblemInternal       = Problem{http.StatusInternalServerError, "Internal server error"}
	ProblemNoToken        = Problem{http.StatusUnauthorized, "No token found"}
	ProblemInvalidToken   = Problem{http.StatusUnauthorized, "Invalid or expired token"}
	ProblemUnavailable    = Problem{http.StatusServiceUnavailable, "Service unavailable"}
	ProblemUserNotFound   = Problem{http.StatusNotFound, "User not found"}
	ProblemNoOTPPending   = Problem{http.StatusBadRequest, "No OTP sent or expired"}
	ProblemOTPExpired     = Problem{http.StatusBadRequest, "OTP expired"}
	ProblemInvalidOTP     = Problem{http.StatusBadRequest, "Invalid OTP"}
	ProblemMalformedToken = Problem{http.StatusBadRequest, "Invalid token."}
	ProblemNoPhoto        = Problem{http.StatusNotFound, "No profile image"}
	ProblemBadBody        = Problem{http.StatusBadRequest, "Invalid request body"}
)

// Classify maps a service error to a Problem.
func Classify(err error) Problem {
	var missing *model.MissingFieldError
	switch {
	case errors.As(err, &missing):
		return Problem{http.StatusBadRequest, missing.Message}
	case errors.Is(err, model.ErrNoOTPPending):
		return ProblemNoOTPPending
	case errors.Is(err, model.ErrOTPExpired):
		return ProblemOTPExpired
	case errors.Is(err, model.ErrInvalidCode):
		return ProblemInvalidOTP
	case errors.Is(err, model.ErrNoToken):
		return ProblemNoToken
	case errors.Is(err, model.ErrRegistryUnavailable):
		return ProblemUnavailable
	case errors.Is(err, model.ErrInvalidToken):
		return ProblemInvalidToken
	case errors.Is(err, model.ErrMalformedToken):
		return ProblemMalformedToken
	case errors.Is(err, model.ErrNoPhoto):
		return ProblemNoPhoto
	case errors.Is(err, model.ErrNotFound):
		return ProblemUserNotFound
	default:
		return ProblemInternal
	}
}

type errorBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// JSON writes v with status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes p. The cause is included for server-side failures when verbose is set.
func Error(w http.ResponseWriter, p Problem, cause error, verbose bool) {
	body := errorBody{Success: false, Message: p.Message}
	if verbose && cause != nil && p.Status >= http.StatusInternalServerError {
		body.Error = cause.Error()
	}
	JSON(w, p.Status, body)
}
