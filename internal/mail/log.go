package mail

import (
	"context"
	"time"

	"github.com/rahulthapa9024/basic-app/internal/logger"
	"github.com/rahulthapa9024/basic-app/internal/model"
)

var _ model.Mailer = (*LogMailer)(nil)

// LogMailer writes codes to the log instead of sending them. Development only.
type LogMailer struct {
	logger *logger.Logger
}

func NewLogMailer(logger *logger.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) SendOTP(ctx context.Context, email, code string, expiresAt time.Time) error {
	m.logger.InfoContext(ctx, "Mailer: otp issued",
		"email", email,
		"code", code,
		"expires_at", expiresAt)
	return nil
}
