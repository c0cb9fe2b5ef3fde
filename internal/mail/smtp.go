package mail

import (
	"context"
	"fmt"
	"time"

	gomail "github.com/wneessen/go-mail"

	"github.com/rahulthapa9024/basic-app/internal/logger"
	"github.com/rahulthapa9024/basic-app/internal/model"
)

const otpSubject = "Your sign-in code"

// SMTPOptions configures the SMTP relay.
type SMTPOptions struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*gomail.Msg) error
}

var _ model.Mailer = (*SMTPMailer)(nil)

// SMTPMailer delivers codes over SMTP.
type SMTPMailer struct {
	client sender
	from   string
	logger *logger.Logger
}

func NewSMTPMailer(opts SMTPOptions, logger *logger.Logger) (*SMTPMailer, error) {
	clientOpts := []gomail.Option{
		gomail.WithPort(opts.Port),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(10 * time.Second),
	}
	if opts.Username != "" {
		clientOpts = append(clientOpts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(opts.Username),
			gomail.WithPassword(opts.Password),
		)
	}

	client, err := gomail.NewClient(opts.Host, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}

	return &SMTPMailer{client: client, from: opts.From, logger: logger}, nil
}

func (m *SMTPMailer) SendOTP(ctx context.Context, email, code string, expiresAt time.Time) error {
	msg, err := buildOTPMessage(m.from, email, code, expiresAt)
	if err != nil {
		return err
	}

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send otp mail: %w", err)
	}

	m.logger.Debug("Mailer: otp delivered", "email", email)

	return nil
}

func buildOTPMessage(from, to, code string, expiresAt time.Time) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(otpSubject)
	msg.SetBodyString(gomail.TypeTextPlain, fmt.Sprintf(
		"Your sign-in code is %s.\n\nIt expires at %s.\nIf you did not request it, ignore this message.\n",
		code, expiresAt.UTC().Format(time.RFC1123)))

	return msg, nil
}
