package email

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

var (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

// SendGridNotifier sends notifications through the SendGrid v3 HTTP API
type SendGridNotifier struct {
	key      string
	from     *sgmail.Email
	loginURL string
	logger   zerolog.Logger
}

// NewSendGridNotifier creates a SendGridNotifier
func NewSendGridNotifier(cfg Config, logger zerolog.Logger) *SendGridNotifier {
	return &SendGridNotifier{
		key:      cfg.SendGridAPIKey,
		from:     sgmail.NewEmail(cfg.FromName, cfg.FromEmail),
		loginURL: cfg.LoginURL,
		logger:   logger,
	}
}

func (n *SendGridNotifier) prepare(msg CredentialsMessage) *sgmail.SGMailV3 {
	r := renderCredentials(msg, n.loginURL)

	p := sgmail.NewPersonalization()
	p.Subject = r.Subject
	p.AddTos(sgmail.NewEmail(msg.ToName, msg.ToEmail))

	m := sgmail.NewV3Mail()
	m.SetFrom(n.from)
	m.AddPersonalizations(p)
	m.AddContent(
		sgmail.NewContent("text/plain", r.Text),
		sgmail.NewContent("text/html", r.HTML),
	)
	return m
}

// SendCredentials posts the message to SendGrid
func (n *SendGridNotifier) SendCredentials(ctx context.Context, msg CredentialsMessage) error {
	req := sendgrid.GetRequest(n.key, sendgridEndpoint, sendgridHost)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(n.prepare(msg))

	res, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		n.logger.Error().Err(err).Str("toEmail", msg.ToEmail).Msg("SendGrid request failed")
		return fmt.Errorf("sendgrid request failed: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		n.logger.Error().Int("status", res.StatusCode).Str("body", res.Body).Msg("SendGrid rejected the message")
		return fmt.Errorf("sendgrid returned status %d", res.StatusCode)
	}
	return nil
}
