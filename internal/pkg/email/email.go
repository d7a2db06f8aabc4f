package email

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Provider names accepted in configuration
const (
	ProviderLog      = "log"
	ProviderSMTP     = "smtp"
	ProviderSendGrid = "sendgrid"
)

// Notifier delivers account notifications
type Notifier interface {
	SendCredentials(ctx context.Context, msg CredentialsMessage) error
}

// CredentialsMessage tells a new user (or their guardian) how to sign in
type CredentialsMessage struct {
	ToEmail    string
	ToName     string
	SchoolName string
	Username   string
	Password   string
	// AccountHolder is set when the recipient is not the account owner, e.g. a guardian
	AccountHolder string
}

// Config holds the settings for every provider
type Config struct {
	Provider       string
	FromName       string
	FromEmail      string
	LoginURL       string
	SMTPHost       string
	SMTPPort       int
	SMTPUsername   string
	SMTPPassword   string
	SMTPUseTLS     bool
	SendGridAPIKey string
}

// NewNotifier builds the notifier for cfg.Provider
func NewNotifier(cfg Config, logger zerolog.Logger) (Notifier, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", ProviderLog:
		return NewLogNotifier(logger), nil
	case ProviderSMTP:
		return NewSMTPNotifier(cfg, logger), nil
	case ProviderSendGrid:
		return NewSendGridNotifier(cfg, logger), nil
	default:
		return nil, fmt.Errorf("unknown mail provider %q", cfg.Provider)
	}
}

// rendered is a message ready for any transport
type rendered struct {
	Subject string
	Text    string
	HTML    string
}

func renderCredentials(msg CredentialsMessage, loginURL string) rendered {
	school := msg.SchoolName
	if school == "" {
		school = "your school"
	}
	subject := fmt.Sprintf("Your %s account details", school)

	intro := "An account has been created for you."
	if msg.AccountHolder != "" {
		intro = fmt.Sprintf("An account has been created for %s.", msg.AccountHolder)
	}

	text := fmt.Sprintf("Hello %s,\n\n%s\n\nUsername: %s\nPassword: %s\n\nSign in at %s and change the password after your first login.\n\n%s\n",
		msg.ToName, intro, msg.Username, msg.Password, loginURL, school)

	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">%s</h2>
				<p>Hello %s,</p>
				<p>%s</p>
				<p>Username: <strong>%s</strong><br>Password: <strong>%s</strong></p>
				<div style="text-align: center; margin: 30px 0;">
					<a href="%s" style="background-color: #4a86e8; color: white; padding: 12px 24px; text-decoration: none; border-radius: 4px; font-weight: bold;">Sign in</a>
				</div>
				<p>Please change the password after your first login.</p>
			</div>
		</body>
		</html>
	`, html.EscapeString(school), html.EscapeString(msg.ToName), html.EscapeString(intro),
		html.EscapeString(msg.Username), html.EscapeString(msg.Password), html.EscapeString(loginURL))

	return rendered{Subject: subject, Text: text, HTML: body}
}

// LogNotifier writes notifications to the log instead of sending them (development)
type LogNotifier struct {
	logger zerolog.Logger
}

// NewLogNotifier creates a LogNotifier
func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// SendCredentials logs the recipient and username. The password is never logged.
func (n *LogNotifier) SendCredentials(_ context.Context, msg CredentialsMessage) error {
	n.logger.Warn().
		Str("toEmail", msg.ToEmail).
		Str("username", msg.Username).
		Msg("Mail provider is 'log' - credentials email not sent")
	return nil
}

// AsyncNotifier sends in the background so request handling never waits on the mail transport
type AsyncNotifier struct {
	next    Notifier
	timeout time.Duration
	logger  zerolog.Logger
}

// NewAsyncNotifier wraps next. Each send gets its own timeout, detached from the request.
func NewAsyncNotifier(next Notifier, timeout time.Duration, logger zerolog.Logger) *AsyncNotifier {
	return &AsyncNotifier{next: next, timeout: timeout, logger: logger}
}

// SendCredentials schedules the send and returns immediately
func (n *AsyncNotifier) SendCredentials(ctx context.Context, msg CredentialsMessage) error {
	go func() {
		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.timeout)
		defer cancel()
		if err := n.next.SendCredentials(sendCtx, msg); err != nil {
			n.logger.Error().Err(err).Str("toEmail", msg.ToEmail).Msg("Failed to send credentials email")
		}
	}()
	return nil
}
