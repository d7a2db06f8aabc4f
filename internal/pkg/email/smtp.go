package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// SMTPNotifier sends notifications through an SMTP relay
type SMTPNotifier struct {
	config Config
	logger zerolog.Logger
}

// NewSMTPNotifier creates an SMTPNotifier
func NewSMTPNotifier(config Config, logger zerolog.Logger) *SMTPNotifier {
	return &SMTPNotifier{config: config, logger: logger}
}

// SendCredentials renders and sends a credentials email
func (s *SMTPNotifier) SendCredentials(ctx context.Context, msg CredentialsMessage) error {
	// Without credentials, log instead of sending (local relays still work when both are empty and TLS is off)
	if s.config.UseAuth() && (s.config.SMTPUsername == "" || s.config.SMTPPassword == "") {
		s.logger.Warn().
			Str("toEmail", msg.ToEmail).
			Msg("SMTP credentials not configured - credentials email not sent")
		return nil
	}
	r := renderCredentials(msg, s.config.LoginURL)
	return s.sendHTMLEmail(ctx, msg.ToEmail, r)
}

// UseAuth reports whether SMTP authentication is expected
func (c Config) UseAuth() bool {
	return c.SMTPUsername != "" || c.SMTPPassword != "" || c.SMTPUseTLS
}

func buildMessage(from, to string, r rendered) []byte {
	headers := map[string]string{
		"From":         from,
		"To":           to,
		"Subject":      r.Subject,
		"MIME-Version": "1.0",
		"Content-Type": "text/html; charset=UTF-8",
	}
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %s\r\n", k, headers[k])
	}
	b.WriteString("\r\n")
	b.WriteString(r.HTML)
	return []byte(b.String())
}

func (s *SMTPNotifier) sendHTMLEmail(ctx context.Context, toEmail string, r rendered) error {
	from := fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
	message := buildMessage(from, toEmail, r)
	serverAddress := net.JoinHostPort(s.config.SMTPHost, strconv.Itoa(s.config.SMTPPort))

	var auth smtp.Auth
	if s.config.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)
	}

	if !s.config.SMTPUseTLS {
		if err := smtp.SendMail(serverAddress, auth, s.config.FromEmail, []string{toEmail}, message); err != nil {
			s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to send email")
			return fmt.Errorf("failed to send email: %w", err)
		}
		return nil
	}

	dialer := &tls.Dialer{Config: &tls.Config{ServerName: s.config.SMTPHost, MinVersion: tls.VersionTLS12}}
	conn, err := dialer.DialContext(ctx, "tcp", serverAddress)
	if err != nil {
		s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to connect to SMTP server")
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, s.config.SMTPHost)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Quit()

	if auth != nil {
		if err = client.Auth(auth); err != nil {
			s.logger.Error().Err(err).Msg("SMTP authentication failed")
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}
	if err = client.Mail(s.config.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err = client.Rcpt(toEmail); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err = w.Write(message); err != nil {
		return fmt.Errorf("failed to write email message: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}
	return nil
}
