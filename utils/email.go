package utils

import (
	"crypto/tls"
	"fmt"
	"net/smtp"

	log "github.com/sirupsen/logrus"

	"github.com/jessiehunter4/good-tenants-mvp-sub000/config"
)

var emailCfg *config.Config

// InitEmail stores the SMTP settings used by the mailers below.
func InitEmail(cfg *config.Config) {
	emailCfg = cfg
}

func sendEmail(to, subject, body string) error {
	if emailCfg == nil || emailCfg.SMTPHost == "" || emailCfg.SMTPUsername == "" {
		log.WithField("to", to).Debug("SMTP not configured, email skipped")
		return nil
	}

	fromEmail := emailCfg.SMTPFromEmail
	if fromEmail == "" {
		fromEmail = emailCfg.SMTPUsername
	}

	addr := fmt.Sprintf("%s:%s", emailCfg.SMTPHost, emailCfg.SMTPPort)
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to dial SMTP server: %w", err)
	}
	defer client.Close()

	tlsConfig := &tls.Config{ServerName: emailCfg.SMTPHost}
	if err := client.StartTLS(tlsConfig); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	auth := smtp.PlainAuth("", emailCfg.SMTPUsername, emailCfg.SMTPPassword, emailCfg.SMTPHost)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	if err := client.Mail(fromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}

	from := fromEmail
	if emailCfg.SMTPFromName != "" {
		from = fmt.Sprintf("%s <%s>", emailCfg.SMTPFromName, fromEmail)
	}

	msg := []byte(fmt.Sprintf("From: %s\r\n"+
		"To: %s\r\n"+
		"Subject: %s\r\n"+
		"MIME-Version: 1.0\r\n"+
		"Content-Type: text/plain; charset=UTF-8\r\n"+
		"\r\n%s", from, to, subject, body))

	if _, err := w.Write(msg); err != nil {
		w.Close()
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close writer: %w", err)
	}

	_ = client.Quit()
	return nil
}

// SendEmailAsync sends in the background; failures are logged, never surfaced.
func SendEmailAsync(to, subject, body string) {
	go func() {
		if err := sendEmail(to, subject, body); err != nil {
			log.WithError(err).WithField("to", to).Warn("failed to send email")
		}
	}()
}

// SendResetLink emails a password-reset link pointing at the frontend.
func SendResetLink(to, token string) error {
	base := "http://localhost:5173"
	if emailCfg != nil && emailCfg.FrontendURL != "" {
		base = emailCfg.FrontendURL
	}
	link := fmt.Sprintf("%s/auth/reset-password?token=%s", base, token)
	body := fmt.Sprintf("We received a request to reset your password.\n\n"+
		"Open the link below to choose a new one. The link expires in 15 minutes.\n\n%s\n\n"+
		"If you didn't ask for this, you can ignore this email.", link)
	return sendEmail(to, "Reset your Good Tenants password", body)
}
