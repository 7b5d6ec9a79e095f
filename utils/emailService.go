package utils

import (
	"fmt"
	"goodreads/config"
	"goodreads/logger"
	"html"
	"net/http"
	"net/smtp"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

const providerSendGrid = "sendgrid"

// Transports, swapped out in tests.
var (
	sendMail = smtp.SendMail
	sendGrid = func(apiKey string, message *mail.SGMailV3) (int, error) {
		resp, err := sendgrid.NewSendClient(apiKey).Send(message)
		if err != nil {
			return 0, err
		}
		return resp.StatusCode, nil
	}
)

// EmailEnabled reports whether the configured provider has credentials.
func EmailEnabled() bool {
	cfg := config.AppConfig
	if cfg == nil || cfg.EmailSender == "" {
		return false
	}
	if cfg.EmailProvider == providerSendGrid {
		return cfg.SendGridAPIKey != ""
	}
	return true
}

// SendEmail sends an HTML email through SMTP or SendGrid, depending on
// EMAIL_PROVIDER.
func SendEmail(to []string, subject string, htmlBody string) error {
	cfg := config.AppConfig
	if !EmailEnabled() {
		return fmt.Errorf("email sender is not configured")
	}
	if cfg.EmailProvider == providerSendGrid {
		return sendWithSendGrid(to, subject, htmlBody)
	}

	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\r\n"
	msg += fmt.Sprintf("From: Goodreads <%s>\r\n", cfg.EmailSender)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", cfg.EmailSender, cfg.EmailPassword, cfg.SMTPHost)

	if err := sendMail(cfg.SMTPHost+":"+cfg.SMTPPort, auth, cfg.EmailSender, to, []byte(msg)); err != nil {
		return fmt.Errorf("send email to %v: %w", to, err)
	}
	return nil
}

func sendWithSendGrid(to []string, subject string, htmlBody string) error {
	cfg := config.AppConfig

	message := mail.NewV3Mail()
	message.SetFrom(mail.NewEmail("Goodreads", cfg.EmailSender))
	message.Subject = subject

	p := mail.NewPersonalization()
	for _, addr := range to {
		p.AddTos(mail.NewEmail("", addr))
	}
	message.AddPersonalizations(p)
	message.AddContent(mail.NewContent("text/html", htmlBody))

	status, err := sendGrid(cfg.SendGridAPIKey, message)
	if err != nil {
		return fmt.Errorf("send email to %v: %w", to, err)
	}
	if status >= http.StatusBadRequest {
		return fmt.Errorf("send email to %v: sendgrid returned status %d", to, status)
	}
	return nil
}

func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Helvetica, Arial, sans-serif; color: #333;">
	<h2>%s</h2>
	%s
	<p style="font-size: 12px; color: #666;">You received this email because an account was created on Goodreads.</p>
</body>
</html>`, html.EscapeString(title), bodyContent)
}

// WelcomeEmailBody renders the welcome message for username.
func WelcomeEmailBody(username string) string {
	body := fmt.Sprintf(`
	<p>Dear %s,</p>
	<p>Your account has been created. You can now browse books and share your reviews.</p>`,
		html.EscapeString(username))
	return getEmailTemplate("Welcome to Goodreads!", body)
}

// SendWelcomeEmail fires the welcome email in the background. It is a no-op
// when email is not configured or the user left no address.
func SendWelcomeEmail(email, username string) {
	if email == "" || !EmailEnabled() {
		return
	}

	go func() {
		if err := SendEmail([]string{email}, "Welcome to Goodreads", WelcomeEmailBody(username)); err != nil {
			logger.Log.Errorf("Failed to send welcome email to user %s: %v", username, err)
			return
		}
		logger.Log.Infof("Welcome email sent to user %s", username)
	}()
}
