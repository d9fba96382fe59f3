package services

import (
	"fmt"
	"log"

	"advocate_desk_go/config"

	"github.com/resend/resend-go/v2"
)

// Email represents an email message
type Email struct {
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
}

// SendEmail sends an email via Resend. In test mode the message is logged
// instead of sent.
func SendEmail(cfg *config.Config, email *Email) error {
	if cfg.EmailTestMode {
		log.Printf("[EMAIL:TEST] To: %v | Subject: %s\n%s", email.To, email.Subject, email.TextBody)
		return nil
	}

	if cfg.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}

	client := resend.NewClient(cfg.ResendAPIKey)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom),
		To:      email.To,
		Subject: email.Subject,
	}
	if email.HTMLBody != "" {
		params.Html = email.HTMLBody
	}
	if email.TextBody != "" {
		params.Text = email.TextBody
	}
	if params.Html == "" && params.Text == "" {
		return fmt.Errorf("email must have either HTMLBody or TextBody")
	}

	sent, err := client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %v", err)
	}

	log.Printf("Email sent via Resend (ID: %s) to: %v", sent.Id, email.To)
	return nil
}

// SendEmailAsync sends an email in a goroutine. Failures are logged, never
// surfaced: email is best-effort and must not block the request.
func SendEmailAsync(cfg *config.Config, email *Email) {
	go func() {
		if err := SendEmail(cfg, email); err != nil {
			log.Printf("[ERROR] Async email to %v failed: %v", email.To, err)
		}
	}()
}

// BuildMemberWelcomeEmail builds the welcome message sent when an advocate
// creates a member account.
func BuildMemberWelcomeEmail(cfg *config.Config, toEmail, fullName, role string) *Email {
	text := fmt.Sprintf(
		"Hello %s,\n\nAn account has been created for you as %s.\n\nSign in at %s/login with your email address and the password you were given.\n",
		fullName, role, cfg.AppURL)

	return &Email{
		To:       []string{toEmail},
		Subject:  "Your account is ready",
		TextBody: text,
	}
}
