package mailer

import "fmt"

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// HTML is optional; Text is recommended as fallback.
type EmailJob struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text,omitempty"`
	HTML    string `json:"html,omitempty"`
}

// NewPasswordResetJob builds the reset email containing the single-use link.
// The link embeds the token as a query parameter and expires server-side.
func NewPasswordResetJob(to, name, resetURL string, validFor string) EmailJob {
	greeting := "Hi"
	if name != "" {
		greeting = "Hi " + name
	}
	text := fmt.Sprintf(
		"%s,\n\nWe received a request to reset your password. Open the link below to choose a new one:\n\n%s\n\nThe link is valid for %s and can be used once. If you did not request this, you can ignore this email.\n",
		greeting, resetURL, validFor,
	)
	html := fmt.Sprintf(
		`<p>%s,</p><p>We received a request to reset your password. Click the link below to choose a new one:</p><p><a href="%s">Reset password</a></p><p>The link is valid for %s and can be used once. If you did not request this, you can ignore this email.</p>`,
		greeting, resetURL, validFor,
	)
	return EmailJob{
		To:      to,
		Subject: "Reset your password",
		Text:    text,
		HTML:    html,
	}
}
