package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending
// email. Text is the fallback when HTML is empty; Template plus Data
// renders one of the built-in templates instead.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "reset_otp", "password_changed"
	Data     map[string]any `json:"data,omitempty"`
}
