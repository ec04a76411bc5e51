package templates

import (
	"bytes"
	"encoding/json"
	"fmt"
	htmpl "html/template"
	"time"
)

// EmailData carries the fields the back-office emails interpolate.
type EmailData struct {
	Name          string    `json:"Name"`
	Email         string    `json:"Email"`
	AppName       string    `json:"AppName"`
	SupportURL    string    `json:"SupportURL"`
	Code          string    `json:"Code"`
	ExpiresAt     time.Time `json:"ExpiresAt"`
	ExpiresAtText string    `json:"ExpiresAtText"`
}

// ToMap converts EmailData to a map[string]any for EmailJob.Data.
func ToMap(d EmailData) map[string]any {
	b, _ := json.Marshal(d)
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	return m
}

// Option pattern for building EmailData.
type Option func(*EmailData)

func WithCode(code string) Option { return func(d *EmailData) { d.Code = code } }

func WithExpiresAt(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.ExpiresAt = utc
		d.ExpiresAtText = utc.Format("02 January 2006, 15:04")
	}
}

// NewEmailData builds template data with the given recipient and options.
func NewEmailData(appName, name, email string, opts ...Option) EmailData {
	d := EmailData{AppName: appName, Name: name, Email: email}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// ---- Template names ----

const (
	ResetOTP        = "reset_otp"
	PasswordChanged = "password_changed"
)

const resetOTPHTML = `<html><body>
<p>Hi {{.Name}},</p>
<p>Your {{.AppName}} password reset code is:</p>
<p style="font-size:24px;letter-spacing:4px"><strong>{{.Code}}</strong></p>
<p>The code expires at {{.ExpiresAtText}} UTC. If you did not request a
reset, you can ignore this email.</p>
</body></html>`

const passwordChangedHTML = `<html><body>
<p>Hi {{.Name}},</p>
<p>The password for your {{.AppName}} account ({{.Email}}) was just
changed. If this was not you, contact support immediately.</p>
</body></html>`

var htmlTemplates = map[string]*htmpl.Template{
	ResetOTP:        htmpl.Must(htmpl.New(ResetOTP).Parse(resetOTPHTML)),
	PasswordChanged: htmpl.Must(htmpl.New(PasswordChanged).Parse(passwordChangedHTML)),
}

// Subjects maps template names to default email subjects.
var Subjects = map[string]string{
	ResetOTP:        "Your password reset code",
	PasswordChanged: "Your password was changed",
}

// Render renders the named template with data into an HTML body.
func Render(name string, data map[string]any) (string, error) {
	t, ok := htmlTemplates[name]
	if !ok {
		return "", fmt.Errorf("unknown email template %q", name)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
