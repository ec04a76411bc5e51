package valueobject

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/domain"
)

const (
	// OtpLength is the number of digits in a one-time password.
	OtpLength = 6

	otpMinExpiryMinutes = 1
	otpMaxExpiryMinutes = 60
)

// OtpCode is a one-time password: exactly six digits with a generation
// and an expiry timestamp.
type OtpCode struct {
	code        string
	generatedAt time.Time
	expiresAt   time.Time
}

// GenerateOtpCode draws a fresh six-digit code from a cryptographically
// secure random source. The expiry window must be 1-60 minutes.
func GenerateOtpCode(expirationMinutes int) (OtpCode, error) {
	if expirationMinutes < otpMinExpiryMinutes || expirationMinutes > otpMaxExpiryMinutes {
		return OtpCode{}, domain.NewValidationError("expiration_minutes", "otp expiry must be between 1 and 60 minutes")
	}
	code, err := randomDigits()
	if err != nil {
		return OtpCode{}, err
	}
	now := time.Now().UTC()
	return OtpCode{
		code:        code,
		generatedAt: now,
		expiresAt:   now.Add(time.Duration(expirationMinutes) * time.Minute),
	}, nil
}

// RehydrateOtpCode rebuilds an OtpCode from trusted stored data.
func RehydrateOtpCode(code string, generatedAt, expiresAt time.Time) OtpCode {
	return OtpCode{code: code, generatedAt: generatedAt, expiresAt: expiresAt}
}

func (o OtpCode) Value() string          { return o.code }
func (o OtpCode) GeneratedAt() time.Time { return o.generatedAt }
func (o OtpCode) ExpiresAt() time.Time   { return o.expiresAt }

// IsExpired compares the stored expiry against the current time.
func (o OtpCode) IsExpired() bool {
	return time.Now().UTC().After(o.expiresAt)
}

// TimeToExpiry is the remaining validity window, clamped at zero.
func (o OtpCode) TimeToExpiry() time.Duration {
	d := time.Until(o.expiresAt)
	if d < 0 {
		return 0
	}
	return d
}

// Matches reports whether candidate equals the stored code exactly
// after trimming surrounding whitespace.
func (o OtpCode) Matches(candidate string) bool {
	return strings.TrimSpace(candidate) == o.code
}

// randomDigits maps four random bytes onto a zero-padded six-digit string.
func randomDigits() (string, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("otp random source: %w", err)
	}
	n := int(b[0])<<24 | int(b[1])<<16 | int(b[2])<<8 | int(b[3])
	if n < 0 {
		n = -n
	}
	return fmt.Sprintf("%0*d", OtpLength, n%1000000), nil
}
