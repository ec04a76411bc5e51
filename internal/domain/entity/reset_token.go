package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/domain"
	"github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/domain/valueobject"
)

const (
	// MaxResetAttempts is the number of verification attempts a reset
	// token allows before it locks.
	MaxResetAttempts = 5

	// DefaultResetExpiryMinutes is the token lifetime used when the
	// caller does not override it.
	DefaultResetExpiryMinutes = 15
)

// PasswordResetToken is a short-lived, attempt-limited, single-use
// credential built from an email and a one-time code. It starts Active
// and ends in exactly one of three terminal conditions: Used (success),
// Expired (by time) or Locked (by attempts).
type PasswordResetToken struct {
	id        string
	userID    string
	email     valueobject.Email
	otp       valueobject.OtpCode
	createdAt time.Time
	expiresAt time.Time
	usedAt    *time.Time
	attempts  int
}

// GeneratePasswordResetToken creates an Active token with a fresh OTP
// and a zeroed attempt counter.
func GeneratePasswordResetToken(userID string, email valueobject.Email, expirationMinutes int) (*PasswordResetToken, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.NewValidationError("user_id", "user id is required")
	}
	otp, err := valueobject.GenerateOtpCode(expirationMinutes)
	if err != nil {
		return nil, err
	}
	return &PasswordResetToken{
		id:        uuid.NewString(),
		userID:    userID,
		email:     email,
		otp:       otp,
		createdAt: otp.GeneratedAt(),
		expiresAt: otp.ExpiresAt(),
	}, nil
}

// RehydratePasswordResetToken rebuilds a token from trusted stored
// data, skipping validation. For persistence use only.
func RehydratePasswordResetToken(id, userID string, email valueobject.Email, otp valueobject.OtpCode, createdAt, expiresAt time.Time, usedAt *time.Time, attempts int) *PasswordResetToken {
	return &PasswordResetToken{
		id:        id,
		userID:    userID,
		email:     email,
		otp:       otp,
		createdAt: createdAt,
		expiresAt: expiresAt,
		usedAt:    usedAt,
		attempts:  attempts,
	}
}

func (t *PasswordResetToken) ID() string               { return t.id }
func (t *PasswordResetToken) UserID() string           { return t.userID }
func (t *PasswordResetToken) Email() valueobject.Email { return t.email }
func (t *PasswordResetToken) CreatedAt() time.Time     { return t.createdAt }
func (t *PasswordResetToken) ExpiresAt() time.Time     { return t.expiresAt }
func (t *PasswordResetToken) Attempts() int            { return t.attempts }

// Code exposes the OTP value so the caller can deliver it to the user.
func (t *PasswordResetToken) Code() string { return t.otp.Value() }

// Otp returns the underlying one-time code value.
func (t *PasswordResetToken) Otp() valueobject.OtpCode { return t.otp }

// UsedAt returns the consumption timestamp, or nil while unused.
func (t *PasswordResetToken) UsedAt() *time.Time {
	if t.usedAt == nil {
		return nil
	}
	v := *t.usedAt
	return &v
}

// IsExpired reports the terminal-by-time condition.
func (t *PasswordResetToken) IsExpired() bool {
	return time.Now().UTC().After(t.expiresAt)
}

// IsUsed reports the terminal success condition.
func (t *PasswordResetToken) IsUsed() bool { return t.usedAt != nil }

// IsLocked reports the terminal-by-attempts condition.
func (t *PasswordResetToken) IsLocked() bool { return t.attempts >= MaxResetAttempts }

// IsActive reports whether the token can still be verified or used.
func (t *PasswordResetToken) IsActive() bool {
	return !t.IsUsed() && !t.IsExpired() && !t.IsLocked()
}

// TimeToExpiry is the remaining validity window, clamped at zero.
func (t *PasswordResetToken) TimeToExpiry() time.Duration {
	d := time.Until(t.expiresAt)
	if d < 0 {
		return 0
	}
	return d
}

// RemainingAttempts is the number of verification attempts left,
// clamped at zero.
func (t *PasswordResetToken) RemainingAttempts() int {
	r := MaxResetAttempts - t.attempts
	if r < 0 {
		return 0
	}
	return r
}

// Verify checks candidate against the stored code. The attempt counter
// is incremented before anything else, so malformed or hopeless probes
// burn an attempt too. A token that is expired, locked or already used
// never matches, even when the code would otherwise be correct.
func (t *PasswordResetToken) Verify(candidate string) bool {
	t.attempts++
	if !t.IsActive() {
		return false
	}
	return t.otp.Matches(candidate)
}

// MarkUsed consumes the token. Only an Active token can be consumed;
// the transition is irreversible.
func (t *PasswordResetToken) MarkUsed() error {
	if !t.IsActive() {
		return domain.NewOperationError("password reset token is not active")
	}
	now := time.Now().UTC()
	t.usedAt = &now
	return nil
}
