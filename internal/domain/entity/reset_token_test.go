package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/domain"
	"github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/domain/valueobject"
)

func newTestToken(t *testing.T) *PasswordResetToken {
	t.Helper()
	email, err := valueobject.NewEmail("operator@shopflow.vn")
	require.NoError(t, err)
	token, err := GeneratePasswordResetToken("user-1", email, DefaultResetExpiryMinutes)
	require.NoError(t, err)
	return token
}

func expiredToken(t *testing.T) *PasswordResetToken {
	t.Helper()
	email, err := valueobject.NewEmail("operator@shopflow.vn")
	require.NoError(t, err)
	now := time.Now().UTC()
	otp := valueobject.RehydrateOtpCode("123456", now.Add(-30*time.Minute), now.Add(-15*time.Minute))
	return RehydratePasswordResetToken("t-1", "user-1", email, otp, otp.GeneratedAt(), otp.ExpiresAt(), nil, 0)
}

func TestGeneratePasswordResetToken(t *testing.T) {
	token := newTestToken(t)
	assert.NotEmpty(t, token.ID())
	assert.Equal(t, "user-1", token.UserID())
	assert.Len(t, token.Code(), valueobject.OtpLength)
	assert.True(t, token.IsActive())
	assert.False(t, token.IsUsed())
	assert.False(t, token.IsExpired())
	assert.False(t, token.IsLocked())
	assert.Equal(t, MaxResetAttempts, token.RemainingAttempts())
	assert.Greater(t, token.TimeToExpiry(), 14*time.Minute)

	email := token.Email()
	_, err := GeneratePasswordResetToken("   ", email, DefaultResetExpiryMinutes)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	_, err = GeneratePasswordResetToken("user-1", email, 0)
	require.Error(t, err)
}

func TestResetTokenVerify(t *testing.T) {
	t.Run("correct code matches and burns an attempt", func(t *testing.T) {
		token := newTestToken(t)
		assert.True(t, token.Verify(token.Code()))
		assert.Equal(t, 1, token.Attempts())
		assert.Equal(t, MaxResetAttempts-1, token.RemainingAttempts())
	})

	t.Run("wrong code burns an attempt too", func(t *testing.T) {
		token := newTestToken(t)
		assert.False(t, token.Verify("000000"))
		assert.Equal(t, 1, token.Attempts())
	})

	t.Run("surrounding whitespace is tolerated", func(t *testing.T) {
		token := newTestToken(t)
		assert.True(t, token.Verify("  "+token.Code()+" "))
	})

	t.Run("locks after max wrong attempts", func(t *testing.T) {
		token := newTestToken(t)
		for i := 0; i < MaxResetAttempts; i++ {
			assert.False(t, token.Verify("000000"))
		}
		assert.True(t, token.IsLocked())
		assert.False(t, token.IsActive())
		assert.Equal(t, 0, token.RemainingAttempts())

		// Even the correct code no longer matches.
		assert.False(t, token.Verify(token.Code()))
	})

	t.Run("expired token never matches", func(t *testing.T) {
		token := expiredToken(t)
		assert.True(t, token.IsExpired())
		assert.Equal(t, time.Duration(0), token.TimeToExpiry())
		assert.False(t, token.Verify("123456"))
		assert.Equal(t, 1, token.Attempts())
	})

	t.Run("used token never matches", func(t *testing.T) {
		token := newTestToken(t)
		require.NoError(t, token.MarkUsed())
		assert.False(t, token.Verify(token.Code()))
	})
}

func TestResetTokenMarkUsed(t *testing.T) {
	token := newTestToken(t)
	require.Nil(t, token.UsedAt())

	require.NoError(t, token.MarkUsed())
	assert.True(t, token.IsUsed())
	assert.False(t, token.IsActive())
	require.NotNil(t, token.UsedAt())

	err := token.MarkUsed()
	require.Error(t, err)
	assert.EqualError(t, err, "password reset token is not active")

	t.Run("expired token cannot be consumed", func(t *testing.T) {
		err := expiredToken(t).MarkUsed()
		require.Error(t, err)
		assert.True(t, domain.IsOperation(err))
	})

	t.Run("locked token cannot be consumed", func(t *testing.T) {
		locked := newTestToken(t)
		for i := 0; i < MaxResetAttempts; i++ {
			locked.Verify("000000")
		}
		err := locked.MarkUsed()
		require.Error(t, err)
		assert.True(t, domain.IsOperation(err))
	})
}

func TestResetTokenRehydrate(t *testing.T) {
	email, err := valueobject.NewEmail("operator@shopflow.vn")
	require.NoError(t, err)
	now := time.Now().UTC()
	otp := valueobject.RehydrateOtpCode("654321", now.Add(-5*time.Minute), now.Add(10*time.Minute))
	used := now.Add(-time.Minute)

	token := RehydratePasswordResetToken("t-9", "user-9", email, otp, otp.GeneratedAt(), otp.ExpiresAt(), &used, 3)
	assert.Equal(t, "t-9", token.ID())
	assert.Equal(t, 3, token.Attempts())
	assert.Equal(t, 2, token.RemainingAttempts())
	assert.True(t, token.IsUsed())
	assert.False(t, token.IsActive())

	// Attempts beyond the cap clamp remaining at zero.
	over := RehydratePasswordResetToken("t-10", "user-9", email, otp, otp.GeneratedAt(), otp.ExpiresAt(), nil, MaxResetAttempts+2)
	assert.Equal(t, 0, over.RemainingAttempts())
	assert.True(t, over.IsLocked())
}
