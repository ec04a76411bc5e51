package valueobject

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/domain"
)

func TestGenerateOtpCode(t *testing.T) {
	t.Run("produces six digits", func(t *testing.T) {
		for i := 0; i < 20; i++ {
			otp, err := GenerateOtpCode(15)
			require.NoError(t, err)
			require.Len(t, otp.Value(), OtpLength)
			for _, r := range otp.Value() {
				assert.True(t, r >= '0' && r <= '9')
			}
		}
	})

	t.Run("sets the expiry window", func(t *testing.T) {
		otp, err := GenerateOtpCode(15)
		require.NoError(t, err)
		assert.False(t, otp.IsExpired())
		assert.Equal(t, 15*time.Minute, otp.ExpiresAt().Sub(otp.GeneratedAt()))
		assert.Greater(t, otp.TimeToExpiry(), 14*time.Minute)
	})

	t.Run("rejects windows outside 1-60 minutes", func(t *testing.T) {
		for _, minutes := range []int{0, -5, 61} {
			_, err := GenerateOtpCode(minutes)
			require.Error(t, err, minutes)
			assert.True(t, domain.IsValidation(err))
		}
		_, err := GenerateOtpCode(1)
		assert.NoError(t, err)
		_, err = GenerateOtpCode(60)
		assert.NoError(t, err)
	})
}

func TestOtpCodeMatches(t *testing.T) {
	now := time.Now().UTC()
	otp := RehydrateOtpCode("123456", now, now.Add(10*time.Minute))

	assert.True(t, otp.Matches("123456"))
	assert.True(t, otp.Matches("  123456 "))
	assert.False(t, otp.Matches("123457"))
	assert.False(t, otp.Matches(""))
	assert.False(t, otp.Matches("12345"))
}

func TestOtpCodeExpiry(t *testing.T) {
	now := time.Now().UTC()

	expired := RehydrateOtpCode("123456", now.Add(-20*time.Minute), now.Add(-5*time.Minute))
	assert.True(t, expired.IsExpired())
	assert.Equal(t, time.Duration(0), expired.TimeToExpiry())

	live := RehydrateOtpCode("123456", now, now.Add(5*time.Minute))
	assert.False(t, live.IsExpired())
	assert.Greater(t, live.TimeToExpiry(), 4*time.Minute)
}
