package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/domain"
)

func TestNewEmail(t *testing.T) {
	t.Run("trims and lowercases", func(t *testing.T) {
		e, err := NewEmail("  Operator@ShopFlow.VN ")
		require.NoError(t, err)
		assert.Equal(t, "operator@shopflow.vn", e.Value())
	})

	valid := []string{
		"a@b.co",
		"user.name+tag@example.com",
		"x_y%z@sub.domain-name.org",
	}
	for _, raw := range valid {
		t.Run(raw, func(t *testing.T) {
			_, err := NewEmail(raw)
			assert.NoError(t, err)
		})
	}

	invalid := []string{
		"",
		"   ",
		"plainaddress",
		"@example.com",
		"user@",
		"user@localhost",
		"user@-example.com",
		"user@example.c",
		"user name@example.com",
	}
	for _, raw := range invalid {
		t.Run("invalid "+raw, func(t *testing.T) {
			_, err := NewEmail(raw)
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err))
		})
	}

	t.Run("equality after normalization", func(t *testing.T) {
		a, err := NewEmail("User@Example.com")
		require.NoError(t, err)
		b, err := NewEmail("user@example.com")
		require.NoError(t, err)
		assert.True(t, a.Equal(b))
	})
}

func TestNewPhoneNumber(t *testing.T) {
	t.Run("normalizes every prefix form to national", func(t *testing.T) {
		for _, raw := range []string{"0912345678", "+84912345678", "84912345678", "0912 345 678", "+84 (91) 234-5678", "091.234.5678"} {
			p, err := NewPhoneNumber(raw)
			require.NoError(t, err, raw)
			assert.Equal(t, "0912345678", p.Value(), raw)
		}
	})

	t.Run("accepts all carrier prefixes", func(t *testing.T) {
		for _, first := range []string{"3", "5", "7", "8", "9"} {
			_, err := NewPhoneNumber("0" + first + "12345678")
			assert.NoError(t, err, first)
		}
	})

	invalid := []string{
		"",
		"  ",
		"0112345678",  // carrier prefix 1 does not exist
		"091234567",   // too short
		"09123456789", // too long
		"1234567890",  // no trunk or country prefix
		"+85912345678",
		"09123a5678",
	}
	for _, raw := range invalid {
		t.Run("invalid "+raw, func(t *testing.T) {
			_, err := NewPhoneNumber(raw)
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err))
		})
	}

	t.Run("equality", func(t *testing.T) {
		a, err := NewPhoneNumber("+84912345678")
		require.NoError(t, err)
		b, err := NewPhoneNumber("0912345678")
		require.NoError(t, err)
		assert.True(t, a.Equal(b))
	})
}
