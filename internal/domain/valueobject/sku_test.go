package valueobject

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/domain"
)

func TestNewSkuCode(t *testing.T) {
	t.Run("uppercases and trims", func(t *testing.T) {
		s, err := NewSkuCode("  abc-123_x ")
		require.NoError(t, err)
		assert.Equal(t, "ABC-123_X", s.Value())
	})

	tests := []struct {
		name string
		raw  string
	}{
		{"empty", "   "},
		{"too short", "AB"},
		{"too long", strings.Repeat("A", 51)},
		{"leading hyphen", "-ABC"},
		{"space inside", "AB C"},
		{"unsupported char", "ABC#1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSkuCode(tt.raw)
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err))
		})
	}
}

func TestGenerateSkuCode(t *testing.T) {
	name, err := NewProductName("Điện thoại ShopFlow One")
	require.NoError(t, err)

	t.Run("joins name prefix, option parts and sequence", func(t *testing.T) {
		s, err := GenerateSkuCode(name, []string{"black", "128gb"}, 1)
		require.NoError(t, err)
		assert.Equal(t, "DIENTHOA-BLAC-128G-001", s.Value())
	})

	t.Run("is deterministic", func(t *testing.T) {
		a, err := GenerateSkuCode(name, []string{"red"}, 7)
		require.NoError(t, err)
		b, err := GenerateSkuCode(name, []string{"red"}, 7)
		require.NoError(t, err)
		assert.True(t, a.Equal(b))
	})

	t.Run("skips options that sanitize to nothing", func(t *testing.T) {
		s, err := GenerateSkuCode(name, []string{"***", "red"}, 2)
		require.NoError(t, err)
		assert.Equal(t, "DIENTHOA-RED-002", s.Value())
	})

	t.Run("sequence alone still yields a valid code", func(t *testing.T) {
		// A punctuation-only name contributes no prefix.
		symbolName, err := NewProductName("%%")
		require.NoError(t, err)
		s, err := GenerateSkuCode(symbolName, nil, 42)
		require.NoError(t, err)
		assert.Equal(t, "042", s.Value())
	})

	t.Run("negative sequence fails", func(t *testing.T) {
		_, err := GenerateSkuCode(name, nil, -1)
		require.Error(t, err)
		ve := domain.AsValidation(err)
		require.NotNil(t, ve)
		assert.Equal(t, "sequence", ve.Field)
	})

	t.Run("generated codes pass their own validation", func(t *testing.T) {
		s, err := GenerateSkuCode(name, []string{"xanh-lá", "512gb"}, 999)
		require.NoError(t, err)
		reparsed, err := NewSkuCode(s.Value())
		require.NoError(t, err)
		assert.True(t, s.Equal(reparsed))
	})
}
