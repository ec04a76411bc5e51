package valueobject

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/domain"
)

func TestNewProductSlug(t *testing.T) {
	t.Run("accepts and lowercases valid slugs", func(t *testing.T) {
		s, err := NewProductSlug("  Dien-Thoai-128gb ")
		require.NoError(t, err)
		assert.Equal(t, "dien-thoai-128gb", s.Value())
	})

	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"too short", "a"},
		{"leading hyphen", "-abc"},
		{"trailing hyphen", "abc-"},
		{"double hyphen", "a--b"},
		{"underscore", "a_b"},
		{"non-ascii", "điện-tử"},
		{"too long", strings.Repeat("a", 256)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProductSlug(tt.raw)
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err))
		})
	}
}

func TestProductSlugFromName(t *testing.T) {
	t.Run("transliterates vietnamese names", func(t *testing.T) {
		name, err := NewProductName("Điện thoại ShopFlow One")
		require.NoError(t, err)
		s := ProductSlugFromName(name)
		assert.Equal(t, "dien-thoai-shopflow-one", s.Value())
	})

	t.Run("is deterministic", func(t *testing.T) {
		name, err := NewProductName("Nước mắm Phú Quốc 40 độ đạm")
		require.NoError(t, err)
		first := ProductSlugFromName(name)
		second := ProductSlugFromName(name)
		assert.Equal(t, "nuoc-mam-phu-quoc-40-do-dam", first.Value())
		assert.True(t, first.Equal(second))
	})

	t.Run("derived slug passes its own validation", func(t *testing.T) {
		name, err := NewProductName("Bàn phím cơ (bản 2026) - 87 phím")
		require.NoError(t, err)
		s := ProductSlugFromName(name)
		reparsed, err := NewProductSlug(s.Value())
		require.NoError(t, err)
		assert.True(t, s.Equal(reparsed))
	})

	t.Run("falls back to a synthetic slug when nothing usable remains", func(t *testing.T) {
		// Punctuation-only names fold to an empty slug.
		name, err := NewProductName("%%")
		require.NoError(t, err)
		s := ProductSlugFromName(name)
		assert.True(t, strings.HasPrefix(s.Value(), "item-"))
		_, err = NewProductSlug(s.Value())
		require.NoError(t, err)

		other := ProductSlugFromName(name)
		assert.NotEqual(t, s.Value(), other.Value())
	})
}

func TestCategorySlugFromName(t *testing.T) {
	name, err := NewCategoryName("Điện tử & Gia dụng")
	require.NoError(t, err)
	s := CategorySlugFromName(name)
	assert.Equal(t, "dien-tu-gia-dung", s.Value())

	t.Run("stays within the category limit", func(t *testing.T) {
		long, err := NewCategoryName(strings.Repeat("a", 50) + " " + strings.Repeat("b", 49))
		require.NoError(t, err)
		s := CategorySlugFromName(long)
		assert.LessOrEqual(t, utf8.RuneCountInString(s.Value()), 100)
		_, err = NewCategorySlug(s.Value())
		require.NoError(t, err)
	})
}

func TestNewCategorySlug(t *testing.T) {
	s, err := NewCategorySlug("dien-thoai")
	require.NoError(t, err)
	assert.Equal(t, "dien-thoai", s.Value())

	_, err = NewCategorySlug(strings.Repeat("a", 101))
	require.Error(t, err)
}
