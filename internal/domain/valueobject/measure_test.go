package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/domain"
)

func TestNewDimensions(t *testing.T) {
	d, err := NewDimensions(160, 75, 9)
	require.NoError(t, err)
	assert.Equal(t, 160, d.LengthMM())
	assert.Equal(t, 75, d.WidthMM())
	assert.Equal(t, 9, d.HeightMM())
	assert.Equal(t, int64(160*75*9), d.VolumeCubicMM())
	assert.Equal(t, "160x75x9 mm", d.String())

	tests := []struct {
		name    string
		l, w, h int
		field   string
	}{
		{"zero length", 0, 10, 10, "length_mm"},
		{"negative width", 10, -1, 10, "width_mm"},
		{"height above max", 10, 10, 10001, "height_mm"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDimensions(tt.l, tt.w, tt.h)
			require.Error(t, err)
			ve := domain.AsValidation(err)
			require.NotNil(t, ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}

	t.Run("boundary values pass", func(t *testing.T) {
		_, err := NewDimensions(1, 1, 1)
		assert.NoError(t, err)
		_, err = NewDimensions(10000, 10000, 10000)
		assert.NoError(t, err)
	})
}

func TestDimensionsWithinPostalLimit(t *testing.T) {
	tests := []struct {
		name    string
		l, w, h int
		want    bool
	}{
		{"small parcel", 300, 200, 100, true},
		{"longest side at the cap", 1500, 750, 750, true},
		{"longest side over the cap", 1501, 100, 100, false},
		{"sum over the cap", 1200, 1200, 700, false},
		{"sum exactly at the cap", 1000, 1000, 1000, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewDimensions(tt.l, tt.w, tt.h)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.WithinPostalLimit())
		})
	}
}

func TestDimensionsFitsStandardBox(t *testing.T) {
	tests := []struct {
		name    string
		l, w, h int
		want    bool
	}{
		{"fits exactly", 600, 400, 400, true},
		{"fits rotated", 400, 600, 399, true},
		{"one side too long", 601, 100, 100, false},
		{"two mid sides too wide", 500, 401, 401, false},
		{"small box", 100, 50, 20, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewDimensions(tt.l, tt.w, tt.h)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.FitsStandardBox())
		})
	}
}

func TestNewWeight(t *testing.T) {
	w, err := NewWeight(350)
	require.NoError(t, err)
	assert.Equal(t, int64(350), w.Grams())
	assert.Equal(t, "0.35", w.Kilograms().String())
	assert.Equal(t, "350 g", w.String())

	_, err = NewWeight(0)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	_, err = NewWeight(50_000_001)
	require.Error(t, err)

	_, err = NewWeight(50_000_000)
	assert.NoError(t, err)
}

func TestWeightCategory(t *testing.T) {
	tests := []struct {
		grams      int64
		category   ShippingCategory
		multiplier string
	}{
		{1, ShippingLight, "1"},
		{500, ShippingLight, "1"},
		{501, ShippingStandard, "1.2"},
		{5_000, ShippingStandard, "1.2"},
		{5_001, ShippingHeavy, "1.5"},
		{30_000, ShippingHeavy, "1.5"},
		{30_001, ShippingBulky, "2"},
		{200_000, ShippingBulky, "2"},
		{200_001, ShippingFreight, "3"},
		{50_000_000, ShippingFreight, "3"},
	}
	for _, tt := range tests {
		w, err := NewWeight(tt.grams)
		require.NoError(t, err)
		assert.Equal(t, tt.category, w.Category(), "grams=%d", tt.grams)
		assert.True(t, w.CostMultiplier().Equal(decimal.RequireFromString(tt.multiplier)), "grams=%d", tt.grams)
	}
}
