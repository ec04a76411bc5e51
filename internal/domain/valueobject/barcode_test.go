package valueobject

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/domain"
)

func TestChecksums(t *testing.T) {
	// Reference values from the GS1 General Specifications examples.
	assert.True(t, ValidateEAN13("4006381333931"))
	assert.True(t, ValidateEAN8("96385074"))
	assert.True(t, ValidateUPCA("036000291452"))

	assert.False(t, ValidateEAN13("4006381333932"))
	assert.False(t, ValidateEAN8("96385075"))
	assert.False(t, ValidateUPCA("036000291453"))

	// Wrong length or non-digits never validate.
	assert.False(t, ValidateEAN13("400638133393"))
	assert.False(t, ValidateEAN13("40063813339x1"))
	assert.False(t, ValidateEAN8("9638507"))
	assert.False(t, ValidateUPCA("03600029145"))
}

func TestNewBarcode(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		symbology BarcodeSymbology
		wantErr   bool
	}{
		{"valid ean13", "4006381333931", SymbologyEAN13, false},
		{"ean13 bad check digit", "4006381333930", SymbologyEAN13, true},
		{"ean13 too short", "400638133393", SymbologyEAN13, true},
		{"ean13 non-digit", "400638133393a", SymbologyEAN13, true},
		{"valid ean8", "96385074", SymbologyEAN8, false},
		{"ean8 bad check digit", "96385071", SymbologyEAN8, true},
		{"valid upca", "036000291452", SymbologyUPCA, false},
		{"upca bad check digit", "036000291450", SymbologyUPCA, true},
		{"valid upce system 0", "01234565", SymbologyUPCE, false},
		{"valid upce system 1", "11234565", SymbologyUPCE, false},
		{"upce bad number system", "21234565", SymbologyUPCE, true},
		{"upce too short", "0123456", SymbologyUPCE, true},
		{"valid code128", "ABC-123/xyz", SymbologyCode128, false},
		{"code128 too long", strings.Repeat("A", 49), SymbologyCode128, true},
		{"code128 control char", "AB\nC", SymbologyCode128, true},
		{"valid code39", "HELLO-123. $/+%", SymbologyCode39, false},
		{"code39 lowercase", "hello", SymbologyCode39, true},
		{"code39 too long", strings.Repeat("1", 44), SymbologyCode39, true},
		{"blank value", "   ", SymbologyEAN13, true},
		{"unknown symbology", "1234", BarcodeSymbology("QR"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewBarcode(tt.value, tt.symbology)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, domain.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, strings.TrimSpace(tt.value), b.Value())
			assert.Equal(t, tt.symbology, b.Symbology())
		})
	}
}

func TestGenerateEAN13(t *testing.T) {
	b, err := GenerateEAN13("400638133393")
	require.NoError(t, err)
	assert.Equal(t, "4006381333931", b.Value())
	assert.Equal(t, SymbologyEAN13, b.Symbology())
	assert.True(t, ValidateEAN13(b.Value()))

	_, err = GenerateEAN13("12345")
	require.Error(t, err)
	_, err = GenerateEAN13("40063813339x")
	require.Error(t, err)
}

func TestGenerateVietnameseEAN13(t *testing.T) {
	t.Run("prefixes 893 and zero-pads the item reference", func(t *testing.T) {
		b, err := GenerateVietnameseEAN13("123456", 45)
		require.NoError(t, err)
		assert.Len(t, b.Value(), 13)
		assert.Equal(t, "893123456045", b.Value()[:12])
		assert.True(t, ValidateEAN13(b.Value()))
	})

	t.Run("short company prefix leaves a wide item budget", func(t *testing.T) {
		b, err := GenerateVietnameseEAN13("123", 7)
		require.NoError(t, err)
		assert.Equal(t, "893123000007", b.Value()[:12])
		assert.True(t, ValidateEAN13(b.Value()))
	})

	t.Run("item reference overflowing the digit budget fails", func(t *testing.T) {
		// A 7-digit company prefix leaves room for two item digits.
		_, err := GenerateVietnameseEAN13("1234567", 100)
		require.Error(t, err)
		ve := domain.AsValidation(err)
		require.NotNil(t, ve)
		assert.Equal(t, "item_reference", ve.Field)
	})

	t.Run("invalid inputs", func(t *testing.T) {
		_, err := GenerateVietnameseEAN13("12", 1)
		require.Error(t, err)
		_, err = GenerateVietnameseEAN13("12345678", 1)
		require.Error(t, err)
		_, err = GenerateVietnameseEAN13("12a456", 1)
		require.Error(t, err)
		_, err = GenerateVietnameseEAN13("123456", -1)
		require.Error(t, err)
	})
}

func TestBarcodeEqual(t *testing.T) {
	a := RehydrateBarcode("96385074", SymbologyEAN8)
	b := RehydrateBarcode("96385074", SymbologyEAN8)
	c := RehydrateBarcode("96385074", SymbologyCode128)
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}
