package valueobject

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/domain"
)

const (
	skuMinLen = 3
	skuMaxLen = 50

	skuNamePrefixLen = 8
	skuOptionPartLen = 4
)

var skuPattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9\-_]*$`)

var skuHyphenRun = regexp.MustCompile(`-{2,}`)

// SkuCode is an uppercase stock keeping unit code (3-50 characters of
// letters, digits, hyphens and underscores).
type SkuCode struct {
	value string
}

// NewSkuCode uppercases and validates raw.
func NewSkuCode(raw string) (SkuCode, error) {
	v := strings.ToUpper(strings.TrimSpace(raw))
	if v == "" {
		return SkuCode{}, domain.NewValidationError("sku", "sku code is required")
	}
	if len(v) < skuMinLen || len(v) > skuMaxLen {
		return SkuCode{}, domain.NewValidationError("sku", "sku code length is out of range")
	}
	if !skuPattern.MatchString(v) {
		return SkuCode{}, domain.NewValidationError("sku", "sku code may only contain uppercase letters, digits, hyphens and underscores")
	}
	return SkuCode{value: v}, nil
}

// GenerateSkuCode derives a SKU deterministically from the product
// name, the variant option values and a sequence number: an 8-char
// sanitized name prefix, 4-char sanitized option parts and a
// zero-padded 3-digit sequence, joined with hyphens.
func GenerateSkuCode(name ProductName, optionValues []string, sequence int) (SkuCode, error) {
	if sequence < 0 {
		return SkuCode{}, domain.NewValidationError("sequence", "sku sequence must not be negative")
	}
	parts := make([]string, 0, len(optionValues)+2)
	if p := sanitizeSkuPart(name.Value(), skuNamePrefixLen); p != "" {
		parts = append(parts, p)
	}
	for _, opt := range optionValues {
		if p := sanitizeSkuPart(opt, skuOptionPartLen); p != "" {
			parts = append(parts, p)
		}
	}
	parts = append(parts, fmt.Sprintf("%03d", sequence))

	code := strings.Join(parts, "-")
	code = skuHyphenRun.ReplaceAllString(code, "-")
	code = strings.Trim(code, "-")
	if len(code) > skuMaxLen {
		code = strings.Trim(code[:skuMaxLen], "-")
	}
	return NewSkuCode(code)
}

// RehydrateSkuCode rebuilds a SkuCode from trusted stored data.
func RehydrateSkuCode(v string) SkuCode { return SkuCode{value: v} }

func (s SkuCode) Value() string  { return s.value }
func (s SkuCode) String() string { return s.value }

func (s SkuCode) Equal(o SkuCode) bool { return s.value == o.value }

// sanitizeSkuPart folds diacritics, keeps only alphanumerics,
// uppercases and truncates to maxLen.
func sanitizeSkuPart(raw string, maxLen int) string {
	folded := strings.ToUpper(foldDiacritics(raw))
	var b strings.Builder
	for _, r := range folded {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			if b.Len() == maxLen {
				break
			}
		}
	}
	return b.String()
}
