package valueobject

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/domain"
)

const (
	productSlugMinLen = 2
	productSlugMaxLen = 255

	categorySlugMinLen = 2
	categorySlugMaxLen = 100
)

// Lowercase ASCII, hyphen-delimited, no leading/trailing hyphen.
var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	nonSlugChars  = regexp.MustCompile(`[^a-z0-9-]`)
	hyphenRun     = regexp.MustCompile(`-{2,}`)
)

func validateSlug(field, v string, minLen, maxLen int) error {
	if v == "" {
		return domain.NewValidationError(field, "slug is required")
	}
	if n := utf8.RuneCountInString(v); n < minLen || n > maxLen {
		return domain.NewValidationError(field, "slug length is out of range")
	}
	if !slugPattern.MatchString(v) {
		return domain.NewValidationError(field, "slug may only contain lowercase letters, digits and single hyphens")
	}
	return nil
}

// slugify lowercases the name, folds diacritics to base ASCII letters,
// turns whitespace runs into single hyphens and strips everything else.
func slugify(name string) string {
	s := strings.ToLower(foldDiacritics(name))
	s = whitespaceRun.ReplaceAllString(strings.TrimSpace(s), "-")
	s = nonSlugChars.ReplaceAllString(s, "")
	s = hyphenRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// syntheticSlug builds a guaranteed-unique slug for names that fold to
// nothing usable (e.g. symbol-only names).
func syntheticSlug() string {
	return "item-" + strconv.FormatInt(time.Now().UTC().UnixNano(), 36) + "-" + uuid.NewString()[:8]
}

// ProductSlug is a URL-safe product identifier (2-255 characters).
type ProductSlug struct {
	value string
}

func NewProductSlug(raw string) (ProductSlug, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if err := validateSlug("product_slug", v, productSlugMinLen, productSlugMaxLen); err != nil {
		return ProductSlug{}, err
	}
	return ProductSlug{value: v}, nil
}

// ProductSlugFromName derives a slug from a validated name. When the
// transliterated result is too short, a unique synthetic slug is used
// instead of failing.
func ProductSlugFromName(name ProductName) ProductSlug {
	s := slugify(name.Value())
	if utf8.RuneCountInString(s) < productSlugMinLen {
		s = syntheticSlug()
	}
	return ProductSlug{value: s}
}

// RehydrateProductSlug rebuilds a ProductSlug from trusted stored data.
func RehydrateProductSlug(v string) ProductSlug { return ProductSlug{value: v} }

func (s ProductSlug) Value() string  { return s.value }
func (s ProductSlug) String() string { return s.value }

func (s ProductSlug) Equal(o ProductSlug) bool { return s.value == o.value }

// CategorySlug is a URL-safe category identifier (2-100 characters).
type CategorySlug struct {
	value string
}

func NewCategorySlug(raw string) (CategorySlug, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if err := validateSlug("category_slug", v, categorySlugMinLen, categorySlugMaxLen); err != nil {
		return CategorySlug{}, err
	}
	return CategorySlug{value: v}, nil
}

// CategorySlugFromName derives a slug from a validated category name,
// falling back to a unique synthetic slug when the result is too short.
func CategorySlugFromName(name CategoryName) CategorySlug {
	s := slugify(name.Value())
	if utf8.RuneCountInString(s) < categorySlugMinLen {
		s = syntheticSlug()
	}
	if utf8.RuneCountInString(s) > categorySlugMaxLen {
		s = strings.Trim(s[:categorySlugMaxLen], "-")
	}
	return CategorySlug{value: s}
}

// RehydrateCategorySlug rebuilds a CategorySlug from trusted stored data.
func RehydrateCategorySlug(v string) CategorySlug { return CategorySlug{value: v} }

func (s CategorySlug) Value() string  { return s.value }
func (s CategorySlug) String() string { return s.value }

func (s CategorySlug) Equal(o CategorySlug) bool { return s.value == o.value }
