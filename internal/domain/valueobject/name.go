package valueobject

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/domain"
)

const (
	productNameMinLen = 2
	productNameMaxLen = 255

	categoryNameMinLen = 2
	categoryNameMaxLen = 100
)

// Letters (accented Vietnamese included), digits, whitespace and a
// small set of punctuation usable in display names.
var namePattern = regexp.MustCompile(`^[\p{L}\p{N}\s.,\-_&()'/+%]+$`)

// normalizeDisplayName trims and collapses internal whitespace runs to
// a single space.
func normalizeDisplayName(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}

func validateName(field, v string, minLen, maxLen int) error {
	if v == "" {
		return domain.NewValidationError(field, "name is required")
	}
	if n := utf8.RuneCountInString(v); n < minLen || n > maxLen {
		return domain.NewValidationError(field, "name length is out of range")
	}
	if !namePattern.MatchString(v) {
		return domain.NewValidationError(field, "name contains unsupported characters")
	}
	return nil
}

// ProductName is a normalized product display name (2-255 characters).
type ProductName struct {
	value string
}

func NewProductName(raw string) (ProductName, error) {
	v := normalizeDisplayName(raw)
	if err := validateName("product_name", v, productNameMinLen, productNameMaxLen); err != nil {
		return ProductName{}, err
	}
	return ProductName{value: v}, nil
}

// RehydrateProductName rebuilds a ProductName from trusted stored data.
func RehydrateProductName(v string) ProductName { return ProductName{value: v} }

func (n ProductName) Value() string  { return n.value }
func (n ProductName) String() string { return n.value }

// Equal compares names case-insensitively.
func (n ProductName) Equal(o ProductName) bool { return strings.EqualFold(n.value, o.value) }

// CategoryName is a normalized category display name (2-100 characters).
type CategoryName struct {
	value string
}

func NewCategoryName(raw string) (CategoryName, error) {
	v := normalizeDisplayName(raw)
	if err := validateName("category_name", v, categoryNameMinLen, categoryNameMaxLen); err != nil {
		return CategoryName{}, err
	}
	return CategoryName{value: v}, nil
}

// RehydrateCategoryName rebuilds a CategoryName from trusted stored data.
func RehydrateCategoryName(v string) CategoryName { return CategoryName{value: v} }

func (n CategoryName) Value() string  { return n.value }
func (n CategoryName) String() string { return n.value }

// Equal compares names case-insensitively.
func (n CategoryName) Equal(o CategoryName) bool { return strings.EqualFold(n.value, o.value) }
