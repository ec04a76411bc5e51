package valueobject

import (
	"regexp"
	"strings"

	"github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/domain"
)

// Vietnamese mobile numbers: optional +84/84 country prefix or trunk 0,
// then a carrier prefix (3, 5, 7, 8, 9) and eight more digits.
var vnMobilePattern = regexp.MustCompile(`^(?:\+84|84|0)([35789]\d{8})$`)

// PhoneNumber is a Vietnamese mobile number normalized to its national
// form (trunk 0 plus nine digits).
type PhoneNumber struct {
	value string
}

// NewPhoneNumber validates raw as a Vietnamese mobile number and
// normalizes it: separators are dropped and the +84/84 country prefix
// is rewritten to the national trunk 0.
func NewPhoneNumber(raw string) (PhoneNumber, error) {
	cleaned := strings.NewReplacer(" ", "", "-", "", ".", "", "(", "", ")", "").Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return PhoneNumber{}, domain.NewValidationError("phone", "phone number is required")
	}
	m := vnMobilePattern.FindStringSubmatch(cleaned)
	if m == nil {
		return PhoneNumber{}, domain.NewValidationError("phone", "phone number is not a valid Vietnamese mobile number")
	}
	return PhoneNumber{value: "0" + m[1]}, nil
}

// RehydratePhoneNumber rebuilds a PhoneNumber from trusted stored data.
func RehydratePhoneNumber(v string) PhoneNumber {
	return PhoneNumber{value: v}
}

func (p PhoneNumber) Value() string  { return p.value }
func (p PhoneNumber) String() string { return p.value }

func (p PhoneNumber) Equal(o PhoneNumber) bool { return p.value == o.value }
