package valueobject

import (
	"regexp"
	"strings"

	"github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/domain"
)

// Conservative local@domain.tld shape; addresses are stored lowercase.
var emailPattern = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9](?:[a-z0-9\-]*[a-z0-9])?(?:\.[a-z0-9](?:[a-z0-9\-]*[a-z0-9])?)*\.[a-z]{2,}$`)

// Email is a normalized, validated email address.
type Email struct {
	value string
}

// NewEmail trims and lowercases raw, then validates it.
func NewEmail(raw string) (Email, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" {
		return Email{}, domain.NewValidationError("email", "email is required")
	}
	if !emailPattern.MatchString(v) {
		return Email{}, domain.NewValidationError("email", "email address is not valid")
	}
	return Email{value: v}, nil
}

// RehydrateEmail rebuilds an Email from trusted stored data.
func RehydrateEmail(v string) Email {
	return Email{value: v}
}

func (e Email) Value() string  { return e.value }
func (e Email) String() string { return e.value }

func (e Email) Equal(o Email) bool { return e.value == o.value }
