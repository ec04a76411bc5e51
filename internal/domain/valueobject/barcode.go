package valueobject

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/domain"
)

// BarcodeSymbology identifies a retail barcode standard.
type BarcodeSymbology string

const (
	SymbologyEAN13   BarcodeSymbology = "EAN13"
	SymbologyEAN8    BarcodeSymbology = "EAN8"
	SymbologyUPCA    BarcodeSymbology = "UPCA"
	SymbologyUPCE    BarcodeSymbology = "UPCE"
	SymbologyCode128 BarcodeSymbology = "CODE128"
	SymbologyCode39  BarcodeSymbology = "CODE39"
)

// vietnamGS1Prefix is the GS1 country prefix assigned to Vietnam.
const vietnamGS1Prefix = "893"

var (
	digitsOnly    = regexp.MustCompile(`^\d+$`)
	code39Pattern = regexp.MustCompile(`^[0-9A-Z\-. $/+%]+$`)
)

// Barcode is a validated barcode value with its declared symbology.
// Length and alphabet are fixed per symbology; EAN-13, EAN-8 and UPC-A
// additionally carry a verifiable check digit.
type Barcode struct {
	value     string
	symbology BarcodeSymbology
}

// NewBarcode validates value against the rules of the given symbology.
func NewBarcode(value string, symbology BarcodeSymbology) (Barcode, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return Barcode{}, domain.NewValidationError("barcode", "barcode value is required")
	}
	switch symbology {
	case SymbologyEAN13:
		if len(v) != 13 || !digitsOnly.MatchString(v) {
			return Barcode{}, domain.NewValidationError("barcode", "EAN-13 must be exactly 13 digits")
		}
		if !ValidateEAN13(v) {
			return Barcode{}, domain.NewValidationError("barcode", "EAN-13 check digit is wrong")
		}
	case SymbologyEAN8:
		if len(v) != 8 || !digitsOnly.MatchString(v) {
			return Barcode{}, domain.NewValidationError("barcode", "EAN-8 must be exactly 8 digits")
		}
		if !ValidateEAN8(v) {
			return Barcode{}, domain.NewValidationError("barcode", "EAN-8 check digit is wrong")
		}
	case SymbologyUPCA:
		if len(v) != 12 || !digitsOnly.MatchString(v) {
			return Barcode{}, domain.NewValidationError("barcode", "UPC-A must be exactly 12 digits")
		}
		if !ValidateUPCA(v) {
			return Barcode{}, domain.NewValidationError("barcode", "UPC-A check digit is wrong")
		}
	case SymbologyUPCE:
		if len(v) != 8 || !digitsOnly.MatchString(v) {
			return Barcode{}, domain.NewValidationError("barcode", "UPC-E must be exactly 8 digits")
		}
		if v[0] != '0' && v[0] != '1' {
			return Barcode{}, domain.NewValidationError("barcode", "UPC-E number system must be 0 or 1")
		}
	case SymbologyCode128:
		if len(v) > 48 {
			return Barcode{}, domain.NewValidationError("barcode", "Code 128 must be at most 48 characters")
		}
		for _, r := range v {
			if r < 32 || r > 126 {
				return Barcode{}, domain.NewValidationError("barcode", "Code 128 may only contain printable ASCII")
			}
		}
	case SymbologyCode39:
		if len(v) > 43 {
			return Barcode{}, domain.NewValidationError("barcode", "Code 39 must be at most 43 characters")
		}
		if !code39Pattern.MatchString(v) {
			return Barcode{}, domain.NewValidationError("barcode", "Code 39 contains unsupported characters")
		}
	default:
		return Barcode{}, domain.NewValidationError("symbology", "unknown barcode symbology")
	}
	return Barcode{value: v, symbology: symbology}, nil
}

// GenerateEAN13 appends the check digit to a 12-digit body.
func GenerateEAN13(body string) (Barcode, error) {
	if len(body) != 12 || !digitsOnly.MatchString(body) {
		return Barcode{}, domain.NewValidationError("barcode", "EAN-13 body must be exactly 12 digits")
	}
	return Barcode{value: body + string(rune('0'+ean13CheckDigit(body))), symbology: SymbologyEAN13}, nil
}

// GenerateVietnameseEAN13 builds an EAN-13 for a Vietnamese company:
// the "893" country prefix, the company prefix (3-7 digits) and the
// item reference zero-padded into the remaining digit budget, followed
// by the computed check digit.
func GenerateVietnameseEAN13(companyPrefix string, itemRef int) (Barcode, error) {
	companyPrefix = strings.TrimSpace(companyPrefix)
	if len(companyPrefix) < 3 || len(companyPrefix) > 7 || !digitsOnly.MatchString(companyPrefix) {
		return Barcode{}, domain.NewValidationError("company_prefix", "company prefix must be 3 to 7 digits")
	}
	if itemRef < 0 {
		return Barcode{}, domain.NewValidationError("item_reference", "item reference must not be negative")
	}
	budget := 12 - len(vietnamGS1Prefix) - len(companyPrefix)
	item := fmt.Sprintf("%0*d", budget, itemRef)
	if len(item) > budget {
		return Barcode{}, domain.NewValidationError("item_reference", "item reference does not fit the remaining digit budget")
	}
	return GenerateEAN13(vietnamGS1Prefix + companyPrefix + item)
}

// RehydrateBarcode rebuilds a Barcode from trusted stored data.
func RehydrateBarcode(value string, symbology BarcodeSymbology) Barcode {
	return Barcode{value: value, symbology: symbology}
}

func (b Barcode) Value() string               { return b.value }
func (b Barcode) Symbology() BarcodeSymbology { return b.symbology }
func (b Barcode) String() string              { return b.value }

func (b Barcode) Equal(o Barcode) bool {
	return b.value == o.value && b.symbology == o.symbology
}

// checksum computes the GS1 modulo-10 check digit for a data body.
// oddWeightThree selects which parity of the 0-indexed position gets
// the ×3 weight; the parity differs between symbologies because the ×3
// weight always applies to the digit adjacent to the check digit.
func checksum(body string, oddWeightThree bool) int {
	sum := 0
	for i, r := range body {
		d := int(r - '0')
		if (i%2 == 1) == oddWeightThree {
			d *= 3
		}
		sum += d
	}
	return (10 - sum%10) % 10
}

// ean13CheckDigit weights odd 0-indexed positions ×3 over 12 digits.
func ean13CheckDigit(body string) int { return checksum(body, true) }

// ean8CheckDigit weights even 0-indexed positions ×3 over 7 digits.
func ean8CheckDigit(body string) int { return checksum(body, false) }

// upcaCheckDigit weights even 0-indexed positions ×3 over 11 digits.
func upcaCheckDigit(body string) int { return checksum(body, false) }

// ValidateEAN13 reports whether a 13-digit string has a correct check digit.
func ValidateEAN13(v string) bool {
	if len(v) != 13 || !digitsOnly.MatchString(v) {
		return false
	}
	return ean13CheckDigit(v[:12]) == int(v[12]-'0')
}

// ValidateEAN8 reports whether an 8-digit string has a correct check digit.
func ValidateEAN8(v string) bool {
	if len(v) != 8 || !digitsOnly.MatchString(v) {
		return false
	}
	return ean8CheckDigit(v[:7]) == int(v[7]-'0')
}

// ValidateUPCA reports whether a 12-digit string has a correct check digit.
func ValidateUPCA(v string) bool {
	if len(v) != 12 || !digitsOnly.MatchString(v) {
		return false
	}
	return upcaCheckDigit(v[:11]) == int(v[11]-'0')
}
