package valueobject

import (
	"fmt"
	"sort"

	"github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/domain"
)

const (
	dimensionMinMM = 1
	dimensionMaxMM = 10000

	// Vietnam Post parcel rule of thumb: no side above 1.5 m and the
	// three sides together at most 3 m.
	postalMaxSideMM = 1500
	postalMaxSumMM  = 3000
)

// Standard shipping box, largest to smallest side.
var standardBoxMM = [3]int{600, 400, 400}

// Dimensions is a package size in millimeters, each side 1-10,000 mm.
type Dimensions struct {
	lengthMM int
	widthMM  int
	heightMM int
}

// NewDimensions validates each side against the millimeter range.
func NewDimensions(lengthMM, widthMM, heightMM int) (Dimensions, error) {
	for _, s := range [...]struct {
		field string
		value int
	}{
		{"length_mm", lengthMM},
		{"width_mm", widthMM},
		{"height_mm", heightMM},
	} {
		if s.value < dimensionMinMM || s.value > dimensionMaxMM {
			return Dimensions{}, domain.NewValidationError(s.field, "dimension must be between 1 and 10000 millimeters")
		}
	}
	return Dimensions{lengthMM: lengthMM, widthMM: widthMM, heightMM: heightMM}, nil
}

// RehydrateDimensions rebuilds Dimensions from trusted stored data.
func RehydrateDimensions(lengthMM, widthMM, heightMM int) Dimensions {
	return Dimensions{lengthMM: lengthMM, widthMM: widthMM, heightMM: heightMM}
}

func (d Dimensions) LengthMM() int { return d.lengthMM }
func (d Dimensions) WidthMM() int  { return d.widthMM }
func (d Dimensions) HeightMM() int { return d.heightMM }

func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%dx%d mm", d.lengthMM, d.widthMM, d.heightMM)
}

// VolumeCubicMM is the derived package volume.
func (d Dimensions) VolumeCubicMM() int64 {
	return int64(d.lengthMM) * int64(d.widthMM) * int64(d.heightMM)
}

// WithinPostalLimit reports whether the package is accepted as a
// regular postal parcel.
func (d Dimensions) WithinPostalLimit() bool {
	sides := d.sortedSides()
	return sides[0] <= postalMaxSideMM && d.lengthMM+d.widthMM+d.heightMM <= postalMaxSumMM
}

// FitsStandardBox reports whether the package fits the standard
// shipping box in some orientation.
func (d Dimensions) FitsStandardBox() bool {
	sides := d.sortedSides()
	for i := range sides {
		if sides[i] > standardBoxMM[i] {
			return false
		}
	}
	return true
}

// sortedSides returns the sides largest first.
func (d Dimensions) sortedSides() [3]int {
	s := [3]int{d.lengthMM, d.widthMM, d.heightMM}
	sort.Sort(sort.Reverse(sort.IntSlice(s[:])))
	return s
}
