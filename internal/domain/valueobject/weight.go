package valueobject

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/domain"
)

const (
	weightMinGrams = 1
	weightMaxGrams = 50_000_000
)

// ShippingCategory is the derived shipping tier of a package weight.
type ShippingCategory string

const (
	ShippingLight    ShippingCategory = "light"    // up to 500 g
	ShippingStandard ShippingCategory = "standard" // up to 5 kg
	ShippingHeavy    ShippingCategory = "heavy"    // up to 30 kg
	ShippingBulky    ShippingCategory = "bulky"    // up to 200 kg
	ShippingFreight  ShippingCategory = "freight"  // everything above
)

var shippingMultipliers = map[ShippingCategory]decimal.Decimal{
	ShippingLight:    decimal.NewFromFloat(1.0),
	ShippingStandard: decimal.NewFromFloat(1.2),
	ShippingHeavy:    decimal.NewFromFloat(1.5),
	ShippingBulky:    decimal.NewFromFloat(2.0),
	ShippingFreight:  decimal.NewFromFloat(3.0),
}

// Weight is a package weight in grams, 1 g to 50,000 kg.
type Weight struct {
	grams int64
}

// NewWeight validates grams against the allowed range.
func NewWeight(grams int64) (Weight, error) {
	if grams < weightMinGrams || grams > weightMaxGrams {
		return Weight{}, domain.NewValidationError("weight_grams", "weight must be between 1 and 50000000 grams")
	}
	return Weight{grams: grams}, nil
}

// RehydrateWeight rebuilds a Weight from trusted stored data.
func RehydrateWeight(grams int64) Weight { return Weight{grams: grams} }

func (w Weight) Grams() int64 { return w.grams }

// Kilograms returns the weight in kilograms with three fractional digits.
func (w Weight) Kilograms() decimal.Decimal {
	return decimal.New(w.grams, -3)
}

func (w Weight) String() string {
	return fmt.Sprintf("%d g", w.grams)
}

// Category maps the weight onto its shipping tier.
func (w Weight) Category() ShippingCategory {
	switch {
	case w.grams <= 500:
		return ShippingLight
	case w.grams <= 5_000:
		return ShippingStandard
	case w.grams <= 30_000:
		return ShippingHeavy
	case w.grams <= 200_000:
		return ShippingBulky
	default:
		return ShippingFreight
	}
}

// CostMultiplier is the shipping cost factor of the weight's tier.
func (w Weight) CostMultiplier() decimal.Decimal {
	return shippingMultipliers[w.Category()]
}
