package valueobject

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/domain"
)

// DefaultCurrency is the marketplace's local currency.
const DefaultCurrency = "VND"

// moneyScale is the number of fractional digits every amount is kept at.
// Rounding is half away from zero (decimal.Round semantics).
const moneyScale = 4

// Money is a non-negative amount in a single currency. Arithmetic
// between two Money values requires identical currencies.
type Money struct {
	amount   decimal.Decimal
	currency string
}

// NewMoney validates and builds a Money. The amount must not be
// negative and the currency must not be blank; the amount is rounded
// to four fractional digits.
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		return Money{}, domain.NewValidationError("currency", "currency is required")
	}
	if amount.IsNegative() {
		return Money{}, domain.NewValidationError("amount", "amount must not be negative")
	}
	return Money{amount: amount.Round(moneyScale), currency: currency}, nil
}

// NewMoneyVND builds a Money in the local default currency.
func NewMoneyVND(amount decimal.Decimal) (Money, error) {
	return NewMoney(amount, DefaultCurrency)
}

// MoneyFromString parses a decimal string amount.
func MoneyFromString(amount, currency string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return Money{}, domain.NewValidationError("amount", "amount is not a valid decimal number")
	}
	return NewMoney(d, currency)
}

// RehydrateMoney rebuilds a Money from trusted stored data, skipping
// validation. For persistence use only.
func RehydrateMoney(amount decimal.Decimal, currency string) Money {
	return Money{amount: amount, currency: currency}
}

func (m Money) Amount() decimal.Decimal { return m.amount }
func (m Money) Currency() string        { return m.currency }
func (m Money) IsZero() bool            { return m.amount.IsZero() }

func (m Money) String() string {
	return m.amount.StringFixed(moneyScale) + " " + m.currency
}

func (m Money) sameCurrency(o Money) error {
	if m.currency != o.currency {
		return domain.NewOperationError("currency mismatch: %s vs %s", m.currency, o.currency)
	}
	return nil
}

// Add returns m + o. Fails when the currencies differ.
func (m Money) Add(o Money) (Money, error) {
	if err := m.sameCurrency(o); err != nil {
		return Money{}, err
	}
	return Money{amount: m.amount.Add(o.amount).Round(moneyScale), currency: m.currency}, nil
}

// Sub returns m - o. Fails when the currencies differ or the result
// would be negative.
func (m Money) Sub(o Money) (Money, error) {
	if err := m.sameCurrency(o); err != nil {
		return Money{}, err
	}
	res := m.amount.Sub(o.amount)
	if res.IsNegative() {
		return Money{}, domain.NewOperationError("subtraction would produce a negative amount")
	}
	return Money{amount: res.Round(moneyScale), currency: m.currency}, nil
}

// Mul returns m scaled by factor. Fails when factor is negative.
func (m Money) Mul(factor decimal.Decimal) (Money, error) {
	if factor.IsNegative() {
		return Money{}, domain.NewOperationError("cannot multiply an amount by a negative factor")
	}
	return Money{amount: m.amount.Mul(factor).Round(moneyScale), currency: m.currency}, nil
}

// Div returns m divided by divisor. Fails on zero or negative divisors.
func (m Money) Div(divisor decimal.Decimal) (Money, error) {
	if divisor.IsZero() {
		return Money{}, domain.NewOperationError("cannot divide an amount by zero")
	}
	if divisor.IsNegative() {
		return Money{}, domain.NewOperationError("cannot divide an amount by a negative divisor")
	}
	return Money{amount: m.amount.DivRound(divisor, moneyScale), currency: m.currency}, nil
}

// Cmp compares two amounts: -1 when m < o, 0 when equal, 1 when m > o.
// Fails when the currencies differ.
func (m Money) Cmp(o Money) (int, error) {
	if err := m.sameCurrency(o); err != nil {
		return 0, err
	}
	return m.amount.Cmp(o.amount), nil
}

// Equal reports value equality: same currency and same amount.
func (m Money) Equal(o Money) bool {
	return m.currency == o.currency && m.amount.Equal(o.amount)
}
