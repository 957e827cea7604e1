package dto

import "github.com/shopspring/decimal"

// Money renders a decimal amount as a JSON number with two fraction digits.
type Money decimal.Decimal

// MarshalJSON implements json.Marshaler.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(m).StringFixed(2)), nil
}

// Decimal returns the underlying amount.
func (m Money) Decimal() decimal.Decimal {
	return decimal.Decimal(m)
}
