// Package market holds the day-ahead price data model: per-hour price cells
// as fetched from the spot market and the unit conversions between the
// exchange quotation (EUR/MWh) and the retail tariff quotation (cents/kWh).
package market

import "github.com/shopspring/decimal"

// PricePerMWh is a price in EUR per megawatt-hour, the spot market quotation.
type PricePerMWh struct {
	Value decimal.Decimal
}

// CentsPerKWh is a price in euro cents per kilowatt-hour, the retail tariff
// quotation.
type CentsPerKWh struct {
	Value decimal.Decimal
}

var ten = decimal.NewFromInt(10)

// ToCentsPerKWh converts the exchange quotation to cents/kWh. 1 EUR/MWh is
// exactly 0.1 c/kWh.
func (p PricePerMWh) ToCentsPerKWh() CentsPerKWh {
	return CentsPerKWh{Value: p.Value.Div(ten)}
}

// ToPricePerMWh converts the tariff quotation to EUR/MWh.
func (c CentsPerKWh) ToPricePerMWh() PricePerMWh {
	return PricePerMWh{Value: c.Value.Mul(ten)}
}

// Add returns the sum of the two prices.
func (p PricePerMWh) Add(other PricePerMWh) PricePerMWh {
	return PricePerMWh{Value: p.Value.Add(other.Value)}
}

// GreaterThan reports whether p exceeds other.
func (p PricePerMWh) GreaterThan(other PricePerMWh) bool {
	return p.Value.GreaterThan(other.Value)
}

// Cmp compares p to other: -1 if cheaper, 0 if equal, 1 if dearer.
func (p PricePerMWh) Cmp(other PricePerMWh) int {
	return p.Value.Cmp(other.Value)
}

func (p PricePerMWh) String() string { return p.Value.String() + " EUR/MWh" }
