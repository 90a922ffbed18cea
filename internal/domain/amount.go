package domain

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency converts between human-readable token amounts and the integer
// smallest unit used on the wire.
type Currency struct {
	Symbol        string
	UnitsPerToken int64
}

// NewCurrency creates a currency with the given scale factor
func NewCurrency(symbol string, unitsPerToken int64) Currency {
	return Currency{Symbol: symbol, UnitsPerToken: unitsPerToken}
}

func (c Currency) scale() decimal.Decimal {
	return decimal.NewFromInt(c.UnitsPerToken)
}

// ParseAmount parses a human decimal amount ("0.15") into a decimal
func ParseAmount(field, input string) (decimal.Decimal, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return decimal.Zero, &ValidationError{Field: field, Message: fmt.Sprintf("%s is required", field)}
	}
	d, err := decimal.NewFromString(input)
	if err != nil {
		return decimal.Zero, &ValidationError{Field: field, Message: fmt.Sprintf("%s must be a number", field)}
	}
	return d, nil
}

// ToUnits converts a human amount to smallest units, truncating any
// fraction below one unit. It never rounds up.
func (c Currency) ToUnits(amount decimal.Decimal) *big.Int {
	return amount.Mul(c.scale()).Truncate(0).BigInt()
}

// FromUnits converts smallest units back to a human amount
func (c Currency) FromUnits(units *big.Int) decimal.Decimal {
	if units == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(units, 0).Div(c.scale())
}

// Format renders smallest units as a human amount with two decimals
func (c Currency) Format(units *big.Int) string {
	return c.FromUnits(units).StringFixed(2)
}

// FormatWithSymbol renders smallest units followed by the currency symbol
func (c Currency) FormatWithSymbol(units *big.Int) string {
	if c.Symbol == "" {
		return c.Format(units)
	}
	return c.Format(units) + " " + c.Symbol
}
