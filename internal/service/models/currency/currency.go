package currency

import (
	"database/sql/driver"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type Currency string

const (
	CurrencyEUR Currency = "EUR"
)

var (
	ErrInvalidCurrency = errors.New("invalid currency")
	ErrInvalidAmount   = errors.New("amount must have at most two decimals")
)

func (c Currency) String() string {
	return string(c)
}

// Lower returns the ISO code in the lowercase form payment processors expect.
func (c Currency) Lower() string {
	return strings.ToLower(string(c))
}

func (c Currency) Value() (driver.Value, error) {
	return c.String(), nil
}

func ParseCurrency(s string) (Currency, error) {
	switch strings.ToUpper(s) {
	case CurrencyEUR.String():
		return CurrencyEUR, nil
	default:
		return "", ErrInvalidCurrency
	}
}

// ToCents converts a euro amount into minor units.
// Amounts with more than two decimals are rejected instead of rounded.
func ToCents(amount decimal.Decimal) (int64, error) {
	cents := amount.Shift(2)
	if !cents.Equal(cents.Truncate(0)) {
		return 0, ErrInvalidAmount
	}

	return cents.IntPart(), nil
}

// FromCents converts minor units into a euro amount.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// Format renders minor units as "€12.50".
func Format(cents int64) string {
	return "€" + FromCents(cents).StringFixed(2)
}
