package kernel

import (
	"bytes"
	"fmt"

	"printshop/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// MinorUnitPlaces is the number of decimal places kept for every Money value.
const MinorUnitPlaces int32 = 2

// Money is a currency amount rounded to MinorUnitPlaces, half away from zero.
// The zero value is a valid amount of 0.00.
//
// Arithmetic never loses the rounding invariant: each operation rounds its
// result, so a chain such as
//
//	subtotal := unit.MulInt(quantity)
//	total := subtotal.MulDecimal(decimal.RequireFromString("1.35"))
//
// yields values that can be compared and serialized without further care.
type Money struct {
	amount decimal.Decimal
}

// NewMoney rounds d to the minor unit.
func NewMoney(d decimal.Decimal) Money {
	return Money{amount: d.Round(MinorUnitPlaces)}
}

// MoneyFromFloat converts a float64 coming from a JSON payload.
func MoneyFromFloat(f float64) Money {
	return NewMoney(decimal.NewFromFloat(f))
}

// MoneyFromInt returns a whole amount.
func MoneyFromInt(i int64) Money {
	return NewMoney(decimal.NewFromInt(i))
}

// ParseMoney parses a decimal string such as "12.50".
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money", err)
	}
	return NewMoney(d), nil
}

// MustParseMoney is ParseMoney for constants; it panics on malformed input.
func MustParseMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Add(other Money) Money {
	return NewMoney(m.amount.Add(other.amount))
}

func (m Money) Sub(other Money) Money {
	return NewMoney(m.amount.Sub(other.amount))
}

func (m Money) MulInt(n int) Money {
	return NewMoney(m.amount.Mul(decimal.NewFromInt(int64(n))))
}

func (m Money) MulDecimal(factor decimal.Decimal) Money {
	return NewMoney(m.amount.Mul(factor))
}

// DivInt divides by a positive count. Division by n <= 0 yields zero rather
// than failing, which is what per-unit prices of an empty quantity need.
func (m Money) DivInt(n int) Money {
	if n <= 0 {
		return Money{}
	}
	return NewMoney(m.amount.Div(decimal.NewFromInt(int64(n))))
}

// Max returns the larger of the two amounts.
func (m Money) Max(other Money) Money {
	if m.amount.GreaterThanOrEqual(other.amount) {
		return m
	}
	return other
}

func (m Money) Cmp(other Money) int {
	return m.amount.Cmp(other.amount)
}

func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

func (m Money) Float64() float64 {
	f, _ := m.amount.Float64()
	return f
}

// String renders the amount with exactly MinorUnitPlaces decimals.
func (m Money) String() string {
	return m.amount.StringFixed(MinorUnitPlaces)
}

// MarshalJSON encodes the amount as a JSON number.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts numbers, numeric strings, "" and null (both zero).
func (m *Money) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) || bytes.Equal(data, []byte(`""`)) {
		*m = Money{}
		return nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("decode money: %w", err)
	}
	*m = NewMoney(d)
	return nil
}
