// Package moneypkg provides the fixed-point money type used for account balances.
package moneypkg

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// FracDigits is the number of fractional digits every amount carries.
const FracDigits = 3

const scale = 1000 // 10^FracDigits

var (
	// ErrMalformed indicates that the input text is not a decimal number.
	ErrMalformed = errors.New("malformed decimal amount")
	// ErrTooPrecise indicates more fractional digits than the type can hold.
	ErrTooPrecise = errors.New("amount has more than 3 fractional digits")
	// ErrOverflow indicates that the amount does not fit the scaled range.
	ErrOverflow = errors.New("amount out of range")
)

// Money is a decimal amount with exactly 3 fractional digits.
//
// It is stored as the amount scaled by 1000, so arithmetic is exact
// integer arithmetic. The zero value is 0.000.
type Money struct {
	units int64
}

// FromUnits builds Money from an amount already scaled by 1000.
func FromUnits(units int64) Money {
	return Money{units: units}
}

// FromString parses a decimal string such as "1234.500".
//
// Up to 3 fractional digits are accepted. Anything finer or anything
// that does not fit the scaled int64 range is an error.
func FromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrMalformed
	}

	scaled := d.Mul(decimal.New(1, FracDigits))
	if !scaled.IsInteger() {
		return Money{}, ErrTooPrecise
	}

	if scaled.Cmp(decimal.NewFromInt(math.MaxInt64)) > 0 ||
		scaled.Cmp(decimal.NewFromInt(math.MinInt64)) < 0 {
		return Money{}, ErrOverflow
	}

	return Money{units: scaled.IntPart()}, nil
}

// Units returns the amount scaled by 1000.
func (m Money) Units() int64 {
	return m.units
}

// Add returns m + o or ErrOverflow.
func (m Money) Add(o Money) (Money, error) {
	if o.units > 0 && m.units > math.MaxInt64-o.units {
		return Money{}, ErrOverflow
	}

	if o.units < 0 && m.units < math.MinInt64-o.units {
		return Money{}, ErrOverflow
	}

	return Money{units: m.units + o.units}, nil
}

// Sub returns m - o or ErrOverflow.
func (m Money) Sub(o Money) (Money, error) {
	return m.Add(o.Neg())
}

// Neg returns the amount with the opposite sign.
func (m Money) Neg() Money {
	return Money{units: -m.units}
}

// IsPositive reports whether m > 0.
func (m Money) IsPositive() bool {
	return m.units > 0
}

// IsNegative reports whether m < 0.
func (m Money) IsNegative() bool {
	return m.units < 0
}

// IsZero reports whether m == 0.
func (m Money) IsZero() bool {
	return m.units == 0
}

// Cmp compares m and o and returns -1, 0 or 1.
func (m Money) Cmp(o Money) int {
	switch {
	case m.units < o.units:
		return -1
	case m.units > o.units:
		return 1
	}

	return 0
}

// Equal reports whether m and o hold the same amount.
func (m Money) Equal(o Money) bool {
	return m.units == o.units
}

// Decimal returns the amount as a shopspring decimal.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.units, -FracDigits)
}

// String renders the canonical form, always with 3 fractional digits.
func (m Money) String() string {
	u := m.units

	sign := ""
	if u < 0 {
		sign = "-"
		u = -u
	}

	return fmt.Sprintf("%s%d.%03d", sign, u/scale, u%scale)
}

// MarshalJSON encodes the amount as its canonical decimal string.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON decodes a decimal string.
func (m *Money) UnmarshalJSON(data []byte) error {
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		data = data[1 : len(data)-1]
	}

	parsed, err := FromString(string(data))
	if err != nil {
		return err
	}

	*m = parsed

	return nil
}

// Value implements driver.Valuer so Money binds directly to numeric columns.
func (m Money) Value() (driver.Value, error) {
	return m.String(), nil
}

// Scan implements sql.Scanner for numeric columns.
func (m *Money) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		parsed, err := FromString(string(v))
		if err != nil {
			return err
		}

		*m = parsed
	case string:
		parsed, err := FromString(v)
		if err != nil {
			return err
		}

		*m = parsed
	case int64:
		m.units = v * scale
	default:
		return fmt.Errorf("cannot scan %T into Money", src)
	}

	return nil
}

// ValidAmount is a gin binding validator for decimal amount strings.
var ValidAmount validator.Func = func(fl validator.FieldLevel) bool {
	if s, ok := fl.Field().Interface().(string); ok {
		_, err := FromString(s)
		return err == nil
	}

	return false
}
