package valueobject

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a nullable monetary value. Prices, payments and milestone amounts
// are either a finite number or null; there is no currency because every
// figure in a property record shares the property's market currency.
// It is immutable - all operations return new Amount instances.
type Amount struct {
	value decimal.Decimal
	valid bool
}

const (
	maxAmountOrder = 308
	minAmountOrder = -324
)

// NullAmount returns the null Amount
func NullAmount() Amount {
	return Amount{}
}

// NewAmount creates a non-null Amount
func NewAmount(value decimal.Decimal) Amount {
	return Amount{value: value, valid: true}
}

// NewAmountFromInt creates a non-null Amount from an int64 value
func NewAmountFromInt(value int64) Amount {
	return NewAmount(decimal.NewFromInt(value))
}

// ParseAmount normalises loosely typed input. Numeric strings are parsed after
// trimming; empty or non-numeric strings become null. Values are limited to
// the finite double range: anything that would overflow becomes null, values
// too small to represent become zero, and the rest are rounded to the nearest
// double.
func ParseAmount(s string) Amount {
	s = strings.TrimSpace(s)
	if s == "" {
		return NullAmount()
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return NullAmount()
	}
	if d.IsZero() {
		return NewAmount(decimal.Zero)
	}

	// order of magnitude, checked before conversion so huge exponents stay cheap
	order := int64(d.Exponent()) + int64(d.NumDigits()) - 1
	switch {
	case order > maxAmountOrder:
		return NullAmount()
	case order < minAmountOrder:
		return NewAmount(decimal.Zero)
	}

	f := d.InexactFloat64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return NullAmount()
	}
	return NewAmount(decimal.NewFromFloat(f))
}

// Valid returns true if the amount is not null
func (a Amount) Valid() bool {
	return a.valid
}

// IsNull returns true if the amount is null
func (a Amount) IsNull() bool {
	return !a.valid
}

// Decimal returns the decimal value; null amounts return zero
func (a Amount) Decimal() decimal.Decimal {
	if !a.valid {
		return decimal.Zero
	}
	return a.value
}

// Equals returns true if both amounts are null or hold equal values
func (a Amount) Equals(other Amount) bool {
	if a.valid != other.valid {
		return false
	}
	return !a.valid || a.value.Equal(other.value)
}

// String returns the decimal string, or "null"
func (a Amount) String() string {
	if !a.valid {
		return "null"
	}
	return a.value.String()
}

// MarshalJSON implements json.Marshaler. Values are written as bare JSON numbers.
func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.valid {
		return []byte("null"), nil
	}
	return []byte(a.value.String()), nil
}

// UnmarshalJSON implements json.Unmarshaler. It never fails: numbers and
// numeric strings become values, everything else (null, booleans, objects,
// empty or non-numeric strings) becomes null.
func (a *Amount) UnmarshalJSON(data []byte) error {
	*a = NullAmount()
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		*a = ParseAmount(s)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		*a = ParseAmount(string(data))
	}
	return nil
}

// Value implements driver.Valuer for database storage
func (a Amount) Value() (driver.Value, error) {
	if !a.valid {
		return nil, nil
	}
	return a.value.String(), nil
}

// Scan implements sql.Scanner for database retrieval
func (a *Amount) Scan(value any) error {
	if value == nil {
		*a = NullAmount()
		return nil
	}
	var d decimal.Decimal
	if err := d.Scan(value); err != nil {
		return fmt.Errorf("failed to scan amount: %w", err)
	}
	*a = NewAmount(d)
	return nil
}
