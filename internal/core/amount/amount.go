// Package amount implements the integer token quantities moved by the marketplace.
package amount

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// BasisPoints is the denominator of every percentage in the marketplace (10000 bp = 100%).
const BasisPoints = 10000

var (
	// ErrNegative is returned when an operation would produce a negative amount.
	ErrNegative = errors.New("amount cannot be negative")
	// ErrNotInteger is returned when parsing a value with a fractional part.
	ErrNotInteger = errors.New("amount must be an integer")
)

var bpDenominator = decimal.NewFromInt(BasisPoints)

// Amount is a non-negative integer quantity of some token, in its smallest unit.
// The zero value is zero.
type Amount struct {
	d decimal.Decimal
}

// Zero is the zero amount.
var Zero = Amount{}

// New creates an amount from a uint64.
func New(v uint64) Amount {
	return wrap(decimal.NewFromBigInt(new(big.Int).SetUint64(v), 0))
}

// wrap keeps a single representation of zero so that amounts compare equal
// with reflect.DeepEqual after a round trip.
func wrap(d decimal.Decimal) Amount {
	if d.IsZero() {
		return Zero
	}
	return Amount{d: d}
}

// Parse parses a base-10 integer string.
func Parse(s string) (Amount, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if !d.IsInteger() {
		return Zero, ErrNotInteger
	}
	if d.IsNegative() {
		return Zero, ErrNegative
	}
	return wrap(d), nil
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(s string) Amount {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Amount) Add(other Amount) Amount {
	return wrap(a.d.Add(other.d))
}

// Sub returns a - other, or ErrNegative if other > a.
func (a Amount) Sub(other Amount) (Amount, error) {
	if a.d.LessThan(other.d) {
		return Zero, ErrNegative
	}
	return wrap(a.d.Sub(other.d)), nil
}

func (a Amount) MulUint64(factor uint64) Amount {
	return wrap(a.d.Mul(New(factor).d))
}

// Mul returns a * other.
func (a Amount) Mul(other Amount) Amount {
	return wrap(a.d.Mul(other.d))
}

// MulBP returns floor(a * bp / 10000).
func (a Amount) MulBP(bp uint32) Amount {
	q, _ := a.d.Mul(decimal.NewFromInt(int64(bp))).QuoRem(bpDenominator, 0)
	return wrap(q)
}

func (a Amount) Cmp(other Amount) int {
	return a.d.Cmp(other.d)
}

func (a Amount) Equal(other Amount) bool {
	return a.d.Equal(other.d)
}

func (a Amount) LessThan(other Amount) bool {
	return a.d.LessThan(other.d)
}

func (a Amount) GreaterThan(other Amount) bool {
	return a.d.GreaterThan(other.d)
}

func (a Amount) IsZero() bool {
	return a.d.IsZero()
}

func (a Amount) IsPositive() bool {
	return a.d.IsPositive()
}

// Uint64 returns the amount as a uint64 and whether it fits.
func (a Amount) Uint64() (uint64, bool) {
	b := a.d.BigInt()
	if !b.IsUint64() {
		return 0, false
	}
	return b.Uint64(), true
}

func (a Amount) String() string {
	return a.d.String()
}

// MarshalJSON encodes the amount as a decimal string.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.d.String() + `"`), nil
}

// UnmarshalJSON accepts either a quoted decimal string or a bare integer.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*a = Zero
		return nil
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// MarshalBinary is used by the record codec.
func (a Amount) MarshalBinary() ([]byte, error) {
	return []byte(a.d.String()), nil
}

func (a *Amount) UnmarshalBinary(data []byte) error {
	if len(data) == 0 {
		*a = Zero
		return nil
	}
	parsed, err := Parse(string(data))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
