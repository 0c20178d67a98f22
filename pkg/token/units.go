package token

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid amount")

// ToDecimal scales a raw integer amount down by decimals.
func ToDecimal(raw *big.Int, decimals uint8) decimal.Decimal {
	if raw == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(raw, -int32(decimals))
}

// FormatUnits renders a raw amount as an exact decimal string with trailing
// zeros removed, e.g. 1500000 at 6 decimals is "1.5".
func FormatUnits(raw *big.Int, decimals uint8) string {
	return ToDecimal(raw, decimals).String()
}

// ParseUnits converts a human amount into the token's smallest unit.
// More fractional digits than decimals is an error rather than a silent truncation.
func ParseUnits(amount string, decimals uint8) (*big.Int, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, amount)
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("%w: negative", ErrInvalidAmount)
	}
	return FromDecimal(d, decimals)
}

// FromDecimal scales d up by decimals, rejecting precision beyond the token's.
func FromDecimal(d decimal.Decimal, decimals uint8) (*big.Int, error) {
	scaled := d.Shift(int32(decimals))
	if !scaled.Equal(scaled.Truncate(0)) {
		return nil, fmt.Errorf("%w: more than %d decimal places", ErrInvalidAmount, decimals)
	}
	return scaled.BigInt(), nil
}
