// Package services provides the pricing, ledger and export logic for
// quotations.
package services

import (
	"fmt"
	"math"
)

// Rate discounts the seller is allowed to offer. Anything else is treated
// as "not selected".
const (
	RateDiscount55 = 55
	RateDiscount57 = 57
)

// ValidRateDiscount reports whether d is one of the allowed rate discounts.
func ValidRateDiscount(d int) bool {
	return d == RateDiscount55 || d == RateDiscount57
}

// RoundHalfUp rounds a non-negative value to the nearest whole rupee,
// with the .5 boundary always going up. This is NOT banker's rounding:
// 2.5 becomes 3, 2.49 becomes 2.
func RoundHalfUp(x float64) int {
	f := math.Floor(x)
	if x-f >= 0.5 {
		return int(f) + 1
	}
	return int(f)
}

// AutoRate computes the per-piece rate for a catalog item from its MRP.
// The MRP is first reduced by the rate discount (55 or 57 percent) and
// rounded half-up to a whole rupee. If a sales-person discount is given,
// that rounded rate is reduced again and rounded half-up a second time.
// Rounding between the two stages is intentional: the second discount
// applies to the already-rounded rate, not the raw stage-1 value.
func AutoRate(mrp float64, rateDiscount int, spDiscount float64) (int, error) {
	if !ValidRateDiscount(rateDiscount) {
		return 0, fmt.Errorf("rate discount %d: %w", rateDiscount, ErrMissingDiscountSelection)
	}

	raw := mrp * float64(100-rateDiscount) / 100
	rate := RoundHalfUp(raw)

	if spDiscount > 0 {
		rawFinal := float64(rate) - float64(rate)*spDiscount/100
		rate = RoundHalfUp(rawFinal)
	}

	return rate, nil
}
