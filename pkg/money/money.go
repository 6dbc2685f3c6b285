// Package money implements exact integer arithmetic on amounts expressed
// in minor currency units (cents). Nothing in here touches floating-point
// multiplication of money; hours enter as hundredths so that rate × hours
// stays in integers end to end.
package money

import (
	"fmt"
	"math"
	"strconv"
)

// Cents is an amount in minor currency units.
type Cents = int64

// HoursToHundredths converts a fractional hour count to integer hundredths
// of an hour. Work entries carry at most two decimals.
func HoursToHundredths(hours float64) int64 {
	return int64(math.Round(hours * 100))
}

// MulRate multiplies an hourly rate in cents by a fractional hour count,
// rounding half up at cent precision.
func MulRate(rateCents Cents, hours float64) Cents {
	h := HoursToHundredths(hours)
	return divRoundHalfUp(rateCents*h, 100)
}

// VATRateBasisPoints is the fixed VAT rate (19%) in basis points of a cent
// amount: tax = net * 19 / 100.
const VATRateBasisPoints = 19

// VAT computes the tax on a net amount at the fixed 19% rate, rounded half
// up at cent precision.
func VAT(netCents Cents) Cents {
	return divRoundHalfUp(netCents*VATRateBasisPoints, 100)
}

// Format renders a cent amount as a fixed-2-decimal string with the euro
// suffix, e.g. 45000 -> "450.00 €".
func Format(c Cents) string {
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d €", sign, c/100, c%100)
}

// FormatHours renders an hour count the way invoice lines display it:
// whole hours without a decimal point, fractional hours verbatim.
func FormatHours(hours float64) string {
	if hours == math.Trunc(hours) {
		return strconv.FormatInt(int64(hours), 10)
	}
	return strconv.FormatFloat(hours, 'f', -1, 64)
}

func divRoundHalfUp(numerator, denominator int64) int64 {
	if numerator < 0 {
		return -((-numerator + denominator/2) / denominator)
	}
	return (numerator + denominator/2) / denominator
}
