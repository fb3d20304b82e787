// Package format renders amounts, hours and percentages for display.
package format

import (
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/staffing-cost/pkg/constants"
	"github.com/iwvelando/staffing-cost/pkg/mathutil"
	"github.com/shopspring/decimal"
)

const (
	groupSeparator   = ' '
	decimalSeparator = ","
)

// MAD returns a currency string with a trailing currency code and grouped
// thousands (e.g., "6 090 MAD", "23,54 MAD"). Only 0 or 2 decimals are
// rendered; any other value is treated as 2. Non-finite amounts render as zero.
func MAD(amount float64, decimals int) string {
	return Numeric(amount, decimals) + " " + constants.CurrencyCode
}

// Numeric returns the amount without a currency code but with separators
// (e.g., "-1 234,56").
func Numeric(amount float64, decimals int) string {
	if decimals != 0 {
		decimals = 2
	}
	d := decimal.NewFromFloat(mathutil.Finite(amount)).Round(int32(decimals))
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	return sign + group(d.StringFixed(int32(decimals)))
}

// Hours renders an hour count as a rounded integer with an "h" suffix.
func Hours(hours float64) string {
	return fmt.Sprintf("%d h", int64(math.Round(mathutil.Finite(hours))))
}

// Percent renders a percentage with two decimals (e.g., "12.99%").
func Percent(percent float64) string {
	return fmt.Sprintf("%.2f%%", mathutil.Finite(percent))
}

// Count renders a headcount as an integer.
func Count(n int) string {
	return fmt.Sprintf("%d", n)
}

func group(fixed string) string {
	intPart, decPart, hasDec := strings.Cut(fixed, ".")

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteRune(groupSeparator)
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	if !hasDec {
		return intPart
	}
	return intPart + decimalSeparator + decPart
}
