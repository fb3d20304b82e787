package rates

import (
	"github.com/iwvelando/staffing-cost/pkg/constants"
	"github.com/iwvelando/staffing-cost/pkg/mathutil"
	"github.com/shopspring/decimal"
)

// Components are the absence figures the replacement coefficient is built from.
type Components struct {
	AnnualLeaveDays   float64
	PublicHolidayDays float64
	WeeklyRestDays    float64
	SickBufferPercent float64
}

// ReplacementBreakdown holds the intermediate day counts and the resulting
// coefficient as a percentage.
type ReplacementBreakdown struct {
	WorkableDays    float64
	PaidAbsenceDays float64
	AvailableDays   float64
	Percent         float64
}

// Breakdown computes the replacement coefficient. Weekly rest shrinks the
// workable year, paid leave and holidays are spread over the remaining
// available days, and the sick buffer is added on top. Both denominators are
// floored at one day.
func (c Components) Breakdown() ReplacementBreakdown {
	workable := mathutil.Max(1, constants.DaysPerYear-c.WeeklyRestDays)
	paidAbsence := mathutil.NonNegative(c.AnnualLeaveDays + c.PublicHolidayDays)
	available := mathutil.Max(1, workable-paidAbsence)

	coefficient := paidAbsence/available + mathutil.Fraction(c.SickBufferPercent)

	return ReplacementBreakdown{
		WorkableDays:    workable,
		PaidAbsenceDays: paidAbsence,
		AvailableDays:   available,
		Percent:         coefficient * constants.PercentageMultiplier,
	}
}

// Percent is shorthand for Breakdown().Percent.
func (c Components) Percent() float64 {
	return c.Breakdown().Percent
}

// RoundPercent rounds a coefficient to two decimals, the precision used when
// the computed value is copied into the manual replacement field.
func RoundPercent(percent float64) float64 {
	rounded, _ := decimal.NewFromFloat(mathutil.Finite(percent)).Round(2).Float64()
	return rounded
}
