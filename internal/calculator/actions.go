package calculator

import (
	"github.com/iwvelando/staffing-cost/internal/snapshot"
	"github.com/iwvelando/staffing-cost/pkg/rates"
)

// ComputedReplacement returns the replacement coefficient percent computed
// from the absence components of s.
func ComputedReplacement(s snapshot.Snapshot) float64 {
	s = s.Normalize()
	return rates.Components{
		AnnualLeaveDays:   s.Num(snapshot.KeyAnnualLeaveDays),
		PublicHolidayDays: s.Num(snapshot.KeyPublicHolidayDays),
		WeeklyRestDays:    s.Num(snapshot.KeyWeeklyRestDays),
		SickBufferPercent: s.Num(snapshot.KeySickBuffer),
	}.Percent()
}

// ApplyComputedReplacement copies the computed replacement coefficient,
// rounded to two decimals, into the manual value and enables the toggle.
func ApplyComputedReplacement(s snapshot.Snapshot) snapshot.Snapshot {
	return s.
		WithNumber(snapshot.KeyReplacement, rates.RoundPercent(ComputedReplacement(s))).
		WithFlag(snapshot.KeyReplacementEnabled, true)
}

// Reset returns the default snapshot.
func Reset() snapshot.Snapshot {
	return snapshot.Defaults()
}
