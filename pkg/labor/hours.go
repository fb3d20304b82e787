// Package labor prices a service line from its headcount, the derived hourly
// rates and a pricing policy.
package labor

import (
	"github.com/iwvelando/staffing-cost/pkg/constants"
	"github.com/iwvelando/staffing-cost/pkg/mathutil"
)

// HourSplit partitions one agent's monthly hours into regular and overtime.
type HourSplit struct {
	Regular  float64
	Overtime float64
}

// Total returns Regular + Overtime.
func (h HourSplit) Total() float64 {
	return h.Regular + h.Overtime
}

// MonthlyCeiling converts a weekly hours limit to its monthly equivalent
// (48h/week is 208h/month).
func MonthlyCeiling(weeklyLimit float64) float64 {
	return mathutil.NonNegative(weeklyLimit) * constants.WeeksPerYear / constants.MonthsPerYear
}

// SplitMonthlyHours caps the planned hours at the ceiling; anything above it is
// overtime. Negative inputs are treated as zero.
func SplitMonthlyHours(planned, ceiling float64) HourSplit {
	planned = mathutil.NonNegative(planned)
	ceiling = mathutil.NonNegative(ceiling)
	return HourSplit{
		Regular:  mathutil.Min(planned, ceiling),
		Overtime: mathutil.Max(0, planned-ceiling),
	}
}

// SplitWeeklyHours applies the weekly limit to a weekly schedule and returns
// the monthly equivalent of each part.
func SplitWeeklyHours(weekly, weeklyLimit float64) HourSplit {
	weekly = mathutil.NonNegative(weekly)
	weeklyLimit = mathutil.NonNegative(weeklyLimit)
	factor := float64(constants.WeeksPerYear) / constants.MonthsPerYear
	return HourSplit{
		Regular:  mathutil.Min(weekly, weeklyLimit) * factor,
		Overtime: mathutil.Max(0, weekly-weeklyLimit) * factor,
	}
}
