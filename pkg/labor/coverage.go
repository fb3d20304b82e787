package labor

import (
	"math"

	"github.com/iwvelando/staffing-cost/pkg/constants"
	"github.com/iwvelando/staffing-cost/pkg/mathutil"
)

// Requirement is the monthly hours a site requires, split by day and night.
type Requirement struct {
	// CoverageHours is the presence promised to the client (posts x 24h).
	CoverageHours float64
	// BillableHours is the paid basis used for costing.
	BillableHours float64
	DayHours      float64
	NightHours    float64
}

// SecurityCoverage derives the monthly requirement of 24/7 security posts
// staffed by two paid shifts a day. Billable hours are split day/night by the
// share of the day defined as night.
func SecurityCoverage(posts int, paidHoursPerShift, daysInMonth, nightHoursPerDay float64) Requirement {
	p := float64(nonNegativeInt(posts))
	days := mathutil.NonNegative(daysInMonth)
	nightHours := mathutil.Clamp(nightHoursPerDay, 0, constants.HoursPerDay)

	billable := p * constants.ShiftsPerDay * mathutil.NonNegative(paidHoursPerShift) * days
	night := billable * (nightHours / constants.HoursPerDay)

	return Requirement{
		CoverageHours: p * constants.HoursPerDay * days,
		BillableHours: billable,
		DayHours:      billable - night,
		NightHours:    night,
	}
}

// CleaningRequirement derives the monthly cleaning hours from the planned
// hours per agent per day, allocated to night by the team's night share.
func CleaningRequirement(team Team, hoursPerDay, daysPerMonth float64) Requirement {
	agents := float64(team.Total())
	total := agents * mathutil.NonNegative(hoursPerDay) * mathutil.NonNegative(daysPerMonth)
	night := total * mathutil.Share(float64(nonNegativeInt(team.NightAgents)), agents)

	return Requirement{
		CoverageHours: total,
		BillableHours: total,
		DayHours:      total - night,
		NightHours:    night,
	}
}

// AutoSizeSecurity returns the headcount needed to cover the billable hours at
// the legal monthly hours per agent, keeping the current night share (half
// when there is no current team). At least one agent is always returned.
func AutoSizeSecurity(billableHours, legalMonthlyHours float64, current Team) Team {
	needed := int(math.Ceil(mathutil.NonNegative(billableHours) / mathutil.Max(1, legalMonthlyHours)))
	if needed < 1 {
		needed = 1
	}

	nightShare := 0.5
	if total := current.Total(); total > 0 {
		nightShare = float64(nonNegativeInt(current.NightAgents)) / float64(total)
	}

	night := int(math.Round(float64(needed) * nightShare))
	return NewTeam(needed, night)
}
