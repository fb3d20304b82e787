package labor

import (
	"fmt"
	"math"

	"github.com/iwvelando/staffing-cost/pkg/constants"
	"github.com/iwvelando/staffing-cost/pkg/mathutil"
	"github.com/iwvelando/staffing-cost/pkg/rates"
)

// Team is the headcount of one service line. Day agents are the total minus
// the night allocation.
type Team struct {
	DayAgents   int
	NightAgents int
}

// NewTeam builds a Team from a total headcount and its night allocation,
// clamping the night count to [0, total].
func NewTeam(total, night int) Team {
	if total < 0 {
		total = 0
	}
	if night < 0 {
		night = 0
	}
	if night > total {
		night = total
	}
	return Team{DayAgents: total - night, NightAgents: night}
}

// Total returns the full headcount.
func (t Team) Total() int {
	return nonNegativeInt(t.DayAgents) + nonNegativeInt(t.NightAgents)
}

// Result is the monthly labor cost of one service line.
type Result struct {
	Policy string

	CapacityHours      float64
	RegularHours       float64
	DayOvertimeHours   float64
	NightOvertimeHours float64

	RegularCost       float64
	DayOvertimeCost   float64
	NightOvertimeCost float64
	TotalCost         float64
}

// OvertimeHours returns the day and night overtime hours combined.
func (r Result) OvertimeHours() float64 {
	return r.DayOvertimeHours + r.NightOvertimeHours
}

// OvertimeCost returns the day and night overtime cost combined.
func (r Result) OvertimeCost() float64 {
	return r.DayOvertimeCost + r.NightOvertimeCost
}

// RequiresOvertime reports whether any overtime hour was priced.
func (r Result) RequiresOvertime() bool {
	return r.OvertimeHours() > 0
}

// Status returns the informational staffing message for the service line.
func (r Result) Status(label string) string {
	if !r.RequiresOvertime() {
		return fmt.Sprintf("%s staffing OK: no overtime required.", label)
	}
	return fmt.Sprintf("%s OT required: %d h (Day: %d h | Night: %d h).",
		label,
		int64(math.Round(r.OvertimeHours())),
		int64(math.Round(r.DayOvertimeHours)),
		int64(math.Round(r.NightOvertimeHours)),
	)
}

func (r Result) finish() Result {
	r.TotalCost = r.RegularCost + r.DayOvertimeCost + r.NightOvertimeCost
	return r
}

// Policy prices a team for one month.
type Policy interface {
	Name() string
	Cost(team Team, rs rates.RateSet) Result
}

// HeadcountFlat prices every agent at the same planned monthly hours, with
// overtime only above the monthly ceiling. Night agents are priced exactly
// like day agents; overtime is attributed to day and night pro rata.
type HeadcountFlat struct {
	PlannedMonthlyHours float64
	MonthlyCeiling      float64
}

// Name implements Policy.
func (HeadcountFlat) Name() string { return constants.PolicyHeadcount }

// Cost implements Policy.
func (p HeadcountFlat) Cost(team Team, rs rates.RateSet) Result {
	return priceUniform(p.Name(), team, rs, SplitMonthlyHours(p.PlannedMonthlyHours, p.MonthlyCeiling))
}

// WeeklySchedule prices a weekly schedule per agent. Hours above the weekly
// limit are overtime; both parts are converted to monthly hours.
type WeeklySchedule struct {
	WeeklyHoursPerAgent float64
	WeeklyLimit         float64
}

// Name implements Policy.
func (WeeklySchedule) Name() string { return constants.PolicyWeekly }

// Cost implements Policy.
func (p WeeklySchedule) Cost(team Team, rs rates.RateSet) Result {
	return priceUniform(p.Name(), team, rs, SplitWeeklyHours(p.WeeklyHoursPerAgent, p.WeeklyLimit))
}

func priceUniform(name string, team Team, rs rates.RateSet, split HourSplit) Result {
	agents := float64(team.Total())
	overtime := agents * split.Overtime
	nightShare := mathutil.Share(float64(nonNegativeInt(team.NightAgents)), agents)

	r := Result{
		Policy:             name,
		CapacityHours:      agents * split.Regular,
		RegularHours:       agents * split.Regular,
		DayOvertimeHours:   overtime * (1 - nightShare),
		NightOvertimeHours: overtime * nightShare,
	}
	r.RegularCost = r.RegularHours * rs.Chargeable
	r.DayOvertimeCost = r.DayOvertimeHours * rs.Overtime
	r.NightOvertimeCost = r.NightOvertimeHours * rs.Overtime
	return r.finish()
}

// CoverageBased compares the hours a site requires against the capacity of
// the team (agents x standard monthly hours). Any shortfall is overtime, with
// night shortfall priced at the night overtime rate.
type CoverageBased struct {
	RequiredDayHours     float64
	RequiredNightHours   float64
	StandardMonthlyHours float64
}

// Name implements Policy.
func (CoverageBased) Name() string { return constants.PolicyCoverage }

// Cost implements Policy.
func (p CoverageBased) Cost(team Team, rs rates.RateSet) Result {
	standard := mathutil.NonNegative(p.StandardMonthlyHours)
	reqDay := mathutil.NonNegative(p.RequiredDayHours)
	reqNight := mathutil.NonNegative(p.RequiredNightHours)

	capDay := float64(nonNegativeInt(team.DayAgents)) * standard
	capNight := float64(nonNegativeInt(team.NightAgents)) * standard

	r := Result{
		Policy:             p.Name(),
		CapacityHours:      capDay + capNight,
		RegularHours:       mathutil.Min(reqDay, capDay) + mathutil.Min(reqNight, capNight),
		DayOvertimeHours:   mathutil.Max(0, reqDay-capDay),
		NightOvertimeHours: mathutil.Max(0, reqNight-capNight),
	}
	r.RegularCost = r.RegularHours * rs.Chargeable
	r.DayOvertimeCost = r.DayOvertimeHours * rs.Overtime
	r.NightOvertimeCost = r.NightOvertimeHours * rs.NightOvertime
	return r.finish()
}

func nonNegativeInt(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
