// Package rates derives the hourly labor rates used to price a service line.
package rates

import (
	"github.com/iwvelando/staffing-cost/pkg/mathutil"
)

// Input holds the payroll parameters. Deduction, charge, replacement and
// premium values are percentages (6.74 means 6.74%).
type Input struct {
	GrossRate                   float64
	EmployeeDeductionPercent    float64
	EmployerChargePercent       float64
	ReplacementEnabled          bool
	ReplacementPercent          float64
	OvertimePremiumPercent      float64
	NightOvertimePremiumPercent float64
}

// RateSet holds every hourly rate derived from an Input.
type RateSet struct {
	Gross    float64
	Net      float64
	Employer float64
	// Replacement is the applied coefficient as a fraction; zero when disabled.
	Replacement   float64
	Chargeable    float64
	Overtime      float64
	NightOvertime float64
}

// Derive computes the RateSet for the given payroll parameters. Every rate is
// floored at zero so malformed inputs never produce negative prices.
func Derive(in Input) RateSet {
	gross := mathutil.NonNegative(in.GrossRate)
	net := mathutil.NonNegative(gross * (1 - mathutil.Fraction(in.EmployeeDeductionPercent)))
	employer := mathutil.NonNegative(gross * (1 + mathutil.Fraction(in.EmployerChargePercent)))

	replacement := 0.0
	if in.ReplacementEnabled {
		replacement = mathutil.Fraction(in.ReplacementPercent)
	}
	chargeable := mathutil.NonNegative(employer * (1 + replacement))

	return RateSet{
		Gross:         gross,
		Net:           net,
		Employer:      employer,
		Replacement:   replacement,
		Chargeable:    chargeable,
		Overtime:      mathutil.NonNegative(chargeable * (1 + mathutil.Fraction(in.OvertimePremiumPercent))),
		NightOvertime: mathutil.NonNegative(chargeable * (1 + mathutil.Fraction(in.NightOvertimePremiumPercent))),
	}
}

// MonthlyAgentCost is the chargeable cost of one agent working the given
// monthly hours with no overtime.
func (r RateSet) MonthlyAgentCost(monthlyHours float64) float64 {
	return mathutil.NonNegative(monthlyHours) * r.Chargeable
}
