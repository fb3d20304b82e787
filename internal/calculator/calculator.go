// Package calculator recomputes every derived figure of the staffing-cost
// model from an input snapshot.
package calculator

import (
	"fmt"

	"github.com/iwvelando/staffing-cost/internal/snapshot"
	"github.com/iwvelando/staffing-cost/pkg/constants"
	"github.com/iwvelando/staffing-cost/pkg/items"
	"github.com/iwvelando/staffing-cost/pkg/labor"
	"github.com/iwvelando/staffing-cost/pkg/rates"
	"github.com/iwvelando/staffing-cost/pkg/validation"
)

// Policies selects the pricing policy of each service line.
type Policies struct {
	Security string
	Cleaning string
}

// DefaultPolicies is the headcount model for both service lines.
func DefaultPolicies() Policies {
	return Policies{Security: constants.PolicyHeadcount, Cleaning: constants.PolicyHeadcount}
}

// ValidPolicy reports whether name is a known pricing policy.
func ValidPolicy(name string) bool {
	return validation.ValidatePolicy(name) == nil
}

func (p Policies) orDefault() Policies {
	if !ValidPolicy(p.Security) {
		p.Security = constants.PolicyHeadcount
	}
	if !ValidPolicy(p.Cleaning) {
		p.Cleaning = constants.PolicyHeadcount
	}
	return p
}

// ServiceLine is the priced result of one service line.
type ServiceLine struct {
	Label       string
	Team        labor.Team
	Policy      string
	Requirement labor.Requirement
	Rates       rates.RateSet
	Cost        labor.Result
	Status      string
}

// Opex aggregates the recurring monthly costs.
type Opex struct {
	SecurityMonthly    float64
	CleaningMonthly    float64
	ConsumablesMonthly float64
	TransportMonthly   float64
	OtherFixed         float64
	Total              float64
	Annual             float64
}

// Other returns every recurring cost that is not labor.
func (o Opex) Other() float64 {
	return o.ConsumablesMonthly + o.TransportMonthly + o.OtherFixed
}

// Shares are the fractions of the monthly OPEX taken by each cost family.
type Shares struct {
	Security float64
	Cleaning float64
	Other    float64
}

// Result holds every derived figure of one recomputation.
type Result struct {
	Inputs       snapshot.Snapshot
	Policies     Policies
	// Rates are the security line's rates; each ServiceLine carries its own.
	Rates        rates.RateSet
	Replacement  rates.ReplacementBreakdown
	Ceiling      float64
	Security     ServiceLine
	Cleaning     ServiceLine
	Consumables  items.Consumables
	Transport    items.Transport
	Capex        items.Capex
	CapexTotal   float64
	Opex         Opex
	IncludeCapex bool
	Month1Total  float64
	Shares       Shares
}

// Recompute normalizes the snapshot and derives every output from it. It has
// no side effects; the same snapshot and policies always produce the same
// result. The normalized snapshot, including any auto-sized security team, is
// returned in Result.Inputs so callers can write it back.
func Recompute(in snapshot.Snapshot, policies Policies) Result {
	policies = policies.orDefault()
	s := in.Normalize()

	components := rates.Components{
		AnnualLeaveDays:   s.Num(snapshot.KeyAnnualLeaveDays),
		PublicHolidayDays: s.Num(snapshot.KeyPublicHolidayDays),
		WeeklyRestDays:    s.Num(snapshot.KeyWeeklyRestDays),
		SickBufferPercent: s.Num(snapshot.KeySickBuffer),
	}

	secRates := lineRates(s, policies.Security)
	clnRates := lineRates(s, policies.Cleaning)

	legalHours := s.Num(snapshot.KeyLegalMonthlyHours)
	ceiling := labor.MonthlyCeiling(s.Num(snapshot.KeyWeeklyHoursLimit))

	secReq := labor.SecurityCoverage(
		s.Int(snapshot.KeySecPosts),
		s.Num(snapshot.KeySecPaidHoursPerShift),
		s.Num(snapshot.KeyDaysInMonth),
		s.Num(snapshot.KeyNightHoursPerDay),
	)
	secTeam := labor.NewTeam(s.Int(snapshot.KeySecAgents), s.Int(snapshot.KeySecNightAgents))
	if policies.Security == constants.PolicyCoverage && s.Flag(snapshot.KeyAutoSizeSecurity) {
		secTeam = labor.AutoSizeSecurity(secReq.BillableHours, legalHours, secTeam)
		s = s.WithNumber(snapshot.KeySecAgents, float64(secTeam.Total())).
			WithNumber(snapshot.KeySecNightAgents, float64(secTeam.NightAgents))
	}

	clnTeam := labor.NewTeam(s.Int(snapshot.KeyClnAgents), s.Int(snapshot.KeyClnNightAgents))
	clnReq := labor.CleaningRequirement(clnTeam, s.Num(snapshot.KeyClnHoursPerDay), s.Num(snapshot.KeyClnDaysPerMonth))

	secPolicy := servicePolicy(policies.Security, s, secReq, legalHours, ceiling,
		snapshot.KeySecPlannedHours, snapshot.KeySecWeeklyHours)
	clnPolicy := servicePolicy(policies.Cleaning, s, clnReq, legalHours, ceiling,
		snapshot.KeyClnPlannedHours, snapshot.KeyClnWeeklyHours)

	security := priceLine("Security", secTeam, secPolicy, secReq, secRates)
	cleaning := priceLine("Cleaning", clnTeam, clnPolicy, clnReq, clnRates)

	consumables := items.Consumables{
		Itemized:    s.Flag(snapshot.KeyConsumablesItemized),
		Lines:       groupLines(s, snapshot.GroupConsumables),
		ManualTotal: s.Num(snapshot.KeyConsumablesManual),
	}
	transport := items.Transport{
		Buses:        s.Num(snapshot.KeyBusCount),
		TripsPerDay:  s.Num(snapshot.KeyBusTripsPerDay),
		CostPerTrip:  s.Num(snapshot.KeyBusCostPerTrip),
		DaysPerMonth: s.Num(snapshot.KeyBusDaysPerMonth),
	}
	capex := buildCapex(s)
	capexTotal := capex.Total()

	opex := Opex{
		SecurityMonthly:    security.Cost.TotalCost,
		CleaningMonthly:    cleaning.Cost.TotalCost,
		ConsumablesMonthly: consumables.Monthly(),
		TransportMonthly:   transport.Monthly(),
		OtherFixed:         s.Num(snapshot.KeyOtherFixed),
	}
	opex.Total = opex.SecurityMonthly + opex.CleaningMonthly + opex.ConsumablesMonthly + opex.TransportMonthly + opex.OtherFixed
	opex.Annual = opex.Total * constants.MonthsPerYear

	includeCapex := s.Flag(snapshot.KeyIncludeCapex)
	month1 := opex.Total
	if includeCapex {
		month1 += capexTotal
	}

	// Derived subtotals are written back so the returned snapshot reports them.
	for _, g := range capex.Groups {
		if def, ok := snapshot.CatalogGroup(g.Key); ok && def.SubtotalKey != "" {
			s = s.WithNumber(def.SubtotalKey, g.Subtotal())
		}
	}

	return Result{
		Inputs:       s,
		Policies:     policies,
		Rates:        secRates,
		Replacement:  components.Breakdown(),
		Ceiling:      ceiling,
		Security:     security,
		Cleaning:     cleaning,
		Consumables:  consumables,
		Transport:    transport,
		Capex:        capex,
		CapexTotal:   capexTotal,
		Opex:         opex,
		IncludeCapex: includeCapex,
		Month1Total:  month1,
		Shares:       costShares(opex),
	}
}

// lineRates derives the rates of one service line. The headcount and weekly
// models use the single otPremium; the coverage model keeps its separate day
// premium.
func lineRates(s snapshot.Snapshot, policy string) rates.RateSet {
	premium := s.Num(snapshot.KeyOTPremium)
	if policy == constants.PolicyCoverage {
		premium = s.Num(snapshot.KeyOTDayPremium)
	}
	return rates.Derive(rates.Input{
		GrossRate:                   s.Num(snapshot.KeyGrossRate),
		EmployeeDeductionPercent:    s.Num(snapshot.KeyEmployeeDeduction),
		EmployerChargePercent:       s.Num(snapshot.KeyEmployerCharge),
		ReplacementEnabled:          s.Flag(snapshot.KeyReplacementEnabled),
		ReplacementPercent:          s.Num(snapshot.KeyReplacement),
		OvertimePremiumPercent:      premium,
		NightOvertimePremiumPercent: s.Num(snapshot.KeyOTNightPremium),
	})
}

func servicePolicy(name string, s snapshot.Snapshot, req labor.Requirement, legalHours, ceiling float64, plannedKey, weeklyKey string) labor.Policy {
	switch name {
	case constants.PolicyCoverage:
		return labor.CoverageBased{
			RequiredDayHours:     req.DayHours,
			RequiredNightHours:   req.NightHours,
			StandardMonthlyHours: legalHours,
		}
	case constants.PolicyWeekly:
		return labor.WeeklySchedule{
			WeeklyHoursPerAgent: s.Num(weeklyKey),
			WeeklyLimit:         s.Num(snapshot.KeyWeeklyHoursLimit),
		}
	default:
		return labor.HeadcountFlat{
			PlannedMonthlyHours: s.Num(plannedKey),
			MonthlyCeiling:      ceiling,
		}
	}
}

func priceLine(label string, team labor.Team, policy labor.Policy, req labor.Requirement, rs rates.RateSet) ServiceLine {
	cost := policy.Cost(team, rs)
	status := cost.Status(label)
	if !cost.RequiresOvertime() && policy.Name() == constants.PolicyCoverage && label == "Security" {
		status = fmt.Sprintf("%s staffing OK: no overtime required (billable-hours basis).", label)
	}
	return ServiceLine{
		Label:       label,
		Team:        team,
		Policy:      policy.Name(),
		Requirement: req,
		Rates:       rs,
		Cost:        cost,
		Status:      status,
	}
}

func groupLines(s snapshot.Snapshot, groupKey string) []items.Line {
	def, ok := snapshot.CatalogGroup(groupKey)
	if !ok {
		return nil
	}
	lines := make([]items.Line, 0, len(def.Items))
	for _, item := range def.Items {
		lines = append(lines, items.Line{
			Key:       item.Name,
			Label:     item.Label,
			Quantity:  s.Num(def.QuantityKey(item)),
			UnitPrice: s.Num(def.PriceKey(item)),
		})
	}
	return lines
}

func buildCapex(s snapshot.Snapshot) items.Capex {
	var capex items.Capex
	for _, def := range snapshot.Catalog() {
		if !def.Capex {
			continue
		}
		capex.Groups = append(capex.Groups, items.Group{
			Key:   def.Key,
			Label: def.Label,
			Lines: groupLines(s, def.Key),
		})
	}
	return capex
}

func costShares(o Opex) Shares {
	total := o.SecurityMonthly + o.CleaningMonthly + o.Other()
	if total <= 0 {
		return Shares{}
	}
	return Shares{
		Security: o.SecurityMonthly / total,
		Cleaning: o.CleaningMonthly / total,
		Other:    o.Other() / total,
	}
}
