package calculator

import (
	"fmt"
	"sort"

	"github.com/iwvelando/staffing-cost/internal/snapshot"
	"github.com/iwvelando/staffing-cost/pkg/constants"
	"github.com/iwvelando/staffing-cost/pkg/format"
)

// Output keys produced by Render.
const (
	OutReplacementComputed = "replacementComputedDisplay"
	OutNetHourly           = "netHourly"
	OutEmployerHourly      = "employerHourly"
	OutChargeableHourly    = "chargeableHourly"
	OutOTDayHourly         = "otDayHourly"
	OutOTNightHourly       = "otNightHourly"
	OutOneAgentMonthly     = "oneAgentMonthlyCost"
	OutMonthlyCeiling      = "monthlyCeilingHours"

	OutSecPosts         = "secPostsVal"
	OutSecCoverageHours = "secCoverageHours"
	OutSecBillableHours = "secBillableHours"
	OutSecAgents        = "secAgentsVal"
	OutSecNightAgents   = "secNightAgentsVal"
	OutSecDayAgents     = "secDayAgentsOut"
	OutSecCapacity      = "secCapacity"
	OutSecOTHours       = "secOtHours"
	OutSecAlert         = "secOtAlert"
	OutSecCostNormal    = "secCostNormal"
	OutSecCostOTDay     = "secCostOtDay"
	OutSecCostOTNight   = "secCostOtNight"
	OutSecDetail        = "secDetailLine"
	OutSecTotal         = "secTotal"

	OutClnAgents      = "clnAgentsVal"
	OutClnNightAgents = "clnNightAgentsVal"
	OutClnDayAgents   = "clnDayAgentsOut"
	OutClnReqHours    = "clnReqHours"
	OutClnOTHours     = "clnOtHours"
	OutClnAlert       = "clnOtAlert"
	OutClnCostNormal  = "clnCostNormal"
	OutClnCostOTDay   = "clnCostOtDay"
	OutClnCostOTNight = "clnCostOtNight"
	OutClnDetail      = "clnDetailLine"
	OutClnTotal       = "clnTotal"

	OutConsumables = "consumables"
	OutTransport   = "transportMonthly"
	OutOtherFixed  = "otherFixedOut"
	OutOpexOther   = "opexOther"
	OutOpexTotal   = "opexTotal"
	OutOpexAnnual  = "opexAnnual"

	OutCapexSec      = "capexSec"
	OutCapexCln      = "capexCln"
	OutCapexEquip    = "capexEq"
	OutCapexTotal    = "capexTotal"
	OutCapexIncluded = "capexIncludedText"
	OutMonth1Total   = "month1Total"

	OutKPIOpexMonthly     = "kpiOpexMonthly"
	OutKPIMonth1          = "kpiMonth1"
	OutOpexExplainMonthly = "opexExplainMonthly"
	OutOpexExplainAnnual  = "opexExplainAnnual"
	OutCapexExplainTotal  = "capexExplainTotal"
	OutMonth1ExplainTotal = "month1ExplainTotal"

	OutDonutSecurity = "donutP1"
	OutDonutCleaning = "donutP2"
)

var outputKeys = []string{
	OutReplacementComputed, OutNetHourly, OutEmployerHourly, OutChargeableHourly,
	OutOTDayHourly, OutOTNightHourly, OutOneAgentMonthly, OutMonthlyCeiling,

	OutSecPosts, OutSecCoverageHours, OutSecBillableHours, OutSecAgents, OutSecNightAgents,
	OutSecDayAgents, OutSecCapacity, OutSecOTHours, OutSecAlert, OutSecCostNormal,
	OutSecCostOTDay, OutSecCostOTNight, OutSecDetail, OutSecTotal,

	OutClnAgents, OutClnNightAgents, OutClnDayAgents, OutClnReqHours, OutClnOTHours,
	OutClnAlert, OutClnCostNormal, OutClnCostOTDay, OutClnCostOTNight, OutClnDetail, OutClnTotal,

	OutConsumables, OutTransport, OutOtherFixed, OutOpexOther, OutOpexTotal, OutOpexAnnual,

	OutCapexSec, OutCapexCln, OutCapexEquip, OutCapexTotal, OutCapexIncluded, OutMonth1Total,

	OutKPIOpexMonthly, OutKPIMonth1, OutOpexExplainMonthly, OutOpexExplainAnnual,
	OutCapexExplainTotal, OutMonth1ExplainTotal,

	OutDonutSecurity, OutDonutCleaning,
}

// OutputKeys returns every output key in display order.
func OutputKeys() []string {
	out := make([]string, len(outputKeys))
	copy(out, outputKeys)
	return out
}

// Capabilities is the versioned set of optional outputs a deployment profile
// displays. An empty set supports every output.
type Capabilities struct {
	Version int
	outputs map[string]bool
}

// NewCapabilities builds a capability set from a list of output keys.
// Unknown keys are returned so callers can report them.
func NewCapabilities(version int, outputs []string) (Capabilities, []string) {
	known := make(map[string]bool, len(outputKeys))
	for _, key := range outputKeys {
		known[key] = true
	}

	caps := Capabilities{Version: version}
	var unknown []string
	for _, key := range outputs {
		if !known[key] {
			unknown = append(unknown, key)
			continue
		}
		if caps.outputs == nil {
			caps.outputs = make(map[string]bool, len(outputs))
		}
		caps.outputs[key] = true
	}
	sort.Strings(unknown)
	return caps, unknown
}

// Supports reports whether the profile displays the output.
func (c Capabilities) Supports(key string) bool {
	if len(c.outputs) == 0 {
		return true
	}
	return c.outputs[key]
}

// Render formats every output of r the profile supports. Amounts use the MAD
// currency format and hour counts render as whole hours.
func Render(r Result, caps Capabilities) map[string]string {
	all := renderAll(r)
	out := make(map[string]string, len(all))
	for _, key := range outputKeys {
		if caps.Supports(key) {
			out[key] = all[key]
		}
	}
	return out
}

func renderAll(r Result) map[string]string {
	legal := r.Inputs.Num(snapshot.KeyLegalMonthlyHours)
	sec, cln := r.Security, r.Cleaning
	money := func(v float64) string { return format.MAD(v, 0) }

	return map[string]string{
		OutReplacementComputed: format.Percent(r.Replacement.Percent),
		OutNetHourly:           format.MAD(r.Rates.Net, 2),
		OutEmployerHourly:      format.MAD(r.Rates.Employer, 2),
		OutChargeableHourly:    format.MAD(r.Rates.Chargeable, 2),
		OutOTDayHourly:         format.MAD(r.Rates.Overtime, 2),
		OutOTNightHourly:       format.MAD(r.Rates.NightOvertime, 2),
		OutOneAgentMonthly:     money(r.Rates.MonthlyAgentCost(legal)),
		OutMonthlyCeiling:      format.Hours(r.Ceiling),

		OutSecPosts:         format.Count(r.Inputs.Int(snapshot.KeySecPosts)),
		OutSecCoverageHours: format.Hours(sec.Requirement.CoverageHours),
		OutSecBillableHours: format.Hours(sec.Requirement.BillableHours),
		OutSecAgents:        format.Count(sec.Team.Total()),
		OutSecNightAgents:   format.Count(sec.Team.NightAgents),
		OutSecDayAgents:     fmt.Sprintf("%d day", sec.Team.DayAgents),
		OutSecCapacity:      format.Hours(sec.Cost.CapacityHours),
		OutSecOTHours:       format.Hours(sec.Cost.OvertimeHours()),
		OutSecAlert:         sec.Status,
		OutSecCostNormal:    money(sec.Cost.RegularCost),
		OutSecCostOTDay:     money(sec.Cost.DayOvertimeCost),
		OutSecCostOTNight:   money(sec.Cost.NightOvertimeCost),
		OutSecDetail:        detailLine(sec),
		OutSecTotal:         money(r.Opex.SecurityMonthly),

		OutClnAgents:      format.Count(cln.Team.Total()),
		OutClnNightAgents: format.Count(cln.Team.NightAgents),
		OutClnDayAgents:   fmt.Sprintf("%d day", cln.Team.DayAgents),
		OutClnReqHours:    format.Hours(cln.Requirement.DayHours + cln.Requirement.NightHours),
		OutClnOTHours:     format.Hours(cln.Cost.OvertimeHours()),
		OutClnAlert:       cln.Status,
		OutClnCostNormal:  money(cln.Cost.RegularCost),
		OutClnCostOTDay:   money(cln.Cost.DayOvertimeCost),
		OutClnCostOTNight: money(cln.Cost.NightOvertimeCost),
		OutClnDetail:      detailLine(cln),
		OutClnTotal:       money(r.Opex.CleaningMonthly),

		OutConsumables: money(r.Opex.ConsumablesMonthly),
		OutTransport:   money(r.Opex.TransportMonthly),
		OutOtherFixed:  money(r.Opex.OtherFixed),
		OutOpexOther:   money(r.Opex.Other()),
		OutOpexTotal:   money(r.Opex.Total),
		OutOpexAnnual:  "Annual OPEX (NET): " + money(r.Opex.Annual),

		OutCapexSec:      money(r.Capex.Subtotal(snapshot.GroupSecurityPPE)),
		OutCapexCln:      money(r.Capex.Subtotal(snapshot.GroupCleaningPPE)),
		OutCapexEquip:    money(r.Capex.Subtotal(snapshot.GroupEquipment)),
		OutCapexTotal:    money(r.CapexTotal),
		OutCapexIncluded: yesNo(r.IncludeCapex),
		OutMonth1Total:   money(r.Month1Total),

		OutKPIOpexMonthly:     money(r.Opex.Total),
		OutKPIMonth1:          money(r.Month1Total),
		OutOpexExplainMonthly: money(r.Opex.Total),
		OutOpexExplainAnnual:  money(r.Opex.Annual),
		OutCapexExplainTotal:  money(r.CapexTotal),
		OutMonth1ExplainTotal: money(r.Month1Total),

		// The chart takes cumulative stops.
		OutDonutSecurity: format.Percent(r.Shares.Security * constants.PercentageMultiplier),
		OutDonutCleaning: format.Percent((r.Shares.Security + r.Shares.Cleaning) * constants.PercentageMultiplier),
	}
}

func detailLine(line ServiceLine) string {
	return fmt.Sprintf("Normal: %s | OT day: %s | OT night: %s",
		format.MAD(line.Cost.RegularCost, 0),
		format.MAD(line.Cost.DayOvertimeCost, 0),
		format.MAD(line.Cost.NightOvertimeCost, 0),
	)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
