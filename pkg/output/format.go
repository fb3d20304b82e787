// Package output provides utilities for formatting and displaying calculation results.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/staffing-cost/internal/calculator"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type row struct {
	label string
	key   string
}

type section struct {
	title string
	rows  []row
}

var sections = []section{
	{"Rates", []row{
		{"Net hourly", calculator.OutNetHourly},
		{"Employer hourly", calculator.OutEmployerHourly},
		{"Chargeable hourly", calculator.OutChargeableHourly},
		{"Overtime hourly (day)", calculator.OutOTDayHourly},
		{"Overtime hourly (night)", calculator.OutOTNightHourly},
		{"Replacement (computed)", calculator.OutReplacementComputed},
		{"One agent per month", calculator.OutOneAgentMonthly},
		{"Monthly hours ceiling", calculator.OutMonthlyCeiling},
	}},
	{"Security", []row{
		{"Posts", calculator.OutSecPosts},
		{"Coverage hours", calculator.OutSecCoverageHours},
		{"Billable hours", calculator.OutSecBillableHours},
		{"Agents", calculator.OutSecAgents},
		{"Night agents", calculator.OutSecNightAgents},
		{"Capacity", calculator.OutSecCapacity},
		{"Overtime hours", calculator.OutSecOTHours},
		{"Regular cost", calculator.OutSecCostNormal},
		{"Overtime cost (day)", calculator.OutSecCostOTDay},
		{"Overtime cost (night)", calculator.OutSecCostOTNight},
		{"Monthly total", calculator.OutSecTotal},
		{"Status", calculator.OutSecAlert},
	}},
	{"Cleaning", []row{
		{"Agents", calculator.OutClnAgents},
		{"Night agents", calculator.OutClnNightAgents},
		{"Required hours", calculator.OutClnReqHours},
		{"Overtime hours", calculator.OutClnOTHours},
		{"Regular cost", calculator.OutClnCostNormal},
		{"Overtime cost (day)", calculator.OutClnCostOTDay},
		{"Overtime cost (night)", calculator.OutClnCostOTNight},
		{"Monthly total", calculator.OutClnTotal},
		{"Status", calculator.OutClnAlert},
	}},
	{"OPEX", []row{
		{"Consumables", calculator.OutConsumables},
		{"Transport", calculator.OutTransport},
		{"Other fixed", calculator.OutOtherFixed},
		{"Other total", calculator.OutOpexOther},
		{"Monthly OPEX", calculator.OutOpexTotal},
		{"Annual OPEX", calculator.OutOpexExplainAnnual},
	}},
	{"CAPEX", []row{
		{"Security PPE", calculator.OutCapexSec},
		{"Cleaning PPE", calculator.OutCapexCln},
		{"Cleaning equipment", calculator.OutCapexEquip},
		{"CAPEX total", calculator.OutCapexTotal},
		{"Included in month 1", calculator.OutCapexIncluded},
		{"Month 1 total", calculator.OutMonth1Total},
	}},
}

// PrettyFormat writes a human-readable report of the rendered outputs. Rows
// whose output is not in the map are skipped, as are empty sections.
func PrettyFormat(w io.Writer, r calculator.Result, outputs map[string]string) {
	p := message.NewPrinter(language.English)

	_, _ = p.Fprintf(w, "--- Staffing cost (security: %s, cleaning: %s) ---\n", r.Policies.Security, r.Policies.Cleaning)
	for _, s := range sections {
		var lines []string
		for _, rw := range s.rows {
			value, ok := outputs[rw.key]
			if !ok {
				continue
			}
			lines = append(lines, fmt.Sprintf("%-24s | %s", rw.label, value))
		}
		if len(lines) == 0 {
			continue
		}
		_, _ = fmt.Fprintf(w, "\n%s\n", s.title)
		for _, line := range lines {
			_, _ = fmt.Fprintln(w, line)
		}
	}

	_, _ = p.Fprintf(w, "\nOPEX share: security %.1f%%, cleaning %.1f%%, other %.1f%%\n",
		r.Shares.Security*100, r.Shares.Cleaning*100, r.Shares.Other*100)
	_, _ = p.Fprintf(w, "Annual OPEX (raw): %.2f\n", r.Opex.Annual)
}

// CsvFormat writes one "output","value" record per rendered output, in the
// given key order.
func CsvFormat(w io.Writer, keys []string, outputs map[string]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"output", "value"}); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, key := range keys {
		value, ok := outputs[key]
		if !ok {
			continue
		}
		if err := cw.Write([]string{key, value}); err != nil {
			return fmt.Errorf("failed to write csv record %s: %w", key, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// CsvString returns the CSV rendering as a string.
func CsvString(keys []string, outputs map[string]string) string {
	var b strings.Builder
	_ = CsvFormat(&b, keys, outputs)
	return b.String()
}
