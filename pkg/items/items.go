// Package items sums itemized costs: CAPEX equipment groups, cleaning
// consumables and staff transport.
package items

import (
	"github.com/iwvelando/staffing-cost/pkg/mathutil"
)

// Line is one priced item. Quantities and unit prices below zero count as zero.
type Line struct {
	Key       string
	Label     string
	Quantity  float64
	UnitPrice float64
}

// Amount returns Quantity x UnitPrice.
func (l Line) Amount() float64 {
	return mathutil.NonNegative(l.Quantity) * mathutil.NonNegative(l.UnitPrice)
}

// Sum adds the amounts of all lines.
func Sum(lines []Line) float64 {
	total := 0.0
	for _, line := range lines {
		total += line.Amount()
	}
	return total
}

// Group is a named list of lines with a derived subtotal.
type Group struct {
	Key   string
	Label string
	Lines []Line
}

// Subtotal returns the sum of the group's line amounts.
func (g Group) Subtotal() float64 {
	return Sum(g.Lines)
}

// Capex holds the one-time equipment groups.
type Capex struct {
	Groups []Group
}

// Total returns the sum of every group subtotal.
func (c Capex) Total() float64 {
	total := 0.0
	for _, g := range c.Groups {
		total += g.Subtotal()
	}
	return total
}

// Subtotal returns the subtotal of the group with the given key, or zero.
func (c Capex) Subtotal(key string) float64 {
	for _, g := range c.Groups {
		if g.Key == key {
			return g.Subtotal()
		}
	}
	return 0
}

// Consumables is the monthly cleaning products budget, either itemized or a
// single manual total.
type Consumables struct {
	Itemized    bool
	Lines       []Line
	ManualTotal float64
}

// Monthly returns the consumables cost for the selected sourcing mode.
func (c Consumables) Monthly() float64 {
	if c.Itemized {
		return Sum(c.Lines)
	}
	return mathutil.NonNegative(c.ManualTotal)
}

// Transport is the staff shuttle service.
type Transport struct {
	Buses        float64
	TripsPerDay  float64
	CostPerTrip  float64
	DaysPerMonth float64
}

// Monthly returns buses x trips x cost x days.
func (t Transport) Monthly() float64 {
	return mathutil.NonNegative(t.Buses) *
		mathutil.NonNegative(t.TripsPerDay) *
		mathutil.NonNegative(t.CostPerTrip) *
		mathutil.NonNegative(t.DaysPerMonth)
}
