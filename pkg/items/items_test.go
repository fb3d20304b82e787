package items

import (
	"math"
	"testing"
)

func securityPPE() Group {
	return Group{
		Key: "secPpe",
		Lines: []Line{
			{Key: "shoes", Quantity: 3, UnitPrice: 550},
			{Key: "vest", Quantity: 3, UnitPrice: 80},
			{Key: "parka", Quantity: 3, UnitPrice: 420},
			{Key: "rain", Quantity: 3, UnitPrice: 180},
			{Key: "light", Quantity: 3, UnitPrice: 150},
			{Key: "radio", Quantity: 2, UnitPrice: 850},
			{Key: "aid", Quantity: 1, UnitPrice: 250},
		},
	}
}

func TestGroupSubtotal(t *testing.T) {
	if got := securityPPE().Subtotal(); got != 6090 {
		t.Fatalf("security PPE subtotal = %v, want 6090", got)
	}
}

func TestLineAmountFloorsNegatives(t *testing.T) {
	tests := []struct {
		name     string
		line     Line
		expected float64
	}{
		{"Regular", Line{Quantity: 2, UnitPrice: 850}, 1700},
		{"Negative quantity", Line{Quantity: -2, UnitPrice: 850}, 0},
		{"Negative price", Line{Quantity: 2, UnitPrice: -850}, 0},
		{"NaN quantity", Line{Quantity: math.NaN(), UnitPrice: 10}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.line.Amount(); got != tt.expected {
				t.Errorf("Amount() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCapexTotalEqualsGroupSum(t *testing.T) {
	capex := Capex{Groups: []Group{
		securityPPE(),
		{Key: "clnPpe", Lines: []Line{{Quantity: 6, UnitPrice: 300}, {Quantity: 6, UnitPrice: 300}}},
		{Key: "equip", Lines: []Line{{Quantity: 1, UnitPrice: 18000}}},
	}}

	sum := 0.0
	for _, g := range capex.Groups {
		sum += g.Subtotal()
	}
	if capex.Total() != sum || sum != 6090+3600+18000 {
		t.Fatalf("total = %v, group sum = %v", capex.Total(), sum)
	}
	if capex.Subtotal("clnPpe") != 3600 {
		t.Fatalf("clnPpe subtotal = %v", capex.Subtotal("clnPpe"))
	}
	if capex.Subtotal("missing") != 0 {
		t.Fatalf("missing group subtotal = %v", capex.Subtotal("missing"))
	}
}

func TestCapexChangeIsolatedToGroup(t *testing.T) {
	base := Capex{Groups: []Group{securityPPE(), {Key: "equip", Lines: []Line{{Quantity: 2, UnitPrice: 3500}}}}}

	edited := Capex{Groups: []Group{securityPPE(), base.Groups[1]}}
	edited.Groups[0].Lines[5].Quantity = 3

	if edited.Subtotal("equip") != base.Subtotal("equip") {
		t.Fatalf("untouched group changed: %v != %v", edited.Subtotal("equip"), base.Subtotal("equip"))
	}
	if diff := edited.Subtotal("secPpe") - base.Subtotal("secPpe"); diff != 850 {
		t.Fatalf("edited group delta = %v, want 850", diff)
	}
	if diff := edited.Total() - base.Total(); diff != 850 {
		t.Fatalf("total delta = %v, want 850", diff)
	}
}

func TestConsumablesModes(t *testing.T) {
	lines := []Line{
		{Quantity: 20, UnitPrice: 45},
		{Quantity: 15, UnitPrice: 60},
		{Quantity: 20, UnitPrice: 35},
		{Quantity: 12, UnitPrice: 45},
	}

	itemized := Consumables{Itemized: true, Lines: lines, ManualTotal: 999}
	if got := itemized.Monthly(); got != 3040 {
		t.Errorf("itemized monthly = %v, want 3040", got)
	}

	manual := Consumables{Itemized: false, Lines: lines, ManualTotal: 2500}
	if got := manual.Monthly(); got != 2500 {
		t.Errorf("manual monthly = %v, want 2500", got)
	}

	negative := Consumables{ManualTotal: -10}
	if got := negative.Monthly(); got != 0 {
		t.Errorf("negative manual monthly = %v, want 0", got)
	}
}

func TestTransportMonthly(t *testing.T) {
	tests := []struct {
		name      string
		transport Transport
		expected  float64
	}{
		{"Default shuttle", Transport{Buses: 1, TripsPerDay: 2, CostPerTrip: 120, DaysPerMonth: 23}, 5520},
		{"Two buses", Transport{Buses: 2, TripsPerDay: 2, CostPerTrip: 120, DaysPerMonth: 23}, 11040},
		{"No buses", Transport{TripsPerDay: 2, CostPerTrip: 120, DaysPerMonth: 23}, 0},
		{"Negative cost floored", Transport{Buses: 1, TripsPerDay: 2, CostPerTrip: -120, DaysPerMonth: 23}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.transport.Monthly(); got != tt.expected {
				t.Errorf("Monthly() = %v, want %v", got, tt.expected)
			}
		})
	}
}
