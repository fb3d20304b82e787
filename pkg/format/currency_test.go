package format

import (
	"math"
	"testing"
)

func TestMAD(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		decimals int
		expected string
	}{
		{"Whole amount", 6090, 0, "6 090 MAD"},
		{"Hourly rate", 23.54377088, 2, "23,54 MAD"},
		{"Rounded to whole", 5519.6, 0, "5 520 MAD"},
		{"Millions", 1234567.891, 2, "1 234 567,89 MAD"},
		{"Small amount", 120, 0, "120 MAD"},
		{"Zero", 0, 2, "0,00 MAD"},
		{"Negative", -1500.5, 2, "-1 500,50 MAD"},
		{"NaN renders as zero", math.NaN(), 0, "0 MAD"},
		{"Infinity renders as zero", math.Inf(1), 2, "0,00 MAD"},
		{"Unsupported precision uses two decimals", 12.345, 3, "12,35 MAD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MAD(tt.amount, tt.decimals); got != tt.expected {
				t.Errorf("MAD(%v, %d) = %q, expected %q", tt.amount, tt.decimals, got, tt.expected)
			}
		})
	}
}

func TestNumeric(t *testing.T) {
	if got := Numeric(29000, 0); got != "29 000" {
		t.Errorf("Numeric(29000, 0) = %q", got)
	}
	if got := Numeric(-0.004, 2); got != "0,00" {
		t.Errorf("Numeric(-0.004, 2) = %q", got)
	}
}

func TestHours(t *testing.T) {
	tests := []struct {
		hours    float64
		expected string
	}{
		{1337, "1337 h"},
		{1455.84, "1456 h"},
		{0, "0 h"},
		{math.NaN(), "0 h"},
	}

	for _, tt := range tests {
		if got := Hours(tt.hours); got != tt.expected {
			t.Errorf("Hours(%v) = %q, expected %q", tt.hours, got, tt.expected)
		}
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(12.99290780141844); got != "12.99%" {
		t.Errorf("Percent() = %q, expected 12.99%%", got)
	}
	if got := Percent(math.Inf(-1)); got != "0.00%" {
		t.Errorf("Percent(-Inf) = %q, expected 0.00%%", got)
	}
}
