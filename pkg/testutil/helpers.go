// Package testutil provides common utility functions for testing.
package testutil

import (
	"math"
	"strings"
	"testing"
)

// Tolerance is the absolute difference under which two amounts are equal.
const Tolerance = 1e-6

// NearlyEqual reports a test error when got and want differ by more than
// Tolerance.
func NearlyEqual(t testing.TB, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > Tolerance {
		t.Errorf("%s = %v, expected %v", name, got, want)
	}
}

// FindWarning returns the first warning containing substr.
// Returns false if none matches.
func FindWarning(warnings []string, substr string) (string, bool) {
	for _, w := range warnings {
		if strings.Contains(w, substr) {
			return w, true
		}
	}
	return "", false
}
