// Package validation provides common validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/staffing-cost/pkg/constants"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	if format != constants.OutputFormatPretty && format != constants.OutputFormatCSV {
		return fmt.Errorf("expected output format of %s or %s, got %s",
			constants.OutputFormatPretty, constants.OutputFormatCSV, format)
	}
	return nil
}

// ValidatePolicy checks if the pricing policy is one of the supported policies.
func ValidatePolicy(policy string) error {
	switch policy {
	case constants.PolicyHeadcount, constants.PolicyCoverage, constants.PolicyWeekly:
		return nil
	}
	return fmt.Errorf("expected pricing policy of %s, %s or %s, got %s",
		constants.PolicyHeadcount, constants.PolicyCoverage, constants.PolicyWeekly, policy)
}
