package validation

import (
	"fmt"

	"github.com/iwvelando/staffing-cost/pkg/constants"
)

// ValidateStorage checks the storage driver settings and returns warnings.
func ValidateStorage(driver, uri string) []string {
	switch driver {
	case "", constants.StorageDriverMemory, constants.StorageDriverSQLite:
		return nil
	case constants.StorageDriverMongo:
		if uri == "" {
			return []string{"storage driver mongo requires storage.uri"}
		}
		return nil
	}
	return []string{fmt.Sprintf("unknown storage driver %q", driver)}
}

// ValidateProfileVersion warns when a profile was written for a newer build.
func ValidateProfileVersion(name string, version, supported int) string {
	if version > supported {
		return fmt.Sprintf("profile %q version %d is newer than supported version %d", name, version, supported)
	}
	if version < 0 {
		return fmt.Sprintf("profile %q has a negative version %d", name, version)
	}
	return ""
}
