// Package snapshot defines the named input fields of the calculator, their
// defaults, and an immutable snapshot of their current values.
package snapshot

import (
	"strings"
)

// Kind is the value type of a field.
type Kind int

const (
	// Number fields hold a float64.
	Number Kind = iota
	// Flag fields hold a bool.
	Flag
)

// String returns the kind name used in the API field listing.
func (k Kind) String() string {
	if k == Flag {
		return "flag"
	}
	return "number"
}

// Field describes one named input.
type Field struct {
	Key     string
	Kind    Kind
	Number  float64
	Flag    bool
	Derived bool
}

// Field keys read by the calculator.
const (
	KeyGrossRate          = "smig"
	KeyEmployeeDeduction  = "empDedRate"
	KeyEmployerCharge     = "employerRate"
	KeyLegalMonthlyHours  = "legalMonthlyHours"
	KeyReplacementEnabled = "replacementEnabled"
	KeyReplacement        = "replacement"
	KeyAnnualLeaveDays    = "annualLeaveDaysPerYear"
	KeyPublicHolidayDays  = "publicHolidaysDaysPerYear"
	KeyWeeklyRestDays     = "weeklyRestDaysPerYear"
	KeySickBuffer         = "sickAbsenceBufferPercent"

	KeyWeeklyHoursLimit = "weeklyHoursLimit"
	KeyOTPremium        = "otPremium"
	KeyOTDayPremium     = "otDayPremium"
	KeyOTNightPremium   = "otNightPremium"
	KeyNightHoursPerDay = "nightHoursPerDay"

	KeySecAgents            = "secAgents"
	KeySecNightAgents       = "secNightAgents"
	KeySecPlannedHours      = "secPlannedHours"
	KeySecWeeklyHours       = "secWeeklyHours"
	KeyDaysInMonth          = "daysInMonth"
	KeySecPosts             = "secPosts"
	KeyAutoSizeSecurity     = "autoSizeSecurity"
	KeySecPaidHoursPerShift = "secPaidHoursPerShift"

	KeyClnAgents       = "clnAgents"
	KeyClnNightAgents  = "clnNightAgents"
	KeyClnPlannedHours = "clnPlannedHours"
	KeyClnWeeklyHours  = "clnWeeklyHours"
	KeyClnHoursPerDay  = "clnHoursPerDay"
	KeyClnDaysPerMonth = "clnDaysPerMonth"

	KeyConsumablesItemized = "consumablesItemized"
	KeyConsumablesManual   = "clnProducts"

	KeyBusCount        = "busCount"
	KeyBusTripsPerDay  = "busTripsPerDay"
	KeyBusCostPerTrip  = "busCostPerTrip"
	KeyBusDaysPerMonth = "busDaysPerMonth"

	KeySecPpeCapex = "secPpeCapex"
	KeyClnPpeCapex = "clnPpeCapex"
	KeyEquipCapex  = "equipCapex"

	KeyOtherFixed   = "otherFixed"
	KeyIncludeCapex = "includeCapex"
)

func num(key string, def float64) Field { return Field{Key: key, Kind: Number, Number: def} }
func flag(key string, def bool) Field { return Field{Key: key, Kind: Flag, Flag: def} }
func derived(key string, def float64) Field { return Field{Key: key, Kind: Number, Number: def, Derived: true} }

var scalarFields = []Field{
	// Payroll
	num(KeyGrossRate, 17.92),
	num(KeyEmployeeDeduction, 6.74),
	num(KeyEmployerCharge, 21.09),
	num(KeyLegalMonthlyHours, 191),

	// Replacement coefficient
	flag(KeyReplacementEnabled, true),
	num(KeyReplacement, 8.50),
	num(KeyAnnualLeaveDays, 18),
	num(KeyPublicHolidayDays, 13),
	num(KeyWeeklyRestDays, 52),
	num(KeySickBuffer, 2.0),

	// Overtime
	num(KeyWeeklyHoursLimit, 48),
	num(KeyOTPremium, 25),
	num(KeyOTDayPremium, 25),
	num(KeyOTNightPremium, 50),
	num(KeyNightHoursPerDay, 12),

	// Security
	num(KeySecAgents, 7),
	num(KeySecNightAgents, 2),
	num(KeySecPlannedHours, 191),
	num(KeySecWeeklyHours, 44),
	num(KeyDaysInMonth, 30.33),
	num(KeySecPosts, 2),
	flag(KeyAutoSizeSecurity, false),
	num(KeySecPaidHoursPerShift, 10),

	// Cleaning
	num(KeyClnAgents, 6),
	num(KeyClnNightAgents, 0),
	num(KeyClnPlannedHours, 191),
	num(KeyClnWeeklyHours, 44),
	num(KeyClnHoursPerDay, 8),
	num(KeyClnDaysPerMonth, 22),

	// Consumables
	flag(KeyConsumablesItemized, true),
	num(KeyConsumablesManual, 3040),

	// Transport
	num(KeyBusCount, 1),
	num(KeyBusTripsPerDay, 2),
	num(KeyBusCostPerTrip, 120),
	num(KeyBusDaysPerMonth, 23),

	// CAPEX subtotals are recomputed from the item tables and never persisted.
	derived(KeySecPpeCapex, 6090),
	derived(KeyClnPpeCapex, 3600),
	derived(KeyEquipCapex, 29000),

	num(KeyOtherFixed, 0),
	flag(KeyIncludeCapex, true),
}

// countKeys are rounded to whole agents or posts during normalization.
var countKeys = []string{KeySecAgents, KeySecNightAgents, KeySecPosts, KeyClnAgents, KeyClnNightAgents}

var (
	fieldList  []Field
	fieldIndex map[string]Field
	lowerIndex map[string]string
)

func init() {
	fieldList = append(fieldList, scalarFields...)
	for _, group := range Catalog() {
		fieldList = append(fieldList, group.fields()...)
	}

	fieldIndex = make(map[string]Field, len(fieldList))
	lowerIndex = make(map[string]string, len(fieldList))
	for _, f := range fieldList {
		fieldIndex[f.Key] = f
		lowerIndex[strings.ToLower(f.Key)] = f.Key
	}
}

// Fields returns the full field table in display order.
func Fields() []Field {
	out := make([]Field, len(fieldList))
	copy(out, fieldList)
	return out
}

// Lookup returns the field with the given key.
func Lookup(key string) (Field, bool) {
	f, ok := fieldIndex[key]
	return f, ok
}

// Canonical resolves a key case-insensitively to its canonical spelling.
func Canonical(key string) (string, bool) {
	if _, ok := fieldIndex[key]; ok {
		return key, true
	}
	canonical, ok := lowerIndex[strings.ToLower(strings.TrimSpace(key))]
	return canonical, ok
}
