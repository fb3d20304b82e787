package snapshot

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/iwvelando/staffing-cost/pkg/constants"
	"github.com/iwvelando/staffing-cost/pkg/mathutil"
)

// Snapshot is an immutable set of field values. Fields without a value read
// as their table default; setters return a modified copy.
type Snapshot struct {
	numbers map[string]float64
	flags   map[string]bool
}

// Defaults returns a snapshot holding every field's default value.
func Defaults() Snapshot {
	s := Snapshot{
		numbers: make(map[string]float64, len(fieldList)),
		flags:   make(map[string]bool),
	}
	for _, f := range fieldList {
		if f.Kind == Flag {
			s.flags[f.Key] = f.Flag
		} else {
			s.numbers[f.Key] = f.Number
		}
	}
	return s
}

// FromStrings builds a snapshot from raw string values over the defaults.
func FromStrings(raw map[string]string) Snapshot {
	return Defaults().Apply(raw)
}

// FromValues builds a snapshot from decoded YAML/JSON values over the defaults.
func FromValues(values map[string]interface{}) Snapshot {
	return Defaults().ApplyValues(values)
}

func (s Snapshot) clone() Snapshot {
	out := Snapshot{
		numbers: make(map[string]float64, len(s.numbers)),
		flags:   make(map[string]bool, len(s.flags)),
	}
	for k, v := range s.numbers {
		out.numbers[k] = v
	}
	for k, v := range s.flags {
		out.flags[k] = v
	}
	return out
}

// Num returns a number field, falling back to its default. Unknown keys read
// as zero.
func (s Snapshot) Num(key string) float64 {
	if v, ok := s.numbers[key]; ok {
		return v
	}
	if f, ok := fieldIndex[key]; ok {
		return f.Number
	}
	return 0
}

// Int returns a number field rounded to the nearest integer.
func (s Snapshot) Int(key string) int {
	return int(math.Round(s.Num(key)))
}

// Flag returns a flag field, falling back to its default.
func (s Snapshot) Flag(key string) bool {
	if v, ok := s.flags[key]; ok {
		return v
	}
	if f, ok := fieldIndex[key]; ok {
		return f.Flag
	}
	return false
}

// WithNumber returns a copy with the number field set. Unknown keys and
// non-finite values are ignored.
func (s Snapshot) WithNumber(key string, value float64) Snapshot {
	f, ok := fieldIndex[key]
	if !ok || f.Kind != Number || math.IsNaN(value) || math.IsInf(value, 0) {
		return s
	}
	out := s.clone()
	out.numbers[key] = value
	return out
}

// WithFlag returns a copy with the flag field set. Unknown keys are ignored.
func (s Snapshot) WithFlag(key string, value bool) Snapshot {
	f, ok := fieldIndex[key]
	if !ok || f.Kind != Flag {
		return s
	}
	out := s.clone()
	out.flags[key] = value
	return out
}

// Set parses a raw form value into the named field. Values that do not parse
// fall back to the field default; unknown keys are ignored.
func (s Snapshot) Set(key, raw string) Snapshot {
	out := s.clone()
	out.set(key, raw)
	return out
}

// Apply sets every raw value in the map.
func (s Snapshot) Apply(raw map[string]string) Snapshot {
	out := s.clone()
	for key, value := range raw {
		out.set(key, value)
	}
	return out
}

// ApplyValues sets every decoded value in the map. Numbers and booleans are
// taken as-is; anything else goes through the raw string parser.
func (s Snapshot) ApplyValues(values map[string]interface{}) Snapshot {
	out := s.clone()
	for key, value := range values {
		switch v := value.(type) {
		case bool:
			out.setTyped(key, boolToFloat(v), v)
		case float64:
			out.setTyped(key, v, v != 0)
		case float32:
			out.setTyped(key, float64(v), v != 0)
		case int:
			out.setTyped(key, float64(v), v != 0)
		case int64:
			out.setTyped(key, float64(v), v != 0)
		case nil:
			out.set(key, "")
		default:
			out.set(key, fmt.Sprint(v))
		}
	}
	return out
}

func (s Snapshot) set(key, raw string) {
	canonical, ok := Canonical(key)
	if !ok {
		return
	}
	f := fieldIndex[canonical]
	if f.Kind == Flag {
		s.flags[canonical] = parseFlag(raw, f.Flag)
		return
	}
	s.numbers[canonical] = parseNumber(raw, f.Number)
}

func (s Snapshot) setTyped(key string, number float64, flag bool) {
	canonical, ok := Canonical(key)
	if !ok {
		return
	}
	f := fieldIndex[canonical]
	if f.Kind == Flag {
		s.flags[canonical] = flag
		return
	}
	if math.IsNaN(number) || math.IsInf(number, 0) {
		number = f.Number
	}
	s.numbers[canonical] = number
}

func parseNumber(raw string, fallback float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}

func parseFlag(raw string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "on", "yes", "checked":
		return true
	case "false", "0", "off", "no":
		return false
	}
	return fallback
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// Normalize returns a copy where every number is non-negative, headcounts and
// posts are whole, the night allocation of each service line is within
// [0, total] and the night hours per day are within a day.
func (s Snapshot) Normalize() Snapshot {
	out := s.clone()
	for _, f := range fieldList {
		if f.Kind == Number {
			out.numbers[f.Key] = mathutil.NonNegative(out.Num(f.Key))
		}
	}
	for _, key := range countKeys {
		out.numbers[key] = math.Round(out.numbers[key])
	}
	out.numbers[KeySecNightAgents] = mathutil.Clamp(out.numbers[KeySecNightAgents], 0, out.numbers[KeySecAgents])
	out.numbers[KeyClnNightAgents] = mathutil.Clamp(out.numbers[KeyClnNightAgents], 0, out.numbers[KeyClnAgents])
	out.numbers[KeyNightHoursPerDay] = mathutil.Clamp(out.numbers[KeyNightHoursPerDay], 0, constants.HoursPerDay)
	return out
}

// String returns the raw form value of a field.
func (s Snapshot) String(key string) string {
	f, ok := fieldIndex[key]
	if !ok {
		return ""
	}
	if f.Kind == Flag {
		return strconv.FormatBool(s.Flag(key))
	}
	return strconv.FormatFloat(s.Num(key), 'f', -1, 64)
}

// Strings returns the raw form value of every field.
func (s Snapshot) Strings() map[string]string {
	out := make(map[string]string, len(fieldList))
	for _, f := range fieldList {
		out[f.Key] = s.String(f.Key)
	}
	return out
}

// Persistable returns the raw form value of every field that may be saved.
// Derived CAPEX subtotals are excluded so they are always recomputed from
// their item tables.
func (s Snapshot) Persistable() map[string]string {
	out := make(map[string]string, len(fieldList))
	for _, f := range fieldList {
		if f.Derived {
			continue
		}
		out[f.Key] = s.String(f.Key)
	}
	return out
}

// Values returns every field as a float64 or bool, keyed by field name.
func (s Snapshot) Values() map[string]interface{} {
	out := make(map[string]interface{}, len(fieldList))
	for _, f := range fieldList {
		if f.Kind == Flag {
			out[f.Key] = s.Flag(f.Key)
		} else {
			out[f.Key] = s.Num(f.Key)
		}
	}
	return out
}

// Equal reports whether both snapshots read the same value for every field.
func (s Snapshot) Equal(other Snapshot) bool {
	for _, f := range fieldList {
		if f.Kind == Flag {
			if s.Flag(f.Key) != other.Flag(f.Key) {
				return false
			}
			continue
		}
		if s.Num(f.Key) != other.Num(f.Key) {
			return false
		}
	}
	return true
}
