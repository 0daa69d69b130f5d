package enrich

import (
	"strconv"
	"strings"
	"time"

	"github.com/roach88/airdq/internal/record"
)

// Verdict is the outcome of running the DQ rule set against one record.
// Passed is true iff Issues is empty. Issues keep rule-evaluation order
// and a record may accumulate several.
type Verdict struct {
	Passed bool     `json:"passed"`
	Issues []string `json:"issues"`
}

// numericKind classifies a field value for the tolerant numeric check.
// An actual numeric type always qualifies; a textual value qualifies only
// if, after trimming, it is non-empty, not case-insensitively "NA", and a
// valid floating-point literal. "NA" is a known feed sentinel and gets
// its own class so pollutant_avg can special-case it.
type numericKind int

const (
	numericInvalid numericKind = iota
	numericSentinelNA
	numericValue
)

// classifyNumeric returns the kind and, for numericValue, the parsed value.
func classifyNumeric(v record.Value) (numericKind, float64) {
	switch val := v.(type) {
	case nil, record.Null:
		return numericInvalid, 0
	case record.Int:
		return numericValue, float64(val)
	case record.Float:
		return numericValue, float64(val)
	case record.String:
		s := strings.TrimSpace(string(val))
		if s == "" {
			return numericInvalid, 0
		}
		if strings.EqualFold(s, "NA") {
			return numericSentinelNA, 0
		}
		if hasHexPrefix(s) {
			// The feed's numeric grammar is decimal; ParseFloat would
			// otherwise accept hex mantissa forms like "0x1p4".
			return numericInvalid, 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return numericInvalid, 0
		}
		return numericValue, f
	default:
		return numericInvalid, 0
	}
}

// hasHexPrefix reports whether s, after an optional sign, starts with a
// hexadecimal base prefix.
func hasHexPrefix(s string) bool {
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	return strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")
}

// rawText renders a field value for presence checks and issue text.
// Absent and null both render as "null".
func rawText(v record.Value) string {
	switch val := v.(type) {
	case nil, record.Null:
		return "null"
	case record.String:
		return string(val)
	case record.Int:
		return strconv.FormatInt(int64(val), 10)
	case record.Float:
		return record.FormatFloat(float64(val))
	case record.Bool:
		if val {
			return "true"
		}
		return "false"
	default:
		// Composite values: best-effort canonical rendering.
		b, err := record.MarshalCanonical(val)
		if err != nil {
			return "<unrenderable>"
		}
		return string(b)
	}
}

// isBlank reports whether a field counts as missing for the presence rule:
// absent, null, or a string form that trims to empty.
func isBlank(v record.Value, present bool) bool {
	if !present || v == nil {
		return true
	}
	if _, ok := v.(record.Null); ok {
		return true
	}
	return strings.TrimSpace(rawText(v)) == ""
}

// timestampParses reports whether s matches any configured layout.
// The first layout that matches wins; the parsed value is discarded -
// only parsability matters for DQ.
func (r Rules) timestampParses(s string) bool {
	for _, layout := range r.TimestampLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// Check evaluates the full rule set against one record and collects every
// failure as an issue code. No rule short-circuits another; a record with
// several defects reports all of them. Malformed field values never abort
// the run - parse failures become issue codes.
func (r Rules) Check(rec record.Object) Verdict {
	var issues []string

	// 1. Required-field presence.
	for _, field := range r.RequiredFields {
		v, ok := rec[field]
		if isBlank(v, ok) {
			issues = append(issues, "missing:"+field)
		}
	}

	// 2. Timestamp parsability. Runs whenever the key exists, even when
	// rule 1 already flagged it, matching the feed's historical behavior.
	if v, ok := rec["last_update"]; ok {
		trimmed := strings.TrimSpace(rawText(v))
		if !r.timestampParses(trimmed) {
			issues = append(issues, "last_update_unparseable:"+trimmed)
		}
	}

	// 3. Latitude validity. A textual "NA" coordinate is plain non-numeric:
	// coordinates have no valid "not applicable" state, unlike pollutant_avg.
	issues = r.checkCoordinate(rec, "latitude", r.LatitudeMin, r.LatitudeMax, issues)

	// 4. Longitude validity.
	issues = r.checkCoordinate(rec, "longitude", r.LongitudeMin, r.LongitudeMax, issues)

	// 5. Pollutant average: missing and the NA sentinel are tolerated but
	// flagged; anything else must be numeric-like.
	pa, ok := rec["pollutant_avg"]
	switch {
	case isBlank(pa, ok):
		issues = append(issues, "pollutant_avg_missing")
	case strings.EqualFold(strings.TrimSpace(rawText(pa)), "NA"):
		issues = append(issues, "pollutant_avg_NA")
	default:
		if kind, _ := classifyNumeric(pa); kind != numericValue {
			issues = append(issues, "pollutant_avg_not_numeric:"+rawText(pa))
		}
	}

	return Verdict{Passed: len(issues) == 0, Issues: issues}
}

// checkCoordinate applies the numeric-and-in-range rule for one coordinate
// field, appending issue codes to issues.
func (r Rules) checkCoordinate(rec record.Object, field string, min, max float64, issues []string) []string {
	v := rec[field]
	kind, parsed := classifyNumeric(v)
	if kind != numericValue {
		return append(issues, field+"_not_numeric:"+rawText(v))
	}
	// Negated form: NaN fails every comparison, so it counts as out of range.
	if !(parsed >= min && parsed <= max) {
		return append(issues, field+"_out_of_range:"+record.FormatFloat(parsed))
	}
	return issues
}
