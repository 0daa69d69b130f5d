package enrich

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rules configures the data-quality rule set. The zero value is not
// usable; start from DefaultRules and override.
type Rules struct {
	// RequiredFields are checked for presence, in order.
	RequiredFields []string `yaml:"required_fields"`

	// TimestampLayouts are tried in order against last_update.
	// Go reference-time syntax.
	TimestampLayouts []string `yaml:"timestamp_layouts"`

	// Inclusive coordinate bounds.
	LatitudeMin  float64 `yaml:"latitude_min"`
	LatitudeMax  float64 `yaml:"latitude_max"`
	LongitudeMin float64 `yaml:"longitude_min"`
	LongitudeMax float64 `yaml:"longitude_max"`
}

// DefaultRules returns the built-in rule set for the national AQI feed.
func DefaultRules() Rules {
	return Rules{
		RequiredFields: []string{
			"country", "state", "city", "station", "last_update",
			"latitude", "longitude", "pollutant_id", "pollutant_avg",
		},
		TimestampLayouts: []string{
			"02-01-2006 15:04:05",
			"2006-01-02T15:04:05Z",
			"02/01/2006 15:04:05",
		},
		LatitudeMin:  -90.0,
		LatitudeMax:  90.0,
		LongitudeMin: -180.0,
		LongitudeMax: 180.0,
	}
}

// LoadRules reads a YAML rules file and overlays it on DefaultRules.
// Fields absent from the file keep their defaults.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()

	data, err := os.ReadFile(path)
	if err != nil {
		return rules, fmt.Errorf("reading rules file: %w", err)
	}

	if err := yaml.Unmarshal(data, &rules); err != nil {
		return rules, fmt.Errorf("parsing rules file %s: %w", path, err)
	}

	if len(rules.RequiredFields) == 0 || len(rules.TimestampLayouts) == 0 {
		return rules, fmt.Errorf("rules file %s: required_fields and timestamp_layouts must be non-empty", path)
	}
	if rules.LatitudeMin > rules.LatitudeMax {
		return rules, fmt.Errorf("rules file %s: latitude_min exceeds latitude_max", path)
	}
	if rules.LongitudeMin > rules.LongitudeMax {
		return rules, fmt.Errorf("rules file %s: longitude_min exceeds longitude_max", path)
	}

	return rules, nil
}
