package enrich

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/airdq/internal/record"
)

func TestDefaultRules(t *testing.T) {
	r := DefaultRules()

	assert.Equal(t, []string{
		"country", "state", "city", "station", "last_update",
		"latitude", "longitude", "pollutant_id", "pollutant_avg",
	}, r.RequiredFields)
	assert.Len(t, r.TimestampLayouts, 3)
	assert.Equal(t, -90.0, r.LatitudeMin)
	assert.Equal(t, 90.0, r.LatitudeMax)
	assert.Equal(t, -180.0, r.LongitudeMin)
	assert.Equal(t, 180.0, r.LongitudeMax)
}

func writeRules(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRulesOverlaysDefaults(t *testing.T) {
	path := writeRules(t, "required_fields:\n  - station\n  - pollutant_id\n")

	r, err := LoadRules(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"station", "pollutant_id"}, r.RequiredFields)
	// Unspecified fields keep their defaults.
	assert.Equal(t, -90.0, r.LatitudeMin)
	assert.Len(t, r.TimestampLayouts, 3)
}

func TestLoadRulesCustomRanges(t *testing.T) {
	path := writeRules(t, "latitude_min: 8.0\nlatitude_max: 38.0\n")

	r, err := LoadRules(path)
	require.NoError(t, err)

	rec := record.Object{
		"country":       record.String("IN"),
		"state":         record.String("DL"),
		"city":          record.String("Delhi"),
		"station":       record.String("X"),
		"last_update":   record.String("08-01-2024 11:00:00"),
		"latitude":      record.String("45.0"),
		"longitude":     record.String("77.1"),
		"pollutant_id":  record.String("PM2.5"),
		"pollutant_avg": record.String("45"),
	}

	v := r.Check(rec)
	assert.Contains(t, v.Issues, "latitude_out_of_range:45.0")
}

func TestLoadRulesMissingFile(t *testing.T) {
	_, err := LoadRules(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadRulesMalformedYAML(t *testing.T) {
	path := writeRules(t, "required_fields: [unclosed\n")
	_, err := LoadRules(path)
	assert.Error(t, err)
}

func TestLoadRulesRejectsInvertedRange(t *testing.T) {
	path := writeRules(t, "latitude_min: 50.0\nlatitude_max: -50.0\n")
	_, err := LoadRules(path)
	assert.Error(t, err)
}
