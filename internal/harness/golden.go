package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/airdq/internal/record"
)

// Snapshot serializes a scenario result through canonical JSON for
// deterministic golden comparison. The fixed scenario clock makes the
// enriched records byte-stable across runs.
func Snapshot(s *Scenario, result *Result) ([]byte, error) {
	doc := record.Object{
		"scenario_name": record.String(s.Name),
		"dq_summary": record.Object{
			"total":     record.Int(result.Summary.Total),
			"dq_passed": record.Int(result.Summary.Passed),
			"dq_failed": record.Int(result.Summary.Failed),
		},
		"records_enriched": result.Enriched,
	}
	return record.MarshalCanonical(doc)
}

// RunWithGolden executes a scenario and compares its snapshot against the
// golden file testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, s *Scenario) error {
	t.Helper()

	result, err := Run(s)
	if err != nil {
		return err
	}

	snapshot, err := Snapshot(s, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, s.Name, snapshot)

	return nil
}
