// Package harness provides scenario-based conformance testing for the
// enrichment pipeline.
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	source_file: sample.json
//	records:
//	  - country: IN
//	    state: DL
//	    city: Delhi
//	    station: X
//	    last_update: "08-01-2024 11:00:00"
//	    latitude: "28.7"
//	    longitude: "77.1"
//	    pollutant_id: PM2.5
//	    pollutant_avg: "45"
//	expect:
//	  - passed: true
//	summary:
//	  total: 1
//	  dq_passed: 1
//	  dq_failed: 0
//
// Each expect entry corresponds positionally to a record and pins the DQ
// verdict; issues lists the exact expected issue codes in order. The
// summary block pins the aggregate counts.
//
// # Deterministic Testing
//
// Scenarios run with a fixed clock, so ingested_at and the whole enriched
// output are reproducible across runs. RunWithGolden snapshots the result
// through canonical JSON and compares it against a golden file under
// testdata/golden. Regenerate with:
//
//	go test ./internal/harness -update
package harness
