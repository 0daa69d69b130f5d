package harness

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/roach88/airdq/internal/enrich"
	"github.com/roach88/airdq/internal/record"
)

// ScenarioInstant is the fixed wall-clock instant every scenario runs at.
// Pinning it keeps ingested_at stable for golden comparison.
var ScenarioInstant = time.Date(2024, 1, 8, 11, 0, 0, 0, time.UTC)

// Scenario defines a DQ conformance scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// SourceFile is the label stamped into each record's audit block.
	// Defaults to "<name>.json" when empty.
	SourceFile string `yaml:"source_file,omitempty"`

	// Records are the raw input records, in order.
	Records []map[string]any `yaml:"records"`

	// Expect pins per-record verdicts, positionally. Optional.
	Expect []Expectation `yaml:"expect,omitempty"`

	// Summary pins the aggregate counts. Optional.
	Summary *SummaryExpectation `yaml:"summary,omitempty"`
}

// Expectation pins one record's DQ verdict.
type Expectation struct {
	Passed bool `yaml:"passed"`

	// Issues are the exact expected issue codes, in rule order.
	// Nil means "don't check the issue list", only the verdict.
	Issues []string `yaml:"issues,omitempty"`
}

// SummaryExpectation pins the aggregate DQ counts.
type SummaryExpectation struct {
	Total  int `yaml:"total"`
	Passed int `yaml:"dq_passed"`
	Failed int `yaml:"dq_failed"`
}

// Result holds the outcome of running a scenario.
type Result struct {
	Enriched record.Array
	Summary  enrich.Summary
}

// LoadScenario reads a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	if s.Name == "" {
		return nil, fmt.Errorf("scenario %s: name is required", path)
	}
	if len(s.Expect) > 0 && len(s.Expect) != len(s.Records) {
		return nil, fmt.Errorf("scenario %s: %d expect entries for %d records", path, len(s.Expect), len(s.Records))
	}
	return &s, nil
}

// Run executes the scenario: converts its records into the value layer and
// enriches them with the default rules and the fixed scenario clock.
func Run(s *Scenario) (*Result, error) {
	records := make(record.Array, len(s.Records))
	for i, raw := range s.Records {
		v, err := record.FromAny(raw)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: record %d: %w", s.Name, i, err)
		}
		records[i] = v
	}

	sourceFile := s.SourceFile
	if sourceFile == "" {
		sourceFile = s.Name + ".json"
	}

	enricher := &enrich.Enricher{
		Rules:      enrich.DefaultRules(),
		Clock:      enrich.FixedClock{T: ScenarioInstant},
		SourceFile: sourceFile,
	}

	enriched, summary, err := enricher.Enrich(records)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
	}

	return &Result{Enriched: enriched, Summary: summary}, nil
}

// Verdict extracts the DQ verdict from one enriched record.
func Verdict(rec record.Object) (passed bool, issues []string, err error) {
	dq, ok := rec["dq"].(record.Object)
	if !ok {
		return false, nil, fmt.Errorf("record has no dq object")
	}
	p, ok := dq["passed"].(record.Bool)
	if !ok {
		return false, nil, fmt.Errorf("dq.passed is not a bool")
	}
	arr, ok := dq["issues"].(record.Array)
	if !ok {
		return false, nil, fmt.Errorf("dq.issues is not an array")
	}
	issues = make([]string, len(arr))
	for i, v := range arr {
		s, ok := v.(record.String)
		if !ok {
			return false, nil, fmt.Errorf("dq.issues[%d] is not a string", i)
		}
		issues[i] = string(s)
	}
	return bool(p), issues, nil
}
