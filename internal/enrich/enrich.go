package enrich

import (
	"fmt"

	"github.com/roach88/airdq/internal/record"
)

// Summary aggregates DQ verdicts across a run.
// Invariant: Total == Passed + Failed == number of input records.
type Summary struct {
	Total  int `json:"total"`
	Passed int `json:"dq_passed"`
	Failed int `json:"dq_failed"`
}

// Enricher attaches audit and DQ fields to raw records.
type Enricher struct {
	Rules      Rules
	Clock      Clock
	SourceFile string
}

// New returns an Enricher with the default rule set and the system clock.
func New(sourceFile string) *Enricher {
	return &Enricher{
		Rules:      DefaultRules(),
		Clock:      SystemClock{},
		SourceFile: sourceFile,
	}
}

// Enrich transforms raw records into enriched records, in input order.
//
// For each record it computes the content hash, derives the object id,
// stamps the ingestion timestamp, runs the DQ rule set, and assembles a
// shallow copy of the record with audit and dq sub-objects attached.
// Nested values are shared with the input, not duplicated. The same
// instant is stamped on every record of a run.
//
// Pure transform: no I/O and no logging; the only outputs are the return
// values. Returns an error if any element of records is not an object or
// cannot be canonically encoded.
func (e *Enricher) Enrich(records record.Array) (record.Array, Summary, error) {
	enriched := make(record.Array, 0, len(records))
	var summary Summary

	ingestedAt := FormatTimestamp(e.Clock.Now())

	for i, v := range records {
		rec, ok := v.(record.Object)
		if !ok {
			return nil, Summary{}, fmt.Errorf("record %d: not a JSON object (%T)", i, v)
		}

		summary.Total++

		hash, err := RecordHash(rec)
		if err != nil {
			return nil, Summary{}, fmt.Errorf("record %d: %w", i, err)
		}
		objectID := DeriveObjectID(hash)

		verdict := e.Rules.Check(rec)
		if verdict.Passed {
			summary.Passed++
		} else {
			summary.Failed++
		}

		issues := make(record.Array, len(verdict.Issues))
		for j, issue := range verdict.Issues {
			issues[j] = record.String(issue)
		}

		out := rec.Clone()
		out["audit"] = record.Object{
			"ingested_at": record.String(ingestedAt),
			"source_file": record.String(e.SourceFile),
			"record_hash": record.String(hash),
			"object_id":   record.String(objectID),
		}
		out["dq"] = record.Object{
			"passed": record.Bool(verdict.Passed),
			"issues": issues,
		}

		enriched = append(enriched, out)
	}

	return enriched, summary, nil
}
