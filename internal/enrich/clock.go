package enrich

import "time"

// TimestampLayout is the wire form for ingested_at and enriched_at:
// ISO 8601 at second precision with a literal Z suffix denoting UTC.
const TimestampLayout = "2006-01-02T15:04:05Z"

// Clock supplies the wall-clock instant stamped onto records.
// Injecting it keeps Enrich deterministic under test and lets golden
// files pin an exact timestamp.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns the same instant.
// Used in tests and golden-file scenarios.
type FixedClock struct {
	T time.Time
}

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time {
	return c.T
}

// FormatTimestamp renders t in the wire form, normalized to UTC.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
