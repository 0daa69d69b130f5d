// Package enrich implements the enrichment core: content hashing,
// deterministic object-identity derivation, the data-quality rule engine,
// and the per-record enrichment pass.
//
// The entry point is Enricher.Enrich, a pure transform: no I/O, no
// logging, no side effects beyond its return value. Records are processed
// in input order with no cross-record state other than the summary
// counters.
//
// Identity is content-addressed: a record's canonical JSON encoding is
// hashed with SHA-256, and the hex digest seeds a version-5 UUID in the
// URL namespace. Identical record content always yields the identical
// hash and object id, run after run. This is the system's sole
// reproducibility guarantee.
package enrich
