// Package record provides the loosely-typed value layer for air-quality
// documents.
//
// This package contains type definitions and serialization only. All other
// internal packages import record; record imports nothing internal. This
// ensures the value layer stays foundational with no circular dependencies.
//
// Input documents have no fixed schema: any key set is accepted, and values
// may be strings, numbers (int or float), booleans, nulls, arrays, or
// nested objects. The Value variant preserves exactly what the input JSON
// carried, including the int/float distinction, so re-serialization is
// faithful.
//
// MarshalCanonical is the identity serialization: object keys sorted at
// every level, compact, non-ASCII emitted literally. It is the ONLY
// encoding that may feed content hashing.
package record
