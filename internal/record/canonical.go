package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// MarshalCanonical produces the canonical JSON encoding used for
// content-addressed identity computation. This is the ONLY serialization
// that may feed record hashing.
//
// Key properties:
//  1. Object keys sorted lexicographically (Unicode code points) at every
//     nesting level
//  2. Compact: no whitespace between tokens
//  3. No HTML escaping (< > & are NOT escaped); non-ASCII characters are
//     emitted literally as UTF-8
//  4. Integers render without a fractional part; floats render in shortest
//     round-trip form with a ".0" suffix when integral
//  5. Arrays keep element order (order is semantically significant)
//
// Two records with equal key/value sets yield identical bytes regardless
// of original key order. Any difference in values or key set changes the
// output.
func MarshalCanonical(v Value) ([]byte, error) {
	return marshalCanonical(v)
}

func marshalCanonical(v Value) ([]byte, error) {
	switch val := v.(type) {
	case Null:
		return []byte("null"), nil
	case String:
		return marshalCanonicalString(string(val))
	case Int:
		return fmt.Appendf(nil, "%d", int64(val)), nil
	case Float:
		if math.IsInf(float64(val), 0) || math.IsNaN(float64(val)) {
			return nil, fmt.Errorf("non-finite float is forbidden in canonical JSON: %v", float64(val))
		}
		return []byte(FormatFloat(float64(val))), nil
	case Bool:
		if val {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	case Array:
		return marshalCanonicalArray(val)
	case Object:
		return marshalCanonicalObject(val)
	default:
		return nil, fmt.Errorf("unsupported type for canonical JSON: %T", v)
	}
}

// marshalCanonicalString encodes a string without HTML escaping, so <, >,
// and & pass through and non-ASCII text stays literal UTF-8.
func marshalCanonicalString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}

	// json.Encoder adds a trailing newline, remove it
	result := buf.Bytes()
	if len(result) > 0 && result[len(result)-1] == '\n' {
		result = result[:len(result)-1]
	}
	return result, nil
}

func marshalCanonicalArray(arr Array) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')

	for i, elem := range arr {
		if i > 0 {
			buf.WriteByte(',')
		}
		elemBytes, err := marshalCanonical(elem)
		if err != nil {
			return nil, fmt.Errorf("array[%d]: %w", i, err)
		}
		buf.Write(elemBytes)
	}

	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func marshalCanonicalObject(obj Object) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	keys := obj.SortedKeys()
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		keyBytes, err := marshalCanonicalString(k)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')

		valBytes, err := marshalCanonical(obj[k])
		if err != nil {
			return nil, fmt.Errorf("value for key %q: %w", k, err)
		}
		buf.Write(valBytes)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}
