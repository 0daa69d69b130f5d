package enrich

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"

	"github.com/roach88/airdq/internal/record"
)

// RecordHash computes the content-addressed hash of a record: canonical
// JSON (keys sorted at every level, compact, non-ASCII literal) fed to
// SHA-256, returned as 64 lowercase hex characters.
//
// The hash is invariant under key reordering and changes whenever any
// key or value changes. Returns an error only if the record cannot be
// canonically marshaled (non-finite floats).
func RecordHash(rec record.Object) (string, error) {
	canonical, err := record.MarshalCanonical(rec)
	if err != nil {
		return "", fmt.Errorf("RecordHash: failed to marshal: %w", err)
	}

	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

// DeriveObjectID derives the stable object identifier for a record hash:
// a version-5 (SHA-1 name-based) UUID in the URL namespace, with the hex
// hash string as the name. Pure function of its input - the same hash
// always yields the same identifier.
func DeriveObjectID(hash string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(hash)).String()
}

// MustRecordHash is like RecordHash but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustRecordHash(rec record.Object) string {
	h, err := RecordHash(rec)
	if err != nil {
		panic(err)
	}
	return h
}
