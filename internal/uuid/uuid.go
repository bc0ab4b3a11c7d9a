// Package uuid derives canonical 36-char UUIDs from optional identifiers,
// per spec.md §4.A.
package uuid

import (
	"strings"

	"github.com/google/uuid"
)

// Length is the length of a canonical UUID string, excluding any terminator.
const Length = 36

// Derive maps an optional identifier to a canonical, lower-case 36-char UUID
// and reports the derivation strategy used:
//
//   - id == ""            -> a random v4 UUID, version 4
//   - id is a valid UUID   -> id itself, lower-cased, version 0
//   - otherwise            -> a v5 SHA-1 UUID of id in the DNS namespace, version 5
//
// Derive is total and deterministic: for identical non-UUID input strings it
// always returns the same UUID.
func Derive(id string) (string, int) {
	if id == "" {
		// google/uuid's NewRandom only fails if crypto/rand is broken; a
		// random v4 should for all practical purposes never error.
		u, err := uuid.NewRandom()
		if err != nil {
			return uuid.New().String(), 4
		}
		return u.String(), 4
	}

	if parsed, err := uuid.Parse(id); err == nil {
		return strings.ToLower(parsed.String()), 0
	}

	derived := uuid.NewSHA1(uuid.NameSpaceDNS, []byte(id))
	return derived.String(), 5
}

// IsValid reports whether s is a well-formed UUID string, regardless of case
// or dash placement accepted by RFC 4122 parsing.
func IsValid(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
