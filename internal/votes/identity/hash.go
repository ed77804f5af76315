// Package identity derives the content hashes that stand in for stable
// identifiers when the upstream feeds do not provide one.
//
// Legislator hashes are keyed on (last name, party, state) only. Two different
// people sharing all three collide; that is current behaviour and is kept until
// a disambiguating input exists.
package identity

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/gowebpki/jcs"
)

// Legislator returns the lowercase hex SHA-256 of the composite key
// ["<trimmed, lowercased last name>","<party>","<state>"]. Party and state are
// used as given.
func Legislator(lastName, party, state string) string {
	key := []string{strings.ToLower(strings.TrimSpace(lastName)), party, state}
	// A []string always marshals.
	raw, _ := json.Marshal(key)
	return HashBytes(canonical(raw))
}

// Vote returns the lowercase hex SHA-256 of the RFC 8785 canonical form of a
// rollcall document, so key order and whitespace in the upstream file do not
// change the hash. Input that cannot be canonicalised is hashed as-is.
func Vote(document []byte) string {
	return HashBytes(canonical(document))
}

// HashBytes computes the SHA-256 hash of data as lowercase hex.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func canonical(raw []byte) []byte {
	out, err := jcs.Transform(raw)
	if err != nil {
		return bytes.TrimSpace(raw)
	}
	return out
}
