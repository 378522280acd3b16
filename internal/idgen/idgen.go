// Package idgen assigns the human-shareable identifiers candidates and
// talent-pool profiles carry (APP######, TP######). The engine treats them as
// immutable opaque strings; uniqueness is ultimately enforced by the store's
// unique index, callers retry on a duplicate-key error.
package idgen

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	CandidatePrefix = "APP"
	TalentPrefix    = "TP"

	digits = 6
)

var maxSuffix = big.NewInt(1_000_000)

// New returns a fresh display identifier with the given prefix and a random
// six-digit suffix, e.g. APP483920.
func New(prefix string) string {
	n, err := rand.Int(rand.Reader, maxSuffix)
	if err != nil {
		// crypto/rand only fails when the platform's entropy source is
		// broken; there is no useful recovery.
		panic(fmt.Sprintf("idgen: %v", err))
	}
	return fmt.Sprintf("%s%0*d", prefix, digits, n.Int64())
}

// NewCandidateID returns an APP###### identifier.
func NewCandidateID() string { return New(CandidatePrefix) }

// NewTalentID returns a TP###### identifier.
func NewTalentID() string { return New(TalentPrefix) }
