package mimc

import (
	"sync"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"golang.org/x/crypto/sha3"
)

type Params struct {
	// number of rounds of the x^5 permutation
	NumRounds int
	// one additive constant per round
	RoundConstants []fr.Element
}

const (
	defaultRounds = 110
	defaultSeed   = "bpgadgets mimc bn254"
)

// NewParams derives the round constants by iterating Keccak-256 from seed and reducing
// each digest modulo the field order.
func NewParams(seed string, rounds int) *Params {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(seed))
	digest := h.Sum(nil)

	constants := make([]fr.Element, rounds)
	for i := 0; i < rounds; i++ {
		h.Reset()
		h.Write(digest)
		digest = h.Sum(digest[:0])
		constants[i].SetBytes(digest)
	}
	return &Params{NumRounds: rounds, RoundConstants: constants}
}

var (
	defaultOnce   sync.Once
	defaultParams *Params
)

// DefaultParams returns the shared 110-round parameter set. Callers must not modify it.
func DefaultParams() *Params {
	defaultOnce.Do(func() {
		defaultParams = NewParams(defaultSeed, defaultRounds)
	})
	return defaultParams
}
