package proof

import (
	"github.com/consensys/gnark-crypto/ecc/bn254"

	"github.com/PolyhedraZK/bpgadgets/transcript"
	"github.com/PolyhedraZK/bpgadgets/utils"
)

// AppendShape absorbs the constraint system dimensions and the witness commitments.
// Prover and verifier call it at the same point of the transcript.
func AppendShape(t *transcript.Transcript, multipliers, constraints int, commitments []bn254.G1Affine) {
	t.AppendU64("n", uint64(multipliers))
	t.AppendU64("q", uint64(constraints))
	t.AppendU64("m", uint64(len(commitments)))
	for i := range commitments {
		t.AppendPoint("V", &commitments[i])
	}
}

// PaddedWidth is the inner-product vector length for n multipliers.
func PaddedWidth(n int) int {
	return utils.NextPowerOfTwo(n)
}
