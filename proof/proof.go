// Package proof defines the R1CS proof and its binary encoding.
package proof

import (
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/PolyhedraZK/bpgadgets/ipa"
)

// Version is the only body version Deserialize accepts.
const Version = 1

// Proof is a non-interactive proof that committed values satisfy a constraint system.
type Proof struct {
	// AI commits to the left and right multiplier inputs.
	AI bn254.G1Affine
	// AO commits to the multiplier outputs.
	AO bn254.G1Affine
	// S commits to the blinding vectors.
	S bn254.G1Affine

	T1, T3, T4, T5, T6 bn254.G1Affine

	TX         fr.Element
	TXBlinding fr.Element
	EBlinding  fr.Element

	IPP ipa.Proof
}

// Points returns the eight points sent before the inner-product rounds, in wire order.
func (p *Proof) Points() []*bn254.G1Affine {
	return []*bn254.G1Affine{&p.AI, &p.AO, &p.S, &p.T1, &p.T3, &p.T4, &p.T5, &p.T6}
}

// Rounds is the number of inner-product folding rounds.
func (p *Proof) Rounds() int {
	return len(p.IPP.L)
}
