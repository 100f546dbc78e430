package builder

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Weights is the constraint system collapsed by powers of a challenge z:
// constraint q contributes with weight z^(q+1).
type Weights struct {
	WL, WR, WO []fr.Element
	WV         []fr.Element
	WC         fr.Element
}

// Flatten computes the weight vectors for challenge z. It uses only the constraint
// shape, so prover and verifier get identical results.
func (b *Builder) Flatten(z *fr.Element) Weights {
	n := len(b.aL)
	w := Weights{
		WL: make([]fr.Element, n),
		WR: make([]fr.Element, n),
		WO: make([]fr.Element, n),
		WV: make([]fr.Element, len(b.v)),
	}
	expZ := *z
	var t fr.Element
	for _, lc := range b.constraints {
		for _, term := range lc.terms {
			t.Mul(&expZ, &term.Coeff)
			i := term.Var.index
			switch term.Var.kind {
			case KindMultiplierLeft:
				w.WL[i].Add(&w.WL[i], &t)
			case KindMultiplierRight:
				w.WR[i].Add(&w.WR[i], &t)
			case KindMultiplierOutput:
				w.WO[i].Add(&w.WO[i], &t)
			case KindCommitted:
				w.WV[i].Sub(&w.WV[i], &t)
			case KindOne:
				w.WC.Sub(&w.WC, &t)
			}
		}
		expZ.Mul(&expZ, z)
	}
	return w
}
