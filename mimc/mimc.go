// MiMC hash with the x^5 permutation over the BN254 scalar field, in Miyaguchi-Preneel
// mode, written both natively and as constraints.
package mimc

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

func sBox(x *fr.Element) fr.Element {
	var x2, x4, x5 fr.Element
	x2.Square(x)
	x4.Square(&x2)
	x5.Mul(&x4, x)
	return x5
}

// encrypt runs the keyed permutation on m with key h.
func encrypt(param *Params, h, m fr.Element) fr.Element {
	var t fr.Element
	for i := 0; i < param.NumRounds; i++ {
		t.Add(&m, &h).Add(&t, &param.RoundConstants[i])
		m = sBox(&t)
	}
	m.Add(&m, &h)
	return m
}

// Hash absorbs inputs one block at a time: h = E_h(x) + h + x, starting from h = 0.
func Hash(param *Params, inputs ...fr.Element) fr.Element {
	var h fr.Element
	for i := range inputs {
		e := encrypt(param, h, inputs[i])
		h.Add(&h, &e).Add(&h, &inputs[i])
	}
	return h
}

// Compress is the two-to-one node hash of a Merkle tree.
func Compress(param *Params, left, right fr.Element) fr.Element {
	return Hash(param, left, right)
}

// Root folds a leaf up a Merkle path. dirs[i] = 1 means the running node is the right
// child at level i.
func Root(param *Params, leaf fr.Element, siblings []fr.Element, dirs []bool) fr.Element {
	if len(siblings) != len(dirs) {
		panic("siblings and directions have different lengths")
	}
	cur := leaf
	for i := range siblings {
		if dirs[i] {
			cur = Compress(param, siblings[i], cur)
		} else {
			cur = Compress(param, cur, siblings[i])
		}
	}
	return cur
}
