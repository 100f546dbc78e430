package builder

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/PolyhedraZK/bpgadgets/field"
)

// AssertIsEqual adds an assertion that a is equal to b.
func AssertIsEqual(api API, a, b LinearCombination) {
	api.Constrain(a.Sub(b))
}

// AssertIsBoolean adds an assertion that v is either 0 or 1.
func AssertIsBoolean(api API, v LinearCombination) {
	_, _, out := api.Multiply(v, One.LC().Sub(v))
	api.Constrain(out.LC())
}

// AssertIsDifferent constrains a and b to have different values by exhibiting the
// inverse of a - b.
func AssertIsDifferent(api API, a, b LinearCombination) {
	d := a.Sub(b)
	dv := api.Eval(d)
	var inv fr.Element
	inv.Inverse(&dv)
	left, _, out := api.AllocateMultiplier(dv, inv)
	api.Constrain(d.Sub(left.LC()))
	api.Constrain(out.LC().Sub(One.LC()))
}

// ToBinary decomposes v into nbBits bits, least significant first, and constrains the
// recomposition to equal v. This also proves 0 <= v < 2^nbBits.
// Each bit costs one gate b·(1-b) = 0.
func ToBinary(api API, v LinearCombination, nbBits int) []Variable {
	value := api.Eval(v)
	bits := field.Bits(&value, nbBits)
	res := make([]Variable, nbBits)
	var acc LinearCombination
	exp := fr.One()
	for i := 0; i < nbBits; i++ {
		var notBit fr.Element
		notBit.SetOne().Sub(&notBit, &bits[i])
		left, right, out := api.AllocateMultiplier(bits[i], notBit)
		api.Constrain(out.LC())
		api.Constrain(left.LC().Add(right.LC()).Sub(One.LC()))
		acc = acc.AddTerm(left, exp)
		exp.Double(&exp)
		res[i] = left
	}
	field.Zeroize(bits)
	value.SetZero()
	api.Constrain(acc.Sub(v))
	return res
}

// AssertIsInRange proves 0 <= v < 2^nbBits.
func AssertIsInRange(api API, v LinearCombination, nbBits int) {
	ToBinary(api, v, nbBits)
}

// AssertIsLessOrEqual proves a <= bound assuming both are below 2^nbBits.
func AssertIsLessOrEqual(api API, a, bound LinearCombination, nbBits int) {
	ToBinary(api, bound.Sub(a), nbBits)
}

// Select returns x when bit is 1 and y when bit is 0. bit must be constrained boolean
// by the caller.
func Select(api API, bit, x, y LinearCombination) LinearCombination {
	_, _, out := api.Multiply(bit, x.Sub(y))
	return y.Add(out.LC())
}
