package gadget

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PolyhedraZK/bpgadgets/builder"
	"github.com/PolyhedraZK/bpgadgets/mimc"
	"github.com/PolyhedraZK/bpgadgets/zkerr"
)

func entries(es ...Entry) Params {
	return Params{Entries: es}
}

func TestCompositeShapes(t *testing.T) {
	r := Builtin()
	and, or := And(r), Or(r)
	tests := []struct {
		name  string
		g     Gadget
		p     Params
		shape Shape
		err   error
	}{
		{"shared witness", and, entries(
			Entry{Gadget: "bounds", Instance: []int{0, 1}, Witness: []int{0}},
			Entry{Gadget: "less_than", Witness: []int{0, 1}},
		), Shape{2, 2}, nil},
		{"nested", or, entries(
			Entry{Gadget: "equality_public", Instance: []int{0}, Witness: []int{0}},
			Entry{Gadget: "and", Params: entries(
				Entry{Gadget: "range_64", Witness: []int{0}},
			), Witness: []int{0}},
		), Shape{1, 1}, nil},
		{"no entries", and, Params{}, Shape{}, zkerr.ErrMalformedInstance},
		{"scalar params", and, Params{Bits: 8, Entries: []Entry{{Gadget: "range_64", Witness: []int{0}}}}, Shape{}, zkerr.ErrMalformedInstance},
		{"unknown gadget", and, entries(Entry{Gadget: "nope", Witness: []int{0}}), Shape{}, zkerr.ErrUnknownGadget},
		{"bad sub params", and, entries(Entry{Gadget: "range", Witness: []int{0}}), Shape{}, zkerr.ErrMalformedInstance},
		{"index count", and, entries(Entry{Gadget: "range_64", Witness: []int{0, 1}}), Shape{}, zkerr.ErrMalformedInstance},
		{"negative index", or, entries(Entry{Gadget: "range_64", Witness: []int{-1}}), Shape{}, zkerr.ErrMalformedInstance},
		{"unused witness", and, entries(Entry{Gadget: "range_64", Witness: []int{1}}), Shape{}, zkerr.ErrMalformedInstance},
		{"unused instance", and, entries(Entry{Gadget: "equality_public", Instance: []int{2}, Witness: []int{0}}), Shape{}, zkerr.ErrMalformedInstance},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			shape, err := tc.g.Shape(tc.p)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.shape, shape)
		})
	}
}

func TestEntriesRejectedBySimpleGadgets(t *testing.T) {
	_, err := Range64().Shape(entries(Entry{Gadget: "range_64", Witness: []int{0}}))
	assert.ErrorIs(t, err, zkerr.ErrMalformedInstance)
}

func TestAndSharesWitness(t *testing.T) {
	param := mimc.DefaultParams()
	and := And(Builtin())
	// w0 in [17, 100], H(w0) = i2 and w0 < w1
	p := entries(
		Entry{Gadget: "bounds", Instance: []int{0, 1}, Witness: []int{0}},
		Entry{Gadget: "mimc_hash", Instance: []int{2}, Witness: []int{0}},
		Entry{Gadget: "less_than", Witness: []int{0, 1}},
	)
	instance := func(w uint64) []fr.Element {
		return append(scalars(17, 100), mimc.Hash(param, scalars(w)[0]))
	}
	assert.NoError(t, solve(and, p, instance(67), scalars(67, 1000)))
	assert.ErrorIs(t, solve(and, p, instance(101), scalars(101, 1000)), zkerr.ErrWitnessConstraintViolation)
	assert.ErrorIs(t, solve(and, p, instance(67), scalars(67, 5)), zkerr.ErrWitnessConstraintViolation)
	assert.ErrorIs(t, solve(and, p, instance(68), scalars(67, 1000)), zkerr.ErrWitnessConstraintViolation)
}

func TestOrSelectsSatisfiedBranch(t *testing.T) {
	or := Or(Builtin())
	// w0 < 2^8 or w0 = i0
	p := entries(
		Entry{Gadget: "range", Params: Params{Bits: 8}, Witness: []int{0}},
		Entry{Gadget: "equality_public", Instance: []int{0}, Witness: []int{0}},
	)
	assert.NoError(t, solve(or, p, scalars(7), scalars(5)))
	assert.NoError(t, solve(or, p, scalars(1000), scalars(1000)))
	assert.ErrorIs(t, solve(or, p, scalars(7), scalars(1000)), zkerr.ErrWitnessConstraintViolation)
}

// countGates builds g over witness and returns its multiplier and constraint counts.
func countGates(t *testing.T, g Gadget, p Params, instance, witness []fr.Element) (int, int) {
	var b *builder.Builder
	if witness == nil {
		shape, err := g.Shape(p)
		require.NoError(t, err)
		b = builder.NewVerifier(shape.Witness)
	} else {
		b = builder.NewProver(witness)
	}
	require.NoError(t, g.Define(b, p, instance, b.Committed()))
	return b.NumMultipliers(), b.NumConstraints()
}

func TestOrShapeIndependentOfBranch(t *testing.T) {
	or := Or(Builtin())
	p := entries(
		Entry{Gadget: "range", Params: Params{Bits: 8}, Witness: []int{0}},
		Entry{Gadget: "equality_public", Instance: []int{0}, Witness: []int{0}},
	)
	m0, c0 := countGates(t, or, p, scalars(1000), scalars(5))
	m1, c1 := countGates(t, or, p, scalars(1000), scalars(1000))
	mv, cv := countGates(t, or, p, scalars(1000), nil)
	assert.Equal(t, m0, m1)
	assert.Equal(t, c0, c1)
	assert.Equal(t, m0, mv)
	assert.Equal(t, c0, cv)
}

func TestCompositeParamsBytes(t *testing.T) {
	a := entries(Entry{Gadget: "range_64", Witness: []int{0}}, Entry{Gadget: "range_64", Witness: []int{1}})
	b := entries(Entry{Gadget: "range_64", Witness: []int{1}}, Entry{Gadget: "range_64", Witness: []int{0}})
	c := entries(Entry{Gadget: "range", Params: Params{Bits: 64}, Witness: []int{0}}, Entry{Gadget: "range_64", Witness: []int{1}})
	assert.NotEqual(t, a.Bytes(), b.Bytes())
	assert.NotEqual(t, a.Bytes(), c.Bytes())
	assert.Equal(t, a.Bytes(), a.Bytes())
	assert.Len(t, Params{}.Bytes(), 32)
}
