package mimc

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PolyhedraZK/bpgadgets/builder"
	"github.com/PolyhedraZK/bpgadgets/field"
	"github.com/PolyhedraZK/bpgadgets/zkerr"
)

func TestHashCircuit(t *testing.T) {
	param := DefaultParams()
	for _, n := range []int{1, 2, 3} {
		inputs := make([]fr.Element, n)
		for i := range inputs {
			inputs[i] = field.FromUint64(uint64(100 + i))
		}

		b := builder.NewProver(inputs)
		lcs := make([]builder.LinearCombination, n)
		for i, v := range b.Committed() {
			lcs[i] = v.LC()
		}
		out := HashCircuit(b, param, lcs)

		got := b.Eval(out)
		want := Hash(param, inputs...)
		assert.True(t, got.Equal(&want), "arity %d", n)
		assert.Equal(t, n*GatesPerBlock(param), b.NumMultipliers())

		builder.AssertIsEqual(b, out, builder.Constant(want))
		require.NoError(t, b.Check())
	}
}

func TestHashCircuitWrongImage(t *testing.T) {
	param := DefaultParams()
	b := builder.NewProver([]fr.Element{field.FromUint64(5)})
	out := HashCircuit(b, param, []builder.LinearCombination{b.Committed()[0].LC()})
	builder.AssertIsEqual(b, out, builder.ConstantUint64(5))
	assert.ErrorIs(t, b.Check(), zkerr.ErrWitnessConstraintViolation)
}

func TestCompressCircuit(t *testing.T) {
	param := DefaultParams()
	l, r := field.FromUint64(11), field.FromUint64(12)
	b := builder.NewProver([]fr.Element{l, r})
	v := b.Committed()
	out := CompressCircuit(b, param, v[0].LC(), v[1].LC())
	got := b.Eval(out)
	want := Compress(param, l, r)
	assert.True(t, got.Equal(&want))
	assert.NoError(t, b.Check())
}
