package prover

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PolyhedraZK/bpgadgets/builder"
	"github.com/PolyhedraZK/bpgadgets/field"
	"github.com/PolyhedraZK/bpgadgets/group"
	"github.com/PolyhedraZK/bpgadgets/transcript"
)

// product constrains v0·v1 = v2 and v0 < 2^8.
func product(api builder.API, v []builder.Variable) {
	_, _, out := api.Multiply(v[0].LC(), v[1].LC())
	builder.AssertIsEqual(api, out.LC(), v[2].LC())
	builder.AssertIsInRange(api, v[0].LC(), 8)
}

func newProver(t *testing.T, witness ...uint64) *Prover {
	values := make([]fr.Element, len(witness))
	for i, w := range witness {
		values[i] = field.FromUint64(w)
	}
	cs := builder.NewProver(values)
	product(cs, cs.Committed())
	require.NoError(t, cs.Check())

	pc, err := group.NewPedersenGens()
	require.NoError(t, err)
	return New(transcript.New("prover test"), &pc, group.NewBulletproofGens(), cs, 1)
}

func TestPolynomialEvaluation(t *testing.T) {
	p := newProver(t, 3, 5, 15)
	V, err := p.CommitWitness()
	require.NoError(t, err)
	assert.Len(t, V, 3)
	require.NoError(t, p.DeriveChallenges())

	// t(x) must equal <l(x), r(x)> over the padded vectors
	ip := field.InnerProduct(p.lVec, p.rVec)
	assert.True(t, ip.Equal(&p.proof.TX))
	assert.Len(t, p.lVec, p.padded)
	assert.Equal(t, 0, p.padded&(p.padded-1))
}

func TestFoldZeroizes(t *testing.T) {
	p := newProver(t, 2, 7, 14)
	_, err := p.CommitWitness()
	require.NoError(t, err)
	require.NoError(t, p.DeriveChallenges())
	pr, err := p.Fold()
	require.NoError(t, err)
	assert.Equal(t, p.padded, 1<<pr.Rounds())

	assert.True(t, p.i.IsZero())
	assert.True(t, p.s.IsZero())
	for i := range p.sL {
		assert.True(t, p.sL[i].IsZero())
	}
	for i := range p.openings {
		assert.True(t, p.openings[i].Blinding.IsZero())
	}
}
