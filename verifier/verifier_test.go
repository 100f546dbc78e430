package verifier_test

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PolyhedraZK/bpgadgets/builder"
	"github.com/PolyhedraZK/bpgadgets/field"
	"github.com/PolyhedraZK/bpgadgets/group"
	"github.com/PolyhedraZK/bpgadgets/proof"
	"github.com/PolyhedraZK/bpgadgets/prover"
	"github.com/PolyhedraZK/bpgadgets/transcript"
	"github.com/PolyhedraZK/bpgadgets/verifier"
	"github.com/PolyhedraZK/bpgadgets/zkerr"
)

type circuit func(api builder.API, v []builder.Variable)

func product(api builder.API, v []builder.Variable) {
	_, _, out := api.Multiply(v[0].LC(), v[1].LC())
	builder.AssertIsEqual(api, out.LC(), v[2].LC())
	builder.AssertIsInRange(api, v[0].LC(), 8)
}

// linear has no multipliers at all.
func linear(api builder.API, v []builder.Variable) {
	builder.AssertIsEqual(api, v[0].LC().Add(v[1].LC()), builder.ConstantUint64(10))
}

var (
	pc   group.PedersenGens
	gens = group.NewBulletproofGens()
)

func init() {
	var err error
	if pc, err = group.NewPedersenGens(); err != nil {
		panic(err)
	}
}

func prove(t *testing.T, c circuit, witness ...uint64) ([]bn254.G1Affine, *proof.Proof) {
	values := make([]fr.Element, len(witness))
	for i, w := range witness {
		values[i] = field.FromUint64(w)
	}
	cs := builder.NewProver(values)
	c(cs, cs.Committed())

	p := prover.New(transcript.New("r1cs test"), &pc, gens, cs, 1)
	V, err := p.CommitWitness()
	require.NoError(t, err)
	require.NoError(t, p.DeriveChallenges())
	pr, err := p.Fold()
	require.NoError(t, err)
	return V, pr
}

func verify(c circuit, V []bn254.G1Affine, p *proof.Proof) error {
	cs := builder.NewVerifier(len(V))
	c(cs, cs.Committed())
	v := verifier.New(transcript.New("r1cs test"), &pc, gens, cs, 1)
	if err := v.DeriveChallenges(V, p); err != nil {
		return err
	}
	return v.Check()
}

func TestCompleteness(t *testing.T) {
	tests := []struct {
		name    string
		c       circuit
		witness []uint64
	}{
		{"product", product, []uint64{3, 5, 15}},
		{"product edge", product, []uint64{255, 0, 0}},
		{"no multipliers", linear, []uint64{4, 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			V, p := prove(t, tt.c, tt.witness...)
			assert.NoError(t, verify(tt.c, V, p))

			// survives the codec
			q, err := proof.Deserialize(p.Serialize())
			require.NoError(t, err)
			assert.NoError(t, verify(tt.c, V, q))
		})
	}
}

func TestSoundness(t *testing.T) {
	// 256 does not fit in 8 bits but the proof is still produced from the witness
	V, p := prove(t, product, 256, 1, 256)
	assert.ErrorIs(t, verify(product, V, p), zkerr.ErrVerificationFailure)

	V, p = prove(t, product, 3, 5, 16)
	assert.ErrorIs(t, verify(product, V, p), zkerr.ErrVerificationFailure)
}

func TestTampering(t *testing.T) {
	V, p := prove(t, product, 3, 5, 15)

	t.Run("commitment", func(t *testing.T) {
		bad := append([]bn254.G1Affine(nil), V...)
		bad[2] = group.Add(&bad[2], &pc.B)
		assert.ErrorIs(t, verify(product, bad, p), zkerr.ErrVerificationFailure)
	})
	t.Run("swapped commitments", func(t *testing.T) {
		bad := []bn254.G1Affine{V[1], V[0], V[2]}
		assert.ErrorIs(t, verify(product, bad, p), zkerr.ErrVerificationFailure)
	})
	t.Run("missing commitment", func(t *testing.T) {
		assert.ErrorIs(t, verify(product, V[:2], p), zkerr.ErrVerificationFailure)
	})
	t.Run("t_x", func(t *testing.T) {
		bad := *p
		bad.TX.Add(&bad.TX, new(fr.Element).SetOne())
		assert.ErrorIs(t, verify(product, V, &bad), zkerr.ErrVerificationFailure)
	})
	t.Run("identity point", func(t *testing.T) {
		bad := *p
		bad.T3 = bn254.G1Affine{}
		assert.ErrorIs(t, verify(product, V, &bad), zkerr.ErrVerificationFailure)
	})
	t.Run("round count", func(t *testing.T) {
		bad := *p
		bad.IPP.L, bad.IPP.R = p.IPP.L[1:], p.IPP.R[1:]
		assert.ErrorIs(t, verify(product, V, &bad), zkerr.ErrVerificationFailure)
	})
	t.Run("other domain", func(t *testing.T) {
		cs := builder.NewVerifier(len(V))
		product(cs, cs.Committed())
		v := verifier.New(transcript.New("another gadget"), &pc, gens, cs, 1)
		require.NoError(t, v.DeriveChallenges(V, p))
		assert.ErrorIs(t, v.Check(), zkerr.ErrVerificationFailure)
	})
}
