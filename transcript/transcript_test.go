package transcript

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/assert"
)

func build(tag string, ops func(*Transcript)) fr.Element {
	t := New(tag)
	ops(t)
	return t.ChallengeScalar("c")
}

func TestDeterministic(t *testing.T) {
	_, _, g1, _ := bn254.Generators()
	var s fr.Element
	s.SetUint64(42)
	ops := func(tr *Transcript) {
		tr.AppendMessage("dom-sep", []byte("r1cs v1"))
		tr.AppendU64("n", 64)
		tr.AppendScalar("I", &s)
		tr.AppendPoint("V", &g1)
	}
	a := build("range_64", ops)
	b := build("range_64", ops)
	assert.True(t, a.Equal(&b))
	assert.False(t, a.IsZero())
}

func TestSensitivity(t *testing.T) {
	base := build("g", func(tr *Transcript) { tr.AppendMessage("a", []byte("xy")) })

	variants := map[string]fr.Element{
		"tag":     build("h", func(tr *Transcript) { tr.AppendMessage("a", []byte("xy")) }),
		"label":   build("g", func(tr *Transcript) { tr.AppendMessage("b", []byte("xy")) }),
		"message": build("g", func(tr *Transcript) { tr.AppendMessage("a", []byte("xz")) }),
		"split":   build("g", func(tr *Transcript) { tr.AppendMessage("a", []byte("x")); tr.AppendMessage("a", []byte("y")) }),
		"shift":   build("g", func(tr *Transcript) { tr.AppendMessage("ax", []byte("y")) }),
		"order": build("g", func(tr *Transcript) {
			tr.AppendMessage("a", nil)
			tr.AppendMessage("a", []byte("xy"))
		}),
	}
	for name, c := range variants {
		assert.False(t, c.Equal(&base), name)
	}
}

func TestChallengesChain(t *testing.T) {
	tr := New("g")
	c1 := tr.ChallengeScalar("u")
	c2 := tr.ChallengeScalar("u")
	assert.False(t, c1.Equal(&c2))

	// cloning forks the state without disturbing the original
	a := New("g")
	a.AppendU64("n", 1)
	b := a.Clone()
	ca := a.ChallengeScalar("x")
	cb := b.ChallengeScalar("x")
	assert.True(t, ca.Equal(&cb))

	b.AppendU64("n", 2)
	ya := a.ChallengeScalar("y")
	yb := b.ChallengeScalar("y")
	assert.False(t, ya.Equal(&yb))
}
