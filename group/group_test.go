package group

import (
	"sync"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randScalar(t *testing.T) fr.Element {
	var e fr.Element
	_, err := e.SetRandom()
	require.NoError(t, err)
	return e
}

func TestPedersenGens(t *testing.T) {
	pg, err := NewPedersenGens()
	require.NoError(t, err)
	assert.False(t, pg.B.Equal(&pg.BBlinding))
	assert.True(t, pg.BBlinding.IsOnCurve())

	again, err := NewPedersenGens()
	require.NoError(t, err)
	assert.True(t, again.BBlinding.Equal(&pg.BBlinding), "derivation must be deterministic")
}

func TestCommitHomomorphic(t *testing.T) {
	pg, err := NewPedersenGens()
	require.NoError(t, err)

	v1, v2 := randScalar(t), randScalar(t)
	r1, r2 := randScalar(t), randScalar(t)
	c1, err := pg.Commit(&v1, &r1)
	require.NoError(t, err)
	c2, err := pg.Commit(&v2, &r2)
	require.NoError(t, err)

	var v, r fr.Element
	v.Add(&v1, &v2)
	r.Add(&r1, &r2)
	c, err := pg.Commit(&v, &r)
	require.NoError(t, err)

	sum := Add(&c1, &c2)
	assert.True(t, sum.Equal(&c))
}

func TestMultiExp(t *testing.T) {
	bg := NewBulletproofGens()
	g, h, err := bg.Vectors(4)
	require.NoError(t, err)

	points := append(append([]bn254.G1Affine{}, g...), h...)
	scalars := make([]fr.Element, len(points))
	var want bn254.G1Affine
	for i := range scalars {
		scalars[i] = randScalar(t)
		term := ScalarMul(&points[i], &scalars[i])
		want = Add(&want, &term)
	}
	for _, tasks := range []int{0, 1, 4} {
		got, err := MultiExp(points, scalars, tasks)
		require.NoError(t, err)
		assert.True(t, got.Equal(&want), "tasks=%d", tasks)
	}

	id, err := MultiExp(nil, nil, 1)
	require.NoError(t, err)
	assert.True(t, id.IsInfinity())

	_, err = MultiExp(points, scalars[:1], 1)
	assert.Error(t, err)
}

func TestBulletproofGensGrow(t *testing.T) {
	bg := NewBulletproofGens()
	g2, h2, err := bg.Vectors(2)
	require.NoError(t, err)
	assert.Len(t, g2, 2)
	assert.Len(t, h2, 2)
	assert.False(t, g2[0].Equal(&h2[0]))
	assert.False(t, g2[0].Equal(&g2[1]))

	g8, _, err := bg.Vectors(8)
	require.NoError(t, err)
	assert.Equal(t, 8, bg.Len())
	assert.True(t, g8[1].Equal(&g2[1]), "prefix must be stable")

	// a fresh table derives the same points
	other := NewBulletproofGens()
	og, _, err := other.Vectors(8)
	require.NoError(t, err)
	for i := range og {
		assert.True(t, og[i].Equal(&g8[i]))
	}
}

func TestBulletproofGensConcurrent(t *testing.T) {
	bg := NewBulletproofGens()
	var wg sync.WaitGroup
	for i := 1; i <= 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			g, h, err := bg.Vectors(n)
			assert.NoError(t, err)
			assert.Len(t, g, n)
			assert.Len(t, h, n)
		}(i * 4)
	}
	wg.Wait()
	assert.Equal(t, 32, bg.Len())
}

func TestPointEncoding(t *testing.T) {
	pg, err := NewPedersenGens()
	require.NoError(t, err)

	enc := EncodePoint(&pg.BBlinding)
	require.Len(t, enc, PointBytes)
	back, err := DecodePoint(enc)
	require.NoError(t, err)
	assert.True(t, back.Equal(&pg.BBlinding))

	_, err = DecodePoint(enc[:PointBytes-1])
	assert.Error(t, err)

	// clearing the flag bits marks the buffer as uncompressed, which is too short
	bad := append([]byte{}, enc...)
	bad[0] &= 0x3f
	_, err = DecodePoint(bad)
	assert.Error(t, err)
}
