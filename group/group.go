// Package group wraps the BN254 G1 operations the proof system needs: Pedersen and
// Bulletproofs generators, multiscalar multiplication and point encoding.
package group

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math/big"
	"sync"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// DST is the hash-to-curve domain separation tag for every derived generator.
const DST = "BPGADGETS-V01-CS01-with-BN254G1_XMD:SHA-256_SVDW_RO_"

// PointBytes is the size of a compressed G1 point.
const PointBytes = bn254.SizeOfG1AffineCompressed

// PedersenGens holds the value base B and the blinding base B̃ of a Pedersen commitment.
type PedersenGens struct {
	B         bn254.G1Affine
	BBlinding bn254.G1Affine
}

// NewPedersenGens uses the standard G1 generator for B and hashes to the curve for B̃,
// so nobody knows the discrete log between them.
func NewPedersenGens() (PedersenGens, error) {
	_, _, g1, _ := bn254.Generators()
	h, err := bn254.HashToG1([]byte("pedersen blinding base"), []byte(DST))
	if err != nil {
		return PedersenGens{}, fmt.Errorf("derive blinding base: %w", err)
	}
	return PedersenGens{B: g1, BBlinding: h}, nil
}

// Commit returns value·B + blinding·B̃.
func (pg *PedersenGens) Commit(value, blinding *fr.Element) (bn254.G1Affine, error) {
	return MultiExp(
		[]bn254.G1Affine{pg.B, pg.BBlinding},
		[]fr.Element{*value, *blinding},
		1,
	)
}

// BulletproofGens is an append-only table of the G and H generator vectors.
// Prefixes handed out by Vectors are never modified afterwards.
type BulletproofGens struct {
	mu   sync.Mutex
	g, h []bn254.G1Affine
}

func NewBulletproofGens() *BulletproofGens {
	return &BulletproofGens{}
}

// Vectors returns the first n generators of G and H, deriving missing ones first.
func (bg *BulletproofGens) Vectors(n int) ([]bn254.G1Affine, []bn254.G1Affine, error) {
	if n < 0 {
		panic("negative generator count")
	}
	bg.mu.Lock()
	defer bg.mu.Unlock()
	for i := len(bg.g); i < n; i++ {
		gi, err := deriveGenerator('G', i)
		if err != nil {
			return nil, nil, err
		}
		hi, err := deriveGenerator('H', i)
		if err != nil {
			return nil, nil, err
		}
		bg.g = append(bg.g, gi)
		bg.h = append(bg.h, hi)
	}
	return bg.g[:n:n], bg.h[:n:n], nil
}

// Len returns how many generators have been derived so far.
func (bg *BulletproofGens) Len() int {
	bg.mu.Lock()
	defer bg.mu.Unlock()
	return len(bg.g)
}

func deriveGenerator(label byte, i int) (bn254.G1Affine, error) {
	msg := binary.LittleEndian.AppendUint64([]byte{label}, uint64(i))
	p, err := bn254.HashToG1(msg, []byte(DST))
	if err != nil {
		return p, fmt.Errorf("derive generator %c%d: %w", label, i, err)
	}
	return p, nil
}

// MultiExp computes Σ scalars[i]·points[i] using at most tasks goroutines.
// An empty input yields the identity.
func MultiExp(points []bn254.G1Affine, scalars []fr.Element, tasks int) (bn254.G1Affine, error) {
	var res bn254.G1Affine
	if len(points) != len(scalars) {
		return res, fmt.Errorf("multiexp: %d points but %d scalars", len(points), len(scalars))
	}
	if len(points) == 0 {
		return res, nil
	}
	if tasks < 1 {
		tasks = 1
	}
	if _, err := res.MultiExp(points, scalars, ecc.MultiExpConfig{NbTasks: tasks}); err != nil {
		return res, fmt.Errorf("multiexp: %w", err)
	}
	return res, nil
}

// ScalarMul returns s·p.
func ScalarMul(p *bn254.G1Affine, s *fr.Element) bn254.G1Affine {
	var k big.Int
	s.BigInt(&k)
	var res bn254.G1Affine
	res.ScalarMultiplication(p, &k)
	return res
}

// Add returns a + b.
func Add(a, b *bn254.G1Affine) bn254.G1Affine {
	var acc bn254.G1Jac
	acc.FromAffine(a)
	acc.AddMixed(b)
	var res bn254.G1Affine
	res.FromJacobian(&acc)
	return res
}

// EncodePoint returns the compressed encoding of p.
func EncodePoint(p *bn254.G1Affine) []byte {
	b := p.Bytes()
	return b[:]
}

// DecodePoint parses a compressed point. It rejects inputs of the wrong size, points off
// the curve and encodings that do not re-encode to the same bytes.
func DecodePoint(b []byte) (bn254.G1Affine, error) {
	var p bn254.G1Affine
	if len(b) != PointBytes {
		return p, fmt.Errorf("point is %d bytes, expected %d", len(b), PointBytes)
	}
	if _, err := p.SetBytes(b); err != nil {
		return p, fmt.Errorf("decode point: %w", err)
	}
	if enc := p.Bytes(); !bytes.Equal(enc[:], b) {
		return p, fmt.Errorf("non-canonical point encoding")
	}
	return p, nil
}
