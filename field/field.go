// Package field collects helpers over the BN254 scalar field used by the prover and verifier.
package field

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// ScalarField is the order of the BN254 G1 group.
var ScalarField = fr.Modulus()

// Bytes is the size of a serialized scalar.
const Bytes = fr.Bytes

func FromUint64(x uint64) fr.Element {
	var e fr.Element
	e.SetUint64(x)
	return e
}

func FromInt64(x int64) fr.Element {
	var e fr.Element
	e.SetInt64(x)
	return e
}

// FromBytesCanonical decodes a big-endian integer of at most 32 bytes.
// Values not below the field order are rejected instead of reduced.
func FromBytesCanonical(b []byte) (fr.Element, error) {
	var e fr.Element
	if len(b) > Bytes {
		return e, fmt.Errorf("scalar is %d bytes, at most %d allowed", len(b), Bytes)
	}
	x := new(big.Int).SetBytes(b)
	if x.Cmp(ScalarField) >= 0 {
		return e, fmt.Errorf("scalar is not reduced modulo the field order")
	}
	e.SetBigInt(x)
	return e, nil
}

// ToBytes returns the 32-byte big-endian encoding of e.
func ToBytes(e *fr.Element) []byte {
	b := e.Bytes()
	return b[:]
}

// InnerProduct returns <a, b>. Both slices must have the same length.
func InnerProduct(a, b []fr.Element) fr.Element {
	if len(a) != len(b) {
		panic("inner product of vectors with different lengths")
	}
	var res, t fr.Element
	for i := range a {
		t.Mul(&a[i], &b[i])
		res.Add(&res, &t)
	}
	return res
}

// Powers returns [1, x, x^2, ..., x^(n-1)].
func Powers(x *fr.Element, n int) []fr.Element {
	res := make([]fr.Element, n)
	if n == 0 {
		return res
	}
	res[0].SetOne()
	for i := 1; i < n; i++ {
		res[i].Mul(&res[i-1], x)
	}
	return res
}

// Bits returns the n low bits of e, least significant first, each as a 0/1 scalar.
// The extraction is mask based and does not branch on the value.
func Bits(e *fr.Element, n int) []fr.Element {
	if n < 0 || n > 8*Bytes {
		panic("bit count out of range")
	}
	b := e.Bytes()
	res := make([]fr.Element, n)
	for i := 0; i < n; i++ {
		bit := (b[Bytes-1-i/8] >> (uint(i) % 8)) & 1
		res[i].SetUint64(uint64(bit))
	}
	return res
}

// Pow2 returns 2^k.
func Pow2(k int) fr.Element {
	var e fr.Element
	e.Exp(FromUint64(2), big.NewInt(int64(k)))
	return e
}

// Zeroize overwrites every element of v.
func Zeroize(v []fr.Element) {
	for i := range v {
		v[i].SetZero()
	}
}
