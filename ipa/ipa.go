// Package ipa implements the logarithmic inner-product argument.
//
// Given generators G, H, a point Q and per-generator factors, it proves knowledge of
// vectors a and b with P = <a, Gf∘G> + <b, Hf∘H> + <a, b>·Q. Each round halves the
// vectors and sends two points L and R; the closing message is the pair of scalars
// that remain.
package ipa

import (
	"fmt"
	"math/bits"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/PolyhedraZK/bpgadgets/field"
	"github.com/PolyhedraZK/bpgadgets/group"
	"github.com/PolyhedraZK/bpgadgets/transcript"
	"github.com/PolyhedraZK/bpgadgets/zkerr"
)

// MaxRounds bounds the number of folding rounds a proof may claim.
const MaxRounds = 32

// Proof holds the L and R points of each folding round and the two folded scalars.
type Proof struct {
	L, R []bn254.G1Affine
	A, B fr.Element
}

func ones(n int) []fr.Element {
	res := make([]fr.Element, n)
	for i := range res {
		res[i].SetOne()
	}
	return res
}

// Prove runs the folding rounds. a and b are overwritten; g and h are not modified.
// tasks is passed to every multiscalar multiplication.
func Prove(
	t *transcript.Transcript,
	q *bn254.G1Affine,
	gFactors, hFactors []fr.Element,
	g, h []bn254.G1Affine,
	a, b []fr.Element,
	tasks int,
) (*Proof, error) {
	n := len(a)
	if n == 0 || n&(n-1) != 0 {
		return nil, fmt.Errorf("ipa: length %d is not a power of two", n)
	}
	for _, l := range []int{len(b), len(g), len(h), len(gFactors), len(hFactors)} {
		if l != n {
			return nil, fmt.Errorf("ipa: mismatched lengths")
		}
	}
	t.AppendU64("ipa n", uint64(n))

	G := append([]bn254.G1Affine(nil), g...)
	H := append([]bn254.G1Affine(nil), h...)
	gf, hf := gFactors, hFactors

	rounds := bits.TrailingZeros(uint(n))
	proof := &Proof{
		L: make([]bn254.G1Affine, 0, rounds),
		R: make([]bn254.G1Affine, 0, rounds),
	}

	points := make([]bn254.G1Affine, 0, n+1)
	scalars := make([]fr.Element, 0, n+1)
	var u, uInv, t1, t2 fr.Element

	for n > 1 {
		n /= 2
		aL, aR := a[:n], a[n:2*n]
		bL, bR := b[:n], b[n:2*n]
		GL, GR := G[:n], G[n:2*n]
		HL, HR := H[:n], H[n:2*n]

		cL := field.InnerProduct(aL, bR)
		cR := field.InnerProduct(aR, bL)

		// L = <aL·gf_hi, G_R> + <bR·hf_lo, H_L> + cL·Q
		points, scalars = points[:0], scalars[:0]
		for i := 0; i < n; i++ {
			t1.Mul(&aL[i], &gf[n+i])
			points, scalars = append(points, GR[i]), append(scalars, t1)
		}
		for i := 0; i < n; i++ {
			t1.Mul(&bR[i], &hf[i])
			points, scalars = append(points, HL[i]), append(scalars, t1)
		}
		points, scalars = append(points, *q), append(scalars, cL)
		L, err := group.MultiExp(points, scalars, tasks)
		if err != nil {
			return nil, err
		}

		// R = <aR·gf_lo, G_L> + <bL·hf_hi, H_R> + cR·Q
		points, scalars = points[:0], scalars[:0]
		for i := 0; i < n; i++ {
			t1.Mul(&aR[i], &gf[i])
			points, scalars = append(points, GL[i]), append(scalars, t1)
		}
		for i := 0; i < n; i++ {
			t1.Mul(&bL[i], &hf[n+i])
			points, scalars = append(points, HR[i]), append(scalars, t1)
		}
		points, scalars = append(points, *q), append(scalars, cR)
		R, err := group.MultiExp(points, scalars, tasks)
		if err != nil {
			return nil, err
		}
		field.Zeroize(scalars)

		proof.L = append(proof.L, L)
		proof.R = append(proof.R, R)
		t.AppendPoint("L", &L)
		t.AppendPoint("R", &R)

		u = t.ChallengeScalar("u")
		uInv.Inverse(&u)

		for i := 0; i < n; i++ {
			t1.Mul(&aL[i], &u)
			t2.Mul(&aR[i], &uInv)
			aL[i].Add(&t1, &t2)

			t1.Mul(&bL[i], &uInv)
			t2.Mul(&bR[i], &u)
			bL[i].Add(&t1, &t2)

			var s [2]fr.Element
			s[0].Mul(&uInv, &gf[i])
			s[1].Mul(&u, &gf[n+i])
			if GL[i], err = group.MultiExp([]bn254.G1Affine{GL[i], GR[i]}, s[:], 1); err != nil {
				return nil, err
			}
			s[0].Mul(&u, &hf[i])
			s[1].Mul(&uInv, &hf[n+i])
			if HL[i], err = group.MultiExp([]bn254.G1Affine{HL[i], HR[i]}, s[:], 1); err != nil {
				return nil, err
			}
		}
		field.Zeroize(aR)
		field.Zeroize(bR)

		a, b, G, H = aL, bL, GL, HL
		// factors are absorbed into the generators by the first fold
		gf, hf = ones(n), ones(n)
	}

	proof.A, proof.B = a[0], b[0]
	return proof, nil
}

// VerificationScalars replays the rounds of p for a vector length n and returns the
// squared challenges, their inverses and the vector s with s_i = Π u_j^(±1) such that
// the folded generator is <s, G>.
func (p *Proof) VerificationScalars(n int, t *transcript.Transcript) (uSq, uInvSq, s []fr.Element, err error) {
	lgN := len(p.L)
	if lgN > MaxRounds || len(p.R) != lgN {
		return nil, nil, nil, fmt.Errorf("%w: ipa: bad round count", zkerr.ErrVerificationFailure)
	}
	if n != 1<<lgN {
		return nil, nil, nil, fmt.Errorf("%w: ipa: %d rounds do not match length %d", zkerr.ErrVerificationFailure, lgN, n)
	}
	t.AppendU64("ipa n", uint64(n))

	challenges := make([]fr.Element, lgN)
	for i := 0; i < lgN; i++ {
		if p.L[i].IsInfinity() || p.R[i].IsInfinity() {
			return nil, nil, nil, fmt.Errorf("%w: ipa: identity point in round %d", zkerr.ErrVerificationFailure, i)
		}
		t.AppendPoint("L", &p.L[i])
		t.AppendPoint("R", &p.R[i])
		challenges[i] = t.ChallengeScalar("u")
	}

	inv := fr.BatchInvert(challenges)
	var allInv fr.Element
	allInv.SetOne()
	uSq = make([]fr.Element, lgN)
	uInvSq = make([]fr.Element, lgN)
	for i := 0; i < lgN; i++ {
		allInv.Mul(&allInv, &inv[i])
		uSq[i].Square(&challenges[i])
		uInvSq[i].Square(&inv[i])
	}

	s = make([]fr.Element, n)
	s[0] = allInv
	for i := 1; i < n; i++ {
		lgI := bits.Len(uint(i)) - 1
		k := 1 << lgI
		// the highest set bit of i picks the challenge that was inverted in s[i-k]
		s[i].Mul(&s[i-k], &uSq[lgN-1-lgI])
	}
	return uSq, uInvSq, s, nil
}

// Verify checks p against the commitment P directly. The R1CS verifier folds this
// check into its own single multiscalar multiplication instead.
func Verify(
	t *transcript.Transcript,
	n int,
	q *bn254.G1Affine,
	gFactors, hFactors []fr.Element,
	P *bn254.G1Affine,
	g, h []bn254.G1Affine,
	p *Proof,
) error {
	if len(g) != n || len(h) != n || len(gFactors) != n || len(hFactors) != n {
		return fmt.Errorf("%w: ipa: mismatched lengths", zkerr.ErrVerificationFailure)
	}
	uSq, uInvSq, s, err := p.VerificationScalars(n, t)
	if err != nil {
		return err
	}

	points := make([]bn254.G1Affine, 0, 2*n+2*len(uSq)+2)
	scalars := make([]fr.Element, 0, cap(points))
	var x fr.Element
	for i := 0; i < n; i++ {
		x.Mul(&p.A, &s[i]).Mul(&x, &gFactors[i])
		points, scalars = append(points, g[i]), append(scalars, x)
	}
	for i := 0; i < n; i++ {
		// s reversed is the vector of inverses
		x.Mul(&p.B, &s[n-1-i]).Mul(&x, &hFactors[i])
		points, scalars = append(points, h[i]), append(scalars, x)
	}
	x.Mul(&p.A, &p.B)
	points, scalars = append(points, *q), append(scalars, x)
	for i := range uSq {
		x.Neg(&uSq[i])
		points, scalars = append(points, p.L[i]), append(scalars, x)
		x.Neg(&uInvSq[i])
		points, scalars = append(points, p.R[i]), append(scalars, x)
	}
	x.SetOne().Neg(&x)
	points, scalars = append(points, *P), append(scalars, x)

	check, err := group.MultiExp(points, scalars, 1)
	if err != nil {
		return err
	}
	if !check.IsInfinity() {
		return fmt.Errorf("%w: ipa: closing equation does not hold", zkerr.ErrVerificationFailure)
	}
	return nil
}
