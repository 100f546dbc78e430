// Package verifier checks R1CS proofs against a constraint system rebuilt from public
// data only.
package verifier

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/PolyhedraZK/bpgadgets/builder"
	"github.com/PolyhedraZK/bpgadgets/field"
	"github.com/PolyhedraZK/bpgadgets/group"
	"github.com/PolyhedraZK/bpgadgets/proof"
	"github.com/PolyhedraZK/bpgadgets/transcript"
	"github.com/PolyhedraZK/bpgadgets/utils"
	"github.com/PolyhedraZK/bpgadgets/zkerr"
)

// Verifier checks one proof against the commitments and the constraint system it was built for.
type Verifier struct {
	t     *transcript.Transcript
	pc    *group.PedersenGens
	bg    *group.BulletproofGens
	cs    *builder.Builder
	tasks int

	commitments []bn254.G1Affine
	proof       *proof.Proof

	n, padded  int
	y, z, x, w fr.Element

	uSq, uInvSq, s []fr.Element
}

// New returns a verifier over cs. tasks bounds the goroutines of the final
// multiscalar multiplication.
func New(t *transcript.Transcript, pc *group.PedersenGens, bg *group.BulletproofGens, cs *builder.Builder, tasks int) *Verifier {
	return &Verifier{t: t, pc: pc, bg: bg, cs: cs, tasks: tasks}
}

func failure(format string, args ...any) error {
	return fmt.Errorf("%w: %s", zkerr.ErrVerificationFailure, fmt.Sprintf(format, args...))
}

func (v *Verifier) appendPoint(label string, p *bn254.G1Affine) error {
	if p.IsInfinity() {
		return failure("%s is the identity", label)
	}
	v.t.AppendPoint(label, p)
	return nil
}

// DeriveChallenges replays the prover's transcript using the points of p.
func (v *Verifier) DeriveChallenges(commitments []bn254.G1Affine, p *proof.Proof) error {
	if len(commitments) != v.cs.NumCommitted() {
		return failure("%d commitments for %d committed values", len(commitments), v.cs.NumCommitted())
	}
	v.commitments, v.proof = commitments, p
	v.n = v.cs.NumMultipliers()
	v.padded = proof.PaddedWidth(v.n)
	if p.Rounds() != utils.Log2(v.padded) {
		return failure("proof has %d rounds, width %d needs %d", p.Rounds(), v.padded, utils.Log2(v.padded))
	}

	proof.AppendShape(v.t, v.n, v.cs.NumConstraints(), commitments)
	labels := []string{"A_I", "A_O", "S", "T_1", "T_3", "T_4", "T_5", "T_6"}
	points := p.Points()
	for k := 0; k < 3; k++ {
		if err := v.appendPoint(labels[k], points[k]); err != nil {
			return err
		}
	}
	v.y = v.t.ChallengeScalar("y")
	v.z = v.t.ChallengeScalar("z")
	for k := 3; k < len(points); k++ {
		if err := v.appendPoint(labels[k], points[k]); err != nil {
			return err
		}
	}
	v.x = v.t.ChallengeScalar("x")
	v.t.AppendScalar("t_x", &p.TX)
	v.t.AppendScalar("t_x_blinding", &p.TXBlinding)
	v.t.AppendScalar("e_blinding", &p.EBlinding)
	v.w = v.t.ChallengeScalar("w")

	var err error
	v.uSq, v.uInvSq, v.s, err = p.IPP.VerificationScalars(v.padded, v.t)
	return err
}

// Check evaluates the closing equation as one multiscalar multiplication. The t(x)
// relation is weighted by a fresh random r and added to the inner-product relation.
func (v *Verifier) Check() error {
	if v.proof == nil {
		panic("Check called before DeriveChallenges")
	}
	p := v.proof
	g, h, err := v.bg.Vectors(v.padded)
	if err != nil {
		return err
	}

	var r fr.Element
	if _, err := r.SetRandom(); err != nil {
		return fmt.Errorf("sample weight: %w", err)
	}

	wts := v.cs.Flatten(&v.z)
	var yInv fr.Element
	yInv.Inverse(&v.y)
	yNeg := field.Powers(&yInv, v.padded)
	expX := field.Powers(&v.x, 7)

	// yNegWR = y^{-n}∘wR, δ = <yNegWR, wL>
	yNegWR := make([]fr.Element, v.padded)
	for i := 0; i < v.n; i++ {
		yNegWR[i].Mul(&yNeg[i], &wts.WR[i])
	}
	delta := field.InnerProduct(yNegWR[:v.n], wts.WL)

	size := 3 + len(v.commitments) + 5 + 2 + 2*v.padded + 2*len(v.uSq)
	points := make([]bn254.G1Affine, 0, size)
	scalars := make([]fr.Element, 0, size)
	add := func(pt *bn254.G1Affine, s *fr.Element) {
		points, scalars = append(points, *pt), append(scalars, *s)
	}

	var t, u fr.Element
	add(&p.AI, &expX[1])
	add(&p.AO, &expX[2])
	add(&p.S, &expX[3])

	var rx2 fr.Element
	rx2.Mul(&r, &expX[2])
	for j := range v.commitments {
		t.Mul(&wts.WV[j], &rx2)
		add(&v.commitments[j], &t)
	}

	for j, k := range []int{1, 3, 4, 5, 6} {
		t.Mul(&r, &expX[k])
		add(p.Points()[3+j], &t)
	}

	// B: w(t_x - a·b) + r(x²(wc + δ) - t_x)
	var ab, bScalar fr.Element
	ab.Mul(&p.IPP.A, &p.IPP.B)
	bScalar.Sub(&p.TX, &ab).Mul(&bScalar, &v.w)
	t.Add(&wts.WC, &delta).Mul(&t, &expX[2]).Sub(&t, &p.TX).Mul(&t, &r)
	bScalar.Add(&bScalar, &t)
	add(&v.pc.B, &bScalar)

	// B̃: -e_blinding - r·t_x_blinding
	t.Mul(&r, &p.TXBlinding).Add(&t, &p.EBlinding).Neg(&t)
	add(&v.pc.BBlinding, &t)

	// G_i: x·y^{-i}·wR_i - a·s_i
	for i := 0; i < v.padded; i++ {
		t.Mul(&v.x, &yNegWR[i])
		u.Mul(&p.IPP.A, &v.s[i])
		t.Sub(&t, &u)
		add(&g[i], &t)
	}

	// H_i: y^{-i}(x·wL_i + wO_i - b·s_(N-1-i)) - 1
	one := fr.One()
	for i := 0; i < v.padded; i++ {
		t.SetZero()
		if i < v.n {
			t.Mul(&v.x, &wts.WL[i]).Add(&t, &wts.WO[i])
		}
		u.Mul(&p.IPP.B, &v.s[v.padded-1-i])
		t.Sub(&t, &u).Mul(&t, &yNeg[i]).Sub(&t, &one)
		add(&h[i], &t)
	}

	for i := range v.uSq {
		add(&p.IPP.L[i], &v.uSq[i])
		add(&p.IPP.R[i], &v.uInvSq[i])
	}

	check, err := group.MultiExp(points, scalars, v.tasks)
	if err != nil {
		return err
	}
	if !check.IsInfinity() {
		return failure("closing equation does not hold")
	}
	return nil
}
