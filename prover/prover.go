// Package prover produces R1CS proofs for a constraint system built in prover mode.
//
// The steps run in the order CommitWitness, DeriveChallenges, Fold and share one
// transcript, which must already hold the statement.
package prover

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/PolyhedraZK/bpgadgets/builder"
	"github.com/PolyhedraZK/bpgadgets/commitment"
	"github.com/PolyhedraZK/bpgadgets/field"
	"github.com/PolyhedraZK/bpgadgets/group"
	"github.com/PolyhedraZK/bpgadgets/ipa"
	"github.com/PolyhedraZK/bpgadgets/proof"
	"github.com/PolyhedraZK/bpgadgets/transcript"
)

// Prover holds one proof in progress, from the witness commitments to the folded vectors.
type Prover struct {
	t     *transcript.Transcript
	pc    *group.PedersenGens
	bg    *group.BulletproofGens
	cs    *builder.Builder
	tasks int

	n, padded int
	g, h      []bn254.G1Affine
	openings  []commitment.Opening

	// blindings of A_I, A_O and S
	i, o, s fr.Element
	sL, sR  []fr.Element

	// folding inputs, set by DeriveChallenges
	y, w                 fr.Element
	lVec, rVec, hFactors []fr.Element

	proof proof.Proof
}

// New returns a prover over cs. tasks bounds the goroutines of every multiscalar
// multiplication.
func New(t *transcript.Transcript, pc *group.PedersenGens, bg *group.BulletproofGens, cs *builder.Builder, tasks int) *Prover {
	if !cs.IsProver() {
		panic("prover needs a builder in prover mode")
	}
	return &Prover{t: t, pc: pc, bg: bg, cs: cs, tasks: tasks}
}

func randomVector(n int) ([]fr.Element, error) {
	v := make([]fr.Element, n)
	for i := range v {
		if _, err := v[i].SetRandom(); err != nil {
			return nil, fmt.Errorf("sample blinding: %w", err)
		}
	}
	return v, nil
}

func (p *Prover) commitVectors(blinding *fr.Element, vecs ...[]fr.Element) (bn254.G1Affine, error) {
	points := []bn254.G1Affine{p.pc.BBlinding}
	scalars := []fr.Element{*blinding}
	bases := [][]bn254.G1Affine{p.g[:p.n], p.h[:p.n]}
	for k, v := range vecs {
		points = append(points, bases[k]...)
		scalars = append(scalars, v...)
	}
	res, err := group.MultiExp(points, scalars, p.tasks)
	field.Zeroize(scalars)
	return res, err
}

// CommitWitness commits to every committed value of the builder with fresh blindings,
// absorbs the commitments and commits to the gate assignments.
func (p *Prover) CommitWitness() ([]bn254.G1Affine, error) {
	V, openings, err := commitment.Commit(p.pc, p.cs.Values())
	if err != nil {
		return nil, err
	}
	p.openings = openings

	p.n = p.cs.NumMultipliers()
	p.padded = proof.PaddedWidth(p.n)
	proof.AppendShape(p.t, p.n, p.cs.NumConstraints(), V)

	if p.g, p.h, err = p.bg.Vectors(p.padded); err != nil {
		return nil, err
	}

	for _, b := range []*fr.Element{&p.i, &p.o, &p.s} {
		if _, err := b.SetRandom(); err != nil {
			return nil, fmt.Errorf("sample blinding: %w", err)
		}
	}
	if p.sL, err = randomVector(p.n); err != nil {
		return nil, err
	}
	if p.sR, err = randomVector(p.n); err != nil {
		return nil, err
	}

	aL, aR, aO := p.cs.Assignments()
	if p.proof.AI, err = p.commitVectors(&p.i, aL, aR); err != nil {
		return nil, err
	}
	if p.proof.AO, err = p.commitVectors(&p.o, aO); err != nil {
		return nil, err
	}
	if p.proof.S, err = p.commitVectors(&p.s, p.sL, p.sR); err != nil {
		return nil, err
	}
	p.t.AppendPoint("A_I", &p.proof.AI)
	p.t.AppendPoint("A_O", &p.proof.AO)
	p.t.AppendPoint("S", &p.proof.S)
	return V, nil
}

// DeriveChallenges computes the polynomial commitments T_i, their evaluation at the
// challenge x and the vectors that go into the inner-product argument.
func (p *Prover) DeriveChallenges() error {
	p.y = p.t.ChallengeScalar("y")
	z := p.t.ChallengeScalar("z")
	wts := p.cs.Flatten(&z)

	var yInv fr.Element
	yInv.Inverse(&p.y)
	expY := field.Powers(&p.y, p.padded)
	p.hFactors = field.Powers(&yInv, p.padded)

	n := p.n
	aL, aR, aO := p.cs.Assignments()
	l1 := make([]fr.Element, n)
	r0 := make([]fr.Element, n)
	r1 := make([]fr.Element, n)
	r3 := make([]fr.Element, n)
	l2, l3 := aO, p.sL
	defer func() {
		field.Zeroize(l1)
		field.Zeroize(r1)
		field.Zeroize(r3)
	}()
	for i := 0; i < n; i++ {
		var t fr.Element
		t.Mul(&p.hFactors[i], &wts.WR[i])
		l1[i].Add(&aL[i], &t)
		r0[i].Sub(&wts.WO[i], &expY[i])
		t.Mul(&expY[i], &aR[i])
		r1[i].Add(&t, &wts.WL[i])
		r3[i].Mul(&expY[i], &p.sR[i])
	}

	var tPoly [7]fr.Element
	tPoly[1] = field.InnerProduct(l1, r0)
	tPoly[2] = sum(field.InnerProduct(l1, r1), field.InnerProduct(l2, r0))
	tPoly[3] = sum(field.InnerProduct(l2, r1), field.InnerProduct(l3, r0))
	tPoly[4] = sum(field.InnerProduct(l1, r3), field.InnerProduct(l3, r1))
	tPoly[5] = field.InnerProduct(l2, r3)
	tPoly[6] = field.InnerProduct(l3, r3)
	defer field.Zeroize(tPoly[:])

	var tau [7]fr.Element
	defer field.Zeroize(tau[:])
	for _, k := range []int{1, 3, 4, 5, 6} {
		if _, err := tau[k].SetRandom(); err != nil {
			return fmt.Errorf("sample blinding: %w", err)
		}
	}
	gamma := commitment.Blindings(p.openings)
	tau[2] = field.InnerProduct(wts.WV, gamma)
	field.Zeroize(gamma)

	T := p.proof.Points()[3:]
	for j, k := range []int{1, 3, 4, 5, 6} {
		var err error
		if *T[j], err = p.pc.Commit(&tPoly[k], &tau[k]); err != nil {
			return err
		}
	}
	p.t.AppendPoint("T_1", &p.proof.T1)
	p.t.AppendPoint("T_3", &p.proof.T3)
	p.t.AppendPoint("T_4", &p.proof.T4)
	p.t.AppendPoint("T_5", &p.proof.T5)
	p.t.AppendPoint("T_6", &p.proof.T6)

	x := p.t.ChallengeScalar("x")
	expX := field.Powers(&x, 7)
	var t fr.Element
	p.proof.TX.SetZero()
	p.proof.TXBlinding.SetZero()
	for k := 1; k <= 6; k++ {
		t.Mul(&tPoly[k], &expX[k])
		p.proof.TX.Add(&p.proof.TX, &t)
		t.Mul(&tau[k], &expX[k])
		p.proof.TXBlinding.Add(&p.proof.TXBlinding, &t)
	}
	// e_blinding = x(i + x(o + x·s))
	e := &p.proof.EBlinding
	e.Mul(&x, &p.s).Add(e, &p.o).Mul(e, &x).Add(e, &p.i).Mul(e, &x)

	p.t.AppendScalar("t_x", &p.proof.TX)
	p.t.AppendScalar("t_x_blinding", &p.proof.TXBlinding)
	p.t.AppendScalar("e_blinding", &p.proof.EBlinding)
	p.w = p.t.ChallengeScalar("w")

	// l(x) = l1·x + l2·x² + l3·x³, r(x) = r0 + r1·x + r3·x³, padded with l = 0, r = -y^i
	p.lVec = make([]fr.Element, p.padded)
	p.rVec = make([]fr.Element, p.padded)
	for i := 0; i < n; i++ {
		l := &p.lVec[i]
		l.Mul(&l3[i], &x).Add(l, &l2[i]).Mul(l, &x).Add(l, &l1[i]).Mul(l, &x)

		r := &p.rVec[i]
		t.Mul(&r3[i], &expX[3])
		r.Mul(&r1[i], &x).Add(r, &r0[i]).Add(r, &t)
	}
	for i := n; i < p.padded; i++ {
		p.rVec[i].Neg(&expY[i])
	}
	return nil
}

func sum(a, b fr.Element) fr.Element {
	var res fr.Element
	res.Add(&a, &b)
	return res
}

// Fold runs the inner-product argument on l(x) and r(x) and returns the finished proof.
func (p *Prover) Fold() (*proof.Proof, error) {
	defer p.Zeroize()
	q := group.ScalarMul(&p.pc.B, &p.w)
	gFactors := make([]fr.Element, p.padded)
	for i := range gFactors {
		gFactors[i].SetOne()
	}
	ipp, err := ipa.Prove(p.t, &q, gFactors, p.hFactors, p.g, p.h, p.lVec, p.rVec, p.tasks)
	if err != nil {
		return nil, err
	}
	p.proof.IPP = *ipp
	res := p.proof
	return &res, nil
}

// Zeroize clears every secret the prover holds. It is safe to call more than once.
func (p *Prover) Zeroize() {
	commitment.Zeroize(p.openings)
	field.Zeroize(p.sL)
	field.Zeroize(p.sR)
	field.Zeroize(p.lVec)
	field.Zeroize(p.rVec)
	p.i.SetZero()
	p.o.SetZero()
	p.s.SetZero()
}
