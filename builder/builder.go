// Package builder records the constraint system of a gadget: multiplication gates
// a_L·a_R = a_O and linear constraints over committed values, gate wires and the
// constant one.
//
// A prover builder carries the witness and every gate assignment. A verifier builder
// carries none of them; all values evaluate to zero there, which yields the same gates and
// constraints as long as gadgets only branch on public data.
package builder

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/PolyhedraZK/bpgadgets/field"
	"github.com/PolyhedraZK/bpgadgets/zkerr"
)

type Builder struct {
	prover bool

	// committed values, zero in verifier mode
	v []fr.Element

	aL, aR, aO []fr.Element

	// index of a gate whose right input is still free, -1 if none
	pending int

	constraints []LinearCombination
}

// NewProver returns a builder over a copy of witness. Each witness value maps to one
// committed variable.
func NewProver(witness []fr.Element) *Builder {
	v := make([]fr.Element, len(witness))
	copy(v, witness)
	return &Builder{prover: true, v: v, pending: -1}
}

// NewVerifier returns a builder for m committed values whose openings are unknown.
func NewVerifier(m int) *Builder {
	if m < 0 {
		panic("negative number of committed values")
	}
	return &Builder{v: make([]fr.Element, m), pending: -1}
}

var _ API = (*Builder)(nil)

func (b *Builder) IsProver() bool {
	return b.prover
}

// Committed returns the committed variables in witness order.
func (b *Builder) Committed() []Variable {
	res := make([]Variable, len(b.v))
	for i := range res {
		res[i] = newVariable(KindCommitted, i)
	}
	return res
}

func (b *Builder) NumCommitted() int {
	return len(b.v)
}

func (b *Builder) NumMultipliers() int {
	return len(b.aL)
}

func (b *Builder) NumConstraints() int {
	return len(b.constraints)
}

func (b *Builder) push(l, r fr.Element) int {
	var o fr.Element
	o.Mul(&l, &r)
	b.aL = append(b.aL, l)
	b.aR = append(b.aR, r)
	b.aO = append(b.aO, o)
	return len(b.aL) - 1
}

func gate(i int) (Variable, Variable, Variable) {
	return newVariable(KindMultiplierLeft, i), newVariable(KindMultiplierRight, i), newVariable(KindMultiplierOutput, i)
}

func (b *Builder) Multiply(l, r LinearCombination) (Variable, Variable, Variable) {
	i := b.push(b.Eval(l), b.Eval(r))
	left, right, out := gate(i)
	b.Constrain(l.Sub(left.LC()))
	b.Constrain(r.Sub(right.LC()))
	return left, right, out
}

func (b *Builder) Allocate(value fr.Element) Variable {
	if b.pending >= 0 {
		i := b.pending
		b.pending = -1
		b.aR[i] = value
		b.aO[i].Mul(&b.aL[i], &b.aR[i])
		return newVariable(KindMultiplierRight, i)
	}
	b.pending = b.push(value, fr.Element{})
	return newVariable(KindMultiplierLeft, b.pending)
}

func (b *Builder) AllocateMultiplier(l, r fr.Element) (Variable, Variable, Variable) {
	return gate(b.push(l, r))
}

func (b *Builder) Constrain(lc LinearCombination) {
	b.constraints = append(b.constraints, lc)
}

func (b *Builder) value(v Variable) *fr.Element {
	switch v.kind {
	case KindCommitted:
		return &b.v[v.index]
	case KindMultiplierLeft:
		return &b.aL[v.index]
	case KindMultiplierRight:
		return &b.aR[v.index]
	case KindMultiplierOutput:
		return &b.aO[v.index]
	}
	one := fr.One()
	return &one
}

func (b *Builder) Eval(lc LinearCombination) fr.Element {
	var res, t fr.Element
	for i := range lc.terms {
		t.Mul(&lc.terms[i].Coeff, b.value(lc.terms[i].Var))
		res.Add(&res, &t)
	}
	return res
}

// Check evaluates every gate and constraint under the prover assignment. It reports the
// first failing constraint but always evaluates all of them.
func (b *Builder) Check() error {
	if !b.prover {
		return fmt.Errorf("check called on a verifier builder")
	}
	badGate, badConstraint := -1, -1
	var t fr.Element
	for i := range b.aL {
		t.Mul(&b.aL[i], &b.aR[i])
		if !t.Equal(&b.aO[i]) && badGate < 0 {
			badGate = i
		}
	}
	for q := range b.constraints {
		t = b.Eval(b.constraints[q])
		if !t.IsZero() && badConstraint < 0 {
			badConstraint = q
		}
	}
	if badGate >= 0 {
		return fmt.Errorf("%w: gate %d is inconsistent", zkerr.ErrWitnessConstraintViolation, badGate)
	}
	if badConstraint >= 0 {
		return fmt.Errorf("%w: constraint %d of %d is not satisfied", zkerr.ErrWitnessConstraintViolation, badConstraint, len(b.constraints))
	}
	return nil
}

// Values returns the committed values in witness order. The slice aliases the builder
// and is all zeros on a verifier builder.
func (b *Builder) Values() []fr.Element {
	return b.v
}

// Assignments exposes the gate vectors to the prover. The slices alias the builder.
func (b *Builder) Assignments() (aL, aR, aO []fr.Element) {
	return b.aL, b.aR, b.aO
}

// Zeroize clears the witness copy and every gate assignment.
func (b *Builder) Zeroize() {
	field.Zeroize(b.v)
	field.Zeroize(b.aL)
	field.Zeroize(b.aR)
	field.Zeroize(b.aO)
}
