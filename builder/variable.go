package builder

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Kind says which wire vector a Variable points into.
type Kind uint8

const (
	KindOne Kind = iota
	KindCommitted
	KindMultiplierLeft
	KindMultiplierRight
	KindMultiplierOutput
)

func (k Kind) String() string {
	switch k {
	case KindOne:
		return "one"
	case KindCommitted:
		return "committed"
	case KindMultiplierLeft:
		return "left"
	case KindMultiplierRight:
		return "right"
	case KindMultiplierOutput:
		return "output"
	}
	return "unknown"
}

// Variable is a wire of the constraint system.
type Variable struct {
	kind  Kind
	index int
}

// One is the constant wire.
var One = Variable{kind: KindOne}

func newVariable(kind Kind, index int) Variable {
	return Variable{kind: kind, index: index}
}

func (v Variable) Kind() Kind {
	return v.kind
}

func (v Variable) Index() int {
	return v.index
}

// LC lifts v into a linear combination with coefficient one.
func (v Variable) LC() LinearCombination {
	return LinearCombination{terms: []Term{{Var: v, Coeff: fr.One()}}}
}

type Term struct {
	Var   Variable
	Coeff fr.Element
}

// LinearCombination is Σ coeff·var. Methods never modify the receiver.
type LinearCombination struct {
	terms []Term
}

// Constant returns the combination c·One.
func Constant(c fr.Element) LinearCombination {
	return LinearCombination{terms: []Term{{Var: One, Coeff: c}}}
}

func ConstantUint64(c uint64) LinearCombination {
	var e fr.Element
	e.SetUint64(c)
	return Constant(e)
}

func (lc LinearCombination) Terms() []Term {
	return lc.terms
}

func (lc LinearCombination) clone(extra int) []Term {
	res := make([]Term, len(lc.terms), len(lc.terms)+extra)
	copy(res, lc.terms)
	return res
}

func (lc LinearCombination) Add(o LinearCombination) LinearCombination {
	res := lc.clone(len(o.terms))
	return LinearCombination{terms: append(res, o.terms...)}
}

func (lc LinearCombination) Sub(o LinearCombination) LinearCombination {
	res := lc.clone(len(o.terms))
	for _, t := range o.terms {
		t.Coeff.Neg(&t.Coeff)
		res = append(res, t)
	}
	return LinearCombination{terms: res}
}

func (lc LinearCombination) AddTerm(v Variable, c fr.Element) LinearCombination {
	res := lc.clone(1)
	return LinearCombination{terms: append(res, Term{Var: v, Coeff: c})}
}

func (lc LinearCombination) Scale(c fr.Element) LinearCombination {
	res := lc.clone(0)
	for i := range res {
		res[i].Coeff.Mul(&res[i].Coeff, &c)
	}
	return LinearCombination{terms: res}
}

func (lc LinearCombination) Neg() LinearCombination {
	var minusOne fr.Element
	minusOne.SetOne().Neg(&minusOne)
	return lc.Scale(minusOne)
}

// Simplify merges terms over the same variable and drops zero coefficients, keeping the
// order of first occurrence.
func (lc LinearCombination) Simplify() LinearCombination {
	pos := make(map[Variable]int, len(lc.terms))
	res := make([]Term, 0, len(lc.terms))
	for _, t := range lc.terms {
		if i, ok := pos[t.Var]; ok {
			res[i].Coeff.Add(&res[i].Coeff, &t.Coeff)
			continue
		}
		pos[t.Var] = len(res)
		res = append(res, t)
	}
	out := res[:0]
	for _, t := range res {
		if !t.Coeff.IsZero() {
			out = append(out, t)
		}
	}
	return LinearCombination{terms: out}
}
