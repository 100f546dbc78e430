package gadget

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/PolyhedraZK/bpgadgets/builder"
)

// MaxEntries bounds the number of entries of one and/or statement.
const MaxEntries = 64

type composite struct {
	name     string
	registry *Registry
	// or gadgets gate each entry with a selector bit
	disjunction bool
}

// And proves every entry over one constraint system. Entries resolve their gadget in r
// when the statement is shaped, so gadgets registered later are usable too.
func And(r *Registry) Gadget {
	return &composite{name: "and", registry: r}
}

// Or proves that at least one entry holds without revealing which.
func Or(r *Registry) Gadget {
	return &composite{name: "or", registry: r, disjunction: true}
}

func (g *composite) Name() string {
	return g.name
}

type resolved struct {
	g     Gadget
	entry Entry
}

// resolve looks up every entry and checks its index lists. The statement shape is one
// past the largest index, and every index below that must be used by some entry.
func (g *composite) resolve(p Params) ([]resolved, Shape, error) {
	if p.Bits != 0 || p.Depth != 0 || p.SetSize != 0 || p.Arity != 0 {
		return nil, Shape{}, malformed(g.name, "only entries may be set")
	}
	if len(p.Entries) == 0 || len(p.Entries) > MaxEntries {
		return nil, Shape{}, malformed(g.name, "needs 1 to %d entries, got %d", MaxEntries, len(p.Entries))
	}
	res := make([]resolved, len(p.Entries))
	var shape Shape
	for i, e := range p.Entries {
		sub, err := g.registry.Lookup(e.Gadget)
		if err != nil {
			return nil, Shape{}, err
		}
		subShape, err := sub.Shape(e.Params)
		if err != nil {
			return nil, Shape{}, err
		}
		if len(e.Instance) != subShape.Instance || len(e.Witness) != subShape.Witness {
			return nil, Shape{}, malformed(g.name, "entry %d (%s) takes %d instance and %d witness indices, got %d and %d",
				i, e.Gadget, subShape.Instance, subShape.Witness, len(e.Instance), len(e.Witness))
		}
		for _, idx := range e.Instance {
			if idx < 0 {
				return nil, Shape{}, malformed(g.name, "entry %d has a negative instance index", i)
			}
			shape.Instance = max(shape.Instance, idx+1)
		}
		for _, idx := range e.Witness {
			if idx < 0 {
				return nil, Shape{}, malformed(g.name, "entry %d has a negative witness index", i)
			}
			shape.Witness = max(shape.Witness, idx+1)
		}
		res[i] = resolved{g: sub, entry: e}
	}
	if err := g.covered(res, shape); err != nil {
		return nil, Shape{}, err
	}
	return res, shape, nil
}

func (g *composite) covered(res []resolved, shape Shape) error {
	usedI := make([]bool, shape.Instance)
	usedW := make([]bool, shape.Witness)
	for _, r := range res {
		for _, idx := range r.entry.Instance {
			usedI[idx] = true
		}
		for _, idx := range r.entry.Witness {
			usedW[idx] = true
		}
	}
	for i, ok := range usedI {
		if !ok {
			return malformed(g.name, "instance value %d is not used by any entry", i)
		}
	}
	for i, ok := range usedW {
		if !ok {
			return malformed(g.name, "witness value %d is not used by any entry", i)
		}
	}
	return nil
}

func (g *composite) Shape(p Params) (Shape, error) {
	_, shape, err := g.resolve(p)
	return shape, err
}

func (r resolved) args(instance []fr.Element, witness []builder.Variable) ([]fr.Element, []builder.Variable) {
	inst := make([]fr.Element, len(r.entry.Instance))
	for i, idx := range r.entry.Instance {
		inst[i] = instance[idx]
	}
	wit := make([]builder.Variable, len(r.entry.Witness))
	for i, idx := range r.entry.Witness {
		wit[i] = witness[idx]
	}
	return inst, wit
}

func (g *composite) Define(api builder.API, p Params, instance []fr.Element, witness []builder.Variable) error {
	entries, _, err := g.resolve(p)
	if err != nil {
		return err
	}
	if !g.disjunction {
		for _, r := range entries {
			inst, wit := r.args(instance, witness)
			if err := r.g.Define(api, r.entry.Params, inst, wit); err != nil {
				return err
			}
		}
		return nil
	}

	chosen := -1
	if api.IsProver() {
		if chosen, err = firstSatisfied(api, entries, instance, witness); err != nil {
			return err
		}
	}
	// exactly one selector is 1
	var sum builder.LinearCombination
	selectors := make([]builder.Variable, len(entries))
	for i := range entries {
		var s fr.Element
		if i == chosen {
			s.SetOne()
		}
		selectors[i] = api.Allocate(s)
		builder.AssertIsBoolean(api, selectors[i].LC())
		sum = sum.Add(selectors[i].LC())
	}
	builder.AssertIsEqual(api, sum, builder.One.LC())

	for i, r := range entries {
		inst, wit := r.args(instance, witness)
		ga := &gated{API: api}
		if err := r.g.Define(ga, r.entry.Params, inst, wit); err != nil {
			return err
		}
		// s·lc = 0 for every linear constraint of the branch
		for _, lc := range ga.constraints {
			_, _, out := api.Multiply(selectors[i].LC(), lc)
			api.Constrain(out.LC())
		}
	}
	return nil
}

// firstSatisfied returns the first entry whose constraints hold under the prover
// assignment, or 0 when none does so that the final check reports the violation.
func firstSatisfied(api builder.API, entries []resolved, instance []fr.Element, witness []builder.Variable) (int, error) {
	for i, r := range entries {
		inst, wit := r.args(instance, witness)
		values := make([]fr.Element, len(wit))
		for j := range wit {
			values[j] = api.Eval(wit[j].LC())
		}
		scratch := builder.NewProver(values)
		err := r.g.Define(scratch, r.entry.Params, inst, scratch.Committed())
		ok := err == nil && scratch.Check() == nil
		scratch.Zeroize()
		for j := range values {
			values[j].SetZero()
		}
		if err != nil {
			return 0, err
		}
		if ok {
			return i, nil
		}
	}
	return 0, nil
}

// gated collects the linear constraints of one branch instead of adding them. Gates
// still go to the underlying builder, together with the wiring constraints of Multiply.
type gated struct {
	builder.API
	constraints []builder.LinearCombination
}

func (g *gated) Constrain(lc builder.LinearCombination) {
	g.constraints = append(g.constraints, lc)
}
