package gadget

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/PolyhedraZK/bpgadgets/builder"
	"github.com/PolyhedraZK/bpgadgets/mimc"
)

const (
	MaxArity = 64
	MaxDepth = 32
)

type mimcHashGadget struct {
	param *mimc.Params
}

// MimcHash proves knowledge of Params.Arity values (1 when unset) whose MiMC hash is
// the public i0.
func MimcHash(param *mimc.Params) Gadget {
	return &mimcHashGadget{param: param}
}

func (g *mimcHashGadget) Name() string {
	return "mimc_hash"
}

func (g *mimcHashGadget) arity(p Params) (int, error) {
	if err := onlyFields(g.Name(), p, false, false, false, true); err != nil {
		return 0, err
	}
	if p.Arity == 0 {
		return 1, nil
	}
	if p.Arity < 0 || p.Arity > MaxArity {
		return 0, malformed(g.Name(), "arity must be in [1, %d], got %d", MaxArity, p.Arity)
	}
	return p.Arity, nil
}

func (g *mimcHashGadget) Shape(p Params) (Shape, error) {
	k, err := g.arity(p)
	if err != nil {
		return Shape{}, err
	}
	return Shape{Instance: 1, Witness: k}, nil
}

func (g *mimcHashGadget) Define(api builder.API, _ Params, instance []fr.Element, witness []builder.Variable) error {
	inputs := make([]builder.LinearCombination, len(witness))
	for i, w := range witness {
		inputs[i] = w.LC()
	}
	image := mimc.HashCircuit(api, g.param, inputs)
	builder.AssertIsEqual(api, image, builder.Constant(instance[0]))
	return nil
}

type merkleGadget struct {
	param *mimc.Params
}

// Merkle proves membership of a hidden leaf in a MiMC Merkle tree with public root i0.
// The witness is the leaf, then Params.Depth siblings from the bottom up, then one
// direction bit per level (1 when the running node is the right child).
func Merkle(param *mimc.Params) Gadget {
	return &merkleGadget{param: param}
}

func (g *merkleGadget) Name() string {
	return "merkle"
}

func (g *merkleGadget) Shape(p Params) (Shape, error) {
	if err := onlyFields(g.Name(), p, false, true, false, false); err != nil {
		return Shape{}, err
	}
	if p.Depth < 1 || p.Depth > MaxDepth {
		return Shape{}, malformed(g.Name(), "depth must be in [1, %d], got %d", MaxDepth, p.Depth)
	}
	return Shape{Instance: 1, Witness: 1 + 2*p.Depth}, nil
}

func (g *merkleGadget) Define(api builder.API, p Params, instance []fr.Element, witness []builder.Variable) error {
	d := p.Depth
	cur := witness[0].LC()
	siblings, dirs := witness[1:1+d], witness[1+d:]
	for i := 0; i < d; i++ {
		dir, sib := dirs[i].LC(), siblings[i].LC()
		builder.AssertIsBoolean(api, dir)
		left := builder.Select(api, dir, sib, cur)
		right := sib.Add(cur).Sub(left)
		cur = mimc.CompressCircuit(api, g.param, left, right)
	}
	builder.AssertIsEqual(api, cur, builder.Constant(instance[0]))
	return nil
}
