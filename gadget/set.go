package gadget

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/PolyhedraZK/bpgadgets/builder"
)

// MaxSetSize bounds Params.SetSize.
const MaxSetSize = 1 << 12

type setMembershipGadget struct{}

// SetMembership proves that w0 is one of the Params.SetSize public instance values, by
// constraining Π (w0 - i_k) = 0.
func SetMembership() Gadget {
	return setMembershipGadget{}
}

func (setMembershipGadget) Name() string {
	return "set_membership"
}

func (g setMembershipGadget) Shape(p Params) (Shape, error) {
	if err := onlyFields(g.Name(), p, false, false, true, false); err != nil {
		return Shape{}, err
	}
	if p.SetSize < 1 || p.SetSize > MaxSetSize {
		return Shape{}, malformed(g.Name(), "set_size must be in [1, %d], got %d", MaxSetSize, p.SetSize)
	}
	return Shape{Instance: p.SetSize, Witness: 1}, nil
}

func (setMembershipGadget) Define(api builder.API, _ Params, instance []fr.Element, witness []builder.Variable) error {
	v := witness[0].LC()
	acc := v.Sub(builder.Constant(instance[0]))
	for k := 1; k < len(instance); k++ {
		_, _, out := api.Multiply(acc, v.Sub(builder.Constant(instance[k])))
		acc = out.LC()
	}
	api.Constrain(acc)
	return nil
}
