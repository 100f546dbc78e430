package test

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/PolyhedraZK/bpgadgets"
	"github.com/PolyhedraZK/bpgadgets/builder"
	"github.com/PolyhedraZK/bpgadgets/gadget"
	"github.com/PolyhedraZK/bpgadgets/zkerr"
)

// IsSatisfied builds the constraint system of st over witness and checks every gate and
// constraint, without committing or proving.
func IsSatisfied(registry *gadget.Registry, st bpgadgets.Statement, witness []fr.Element) error {
	g, err := registry.Lookup(st.Gadget)
	if err != nil {
		return err
	}
	shape, err := g.Shape(st.Params)
	if err != nil {
		return err
	}
	if len(st.Instance) != shape.Instance || len(witness) != shape.Witness {
		return fmt.Errorf("%w: %s takes %d instance and %d witness values",
			zkerr.ErrMalformedInstance, g.Name(), shape.Instance, shape.Witness)
	}
	cs := builder.NewProver(witness)
	defer cs.Zeroize()
	if err := g.Define(cs, st.Params, st.Instance, cs.Committed()); err != nil {
		return err
	}
	return cs.Check()
}
