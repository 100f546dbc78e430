package gadget

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/PolyhedraZK/bpgadgets/builder"
)

type boundsGadget struct{}

// Bounds proves min <= w0 <= max for public min = i0 and max = i1. All three values
// are below 2^Params.Bits (64 when unset).
func Bounds() Gadget {
	return boundsGadget{}
}

func (boundsGadget) Name() string {
	return "bounds"
}

func (g boundsGadget) Shape(p Params) (Shape, error) {
	if err := onlyFields(g.Name(), p, true, false, false, false); err != nil {
		return Shape{}, err
	}
	if _, err := widthOrDefault(g.Name(), p); err != nil {
		return Shape{}, err
	}
	return Shape{Instance: 2, Witness: 1}, nil
}

func (g boundsGadget) Define(api builder.API, p Params, instance []fr.Element, witness []builder.Variable) error {
	bits, err := widthOrDefault(g.Name(), p)
	if err != nil {
		return err
	}
	for i := range instance {
		if !fitsIn(&instance[i], bits) {
			return malformed(g.Name(), "bound %d does not fit in %d bits", i, bits)
		}
	}
	v := witness[0].LC()
	lo, hi := builder.Constant(instance[0]), builder.Constant(instance[1])
	builder.AssertIsLessOrEqual(api, lo, v, bits)
	builder.AssertIsLessOrEqual(api, v, hi, bits)
	return nil
}

type lessThanGadget struct{}

// LessThan proves w0 < w1 where both are below 2^Params.Bits (64 when unset).
func LessThan() Gadget {
	return lessThanGadget{}
}

func (lessThanGadget) Name() string {
	return "less_than"
}

func (g lessThanGadget) Shape(p Params) (Shape, error) {
	if err := onlyFields(g.Name(), p, true, false, false, false); err != nil {
		return Shape{}, err
	}
	if _, err := widthOrDefault(g.Name(), p); err != nil {
		return Shape{}, err
	}
	return Shape{Instance: 0, Witness: 2}, nil
}

func (g lessThanGadget) Define(api builder.API, p Params, _ []fr.Element, witness []builder.Variable) error {
	bits, err := widthOrDefault(g.Name(), p)
	if err != nil {
		return err
	}
	a, b := witness[0].LC(), witness[1].LC()
	builder.AssertIsInRange(api, a, bits)
	builder.AssertIsInRange(api, b, bits)
	builder.AssertIsLessOrEqual(api, a.Add(builder.ConstantUint64(1)), b, bits)
	return nil
}
