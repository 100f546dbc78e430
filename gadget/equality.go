package gadget

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/PolyhedraZK/bpgadgets/builder"
)

type equalityGadget struct{}

// Equality proves w0 = w1 without revealing either.
func Equality() Gadget {
	return equalityGadget{}
}

func (equalityGadget) Name() string {
	return "equality"
}

func (g equalityGadget) Shape(p Params) (Shape, error) {
	if err := onlyFields(g.Name(), p, false, false, false, false); err != nil {
		return Shape{}, err
	}
	return Shape{Instance: 0, Witness: 2}, nil
}

func (equalityGadget) Define(api builder.API, _ Params, _ []fr.Element, witness []builder.Variable) error {
	builder.AssertIsEqual(api, witness[0].LC(), witness[1].LC())
	return nil
}

type equalityPublicGadget struct{}

// EqualityPublic proves that the committed w0 equals the public i0.
func EqualityPublic() Gadget {
	return equalityPublicGadget{}
}

func (equalityPublicGadget) Name() string {
	return "equality_public"
}

func (g equalityPublicGadget) Shape(p Params) (Shape, error) {
	if err := onlyFields(g.Name(), p, false, false, false, false); err != nil {
		return Shape{}, err
	}
	return Shape{Instance: 1, Witness: 1}, nil
}

func (equalityPublicGadget) Define(api builder.API, _ Params, instance []fr.Element, witness []builder.Variable) error {
	builder.AssertIsEqual(api, witness[0].LC(), builder.Constant(instance[0]))
	return nil
}

type inequalityGadget struct{}

// Inequality proves w0 != i0.
func Inequality() Gadget {
	return inequalityGadget{}
}

func (inequalityGadget) Name() string {
	return "inequality"
}

func (g inequalityGadget) Shape(p Params) (Shape, error) {
	if err := onlyFields(g.Name(), p, false, false, false, false); err != nil {
		return Shape{}, err
	}
	return Shape{Instance: 1, Witness: 1}, nil
}

func (inequalityGadget) Define(api builder.API, _ Params, instance []fr.Element, witness []builder.Variable) error {
	builder.AssertIsDifferent(api, witness[0].LC(), builder.Constant(instance[0]))
	return nil
}
