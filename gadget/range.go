package gadget

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/PolyhedraZK/bpgadgets/builder"
)

// MaxBits bounds every bit width parameter. Sums of two such values stay far below the
// field order, which the comparison gadgets rely on.
const MaxBits = 128

const defaultBits = 64

type rangeGadget struct {
	name string
	// fixed width, 0 when taken from Params.Bits
	fixed int
}

// Range64 proves that its single witness value fits in 64 bits.
func Range64() Gadget {
	return &rangeGadget{name: "range_64", fixed: 64}
}

// Range proves that its single witness value fits in Params.Bits bits.
func Range() Gadget {
	return &rangeGadget{name: "range"}
}

func (g *rangeGadget) Name() string {
	return g.name
}

func (g *rangeGadget) bits(p Params) (int, error) {
	if g.fixed != 0 {
		return g.fixed, onlyFields(g.name, p, false, false, false, false)
	}
	if err := onlyFields(g.name, p, true, false, false, false); err != nil {
		return 0, err
	}
	if p.Bits < 1 || p.Bits > MaxBits {
		return 0, malformed(g.name, "bits must be in [1, %d], got %d", MaxBits, p.Bits)
	}
	return p.Bits, nil
}

func (g *rangeGadget) Shape(p Params) (Shape, error) {
	if _, err := g.bits(p); err != nil {
		return Shape{}, err
	}
	return Shape{Instance: 0, Witness: 1}, nil
}

func (g *rangeGadget) Define(api builder.API, p Params, _ []fr.Element, witness []builder.Variable) error {
	bits, err := g.bits(p)
	if err != nil {
		return err
	}
	builder.AssertIsInRange(api, witness[0].LC(), bits)
	return nil
}

// widthOrDefault reads Params.Bits for gadgets where it is optional.
func widthOrDefault(name string, p Params) (int, error) {
	if p.Bits == 0 {
		return defaultBits, nil
	}
	if p.Bits < 1 || p.Bits > MaxBits {
		return 0, malformed(name, "bits must be in [1, %d], got %d", MaxBits, p.Bits)
	}
	return p.Bits, nil
}

// fitsIn reports whether the public value x is below 2^bits.
func fitsIn(x *fr.Element, bits int) bool {
	var b big.Int
	x.BigInt(&b)
	return b.BitLen() <= bits
}
