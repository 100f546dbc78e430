// Package gadget defines named circuit templates and the registry that resolves them.
package gadget

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/PolyhedraZK/bpgadgets/builder"
	"github.com/PolyhedraZK/bpgadgets/utils"
	"github.com/PolyhedraZK/bpgadgets/zkerr"
)

// Params is the typed parameter block shared by all gadgets. Each gadget reads the
// fields it needs and validates them in Shape; unused fields must be zero.
type Params struct {
	Bits    int `yaml:"bits"`
	Depth   int `yaml:"depth"`
	SetSize int `yaml:"set_size"`
	Arity   int `yaml:"arity"`
	// Entries lists the sub-statements of the and/or gadgets.
	Entries []Entry `yaml:"entries,omitempty"`
}

// Entry places one gadget inside a composite statement. Instance and Witness index the
// instance and witness of the enclosing statement; entries naming the same witness index
// share one committed variable.
type Entry struct {
	Gadget   string `yaml:"gadget"`
	Params   Params `yaml:"params,omitempty"`
	Instance []int  `yaml:"instance,flow,omitempty"`
	Witness  []int  `yaml:"witness,flow,omitempty"`
}

// Bytes is the canonical encoding absorbed into the transcript.
func (p Params) Bytes() []byte {
	o := utils.NewOutputBuf(32)
	p.append(o)
	return o.Bytes()
}

// append writes the four integers, followed by the entries when there are any.
func (p Params) append(o *utils.OutputBuf) {
	for _, x := range []int{p.Bits, p.Depth, p.SetSize, p.Arity} {
		o.AppendUint64(uint64(x))
	}
	if len(p.Entries) == 0 {
		return
	}
	o.AppendUint64(uint64(len(p.Entries)))
	for _, e := range p.Entries {
		o.AppendUint64(uint64(len(e.Gadget)))
		o.AppendBytes([]byte(e.Gadget))
		sub := e.Params.Bytes()
		o.AppendUint64(uint64(len(sub)))
		o.AppendBytes(sub)
		for _, idx := range [][]int{e.Instance, e.Witness} {
			o.AppendUint64(uint64(len(idx)))
			for _, i := range idx {
				o.AppendUint64(uint64(i))
			}
		}
	}
}

// Shape is the number of public instance values and private witness values a gadget
// takes under some Params.
type Shape struct {
	Instance int
	Witness  int
}

// Gadget is a named constraint template.
type Gadget interface {
	Name() string
	// Shape validates p and returns the input layout.
	Shape(p Params) (Shape, error)
	// Define adds the constraints. instance and witness have the lengths given by Shape.
	Define(api builder.API, p Params, instance []fr.Element, witness []builder.Variable) error
}

func malformed(name, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", zkerr.ErrMalformedInstance, name, fmt.Sprintf(format, args...))
}

// onlyFields rejects parameters a gadget does not use.
func onlyFields(name string, p Params, bits, depth, setSize, arity bool) error {
	switch {
	case len(p.Entries) != 0:
		return malformed(name, "unexpected entries")
	case !bits && p.Bits != 0:
		return malformed(name, "unexpected bits parameter")
	case !depth && p.Depth != 0:
		return malformed(name, "unexpected depth parameter")
	case !setSize && p.SetSize != 0:
		return malformed(name, "unexpected set_size parameter")
	case !arity && p.Arity != 0:
		return malformed(name, "unexpected arity parameter")
	}
	return nil
}
