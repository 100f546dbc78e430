package bpgadgets

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/PolyhedraZK/bpgadgets/builder"
	"github.com/PolyhedraZK/bpgadgets/gadget"
	"github.com/PolyhedraZK/bpgadgets/transcript"
	"github.com/PolyhedraZK/bpgadgets/zkerr"
)

// compile builds the constraint system of st. With a witness it returns a prover builder
// whose assignment has been checked; with a nil witness it returns a verifier builder.
func (e *Engine) compile(g gadget.Gadget, st Statement, witness []fr.Element, prover bool) (*builder.Builder, error) {
	shape, err := g.Shape(st.Params)
	if err != nil {
		return nil, err
	}
	if len(st.Instance) != shape.Instance {
		return nil, fmt.Errorf("%w: %s takes %d instance values, got %d",
			zkerr.ErrMalformedInstance, g.Name(), shape.Instance, len(st.Instance))
	}
	var cs *builder.Builder
	if prover {
		if len(witness) != shape.Witness {
			return nil, fmt.Errorf("%w: %s takes %d witness values, got %d",
				zkerr.ErrMalformedInstance, g.Name(), shape.Witness, len(witness))
		}
		cs = builder.NewProver(witness)
	} else {
		cs = builder.NewVerifier(shape.Witness)
	}

	if err := g.Define(cs, st.Params, st.Instance, cs.Committed()); err != nil {
		cs.Zeroize()
		return nil, err
	}
	if n := cs.NumMultipliers(); n > e.maxMultipliers {
		cs.Zeroize()
		return nil, fmt.Errorf("%w: %s needs %d multipliers, limit is %d",
			zkerr.ErrAllocation, g.Name(), n, e.maxMultipliers)
	}
	if prover {
		if err := cs.Check(); err != nil {
			cs.Zeroize()
			return nil, err
		}
	}
	e.log.Debug().
		Str("gadget", g.Name()).
		Int("nbMultipliers", cs.NumMultipliers()).
		Int("nbConstraints", cs.NumConstraints()).
		Int("nbCommitted", cs.NumCommitted()).
		Msg("built constraint system")
	return cs, nil
}

// newTranscript absorbs the statement. Prover and verifier must agree on every byte.
func newTranscript(st Statement) *transcript.Transcript {
	t := transcript.New(st.Gadget)
	t.AppendMessage("dom-sep", []byte("r1cs v1"))
	t.AppendMessage("params", st.Params.Bytes())
	t.AppendU64("k", uint64(len(st.Instance)))
	for i := range st.Instance {
		t.AppendScalar("I", &st.Instance[i])
	}
	return t
}
