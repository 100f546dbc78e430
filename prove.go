package bpgadgets

import (
	"time"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/PolyhedraZK/bpgadgets/field"
	"github.com/PolyhedraZK/bpgadgets/prover"
	"github.com/PolyhedraZK/bpgadgets/zkerr"
)

// Prove builds the constraint system of st over witness, checks that the witness
// satisfies it and produces commitments and a proof. The witness slice is zeroed before
// Prove returns. A witness that violates the gadget yields an error wrapping
// zkerr.ErrWitnessConstraintViolation and no commitment is ever computed for it.
func (e *Engine) Prove(st Statement, witness []fr.Element) (res *Result, err error) {
	start := time.Now()
	log := e.log.With().Str("gadget", st.Gadget).Logger()
	m := newMachine(log)
	defer func() {
		field.Zeroize(witness)
		m.finish(err, StateDone, StateFailed)
		if e.observe != nil {
			e.observe(m.trace)
		}
		proofLen := 0
		if err == nil {
			proofLen = len(res.ProofBytes)
			log.Debug().Dur("took", time.Since(start)).Int("proofBytes", proofLen).Msg("proved")
		} else {
			log.Debug().Err(err).Str("kind", zkerr.Kind(err)).Msg("prove failed")
		}
		e.metrics.ObserveProve(st.Gadget, err, time.Since(start), proofLen)
	}()

	m.enter(StateBuildConstraints)
	g, err := e.registry.Lookup(st.Gadget)
	if err != nil {
		return nil, err
	}
	cs, err := e.compile(g, st, witness, true)
	if err != nil {
		return nil, err
	}
	defer cs.Zeroize()

	m.enter(StateCommit)
	p := prover.New(newTranscript(st), &e.pc, e.bg, cs, e.tasks)
	defer p.Zeroize()
	commitments, err := p.CommitWitness()
	if err != nil {
		return nil, err
	}

	m.enter(StateDeriveChallenges)
	if err := p.DeriveChallenges(); err != nil {
		return nil, err
	}

	m.enter(StateRunFoldingRounds)
	pr, err := p.Fold()
	if err != nil {
		return nil, err
	}

	m.enter(StateSerialize)
	return &Result{
		Commitments: commitments,
		Proof:       pr,
		ProofBytes:  pr.Serialize(),
	}, nil
}
