package bpgadgets

import (
	"fmt"
	"runtime"
	"time"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"golang.org/x/sync/errgroup"

	"github.com/PolyhedraZK/bpgadgets/commitment"
	"github.com/PolyhedraZK/bpgadgets/proof"
	"github.com/PolyhedraZK/bpgadgets/verifier"
	"github.com/PolyhedraZK/bpgadgets/zkerr"
)

// Verify decodes commitmentsText and proofBytes and checks the proof against st.
// It returns nil on acceptance. Malformed encodings wrap zkerr.ErrDeserialization and a
// proof that does not verify wraps zkerr.ErrVerificationFailure.
func (e *Engine) Verify(st Statement, commitmentsText string, proofBytes []byte) error {
	return e.verify(st, func() ([]bn254.G1Affine, *proof.Proof, error) {
		commitments, err := commitment.DecodeText(commitmentsText)
		if err != nil {
			return nil, nil, err
		}
		p, err := proof.Deserialize(proofBytes)
		if err != nil {
			return nil, nil, err
		}
		return commitments, p, nil
	})
}

// VerifyProof checks an already decoded proof.
func (e *Engine) VerifyProof(st Statement, commitments []bn254.G1Affine, p *proof.Proof) error {
	return e.verify(st, func() ([]bn254.G1Affine, *proof.Proof, error) {
		if p == nil {
			return nil, nil, fmt.Errorf("%w: nil proof", zkerr.ErrDeserialization)
		}
		return commitments, p, nil
	})
}

func (e *Engine) verify(st Statement, decode func() ([]bn254.G1Affine, *proof.Proof, error)) (err error) {
	start := time.Now()
	log := e.log.With().Str("gadget", st.Gadget).Logger()
	m := newMachine(log)
	defer func() {
		m.finish(err, StateAccept, StateReject)
		if e.observe != nil {
			e.observe(m.trace)
		}
		if err == nil {
			log.Debug().Dur("took", time.Since(start)).Msg("verified")
		} else {
			log.Debug().Err(err).Str("kind", zkerr.Kind(err)).Msg("verify rejected")
		}
		e.metrics.ObserveVerify(st.Gadget, err, time.Since(start))
	}()

	m.enter(StateDeserialize)
	commitments, p, err := decode()
	if err != nil {
		return err
	}

	m.enter(StateRebuildPublicConstraints)
	g, err := e.registry.Lookup(st.Gadget)
	if err != nil {
		return err
	}
	cs, err := e.compile(g, st, nil, false)
	if err != nil {
		return err
	}
	if len(commitments) != cs.NumCommitted() {
		return fmt.Errorf("%w: %s takes %d commitments, got %d",
			zkerr.ErrMalformedInstance, g.Name(), cs.NumCommitted(), len(commitments))
	}

	m.enter(StateDeriveChallenges)
	v := verifier.New(newTranscript(st), &e.pc, e.bg, cs, e.tasks)
	if err := v.DeriveChallenges(commitments, p); err != nil {
		return err
	}

	m.enter(StateCheckClosingEquation)
	return v.Check()
}

// VerifyRequest is one entry of VerifyBatch.
type VerifyRequest struct {
	Statement   Statement
	Commitments []bn254.G1Affine
	Proof       *proof.Proof
}

// VerifyBatch verifies independent statements in parallel, each on its own goroutine
// with a single threaded check. It returns the error of the first rejected request.
func (e *Engine) VerifyBatch(reqs []VerifyRequest) error {
	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i := range reqs {
		i := i
		req := &reqs[i]
		eg.Go(func() error {
			if err := e.VerifyProof(req.Statement, req.Commitments, req.Proof); err != nil {
				return fmt.Errorf("request %d: %w", i, err)
			}
			return nil
		})
	}
	return eg.Wait()
}
