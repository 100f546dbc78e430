// Package interop is the flat boundary for foreign callers. Every prove failure collapses
// to a nil result and every verify failure to false; the error kind is only logged.
package interop

import (
	"errors"
	"sync"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark/logger"

	"github.com/PolyhedraZK/bpgadgets"
	"github.com/PolyhedraZK/bpgadgets/assignment"
	"github.com/PolyhedraZK/bpgadgets/utils"
	"github.com/PolyhedraZK/bpgadgets/zkerr"
)

var (
	ErrNotIssued       = errors.New("artifacts were not issued by Prove")
	ErrAlreadyReleased = errors.New("artifacts already released")
)

// ProofArtifacts owns the output of one Prove call until Release.
type ProofArtifacts struct {
	// Commitments is the "C<i> = 0x.." text of the witness commitments.
	Commitments string
	// Proof is the length-prefixed proof, ProofLen bytes long.
	Proof []byte
	// ProofLen is the logical length of Proof.
	ProofLen int
	// ProofCap is the capacity of the underlying buffer. It is an allocation hint only.
	ProofCap int

	mu       sync.Mutex
	issued   bool
	released bool
}

// Prove parses the textual statement and witness and proves it. It returns nil on any
// failure.
func Prove(e *bpgadgets.Engine, gadgetName, instanceText, witnessText, paramsText string) *ProofArtifacts {
	log := logger.Logger().With().Str("component", "interop").Str("gadget", gadgetName).Logger()
	st, witness, err := parse(gadgetName, instanceText, witnessText, paramsText)
	if err != nil {
		log.Warn().Str("kind", zkerr.Kind(err)).Msg("prove input rejected")
		return nil
	}
	res, err := e.Prove(st, witness)
	if err != nil {
		log.Warn().Str("kind", zkerr.Kind(err)).Msg("prove failed")
		return nil
	}

	n := len(res.ProofBytes)
	buf := make([]byte, n, utils.NextPowerOfTwo(n))
	copy(buf, res.ProofBytes)
	return &ProofArtifacts{
		Commitments: res.CommitmentsText(),
		Proof:       buf,
		ProofLen:    n,
		ProofCap:    cap(buf),
		issued:      true,
	}
}

func parse(gadgetName, instanceText, witnessText, paramsText string) (bpgadgets.Statement, []fr.Element, error) {
	params, err := assignment.ParseParams(paramsText)
	if err != nil {
		return bpgadgets.Statement{}, nil, err
	}
	instance, err := assignment.ParseInstance(instanceText)
	if err != nil {
		return bpgadgets.Statement{}, nil, err
	}
	var witness []fr.Element
	if witnessText != "" {
		if witness, err = assignment.ParseWitness(witnessText); err != nil {
			return bpgadgets.Statement{}, nil, err
		}
	}
	return bpgadgets.Statement{Gadget: gadgetName, Params: params, Instance: instance}, witness, nil
}

// Verify checks the first proofLen bytes of proof. It returns false on any failure,
// including a proofLen outside proof.
func Verify(e *bpgadgets.Engine, gadgetName, instanceText, paramsText, commitments string, proof []byte, proofLen int) bool {
	log := logger.Logger().With().Str("component", "interop").Str("gadget", gadgetName).Logger()
	if proofLen < 0 || proofLen > len(proof) {
		log.Warn().Str("kind", zkerr.Kind(zkerr.ErrDeserialization)).Msg("proof length out of range")
		return false
	}
	st, _, err := parse(gadgetName, instanceText, "", paramsText)
	if err == nil {
		err = e.Verify(st, commitments, proof[:proofLen])
	}
	if err != nil {
		log.Info().Str("kind", zkerr.Kind(err)).Msg("verify rejected")
		return false
	}
	return true
}

// Release zeroes and drops the buffers of a. Releasing twice, or releasing artifacts that
// Prove did not return, is an error.
func Release(a *ProofArtifacts) error {
	if a == nil {
		return ErrNotIssued
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.issued {
		return ErrNotIssued
	}
	if a.released {
		return ErrAlreadyReleased
	}
	buf := a.Proof[:cap(a.Proof)]
	for i := range buf {
		buf[i] = 0
	}
	a.released = true
	a.Proof = nil
	a.Commitments = ""
	a.ProofLen, a.ProofCap = 0, 0
	return nil
}
