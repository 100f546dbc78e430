// Package bpgadgets proves and verifies statements about committed witness values with a
// Bulletproofs-style R1CS argument over BN254.
//
// A statement names a registered gadget and carries its parameters and public instance.
// Prove commits to the witness and returns the commitments together with the proof;
// Verify checks such a proof without the witness.
package bpgadgets

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark/logger"
	"github.com/rs/zerolog"

	"github.com/PolyhedraZK/bpgadgets/commitment"
	"github.com/PolyhedraZK/bpgadgets/gadget"
	"github.com/PolyhedraZK/bpgadgets/group"
	"github.com/PolyhedraZK/bpgadgets/metrics"
	"github.com/PolyhedraZK/bpgadgets/proof"
)

// DefaultMaxMultipliers bounds the multiplier count of a single statement.
const DefaultMaxMultipliers = 1 << 16

// Statement is the public part of a claim.
type Statement struct {
	Gadget   string
	Params   gadget.Params
	Instance []fr.Element
}

// Result is what a successful Prove returns.
type Result struct {
	// Commitments holds one Pedersen commitment per witness value, in witness order.
	Commitments []bn254.G1Affine
	Proof       *proof.Proof
	// ProofBytes is the length-prefixed encoding of Proof.
	ProofBytes []byte
}

// CommitmentsText renders the commitments in the "C<i> = 0x.." text form.
func (r *Result) CommitmentsText() string {
	return commitment.EncodeText(r.Commitments)
}

// Engine runs prove and verify calls. It is safe for concurrent use; every call keeps its
// constraint system, transcript and secrets private.
type Engine struct {
	registry       *gadget.Registry
	pc             group.PedersenGens
	bg             *group.BulletproofGens
	log            zerolog.Logger
	metrics        *metrics.Metrics
	maxMultipliers int
	tasks          int

	// observe receives the state trace of every call, for tests
	observe func([]State)
}

type Option func(*Engine) error

// WithLogger replaces the gnark logger the engine uses by default.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) error {
		e.log = l
		return nil
	}
}

// WithMaxMultipliers rejects statements whose constraint system needs more than n
// multipliers with an allocation error.
func WithMaxMultipliers(n int) Option {
	return func(e *Engine) error {
		if n < 1 || n > 1<<30 {
			return fmt.Errorf("max multipliers %d out of range", n)
		}
		e.maxMultipliers = n
		return nil
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) error {
		e.metrics = m
		return nil
	}
}

// WithMSMTasks sets the goroutines used by one multiscalar multiplication. The default
// of 1 keeps each call single threaded.
func WithMSMTasks(n int) Option {
	return func(e *Engine) error {
		if n < 1 {
			return fmt.Errorf("msm tasks must be positive, got %d", n)
		}
		e.tasks = n
		return nil
	}
}

// New returns an engine over registry, or over the built-in gadgets if registry is nil.
func New(registry *gadget.Registry, opts ...Option) (*Engine, error) {
	if registry == nil {
		registry = gadget.Builtin()
	}
	pc, err := group.NewPedersenGens()
	if err != nil {
		return nil, err
	}
	e := &Engine{
		registry:       registry,
		pc:             pc,
		bg:             group.NewBulletproofGens(),
		log:            logger.Logger(),
		maxMultipliers: DefaultMaxMultipliers,
		tasks:          1,
	}
	for _, o := range opts {
		if err := o(e); err != nil {
			e.log.Err(err).Msg("applying engine option")
			return nil, fmt.Errorf("apply option: %w", err)
		}
	}
	e.log = e.log.With().Str("component", "bpgadgets").Logger()
	return e, nil
}

func (e *Engine) Registry() *gadget.Registry {
	return e.registry
}

// PedersenGens returns the commitment bases, so callers can build commitments that
// verify against this engine.
func (e *Engine) PedersenGens() group.PedersenGens {
	return e.pc
}
