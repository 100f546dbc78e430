// Package test provides helpers for exercising gadgets end to end in tests.
package test

import (
	"errors"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"

	"github.com/PolyhedraZK/bpgadgets"
)

type Assert struct {
	t      *testing.T
	engine *bpgadgets.Engine
}

// NewAssert returns helpers bound to engine, or to an engine over the built-in gadgets
// when engine is nil.
func NewAssert(t *testing.T, engine *bpgadgets.Engine) *Assert {
	if engine == nil {
		var err error
		engine, err = bpgadgets.New(nil)
		require.NoError(t, err)
	}
	return &Assert{t: t, engine: engine}
}

func (a *Assert) Engine() *bpgadgets.Engine {
	return a.engine
}

// ProveSucceeded proves st and checks that the encoded result verifies. The witness is
// copied first, so the caller's slice survives.
func (a *Assert) ProveSucceeded(st bpgadgets.Statement, witness []fr.Element) *bpgadgets.Result {
	a.t.Helper()
	res, err := a.engine.Prove(st, append([]fr.Element(nil), witness...))
	if err != nil {
		a.t.Fatalf("prove %s should succeed: %v", st.Gadget, err)
	}
	if err := a.engine.Verify(st, res.CommitmentsText(), res.ProofBytes); err != nil {
		a.t.Fatalf("verify %s should succeed: %v", st.Gadget, err)
	}
	return res
}

// ProveFailed checks that proving st fails with an error wrapping kind.
func (a *Assert) ProveFailed(st bpgadgets.Statement, witness []fr.Element, kind error) {
	a.t.Helper()
	res, err := a.engine.Prove(st, append([]fr.Element(nil), witness...))
	if err == nil {
		a.t.Fatalf("prove %s should fail, got a %d byte proof", st.Gadget, len(res.ProofBytes))
	}
	if !errors.Is(err, kind) {
		a.t.Fatalf("prove %s failed with %v, expected %v", st.Gadget, err, kind)
	}
}

// VerifyFailed checks that verifying the given encodings fails with an error wrapping kind.
func (a *Assert) VerifyFailed(st bpgadgets.Statement, commitments string, proofBytes []byte, kind error) {
	a.t.Helper()
	err := a.engine.Verify(st, commitments, proofBytes)
	if err == nil {
		a.t.Fatalf("verify %s should fail", st.Gadget)
	}
	if !errors.Is(err, kind) {
		a.t.Fatalf("verify %s failed with %v, expected %v", st.Gadget, err, kind)
	}
}
