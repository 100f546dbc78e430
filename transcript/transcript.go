// Package transcript implements the Fiat-Shamir transcript shared by prover and verifier.
//
// The state is a cSHAKE256 sponge. Each operation is framed as
// op || u32(len(label)) || label || u32(len(msg)) || msg, so distinct sequences of
// operations never produce the same byte stream.
package transcript

import (
	"encoding/binary"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"golang.org/x/crypto/sha3"
)

const (
	opDomain    byte = 'D'
	opAppend    byte = 'A'
	opChallenge byte = 'C'
)

// challengeBytes is twice the scalar size so the reduction bias is negligible.
const challengeBytes = 64

// Transcript is a Fiat-Shamir transcript over cSHAKE256. It is not safe for concurrent use.
type Transcript struct {
	state sha3.ShakeHash
}

// New starts a transcript bound to domainTag.
func New(domainTag string) *Transcript {
	t := &Transcript{state: sha3.NewCShake256(nil, []byte("bpgadgets transcript v1"))}
	t.frame(opDomain, "domain", []byte(domainTag))
	return t
}

func (t *Transcript) frame(op byte, label string, msg []byte) {
	var hdr [9]byte
	hdr[0] = op
	binary.LittleEndian.PutUint32(hdr[1:5], uint32(len(label)))
	t.state.Write(hdr[:5])
	t.state.Write([]byte(label))
	binary.LittleEndian.PutUint32(hdr[5:9], uint32(len(msg)))
	t.state.Write(hdr[5:9])
	t.state.Write(msg)
}

func (t *Transcript) AppendMessage(label string, msg []byte) {
	t.frame(opAppend, label, msg)
}

func (t *Transcript) AppendU64(label string, x uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], x)
	t.frame(opAppend, label, b[:])
}

func (t *Transcript) AppendScalar(label string, s *fr.Element) {
	b := s.Bytes()
	t.frame(opAppend, label, b[:])
}

func (t *Transcript) AppendPoint(label string, p *bn254.G1Affine) {
	b := p.Bytes()
	t.frame(opAppend, label, b[:])
}

// ChallengeScalar derives a scalar from everything absorbed so far and then absorbs the
// squeezed bytes, so two consecutive challenges with the same label differ.
func (t *Transcript) ChallengeScalar(label string) fr.Element {
	t.frame(opChallenge, label, nil)
	var buf [challengeBytes]byte
	squeeze := t.state.Clone()
	squeeze.Read(buf[:])
	t.frame(opAppend, label, buf[:])

	var e fr.Element
	e.SetBytes(buf[:])
	return e
}

// Clone returns an independent copy of the transcript.
func (t *Transcript) Clone() *Transcript {
	return &Transcript{state: t.state.Clone()}
}
