package proof

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/PolyhedraZK/bpgadgets/field"
	"github.com/PolyhedraZK/bpgadgets/group"
	"github.com/PolyhedraZK/bpgadgets/ipa"
	"github.com/PolyhedraZK/bpgadgets/utils"
	"github.com/PolyhedraZK/bpgadgets/zkerr"
)

const (
	numPoints  = 8
	numScalars = 3
	// header is the length prefix in front of the body.
	header = 4
)

// BodySize returns the encoded body size of a proof with the given number of rounds.
func BodySize(rounds int) int {
	return 1 + numPoints*group.PointBytes + numScalars*field.Bytes + 1 +
		2*rounds*group.PointBytes + 2*field.Bytes
}

// Size returns the full encoded size including the length prefix.
func (p *Proof) Size() int {
	return header + BodySize(p.Rounds())
}

// Serialize encodes the proof as a little-endian u32 body length followed by the body.
func (p *Proof) Serialize() []byte {
	if p.Rounds() > ipa.MaxRounds || len(p.IPP.R) != p.Rounds() {
		panic("proof has an invalid round count")
	}
	o := utils.NewOutputBuf(p.Size())
	o.AppendUint32(0)
	o.AppendUint8(Version)
	for _, pt := range p.Points() {
		o.AppendBytes(group.EncodePoint(pt))
	}
	for _, s := range []*fr.Element{&p.TX, &p.TXBlinding, &p.EBlinding} {
		o.AppendBytes(field.ToBytes(s))
	}
	o.AppendUint8(uint8(p.Rounds()))
	for i := range p.IPP.L {
		o.AppendBytes(group.EncodePoint(&p.IPP.L[i]))
		o.AppendBytes(group.EncodePoint(&p.IPP.R[i]))
	}
	o.AppendBytes(field.ToBytes(&p.IPP.A))
	o.AppendBytes(field.ToBytes(&p.IPP.B))
	o.PutUint32At(0, uint32(o.Len()-header))
	return o.Bytes()
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: proof: %s", zkerr.ErrDeserialization, fmt.Sprintf(format, args...))
}

// Deserialize decodes a proof produced by Serialize. buf must hold exactly one proof.
func Deserialize(buf []byte) (*Proof, error) {
	in := utils.NewInputBuf(buf)
	n, err := in.ReadUint32()
	if err != nil {
		return nil, malformed("missing length prefix")
	}
	if uint64(n) != uint64(in.Remaining()) {
		return nil, malformed("declared body length %d but %d bytes follow", n, in.Remaining())
	}
	body, err := in.ReadBytes(int(n))
	if err != nil {
		return nil, err
	}
	return deserializeBody(body)
}

func deserializeBody(body []byte) (*Proof, error) {
	if len(body) < BodySize(0) {
		return nil, malformed("body of %d bytes is too short", len(body))
	}
	in := utils.NewInputBuf(body)
	version, _ := in.ReadUint8()
	if version != Version {
		return nil, malformed("unsupported version %d", version)
	}

	p := &Proof{}
	var err error
	for i, pt := range p.Points() {
		if *pt, err = readPoint(in); err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
	}
	for i, s := range []*fr.Element{&p.TX, &p.TXBlinding, &p.EBlinding} {
		if *s, err = readScalar(in); err != nil {
			return nil, fmt.Errorf("scalar %d: %w", i, err)
		}
	}

	rounds, err := in.ReadUint8()
	if err != nil {
		return nil, err
	}
	if int(rounds) > ipa.MaxRounds {
		return nil, malformed("%d rounds exceed the limit of %d", rounds, ipa.MaxRounds)
	}
	if len(body) != BodySize(int(rounds)) {
		return nil, malformed("%d rounds need a body of %d bytes, got %d", rounds, BodySize(int(rounds)), len(body))
	}

	p.IPP.L = make([]bn254.G1Affine, rounds)
	p.IPP.R = make([]bn254.G1Affine, rounds)
	for i := 0; i < int(rounds); i++ {
		if p.IPP.L[i], err = readPoint(in); err != nil {
			return nil, fmt.Errorf("L%d: %w", i, err)
		}
		if p.IPP.R[i], err = readPoint(in); err != nil {
			return nil, fmt.Errorf("R%d: %w", i, err)
		}
	}
	if p.IPP.A, err = readScalar(in); err != nil {
		return nil, fmt.Errorf("a: %w", err)
	}
	if p.IPP.B, err = readScalar(in); err != nil {
		return nil, fmt.Errorf("b: %w", err)
	}
	if !in.IsEnd() {
		return nil, malformed("%d trailing bytes", in.Remaining())
	}
	return p, nil
}

func readPoint(in *utils.InputBuf) (bn254.G1Affine, error) {
	b, err := in.ReadBytes(group.PointBytes)
	if err != nil {
		return bn254.G1Affine{}, err
	}
	p, err := group.DecodePoint(b)
	if err != nil {
		return p, malformed("%v", err)
	}
	return p, nil
}

func readScalar(in *utils.InputBuf) (fr.Element, error) {
	b, err := in.ReadBytes(field.Bytes)
	if err != nil {
		return fr.Element{}, err
	}
	s, err := field.FromBytesCanonical(b)
	if err != nil {
		return s, malformed("%v", err)
	}
	return s, nil
}
