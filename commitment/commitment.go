// Package commitment produces Pedersen commitments to witness values and their text form.
package commitment

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/PolyhedraZK/bpgadgets/group"
	"github.com/PolyhedraZK/bpgadgets/utils"
	"github.com/PolyhedraZK/bpgadgets/zkerr"
)

// Opening is the secret side of a commitment.
type Opening struct {
	Value    fr.Element
	Blinding fr.Element
}

// Commit returns one commitment V_j = v_j·B + γ_j·B̃ per value. Every γ_j is drawn from
// crypto/rand for this call only; there is no way to supply one.
func Commit(gens *group.PedersenGens, values []fr.Element) ([]bn254.G1Affine, []Opening, error) {
	points := make([]bn254.G1Affine, len(values))
	openings := make([]Opening, len(values))
	for i := range values {
		openings[i].Value = values[i]
		if _, err := openings[i].Blinding.SetRandom(); err != nil {
			Zeroize(openings)
			return nil, nil, fmt.Errorf("sample blinding: %w", err)
		}
		p, err := gens.Commit(&openings[i].Value, &openings[i].Blinding)
		if err != nil {
			Zeroize(openings)
			return nil, nil, err
		}
		points[i] = p
	}
	return points, openings, nil
}

// Blindings returns the blinding factors of openings in order.
func Blindings(openings []Opening) []fr.Element {
	res := make([]fr.Element, len(openings))
	for i := range openings {
		res[i] = openings[i].Blinding
	}
	return res
}

func Zeroize(openings []Opening) {
	for i := range openings {
		openings[i].Value.SetZero()
		openings[i].Blinding.SetZero()
	}
}

// EncodeText renders commitments as "C<i> = 0x<compressed point>" lines.
func EncodeText(points []bn254.G1Affine) string {
	values := make([]string, len(points))
	for i := range points {
		values[i] = hexutil.Encode(group.EncodePoint(&points[i]))
	}
	return utils.FormatIndexedLines("C", values)
}

// DecodeText parses the output of EncodeText.
func DecodeText(text string) ([]bn254.G1Affine, error) {
	values, err := utils.ParseIndexedLines(text, "C")
	if err != nil {
		return nil, fmt.Errorf("%w: commitments: %v", zkerr.ErrDeserialization, err)
	}
	points := make([]bn254.G1Affine, len(values))
	for i, v := range values {
		b, err := hexutil.Decode(v)
		if err != nil {
			return nil, fmt.Errorf("%w: commitment %d: %v", zkerr.ErrDeserialization, i, err)
		}
		if points[i], err = group.DecodePoint(b); err != nil {
			return nil, fmt.Errorf("%w: commitment %d: %v", zkerr.ErrDeserialization, i, err)
		}
	}
	return points, nil
}
