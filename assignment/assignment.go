// Package assignment parses the textual forms of instances, witnesses, gadget parameters
// and statement files.
package assignment

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"gopkg.in/yaml.v3"

	"github.com/PolyhedraZK/bpgadgets"
	"github.com/PolyhedraZK/bpgadgets/field"
	"github.com/PolyhedraZK/bpgadgets/gadget"
	"github.com/PolyhedraZK/bpgadgets/utils"
	"github.com/PolyhedraZK/bpgadgets/zkerr"
)

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", zkerr.ErrMalformedInstance, fmt.Sprintf(format, args...))
}

// ParseScalar reads a canonical field element written as 0x-prefixed hex or as a decimal
// number.
func ParseScalar(s string) (fr.Element, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return fr.Element{}, malformed("empty scalar")
	}
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		x, ok := new(big.Int).SetString(s, 10)
		if !ok || x.Sign() < 0 || x.Cmp(field.ScalarField) >= 0 {
			return fr.Element{}, malformed("%q is not a canonical scalar", s)
		}
		var e fr.Element
		e.SetBigInt(x)
		return e, nil
	}
	digits := s[2:]
	if digits == "" {
		return fr.Element{}, malformed("empty hex scalar")
	}
	if len(digits)%2 == 1 {
		digits = "0" + digits
	}
	b, err := hexutil.Decode("0x" + digits)
	if err != nil {
		return fr.Element{}, malformed("%q: %v", s, err)
	}
	// leading zero bytes beyond the field width are harmless
	b = bytes.TrimLeft(b, "\x00")
	e, err := field.FromBytesCanonical(b)
	if err != nil {
		return e, malformed("%q: %v", s, err)
	}
	return e, nil
}

// FormatScalar writes e as 0x-prefixed 32-byte hex.
func FormatScalar(e *fr.Element) string {
	return hexutil.Encode(field.ToBytes(e))
}

func parseScalars(values []string, what string) ([]fr.Element, error) {
	res := make([]fr.Element, len(values))
	for i, v := range values {
		var err error
		if res[i], err = ParseScalar(v); err != nil {
			field.Zeroize(res)
			return nil, fmt.Errorf("%s %d: %w", what, i, err)
		}
	}
	return res, nil
}

func parseLines(text, prefix, what string) ([]fr.Element, error) {
	values, err := utils.ParseIndexedLines(text, prefix)
	if err != nil {
		return nil, malformed("%s: %v", what, err)
	}
	return parseScalars(values, what)
}

// ParseInstance reads "I<k> = <scalar>" lines.
func ParseInstance(text string) ([]fr.Element, error) {
	return parseLines(text, "I", "instance")
}

// ParseWitness reads "W<k> = <scalar>" lines.
func ParseWitness(text string) ([]fr.Element, error) {
	return parseLines(text, "W", "witness")
}

func FormatInstance(values []fr.Element) string {
	return formatLines("I", values)
}

func FormatWitness(values []fr.Element) string {
	return formatLines("W", values)
}

func formatLines(prefix string, values []fr.Element) string {
	s := make([]string, len(values))
	for i := range values {
		s[i] = FormatScalar(&values[i])
	}
	return utils.FormatIndexedLines(prefix, s)
}

func decodeStrict(data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ParseParams reads a YAML mapping with the keys bits, depth, set_size, arity and
// entries. Missing keys are zero and empty text yields zero Params.
func ParseParams(text string) (gadget.Params, error) {
	var p gadget.Params
	if err := decodeStrict([]byte(text), &p); err != nil {
		return gadget.Params{}, malformed("params: %v", err)
	}
	return p, nil
}

// File is the YAML layout of a statement file.
type File struct {
	Gadget   string        `yaml:"gadget"`
	Params   gadget.Params `yaml:"params,omitempty"`
	Instance []string      `yaml:"instance,omitempty"`
	Witness  []string      `yaml:"witness,omitempty"`
}

// LoadStatement parses a statement file. The witness is nil when the file has none.
func LoadStatement(data []byte) (bpgadgets.Statement, []fr.Element, error) {
	var f File
	if err := decodeStrict(data, &f); err != nil {
		return bpgadgets.Statement{}, nil, malformed("statement: %v", err)
	}
	if f.Gadget == "" {
		return bpgadgets.Statement{}, nil, malformed("statement: missing gadget")
	}
	instance, err := parseScalars(f.Instance, "instance")
	if err != nil {
		return bpgadgets.Statement{}, nil, err
	}
	var witness []fr.Element
	if len(f.Witness) > 0 {
		if witness, err = parseScalars(f.Witness, "witness"); err != nil {
			return bpgadgets.Statement{}, nil, err
		}
	}
	return bpgadgets.Statement{Gadget: f.Gadget, Params: f.Params, Instance: instance}, witness, nil
}

// MarshalStatement is the inverse of LoadStatement.
func MarshalStatement(st bpgadgets.Statement, witness []fr.Element) ([]byte, error) {
	f := File{Gadget: st.Gadget, Params: st.Params}
	for i := range st.Instance {
		f.Instance = append(f.Instance, FormatScalar(&st.Instance[i]))
	}
	for i := range witness {
		f.Witness = append(f.Witness, FormatScalar(&witness[i]))
	}
	return yaml.Marshal(&f)
}
