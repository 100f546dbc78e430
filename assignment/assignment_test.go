package assignment

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PolyhedraZK/bpgadgets"
	"github.com/PolyhedraZK/bpgadgets/field"
	"github.com/PolyhedraZK/bpgadgets/gadget"
	"github.com/PolyhedraZK/bpgadgets/zkerr"
)

func TestParseScalar(t *testing.T) {
	tests := []struct {
		in   string
		want uint64
		err  bool
	}{
		{"0x2a", 42, false},
		{"0x02a", 42, false},
		{"42", 42, false},
		{" 0x0 ", 0, false},
		{"0x" + "00000000000000000000000000000000000000000000000000000000000000ff", 255, false},
		{"", 0, true},
		{"0x", 0, true},
		{"0xzz", 0, true},
		{"-1", 0, true},
		{"abc", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			e, err := ParseScalar(tt.in)
			if tt.err {
				assert.ErrorIs(t, err, zkerr.ErrMalformedInstance)
				return
			}
			require.NoError(t, err)
			want := field.FromUint64(tt.want)
			assert.True(t, e.Equal(&want))
		})
	}

	// the modulus itself is not canonical
	_, err := ParseScalar(field.ScalarField.String())
	assert.ErrorIs(t, err, zkerr.ErrMalformedInstance)
	_, err = ParseScalar("0x" + field.ScalarField.Text(16))
	assert.ErrorIs(t, err, zkerr.ErrMalformedInstance)
}

func TestParseLines(t *testing.T) {
	text := "# instance\nI0 = 0x01\n\nI1 = 0x02\n"
	values, err := ParseInstance(text)
	require.NoError(t, err)
	require.Len(t, values, 2)
	assert.Equal(t, uint64(2), values[1].Uint64())

	_, err = ParseInstance("I1 = 0x01\n")
	assert.ErrorIs(t, err, zkerr.ErrMalformedInstance)
	_, err = ParseWitness("I0 = 0x01\n")
	assert.ErrorIs(t, err, zkerr.ErrMalformedInstance)

	w, err := ParseWitness(FormatWitness([]fr.Element{field.FromUint64(7), field.FromUint64(9)}))
	require.NoError(t, err)
	assert.Equal(t, uint64(9), w[1].Uint64())
}

func TestParseParams(t *testing.T) {
	p, err := ParseParams("bits: 32\nset_size: 4\n")
	require.NoError(t, err)
	assert.Equal(t, gadget.Params{Bits: 32, SetSize: 4}, p)

	p, err = ParseParams("")
	require.NoError(t, err)
	assert.Equal(t, gadget.Params{}, p)

	_, err = ParseParams("width: 3\n")
	assert.ErrorIs(t, err, zkerr.ErrMalformedInstance)
}

func TestParseParamsEntries(t *testing.T) {
	text := `entries:
  - gadget: bounds
    instance: [0, 1]
    witness: [0]
  - gadget: range
    params: {bits: 8}
    witness: [0]
`
	p, err := ParseParams(text)
	require.NoError(t, err)
	assert.Equal(t, gadget.Params{Entries: []gadget.Entry{
		{Gadget: "bounds", Instance: []int{0, 1}, Witness: []int{0}},
		{Gadget: "range", Params: gadget.Params{Bits: 8}, Witness: []int{0}},
	}}, p)

	_, err = ParseParams("entries:\n  - gadget: range\n    witnesses: [0]\n")
	assert.ErrorIs(t, err, zkerr.ErrMalformedInstance)
}

func TestStatementFile(t *testing.T) {
	data := []byte(`
gadget: bounds
params:
  bits: 16
instance: ["0x0a", "100"]
witness: ["0x2a"]
`)
	st, witness, err := LoadStatement(data)
	require.NoError(t, err)
	assert.Equal(t, "bounds", st.Gadget)
	assert.Equal(t, 16, st.Params.Bits)
	require.Len(t, st.Instance, 2)
	assert.Equal(t, uint64(100), st.Instance[1].Uint64())
	require.Len(t, witness, 1)

	out, err := MarshalStatement(st, witness)
	require.NoError(t, err)
	st2, witness2, err := LoadStatement(out)
	require.NoError(t, err)
	assert.Equal(t, st, st2)
	assert.Equal(t, witness, witness2)

	st3, witness3, err := LoadStatement([]byte("gadget: range_64\n"))
	require.NoError(t, err)
	assert.Equal(t, bpgadgets.Statement{Gadget: "range_64", Instance: []fr.Element{}}, st3)
	assert.Nil(t, witness3)

	_, _, err = LoadStatement([]byte("params: {}\n"))
	assert.ErrorIs(t, err, zkerr.ErrMalformedInstance)
	_, _, err = LoadStatement([]byte("gadget: x\nextra: 1\n"))
	assert.ErrorIs(t, err, zkerr.ErrMalformedInstance)
}
