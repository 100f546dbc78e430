package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PolyhedraZK/bpgadgets/assignment"
	"github.com/PolyhedraZK/bpgadgets/field"
	"github.com/PolyhedraZK/bpgadgets/mimc"
)

func run(t *testing.T, args ...string) (string, error) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(append([]string{"--log-level", "disabled"}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestGadgets(t *testing.T) {
	out, err := run(t, "gadgets")
	require.NoError(t, err)
	assert.Contains(t, out, "range_64\n")
	assert.Contains(t, out, "merkle\n")
}

func TestMimcHash(t *testing.T) {
	out, err := run(t, "mimc-hash", "1", "0x02")
	require.NoError(t, err)
	h := mimc.Hash(mimc.DefaultParams(), field.FromUint64(1), field.FromUint64(2))
	assert.Equal(t, assignment.FormatScalar(&h), strings.TrimSpace(out))
}

func TestMerkleRoot(t *testing.T) {
	out, err := run(t, "merkle-root", "--leaf", "5", "--siblings", "6,7", "--dirs", "1,0")
	require.NoError(t, err)
	root := mimc.Root(mimc.DefaultParams(), field.FromUint64(5),
		[]fr.Element{field.FromUint64(6), field.FromUint64(7)}, []bool{true, false})
	assert.Equal(t, assignment.FormatScalar(&root), strings.TrimSpace(out))

	_, err = run(t, "merkle-root", "--leaf", "5", "--siblings", "6,7", "--dirs", "1")
	assert.Error(t, err)
}

func TestProveVerifyFiles(t *testing.T) {
	dir := t.TempDir()
	stmt := filepath.Join(dir, "stmt.yaml")
	require.NoError(t, os.WriteFile(stmt, []byte("gadget: range_64\nwitness: [\"0x2a\"]\n"), 0o644))
	prefix := filepath.Join(dir, "out")

	_, err := run(t, "prove", stmt, "--out", prefix)
	require.NoError(t, err)

	out, err := run(t, "verify", stmt, "--commitments", prefix+".commitments", "--proof", prefix+".proof")
	require.NoError(t, err)
	assert.Contains(t, out, "accepted")

	other := filepath.Join(dir, "other.yaml")
	require.NoError(t, os.WriteFile(other, []byte("gadget: range\nparams: {bits: 64}\n"), 0o644))
	_, err = run(t, "verify", other, "--commitments", prefix+".commitments", "--proof", prefix+".proof")
	assert.Error(t, err)
}

func TestBench(t *testing.T) {
	out, err := run(t, "bench", "-n", "2", "--bits", "8", "--workers", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "proved 2 statements")
	assert.Contains(t, out, "verified 2 statements")
}
