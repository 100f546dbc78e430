package gadget

import (
	"fmt"
	"sync"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PolyhedraZK/bpgadgets/builder"
	"github.com/PolyhedraZK/bpgadgets/zkerr"
)

type namedGadget string

func (g namedGadget) Name() string                { return string(g) }
func (namedGadget) Shape(Params) (Shape, error) { return Shape{Witness: 1}, nil }
func (namedGadget) Define(builder.API, Params, []fr.Element, []builder.Variable) error {
	return nil
}

func TestBuiltinNames(t *testing.T) {
	r := Builtin()
	assert.Equal(t, []string{
		"and", "bounds", "equality", "equality_public", "inequality", "less_than",
		"merkle", "mimc_hash", "or", "range", "range_64", "set_membership",
	}, r.Names())
	for _, name := range r.Names() {
		g, err := r.Lookup(name)
		require.NoError(t, err)
		assert.Equal(t, name, g.Name())
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Builtin().Lookup("range_65")
	assert.ErrorIs(t, err, zkerr.ErrUnknownGadget)
}

func TestNewRegistryRejects(t *testing.T) {
	_, err := NewRegistry(namedGadget("a"), namedGadget("a"))
	assert.Error(t, err)
	_, err = NewRegistry(namedGadget(""))
	assert.Error(t, err)
	_, err = NewRegistry(nil)
	assert.Error(t, err)
}

func TestRegister(t *testing.T) {
	r, err := NewRegistry(namedGadget("a"))
	require.NoError(t, err)
	require.NoError(t, r.Register(namedGadget("b")))
	assert.Error(t, r.Register(namedGadget("a")))
	assert.Equal(t, []string{"a", "b"}, r.Names())
}

func TestRegisterConcurrent(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, r.Register(namedGadget(fmt.Sprintf("g%02d", i))))
		}(i)
		go func() {
			defer wg.Done()
			for _, name := range r.Names() {
				_, err := r.Lookup(name)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()
	assert.Len(t, r.Names(), 16)
}
