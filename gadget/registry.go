package gadget

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/PolyhedraZK/bpgadgets/mimc"
	"github.com/PolyhedraZK/bpgadgets/zkerr"
)

// Registry maps gadget names to gadgets. Lookups read an immutable snapshot without
// locking; Register serializes writers and publishes a new snapshot atomically.
type Registry struct {
	mu      sync.Mutex
	gadgets atomic.Pointer[map[string]Gadget]
}

// NewRegistry returns a registry holding gadgets. Names must be unique and non-empty.
func NewRegistry(gadgets ...Gadget) (*Registry, error) {
	m := make(map[string]Gadget, len(gadgets))
	for _, g := range gadgets {
		if err := checkNew(m, g); err != nil {
			return nil, err
		}
		m[g.Name()] = g
	}
	r := &Registry{}
	r.gadgets.Store(&m)
	return r, nil
}

func checkNew(m map[string]Gadget, g Gadget) error {
	if g == nil || g.Name() == "" {
		return fmt.Errorf("gadget without a name")
	}
	if _, ok := m[g.Name()]; ok {
		return fmt.Errorf("gadget %q registered twice", g.Name())
	}
	return nil
}

// Builtin returns a registry with every gadget shipped in this package.
func Builtin() *Registry {
	param := mimc.DefaultParams()
	r, err := NewRegistry(
		Range64(),
		Range(),
		Bounds(),
		LessThan(),
		Equality(),
		EqualityPublic(),
		Inequality(),
		SetMembership(),
		MimcHash(param),
		Merkle(param),
	)
	if err != nil {
		panic(err)
	}
	for _, g := range []Gadget{And(r), Or(r)} {
		if err := r.Register(g); err != nil {
			panic(err)
		}
	}
	return r
}

// Lookup returns the gadget registered under name.
func (r *Registry) Lookup(name string) (Gadget, error) {
	g, ok := (*r.gadgets.Load())[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", zkerr.ErrUnknownGadget, name)
	}
	return g, nil
}

// Register adds g. Concurrent lookups see either the old or the new set, never a mix.
func (r *Registry) Register(g Gadget) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	old := *r.gadgets.Load()
	if err := checkNew(old, g); err != nil {
		return err
	}
	m := make(map[string]Gadget, len(old)+1)
	for k, v := range old {
		m[k] = v
	}
	m[g.Name()] = g
	r.gadgets.Store(&m)
	return nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	m := *r.gadgets.Load()
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
