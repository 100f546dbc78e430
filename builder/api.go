package builder

import "github.com/consensys/gnark-crypto/ecc/bn254/fr"

// API is what a gadget sees while it defines its constraints. In verifier mode every
// assignment is zero, so gadgets must derive the constraint shape from public data only.
type API interface {
	// Multiply allocates a multiplication gate whose inputs are constrained to l and r.
	Multiply(l, r LinearCombination) (left, right, out Variable)
	// Allocate assigns value to the free slot of a pending gate, opening a new gate
	// when none is pending.
	Allocate(value fr.Element) Variable
	// AllocateMultiplier allocates a gate with unconstrained inputs l and r.
	AllocateMultiplier(l, r fr.Element) (left, right, out Variable)
	// Constrain adds the constraint lc = 0.
	Constrain(lc LinearCombination)
	// Eval returns the value of lc under the current assignment.
	Eval(lc LinearCombination) fr.Element
	// IsProver reports whether assignments are known.
	IsProver() bool
}
