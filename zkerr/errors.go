// Package zkerr defines the error kinds returned by the proving and verification engine.
//
// Every fallible step wraps one of the sentinels below, so callers can tell the outcomes
// apart with errors.Is. Only the interop layer collapses them into nil or false.
package zkerr

import "errors"

var (
	ErrUnknownGadget              = errors.New("unknown gadget")
	ErrMalformedInstance          = errors.New("malformed instance")
	ErrWitnessConstraintViolation = errors.New("witness constraint violation")
	ErrDeserialization            = errors.New("deserialization error")
	ErrVerificationFailure        = errors.New("verification failure")
	ErrAllocation                 = errors.New("allocation error")
)

var kinds = []struct {
	err  error
	name string
}{
	{ErrUnknownGadget, "unknown_gadget"},
	{ErrMalformedInstance, "malformed_instance"},
	{ErrWitnessConstraintViolation, "witness_constraint_violation"},
	{ErrDeserialization, "deserialization"},
	{ErrVerificationFailure, "verification_failure"},
	{ErrAllocation, "allocation"},
}

// Kind returns a short label for the kind of err, "ok" for nil and "internal" for errors
// that wrap none of the sentinels.
func Kind(err error) string {
	if err == nil {
		return "ok"
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return "internal"
}
