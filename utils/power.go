package utils

import "math/bits"

// NextPowerOfTwo returns the smallest power of two that is at least x.
// Zero and one both pad to a single slot.
func NextPowerOfTwo(x int) int {
	if x < 0 {
		panic("x must be non-negative")
	}
	if x <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(x-1))
}

// Log2 returns k for x = 2^k. x must be a power of two.
func Log2(x int) int {
	if x <= 0 || x&(x-1) != 0 {
		panic("x must be a power of two")
	}
	return bits.TrailingZeros(uint(x))
}
