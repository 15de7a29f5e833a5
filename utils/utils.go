// Package utils implements various helper functions.
package utils

import (
	"math/bits"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// IsPow2 returns true if x is a power of two.
func IsPow2[T constraints.Integer](x T) bool {
	return x > 0 && x&(x-1) == 0
}

// Log2 returns floor(log2(x)) for x > 0.
func Log2[T constraints.Unsigned](x T) int {
	return bits.Len64(uint64(x)) - 1
}

// BitReverse64 returns the bit-reverse value of the input value, within a context of 2^bitLen.
func BitReverse64[T constraints.Integer](index T, bitLen int) T {
	return T(bits.Reverse64(uint64(index)) >> (64 - bitLen))
}

// Overlap returns true if the memory ranges of x and y intersect.
func Overlap[V any](x, y []V) bool {
	if len(x) == 0 || len(y) == 0 {
		return false
	}
	var v V
	size := uintptr(unsafe.Sizeof(v))
	/* #nosec G103 -- address comparison only */
	x0, y0 := uintptr(unsafe.Pointer(&x[0])), uintptr(unsafe.Pointer(&y[0]))
	x1, y1 := x0+uintptr(len(x))*size, y0+uintptr(len(y))*size
	return x0 < y1 && y0 < x1
}
