package buffer

import (
	"bytes"
	"unsafe"
)

// EqualAsUint64Slice casts []T into []uint64 and checks the equality of the two slices.
func EqualAsUint64Slice[T any](a, b []T) bool {
	/* #nosec G103 -- behavior and consequences well understood, pointer type cast */
	return equalSlice(*(*[]uint64)(unsafe.Pointer(&a)), *(*[]uint64)(unsafe.Pointer(&b)))
}

// EqualAsUint32Slice casts []T into []uint32 and checks the equality of the two slices.
func EqualAsUint32Slice[T any](a, b []T) bool {
	/* #nosec G103 -- behavior and consequences well understood, pointer type cast */
	return equalSlice(*(*[]uint32)(unsafe.Pointer(&a)), *(*[]uint32)(unsafe.Pointer(&b)))
}

// EqualAsUint8Slice casts []T into []uint8 and checks the equality of the two slices.
func EqualAsUint8Slice[T any](a, b []T) bool {
	/* #nosec G103 -- behavior and consequences well understood, pointer type cast */
	return bytes.Equal(*(*[]uint8)(unsafe.Pointer(&a)), *(*[]uint8)(unsafe.Pointer(&b)))
}

func equalSlice[V comparable](a, b []V) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
