package buffer

import (
	"encoding/binary"
	"fmt"
	"unsafe"
)

// ReadAsUint64 reads an uint64 from r and stores it in c casted as a *uint64.
// User must ensure that T can be stored in an uint64.
func ReadAsUint64[T any](r Reader, c *T) (n int64, err error) {

	if c == nil {
		return 0, fmt.Errorf("cannot ReadAsUint64: c is nil")
	}

	var v uint64
	if n, err = ReadUint64(r, &v); err != nil {
		return
	}

	var t T
	/* #nosec G103 -- behavior and consequences well understood, pointer type cast */
	copy(unsafe.Slice((*byte)(unsafe.Pointer(c)), unsafe.Sizeof(t)), unsafe.Slice((*byte)(unsafe.Pointer(&v)), min(8, int(unsafe.Sizeof(t)))))

	return
}

// ReadAsUint8 reads a byte from r and stores it in c.
// User must ensure that T is an integer type or a bool.
func ReadAsUint8[T any](r Reader, c *T) (n int64, err error) {

	if c == nil {
		return 0, fmt.Errorf("cannot ReadAsUint8: c is nil")
	}

	var v uint8
	if n, err = ReadUint8(r, &v); err != nil {
		return
	}

	var t T
	/* #nosec G103 -- behavior and consequences well understood, pointer type cast */
	b := unsafe.Slice((*byte)(unsafe.Pointer(c)), unsafe.Sizeof(t))
	clear(b)
	b[0] = v

	return
}

// ReadAsUint64Slice reads a slice of uint64 from r and stores it in c casted as a []uint64.
func ReadAsUint64Slice[T any](r Reader, c []T) (n int64, err error) {
	/* #nosec G103 -- behavior and consequences well understood, pointer type cast */
	return ReadUint64Slice(r, *(*[]uint64)(unsafe.Pointer(&c)))
}

// ReadAsUint32Slice reads a slice of uint32 from r and stores it in c casted as a []uint32.
func ReadAsUint32Slice[T any](r Reader, c []T) (n int64, err error) {
	/* #nosec G103 -- behavior and consequences well understood, pointer type cast */
	return ReadUint32Slice(r, *(*[]uint32)(unsafe.Pointer(&c)))
}

// ReadAsUint8Slice reads a slice of bytes from r and stores it in c casted as a []uint8.
func ReadAsUint8Slice[T any](r Reader, c []T) (n int64, err error) {
	/* #nosec G103 -- behavior and consequences well understood, pointer type cast */
	return ReadUint8Slice(r, *(*[]uint8)(unsafe.Pointer(&c)))
}

// ReadUint8 reads a byte from r.
func ReadUint8(r Reader, c *uint8) (n int64, err error) {
	return readSlice(r, unsafe.Slice(c, 1), 1, func(b []byte) uint8 { return b[0] })
}

// ReadUint64 reads an uint64 from r.
func ReadUint64(r Reader, c *uint64) (n int64, err error) {
	return readSlice(r, unsafe.Slice(c, 1), 8, binary.LittleEndian.Uint64)
}

// ReadUint8Slice reads a slice of bytes from r.
func ReadUint8Slice(r Reader, c []uint8) (n int64, err error) {
	return readSlice(r, c, 1, func(b []byte) uint8 { return b[0] })
}

// ReadUint32Slice reads a slice of uint32 from r.
func ReadUint32Slice(r Reader, c []uint32) (n int64, err error) {
	return readSlice(r, c, 4, binary.LittleEndian.Uint32)
}

// ReadUint64Slice reads a slice of uint64 from r.
func ReadUint64Slice(r Reader, c []uint64) (n int64, err error) {
	return readSlice(r, c, 8, binary.LittleEndian.Uint64)
}

func readSlice[V any](r Reader, c []V, size int, get func(b []byte) V) (n int64, err error) {

	for len(c) > 0 {

		// Peeks at most the internal buffer or what remains to be read
		peek := min(len(c)*size, r.Size())
		peek -= peek % size

		if peek == 0 {
			peek = size
		}

		var slice []byte
		if slice, err = r.Peek(peek); err != nil {
			return n, fmt.Errorf("cannot read %d bytes: %w", peek, err)
		}

		N := len(slice) / size

		for i := 0; i < N; i++ {
			c[i] = get(slice[i*size:])
		}

		var inc int
		if inc, err = r.Discard(N * size); err != nil {
			return n + int64(inc), err
		}

		n += int64(inc)

		c = c[N:]
	}

	return
}
