package buffer

import (
	"encoding/binary"
	"fmt"
	"unsafe"
)

// WriteAsUint64 casts &T to an *uint64 and writes it to w.
// User must ensure that T can be stored in an uint64.
func WriteAsUint64[T any](w Writer, c T) (n int64, err error) {
	var v uint64
	/* #nosec G103 -- behavior and consequences well understood, pointer type cast */
	copy(unsafe.Slice((*byte)(unsafe.Pointer(&v)), 8), unsafe.Slice((*byte)(unsafe.Pointer(&c)), min(8, int(unsafe.Sizeof(c)))))
	return WriteUint64(w, v)
}

// WriteAsUint8 casts T to an uint8 and writes it to w.
// User must ensure that T can be stored in an uint8.
func WriteAsUint8[T any](w Writer, c T) (n int64, err error) {
	/* #nosec G103 -- behavior and consequences well understood, pointer type cast */
	return WriteUint8(w, *(*uint8)(unsafe.Pointer(&c)))
}

// WriteAsUint64Slice casts &[]T into *[]uint64 and writes it to w.
// User must ensure that T can be stored in an uint64.
func WriteAsUint64Slice[T any](w Writer, c []T) (n int64, err error) {
	/* #nosec G103 -- behavior and consequences well understood, pointer type cast */
	return WriteUint64Slice(w, *(*[]uint64)(unsafe.Pointer(&c)))
}

// WriteAsUint32Slice casts &[]T into *[]uint32 and writes it to w.
// User must ensure that T can be stored in an uint32.
func WriteAsUint32Slice[T any](w Writer, c []T) (n int64, err error) {
	/* #nosec G103 -- behavior and consequences well understood, pointer type cast */
	return WriteUint32Slice(w, *(*[]uint32)(unsafe.Pointer(&c)))
}

// WriteAsUint8Slice casts &[]T into *[]uint8 and writes it to w.
// User must ensure that T can be stored in an uint8.
func WriteAsUint8Slice[T any](w Writer, c []T) (n int64, err error) {
	/* #nosec G103 -- behavior and consequences well understood, pointer type cast */
	return WriteUint8Slice(w, *(*[]uint8)(unsafe.Pointer(&c)))
}

// WriteUint8 writes a byte c to w.
func WriteUint8(w Writer, c uint8) (n int64, err error) {
	return writeWord(w, 1, func(b []byte) { b[0] = c })
}

// WriteUint32 writes an uint32 c to w.
func WriteUint32(w Writer, c uint32) (n int64, err error) {
	return writeWord(w, 4, func(b []byte) { binary.LittleEndian.PutUint32(b, c) })
}

// WriteUint64 writes an uint64 c to w.
func WriteUint64(w Writer, c uint64) (n int64, err error) {
	return writeWord(w, 8, func(b []byte) { binary.LittleEndian.PutUint64(b, c) })
}

// WriteUint8Slice writes a slice of bytes c to w.
func WriteUint8Slice(w Writer, c []uint8) (n int64, err error) {
	return writeSlice(w, c, 1, func(b []byte, v uint8) { b[0] = v })
}

// WriteUint32Slice writes a slice of uint32 c to w.
func WriteUint32Slice(w Writer, c []uint32) (n int64, err error) {
	return writeSlice(w, c, 4, binary.LittleEndian.PutUint32)
}

// WriteUint64Slice writes a slice of uint64 c to w.
func WriteUint64Slice(w Writer, c []uint64) (n int64, err error) {
	return writeSlice(w, c, 8, binary.LittleEndian.PutUint64)
}

func writeWord(w Writer, size int, put func(b []byte)) (n int64, err error) {

	if w.Available() < size {
		if err = w.Flush(); err != nil {
			return
		}

		if w.Available() < size {
			return 0, fmt.Errorf("cannot write %d bytes: available buffer is too small even after flush", size)
		}
	}

	buf := w.AvailableBuffer()[:size]
	put(buf)
	nint, err := w.Write(buf)
	return int64(nint), err
}

func writeSlice[V any](w Writer, c []V, size int, put func(b []byte, v V)) (n int64, err error) {

	for len(c) > 0 {

		// Remaining available space in the internal buffer
		available := w.Available() / size

		if available == 0 {

			if err = w.Flush(); err != nil {
				return
			}

			if available = w.Available() / size; available == 0 {
				return n, fmt.Errorf("cannot write slice: available buffer is too small even after flush")
			}
		}

		N := min(len(c), available)

		buf := w.AvailableBuffer()[:N*size]

		for i := 0; i < N; i++ {
			put(buf[i*size:], c[i])
		}

		var inc int
		if inc, err = w.Write(buf); err != nil {
			return n + int64(inc), err
		}

		n += int64(inc)

		c = c[N:]
	}

	return
}
