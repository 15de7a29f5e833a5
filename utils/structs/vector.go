// Package structs implements a generic vector of words, as well as its serialization.
package structs

import (
	"bufio"
	"fmt"
	"io"
	"unsafe"

	"github.com/Pro7ech/glwe/utils/buffer"
	"golang.org/x/exp/constraints"
)

// Word is the constraint on the components of a [Vector].
type Word interface {
	constraints.Integer | constraints.Float
}

// Vector is a slice of words with deep copy, equality and
// binary serialization. Components of 8 bytes or less are
// serialized as 64, 32 or 8 bits words depending on their size.
type Vector[T Word] []T

// Size returns the size of the receiver.
func (v Vector[T]) Size() int {
	return len(v)
}

// Copy copies the operand on the receiver, up to the
// maximum available size between the two.
func (v Vector[T]) Copy(other Vector[T]) {
	copy(v, other)
}

// Clone returns a deep copy of the object.
func (v Vector[T]) Clone() (vcpy Vector[T]) {
	vcpy = make([]T, len(v))
	copy(vcpy, v)
	return
}

// Equal performs a deep equal.
func (v Vector[T]) Equal(other Vector[T]) bool {

	if len(v) != len(other) {
		return false
	}

	switch wordSize[T]() {
	case 8:
		return buffer.EqualAsUint64Slice([]T(v), []T(other))
	case 4:
		return buffer.EqualAsUint32Slice([]T(v), []T(other))
	default:
		for i := range v {
			if v[i] != other[i] {
				return false
			}
		}
		return true
	}
}

// BinarySize returns the serialized size of the object in bytes.
func (v Vector[T]) BinarySize() (size int) {
	return 8 + len(v)*wordSize[T]()
}

// WriteTo writes the object on an io.Writer. It implements the io.WriterTo
// interface, and will write exactly object.BinarySize() bytes on w.
//
// Unless w implements the buffer.Writer interface, it will be wrapped
// into a bufio.Writer. When writing to a pre-allocated var b []byte,
// it is preferable to pass buffer.NewBuffer(b) as w.
func (v Vector[T]) WriteTo(w io.Writer) (n int64, err error) {

	switch w := w.(type) {
	case buffer.Writer:

		var inc int64
		if inc, err = buffer.WriteAsUint64[int](w, len(v)); err != nil {
			return inc, fmt.Errorf("buffer.WriteAsUint64[int]: %w", err)
		}

		n += inc

		switch wordSize[T]() {
		case 8:
			inc, err = buffer.WriteAsUint64Slice[T](w, v)
		case 4:
			inc, err = buffer.WriteAsUint32Slice[T](w, v)
		case 1:
			inc, err = buffer.WriteAsUint8Slice[T](w, v)
		default:
			var t T
			return n, fmt.Errorf("unsupported vector component %T", t)
		}

		if err != nil {
			return n + inc, fmt.Errorf("buffer.WriteSlice[%T]: %w", v, err)
		}

		n += inc

		return n, w.Flush()

	default:
		return v.WriteTo(bufio.NewWriter(w))
	}
}

// ReadFrom reads on the object from an io.Reader. It implements the
// io.ReaderFrom interface. The receiver is resized if needed.
//
// Unless r implements the buffer.Reader interface, it will be wrapped
// into a bufio.Reader. When reading from a var b []byte, it is
// preferable to pass buffer.NewBuffer(b) as r.
func (v *Vector[T]) ReadFrom(r io.Reader) (n int64, err error) {

	switch r := r.(type) {
	case buffer.Reader:

		var inc int64

		var size int
		if inc, err = buffer.ReadAsUint64[int](r, &size); err != nil {
			return inc, fmt.Errorf("buffer.ReadAsUint64[int]: %w", err)
		}

		n += inc

		if size < 0 {
			return n, fmt.Errorf("invalid vector size: %d", size)
		}

		if cap(*v) < size {
			*v = make([]T, size)
		}

		*v = (*v)[:size]

		switch wordSize[T]() {
		case 8:
			inc, err = buffer.ReadAsUint64Slice[T](r, *v)
		case 4:
			inc, err = buffer.ReadAsUint32Slice[T](r, *v)
		case 1:
			inc, err = buffer.ReadAsUint8Slice[T](r, *v)
		default:
			var t T
			return n, fmt.Errorf("unsupported vector component %T", t)
		}

		if err != nil {
			return n + inc, fmt.Errorf("buffer.ReadSlice[%T]: %w", *v, err)
		}

		return n + inc, nil

	default:
		return v.ReadFrom(bufio.NewReader(r))
	}
}

// MarshalBinary encodes the object into a binary form on a newly allocated slice of bytes.
func (v Vector[T]) MarshalBinary() (p []byte, err error) {
	buf := buffer.NewBufferSize(v.BinarySize())
	_, err = v.WriteTo(buf)
	return buf.Bytes(), err
}

// UnmarshalBinary decodes a slice of bytes generated by
// MarshalBinary or WriteTo on the object.
func (v *Vector[T]) UnmarshalBinary(p []byte) (err error) {
	_, err = v.ReadFrom(buffer.NewBuffer(p))
	return
}

func wordSize[T Word]() int {
	var t T
	return int(unsafe.Sizeof(t))
}
