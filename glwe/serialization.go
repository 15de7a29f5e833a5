package glwe

import (
	"bufio"
	"fmt"
	"io"

	"github.com/Pro7ech/glwe/ring"
	"github.com/Pro7ech/glwe/utils/buffer"
	"github.com/Pro7ech/glwe/utils/structs"
)

// The entities are serialized as:
//   - their key distributions on one byte each
//   - their dimensions on eight bytes each
//   - their coefficients as a [structs.Vector].

// EntityBinarySize returns the serialized size in bytes of an entity
// carrying dists key distributions, dims dimensions and the coefficients value.
func EntityBinarySize[T ring.Torus](dists, dims int, value []T) int {
	return dists + 8*dims + structs.Vector[T](value).BinarySize()
}

// WriteEntity writes the key distributions, the dimensions and the
// coefficients of an entity on w. It is the shared implementation of the
// WriteTo methods of the entities of this module.
func WriteEntity[T ring.Torus](w io.Writer, dists []KeyDistribution, dims []int, value []T) (n int64, err error) {
	switch w := w.(type) {
	case buffer.Writer:

		var inc int64

		for _, d := range dists {
			if inc, err = buffer.WriteAsUint8(w, d); err != nil {
				return n + inc, fmt.Errorf("buffer.WriteAsUint8[KeyDistribution]: %w", err)
			}
			n += inc
		}

		for _, d := range dims {
			if inc, err = buffer.WriteAsUint64(w, d); err != nil {
				return n + inc, fmt.Errorf("buffer.WriteAsUint64[int]: %w", err)
			}
			n += inc
		}

		if inc, err = structs.Vector[T](value).WriteTo(w); err != nil {
			return n + inc, fmt.Errorf("structs.Vector[T].WriteTo: %w", err)
		}

		n += inc

		return n, w.Flush()

	default:
		return WriteEntity(bufio.NewWriter(w), dists, dims, value)
	}
}

// ReadEntity reads an entity written by [WriteEntity]. The caller
// validates the dimensions against the length of value.
func ReadEntity[T ring.Torus](r io.Reader, dists []*KeyDistribution, dims []*int, value *[]T) (n int64, err error) {
	switch r := r.(type) {
	case buffer.Reader:

		var inc int64

		for _, d := range dists {
			if inc, err = buffer.ReadAsUint8(r, d); err != nil {
				return n + inc, fmt.Errorf("buffer.ReadAsUint8[KeyDistribution]: %w", err)
			}
			n += inc
		}

		for _, d := range dims {
			if inc, err = buffer.ReadAsUint64(r, d); err != nil {
				return n + inc, fmt.Errorf("buffer.ReadAsUint64[int]: %w", err)
			}
			n += inc
		}

		v := structs.Vector[T](*value)

		if inc, err = v.ReadFrom(r); err != nil {
			return n + inc, fmt.Errorf("structs.Vector[T].ReadFrom: %w", err)
		}

		*value = v

		return n + inc, nil

	default:
		return ReadEntity(bufio.NewReader(r), dists, dims, value)
	}
}

// MarshalEntity encodes e on a newly allocated slice of bytes.
func MarshalEntity(e interface {
	BinarySize() int
	WriteTo(io.Writer) (int64, error)
}) (p []byte, err error) {
	buf := buffer.NewBufferSize(e.BinarySize())
	_, err = e.WriteTo(buf)
	return buf.Bytes(), err
}

// UnmarshalEntity decodes e from a slice of bytes generated by [MarshalEntity].
func UnmarshalEntity(e io.ReaderFrom, p []byte) (err error) {
	_, err = e.ReadFrom(buffer.NewBuffer(p))
	return
}
