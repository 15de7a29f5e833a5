package glwe

import (
	"fmt"
	"io"
	"slices"

	"github.com/Pro7ech/glwe/ring"
)

// LWESecretKey is a secret key of dimension n: n small integers
// sampled from its key distribution.
type LWESecretKey[T ring.Torus] struct {
	Value        []T
	Distribution KeyDistribution
}

// NewLWESecretKey allocates a new zero [LWESecretKey].
func NewLWESecretKey[T ring.Torus](dimension int, dist KeyDistribution) *LWESecretKey[T] {
	return &LWESecretKey[T]{Value: make([]T, dimension), Distribution: dist}
}

// LWEDimension returns the dimension of the key.
func (sk LWESecretKey[T]) LWEDimension() int {
	return len(sk.Value)
}

// KeyDistribution returns the distribution of the key.
func (sk LWESecretKey[T]) KeyDistribution() KeyDistribution {
	return sk.Distribution
}

// Equal performs a deep equal.
func (sk LWESecretKey[T]) Equal(other *LWESecretKey[T]) bool {
	return sk.Distribution == other.Distribution && slices.Equal(sk.Value, other.Value)
}

// Clone returns a deep copy of the receiver.
func (sk LWESecretKey[T]) Clone() *LWESecretKey[T] {
	return &LWESecretKey[T]{Value: slices.Clone(sk.Value), Distribution: sk.Distribution}
}

// BinarySize returns the serialized size of the object in bytes.
func (sk LWESecretKey[T]) BinarySize() int {
	return EntityBinarySize(1, 0, sk.Value)
}

// WriteTo writes the object on an io.Writer. It implements the io.WriterTo
// interface, and will write exactly object.BinarySize() bytes on w.
func (sk LWESecretKey[T]) WriteTo(w io.Writer) (n int64, err error) {
	return WriteEntity(w, []KeyDistribution{sk.Distribution}, nil, sk.Value)
}

// ReadFrom reads on the object from an io.Reader. It implements the
// io.ReaderFrom interface.
func (sk *LWESecretKey[T]) ReadFrom(r io.Reader) (n int64, err error) {
	return ReadEntity(r, []*KeyDistribution{&sk.Distribution}, nil, &sk.Value)
}

// MarshalBinary encodes the object into a binary form on a newly allocated slice of bytes.
func (sk LWESecretKey[T]) MarshalBinary() (p []byte, err error) {
	return MarshalEntity(sk)
}

// UnmarshalBinary decodes a slice of bytes generated by
// MarshalBinary or WriteTo on the object.
func (sk *LWESecretKey[T]) UnmarshalBinary(p []byte) (err error) {
	return UnmarshalEntity(sk, p)
}

// GLWESecretKey is a secret key made of k polynomials of N coefficients,
// stored one after the other.
type GLWESecretKey[T ring.Torus] struct {
	Value        []T
	N            int
	Distribution KeyDistribution
}

// NewGLWESecretKey allocates a new zero [GLWESecretKey].
func NewGLWESecretKey[T ring.Torus](glweDimension, polynomialSize int, dist KeyDistribution) *GLWESecretKey[T] {
	return &GLWESecretKey[T]{Value: make([]T, glweDimension*polynomialSize), N: polynomialSize, Distribution: dist}
}

// GLWEDimension returns the number of polynomials of the key.
func (sk GLWESecretKey[T]) GLWEDimension() int {
	if sk.N == 0 {
		return 0
	}
	return len(sk.Value) / sk.N
}

// PolynomialSize returns the number of coefficients of the polynomials of the key.
func (sk GLWESecretKey[T]) PolynomialSize() int {
	return sk.N
}

// KeyDistribution returns the distribution of the key.
func (sk GLWESecretKey[T]) KeyDistribution() KeyDistribution {
	return sk.Distribution
}

// Poly returns the i-th polynomial of the key.
func (sk GLWESecretKey[T]) Poly(i int) ring.Poly[T] {
	return sk.Value[i*sk.N : (i+1)*sk.N]
}

// AsLWESecretKey returns the LWE secret key of dimension k*N obtained by
// flattening the polynomials of the receiver, which it shares storage with.
// It decrypts the LWE ciphertexts extracted from GLWE ciphertexts encrypted
// under the receiver.
func (sk GLWESecretKey[T]) AsLWESecretKey() *LWESecretKey[T] {
	return &LWESecretKey[T]{Value: sk.Value, Distribution: sk.Distribution}
}

// Equal performs a deep equal.
func (sk GLWESecretKey[T]) Equal(other *GLWESecretKey[T]) bool {
	return sk.N == other.N && sk.Distribution == other.Distribution && slices.Equal(sk.Value, other.Value)
}

// Clone returns a deep copy of the receiver.
func (sk GLWESecretKey[T]) Clone() *GLWESecretKey[T] {
	return &GLWESecretKey[T]{Value: slices.Clone(sk.Value), N: sk.N, Distribution: sk.Distribution}
}

// BinarySize returns the serialized size of the object in bytes.
func (sk GLWESecretKey[T]) BinarySize() int {
	return EntityBinarySize(1, 1, sk.Value)
}

// WriteTo writes the object on an io.Writer. It implements the io.WriterTo
// interface, and will write exactly object.BinarySize() bytes on w.
func (sk GLWESecretKey[T]) WriteTo(w io.Writer) (n int64, err error) {
	return WriteEntity(w, []KeyDistribution{sk.Distribution}, []int{sk.N}, sk.Value)
}

// ReadFrom reads on the object from an io.Reader. It implements the
// io.ReaderFrom interface.
func (sk *GLWESecretKey[T]) ReadFrom(r io.Reader) (n int64, err error) {

	if n, err = ReadEntity(r, []*KeyDistribution{&sk.Distribution}, []*int{&sk.N}, &sk.Value); err != nil {
		return
	}

	if sk.N <= 0 || len(sk.Value)%sk.N != 0 {
		return n, fmt.Errorf("%w: %d coefficients for polynomials of size %d", ErrBufferSize, len(sk.Value), sk.N)
	}

	return
}

// MarshalBinary encodes the object into a binary form on a newly allocated slice of bytes.
func (sk GLWESecretKey[T]) MarshalBinary() (p []byte, err error) {
	return MarshalEntity(sk)
}

// UnmarshalBinary decodes a slice of bytes generated by
// MarshalBinary or WriteTo on the object.
func (sk *GLWESecretKey[T]) UnmarshalBinary(p []byte) (err error) {
	return UnmarshalEntity(sk, p)
}
