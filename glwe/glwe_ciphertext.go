package glwe

import (
	"fmt"
	"io"
	"slices"

	"github.com/Pro7ech/glwe/ring"
)

// GLWECiphertext is a GLWE ciphertext of dimension k over polynomials of N
// coefficients, stored as its k mask polynomials followed by its body:
// B = sum_i A_i * S_i + M + E.
type GLWECiphertext[T ring.Torus] struct {
	Value        []T
	N            int
	Distribution KeyDistribution
}

// GLWECiphertextBufferSize returns the size of the buffer of a GLWE ciphertext.
func GLWECiphertextBufferSize(glweDimension, polynomialSize int) int {
	return (glweDimension + 1) * polynomialSize
}

// NewGLWECiphertext allocates a new zero [GLWECiphertext].
func NewGLWECiphertext[T ring.Torus](glweDimension, polynomialSize int, dist KeyDistribution) (ct *GLWECiphertext[T]) {
	ct = new(GLWECiphertext[T])
	ct.FromBuffer(glweDimension, polynomialSize, dist, make([]T, GLWECiphertextBufferSize(glweDimension, polynomialSize)))
	return
}

// FromBuffer assigns new backing array to the receiver.
// Method panics if len(buf) is too small.
// Minimum backing array size can be obtained with [GLWECiphertextBufferSize].
func (ct *GLWECiphertext[T]) FromBuffer(glweDimension, polynomialSize int, dist KeyDistribution, buf []T) {

	if size := GLWECiphertextBufferSize(glweDimension, polynomialSize); glweDimension < 0 || polynomialSize <= 0 || len(buf) < size {
		panic(fmt.Errorf("invalid buffer size: len(buf)=%d < %d", len(buf), size))
	} else {
		ct.Value = buf[:size:size]
	}

	ct.N = polynomialSize
	ct.Distribution = dist
}

// NewGLWECiphertextView returns a [GLWECiphertext] sharing the storage of buf,
// read as consecutive polynomials of the given size, the last one being the body.
func NewGLWECiphertextView[T ring.Torus](buf []T, polynomialSize int, dist KeyDistribution) (*GLWECiphertext[T], error) {

	if polynomialSize <= 0 || len(buf) == 0 || len(buf)%polynomialSize != 0 {
		return nil, fmt.Errorf("%w: len(buf)=%d is not a non-zero multiple of %d", ErrBufferSize, len(buf), polynomialSize)
	}

	return &GLWECiphertext[T]{Value: buf, N: polynomialSize, Distribution: dist}, nil
}

// GLWEDimension returns the number of mask polynomials of the ciphertext.
func (ct GLWECiphertext[T]) GLWEDimension() int {
	return len(ct.Value)/ct.N - 1
}

// PolynomialSize returns the number of coefficients of the polynomials of the ciphertext.
func (ct GLWECiphertext[T]) PolynomialSize() int {
	return ct.N
}

// KeyDistribution returns the distribution of the key the ciphertext is tied to.
func (ct GLWECiphertext[T]) KeyDistribution() KeyDistribution {
	return ct.Distribution
}

// Poly returns the i-th polynomial of the ciphertext, i = k being the body.
func (ct GLWECiphertext[T]) Poly(i int) ring.Poly[T] {
	return ct.Value[i*ct.N : (i+1)*ct.N : (i+1)*ct.N]
}

// Body returns the body polynomial of the ciphertext.
func (ct GLWECiphertext[T]) Body() ring.Poly[T] {
	return ct.Poly(ct.GLWEDimension())
}

// Copy copies other on the receiver.
func (ct *GLWECiphertext[T]) Copy(other *GLWECiphertext[T]) {
	copy(ct.Value, other.Value)
	ct.Distribution = other.Distribution
}

// Clone returns a deep copy of the receiver.
func (ct GLWECiphertext[T]) Clone() *GLWECiphertext[T] {
	return &GLWECiphertext[T]{Value: slices.Clone(ct.Value), N: ct.N, Distribution: ct.Distribution}
}

// Equal performs a deep equal.
func (ct GLWECiphertext[T]) Equal(other *GLWECiphertext[T]) bool {
	return ct.N == other.N && ct.Distribution == other.Distribution && slices.Equal(ct.Value, other.Value)
}

// BinarySize returns the serialized size of the object in bytes.
func (ct GLWECiphertext[T]) BinarySize() int {
	return EntityBinarySize(1, 1, ct.Value)
}

// WriteTo writes the object on an io.Writer. It implements the io.WriterTo
// interface, and will write exactly object.BinarySize() bytes on w.
func (ct GLWECiphertext[T]) WriteTo(w io.Writer) (n int64, err error) {
	return WriteEntity(w, []KeyDistribution{ct.Distribution}, []int{ct.N}, ct.Value)
}

// ReadFrom reads on the object from an io.Reader. It implements the
// io.ReaderFrom interface.
func (ct *GLWECiphertext[T]) ReadFrom(r io.Reader) (n int64, err error) {

	if n, err = ReadEntity(r, []*KeyDistribution{&ct.Distribution}, []*int{&ct.N}, &ct.Value); err != nil {
		return
	}

	if ct.N <= 0 || len(ct.Value) == 0 || len(ct.Value)%ct.N != 0 {
		return n, fmt.Errorf("%w: %d coefficients for polynomials of size %d", ErrBufferSize, len(ct.Value), ct.N)
	}

	return
}

// MarshalBinary encodes the object into a binary form on a newly allocated slice of bytes.
func (ct GLWECiphertext[T]) MarshalBinary() (p []byte, err error) {
	return MarshalEntity(ct)
}

// UnmarshalBinary decodes a slice of bytes generated by
// MarshalBinary or WriteTo on the object.
func (ct *GLWECiphertext[T]) UnmarshalBinary(p []byte) (err error) {
	return UnmarshalEntity(ct, p)
}

// GLWECiphertextVector is a list of GLWE ciphertexts of the same
// dimension and polynomial size stored contiguously.
type GLWECiphertextVector[T ring.Torus] struct {
	Value        []T
	K            int
	N            int
	Distribution KeyDistribution
}

// GLWECiphertextVectorBufferSize returns the size of the buffer of count GLWE ciphertexts.
func GLWECiphertextVectorBufferSize(glweDimension, polynomialSize, count int) int {
	return count * GLWECiphertextBufferSize(glweDimension, polynomialSize)
}

// NewGLWECiphertextVector allocates a new [GLWECiphertextVector] of count zero ciphertexts.
func NewGLWECiphertextVector[T ring.Torus](glweDimension, polynomialSize, count int, dist KeyDistribution) (ct *GLWECiphertextVector[T]) {
	ct = new(GLWECiphertextVector[T])
	ct.FromBuffer(glweDimension, polynomialSize, count, dist, make([]T, GLWECiphertextVectorBufferSize(glweDimension, polynomialSize, count)))
	return
}

// FromBuffer assigns new backing array to the receiver.
// Method panics if len(buf) is too small.
// Minimum backing array size can be obtained with [GLWECiphertextVectorBufferSize].
func (ct *GLWECiphertextVector[T]) FromBuffer(glweDimension, polynomialSize, count int, dist KeyDistribution, buf []T) {

	if size := GLWECiphertextVectorBufferSize(glweDimension, polynomialSize, count); glweDimension < 0 || polynomialSize <= 0 || len(buf) < size {
		panic(fmt.Errorf("invalid buffer size: len(buf)=%d < %d", len(buf), size))
	} else {
		ct.Value = buf[:size:size]
	}

	ct.K = glweDimension
	ct.N = polynomialSize
	ct.Distribution = dist
}

// NewGLWECiphertextVectorView returns a [GLWECiphertextVector] sharing the
// storage of buf, read as consecutive GLWE ciphertexts.
func NewGLWECiphertextVectorView[T ring.Torus](buf []T, glweDimension, polynomialSize int, dist KeyDistribution) (*GLWECiphertextVector[T], error) {

	size := GLWECiphertextBufferSize(glweDimension, polynomialSize)

	if glweDimension < 0 || polynomialSize <= 0 || len(buf) == 0 || len(buf)%size != 0 {
		return nil, fmt.Errorf("%w: len(buf)=%d is not a non-zero multiple of %d", ErrBufferSize, len(buf), size)
	}

	return &GLWECiphertextVector[T]{Value: buf, K: glweDimension, N: polynomialSize, Distribution: dist}, nil
}

// GLWEDimension returns the number of mask polynomials of the ciphertexts.
func (ct GLWECiphertextVector[T]) GLWEDimension() int {
	return ct.K
}

// PolynomialSize returns the number of coefficients of the polynomials of the ciphertexts.
func (ct GLWECiphertextVector[T]) PolynomialSize() int {
	return ct.N
}

// KeyDistribution returns the distribution of the key the ciphertexts are tied to.
func (ct GLWECiphertextVector[T]) KeyDistribution() KeyDistribution {
	return ct.Distribution
}

// Count returns the number of ciphertexts.
func (ct GLWECiphertextVector[T]) Count() int {
	return len(ct.Value) / GLWECiphertextBufferSize(ct.K, ct.N)
}

// At returns the i-th ciphertext, sharing storage with the receiver.
func (ct GLWECiphertextVector[T]) At(i int) *GLWECiphertext[T] {
	size := GLWECiphertextBufferSize(ct.K, ct.N)
	return &GLWECiphertext[T]{Value: ct.Value[i*size : (i+1)*size : (i+1)*size], N: ct.N, Distribution: ct.Distribution}
}

// Clone returns a deep copy of the receiver.
func (ct GLWECiphertextVector[T]) Clone() *GLWECiphertextVector[T] {
	return &GLWECiphertextVector[T]{Value: slices.Clone(ct.Value), K: ct.K, N: ct.N, Distribution: ct.Distribution}
}

// Equal performs a deep equal.
func (ct GLWECiphertextVector[T]) Equal(other *GLWECiphertextVector[T]) bool {
	return ct.K == other.K && ct.N == other.N && ct.Distribution == other.Distribution && slices.Equal(ct.Value, other.Value)
}

// BinarySize returns the serialized size of the object in bytes.
func (ct GLWECiphertextVector[T]) BinarySize() int {
	return EntityBinarySize(1, 2, ct.Value)
}

// WriteTo writes the object on an io.Writer. It implements the io.WriterTo
// interface, and will write exactly object.BinarySize() bytes on w.
func (ct GLWECiphertextVector[T]) WriteTo(w io.Writer) (n int64, err error) {
	return WriteEntity(w, []KeyDistribution{ct.Distribution}, []int{ct.K, ct.N}, ct.Value)
}

// ReadFrom reads on the object from an io.Reader. It implements the
// io.ReaderFrom interface.
func (ct *GLWECiphertextVector[T]) ReadFrom(r io.Reader) (n int64, err error) {

	if n, err = ReadEntity(r, []*KeyDistribution{&ct.Distribution}, []*int{&ct.K, &ct.N}, &ct.Value); err != nil {
		return
	}

	if size := GLWECiphertextBufferSize(ct.K, ct.N); ct.K < 0 || ct.N <= 0 || len(ct.Value)%size != 0 {
		return n, fmt.Errorf("%w: %d coefficients for ciphertexts of size %d", ErrBufferSize, len(ct.Value), size)
	}

	return
}

// MarshalBinary encodes the object into a binary form on a newly allocated slice of bytes.
func (ct GLWECiphertextVector[T]) MarshalBinary() (p []byte, err error) {
	return MarshalEntity(ct)
}

// UnmarshalBinary decodes a slice of bytes generated by
// MarshalBinary or WriteTo on the object.
func (ct *GLWECiphertextVector[T]) UnmarshalBinary(p []byte) (err error) {
	return UnmarshalEntity(ct, p)
}
