package glwe

import (
	"fmt"
	"io"
	"slices"

	"github.com/Pro7ech/glwe/ring"
)

// LWECiphertext is an LWE ciphertext of dimension n, stored as its mask
// of n coefficients followed by its body: b = <a, s> + m + e.
//
// A ciphertext built with [LWECiphertext.FromBuffer] or with a view
// constructor shares the storage of the buffer it was built on.
type LWECiphertext[T ring.Torus] struct {
	Value        []T
	Distribution KeyDistribution
}

// LWECiphertextBufferSize returns the size of the buffer of an LWE ciphertext of the given dimension.
func LWECiphertextBufferSize(dimension int) int {
	return dimension + 1
}

// NewLWECiphertext allocates a new zero [LWECiphertext].
func NewLWECiphertext[T ring.Torus](dimension int, dist KeyDistribution) (ct *LWECiphertext[T]) {
	ct = new(LWECiphertext[T])
	ct.FromBuffer(dimension, dist, make([]T, LWECiphertextBufferSize(dimension)))
	return
}

// FromBuffer assigns new backing array to the receiver.
// Method panics if len(buf) is too small.
// Minimum backing array size can be obtained with [LWECiphertextBufferSize].
func (ct *LWECiphertext[T]) FromBuffer(dimension int, dist KeyDistribution, buf []T) {

	if size := LWECiphertextBufferSize(dimension); dimension < 0 || len(buf) < size {
		panic(fmt.Errorf("invalid buffer size: len(buf)=%d < %d", len(buf), size))
	} else {
		ct.Value = buf[:size:size]
	}

	ct.Distribution = dist
}

// NewLWECiphertextView returns an [LWECiphertext] sharing the storage of buf,
// whose last element is read as the body.
func NewLWECiphertextView[T ring.Torus](buf []T, dist KeyDistribution) (*LWECiphertext[T], error) {
	if len(buf) == 0 {
		return nil, fmt.Errorf("%w: an LWE ciphertext has at least one element", ErrBufferSize)
	}
	return &LWECiphertext[T]{Value: buf, Distribution: dist}, nil
}

// LWEDimension returns the dimension of the ciphertext.
func (ct LWECiphertext[T]) LWEDimension() int {
	return len(ct.Value) - 1
}

// KeyDistribution returns the distribution of the key the ciphertext is tied to.
func (ct LWECiphertext[T]) KeyDistribution() KeyDistribution {
	return ct.Distribution
}

// Mask returns the mask of the ciphertext.
func (ct LWECiphertext[T]) Mask() []T {
	return ct.Value[:len(ct.Value)-1]
}

// Body returns the body of the ciphertext.
func (ct LWECiphertext[T]) Body() T {
	return ct.Value[len(ct.Value)-1]
}

// SetBody sets the body of the ciphertext.
func (ct *LWECiphertext[T]) SetBody(b T) {
	ct.Value[len(ct.Value)-1] = b
}

// Copy copies other on the receiver.
func (ct *LWECiphertext[T]) Copy(other *LWECiphertext[T]) {
	copy(ct.Value, other.Value)
	ct.Distribution = other.Distribution
}

// Clone returns a deep copy of the receiver.
func (ct LWECiphertext[T]) Clone() *LWECiphertext[T] {
	return &LWECiphertext[T]{Value: slices.Clone(ct.Value), Distribution: ct.Distribution}
}

// Equal performs a deep equal.
func (ct LWECiphertext[T]) Equal(other *LWECiphertext[T]) bool {
	return ct.Distribution == other.Distribution && slices.Equal(ct.Value, other.Value)
}

// BinarySize returns the serialized size of the object in bytes.
func (ct LWECiphertext[T]) BinarySize() int {
	return EntityBinarySize(1, 0, ct.Value)
}

// WriteTo writes the object on an io.Writer. It implements the io.WriterTo
// interface, and will write exactly object.BinarySize() bytes on w.
func (ct LWECiphertext[T]) WriteTo(w io.Writer) (n int64, err error) {
	return WriteEntity(w, []KeyDistribution{ct.Distribution}, nil, ct.Value)
}

// ReadFrom reads on the object from an io.Reader. It implements the
// io.ReaderFrom interface.
func (ct *LWECiphertext[T]) ReadFrom(r io.Reader) (n int64, err error) {

	if n, err = ReadEntity(r, []*KeyDistribution{&ct.Distribution}, nil, &ct.Value); err != nil {
		return
	}

	if len(ct.Value) == 0 {
		return n, fmt.Errorf("%w: an LWE ciphertext has at least one element", ErrBufferSize)
	}

	return
}

// MarshalBinary encodes the object into a binary form on a newly allocated slice of bytes.
func (ct LWECiphertext[T]) MarshalBinary() (p []byte, err error) {
	return MarshalEntity(ct)
}

// UnmarshalBinary decodes a slice of bytes generated by
// MarshalBinary or WriteTo on the object.
func (ct *LWECiphertext[T]) UnmarshalBinary(p []byte) (err error) {
	return UnmarshalEntity(ct, p)
}

// LWECiphertextVector is a list of LWE ciphertexts of the same
// dimension stored contiguously.
type LWECiphertextVector[T ring.Torus] struct {
	Value        []T
	Dimension    int
	Distribution KeyDistribution
}

// LWECiphertextVectorBufferSize returns the size of the buffer of count LWE ciphertexts of the given dimension.
func LWECiphertextVectorBufferSize(dimension, count int) int {
	return count * LWECiphertextBufferSize(dimension)
}

// NewLWECiphertextVector allocates a new [LWECiphertextVector] of count zero ciphertexts.
func NewLWECiphertextVector[T ring.Torus](dimension, count int, dist KeyDistribution) (ct *LWECiphertextVector[T]) {
	ct = new(LWECiphertextVector[T])
	ct.FromBuffer(dimension, count, dist, make([]T, LWECiphertextVectorBufferSize(dimension, count)))
	return
}

// FromBuffer assigns new backing array to the receiver.
// Method panics if len(buf) is too small.
// Minimum backing array size can be obtained with [LWECiphertextVectorBufferSize].
func (ct *LWECiphertextVector[T]) FromBuffer(dimension, count int, dist KeyDistribution, buf []T) {

	if size := LWECiphertextVectorBufferSize(dimension, count); dimension < 0 || len(buf) < size {
		panic(fmt.Errorf("invalid buffer size: len(buf)=%d < %d", len(buf), size))
	} else {
		ct.Value = buf[:size:size]
	}

	ct.Dimension = dimension
	ct.Distribution = dist
}

// NewLWECiphertextVectorView returns an [LWECiphertextVector] sharing the
// storage of buf, read as consecutive LWE ciphertexts of the given dimension.
func NewLWECiphertextVectorView[T ring.Torus](buf []T, dimension int, dist KeyDistribution) (*LWECiphertextVector[T], error) {

	size := LWECiphertextBufferSize(dimension)

	if dimension < 0 || len(buf) == 0 || len(buf)%size != 0 {
		return nil, fmt.Errorf("%w: len(buf)=%d is not a non-zero multiple of %d", ErrBufferSize, len(buf), size)
	}

	return &LWECiphertextVector[T]{Value: buf, Dimension: dimension, Distribution: dist}, nil
}

// LWEDimension returns the dimension of the ciphertexts.
func (ct LWECiphertextVector[T]) LWEDimension() int {
	return ct.Dimension
}

// KeyDistribution returns the distribution of the key the ciphertexts are tied to.
func (ct LWECiphertextVector[T]) KeyDistribution() KeyDistribution {
	return ct.Distribution
}

// Count returns the number of ciphertexts.
func (ct LWECiphertextVector[T]) Count() int {
	return len(ct.Value) / (ct.Dimension + 1)
}

// At returns the i-th ciphertext, sharing storage with the receiver.
func (ct LWECiphertextVector[T]) At(i int) *LWECiphertext[T] {
	size := ct.Dimension + 1
	return &LWECiphertext[T]{Value: ct.Value[i*size : (i+1)*size : (i+1)*size], Distribution: ct.Distribution}
}

// Clone returns a deep copy of the receiver.
func (ct LWECiphertextVector[T]) Clone() *LWECiphertextVector[T] {
	return &LWECiphertextVector[T]{Value: slices.Clone(ct.Value), Dimension: ct.Dimension, Distribution: ct.Distribution}
}

// Equal performs a deep equal.
func (ct LWECiphertextVector[T]) Equal(other *LWECiphertextVector[T]) bool {
	return ct.Dimension == other.Dimension && ct.Distribution == other.Distribution && slices.Equal(ct.Value, other.Value)
}

// BinarySize returns the serialized size of the object in bytes.
func (ct LWECiphertextVector[T]) BinarySize() int {
	return EntityBinarySize(1, 1, ct.Value)
}

// WriteTo writes the object on an io.Writer. It implements the io.WriterTo
// interface, and will write exactly object.BinarySize() bytes on w.
func (ct LWECiphertextVector[T]) WriteTo(w io.Writer) (n int64, err error) {
	return WriteEntity(w, []KeyDistribution{ct.Distribution}, []int{ct.Dimension}, ct.Value)
}

// ReadFrom reads on the object from an io.Reader. It implements the
// io.ReaderFrom interface.
func (ct *LWECiphertextVector[T]) ReadFrom(r io.Reader) (n int64, err error) {

	if n, err = ReadEntity(r, []*KeyDistribution{&ct.Distribution}, []*int{&ct.Dimension}, &ct.Value); err != nil {
		return
	}

	if ct.Dimension < 0 || len(ct.Value)%(ct.Dimension+1) != 0 {
		return n, fmt.Errorf("%w: %d coefficients for ciphertexts of dimension %d", ErrBufferSize, len(ct.Value), ct.Dimension)
	}

	return
}

// MarshalBinary encodes the object into a binary form on a newly allocated slice of bytes.
func (ct LWECiphertextVector[T]) MarshalBinary() (p []byte, err error) {
	return MarshalEntity(ct)
}

// UnmarshalBinary decodes a slice of bytes generated by
// MarshalBinary or WriteTo on the object.
func (ct *LWECiphertextVector[T]) UnmarshalBinary(p []byte) (err error) {
	return UnmarshalEntity(ct, p)
}
