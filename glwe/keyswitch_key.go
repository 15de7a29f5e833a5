package glwe

import (
	"fmt"
	"io"
	"slices"

	"github.com/Pro7ech/glwe/ring"
)

// LWEKeyswitchKey is a key switching key from an LWE secret key of dimension
// InputDimension to an LWE secret key of dimension OutputDimension.
// It stores InputDimension x Level LWE ciphertexts under the output key,
// the (i, j)-th encrypting s_in[i] * 2^{w - (j+1)*BaseLog}.
type LWEKeyswitchKey[T ring.Torus] struct {
	Value              []T
	InputDimension     int
	OutputDimension    int
	BaseLog            int
	Level              int
	InputDistribution  KeyDistribution
	OutputDistribution KeyDistribution
}

// LWEKeyswitchKeyBufferSize returns the size of the buffer of an [LWEKeyswitchKey].
func LWEKeyswitchKeyBufferSize(inputDimension, outputDimension, level int) int {
	return inputDimension * level * LWECiphertextBufferSize(outputDimension)
}

// NewLWEKeyswitchKey allocates a new zero [LWEKeyswitchKey].
func NewLWEKeyswitchKey[T ring.Torus](inputDimension, outputDimension, baseLog, level int, inputDist, outputDist KeyDistribution) *LWEKeyswitchKey[T] {
	return &LWEKeyswitchKey[T]{
		Value:              make([]T, LWEKeyswitchKeyBufferSize(inputDimension, outputDimension, level)),
		InputDimension:     inputDimension,
		OutputDimension:    outputDimension,
		BaseLog:            baseLog,
		Level:              level,
		InputDistribution:  inputDist,
		OutputDistribution: outputDist,
	}
}

// At returns the ciphertext encrypting the j-th level of the i-th
// coefficient of the input key, sharing storage with the receiver.
func (ksk LWEKeyswitchKey[T]) At(i, j int) *LWECiphertext[T] {
	size := LWECiphertextBufferSize(ksk.OutputDimension)
	start := (i*ksk.Level + j) * size
	return &LWECiphertext[T]{Value: ksk.Value[start : start+size : start+size], Distribution: ksk.OutputDistribution}
}

// Equal performs a deep equal.
func (ksk LWEKeyswitchKey[T]) Equal(other *LWEKeyswitchKey[T]) bool {
	return ksk.InputDimension == other.InputDimension &&
		ksk.OutputDimension == other.OutputDimension &&
		ksk.BaseLog == other.BaseLog &&
		ksk.Level == other.Level &&
		ksk.InputDistribution == other.InputDistribution &&
		ksk.OutputDistribution == other.OutputDistribution &&
		slices.Equal(ksk.Value, other.Value)
}

// BinarySize returns the serialized size of the object in bytes.
func (ksk LWEKeyswitchKey[T]) BinarySize() int {
	return EntityBinarySize(2, 4, ksk.Value)
}

// WriteTo writes the object on an io.Writer. It implements the io.WriterTo
// interface, and will write exactly object.BinarySize() bytes on w.
func (ksk LWEKeyswitchKey[T]) WriteTo(w io.Writer) (n int64, err error) {
	return WriteEntity(w, []KeyDistribution{ksk.InputDistribution, ksk.OutputDistribution}, []int{ksk.InputDimension, ksk.OutputDimension, ksk.BaseLog, ksk.Level}, ksk.Value)
}

// ReadFrom reads on the object from an io.Reader. It implements the
// io.ReaderFrom interface.
func (ksk *LWEKeyswitchKey[T]) ReadFrom(r io.Reader) (n int64, err error) {

	if n, err = ReadEntity(r, []*KeyDistribution{&ksk.InputDistribution, &ksk.OutputDistribution}, []*int{&ksk.InputDimension, &ksk.OutputDimension, &ksk.BaseLog, &ksk.Level}, &ksk.Value); err != nil {
		return
	}

	if size := LWEKeyswitchKeyBufferSize(ksk.InputDimension, ksk.OutputDimension, ksk.Level); len(ksk.Value) != size {
		return n, fmt.Errorf("%w: len(value)=%d != %d", ErrBufferSize, len(ksk.Value), size)
	}

	return
}

// MarshalBinary encodes the object into a binary form on a newly allocated slice of bytes.
func (ksk LWEKeyswitchKey[T]) MarshalBinary() (p []byte, err error) {
	return MarshalEntity(ksk)
}

// UnmarshalBinary decodes a slice of bytes generated by
// MarshalBinary or WriteTo on the object.
func (ksk *LWEKeyswitchKey[T]) UnmarshalBinary(p []byte) (err error) {
	return UnmarshalEntity(ksk, p)
}

// PackingKeyswitchKey is a key switching key from an LWE secret key of
// dimension InputDimension to a GLWE secret key of dimension K over
// polynomials of N coefficients. It stores InputDimension x Level GLWE
// ciphertexts, the (i, j)-th encrypting the constant polynomial
// s_in[i] * 2^{w - (j+1)*BaseLog}.
type PackingKeyswitchKey[T ring.Torus] struct {
	Value              []T
	InputDimension     int
	K                  int
	N                  int
	BaseLog            int
	Level              int
	InputDistribution  KeyDistribution
	OutputDistribution KeyDistribution
}

// PackingKeyswitchKeyBufferSize returns the size of the buffer of a [PackingKeyswitchKey].
func PackingKeyswitchKeyBufferSize(inputDimension, glweDimension, polynomialSize, level int) int {
	return inputDimension * level * GLWECiphertextBufferSize(glweDimension, polynomialSize)
}

// NewPackingKeyswitchKey allocates a new zero [PackingKeyswitchKey].
func NewPackingKeyswitchKey[T ring.Torus](inputDimension, glweDimension, polynomialSize, baseLog, level int, inputDist, outputDist KeyDistribution) *PackingKeyswitchKey[T] {
	return &PackingKeyswitchKey[T]{
		Value:              make([]T, PackingKeyswitchKeyBufferSize(inputDimension, glweDimension, polynomialSize, level)),
		InputDimension:     inputDimension,
		K:                  glweDimension,
		N:                  polynomialSize,
		BaseLog:            baseLog,
		Level:              level,
		InputDistribution:  inputDist,
		OutputDistribution: outputDist,
	}
}

// GLWEDimension returns the GLWE dimension of the output key.
func (pksk PackingKeyswitchKey[T]) GLWEDimension() int {
	return pksk.K
}

// PolynomialSize returns the polynomial size of the output key.
func (pksk PackingKeyswitchKey[T]) PolynomialSize() int {
	return pksk.N
}

// KeyDistribution returns the distribution of the output key.
func (pksk PackingKeyswitchKey[T]) KeyDistribution() KeyDistribution {
	return pksk.OutputDistribution
}

// At returns the ciphertext encrypting the j-th level of the i-th
// coefficient of the input key, sharing storage with the receiver.
func (pksk PackingKeyswitchKey[T]) At(i, j int) *GLWECiphertext[T] {
	size := GLWECiphertextBufferSize(pksk.K, pksk.N)
	start := (i*pksk.Level + j) * size
	return &GLWECiphertext[T]{Value: pksk.Value[start : start+size : start+size], N: pksk.N, Distribution: pksk.OutputDistribution}
}

// Equal performs a deep equal.
func (pksk PackingKeyswitchKey[T]) Equal(other *PackingKeyswitchKey[T]) bool {
	return pksk.InputDimension == other.InputDimension &&
		pksk.K == other.K &&
		pksk.N == other.N &&
		pksk.BaseLog == other.BaseLog &&
		pksk.Level == other.Level &&
		pksk.InputDistribution == other.InputDistribution &&
		pksk.OutputDistribution == other.OutputDistribution &&
		slices.Equal(pksk.Value, other.Value)
}

// BinarySize returns the serialized size of the object in bytes.
func (pksk PackingKeyswitchKey[T]) BinarySize() int {
	return EntityBinarySize(2, 5, pksk.Value)
}

// WriteTo writes the object on an io.Writer. It implements the io.WriterTo
// interface, and will write exactly object.BinarySize() bytes on w.
func (pksk PackingKeyswitchKey[T]) WriteTo(w io.Writer) (n int64, err error) {
	return WriteEntity(w, []KeyDistribution{pksk.InputDistribution, pksk.OutputDistribution}, []int{pksk.InputDimension, pksk.K, pksk.N, pksk.BaseLog, pksk.Level}, pksk.Value)
}

// ReadFrom reads on the object from an io.Reader. It implements the
// io.ReaderFrom interface.
func (pksk *PackingKeyswitchKey[T]) ReadFrom(r io.Reader) (n int64, err error) {

	if n, err = ReadEntity(r, []*KeyDistribution{&pksk.InputDistribution, &pksk.OutputDistribution}, []*int{&pksk.InputDimension, &pksk.K, &pksk.N, &pksk.BaseLog, &pksk.Level}, &pksk.Value); err != nil {
		return
	}

	if size := PackingKeyswitchKeyBufferSize(pksk.InputDimension, pksk.K, pksk.N, pksk.Level); len(pksk.Value) != size {
		return n, fmt.Errorf("%w: len(value)=%d != %d", ErrBufferSize, len(pksk.Value), size)
	}

	return
}

// MarshalBinary encodes the object into a binary form on a newly allocated slice of bytes.
func (pksk PackingKeyswitchKey[T]) MarshalBinary() (p []byte, err error) {
	return MarshalEntity(pksk)
}

// UnmarshalBinary decodes a slice of bytes generated by
// MarshalBinary or WriteTo on the object.
func (pksk *PackingKeyswitchKey[T]) UnmarshalBinary(p []byte) (err error) {
	return UnmarshalEntity(pksk, p)
}
