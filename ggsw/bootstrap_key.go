package ggsw

import (
	"fmt"
	"io"

	"github.com/google/go-cmp/cmp"

	"github.com/Pro7ech/glwe/glwe"
	"github.com/Pro7ech/glwe/ring"
)

// BootstrapKey is the key of the programmable bootstrap: the GGSW encryptions,
// under a GLWE secret key, of each coefficient of an LWE secret key of
// dimension InputDimension.
type BootstrapKey[T ring.Torus] struct {
	Value              []T
	InputDimension     int
	K                  int
	N                  int
	BaseLog            int
	Level              int
	InputDistribution  glwe.KeyDistribution
	OutputDistribution glwe.KeyDistribution
}

// BootstrapKeyBufferSize returns the size of the buffer of a [BootstrapKey].
func BootstrapKeyBufferSize(inputDimension, glweDimension, polynomialSize, level int) int {
	return inputDimension * CiphertextBufferSize(glweDimension, polynomialSize, level)
}

// NewBootstrapKey allocates a new zero [BootstrapKey].
func NewBootstrapKey[T ring.Torus](inputDimension, glweDimension, polynomialSize, baseLog, level int, inputDist, outputDist glwe.KeyDistribution) *BootstrapKey[T] {
	return &BootstrapKey[T]{
		Value:              make([]T, BootstrapKeyBufferSize(inputDimension, glweDimension, polynomialSize, level)),
		InputDimension:     inputDimension,
		K:                  glweDimension,
		N:                  polynomialSize,
		BaseLog:            baseLog,
		Level:              level,
		InputDistribution:  inputDist,
		OutputDistribution: outputDist,
	}
}

// InputLWEDimension returns the dimension of the LWE ciphertexts the key bootstraps.
func (bsk BootstrapKey[T]) InputLWEDimension() int {
	return bsk.InputDimension
}

// OutputLWEDimension returns the dimension k*N of the bootstrapped LWE ciphertexts.
func (bsk BootstrapKey[T]) OutputLWEDimension() int {
	return bsk.K * bsk.N
}

// GLWEDimension returns the GLWE dimension of the accumulator.
func (bsk BootstrapKey[T]) GLWEDimension() int {
	return bsk.K
}

// PolynomialSize returns the number of coefficients of the polynomials of the accumulator.
func (bsk BootstrapKey[T]) PolynomialSize() int {
	return bsk.N
}

// KeyDistribution returns the distribution of the GLWE key of the accumulator.
func (bsk BootstrapKey[T]) KeyDistribution() glwe.KeyDistribution {
	return bsk.OutputDistribution
}

// DecompositionBaseLog returns the base two logarithm of the decomposition base.
func (bsk BootstrapKey[T]) DecompositionBaseLog() int {
	return bsk.BaseLog
}

// DecompositionLevelCount returns the number of levels of the decomposition.
func (bsk BootstrapKey[T]) DecompositionLevelCount() int {
	return bsk.Level
}

// At returns the GGSW encryption of the i-th coefficient of the input key,
// sharing storage with the receiver.
func (bsk BootstrapKey[T]) At(i int) *Ciphertext[T] {
	size := CiphertextBufferSize(bsk.K, bsk.N, bsk.Level)
	ct := new(Ciphertext[T])
	ct.FromBuffer(bsk.K, bsk.N, bsk.BaseLog, bsk.Level, bsk.OutputDistribution, bsk.Value[i*size:(i+1)*size])
	return ct
}

// Equal performs a deep equal.
func (bsk BootstrapKey[T]) Equal(other *BootstrapKey[T]) bool {
	return cmp.Equal(&bsk, other)
}

// BinarySize returns the serialized size of the object in bytes.
func (bsk BootstrapKey[T]) BinarySize() int {
	return glwe.EntityBinarySize(2, 5, bsk.Value)
}

// WriteTo writes the object on an [io.Writer]. It implements the [io.WriterTo]
// interface, and will write exactly object.BinarySize() bytes on w.
func (bsk BootstrapKey[T]) WriteTo(w io.Writer) (n int64, err error) {
	return glwe.WriteEntity(w,
		[]glwe.KeyDistribution{bsk.InputDistribution, bsk.OutputDistribution},
		[]int{bsk.InputDimension, bsk.K, bsk.N, bsk.BaseLog, bsk.Level},
		bsk.Value)
}

// ReadFrom reads on the object from an [io.Writer]. It implements the
// [io.ReaderFrom] interface.
func (bsk *BootstrapKey[T]) ReadFrom(r io.Reader) (n int64, err error) {

	if n, err = glwe.ReadEntity(r,
		[]*glwe.KeyDistribution{&bsk.InputDistribution, &bsk.OutputDistribution},
		[]*int{&bsk.InputDimension, &bsk.K, &bsk.N, &bsk.BaseLog, &bsk.Level},
		&bsk.Value); err != nil {
		return
	}

	return n, checkBufferSize(len(bsk.Value), bsk.InputDimension, bsk.K, bsk.N, bsk.Level)
}

// MarshalBinary encodes the object into a binary form on a newly allocated slice of bytes.
func (bsk BootstrapKey[T]) MarshalBinary() (p []byte, err error) {
	return glwe.MarshalEntity(bsk)
}

// UnmarshalBinary decodes a slice of bytes generated by
// MarshalBinary or WriteTo on the object.
func (bsk *BootstrapKey[T]) UnmarshalBinary(p []byte) (err error) {
	return glwe.UnmarshalEntity(bsk, p)
}

// FourierBootstrapKey is a [BootstrapKey] whose GGSW ciphertexts are
// stored in the Fourier domain.
type FourierBootstrapKey[T ring.Torus] struct {
	Value              []complex128
	InputDimension     int
	K                  int
	N                  int
	BaseLog            int
	Level              int
	InputDistribution  glwe.KeyDistribution
	OutputDistribution glwe.KeyDistribution
}

// NewFourierBootstrapKey allocates a new zero [FourierBootstrapKey].
func NewFourierBootstrapKey[T ring.Torus](inputDimension, glweDimension, polynomialSize, baseLog, level int, inputDist, outputDist glwe.KeyDistribution) *FourierBootstrapKey[T] {
	return &FourierBootstrapKey[T]{
		Value:              make([]complex128, inputDimension*FourierCiphertextBufferSize(glweDimension, polynomialSize, level)),
		InputDimension:     inputDimension,
		K:                  glweDimension,
		N:                  polynomialSize,
		BaseLog:            baseLog,
		Level:              level,
		InputDistribution:  inputDist,
		OutputDistribution: outputDist,
	}
}

// InputLWEDimension returns the dimension of the LWE ciphertexts the key bootstraps.
func (bsk FourierBootstrapKey[T]) InputLWEDimension() int {
	return bsk.InputDimension
}

// OutputLWEDimension returns the dimension k*N of the bootstrapped LWE ciphertexts.
func (bsk FourierBootstrapKey[T]) OutputLWEDimension() int {
	return bsk.K * bsk.N
}

// GLWEDimension returns the GLWE dimension of the accumulator.
func (bsk FourierBootstrapKey[T]) GLWEDimension() int {
	return bsk.K
}

// PolynomialSize returns the number of coefficients of the polynomials of the accumulator.
func (bsk FourierBootstrapKey[T]) PolynomialSize() int {
	return bsk.N
}

// KeyDistribution returns the distribution of the GLWE key of the accumulator.
func (bsk FourierBootstrapKey[T]) KeyDistribution() glwe.KeyDistribution {
	return bsk.OutputDistribution
}

// DecompositionBaseLog returns the base two logarithm of the decomposition base.
func (bsk FourierBootstrapKey[T]) DecompositionBaseLog() int {
	return bsk.BaseLog
}

// DecompositionLevelCount returns the number of levels of the decomposition.
func (bsk FourierBootstrapKey[T]) DecompositionLevelCount() int {
	return bsk.Level
}

// At returns the Fourier GGSW encryption of the i-th coefficient of the
// input key, sharing storage with the receiver.
func (bsk FourierBootstrapKey[T]) At(i int) *FourierCiphertext[T] {
	size := FourierCiphertextBufferSize(bsk.K, bsk.N, bsk.Level)
	ct := new(FourierCiphertext[T])
	ct.FromBuffer(bsk.K, bsk.N, bsk.BaseLog, bsk.Level, bsk.OutputDistribution, bsk.Value[i*size:(i+1)*size])
	return ct
}

// Equal performs a deep equal.
func (bsk FourierBootstrapKey[T]) Equal(other *FourierBootstrapKey[T]) bool {
	return cmp.Equal(&bsk, other)
}

// checkBootstrapKey returns an error if in cannot be bootstrapped by a key of the given
// dimensions into out with the accumulator acc.
func checkBootstrapKey(out, in glwe.LWEEntity, acc glwe.GLWEEntity, bsk interface {
	InputLWEDimension() int
	OutputLWEDimension() int
	glwe.GLWEEntity
}, inputDist glwe.KeyDistribution) error {

	if in.LWEDimension() != bsk.InputLWEDimension() {
		return fmt.Errorf("%w: input dimension %d != key input dimension %d", glwe.ErrDimensionMismatch, in.LWEDimension(), bsk.InputLWEDimension())
	}

	if out.LWEDimension() != bsk.OutputLWEDimension() {
		return fmt.Errorf("%w: output dimension %d != key output dimension %d", glwe.ErrDimensionMismatch, out.LWEDimension(), bsk.OutputLWEDimension())
	}

	if in.KeyDistribution() != inputDist {
		return fmt.Errorf("%w: input %s != key input %s", glwe.ErrKeyDistributionMismatch, in.KeyDistribution(), inputDist)
	}

	if out.KeyDistribution() != bsk.KeyDistribution() {
		return fmt.Errorf("%w: output %s != key output %s", glwe.ErrKeyDistributionMismatch, out.KeyDistribution(), bsk.KeyDistribution())
	}

	return glwe.CheckGLWE(acc, bsk)
}
