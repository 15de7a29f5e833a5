// Package ggsw implements the GGSW ciphertexts and the operations built on
// them: the external product GLWE x GGSW -> GLWE, the CMux, the bootstrap keys
// and the programmable bootstrap of LWE ciphertexts.
//
// The external product is evaluated in the Fourier domain: GGSW ciphertexts
// and bootstrap keys are converted once with [Engine.ConvertGGSWCiphertextToFourier]
// and [Engine.ConvertLWEBootstrapKeyToFourier] before being used.
package ggsw

import (
	"fmt"
	"io"

	"github.com/google/go-cmp/cmp"

	"github.com/Pro7ech/glwe/glwe"
	"github.com/Pro7ech/glwe/ring"
)

// Ciphertext is a GGSW ciphertext of GLWE dimension k over polynomials of N
// coefficients, for a gadget decomposition in base 2^BaseLog over Level levels.
//
// It is stored level by level, each level holding k+1 rows. The row r of
// level j is a GLWE encryption of zero whose r-th polynomial is shifted by
// m * 2^{w-(j+1)*BaseLog}: the rows r < k carry -S_r * m and the last row carries m.
type Ciphertext[T ring.Torus] struct {
	Value        []T
	K            int
	N            int
	BaseLog      int
	Level        int
	Distribution glwe.KeyDistribution
}

// CiphertextBufferSize returns the size of the buffer of a GGSW ciphertext.
func CiphertextBufferSize(glweDimension, polynomialSize, level int) int {
	return level * (glweDimension + 1) * glwe.GLWECiphertextBufferSize(glweDimension, polynomialSize)
}

// checkBufferSize returns an error if size coefficients cannot hold count
// GGSW ciphertexts of GLWE dimension k, polynomial size N and level levels.
func checkBufferSize(size, count, k, N, level int) error {

	if count < 0 || k <= 0 || N <= 0 || level <= 0 {
		return fmt.Errorf("%w: invalid dimensions count=%d, k=%d, N=%d, level=%d", glwe.ErrBufferSize, count, k, N, level)
	}

	if expected := count * CiphertextBufferSize(k, N, level); size != expected {
		return fmt.Errorf("%w: len(value)=%d != %d", glwe.ErrBufferSize, size, expected)
	}

	return nil
}

// NewCiphertext allocates a new zero [Ciphertext].
func NewCiphertext[T ring.Torus](glweDimension, polynomialSize, baseLog, level int, dist glwe.KeyDistribution) (ct *Ciphertext[T]) {
	ct = new(Ciphertext[T])
	ct.FromBuffer(glweDimension, polynomialSize, baseLog, level, dist, make([]T, CiphertextBufferSize(glweDimension, polynomialSize, level)))
	return
}

// FromBuffer assigns new backing array to the receiver.
// Method panics if len(buf) is too small.
// Minimum backing array size can be obtained with [CiphertextBufferSize].
func (ct *Ciphertext[T]) FromBuffer(glweDimension, polynomialSize, baseLog, level int, dist glwe.KeyDistribution, buf []T) {

	if size := CiphertextBufferSize(glweDimension, polynomialSize, level); len(buf) < size {
		panic(fmt.Errorf("invalid buffer size: len(buf)=%d < %d", len(buf), size))
	} else {
		ct.Value = buf[:size:size]
	}

	ct.K = glweDimension
	ct.N = polynomialSize
	ct.BaseLog = baseLog
	ct.Level = level
	ct.Distribution = dist
}

// GLWEDimension returns the GLWE dimension of the rows.
func (ct Ciphertext[T]) GLWEDimension() int {
	return ct.K
}

// PolynomialSize returns the number of coefficients of the polynomials.
func (ct Ciphertext[T]) PolynomialSize() int {
	return ct.N
}

// KeyDistribution returns the distribution of the key the ciphertext is tied to.
func (ct Ciphertext[T]) KeyDistribution() glwe.KeyDistribution {
	return ct.Distribution
}

// DecompositionBaseLog returns the base two logarithm of the decomposition base.
func (ct Ciphertext[T]) DecompositionBaseLog() int {
	return ct.BaseLog
}

// DecompositionLevelCount returns the number of levels of the decomposition.
func (ct Ciphertext[T]) DecompositionLevelCount() int {
	return ct.Level
}

// At returns the row r of the level j, sharing storage with the receiver.
func (ct Ciphertext[T]) At(j, r int) *glwe.GLWECiphertext[T] {
	size := glwe.GLWECiphertextBufferSize(ct.K, ct.N)
	start := (j*(ct.K+1) + r) * size
	return &glwe.GLWECiphertext[T]{Value: ct.Value[start : start+size : start+size], N: ct.N, Distribution: ct.Distribution}
}

// Equal performs a deep equal.
func (ct Ciphertext[T]) Equal(other *Ciphertext[T]) bool {
	return cmp.Equal(&ct, other)
}

// BinarySize returns the serialized size of the object in bytes.
func (ct Ciphertext[T]) BinarySize() int {
	return glwe.EntityBinarySize(1, 4, ct.Value)
}

// WriteTo writes the object on an [io.Writer]. It implements the [io.WriterTo]
// interface, and will write exactly object.BinarySize() bytes on w.
func (ct Ciphertext[T]) WriteTo(w io.Writer) (n int64, err error) {
	return glwe.WriteEntity(w, []glwe.KeyDistribution{ct.Distribution}, []int{ct.K, ct.N, ct.BaseLog, ct.Level}, ct.Value)
}

// ReadFrom reads on the object from an [io.Writer]. It implements the
// [io.ReaderFrom] interface.
func (ct *Ciphertext[T]) ReadFrom(r io.Reader) (n int64, err error) {

	if n, err = glwe.ReadEntity(r, []*glwe.KeyDistribution{&ct.Distribution}, []*int{&ct.K, &ct.N, &ct.BaseLog, &ct.Level}, &ct.Value); err != nil {
		return
	}

	return n, checkBufferSize(len(ct.Value), 1, ct.K, ct.N, ct.Level)
}

// MarshalBinary encodes the object into a binary form on a newly allocated slice of bytes.
func (ct Ciphertext[T]) MarshalBinary() (p []byte, err error) {
	return glwe.MarshalEntity(ct)
}

// UnmarshalBinary decodes a slice of bytes generated by
// MarshalBinary or WriteTo on the object.
func (ct *Ciphertext[T]) UnmarshalBinary(p []byte) (err error) {
	return glwe.UnmarshalEntity(ct, p)
}

// FourierCiphertext is a [Ciphertext] whose polynomials are stored in the
// Fourier domain, each as N/2 complex evaluations.
type FourierCiphertext[T ring.Torus] struct {
	Value        []complex128
	K            int
	N            int
	BaseLog      int
	Level        int
	Distribution glwe.KeyDistribution
}

// FourierCiphertextBufferSize returns the size of the buffer of a [FourierCiphertext].
func FourierCiphertextBufferSize(glweDimension, polynomialSize, level int) int {
	return level * (glweDimension + 1) * (glweDimension + 1) * (polynomialSize >> 1)
}

// NewFourierCiphertext allocates a new zero [FourierCiphertext].
func NewFourierCiphertext[T ring.Torus](glweDimension, polynomialSize, baseLog, level int, dist glwe.KeyDistribution) (ct *FourierCiphertext[T]) {
	ct = new(FourierCiphertext[T])
	ct.FromBuffer(glweDimension, polynomialSize, baseLog, level, dist, make([]complex128, FourierCiphertextBufferSize(glweDimension, polynomialSize, level)))
	return
}

// FromBuffer assigns new backing array to the receiver.
// Method panics if len(buf) is too small.
// Minimum backing array size can be obtained with [FourierCiphertextBufferSize].
func (ct *FourierCiphertext[T]) FromBuffer(glweDimension, polynomialSize, baseLog, level int, dist glwe.KeyDistribution, buf []complex128) {

	if size := FourierCiphertextBufferSize(glweDimension, polynomialSize, level); len(buf) < size {
		panic(fmt.Errorf("invalid buffer size: len(buf)=%d < %d", len(buf), size))
	} else {
		ct.Value = buf[:size:size]
	}

	ct.K = glweDimension
	ct.N = polynomialSize
	ct.BaseLog = baseLog
	ct.Level = level
	ct.Distribution = dist
}

// GLWEDimension returns the GLWE dimension of the rows.
func (ct FourierCiphertext[T]) GLWEDimension() int {
	return ct.K
}

// PolynomialSize returns the number of coefficients of the polynomials.
func (ct FourierCiphertext[T]) PolynomialSize() int {
	return ct.N
}

// KeyDistribution returns the distribution of the key the ciphertext is tied to.
func (ct FourierCiphertext[T]) KeyDistribution() glwe.KeyDistribution {
	return ct.Distribution
}

// DecompositionBaseLog returns the base two logarithm of the decomposition base.
func (ct FourierCiphertext[T]) DecompositionBaseLog() int {
	return ct.BaseLog
}

// DecompositionLevelCount returns the number of levels of the decomposition.
func (ct FourierCiphertext[T]) DecompositionLevelCount() int {
	return ct.Level
}

// At returns the k+1 Fourier polynomials of the row r of the level j,
// sharing storage with the receiver.
func (ct FourierCiphertext[T]) At(j, r int) (row []ring.FourierPoly) {

	row = make([]ring.FourierPoly, ct.K+1)
	for c := range row {
		row[c] = ct.poly(j, r, c)
	}
	return
}

// poly returns the c-th Fourier polynomial of the row r of the level j.
func (ct FourierCiphertext[T]) poly(j, r, c int) ring.FourierPoly {
	M := ct.N >> 1
	start := ((j*(ct.K+1)+r)*(ct.K+1) + c) * M
	return ring.FourierPoly(ct.Value[start : start+M : start+M])
}

// Equal performs a deep equal.
func (ct FourierCiphertext[T]) Equal(other *FourierCiphertext[T]) bool {
	return cmp.Equal(&ct, other)
}
