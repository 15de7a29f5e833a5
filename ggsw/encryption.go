package ggsw

import (
	"fmt"

	"github.com/Pro7ech/glwe/glwe"
	"github.com/Pro7ech/glwe/noise"
	"github.com/Pro7ech/glwe/ring"
)

// EncryptGGSWCiphertextScalar encrypts the constant polynomial m under sk for a
// decomposition in base 2^baseLog over level levels and returns the result
// on a new [Ciphertext].
func (e *Engine[T]) EncryptGGSWCiphertextScalar(sk *glwe.GLWESecretKey[T], m *glwe.Cleartext[T], baseLog, level int, variance noise.Dispersion) (*Ciphertext[T], error) {

	if err := glwe.CheckDecomposition[T](baseLog, level); err != nil {
		return nil, err
	}

	ct := NewCiphertext[T](sk.GLWEDimension(), sk.PolynomialSize(), baseLog, level, sk.KeyDistribution())
	if err := e.DiscardEncryptGGSWCiphertextScalar(sk, ct, m, variance); err != nil {
		return nil, err
	}

	return ct, nil
}

// EncryptGGSWCiphertextScalarUnchecked is the unchecked variant of [Engine.EncryptGGSWCiphertextScalar].
func (e *Engine[T]) EncryptGGSWCiphertextScalarUnchecked(sk *glwe.GLWESecretKey[T], m *glwe.Cleartext[T], baseLog, level int, variance noise.Dispersion) *Ciphertext[T] {
	ct := NewCiphertext[T](sk.GLWEDimension(), sk.PolynomialSize(), baseLog, level, sk.KeyDistribution())
	e.DiscardEncryptGGSWCiphertextScalarUnchecked(sk, ct, m, variance)
	return ct
}

// DiscardEncryptGGSWCiphertextScalar encrypts the constant polynomial m under sk
// and writes the result on out, using the decomposition parameters of out.
func (e *Engine[T]) DiscardEncryptGGSWCiphertextScalar(sk *glwe.GLWESecretKey[T], out *Ciphertext[T], m *glwe.Cleartext[T], variance noise.Dispersion) (err error) {

	if err = glwe.CheckGLWE(sk, out); err != nil {
		return
	}

	if err = glwe.CheckDecomposition[T](out.BaseLog, out.Level); err != nil {
		return
	}

	if err = e.CheckNoise(variance); err != nil {
		return
	}

	if _, err = e.FFT(sk.PolynomialSize()); err != nil {
		return
	}

	e.DiscardEncryptGGSWCiphertextScalarUnchecked(sk, out, m, variance)

	return
}

// DiscardEncryptGGSWCiphertextScalarUnchecked is the unchecked variant of [Engine.DiscardEncryptGGSWCiphertextScalar].
func (e *Engine[T]) DiscardEncryptGGSWCiphertextScalarUnchecked(sk *glwe.GLWESecretKey[T], out *Ciphertext[T], m *glwe.Cleartext[T], variance noise.Dispersion) {

	w := ring.BitWidth[T]()

	zero := glwe.NewPlaintextVector[T](out.N)

	for j := 0; j < out.Level; j++ {

		g := m.Value << (w - (j+1)*out.BaseLog)

		for r := 0; r <= out.K; r++ {
			row := out.At(j, r)
			e.DiscardEncryptGLWECiphertextUnchecked(sk, row, zero, variance)
			row.Poly(r)[0] += g
		}
	}
}

// ConvertGGSWCiphertextToFourier returns the Fourier representation of in.
func (e *Engine[T]) ConvertGGSWCiphertextToFourier(in *Ciphertext[T]) (*FourierCiphertext[T], error) {
	out := NewFourierCiphertext[T](in.K, in.N, in.BaseLog, in.Level, in.Distribution)
	if err := e.DiscardConvertGGSWCiphertextToFourier(out, in); err != nil {
		return nil, err
	}
	return out, nil
}

// ConvertGGSWCiphertextToFourierUnchecked is the unchecked variant of [Engine.ConvertGGSWCiphertextToFourier].
func (e *Engine[T]) ConvertGGSWCiphertextToFourierUnchecked(in *Ciphertext[T]) *FourierCiphertext[T] {
	out := NewFourierCiphertext[T](in.K, in.N, in.BaseLog, in.Level, in.Distribution)
	e.DiscardConvertGGSWCiphertextToFourierUnchecked(out, in)
	return out
}

// DiscardConvertGGSWCiphertextToFourier writes the Fourier representation of in on out.
func (e *Engine[T]) DiscardConvertGGSWCiphertextToFourier(out *FourierCiphertext[T], in *Ciphertext[T]) (err error) {

	if err = glwe.CheckGLWE(out, in); err != nil {
		return
	}

	if err = checkDecompositionMatch(out, in); err != nil {
		return
	}

	if _, err = e.FFT(in.N); err != nil {
		return
	}

	e.DiscardConvertGGSWCiphertextToFourierUnchecked(out, in)

	return
}

// DiscardConvertGGSWCiphertextToFourierUnchecked is the unchecked variant of [Engine.DiscardConvertGGSWCiphertextToFourier].
func (e *Engine[T]) DiscardConvertGGSWCiphertextToFourierUnchecked(out *FourierCiphertext[T], in *Ciphertext[T]) {

	fft := e.mustFFT(in.N)

	for j := 0; j < in.Level; j++ {
		for r := 0; r <= in.K; r++ {
			row := in.At(j, r)
			for c := 0; c <= in.K; c++ {
				fft.Forward(row.Poly(c), out.poly(j, r, c))
			}
		}
	}
}

// Decomposed is implemented by the entities carrying a gadget decomposition.
type Decomposed interface {
	DecompositionBaseLog() int
	DecompositionLevelCount() int
}

// checkDecompositionMatch returns an error if the entities do not share the same decomposition.
func checkDecompositionMatch(entities ...Decomposed) error {
	for _, d := range entities[1:] {
		if d.DecompositionBaseLog() != entities[0].DecompositionBaseLog() || d.DecompositionLevelCount() != entities[0].DecompositionLevelCount() {
			return fmt.Errorf("%w: (base log=%d, level=%d) != (base log=%d, level=%d)", glwe.ErrDecompositionParameters,
				d.DecompositionBaseLog(), d.DecompositionLevelCount(),
				entities[0].DecompositionBaseLog(), entities[0].DecompositionLevelCount())
		}
	}
	return nil
}
