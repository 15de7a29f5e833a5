package ggsw

import (
	"github.com/Pro7ech/glwe/glwe"
	"github.com/Pro7ech/glwe/ring"
)

// DiscardExternalProductGLWECiphertext evaluates the external product of the
// GLWE ciphertext in with the GGSW ciphertext ggsw and writes the result on out.
// If ggsw encrypts m, out encrypts m times the plaintext of in.
// out and in may be the same ciphertext.
func (e *Engine[T]) DiscardExternalProductGLWECiphertext(out, in *glwe.GLWECiphertext[T], ggsw *FourierCiphertext[T]) (err error) {

	if err = glwe.CheckGLWE(out, in, ggsw); err != nil {
		return
	}

	if _, err = e.FFT(ggsw.N); err != nil {
		return
	}

	e.DiscardExternalProductGLWECiphertextUnchecked(out, in, ggsw)

	return
}

// DiscardExternalProductGLWECiphertextUnchecked is the unchecked variant of [Engine.DiscardExternalProductGLWECiphertext].
func (e *Engine[T]) DiscardExternalProductGLWECiphertextUnchecked(out, in *glwe.GLWECiphertext[T], ggsw *FourierCiphertext[T]) {
	e.externalProduct(out, in, ggsw, false)
}

// externalProduct evaluates out = sum_{r, j} <Decompose(in_r)_j, ggsw_{j, r}>
// in the Fourier domain. If add is true, the result is added to out.
// out is written only once the product is complete.
func (e *Engine[T]) externalProduct(out, in *glwe.GLWECiphertext[T], ggsw *FourierCiphertext[T], add bool) {

	k, N, level := ggsw.K, ggsw.N, ggsw.Level

	fft := e.mustFFT(N)
	buf := e.getBuffers(k, N, level)
	dec := ring.SignedDecomposer[T]{BaseLog: ggsw.BaseLog, Level: level}

	for c := range buf.acc {
		buf.acc[c].Zero()
	}

	for r := 0; r <= k; r++ {

		dec.DecomposeVec(in.Poly(r), buf.digits)

		for j, digits := range buf.digits {

			fft.Forward(digits, buf.fourier)

			for c := range buf.acc {
				buf.acc[c].MulAdd(buf.fourier, ggsw.poly(j, r, c))
			}
		}
	}

	for c := range buf.acc {
		if add {
			fft.BackwardAdd(buf.acc[c], out.Poly(c))
		} else {
			fft.Backward(buf.acc[c], out.Poly(c))
		}
	}
}

// DiscardCMuxGLWECiphertext writes on out the ciphertext ct0 if ggsw encrypts 0
// and the ciphertext ct1 if ggsw encrypts 1, evaluated as
// out = ct0 + ggsw x (ct1 - ct0). out may be ct0 or ct1.
func (e *Engine[T]) DiscardCMuxGLWECiphertext(out, ct0, ct1 *glwe.GLWECiphertext[T], ggsw *FourierCiphertext[T]) (err error) {

	if err = glwe.CheckGLWE(out, ct0, ct1, ggsw); err != nil {
		return
	}

	if _, err = e.FFT(ggsw.N); err != nil {
		return
	}

	e.DiscardCMuxGLWECiphertextUnchecked(out, ct0, ct1, ggsw)

	return
}

// DiscardCMuxGLWECiphertextUnchecked is the unchecked variant of [Engine.DiscardCMuxGLWECiphertext].
func (e *Engine[T]) DiscardCMuxGLWECiphertextUnchecked(out, ct0, ct1 *glwe.GLWECiphertext[T], ggsw *FourierCiphertext[T]) {

	diff := e.getBuffers(ggsw.K, ggsw.N, ggsw.Level).diff

	e.DiscardSubGLWECiphertextUnchecked(diff, ct1, ct0)

	if out != ct0 {
		out.Copy(ct0)
	}

	e.externalProduct(out, diff, ggsw, true)
}
