package ggsw

import (
	"fmt"

	"github.com/Pro7ech/glwe/glwe"
	"github.com/Pro7ech/glwe/noise"
	"github.com/Pro7ech/glwe/ring"
	"github.com/Pro7ech/glwe/utils"
	"github.com/Pro7ech/glwe/utils/concurrency"
)

// CreateLWEBootstrapKey generates a bootstrap key from the LWE secret key in to
// the GLWE secret key out, for a decomposition in base 2^baseLog over level levels.
// The input key must be binary.
func (e *Engine[T]) CreateLWEBootstrapKey(in *glwe.LWESecretKey[T], out *glwe.GLWESecretKey[T], baseLog, level int, variance noise.Dispersion) (*BootstrapKey[T], error) {

	if in.Distribution != glwe.Binary {
		return nil, fmt.Errorf("%w: the input key of a bootstrap key must be %s but is %s", glwe.ErrInvalidParameters, glwe.Binary, in.Distribution)
	}

	if err := glwe.CheckDecomposition[T](baseLog, level); err != nil {
		return nil, err
	}

	if err := e.CheckNoise(variance); err != nil {
		return nil, err
	}

	if _, err := e.FFT(out.PolynomialSize()); err != nil {
		return nil, err
	}

	return e.CreateLWEBootstrapKeyUnchecked(in, out, baseLog, level, variance), nil
}

// CreateLWEBootstrapKeyUnchecked is the unchecked variant of [Engine.CreateLWEBootstrapKey].
func (e *Engine[T]) CreateLWEBootstrapKeyUnchecked(in *glwe.LWESecretKey[T], out *glwe.GLWESecretKey[T], baseLog, level int, variance noise.Dispersion) *BootstrapKey[T] {

	bsk := NewBootstrapKey[T](in.LWEDimension(), out.GLWEDimension(), out.PolynomialSize(), baseLog, level, in.Distribution, out.Distribution)

	for i, s := range in.Value {
		e.DiscardEncryptGGSWCiphertextScalarUnchecked(out, bsk.At(i), &glwe.Cleartext[T]{Value: s}, variance)
	}

	return bsk
}

// ConvertLWEBootstrapKeyToFourier returns the Fourier representation of bsk.
func (e *Engine[T]) ConvertLWEBootstrapKeyToFourier(bsk *BootstrapKey[T]) (*FourierBootstrapKey[T], error) {
	out := NewFourierBootstrapKey[T](bsk.InputDimension, bsk.K, bsk.N, bsk.BaseLog, bsk.Level, bsk.InputDistribution, bsk.OutputDistribution)
	if err := e.DiscardConvertLWEBootstrapKeyToFourier(out, bsk); err != nil {
		return nil, err
	}
	return out, nil
}

// DiscardConvertLWEBootstrapKeyToFourier writes the Fourier representation of in on out.
func (e *Engine[T]) DiscardConvertLWEBootstrapKeyToFourier(out *FourierBootstrapKey[T], in *BootstrapKey[T]) (err error) {

	if out.InputDimension != in.InputDimension {
		return fmt.Errorf("%w: input dimension %d != %d", glwe.ErrDimensionMismatch, out.InputDimension, in.InputDimension)
	}

	if out.InputDistribution != in.InputDistribution {
		return fmt.Errorf("%w: input %s != %s", glwe.ErrKeyDistributionMismatch, out.InputDistribution, in.InputDistribution)
	}

	if err = glwe.CheckGLWE(out, in); err != nil {
		return
	}

	if err = checkDecompositionMatch(out, in); err != nil {
		return
	}

	if _, err = e.FFT(in.N); err != nil {
		return
	}

	e.DiscardConvertLWEBootstrapKeyToFourierUnchecked(out, in)

	return
}

// DiscardConvertLWEBootstrapKeyToFourierUnchecked is the unchecked variant of [Engine.DiscardConvertLWEBootstrapKeyToFourier].
func (e *Engine[T]) DiscardConvertLWEBootstrapKeyToFourierUnchecked(out *FourierBootstrapKey[T], in *BootstrapKey[T]) {
	for i := 0; i < in.InputDimension; i++ {
		e.DiscardConvertGGSWCiphertextToFourierUnchecked(out.At(i), in.At(i))
	}
}

// BootstrapLWECiphertext bootstraps in with the accumulator acc and returns
// the result on a new LWE ciphertext of dimension k*N.
//
// If the phase of in, switched to the modulus 2N, is phi, the output encrypts
// the constant coefficient of X^{-phi} * acc. Accumulators are built
// with [GenerateLookupTable].
func (e *Engine[T]) BootstrapLWECiphertext(in *glwe.LWECiphertext[T], acc *glwe.GLWECiphertext[T], bsk *FourierBootstrapKey[T]) (*glwe.LWECiphertext[T], error) {
	out := glwe.NewLWECiphertext[T](bsk.OutputLWEDimension(), bsk.OutputDistribution)
	if err := e.DiscardBootstrapLWECiphertext(out, in, acc, bsk); err != nil {
		return nil, err
	}
	return out, nil
}

// DiscardBootstrapLWECiphertext bootstraps in with the accumulator acc
// and writes the result on out. See [Engine.BootstrapLWECiphertext].
func (e *Engine[T]) DiscardBootstrapLWECiphertext(out, in *glwe.LWECiphertext[T], acc *glwe.GLWECiphertext[T], bsk *FourierBootstrapKey[T]) (err error) {

	if err = checkBootstrapKey(out, in, acc, bsk, bsk.InputDistribution); err != nil {
		return
	}

	if _, err = e.FFT(bsk.N); err != nil {
		return
	}

	e.DiscardBootstrapLWECiphertextUnchecked(out, in, acc, bsk)

	return
}

// DiscardBootstrapLWECiphertextUnchecked is the unchecked variant of [Engine.DiscardBootstrapLWECiphertext].
func (e *Engine[T]) DiscardBootstrapLWECiphertextUnchecked(out, in *glwe.LWECiphertext[T], acc *glwe.GLWECiphertext[T], bsk *FourierBootstrapKey[T]) {

	k, N := bsk.K, bsk.N

	logTwoN := utils.Log2(uint64(N)) + 1

	buf := e.getBuffers(k, N, bsk.Level)
	blind, rot := buf.blind, buf.rot
	blind.Distribution = bsk.OutputDistribution
	rot.Distribution = bsk.OutputDistribution

	// ACC = X^{-b} * acc
	b := ring.ModSwitch(in.Body(), logTwoN)
	for c := 0; c <= k; c++ {
		ring.MulByMonomial(acc.Poly(c), -b, blind.Poly(c))
	}

	// ACC = CMux(s_i, ACC, X^{a_i} * ACC)
	for i, a := range in.Mask() {

		ai := ring.ModSwitch(a, logTwoN)

		if ai == 0 {
			continue
		}

		for c := 0; c <= k; c++ {
			ring.MulByMonomial(blind.Poly(c), ai, rot.Poly(c))
		}

		e.DiscardCMuxGLWECiphertextUnchecked(blind, blind, rot, bsk.At(i))
	}

	e.DiscardExtractLWECiphertextUnchecked(out, blind, 0)
}

// DiscardBootstrapLWECiphertextVector bootstraps each ciphertext of in with
// the accumulator acc and writes the results on out.
func (e *Engine[T]) DiscardBootstrapLWECiphertextVector(out, in *glwe.LWECiphertextVector[T], acc *glwe.GLWECiphertext[T], bsk *FourierBootstrapKey[T]) (err error) {

	if err = checkBootstrapVectors(out, in, acc, bsk); err != nil {
		return
	}

	if _, err = e.FFT(bsk.N); err != nil {
		return
	}

	e.DiscardBootstrapLWECiphertextVectorUnchecked(out, in, acc, bsk)

	return
}

// DiscardBootstrapLWECiphertextVectorUnchecked is the unchecked variant of [Engine.DiscardBootstrapLWECiphertextVector].
func (e *Engine[T]) DiscardBootstrapLWECiphertextVectorUnchecked(out, in *glwe.LWECiphertextVector[T], acc *glwe.GLWECiphertext[T], bsk *FourierBootstrapKey[T]) {
	for i := 0; i < in.Count(); i++ {
		e.DiscardBootstrapLWECiphertextUnchecked(out.At(i), in.At(i), acc, bsk)
	}
}

// DiscardBootstrapLWECiphertextVectorConcurrent is the concurrent variant of
// [Engine.DiscardBootstrapLWECiphertextVector]: the ciphertexts are bootstrapped
// in parallel, each engine of the pool being used by one goroutine at a time.
// The engines must be independent, e.g. obtained with [Engine.ShallowCopy].
func DiscardBootstrapLWECiphertextVectorConcurrent[T ring.Torus](engines []*Engine[T], out, in *glwe.LWECiphertextVector[T], acc *glwe.GLWECiphertext[T], bsk *FourierBootstrapKey[T]) (err error) {

	if len(engines) == 0 {
		return fmt.Errorf("%w: empty pool of engines", glwe.ErrNullCount)
	}

	if err = checkBootstrapVectors(out, in, acc, bsk); err != nil {
		return
	}

	for _, e := range engines {
		if _, err = e.FFT(bsk.N); err != nil {
			return
		}
	}

	rm := concurrency.NewResourceManager(engines)

	for i := 0; i < in.Count(); i++ {
		rm.Run(func(e *Engine[T]) (err error) {
			e.DiscardBootstrapLWECiphertextUnchecked(out.At(i), in.At(i), acc, bsk)
			return
		})
	}

	return rm.Wait()
}

func checkBootstrapVectors[T ring.Torus](out, in *glwe.LWECiphertextVector[T], acc *glwe.GLWECiphertext[T], bsk *FourierBootstrapKey[T]) error {

	if in.Count() == 0 {
		return fmt.Errorf("%w: cannot bootstrap an empty ciphertext vector", glwe.ErrNullCount)
	}

	if out.Count() != in.Count() {
		return fmt.Errorf("%w: %d != %d", glwe.ErrCiphertextCountMismatch, out.Count(), in.Count())
	}

	return checkBootstrapKey(out, in, acc, bsk, bsk.InputDistribution)
}
