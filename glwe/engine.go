// Package glwe implements the LWE and GLWE primitives of the engine: the
// secret keys, the encryption and decryption of LWE and GLWE ciphertexts,
// their linear algebra, the key switching and packing key switching, the
// sample extraction and the tensor product of GLWE secret keys.
//
// All operations are exposed as methods of an [Engine] in two forms: a checked
// form validating its inputs and returning an error, and an unchecked form,
// suffixed by Unchecked, assuming the inputs valid.
//
// Operations come in three flavors:
//   - allocating operations return a new entity
//   - Discard operations overwrite a caller supplied output
//   - Fuse operations update their first argument in place.
package glwe

import (
	"fmt"

	"github.com/Pro7ech/glwe/noise"
	"github.com/Pro7ech/glwe/ring"
	"github.com/Pro7ech/glwe/utils/sampling"
)

// Engine is the entry point of all the operations of this package.
// It owns the sources of randomness used to sample the secret keys, the
// masks and the noises of the encryptions, as well as the buffers of the
// operations.
//
// An Engine is not safe for concurrent use: use [Engine.ShallowCopy] to
// obtain an independent engine per goroutine.
type Engine[T ring.Torus] struct {
	seeder sampling.Seeder

	secretSource *sampling.Source
	maskSource   *sampling.Source
	noiseSource  *sampling.Source

	maskSampler *ring.UniformSampler[T]

	ffts map[int]*ring.FFT[T]
}

// NewEngine instantiates a new [Engine] whose sources of randomness are
// seeded by the given [sampling.Seeder].
func NewEngine[T ring.Torus](seeder sampling.Seeder) *Engine[T] {

	maskSource := sampling.NewSource(seeder.Seed())

	return &Engine[T]{
		seeder:       seeder,
		secretSource: sampling.NewSource(seeder.Seed()),
		maskSource:   maskSource,
		noiseSource:  sampling.NewSource(seeder.Seed()),
		maskSampler:  ring.NewUniformSampler[T](maskSource),
		ffts:         map[int]*ring.FFT[T]{},
	}
}

// ShallowCopy creates a shallow copy of the receiver in which the sources of
// randomness are re-seeded from the seeder of the receiver and all the buffers
// are reallocated. The receiver and the returned Engine can be used concurrently.
func (e Engine[T]) ShallowCopy() *Engine[T] {

	c := NewEngine[T](e.seeder)

	for N, fft := range e.ffts {
		c.ffts[N] = fft.ShallowCopy()
	}

	return c
}

// WithSeededSecretRandomness returns a shallow copy of the receiver
// whose secret keys are sampled from the given seed.
func (e Engine[T]) WithSeededSecretRandomness(seed [32]byte) *Engine[T] {
	c := e.ShallowCopy()
	c.secretSource = sampling.NewSource(seed)
	return c
}

// WithSeededPublicRandomness returns a shallow copy of the receiver
// whose masks are sampled from the given seed.
func (e Engine[T]) WithSeededPublicRandomness(seed [32]byte) *Engine[T] {
	c := e.ShallowCopy()
	c.maskSource = sampling.NewSource(seed)
	c.maskSampler = ring.NewUniformSampler[T](c.maskSource)
	return c
}

// FFT returns the negacyclic FFT of the receiver for polynomials of N coefficients.
// It is instantiated on the first call and is not safe for concurrent use.
func (e *Engine[T]) FFT(N int) (fft *ring.FFT[T], err error) {

	if fft, ok := e.ffts[N]; ok {
		return fft, nil
	}

	if fft, err = ring.NewFFT[T](N); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameters, err)
	}

	e.ffts[N] = fft

	return
}

// mustFFT returns the FFT for polynomials of N coefficients,
// N having been validated by the caller.
func (e *Engine[T]) mustFFT(N int) *ring.FFT[T] {
	fft, err := e.FFT(N)
	// Sanity check, this error should not happen.
	if err != nil {
		panic(err)
	}
	return fft
}

// noiseSampler returns a sampler of centered Gaussian noise of the given variance.
func (e *Engine[T]) noiseSampler(variance noise.Dispersion) (ring.Sampler[T], error) {
	sampler, err := ring.NewGaussianSampler[T](e.noiseSource, ring.DiscreteGaussian{Sigma: float64(variance.StandardDev())})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameters, err)
	}
	return sampler, nil
}

// mustNoiseSampler is the unchecked variant of noiseSampler.
func (e *Engine[T]) mustNoiseSampler(variance noise.Dispersion) ring.Sampler[T] {
	sampler, err := e.noiseSampler(variance)
	// Sanity check, this error should not happen.
	if err != nil {
		panic(err)
	}
	return sampler
}

// checkNoise returns an error if variance cannot be sampled.
func (e *Engine[T]) checkNoise(variance noise.Dispersion) (err error) {
	_, err = e.noiseSampler(variance)
	return
}
