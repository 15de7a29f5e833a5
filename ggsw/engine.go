package ggsw

import (
	"github.com/Pro7ech/glwe/glwe"
	"github.com/Pro7ech/glwe/ring"
	"github.com/Pro7ech/glwe/utils/sampling"
)

// Engine extends [glwe.Engine] with the GGSW operations: the encryption of
// GGSW ciphertexts, the external product, the CMux and the programmable
// bootstrap. All the operations of [glwe.Engine] remain available.
//
// As its embedded [glwe.Engine], an Engine is not safe for concurrent use:
// use [Engine.ShallowCopy] to obtain an independent engine per goroutine.
type Engine[T ring.Torus] struct {
	*glwe.Engine[T]
	buffers map[bufferKey]*scratch[T]
}

type bufferKey struct {
	k, N, level int
}

// scratch holds the buffers of the external product
// and of the blind rotation for a given shape.
type scratch[T ring.Torus] struct {
	digits  [][]T
	fourier ring.FourierPoly
	acc     []ring.FourierPoly
	diff    *glwe.GLWECiphertext[T]
	rot     *glwe.GLWECiphertext[T]
	blind   *glwe.GLWECiphertext[T]
}

// NewEngine instantiates a new [Engine] whose sources of randomness are
// seeded by the given [sampling.Seeder].
func NewEngine[T ring.Torus](seeder sampling.Seeder) *Engine[T] {
	return NewEngineFromGLWE(glwe.NewEngine[T](seeder))
}

// NewEngineFromGLWE wraps an existing [glwe.Engine]. The returned
// Engine shares the sources of randomness of eng.
func NewEngineFromGLWE[T ring.Torus](eng *glwe.Engine[T]) *Engine[T] {
	return &Engine[T]{Engine: eng, buffers: map[bufferKey]*scratch[T]{}}
}

// ShallowCopy creates a shallow copy of the receiver in which the sources of
// randomness are re-seeded and all the buffers are reallocated.
// The receiver and the returned Engine can be used concurrently.
func (e Engine[T]) ShallowCopy() *Engine[T] {
	return NewEngineFromGLWE(e.Engine.ShallowCopy())
}

// WithSeededSecretRandomness returns a shallow copy of the receiver
// whose secret keys are sampled from the given seed.
func (e Engine[T]) WithSeededSecretRandomness(seed [32]byte) *Engine[T] {
	return NewEngineFromGLWE(e.Engine.WithSeededSecretRandomness(seed))
}

// WithSeededPublicRandomness returns a shallow copy of the receiver
// whose masks are sampled from the given seed.
func (e Engine[T]) WithSeededPublicRandomness(seed [32]byte) *Engine[T] {
	return NewEngineFromGLWE(e.Engine.WithSeededPublicRandomness(seed))
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

// getBuffers returns the buffers for GLWE dimension k, polynomial
// size N and level levels, allocating them on the first call.
func (e *Engine[T]) getBuffers(k, N, level int) *scratch[T] {

	key := bufferKey{k: k, N: N, level: level}

	if b, ok := e.buffers[key]; ok {
		return b
	}

	b := &scratch[T]{
		digits:  make([][]T, level),
		fourier: ring.NewFourierPoly(N),
		acc:     make([]ring.FourierPoly, k+1),
		diff:    glwe.NewGLWECiphertext[T](k, N, glwe.Binary),
		rot:     glwe.NewGLWECiphertext[T](k, N, glwe.Binary),
		blind:   glwe.NewGLWECiphertext[T](k, N, glwe.Binary),
	}

	for j := range b.digits {
		b.digits[j] = make([]T, N)
	}

	for r := range b.acc {
		b.acc[r] = ring.NewFourierPoly(N)
	}

	e.buffers[key] = b

	return b
}
