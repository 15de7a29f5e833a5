package ring

import (
	"fmt"

	"github.com/Pro7ech/glwe/utils/sampling"
)

// BinarySampler samples vectors with coefficients uniformly distributed in {0, 1}.
type BinarySampler[T Torus] struct {
	*sampling.Source
}

// NewBinarySampler creates a new instance of [BinarySampler] from a [sampling.Source].
func NewBinarySampler[T Torus](source *sampling.Source) *BinarySampler[T] {
	return &BinarySampler[T]{Source: source}
}

// GetSource returns the underlying [sampling.Source] used by the sampler.
func (b BinarySampler[T]) GetSource() *sampling.Source {
	return b.Source
}

// WithSource returns an instance of the underlying sampler with
// a new [sampling.Source].
// It can be used concurrently with the original sampler.
func (b BinarySampler[T]) WithSource(source *sampling.Source) Sampler[T] {
	return &BinarySampler[T]{Source: source}
}

func (b *BinarySampler[T]) Read(p []T) {
	b.read(p, func(a *T, c T) { *a = c })
}

func (b *BinarySampler[T]) ReadAndAdd(p []T) {
	b.read(p, func(a *T, c T) { *a += c })
}

func (b *BinarySampler[T]) read(p []T, f func(a *T, c T)) {
	var r uint64
	for i := range p {
		if i&63 == 0 {
			r = b.Uint64()
		}
		f(&p[i], T(r&1))
		r >>= 1
	}
}

// TernarySampler samples vectors with coefficients in {-1, 0, 1}.
type TernarySampler[T Torus] struct {
	*sampling.Source
	X Ternary

	// threshold on 53 bits uniform values: [0, t) maps to -1, [t, 2t) to 1
	threshold uint64
}

// NewTernarySampler creates a new instance of [TernarySampler] from a [sampling.Source]
// and a [Ternary] distribution parameter.
func NewTernarySampler[T Torus](source *sampling.Source, X Ternary) (s *TernarySampler[T], err error) {

	p := X.density()

	if p <= 0 || p > 1 {
		return nil, fmt.Errorf("invalid Ternary: P=%f must be in (0, 1]", X.P)
	}

	return &TernarySampler[T]{
		Source:    source,
		X:         X,
		threshold: uint64(p * (1 << 52)),
	}, nil
}

// GetSource returns the underlying [sampling.Source] used by the sampler.
func (s TernarySampler[T]) GetSource() *sampling.Source {
	return s.Source
}

// WithSource returns an instance of the underlying sampler with
// a new [sampling.Source].
// It can be used concurrently with the original sampler.
func (s TernarySampler[T]) WithSource(source *sampling.Source) Sampler[T] {
	return &TernarySampler[T]{
		Source:    source,
		X:         s.X,
		threshold: s.threshold,
	}
}

func (s *TernarySampler[T]) Read(p []T) {
	s.read(p, func(a *T, c T) { *a = c })
}

func (s *TernarySampler[T]) ReadAndAdd(p []T) {
	s.read(p, func(a *T, c T) { *a += c })
}

func (s *TernarySampler[T]) read(p []T, f func(a *T, c T)) {
	for i := range p {
		switch u := s.Uint64() >> 11; {
		case u < s.threshold:
			f(&p[i], ^T(0))
		case u < s.threshold<<1:
			f(&p[i], 1)
		default:
			f(&p[i], 0)
		}
	}
}
