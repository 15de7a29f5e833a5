package ring

import (
	"fmt"

	"github.com/Pro7ech/glwe/utils/sampling"
)

// Sampler is an interface for random vector samplers.
// Read populates a vector of torus elements according to the
// distribution of the Sampler, ReadAndAdd adds the sample on it.
type Sampler[T Torus] interface {
	GetSource() *sampling.Source
	Read(p []T)
	ReadAndAdd(p []T)
	WithSource(source *sampling.Source) Sampler[T]
}

// NewSampler instantiates a new [Sampler] interface from the provided [sampling.Source]
// and [DistributionParameters].
func NewSampler[T Torus](source *sampling.Source, X DistributionParameters) (Sampler[T], error) {
	switch X := X.(type) {
	case *DiscreteGaussian:
		return NewGaussianSampler[T](source, *X)
	case *Ternary:
		return NewTernarySampler[T](source, *X)
	case *Binary:
		return NewBinarySampler[T](source), nil
	case *Uniform:
		return NewUniformSampler[T](source), nil
	default:
		return nil, fmt.Errorf("invalid distribution: want *ring.DiscreteGaussian, *ring.Ternary, *ring.Binary or *ring.Uniform but have %T", X)
	}
}

// UniformSampler samples vectors with coefficients uniformly distributed over the torus.
type UniformSampler[T Torus] struct {
	*sampling.Source
}

// NewUniformSampler creates a new instance of [UniformSampler] from a [sampling.Source].
func NewUniformSampler[T Torus](source *sampling.Source) *UniformSampler[T] {
	return &UniformSampler[T]{Source: source}
}

// GetSource returns the underlying [sampling.Source] used by the sampler.
func (u UniformSampler[T]) GetSource() *sampling.Source {
	return u.Source
}

// WithSource returns an instance of the underlying sampler with
// a new [sampling.Source].
// It can be used concurrently with the original sampler.
func (u UniformSampler[T]) WithSource(source *sampling.Source) Sampler[T] {
	return &UniformSampler[T]{Source: source}
}

func (u *UniformSampler[T]) Read(p []T) {
	if BitWidth[T]() == 32 {
		for i := range p {
			p[i] = T(u.Uint32())
		}
	} else {
		for i := range p {
			p[i] = T(u.Uint64())
		}
	}
}

func (u *UniformSampler[T]) ReadAndAdd(p []T) {
	if BitWidth[T]() == 32 {
		for i := range p {
			p[i] += T(u.Uint32())
		}
	} else {
		for i := range p {
			p[i] += T(u.Uint64())
		}
	}
}
