package ring

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/Pro7ech/glwe/utils/sampling"
)

// GaussianSampler keeps the state of a truncated Gaussian sampler over the torus.
type GaussianSampler[T Torus] struct {
	*sampling.Source
	Xe DiscreteGaussian

	sigma float64
	bound float64
}

// NewGaussianSampler creates a new instance of [GaussianSampler] from a [sampling.Source]
// and a [DiscreteGaussian] distribution parameter.
// Sigma and Bound are scaled by 2^w, the result must fit in [0, 2^{w-1}).
func NewGaussianSampler[T Torus](source *sampling.Source, Xe DiscreteGaussian) (g *GaussianSampler[T], err error) {

	scale := math.Ldexp(1, BitWidth[T]())

	sigma := Xe.Sigma * scale
	bound := Xe.GetBound() * scale

	if sigma < 0 || math.IsNaN(sigma) || bound >= scale/2 {
		return nil, fmt.Errorf("invalid DiscreteGaussian: sigma=%f and bound=%f must be in [0, 0.5)", Xe.Sigma, Xe.GetBound())
	}

	return &GaussianSampler[T]{
		Source: source,
		Xe:     Xe,
		sigma:  sigma,
		bound:  bound,
	}, nil
}

// GetSource returns the underlying [sampling.Source] used by the sampler.
func (g GaussianSampler[T]) GetSource() *sampling.Source {
	return g.Source
}

// WithSource returns an instance of the underlying sampler with
// a new [sampling.Source].
// It can be used concurrently with the original sampler.
func (g GaussianSampler[T]) WithSource(source *sampling.Source) Sampler[T] {
	return &GaussianSampler[T]{
		Source: source,
		Xe:     g.Xe,
		sigma:  g.sigma,
		bound:  g.bound,
	}
}

// Read samples a truncated Gaussian vector on p.
func (g *GaussianSampler[T]) Read(p []T) {
	g.read(p, func(a *T, b T) { *a = b })
}

// ReadAndAdd samples a truncated Gaussian vector and adds it on p.
func (g *GaussianSampler[T]) ReadAndAdd(p []T) {
	g.read(p, func(a *T, b T) { *a += b })
}

func (g *GaussianSampler[T]) read(p []T, f func(a *T, b T)) {

	if g.sigma == 0 {
		for i := range p {
			f(&p[i], 0)
		}
		return
	}

	/* #nosec G404: Source is cryptographically secure */
	r := rand.New(g.Source)

	for i := range p {

		var v float64
		for {
			if v = r.NormFloat64() * g.sigma; math.Abs(v) <= g.bound {
				break
			}
		}

		f(&p[i], T(int64(math.Round(v))))
	}
}
