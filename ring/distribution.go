package ring

import (
	"fmt"
	"math"
)

// DistributionParameters is an interface for the distributions
// of the coefficients sampled on the torus.
// There are four implementations of this interface:
//   - DiscreteGaussian for the noise of the encryptions.
//   - Binary and Ternary for the secret keys.
//   - Uniform for the masks of the encryptions.
type DistributionParameters interface {
	Equal(DistributionParameters) bool
	String() string
	mustBeDist()
}

// DiscreteGaussian represents the parameters of a discrete Gaussian
// distribution of standard deviation Sigma and bounds [-Bound, Bound].
// Both are given as fractions of the torus, i.e. in [0, 1).
// A zero Bound stands for the default bound of 6*Sigma.
type DiscreteGaussian struct {
	Sigma float64
	Bound float64
}

// Binary represents the uniform distribution over {0, 1}.
type Binary struct{}

// Ternary represents the distribution over {-1, 0, 1} with
// probabilities [0.5*P, 1-P, 0.5*P]. The zero value stands
// for the uniform distribution over {-1, 0, 1}.
type Ternary struct {
	P float64
}

// Uniform represents the uniform distribution over the torus.
type Uniform struct{}

// NewDiscreteGaussian returns the [DiscreteGaussian] distribution
// of the given variance, expressed as a fraction of the torus.
func NewDiscreteGaussian(variance float64) *DiscreteGaussian {
	return &DiscreteGaussian{Sigma: math.Sqrt(variance)}
}

func (d DiscreteGaussian) Equal(other DistributionParameters) bool {
	switch other := other.(type) {
	case *DiscreteGaussian:
		return d.Sigma == other.Sigma && d.Bound == other.Bound
	default:
		return false
	}
}

func (d DiscreteGaussian) String() string {
	return fmt.Sprintf("DiscreteGaussian(sigma=2^%.2f)", math.Log2(d.Sigma))
}

// GetBound returns the effective bound of the distribution.
func (d DiscreteGaussian) GetBound() float64 {
	if d.Bound == 0 {
		return 6 * d.Sigma
	}
	return d.Bound
}

func (d Binary) Equal(other DistributionParameters) bool {
	_, ok := other.(*Binary)
	return ok
}

func (d Binary) String() string {
	return "Binary"
}

func (d Ternary) Equal(other DistributionParameters) bool {
	switch other := other.(type) {
	case *Ternary:
		return d.P == other.P
	default:
		return false
	}
}

func (d Ternary) String() string {
	return fmt.Sprintf("Ternary(p=%.3f)", d.density())
}

func (d Ternary) density() float64 {
	if d.P == 0 {
		return 2.0 / 3
	}
	return d.P
}

func (d Uniform) Equal(other DistributionParameters) bool {
	_, ok := other.(*Uniform)
	return ok
}

func (d Uniform) String() string {
	return "Uniform"
}

func (d DiscreteGaussian) mustBeDist() {}

func (d Binary) mustBeDist() {}

func (d Ternary) mustBeDist() {}

func (d Uniform) mustBeDist() {}
