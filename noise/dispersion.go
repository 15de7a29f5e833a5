// Package noise implements the closed-form noise model of the LWE and GLWE
// operations: the variance of the error of a ciphertext produced by an
// operation as a function of the variances of its inputs.
//
// Variances are expressed in torus units, i.e. as fractions of the modulus.
package noise

import (
	"fmt"
	"math"
)

// Dispersion is a common interface for the different representations
// of the spread of a centered distribution on the torus.
type Dispersion interface {
	Variance() Variance
	StandardDev() StandardDev
	LogStandardDev() LogStandardDev
	ModularVariance(bits int) float64
	ModularStandardDev(bits int) float64
}

// Variance is the variance of a distribution on the torus.
type Variance float64

// StandardDev is the standard deviation of a distribution on the torus.
type StandardDev float64

// LogStandardDev is the base two logarithm of the standard deviation
// of a distribution on the torus.
type LogStandardDev float64

// NewVarianceFromModular returns the [Variance] corresponding to the
// variance v of a distribution over the integers modulo 2^bits.
func NewVarianceFromModular(v float64, bits int) Variance {
	return Variance(math.Ldexp(v, -2*bits))
}

func (v Variance) Variance() Variance {
	return v
}

func (v Variance) StandardDev() StandardDev {
	return StandardDev(math.Sqrt(float64(v)))
}

func (v Variance) LogStandardDev() LogStandardDev {
	return LogStandardDev(math.Log2(float64(v)) / 2)
}

// ModularVariance returns the variance over the integers modulo 2^bits.
func (v Variance) ModularVariance(bits int) float64 {
	return math.Ldexp(float64(v), 2*bits)
}

// ModularStandardDev returns the standard deviation over the integers modulo 2^bits.
func (v Variance) ModularStandardDev(bits int) float64 {
	return math.Sqrt(v.ModularVariance(bits))
}

func (v Variance) String() string {
	return fmt.Sprintf("2^%.3f", math.Log2(float64(v)))
}

func (s StandardDev) Variance() Variance {
	return Variance(s * s)
}

func (s StandardDev) StandardDev() StandardDev {
	return s
}

func (s StandardDev) LogStandardDev() LogStandardDev {
	return LogStandardDev(math.Log2(float64(s)))
}

func (s StandardDev) ModularVariance(bits int) float64 {
	return s.Variance().ModularVariance(bits)
}

func (s StandardDev) ModularStandardDev(bits int) float64 {
	return math.Ldexp(float64(s), bits)
}

func (l LogStandardDev) Variance() Variance {
	return Variance(math.Exp2(2 * float64(l)))
}

func (l LogStandardDev) StandardDev() StandardDev {
	return StandardDev(math.Exp2(float64(l)))
}

func (l LogStandardDev) LogStandardDev() LogStandardDev {
	return l
}

func (l LogStandardDev) ModularVariance(bits int) float64 {
	return l.Variance().ModularVariance(bits)
}

func (l LogStandardDev) ModularStandardDev(bits int) float64 {
	return math.Exp2(float64(l) + float64(bits))
}

// KeyMoments are the first two moments of the distribution
// of the coefficients of a secret key.
type KeyMoments struct {
	Mean     float64
	Variance float64
}

var (
	// BinaryKey are the moments of a key with coefficients uniform in {0, 1}.
	BinaryKey = KeyMoments{Mean: 0.5, Variance: 0.25}

	// TernaryKey are the moments of a key with coefficients uniform in {-1, 0, 1}.
	TernaryKey = KeyMoments{Mean: 0, Variance: 2.0 / 3}
)

// SquareMean returns E[s^2].
func (k KeyMoments) SquareMean() float64 {
	return k.Variance + k.Mean*k.Mean
}
