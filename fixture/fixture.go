// Package fixture implements the statistical helpers used to check that
// the errors of decrypted ciphertexts follow the distribution predicted
// by the noise model.
package fixture

import (
	"fmt"
	"math"
	"testing"

	"github.com/montanaflynn/stats"
	"github.com/stretchr/testify/require"

	"github.com/Pro7ech/glwe/noise"
	"github.com/Pro7ech/glwe/ring"
)

// Errors returns the signed differences actual[i] - expected[i]
// read on the torus, i.e. as fractions in [-0.5, 0.5).
func Errors[T ring.Torus](actual, expected []T) (errs []float64) {

	if len(actual) != len(expected) {
		panic(fmt.Errorf("len(actual)=%d len(expected)=%d", len(actual), len(expected)))
	}

	errs = make([]float64, len(actual))
	for i := range actual {
		errs[i] = ring.Decode(actual[i] - expected[i])
	}

	return
}

// Summary is the empirical distribution of a sample of errors.
type Summary struct {
	Samples  int
	Mean     float64
	Variance noise.Variance
}

// Summarize computes the sample mean and the unbiased sample variance of errs.
func Summarize(errs []float64) (s Summary, err error) {

	if len(errs) < 2 {
		return s, fmt.Errorf("invalid sample: at least two values are required but have %d", len(errs))
	}

	var mean, variance float64

	if mean, err = stats.Mean(errs); err != nil {
		return s, fmt.Errorf("stats.Mean: %w", err)
	}

	if variance, err = stats.SampleVariance(errs); err != nil {
		return s, fmt.Errorf("stats.SampleVariance: %w", err)
	}

	return Summary{Samples: len(errs), Mean: mean, Variance: noise.Variance(variance)}, nil
}

// VarianceInterval returns the two sided confidence interval of the variance of
// a centered normal distribution given the sample summary s, using the
// Wilson-Hilferty approximation of the chi-square quantiles.
func VarianceInterval(s Summary, confidence float64) (lower, upper noise.Variance) {

	alpha := 1 - confidence
	nu := float64(s.Samples - 1)

	chi2 := func(p float64) float64 {
		z := stats.NormPpf(p, 0, 1)
		c := 2 / (9 * nu)
		return nu * math.Pow(1-c+z*math.Sqrt(c), 3)
	}

	lower = noise.Variance(nu * float64(s.Variance) / chi2(1-alpha/2))
	upper = noise.Variance(nu * float64(s.Variance) / chi2(alpha/2))

	return
}

// CheckNoiseDistribution returns an error if the sample errs is not consistent,
// with the given confidence, with a centered distribution of variance predicted.
func CheckNoiseDistribution(errs []float64, predicted noise.Dispersion, confidence float64) (err error) {

	var s Summary
	if s, err = Summarize(errs); err != nil {
		return
	}

	variance := predicted.Variance()

	// Noiseless operations
	if variance == 0 {
		if s.Variance != 0 || s.Mean != 0 {
			return fmt.Errorf("predicted a zero variance but have mean=%e and variance=%e", s.Mean, s.Variance)
		}
		return
	}

	z := stats.NormPpf(1-(1-confidence)/2, 0, 1)

	if bound := z * math.Sqrt(float64(variance)/float64(s.Samples)); math.Abs(s.Mean) > bound {
		return fmt.Errorf("mean=%e is outside of [-%e, %e]", s.Mean, bound, bound)
	}

	if lower, upper := VarianceInterval(s, confidence); variance < lower || variance > upper {
		return fmt.Errorf("predicted variance %e is outside of the confidence interval [%e, %e]", float64(variance), float64(lower), float64(upper))
	}

	return
}

// AssertNoiseDistribution fails the test if actual - expected is not consistent
// with a centered distribution of variance predicted.
func AssertNoiseDistribution[T ring.Torus](t *testing.T, actual, expected []T, predicted noise.Dispersion, confidence float64) {
	require.NoError(t, CheckNoiseDistribution(Errors(actual, expected), predicted, confidence))
}

// AssertNoiseBelow fails the test if the sample standard deviation of
// actual - expected exceeds the one of predicted by more than the given factor.
// It is used when the prediction is an upper bound rather than an exact model.
func AssertNoiseBelow[T ring.Torus](t *testing.T, actual, expected []T, predicted noise.Dispersion, factor float64) {
	s, err := Summarize(Errors(actual, expected))
	require.NoError(t, err)
	require.LessOrEqual(t, float64(s.Variance.StandardDev()), factor*float64(predicted.StandardDev()))
}
