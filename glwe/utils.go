package glwe

import (
	"fmt"
	"math"
	"math/big"

	"github.com/Pro7ech/glwe/noise"
	"github.com/Pro7ech/glwe/ring"
	"github.com/Pro7ech/glwe/utils/bignum"
)

// NoiseStats returns the base two logarithm of the standard deviation and the
// mean of the errors actual[i] - expected[i], read as signed integers and
// expressed as fractions of the torus.
func NoiseStats[T ring.Torus](actual, expected []T) (logStd noise.LogStandardDev, mean float64, err error) {

	if len(actual) != len(expected) {
		return 0, 0, fmt.Errorf("%w: len(actual)=%d != len(expected)=%d", ErrCiphertextCountMismatch, len(actual), len(expected))
	}

	if len(actual) < 2 {
		return 0, 0, fmt.Errorf("%w: at least two samples are required", ErrNullCount)
	}

	values := make([]big.Int, len(actual))
	for i := range actual {
		values[i].SetInt64(ring.ToSigned(actual[i] - expected[i]))
	}

	w := ring.BitWidth[T]()

	stats := bignum.Stats(values, 128)

	return noise.LogStandardDev(stats[0] - float64(w)), math.Ldexp(stats[1], -w), nil
}
