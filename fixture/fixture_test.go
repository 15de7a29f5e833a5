package fixture

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/Pro7ech/glwe/noise"
	"github.com/Pro7ech/glwe/ring"
	"github.com/Pro7ech/glwe/utils/sampling"
	"github.com/stretchr/testify/require"
)

func TestFixture(t *testing.T) {

	/* #nosec G404: test only */
	r := rand.New(sampling.NewSource([32]byte{}))

	sigma := math.Exp2(-15)

	expected := make([]uint32, 4096)
	actual := make([]uint32, 4096)

	for i := range actual {
		expected[i] = r.Uint32()
		actual[i] = expected[i] + ring.FromFloat[uint32](r.NormFloat64()*sigma*math.Exp2(32))
	}

	t.Run("Errors", func(t *testing.T) {
		errs := Errors([]uint32{1, 0}, []uint32{0, 1})
		require.Equal(t, []float64{math.Exp2(-32), -math.Exp2(-32)}, errs)
		require.Panics(t, func() { Errors([]uint32{1}, nil) })
	})

	t.Run("Summarize", func(t *testing.T) {
		_, err := Summarize([]float64{1})
		require.Error(t, err)

		s, err := Summarize([]float64{-1, 1, -1, 1})
		require.NoError(t, err)
		require.Equal(t, 0.0, s.Mean)
		require.InDelta(t, 4.0/3, float64(s.Variance), 1e-12)
	})

	t.Run("Interval", func(t *testing.T) {
		s, err := Summarize(Errors(actual, expected))
		require.NoError(t, err)
		lower, upper := VarianceInterval(s, 0.99)
		require.Less(t, float64(lower), float64(s.Variance))
		require.Greater(t, float64(upper), float64(s.Variance))
	})

	t.Run("Match", func(t *testing.T) {
		AssertNoiseDistribution(t, actual, expected, noise.StandardDev(sigma), 0.999)
		AssertNoiseBelow(t, actual, expected, noise.StandardDev(sigma), 1.1)
	})

	t.Run("Mismatch", func(t *testing.T) {
		require.Error(t, CheckNoiseDistribution(Errors(actual, expected), noise.StandardDev(2*sigma), 0.999))
		require.Error(t, CheckNoiseDistribution(Errors(actual, expected), noise.StandardDev(sigma/2), 0.999))
	})

	t.Run("Noiseless", func(t *testing.T) {
		require.NoError(t, CheckNoiseDistribution(Errors(expected, expected), noise.Trivial(), 0.999))
		require.Error(t, CheckNoiseDistribution(Errors(actual, expected), noise.Trivial(), 0.999))
	})
}
