package bignum

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBignum(t *testing.T) {

	t.Run("Log2", func(t *testing.T) {
		for _, x := range []float64{1, 2, 3, 1 << 40, 0.125} {
			y, _ := Log2(NewFloat(x, 128)).Float64()
			require.InDelta(t, math.Log2(x), y, 1e-12)
		}
		require.True(t, Log2(NewFloat(0, 128)).IsInf())
	})

	t.Run("Pow2", func(t *testing.T) {
		for _, x := range []float64{0, 3, -15, 2.5, -0.5} {
			y, _ := Pow2(x, 128).Float64()
			require.InDelta(t, math.Exp2(x), y, 1e-12*math.Exp2(x))
		}
	})

	t.Run("Stats", func(t *testing.T) {
		values := make([]big.Int, 4)
		values[0].SetInt64(-3)
		values[1].SetInt64(3)
		values[2].SetInt64(-3)
		values[3].SetInt64(3)

		stats := Stats(values, 128)

		// Sample variance is 4*9/3 = 12
		require.InDelta(t, math.Log2(12)/2, stats[0], 1e-12)
		require.InDelta(t, 0, stats[1], 1e-12)
	})
}
