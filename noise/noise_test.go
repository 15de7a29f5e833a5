package noise

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDispersion(t *testing.T) {

	t.Run("Conversions", func(t *testing.T) {

		l := LogStandardDev(-15)

		require.InDelta(t, math.Exp2(-30), float64(l.Variance()), 1e-24)
		require.InDelta(t, math.Exp2(-15), float64(l.StandardDev()), 1e-18)
		require.InDelta(t, -15, float64(l.Variance().LogStandardDev()), 1e-12)
		require.InDelta(t, math.Exp2(-15), float64(l.Variance().StandardDev()), 1e-18)
		require.InDelta(t, math.Exp2(17), l.ModularStandardDev(32), 1e-6)
		require.InDelta(t, math.Exp2(34), l.ModularVariance(32), 1e-3)
		require.InDelta(t, math.Exp2(34), l.StandardDev().ModularVariance(32), 1e-3)
		require.InDelta(t, math.Exp2(17), l.StandardDev().ModularStandardDev(32), 1e-6)
		require.InDelta(t, math.Exp2(17), l.Variance().ModularStandardDev(32), 1e-6)

		require.Equal(t, l.Variance(), NewVarianceFromModular(l.ModularVariance(64), 64))
	})

	t.Run("KeyMoments", func(t *testing.T) {
		require.Equal(t, 0.5, BinaryKey.SquareMean())
		require.InDelta(t, 2.0/3, TernaryKey.SquareMean(), 1e-15)
	})
}

func TestNoise(t *testing.T) {

	v1 := LogStandardDev(-15).Variance()
	v2 := LogStandardDev(-20).Variance()

	t.Run("Algebra", func(t *testing.T) {
		require.Equal(t, v1+v2, Addition(v1, v2))
		require.Equal(t, v1+v2, Subtraction(v1, v2))
		require.Equal(t, v1, Negation(v1))
		require.Equal(t, v1, PlaintextAddition(v1))
		require.Equal(t, v1, SampleExtraction(v1))
		require.Equal(t, v1, Encryption(LogStandardDev(-15)))
		require.Equal(t, Variance(0), Trivial())
		require.Equal(t, v1*9, CleartextMultiplication(v1, -3))
		require.Equal(t, v1*4+v2*9, AffineTransform([]Dispersion{v1, v2}, []int64{2, -3}))
	})

	t.Run("Keyswitch", func(t *testing.T) {

		// Exact decomposition and noiseless key
		exact := Keyswitch(v1, 600, BinaryKey, Variance(0), 4, 8, 32)
		require.InDelta(t, float64(v1)+600.0/4*0.25/math.Exp2(64), float64(exact), 1e-12*float64(v1))

		// Monotonic in the key noise and in the input dimension
		a := Keyswitch(v1, 600, BinaryKey, v2, 4, 3, 32)
		b := Keyswitch(v1, 600, BinaryKey, v1, 4, 3, 32)
		c := Keyswitch(v1, 1200, BinaryKey, v2, 4, 3, 32)
		require.Greater(t, float64(b), float64(a))
		require.Greater(t, float64(c), float64(a))

		// Fewer levels, larger rounding
		require.Greater(t, float64(Keyswitch(v1, 600, BinaryKey, v2, 4, 2, 32)), float64(a))

		require.Equal(t, a, PackingKeyswitch(v1, 600, 1, BinaryKey, v2, 4, 3, 32))

		// The key noise accumulates with the number of packed ciphertexts
		packed := PackingKeyswitch(v1, 600, 10, BinaryKey, v2, 4, 3, 32)
		require.InDelta(t, float64(a-v1)+9*float64(b-a)/float64(v1-v2)*float64(v2), float64(packed-v1), 1e-9*float64(packed))
	})

	t.Run("ExternalProduct", func(t *testing.T) {

		ggsw := LogStandardDev(-25)

		ep := ExternalProduct(v2, ggsw, 1, 1024, BinaryKey, 7, 3, 32)
		require.Greater(t, float64(ep), float64(v2))

		cmux := CMux(v1, v2, ggsw, 1, 1024, BinaryKey, 7, 3, 32)
		require.InDelta(t, float64(ep-v2+v1), float64(cmux), 1e-12*float64(cmux))

		// Independent of the input noise
		bs := Bootstrap(600, ggsw, 1, 1024, BinaryKey, 7, 3, 32)
		require.InDelta(t, float64(bs), 600*float64(ep-v2), 1e-6*float64(bs))
	})

	t.Run("FourierPrecision", func(t *testing.T) {
		require.Equal(t, Variance(0), FourierPrecision(1, 1024, 7, 3, 32))
		require.Greater(t, float64(FourierPrecision(1, 1024, 7, 3, 64)), 0.0)
	})
}
