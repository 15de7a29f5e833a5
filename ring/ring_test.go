package ring

import (
	"fmt"
	"math"
	"testing"

	"github.com/Pro7ech/glwe/utils/sampling"
	"github.com/stretchr/testify/require"
)

func testString[T Torus](opname string, N int) string {
	return fmt.Sprintf("%s/width=%d/N=%d", opname, BitWidth[T](), N)
}

func TestRing(t *testing.T) {
	for _, N := range []int{2, 16, 256} {
		testRing[uint32](t, N)
		testRing[uint64](t, N)
	}

	testTorus[uint32](t)
	testTorus[uint64](t)
	testSamplers[uint32](t)
	testSamplers[uint64](t)
}

func testTorus[T Torus](t *testing.T) {

	w := BitWidth[T]()

	t.Run(testString[T]("Torus/Conversions", 0), func(t *testing.T) {
		require.Equal(t, int64(-1), ToSigned(^T(0)))
		require.Equal(t, int64(1)<<(w-1)*-1, ToSigned(T(1)<<(w-1)))
		require.Equal(t, ^T(0), FromSigned[T](-1))
		require.Equal(t, T(0), FromFloat[T](math.Ldexp(1, w)))
		require.Equal(t, ^T(0), FromFloat[T](-1))
		require.Equal(t, ^T(2), FromFloat[T](-2.6))
		require.Equal(t, T(1)<<(w-2), Encode[T](0.25))
		require.Equal(t, T(3)<<(w-2), Encode[T](-0.25))
		require.Equal(t, -0.25, Decode(Encode[T](0.75)))
	})

	t.Run(testString[T]("Torus/Rounding", 0), func(t *testing.T) {
		x := T(7)<<(w-4) + T(1)<<(w-6)
		require.Equal(t, T(7)<<(w-4), RoundToBits(x, 4))
		require.Equal(t, T(0), RoundToBits(^T(0), 4))
		require.Equal(t, 3, ModSwitch(T(3)<<(w-10), 10))
		require.Equal(t, 0, ModSwitch(^T(0), 10))
	})
}

func testRing[T Torus](t *testing.T, N int) {

	source := sampling.NewSource([32]byte{})
	uniform := NewUniformSampler[T](source)

	t.Run(testString[T]("VecOps", N), func(t *testing.T) {

		a, b := NewPoly[T](N), NewPoly[T](N)
		uniform.Read(a)
		uniform.Read(b)

		c := NewPoly[T](N)
		AddVec(a, b, c)
		SubVec(c, b, c)
		require.True(t, a.Equal(c))

		NegVec(a, c)
		AddVec(a, c, c)
		require.True(t, c.Equal(NewPoly[T](N)))

		MulScalarVec(a, 3, c)
		MulScalarThenSubVec(a, 2, c)
		require.True(t, a.Equal(c))

		MulScalarThenAddVec(a, 5, c)
		MulScalarVec(a, 6, b)
		require.True(t, b.Equal(c))

		var want T
		for i := range a {
			want += a[i] * b[i]
		}
		require.Equal(t, want, DotProduct(a, b))

		require.Panics(t, func() { AddVec(a, b[:N-1], c) })
	})

	t.Run(testString[T]("Monomial", N), func(t *testing.T) {

		p := NewPoly[T](N)
		uniform.Read(p)

		q := NewPoly[T](N)

		// X^{N} = -1
		MulByMonomial(p, N, q)
		NegVec(q, q)
		require.True(t, p.Equal(q))

		// X^{k} * X^{-k} = 1
		r := NewPoly[T](N)
		for _, k := range []int{1, N - 1, N + 1, 2*N - 1, -3} {
			MulByMonomial(p, k, q)
			MulByMonomial(q, -k, r)
			require.True(t, p.Equal(r), k)
		}

		// Matches the schoolbook product with a monomial
		m := NewPoly[T](N)
		m[N-1] = 1
		MulNegacyclic(p, m, q)
		MulByMonomial(p, N-1, r)
		require.True(t, q.Equal(r))

		MulByMonomialThenSub(p, N-1, r)
		require.True(t, r.Equal(NewPoly[T](N)))

		MulByMonomialThenAdd(p, N-1, r)
		require.True(t, q.Equal(r))
	})

	t.Run(testString[T]("Negacyclic", N), func(t *testing.T) {

		a, b, c := NewPoly[T](N), NewPoly[T](N), NewPoly[T](N)
		uniform.Read(a)
		uniform.Read(b)
		uniform.Read(c)

		// (a * b) * c = a * (b * c)
		ab, bc := NewPoly[T](N), NewPoly[T](N)
		MulNegacyclic(a, b, ab)
		MulNegacyclic(b, c, bc)

		left, right := NewPoly[T](N), NewPoly[T](N)
		MulNegacyclic(ab, c, left)
		MulNegacyclic(a, bc, right)
		require.True(t, left.Equal(right))

		// a * b = b * a
		MulNegacyclic(b, a, left)
		require.True(t, left.Equal(ab))
	})

	t.Run(testString[T]("FFT/Exact", N), func(t *testing.T) {

		fft, err := NewFFT[T](N)
		require.NoError(t, err)

		a, b := NewPoly[T](N), NewPoly[T](N)

		for i := 0; i < N; i++ {
			a[i] = FromSigned[T](int64(source.Uniform(1<<21)) - 1<<20)
			b[i] = FromSigned[T](int64(source.Uniform(16)) - 8)
		}

		want := NewPoly[T](N)
		MulNegacyclic(a, b, want)

		fa, fb, acc := NewFourierPoly(N), NewFourierPoly(N), NewFourierPoly(N)
		fft.Forward(a, fa)
		fft.Forward(b, fb)
		acc.MulAdd(fa, fb)

		have := NewPoly[T](N)
		fft.Backward(acc, have)
		require.True(t, want.Equal(have))

		fft.BackwardAdd(acc, have)
		AddVec(want, want, want)
		require.True(t, want.Equal(have))

		// Round trip
		fft.Forward(a, fa)
		fft.Backward(fa, have)
		require.True(t, a.Equal(have))
	})

	t.Run(testString[T]("FFT/Torus", N), func(t *testing.T) {

		fft, err := NewFFT[T](N)
		require.NoError(t, err)

		a, b := NewPoly[T](N), NewPoly[T](N)
		uniform.Read(a)

		for i := 0; i < N; i++ {
			b[i] = FromSigned[T](int64(source.Uniform(16)) - 8)
		}

		want := NewPoly[T](N)
		MulNegacyclic(a, b, want)

		fa, fb, acc := NewFourierPoly(N), NewFourierPoly(N), NewFourierPoly(N)
		fft.Forward(a, fa)
		fft.Forward(b, fb)
		acc.MulAdd(fa, fb)

		have := NewPoly[T](N)
		fft.ShallowCopy().Backward(acc, have)

		SubVec(have, want, have)

		// The float64 rounding error is far below 2^{w-16}
		for i := range have {
			require.Less(t, math.Abs(float64(ToSigned(have[i]))), math.Ldexp(1, BitWidth[T]()-16))
		}
	})

	t.Run(testString[T]("Decomposition", N), func(t *testing.T) {

		_, err := NewSignedDecomposer[T](0, 3)
		require.Error(t, err)

		_, err = NewSignedDecomposer[T](BitWidth[T]()/2+1, 2)
		require.Error(t, err)

		for _, dp := range [][2]int{{4, 3}, {7, 2}, {BitWidth[T]() / 4, 4}, {BitWidth[T](), 1}} {

			d, err := NewSignedDecomposer[T](dp[0], dp[1])
			require.NoError(t, err)

			x := NewPoly[T](N)
			uniform.Read(x)

			digits := make([][]T, d.Level)
			for j := range digits {
				digits[j] = make([]T, N)
			}

			d.DecomposeVec(x, digits)

			tmp := make([]T, d.Level)

			for i := range x {

				for j := range tmp {
					tmp[j] = digits[j][i]
				}

				require.Equal(t, d.ClosestRepresentable(x[i]), d.Recompose(tmp))

				half := int64(1) << (d.BaseLog - 1)
				for j := range tmp {
					s := ToSigned(tmp[j])
					if d.BaseLog < BitWidth[T]() {
						require.GreaterOrEqual(t, s, -half)
						require.Less(t, s, half)
					}
				}

				single := make([]T, d.Level)
				d.Decompose(x[i], single)
				require.Equal(t, tmp, single)
			}
		}
	})
}

func testSamplers[T Torus](t *testing.T) {

	N := 1 << 14

	source := sampling.NewSource([32]byte{})

	t.Run(testString[T]("Sampler/Gaussian", N), func(t *testing.T) {

		sigma := math.Exp2(-15)

		s, err := NewSampler[T](source, &DiscreteGaussian{Sigma: sigma})
		require.NoError(t, err)

		p := NewPoly[T](N)
		s.Read(p)

		var mean, variance float64
		for i := range p {
			v := Decode(p[i])
			require.LessOrEqual(t, math.Abs(v), 6*sigma+math.Ldexp(1, -BitWidth[T]()))
			mean += v
			variance += v * v
		}

		mean /= float64(N)
		variance = variance/float64(N) - mean*mean

		require.InDelta(t, 0, mean, 4*sigma/math.Sqrt(float64(N)))
		require.InDelta(t, sigma*sigma, variance, 0.1*sigma*sigma)

		// Same source, same sample
		q := NewPoly[T](N)
		s.WithSource(sampling.NewSource([32]byte{})).Read(q)
		require.True(t, p.Equal(q))

		_, err = NewSampler[T](source, &DiscreteGaussian{Sigma: 0.25})
		require.Error(t, err)
	})

	t.Run(testString[T]("Sampler/Binary", N), func(t *testing.T) {

		s, err := NewSampler[T](source, &Binary{})
		require.NoError(t, err)

		p := NewPoly[T](N)
		s.Read(p)

		var ones int
		for i := range p {
			require.LessOrEqual(t, p[i], T(1))
			ones += int(p[i])
		}

		require.InDelta(t, N/2, ones, 4*math.Sqrt(float64(N)))
	})

	t.Run(testString[T]("Sampler/Ternary", N), func(t *testing.T) {

		s, err := NewSampler[T](source, &Ternary{})
		require.NoError(t, err)

		p := NewPoly[T](N)
		s.Read(p)

		var counts [3]int
		for i := range p {
			v := ToSigned(p[i])
			require.True(t, v >= -1 && v <= 1)
			counts[v+1]++
		}

		for i := range counts {
			require.InDelta(t, N/3, counts[i], 4*math.Sqrt(float64(N)))
		}

		s.ReadAndAdd(p)
		for i := range p {
			v := ToSigned(p[i])
			require.True(t, v >= -2 && v <= 2)
		}

		_, err = NewSampler[T](source, &Ternary{P: 2})
		require.Error(t, err)
	})

	t.Run(testString[T]("Sampler/Invalid", N), func(t *testing.T) {
		_, err := NewSampler[T](source, nil)
		require.Error(t, err)
	})
}
