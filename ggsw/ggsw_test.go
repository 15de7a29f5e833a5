package ggsw

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Pro7ech/glwe/fixture"
	"github.com/Pro7ech/glwe/glwe"
	"github.com/Pro7ech/glwe/noise"
	"github.com/Pro7ech/glwe/ring"
	"github.com/Pro7ech/glwe/utils/buffer/buffertest"
	"github.com/Pro7ech/glwe/utils/sampling"
)

var flagParamString = flag.String("params", "", "specify the test cryptographic parameters as a JSON string. Overrides default params.")

func testString(params glwe.Parameters, opname string) string {
	return fmt.Sprintf("%s/%s", opname, params)
}

type TestContext[T ring.Torus] struct {
	params glwe.Parameters
	eng    *Engine[T]
	lweSK  *glwe.LWESecretKey[T]
	glweSK *glwe.GLWESecretKey[T]
	bsk    *BootstrapKey[T]
	fbsk   *FourierBootstrapKey[T]
	source *sampling.Source
}

func NewTestContext[T ring.Torus](params glwe.Parameters) (tc *TestContext[T], err error) {

	eng := NewEngine[T](sampling.NewDeterministicSeeder([32]byte{0x01}))

	// The input key of a bootstrap key is always binary.
	lweSK, err := eng.CreateLWESecretKey(params.LWEDimension(), glwe.Binary)
	if err != nil {
		return nil, err
	}

	glweSK, err := eng.CreateGLWESecretKey(params.GLWEDimension(), params.PolynomialSize(), params.KeyDistribution())
	if err != nil {
		return nil, err
	}

	bsk, err := eng.CreateLWEBootstrapKey(lweSK, glweSK, params.PBSBaseLog(), params.PBSLevel(), params.GLWENoise())
	if err != nil {
		return nil, err
	}

	fbsk, err := eng.ConvertLWEBootstrapKeyToFourier(bsk)
	if err != nil {
		return nil, err
	}

	return &TestContext[T]{
		params: params,
		eng:    eng,
		lweSK:  lweSK,
		glweSK: glweSK,
		bsk:    bsk,
		fbsk:   fbsk,
		source: sampling.NewSource([32]byte{0x02}),
	}, nil
}

// randomPlaintexts returns count plaintexts uniform on the torus.
func (tc *TestContext[T]) randomPlaintexts(count int) *glwe.PlaintextVector[T] {
	pts := glwe.NewPlaintextVector[T](count)
	ring.NewUniformSampler[T](tc.source).Read(pts.Value)
	return pts
}

// ggsw returns the Fourier GGSW encryption of m under the GLWE key of the context.
func (tc *TestContext[T]) ggsw(t *testing.T, m int64) *FourierCiphertext[T] {
	ct, err := tc.eng.EncryptGGSWCiphertextScalar(tc.glweSK, glwe.NewCleartext[T](m), tc.params.PBSBaseLog(), tc.params.PBSLevel(), tc.params.GLWENoise())
	require.NoError(t, err)
	fct, err := tc.eng.ConvertGGSWCiphertextToFourier(ct)
	require.NoError(t, err)
	return fct
}

// lookupTable is the function evaluated by the bootstrap tests.
func lookupTable(m int) int {
	return (m*m + 1) % testMessageModulus
}

func TestGGSW(t *testing.T) {

	var err error

	paramsLiterals := testInsecure

	if *flagParamString != "" {
		var jsonParams glwe.ParametersLiteral
		if err = json.Unmarshal([]byte(*flagParamString), &jsonParams); err != nil {
			t.Fatal(err)
		}
		paramsLiterals = []glwe.ParametersLiteral{jsonParams}
	}

	for _, paramsLiteral := range paramsLiterals {

		var params glwe.Parameters
		if params, err = glwe.NewParametersFromLiteral(paramsLiteral); err != nil {
			t.Fatal(err)
		}

		switch params.LogQ() {
		case 32:
			runTestSuite[uint32](t, params)
		case 64:
			runTestSuite[uint64](t, params)
		}
	}
}

func runTestSuite[T ring.Torus](t *testing.T, params glwe.Parameters) {

	tc, err := NewTestContext[T](params)
	require.NoError(t, err)

	for _, testSet := range []func(tc *TestContext[T], t *testing.T){
		testEncryptionGGSW[T],
		testExternalProduct[T],
		testCMux[T],
		testLookupTable[T],
		testBootstrap[T],
		testSerialization[T],
		testConcurrency[T],
		testErrors[T],
	} {
		testSet(tc, t)
		runtime.GC()
	}
}

func testEncryptionGGSW[T ring.Torus](tc *TestContext[T], t *testing.T) {

	params := tc.params
	eng := tc.eng
	k := params.GLWEDimension()
	N := params.PolynomialSize()
	baseLog := params.PBSBaseLog()
	level := params.PBSLevel()
	w := ring.BitWidth[T]()

	t.Run(testString(params, "EncryptGGSW/Scalar"), func(t *testing.T) {

		m := int64(3)

		ct, err := eng.EncryptGGSWCiphertextScalar(tc.glweSK, glwe.NewCleartext[T](m), baseLog, level, params.GLWENoise())
		require.NoError(t, err)

		require.Equal(t, k, ct.GLWEDimension())
		require.Equal(t, N, ct.PolynomialSize())
		require.Equal(t, baseLog, ct.DecompositionBaseLog())
		require.Equal(t, level, ct.DecompositionLevelCount())
		require.Equal(t, params.KeyDistribution(), ct.KeyDistribution())

		actual := make([]T, 0, level*(k+1)*N)
		expected := make([]T, 0, level*(k+1)*N)

		for j := 0; j < level; j++ {

			g := ring.FromSigned[T](m) << (w - (j+1)*baseLog)

			for r := 0; r <= k; r++ {

				dec := eng.DecryptGLWECiphertextUnchecked(tc.glweSK, ct.At(j, r)).Value

				want := make([]T, N)
				if r == k {
					want[0] = g
				} else {
					// The mask rows decrypt to -S_r * m * g_j
					for i, s := range tc.glweSK.Poly(r) {
						want[i] = -s * g
					}
				}

				actual = append(actual, dec...)
				expected = append(expected, want...)
			}
		}

		fixture.AssertNoiseBelow(t, actual, expected, noise.Encryption(params.GLWENoise()), 1.25)
	})

	t.Run(testString(params, "EncryptGGSW/Fourier"), func(t *testing.T) {

		ct := eng.EncryptGGSWCiphertextScalarUnchecked(tc.glweSK, glwe.NewCleartext[T](1), baseLog, level, params.GLWENoise())

		fct, err := eng.ConvertGGSWCiphertextToFourier(ct)
		require.NoError(t, err)

		fft, err := eng.FFT(N)
		require.NoError(t, err)

		// The Fourier rows are the transforms of the standard rows
		want := ring.NewFourierPoly(N)
		for j := 0; j < level; j++ {
			for r := 0; r <= k; r++ {
				for c, p := range fct.At(j, r) {
					fft.Forward(ct.At(j, r).Poly(c), want)
					require.Equal(t, want, p)
				}
			}
		}

		other := NewFourierCiphertext[T](k, N, baseLog, level, params.KeyDistribution())
		require.NoError(t, eng.DiscardConvertGGSWCiphertextToFourier(other, ct))
		require.True(t, fct.Equal(other))
		require.True(t, fct.Equal(eng.ConvertGGSWCiphertextToFourierUnchecked(ct)))
	})
}

func testExternalProduct[T ring.Torus](tc *TestContext[T], t *testing.T) {

	params := tc.params
	eng := tc.eng
	k := params.GLWEDimension()
	N := params.PolynomialSize()
	dist := params.KeyDistribution()

	predicted := func(in noise.Dispersion) noise.Variance {
		return noise.ExternalProduct(in, params.GLWENoise(), k, N, dist.Moments(), params.PBSBaseLog(), params.PBSLevel(), params.LogQ())
	}

	pts := tc.randomPlaintexts(N)
	in := eng.EncryptGLWECiphertextUnchecked(tc.glweSK, pts, params.GLWENoise())

	t.Run(testString(params, "ExternalProduct/One"), func(t *testing.T) {

		out := glwe.NewGLWECiphertext[T](k, N, dist)
		require.NoError(t, eng.DiscardExternalProductGLWECiphertext(out, in, tc.ggsw(t, 1)))

		fixture.AssertNoiseBelow(t, eng.DecryptGLWECiphertextUnchecked(tc.glweSK, out).Value, pts.Value, predicted(params.GLWENoise()), 1.25)
	})

	t.Run(testString(params, "ExternalProduct/Zero"), func(t *testing.T) {

		out := glwe.NewGLWECiphertext[T](k, N, dist)
		require.NoError(t, eng.DiscardExternalProductGLWECiphertext(out, in, tc.ggsw(t, 0)))

		fixture.AssertNoiseBelow(t, eng.DecryptGLWECiphertextUnchecked(tc.glweSK, out).Value, make([]T, N), predicted(noise.Trivial()), 1.25)
	})

	t.Run(testString(params, "ExternalProduct/Monomial"), func(t *testing.T) {

		// GGSW(-1) negates the plaintext
		out := glwe.NewGLWECiphertext[T](k, N, dist)
		require.NoError(t, eng.DiscardExternalProductGLWECiphertext(out, in, tc.ggsw(t, -1)))

		want := make([]T, N)
		for i := range want {
			want[i] = -pts.Value[i]
		}

		fixture.AssertNoiseBelow(t, eng.DecryptGLWECiphertextUnchecked(tc.glweSK, out).Value, want, predicted(params.GLWENoise()), 1.25)
	})

	t.Run(testString(params, "ExternalProduct/InPlace"), func(t *testing.T) {

		ggsw := tc.ggsw(t, 1)

		out := glwe.NewGLWECiphertext[T](k, N, dist)
		eng.DiscardExternalProductGLWECiphertextUnchecked(out, in, ggsw)

		inplace := in.Clone()
		eng.DiscardExternalProductGLWECiphertextUnchecked(inplace, inplace, ggsw)

		require.True(t, out.Equal(inplace))
	})
}

func testCMux[T ring.Torus](tc *TestContext[T], t *testing.T) {

	params := tc.params
	eng := tc.eng
	k := params.GLWEDimension()
	N := params.PolynomialSize()
	dist := params.KeyDistribution()

	predicted := noise.CMux(params.GLWENoise(), params.GLWENoise(), params.GLWENoise(), k, N, dist.Moments(), params.PBSBaseLog(), params.PBSLevel(), params.LogQ())

	pt0 := tc.randomPlaintexts(N)
	pt1 := tc.randomPlaintexts(N)

	ct0 := eng.EncryptGLWECiphertextUnchecked(tc.glweSK, pt0, params.GLWENoise())
	ct1 := eng.EncryptGLWECiphertextUnchecked(tc.glweSK, pt1, params.GLWENoise())

	for _, bit := range []int64{0, 1} {

		t.Run(testString(params, fmt.Sprintf("CMux/Bit=%d", bit)), func(t *testing.T) {

			ggsw := tc.ggsw(t, bit)

			want := pt0.Value
			if bit == 1 {
				want = pt1.Value
			}

			out := glwe.NewGLWECiphertext[T](k, N, dist)
			require.NoError(t, eng.DiscardCMuxGLWECiphertext(out, ct0, ct1, ggsw))

			fixture.AssertNoiseBelow(t, eng.DecryptGLWECiphertextUnchecked(tc.glweSK, out).Value, want, predicted, 1.25)

			// The output may alias either input
			alias0 := ct0.Clone()
			eng.DiscardCMuxGLWECiphertextUnchecked(alias0, alias0, ct1, ggsw)
			require.True(t, out.Equal(alias0))

			alias1 := ct1.Clone()
			eng.DiscardCMuxGLWECiphertextUnchecked(alias1, ct0, alias1, ggsw)
			require.True(t, out.Equal(alias1))
		})
	}
}

func testLookupTable[T ring.Torus](tc *TestContext[T], t *testing.T) {

	params := tc.params
	k := params.GLWEDimension()
	N := params.PolynomialSize()
	dist := params.KeyDistribution()
	p := testMessageModulus

	t.Run(testString(params, "LookupTable/Encoding"), func(t *testing.T) {

		for m := -2 * p; m < 2*p; m++ {
			x := EncodeMessage[T](m, p)
			require.Equal(t, ((m%p)+p)%p, DecodeMessage(x, p))

			// Messages only use the first half of the torus
			require.Less(t, ring.Decode(x), 0.5)
			require.GreaterOrEqual(t, ring.Decode(x), 0.0)

			// Decoding tolerates noise below 1/(4p)
			delta := ring.Encode[T](1 / float64(4*p+1))
			require.Equal(t, ((m%p)+p)%p, DecodeMessage(x+delta, p))
			require.Equal(t, ((m%p)+p)%p, DecodeMessage(x-delta, p))
		}
	})

	t.Run(testString(params, "LookupTable/Rotation"), func(t *testing.T) {

		acc, err := GenerateLookupTable[T](k, N, p, dist, lookupTable)
		require.NoError(t, err)

		require.Equal(t, k, acc.GLWEDimension())
		require.Equal(t, N, acc.PolynomialSize())
		require.Equal(t, dist, acc.KeyDistribution())

		for c := 0; c < k; c++ {
			require.Equal(t, make(ring.Poly[T], N), acc.Poly(c))
		}

		box := N / p
		rot := ring.NewPoly[T](N)

		for m := 0; m < p; m++ {
			for _, offset := range []int{-box/2 + 1, 0, box/2 - 1} {
				// The constant coefficient of X^{-phi} * acc
				ring.MulByMonomial(acc.Body(), -(m*box + offset), rot)
				require.Equal(t, EncodeMessage[T](lookupTable(m), p), rot[0], "m=%d offset=%d", m, offset)
			}
		}
	})
}

func testBootstrap[T ring.Torus](tc *TestContext[T], t *testing.T) {

	params := tc.params
	eng := tc.eng
	k := params.GLWEDimension()
	N := params.PolynomialSize()
	n := params.LWEDimension()
	dist := params.KeyDistribution()
	p := testMessageModulus

	acc, err := GenerateLookupTable[T](k, N, p, dist, lookupTable)
	require.NoError(t, err)

	flat := tc.glweSK.AsLWESecretKey()

	predicted := noise.Bootstrap(n, params.GLWENoise(), k, N, dist.Moments(), params.PBSBaseLog(), params.PBSLevel(), params.LogQ())

	count := 32

	messages := make([]int, count)
	pts := glwe.NewPlaintextVector[T](count)
	want := make([]T, count)
	for i := range messages {
		messages[i] = i % p
		pts.Value[i] = EncodeMessage[T](messages[i], p)
		want[i] = EncodeMessage[T](lookupTable(messages[i]), p)
	}

	bootstrap := func(t *testing.T, variance noise.Dispersion) []T {

		in, err := eng.EncryptLWECiphertextVector(tc.lweSK, pts, variance)
		require.NoError(t, err)

		out := glwe.NewLWECiphertextVector[T](k*N, count, dist)
		require.NoError(t, eng.DiscardBootstrapLWECiphertextVector(out, in, acc, tc.fbsk))

		dec := eng.DecryptLWECiphertextVectorUnchecked(flat, out).Value

		for i := range dec {
			require.Equal(t, lookupTable(messages[i]), DecodeMessage(dec[i], p))
		}

		return dec
	}

	t.Run(testString(params, "Bootstrap/LWECiphertext"), func(t *testing.T) {

		in := eng.EncryptLWECiphertextUnchecked(tc.lweSK, glwe.NewPlaintext(EncodeMessage[T](3, p)), params.LWENoise())

		out, err := eng.BootstrapLWECiphertext(in, acc, tc.fbsk)
		require.NoError(t, err)
		require.Equal(t, k*N, out.LWEDimension())
		require.Equal(t, dist, out.KeyDistribution())

		require.Equal(t, lookupTable(3), DecodeMessage(eng.DecryptLWECiphertextUnchecked(flat, out).Value, p))

		other := glwe.NewLWECiphertext[T](k*N, dist)
		require.NoError(t, eng.DiscardBootstrapLWECiphertext(other, in, acc, tc.fbsk))
		require.True(t, out.Equal(other))
	})

	t.Run(testString(params, "Bootstrap/NoiseIndependence"), func(t *testing.T) {

		// The output noise does not depend on the noise of the input
		small := bootstrap(t, params.LWENoise())
		large := bootstrap(t, noise.LogStandardDev(-9))

		fixture.AssertNoiseBelow(t, small, want, predicted, 1.5)
		fixture.AssertNoiseBelow(t, large, want, predicted, 1.5)
	})

	t.Run(testString(params, "Bootstrap/Keyswitch"), func(t *testing.T) {

		// Bootstrap, key switch back to the input key and bootstrap again
		ksk, err := eng.CreateLWEKeyswitchKey(flat, tc.lweSK, params.KSBaseLog(), params.KSLevel(), params.LWENoise())
		require.NoError(t, err)

		in := eng.EncryptLWECiphertextVectorUnchecked(tc.lweSK, pts, params.LWENoise())

		out := glwe.NewLWECiphertextVector[T](k*N, count, dist)
		eng.DiscardBootstrapLWECiphertextVectorUnchecked(out, in, acc, tc.fbsk)

		switched := glwe.NewLWECiphertextVector[T](n, count, glwe.Binary)
		require.NoError(t, eng.DiscardKeyswitchLWECiphertextVector(switched, out, ksk))

		dec := eng.DecryptLWECiphertextVectorUnchecked(tc.lweSK, switched).Value
		for i := range dec {
			require.Equal(t, lookupTable(messages[i]), DecodeMessage(dec[i], p))
		}

		again := glwe.NewLWECiphertextVector[T](k*N, count, dist)
		require.NoError(t, eng.DiscardBootstrapLWECiphertextVector(again, switched, acc, tc.fbsk))

		dec = eng.DecryptLWECiphertextVectorUnchecked(flat, again).Value
		for i := range dec {
			require.Equal(t, lookupTable(lookupTable(messages[i])), DecodeMessage(dec[i], p))
		}
	})

	t.Run(testString(params, "Bootstrap/Identity"), func(t *testing.T) {

		id, err := GenerateLookupTable[T](k, N, p, dist, func(m int) int { return m })
		require.NoError(t, err)

		in := eng.EncryptLWECiphertextVectorUnchecked(tc.lweSK, pts, params.LWENoise())

		out := glwe.NewLWECiphertextVector[T](k*N, count, dist)
		require.NoError(t, eng.DiscardBootstrapLWECiphertextVector(out, in, id, tc.fbsk))

		fixture.AssertNoiseBelow(t, eng.DecryptLWECiphertextVectorUnchecked(flat, out).Value, pts.Value, predicted, 1.5)
	})
}

func testSerialization[T ring.Torus](tc *TestContext[T], t *testing.T) {

	params := tc.params

	t.Run(testString(params, "Serialization/Ciphertext"), func(t *testing.T) {
		ct := tc.eng.EncryptGGSWCiphertextScalarUnchecked(tc.glweSK, glwe.NewCleartext[T](1), params.PBSBaseLog(), params.PBSLevel(), params.GLWENoise())
		buffertest.RequireSerializerCorrect(t, ct)
	})

	t.Run(testString(params, "Serialization/BootstrapKey"), func(t *testing.T) {

		buffertest.RequireSerializerCorrect(t, tc.bsk)

		data, err := tc.bsk.MarshalBinary()
		require.NoError(t, err)

		bsk := new(BootstrapKey[T])
		require.NoError(t, bsk.UnmarshalBinary(data))
		require.True(t, tc.bsk.Equal(bsk))
		require.Equal(t, params.LWEDimension(), bsk.InputLWEDimension())
		require.Equal(t, params.ExtractedLWEDimension(), bsk.OutputLWEDimension())

		// The Fourier key is recomputed after deserialization
		fbsk, err := tc.eng.ConvertLWEBootstrapKeyToFourier(bsk)
		require.NoError(t, err)
		require.True(t, tc.fbsk.Equal(fbsk))

		require.Error(t, new(BootstrapKey[T]).UnmarshalBinary(data[:len(data)-1]))
	})

	t.Run(testString(params, "Serialization/InvalidDimensions"), func(t *testing.T) {

		ct := tc.eng.EncryptGGSWCiphertextScalarUnchecked(tc.glweSK, glwe.NewCleartext[T](1), params.PBSBaseLog(), params.PBSLevel(), params.GLWENoise())

		for _, tamper := range []func(ct *Ciphertext[T]){
			func(ct *Ciphertext[T]) { ct.Level++ },
			func(ct *Ciphertext[T]) { ct.K++ },
			func(ct *Ciphertext[T]) { ct.N >>= 1 },
			func(ct *Ciphertext[T]) { ct.Level = 0 },
		} {
			tampered := *ct
			tamper(&tampered)

			data, err := tampered.MarshalBinary()
			require.NoError(t, err)
			require.True(t, errors.Is(new(Ciphertext[T]).UnmarshalBinary(data), glwe.ErrBufferSize))
		}

		tampered := *tc.bsk
		tampered.InputDimension++

		data, err := tampered.MarshalBinary()
		require.NoError(t, err)
		require.True(t, errors.Is(new(BootstrapKey[T]).UnmarshalBinary(data), glwe.ErrBufferSize))

		tampered = *tc.bsk
		tampered.N <<= 1

		data, err = tampered.MarshalBinary()
		require.NoError(t, err)
		require.True(t, errors.Is(new(BootstrapKey[T]).UnmarshalBinary(data), glwe.ErrBufferSize))
	})
}

func testConcurrency[T ring.Torus](tc *TestContext[T], t *testing.T) {

	params := tc.params
	k := params.GLWEDimension()
	N := params.PolynomialSize()
	dist := params.KeyDistribution()
	p := testMessageModulus

	acc := GenerateLookupTableUnchecked[T](k, N, p, dist, lookupTable)

	t.Run(testString(params, "Concurrency/Bootstrap"), func(t *testing.T) {

		count := 16

		pts := glwe.NewPlaintextVector[T](count)
		for i := range pts.Value {
			pts.Value[i] = EncodeMessage[T](i, p)
		}

		in := tc.eng.EncryptLWECiphertextVectorUnchecked(tc.lweSK, pts, params.LWENoise())

		engines := make([]*Engine[T], 4)
		for i := range engines {
			engines[i] = tc.eng.ShallowCopy()
		}

		out := glwe.NewLWECiphertextVector[T](k*N, count, dist)
		require.NoError(t, DiscardBootstrapLWECiphertextVectorConcurrent(engines, out, in, acc, tc.fbsk))

		// The bootstrap is deterministic
		want := glwe.NewLWECiphertextVector[T](k*N, count, dist)
		tc.eng.DiscardBootstrapLWECiphertextVectorUnchecked(want, in, acc, tc.fbsk)
		require.True(t, want.Equal(out))
	})

	t.Run(testString(params, "Concurrency/Errors"), func(t *testing.T) {

		in := glwe.NewLWECiphertextVector[T](params.LWEDimension(), 2, glwe.Binary)
		out := glwe.NewLWECiphertextVector[T](k*N, 2, dist)

		require.True(t, errors.Is(DiscardBootstrapLWECiphertextVectorConcurrent(nil, out, in, acc, tc.fbsk), glwe.ErrNullCount))

		short := glwe.NewLWECiphertextVector[T](k*N, 1, dist)
		require.True(t, errors.Is(DiscardBootstrapLWECiphertextVectorConcurrent([]*Engine[T]{tc.eng.ShallowCopy()}, short, in, acc, tc.fbsk), glwe.ErrCiphertextCountMismatch))

		emptyIn := glwe.NewLWECiphertextVector[T](params.LWEDimension(), 0, glwe.Binary)
		emptyOut := glwe.NewLWECiphertextVector[T](k*N, 0, dist)
		require.True(t, errors.Is(tc.eng.DiscardBootstrapLWECiphertextVector(emptyOut, emptyIn, acc, tc.fbsk), glwe.ErrNullCount))
		require.True(t, errors.Is(DiscardBootstrapLWECiphertextVectorConcurrent([]*Engine[T]{tc.eng.ShallowCopy()}, emptyOut, emptyIn, acc, tc.fbsk), glwe.ErrNullCount))
	})
}

func testErrors[T ring.Torus](tc *TestContext[T], t *testing.T) {

	params := tc.params
	eng := tc.eng
	k := params.GLWEDimension()
	N := params.PolynomialSize()
	n := params.LWEDimension()
	dist := params.KeyDistribution()
	baseLog := params.PBSBaseLog()
	level := params.PBSLevel()
	w := ring.BitWidth[T]()

	t.Run(testString(params, "Errors/Encryption"), func(t *testing.T) {

		_, err := eng.EncryptGGSWCiphertextScalar(tc.glweSK, glwe.NewCleartext[T](1), 0, level, params.GLWENoise())
		require.True(t, errors.Is(err, glwe.ErrDecompositionParameters))

		_, err = eng.EncryptGGSWCiphertextScalar(tc.glweSK, glwe.NewCleartext[T](1), w, 2, params.GLWENoise())
		require.True(t, errors.Is(err, glwe.ErrDecompositionParameters))

		_, err = eng.EncryptGGSWCiphertextScalar(tc.glweSK, glwe.NewCleartext[T](1), baseLog, level, noise.LogStandardDev(0))
		require.True(t, errors.Is(err, glwe.ErrInvalidParameters))

		wrong := NewCiphertext[T](k, 2*N, baseLog, level, dist)
		require.True(t, errors.Is(eng.DiscardEncryptGGSWCiphertextScalar(tc.glweSK, wrong, glwe.NewCleartext[T](1), params.GLWENoise()), glwe.ErrPolynomialSizeMismatch))

		ct := NewCiphertext[T](k, N, baseLog, level, dist)
		require.True(t, errors.Is(eng.DiscardConvertGGSWCiphertextToFourier(NewFourierCiphertext[T](k, N, baseLog+1, level, dist), ct), glwe.ErrDecompositionParameters))
		require.True(t, errors.Is(eng.DiscardConvertGGSWCiphertextToFourier(NewFourierCiphertext[T](k+1, N, baseLog, level, dist), ct), glwe.ErrGLWEDimensionMismatch))
	})

	t.Run(testString(params, "Errors/ExternalProduct"), func(t *testing.T) {

		ggsw := NewFourierCiphertext[T](k, N, baseLog, level, dist)

		in := glwe.NewGLWECiphertext[T](k, N, dist)

		require.True(t, errors.Is(eng.DiscardExternalProductGLWECiphertext(glwe.NewGLWECiphertext[T](k, N/2, dist), in, ggsw), glwe.ErrPolynomialSizeMismatch))
		require.True(t, errors.Is(eng.DiscardExternalProductGLWECiphertext(glwe.NewGLWECiphertext[T](k+1, N, dist), in, ggsw), glwe.ErrGLWEDimensionMismatch))

		other := glwe.Binary
		if dist == glwe.Binary {
			other = glwe.Ternary
		}

		require.True(t, errors.Is(eng.DiscardExternalProductGLWECiphertext(glwe.NewGLWECiphertext[T](k, N, other), in, ggsw), glwe.ErrKeyDistributionMismatch))

		require.True(t, errors.Is(eng.DiscardCMuxGLWECiphertext(in, in, glwe.NewGLWECiphertext[T](k+1, N, dist), ggsw), glwe.ErrGLWEDimensionMismatch))
	})

	t.Run(testString(params, "Errors/Bootstrap"), func(t *testing.T) {

		acc := GenerateLookupTableUnchecked[T](k, N, testMessageModulus, dist, lookupTable)

		in := glwe.NewLWECiphertext[T](n, glwe.Binary)
		out := glwe.NewLWECiphertext[T](k*N, dist)

		require.True(t, errors.Is(eng.DiscardBootstrapLWECiphertext(out, glwe.NewLWECiphertext[T](n+1, glwe.Binary), acc, tc.fbsk), glwe.ErrDimensionMismatch))
		require.True(t, errors.Is(eng.DiscardBootstrapLWECiphertext(glwe.NewLWECiphertext[T](k*N-1, dist), in, acc, tc.fbsk), glwe.ErrDimensionMismatch))
		require.True(t, errors.Is(eng.DiscardBootstrapLWECiphertext(out, glwe.NewLWECiphertext[T](n, glwe.Ternary), acc, tc.fbsk), glwe.ErrKeyDistributionMismatch))
		require.True(t, errors.Is(eng.DiscardBootstrapLWECiphertext(out, in, glwe.NewGLWECiphertext[T](k+1, N, dist), tc.fbsk), glwe.ErrGLWEDimensionMismatch))

		_, err := eng.CreateLWEBootstrapKey(glwe.NewLWESecretKey[T](n, glwe.Ternary), tc.glweSK, baseLog, level, params.GLWENoise())
		require.True(t, errors.Is(err, glwe.ErrInvalidParameters))

		_, err = eng.CreateLWEBootstrapKey(tc.lweSK, tc.glweSK, baseLog, 0, params.GLWENoise())
		require.True(t, errors.Is(err, glwe.ErrDecompositionParameters))

		fbsk := NewFourierBootstrapKey[T](n+1, k, N, baseLog, level, glwe.Binary, dist)
		require.True(t, errors.Is(eng.DiscardConvertLWEBootstrapKeyToFourier(fbsk, tc.bsk), glwe.ErrDimensionMismatch))
	})

	t.Run(testString(params, "Errors/LookupTable"), func(t *testing.T) {

		for _, p := range []int{0, 1, 3, N} {
			_, err := GenerateLookupTable[T](k, N, p, dist, lookupTable)
			require.True(t, errors.Is(err, glwe.ErrInvalidParameters), "p=%d", p)
		}

		_, err := GenerateLookupTable[T](0, N, testMessageModulus, dist, lookupTable)
		require.True(t, errors.Is(err, glwe.ErrInvalidParameters))

		_, err = GenerateLookupTable[T](k, N-1, testMessageModulus, dist, lookupTable)
		require.True(t, errors.Is(err, glwe.ErrInvalidParameters))
	})

	t.Run(testString(params, "Errors/Views"), func(t *testing.T) {
		require.Panics(t, func() {
			new(Ciphertext[T]).FromBuffer(k, N, baseLog, level, dist, make([]T, CiphertextBufferSize(k, N, level)-1))
		})
		require.Panics(t, func() {
			new(FourierCiphertext[T]).FromBuffer(k, N, baseLog, level, dist, make([]complex128, FourierCiphertextBufferSize(k, N, level)-1))
		})
	})
}
