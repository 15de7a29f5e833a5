package noise

import (
	"math"
)

// FloatMantissa is the number of bits of precision of the float64
// arithmetic used by the Fourier transforms.
const FloatMantissa = 53

// Trivial returns the variance of a trivial encryption.
func Trivial() Variance {
	return 0
}

// Encryption returns the variance of a fresh encryption
// sampled with a noise of variance v.
func Encryption(v Dispersion) Variance {
	return v.Variance()
}

// Addition returns the variance of the sum of two ciphertexts.
func Addition(v1, v2 Dispersion) Variance {
	return v1.Variance() + v2.Variance()
}

// Subtraction returns the variance of the difference of two ciphertexts.
func Subtraction(v1, v2 Dispersion) Variance {
	return v1.Variance() + v2.Variance()
}

// Negation returns the variance of the opposite of a ciphertext.
func Negation(v Dispersion) Variance {
	return v.Variance()
}

// PlaintextAddition returns the variance of a ciphertext plus a plaintext.
func PlaintextAddition(v Dispersion) Variance {
	return v.Variance()
}

// CleartextMultiplication returns the variance of a ciphertext
// multiplied by the signed cleartext c.
func CleartextMultiplication(v Dispersion, c int64) Variance {
	return v.Variance() * Variance(float64(c)*float64(c))
}

// AffineTransform returns the variance of sum_i weights[i] * ct_i + bias.
func AffineTransform(v []Dispersion, weights []int64) (res Variance) {
	for i := range v {
		res += CleartextMultiplication(v[i], weights[i])
	}
	return
}

// SampleExtraction returns the variance of an LWE ciphertext
// extracted from a GLWE ciphertext.
func SampleExtraction(v Dispersion) Variance {
	return v.Variance()
}

// Keyswitch returns the variance of a ciphertext of dimension inputDimension
// key-switched with a key of noise variance ksk, decomposed in base
// 2^baseLog over level levels, for a torus of w bits.
//
// The terms are, in order: the input noise, the rounding of the
// decomposition, the key times the rounding bias and the key noise
// amplified by the digits.
func Keyswitch(in Dispersion, inputDimension int, key KeyMoments, ksk Dispersion, baseLog, level, w int) Variance {

	n := float64(inputDimension)
	B2L := math.Exp2(float64(2 * baseLog * level))
	q2 := math.Exp2(float64(2 * w))

	res1 := float64(in.Variance())
	res2 := n * (1/(12*B2L) - 1/(12*q2)) * key.SquareMean()
	res3 := n / 4 * key.Variance / q2

	return Variance(res1+res2+res3) + keyswitchKeyNoise(inputDimension, ksk, baseLog, level)
}

// PackingKeyswitch returns the variance of each coefficient of a GLWE
// ciphertext packed from count LWE ciphertexts of dimension inputDimension.
// The noise of the key is carried by all the coefficients of its ciphertexts,
// hence it is accumulated once per packed ciphertext.
func PackingKeyswitch(in Dispersion, inputDimension, count int, key KeyMoments, pksk Dispersion, baseLog, level, w int) Variance {
	return Keyswitch(in, inputDimension, key, pksk, baseLog, level, w) + Variance(count-1)*keyswitchKeyNoise(inputDimension, pksk, baseLog, level)
}

// keyswitchKeyNoise is the noise of the key amplified by the uniform digits in [-B/2, B/2).
func keyswitchKeyNoise(inputDimension int, ksk Dispersion, baseLog, level int) Variance {
	B := math.Exp2(float64(baseLog))
	return Variance(float64(inputDimension) * float64(level) * float64(ksk.Variance()) * (B*B + 2) / 12)
}

// ExternalProduct returns the variance of the external product of a GGSW
// ciphertext of noise ggsw encrypting a bit with a GLWE ciphertext of noise glwe,
// for GLWE dimension k, polynomial size N and a decomposition in base
// 2^baseLog over level levels.
func ExternalProduct(glwe, ggsw Dispersion, k, N int, key KeyMoments, baseLog, level, w int) Variance {
	return glwe.Variance() + externalProductWithoutInput(ggsw, k, N, key, baseLog, level, w)
}

// CMux returns the variance of the output of a CMux between two GLWE
// ciphertexts of noise v0 and v1, controlled by a GGSW ciphertext of noise ggsw.
func CMux(v0, v1, ggsw Dispersion, k, N int, key KeyMoments, baseLog, level, w int) Variance {
	return max(v0.Variance(), v1.Variance()) + externalProductWithoutInput(ggsw, k, N, key, baseLog, level, w)
}

// Bootstrap returns the variance of the output of a programmable bootstrap
// of an LWE ciphertext of dimension inputDimension with a bootstrap key of noise
// bsk. It does not depend on the noise of the input ciphertext.
func Bootstrap(inputDimension int, bsk Dispersion, k, N int, key KeyMoments, baseLog, level, w int) Variance {
	return Variance(inputDimension) * externalProductWithoutInput(bsk, k, N, key, baseLog, level, w)
}

// FourierPrecision returns the variance added by the float64 rounding of
// the Fourier transforms of an external product. It is zero as long as the
// magnitude of the products stays within the float64 mantissa.
func FourierPrecision(k, N, baseLog, level, w int) Variance {

	terms := float64((k + 1) * level * N)

	// Bits of the largest accumulated products: signed torus coefficients
	// times signed digits, summed over the (k+1)*level*N terms.
	magnitude := float64(w-1) + float64(baseLog-1) + math.Log2(terms)/2 + 3

	if magnitude <= FloatMantissa-1 {
		return 0
	}

	B := math.Exp2(float64(baseLog))
	eps2 := math.Exp2(-2 * FloatMantissa)

	return Variance(terms * (B*B + 2) / 12 / 12 * eps2 * math.Log2(float64(N)))
}

func externalProductWithoutInput(ggsw Dispersion, k, N int, key KeyMoments, baseLog, level, w int) Variance {

	kN := float64(k * N)
	L := float64(level)
	B := math.Exp2(float64(baseLog))
	B2L := math.Exp2(float64(2 * baseLog * level))
	q2 := math.Exp2(float64(2 * w))

	res1 := float64(k+1) * L * float64(N) * float64(ggsw.Variance()) * (B*B + 2) / 12
	res2 := (1/(24*B2L) - 1/(24*q2)) * (1 + kN*key.SquareMean())
	res3 := kN / 2 * key.Variance / q2

	return Variance(res1+res2+res3) + FourierPrecision(k, N, baseLog, level, w)
}
