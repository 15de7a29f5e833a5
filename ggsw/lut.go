package ggsw

import (
	"fmt"

	"github.com/Pro7ech/glwe/glwe"
	"github.com/Pro7ech/glwe/ring"
	"github.com/Pro7ech/glwe/utils"
)

// EncodeMessage encodes the message m of Z_p on the torus as m * 2^{w-1} / p.
// The most significant bit is left as a padding bit, which keeps the
// messages in the half of the torus on which the bootstrap is not negacyclic.
// messageModulus must be a power of two.
func EncodeMessage[T ring.Torus](m, messageModulus int) T {
	m %= messageModulus
	if m < 0 {
		m += messageModulus
	}
	return T(m) << (ring.BitWidth[T]() - 1 - utils.Log2(uint64(messageModulus)))
}

// DecodeMessage returns the message of Z_p closest to the noisy
// plaintext x. It is the inverse of [EncodeMessage].
func DecodeMessage[T ring.Torus](x T, messageModulus int) int {
	return ring.ModSwitch(x, utils.Log2(uint64(messageModulus))+1) % messageModulus
}

// GenerateLookupTable returns the accumulator of a programmable bootstrap
// evaluating f over the messages of Z_p encoded with [EncodeMessage]: the
// trivial GLWE encryption of the polynomial whose coefficients encode f(m) on
// boxes of N/p coefficients, rotated by half a box to absorb the noise on
// both sides of each message.
//
// messageModulus must be a power of two and 2*messageModulus must not exceed
// the polynomial size.
func GenerateLookupTable[T ring.Torus](glweDimension, polynomialSize, messageModulus int, dist glwe.KeyDistribution, f func(m int) int) (*glwe.GLWECiphertext[T], error) {

	if glweDimension <= 0 {
		return nil, fmt.Errorf("%w: GLWE dimension=%d must be greater than zero", glwe.ErrInvalidParameters, glweDimension)
	}

	if polynomialSize < 2 || !utils.IsPow2(polynomialSize) {
		return nil, fmt.Errorf("%w: polynomial size=%d must be a power of two greater than one", glwe.ErrInvalidParameters, polynomialSize)
	}

	if messageModulus < 2 || !utils.IsPow2(messageModulus) || 2*messageModulus > polynomialSize {
		return nil, fmt.Errorf("%w: message modulus=%d must be a power of two in [2, N/2] with N=%d", glwe.ErrInvalidParameters, messageModulus, polynomialSize)
	}

	return GenerateLookupTableUnchecked[T](glweDimension, polynomialSize, messageModulus, dist, f), nil
}

// GenerateLookupTableUnchecked is the unchecked variant of [GenerateLookupTable].
func GenerateLookupTableUnchecked[T ring.Torus](glweDimension, polynomialSize, messageModulus int, dist glwe.KeyDistribution, f func(m int) int) *glwe.GLWECiphertext[T] {

	N := polynomialSize
	box := N / messageModulus
	half := box >> 1

	v := make([]T, N)
	for i := range v {
		v[i] = EncodeMessage[T](f(i/box), messageModulus)
	}

	acc := glwe.NewGLWECiphertext[T](glweDimension, N, dist)

	body := acc.Body()
	for i := 0; i < N-half; i++ {
		body[i] = v[i+half]
	}

	// X^N = -1
	for i := N - half; i < N; i++ {
		body[i] = -v[i+half-N]
	}

	return acc
}
