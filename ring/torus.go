// Package ring implements the arithmetic of the discretized torus and of
// negacyclic polynomials over it: vector operations, samplers, the signed
// gadget decomposition and a floating point negacyclic FFT.
package ring

import (
	"math"
	"unsafe"
)

// Torus is the set of unsigned integers representing the discretized torus:
// a value x stands for x/2^w in [0, 1), with w the bit width of the type.
// All arithmetic is wrapping.
type Torus interface {
	~uint32 | ~uint64
}

// BitWidth returns the bit width w of T.
func BitWidth[T Torus]() int {
	var t T
	return int(unsafe.Sizeof(t)) << 3
}

// ToSigned returns the signed representative of x in [-2^{w-1}, 2^{w-1}).
func ToSigned[T Torus](x T) int64 {
	if BitWidth[T]() == 32 {
		return int64(int32(x))
	}
	return int64(x)
}

// FromSigned returns x mod 2^w.
func FromSigned[T Torus](x int64) T {
	return T(x)
}

// FromFloat returns round(x) mod 2^w for any finite x.
func FromFloat[T Torus](x float64) T {

	w := BitWidth[T]()

	// Reduces x in [-2^{w-1}, 2^{w-1}]
	q := math.Ldexp(1, w)
	r := x - math.Round(x/q)*q

	if r >= math.Ldexp(1, w-1) {
		r -= q
	}

	return T(int64(math.Round(r)))
}

// Encode maps the real x, read modulo 1, on the torus.
func Encode[T Torus](x float64) T {
	return FromFloat[T](x * math.Ldexp(1, BitWidth[T]()))
}

// Decode returns the representative of x in [-0.5, 0.5).
func Decode[T Torus](x T) float64 {
	return math.Ldexp(float64(ToSigned(x)), -BitWidth[T]())
}

// RoundToBits rounds x to the closest multiple of 2^{w-bits}.
func RoundToBits[T Torus](x T, bits int) T {
	shift := BitWidth[T]() - bits
	if shift <= 0 {
		return x
	}
	return ((x >> (shift - 1)) + 1) >> 1 << shift
}

// ModSwitch returns round(x * 2N / 2^w) in [0, 2N) with 2N = 2^logTwoN.
func ModSwitch[T Torus](x T, logTwoN int) int {
	shift := BitWidth[T]() - logTwoN
	return int(((x >> (shift - 1)) + 1) >> 1 & (T(1)<<logTwoN - 1))
}
