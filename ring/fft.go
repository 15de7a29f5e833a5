package ring

import (
	"fmt"
	"math"

	"github.com/Pro7ech/glwe/utils"
)

// FourierPoly is the Fourier representation of a real negacyclic polynomial
// of degree N: N/2 complex evaluations.
type FourierPoly []complex128

// NewFourierPoly allocates a new [FourierPoly] for polynomials of N coefficients.
func NewFourierPoly(N int) FourierPoly {
	return make([]complex128, N>>1)
}

// Zero sets all values of the receiver to zero.
func (p FourierPoly) Zero() {
	clear(p)
}

// MulAdd evaluates acc = acc + a * b element-wise.
func (p FourierPoly) MulAdd(a, b FourierPoly) {
	if len(a) != len(p) || len(b) != len(p) {
		panic(fmt.Errorf("len(a)=%d len(b)=%d len(acc)=%d", len(a), len(b), len(p)))
	}
	for i := range p {
		p[i] += a[i] * b[i]
	}
}

// FFT performs the negacyclic Fourier transform of polynomials of
// Z_{2^w}[X]/(X^N+1) with float64 arithmetic.
//
// The real polynomial a is folded on the complex polynomial
// c_j = a_j + i*a_{j+N/2} of Z[i][Y]/(Y^{N/2}-i), twisted by
// psi^j with psi = exp(i*pi/N), and then evaluated with a
// cyclic transform of size N/2.
//
// Coefficients are read as signed integers. The transform is exact as long
// as the magnitude of the products stays below 2^53, beyond that the
// rounding error adds a noise accounted by [noise.FourierPrecision].
type FFT[T Torus] struct {
	N int

	roots    []complex128 // exp(-2*i*pi*j/(N/2)) for j < N/4
	twist    []complex128 // psi^j
	untwist  []complex128 // psi^{-j} / (N/2)
	bitRev   []int
	buffPoly []complex128

	limbs     SignedDecomposer[T]
	buffLimbs [][]T
	buffFourA FourierPoly
	buffFourB FourierPoly
	buffProd  Poly[T]
}

// NewFFT instantiates a new [FFT] for polynomials of N coefficients.
// N must be a power of two greater than one.
func NewFFT[T Torus](N int) (f *FFT[T], err error) {

	if N < 2 || !utils.IsPow2(N) {
		return nil, fmt.Errorf("invalid polynomial size: N=%d must be a power of two greater than one", N)
	}

	M := N >> 1

	f = &FFT[T]{
		N:        N,
		roots:    make([]complex128, max(M>>1, 1)),
		twist:    make([]complex128, M),
		untwist:  make([]complex128, M),
		bitRev:   make([]int, M),
		buffPoly: make([]complex128, M),
	}

	for j := range f.roots {
		sin, cos := math.Sincos(-2 * math.Pi * float64(j) / float64(M))
		f.roots[j] = complex(cos, sin)
	}

	for j := 0; j < M; j++ {
		sin, cos := math.Sincos(math.Pi * float64(j) / float64(N))
		f.twist[j] = complex(cos, sin)
		f.untwist[j] = complex(cos/float64(M), -sin/float64(M))
	}

	f.initLimbs()

	logM := utils.Log2(uint64(M))
	for j := 0; j < M; j++ {
		if logM == 0 {
			f.bitRev[j] = j
		} else {
			f.bitRev[j] = utils.BitReverse64(j, logM)
		}
	}

	return
}

// ShallowCopy returns a copy of the receiver with its own buffers.
// It can be used concurrently with the receiver.
func (f FFT[T]) ShallowCopy() *FFT[T] {
	c := &FFT[T]{
		N:        f.N,
		roots:    f.roots,
		twist:    f.twist,
		untwist:  f.untwist,
		bitRev:   f.bitRev,
		buffPoly: make([]complex128, len(f.buffPoly)),
	}
	c.initLimbs()
	return c
}

// limbLog is the bit size of the limbs used by [FFT.MulSmallThenAdd].
const limbLog = 16

func (f *FFT[T]) initLimbs() {
	f.limbs = SignedDecomposer[T]{BaseLog: limbLog, Level: BitWidth[T]() / limbLog}
	f.buffLimbs = make([][]T, f.limbs.Level)
	for i := range f.buffLimbs {
		f.buffLimbs[i] = make([]T, f.N)
	}
	f.buffFourA = NewFourierPoly(f.N)
	f.buffFourB = NewFourierPoly(f.N)
	f.buffProd = NewPoly[T](f.N)
}

// MulSmallThenAdd evaluates out = out + a * s mod (X^N+1, 2^w) exactly,
// where a is any polynomial and s has small coefficients, e.g. a secret key.
//
// The operand a is split in signed limbs of 16 bits so that each partial
// product stays within the float64 mantissa as long as |s_i| * N < 2^37.
func (f *FFT[T]) MulSmallThenAdd(a, s, out Poly[T]) {

	if len(a) != f.N || len(s) != f.N || len(out) != f.N {
		panic(fmt.Errorf("len(a)=%d len(s)=%d len(out)=%d but N=%d", len(a), len(s), len(out), f.N))
	}

	f.limbs.DecomposeVec(a, f.buffLimbs)

	f.Forward(s, f.buffFourB)

	w := BitWidth[T]()

	for l, limb := range f.buffLimbs {

		f.Forward(limb, f.buffFourA)

		for i := range f.buffFourA {
			f.buffFourA[i] *= f.buffFourB[i]
		}

		f.Backward(f.buffFourA, f.buffProd)

		shift := w - (l+1)*limbLog
		for i := range out {
			out[i] += f.buffProd[i] << shift
		}
	}
}

// Forward evaluates out = FFT(p).
func (f *FFT[T]) Forward(p Poly[T], out FourierPoly) {

	M := f.N >> 1

	if len(p) != f.N || len(out) != M {
		panic(fmt.Errorf("len(p)=%d len(out)=%d but N=%d", len(p), len(out), f.N))
	}

	for j := 0; j < M; j++ {
		out[f.bitRev[j]] = complex(float64(ToSigned(p[j])), float64(ToSigned(p[j+M]))) * f.twist[j]
	}

	f.butterflies(out, false)
}

// Backward evaluates out = IFFT(p) mod 2^w.
// The input is not modified.
func (f *FFT[T]) Backward(p FourierPoly, out Poly[T]) {
	f.backward(p, out, func(a *T, b T) { *a = b })
}

// BackwardAdd evaluates out = out + IFFT(p) mod 2^w.
// The input is not modified.
func (f *FFT[T]) BackwardAdd(p FourierPoly, out Poly[T]) {
	f.backward(p, out, func(a *T, b T) { *a += b })
}

func (f *FFT[T]) backward(p FourierPoly, out Poly[T], op func(a *T, b T)) {

	M := f.N >> 1

	if len(p) != M || len(out) != f.N {
		panic(fmt.Errorf("len(p)=%d len(out)=%d but N=%d", len(p), len(out), f.N))
	}

	buff := f.buffPoly

	for j := 0; j < M; j++ {
		buff[f.bitRev[j]] = p[j]
	}

	f.butterflies(buff, true)

	for j := 0; j < M; j++ {
		c := buff[j] * f.untwist[j]
		op(&out[j], FromFloat[T](real(c)))
		op(&out[j+M], FromFloat[T](imag(c)))
	}
}

// butterflies runs the iterative radix-2 Cooley-Tukey transform
// on a bit-reversed input. The inverse transform is not scaled.
func (f *FFT[T]) butterflies(v []complex128, inverse bool) {

	M := len(v)

	for size := 2; size <= M; size <<= 1 {

		half := size >> 1
		step := M / size

		for start := 0; start < M; start += size {
			for k := 0; k < half; k++ {

				w := f.roots[k*step]
				if inverse {
					w = complex(real(w), -imag(w))
				}

				u := v[start+k]
				t := w * v[start+k+half]
				v[start+k] = u + t
				v[start+k+half] = u - t
			}
		}
	}
}
