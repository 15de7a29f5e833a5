package ring

import (
	"fmt"

	"github.com/Pro7ech/glwe/utils"
)

// Poly is a polynomial of Z_{2^w}[X]/(X^N+1) stored by its N coefficients.
type Poly[T Torus] []T

// NewPoly allocates a new [Poly] of N coefficients.
func NewPoly[T Torus](N int) Poly[T] {
	return make([]T, N)
}

// N returns the number of coefficients of the polynomial.
func (p Poly[T]) N() int {
	return len(p)
}

// Zero sets all coefficients of the receiver to zero.
func (p Poly[T]) Zero() {
	clear(p)
}

// Clone returns a deep copy of the receiver.
func (p Poly[T]) Clone() Poly[T] {
	c := NewPoly[T](len(p))
	copy(c, p)
	return c
}

// Equal returns true if the receiver and other have the same coefficients.
func (p Poly[T]) Equal(other Poly[T]) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// MulByMonomial evaluates out = X^k * p mod X^N+1 for any integer k.
// out and p must be of the same size and must not overlap.
func MulByMonomial[T Torus](p Poly[T], k int, out Poly[T]) {
	mulByMonomial(p, k, out, func(a *T, b T) { *a = b })
}

// MulByMonomialThenAdd evaluates out = out + X^k * p mod X^N+1 for any integer k.
// out and p must be of the same size and must not overlap.
func MulByMonomialThenAdd[T Torus](p Poly[T], k int, out Poly[T]) {
	mulByMonomial(p, k, out, func(a *T, b T) { *a += b })
}

// MulByMonomialThenSub evaluates out = out - X^k * p mod X^N+1 for any integer k.
// out and p must be of the same size and must not overlap.
func MulByMonomialThenSub[T Torus](p Poly[T], k int, out Poly[T]) {
	mulByMonomial(p, k, out, func(a *T, b T) { *a -= b })
}

func mulByMonomial[T Torus](p Poly[T], k int, out Poly[T], f func(a *T, b T)) {

	N := len(p)

	if len(out) != N {
		panic(fmt.Errorf("len(p)=%d len(out)=%d", N, len(out)))
	}

	if utils.Overlap(p, out) {
		panic(fmt.Errorf("p and out must not overlap"))
	}

	// X^{2N} = 1
	k %= 2 * N
	if k < 0 {
		k += 2 * N
	}

	// X^{N} = -1
	neg := k >= N
	if neg {
		k -= N
	}

	for i := 0; i < N-k; i++ {
		if neg {
			f(&out[i+k], -p[i])
		} else {
			f(&out[i+k], p[i])
		}
	}

	for i := N - k; i < N; i++ {
		if neg {
			f(&out[i+k-N], p[i])
		} else {
			f(&out[i+k-N], -p[i])
		}
	}
}

// MulNegacyclic evaluates out = a * b mod (X^N+1, 2^w) with the schoolbook algorithm.
// out must not overlap with a or b.
func MulNegacyclic[T Torus](a, b, out Poly[T]) {
	out.Zero()
	MulNegacyclicThenAdd(a, b, out)
}

// MulNegacyclicThenAdd evaluates out = out + a * b mod (X^N+1, 2^w) with the schoolbook algorithm.
// out must not overlap with a or b.
func MulNegacyclicThenAdd[T Torus](a, b, out Poly[T]) {

	N := len(a)

	if len(b) != N || len(out) != N {
		panic(fmt.Errorf("len(a)=%d len(b)=%d len(out)=%d", N, len(b), len(out)))
	}

	if utils.Overlap(a, out) || utils.Overlap(b, out) {
		panic(fmt.Errorf("out must not overlap with the operands"))
	}

	for i := 0; i < N; i++ {

		if a[i] == 0 {
			continue
		}

		ai := a[i]

		for j := 0; j < N-i; j++ {
			out[i+j] += ai * b[j]
		}

		for j := N - i; j < N; j++ {
			out[i+j-N] -= ai * b[j]
		}
	}
}

// MulScalarByMonomialThenSub evaluates out = out - c * X^k * p mod X^N+1 for any integer k.
// out and p must be of the same size and must not overlap.
func MulScalarByMonomialThenSub[T Torus](p Poly[T], c T, k int, out Poly[T]) {
	mulByMonomial(p, k, out, func(a *T, b T) { *a -= c * b })
}
