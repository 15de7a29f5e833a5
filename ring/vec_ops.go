package ring

import (
	"fmt"
	"unsafe"
)

// AddVec evaluates p3 = p1 + p2 mod 2^w.
// p1, p2, p3 must be of the same size.
func AddVec[T Torus](p1, p2, p3 []T) {

	N := len(p1)

	if len(p2) != N || len(p3) != N {
		panic(fmt.Errorf("len(p1)=%d len(p2)=%d len(p3)=%d", N, len(p2), len(p3)))
	}

	for j := 0; j < N-(N&7); j = j + 8 {

		/* #nosec G103 -- iteration number is ensured to be a multiple of 8*/
		x := (*[8]T)(unsafe.Pointer(&p1[j]))
		/* #nosec G103 -- iteration number is ensured to be a multiple of 8*/
		y := (*[8]T)(unsafe.Pointer(&p2[j]))
		/* #nosec G103 -- iteration number is ensured to be a multiple of 8*/
		z := (*[8]T)(unsafe.Pointer(&p3[j]))

		z[0] = x[0] + y[0]
		z[1] = x[1] + y[1]
		z[2] = x[2] + y[2]
		z[3] = x[3] + y[3]
		z[4] = x[4] + y[4]
		z[5] = x[5] + y[5]
		z[6] = x[6] + y[6]
		z[7] = x[7] + y[7]
	}

	for i := N - (N & 7); i < N; i++ {
		p3[i] = p1[i] + p2[i]
	}
}

// SubVec evaluates p3 = p1 - p2 mod 2^w.
// p1, p2, p3 must be of the same size.
func SubVec[T Torus](p1, p2, p3 []T) {

	N := len(p1)

	if len(p2) != N || len(p3) != N {
		panic(fmt.Errorf("len(p1)=%d len(p2)=%d len(p3)=%d", N, len(p2), len(p3)))
	}

	for j := 0; j < N-(N&7); j = j + 8 {

		/* #nosec G103 -- iteration number is ensured to be a multiple of 8*/
		x := (*[8]T)(unsafe.Pointer(&p1[j]))
		/* #nosec G103 -- iteration number is ensured to be a multiple of 8*/
		y := (*[8]T)(unsafe.Pointer(&p2[j]))
		/* #nosec G103 -- iteration number is ensured to be a multiple of 8*/
		z := (*[8]T)(unsafe.Pointer(&p3[j]))

		z[0] = x[0] - y[0]
		z[1] = x[1] - y[1]
		z[2] = x[2] - y[2]
		z[3] = x[3] - y[3]
		z[4] = x[4] - y[4]
		z[5] = x[5] - y[5]
		z[6] = x[6] - y[6]
		z[7] = x[7] - y[7]
	}

	for i := N - (N & 7); i < N; i++ {
		p3[i] = p1[i] - p2[i]
	}
}

// NegVec evaluates p2 = -p1 mod 2^w.
// p1 and p2 must be of the same size.
func NegVec[T Torus](p1, p2 []T) {

	if len(p1) != len(p2) {
		panic(fmt.Errorf("len(p1)=%d len(p2)=%d", len(p1), len(p2)))
	}

	for i := range p1 {
		p2[i] = -p1[i]
	}
}

// MulScalarVec evaluates p2 = p1 * c mod 2^w.
// p1 and p2 must be of the same size.
func MulScalarVec[T Torus](p1 []T, c T, p2 []T) {

	if len(p1) != len(p2) {
		panic(fmt.Errorf("len(p1)=%d len(p2)=%d", len(p1), len(p2)))
	}

	for i := range p1 {
		p2[i] = p1[i] * c
	}
}

// MulScalarThenAddVec evaluates p2 = p2 + p1 * c mod 2^w.
// p1 and p2 must be of the same size.
func MulScalarThenAddVec[T Torus](p1 []T, c T, p2 []T) {

	N := len(p1)

	if len(p2) != N {
		panic(fmt.Errorf("len(p1)=%d len(p2)=%d", N, len(p2)))
	}

	for j := 0; j < N-(N&7); j = j + 8 {

		/* #nosec G103 -- iteration number is ensured to be a multiple of 8*/
		x := (*[8]T)(unsafe.Pointer(&p1[j]))
		/* #nosec G103 -- iteration number is ensured to be a multiple of 8*/
		z := (*[8]T)(unsafe.Pointer(&p2[j]))

		z[0] += x[0] * c
		z[1] += x[1] * c
		z[2] += x[2] * c
		z[3] += x[3] * c
		z[4] += x[4] * c
		z[5] += x[5] * c
		z[6] += x[6] * c
		z[7] += x[7] * c
	}

	for i := N - (N & 7); i < N; i++ {
		p2[i] += p1[i] * c
	}
}

// MulScalarThenSubVec evaluates p2 = p2 - p1 * c mod 2^w.
// p1 and p2 must be of the same size.
func MulScalarThenSubVec[T Torus](p1 []T, c T, p2 []T) {
	MulScalarThenAddVec(p1, -c, p2)
}

// DotProduct returns <p1, p2> mod 2^w.
// p1 and p2 must be of the same size.
func DotProduct[T Torus](p1, p2 []T) (res T) {

	if len(p1) != len(p2) {
		panic(fmt.Errorf("len(p1)=%d len(p2)=%d", len(p1), len(p2)))
	}

	for i := range p1 {
		res += p1[i] * p2[i]
	}

	return
}
