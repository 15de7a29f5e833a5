package ring

import (
	"fmt"
)

// SignedDecomposer performs the signed gadget decomposition of torus
// elements in base B = 2^BaseLog over Level levels.
//
// A value x is first rounded to the closest multiple of 2^{w - BaseLog*Level},
// then written as sum_{j=1}^{Level} d_j * 2^{w - j*BaseLog} with the
// digits d_j in [-B/2, B/2).
type SignedDecomposer[T Torus] struct {
	BaseLog int
	Level   int
}

// NewSignedDecomposer returns a new [SignedDecomposer].
// It returns an error if BaseLog*Level exceeds the bit width or if either is zero.
func NewSignedDecomposer[T Torus](baseLog, level int) (d SignedDecomposer[T], err error) {

	if baseLog <= 0 || level <= 0 {
		return d, fmt.Errorf("invalid decomposition: base log=%d and level=%d must be greater than zero", baseLog, level)
	}

	if w := BitWidth[T](); baseLog*level > w {
		return d, fmt.Errorf("invalid decomposition: base log * level = %d exceeds the bit width %d", baseLog*level, w)
	}

	return SignedDecomposer[T]{BaseLog: baseLog, Level: level}, nil
}

// ClosestRepresentable rounds x to the closest value representable
// by the decomposition, i.e. to the closest multiple of 2^{w - BaseLog*Level}.
func (d SignedDecomposer[T]) ClosestRepresentable(x T) T {
	return RoundToBits(x, d.BaseLog*d.Level)
}

// Decompose writes the digits of x on digits, from the most significant
// (level 1, weight 2^{w-BaseLog}) to the least significant (level Level).
// Digits are signed values stored in two's complement.
func (d SignedDecomposer[T]) Decompose(x T, digits []T) {

	if len(digits) != d.Level {
		panic(fmt.Errorf("len(digits)=%d but decomposition level is %d", len(digits), d.Level))
	}

	state := d.state(x)

	mask := T(1)<<d.BaseLog - 1
	half := T(1) << (d.BaseLog - 1)

	for j := d.Level - 1; j >= 0; j-- {
		digit := state & mask
		state >>= d.BaseLog
		if digit >= half {
			digit -= mask + 1
			state++
		}
		digits[j] = digit
	}
}

// DecomposeVec writes the digits of each x[i] on digits[j][i],
// with j the level index (0 being the most significant).
func (d SignedDecomposer[T]) DecomposeVec(x []T, digits [][]T) {

	if len(digits) != d.Level {
		panic(fmt.Errorf("len(digits)=%d but decomposition level is %d", len(digits), d.Level))
	}

	mask := T(1)<<d.BaseLog - 1
	half := T(1) << (d.BaseLog - 1)

	for i := range x {

		state := d.state(x[i])

		for j := d.Level - 1; j >= 0; j-- {
			digit := state & mask
			state >>= d.BaseLog
			if digit >= half {
				digit -= mask + 1
				state++
			}
			digits[j][i] = digit
		}
	}
}

// Recompose returns sum_{j=1}^{Level} digits[j-1] * 2^{w - j*BaseLog}.
func (d SignedDecomposer[T]) Recompose(digits []T) (x T) {
	w := BitWidth[T]()
	for j := range digits {
		x += digits[j] << (w - (j+1)*d.BaseLog)
	}
	return
}

// state returns the closest representable value of x shifted to the lower bits.
func (d SignedDecomposer[T]) state(x T) T {
	shift := BitWidth[T]() - d.BaseLog*d.Level
	if shift == 0 {
		return x
	}
	return ((x >> (shift - 1)) + 1) >> 1
}
