package glwe

import (
	"fmt"

	"github.com/Pro7ech/glwe/noise"
	"github.com/Pro7ech/glwe/ring"
)

// LWEEntity is implemented by the entities tied to an LWE secret key.
type LWEEntity interface {
	LWEDimension() int
	KeyDistribution() KeyDistribution
}

// GLWEEntity is implemented by the entities tied to a GLWE secret key.
type GLWEEntity interface {
	GLWEDimension() int
	PolynomialSize() int
	KeyDistribution() KeyDistribution
}

// Counted is implemented by the vectors of entities.
type Counted interface {
	Count() int
}

// checkLWE returns an error if the entities do not share the same
// dimension and the same key distribution.
func checkLWE(entities ...LWEEntity) (err error) {

	if len(entities) < 2 {
		return
	}

	n := entities[0].LWEDimension()
	for _, e := range entities[1:] {
		if m := e.LWEDimension(); m != n {
			return fmt.Errorf("%w: %d != %d", ErrDimensionMismatch, n, m)
		}
	}

	return checkKeyDistribution(entities[0].KeyDistribution(), entities[1:]...)
}

// checkGLWE returns an error if the entities do not share the same polynomial
// size, the same GLWE dimension and the same key distribution.
func checkGLWE(entities ...GLWEEntity) (err error) {

	if len(entities) < 2 {
		return
	}

	N := entities[0].PolynomialSize()
	for _, e := range entities[1:] {
		if m := e.PolynomialSize(); m != N {
			return fmt.Errorf("%w: %d != %d", ErrPolynomialSizeMismatch, N, m)
		}
	}

	k := entities[0].GLWEDimension()
	for _, e := range entities[1:] {
		if m := e.GLWEDimension(); m != k {
			return fmt.Errorf("%w: %d != %d", ErrGLWEDimensionMismatch, k, m)
		}
	}

	d := entities[0].KeyDistribution()
	for _, e := range entities[1:] {
		if e.KeyDistribution() != d {
			return fmt.Errorf("%w: %s != %s", ErrKeyDistributionMismatch, d, e.KeyDistribution())
		}
	}

	return
}

func checkKeyDistribution[V interface{ KeyDistribution() KeyDistribution }](d KeyDistribution, entities ...V) error {
	for _, e := range entities {
		if e.KeyDistribution() != d {
			return fmt.Errorf("%w: %s != %s", ErrKeyDistributionMismatch, d, e.KeyDistribution())
		}
	}
	return nil
}

// checkCount returns an error if the vectors are empty or
// do not have the same number of elements.
func checkCount(vectors ...Counted) error {

	if len(vectors) == 0 {
		return nil
	}

	c := vectors[0].Count()
	if c == 0 {
		return fmt.Errorf("%w: cannot operate on an empty vector", ErrNullCount)
	}

	for _, v := range vectors[1:] {
		if m := v.Count(); m != c {
			return fmt.Errorf("%w: %d != %d", ErrCiphertextCountMismatch, c, m)
		}
	}

	return nil
}

// checkDecomposition returns an error if baseLog and level do not
// define a valid decomposition for a torus of w bits.
func checkDecomposition(baseLog, level, w int) error {

	if baseLog <= 0 || level <= 0 {
		return fmt.Errorf("%w: base log=%d and level=%d must be greater than zero", ErrDecompositionParameters, baseLog, level)
	}

	if baseLog*level > w {
		return fmt.Errorf("%w: base log * level = %d exceeds the bit width %d", ErrDecompositionParameters, baseLog*level, w)
	}

	return nil
}

// CheckDecomposition returns an error wrapping [ErrDecompositionParameters] if
// baseLog and level do not define a valid decomposition for the torus T.
func CheckDecomposition[T ring.Torus](baseLog, level int) error {
	return checkDecomposition(baseLog, level, ring.BitWidth[T]())
}

// CheckNoise returns an error wrapping [ErrInvalidParameters] if
// no noise of the given variance can be sampled.
func (e *Engine[T]) CheckNoise(variance noise.Dispersion) error {
	return e.checkNoise(variance)
}

// CheckGLWE returns an error if the entities do not share the same polynomial
// size, the same GLWE dimension and the same key distribution.
func CheckGLWE(entities ...GLWEEntity) error {
	return checkGLWE(entities...)
}
