package glwe

import (
	"fmt"

	"github.com/Pro7ech/glwe/ring"
)

// TensorProductIndex returns the index of the polynomial S1_i * S2_j, with i <= j,
// in a tensor product key of two keys of GLWE dimension k.
// The products are stored row by row: (0, 0), (0, 1), ..., (0, k-1), (1, 1), ...
func TensorProductIndex(i, j, k int) int {
	if i > j {
		i, j = j, i
	}
	return i*k - i*(i-1)/2 + j - i
}

// CreateTensorProductGLWESecretKey returns the GLWE secret key made of the
// k(k+1)/2 products S1_i * S2_j for i <= j, computed modulo X^N+1.
// The returned key is tagged with the [TensorProduct] distribution.
func (e *Engine[T]) CreateTensorProductGLWESecretKey(sk1, sk2 *GLWESecretKey[T]) (*GLWESecretKey[T], error) {

	if sk1.PolynomialSize() != sk2.PolynomialSize() {
		return nil, fmt.Errorf("%w: %d != %d", ErrPolynomialSizeMismatch, sk1.PolynomialSize(), sk2.PolynomialSize())
	}

	if sk1.GLWEDimension() != sk2.GLWEDimension() {
		return nil, fmt.Errorf("%w: %d != %d", ErrInputGLWEDimensionMismatch, sk1.GLWEDimension(), sk2.GLWEDimension())
	}

	return e.CreateTensorProductGLWESecretKeyUnchecked(sk1, sk2), nil
}

// CreateTensorProductGLWESecretKeyUnchecked is the unchecked variant of [Engine.CreateTensorProductGLWESecretKey].
func (e *Engine[T]) CreateTensorProductGLWESecretKeyUnchecked(sk1, sk2 *GLWESecretKey[T]) *GLWESecretKey[T] {

	k := sk1.GLWEDimension()

	out := NewGLWESecretKey[T](k*(k+1)/2, sk1.PolynomialSize(), TensorProduct)

	for i := 0; i < k; i++ {
		for j := i; j < k; j++ {
			ring.MulNegacyclic(sk1.Poly(i), sk2.Poly(j), out.Poly(TensorProductIndex(i, j, k)))
		}
	}

	return out
}
