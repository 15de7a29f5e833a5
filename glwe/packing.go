package glwe

import (
	"fmt"

	"github.com/Pro7ech/glwe/noise"
	"github.com/Pro7ech/glwe/ring"
)

// CreatePackingKeyswitchKey generates a packing key switching key from the LWE
// secret key in to the GLWE secret key out, for a decomposition in base
// 2^baseLog over level levels.
func (e *Engine[T]) CreatePackingKeyswitchKey(in *LWESecretKey[T], out *GLWESecretKey[T], baseLog, level int, variance noise.Dispersion) (*PackingKeyswitchKey[T], error) {

	if err := checkDecomposition(baseLog, level, ring.BitWidth[T]()); err != nil {
		return nil, err
	}

	if err := e.checkNoise(variance); err != nil {
		return nil, err
	}

	if _, err := e.FFT(out.PolynomialSize()); err != nil {
		return nil, err
	}

	return e.CreatePackingKeyswitchKeyUnchecked(in, out, baseLog, level, variance), nil
}

// CreatePackingKeyswitchKeyUnchecked is the unchecked variant of [Engine.CreatePackingKeyswitchKey].
func (e *Engine[T]) CreatePackingKeyswitchKeyUnchecked(in *LWESecretKey[T], out *GLWESecretKey[T], baseLog, level int, variance noise.Dispersion) *PackingKeyswitchKey[T] {

	pksk := NewPackingKeyswitchKey[T](in.LWEDimension(), out.GLWEDimension(), out.PolynomialSize(), baseLog, level, in.Distribution, out.Distribution)

	xe := e.mustNoiseSampler(variance)

	w := ring.BitWidth[T]()

	m := ring.NewPoly[T](out.PolynomialSize())

	for i, s := range in.Value {
		for j := 0; j < level; j++ {
			m[0] = s << (w - (j+1)*baseLog)
			e.encryptGLWE(out, pksk.At(i, j), m, e.maskSampler, xe)
		}
	}

	return pksk
}

// DiscardPackingKeyswitchLWECiphertextVector packs the LWE ciphertexts of in into
// the GLWE ciphertext out: the p-th coefficient of the plaintext of out is the
// plaintext of the p-th ciphertext of in, the remaining coefficients are zero.
// The number of ciphertexts must not exceed the polynomial size.
func (e *Engine[T]) DiscardPackingKeyswitchLWECiphertextVector(out *GLWECiphertext[T], in *LWECiphertextVector[T], pksk *PackingKeyswitchKey[T]) (err error) {

	if in.LWEDimension() != pksk.InputDimension {
		return fmt.Errorf("%w: input dimension %d != key input dimension %d", ErrDimensionMismatch, in.LWEDimension(), pksk.InputDimension)
	}

	if in.KeyDistribution() != pksk.InputDistribution {
		return fmt.Errorf("%w: input %s != key input %s", ErrKeyDistributionMismatch, in.KeyDistribution(), pksk.InputDistribution)
	}

	if err = checkGLWE(out, pksk); err != nil {
		return
	}

	if in.Count() == 0 {
		return fmt.Errorf("%w: cannot pack an empty ciphertext vector", ErrNullCount)
	}

	if in.Count() > out.PolynomialSize() {
		return fmt.Errorf("%w: cannot pack %d ciphertexts in a polynomial of size %d", ErrCiphertextCountMismatch, in.Count(), out.PolynomialSize())
	}

	e.DiscardPackingKeyswitchLWECiphertextVectorUnchecked(out, in, pksk)

	return
}

// DiscardPackingKeyswitchLWECiphertextVectorUnchecked is the unchecked variant of [Engine.DiscardPackingKeyswitchLWECiphertextVector].
func (e *Engine[T]) DiscardPackingKeyswitchLWECiphertextVectorUnchecked(out *GLWECiphertext[T], in *LWECiphertextVector[T], pksk *PackingKeyswitchKey[T]) {

	dec := ring.SignedDecomposer[T]{BaseLog: pksk.BaseLog, Level: pksk.Level}
	digits := make([]T, pksk.Level)

	k := out.GLWEDimension()

	clear(out.Value)

	body := out.Body()

	for p := 0; p < in.Count(); p++ {

		ct := in.At(p)

		body[p] += ct.Body()

		for i, a := range ct.Mask() {

			dec.Decompose(a, digits)

			for j, d := range digits {

				if d == 0 {
					continue
				}

				key := pksk.At(i, j)

				for r := 0; r <= k; r++ {
					ring.MulScalarByMonomialThenSub(key.Poly(r), d, p, out.Poly(r))
				}
			}
		}
	}
}
