package glwe

import (
	"fmt"
)

// ExtractLWECiphertext extracts the n-th coefficient of the plaintext of in as
// a new LWE ciphertext of dimension k*N, which decrypts under the flattened
// GLWE secret key (see [GLWESecretKey.AsLWESecretKey]).
func (e *Engine[T]) ExtractLWECiphertext(in *GLWECiphertext[T], n int) (*LWECiphertext[T], error) {
	out := NewLWECiphertext[T](in.GLWEDimension()*in.PolynomialSize(), in.Distribution)
	if err := e.DiscardExtractLWECiphertext(out, in, n); err != nil {
		return nil, err
	}
	return out, nil
}

// DiscardExtractLWECiphertext extracts the n-th coefficient of the plaintext of in
// and writes the resulting LWE ciphertext of dimension k*N on out.
func (e *Engine[T]) DiscardExtractLWECiphertext(out *LWECiphertext[T], in *GLWECiphertext[T], n int) (err error) {

	N := in.PolynomialSize()

	if n < 0 || n >= N {
		return fmt.Errorf("%w: coefficient %d of a polynomial of size %d", ErrIndexOutOfRange, n, N)
	}

	if dim := in.GLWEDimension() * N; out.LWEDimension() != dim {
		return fmt.Errorf("%w: output dimension %d != k*N = %d", ErrDimensionMismatch, out.LWEDimension(), dim)
	}

	if out.KeyDistribution() != in.KeyDistribution() {
		return fmt.Errorf("%w: %s != %s", ErrKeyDistributionMismatch, out.KeyDistribution(), in.KeyDistribution())
	}

	e.DiscardExtractLWECiphertextUnchecked(out, in, n)

	return
}

// DiscardExtractLWECiphertextUnchecked is the unchecked variant of [Engine.DiscardExtractLWECiphertext].
func (e *Engine[T]) DiscardExtractLWECiphertextUnchecked(out *LWECiphertext[T], in *GLWECiphertext[T], n int) {

	N := in.PolynomialSize()

	for r := 0; r < in.GLWEDimension(); r++ {

		a := in.Poly(r)
		mask := out.Value[r*N : (r+1)*N]

		for t := 0; t <= n; t++ {
			mask[t] = a[n-t]
		}

		for t := n + 1; t < N; t++ {
			mask[t] = -a[N+n-t]
		}
	}

	out.SetBody(in.Body()[n])
}
