package glwe

import (
	"fmt"

	"github.com/Pro7ech/glwe/noise"
	"github.com/Pro7ech/glwe/ring"
	"github.com/Pro7ech/glwe/utils"
)

// CreateGLWESecretKey samples a new [GLWESecretKey] of glweDimension polynomials
// of polynomialSize coefficients. The polynomial size must be a power of two.
func (e *Engine[T]) CreateGLWESecretKey(glweDimension, polynomialSize int, dist KeyDistribution) (*GLWESecretKey[T], error) {

	if glweDimension <= 0 {
		return nil, fmt.Errorf("%w: GLWE dimension=%d must be greater than zero", ErrInvalidParameters, glweDimension)
	}

	if polynomialSize < 2 || !utils.IsPow2(polynomialSize) {
		return nil, fmt.Errorf("%w: polynomial size=%d must be a power of two greater than one", ErrInvalidParameters, polynomialSize)
	}

	if !dist.Sampleable() {
		return nil, fmt.Errorf("%w: keys of distribution %s cannot be sampled", ErrInvalidParameters, dist)
	}

	return e.CreateGLWESecretKeyUnchecked(glweDimension, polynomialSize, dist), nil
}

// CreateGLWESecretKeyUnchecked is the unchecked variant of [Engine.CreateGLWESecretKey].
func (e *Engine[T]) CreateGLWESecretKeyUnchecked(glweDimension, polynomialSize int, dist KeyDistribution) *GLWESecretKey[T] {
	sk := NewGLWESecretKey[T](glweDimension, polynomialSize, dist)
	e.sampleKey(sk.Value, dist)
	return sk
}

// TransformGLWESecretKeyToLWESecretKey returns the LWE secret key of dimension k*N
// under which the LWE ciphertexts extracted from GLWE ciphertexts encrypted under
// sk decrypt. The returned key shares the storage of sk.
func (e *Engine[T]) TransformGLWESecretKeyToLWESecretKey(sk *GLWESecretKey[T]) *LWESecretKey[T] {
	return sk.AsLWESecretKey()
}

// EncryptGLWECiphertext encrypts the polynomial pt under sk with a noise of the given
// variance and returns the result on a new [GLWECiphertext].
func (e *Engine[T]) EncryptGLWECiphertext(sk *GLWESecretKey[T], pt *PlaintextVector[T], variance noise.Dispersion) (*GLWECiphertext[T], error) {
	ct := NewGLWECiphertext[T](sk.GLWEDimension(), sk.PolynomialSize(), sk.Distribution)
	if err := e.DiscardEncryptGLWECiphertext(sk, ct, pt, variance); err != nil {
		return nil, err
	}
	return ct, nil
}

// EncryptGLWECiphertextUnchecked is the unchecked variant of [Engine.EncryptGLWECiphertext].
func (e *Engine[T]) EncryptGLWECiphertextUnchecked(sk *GLWESecretKey[T], pt *PlaintextVector[T], variance noise.Dispersion) *GLWECiphertext[T] {
	ct := NewGLWECiphertext[T](sk.GLWEDimension(), sk.PolynomialSize(), sk.Distribution)
	e.DiscardEncryptGLWECiphertextUnchecked(sk, ct, pt, variance)
	return ct
}

// DiscardEncryptGLWECiphertext encrypts the polynomial pt under sk with a noise of the
// given variance and writes the result on out.
func (e *Engine[T]) DiscardEncryptGLWECiphertext(sk *GLWESecretKey[T], out *GLWECiphertext[T], pt *PlaintextVector[T], variance noise.Dispersion) (err error) {

	if err = checkGLWE(sk, out); err != nil {
		return
	}

	if err = checkPolynomial(pt, sk.PolynomialSize()); err != nil {
		return
	}

	if err = e.checkNoise(variance); err != nil {
		return
	}

	if _, err = e.FFT(sk.PolynomialSize()); err != nil {
		return
	}

	e.DiscardEncryptGLWECiphertextUnchecked(sk, out, pt, variance)

	return
}

// DiscardEncryptGLWECiphertextUnchecked is the unchecked variant of [Engine.DiscardEncryptGLWECiphertext].
func (e *Engine[T]) DiscardEncryptGLWECiphertextUnchecked(sk *GLWESecretKey[T], out *GLWECiphertext[T], pt *PlaintextVector[T], variance noise.Dispersion) {
	e.encryptGLWE(sk, out, pt.Value, e.maskSampler, e.mustNoiseSampler(variance))
}

// ZeroEncryptGLWECiphertext returns a new encryption of the zero polynomial under sk.
func (e *Engine[T]) ZeroEncryptGLWECiphertext(sk *GLWESecretKey[T], variance noise.Dispersion) (*GLWECiphertext[T], error) {
	return e.EncryptGLWECiphertext(sk, NewPlaintextVector[T](sk.PolynomialSize()), variance)
}

// ZeroEncryptGLWECiphertextUnchecked is the unchecked variant of [Engine.ZeroEncryptGLWECiphertext].
func (e *Engine[T]) ZeroEncryptGLWECiphertextUnchecked(sk *GLWESecretKey[T], variance noise.Dispersion) *GLWECiphertext[T] {
	return e.EncryptGLWECiphertextUnchecked(sk, NewPlaintextVector[T](sk.PolynomialSize()), variance)
}

// encryptGLWE writes on ct = (A, sum A_i * S_i + M + E) with A sampled from xa
// and E sampled from xe. A nil m stands for the zero polynomial.
func (e *Engine[T]) encryptGLWE(sk *GLWESecretKey[T], ct *GLWECiphertext[T], m []T, xa, xe ring.Sampler[T]) {

	fft := e.mustFFT(ct.N)

	body := ct.Body()

	xe.Read(body)

	if m != nil {
		ring.AddVec(body, m, body)
	}

	for i := 0; i < ct.GLWEDimension(); i++ {
		mask := ct.Poly(i)
		xa.Read(mask)
		fft.MulSmallThenAdd(mask, sk.Poly(i), body)
	}
}

// DecryptGLWECiphertext decrypts ct with sk and returns the noisy polynomial.
func (e *Engine[T]) DecryptGLWECiphertext(sk *GLWESecretKey[T], ct *GLWECiphertext[T]) (*PlaintextVector[T], error) {
	pt := NewPlaintextVector[T](ct.PolynomialSize())
	if err := e.DiscardDecryptGLWECiphertext(sk, pt, ct); err != nil {
		return nil, err
	}
	return pt, nil
}

// DecryptGLWECiphertextUnchecked is the unchecked variant of [Engine.DecryptGLWECiphertext].
func (e *Engine[T]) DecryptGLWECiphertextUnchecked(sk *GLWESecretKey[T], ct *GLWECiphertext[T]) *PlaintextVector[T] {
	pt := NewPlaintextVector[T](ct.PolynomialSize())
	e.DiscardDecryptGLWECiphertextUnchecked(sk, pt, ct)
	return pt
}

// DiscardDecryptGLWECiphertext decrypts ct with sk and writes the noisy polynomial on out.
func (e *Engine[T]) DiscardDecryptGLWECiphertext(sk *GLWESecretKey[T], out *PlaintextVector[T], ct *GLWECiphertext[T]) (err error) {

	if err = checkGLWE(sk, ct); err != nil {
		return
	}

	if err = checkPolynomial(out, sk.PolynomialSize()); err != nil {
		return
	}

	if _, err = e.FFT(sk.PolynomialSize()); err != nil {
		return
	}

	e.DiscardDecryptGLWECiphertextUnchecked(sk, out, ct)

	return
}

// DiscardDecryptGLWECiphertextUnchecked is the unchecked variant of [Engine.DiscardDecryptGLWECiphertext].
func (e *Engine[T]) DiscardDecryptGLWECiphertextUnchecked(sk *GLWESecretKey[T], out *PlaintextVector[T], ct *GLWECiphertext[T]) {
	e.decryptGLWE(sk, out.Value, ct)
}

// decryptGLWE writes on m = B - sum A_i * S_i.
func (e *Engine[T]) decryptGLWE(sk *GLWESecretKey[T], m []T, ct *GLWECiphertext[T]) {

	fft := e.mustFFT(ct.N)

	dot := ring.NewPoly[T](ct.N)
	for i := 0; i < ct.GLWEDimension(); i++ {
		fft.MulSmallThenAdd(ct.Poly(i), sk.Poly(i), dot)
	}

	ring.SubVec(ct.Body(), dot, m)
}

// TrivialEncryptGLWECiphertext returns the noiseless encryption (0, M) of the
// polynomial pt, tied to keys of the given GLWE dimension and distribution.
func (e *Engine[T]) TrivialEncryptGLWECiphertext(glweDimension int, dist KeyDistribution, pt *PlaintextVector[T]) (*GLWECiphertext[T], error) {

	if glweDimension < 0 {
		return nil, fmt.Errorf("%w: GLWE dimension=%d must be positive", ErrInvalidParameters, glweDimension)
	}

	if pt.Count() == 0 {
		return nil, fmt.Errorf("%w: cannot encrypt an empty polynomial", ErrNullCount)
	}

	return e.TrivialEncryptGLWECiphertextUnchecked(glweDimension, dist, pt), nil
}

// TrivialEncryptGLWECiphertextUnchecked is the unchecked variant of [Engine.TrivialEncryptGLWECiphertext].
func (e *Engine[T]) TrivialEncryptGLWECiphertextUnchecked(glweDimension int, dist KeyDistribution, pt *PlaintextVector[T]) *GLWECiphertext[T] {
	ct := NewGLWECiphertext[T](glweDimension, pt.Count(), dist)
	e.DiscardTrivialEncryptGLWECiphertextUnchecked(ct, pt)
	return ct
}

// DiscardTrivialEncryptGLWECiphertext writes the noiseless encryption (0, M) of pt on out.
func (e *Engine[T]) DiscardTrivialEncryptGLWECiphertext(out *GLWECiphertext[T], pt *PlaintextVector[T]) (err error) {
	if err = checkPolynomial(pt, out.PolynomialSize()); err != nil {
		return
	}
	e.DiscardTrivialEncryptGLWECiphertextUnchecked(out, pt)
	return
}

// DiscardTrivialEncryptGLWECiphertextUnchecked is the unchecked variant of [Engine.DiscardTrivialEncryptGLWECiphertext].
func (e *Engine[T]) DiscardTrivialEncryptGLWECiphertextUnchecked(out *GLWECiphertext[T], pt *PlaintextVector[T]) {
	clear(out.Value)
	copy(out.Body(), pt.Value)
}

// TrivialDecryptGLWECiphertext returns a copy of the body of ct, which is the exact
// plaintext of a trivial encryption.
func (e *Engine[T]) TrivialDecryptGLWECiphertext(ct *GLWECiphertext[T]) *PlaintextVector[T] {
	return &PlaintextVector[T]{Value: ct.Body().Clone()}
}

// EncryptGLWECiphertextVector encrypts pts, read as consecutive polynomials of
// N coefficients, under sk and returns the result on a new [GLWECiphertextVector].
func (e *Engine[T]) EncryptGLWECiphertextVector(sk *GLWESecretKey[T], pts *PlaintextVector[T], variance noise.Dispersion) (*GLWECiphertextVector[T], error) {

	N := sk.PolynomialSize()

	if pts.Count() == 0 {
		return nil, fmt.Errorf("%w: cannot encrypt an empty plaintext vector", ErrNullCount)
	}

	if pts.Count()%N != 0 {
		return nil, fmt.Errorf("%w: %d plaintexts is not a multiple of %d", ErrPolynomialSizeMismatch, pts.Count(), N)
	}

	ct := NewGLWECiphertextVector[T](sk.GLWEDimension(), N, pts.Count()/N, sk.Distribution)
	if err := e.DiscardEncryptGLWECiphertextVector(sk, ct, pts, variance); err != nil {
		return nil, err
	}

	return ct, nil
}

// EncryptGLWECiphertextVectorUnchecked is the unchecked variant of [Engine.EncryptGLWECiphertextVector].
func (e *Engine[T]) EncryptGLWECiphertextVectorUnchecked(sk *GLWESecretKey[T], pts *PlaintextVector[T], variance noise.Dispersion) *GLWECiphertextVector[T] {
	N := sk.PolynomialSize()
	ct := NewGLWECiphertextVector[T](sk.GLWEDimension(), N, pts.Count()/N, sk.Distribution)
	e.DiscardEncryptGLWECiphertextVectorUnchecked(sk, ct, pts, variance)
	return ct
}

// DiscardEncryptGLWECiphertextVector encrypts pts under sk and writes the results on out.
func (e *Engine[T]) DiscardEncryptGLWECiphertextVector(sk *GLWESecretKey[T], out *GLWECiphertextVector[T], pts *PlaintextVector[T], variance noise.Dispersion) (err error) {

	if err = checkGLWE(sk, out); err != nil {
		return
	}

	if count := out.Count() * out.PolynomialSize(); count != pts.Count() {
		return fmt.Errorf("%w: %d != %d", ErrCiphertextCountMismatch, count, pts.Count())
	}

	if err = e.checkNoise(variance); err != nil {
		return
	}

	if _, err = e.FFT(sk.PolynomialSize()); err != nil {
		return
	}

	e.DiscardEncryptGLWECiphertextVectorUnchecked(sk, out, pts, variance)

	return
}

// DiscardEncryptGLWECiphertextVectorUnchecked is the unchecked variant of [Engine.DiscardEncryptGLWECiphertextVector].
func (e *Engine[T]) DiscardEncryptGLWECiphertextVectorUnchecked(sk *GLWESecretKey[T], out *GLWECiphertextVector[T], pts *PlaintextVector[T], variance noise.Dispersion) {
	xe := e.mustNoiseSampler(variance)
	N := out.N
	for i := 0; i < out.Count(); i++ {
		e.encryptGLWE(sk, out.At(i), pts.Value[i*N:(i+1)*N], e.maskSampler, xe)
	}
}

// ZeroEncryptGLWECiphertextVector returns a new vector of count encryptions of zero under sk.
func (e *Engine[T]) ZeroEncryptGLWECiphertextVector(sk *GLWESecretKey[T], count int, variance noise.Dispersion) (*GLWECiphertextVector[T], error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: count=%d", ErrNullCount, count)
	}
	return e.EncryptGLWECiphertextVector(sk, NewPlaintextVector[T](count*sk.PolynomialSize()), variance)
}

// ZeroEncryptGLWECiphertextVectorUnchecked is the unchecked variant of [Engine.ZeroEncryptGLWECiphertextVector].
func (e *Engine[T]) ZeroEncryptGLWECiphertextVectorUnchecked(sk *GLWESecretKey[T], count int, variance noise.Dispersion) *GLWECiphertextVector[T] {
	return e.EncryptGLWECiphertextVectorUnchecked(sk, NewPlaintextVector[T](count*sk.PolynomialSize()), variance)
}

// DecryptGLWECiphertextVector decrypts each ciphertext of cts with sk and returns
// the polynomials one after the other.
func (e *Engine[T]) DecryptGLWECiphertextVector(sk *GLWESecretKey[T], cts *GLWECiphertextVector[T]) (*PlaintextVector[T], error) {
	pts := NewPlaintextVector[T](cts.Count() * cts.PolynomialSize())
	if err := e.DiscardDecryptGLWECiphertextVector(sk, pts, cts); err != nil {
		return nil, err
	}
	return pts, nil
}

// DecryptGLWECiphertextVectorUnchecked is the unchecked variant of [Engine.DecryptGLWECiphertextVector].
func (e *Engine[T]) DecryptGLWECiphertextVectorUnchecked(sk *GLWESecretKey[T], cts *GLWECiphertextVector[T]) *PlaintextVector[T] {
	pts := NewPlaintextVector[T](cts.Count() * cts.PolynomialSize())
	e.DiscardDecryptGLWECiphertextVectorUnchecked(sk, pts, cts)
	return pts
}

// DiscardDecryptGLWECiphertextVector decrypts each ciphertext of cts with sk and writes the polynomials on out.
func (e *Engine[T]) DiscardDecryptGLWECiphertextVector(sk *GLWESecretKey[T], out *PlaintextVector[T], cts *GLWECiphertextVector[T]) (err error) {

	if err = checkGLWE(sk, cts); err != nil {
		return
	}

	if count := cts.Count() * cts.PolynomialSize(); count != out.Count() {
		return fmt.Errorf("%w: %d != %d", ErrCiphertextCountMismatch, count, out.Count())
	}

	if _, err = e.FFT(sk.PolynomialSize()); err != nil {
		return
	}

	e.DiscardDecryptGLWECiphertextVectorUnchecked(sk, out, cts)

	return
}

// DiscardDecryptGLWECiphertextVectorUnchecked is the unchecked variant of [Engine.DiscardDecryptGLWECiphertextVector].
func (e *Engine[T]) DiscardDecryptGLWECiphertextVectorUnchecked(sk *GLWESecretKey[T], out *PlaintextVector[T], cts *GLWECiphertextVector[T]) {
	N := cts.N
	for i := 0; i < cts.Count(); i++ {
		e.decryptGLWE(sk, out.Value[i*N:(i+1)*N], cts.At(i))
	}
}

// checkPolynomial returns an error if pt does not have N coefficients.
func checkPolynomial[T ring.Torus](pt *PlaintextVector[T], N int) error {
	if pt.Count() != N {
		return fmt.Errorf("%w: plaintext has %d coefficients but the polynomial size is %d", ErrPolynomialSizeMismatch, pt.Count(), N)
	}
	return nil
}
