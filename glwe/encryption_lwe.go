package glwe

import (
	"fmt"

	"github.com/Pro7ech/glwe/noise"
	"github.com/Pro7ech/glwe/ring"
)

// CreateLWESecretKey samples a new [LWESecretKey] of the given dimension and distribution.
func (e *Engine[T]) CreateLWESecretKey(dimension int, dist KeyDistribution) (*LWESecretKey[T], error) {

	if dimension <= 0 {
		return nil, fmt.Errorf("%w: LWE dimension=%d must be greater than zero", ErrInvalidParameters, dimension)
	}

	if !dist.Sampleable() {
		return nil, fmt.Errorf("%w: keys of distribution %s cannot be sampled", ErrInvalidParameters, dist)
	}

	return e.CreateLWESecretKeyUnchecked(dimension, dist), nil
}

// CreateLWESecretKeyUnchecked is the unchecked variant of [Engine.CreateLWESecretKey].
func (e *Engine[T]) CreateLWESecretKeyUnchecked(dimension int, dist KeyDistribution) *LWESecretKey[T] {
	sk := NewLWESecretKey[T](dimension, dist)
	e.sampleKey(sk.Value, dist)
	return sk
}

func (e *Engine[T]) sampleKey(p []T, dist KeyDistribution) {

	X, err := dist.parameters()

	// Sanity check, this error should not happen.
	if err != nil {
		panic(err)
	}

	sampler, err := ring.NewSampler[T](e.secretSource, X)

	// Sanity check, this error should not happen.
	if err != nil {
		panic(err)
	}

	sampler.Read(p)
}

// EncryptLWECiphertext encrypts pt under sk with a noise of the given variance
// and returns the result on a new [LWECiphertext].
func (e *Engine[T]) EncryptLWECiphertext(sk *LWESecretKey[T], pt *Plaintext[T], variance noise.Dispersion) (*LWECiphertext[T], error) {
	ct := NewLWECiphertext[T](sk.LWEDimension(), sk.Distribution)
	if err := e.DiscardEncryptLWECiphertext(sk, ct, pt, variance); err != nil {
		return nil, err
	}
	return ct, nil
}

// EncryptLWECiphertextUnchecked is the unchecked variant of [Engine.EncryptLWECiphertext].
func (e *Engine[T]) EncryptLWECiphertextUnchecked(sk *LWESecretKey[T], pt *Plaintext[T], variance noise.Dispersion) *LWECiphertext[T] {
	ct := NewLWECiphertext[T](sk.LWEDimension(), sk.Distribution)
	e.DiscardEncryptLWECiphertextUnchecked(sk, ct, pt, variance)
	return ct
}

// DiscardEncryptLWECiphertext encrypts pt under sk with a noise of the given
// variance and writes the result on out.
func (e *Engine[T]) DiscardEncryptLWECiphertext(sk *LWESecretKey[T], out *LWECiphertext[T], pt *Plaintext[T], variance noise.Dispersion) (err error) {

	if err = checkLWE(sk, out); err != nil {
		return
	}

	if err = e.checkNoise(variance); err != nil {
		return
	}

	e.DiscardEncryptLWECiphertextUnchecked(sk, out, pt, variance)

	return
}

// DiscardEncryptLWECiphertextUnchecked is the unchecked variant of [Engine.DiscardEncryptLWECiphertext].
func (e *Engine[T]) DiscardEncryptLWECiphertextUnchecked(sk *LWESecretKey[T], out *LWECiphertext[T], pt *Plaintext[T], variance noise.Dispersion) {
	e.encryptLWE(sk.Value, out.Value, pt.Value, e.mustNoiseSampler(variance))
}

// ZeroEncryptLWECiphertext returns a new encryption of zero under sk.
func (e *Engine[T]) ZeroEncryptLWECiphertext(sk *LWESecretKey[T], variance noise.Dispersion) (*LWECiphertext[T], error) {
	return e.EncryptLWECiphertext(sk, &Plaintext[T]{}, variance)
}

// ZeroEncryptLWECiphertextUnchecked is the unchecked variant of [Engine.ZeroEncryptLWECiphertext].
func (e *Engine[T]) ZeroEncryptLWECiphertextUnchecked(sk *LWESecretKey[T], variance noise.Dispersion) *LWECiphertext[T] {
	return e.EncryptLWECiphertextUnchecked(sk, &Plaintext[T]{}, variance)
}

// encryptLWE writes on ct = (a, <a, s> + m + e) with a uniform and e sampled from xe.
func (e *Engine[T]) encryptLWE(sk, ct []T, m T, xe ring.Sampler[T]) {
	n := len(sk)
	e.maskSampler.Read(ct[:n])
	xe.Read(ct[n:])
	ct[n] += ring.DotProduct(ct[:n], sk) + m
}

// DecryptLWECiphertext decrypts ct with sk and returns the noisy plaintext.
func (e *Engine[T]) DecryptLWECiphertext(sk *LWESecretKey[T], ct *LWECiphertext[T]) (*Plaintext[T], error) {
	pt := new(Plaintext[T])
	if err := e.DiscardDecryptLWECiphertext(sk, pt, ct); err != nil {
		return nil, err
	}
	return pt, nil
}

// DecryptLWECiphertextUnchecked is the unchecked variant of [Engine.DecryptLWECiphertext].
func (e *Engine[T]) DecryptLWECiphertextUnchecked(sk *LWESecretKey[T], ct *LWECiphertext[T]) *Plaintext[T] {
	pt := new(Plaintext[T])
	e.DiscardDecryptLWECiphertextUnchecked(sk, pt, ct)
	return pt
}

// DiscardDecryptLWECiphertext decrypts ct with sk and writes the noisy plaintext on out.
func (e *Engine[T]) DiscardDecryptLWECiphertext(sk *LWESecretKey[T], out *Plaintext[T], ct *LWECiphertext[T]) (err error) {
	if err = checkLWE(sk, ct); err != nil {
		return
	}
	e.DiscardDecryptLWECiphertextUnchecked(sk, out, ct)
	return
}

// DiscardDecryptLWECiphertextUnchecked is the unchecked variant of [Engine.DiscardDecryptLWECiphertext].
func (e *Engine[T]) DiscardDecryptLWECiphertextUnchecked(sk *LWESecretKey[T], out *Plaintext[T], ct *LWECiphertext[T]) {
	out.Value = decryptLWE(sk.Value, ct.Value)
}

func decryptLWE[T ring.Torus](sk, ct []T) T {
	n := len(sk)
	return ct[n] - ring.DotProduct(ct[:n], sk)
}

// TrivialEncryptLWECiphertext returns the noiseless encryption (0, m) of pt,
// tied to keys of the given dimension and distribution.
func (e *Engine[T]) TrivialEncryptLWECiphertext(dimension int, dist KeyDistribution, pt *Plaintext[T]) (*LWECiphertext[T], error) {
	if dimension < 0 {
		return nil, fmt.Errorf("%w: LWE dimension=%d must be positive", ErrInvalidParameters, dimension)
	}
	return e.TrivialEncryptLWECiphertextUnchecked(dimension, dist, pt), nil
}

// TrivialEncryptLWECiphertextUnchecked is the unchecked variant of [Engine.TrivialEncryptLWECiphertext].
func (e *Engine[T]) TrivialEncryptLWECiphertextUnchecked(dimension int, dist KeyDistribution, pt *Plaintext[T]) *LWECiphertext[T] {
	ct := NewLWECiphertext[T](dimension, dist)
	e.DiscardTrivialEncryptLWECiphertext(ct, pt)
	return ct
}

// DiscardTrivialEncryptLWECiphertext writes the noiseless encryption (0, m) of pt on out.
func (e *Engine[T]) DiscardTrivialEncryptLWECiphertext(out *LWECiphertext[T], pt *Plaintext[T]) {
	clear(out.Value)
	out.SetBody(pt.Value)
}

// TrivialDecryptLWECiphertext returns the body of ct, which is the exact plaintext
// of a trivial encryption.
func (e *Engine[T]) TrivialDecryptLWECiphertext(ct *LWECiphertext[T]) *Plaintext[T] {
	return &Plaintext[T]{Value: ct.Body()}
}

// EncryptLWECiphertextVector encrypts each plaintext of pts under sk and returns
// the result on a new [LWECiphertextVector].
func (e *Engine[T]) EncryptLWECiphertextVector(sk *LWESecretKey[T], pts *PlaintextVector[T], variance noise.Dispersion) (*LWECiphertextVector[T], error) {

	if pts.Count() == 0 {
		return nil, fmt.Errorf("%w: cannot encrypt an empty plaintext vector", ErrNullCount)
	}

	ct := NewLWECiphertextVector[T](sk.LWEDimension(), pts.Count(), sk.Distribution)
	if err := e.DiscardEncryptLWECiphertextVector(sk, ct, pts, variance); err != nil {
		return nil, err
	}

	return ct, nil
}

// EncryptLWECiphertextVectorUnchecked is the unchecked variant of [Engine.EncryptLWECiphertextVector].
func (e *Engine[T]) EncryptLWECiphertextVectorUnchecked(sk *LWESecretKey[T], pts *PlaintextVector[T], variance noise.Dispersion) *LWECiphertextVector[T] {
	ct := NewLWECiphertextVector[T](sk.LWEDimension(), pts.Count(), sk.Distribution)
	e.DiscardEncryptLWECiphertextVectorUnchecked(sk, ct, pts, variance)
	return ct
}

// DiscardEncryptLWECiphertextVector encrypts each plaintext of pts under sk and
// writes the results on out.
func (e *Engine[T]) DiscardEncryptLWECiphertextVector(sk *LWESecretKey[T], out *LWECiphertextVector[T], pts *PlaintextVector[T], variance noise.Dispersion) (err error) {

	if err = checkLWE(sk, out); err != nil {
		return
	}

	if err = checkCount(out, pts); err != nil {
		return
	}

	if err = e.checkNoise(variance); err != nil {
		return
	}

	e.DiscardEncryptLWECiphertextVectorUnchecked(sk, out, pts, variance)

	return
}

// DiscardEncryptLWECiphertextVectorUnchecked is the unchecked variant of [Engine.DiscardEncryptLWECiphertextVector].
func (e *Engine[T]) DiscardEncryptLWECiphertextVectorUnchecked(sk *LWESecretKey[T], out *LWECiphertextVector[T], pts *PlaintextVector[T], variance noise.Dispersion) {
	xe := e.mustNoiseSampler(variance)
	for i := range pts.Value {
		e.encryptLWE(sk.Value, out.At(i).Value, pts.Value[i], xe)
	}
}

// ZeroEncryptLWECiphertextVector returns a new vector of count encryptions of zero under sk.
func (e *Engine[T]) ZeroEncryptLWECiphertextVector(sk *LWESecretKey[T], count int, variance noise.Dispersion) (*LWECiphertextVector[T], error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: count=%d", ErrNullCount, count)
	}
	return e.EncryptLWECiphertextVector(sk, NewPlaintextVector[T](count), variance)
}

// ZeroEncryptLWECiphertextVectorUnchecked is the unchecked variant of [Engine.ZeroEncryptLWECiphertextVector].
func (e *Engine[T]) ZeroEncryptLWECiphertextVectorUnchecked(sk *LWESecretKey[T], count int, variance noise.Dispersion) *LWECiphertextVector[T] {
	return e.EncryptLWECiphertextVectorUnchecked(sk, NewPlaintextVector[T](count), variance)
}

// DecryptLWECiphertextVector decrypts each ciphertext of cts with sk.
func (e *Engine[T]) DecryptLWECiphertextVector(sk *LWESecretKey[T], cts *LWECiphertextVector[T]) (*PlaintextVector[T], error) {
	pts := NewPlaintextVector[T](cts.Count())
	if err := e.DiscardDecryptLWECiphertextVector(sk, pts, cts); err != nil {
		return nil, err
	}
	return pts, nil
}

// DecryptLWECiphertextVectorUnchecked is the unchecked variant of [Engine.DecryptLWECiphertextVector].
func (e *Engine[T]) DecryptLWECiphertextVectorUnchecked(sk *LWESecretKey[T], cts *LWECiphertextVector[T]) *PlaintextVector[T] {
	pts := NewPlaintextVector[T](cts.Count())
	e.DiscardDecryptLWECiphertextVectorUnchecked(sk, pts, cts)
	return pts
}

// DiscardDecryptLWECiphertextVector decrypts each ciphertext of cts with sk and writes the plaintexts on out.
func (e *Engine[T]) DiscardDecryptLWECiphertextVector(sk *LWESecretKey[T], out *PlaintextVector[T], cts *LWECiphertextVector[T]) (err error) {

	if err = checkLWE(sk, cts); err != nil {
		return
	}

	if err = checkCount(cts, out); err != nil {
		return
	}

	e.DiscardDecryptLWECiphertextVectorUnchecked(sk, out, cts)

	return
}

// DiscardDecryptLWECiphertextVectorUnchecked is the unchecked variant of [Engine.DiscardDecryptLWECiphertextVector].
func (e *Engine[T]) DiscardDecryptLWECiphertextVectorUnchecked(sk *LWESecretKey[T], out *PlaintextVector[T], cts *LWECiphertextVector[T]) {
	for i := range out.Value {
		out.Value[i] = decryptLWE(sk.Value, cts.At(i).Value)
	}
}

// TrivialEncryptLWECiphertextVector returns the noiseless encryptions of pts,
// tied to keys of the given dimension and distribution.
func (e *Engine[T]) TrivialEncryptLWECiphertextVector(dimension int, dist KeyDistribution, pts *PlaintextVector[T]) (*LWECiphertextVector[T], error) {

	if dimension < 0 {
		return nil, fmt.Errorf("%w: LWE dimension=%d must be positive", ErrInvalidParameters, dimension)
	}

	if pts.Count() == 0 {
		return nil, fmt.Errorf("%w: cannot encrypt an empty plaintext vector", ErrNullCount)
	}

	return e.TrivialEncryptLWECiphertextVectorUnchecked(dimension, dist, pts), nil
}

// TrivialEncryptLWECiphertextVectorUnchecked is the unchecked variant of [Engine.TrivialEncryptLWECiphertextVector].
func (e *Engine[T]) TrivialEncryptLWECiphertextVectorUnchecked(dimension int, dist KeyDistribution, pts *PlaintextVector[T]) *LWECiphertextVector[T] {
	ct := NewLWECiphertextVector[T](dimension, pts.Count(), dist)
	e.DiscardTrivialEncryptLWECiphertextVectorUnchecked(ct, pts)
	return ct
}

// DiscardTrivialEncryptLWECiphertextVector writes the noiseless encryptions of pts on out.
func (e *Engine[T]) DiscardTrivialEncryptLWECiphertextVector(out *LWECiphertextVector[T], pts *PlaintextVector[T]) (err error) {
	if err = checkCount(out, pts); err != nil {
		return
	}
	e.DiscardTrivialEncryptLWECiphertextVectorUnchecked(out, pts)
	return
}

// DiscardTrivialEncryptLWECiphertextVectorUnchecked is the unchecked variant of [Engine.DiscardTrivialEncryptLWECiphertextVector].
func (e *Engine[T]) DiscardTrivialEncryptLWECiphertextVectorUnchecked(out *LWECiphertextVector[T], pts *PlaintextVector[T]) {
	clear(out.Value)
	n := out.Dimension
	for i := range pts.Value {
		out.Value[i*(n+1)+n] = pts.Value[i]
	}
}

// TrivialDecryptLWECiphertextVector returns the bodies of the ciphertexts of cts.
func (e *Engine[T]) TrivialDecryptLWECiphertextVector(cts *LWECiphertextVector[T]) *PlaintextVector[T] {
	pts := NewPlaintextVector[T](cts.Count())
	n := cts.Dimension
	for i := range pts.Value {
		pts.Value[i] = cts.Value[i*(n+1)+n]
	}
	return pts
}
