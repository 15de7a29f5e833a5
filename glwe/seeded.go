package glwe

import (
	"bufio"
	"fmt"
	"io"
	"slices"

	"github.com/Pro7ech/glwe/noise"
	"github.com/Pro7ech/glwe/ring"
	"github.com/Pro7ech/glwe/utils/buffer"
	"github.com/Pro7ech/glwe/utils/sampling"
)

// LWESeededCiphertext is a compressed LWE ciphertext: its mask is replaced
// by the seed it was sampled from.
type LWESeededCiphertext[T ring.Torus] struct {
	Seed         [32]byte
	Dimension    int
	Body         T
	Distribution KeyDistribution
}

// LWEDimension returns the dimension of the ciphertext.
func (ct LWESeededCiphertext[T]) LWEDimension() int {
	return ct.Dimension
}

// KeyDistribution returns the distribution of the key the ciphertext is tied to.
func (ct LWESeededCiphertext[T]) KeyDistribution() KeyDistribution {
	return ct.Distribution
}

// BinarySize returns the serialized size of the object in bytes.
func (ct LWESeededCiphertext[T]) BinarySize() int {
	return 1 + 32 + 8 + 8
}

// WriteTo writes the object on an io.Writer. It implements the io.WriterTo
// interface, and will write exactly object.BinarySize() bytes on w.
func (ct LWESeededCiphertext[T]) WriteTo(w io.Writer) (n int64, err error) {
	switch w := w.(type) {
	case buffer.Writer:

		var inc int64

		if inc, err = buffer.WriteAsUint8(w, ct.Distribution); err != nil {
			return n + inc, fmt.Errorf("buffer.WriteAsUint8[KeyDistribution]: %w", err)
		}

		n += inc

		if inc, err = buffer.WriteUint8Slice(w, ct.Seed[:]); err != nil {
			return n + inc, fmt.Errorf("buffer.WriteUint8Slice: %w", err)
		}

		n += inc

		if inc, err = buffer.WriteAsUint64(w, ct.Dimension); err != nil {
			return n + inc, fmt.Errorf("buffer.WriteAsUint64[int]: %w", err)
		}

		n += inc

		if inc, err = buffer.WriteAsUint64(w, ct.Body); err != nil {
			return n + inc, fmt.Errorf("buffer.WriteAsUint64[T]: %w", err)
		}

		n += inc

		return n, w.Flush()

	default:
		return ct.WriteTo(bufio.NewWriter(w))
	}
}

// ReadFrom reads on the object from an io.Reader. It implements the
// io.ReaderFrom interface.
func (ct *LWESeededCiphertext[T]) ReadFrom(r io.Reader) (n int64, err error) {
	switch r := r.(type) {
	case buffer.Reader:

		var inc int64

		if inc, err = buffer.ReadAsUint8(r, &ct.Distribution); err != nil {
			return n + inc, fmt.Errorf("buffer.ReadAsUint8[KeyDistribution]: %w", err)
		}

		n += inc

		if inc, err = buffer.ReadUint8Slice(r, ct.Seed[:]); err != nil {
			return n + inc, fmt.Errorf("buffer.ReadUint8Slice: %w", err)
		}

		n += inc

		if inc, err = buffer.ReadAsUint64(r, &ct.Dimension); err != nil {
			return n + inc, fmt.Errorf("buffer.ReadAsUint64[int]: %w", err)
		}

		n += inc

		if inc, err = buffer.ReadAsUint64(r, &ct.Body); err != nil {
			return n + inc, fmt.Errorf("buffer.ReadAsUint64[T]: %w", err)
		}

		return n + inc, nil

	default:
		return ct.ReadFrom(bufio.NewReader(r))
	}
}

// MarshalBinary encodes the object into a binary form on a newly allocated slice of bytes.
func (ct LWESeededCiphertext[T]) MarshalBinary() (p []byte, err error) {
	return MarshalEntity(ct)
}

// UnmarshalBinary decodes a slice of bytes generated by
// MarshalBinary or WriteTo on the object.
func (ct *LWESeededCiphertext[T]) UnmarshalBinary(p []byte) (err error) {
	return UnmarshalEntity(ct, p)
}

// EncryptLWESeededCiphertext encrypts pt under sk with a noise of the given variance
// and returns a compressed ciphertext whose mask is derived from a fresh public seed.
func (e *Engine[T]) EncryptLWESeededCiphertext(sk *LWESecretKey[T], pt *Plaintext[T], variance noise.Dispersion) (*LWESeededCiphertext[T], error) {
	if err := e.checkNoise(variance); err != nil {
		return nil, err
	}
	return e.EncryptLWESeededCiphertextUnchecked(sk, pt, variance), nil
}

// EncryptLWESeededCiphertextUnchecked is the unchecked variant of [Engine.EncryptLWESeededCiphertext].
func (e *Engine[T]) EncryptLWESeededCiphertextUnchecked(sk *LWESecretKey[T], pt *Plaintext[T], variance noise.Dispersion) *LWESeededCiphertext[T] {

	seed := e.maskSource.NewSeed()

	n := sk.LWEDimension()

	ct := make([]T, n+1)
	ring.NewUniformSampler[T](sampling.NewSource(seed)).Read(ct[:n])
	e.mustNoiseSampler(variance).Read(ct[n:])
	ct[n] += ring.DotProduct(ct[:n], sk.Value) + pt.Value

	return &LWESeededCiphertext[T]{
		Seed:         seed,
		Dimension:    n,
		Body:         ct[n],
		Distribution: sk.Distribution,
	}
}

// ExpandLWESeededCiphertext regenerates the mask of ct from its seed and
// returns the corresponding [LWECiphertext].
func (e *Engine[T]) ExpandLWESeededCiphertext(ct *LWESeededCiphertext[T]) *LWECiphertext[T] {
	out := NewLWECiphertext[T](ct.Dimension, ct.Distribution)
	e.DiscardExpandLWESeededCiphertextUnchecked(out, ct)
	return out
}

// DiscardExpandLWESeededCiphertext regenerates the mask of in from its seed and
// writes the corresponding [LWECiphertext] on out.
func (e *Engine[T]) DiscardExpandLWESeededCiphertext(out *LWECiphertext[T], in *LWESeededCiphertext[T]) (err error) {
	if err = checkLWE(out, in); err != nil {
		return
	}
	e.DiscardExpandLWESeededCiphertextUnchecked(out, in)
	return
}

// DiscardExpandLWESeededCiphertextUnchecked is the unchecked variant of [Engine.DiscardExpandLWESeededCiphertext].
func (e *Engine[T]) DiscardExpandLWESeededCiphertextUnchecked(out *LWECiphertext[T], in *LWESeededCiphertext[T]) {
	ring.NewUniformSampler[T](sampling.NewSource(in.Seed)).Read(out.Mask())
	out.SetBody(in.Body)
}

// GLWESeededCiphertext is a compressed GLWE ciphertext: its k mask
// polynomials are replaced by the seed they were sampled from.
type GLWESeededCiphertext[T ring.Torus] struct {
	Seed         [32]byte
	K            int
	Body         ring.Poly[T]
	Distribution KeyDistribution
}

// GLWEDimension returns the number of mask polynomials of the expanded ciphertext.
func (ct GLWESeededCiphertext[T]) GLWEDimension() int {
	return ct.K
}

// PolynomialSize returns the number of coefficients of the polynomials.
func (ct GLWESeededCiphertext[T]) PolynomialSize() int {
	return len(ct.Body)
}

// KeyDistribution returns the distribution of the key the ciphertext is tied to.
func (ct GLWESeededCiphertext[T]) KeyDistribution() KeyDistribution {
	return ct.Distribution
}

// Equal performs a deep equal.
func (ct GLWESeededCiphertext[T]) Equal(other *GLWESeededCiphertext[T]) bool {
	return ct.Seed == other.Seed &&
		ct.K == other.K &&
		ct.Distribution == other.Distribution &&
		slices.Equal(ct.Body, other.Body)
}

// BinarySize returns the serialized size of the object in bytes.
func (ct GLWESeededCiphertext[T]) BinarySize() int {
	return 32 + EntityBinarySize(1, 1, []T(ct.Body))
}

// WriteTo writes the object on an io.Writer. It implements the io.WriterTo
// interface, and will write exactly object.BinarySize() bytes on w.
func (ct GLWESeededCiphertext[T]) WriteTo(w io.Writer) (n int64, err error) {
	switch w := w.(type) {
	case buffer.Writer:

		if n, err = buffer.WriteUint8Slice(w, ct.Seed[:]); err != nil {
			return n, fmt.Errorf("buffer.WriteUint8Slice: %w", err)
		}

		var inc int64
		inc, err = WriteEntity(w, []KeyDistribution{ct.Distribution}, []int{ct.K}, []T(ct.Body))

		return n + inc, err

	default:
		return ct.WriteTo(bufio.NewWriter(w))
	}
}

// ReadFrom reads on the object from an io.Reader. It implements the
// io.ReaderFrom interface.
func (ct *GLWESeededCiphertext[T]) ReadFrom(r io.Reader) (n int64, err error) {
	switch r := r.(type) {
	case buffer.Reader:

		if n, err = buffer.ReadUint8Slice(r, ct.Seed[:]); err != nil {
			return n, fmt.Errorf("buffer.ReadUint8Slice: %w", err)
		}

		body := []T(ct.Body)

		var inc int64
		if inc, err = ReadEntity(r, []*KeyDistribution{&ct.Distribution}, []*int{&ct.K}, &body); err != nil {
			return n + inc, err
		}

		ct.Body = body

		if ct.K <= 0 || len(ct.Body) == 0 {
			return n + inc, fmt.Errorf("%w: k=%d and N=%d must be greater than zero", ErrBufferSize, ct.K, len(ct.Body))
		}

		return n + inc, nil

	default:
		return ct.ReadFrom(bufio.NewReader(r))
	}
}

// MarshalBinary encodes the object into a binary form on a newly allocated slice of bytes.
func (ct GLWESeededCiphertext[T]) MarshalBinary() (p []byte, err error) {
	return MarshalEntity(ct)
}

// UnmarshalBinary decodes a slice of bytes generated by
// MarshalBinary or WriteTo on the object.
func (ct *GLWESeededCiphertext[T]) UnmarshalBinary(p []byte) (err error) {
	return UnmarshalEntity(ct, p)
}

// EncryptGLWESeededCiphertext encrypts the polynomial pt under sk with a noise of the
// given variance and returns a compressed ciphertext whose mask is derived from a
// fresh public seed.
func (e *Engine[T]) EncryptGLWESeededCiphertext(sk *GLWESecretKey[T], pt *PlaintextVector[T], variance noise.Dispersion) (*GLWESeededCiphertext[T], error) {

	if err := checkPolynomial(pt, sk.PolynomialSize()); err != nil {
		return nil, err
	}

	if err := e.checkNoise(variance); err != nil {
		return nil, err
	}

	if _, err := e.FFT(sk.PolynomialSize()); err != nil {
		return nil, err
	}

	return e.EncryptGLWESeededCiphertextUnchecked(sk, pt, variance), nil
}

// EncryptGLWESeededCiphertextUnchecked is the unchecked variant of [Engine.EncryptGLWESeededCiphertext].
func (e *Engine[T]) EncryptGLWESeededCiphertextUnchecked(sk *GLWESecretKey[T], pt *PlaintextVector[T], variance noise.Dispersion) *GLWESeededCiphertext[T] {

	seed := e.maskSource.NewSeed()

	ct := NewGLWECiphertext[T](sk.GLWEDimension(), sk.PolynomialSize(), sk.Distribution)
	e.encryptGLWE(sk, ct, pt.Value, ring.NewUniformSampler[T](sampling.NewSource(seed)), e.mustNoiseSampler(variance))

	return &GLWESeededCiphertext[T]{
		Seed:         seed,
		K:            sk.GLWEDimension(),
		Body:         slices.Clone(ct.Body()),
		Distribution: sk.Distribution,
	}
}

// ExpandGLWESeededCiphertext regenerates the mask of ct from its seed and
// returns the corresponding [GLWECiphertext].
func (e *Engine[T]) ExpandGLWESeededCiphertext(ct *GLWESeededCiphertext[T]) *GLWECiphertext[T] {
	out := NewGLWECiphertext[T](ct.K, ct.PolynomialSize(), ct.Distribution)
	e.DiscardExpandGLWESeededCiphertextUnchecked(out, ct)
	return out
}

// DiscardExpandGLWESeededCiphertext regenerates the mask of in from its seed and
// writes the corresponding [GLWECiphertext] on out.
func (e *Engine[T]) DiscardExpandGLWESeededCiphertext(out *GLWECiphertext[T], in *GLWESeededCiphertext[T]) (err error) {
	if err = checkGLWE(out, in); err != nil {
		return
	}
	e.DiscardExpandGLWESeededCiphertextUnchecked(out, in)
	return
}

// DiscardExpandGLWESeededCiphertextUnchecked is the unchecked variant of [Engine.DiscardExpandGLWESeededCiphertext].
func (e *Engine[T]) DiscardExpandGLWESeededCiphertextUnchecked(out *GLWECiphertext[T], in *GLWESeededCiphertext[T]) {
	xa := ring.NewUniformSampler[T](sampling.NewSource(in.Seed))
	for i := 0; i < in.K; i++ {
		xa.Read(out.Poly(i))
	}
	copy(out.Body(), in.Body)
}
