package glwe

import (
	"github.com/Pro7ech/glwe/ring"
)

// DiscardAddLWECiphertext evaluates out = in1 + in2.
func (e *Engine[T]) DiscardAddLWECiphertext(out, in1, in2 *LWECiphertext[T]) (err error) {
	if err = checkLWE(out, in1, in2); err != nil {
		return
	}
	e.DiscardAddLWECiphertextUnchecked(out, in1, in2)
	return
}

// DiscardAddLWECiphertextUnchecked is the unchecked variant of [Engine.DiscardAddLWECiphertext].
func (e *Engine[T]) DiscardAddLWECiphertextUnchecked(out, in1, in2 *LWECiphertext[T]) {
	ring.AddVec(in1.Value, in2.Value, out.Value)
}

// FuseAddLWECiphertext evaluates out = out + in.
func (e *Engine[T]) FuseAddLWECiphertext(out, in *LWECiphertext[T]) (err error) {
	if err = checkLWE(out, in); err != nil {
		return
	}
	e.FuseAddLWECiphertextUnchecked(out, in)
	return
}

// FuseAddLWECiphertextUnchecked is the unchecked variant of [Engine.FuseAddLWECiphertext].
func (e *Engine[T]) FuseAddLWECiphertextUnchecked(out, in *LWECiphertext[T]) {
	ring.AddVec(out.Value, in.Value, out.Value)
}

// DiscardSubLWECiphertext evaluates out = in1 - in2.
func (e *Engine[T]) DiscardSubLWECiphertext(out, in1, in2 *LWECiphertext[T]) (err error) {
	if err = checkLWE(out, in1, in2); err != nil {
		return
	}
	e.DiscardSubLWECiphertextUnchecked(out, in1, in2)
	return
}

// DiscardSubLWECiphertextUnchecked is the unchecked variant of [Engine.DiscardSubLWECiphertext].
func (e *Engine[T]) DiscardSubLWECiphertextUnchecked(out, in1, in2 *LWECiphertext[T]) {
	ring.SubVec(in1.Value, in2.Value, out.Value)
}

// FuseSubLWECiphertext evaluates out = out - in.
func (e *Engine[T]) FuseSubLWECiphertext(out, in *LWECiphertext[T]) (err error) {
	if err = checkLWE(out, in); err != nil {
		return
	}
	e.FuseSubLWECiphertextUnchecked(out, in)
	return
}

// FuseSubLWECiphertextUnchecked is the unchecked variant of [Engine.FuseSubLWECiphertext].
func (e *Engine[T]) FuseSubLWECiphertextUnchecked(out, in *LWECiphertext[T]) {
	ring.SubVec(out.Value, in.Value, out.Value)
}

// DiscardOppositeLWECiphertext evaluates out = -in.
func (e *Engine[T]) DiscardOppositeLWECiphertext(out, in *LWECiphertext[T]) (err error) {
	if err = checkLWE(out, in); err != nil {
		return
	}
	e.DiscardOppositeLWECiphertextUnchecked(out, in)
	return
}

// DiscardOppositeLWECiphertextUnchecked is the unchecked variant of [Engine.DiscardOppositeLWECiphertext].
func (e *Engine[T]) DiscardOppositeLWECiphertextUnchecked(out, in *LWECiphertext[T]) {
	ring.NegVec(in.Value, out.Value)
}

// FuseOppositeLWECiphertext evaluates ct = -ct.
func (e *Engine[T]) FuseOppositeLWECiphertext(ct *LWECiphertext[T]) {
	ring.NegVec(ct.Value, ct.Value)
}

// DiscardMulLWECiphertextCleartext evaluates out = c * in.
// The noise variance is scaled by c^2.
func (e *Engine[T]) DiscardMulLWECiphertextCleartext(out, in *LWECiphertext[T], c *Cleartext[T]) (err error) {
	if err = checkLWE(out, in); err != nil {
		return
	}
	e.DiscardMulLWECiphertextCleartextUnchecked(out, in, c)
	return
}

// DiscardMulLWECiphertextCleartextUnchecked is the unchecked variant of [Engine.DiscardMulLWECiphertextCleartext].
func (e *Engine[T]) DiscardMulLWECiphertextCleartextUnchecked(out, in *LWECiphertext[T], c *Cleartext[T]) {
	ring.MulScalarVec(in.Value, c.Value, out.Value)
}

// FuseMulLWECiphertextCleartext evaluates ct = c * ct.
func (e *Engine[T]) FuseMulLWECiphertextCleartext(ct *LWECiphertext[T], c *Cleartext[T]) {
	ring.MulScalarVec(ct.Value, c.Value, ct.Value)
}

// DiscardAddLWECiphertextPlaintext evaluates out = in + pt.
func (e *Engine[T]) DiscardAddLWECiphertextPlaintext(out, in *LWECiphertext[T], pt *Plaintext[T]) (err error) {
	if err = checkLWE(out, in); err != nil {
		return
	}
	e.DiscardAddLWECiphertextPlaintextUnchecked(out, in, pt)
	return
}

// DiscardAddLWECiphertextPlaintextUnchecked is the unchecked variant of [Engine.DiscardAddLWECiphertextPlaintext].
func (e *Engine[T]) DiscardAddLWECiphertextPlaintextUnchecked(out, in *LWECiphertext[T], pt *Plaintext[T]) {
	copy(out.Value, in.Value)
	out.SetBody(out.Body() + pt.Value)
}

// FuseAddLWECiphertextPlaintext evaluates ct = ct + pt.
func (e *Engine[T]) FuseAddLWECiphertextPlaintext(ct *LWECiphertext[T], pt *Plaintext[T]) {
	ct.SetBody(ct.Body() + pt.Value)
}

// DiscardSubLWECiphertextPlaintext evaluates out = in - pt.
func (e *Engine[T]) DiscardSubLWECiphertextPlaintext(out, in *LWECiphertext[T], pt *Plaintext[T]) (err error) {
	if err = checkLWE(out, in); err != nil {
		return
	}
	e.DiscardSubLWECiphertextPlaintextUnchecked(out, in, pt)
	return
}

// DiscardSubLWECiphertextPlaintextUnchecked is the unchecked variant of [Engine.DiscardSubLWECiphertextPlaintext].
func (e *Engine[T]) DiscardSubLWECiphertextPlaintextUnchecked(out, in *LWECiphertext[T], pt *Plaintext[T]) {
	copy(out.Value, in.Value)
	out.SetBody(out.Body() - pt.Value)
}

// FuseSubLWECiphertextPlaintext evaluates ct = ct - pt.
func (e *Engine[T]) FuseSubLWECiphertextPlaintext(ct *LWECiphertext[T], pt *Plaintext[T]) {
	ct.SetBody(ct.Body() - pt.Value)
}

// DiscardAddLWECiphertextVector evaluates out[i] = in1[i] + in2[i].
func (e *Engine[T]) DiscardAddLWECiphertextVector(out, in1, in2 *LWECiphertextVector[T]) (err error) {
	if err = checkLWEVectors(out, in1, in2); err != nil {
		return
	}
	e.DiscardAddLWECiphertextVectorUnchecked(out, in1, in2)
	return
}

// DiscardAddLWECiphertextVectorUnchecked is the unchecked variant of [Engine.DiscardAddLWECiphertextVector].
func (e *Engine[T]) DiscardAddLWECiphertextVectorUnchecked(out, in1, in2 *LWECiphertextVector[T]) {
	ring.AddVec(in1.Value, in2.Value, out.Value)
}

// FuseAddLWECiphertextVector evaluates out[i] = out[i] + in[i].
func (e *Engine[T]) FuseAddLWECiphertextVector(out, in *LWECiphertextVector[T]) (err error) {
	if err = checkLWEVectors(out, in); err != nil {
		return
	}
	e.FuseAddLWECiphertextVectorUnchecked(out, in)
	return
}

// FuseAddLWECiphertextVectorUnchecked is the unchecked variant of [Engine.FuseAddLWECiphertextVector].
func (e *Engine[T]) FuseAddLWECiphertextVectorUnchecked(out, in *LWECiphertextVector[T]) {
	ring.AddVec(out.Value, in.Value, out.Value)
}

// DiscardSubLWECiphertextVector evaluates out[i] = in1[i] - in2[i].
func (e *Engine[T]) DiscardSubLWECiphertextVector(out, in1, in2 *LWECiphertextVector[T]) (err error) {
	if err = checkLWEVectors(out, in1, in2); err != nil {
		return
	}
	e.DiscardSubLWECiphertextVectorUnchecked(out, in1, in2)
	return
}

// DiscardSubLWECiphertextVectorUnchecked is the unchecked variant of [Engine.DiscardSubLWECiphertextVector].
func (e *Engine[T]) DiscardSubLWECiphertextVectorUnchecked(out, in1, in2 *LWECiphertextVector[T]) {
	ring.SubVec(in1.Value, in2.Value, out.Value)
}

// FuseSubLWECiphertextVector evaluates out[i] = out[i] - in[i].
func (e *Engine[T]) FuseSubLWECiphertextVector(out, in *LWECiphertextVector[T]) (err error) {
	if err = checkLWEVectors(out, in); err != nil {
		return
	}
	e.FuseSubLWECiphertextVectorUnchecked(out, in)
	return
}

// FuseSubLWECiphertextVectorUnchecked is the unchecked variant of [Engine.FuseSubLWECiphertextVector].
func (e *Engine[T]) FuseSubLWECiphertextVectorUnchecked(out, in *LWECiphertextVector[T]) {
	ring.SubVec(out.Value, in.Value, out.Value)
}

// DiscardAddLWECiphertextVectorPlaintextVector evaluates out[i] = in[i] + pts[i].
func (e *Engine[T]) DiscardAddLWECiphertextVectorPlaintextVector(out, in *LWECiphertextVector[T], pts *PlaintextVector[T]) (err error) {

	if err = checkLWEVectors(out, in); err != nil {
		return
	}

	if err = checkCount(in, pts); err != nil {
		return
	}

	e.DiscardAddLWECiphertextVectorPlaintextVectorUnchecked(out, in, pts)

	return
}

// DiscardAddLWECiphertextVectorPlaintextVectorUnchecked is the unchecked variant of [Engine.DiscardAddLWECiphertextVectorPlaintextVector].
func (e *Engine[T]) DiscardAddLWECiphertextVectorPlaintextVectorUnchecked(out, in *LWECiphertextVector[T], pts *PlaintextVector[T]) {
	copy(out.Value, in.Value)
	e.FuseAddLWECiphertextVectorPlaintextVectorUnchecked(out, pts)
}

// FuseAddLWECiphertextVectorPlaintextVector evaluates ct[i] = ct[i] + pts[i].
func (e *Engine[T]) FuseAddLWECiphertextVectorPlaintextVector(ct *LWECiphertextVector[T], pts *PlaintextVector[T]) (err error) {
	if err = checkCount(ct, pts); err != nil {
		return
	}
	e.FuseAddLWECiphertextVectorPlaintextVectorUnchecked(ct, pts)
	return
}

// FuseAddLWECiphertextVectorPlaintextVectorUnchecked is the unchecked variant of [Engine.FuseAddLWECiphertextVectorPlaintextVector].
func (e *Engine[T]) FuseAddLWECiphertextVectorPlaintextVectorUnchecked(ct *LWECiphertextVector[T], pts *PlaintextVector[T]) {
	n := ct.Dimension
	for i := range pts.Value {
		ct.Value[i*(n+1)+n] += pts.Value[i]
	}
}

// DiscardAffineTransformLWECiphertextVector evaluates out = sum_i weights[i] * in[i] + bias.
func (e *Engine[T]) DiscardAffineTransformLWECiphertextVector(out *LWECiphertext[T], in *LWECiphertextVector[T], weights *CleartextVector[T], bias *Plaintext[T]) (err error) {

	if err = checkLWE(out, in); err != nil {
		return
	}

	if err = checkCount(in, weights); err != nil {
		return
	}

	e.DiscardAffineTransformLWECiphertextVectorUnchecked(out, in, weights, bias)

	return
}

// DiscardAffineTransformLWECiphertextVectorUnchecked is the unchecked variant of [Engine.DiscardAffineTransformLWECiphertextVector].
func (e *Engine[T]) DiscardAffineTransformLWECiphertextVectorUnchecked(out *LWECiphertext[T], in *LWECiphertextVector[T], weights *CleartextVector[T], bias *Plaintext[T]) {

	clear(out.Value)

	for i, w := range weights.Value {
		ring.MulScalarThenAddVec(in.At(i).Value, w, out.Value)
	}

	out.SetBody(out.Body() + bias.Value)
}

// DiscardAddGLWECiphertext evaluates out = in1 + in2.
func (e *Engine[T]) DiscardAddGLWECiphertext(out, in1, in2 *GLWECiphertext[T]) (err error) {
	if err = checkGLWE(out, in1, in2); err != nil {
		return
	}
	e.DiscardAddGLWECiphertextUnchecked(out, in1, in2)
	return
}

// DiscardAddGLWECiphertextUnchecked is the unchecked variant of [Engine.DiscardAddGLWECiphertext].
func (e *Engine[T]) DiscardAddGLWECiphertextUnchecked(out, in1, in2 *GLWECiphertext[T]) {
	ring.AddVec(in1.Value, in2.Value, out.Value)
}

// FuseAddGLWECiphertext evaluates out = out + in.
func (e *Engine[T]) FuseAddGLWECiphertext(out, in *GLWECiphertext[T]) (err error) {
	if err = checkGLWE(out, in); err != nil {
		return
	}
	e.FuseAddGLWECiphertextUnchecked(out, in)
	return
}

// FuseAddGLWECiphertextUnchecked is the unchecked variant of [Engine.FuseAddGLWECiphertext].
func (e *Engine[T]) FuseAddGLWECiphertextUnchecked(out, in *GLWECiphertext[T]) {
	ring.AddVec(out.Value, in.Value, out.Value)
}

// DiscardSubGLWECiphertext evaluates out = in1 - in2.
func (e *Engine[T]) DiscardSubGLWECiphertext(out, in1, in2 *GLWECiphertext[T]) (err error) {
	if err = checkGLWE(out, in1, in2); err != nil {
		return
	}
	e.DiscardSubGLWECiphertextUnchecked(out, in1, in2)
	return
}

// DiscardSubGLWECiphertextUnchecked is the unchecked variant of [Engine.DiscardSubGLWECiphertext].
func (e *Engine[T]) DiscardSubGLWECiphertextUnchecked(out, in1, in2 *GLWECiphertext[T]) {
	ring.SubVec(in1.Value, in2.Value, out.Value)
}

// checkLWEVectors returns an error if the vectors do not share the same dimension,
// the same key distribution and the same number of ciphertexts.
func checkLWEVectors[T ring.Torus](vectors ...*LWECiphertextVector[T]) (err error) {

	entities := make([]LWEEntity, len(vectors))
	counted := make([]Counted, len(vectors))
	for i := range vectors {
		entities[i] = vectors[i]
		counted[i] = vectors[i]
	}

	if err = checkLWE(entities...); err != nil {
		return
	}

	return checkCount(counted...)
}
