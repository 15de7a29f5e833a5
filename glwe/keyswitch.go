package glwe

import (
	"fmt"

	"github.com/Pro7ech/glwe/noise"
	"github.com/Pro7ech/glwe/ring"
)

// CreateLWEKeyswitchKey generates a key switching key from the secret key in
// to the secret key out, for a decomposition in base 2^baseLog over level levels.
// The ciphertexts of the key are sampled with a noise of the given variance.
func (e *Engine[T]) CreateLWEKeyswitchKey(in, out *LWESecretKey[T], baseLog, level int, variance noise.Dispersion) (*LWEKeyswitchKey[T], error) {

	if err := checkDecomposition(baseLog, level, ring.BitWidth[T]()); err != nil {
		return nil, err
	}

	if err := e.checkNoise(variance); err != nil {
		return nil, err
	}

	return e.CreateLWEKeyswitchKeyUnchecked(in, out, baseLog, level, variance), nil
}

// CreateLWEKeyswitchKeyUnchecked is the unchecked variant of [Engine.CreateLWEKeyswitchKey].
func (e *Engine[T]) CreateLWEKeyswitchKeyUnchecked(in, out *LWESecretKey[T], baseLog, level int, variance noise.Dispersion) *LWEKeyswitchKey[T] {

	ksk := NewLWEKeyswitchKey[T](in.LWEDimension(), out.LWEDimension(), baseLog, level, in.Distribution, out.Distribution)

	xe := e.mustNoiseSampler(variance)

	w := ring.BitWidth[T]()

	for i, s := range in.Value {
		for j := 0; j < level; j++ {
			e.encryptLWE(out.Value, ksk.At(i, j).Value, s<<(w-(j+1)*baseLog), xe)
		}
	}

	return ksk
}

// DiscardKeyswitchLWECiphertext switches the key of in with ksk and writes the result on out:
// out = (0, b_in) - sum_{i, j} d_{i, j} * ksk[i][j], with d_{i, j} the j-th digit of the
// i-th coefficient of the mask of in.
func (e *Engine[T]) DiscardKeyswitchLWECiphertext(out, in *LWECiphertext[T], ksk *LWEKeyswitchKey[T]) (err error) {
	if err = checkKeyswitch(out, in, ksk); err != nil {
		return
	}
	e.DiscardKeyswitchLWECiphertextUnchecked(out, in, ksk)
	return
}

// DiscardKeyswitchLWECiphertextUnchecked is the unchecked variant of [Engine.DiscardKeyswitchLWECiphertext].
func (e *Engine[T]) DiscardKeyswitchLWECiphertextUnchecked(out, in *LWECiphertext[T], ksk *LWEKeyswitchKey[T]) {
	e.keyswitch(out.Value, in.Value, ksk)
}

func (e *Engine[T]) keyswitch(out, in []T, ksk *LWEKeyswitchKey[T]) {

	dec := ring.SignedDecomposer[T]{BaseLog: ksk.BaseLog, Level: ksk.Level}
	digits := make([]T, ksk.Level)
	size := LWECiphertextBufferSize(ksk.OutputDimension)

	clear(out)
	out[len(out)-1] = in[len(in)-1]

	for i, a := range in[:len(in)-1] {

		dec.Decompose(a, digits)

		for j, d := range digits {
			if d != 0 {
				start := (i*ksk.Level + j) * size
				ring.MulScalarThenSubVec(ksk.Value[start:start+size], d, out)
			}
		}
	}
}

// DiscardKeyswitchLWECiphertextVector switches the key of each ciphertext of in
// with ksk and writes the results on out.
func (e *Engine[T]) DiscardKeyswitchLWECiphertextVector(out, in *LWECiphertextVector[T], ksk *LWEKeyswitchKey[T]) (err error) {

	if err = checkKeyswitch(out, in, ksk); err != nil {
		return
	}

	if err = checkCount(out, in); err != nil {
		return
	}

	e.DiscardKeyswitchLWECiphertextVectorUnchecked(out, in, ksk)

	return
}

// DiscardKeyswitchLWECiphertextVectorUnchecked is the unchecked variant of [Engine.DiscardKeyswitchLWECiphertextVector].
func (e *Engine[T]) DiscardKeyswitchLWECiphertextVectorUnchecked(out, in *LWECiphertextVector[T], ksk *LWEKeyswitchKey[T]) {
	for i := 0; i < in.Count(); i++ {
		e.keyswitch(out.At(i).Value, in.At(i).Value, ksk)
	}
}

func checkKeyswitch[T ring.Torus](out, in LWEEntity, ksk *LWEKeyswitchKey[T]) error {

	if in.LWEDimension() != ksk.InputDimension {
		return fmt.Errorf("%w: input dimension %d != key input dimension %d", ErrDimensionMismatch, in.LWEDimension(), ksk.InputDimension)
	}

	if out.LWEDimension() != ksk.OutputDimension {
		return fmt.Errorf("%w: output dimension %d != key output dimension %d", ErrDimensionMismatch, out.LWEDimension(), ksk.OutputDimension)
	}

	if in.KeyDistribution() != ksk.InputDistribution {
		return fmt.Errorf("%w: input %s != key input %s", ErrKeyDistributionMismatch, in.KeyDistribution(), ksk.InputDistribution)
	}

	if out.KeyDistribution() != ksk.OutputDistribution {
		return fmt.Errorf("%w: output %s != key output %s", ErrKeyDistributionMismatch, out.KeyDistribution(), ksk.OutputDistribution)
	}

	return nil
}
