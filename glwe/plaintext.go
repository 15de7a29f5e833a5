package glwe

import (
	"github.com/Pro7ech/glwe/ring"
)

// Plaintext is a message encoded on the torus, ready to be encrypted.
type Plaintext[T ring.Torus] struct {
	Value T
}

// NewPlaintext returns a new [Plaintext] holding value.
func NewPlaintext[T ring.Torus](value T) *Plaintext[T] {
	return &Plaintext[T]{Value: value}
}

// PlaintextVector is a list of plaintexts. It is also the plaintext of a
// GLWE ciphertext, in which case Value stores the coefficients of a
// polynomial of degree N, or of several GLWE ciphertexts, one after the other.
type PlaintextVector[T ring.Torus] struct {
	Value []T
}

// NewPlaintextVector returns a new [PlaintextVector] of count zero plaintexts.
func NewPlaintextVector[T ring.Torus](count int) *PlaintextVector[T] {
	return &PlaintextVector[T]{Value: make([]T, count)}
}

// Count returns the number of plaintexts.
func (pt PlaintextVector[T]) Count() int {
	return len(pt.Value)
}

// AsPoly returns the receiver as a polynomial sharing its storage.
func (pt PlaintextVector[T]) AsPoly() ring.Poly[T] {
	return pt.Value
}

// Cleartext is an integer used to scale ciphertexts. It is read as a signed
// integer and all arithmetic with it wraps around 2^w.
type Cleartext[T ring.Torus] struct {
	Value T
}

// NewCleartext returns a new [Cleartext] from a signed integer.
func NewCleartext[T ring.Torus](value int64) *Cleartext[T] {
	return &Cleartext[T]{Value: ring.FromSigned[T](value)}
}

// Signed returns the signed representative of the cleartext.
func (c Cleartext[T]) Signed() int64 {
	return ring.ToSigned(c.Value)
}

// CleartextVector is a list of cleartexts.
type CleartextVector[T ring.Torus] struct {
	Value []T
}

// NewCleartextVector returns a new [CleartextVector] from signed integers.
func NewCleartextVector[T ring.Torus](values []int64) *CleartextVector[T] {
	v := make([]T, len(values))
	for i := range values {
		v[i] = ring.FromSigned[T](values[i])
	}
	return &CleartextVector[T]{Value: v}
}

// Count returns the number of cleartexts.
func (c CleartextVector[T]) Count() int {
	return len(c.Value)
}

// Signed returns the signed representatives of the cleartexts.
func (c CleartextVector[T]) Signed() []int64 {
	v := make([]int64, len(c.Value))
	for i := range v {
		v[i] = ring.ToSigned(c.Value[i])
	}
	return v
}
