package glwe

import (
	"errors"
)

// Errors returned by the checked operations of the [Engine].
// They are wrapped with the offending values and can be tested with [errors.Is].
var (
	// ErrDimensionMismatch is returned when LWE entities have different dimensions.
	ErrDimensionMismatch = errors.New("lwe dimension mismatch")

	// ErrPolynomialSizeMismatch is returned when GLWE entities have different polynomial sizes.
	ErrPolynomialSizeMismatch = errors.New("polynomial size mismatch")

	// ErrGLWEDimensionMismatch is returned when GLWE entities have different GLWE dimensions.
	ErrGLWEDimensionMismatch = errors.New("glwe dimension mismatch")

	// ErrInputGLWEDimensionMismatch is returned when the two inputs of a
	// binary GLWE operation have different GLWE dimensions.
	ErrInputGLWEDimensionMismatch = errors.New("input glwe dimension mismatch")

	// ErrKeyDistributionMismatch is returned when entities are tied to keys of different distributions.
	ErrKeyDistributionMismatch = errors.New("key distribution mismatch")

	// ErrDecompositionParameters is returned when the base log or the level
	// of a decomposition is zero or when their product exceeds the bit width.
	ErrDecompositionParameters = errors.New("invalid decomposition parameters")

	// ErrBufferSize is returned when a buffer cannot be viewed as the requested entity.
	ErrBufferSize = errors.New("invalid buffer size")

	// ErrCiphertextCountMismatch is returned when vectors have different numbers of elements.
	ErrCiphertextCountMismatch = errors.New("ciphertext count mismatch")

	// ErrNullCount is returned when a vector of zero elements is requested.
	ErrNullCount = errors.New("null count")

	// ErrIndexOutOfRange is returned when an index exceeds the size of an entity.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInvalidParameters is returned when a dimension, a key distribution
	// or a noise parameter cannot be used.
	ErrInvalidParameters = errors.New("invalid parameters")
)
