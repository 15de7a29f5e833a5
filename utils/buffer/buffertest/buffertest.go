// Package buffertest implements test helpers for the serialization
// methods of the types of this module.
package buffertest

import (
	"encoding"
	"io"
	"testing"

	"github.com/Pro7ech/glwe/utils/buffer"
	"github.com/stretchr/testify/require"
)

type binarySerializer interface {
	BinarySize() int
	io.WriterTo
	io.ReaderFrom
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
}

// RequireSerializerCorrect tests that:
//   - input and output implement the serialization interfaces
//   - input.WriteTo writes exactly input.BinarySize() bytes
//   - output.ReadFrom reads exactly input.BinarySize() bytes
//   - MarshalBinary and WriteTo produce the same bytes
//   - input and the deserialized output are equal
func RequireSerializerCorrect[V any](t *testing.T, input *V) {

	in, ok := any(input).(binarySerializer)
	require.True(t, ok, "%T does not implement the serialization interfaces", input)

	data := make([]byte, in.BinarySize())

	n, err := in.WriteTo(buffer.NewBuffer(data))
	require.NoError(t, err)
	require.Equal(t, int64(in.BinarySize()), n)

	output := new(V)
	out := any(output).(binarySerializer)

	n, err = out.ReadFrom(buffer.NewBuffer(data))
	require.NoError(t, err)
	require.Equal(t, int64(in.BinarySize()), n)

	marshaled, err := in.MarshalBinary()
	require.NoError(t, err)
	require.Equal(t, data, marshaled)

	output2 := new(V)
	require.NoError(t, any(output2).(binarySerializer).UnmarshalBinary(marshaled))

	require.Equal(t, input, output)
	require.Equal(t, input, output2)
}
