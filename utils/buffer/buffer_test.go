package buffer

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuffer(t *testing.T) {

	u64 := []uint64{0, 1, 0xffffffffffffffff, 1 << 63, 42}
	u32 := []uint32{0, 1, 0xffffffff, 1 << 31, 42}

	t.Run("Buffer", func(t *testing.T) {

		buf := NewBufferSize(8 + 5*8 + 5*4 + 1)

		_, err := WriteAsUint64[int](buf, -3)
		require.NoError(t, err)
		_, err = WriteUint64Slice(buf, u64)
		require.NoError(t, err)
		_, err = WriteUint32Slice(buf, u32)
		require.NoError(t, err)
		_, err = WriteAsUint8[bool](buf, true)
		require.NoError(t, err)

		_, err = WriteUint8(buf, 1)
		require.Error(t, err)

		var x int
		_, err = ReadAsUint64[int](buf, &x)
		require.NoError(t, err)
		require.Equal(t, -3, x)

		r64 := make([]uint64, len(u64))
		_, err = ReadUint64Slice(buf, r64)
		require.NoError(t, err)
		require.True(t, EqualAsUint64Slice(u64, r64))

		r32 := make([]uint32, len(u32))
		_, err = ReadUint32Slice(buf, r32)
		require.NoError(t, err)
		require.True(t, EqualAsUint32Slice(u32, r32))

		var b bool
		_, err = ReadAsUint8[bool](buf, &b)
		require.NoError(t, err)
		require.True(t, b)

		_, err = ReadUint8(buf, new(uint8))
		require.Error(t, err)
	})

	t.Run("Bufio", func(t *testing.T) {

		values := make([]uint64, 4096)
		for i := range values {
			values[i] = uint64(i) * 0x9e3779b97f4a7c15
		}

		var data bytes.Buffer
		w := bufio.NewWriterSize(&data, 64)

		n, err := WriteUint64Slice(w, values)
		require.NoError(t, err)
		require.NoError(t, w.Flush())
		require.Equal(t, int64(len(values)*8), n)

		r := bufio.NewReaderSize(&data, 64)
		read := make([]uint64, len(values))
		n, err = ReadUint64Slice(r, read)
		require.NoError(t, err)
		require.Equal(t, int64(len(values)*8), n)
		require.Equal(t, values, read)
	})
}
