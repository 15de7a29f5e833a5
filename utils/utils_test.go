package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUtils(t *testing.T) {

	t.Run("IsPow2", func(t *testing.T) {
		require.True(t, IsPow2(1024))
		require.True(t, IsPow2(uint32(1)))
		require.False(t, IsPow2(0))
		require.False(t, IsPow2(600))
	})

	t.Run("Log2", func(t *testing.T) {
		require.Equal(t, 10, Log2(uint64(1024)))
		require.Equal(t, 9, Log2(uint32(600)))
	})

	t.Run("BitReverse64", func(t *testing.T) {
		require.Equal(t, 4, BitReverse64(1, 3))
		require.Equal(t, 6, BitReverse64(3, 3))
	})

	t.Run("Overlap", func(t *testing.T) {
		x := make([]uint64, 16)
		require.True(t, Overlap(x[:8], x[4:12]))
		require.False(t, Overlap(x[:4], x[4:8]))
	})
}
