package sampling

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSource(t *testing.T) {

	seed := [32]byte{0x49, 0x0a, 0x42, 0x3d, 0x97, 0x9d, 0xc1, 0x07, 0xa1, 0xd7, 0xe9, 0x7b, 0x3b, 0xce, 0xa1, 0xdb,
		0x42, 0xf3, 0xa6, 0xd5, 0x75, 0xd2, 0x0c, 0x92, 0xb7, 0x35, 0xce, 0x0c, 0xee, 0x09, 0x7c, 0x98}

	t.Run("Deterministic", func(t *testing.T) {

		Sa := NewSource(seed)
		Sb := NewSource(seed)

		sum0 := make([]byte, 3000)
		sum1 := make([]byte, 3000)

		Sa.Read(sum0)
		Sb.Read(sum1)

		require.Equal(t, sum0, sum1)
		require.Equal(t, Sa.Uint64(), Sb.Uint64())
	})

	t.Run("Reset", func(t *testing.T) {

		S := NewSource(seed)

		first := S.Uint64()

		for i := 0; i < 512; i++ {
			S.Uint64()
		}

		S.Reset()

		require.Equal(t, first, S.Uint64())
	})

	t.Run("ReadMatchesUint64", func(t *testing.T) {

		Sa := NewSource(seed)
		Sb := NewSource(seed)

		// Misaligns the stream before crossing the internal buffer boundary
		Sa.Read(make([]byte, 3))
		Sb.Read(make([]byte, 3))

		buff := make([]byte, 8*300)
		Sa.Read(buff)

		for i := 0; i < 300; i++ {
			var v uint64
			for j := 7; j >= 0; j-- {
				v = v<<8 | uint64(buff[i*8+j])
			}
			require.Equal(t, v, Sb.Uint64())
		}
	})

	t.Run("NewSource", func(t *testing.T) {
		S := NewSource(seed)
		child := S.NewSource()
		require.NotEqual(t, S.Seed(), child.Seed())
		require.NotEqual(t, S.Uint64(), child.Uint64())
	})

	t.Run("Uniform", func(t *testing.T) {
		S := NewSource(seed)
		for i := 0; i < 1024; i++ {
			require.Less(t, S.Uniform(600), uint64(600))
			require.Less(t, S.Uniform(512), uint64(512))
		}
	})

	t.Run("Float64", func(t *testing.T) {
		S := NewSource(seed)
		r := rand.New(S)
		for i := 0; i < 1024; i++ {
			f := r.Float64()
			require.GreaterOrEqual(t, f, 0.0)
			require.Less(t, f, 1.0)
		}
	})
}

func TestSeeder(t *testing.T) {

	t.Run("OSSeeder", func(t *testing.T) {
		seeder := NewOSSeeder([32]byte{})
		require.NotEqual(t, seeder.Seed(), seeder.Seed())
	})

	t.Run("DeterministicSeeder", func(t *testing.T) {
		Sa := NewDeterministicSeeder([32]byte{1})
		Sb := NewDeterministicSeeder([32]byte{1})
		s0 := Sa.Seed()
		require.Equal(t, s0, Sb.Seed())
		require.NotEqual(t, s0, Sa.Seed())
	})
}
