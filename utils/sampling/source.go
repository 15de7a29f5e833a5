// Package sampling implements the randomness used by the engines: a keyed
// deterministic source and the seeders feeding it.
package sampling

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/zeebo/blake3"
)

const bufferSize = 1024

// Source is a deterministic stream of random bytes expanded from a 32 bytes seed
// with the extendable output of a keyed blake3 hash.
// It implements the [math/rand/v2.Source] and [io.Reader] interfaces.
//
// A Source is not safe for concurrent use. Independent sources can be
// derived with [Source.NewSource].
type Source struct {
	seed   [32]byte
	digest *blake3.Digest
	buff   [bufferSize]byte
	ptr    int
}

// NewSeed returns a new seed sampled from the operating system entropy.
func NewSeed() (seed [32]byte) {
	if _, err := rand.Read(seed[:]); err != nil {
		// Sanity check, this error should not happen.
		panic(fmt.Errorf("crypto/rand.Read: %w", err))
	}
	return
}

// NewSource instantiates a new [Source] from the given seed.
// Two sources instantiated with the same seed produce the same stream.
func NewSource(seed [32]byte) *Source {

	hasher, err := blake3.NewKeyed(seed[:])

	// Sanity check, this error should not happen.
	if err != nil {
		panic(fmt.Errorf("blake3.NewKeyed: %w", err))
	}

	return &Source{
		seed:   seed,
		digest: hasher.Digest(),
		ptr:    bufferSize,
	}
}

// Seed returns the seed of the source.
func (s *Source) Seed() [32]byte {
	return s.seed
}

// NewSource derives a new [Source] whose seed is read from the receiver.
// The returned source can be used concurrently with the receiver.
func (s *Source) NewSource() *Source {
	var seed [32]byte
	s.fill(seed[:])
	return NewSource(seed)
}

// NewSeed returns 32 bytes read from the stream.
func (s *Source) NewSeed() (seed [32]byte) {
	s.fill(seed[:])
	return
}

// Reset rewinds the source to the beginning of its stream.
func (s *Source) Reset() {
	*s = *NewSource(s.seed)
}

// Read fills p with bytes of the stream. It never returns an error.
func (s *Source) Read(p []byte) (n int, err error) {
	s.fill(p)
	return len(p), nil
}

// Uint64 returns the next 8 bytes of the stream as an uint64.
func (s *Source) Uint64() uint64 {
	if s.ptr+8 > bufferSize {
		s.refill()
	}
	v := binary.LittleEndian.Uint64(s.buff[s.ptr:])
	s.ptr += 8
	return v
}

// Uint32 returns the next 4 bytes of the stream as an uint32.
func (s *Source) Uint32() uint32 {
	if s.ptr+4 > bufferSize {
		s.refill()
	}
	v := binary.LittleEndian.Uint32(s.buff[s.ptr:])
	s.ptr += 4
	return v
}

// Float64 returns a float uniformly distributed in [0, 1).
func (s *Source) Float64() float64 {
	return float64(s.Uint64()>>11) / (1 << 53)
}

// Uniform returns a value uniformly distributed in [0, max).
// max must be greater than zero.
func (s *Source) Uniform(max uint64) (v uint64) {

	if max&(max-1) == 0 {
		return s.Uint64() & (max - 1)
	}

	// Rejection sampling on the smallest power of two above max
	mask := uint64(math.MaxUint64)
	for mask>>1 >= max {
		mask >>= 1
	}

	for v = s.Uint64() & mask; v >= max; v = s.Uint64() & mask {
	}

	return
}

func (s *Source) fill(p []byte) {
	for len(p) > 0 {
		if s.ptr == bufferSize {
			s.refill()
		}
		n := copy(p, s.buff[s.ptr:])
		s.ptr += n
		p = p[n:]
	}
}

func (s *Source) refill() {
	// Keeps the stream position aligned on the leftover bytes
	rem := copy(s.buff[:], s.buff[s.ptr:])
	if _, err := s.digest.Read(s.buff[rem:]); err != nil {
		// Sanity check, this error should not happen.
		panic(fmt.Errorf("blake3.Digest.Read: %w", err))
	}
	s.ptr = 0
}
