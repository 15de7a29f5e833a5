package sampling

import (
	"encoding/binary"
	"fmt"
	"sync"

	"golang.org/x/crypto/blake2b"
)

// Seeder is the entropy collaborator of the engines: it hands out
// the seeds from which their deterministic sources are expanded.
type Seeder interface {
	Seed() [32]byte
}

// OSSeeder is a [Seeder] mixing a caller provided secret, a counter and
// the operating system entropy with a keyed blake2b hash.
// It is safe for concurrent use.
type OSSeeder struct {
	mu      sync.Mutex
	secret  [32]byte
	counter uint64
}

// NewOSSeeder instantiates a new [OSSeeder] with the given secret.
// The zero secret is valid: the seeds then only depend on the operating system entropy.
func NewOSSeeder(secret [32]byte) *OSSeeder {
	return &OSSeeder{secret: secret}
}

// Seed returns a fresh seed.
func (s *OSSeeder) Seed() (seed [32]byte) {

	s.mu.Lock()
	s.counter++
	counter := s.counter
	s.mu.Unlock()

	h, err := blake2b.New256(s.secret[:])

	// Sanity check, this error should not happen.
	if err != nil {
		panic(fmt.Errorf("blake2b.New256: %w", err))
	}

	var ctr [8]byte
	binary.LittleEndian.PutUint64(ctr[:], counter)

	entropy := NewSeed()

	h.Write(ctr[:])
	h.Write(entropy[:])

	copy(seed[:], h.Sum(nil))

	return
}

// DeterministicSeeder is a [Seeder] producing a reproducible
// sequence of seeds. It must only be used for testing.
type DeterministicSeeder struct {
	mu     sync.Mutex
	source *Source
}

// NewDeterministicSeeder instantiates a new [DeterministicSeeder] from a seed.
func NewDeterministicSeeder(seed [32]byte) *DeterministicSeeder {
	return &DeterministicSeeder{source: NewSource(seed)}
}

// Seed returns the next seed of the sequence.
func (s *DeterministicSeeder) Seed() [32]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.source.NewSeed()
}
