package glwe

import (
	"encoding/json"
	"fmt"

	"github.com/Pro7ech/glwe/noise"
	"github.com/Pro7ech/glwe/ring"
)

// KeyDistribution is the distribution of the coefficients of a secret key.
// Every ciphertext and key carries the distribution of the key it is tied to
// and operations mixing entities of different distributions are rejected.
type KeyDistribution uint8

const (
	// Binary keys have coefficients uniform in {0, 1}.
	Binary = KeyDistribution(iota)
	// Ternary keys have coefficients uniform in {-1, 0, 1}.
	Ternary
	// TensorProduct keys are the pairwise products of the coefficients of two keys.
	TensorProduct
)

func (d KeyDistribution) String() string {
	switch d {
	case Binary:
		return "Binary"
	case Ternary:
		return "Ternary"
	case TensorProduct:
		return "TensorProduct"
	default:
		return fmt.Sprintf("KeyDistribution(%d)", uint8(d))
	}
}

// Moments returns the first two moments of the coefficients of a key
// of the receiver distribution, as used by the noise model.
// Tensor product keys have no closed form and return the ternary moments
// of the largest supported factor.
func (d KeyDistribution) Moments() noise.KeyMoments {
	switch d {
	case Binary:
		return noise.BinaryKey
	default:
		return noise.TernaryKey
	}
}

// Sampleable returns true if keys of the receiver distribution can be sampled.
func (d KeyDistribution) Sampleable() bool {
	return d == Binary || d == Ternary
}

// parameters returns the [ring.DistributionParameters] used to sample the keys.
func (d KeyDistribution) parameters() (ring.DistributionParameters, error) {
	switch d {
	case Binary:
		return &ring.Binary{}, nil
	case Ternary:
		return &ring.Ternary{}, nil
	default:
		return nil, fmt.Errorf("%w: keys of distribution %s cannot be sampled", ErrInvalidParameters, d)
	}
}

// MarshalJSON encodes the receiver as its name.
func (d KeyDistribution) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a name produced by MarshalJSON on the receiver.
func (d *KeyDistribution) UnmarshalJSON(p []byte) (err error) {

	var s string
	if err = json.Unmarshal(p, &s); err != nil {
		return
	}

	switch s {
	case "Binary":
		*d = Binary
	case "Ternary":
		*d = Ternary
	case "TensorProduct":
		*d = TensorProduct
	default:
		return fmt.Errorf("invalid KeyDistribution: %q", s)
	}

	return
}
