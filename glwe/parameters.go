package glwe

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/google/go-cmp/cmp"

	"github.com/Pro7ech/glwe/noise"
	"github.com/Pro7ech/glwe/ring"
)

// ParametersLiteral is a literal representation of a parameter set of the
// engine. It has public fields and is used to express unchecked user-defined
// parameters literally into Go programs or JSON files.
// The [NewParametersFromLiteral] function is used to generate the actual
// checked parameters from the literal representation.
//
// The noise standard deviations are given as base two logarithms of
// fractions of the torus.
type ParametersLiteral struct {
	LogQ            int
	LWEDimension    int
	GLWEDimension   int
	LogN            int
	LWELogStdDev    float64
	GLWELogStdDev   float64
	PBSBaseLog      int
	PBSLevel        int
	KSBaseLog       int
	KSLevel         int
	KeyDistribution KeyDistribution
}

// Parameters is a checked parameter set of the engine, for a torus of
// LogQ bits, LWE ciphertexts of dimension n, GLWE ciphertexts of dimension k
// over polynomials of N = 2^LogN coefficients, a bootstrapping decomposition
// and a key switching decomposition.
type Parameters struct {
	lit ParametersLiteral
}

// NewParametersFromLiteral instantiates a set of [Parameters] from a [ParametersLiteral]
// description. It returns an error if the parameters are invalid.
func NewParametersFromLiteral(pl ParametersLiteral) (p Parameters, err error) {

	if pl.LogQ != 32 && pl.LogQ != 64 {
		return p, fmt.Errorf("%w: LogQ=%d must be 32 or 64", ErrInvalidParameters, pl.LogQ)
	}

	if pl.LWEDimension <= 0 || pl.GLWEDimension <= 0 {
		return p, fmt.Errorf("%w: LWEDimension=%d and GLWEDimension=%d must be greater than zero", ErrInvalidParameters, pl.LWEDimension, pl.GLWEDimension)
	}

	if pl.LogN < 1 || pl.LogN > 17 {
		return p, fmt.Errorf("%w: LogN=%d must be in [1, 17]", ErrInvalidParameters, pl.LogN)
	}

	if err = checkDecomposition(pl.PBSBaseLog, pl.PBSLevel, pl.LogQ); err != nil {
		return p, fmt.Errorf("bootstrapping: %w", err)
	}

	if err = checkDecomposition(pl.KSBaseLog, pl.KSLevel, pl.LogQ); err != nil {
		return p, fmt.Errorf("key switching: %w", err)
	}

	// The noise is sampled within 6 standard deviations, which must remain below 1/2.
	maxLogStdDev := -math.Log2(12)
	for _, l := range []float64{pl.LWELogStdDev, pl.GLWELogStdDev} {
		if math.IsNaN(l) || l >= maxLogStdDev {
			return p, fmt.Errorf("%w: log standard deviation %f must be smaller than %f", ErrInvalidParameters, l, maxLogStdDev)
		}
	}

	if !pl.KeyDistribution.Sampleable() {
		return p, fmt.Errorf("%w: keys of distribution %s cannot be sampled", ErrInvalidParameters, pl.KeyDistribution)
	}

	return Parameters{lit: pl}, nil
}

// LogQ returns the bit width of the torus.
func (p Parameters) LogQ() int {
	return p.lit.LogQ
}

// LWEDimension returns the dimension n of the LWE secret keys.
func (p Parameters) LWEDimension() int {
	return p.lit.LWEDimension
}

// GLWEDimension returns the dimension k of the GLWE secret keys.
func (p Parameters) GLWEDimension() int {
	return p.lit.GLWEDimension
}

// LogN returns the base two logarithm of the polynomial size.
func (p Parameters) LogN() int {
	return p.lit.LogN
}

// PolynomialSize returns the polynomial size N.
func (p Parameters) PolynomialSize() int {
	return 1 << p.lit.LogN
}

// ExtractedLWEDimension returns the dimension k*N of the LWE ciphertexts
// extracted from GLWE ciphertexts.
func (p Parameters) ExtractedLWEDimension() int {
	return p.GLWEDimension() * p.PolynomialSize()
}

// LWENoise returns the standard deviation of the noise of the LWE encryptions.
func (p Parameters) LWENoise() noise.LogStandardDev {
	return noise.LogStandardDev(p.lit.LWELogStdDev)
}

// GLWENoise returns the standard deviation of the noise of the GLWE encryptions.
func (p Parameters) GLWENoise() noise.LogStandardDev {
	return noise.LogStandardDev(p.lit.GLWELogStdDev)
}

// PBSBaseLog returns the base two logarithm of the bootstrapping decomposition base.
func (p Parameters) PBSBaseLog() int {
	return p.lit.PBSBaseLog
}

// PBSLevel returns the number of levels of the bootstrapping decomposition.
func (p Parameters) PBSLevel() int {
	return p.lit.PBSLevel
}

// KSBaseLog returns the base two logarithm of the key switching decomposition base.
func (p Parameters) KSBaseLog() int {
	return p.lit.KSBaseLog
}

// KSLevel returns the number of levels of the key switching decomposition.
func (p Parameters) KSLevel() int {
	return p.lit.KSLevel
}

// KeyDistribution returns the distribution of the secret keys.
func (p Parameters) KeyDistribution() KeyDistribution {
	return p.lit.KeyDistribution
}

// ParametersLiteral returns the [ParametersLiteral] of the target [Parameters].
func (p Parameters) ParametersLiteral() ParametersLiteral {
	return p.lit
}

// Equal returns true if the receiver and other are the same parameter set.
func (p Parameters) Equal(other *Parameters) bool {
	return cmp.Equal(p.lit, other.lit)
}

// String returns a short description of the parameters.
func (p Parameters) String() string {
	return fmt.Sprintf("LogQ=%d/n=%d/k=%d/logN=%d/%s", p.LogQ(), p.LWEDimension(), p.GLWEDimension(), p.LogN(), p.KeyDistribution())
}

// CheckTorus returns an error if the parameters are not defined for a torus of w bits.
func (p Parameters) CheckTorus(w int) error {
	if p.LogQ() != w {
		return fmt.Errorf("%w: parameters are defined for a torus of %d bits but have %d", ErrInvalidParameters, p.LogQ(), w)
	}
	return nil
}

// MarshalJSON returns a JSON representation of this parameter set. See Marshal from the [encoding/json] package.
func (p Parameters) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.lit)
}

// UnmarshalJSON reads a JSON representation of a parameter set into the receiver Parameter. See Unmarshal from the [encoding/json] package.
func (p *Parameters) UnmarshalJSON(data []byte) (err error) {
	var pl ParametersLiteral
	if err = json.Unmarshal(data, &pl); err != nil {
		return
	}
	*p, err = NewParametersFromLiteral(pl)
	return
}

// CreateSecretKeys samples the LWE and the GLWE secret keys of the parameters.
func (e *Engine[T]) CreateSecretKeys(p Parameters) (lwe *LWESecretKey[T], glwe *GLWESecretKey[T], err error) {

	if err = p.CheckTorus(ring.BitWidth[T]()); err != nil {
		return
	}

	if lwe, err = e.CreateLWESecretKey(p.LWEDimension(), p.KeyDistribution()); err != nil {
		return
	}

	if glwe, err = e.CreateGLWESecretKey(p.GLWEDimension(), p.PolynomialSize(), p.KeyDistribution()); err != nil {
		return
	}

	return
}
