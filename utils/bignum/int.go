package bignum

import (
	"fmt"
	"math/big"
)

// NewInt allocates a new *big.Int.
// Accepted types are: string, uint, uint64, uint32, int64, int32, int, *big.Float or *big.Int.
func NewInt(x interface{}) (y *big.Int) {

	y = new(big.Int)

	if x == nil {
		return
	}

	switch x := x.(type) {
	case string:
		y.SetString(x, 0)
	case uint:
		y.SetUint64(uint64(x))
	case uint64:
		y.SetUint64(x)
	case uint32:
		y.SetUint64(uint64(x))
	case int64:
		y.SetInt64(x)
	case int32:
		y.SetInt64(int64(x))
	case int:
		y.SetInt64(int64(x))
	case *big.Float:
		x.Int(y)
	case *big.Int:
		y.Set(x)
	default:
		panic(fmt.Sprintf("cannot Newint: accepted types are string, uint, uint64, uint32, int, int64, int32, *big.Float, *big.Int, but is %T", x))
	}

	return
}

// Stats returns the base two logarithm of the standard deviation
// and the mean of values, computed with prec bits of precision.
func Stats(values []big.Int, prec uint) [2]float64 {

	N := len(values)

	mean := NewFloat(0, prec)
	tmp := NewFloat(0, prec)

	for i := 0; i < N; i++ {
		mean.Add(mean, tmp.SetInt(&values[i]))
	}

	mean.Quo(mean, NewFloat(N, prec))

	variance := NewFloat(0, prec)

	for i := 0; i < N; i++ {
		tmp.SetInt(&values[i])
		tmp.Sub(tmp, mean)
		tmp.Mul(tmp, tmp)
		variance.Add(variance, tmp)
	}

	variance.Quo(variance, NewFloat(N-1, prec))

	// log2(std) = log2(variance)/2
	logStd, _ := Log2(variance).Float64()
	meanF64, _ := mean.Float64()

	return [2]float64{logStd / 2, meanF64}
}
