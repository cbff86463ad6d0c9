package sqrt

import (
	"math"

	"github.com/cockroachdb/apd/v3"

	apperrors "github.com/agbru/sqrtcalc/internal/errors"
)

// Estimator produces the starting point of the Newton refinement.
type Estimator interface {
	// Estimate returns an initial approximation of sqrt(a) computed under
	// dc. The caller guarantees a > 0.
	Estimate(dc *apd.Context, a *apd.Decimal) (*apd.Decimal, error)

	// Name returns the registry key of the estimator.
	Name() string
}

// HybridEstimator anchors the guess on the largest perfect square
// b = s² ≤ a and combines the arithmetic and harmonic means of a and b:
//
//	x0 = ((a+b)/4 + ab/(a+b)) / s
//
// When a < 1, s is zero and the anchor degenerates to b = s = 1.
type HybridEstimator struct{}

// Name returns "hybrid".
func (HybridEstimator) Name() string { return "hybrid" }

// Estimate implements Estimator.
func (HybridEstimator) Estimate(dc *apd.Context, a *apd.Decimal) (*apd.Decimal, error) {
	s, err := floorSqrt(a)
	if err != nil {
		return nil, apperrors.NewArithmeticError("isqrt", err)
	}
	if s.IsZero() {
		s = apd.New(1, 0)
	}

	// b is computed exactly: the context is wide enough for every digit of s².
	exact := &arith{dc: apd.BaseContext.WithPrecision(uint32(2*s.NumDigits() + 1))}
	b := exact.mul(s, s)
	if exact.err != nil {
		return nil, exact.err
	}

	c := &arith{dc: dc}
	sum := c.add(a, b)
	numerator := c.add(c.quo(sum, decimalFour), c.quo(c.mul(a, b), sum))
	x0 := c.quo(numerator, s)
	if c.err != nil {
		return nil, c.err
	}
	return x0, nil
}

// NaiveEstimator starts the refinement from a itself.
type NaiveEstimator struct{}

// Name returns "naive".
func (NaiveEstimator) Name() string { return "naive" }

// Estimate implements Estimator.
func (NaiveEstimator) Estimate(dc *apd.Context, a *apd.Decimal) (*apd.Decimal, error) {
	x0 := new(apd.Decimal)
	if _, err := dc.Round(x0, a); err != nil {
		return nil, apperrors.NewArithmeticError("round", err)
	}
	return x0, nil
}

// FloatSeedEstimator writes a = c·10^(2k) with c in [1, 100), takes the
// float64 square root of c and scales it back by 10^k. The seed carries
// about sixteen correct digits regardless of the magnitude of a.
type FloatSeedEstimator struct{}

// Name returns "float".
func (FloatSeedEstimator) Name() string { return "float" }

// Estimate implements Estimator.
func (FloatSeedEstimator) Estimate(dc *apd.Context, a *apd.Decimal) (*apd.Decimal, error) {
	k := floorDiv(adjustedExponent(a), 2)

	var c apd.Decimal
	c.Set(a)
	c.Exponent -= int32(2 * k)

	f, err := c.Float64()
	if err != nil {
		return nil, apperrors.NewArithmeticError("float64", err)
	}
	x0, err := new(apd.Decimal).SetFloat64(math.Sqrt(f))
	if err != nil {
		return nil, apperrors.NewArithmeticError("float64", err)
	}
	x0.Exponent += int32(k)
	return x0, nil
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
