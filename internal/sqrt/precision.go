// Package sqrt computes high-precision square roots of decimal numbers. A
// hybrid initial guess anchored on the nearest lower perfect square is refined
// by Newton iterations under a fixed decimal precision, and every step is
// measured against a correctly rounded reference root.
package sqrt

import (
	"github.com/cockroachdb/apd/v3"

	apperrors "github.com/agbru/sqrtcalc/internal/errors"
)

const (
	// DefaultDigits is the default number of significant decimal digits.
	DefaultDigits = 200
	// DefaultMaxSteps is the default iteration budget.
	DefaultMaxSteps = 200
	// DefaultTargetDigits is the default number of correct digits requested.
	DefaultTargetDigits = 200

	// MaxDigits bounds the working precision accepted by Validate.
	MaxDigits = 50_000

	// MaxAdjustedExponent bounds the magnitude of accepted inputs. Values
	// whose adjusted exponent falls outside ±MaxAdjustedExponent are
	// rejected with an ArithmeticError. Together with MaxDigits it keeps
	// a·b, a/x and |x - reference| inside the exponent range of apd.
	MaxAdjustedExponent = 40_000
)

// Precision is the numeric context of a single computation. It is passed by
// value to every solve and never stored globally.
type Precision struct {
	// Digits is the number of significant decimal digits used by every
	// arithmetic operation.
	Digits int
	// MaxSteps is the maximum number of iteration records produced.
	MaxSteps int
	// TargetDigits is the number of correct leading digits at which the
	// refinement stops.
	TargetDigits int
}

// DefaultPrecision returns the default 200/200/200 precision.
func DefaultPrecision() Precision {
	return Precision{
		Digits:       DefaultDigits,
		MaxSteps:     DefaultMaxSteps,
		TargetDigits: DefaultTargetDigits,
	}
}

// Validate reports a ValidationError when a field is out of range.
func (p Precision) Validate() error {
	switch {
	case p.Digits <= 0:
		return apperrors.NewValidationError("digits", "must be strictly positive", p.Digits)
	case p.Digits > MaxDigits:
		return apperrors.NewValidationError("digits", "exceeds the supported maximum", p.Digits)
	case p.MaxSteps <= 0:
		return apperrors.NewValidationError("max-steps", "must be strictly positive", p.MaxSteps)
	case p.TargetDigits <= 0:
		return apperrors.NewValidationError("target-digits", "must be strictly positive", p.TargetDigits)
	}
	return nil
}

// Context builds the decimal context for p: banker's rounding, the full
// exponent range of apd and its default set of trapped conditions.
func (p Precision) Context() *apd.Context {
	dc := apd.BaseContext.WithPrecision(uint32(p.Digits))
	dc.Rounding = apd.RoundHalfEven
	dc.MaxExponent = apd.MaxExponent
	dc.MinExponent = apd.MinExponent
	dc.Traps = apd.DefaultTraps
	return dc
}
