package sqrt

import (
	"errors"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"

	apperrors "github.com/agbru/sqrtcalc/internal/errors"
)

var (
	errNotFinite = errors.New("value is not finite")
	errRange     = errors.New("exponent out of range")
)

// ParseInput converts user text into a finite, non-negative decimal.
// Surrounding whitespace is ignored and a negative zero is normalized to
// zero.
//
// Parameters:
//   - text: The value as typed, in plain or scientific notation.
//
// Returns:
//   - *apd.Decimal: The parsed radicand.
//   - error: A ParseError for empty, malformed, NaN or infinite input, a
//     DomainError for negative values, or an ArithmeticError when the
//     adjusted exponent exceeds ±MaxAdjustedExponent.
func ParseInput(text string) (*apd.Decimal, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, apperrors.ParseError{Input: text, Cause: errors.New("empty input")}
	}

	if exponentOutOfRange(trimmed) {
		return nil, apperrors.ArithmeticError{Op: "parse", Cause: errRange}
	}

	dc := apd.BaseContext
	dc.Traps = 0
	d, cond, err := dc.NewFromString(trimmed)
	if err != nil {
		if strings.Contains(err.Error(), errRange.Error()) {
			return nil, apperrors.ArithmeticError{Op: "parse", Cause: errRange}
		}
		return nil, apperrors.ParseError{Input: trimmed, Cause: err}
	}
	if cond&(apd.Overflow|apd.Underflow|apd.SystemOverflow|apd.SystemUnderflow) != 0 {
		return nil, apperrors.ArithmeticError{Op: "parse", Cause: errRange}
	}
	if d.Form != apd.Finite {
		return nil, apperrors.ParseError{Input: trimmed, Cause: errNotFinite}
	}

	if d.IsZero() {
		d.Negative = false
		return d, nil
	}
	if d.Negative {
		return nil, apperrors.DomainError{Input: trimmed}
	}

	if adj := adjustedExponent(d); adj > MaxAdjustedExponent || adj < -MaxAdjustedExponent {
		return nil, apperrors.ArithmeticError{Op: "parse", Cause: errRange}
	}
	return d, nil
}

// exponentOutOfRange reports whether a well-formed scientific literal has an
// exponent so large that no mantissa can bring it back within
// ±MaxAdjustedExponent. Such literals are rejected before the decimal
// library sees them.
func exponentOutOfRange(s string) bool {
	i := strings.IndexAny(s, "eE")
	if i <= 0 {
		return false
	}
	mantissa := strings.TrimLeft(s[:i], "+-")
	if !strings.ContainsAny(mantissa, "0123456789") || strings.Trim(mantissa, "0123456789.") != "" || strings.Count(mantissa, ".") > 1 {
		return false
	}
	exp, err := strconv.ParseInt(s[i+1:], 10, 64)
	if err != nil {
		return errors.Is(err, strconv.ErrRange)
	}
	if exp < 0 {
		exp = -exp
	}
	return exp > MaxAdjustedExponent+int64(len(mantissa))
}

// adjustedExponent is the exponent of d written with a single leading digit.
func adjustedExponent(d *apd.Decimal) int64 {
	return d.NumDigits() + int64(d.Exponent) - 1
}
