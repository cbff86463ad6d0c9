package sqrt

import "github.com/cockroachdb/apd/v3"

// Agree reports whether x and y agree to the given number of significant
// digits, that is |x - y| ≤ 10^(e - digits + 1) where e is the adjusted
// exponent of y. Two zeros always agree.
func Agree(dc *apd.Context, x, y *apd.Decimal, digits int) (bool, error) {
	c := &arith{dc: dc}
	diff := c.abs(c.sub(x, y))
	if c.err != nil {
		return false, c.err
	}
	if diff.IsZero() {
		return true, nil
	}
	if y.IsZero() {
		return false, nil
	}
	tolerance := apd.New(1, int32(adjustedExponent(y)-int64(digits)+1))
	return diff.Cmp(tolerance) <= 0, nil
}

// AgreementDigits is the number of significant digits two results computed
// under p must share to be considered consistent. The last two digits of the
// working precision are left to rounding noise, and a converged run only
// guarantees TargetDigits correct digits.
func AgreementDigits(p Precision) int {
	return max(1, min(p.Digits-2, p.TargetDigits-1))
}
