//go:build !gmp

package sqrt

import (
	"fmt"
	"math/big"

	"github.com/cockroachdb/apd/v3"
)

// isqrtBackend names the integer square root implementation in use.
const isqrtBackend = "math/big"

// floorSqrt returns the exact integer square root of the integer part of a,
// which is floor(sqrt(a)) for any non-negative a.
func floorSqrt(a *apd.Decimal) (*apd.Decimal, error) {
	n, ok := new(big.Int).SetString(integerPart(a), 10)
	if !ok {
		return nil, fmt.Errorf("cannot extract the integer part of %s", a)
	}
	s := new(big.Int).Sqrt(n)
	d, _, err := apd.NewFromString(s.String())
	return d, err
}
