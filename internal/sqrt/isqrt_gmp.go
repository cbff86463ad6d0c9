//go:build gmp

// This file swaps the integer square root backend for GMP. Build with
// `go build -tags=gmp`; libgmp must be installed on the system.

package sqrt

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"
	"github.com/ncw/gmp"
)

const isqrtBackend = "gmp"

func floorSqrt(a *apd.Decimal) (*apd.Decimal, error) {
	n, ok := new(gmp.Int).SetString(integerPart(a), 10)
	if !ok {
		return nil, fmt.Errorf("cannot extract the integer part of %s", a)
	}
	s := new(gmp.Int).Sqrt(n)
	d, _, err := apd.NewFromString(s.String())
	return d, err
}
