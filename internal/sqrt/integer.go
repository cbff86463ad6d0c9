package sqrt

import (
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// integerPart renders the integer part of a non-negative a in plain
// notation, without exponent or fraction.
func integerPart(a *apd.Decimal) string {
	text := a.Text('f')
	if i := strings.IndexByte(text, '.'); i >= 0 {
		text = text[:i]
	}
	if text == "" || text == "-0" {
		return "0"
	}
	return text
}

// IntegerSqrtBackend reports which library computes exact integer square
// roots in this build ("math/big" or "gmp").
func IntegerSqrtBackend() string {
	return isqrtBackend
}
