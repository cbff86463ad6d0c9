package sqrt

import (
	"github.com/cockroachdb/apd/v3"

	apperrors "github.com/agbru/sqrtcalc/internal/errors"
)

var (
	decimalTwo  = apd.New(2, 0)
	decimalFour = apd.New(4, 0)
)

// arith runs decimal operations under one context and keeps the first
// failure. Once an operation has failed, the following ones are skipped and
// return zero, so a chain of operations needs a single error check.
type arith struct {
	dc  *apd.Context
	err error
}

type binaryOp func(d, x, y *apd.Decimal) (apd.Condition, error)

func (c *arith) apply(op string, fn binaryOp, x, y *apd.Decimal) *apd.Decimal {
	d := new(apd.Decimal)
	if c.err != nil {
		return d
	}
	if _, err := fn(d, x, y); err != nil {
		c.err = apperrors.NewArithmeticError(op, err)
	}
	return d
}

func (c *arith) add(x, y *apd.Decimal) *apd.Decimal { return c.apply("add", c.dc.Add, x, y) }
func (c *arith) sub(x, y *apd.Decimal) *apd.Decimal { return c.apply("sub", c.dc.Sub, x, y) }
func (c *arith) mul(x, y *apd.Decimal) *apd.Decimal { return c.apply("mul", c.dc.Mul, x, y) }
func (c *arith) quo(x, y *apd.Decimal) *apd.Decimal { return c.apply("quo", c.dc.Quo, x, y) }

func (c *arith) abs(x *apd.Decimal) *apd.Decimal {
	d := new(apd.Decimal)
	if c.err != nil {
		return d
	}
	if _, err := c.dc.Abs(d, x); err != nil {
		c.err = apperrors.NewArithmeticError("abs", err)
	}
	return d
}

func (c *arith) sqrt(x *apd.Decimal) *apd.Decimal {
	d := new(apd.Decimal)
	if c.err != nil {
		return d
	}
	if _, err := c.dc.Sqrt(d, x); err != nil {
		c.err = apperrors.NewArithmeticError("sqrt", err)
	}
	return d
}

// newtonStep returns (x + a/x) / 2.
func (c *arith) newtonStep(a, x *apd.Decimal) *apd.Decimal {
	return c.quo(c.add(x, c.quo(a, x)), decimalTwo)
}
