package sqrt

import (
	"context"

	"github.com/cockroachdb/apd/v3"

	apperrors "github.com/agbru/sqrtcalc/internal/errors"
)

// State is the lifecycle position of a refinement.
type State int

const (
	// Iterating means the stopping test has not been met yet.
	Iterating State = iota
	// Converged means the target digit count was reached.
	Converged
	// Exhausted means the step budget ran out first.
	Exhausted
)

// String returns the lower-case name of the state.
func (s State) String() string {
	switch s {
	case Iterating:
		return "iterating"
	case Converged:
		return "converged"
	case Exhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// IterationRecord is the telemetry of one refinement step. Records are
// immutable once appended to a log.
type IterationRecord struct {
	// Step is the 1-based step number.
	Step int
	// Value is the approximation at this step, in scientific notation.
	Value string
	// Error is |Value - reference|, in scientific notation.
	Error string
	// DigitsCorrect is the count of correct leading digits.
	DigitsCorrect int
}

// Result is the outcome of a computation. It belongs to the caller.
type Result struct {
	// Value is the final approximation of sqrt(a).
	Value *apd.Decimal
	// Reference is the correctly rounded root used for diagnostics. It is
	// nil when no refinement took place.
	Reference *apd.Decimal
	// Log holds one record per step, in step order.
	Log []IterationRecord
	// State is Converged or Exhausted.
	State State
}

// Steps returns the number of iteration records.
func (r Result) Steps() int { return len(r.Log) }

// Refiner runs Newton iterations x ← (x + a/x)/2 under a fixed precision.
type Refiner struct {
	Precision Precision
}

// NewRefiner creates a refiner for p.
func NewRefiner(p Precision) *Refiner {
	return &Refiner{Precision: p}
}

// Refine iterates from x0 until the latest record has at least TargetDigits
// correct digits (or matches the reference exactly) or MaxSteps records have
// been produced. When the budget runs out, the update following the last
// record is still applied and its value is returned.
//
// Parameters:
//   - ctx: Checked before every step; cancellation aborts the refinement.
//   - a: The positive radicand. It is not modified.
//   - x0: The initial guess. It is not modified.
//   - reporter: Receives normalized progress after each step. May be nil.
//
// Returns:
//   - Result: The final value, the iteration log and the stopping state.
//   - error: A CalculationError wrapping ctx.Err(), or an ArithmeticError.
func (r *Refiner) Refine(ctx context.Context, a, x0 *apd.Decimal, reporter ProgressReporter) (Result, error) {
	p := r.Precision
	c := &arith{dc: p.Context()}

	reference := c.sqrt(a)
	if c.err != nil {
		return Result{}, c.err
	}
	refText := reference.String()

	x := new(apd.Decimal).Set(x0)
	log := make([]IterationRecord, 0, min(p.MaxSteps, 64))
	state := Iterating

	for step := 1; step <= p.MaxSteps; step++ {
		if err := ctx.Err(); err != nil {
			return Result{}, apperrors.CalculationError{Cause: err}
		}

		diff := c.abs(c.sub(x, reference))
		if c.err != nil {
			return Result{}, c.err
		}
		digits := CorrectDigits(x.String(), refText)
		log = append(log, IterationRecord{
			Step:          step,
			Value:         x.String(),
			Error:         diff.String(),
			DigitsCorrect: digits,
		})
		if reporter != nil {
			reporter(newProgressUpdate(step, digits, p))
		}

		if digits >= p.TargetDigits || diff.IsZero() {
			state = Converged
			break
		}

		x = c.newtonStep(a, x)
		if c.err != nil {
			return Result{}, c.err
		}
	}

	if state != Converged {
		state = Exhausted
	}
	return Result{Value: x, Reference: reference, Log: log, State: state}, nil
}
