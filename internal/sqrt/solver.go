package sqrt

import (
	"context"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	apperrors "github.com/agbru/sqrtcalc/internal/errors"
)

// Solver is the abstraction used by the orchestration layer to compute a
// square root with a given initial-guess strategy.
type Solver interface {
	// Solve computes sqrt(a) under p. It is safe for concurrent use with
	// distinct inputs, honors ctx cancellation between steps, and sends
	// progress updates to progressChan without blocking.
	//
	// Parameters:
	//   - ctx: The context for managing cancellation and deadlines.
	//   - progressChan: The channel for progress updates (may be nil).
	//   - calcIndex: An index identifying this solver among concurrent ones.
	//   - a: The non-negative radicand. It is not modified.
	//   - p: The precision of the computation.
	//
	// Returns:
	//   - Result: The final value and its iteration log.
	//   - error: A ValidationError, ArithmeticError or CalculationError.
	Solve(ctx context.Context, progressChan chan<- ProgressUpdate, calcIndex int, a *apd.Decimal, p Precision) (Result, error)

	// Name returns the name of the initial-guess strategy.
	Name() string
}

// NewtonSolver decorates an Estimator with validation, the zero shortcut,
// the refinement loop and the cross-cutting concerns (tracing, metrics,
// logging).
type NewtonSolver struct {
	estimator Estimator
}

// NewSolver wraps est. It panics if est is nil.
func NewSolver(est Estimator) *NewtonSolver {
	if est == nil {
		panic("sqrt: the estimator cannot be nil")
	}
	return &NewtonSolver{estimator: est}
}

// Name returns the estimator name.
func (s *NewtonSolver) Name() string {
	return s.estimator.Name()
}

// progressLogThreshold is the progress change between two debug lines.
const progressLogThreshold = 0.25

// Solve implements Solver on top of SolveWithObservers. Besides progressChan,
// progress goes to the debug log and to the Prometheus gauges.
func (s *NewtonSolver) Solve(ctx context.Context, progressChan chan<- ProgressUpdate, calcIndex int, a *apd.Decimal, p Precision) (Result, error) {
	subject := NewProgressSubject()
	if progressChan != nil {
		subject.Register(NewChannelObserver(progressChan))
	}
	subject.Register(NewLoggingObserver(log.Logger, progressLogThreshold))
	subject.Register(NewMetricsObserver())
	return s.SolveWithObservers(ctx, subject, calcIndex, a, p)
}

// SolveWithObservers runs the computation and notifies every observer of
// subject after each step. A nil subject disables progress reporting.
func (s *NewtonSolver) SolveWithObservers(ctx context.Context, subject *ProgressSubject, calcIndex int, a *apd.Decimal, p Precision) (res Result, err error) {
	ctx, span := otel.Tracer("sqrt").Start(ctx, "Solve")
	defer span.End()

	start := time.Now()
	defer func() {
		duration := time.Since(start).Seconds()
		status := solveStatus(res, err)
		name := s.estimator.Name()
		solvesTotal.WithLabelValues(name, status).Inc()
		solveDuration.WithLabelValues(name).Observe(duration)
		solveSteps.WithLabelValues(name).Observe(float64(res.Steps()))

		span.SetAttributes(
			attribute.String("sqrt.estimator", name),
			attribute.Int("sqrt.digits", p.Digits),
			attribute.Int("sqrt.steps", res.Steps()),
			attribute.String("sqrt.status", status),
		)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}

		log.Debug().
			Str("estimator", name).
			Int("digits", p.Digits).
			Int("steps", res.Steps()).
			Float64("duration", duration).
			Str("status", status).
			Msg("square root computed")
	}()

	var reporter ProgressReporter
	if subject != nil {
		reporter = subject.AsProgressReporter(calcIndex)
	}

	if err := p.Validate(); err != nil {
		return Result{}, err
	}
	if a == nil || a.Form != apd.Finite {
		return Result{}, apperrors.ParseError{Input: decimalText(a)}
	}
	if a.Negative && !a.IsZero() {
		return Result{}, apperrors.DomainError{Input: a.String()}
	}
	if a.IsZero() {
		if reporter != nil {
			reporter(completedUpdate(p))
		}
		return Result{Value: new(apd.Decimal), State: Converged}, nil
	}

	dc := p.Context()
	x0, err := s.estimator.Estimate(dc, a)
	if err != nil {
		return Result{}, err
	}
	return NewRefiner(p).Refine(ctx, a, x0, reporter)
}

func decimalText(d *apd.Decimal) string {
	if d == nil {
		return "<nil>"
	}
	return d.String()
}
