// Package service exposes square root computation behind an interface used
// by the interactive front end. It validates the request, caches recent
// results and stamps every computation with a run identifier.
package service

//go:generate mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	apperrors "github.com/agbru/sqrtcalc/internal/errors"
	"github.com/agbru/sqrtcalc/internal/logging"
	"github.com/agbru/sqrtcalc/internal/sqrt"
)

// ErrPrecisionTooLarge is returned when the requested digits exceed the
// service limit.
var ErrPrecisionTooLarge = errors.New("precision exceeds the configured maximum")

// Computation is the outcome of a successful Compute call.
type Computation struct {
	// RunID identifies this call in logs and reports.
	RunID string
	// Input is the canonical text of the parsed radicand.
	Input string
	// Estimator is the name of the solver used.
	Estimator string
	// Precision is the numeric context of the computation.
	Precision sqrt.Precision
	// Result is owned by the caller.
	Result sqrt.Result
	// Duration is the wall-clock time of the original solve.
	Duration time.Duration
	// Cached reports whether the result was served from the cache.
	Cached bool
}

// Service defines the interface for square root computation services.
type Service interface {
	// Compute parses input and runs the named estimator under p.
	Compute(ctx context.Context, estimator, input string, p sqrt.Precision) (Computation, error)
	// Estimators returns the sorted names of the available estimators.
	Estimators() []string
}

type cacheKey struct {
	estimator string
	input     string
	precision sqrt.Precision
}

// SqrtService implements Service on top of a SolverFactory.
type SqrtService struct {
	factory   sqrt.SolverFactory
	cache     *lru.Cache[cacheKey, Computation]
	maxDigits int
	logger    logging.Logger
}

// Ensure SqrtService implements Service interface.
var _ Service = (*SqrtService)(nil)

// NewSqrtService creates a service.
//
// Parameters:
//   - factory: The factory to retrieve solvers from.
//   - cacheSize: The number of results kept, 0 disables caching.
//   - maxDigits: The largest accepted precision, 0 for sqrt.MaxDigits.
//   - logger: Destination of diagnostic events, nil for none.
func NewSqrtService(factory sqrt.SolverFactory, cacheSize, maxDigits int, logger logging.Logger) (*SqrtService, error) {
	if maxDigits <= 0 || maxDigits > sqrt.MaxDigits {
		maxDigits = sqrt.MaxDigits
	}
	if logger == nil {
		logger = logging.Nop()
	}
	s := &SqrtService{factory: factory, maxDigits: maxDigits, logger: logger}
	if cacheSize > 0 {
		cache, err := lru.New[cacheKey, Computation](cacheSize)
		if err != nil {
			return nil, fmt.Errorf("creating result cache: %w", err)
		}
		s.cache = cache
	}
	return s, nil
}

// Estimators returns the sorted names registered in the factory.
func (s *SqrtService) Estimators() []string {
	names := s.factory.List()
	slices.Sort(names)
	return names
}

// Compute validates the precision, parses input and runs the solver. Results
// of successful computations are cached by estimator, canonical input and
// precision; the caller always receives its own copy.
//
// Parameters:
//   - ctx: The context for cancellation and deadlines.
//   - estimator: The registered estimator name.
//   - input: The radicand as typed.
//   - p: The numeric context of the run.
//
// Returns:
//   - Computation: The result with its run id and cache status.
//   - error: ErrPrecisionTooLarge, a validation, input or estimator error,
//     or the solver's error.
func (s *SqrtService) Compute(ctx context.Context, estimator, input string, p sqrt.Precision) (Computation, error) {
	if p.Digits > s.maxDigits {
		return Computation{}, fmt.Errorf("%w: %d > %d", ErrPrecisionTooLarge, p.Digits, s.maxDigits)
	}
	if err := p.Validate(); err != nil {
		return Computation{}, err
	}
	a, err := sqrt.ParseInput(input)
	if err != nil {
		return Computation{}, err
	}
	solver, err := s.factory.Get(estimator)
	if err != nil {
		return Computation{}, apperrors.WrapError(err, "selecting estimator")
	}

	runID := uuid.NewString()
	key := cacheKey{estimator: estimator, input: a.String(), precision: p}
	if s.cache != nil {
		if hit, ok := s.cache.Get(key); ok {
			s.logger.Debug("computation served from cache",
				logging.String("run_id", runID),
				logging.String("estimator", estimator),
				logging.String("input", key.input))
			hit.RunID = runID
			hit.Result = cloneResult(hit.Result)
			hit.Cached = true
			return hit, nil
		}
	}

	start := time.Now()
	res, err := solver.Solve(ctx, nil, 0, a, p)
	duration := time.Since(start)
	if err != nil {
		s.logger.Debug("computation failed",
			logging.String("run_id", runID),
			logging.String("estimator", estimator),
			logging.Bool("interrupted", apperrors.IsContextError(err)),
			logging.String("error", err.Error()))
		return Computation{}, err
	}

	c := Computation{
		RunID:     runID,
		Input:     key.input,
		Estimator: solver.Name(),
		Precision: p,
		Result:    res,
		Duration:  duration,
	}
	if s.cache != nil {
		stored := c
		stored.Result = cloneResult(res)
		s.cache.Add(key, stored)
	}
	s.logger.Debug("computation finished",
		logging.String("run_id", runID),
		logging.String("estimator", c.Estimator),
		logging.Int("steps", res.Steps()),
		logging.String("state", res.State.String()),
		logging.Duration("duration", duration))
	return c, nil
}

// CacheLen returns the number of cached results.
func (s *SqrtService) CacheLen() int {
	if s.cache == nil {
		return 0
	}
	return s.cache.Len()
}

func cloneResult(r sqrt.Result) sqrt.Result {
	return sqrt.Result{
		Value:     cloneDecimal(r.Value),
		Reference: cloneDecimal(r.Reference),
		Log:       slices.Clone(r.Log),
		State:     r.State,
	}
}

func cloneDecimal(d *apd.Decimal) *apd.Decimal {
	if d == nil {
		return nil
	}
	return new(apd.Decimal).Set(d)
}
