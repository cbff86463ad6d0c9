package sqrt

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	solvesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sqrt_solves_total",
			Help: "The total number of square root computations processed",
		},
		[]string{"estimator", "status"},
	)
	solveDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "sqrt_solve_duration_seconds",
			Help: "The duration of square root computations in seconds",
		},
		[]string{"estimator"},
	)
	solveSteps = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sqrt_solve_steps",
			Help:    "The number of Newton steps recorded per computation",
			Buckets: []float64{1, 2, 4, 8, 16, 32, 64, 128, 256},
		},
		[]string{"estimator"},
	)
)

// solveStatus is the status label of a finished computation.
func solveStatus(res Result, err error) string {
	switch {
	case err != nil:
		return "error"
	case res.State == Exhausted:
		return "exhausted"
	default:
		return "converged"
	}
}
