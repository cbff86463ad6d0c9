// Package orchestration runs one or more square root solvers concurrently,
// drives the progress display and reports how their results compare.
package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/cockroachdb/apd/v3"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/sqrtcalc/internal/cli"
	apperrors "github.com/agbru/sqrtcalc/internal/errors"
	"github.com/agbru/sqrtcalc/internal/sqrt"
	"github.com/agbru/sqrtcalc/internal/ui"
)

// SolveResult encapsulates the outcome of a single solver run.
type SolveResult struct {
	// Name is the estimator name of the solver.
	Name string
	// Result holds the value and the iteration log. It is the zero Result
	// if an error occurred.
	Result sqrt.Result
	// Duration is the wall-clock time of the run.
	Duration time.Duration
	// Err contains any error that occurred during the run.
	Err error
}

// ProgressBufferMultiplier defines the buffer size multiplier for the progress
// channel. A larger buffer reduces the likelihood of blocking solver
// goroutines when the UI is slow to consume updates.
const ProgressBufferMultiplier = 5

// ExecuteSolves runs every solver on its own copy of a, concurrently, and
// collects their results in solver order.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - solvers: The solvers to execute.
//   - a: The radicand. It is never modified.
//   - p: The numeric context shared by all runs.
//   - out: The io.Writer for displaying progress updates.
//
// Returns:
//   - []SolveResult: One result per solver, in the order of solvers.
func ExecuteSolves(ctx context.Context, solvers []sqrt.Solver, a *apd.Decimal, p sqrt.Precision, out io.Writer) []SolveResult {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]SolveResult, len(solvers))
	progressChan := make(chan sqrt.ProgressUpdate, len(solvers)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go cli.DisplayProgress(&displayWg, progressChan, len(solvers), out)

	for i, s := range solvers {
		idx, solver := i, s
		input := new(apd.Decimal).Set(a)
		g.Go(func() error {
			startTime := time.Now()
			res, err := solver.Solve(ctx, progressChan, idx, input, p)
			results[idx] = SolveResult{
				Name: solver.Name(), Result: res, Duration: time.Since(startTime), Err: err,
			}
			return nil
		})
	}

	g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// BestResult returns the fastest successful result, or nil if every run
// failed.
func BestResult(results []SolveResult) *SolveResult {
	var best *SolveResult
	for i := range results {
		if results[i].Err != nil {
			continue
		}
		if best == nil || results[i].Duration < best.Duration {
			best = &results[i]
		}
	}
	return best
}

// AnalyzeSingleResult reports the outcome of a single run: the result and
// its log on success, a categorized error message otherwise.
func AnalyzeSingleResult(res SolveResult, input string, showLog, verbose bool, out io.Writer) int {
	if res.Err != nil {
		return apperrors.HandleCalculationError(res.Err, res.Duration, out, cli.CLIColorProvider{})
	}
	cli.DisplayResult(input, res.Result, res.Duration, showLog, verbose, out)
	return apperrors.ExitSuccess
}

// AnalyzeComparisonResults processes the results of several estimators and
// prints a summary report.
//
// Results are sorted in place, successes first and then by duration. Every
// successful value must agree with the fastest one to
// sqrt.AgreementDigits(p) significant digits; the initial guess is the only
// thing that differs between estimators, so any larger disagreement is
// reported as a mismatch.
//
// Parameters:
//   - results: The results to analyze.
//   - input: The radicand as typed by the user.
//   - p: The numeric context of the runs.
//   - showLog: If true, the iteration log of the fastest run is printed.
//   - verbose: If true, log values are printed in full.
//   - out: The io.Writer for the summary report.
//
// Returns:
//   - int: An exit code indicating success (0) or the type of failure.
func AnalyzeComparisonResults(results []SolveResult, input string, p sqrt.Precision, showLog, verbose bool, out io.Writer) int {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var firstValid *SolveResult
	var firstError error
	successCount := 0

	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "%sEstimator%s\t%sSteps%s\t%sDuration%s\t%sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset(),
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset())

	for i := range results {
		res := &results[i]
		var status, steps string
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
			steps = "-"
			if firstError == nil {
				firstError = res.Err
			}
		} else {
			status = statusCell(res.Result)
			steps = fmt.Sprintf("%d", res.Result.Steps())
			successCount++
			if firstValid == nil {
				firstValid = res
			}
		}
		duration := cli.FormatExecutionDuration(res.Duration)
		if res.Duration == 0 {
			duration = "< 1µs"
		}
		fmt.Fprintf(tw, "%s%s%s\t%s\t%s%s%s\t%s\n",
			ui.ColorBlue(), res.Name, ui.ColorReset(),
			steps,
			ui.ColorYellow(), duration, ui.ColorReset(),
			status)
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(out, "Warning: failed to flush tabwriter: %v\n", err)
	}

	if successCount == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No estimator could complete the computation.\n")
		return apperrors.HandleCalculationError(firstError, 0, out, cli.CLIColorProvider{})
	}

	digits := sqrt.AgreementDigits(p)
	if !resultsAgree(results, firstValid.Result.Value, p, digits) {
		fmt.Fprintf(out, "\nGlobal Status: %sCRITICAL ERROR!%s An inconsistency was detected between the results of the estimators.\n",
			ui.ColorRed(), ui.ColorReset())
		return apperrors.ExitErrorMismatch
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All valid results agree to %d significant digits.\n\n", digits)
	cli.DisplayResult(input, firstValid.Result, firstValid.Duration, showLog, verbose, out)
	return apperrors.ExitSuccess
}

func statusCell(res sqrt.Result) string {
	if res.State == sqrt.Exhausted {
		return fmt.Sprintf("%s⚠️ Exhausted%s", ui.ColorYellow(), ui.ColorReset())
	}
	return fmt.Sprintf("%s✅ Converged%s", ui.ColorGreen(), ui.ColorReset())
}

// resultsAgree compares every successful value with ref.
func resultsAgree(results []SolveResult, ref *apd.Decimal, p sqrt.Precision, digits int) bool {
	ref = orZero(ref)
	dc := p.Context()
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		ok, err := sqrt.Agree(dc, orZero(res.Result.Value), ref, digits)
		if err != nil || !ok {
			return false
		}
	}
	return true
}

func orZero(d *apd.Decimal) *apd.Decimal {
	if d == nil {
		return new(apd.Decimal)
	}
	return d
}
