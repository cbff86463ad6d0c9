// The cli package provides functions for building a command-line interface (CLI)
// for the square root calculator. It handles the asynchronous display of
// refinement progress and formats the results and the iteration log for a
// clear and readable presentation.
package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/agbru/sqrtcalc/internal/sqrt"
	"github.com/agbru/sqrtcalc/internal/ui"
	"github.com/briandowns/spinner"
)

// FormatExecutionDuration formats a time.Duration for display.
// It shows microseconds for durations less than a millisecond, milliseconds for
// durations less than a second, and the default string representation otherwise.
//
// Parameters:
//   - d: The duration to format.
//
// Returns:
//   - string: A formatted string representing the duration.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

// FormatSeconds renders d in seconds with 16 digits after the decimal point.
func FormatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.16f", d.Seconds())
}

const (
	// LogValueLimit is the number of leading characters of an iteration value
	// shown in the log unless verbose output is requested.
	LogValueLimit = 70
	// ProgressRefreshRate defines the refresh frequency of the progress bar.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Color functions return ANSI escape codes from the current theme.
// They delegate to the ui package to reduce coupling.

// ColorReset returns the reset escape code from the current theme.
func ColorReset() string { return ui.ColorReset() }

// ColorRed returns the error color from the current theme.
func ColorRed() string { return ui.ColorRed() }

// ColorGreen returns the success color from the current theme.
func ColorGreen() string { return ui.ColorGreen() }

// ColorYellow returns the warning color from the current theme.
func ColorYellow() string { return ui.ColorYellow() }

// ColorBlue returns the primary color from the current theme.
func ColorBlue() string { return ui.ColorBlue() }

// ColorMagenta returns the info color from the current theme.
func ColorMagenta() string { return ui.ColorMagenta() }

// ColorCyan returns the secondary color from the current theme.
func ColorCyan() string { return ui.ColorCyan() }

// ColorBold returns the bold escape code from the current theme.
func ColorBold() string { return ui.ColorBold() }

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// This allows for the decoupling of the `DisplayProgress` function from a
// specific spinner implementation.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts `spinner.Spinner` to the `Spinner` interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// ProgressState encapsulates the aggregated progress of concurrent solves.
// It keeps the latest progress of each solver together with its step and
// digit counters, and computes the average used for the consolidated bar.
type ProgressState struct {
	progresses []float64
	latest     []sqrt.ProgressUpdate
	numSolvers int
}

// NewProgressState creates a ProgressState tracking numSolvers solvers.
func NewProgressState(numSolvers int) *ProgressState {
	return &ProgressState{
		progresses: make([]float64, numSolvers),
		latest:     make([]sqrt.ProgressUpdate, numSolvers),
		numSolvers: numSolvers,
	}
}

// Update records a new progress value for a specific solver. Updates for
// indices outside [0, numSolvers) are ignored.
func (ps *ProgressState) Update(index int, value float64) {
	if index >= 0 && index < len(ps.progresses) {
		ps.progresses[index] = value
	}
}

// Record stores the full update and its progress value.
func (ps *ProgressState) Record(update sqrt.ProgressUpdate) {
	if update.CalculatorIndex >= 0 && update.CalculatorIndex < len(ps.latest) {
		ps.latest[update.CalculatorIndex] = update
	}
	ps.Update(update.CalculatorIndex, update.Value)
}

// CalculateAverage computes the average progress across all tracked solvers.
//
// Returns:
//   - float64: The average progress (0.0 to 1.0).
func (ps *ProgressState) CalculateAverage() float64 {
	var totalProgress float64
	for _, p := range ps.progresses {
		totalProgress += p
	}
	if ps.numSolvers == 0 {
		return 0.0
	}
	return totalProgress / float64(ps.numSolvers)
}

// Detail describes the step and digit counters of a single solver, or an
// empty string when several solvers are tracked or no update arrived yet.
func (ps *ProgressState) Detail() string {
	if ps.numSolvers != 1 {
		return ""
	}
	u := ps.latest[0]
	if u.Step == 0 {
		return ""
	}
	return fmt.Sprintf(" step %d/%d, %d/%d digits", u.Step, u.MaxSteps, u.DigitsCorrect, u.TargetDigits)
}

// progressBar generates a string representing a textual progress bar.
//
// Parameters:
//   - progress: The normalized progress value (0.0 to 1.0).
//   - length: The total character width of the progress bar.
//
// Returns:
//   - string: A string representation of the progress bar.
func progressBar(progress float64, length int) string {
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0.0 {
		progress = 0.0
	}
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length * 3)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}

// DisplayProgress manages the asynchronous display of a spinner and progress bar.
// It is designed to run in a dedicated goroutine and orchestrates the UI updates
// for the duration of the solves.
//
// The function's responsibilities include:
//   - Receiving progress updates from a channel.
//   - Aggregating these updates to calculate the average progress.
//   - Periodically refreshing the spinner, the bar and the ETA.
//   - Shutting down when the progress channel is closed.
//
// Parameters:
//   - wg: A WaitGroup to signal when the display routine is complete.
//   - progressChan: The channel receiving progress updates.
//   - numSolvers: The number of solvers contributing to the progress.
//   - out: The io.Writer to which the progress bar is rendered.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan sqrt.ProgressUpdate, numSolvers int, out io.Writer) {
	defer wg.Done()
	if numSolvers <= 0 {
		for range progressChan {
		}
		return
	}

	state := NewProgressWithETA(numSolvers)
	s := newSpinner(spinner.WithWriter(out))
	s.Start()
	spinnerStopped := false
	defer func() {
		if !spinnerStopped {
			s.Stop()
		}
	}()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	label := "Progress"
	if numSolvers > 1 {
		label = "Avg progress"
	}

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				if !spinnerStopped {
					s.Stop()
					spinnerStopped = true
				}
				bar := progressBar(1.0, ProgressBarWidth)
				fmt.Fprintf(out, "%s: %6.2f%% [%s] ETA: %s\n", label, 100.0, bar, "< 1s")
				return
			}
			state.Record(update)
			state.UpdateWithETA(update.CalculatorIndex, update.Value)
		case <-ticker.C:
			avgProgress := state.CalculateAverage()
			bar := progressBar(avgProgress, ProgressBarWidth)
			s.UpdateSuffix(fmt.Sprintf(" %s: %6.2f%% [%s] ETA: %s%s",
				label, avgProgress*100, bar, FormatETA(state.GetETA()), state.Detail()))
		}
	}
}

// DisplayResult prints the final estimate, the elapsed time, the stopping
// state and, when showLog is set, the iteration log.
//
// Parameters:
//   - input: The radicand as typed by the user.
//   - res: The solve result.
//   - duration: The wall-clock time of the solve.
//   - showLog: If true, prints one block per iteration record.
//   - verbose: If true, iteration values are printed in full.
//   - out: The io.Writer for the output.
func DisplayResult(input string, res sqrt.Result, duration time.Duration, showLog, verbose bool, out io.Writer) {
	value := "0"
	if res.Value != nil {
		value = res.Value.String()
	}
	fmt.Fprintf(out, "🌟 Final √%s%s%s ≈ %s%s%s\n", ColorMagenta(), input, ColorReset(), ColorGreen(), value, ColorReset())
	fmt.Fprintf(out, "⏱️ Time taken: %s%s%s seconds\n", ColorYellow(), FormatSeconds(duration), ColorReset())
	fmt.Fprintf(out, "Status: %s\n", FormatStatus(res))

	if !showLog || len(res.Log) == 0 {
		return
	}
	fmt.Fprintf(out, "\n%s🧪 Iteration Log:%s\n\n", ColorBold(), ColorReset())
	FormatIterationLog(out, res.Log, verbose)
}

// FormatStatus describes how the refinement stopped.
func FormatStatus(res sqrt.Result) string {
	digits := 0
	if n := len(res.Log); n > 0 {
		digits = res.Log[n-1].DigitsCorrect
	}
	switch res.State {
	case sqrt.Converged:
		if res.Steps() == 0 {
			return fmt.Sprintf("%sConverged%s (exact, no iteration needed)", ColorGreen(), ColorReset())
		}
		return fmt.Sprintf("%sConverged%s at step %d with %d correct digits",
			ColorGreen(), ColorReset(), res.Steps(), digits)
	case sqrt.Exhausted:
		return fmt.Sprintf("%sExhausted%s after %d steps with %d correct digits",
			ColorYellow(), ColorReset(), res.Steps(), digits)
	default:
		return res.State.String()
	}
}

// FormatIterationLog writes one block per record: the value (cut to
// LogValueLimit characters unless verbose), the absolute error and the
// number of correct digits.
func FormatIterationLog(out io.Writer, log []sqrt.IterationRecord, verbose bool) {
	for _, rec := range log {
		value := rec.Value
		if !verbose {
			value = TruncateValue(value, LogValueLimit)
		}
		fmt.Fprintf(out, "Step %s%d%s: √ ≈ %s\n", ColorCyan(), rec.Step, ColorReset(), value)
		fmt.Fprintf(out, "  Error: %s\n", rec.Error)
		fmt.Fprintf(out, "  Correct Digits: %s%d%s\n\n", ColorGreen(), rec.DigitsCorrect, ColorReset())
	}
}

// TruncateValue keeps the first limit characters of s followed by "...".
// Strings no longer than limit are returned unchanged.
func TruncateValue(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
