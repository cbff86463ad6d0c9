package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/sqrtcalc/internal/sqrt"
	"github.com/agbru/sqrtcalc/pkg/models"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// Quiet mode prints only the final value.
	Quiet bool
	// Verbose prints iteration values in full.
	Verbose bool
	// ShowLog prints the iteration log after the result.
	ShowLog bool
}

// Run bundles what is known about one finished computation.
type Run struct {
	RunID     string
	Input     string
	Estimator string
	Precision sqrt.Precision
	Result    sqrt.Result
	Duration  time.Duration
	Err       error
}

// WriteResultToFile writes a result, preceded by a commented header and
// followed by the untruncated iteration log, to config.OutputFile.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteResultToFile(run Run, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	res := run.Result
	fmt.Fprintf(file, "# Square Root Computation Result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	if run.RunID != "" {
		fmt.Fprintf(file, "# Run: %s\n", run.RunID)
	}
	fmt.Fprintf(file, "# Estimator: %s\n", run.Estimator)
	fmt.Fprintf(file, "# Duration: %s seconds\n", FormatSeconds(run.Duration))
	fmt.Fprintf(file, "# Precision: %d digits, %d max steps, target %d\n",
		run.Precision.Digits, run.Precision.MaxSteps, run.Precision.TargetDigits)
	fmt.Fprintf(file, "# Steps: %d (%s)\n", res.Steps(), res.State)
	fmt.Fprintf(file, "\n√%s =\n%s\n", run.Input, FormatQuietResult(res))

	if len(res.Log) > 0 {
		fmt.Fprintf(file, "\n# Iteration Log\n")
		for _, rec := range res.Log {
			fmt.Fprintf(file, "%d\t%s\t%s\t%d\n", rec.Step, rec.Value, rec.Error, rec.DigitsCorrect)
		}
	}
	return nil
}

// FormatQuietResult returns the final value as a single line suitable for
// scripting.
func FormatQuietResult(res sqrt.Result) string {
	if res.Value == nil {
		return "0"
	}
	return res.Value.String()
}

// DisplayQuietResult outputs a result in quiet mode (minimal output).
func DisplayQuietResult(out io.Writer, res sqrt.Result) {
	fmt.Fprintln(out, FormatQuietResult(res))
}

// DisplayResultWithConfig displays a result with the given output
// configuration and saves it to a file when requested.
//
// Returns:
//   - error: An error if file output fails.
func DisplayResultWithConfig(out io.Writer, run Run, config OutputConfig) error {
	if config.Quiet {
		DisplayQuietResult(out, run.Result)
	} else {
		DisplayResult(run.Input, run.Result, run.Duration, config.ShowLog, config.Verbose, out)
	}

	if config.OutputFile != "" {
		if err := WriteResultToFile(run, config); err != nil {
			return err
		}
		if !config.Quiet {
			fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
				ColorGreen(), ColorCyan(), config.OutputFile, ColorReset())
		}
	}
	return nil
}

// NewReport converts a run into its JSON representation.
func NewReport(run Run) models.Report {
	report := models.Report{
		RunID:        run.RunID,
		Input:        run.Input,
		Estimator:    run.Estimator,
		Precision:    run.Precision.Digits,
		MaxSteps:     run.Precision.MaxSteps,
		TargetDigits: run.Precision.TargetDigits,
		Duration:     FormatSeconds(run.Duration),
	}
	if run.Err != nil {
		report.Error = run.Err.Error()
		return report
	}
	res := run.Result
	report.Steps = res.Steps()
	report.State = res.State.String()
	report.Result = FormatQuietResult(res)
	if len(res.Log) > 0 {
		report.Iterations = make([]models.IterationEntry, len(res.Log))
		for i, rec := range res.Log {
			report.Iterations[i] = models.IterationEntry{
				Step:          rec.Step,
				Value:         rec.Value,
				Error:         rec.Error,
				DigitsCorrect: rec.DigitsCorrect,
			}
		}
	}
	return report
}

// WriteJSON prints reports as an indented JSON array.
func WriteJSON(out io.Writer, reports []models.Report) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(reports)
}
