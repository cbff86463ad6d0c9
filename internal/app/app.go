package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/apd/v3"
	"github.com/google/uuid"

	"github.com/agbru/sqrtcalc/internal/cli"
	"github.com/agbru/sqrtcalc/internal/config"
	apperrors "github.com/agbru/sqrtcalc/internal/errors"
	"github.com/agbru/sqrtcalc/internal/logging"
	"github.com/agbru/sqrtcalc/internal/orchestration"
	"github.com/agbru/sqrtcalc/internal/service"
	"github.com/agbru/sqrtcalc/internal/sqrt"
	"github.com/agbru/sqrtcalc/internal/ui"
	"github.com/agbru/sqrtcalc/pkg/models"
)

// Application represents the sqrtcalc application instance.
// It encapsulates the configuration and provides methods to run
// the application in its various modes (CLI, REPL, completion).
type Application struct {
	// Config holds the parsed application configuration.
	Config config.AppConfig
	// Factory provides access to the solver implementations.
	Factory sqrt.SolverFactory
	// ErrWriter is the writer for error and diagnostic output (typically os.Stderr).
	ErrWriter io.Writer
	// In is the REPL input. Nil means os.Stdin.
	In io.Reader
}

// New creates a new Application instance by parsing command-line arguments.
// It validates the configuration and returns an error if parsing or validation fails.
//
// Parameters:
//   - args: The command-line arguments (typically os.Args).
//   - errWriter: The writer for error output.
//
// Returns:
//   - *Application: A new application instance.
//   - error: An error if configuration parsing or validation fails.
func New(args []string, errWriter io.Writer) (*Application, error) {
	factory := sqrt.GlobalFactory()

	// args[0] is program name, args[1:] are the actual arguments
	programName := "sqrtcalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, factory.List())
	if err != nil {
		return nil, err
	}

	return &Application{
		Config:    cfg,
		Factory:   factory,
		ErrWriter: errWriter,
	}, nil
}

// Run executes the application based on the configured mode.
// It dispatches to the appropriate handler (version, completion, REPL or
// CLI computation).
//
// Parameters:
//   - ctx: The context for managing cancellation and timeouts.
//   - out: The writer for standard output.
//
// Returns:
//   - int: An exit code (0 for success, non-zero for errors).
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.ShowVersion {
		if a.Config.JSONOutput {
			if err := PrintVersionJSON(out); err != nil {
				return apperrors.ExitErrorGeneric
			}
			return apperrors.ExitSuccess
		}
		PrintVersion(out)
		return apperrors.ExitSuccess
	}

	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	if err := logging.Configure(a.errWriter(), a.Config.LogLevel, a.Config.NoColor); err != nil {
		fmt.Fprintf(a.errWriter(), "Configuration error: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	// Respects --no-color and NO_COLOR.
	ui.InitTheme(a.Config.NoColor)

	if a.Config.Interactive {
		return a.runREPL(out)
	}

	return a.runCalculate(ctx, out)
}

func (a *Application) errWriter() io.Writer {
	if a.ErrWriter == nil {
		return os.Stderr
	}
	return a.ErrWriter
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Factory.List()); err != nil {
		fmt.Fprintf(a.errWriter(), "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runREPL starts the interactive REPL mode on top of a caching service.
func (a *Application) runREPL(out io.Writer) int {
	logger := logging.NewLogger(a.errWriter(), "service")
	svc, err := service.NewSqrtService(a.Factory, a.Config.CacheSize, sqrt.MaxDigits, logger)
	if err != nil {
		fmt.Fprintf(a.errWriter(), "Error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}

	repl := cli.NewREPL(svc, cli.REPLConfig{
		DefaultAlgo: a.Config.Algo,
		Timeout:     a.Config.Timeout,
		Precision:   a.Config.ToPrecision(),
		ShowLog:     a.Config.ShowLog,
		Verbose:     a.Config.Verbose,
	})
	if a.In != nil {
		repl.SetInput(a.In)
	}
	repl.SetOutput(out)
	repl.Start()
	return apperrors.ExitSuccess
}

// runCalculate orchestrates the execution of the CLI computation command.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	ctx, cancel := SetupLifecycle(ctx, a.Config.Timeout)
	defer cancel.Cleanup()

	p := a.Config.ToPrecision()
	radicand, err := sqrt.ParseInput(a.Config.Input)
	if err != nil {
		return a.handleInputError(err, p, out)
	}

	solvers := cli.GetSolversToRun(a.Config, a.Factory)
	if len(solvers) == 0 {
		fmt.Fprintf(a.errWriter(), "Configuration error: unknown estimator '%s'\n", a.Config.Algo)
		return apperrors.ExitErrorConfig
	}

	// Skip the preamble for machine-readable and quiet output
	if !a.Config.JSONOutput && !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(solvers, out)
	}

	progressOut := out
	if a.Config.Quiet || a.Config.JSONOutput {
		progressOut = io.Discard
	}

	results := orchestration.ExecuteSolves(ctx, solvers, radicand, p, progressOut)
	runs := a.toRuns(results, radicand, p)
	a.logRuns(runs)

	if a.Config.JSONOutput {
		return a.printJSONResults(results, runs, out)
	}

	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
		ShowLog:    a.Config.ShowLog,
	}
	return a.analyzeResultsWithOutput(results, runs, outputCfg, out)
}

// handleInputError reports a value rejected before any solver ran.
func (a *Application) handleInputError(err error, p sqrt.Precision, out io.Writer) int {
	if apperrors.IsInputError(err) {
		logging.Global().Debug("input rejected", logging.String("input", a.Config.Input))
	}
	if a.Config.JSONOutput {
		run := cli.Run{
			RunID:     uuid.NewString(),
			Input:     a.Config.Input,
			Estimator: a.Config.Algo,
			Precision: p,
			Err:       err,
		}
		if werr := cli.WriteJSON(out, []models.Report{cli.NewReport(run)}); werr != nil {
			return apperrors.ExitErrorGeneric
		}
		return apperrors.HandleCalculationError(err, 0, io.Discard, nil)
	}
	w := out
	if a.Config.Quiet {
		w = a.errWriter()
	}
	return apperrors.HandleCalculationError(err, 0, w, cli.CLIColorProvider{})
}

// toRuns stamps every result with a run identifier.
func (a *Application) toRuns(results []orchestration.SolveResult, radicand *apd.Decimal, p sqrt.Precision) map[string]cli.Run {
	runs := make(map[string]cli.Run, len(results))
	for _, res := range results {
		runs[res.Name] = cli.Run{
			RunID:     uuid.NewString(),
			Input:     radicand.String(),
			Estimator: res.Name,
			Precision: p,
			Result:    res.Result,
			Duration:  res.Duration,
			Err:       res.Err,
		}
	}
	return runs
}

func (a *Application) logRuns(runs map[string]cli.Run) {
	logger := logging.Global()
	for _, run := range runs {
		switch {
		case apperrors.IsContextError(run.Err):
			logger.Warn("computation interrupted",
				logging.String("run_id", run.RunID), logging.String("estimator", run.Estimator),
				logging.String("reason", run.Err.Error()))
			continue
		case run.Err != nil:
			logger.Error("computation failed", run.Err,
				logging.String("run_id", run.RunID), logging.String("estimator", run.Estimator))
			continue
		}
		logger.Info("computation finished",
			logging.String("run_id", run.RunID),
			logging.String("estimator", run.Estimator),
			logging.Int("steps", run.Result.Steps()),
			logging.String("state", run.Result.State.String()),
			logging.Duration("duration", run.Duration))
	}
}

// analyzeResultsWithOutput prints the outcome in quiet or standard mode and
// saves the best result when an output file is configured.
func (a *Application) analyzeResultsWithOutput(results []orchestration.SolveResult, runs map[string]cli.Run, outputCfg cli.OutputConfig, out io.Writer) int {
	if outputCfg.Quiet {
		// exitCode sorts results, so the best one is looked up afterwards.
		code := a.exitCode(results)
		best := orchestration.BestResult(results)
		if best == nil {
			return apperrors.HandleCalculationError(results[0].Err, results[0].Duration, a.errWriter(), nil)
		}
		if code != apperrors.ExitSuccess {
			return code
		}
		if err := cli.DisplayResultWithConfig(out, runs[best.Name], outputCfg); err != nil {
			fmt.Fprintf(a.errWriter(), "Error saving result: %v\n", err)
			return apperrors.ExitErrorGeneric
		}
		return apperrors.ExitSuccess
	}

	var exitCode int
	if len(results) == 1 {
		exitCode = orchestration.AnalyzeSingleResult(results[0], a.Config.Input, outputCfg.ShowLog, outputCfg.Verbose, out)
	} else {
		exitCode = orchestration.AnalyzeComparisonResults(results, a.Config.Input, a.Config.ToPrecision(), outputCfg.ShowLog, outputCfg.Verbose, out)
	}
	best := orchestration.BestResult(results)

	if best != nil && exitCode == apperrors.ExitSuccess && outputCfg.OutputFile != "" {
		if err := cli.WriteResultToFile(runs[best.Name], outputCfg); err != nil {
			fmt.Fprintf(a.errWriter(), "Error saving result: %v\n", err)
			return apperrors.ExitErrorGeneric
		}
		fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
			cli.ColorGreen(), cli.ColorCyan(), outputCfg.OutputFile, cli.ColorReset())
	}

	return exitCode
}

// exitCode computes the exit status of results without printing anything.
func (a *Application) exitCode(results []orchestration.SolveResult) int {
	if len(results) == 1 {
		return orchestration.AnalyzeSingleResult(results[0], a.Config.Input, false, false, io.Discard)
	}
	return orchestration.AnalyzeComparisonResults(results, a.Config.Input, a.Config.ToPrecision(), false, false, io.Discard)
}

// printJSONResults writes one report per solver, in solver order, as a JSON
// array.
func (a *Application) printJSONResults(results []orchestration.SolveResult, runs map[string]cli.Run, out io.Writer) int {
	reports := make([]models.Report, len(results))
	for i, res := range results {
		reports[i] = cli.NewReport(runs[res.Name])
	}
	if err := cli.WriteJSON(out, reports); err != nil {
		return apperrors.ExitErrorGeneric
	}
	return a.exitCode(results)
}

// IsHelpError checks if the error is a help flag error (--help was used).
// This is useful for determining if the application should exit with success
// after displaying help text.
//
// Parameters:
//   - err: The error to check.
//
// Returns:
//   - bool: True if the error indicates help was requested.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
