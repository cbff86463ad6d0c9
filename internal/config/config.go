// Package config provides the configuration management for the sqrtcalc
// application. It defines the configuration structure, parses command-line
// arguments, applies environment overrides and validates the result.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/cockroachdb/apd/v3"

	apperrors "github.com/agbru/sqrtcalc/internal/errors"
	"github.com/agbru/sqrtcalc/internal/logging"
	"github.com/agbru/sqrtcalc/internal/sqrt"
)

const (
	// EnvPrefix is the prefix for all environment variables used by sqrtcalc.
	EnvPrefix = "SQRTCALC_"
)

// Default configuration values.
// These can be overridden via command-line flags or environment variables.
const (
	// DefaultPrecision is the default number of significant digits.
	DefaultPrecision = sqrt.DefaultDigits
	// DefaultMaxSteps is the default Newton iteration budget.
	DefaultMaxSteps = sqrt.DefaultMaxSteps
	// DefaultTargetDigits is the default correct-digit target.
	DefaultTargetDigits = sqrt.DefaultTargetDigits
	// DefaultTimeout is the default computation timeout.
	DefaultTimeout = time.Minute
	// DefaultAlgo is the default estimator selection.
	DefaultAlgo = "hybrid"
	// DefaultLogLevel is the default zerolog level.
	DefaultLogLevel = "warn"
	// DefaultCacheSize is the default number of results kept by the REPL.
	DefaultCacheSize = 128
)

// AllAlgos selects every registered estimator for a side-by-side run.
const AllAlgos = "all"

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// Input is the textual radicand, from -a or the first positional argument.
	Input string
	// Precision is the number of significant digits of every operation.
	Precision int
	// MaxSteps bounds the number of iteration records.
	MaxSteps int
	// TargetDigits is the correct-digit count at which refinement stops.
	TargetDigits int
	// Algo is an estimator name, or "all".
	Algo string
	// Timeout bounds the wall-clock time of a computation.
	Timeout time.Duration
	// ShowLog prints the iteration log after the result.
	ShowLog bool
	// Verbose prints values in full instead of truncating them.
	Verbose bool
	// JSONOutput prints machine-readable reports.
	JSONOutput bool
	// Quiet prints only the final value.
	Quiet bool
	// OutputFile, when set, receives a copy of the result.
	OutputFile string
	// NoColor disables colored output. NO_COLOR is honored as well.
	NoColor bool
	// Interactive starts the REPL.
	Interactive bool
	// Completion, when set, prints a completion script for that shell.
	Completion string
	// LogLevel is the zerolog level for diagnostics on stderr.
	LogLevel string
	// CacheSize is the capacity of the REPL result cache.
	CacheSize int
	// ShowVersion prints the version and exits.
	ShowVersion bool
}

// ToPrecision converts the configuration into the numeric context of a
// computation.
func (c AppConfig) ToPrecision() sqrt.Precision {
	return sqrt.Precision{
		Digits:       c.Precision,
		MaxSteps:     c.MaxSteps,
		TargetDigits: c.TargetDigits,
	}
}

// Validate checks the semantic consistency of the configuration.
//
// Parameters:
//   - availableAlgos: the registered estimator names.
//
// Returns:
//   - error: a ConfigError if the configuration is invalid, nil otherwise.
func (c AppConfig) Validate(availableAlgos []string) error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	if err := c.ToPrecision().Validate(); err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	if c.CacheSize < 0 {
		return apperrors.NewConfigError("cache size cannot be negative: %d", c.CacheSize)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	if c.Algo != AllAlgos && !slices.Contains(availableAlgos, c.Algo) {
		return apperrors.NewConfigError("unrecognized estimator: '%s'. Valid estimators are: '%s' or [%s]", c.Algo, AllAlgos, strings.Join(availableAlgos, ", "))
	}
	needsInput := !c.Interactive && c.Completion == "" && !c.ShowVersion
	if needsInput && strings.TrimSpace(c.Input) == "" {
		return apperrors.NewConfigError("no input value: pass -a <value> or a positional argument")
	}
	return nil
}

// ParseConfig parses the command-line arguments into an AppConfig, applies
// environment overrides for flags not set explicitly, then validates.
//
// Parameters:
//   - programName: the program name used in the usage message.
//   - args: the command-line arguments (typically os.Args[1:]).
//   - errorWriter: where parsing errors and usage are written.
//   - availableAlgos: the registered estimator names.
//
// Returns:
//   - AppConfig: the populated configuration.
//   - error: flag.ErrHelp, a parse error, or a ConfigError.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableAlgos []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	algoHelp := fmt.Sprintf("Initial guess estimator: one of [%s], or '%s' to compare them.", strings.Join(availableAlgos, ", "), AllAlgos)

	config := AppConfig{}
	fs.StringVar(&config.Input, "a", "", "Non-negative decimal whose square root is computed (or pass it as an argument).")
	fs.IntVar(&config.Precision, "precision", DefaultPrecision, "Number of significant decimal digits used by every operation.")
	fs.IntVar(&config.MaxSteps, "max-steps", DefaultMaxSteps, "Maximum number of Newton steps.")
	fs.IntVar(&config.TargetDigits, "target-digits", DefaultTargetDigits, "Stop once this many leading digits are correct.")
	fs.StringVar(&config.Algo, "algo", DefaultAlgo, algoHelp)
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time for the computation.")
	fs.BoolVar(&config.ShowLog, "log", true, "Print the iteration log.")
	fs.BoolVar(&config.Verbose, "v", false, "Print values in full instead of truncating them.")
	fs.BoolVar(&config.JSONOutput, "json", false, "Output results in JSON format.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode - print only the result.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.StringVar(&config.OutputFile, "output", "", "Write the result and iteration log to this file.")
	fs.StringVar(&config.OutputFile, "o", "", "Output file (shorthand).")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.BoolVar(&config.Interactive, "interactive", false, "Start in interactive REPL mode.")
	fs.StringVar(&config.Completion, "completion", "", "Generate shell completion script (bash, zsh, fish).")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Diagnostic log level (debug, info, warn, error, disabled).")
	fs.IntVar(&config.CacheSize, "cache-size", DefaultCacheSize, "Number of results cached in interactive mode (0 disables).")
	fs.BoolVar(&config.ShowVersion, "version", false, "Print version information and exit.")
	fs.BoolVar(&config.ShowVersion, "V", false, "Print version information (shorthand).")

	setCustomUsage(fs)

	signed, args := extractSignedInput(fs, args)
	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if config.Input == "" {
		if signed != "" {
			config.Input = signed
		} else if fs.NArg() > 0 {
			config.Input = fs.Arg(0)
		}
	}

	applyEnvOverrides(&config, fs)

	config.Algo = strings.ToLower(strings.TrimSpace(config.Algo))
	if err := config.Validate(availableAlgos); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, errors.Join(errors.New("invalid configuration"), err)
	}
	return config, nil
}

// extractSignedInput removes the first argument that reads as a signed
// number, such as "-4", so that flag does not mistake it for an unknown flag.
// Scanning stops where flag parsing would: at "--" or at the first
// positional argument. Values of non-boolean flags are skipped.
func extractSignedInput(fs *flag.FlagSet, args []string) (string, []string) {
	expectValue := false
	for i, arg := range args {
		if expectValue {
			expectValue = false
			continue
		}
		if arg == "--" || !strings.HasPrefix(arg, "-") {
			break
		}
		if _, _, err := apd.NewFromString(arg); err == nil {
			rest := append(slices.Clone(args[:i]), args[i+1:]...)
			return arg, rest
		}
		name := strings.TrimLeft(arg, "-")
		if strings.Contains(name, "=") {
			continue
		}
		if f := fs.Lookup(name); f != nil && !isBoolFlag(f) {
			expectValue = true
		}
	}
	return "", args
}

func isBoolFlag(f *flag.Flag) bool {
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}

