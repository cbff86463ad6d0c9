package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Environment Variable Utilities
// ─────────────────────────────────────────────────────────────────────────────

// getEnvString returns EnvPrefix+key, or defaultVal when unset.
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvInt returns EnvPrefix+key parsed as int, or defaultVal when unset or
// invalid.
func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// getEnvBool accepts "true", "1", "yes" and "false", "0", "no",
// case-insensitively.
func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "true", "1", "yes":
			return true
		case "false", "0", "no":
			return false
		}
	}
	return defaultVal
}

// getEnvDuration accepts time.ParseDuration formats such as "30s" or "1m30s".
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := time.ParseDuration(strings.TrimSpace(val)); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// isFlagSet reports whether any of names was set on the command line.
func isFlagSet(fs *flag.FlagSet, names ...string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		for _, name := range names {
			if f.Name == name {
				found = true
			}
		}
	})
	return found
}

// applyEnvOverrides applies SQRTCALC_* variables to every setting whose flag
// was not given explicitly: flags > environment > defaults.
//
// Supported environment variables:
//   - SQRTCALC_INPUT: radicand (string, ignored when a positional argument is given)
//   - SQRTCALC_PRECISION, SQRTCALC_MAX_STEPS, SQRTCALC_TARGET_DIGITS (int)
//   - SQRTCALC_ALGO: estimator (string)
//   - SQRTCALC_TIMEOUT: computation timeout (duration: "30s", "2m")
//   - SQRTCALC_LOG, SQRTCALC_VERBOSE, SQRTCALC_JSON, SQRTCALC_QUIET,
//     SQRTCALC_NO_COLOR, SQRTCALC_INTERACTIVE (bool: true/false, 1/0, yes/no)
//   - SQRTCALC_LOG_LEVEL: diagnostic level (string)
//   - SQRTCALC_OUTPUT: result file path (string)
//   - SQRTCALC_CACHE_SIZE: REPL cache capacity (int)
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "a") && fs.NArg() == 0 {
		config.Input = getEnvString("INPUT", config.Input)
	}

	if !isFlagSet(fs, "precision") {
		config.Precision = getEnvInt("PRECISION", config.Precision)
	}
	if !isFlagSet(fs, "max-steps") {
		config.MaxSteps = getEnvInt("MAX_STEPS", config.MaxSteps)
	}
	if !isFlagSet(fs, "target-digits") {
		config.TargetDigits = getEnvInt("TARGET_DIGITS", config.TargetDigits)
	}
	if !isFlagSet(fs, "cache-size") {
		config.CacheSize = getEnvInt("CACHE_SIZE", config.CacheSize)
	}

	if !isFlagSet(fs, "timeout") {
		config.Timeout = getEnvDuration("TIMEOUT", config.Timeout)
	}

	if !isFlagSet(fs, "algo") {
		config.Algo = getEnvString("ALGO", config.Algo)
	}
	if !isFlagSet(fs, "output", "o") {
		config.OutputFile = getEnvString("OUTPUT", config.OutputFile)
	}
	if !isFlagSet(fs, "log-level") {
		config.LogLevel = getEnvString("LOG_LEVEL", config.LogLevel)
	}

	if !isFlagSet(fs, "log") {
		config.ShowLog = getEnvBool("LOG", config.ShowLog)
	}
	if !isFlagSet(fs, "v") {
		config.Verbose = getEnvBool("VERBOSE", config.Verbose)
	}
	if !isFlagSet(fs, "json") {
		config.JSONOutput = getEnvBool("JSON", config.JSONOutput)
	}
	if !isFlagSet(fs, "quiet", "q") {
		config.Quiet = getEnvBool("QUIET", config.Quiet)
	}
	if !isFlagSet(fs, "no-color") {
		config.NoColor = getEnvBool("NO_COLOR", config.NoColor)
	}
	if !isFlagSet(fs, "interactive") {
		config.Interactive = getEnvBool("INTERACTIVE", config.Interactive)
	}
}
