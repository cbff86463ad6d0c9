package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider defines the interface for obtaining terminal color codes.
// This abstraction breaks the import cycle with cli.
type ColorProvider interface {
	Yellow() string
	Red() string
	Reset() string
}

// DefaultColorProvider provides no color codes (for non-terminal output).
type DefaultColorProvider struct{}

func (d DefaultColorProvider) Yellow() string { return "" }
func (d DefaultColorProvider) Red() string    { return "" }
func (d DefaultColorProvider) Reset() string  { return "" }

// HandleCalculationError formats and prints error messages related to failed
// square root computations. It distinguishes input problems, timeouts,
// cancellations and arithmetic faults so the user gets specific feedback.
//
// Parameters:
//   - err: The error that occurred.
//   - duration: The duration of the computation before it failed.
//   - out: The io.Writer to which the error message will be written.
//   - colors: Provider for terminal color codes (can be nil for no colors).
//
// Returns:
//   - int: The appropriate exit code for the error type.
func HandleCalculationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}

	if colors == nil {
		colors = DefaultColorProvider{}
	}

	msgSuffix := ""
	if duration > 0 {
		msgSuffix = fmt.Sprintf(" after %s%s%s", colors.Yellow(), duration, colors.Reset())
	}

	var parseErr ParseError
	var domainErr DomainError
	var arithErr ArithmeticError
	switch {
	case errors.As(err, &parseErr):
		fmt.Fprintf(out, "%s❌ Error: %v%s\n", colors.Red(), parseErr, colors.Reset())
		return ExitErrorInput
	case errors.As(err, &domainErr):
		fmt.Fprintf(out, "%s❌ Error: %v%s\n", colors.Red(), domainErr, colors.Reset())
		return ExitErrorInput
	case errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintf(out, "Status: Failure (Timeout). The execution limit was reached%s.\n", msgSuffix)
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		fmt.Fprintf(out, "%sStatus: Canceled%s.%s\n", colors.Yellow(), msgSuffix, colors.Reset())
		return ExitErrorCanceled
	case errors.As(err, &arithErr):
		fmt.Fprintf(out, "Status: Failure. %v%s.\n", arithErr, msgSuffix)
		return ExitErrorGeneric
	}
	fmt.Fprintf(out, "Status: Failure. An unexpected error occurred: %v\n", err)
	return ExitErrorGeneric
}
