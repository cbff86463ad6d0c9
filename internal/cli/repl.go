package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/sqrtcalc/internal/config"
	"github.com/agbru/sqrtcalc/internal/service"
	"github.com/agbru/sqrtcalc/internal/sqrt"
	"github.com/cockroachdb/apd/v3"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// DefaultAlgo is the estimator used until changed with "algo".
	DefaultAlgo string
	// Timeout is the maximum duration for each computation.
	Timeout time.Duration
	// Precision is the numeric context of every computation.
	Precision sqrt.Precision
	// ShowLog prints the iteration log after each result.
	ShowLog bool
	// Verbose prints iteration values in full.
	Verbose bool
}

// REPL represents an interactive square root session.
type REPL struct {
	config      REPLConfig
	svc         service.Service
	currentAlgo string
	in          io.Reader
	out         io.Writer
}

// NewREPL creates a new REPL instance.
//
// Parameters:
//   - svc: The computation service.
//   - cfg: REPL configuration.
//
// Returns:
//   - *REPL: A new REPL instance.
func NewREPL(svc service.Service, cfg REPLConfig) *REPL {
	currentAlgo := cfg.DefaultAlgo
	if currentAlgo == "" || currentAlgo == config.AllAlgos {
		if names := svc.Estimators(); len(names) > 0 {
			currentAlgo = names[0]
		}
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = config.DefaultTimeout
	}
	return &REPL{
		config:      cfg,
		svc:         svc,
		currentAlgo: currentAlgo,
		in:          os.Stdin,
		out:         os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start reads and processes commands until the user exits or the input
// reaches EOF.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)
	for {
		fmt.Fprint(r.out, ColorGreen()+"√> "+ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && strings.TrimSpace(input) != "") {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ColorRed(), err, ColorReset())
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if !r.processCommand(input) {
			return
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ColorCyan(), ColorReset())
	fmt.Fprintf(r.out, "%s║%s     %s√ Square Root Calculator - Interactive Mode%s          %s║%s\n",
		ColorCyan(), ColorReset(), ColorBold(), ColorReset(), ColorCyan(), ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ColorCyan(), ColorReset())
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ColorBold(), ColorReset())
	fmt.Fprintf(r.out, "  %ssqrt <a>%s         - Compute √a with the current estimator\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %salgo <name>%s      - Change estimator (%s)\n", ColorYellow(), ColorReset(), strings.Join(r.svc.Estimators(), ", "))
	fmt.Fprintf(r.out, "  %scompare <a>%s      - Compare all estimators for √a\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %sprecision <n>%s    - Set the number of significant digits\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %ssteps <n>%s        - Set the maximum number of Newton steps\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %starget <n>%s       - Set the correct-digit target\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %slog%s              - Toggle the iteration log\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %sverbose%s          - Toggle untruncated values\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %slist%s             - List available estimators\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s           - Display current configuration\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s             - Display this help\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s     - Exit interactive mode\n", ColorYellow(), ColorReset(), ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "A bare number is computed directly.\n")
}

// processCommand parses and executes a user command.
// Returns false if the REPL should exit.
func (r *REPL) processCommand(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "sqrt", "s":
		if len(args) == 0 {
			fmt.Fprintf(r.out, "%sUsage: sqrt <a>%s\n", ColorRed(), ColorReset())
			return true
		}
		r.compute(args[0])
	case "algo", "a":
		r.cmdAlgo(args)
	case "compare", "cmp":
		r.cmdCompare(args)
	case "precision", "p":
		r.setInt(args, "precision", &r.config.Precision.Digits)
	case "steps":
		r.setInt(args, "steps", &r.config.Precision.MaxSteps)
	case "target":
		r.setInt(args, "target", &r.config.Precision.TargetDigits)
	case "log":
		r.config.ShowLog = !r.config.ShowLog
		fmt.Fprintf(r.out, "Iteration log: %s%s%s\n", ColorGreen(), onOff(r.config.ShowLog), ColorReset())
	case "verbose":
		r.config.Verbose = !r.config.Verbose
		fmt.Fprintf(r.out, "Verbose values: %s%s%s\n", ColorGreen(), onOff(r.config.Verbose), ColorReset())
	case "list", "ls":
		r.cmdList()
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ColorGreen(), ColorReset())
		return false
	default:
		if _, _, err := apd.NewFromString(parts[0]); err == nil {
			r.compute(parts[0])
		} else {
			fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ColorRed(), cmd, ColorReset())
			fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ColorYellow(), ColorReset())
		}
	}
	return true
}

// compute runs the current estimator on input and prints the result.
func (r *REPL) compute(input string) {
	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()

	fmt.Fprintf(r.out, "Computing √%s%s%s with %s%s%s...\n",
		ColorMagenta(), input, ColorReset(), ColorCyan(), r.currentAlgo, ColorReset())

	c, err := r.svc.Compute(ctx, r.currentAlgo, input, r.config.Precision)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ColorRed(), err, ColorReset())
		return
	}

	fmt.Fprintln(r.out)
	DisplayResult(input, c.Result, c.Duration, r.config.ShowLog, r.config.Verbose, r.out)
	if c.Cached {
		fmt.Fprintf(r.out, "%s(served from cache)%s\n", ColorYellow(), ColorReset())
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdAlgo(args []string) {
	names := r.svc.Estimators()
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: algo <name>%s\n", ColorRed(), ColorReset())
		fmt.Fprintf(r.out, "Available estimators: %s\n", strings.Join(names, ", "))
		return
	}

	name := strings.ToLower(args[0])
	if !slices.Contains(names, name) {
		fmt.Fprintf(r.out, "%sUnknown estimator: %s%s\n", ColorRed(), name, ColorReset())
		fmt.Fprintf(r.out, "Available estimators: %s\n", strings.Join(names, ", "))
		return
	}

	r.currentAlgo = name
	fmt.Fprintf(r.out, "Estimator changed to: %s%s%s\n", ColorGreen(), name, ColorReset())
}

// cmdCompare runs every estimator on the same input and checks that their
// results agree to sqrt.AgreementDigits.
func (r *REPL) cmdCompare(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: compare <a>%s\n", ColorRed(), ColorReset())
		return
	}
	input := args[0]
	p := r.config.Precision
	digits := sqrt.AgreementDigits(p)

	fmt.Fprintf(r.out, "\n%sComparison for √%s:%s\n", ColorBold(), input, ColorReset())
	fmt.Fprintf(r.out, "%s─────────────────────────────────────────────────────────%s\n", ColorCyan(), ColorReset())

	var first *apd.Decimal
	for _, name := range r.svc.Estimators() {
		ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
		c, err := r.svc.Compute(ctx, name, input, p)
		cancel()

		if err != nil {
			fmt.Fprintf(r.out, "  %s%-8s%s: %sError - %v%s\n",
				ColorYellow(), name, ColorReset(), ColorRed(), err, ColorReset())
			continue
		}

		status := ColorGreen() + "✓" + ColorReset()
		if first == nil {
			first = c.Result.Value
		} else if ok, err := sqrt.Agree(p.Context(), c.Result.Value, first, digits); err != nil || !ok {
			status = ColorRed() + "✗ INCONSISTENT" + ColorReset()
		}

		fmt.Fprintf(r.out, "  %s%-8s%s: %s%12s%s %4d steps  %-9s %s\n",
			ColorYellow(), name, ColorReset(),
			ColorCyan(), FormatExecutionDuration(c.Duration), ColorReset(),
			c.Result.Steps(), c.Result.State, status)
	}

	fmt.Fprintf(r.out, "%s─────────────────────────────────────────────────────────%s\n\n", ColorCyan(), ColorReset())
}

// setInt updates a positive precision field from args[0].
func (r *REPL) setInt(args []string, name string, field *int) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: %s <n>%s\n", ColorRed(), name, ColorReset())
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n <= 0 {
		fmt.Fprintf(r.out, "%sInvalid value: %s%s\n", ColorRed(), args[0], ColorReset())
		return
	}
	*field = n
	fmt.Fprintf(r.out, "%s set to: %s%d%s\n", name, ColorGreen(), n, ColorReset())
}

func (r *REPL) cmdList() {
	fmt.Fprintf(r.out, "\n%sAvailable estimators:%s\n", ColorBold(), ColorReset())
	for _, name := range r.svc.Estimators() {
		marker := "  "
		if name == r.currentAlgo {
			marker = ColorGreen() + "► " + ColorReset()
		}
		fmt.Fprintf(r.out, "%s%s%s%s\n", marker, ColorYellow(), name, ColorReset())
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdStatus() {
	p := r.config.Precision
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ColorBold(), ColorReset())
	fmt.Fprintf(r.out, "  Estimator:      %s%s%s\n", ColorCyan(), r.currentAlgo, ColorReset())
	fmt.Fprintf(r.out, "  Precision:      %s%d%s digits\n", ColorCyan(), p.Digits, ColorReset())
	fmt.Fprintf(r.out, "  Max steps:      %s%d%s\n", ColorCyan(), p.MaxSteps, ColorReset())
	fmt.Fprintf(r.out, "  Target digits:  %s%d%s\n", ColorCyan(), p.TargetDigits, ColorReset())
	fmt.Fprintf(r.out, "  Timeout:        %s%s%s\n", ColorCyan(), r.config.Timeout, ColorReset())
	fmt.Fprintf(r.out, "  Iteration log:  %s%s%s\n", ColorCyan(), onOff(r.config.ShowLog), ColorReset())
	fmt.Fprintf(r.out, "  Verbose values: %s%s%s\n", ColorCyan(), onOff(r.config.Verbose), ColorReset())
	fmt.Fprintln(r.out)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
