package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/agbru/sqrtcalc/internal/config"
	"github.com/agbru/sqrtcalc/internal/sqrt"
	"golang.org/x/sys/cpu"
)

// GetSolversToRun determines which solvers should be executed based on the
// configuration. With "all", solvers are returned in the sorted order of
// factory.List() for reproducible output.
//
// Parameters:
//   - cfg: The application configuration containing the estimator selection.
//   - factory: The solver factory to retrieve implementations from.
//
// Returns:
//   - []sqrt.Solver: The solvers to execute, nil if the name is unknown.
func GetSolversToRun(cfg config.AppConfig, factory sqrt.SolverFactory) []sqrt.Solver {
	if cfg.Algo == config.AllAlgos {
		keys := factory.List()
		solvers := make([]sqrt.Solver, 0, len(keys))
		for _, k := range keys {
			if s, err := factory.Get(k); err == nil {
				solvers = append(solvers, s)
			}
		}
		return solvers
	}
	if s, err := factory.Get(cfg.Algo); err == nil {
		return []sqrt.Solver{s}
	}
	return nil
}

// PrintExecutionConfig displays the radicand, the numeric context, the
// timeout and the host environment.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	writeOut(out, "--- Execution Configuration ---\n")
	writeOut(out, "Computing %s√%s%s with a timeout of %s%s%s.\n",
		ColorMagenta(), cfg.Input, ColorReset(), ColorYellow(), cfg.Timeout, ColorReset())
	writeOut(out, "Precision: %s%d%s digits, up to %s%d%s steps, target %s%d%s correct digits.\n",
		ColorCyan(), cfg.Precision, ColorReset(),
		ColorCyan(), cfg.MaxSteps, ColorReset(),
		ColorCyan(), cfg.TargetDigits, ColorReset())
	writeOut(out, "Environment: %s%d%s logical processors, Go %s%s%s, integer sqrt via %s%s%s.\n",
		ColorCyan(), runtime.NumCPU(), ColorReset(),
		ColorCyan(), runtime.Version(), ColorReset(),
		ColorCyan(), sqrt.IntegerSqrtBackend(), ColorReset())
	writeOut(out, "CPU features: %s%s%s.\n", ColorCyan(), cpuFeatures(), ColorReset())
}

// cpuFeatures lists the arithmetic-relevant instruction set extensions of
// the host.
func cpuFeatures() string {
	var features []string
	add := func(ok bool, name string) {
		if ok {
			features = append(features, name)
		}
	}
	switch runtime.GOARCH {
	case "amd64", "386":
		add(cpu.X86.HasAVX2, "avx2")
		add(cpu.X86.HasAVX512F, "avx512f")
		add(cpu.X86.HasBMI2, "bmi2")
		add(cpu.X86.HasADX, "adx")
	case "arm64":
		add(cpu.ARM64.HasASIMD, "asimd")
		add(cpu.ARM64.HasSVE, "sve")
	}
	if len(features) == 0 {
		return "none detected"
	}
	return strings.Join(features, ", ")
}

// PrintExecutionMode displays the execution mode (single estimator vs
// comparison).
func PrintExecutionMode(solvers []sqrt.Solver, out io.Writer) {
	var modeDesc string
	if len(solvers) > 1 {
		modeDesc = "Parallel comparison of all estimators"
	} else {
		modeDesc = fmt.Sprintf("Single computation with the %s%s%s estimator",
			ColorGreen(), solvers[0].Name(), ColorReset())
	}
	writeOut(out, "Execution mode: %s.\n", modeDesc)
	writeOut(out, "\n--- Starting Execution ---\n")
}

func writeOut(out io.Writer, format string, a ...any) {
	fmt.Fprintf(out, format, a...)
}
