package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/sqrtcalc/internal/errors"
	"github.com/agbru/sqrtcalc/internal/service"
	"github.com/agbru/sqrtcalc/internal/service/mocks"
	"github.com/agbru/sqrtcalc/internal/sqrt"
	"github.com/agbru/sqrtcalc/internal/testutil"
	"github.com/cockroachdb/apd/v3"
	"github.com/golang/mock/gomock"
)

var replPrecision = sqrt.Precision{Digits: 20, MaxSteps: 30, TargetDigits: 20}

func computation(estimator string, value *apd.Decimal) service.Computation {
	return service.Computation{
		RunID:     "run",
		Estimator: estimator,
		Precision: replPrecision,
		Result: sqrt.Result{
			Value: value,
			Log:   []sqrt.IterationRecord{{Step: 1, Value: value.String(), Error: "0", DigitsCorrect: 1}},
			State: sqrt.Converged,
		},
		Duration: time.Millisecond,
	}
}

func newTestREPL(t *testing.T) (*REPL, *mocks.MockService, *bytes.Buffer) {
	t.Helper()
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	svc.EXPECT().Estimators().Return([]string{"float", "hybrid", "naive"}).AnyTimes()

	repl := NewREPL(svc, REPLConfig{DefaultAlgo: "hybrid", Timeout: time.Second, Precision: replPrecision, ShowLog: true})
	var out bytes.Buffer
	repl.SetOutput(&out)
	return repl, svc, &out
}

func TestNewREPL_DefaultAlgo(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	svc.EXPECT().Estimators().Return([]string{"float", "hybrid"})

	repl := NewREPL(svc, REPLConfig{DefaultAlgo: "all"})
	if repl.currentAlgo != "float" {
		t.Errorf("expected the first estimator, got %q", repl.currentAlgo)
	}
	if repl.config.Timeout <= 0 {
		t.Error("a default timeout should be applied")
	}
}

func TestProcessCommand(t *testing.T) {
	repl, svc, out := newTestREPL(t)
	strip := testutil.StripAnsiCodes

	t.Run("sqrt", func(t *testing.T) {
		svc.EXPECT().Compute(gomock.Any(), "hybrid", "4", replPrecision).Return(computation("hybrid", apd.New(2, 0)), nil)
		repl.processCommand("sqrt 4")
		output := strip(out.String())
		if !strings.Contains(output, "Final √4 ≈ 2") || !strings.Contains(output, "Iteration Log") {
			t.Errorf("unexpected output:\n%s", output)
		}
		out.Reset()
	})

	t.Run("bare number", func(t *testing.T) {
		c := computation("hybrid", apd.New(3, 0))
		c.Cached = true
		svc.EXPECT().Compute(gomock.Any(), "hybrid", "9", replPrecision).Return(c, nil)
		repl.processCommand("9")
		output := strip(out.String())
		if !strings.Contains(output, "Final √9 ≈ 3") || !strings.Contains(output, "(served from cache)") {
			t.Errorf("unexpected output:\n%s", output)
		}
		out.Reset()
	})

	t.Run("error", func(t *testing.T) {
		svc.EXPECT().Compute(gomock.Any(), "hybrid", "-4", replPrecision).Return(service.Computation{}, apperrors.DomainError{Input: "-4"})
		repl.processCommand("s -4")
		if !strings.Contains(strip(out.String()), "Error: square root of negative number -4") {
			t.Errorf("unexpected output:\n%s", out.String())
		}
		out.Reset()
	})

	t.Run("sqrt without argument", func(t *testing.T) {
		repl.processCommand("sqrt")
		if !strings.Contains(out.String(), "Usage: sqrt <a>") {
			t.Errorf("unexpected output: %s", out.String())
		}
		out.Reset()
	})

	t.Run("algo", func(t *testing.T) {
		repl.processCommand("algo NAIVE")
		if !strings.Contains(strip(out.String()), "Estimator changed to: naive") || repl.currentAlgo != "naive" {
			t.Errorf("unexpected output: %s", out.String())
		}
		out.Reset()

		repl.processCommand("algo bogus")
		if !strings.Contains(out.String(), "Unknown estimator") || repl.currentAlgo != "naive" {
			t.Errorf("unexpected output: %s", out.String())
		}
		out.Reset()
	})

	t.Run("precision settings", func(t *testing.T) {
		defer func() { repl.config.Precision = replPrecision }()
		repl.processCommand("precision 50")
		repl.processCommand("steps 10")
		repl.processCommand("target 40")
		repl.processCommand("precision zero")
		want := sqrt.Precision{Digits: 50, MaxSteps: 10, TargetDigits: 40}
		if repl.config.Precision != want {
			t.Errorf("precision = %+v, want %+v", repl.config.Precision, want)
		}
		if !strings.Contains(out.String(), "Invalid value: zero") {
			t.Errorf("unexpected output: %s", out.String())
		}
		out.Reset()
	})

	t.Run("toggles", func(t *testing.T) {
		repl.processCommand("log")
		repl.processCommand("verbose")
		if repl.config.ShowLog || !repl.config.Verbose {
			t.Errorf("toggles not applied: log=%v verbose=%v", repl.config.ShowLog, repl.config.Verbose)
		}
		repl.processCommand("log")
		repl.processCommand("verbose")
		out.Reset()
	})

	t.Run("compare", func(t *testing.T) {
		two := apd.New(2, 0)
		svc.EXPECT().Compute(gomock.Any(), "float", "4", replPrecision).Return(computation("float", two), nil)
		svc.EXPECT().Compute(gomock.Any(), "hybrid", "4", replPrecision).Return(computation("hybrid", two), nil)
		svc.EXPECT().Compute(gomock.Any(), "naive", "4", replPrecision).Return(computation("naive", apd.New(3, 0)), nil)
		repl.processCommand("compare 4")
		output := strip(out.String())
		if !strings.Contains(output, "Comparison for √4") {
			t.Errorf("unexpected output:\n%s", output)
		}
		if strings.Count(output, "✓") != 2 || strings.Count(output, "✗ INCONSISTENT") != 1 {
			t.Errorf("expected two consistent rows and one mismatch:\n%s", output)
		}
		out.Reset()
	})

	t.Run("list and status", func(t *testing.T) {
		repl.processCommand("list")
		repl.processCommand("status")
		output := strip(out.String())
		for _, want := range []string{"Available estimators", "► naive", "Current configuration", "Precision:      20 digits"} {
			if !strings.Contains(output, want) {
				t.Errorf("output missing %q:\n%s", want, output)
			}
		}
		out.Reset()
	})

	t.Run("help", func(t *testing.T) {
		repl.processCommand("help")
		if !strings.Contains(out.String(), "Available commands") {
			t.Error("Expected help output")
		}
		out.Reset()
	})

	t.Run("unknown", func(t *testing.T) {
		repl.processCommand("bogus")
		if !strings.Contains(out.String(), "Unknown command") {
			t.Error("Expected unknown command message")
		}
		out.Reset()
	})

	t.Run("exit", func(t *testing.T) {
		if repl.processCommand("exit") {
			t.Error("Expected exit command to return false")
		}
	})
}

func TestREPLStart(t *testing.T) {
	repl, svc, out := newTestREPL(t)
	svc.EXPECT().
		Compute(gomock.Any(), "hybrid", "2", replPrecision).
		DoAndReturn(func(ctx context.Context, estimator, input string, p sqrt.Precision) (service.Computation, error) {
			if _, ok := ctx.Deadline(); !ok {
				return service.Computation{}, errors.New("expected a deadline")
			}
			v, _, _ := apd.NewFromString("1.4142135623730950488")
			return computation("hybrid", v), nil
		})

	repl.SetInput(strings.NewReader("sqrt 2\n\nquit\n"))
	repl.Start()

	output := testutil.StripAnsiCodes(out.String())
	if !strings.Contains(output, "Final √2 ≈ 1.4142135623730950488") {
		t.Errorf("Expected computation output, got %s", output)
	}
	if !strings.Contains(output, "Goodbye!") {
		t.Error("Expected goodbye message")
	}
}

func TestREPLStart_EOF(t *testing.T) {
	repl, _, out := newTestREPL(t)
	repl.SetInput(strings.NewReader("status"))
	repl.Start()
	output := testutil.StripAnsiCodes(out.String())
	if !strings.Contains(output, "Current configuration") || !strings.Contains(output, "Goodbye!") {
		t.Errorf("last line without newline should run before exiting:\n%s", output)
	}
}
