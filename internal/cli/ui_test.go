package cli

import (
	"bytes"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/agbru/sqrtcalc/internal/sqrt"
	"github.com/agbru/sqrtcalc/internal/testutil"
	"github.com/agbru/sqrtcalc/internal/ui"
	"github.com/briandowns/spinner"
	"github.com/cockroachdb/apd/v3"
)

// MockSpinner records the calls made by DisplayProgress.
type MockSpinner struct {
	mu      sync.Mutex
	started bool
	stopped bool
	suffix  string
}

func (m *MockSpinner) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started = true
}

func (m *MockSpinner) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
}

func (m *MockSpinner) UpdateSuffix(suffix string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suffix = suffix
}

func withMockSpinner(t *testing.T) *MockSpinner {
	t.Helper()
	original := newSpinner
	t.Cleanup(func() { newSpinner = original })
	mockS := &MockSpinner{}
	newSpinner = func(...spinner.Option) Spinner { return mockS }
	return mockS
}

func sampleResult(t *testing.T) sqrt.Result {
	t.Helper()
	value, _, err := apd.NewFromString("1.414213562373095048801688724209698078569671875376948073176679737990732478462107038850387534327641573")
	if err != nil {
		t.Fatal(err)
	}
	return sqrt.Result{
		Value: value,
		Log: []sqrt.IterationRecord{
			{Step: 1, Value: "1.5", Error: "0.0857864376269049511983112757903019214303281246230519268233202620", DigitsCorrect: 2},
			{Step: 2, Value: value.String(), Error: "0", DigitsCorrect: 100},
		},
		State: sqrt.Converged,
	}
}

func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{500 * time.Nanosecond, "0µs"},
		{10 * time.Microsecond, "10µs"},
		{999 * time.Microsecond, "999µs"},
		{10 * time.Millisecond, "10ms"},
		{2 * time.Second, "2s"},
	}

	for _, tt := range tests {
		if got := FormatExecutionDuration(tt.d); got != tt.expected {
			t.Errorf("FormatExecutionDuration(%v) = %s; want %s", tt.d, got, tt.expected)
		}
	}
}

func TestFormatSeconds(t *testing.T) {
	t.Parallel()
	tests := map[time.Duration]string{
		0:                      "0.0000000000000000",
		1500 * time.Millisecond: "1.5000000000000000",
		time.Microsecond:       "0.0000010000000000",
	}
	for d, want := range tests {
		if got := FormatSeconds(d); got != want {
			t.Errorf("FormatSeconds(%v) = %s; want %s", d, got, want)
		}
	}
}

func TestTruncateValue(t *testing.T) {
	t.Parallel()
	long := strings.Repeat("1", 71)
	tests := []struct {
		name, in, want string
	}{
		{"short", "1.5", "1.5"},
		{"exactly at limit", long[:70], long[:70]},
		{"over limit", long, long[:70] + "..."},
	}
	for _, tt := range tests {
		if got := TruncateValue(tt.in, LogValueLimit); got != tt.want {
			t.Errorf("%s: TruncateValue() = %q; want %q", tt.name, got, tt.want)
		}
	}
	if got := TruncateValue("abc", 0); got != "abc" {
		t.Errorf("non-positive limit should not truncate, got %q", got)
	}
}

func TestProgressBar(t *testing.T) {
	t.Parallel()
	tests := []struct {
		progress float64
		length   int
		want     string
	}{
		{0.0, 10, "░░░░░░░░░░"},
		{0.5, 10, "█████░░░░░"},
		{1.0, 10, "██████████"},
		{1.2, 10, "██████████"},
		{-0.1, 10, "░░░░░░░░░░"},
	}

	for _, tt := range tests {
		if got := progressBar(tt.progress, tt.length); got != tt.want {
			t.Errorf("progressBar(%f, %d) = %s; want %s", tt.progress, tt.length, got, tt.want)
		}
	}
}

func TestProgressStateDetail(t *testing.T) {
	t.Parallel()
	ps := NewProgressState(1)
	if ps.Detail() != "" {
		t.Errorf("Detail() before updates = %q", ps.Detail())
	}
	ps.Record(sqrt.ProgressUpdate{Step: 3, MaxSteps: 200, DigitsCorrect: 12, TargetDigits: 200, Value: 0.06})
	if got := ps.Detail(); got != " step 3/200, 12/200 digits" {
		t.Errorf("Detail() = %q", got)
	}
	if ps.CalculateAverage() != 0.06 {
		t.Errorf("CalculateAverage() = %f", ps.CalculateAverage())
	}
	if NewProgressState(2).Detail() != "" {
		t.Error("Detail() should be empty with several solvers")
	}
}

func TestDisplayResult(t *testing.T) {
	saved := ui.GetCurrentTheme()
	defer ui.SetCurrentTheme(saved)
	ui.SetCurrentTheme(ui.DarkTheme)

	res := sampleResult(t)

	t.Run("WithLog", func(t *testing.T) {
		var buf bytes.Buffer
		DisplayResult("2", res, 1500*time.Millisecond, true, false, &buf)
		output := testutil.StripAnsiCodes(buf.String())
		for _, want := range []string{
			"🌟 Final √2 ≈ 1.4142135623",
			"⏱️ Time taken: 1.5000000000000000 seconds",
			"Status: Converged at step 2 with 100 correct digits",
			"🧪 Iteration Log:",
			"Step 1: √ ≈ 1.5\n",
			"  Correct Digits: 100",
			res.Log[1].Value[:70] + "...",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("output missing %q:\n%s", want, output)
			}
		}
	})

	t.Run("Verbose", func(t *testing.T) {
		var buf bytes.Buffer
		DisplayResult("2", res, time.Millisecond, true, true, &buf)
		output := testutil.StripAnsiCodes(buf.String())
		if strings.Contains(output, "...") {
			t.Errorf("verbose output should not truncate:\n%s", output)
		}
		if !strings.Contains(output, "Step 2: √ ≈ "+res.Log[1].Value+"\n") {
			t.Errorf("verbose output should contain the full value:\n%s", output)
		}
	})

	t.Run("NoLog", func(t *testing.T) {
		var buf bytes.Buffer
		DisplayResult("2", res, time.Millisecond, false, false, &buf)
		if strings.Contains(buf.String(), "Iteration Log") {
			t.Errorf("log should be hidden:\n%s", buf.String())
		}
	})
}

func TestFormatStatus(t *testing.T) {
	saved := ui.GetCurrentTheme()
	defer ui.SetCurrentTheme(saved)
	ui.SetCurrentTheme(ui.NoColorTheme)

	tests := []struct {
		name string
		res  sqrt.Result
		want string
	}{
		{"zero", sqrt.Result{State: sqrt.Converged}, "Converged (exact, no iteration needed)"},
		{"exhausted", sqrt.Result{State: sqrt.Exhausted, Log: []sqrt.IterationRecord{{Step: 1, DigitsCorrect: 4}}},
			"Exhausted after 1 steps with 4 correct digits"},
		{"iterating", sqrt.Result{State: sqrt.Iterating}, "iterating"},
	}
	for _, tt := range tests {
		if got := FormatStatus(tt.res); got != tt.want {
			t.Errorf("%s: FormatStatus() = %q; want %q", tt.name, got, tt.want)
		}
	}
}

func TestRealSpinner(t *testing.T) {
	t.Parallel()
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(io.Discard))
	rs := &realSpinner{s}

	rs.Start()
	rs.UpdateSuffix(" test")
	rs.Stop()
}

func TestDisplayProgress(t *testing.T) {
	mockS := withMockSpinner(t)

	var wg sync.WaitGroup
	wg.Add(1)
	progressChan := make(chan sqrt.ProgressUpdate)
	var out bytes.Buffer

	go func() {
		for i := 1; i <= 3; i++ {
			progressChan <- sqrt.ProgressUpdate{Step: i, MaxSteps: 3, Value: float64(i) / 3}
			time.Sleep(2 * ProgressRefreshRate / 3)
		}
		close(progressChan)
	}()

	DisplayProgress(&wg, progressChan, 1, &out)
	wg.Wait()

	mockS.mu.Lock()
	defer mockS.mu.Unlock()
	if !mockS.started || !mockS.stopped {
		t.Errorf("spinner started=%v stopped=%v", mockS.started, mockS.stopped)
	}
	if !strings.Contains(out.String(), "Progress: 100.00%") {
		t.Errorf("final progress line missing: %q", out.String())
	}
}

func TestDisplayProgress_NoSolvers(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	progressChan := make(chan sqrt.ProgressUpdate, 1)
	progressChan <- sqrt.ProgressUpdate{Value: 1}
	close(progressChan)

	DisplayProgress(&wg, progressChan, 0, io.Discard)
	wg.Wait()
}
