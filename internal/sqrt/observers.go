package sqrt

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// ─────────────────────────────────────────────────────────────────────────────
// Channel Observer
// ─────────────────────────────────────────────────────────────────────────────

// ChannelObserver forwards updates to a channel consumed by the UI.
type ChannelObserver struct {
	channel chan<- ProgressUpdate
}

// NewChannelObserver creates an observer sending to ch. The channel should be
// buffered; updates are dropped when it is full.
func NewChannelObserver(ch chan<- ProgressUpdate) *ChannelObserver {
	return &ChannelObserver{channel: ch}
}

// Update implements ProgressObserver with a non-blocking send.
func (o *ChannelObserver) Update(update ProgressUpdate) {
	if o.channel == nil {
		return
	}
	if update.Value > 1.0 {
		update.Value = 1.0
	}
	select {
	case o.channel <- update:
	default:
		// Channel full, the UI catches up on the next update.
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Logging Observer
// ─────────────────────────────────────────────────────────────────────────────

// LoggingObserver logs refinement progress with zerolog, throttled so that
// only changes of at least threshold are written.
type LoggingObserver struct {
	logger    zerolog.Logger
	threshold float64
	lastLog   map[int]float64
	mu        sync.Mutex
}

// NewLoggingObserver creates a throttled logging observer. A non-positive
// threshold defaults to 0.1.
func NewLoggingObserver(logger zerolog.Logger, threshold float64) *LoggingObserver {
	if threshold <= 0 {
		threshold = 0.1
	}
	return &LoggingObserver{
		logger:    logger,
		threshold: threshold,
		lastLog:   make(map[int]float64),
	}
}

// Update implements ProgressObserver.
func (o *LoggingObserver) Update(update ProgressUpdate) {
	o.mu.Lock()
	defer o.mu.Unlock()

	last, seen := o.lastLog[update.CalculatorIndex]
	shouldLog := !seen || update.Value >= 1.0 || update.Value-last >= o.threshold
	if !shouldLog {
		return
	}
	o.logger.Debug().
		Int("calculator", update.CalculatorIndex).
		Int("step", update.Step).
		Int("digits", update.DigitsCorrect).
		Str("percent", fmt.Sprintf("%.1f%%", update.Value*100)).
		Msg("refinement progress")
	o.lastLog[update.CalculatorIndex] = update.Value
}

// ─────────────────────────────────────────────────────────────────────────────
// Metrics Observer (Prometheus)
// ─────────────────────────────────────────────────────────────────────────────

var (
	progressGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "sqrt_refinement_progress",
			Help: "Current progress of square root refinements (0.0 to 1.0)",
		},
		[]string{"calculator_index"},
	)
	digitsGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "sqrt_refinement_correct_digits",
			Help: "Correct leading digits of the latest iteration",
		},
		[]string{"calculator_index"},
	)
)

// MetricsObserver exports progress and correct digits as Prometheus gauges.
type MetricsObserver struct {
	progress *prometheus.GaugeVec
	digits   *prometheus.GaugeVec
}

// NewMetricsObserver creates an observer bound to the package gauges.
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{progress: progressGauge, digits: digitsGauge}
}

// Update implements ProgressObserver.
func (o *MetricsObserver) Update(update ProgressUpdate) {
	label := strconv.Itoa(update.CalculatorIndex)
	o.progress.WithLabelValues(label).Set(update.Value)
	o.digits.WithLabelValues(label).Set(float64(update.DigitsCorrect))
}

// ResetMetrics clears the gauges, typically before a new batch.
func (o *MetricsObserver) ResetMetrics() {
	o.progress.Reset()
	o.digits.Reset()
}

// ─────────────────────────────────────────────────────────────────────────────
// No-Op Observer
// ─────────────────────────────────────────────────────────────────────────────

// NoOpObserver discards all updates.
type NoOpObserver struct{}

// NewNoOpObserver creates a no-op observer.
func NewNoOpObserver() *NoOpObserver { return &NoOpObserver{} }

// Update implements ProgressObserver.
func (o *NoOpObserver) Update(ProgressUpdate) {}
