package sqrt

// ProgressUpdate is a data transfer object that carries the state of a
// running refinement from the solver to its observers.
type ProgressUpdate struct {
	// CalculatorIndex identifies the solver instance when several run
	// concurrently.
	CalculatorIndex int
	// Step is the number of the iteration record just produced.
	Step int
	// MaxSteps is the iteration budget of the computation.
	MaxSteps int
	// DigitsCorrect is the correct-digit count of the latest record.
	DigitsCorrect int
	// TargetDigits is the correct-digit count at which refinement stops.
	TargetDigits int
	// Value is the normalized progress, from 0.0 to 1.0.
	Value float64
}

// ProgressReporter is the callback used by the refiner to publish each
// iteration. It is decoupled from the channel and observer plumbing.
type ProgressReporter func(update ProgressUpdate)

// newProgressUpdate fills Value with the larger of the digit ratio and the
// step ratio, clamped to [0, 1].
func newProgressUpdate(step, digits int, p Precision) ProgressUpdate {
	value := max(ratio(digits, p.TargetDigits), ratio(step, p.MaxSteps))
	return ProgressUpdate{
		Step:          step,
		MaxSteps:      p.MaxSteps,
		DigitsCorrect: digits,
		TargetDigits:  p.TargetDigits,
		Value:         min(max(value, 0), 1),
	}
}

func ratio(n, d int) float64 {
	if d <= 0 {
		return 0
	}
	return float64(n) / float64(d)
}

// completedUpdate reports a finished computation.
func completedUpdate(p Precision) ProgressUpdate {
	return ProgressUpdate{MaxSteps: p.MaxSteps, TargetDigits: p.TargetDigits, Value: 1.0}
}
