/*
Package models defines the shared data structures exported by sqrtcalc.

These models are used for:
- **JSON output**: one Report per estimator run, printed with -json.
- **Result files**: the same fields back the header written by -output.
*/
package models

// IterationEntry is one record of the iteration log.
type IterationEntry struct {
	Step          int    `json:"step"`
	Value         string `json:"value"`
	Error         string `json:"error"`
	DigitsCorrect int    `json:"digits_correct"`
}

// Report describes a single square root computation.
type Report struct {
	RunID        string           `json:"run_id"`              // Unique identifier of the run (UUID).
	Input        string           `json:"input"`               // Radicand as typed by the user.
	Estimator    string           `json:"estimator"`           // Initial guess estimator name.
	Precision    int              `json:"precision"`           // Significant digits of the context.
	MaxSteps     int              `json:"max_steps"`           // Step budget.
	TargetDigits int              `json:"target_digits"`       // Correct-digit target.
	Steps        int              `json:"steps"`               // Number of iteration records.
	State        string           `json:"state,omitempty"`     // "converged" or "exhausted".
	Result       string           `json:"result,omitempty"`    // Final estimate.
	Duration     string           `json:"duration"`            // Seconds, 16 digits after the point.
	Iterations   []IterationEntry `json:"iterations,omitempty"` // Full iteration log.
	Error        string           `json:"error,omitempty"`     // Failure message, if any.
}
