package sqrt

import (
	"context"

	"github.com/cockroachdb/apd/v3"
)

// MockSolver is a Solver returning canned results. It is exported for the
// tests of other packages.
type MockSolver struct {
	NameValue string
	Result    Result
	Err       error
	Fn        func(ctx context.Context, a *apd.Decimal, p Precision) (Result, error)
}

// Name returns NameValue, or "mock".
func (m *MockSolver) Name() string {
	if m.NameValue != "" {
		return m.NameValue
	}
	return "mock"
}

// Solve calls Fn when set, otherwise reports completion and returns the
// canned Result and Err.
func (m *MockSolver) Solve(ctx context.Context, progressChan chan<- ProgressUpdate, calcIndex int, a *apd.Decimal, p Precision) (Result, error) {
	if m.Fn != nil {
		return m.Fn(ctx, a, p)
	}
	if progressChan != nil {
		progressChan <- ProgressUpdate{CalculatorIndex: calcIndex, Value: 1.0}
	}
	return m.Result, m.Err
}

// TestFactory is a SolverFactory holding fixed solvers.
type TestFactory struct {
	solvers map[string]Solver
}

// NewTestFactory creates a factory serving the given solvers.
func NewTestFactory(solvers map[string]Solver) *TestFactory {
	if solvers == nil {
		solvers = make(map[string]Solver)
	}
	return &TestFactory{solvers: solvers}
}

// Create returns the solver registered under name.
func (f *TestFactory) Create(name string) (Solver, error) { return f.Get(name) }

// Get returns the solver registered under name.
func (f *TestFactory) Get(name string) (Solver, error) {
	solver, ok := f.solvers[name]
	if !ok {
		return nil, &UnknownSolverError{Name: name}
	}
	return solver, nil
}

// List returns the names of the solvers.
func (f *TestFactory) List() []string {
	names := make([]string, 0, len(f.solvers))
	for name := range f.solvers {
		names = append(names, name)
	}
	return names
}

// Register is a no-op: solvers are fixed at construction.
func (f *TestFactory) Register(string, func() Estimator) error { return nil }

// GetAll returns a copy of the solvers.
func (f *TestFactory) GetAll() map[string]Solver {
	out := make(map[string]Solver, len(f.solvers))
	for k, v := range f.solvers {
		out[k] = v
	}
	return out
}
