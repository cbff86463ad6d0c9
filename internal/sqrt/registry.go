package sqrt

import (
	"fmt"
	"sort"
	"sync"
)

// SolverFactory creates and caches Solver instances by estimator name.
type SolverFactory interface {
	// Create returns a fresh Solver for name.
	Create(name string) (Solver, error)
	// Get returns the cached Solver for name, creating it on first use.
	Get(name string) (Solver, error)
	// List returns the registered names in alphabetical order.
	List() []string
	// Register adds or replaces an estimator constructor.
	Register(name string, creator func() Estimator) error
	// GetAll returns every registered solver.
	GetAll() map[string]Solver
}

// UnknownSolverError is returned when no estimator is registered under Name.
type UnknownSolverError struct {
	Name string
}

func (e *UnknownSolverError) Error() string {
	return "unknown estimator: " + e.Name
}

// DefaultFactory is the thread-safe SolverFactory used by the application.
type DefaultFactory struct {
	mu       sync.RWMutex
	creators map[string]func() Estimator
	solvers  map[string]Solver
}

// NewDefaultFactory returns a factory with the built-in estimators:
//   - "hybrid": perfect-square anchored guess (default)
//   - "naive": starts from a
//   - "float": float64 seed on the scaled mantissa
func NewDefaultFactory() *DefaultFactory {
	f := &DefaultFactory{
		creators: make(map[string]func() Estimator),
		solvers:  make(map[string]Solver),
	}
	_ = f.Register("hybrid", func() Estimator { return HybridEstimator{} })
	_ = f.Register("naive", func() Estimator { return NaiveEstimator{} })
	_ = f.Register("float", func() Estimator { return FloatSeedEstimator{} })
	return f
}

// Register adds creator under name, replacing and evicting any previous
// entry.
func (f *DefaultFactory) Register(name string, creator func() Estimator) error {
	if name == "" || creator == nil {
		return fmt.Errorf("sqrt: invalid registration for %q", name)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creators[name] = creator
	delete(f.solvers, name)
	return nil
}

// Create always builds a new, uncached Solver.
func (f *DefaultFactory) Create(name string) (Solver, error) {
	f.mu.RLock()
	creator, ok := f.creators[name]
	f.mu.RUnlock()
	if !ok {
		return nil, &UnknownSolverError{Name: name}
	}
	return NewSolver(creator()), nil
}

// Get returns the cached Solver for name.
func (f *DefaultFactory) Get(name string) (Solver, error) {
	f.mu.RLock()
	if solver, exists := f.solvers[name]; exists {
		f.mu.RUnlock()
		return solver, nil
	}
	f.mu.RUnlock()

	f.mu.Lock()
	defer f.mu.Unlock()
	if solver, exists := f.solvers[name]; exists {
		return solver, nil
	}
	creator, ok := f.creators[name]
	if !ok {
		return nil, &UnknownSolverError{Name: name}
	}
	solver := NewSolver(creator())
	f.solvers[name] = solver
	return solver, nil
}

// List implements SolverFactory.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	names := make([]string, 0, len(f.creators))
	for name := range f.creators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetAll implements SolverFactory, initializing the missing instances.
func (f *DefaultFactory) GetAll() map[string]Solver {
	f.mu.Lock()
	defer f.mu.Unlock()
	for name, creator := range f.creators {
		if _, exists := f.solvers[name]; !exists {
			f.solvers[name] = NewSolver(creator())
		}
	}
	out := make(map[string]Solver, len(f.solvers))
	for name, solver := range f.solvers {
		out[name] = solver
	}
	return out
}

// Has reports whether name is registered.
func (f *DefaultFactory) Has(name string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.creators[name]
	return ok
}

// MustGet is like Get but panics when name is not registered.
func (f *DefaultFactory) MustGet(name string) Solver {
	solver, err := f.Get(name)
	if err != nil {
		panic(fmt.Sprintf("sqrt: required estimator not found: %s", name))
	}
	return solver
}

var (
	globalFactory     *DefaultFactory
	globalFactoryOnce sync.Once
)

// GlobalFactory returns the process-wide factory, created on first use.
func GlobalFactory() *DefaultFactory {
	globalFactoryOnce.Do(func() {
		globalFactory = NewDefaultFactory()
	})
	return globalFactory
}
