package sqrt

import (
	"errors"
	"reflect"
	"testing"
)

var _ SolverFactory = (*DefaultFactory)(nil)
var _ SolverFactory = (*TestFactory)(nil)

func TestDefaultFactory(t *testing.T) {
	t.Parallel()
	f := NewDefaultFactory()

	if got, expected := f.List(), []string{"float", "hybrid", "naive"}; !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}

	s1, err := f.Get("hybrid")
	if err != nil {
		t.Fatalf("Get(hybrid): %v", err)
	}
	s2, _ := f.Get("hybrid")
	if s1 != s2 {
		t.Error("Get should return the cached instance")
	}
	s3, _ := f.Create("hybrid")
	if s3 == s1 {
		t.Error("Create should return a fresh instance")
	}

	_, err = f.Get("bogus")
	var unknown *UnknownSolverError
	if !errors.As(err, &unknown) || unknown.Name != "bogus" {
		t.Errorf("Expected UnknownSolverError, got %v", err)
	}
	if _, err := f.Create("bogus"); err == nil {
		t.Error("Expected error from Create for unknown name")
	}

	if !f.Has("naive") || f.Has("bogus") {
		t.Error("Has returned an unexpected result")
	}
	if len(f.GetAll()) != 3 {
		t.Errorf("Expected 3 solvers, got %d", len(f.GetAll()))
	}
}

func TestDefaultFactoryRegister(t *testing.T) {
	t.Parallel()
	f := NewDefaultFactory()
	before := f.MustGet("naive")
	if err := f.Register("naive", func() Estimator { return NaiveEstimator{} }); err != nil {
		t.Fatal(err)
	}
	if f.MustGet("naive") == before {
		t.Error("Register should evict the cached instance")
	}
	if err := f.Register("", nil); err == nil {
		t.Error("Expected error for empty registration")
	}
}

func TestMustGetPanics(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Error("Expected panic")
		}
	}()
	NewDefaultFactory().MustGet("bogus")
}

func TestGlobalFactory(t *testing.T) {
	t.Parallel()
	if GlobalFactory() != GlobalFactory() {
		t.Error("GlobalFactory should be a singleton")
	}
	if !GlobalFactory().Has("hybrid") {
		t.Error("GlobalFactory should register hybrid")
	}
}

func TestTestFactory(t *testing.T) {
	t.Parallel()
	mock := &MockSolver{NameValue: "m"}
	f := NewTestFactory(map[string]Solver{"m": mock})
	got, err := f.Get("m")
	if err != nil || got != mock {
		t.Errorf("Expected mock, got %v (%v)", got, err)
	}
	if _, err := f.Create("x"); err == nil {
		t.Error("Expected error for unknown solver")
	}
	if len(f.List()) != 1 || len(f.GetAll()) != 1 {
		t.Error("Unexpected factory contents")
	}
	if err := f.Register("y", nil); err != nil {
		t.Error(err)
	}
}
