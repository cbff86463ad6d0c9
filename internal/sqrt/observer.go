package sqrt

import "sync"

// ProgressObserver receives progress notifications from a ProgressSubject.
type ProgressObserver interface {
	// Update is called after every iteration record.
	Update(update ProgressUpdate)
}

// ProgressSubject fans progress notifications out to registered observers,
// in registration order. It is safe for concurrent use.
type ProgressSubject struct {
	observers []ProgressObserver
	mu        sync.RWMutex
}

// NewProgressSubject creates an empty subject.
func NewProgressSubject() *ProgressSubject {
	return &ProgressSubject{observers: make([]ProgressObserver, 0)}
}

// Register adds an observer. A nil observer is ignored.
func (s *ProgressSubject) Register(observer ProgressObserver) {
	if observer == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, observer)
}

// Unregister removes an observer. Unknown observers are ignored.
func (s *ProgressSubject) Unregister(observer ProgressObserver) {
	if observer == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, o := range s.observers {
		if o == observer {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}

// Notify delivers update to every observer synchronously.
func (s *ProgressSubject) Notify(update ProgressUpdate) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, observer := range s.observers {
		observer.Update(update)
	}
}

// ObserverCount returns the number of registered observers.
func (s *ProgressSubject) ObserverCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.observers)
}

// AsProgressReporter adapts the subject to the refiner callback, stamping
// every update with calcIndex.
func (s *ProgressSubject) AsProgressReporter(calcIndex int) ProgressReporter {
	return func(update ProgressUpdate) {
		update.CalculatorIndex = calcIndex
		s.Notify(update)
	}
}
