package rx

import "sync"

// Subject is a hot Observable that is also an Observer: every notification
// it receives is forwarded to the observers subscribed at that moment.
//
// Callers must not invoke OnNext/OnError/OnCompleted concurrently, the same
// rule every Observable follows for its observers.
type Subject[T any] struct {
	mu            sync.Mutex
	observers     map[uint64]Observer[T]
	order         []uint64
	nextID        uint64
	subscriptions int
	terminated    bool
	err           error
}

// NewSubject creates a Subject with no observers.
func NewSubject[T any]() *Subject[T] {
	return &Subject[T]{observers: make(map[uint64]Observer[T])}
}

// Subscribe registers observer. After a terminal notification, late
// observers receive that terminal immediately.
func (s *Subject[T]) Subscribe(observer Observer[T]) Disposable {
	s.mu.Lock()
	s.subscriptions++
	if s.terminated {
		err := s.err
		s.mu.Unlock()
		if err != nil {
			observer.OnError(err)
		} else {
			observer.OnCompleted()
		}
		return NopDisposable()
	}
	id := s.nextID
	s.nextID++
	s.observers[id] = observer
	s.order = append(s.order, id)
	s.mu.Unlock()

	return NewDisposable(func() error {
		s.remove(id)
		return nil
	})
}

func (s *Subject[T]) remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.observers[id]; !ok {
		return
	}
	delete(s.observers, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// snapshot copies the live observers in subscription order. Fan-out runs on
// the copy, outside the lock, so observers may dispose while being notified.
func (s *Subject[T]) snapshot() []Observer[T] {
	out := make([]Observer[T], 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.observers[id])
	}
	return out
}

// OnNext forwards value to every current observer.
func (s *Subject[T]) OnNext(value T) {
	s.mu.Lock()
	if s.terminated {
		s.mu.Unlock()
		return
	}
	observers := s.snapshot()
	s.mu.Unlock()

	for _, o := range observers {
		o.OnNext(value)
	}
}

// OnError terminates the subject with err.
func (s *Subject[T]) OnError(err error) {
	observers, ok := s.terminate(err)
	if !ok {
		return
	}
	for _, o := range observers {
		o.OnError(err)
	}
}

// OnCompleted terminates the subject successfully.
func (s *Subject[T]) OnCompleted() {
	observers, ok := s.terminate(nil)
	if !ok {
		return
	}
	for _, o := range observers {
		o.OnCompleted()
	}
}

func (s *Subject[T]) terminate(err error) ([]Observer[T], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.terminated {
		return nil, false
	}
	s.terminated = true
	s.err = err
	observers := s.snapshot()
	s.observers = make(map[uint64]Observer[T])
	s.order = nil
	return observers, true
}

// Observers returns the number of currently subscribed observers.
func (s *Subject[T]) Observers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// Subscriptions returns how many times Subscribe has been called.
func (s *Subject[T]) Subscriptions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subscriptions
}
