package rx

import (
	"errors"
	"sync"
)

// Disposable releases a subscription. Dispose is idempotent: only the first
// call does work, later calls return nil.
type Disposable interface {
	Dispose() error
}

type funcDisposable struct {
	once sync.Once
	fn   func() error
}

// NewDisposable wraps fn so it runs at most once.
func NewDisposable(fn func() error) Disposable {
	return &funcDisposable{fn: fn}
}

func (d *funcDisposable) Dispose() error {
	var err error
	d.once.Do(func() {
		if d.fn != nil {
			err = d.fn()
		}
	})
	return err
}

type nopDisposable struct{}

func (nopDisposable) Dispose() error { return nil }

// NopDisposable returns a handle whose Dispose does nothing.
func NopDisposable() Disposable { return nopDisposable{} }

// Composite disposes a group of handles together.
type Composite struct {
	mu       sync.Mutex
	items    []Disposable
	disposed bool
}

// NewComposite creates a Composite holding the given handles.
func NewComposite(items ...Disposable) *Composite {
	return &Composite{items: append([]Disposable(nil), items...)}
}

// Add adds d to the group. If the group is already disposed, d is disposed
// immediately and its error returned.
func (c *Composite) Add(d Disposable) error {
	if d == nil {
		return nil
	}
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return d.Dispose()
	}
	c.items = append(c.items, d)
	c.mu.Unlock()
	return nil
}

// Len returns the number of handles currently held.
func (c *Composite) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// IsDisposed reports whether Dispose has been called.
func (c *Composite) IsDisposed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disposed
}

// Dispose disposes every handle, continuing past failures. The returned error
// joins every individual failure.
func (c *Composite) Dispose() error {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return nil
	}
	c.disposed = true
	items := c.items
	c.items = nil
	c.mu.Unlock()

	var errs []error
	for _, d := range items {
		if err := d.Dispose(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// SingleAssignment holds a handle that becomes known after the holder is
// created, such as the result of a Subscribe call that may emit synchronously.
type SingleAssignment struct {
	mu       sync.Mutex
	inner    Disposable
	disposed bool
}

// NewSingleAssignment creates an empty SingleAssignment.
func NewSingleAssignment() *SingleAssignment {
	return &SingleAssignment{}
}

// Set assigns the inner handle. When the holder was disposed first, d is
// disposed right away. Set panics if called twice.
func (s *SingleAssignment) Set(d Disposable) error {
	s.mu.Lock()
	if s.inner != nil {
		s.mu.Unlock()
		panic("rx: SingleAssignment already set")
	}
	if d == nil {
		d = NopDisposable()
	}
	s.inner = d
	disposed := s.disposed
	s.mu.Unlock()

	if disposed {
		return d.Dispose()
	}
	return nil
}

// IsDisposed reports whether Dispose has been called.
func (s *SingleAssignment) IsDisposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}

// Dispose disposes the inner handle if assigned.
func (s *SingleAssignment) Dispose() error {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return nil
	}
	s.disposed = true
	inner := s.inner
	s.mu.Unlock()

	if inner == nil {
		return nil
	}
	return inner.Dispose()
}
