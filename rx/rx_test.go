package rx

import (
	"errors"
	"testing"
)

type recorder[T any] struct {
	values    []T
	errs      []error
	completed int
}

func (r *recorder[T]) OnNext(v T)        { r.values = append(r.values, v) }
func (r *recorder[T]) OnError(err error) { r.errs = append(r.errs, err) }
func (r *recorder[T]) OnCompleted()      { r.completed++ }

func TestFromSlice(t *testing.T) {
	rec := &recorder[int]{}
	FromSlice([]int{1, 2, 3}).Subscribe(rec)

	if len(rec.values) != 3 || rec.values[0] != 1 || rec.values[2] != 3 {
		t.Errorf("expected [1 2 3], got %v", rec.values)
	}
	if rec.completed != 1 {
		t.Errorf("expected 1 completion, got %d", rec.completed)
	}
}

func TestEmptyAndThrow(t *testing.T) {
	rec := &recorder[int]{}
	Empty[int]().Subscribe(rec)
	if rec.completed != 1 || len(rec.values) != 0 {
		t.Errorf("expected bare completion, got values=%v completed=%d", rec.values, rec.completed)
	}

	boom := errors.New("boom")
	rec = &recorder[int]{}
	Throw[int](boom).Subscribe(rec)
	if len(rec.errs) != 1 || !errors.Is(rec.errs[0], boom) {
		t.Errorf("expected boom, got %v", rec.errs)
	}
}

func TestNever(t *testing.T) {
	rec := &recorder[int]{}
	d := Never[int]().Subscribe(rec)
	if d == nil {
		t.Fatal("expected non-nil disposable")
	}
	if len(rec.values) != 0 || rec.completed != 0 || len(rec.errs) != 0 {
		t.Error("expected no notifications")
	}
}

func TestCreate_SilencesAfterTerminal(t *testing.T) {
	src := Create(func(o Observer[int]) Disposable {
		o.OnNext(1)
		o.OnCompleted()
		o.OnNext(2)
		o.OnError(errors.New("late"))
		o.OnCompleted()
		return nil
	})
	rec := &recorder[int]{}
	d := src.Subscribe(rec)

	if d == nil {
		t.Fatal("expected nil disposable to be replaced")
	}
	if len(rec.values) != 1 {
		t.Errorf("expected one value, got %v", rec.values)
	}
	if rec.completed != 1 || len(rec.errs) != 0 {
		t.Errorf("expected exactly one completion, got completed=%d errs=%v", rec.completed, rec.errs)
	}
}

func TestCreate_DistinctIdentity(t *testing.T) {
	a := FromSlice([]int{1})
	b := FromSlice([]int{1})
	if Observable[int](a) == Observable[int](b) {
		t.Error("expected distinct sources to compare unequal")
	}
	if Observable[int](a) != Observable[int](a) {
		t.Error("expected a source to equal itself")
	}
}

func TestNewObserver_NilCallbacks(t *testing.T) {
	o := NewObserver[int](nil, nil, nil)
	o.OnNext(1)
	o.OnError(errors.New("x"))
	o.OnCompleted()
}

func TestNewDisposable_RunsOnce(t *testing.T) {
	calls := 0
	d := NewDisposable(func() error {
		calls++
		return errors.New("fail")
	})
	if err := d.Dispose(); err == nil {
		t.Error("expected first dispose to return the error")
	}
	if err := d.Dispose(); err != nil {
		t.Errorf("expected nil on second dispose, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestComposite_BestEffort(t *testing.T) {
	first := errors.New("first")
	second := errors.New("second")
	disposed := 0

	c := NewComposite(
		NewDisposable(func() error { disposed++; return first }),
		NewDisposable(func() error { disposed++; return nil }),
	)
	if err := c.Add(NewDisposable(func() error { disposed++; return second })); err != nil {
		t.Fatalf("unexpected add error: %v", err)
	}
	if c.Len() != 3 {
		t.Errorf("expected 3 handles, got %d", c.Len())
	}

	err := c.Dispose()
	if disposed != 3 {
		t.Errorf("expected all 3 disposed, got %d", disposed)
	}
	if !errors.Is(err, first) || !errors.Is(err, second) {
		t.Errorf("expected joined error, got %v", err)
	}
	if !c.IsDisposed() {
		t.Error("expected composite to report disposed")
	}
	if err := c.Dispose(); err != nil {
		t.Errorf("expected idempotent dispose, got %v", err)
	}
}

func TestComposite_AddAfterDispose(t *testing.T) {
	c := NewComposite()
	_ = c.Dispose()

	disposed := false
	_ = c.Add(NewDisposable(func() error { disposed = true; return nil }))
	if !disposed {
		t.Error("expected late handle to be disposed immediately")
	}
	if c.Len() != 0 {
		t.Errorf("expected no retained handles, got %d", c.Len())
	}
	if err := c.Add(nil); err != nil {
		t.Errorf("expected nil add to be ignored, got %v", err)
	}
}

func TestSingleAssignment(t *testing.T) {
	t.Run("dispose after set", func(t *testing.T) {
		s := NewSingleAssignment()
		disposed := false
		_ = s.Set(NewDisposable(func() error { disposed = true; return nil }))
		if disposed {
			t.Fatal("expected inner to stay live until dispose")
		}
		_ = s.Dispose()
		if !disposed {
			t.Error("expected inner to be disposed")
		}
	})

	t.Run("dispose before set", func(t *testing.T) {
		s := NewSingleAssignment()
		_ = s.Dispose()
		if !s.IsDisposed() {
			t.Fatal("expected disposed")
		}
		disposed := false
		_ = s.Set(NewDisposable(func() error { disposed = true; return nil }))
		if !disposed {
			t.Error("expected late inner to be disposed on set")
		}
	})

	t.Run("double set panics", func(t *testing.T) {
		s := NewSingleAssignment()
		_ = s.Set(NopDisposable())
		defer func() {
			if recover() == nil {
				t.Error("expected panic on second set")
			}
		}()
		_ = s.Set(NopDisposable())
	})
}

func TestSubject_Multicast(t *testing.T) {
	s := NewSubject[string]()
	a, b := &recorder[string]{}, &recorder[string]{}
	da := s.Subscribe(a)
	s.Subscribe(b)

	s.OnNext("x")
	_ = da.Dispose()
	s.OnNext("y")
	s.OnCompleted()
	s.OnNext("z")

	if len(a.values) != 1 || a.values[0] != "x" {
		t.Errorf("expected a=[x], got %v", a.values)
	}
	if a.completed != 0 {
		t.Error("expected disposed observer to miss completion")
	}
	if len(b.values) != 2 || b.completed != 1 {
		t.Errorf("expected b=[x y] completed, got %v completed=%d", b.values, b.completed)
	}
	if s.Subscriptions() != 2 {
		t.Errorf("expected 2 subscriptions, got %d", s.Subscriptions())
	}
	if s.Observers() != 0 {
		t.Errorf("expected 0 observers after completion, got %d", s.Observers())
	}
}

func TestSubject_LateSubscriberGetsTerminal(t *testing.T) {
	boom := errors.New("boom")
	s := NewSubject[int]()
	s.OnError(boom)
	s.OnCompleted()

	rec := &recorder[int]{}
	s.Subscribe(rec)
	if len(rec.errs) != 1 || !errors.Is(rec.errs[0], boom) {
		t.Errorf("expected replayed error, got %v", rec.errs)
	}
	if rec.completed != 0 {
		t.Error("expected no completion after error")
	}
}

func TestSubject_DisposeDuringFanOut(t *testing.T) {
	s := NewSubject[int]()
	rec := &recorder[int]{}
	var d Disposable
	d = s.Subscribe(NewObserver(func(v int) {
		rec.OnNext(v)
		_ = d.Dispose()
	}, nil, nil))

	s.OnNext(1)
	s.OnNext(2)
	if len(rec.values) != 1 {
		t.Errorf("expected one value before self-dispose, got %v", rec.values)
	}
}
