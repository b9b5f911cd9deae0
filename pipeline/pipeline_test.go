package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/kbukum/rxkit/rx"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestFromSlice_Collect(t *testing.T) {
	got, err := Collect(context.Background(), FromSlice([]int{1, 2, 3}))
	if err != nil {
		t.Fatal(err)
	}
	if !intSliceEqual(got, []int{1, 2, 3}) {
		t.Errorf("got %v, want [1 2 3]", got)
	}
}

func TestFromSlice_Empty(t *testing.T) {
	got, err := Collect(context.Background(), FromSlice([]int{}))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty, got %v", got)
	}
}

func TestFromObservable_Synchronous(t *testing.T) {
	it := FromObservable[int](rx.FromSlice([]int{4, 5, 6}))
	got, err := Collect(context.Background(), it)
	if err != nil {
		t.Fatal(err)
	}
	if !intSliceEqual(got, []int{4, 5, 6}) {
		t.Errorf("got %v, want [4 5 6]", got)
	}
}

func TestFromObservable_Error(t *testing.T) {
	boom := errors.New("boom")
	src := rx.Create(func(o rx.Observer[int]) rx.Disposable {
		o.OnNext(1)
		o.OnError(boom)
		return nil
	})
	got, err := Collect(context.Background(), FromObservable[int](src))
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if !intSliceEqual(got, []int{1}) {
		t.Errorf("expected [1] before error, got %v", got)
	}
}

func TestFromObservable_ErrorIsSticky(t *testing.T) {
	boom := errors.New("boom")
	it := FromObservable[int](rx.Throw[int](boom))
	defer it.Close()
	for range 2 {
		if _, ok, err := it.Next(context.Background()); ok || !errors.Is(err, boom) {
			t.Errorf("expected sticky boom, got ok=%v err=%v", ok, err)
		}
	}
}

func TestFromObservable_Async(t *testing.T) {
	s := rx.NewSubject[string]()
	it := FromObservable[string](s)
	defer it.Close()

	go func() {
		for s.Observers() == 0 {
			time.Sleep(time.Millisecond)
		}
		s.OnNext("a")
		s.OnNext("b")
		s.OnCompleted()
	}()

	got, err := Collect(context.Background(), it)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("got %v, want [a b]", got)
	}
}

func TestFromObservable_ContextCancel(t *testing.T) {
	s := rx.NewSubject[int]()
	it := FromObservable[int](s)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, ok, err := it.Next(ctx)
	if ok || !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got ok=%v err=%v", ok, err)
	}

	if err := it.Close(); err != nil {
		t.Fatal(err)
	}
	if s.Observers() != 0 {
		t.Errorf("expected Close to dispose the subscription, %d observers left", s.Observers())
	}
	if _, ok, err := it.Next(context.Background()); ok || err != nil {
		t.Errorf("expected exhausted after close, got ok=%v err=%v", ok, err)
	}
}

func TestToObservable(t *testing.T) {
	obs := ToObservable(func(context.Context) Iterator[int] {
		return FromSlice([]int{1, 2, 3})
	})

	for range 2 {
		got, err := Collect(context.Background(), FromObservable[int](obs))
		if err != nil {
			t.Fatal(err)
		}
		if !intSliceEqual(got, []int{1, 2, 3}) {
			t.Errorf("got %v, want [1 2 3]", got)
		}
	}
}

type failingIter struct{ err error }

func (f *failingIter) Next(context.Context) (int, bool, error) { return 0, false, f.err }
func (f *failingIter) Close() error                          { return nil }

func TestToObservable_Error(t *testing.T) {
	boom := errors.New("boom")
	obs := ToObservable(func(context.Context) Iterator[int] { return &failingIter{err: boom} })
	_, err := Collect(context.Background(), FromObservable[int](obs))
	if !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
}

type blockingIter struct{ closed chan struct{} }

func (b *blockingIter) Next(ctx context.Context) (int, bool, error) {
	<-ctx.Done()
	return 0, false, ctx.Err()
}

func (b *blockingIter) Close() error {
	close(b.closed)
	return nil
}

func TestToObservable_DisposeStopsPulling(t *testing.T) {
	iter := &blockingIter{closed: make(chan struct{})}
	obs := ToObservable(func(context.Context) Iterator[int] { return iter })

	notified := false
	d := obs.Subscribe(rx.NewObserver(
		func(int) { notified = true },
		func(error) { notified = true },
		func() { notified = true },
	))
	_ = d.Dispose()

	select {
	case <-iter.closed:
	case <-time.After(time.Second):
		t.Fatal("expected iterator to be closed after dispose")
	}
	if notified {
		t.Error("expected no notifications after dispose")
	}
}

func intSliceEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
