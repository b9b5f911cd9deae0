package rx

// Observable is a push-based producer of values.
type Observable[T any] interface {
	// Subscribe starts delivery to observer. The returned Disposable stops it.
	Subscribe(observer Observer[T]) Disposable
}

// Func is an Observable backed by a subscribe function.
type Func[T any] struct {
	subscribe func(Observer[T]) Disposable
}

// Create builds an Observable from a subscribe function. The observer handed
// to fn ignores anything sent after the first terminal notification.
// A nil Disposable returned by fn is treated as a no-op handle.
func Create[T any](fn func(observer Observer[T]) Disposable) *Func[T] {
	return &Func[T]{subscribe: fn}
}

// Subscribe implements Observable.
func (f *Func[T]) Subscribe(observer Observer[T]) Disposable {
	d := f.subscribe(&terminalGuard[T]{inner: observer})
	if d == nil {
		return NopDisposable()
	}
	return d
}

// FromSlice emits every item synchronously, then completes.
func FromSlice[T any](items []T) *Func[T] {
	return Create(func(o Observer[T]) Disposable {
		for _, item := range items {
			o.OnNext(item)
		}
		o.OnCompleted()
		return NopDisposable()
	})
}

// Empty completes immediately without emitting values.
func Empty[T any]() *Func[T] {
	return Create(func(o Observer[T]) Disposable {
		o.OnCompleted()
		return NopDisposable()
	})
}

// Never emits nothing and never terminates.
func Never[T any]() *Func[T] {
	return Create(func(Observer[T]) Disposable {
		return NopDisposable()
	})
}

// Throw fails immediately with err.
func Throw[T any](err error) *Func[T] {
	return Create(func(o Observer[T]) Disposable {
		o.OnError(err)
		return NopDisposable()
	})
}
