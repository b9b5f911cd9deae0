package rx

// Observer receives the notifications of an Observable.
type Observer[T any] interface {
	OnNext(value T)
	OnError(err error)
	OnCompleted()
}

// ObserverFuncs adapts plain functions to the Observer interface.
// Nil functions are ignored.
type ObserverFuncs[T any] struct {
	Next      func(T)
	Error     func(error)
	Completed func()
}

// NewObserver creates an Observer from callbacks. Any callback may be nil.
func NewObserver[T any](onNext func(T), onError func(error), onCompleted func()) *ObserverFuncs[T] {
	return &ObserverFuncs[T]{Next: onNext, Error: onError, Completed: onCompleted}
}

func (o *ObserverFuncs[T]) OnNext(value T) {
	if o.Next != nil {
		o.Next(value)
	}
}

func (o *ObserverFuncs[T]) OnError(err error) {
	if o.Error != nil {
		o.Error(err)
	}
}

func (o *ObserverFuncs[T]) OnCompleted() {
	if o.Completed != nil {
		o.Completed()
	}
}

// terminalGuard silences an observer after its first terminal notification.
// Callers must serialize calls; it holds no lock.
type terminalGuard[T any] struct {
	inner Observer[T]
	done  bool
}

func (g *terminalGuard[T]) OnNext(value T) {
	if !g.done {
		g.inner.OnNext(value)
	}
}

func (g *terminalGuard[T]) OnError(err error) {
	if g.done {
		return
	}
	g.done = true
	g.inner.OnError(err)
}

func (g *terminalGuard[T]) OnCompleted() {
	if g.done {
		return
	}
	g.done = true
	g.inner.OnCompleted()
}
