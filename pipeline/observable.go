package pipeline

import (
	"context"
	"sync"

	"github.com/kbukum/rxkit/rx"
)

// result carries a value or terminal signal from the push side.
type result[T any] struct {
	val  T
	err  error
	done bool
}

// observableIter buffers notifications from an Observable until pulled.
// The buffer is unbounded: sources cannot be slowed down, and synchronous
// sources emit everything inside Subscribe.
type observableIter[T any] struct {
	source rx.Observable[T]

	once   sync.Once
	sub    rx.Disposable
	mu     sync.Mutex
	queue  []result[T]
	signal chan struct{}
	closed bool
}

// FromObservable returns an Iterator over source. The subscription starts on
// the first call to Next; Close disposes it.
func FromObservable[T any](source rx.Observable[T]) Iterator[T] {
	return &observableIter[T]{
		source: source,
		signal: make(chan struct{}, 1),
	}
}

func (it *observableIter[T]) push(r result[T]) {
	it.mu.Lock()
	if it.closed {
		it.mu.Unlock()
		return
	}
	it.queue = append(it.queue, r)
	it.mu.Unlock()

	select {
	case it.signal <- struct{}{}:
	default:
	}
}

func (it *observableIter[T]) OnNext(value T)    { it.push(result[T]{val: value}) }
func (it *observableIter[T]) OnError(err error) { it.push(result[T]{err: err, done: true}) }
func (it *observableIter[T]) OnCompleted()      { it.push(result[T]{done: true}) }

func (it *observableIter[T]) start() {
	it.once.Do(func() {
		d := it.source.Subscribe(it)
		it.mu.Lock()
		it.sub = d
		closed := it.closed
		it.mu.Unlock()
		if closed {
			_ = d.Dispose()
		}
	})
}

func (it *observableIter[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	it.start()
	for {
		it.mu.Lock()
		if it.closed {
			it.mu.Unlock()
			return zero, false, nil
		}
		if len(it.queue) > 0 {
			r := it.queue[0]
			if !r.done {
				it.queue = it.queue[1:]
			}
			it.mu.Unlock()
			if r.done {
				return zero, false, r.err
			}
			return r.val, true, nil
		}
		it.mu.Unlock()

		select {
		case <-it.signal:
		case <-ctx.Done():
			return zero, false, ctx.Err()
		}
	}
}

func (it *observableIter[T]) Close() error {
	it.mu.Lock()
	if it.closed {
		it.mu.Unlock()
		return nil
	}
	it.closed = true
	it.queue = nil
	sub := it.sub
	it.mu.Unlock()

	if sub != nil {
		return sub.Dispose()
	}
	return nil
}

// ToObservable returns a cold Observable. Each subscription creates its own
// iterator with factory and pulls it on a dedicated goroutine until the
// iterator is exhausted, fails or the subscription is disposed.
func ToObservable[T any](factory func(ctx context.Context) Iterator[T]) *rx.Func[T] {
	return rx.Create(func(o rx.Observer[T]) rx.Disposable {
		ctx, cancel := context.WithCancel(context.Background())
		iter := factory(ctx)

		go func() {
			defer iter.Close()
			for {
				val, ok, err := iter.Next(ctx)
				if ctx.Err() != nil {
					return
				}
				if err != nil {
					o.OnError(err)
					return
				}
				if !ok {
					o.OnCompleted()
					return
				}
				o.OnNext(val)
			}
		}()

		return rx.NewDisposable(func() error {
			cancel()
			return nil
		})
	})
}
