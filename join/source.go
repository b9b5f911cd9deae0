package join

import (
	"fmt"
	"reflect"

	"github.com/kbukum/rxkit/errors"
	"github.com/kbukum/rxkit/rx"
)

// source is a type-erased, identity-keyed reference to an observable.
type source struct {
	key       any
	kind      string
	subscribe func(sink rx.Observer[any]) rx.Disposable
}

func newSource[T any](obs rx.Observable[T], arg string) (source, error) {
	if isNil(obs) {
		return source{}, errors.InvalidArgument(arg, "source must not be nil")
	}
	if !reflect.TypeOf(obs).Comparable() {
		return source{}, errors.InvalidArgument(arg,
			fmt.Sprintf("source type %T cannot be compared for identity", obs))
	}
	return source{
		key:  obs,
		kind: fmt.Sprintf("%T", obs),
		subscribe: func(sink rx.Observer[any]) rx.Disposable {
			return obs.Subscribe(erased[T]{sink: sink})
		},
	}, nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface, reflect.Slice:
		return rv.IsNil()
	}
	return false
}

// erased forwards typed notifications to an untyped sink.
type erased[T any] struct {
	sink rx.Observer[any]
}

func (e erased[T]) OnNext(value T)    { e.sink.OnNext(value) }
func (e erased[T]) OnError(err error) { e.sink.OnError(err) }
func (e erased[T]) OnCompleted()      { e.sink.OnCompleted() }

// as converts a buffered element back to its source type. Nil interface
// values stay zero.
func as[T any](v any) T {
	t, _ := v.(T)
	return t
}

// appendSource returns a new slice so patterns never share backing arrays.
func appendSource(sources []source, s source) []source {
	out := make([]source, len(sources), len(sources)+1)
	copy(out, sources)
	return append(out, s)
}
