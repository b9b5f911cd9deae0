package join

import (
	"fmt"

	"github.com/kbukum/rxkit/errors"
	"github.com/kbukum/rxkit/rx"
)

// Plan is a pattern bound to the function that computes a result from one
// buffered element per source. Plans are immutable and can be shared between
// coordinators and subscriptions.
type Plan[R any] struct {
	sources  []source
	selector func(values []any) (R, error)
}

// Arity returns the number of pattern slots.
func (p *Plan[R]) Arity() int { return len(p.sources) }

// validate reports why p cannot be activated. A Plan built by the Then
// functions is always valid; a zero Plan is not.
func (p *Plan[R]) validate() string {
	switch {
	case len(p.sources) == 0:
		return "pattern has no sources"
	case p.selector == nil:
		return "no selector bound"
	}
	return ""
}

// invoke runs the selector, turning a panic into an error.
func (p *Plan[R]) invoke(values []any) (result R, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("selector panicked: %v", r)
		}
	}()
	return p.selector(values)
}

func missingSelector() error {
	return errors.InvalidArgument("selector", "must not be nil")
}

func missingPattern() error {
	return errors.InvalidArgument("pattern", "must not be nil")
}

// Then1 creates a single-source plan: every element of src is mapped by fn.
func Then1[T1, R any](src rx.Observable[T1], fn func(T1) (R, error)) (*Plan[R], error) {
	if fn == nil {
		return nil, missingSelector()
	}
	s, err := newSource(src, "source")
	if err != nil {
		return nil, err
	}
	return &Plan[R]{
		sources: []source{s},
		selector: func(v []any) (R, error) {
			return fn(as[T1](v[0]))
		},
	}, nil
}

// Then2 binds fn to a two-source pattern.
func Then2[T1, T2, R any](p *Pattern2[T1, T2], fn func(T1, T2) (R, error)) (*Plan[R], error) {
	if p == nil {
		return nil, missingPattern()
	}
	if fn == nil {
		return nil, missingSelector()
	}
	return &Plan[R]{
		sources: p.sources,
		selector: func(v []any) (R, error) {
			return fn(as[T1](v[0]), as[T2](v[1]))
		},
	}, nil
}

// Then3 binds fn to a three-source pattern.
func Then3[T1, T2, T3, R any](p *Pattern3[T1, T2, T3], fn func(T1, T2, T3) (R, error)) (*Plan[R], error) {
	if p == nil {
		return nil, missingPattern()
	}
	if fn == nil {
		return nil, missingSelector()
	}
	return &Plan[R]{
		sources: p.sources,
		selector: func(v []any) (R, error) {
			return fn(as[T1](v[0]), as[T2](v[1]), as[T3](v[2]))
		},
	}, nil
}

// Then4 binds fn to a four-source pattern.
func Then4[T1, T2, T3, T4, R any](p *Pattern4[T1, T2, T3, T4], fn func(T1, T2, T3, T4) (R, error)) (*Plan[R], error) {
	if p == nil {
		return nil, missingPattern()
	}
	if fn == nil {
		return nil, missingSelector()
	}
	return &Plan[R]{
		sources: p.sources,
		selector: func(v []any) (R, error) {
			return fn(as[T1](v[0]), as[T2](v[1]), as[T3](v[2]), as[T4](v[3]))
		},
	}, nil
}

// ThenN binds fn to an untyped pattern. fn receives a fresh slice holding one
// element per source, in pattern order.
func ThenN[R any](p *Pattern, fn func(values []any) (R, error)) (*Plan[R], error) {
	if p == nil {
		return nil, missingPattern()
	}
	if fn == nil {
		return nil, missingSelector()
	}
	return &Plan[R]{sources: p.sources, selector: fn}, nil
}
