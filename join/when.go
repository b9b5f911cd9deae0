package join

import (
	"fmt"

	"github.com/kbukum/rxkit/errors"
	"github.com/kbukum/rxkit/logger"
	"github.com/kbukum/rxkit/rx"
)

// Coordinator runs a set of plans against the shared pool of their sources.
// It is an rx.Observable of the plans' results; every Subscribe starts an
// independent group with its own buffers and source subscriptions.
type Coordinator[R any] struct {
	plans []*Plan[R]
	opts  *options
}

var _ rx.Observable[int] = (*Coordinator[int])(nil)

// When combines plans into one result sequence.
func When[R any](plans ...*Plan[R]) (*Coordinator[R], error) {
	return WhenAll(plans)
}

// WhenAll combines a runtime collection of plans into one result sequence.
// An empty collection completes as soon as it is subscribed.
func WhenAll[R any](plans []*Plan[R], opts ...Option) (*Coordinator[R], error) {
	for i, p := range plans {
		if p == nil {
			return nil, errors.InvalidArgument(fmt.Sprintf("plans[%d]", i), "plan must not be nil")
		}
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.err != nil {
		return nil, o.err
	}
	o.finish()
	return &Coordinator[R]{
		plans: append([]*Plan[R](nil), plans...),
		opts:  o,
	}, nil
}

// Plans returns the number of plans.
func (c *Coordinator[R]) Plans() int { return len(c.plans) }

// Subscribe activates every plan and subscribes each distinct source once.
// A malformed plan is reported through OnError before any source is
// subscribed.
func (c *Coordinator[R]) Subscribe(observer rx.Observer[R]) rx.Disposable {
	if observer == nil {
		panic("join: nil observer")
	}
	for i, p := range c.plans {
		if reason := p.validate(); reason != "" {
			err := errors.MalformedPlan(i, reason)
			c.opts.log.WithError(err).Error("join activation failed", logger.Fields(
				logger.FieldCoordinator, c.opts.name,
				logger.FieldPlan, i,
			))
			observer.OnError(err)
			return rx.NopDisposable()
		}
	}

	g := newGroup(c.opts)
	g.emitError = observer.OnError
	g.emitCompleted = observer.OnCompleted
	for i, p := range c.plans {
		g.addPlan(i, p.sources, func(values []any) error {
			result, err := p.invoke(values)
			if err != nil {
				return errors.SelectorFailed(i, err)
			}
			if !g.disposed.Load() {
				observer.OnNext(result)
			}
			return nil
		})
	}
	g.start(c.opts.tracer)
	return g
}
