package join

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/emirpasic/gods/sets/hashset"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/rxkit/errors"
	"github.com/kbukum/rxkit/logger"
	"github.com/kbukum/rxkit/observability"
	"github.com/kbukum/rxkit/rx"
)

// group is the runtime state of one coordinator subscription.
type group struct {
	gate sync.Mutex

	id        string
	name      string
	queueWarn int

	// Guarded by gate.
	observers []*joinObserver
	byKey     map[any]*joinObserver
	plans     []*activePlan
	live      int
	stopped   bool
	work      []*joinObserver
	pending   *hashset.Set

	emitError     func(error)
	emitCompleted func()

	subs       *rx.Composite
	disposed   atomic.Bool
	terminated atomic.Bool
	fires      atomic.Int64

	log     *logger.Logger
	metrics *observability.Metrics
	ctx     context.Context
	span    trace.Span
	started time.Time
}

func newGroup(o *options) *group {
	id := uuid.NewString()
	return &group{
		id:        id,
		name:      o.name,
		queueWarn: o.queueWarn,
		byKey:     make(map[any]*joinObserver),
		pending:   hashset.New(),
		subs:      rx.NewComposite(),
		metrics:   o.metrics,
		log: o.log.WithFields(logger.Fields(
			logger.FieldCoordinator, o.name,
			logger.FieldSubscriptionID, id,
		)),
	}
}

// observerFor returns the observer of src, creating it on first use.
func (g *group) observerFor(src source) *joinObserver {
	if jo, ok := g.byKey[src.key]; ok {
		return jo
	}
	jo := newJoinObserver(len(g.observers), src, g)
	g.byKey[src.key] = jo
	g.observers = append(g.observers, jo)
	_ = g.subs.Add(jo.sub)
	return jo
}

// addPlan activates one plan. Plans must be added in registration order.
func (g *group) addPlan(index int, sources []source, fire func([]any) error) {
	observers := make([]*joinObserver, len(sources))
	for i, src := range sources {
		observers[i] = g.observerFor(src)
	}
	ap := newActivePlan(index, observers, fire)
	for _, s := range ap.slots {
		s.observer.plans = append(s.observer.plans, ap)
	}
	g.plans = append(g.plans, ap)
	g.live++
}

// start subscribes every source. Subscribe calls run outside the gate; a
// source that terminates the group stops the remaining subscriptions.
func (g *group) start(tracer trace.Tracer) {
	g.started = time.Now()
	g.ctx, g.span = tracer.Start(context.Background(), observability.SpanJoinWhen,
		trace.WithAttributes(
			attribute.String(observability.AttrSubscriptionID, g.id),
			attribute.Int(observability.AttrPlans, len(g.plans)),
			attribute.Int(observability.AttrSources, len(g.observers)),
		))
	g.metrics.RecordSubscribe(g.ctx, g.name)
	g.log.Debug("join subscription started", logger.Fields(
		logger.FieldPlans, len(g.plans),
		logger.FieldSources, len(g.observers),
	))

	if len(g.plans) == 0 {
		g.gate.Lock()
		g.complete()
		g.gate.Unlock()
		return
	}
	for _, jo := range g.observers {
		if g.subs.IsDisposed() {
			return
		}
		jo.subscribe()
	}
}

// halted reports whether the group stopped or was disposed. Gate held.
func (g *group) halted() bool {
	return g.stopped || g.disposed.Load()
}

func (g *group) mark(jo *joinObserver) {
	if jo.released || g.pending.Contains(jo) {
		return
	}
	g.pending.Add(jo)
	g.work = append(g.work, jo)
}

// settle rechecks plans until none can fire, starting from trigger. Each
// dirty observer rechecks its plans in registration order; a fire marks every
// observer of the fired plan dirty again. Gate held.
func (g *group) settle(trigger *joinObserver) {
	g.mark(trigger)
	for len(g.work) > 0 {
		jo := g.work[0]
		g.work[0] = nil
		g.work = g.work[1:]
		g.pending.Remove(jo)

		plans := append([]*activePlan(nil), jo.plans...)
		for _, ap := range plans {
			if g.halted() {
				g.resetWork()
				return
			}
			if !ap.active {
				continue
			}
			state, err := ap.recheck()
			if err != nil {
				g.fail(err)
				return
			}
			switch state {
			case fired:
				g.fires.Add(1)
				g.metrics.RecordFire(g.ctx, g.name, ap.index)
				for _, s := range ap.slots {
					g.mark(s.observer)
				}
			case exhausted:
				g.deactivate(ap)
			}
		}
	}
	g.resetWork()
}

func (g *group) resetWork() {
	g.work = nil
	g.pending.Clear()
}

// deactivate removes a plan that can never fire again. Observers left with
// no plans are released; the group completes with the last plan.
func (g *group) deactivate(ap *activePlan) {
	ap.active = false
	g.live--
	g.metrics.RecordDeactivation(g.ctx, g.name, ap.index)
	g.log.Debug("join plan deactivated", logger.Fields(logger.FieldPlan, ap.index))

	for _, s := range ap.slots {
		s.observer.removePlan(ap)
		if len(s.observer.plans) == 0 {
			g.release(s.observer)
		}
	}
	if g.live == 0 {
		g.complete()
	}
}

// release drops an observer no plan depends on and disposes its source
// subscription.
func (g *group) release(jo *joinObserver) {
	if jo.released {
		return
	}
	jo.released = true
	jo.queue.Clear()
	if err := jo.sub.Dispose(); err != nil {
		g.log.Warn("released source failed to dispose", logger.Fields(
			logger.FieldSource, jo.index,
			logger.FieldError, err.Error(),
		))
	}
}

// teardown disposes every source subscription. Failures are logged only.
func (g *group) teardown() {
	if err := g.subs.Dispose(); err != nil {
		g.log.WithError(errors.TeardownFailed(err)).Warn("join teardown incomplete")
	}
}

func (g *group) complete() {
	if g.stopped {
		return
	}
	g.stopped = true
	g.teardown()
	if !g.disposed.Load() {
		g.emitCompleted()
	}
	g.terminate(observability.StateCompleted, nil)
}

func (g *group) fail(err error) {
	if g.stopped {
		return
	}
	g.stopped = true
	g.teardown()
	g.log.WithError(err).Error("join subscription failed", logger.Fields(
		logger.FieldFires, g.fires.Load(),
	))
	if !g.disposed.Load() {
		g.emitError(err)
	}
	g.terminate(observability.StateFailed, err)
}

// Dispose cancels the subscription. It never takes the gate, so it is safe
// from inside the downstream observer.
func (g *group) Dispose() error {
	if g.disposed.Swap(true) {
		return nil
	}
	err := g.subs.Dispose()
	g.terminate(observability.StateDisposed, nil)
	return err
}

// terminate records the end of the group once.
func (g *group) terminate(state string, err error) {
	if !g.terminated.CompareAndSwap(false, true) {
		return
	}
	lifetime := time.Since(g.started)
	fires := g.fires.Load()
	g.metrics.RecordTermination(g.ctx, g.name, state, lifetime)
	g.log.Debug("join subscription terminated", logger.MergeWithDuration(logger.Fields(
		logger.FieldState, state,
		logger.FieldFires, fires,
	), lifetime))

	g.span.SetAttributes(
		attribute.Int64(observability.AttrFires, fires),
		attribute.String(observability.AttrState, state),
	)
	if err != nil {
		g.span.RecordError(err)
		g.span.SetStatus(codes.Error, err.Error())
	}
	g.span.End()
}
