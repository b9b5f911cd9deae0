package join

import (
	"github.com/emirpasic/gods/queues/linkedlistqueue"

	"github.com/kbukum/rxkit/logger"
	"github.com/kbukum/rxkit/rx"
)

// joinObserver buffers one source for one subscription group and tracks its
// completion. It holds no lock of its own: every field is guarded by the
// group gate.
type joinObserver struct {
	index     int
	src       source
	group     *group
	queue     *linkedlistqueue.Queue
	completed bool
	plans     []*activePlan
	sub       *rx.SingleAssignment
	released  bool
	warned    bool
}

func newJoinObserver(index int, src source, g *group) *joinObserver {
	return &joinObserver{
		index: index,
		src:   src,
		group: g,
		queue: linkedlistqueue.New(),
		sub:   rx.NewSingleAssignment(),
	}
}

// subscribe starts listening to the source. It must be called without the
// gate held, because a cold source notifies from inside Subscribe.
func (jo *joinObserver) subscribe() {
	if jo.sub.IsDisposed() {
		return
	}
	d := jo.src.subscribe(jo)
	if err := jo.sub.Set(d); err != nil {
		jo.group.log.Warn("source subscription failed to dispose", logger.Fields(
			logger.FieldSource, jo.index,
			logger.FieldError, err.Error(),
		))
	}
}

// ignoring reports whether notifications should be dropped. Gate held.
func (jo *joinObserver) ignoring() bool {
	return jo.released || jo.group.halted()
}

func (jo *joinObserver) OnNext(value any) {
	g := jo.group
	g.gate.Lock()
	defer g.gate.Unlock()
	if jo.ignoring() {
		return
	}

	jo.queue.Enqueue(value)
	depth := jo.queue.Size()
	g.metrics.RecordQueueDepth(g.ctx, g.name, depth)
	if g.queueWarn > 0 && depth >= g.queueWarn && !jo.warned {
		jo.warned = true
		g.log.Warn("source buffer is growing without matches", logger.Fields(
			logger.FieldSource, jo.index,
			logger.FieldQueueDepth, depth,
		))
	}
	g.settle(jo)
}

func (jo *joinObserver) OnError(err error) {
	g := jo.group
	g.gate.Lock()
	defer g.gate.Unlock()
	if jo.ignoring() {
		return
	}
	g.fail(err)
}

func (jo *joinObserver) OnCompleted() {
	g := jo.group
	g.gate.Lock()
	defer g.gate.Unlock()
	if jo.ignoring() {
		return
	}
	jo.completed = true
	g.settle(jo)
}

// dequeue pops the head element. Callers check the size first.
func (jo *joinObserver) dequeue() any {
	v, ok := jo.queue.Dequeue()
	if !ok {
		panic("join: dequeue from empty source buffer")
	}
	return v
}

func (jo *joinObserver) size() int { return jo.queue.Size() }

func (jo *joinObserver) removePlan(ap *activePlan) {
	for i, p := range jo.plans {
		if p == ap {
			jo.plans = append(jo.plans[:i:i], jo.plans[i+1:]...)
			return
		}
	}
}
