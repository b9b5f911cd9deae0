// Package join composes independently-clocked observables with join patterns.
//
// A Pattern names the sources that must all hold buffered data before a rule
// may fire. A Plan binds a result function to a pattern. When runs a set of
// plans against the deduplicated pool of their sources and exposes the results
// as a new observable.
//
// # Building plans
//
//	pairs, err := join.And(orders, payments)
//	plan, err := join.Then2(pairs, func(o Order, p Payment) (Receipt, error) {
//	    return newReceipt(o, p), nil
//	})
//	coordinator, err := join.When(plan, otherPlan)
//	sub := coordinator.Subscribe(observer)
//	defer sub.Dispose()
//
// Patterns and plans are immutable descriptions and never subscribe to
// anything. Construction errors are returned synchronously.
//
// # Matching
//
// Each source is subscribed once per coordinator subscription, however many
// plans name it; sources are identified by Go equality of the observable
// value, so pointer-typed observables are deduplicated by identity. Elements
// are buffered per source and consumed strictly FIFO. A plan fires when every
// one of its sources has data, taking the head element of each in pattern
// order. When plans sharing a source are satisfiable at once, the plan passed
// to When first fires first. A plan whose source completed with too few
// elements buffered can never fire again and is deactivated; once every plan
// is deactivated the result completes.
//
// The first source error or selector error disposes every source
// subscription and is delivered exactly once; nothing is emitted after it.
//
// # Concurrency
//
// Sources may notify from any goroutine. All buffering, matching and
// emission for one subscription run under a single mutex, so the downstream
// observer never sees overlapping calls. The package starts no goroutines.
// Disposing a subscription never blocks on that mutex and is safe from inside
// the downstream observer's callbacks.
// The downstream observer must not synchronously notify a source of the same
// subscription: the mutex is held while results are delivered.
package join
