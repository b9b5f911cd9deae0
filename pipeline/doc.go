// Package pipeline bridges push-based rx observables and pull-based iterators.
//
// The Iterator interface is the toolkit's pull contract: values are requested
// with Next and the stream ends with (zero, false, nil). FromObservable turns a
// push source into an Iterator so results can be consumed in a plain loop;
// ToObservable adapts an iterator factory into a cold Observable.
//
// # Usage
//
//	coordinator, _ := join.When(plan)
//	it := pipeline.FromObservable[string](coordinator)
//	defer it.Close()
//	results, err := pipeline.Collect(ctx, it)
//
// Pull side:
//
//	obs := pipeline.ToObservable(func(ctx context.Context) pipeline.Iterator[int] {
//	    return pipeline.FromSlice([]int{1, 2, 3})
//	})
package pipeline
