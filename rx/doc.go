// Package rx provides the push-based observable primitives the rest of the
// toolkit composes: observers, observables, disposables and subjects.
//
// An Observable delivers zero or more values followed by at most one terminal
// signal (an error or completion), never both, never a value after the
// terminal signal and never concurrent calls to the same observer.
//
// # Usage
//
//	src := rx.FromSlice([]int{1, 2, 3})
//	sub := src.Subscribe(rx.NewObserver(
//	    func(n int) { fmt.Println(n) },
//	    func(err error) { log.Println(err) },
//	    func() { fmt.Println("done") },
//	))
//	defer sub.Dispose()
//
// Hot sources:
//
//	s := rx.NewSubject[string]()
//	s.Subscribe(observer)
//	s.OnNext("a")
//	s.OnCompleted()
//
// Every constructor returns a pointer, so sources are comparable by identity.
// Operators that share one subscription per source (see package join) rely on
// that identity.
package rx
