package join

import (
	"fmt"

	"github.com/kbukum/rxkit/errors"
	"github.com/kbukum/rxkit/rx"
)

// Pattern is an untyped conjunction of any number of sources. Use it when
// more sources are needed than the typed patterns offer.
type Pattern struct {
	sources []source
}

// NewPattern starts an untyped pattern with a single source.
func NewPattern[T any](src rx.Observable[T]) (*Pattern, error) {
	s, err := newSource(src, "source")
	if err != nil {
		return nil, err
	}
	return &Pattern{sources: []source{s}}, nil
}

// Extend returns a new pattern that also requires src. p is unchanged.
func Extend[T any](p *Pattern, src rx.Observable[T]) (*Pattern, error) {
	if p == nil {
		return nil, errors.InvalidArgument("pattern", "must not be nil")
	}
	s, err := newSource(src, fmt.Sprintf("source[%d]", len(p.sources)))
	if err != nil {
		return nil, err
	}
	return &Pattern{sources: appendSource(p.sources, s)}, nil
}

// And returns a new pattern that also requires src.
func (p *Pattern) And(src rx.Observable[any]) (*Pattern, error) {
	return Extend(p, src)
}

// Len returns the number of sources in the pattern.
func (p *Pattern) Len() int { return len(p.sources) }

// Pattern2 is a conjunction of two typed sources.
type Pattern2[T1, T2 any] struct {
	sources []source
}

// And creates a pattern that matches when both a and b have data.
func And[T1, T2 any](a rx.Observable[T1], b rx.Observable[T2]) (*Pattern2[T1, T2], error) {
	s1, err := newSource(a, "source[0]")
	if err != nil {
		return nil, err
	}
	s2, err := newSource(b, "source[1]")
	if err != nil {
		return nil, err
	}
	return &Pattern2[T1, T2]{sources: []source{s1, s2}}, nil
}

// Pattern returns the untyped form of p, for extending past four sources.
func (p *Pattern2[T1, T2]) Pattern() *Pattern {
	return &Pattern{sources: p.sources}
}

// Pattern3 is a conjunction of three typed sources.
type Pattern3[T1, T2, T3 any] struct {
	sources []source
}

// And3 extends a two-source pattern with c.
func And3[T1, T2, T3 any](p *Pattern2[T1, T2], c rx.Observable[T3]) (*Pattern3[T1, T2, T3], error) {
	if p == nil {
		return nil, errors.InvalidArgument("pattern", "must not be nil")
	}
	s, err := newSource(c, "source[2]")
	if err != nil {
		return nil, err
	}
	return &Pattern3[T1, T2, T3]{sources: appendSource(p.sources, s)}, nil
}

// Pattern returns the untyped form of p.
func (p *Pattern3[T1, T2, T3]) Pattern() *Pattern {
	return &Pattern{sources: p.sources}
}

// Pattern4 is a conjunction of four typed sources.
type Pattern4[T1, T2, T3, T4 any] struct {
	sources []source
}

// And4 extends a three-source pattern with d.
func And4[T1, T2, T3, T4 any](p *Pattern3[T1, T2, T3], d rx.Observable[T4]) (*Pattern4[T1, T2, T3, T4], error) {
	if p == nil {
		return nil, errors.InvalidArgument("pattern", "must not be nil")
	}
	s, err := newSource(d, "source[3]")
	if err != nil {
		return nil, err
	}
	return &Pattern4[T1, T2, T3, T4]{sources: appendSource(p.sources, s)}, nil
}

// Pattern returns the untyped form of p.
func (p *Pattern4[T1, T2, T3, T4]) Pattern() *Pattern {
	return &Pattern{sources: p.sources}
}
