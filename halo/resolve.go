package halo

import (
	"fmt"

	"github.com/robert-malhotra/go-halo/internal/ndarray"
)

// Side selects the near (Before) or far (After) edge of a block along an axis.
type Side int

const (
	Before Side = iota
	After
)

func (s Side) String() string {
	if s == Before {
		return "before"
	}
	return "after"
}

// ResolveBorder returns the border attached to the given side of the block
// at idx along axis: depth elements from the neighboring block when there
// is one, otherwise a border synthesized from b. The result has the
// block's shape on every other axis.
func ResolveBorder[T any](a *ChunkedArray[T], axis int, idx BlockIndex, side Side, depth int, b Boundary) (Block[T], error) {
	if axis < 0 || axis >= a.Rank() {
		return Block[T]{}, fmt.Errorf("%w: %d for rank %d", ErrAxis, axis, a.Rank())
	}
	if !a.layout.Contains(idx) {
		return Block[T]{}, fmt.Errorf("%w: %s not in grid %v", ErrNoBlock, idx, a.layout.Grid())
	}
	if depth < 0 {
		return Block[T]{}, fmt.Errorf("%w: negative depth %d", ErrDepth, depth)
	}
	if err := (BoundarySpec{axis: b}).validate(a.Rank()); err != nil {
		return Block[T]{}, err
	}
	r, err := newResolver(a, axis, b, nil)
	if err != nil {
		return Block[T]{}, err
	}
	return r.resolve(idx, side, depth)
}

// resolver builds borders along one axis of one array.
type resolver[T any] struct {
	a        *ChunkedArray[T]
	axis     int
	boundary Boundary
	fill     T
	metrics  *Metrics
}

func newResolver[T any](a *ChunkedArray[T], axis int, b Boundary, m *Metrics) (*resolver[T], error) {
	r := &resolver[T]{a: a, axis: axis, boundary: b, metrics: m}
	if b.Policy == PolicyConstant {
		v, err := constantValue[T](b.Value)
		if err != nil {
			return nil, fmt.Errorf("axis %d: %w", axis, err)
		}
		r.fill = v
	}
	return r, nil
}

// hasNeighbor reports whether a real block exists on the given side of idx.
func hasNeighbor(l Layout, axis int, idx BlockIndex, side Side) bool {
	if side == Before {
		return !idx.IsFirst(axis)
	}
	return !idx.IsLast(l, axis)
}

// grows reports whether a border of non-zero depth on this side actually
// adds elements. Only an outer edge under PolicyNone stays bare.
func grows(l Layout, axis int, idx BlockIndex, side Side, p Policy) bool {
	return hasNeighbor(l, axis, idx, side) || p != PolicyNone
}

func (r *resolver[T]) resolve(idx BlockIndex, side Side, depth int) (Block[T], error) {
	layout := r.a.layout
	own := r.a.block(idx)
	if depth == 0 {
		return r.empty(own)
	}

	if hasNeighbor(layout, r.axis, idx, side) {
		delta := 1
		if side == Before {
			delta = -1
		}
		// The before-border is the far edge of the previous block, and vice versa.
		return r.edge(r.a.block(idx.Shift(r.axis, delta)), depth, side == Before, "neighbor")
	}

	switch r.boundary.Policy {
	case PolicyPeriodic:
		opposite := 0
		if side == Before {
			opposite = layout.NumBlocks(r.axis) - 1
		}
		return r.edge(r.a.block(idx.With(r.axis, opposite)), depth, side == Before, "periodic")

	case PolicyReflect:
		e, err := r.edge(own, depth, side == After, "reflect")
		if err != nil {
			return Block[T]{}, err
		}
		return e.Reverse(r.axis)

	case PolicyNearest:
		outer, err := r.edge(own, 1, side == After, "")
		if err != nil {
			return Block[T]{}, err
		}
		parts := make([]Block[T], depth)
		for i := range parts {
			parts[i] = outer
		}
		nb, err := ndarray.Concat(r.axis, parts...)
		if err != nil {
			return Block[T]{}, err
		}
		r.metrics.border("nearest", nb.Size())
		return nb, nil

	case PolicyConstant:
		shape := own.Shape()
		shape[r.axis] = depth
		nb, err := ndarray.Full(shape, r.fill)
		if err != nil {
			return Block[T]{}, err
		}
		r.metrics.border("constant", nb.Size())
		return nb, nil

	default:
		return r.empty(own)
	}
}

// edge slices depth elements from the start or the end of src along the axis.
func (r *resolver[T]) edge(src Block[T], depth int, fromEnd bool, source string) (Block[T], error) {
	n := src.Dim(r.axis)
	if depth > n {
		return Block[T]{}, fmt.Errorf("%w: axis %d: depth %d exceeds %s block size %d", ErrDepth, r.axis, depth, source, n)
	}
	lo, hi := 0, depth
	if fromEnd {
		lo, hi = n-depth, n
	}
	e, err := src.SliceAxis(r.axis, lo, hi)
	if err != nil {
		return Block[T]{}, err
	}
	if source != "" {
		r.metrics.border(source, e.Size())
	}
	return e, nil
}

// empty returns a zero-depth border shaped like own on every other axis.
func (r *resolver[T]) empty(own Block[T]) (Block[T], error) {
	return own.SliceAxis(r.axis, 0, 0)
}
