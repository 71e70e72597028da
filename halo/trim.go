package halo

import (
	"context"
	"fmt"

	"github.com/go-kit/log/level"
	"golang.org/x/sync/errgroup"

	"github.com/robert-malhotra/go-halo/internal/chunks"
)

// TrimInternal removes depth from every internal block edge of a, undoing
// Overlap on those edges. The outermost edges of the array are kept unless
// WithOuterEdges is given; combined with WithBoundary, outer edges of axes
// whose policy is None are still kept since Overlap never padded them.
//
// depth must be the value passed to the matching Overlap. Every block is
// checked before anything is copied, and a block that would be left with
// no elements is an ErrDepth.
func TrimInternal[T any](ctx context.Context, a *ChunkedArray[T], depth DepthSpec, opts ...Option) (*ChunkedArray[T], error) {
	o := applyOptions(opts)
	rank := a.Rank()
	if err := depth.validate(rank); err != nil {
		return nil, err
	}
	if o.boundary != nil {
		if err := o.boundary.validate(rank); err != nil {
			return nil, err
		}
	}

	trimOuter := func(axis int) bool {
		if !o.outerEdges {
			return false
		}
		return o.boundary == nil || o.boundary.Axis(axis).Policy != PolicyNone
	}

	// starts[axis][i] is the first kept element of block i along axis.
	starts := make([][]int, rank)
	sizes := make([][]int, rank)
	for axis := 0; axis < rank; axis++ {
		d := depth.Axis(axis)
		old := a.layout.Sizes(axis)
		last := len(old) - 1
		starts[axis] = make([]int, len(old))
		sizes[axis] = make([]int, len(old))
		for i, n := range old {
			before, after := d.Before, d.After
			if i == 0 && !trimOuter(axis) {
				before = 0
			}
			if i == last && !trimOuter(axis) {
				after = 0
			}
			if n-before-after < 1 {
				return nil, fmt.Errorf("%w: axis %d block %d: trimming %d+%d from size %d leaves no data",
					ErrDepth, axis, i, before, after, n)
			}
			starts[axis][i] = before
			sizes[axis][i] = n - before - after
		}
	}
	layout, err := chunks.New(sizes...)
	if err != nil {
		return nil, err
	}

	blocks := make([]Block[T], layout.Len())
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(o.concurrency)
	for pos, idx := range layout.Indices() {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			start := make([]int, rank)
			for axis, i := range idx {
				start[axis] = starts[axis][i]
			}
			nb, err := a.blocks[pos].Slice(start, layout.BlockShape(idx))
			if err != nil {
				return &BlockError{Index: idx, Key: a.Key(idx), Err: err}
			}
			blocks[pos] = nb
			o.metrics.blockBuilt("trim")
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	out := &ChunkedArray[T]{
		name:   arrayName(o, "trim"),
		layout: layout,
		blocks: blocks,
	}
	level.Debug(o.logger).Log("msg", "trim complete", "name", out.name, "source", a.name, "layout", out.layout)
	return out, nil
}
