package halo

import (
	"context"
	"fmt"

	"github.com/go-kit/log/level"
	"golang.org/x/sync/errgroup"

	"github.com/robert-malhotra/go-halo/internal/ndarray"
)

// Overlap returns a copy of a in which every block is enlarged with a
// border of the configured depth on each axis. Borders come from the
// neighboring blocks, or from the axis boundary policy where the block
// sits on the array edge.
//
// Axes are processed one at a time in increasing order, and each pass
// reads the output of the previous one. Borders taken along a later axis
// therefore already contain the earlier axes' borders of that neighbor,
// which fills the corner regions without visiting diagonal neighbors.
//
// Every depth is validated against the blocks that must supply it before
// any block is built. The number of blocks per axis never changes.
func Overlap[T any](ctx context.Context, a *ChunkedArray[T], depth DepthSpec, boundary BoundarySpec, opts ...Option) (*ChunkedArray[T], error) {
	o := applyOptions(opts)
	if err := validateOverlap[T](a.layout, depth, boundary); err != nil {
		return nil, err
	}

	cur := a
	for axis := 0; axis < a.Rank(); axis++ {
		d := depth.Axis(axis)
		if d.IsZero() {
			continue
		}
		next, err := overlapAxis(ctx, cur, axis, d, boundary.Axis(axis), o)
		if err != nil {
			return nil, err
		}
		cur = next
	}

	blocks := cur.blocks
	if cur == a {
		blocks = make([]Block[T], len(a.blocks))
		for i, b := range a.blocks {
			blocks[i] = b.Clone()
		}
	}

	out := &ChunkedArray[T]{
		name:   arrayName(o, "overlap"),
		layout: cur.layout,
		blocks: blocks,
	}
	level.Debug(o.logger).Log("msg", "overlap complete", "name", out.name, "source", a.name, "layout", out.layout)
	return out, nil
}

// overlapAxis stitches borders along a single axis onto every block of cur.
func overlapAxis[T any](ctx context.Context, cur *ChunkedArray[T], axis int, d Depth, b Boundary, o *options) (*ChunkedArray[T], error) {
	layout := cur.layout
	r, err := newResolver(cur, axis, b, o.metrics)
	if err != nil {
		return nil, err
	}

	level.Debug(o.logger).Log("msg", "overlap axis pass", "axis", axis,
		"before", d.Before, "after", d.After, "boundary", b, "sizes", fmt.Sprint(layout.Sizes(axis)))

	blocks := make([]Block[T], layout.Len())
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(o.concurrency)
	for pos, idx := range layout.Indices() {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			before, err := r.resolve(idx, Before, d.Before)
			if err != nil {
				return &BlockError{Index: idx, Key: cur.Key(idx), Err: err}
			}
			after, err := r.resolve(idx, After, d.After)
			if err != nil {
				return &BlockError{Index: idx, Key: cur.Key(idx), Err: err}
			}
			nb, err := ndarray.Concat(axis, before, cur.blocks[pos], after)
			if err != nil {
				return &BlockError{Index: idx, Key: cur.Key(idx), Err: err}
			}
			blocks[pos] = nb
			o.metrics.blockBuilt("overlap")
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	sizes := layout.Sizes(axis)
	for i := range sizes {
		idx := make(BlockIndex, layout.Rank())
		idx[axis] = i
		if grows(layout, axis, idx, Before, b.Policy) {
			sizes[i] += d.Before
		}
		if grows(layout, axis, idx, After, b.Policy) {
			sizes[i] += d.After
		}
	}
	next, err := layout.WithAxis(axis, sizes)
	if err != nil {
		return nil, err
	}

	return &ChunkedArray[T]{name: cur.name, layout: next, blocks: blocks}, nil
}

// validateOverlap checks the depth and boundary specs against the layout.
// Passes along other axes never change block sizes along this one, so the
// input layout is enough to check every source block.
func validateOverlap[T any](l Layout, depth DepthSpec, boundary BoundarySpec) error {
	rank := l.Rank()
	if err := depth.validate(rank); err != nil {
		return err
	}
	if err := boundary.validate(rank); err != nil {
		return err
	}

	for axis := 0; axis < rank; axis++ {
		d := depth.Axis(axis)
		if d.IsZero() {
			continue
		}
		b := boundary.Axis(axis)
		if b.Policy == PolicyConstant {
			if _, err := constantValue[T](b.Value); err != nil {
				return fmt.Errorf("axis %d: %w", axis, err)
			}
		}

		sizes := l.Sizes(axis)
		for i := range sizes {
			before, beforeFrom := supplier(sizes, i, Before, b.Policy)
			if d.Before > 0 && beforeFrom >= 0 && d.Before > before {
				return fmt.Errorf("%w: axis %d block %d: before depth %d exceeds size %d of block %d",
					ErrDepth, axis, i, d.Before, before, beforeFrom)
			}
			after, afterFrom := supplier(sizes, i, After, b.Policy)
			if d.After > 0 && afterFrom >= 0 && d.After > after {
				return fmt.Errorf("%w: axis %d block %d: after depth %d exceeds size %d of block %d",
					ErrDepth, axis, i, d.After, after, afterFrom)
			}
		}
	}
	return nil
}

// supplier returns the size and position of the block that provides the
// border on the given side of block i, or -1 when the border is
// synthesized and has no size limit.
func supplier(sizes []int, i int, side Side, p Policy) (int, int) {
	last := len(sizes) - 1
	switch {
	case side == Before && i > 0:
		return sizes[i-1], i - 1
	case side == After && i < last:
		return sizes[i+1], i + 1
	}
	switch p {
	case PolicyPeriodic:
		if side == Before {
			return sizes[last], last
		}
		return sizes[0], 0
	case PolicyReflect:
		return sizes[i], i
	default:
		return 0, -1
	}
}
