package halo

import (
	"context"
	"fmt"

	"github.com/go-kit/log/level"
	"golang.org/x/sync/errgroup"

	"github.com/robert-malhotra/go-halo/internal/chunks"
	"github.com/robert-malhotra/go-halo/internal/ndarray"
)

// BlockInfo describes the block a position-aware function is processing.
type BlockInfo struct {
	Index BlockIndex
	Key   string
	// Location is the [start, stop) range the block covers along each axis.
	Location   [][2]int
	ArrayShape []int
	Grid       []int
}

// BlockFunc transforms one block buffer.
type BlockFunc[T, U any] func(b Block[T]) (Block[U], error)

// BlockInfoFunc transforms one block buffer and receives its position.
type BlockInfoFunc[T, U any] func(info BlockInfo, b Block[T]) (Block[U], error)

// Chunks declares the block sizes a shape-changing function produces,
// either one shape shared by every block or explicit per-axis sizes.
type Chunks struct {
	uniform  []int
	explicit [][]int
}

// UniformChunks declares that every output block has the given shape.
func UniformChunks(shape ...int) Chunks {
	return Chunks{uniform: append([]int(nil), shape...)}
}

// ExplicitChunks declares the full per-axis block sizes of the output.
func ExplicitChunks(sizes ...[]int) Chunks {
	out := make([][]int, len(sizes))
	for i, s := range sizes {
		out[i] = append([]int(nil), s...)
	}
	return Chunks{explicit: out}
}

// layoutFor resolves the declaration against the input layout. The output
// keeps the input's rank and number of blocks per axis.
func (c Chunks) layoutFor(in Layout) (Layout, error) {
	rank := in.Rank()
	sizes := c.explicit
	if c.uniform != nil {
		if len(c.uniform) != rank {
			return Layout{}, fmt.Errorf("%w: uniform chunks have rank %d, array has %d", ErrShape, len(c.uniform), rank)
		}
		sizes = make([][]int, rank)
		for axis := range sizes {
			s := make([]int, in.NumBlocks(axis))
			for i := range s {
				s[i] = c.uniform[axis]
			}
			sizes[axis] = s
		}
	}

	if len(sizes) != rank {
		return Layout{}, fmt.Errorf("%w: chunks have rank %d, array has %d", ErrShape, len(sizes), rank)
	}
	for axis, s := range sizes {
		if len(s) != in.NumBlocks(axis) {
			return Layout{}, fmt.Errorf("%w: axis %d declares %d blocks, array has %d", ErrShape, axis, len(s), in.NumBlocks(axis))
		}
	}
	l, err := chunks.New(sizes...)
	if err != nil {
		return Layout{}, fmt.Errorf("%w: %w", ErrShape, err)
	}
	return l, nil
}

// MapBlocks applies fn independently to every block of a. Without
// WithOutputChunks, fn must preserve the shape of every block.
func MapBlocks[T, U any](ctx context.Context, a *ChunkedArray[T], fn BlockFunc[T, U], opts ...Option) (*ChunkedArray[U], error) {
	return MapBlocksWithInfo(ctx, a, func(_ BlockInfo, b Block[T]) (Block[U], error) {
		return fn(b)
	}, opts...)
}

// MapBlocksWithInfo is MapBlocks for functions that need the block position.
// A failing block is reported as a *BlockError; blocks are not retried.
func MapBlocksWithInfo[T, U any](ctx context.Context, a *ChunkedArray[T], fn BlockInfoFunc[T, U], opts ...Option) (*ChunkedArray[U], error) {
	o := applyOptions(opts)

	layout := a.layout
	declared := o.outputChunks != nil
	if declared {
		l, err := o.outputChunks.layoutFor(a.layout)
		if err != nil {
			return nil, err
		}
		layout = l
	}

	blocks := make([]Block[U], a.layout.Len())
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(o.concurrency)
	for pos, idx := range a.layout.Indices() {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := fn(a.blockInfo(idx), a.blocks[pos])
			if err != nil {
				o.metrics.blockFailed()
				return &BlockError{Index: idx, Key: a.Key(idx), Err: err}
			}
			if want := layout.BlockShape(idx); !ndarray.SameShape(out.Shape(), want) {
				err := fmt.Errorf("%w: output block is %v, want %v", ErrShape, out.Shape(), want)
				if !declared {
					err = fmt.Errorf("%w (shape-changing functions need WithOutputChunks)", err)
				}
				return &BlockError{Index: idx, Key: a.Key(idx), Err: err}
			}
			blocks[pos] = out
			o.metrics.blockBuilt("map")
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	m := &ChunkedArray[U]{
		name:   arrayName(o, "map"),
		layout: layout,
		blocks: blocks,
	}
	level.Debug(o.logger).Log("msg", "map blocks complete", "name", m.name, "source", a.name, "blocks", len(blocks))
	return m, nil
}
