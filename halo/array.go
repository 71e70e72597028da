package halo

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/robert-malhotra/go-halo/internal/chunks"
	"github.com/robert-malhotra/go-halo/internal/ndarray"
)

// Layout describes the per-axis block sizes of a chunked array.
type Layout = chunks.Layout

// BlockIndex identifies one block by its position along every axis.
type BlockIndex = chunks.Index

// Block is the immutable row-major buffer of one block.
type Block[T any] = ndarray.Dense[T]

// NewLayout creates a layout from explicit per-axis block sizes.
func NewLayout(sizes ...[]int) (Layout, error) {
	return chunks.New(sizes...)
}

// RegularLayout splits shape into blocks of blockShape. Trailing blocks
// are shorter where an extent is not a multiple of the block length.
func RegularLayout(shape, blockShape []int) (Layout, error) {
	return chunks.Regular(shape, blockShape)
}

// NewBlock creates a block buffer from a shape and row-major values.
func NewBlock[T any](shape []int, data []T) (Block[T], error) {
	return ndarray.New(shape, data)
}

// FullBlock creates a block buffer of the given shape filled with v.
func FullBlock[T any](shape []int, v T) (Block[T], error) {
	return ndarray.Full(shape, v)
}

// BlockFromFunc creates a block buffer whose element at flat row-major
// offset i is fn(i).
func BlockFromFunc[T any](shape []int, fn func(i int) T) (Block[T], error) {
	return ndarray.FromFunc(shape, fn)
}

// ChunkedArray is an array partitioned into rectangular blocks. It owns
// its layout and one buffer per block; operations never modify it.
type ChunkedArray[T any] struct {
	name   string
	layout Layout
	blocks []Block[T] // row-major by block index
}

// FromBlocks builds a chunked array by asking fn for the buffer of every
// block of layout. Each buffer must have the block's shape.
func FromBlocks[T any](layout Layout, fn func(idx BlockIndex) (Block[T], error), opts ...Option) (*ChunkedArray[T], error) {
	if layout.Rank() == 0 {
		return nil, fmt.Errorf("%w: no axes", ErrInvalidLayout)
	}
	o := applyOptions(opts)

	a := &ChunkedArray[T]{
		name:   arrayName(o, "array"),
		layout: layout,
		blocks: make([]Block[T], layout.Len()),
	}
	for pos, idx := range layout.Indices() {
		b, err := fn(idx)
		if err != nil {
			return nil, &BlockError{Index: idx, Key: a.Key(idx), Err: err}
		}
		if want := layout.BlockShape(idx); !ndarray.SameShape(b.Shape(), want) {
			return nil, fmt.Errorf("%w: block %s is %v, layout says %v", ErrShape, idx, b.Shape(), want)
		}
		a.blocks[pos] = b.Clone()
	}
	return a, nil
}

// FromDense partitions d into blocks of blockShape.
func FromDense[T any](d Block[T], blockShape []int, opts ...Option) (*ChunkedArray[T], error) {
	layout, err := chunks.Regular(d.Shape(), blockShape)
	if err != nil {
		return nil, err
	}
	return FromLayout(d, layout, opts...)
}

// FromLayout partitions d according to layout, whose shape must equal d's.
func FromLayout[T any](d Block[T], layout Layout, opts ...Option) (*ChunkedArray[T], error) {
	if !ndarray.SameShape(d.Shape(), layout.Shape()) {
		return nil, fmt.Errorf("%w: buffer is %v, layout covers %v", ErrShape, d.Shape(), layout.Shape())
	}
	return FromBlocks(layout, func(idx BlockIndex) (Block[T], error) {
		return d.Slice(layout.Offset(idx), layout.BlockShape(idx))
	}, opts...)
}

// Name returns the array name that prefixes every block key.
func (a *ChunkedArray[T]) Name() string {
	return a.name
}

// Layout returns the block layout.
func (a *ChunkedArray[T]) Layout() Layout {
	return a.layout
}

// Rank returns the number of axes.
func (a *ChunkedArray[T]) Rank() int {
	return a.layout.Rank()
}

// Shape returns the array extent along every axis.
func (a *ChunkedArray[T]) Shape() []int {
	return a.layout.Shape()
}

// NumBlocks returns the total number of blocks.
func (a *ChunkedArray[T]) NumBlocks() int {
	return len(a.blocks)
}

// Key returns the scheduler key of the block at idx.
func (a *ChunkedArray[T]) Key(idx BlockIndex) string {
	return idx.Key(a.name, ".")
}

// Block returns the buffer of the block at idx.
func (a *ChunkedArray[T]) Block(idx BlockIndex) (Block[T], error) {
	if !a.layout.Contains(idx) {
		return Block[T]{}, fmt.Errorf("%w: %s not in grid %v", ErrNoBlock, idx, a.layout.Grid())
	}
	return a.block(idx), nil
}

// WalkFunc is called for each block during traversal.
// Return nil to continue walking, or an error to stop.
type WalkFunc[T any] func(idx BlockIndex, b Block[T]) error

// Walk visits every block in row-major order.
func (a *ChunkedArray[T]) Walk(fn WalkFunc[T]) error {
	for pos, idx := range a.layout.Indices() {
		if err := fn(idx, a.blocks[pos]); err != nil {
			return err
		}
	}
	return nil
}

// Dense assembles every block into one buffer of the full array shape.
func (a *ChunkedArray[T]) Dense() (Block[T], error) {
	offsets := make([][]int, len(a.blocks))
	for pos, idx := range a.layout.Indices() {
		offsets[pos] = a.layout.Offset(idx)
	}
	return ndarray.Assemble(a.layout.Shape(), a.blocks, offsets)
}

func (a *ChunkedArray[T]) block(idx BlockIndex) Block[T] {
	return a.blocks[a.layout.Ravel(idx)]
}

// blockInfo describes the block at idx for position-aware functions.
func (a *ChunkedArray[T]) blockInfo(idx BlockIndex) BlockInfo {
	off := a.layout.Offset(idx)
	shape := a.layout.BlockShape(idx)
	loc := make([][2]int, len(off))
	for axis := range off {
		loc[axis] = [2]int{off[axis], off[axis] + shape[axis]}
	}
	return BlockInfo{
		Index:      append(BlockIndex(nil), idx...),
		Key:        a.Key(idx),
		Location:   loc,
		ArrayShape: a.layout.Shape(),
		Grid:       a.layout.Grid(),
	}
}

func arrayName(o *options, op string) string {
	if o.name != "" {
		return o.name
	}
	return op + "-" + uuid.NewString()
}
