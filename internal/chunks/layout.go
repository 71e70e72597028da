package chunks

import (
	"errors"
	"fmt"
)

// ErrInvalid reports a malformed layout.
var ErrInvalid = errors.New("invalid chunk layout")

// Layout is an immutable description of per-axis block sizes.
type Layout struct {
	sizes [][]int
}

// New creates a layout from explicit per-axis block sizes.
func New(sizes ...[]int) (Layout, error) {
	if len(sizes) == 0 {
		return Layout{}, fmt.Errorf("%w: no axes", ErrInvalid)
	}
	l := Layout{sizes: make([][]int, len(sizes))}
	for axis, s := range sizes {
		if err := validateAxis(axis, s); err != nil {
			return Layout{}, err
		}
		l.sizes[axis] = append([]int(nil), s...)
	}
	return l, nil
}

// Regular creates a layout that splits shape into blocks of blockShape,
// with a shorter trailing block where an extent is not a multiple.
func Regular(shape, blockShape []int) (Layout, error) {
	if len(shape) != len(blockShape) {
		return Layout{}, fmt.Errorf("%w: shape rank %d != block rank %d", ErrInvalid, len(shape), len(blockShape))
	}
	sizes := make([][]int, len(shape))
	for axis := range shape {
		extent, block := shape[axis], blockShape[axis]
		if extent <= 0 || block <= 0 {
			return Layout{}, fmt.Errorf("%w: axis %d: extent=%d block=%d", ErrInvalid, axis, extent, block)
		}
		numBlocks := (extent + block - 1) / block
		s := make([]int, numBlocks)
		for i := range s {
			s[i] = block
		}
		if rem := extent % block; rem != 0 {
			s[numBlocks-1] = rem
		}
		sizes[axis] = s
	}
	return New(sizes...)
}

func validateAxis(axis int, s []int) error {
	if len(s) == 0 {
		return fmt.Errorf("%w: axis %d has no blocks", ErrInvalid, axis)
	}
	for i, n := range s {
		if n < 1 {
			return fmt.Errorf("%w: axis %d block %d has size %d", ErrInvalid, axis, i, n)
		}
	}
	return nil
}

// Rank returns the number of axes.
func (l Layout) Rank() int {
	return len(l.sizes)
}

// Sizes returns the block lengths along axis.
func (l Layout) Sizes(axis int) []int {
	return append([]int(nil), l.sizes[axis]...)
}

// AllSizes returns the block lengths of every axis.
func (l Layout) AllSizes() [][]int {
	out := make([][]int, len(l.sizes))
	for axis := range l.sizes {
		out[axis] = l.Sizes(axis)
	}
	return out
}

// Boundaries returns the cumulative block offsets along axis, starting at 0
// and ending at the axis extent.
func (l Layout) Boundaries(axis int) []int {
	s := l.sizes[axis]
	b := make([]int, len(s)+1)
	for i, n := range s {
		b[i+1] = b[i] + n
	}
	return b
}

// NumBlocks returns the number of blocks along axis.
func (l Layout) NumBlocks(axis int) int {
	return len(l.sizes[axis])
}

// Grid returns the number of blocks along every axis.
func (l Layout) Grid() []int {
	g := make([]int, len(l.sizes))
	for axis, s := range l.sizes {
		g[axis] = len(s)
	}
	return g
}

// Shape returns the array extent along every axis.
func (l Layout) Shape() []int {
	shape := make([]int, len(l.sizes))
	for axis, s := range l.sizes {
		for _, n := range s {
			shape[axis] += n
		}
	}
	return shape
}

// Len returns the total number of blocks.
func (l Layout) Len() int {
	n := 1
	for _, s := range l.sizes {
		n *= len(s)
	}
	return n
}

// Contains reports whether idx addresses a block of this layout.
func (l Layout) Contains(idx Index) bool {
	if len(idx) != len(l.sizes) {
		return false
	}
	for axis, i := range idx {
		if i < 0 || i >= len(l.sizes[axis]) {
			return false
		}
	}
	return true
}

// BlockShape returns the shape of the block at idx.
func (l Layout) BlockShape(idx Index) []int {
	shape := make([]int, len(l.sizes))
	for axis, i := range idx {
		shape[axis] = l.sizes[axis][i]
	}
	return shape
}

// Offset returns the array coordinates of the first element of the block at idx.
func (l Layout) Offset(idx Index) []int {
	off := make([]int, len(l.sizes))
	for axis, i := range idx {
		for _, n := range l.sizes[axis][:i] {
			off[axis] += n
		}
	}
	return off
}

// Ravel converts a block index to its row-major position.
func (l Layout) Ravel(idx Index) int {
	pos := 0
	for axis, i := range idx {
		pos = pos*len(l.sizes[axis]) + i
	}
	return pos
}

// Unravel converts a row-major position back to a block index.
func (l Layout) Unravel(pos int) Index {
	idx := make(Index, len(l.sizes))
	for axis := len(l.sizes) - 1; axis >= 0; axis-- {
		n := len(l.sizes[axis])
		idx[axis] = pos % n
		pos /= n
	}
	return idx
}

// Indices returns every block index in row-major order.
func (l Layout) Indices() []Index {
	out := make([]Index, l.Len())
	for pos := range out {
		out[pos] = l.Unravel(pos)
	}
	return out
}

// WithAxis returns a copy of the layout with the sizes of one axis replaced.
// The number of blocks along that axis must not change.
func (l Layout) WithAxis(axis int, sizes []int) (Layout, error) {
	if axis < 0 || axis >= len(l.sizes) {
		return Layout{}, fmt.Errorf("%w: axis %d out of range for rank %d", ErrInvalid, axis, len(l.sizes))
	}
	if len(sizes) != len(l.sizes[axis]) {
		return Layout{}, fmt.Errorf("%w: axis %d has %d blocks, got %d sizes", ErrInvalid, axis, len(l.sizes[axis]), len(sizes))
	}
	next := l.AllSizes()
	next[axis] = sizes
	return New(next...)
}

// Equal reports whether two layouts have identical block sizes.
func (l Layout) Equal(o Layout) bool {
	if len(l.sizes) != len(o.sizes) {
		return false
	}
	for axis := range l.sizes {
		if len(l.sizes[axis]) != len(o.sizes[axis]) {
			return false
		}
		for i := range l.sizes[axis] {
			if l.sizes[axis][i] != o.sizes[axis][i] {
				return false
			}
		}
	}
	return true
}

func (l Layout) String() string {
	return fmt.Sprint(l.sizes)
}
