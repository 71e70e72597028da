package ndarray

import "fmt"

// Slice extracts the rectangular region that starts at start and spans
// count elements per axis.
func (d Dense[T]) Slice(start, count []int) (Dense[T], error) {
	ndims := len(d.shape)
	if len(start) != ndims || len(count) != ndims {
		return Dense[T]{}, fmt.Errorf("%w: selection rank (%d, %d) != buffer rank %d", ErrShape, len(start), len(count), ndims)
	}
	for i := range start {
		if start[i] < 0 || count[i] < 0 || start[i]+count[i] > d.shape[i] {
			return Dense[T]{}, fmt.Errorf("%w: axis %d: start=%d + count=%d > size=%d",
				ErrBounds, i, start[i], count[i], d.shape[i])
		}
	}

	n, _ := numElements(count)
	out := Dense[T]{shape: cloneInts(count), data: make([]T, n)}
	if n == 0 {
		return out, nil
	}

	srcStrides := strides(d.shape)
	srcOffset := 0
	for i := range start {
		srcOffset += start[i] * srcStrides[i]
	}
	copyRegion(out.data, d.data, strides(count), srcStrides, 0, srcOffset, count, 0)
	return out, nil
}

// SliceAxis selects [lo, hi) along one axis and everything along the others.
func (d Dense[T]) SliceAxis(axis, lo, hi int) (Dense[T], error) {
	if axis < 0 || axis >= len(d.shape) {
		return Dense[T]{}, fmt.Errorf("%w: %d for rank %d", ErrAxis, axis, len(d.shape))
	}
	if lo > hi {
		return Dense[T]{}, fmt.Errorf("%w: axis %d: range [%d, %d)", ErrBounds, axis, lo, hi)
	}
	start := make([]int, len(d.shape))
	count := cloneInts(d.shape)
	start[axis] = lo
	count[axis] = hi - lo
	return d.Slice(start, count)
}

// Reverse mirrors the buffer along axis.
func (d Dense[T]) Reverse(axis int) (Dense[T], error) {
	if axis < 0 || axis >= len(d.shape) {
		return Dense[T]{}, fmt.Errorf("%w: %d for rank %d", ErrAxis, axis, len(d.shape))
	}
	outer, n, inner := split(d.shape, axis)
	out := Dense[T]{shape: cloneInts(d.shape), data: make([]T, len(d.data))}
	for o := 0; o < outer; o++ {
		base := o * n * inner
		for i := 0; i < n; i++ {
			src := base + i*inner
			dst := base + (n-1-i)*inner
			copy(out.data[dst:dst+inner], d.data[src:src+inner])
		}
	}
	return out, nil
}

// Concat joins parts along axis. All parts must share rank and every
// dimension other than axis.
func Concat[T any](axis int, parts ...Dense[T]) (Dense[T], error) {
	if len(parts) == 0 {
		return Dense[T]{}, fmt.Errorf("%w: nothing to concatenate", ErrShape)
	}
	first := parts[0].shape
	if axis < 0 || axis >= len(first) {
		return Dense[T]{}, fmt.Errorf("%w: %d for rank %d", ErrAxis, axis, len(first))
	}

	shape := cloneInts(first)
	shape[axis] = 0
	total := 0
	for i, p := range parts {
		if len(p.shape) != len(first) {
			return Dense[T]{}, fmt.Errorf("%w: part %d has rank %d, want %d", ErrShape, i, len(p.shape), len(first))
		}
		for k := range first {
			if k != axis && p.shape[k] != first[k] {
				return Dense[T]{}, fmt.Errorf("%w: part %d is %v, want %v off axis %d", ErrShape, i, p.shape, first, axis)
			}
		}
		shape[axis] += p.shape[axis]
		total += len(p.data)
	}

	out := Dense[T]{shape: shape, data: make([]T, total)}
	outer, _, _ := split(shape, axis)
	pos := 0
	for o := 0; o < outer; o++ {
		for _, p := range parts {
			_, n, inner := split(p.shape, axis)
			run := n * inner
			copy(out.data[pos:pos+run], p.data[o*run:(o+1)*run])
			pos += run
		}
	}
	return out, nil
}

// Assemble copies each part into a new buffer of the given shape, with the
// first element of parts[i] landing at offsets[i].
func Assemble[T any](shape []int, parts []Dense[T], offsets [][]int) (Dense[T], error) {
	if len(parts) != len(offsets) {
		return Dense[T]{}, fmt.Errorf("%w: %d parts, %d offsets", ErrShape, len(parts), len(offsets))
	}
	n, err := numElements(shape)
	if err != nil {
		return Dense[T]{}, err
	}
	out := Dense[T]{shape: cloneInts(shape), data: make([]T, n)}
	dstStrides := strides(shape)

	for i, p := range parts {
		off := offsets[i]
		if len(p.shape) != len(shape) || len(off) != len(shape) {
			return Dense[T]{}, fmt.Errorf("%w: part %d rank does not match %v", ErrShape, i, shape)
		}
		dstOffset := 0
		for k := range shape {
			if off[k] < 0 || off[k]+p.shape[k] > shape[k] {
				return Dense[T]{}, fmt.Errorf("%w: part %d axis %d: offset=%d + size=%d > %d",
					ErrBounds, i, k, off[k], p.shape[k], shape[k])
			}
			dstOffset += off[k] * dstStrides[k]
		}
		if len(p.data) == 0 {
			continue
		}
		copyRegion(out.data, p.data, dstStrides, strides(p.shape), dstOffset, 0, p.shape, 0)
	}
	return out, nil
}

// copyRegion copies a count-shaped region from src to dst, recursing
// through the outer axes and copying the innermost axis contiguously.
func copyRegion[T any](dst, src []T, dstStrides, srcStrides []int, dstOffset, srcOffset int, count []int, dim int) {
	if len(count) == 0 {
		dst[dstOffset] = src[srcOffset]
		return
	}
	if dim == len(count)-1 {
		n := count[dim]
		copy(dst[dstOffset:dstOffset+n], src[srcOffset:srcOffset+n])
		return
	}
	for i := 0; i < count[dim]; i++ {
		copyRegion(dst, src, dstStrides, srcStrides,
			dstOffset+i*dstStrides[dim], srcOffset+i*srcStrides[dim],
			count, dim+1)
	}
}

// split returns the element counts before axis, along axis, and after it.
func split(shape []int, axis int) (outer, n, inner int) {
	outer, inner = 1, 1
	for k := 0; k < axis; k++ {
		outer *= shape[k]
	}
	for k := axis + 1; k < len(shape); k++ {
		inner *= shape[k]
	}
	return outer, shape[axis], inner
}
