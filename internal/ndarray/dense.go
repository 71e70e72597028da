package ndarray

import (
	"errors"
	"fmt"
)

var (
	ErrShape  = errors.New("shape mismatch")
	ErrBounds = errors.New("selection out of bounds")
	ErrAxis   = errors.New("axis out of range")
)

// Dense is an immutable n-dimensional buffer stored in row-major order.
type Dense[T any] struct {
	shape []int
	data  []T
}

// New creates a Dense buffer from a shape and its row-major values.
// The values are copied.
func New[T any](shape []int, data []T) (Dense[T], error) {
	n, err := numElements(shape)
	if err != nil {
		return Dense[T]{}, err
	}
	if n != len(data) {
		return Dense[T]{}, fmt.Errorf("%w: shape %v holds %d elements, got %d", ErrShape, shape, n, len(data))
	}
	return Dense[T]{shape: cloneInts(shape), data: append([]T(nil), data...)}, nil
}

// Full creates a buffer of the given shape with every element set to v.
func Full[T any](shape []int, v T) (Dense[T], error) {
	n, err := numElements(shape)
	if err != nil {
		return Dense[T]{}, err
	}
	data := make([]T, n)
	for i := range data {
		data[i] = v
	}
	return Dense[T]{shape: cloneInts(shape), data: data}, nil
}

// FromFunc creates a buffer whose element at flat row-major offset i is fn(i).
func FromFunc[T any](shape []int, fn func(i int) T) (Dense[T], error) {
	n, err := numElements(shape)
	if err != nil {
		return Dense[T]{}, err
	}
	data := make([]T, n)
	for i := range data {
		data[i] = fn(i)
	}
	return Dense[T]{shape: cloneInts(shape), data: data}, nil
}

// Shape returns a copy of the buffer dimensions.
func (d Dense[T]) Shape() []int {
	return cloneInts(d.shape)
}

// Rank returns the number of axes.
func (d Dense[T]) Rank() int {
	return len(d.shape)
}

// Dim returns the length of one axis.
func (d Dense[T]) Dim(axis int) int {
	return d.shape[axis]
}

// Size returns the total number of elements.
func (d Dense[T]) Size() int {
	return len(d.data)
}

// Values returns a copy of the row-major values.
func (d Dense[T]) Values() []T {
	return append([]T(nil), d.data...)
}

// At returns the element at the given coordinates.
func (d Dense[T]) At(idx ...int) T {
	if len(idx) != len(d.shape) {
		panic(fmt.Sprintf("ndarray: %d coordinates for rank %d buffer", len(idx), len(d.shape)))
	}
	st := strides(d.shape)
	off := 0
	for k, i := range idx {
		if i < 0 || i >= d.shape[k] {
			panic(fmt.Sprintf("ndarray: index %d out of range for axis %d of length %d", i, k, d.shape[k]))
		}
		off += i * st[k]
	}
	return d.data[off]
}

// Clone returns a deep copy.
func (d Dense[T]) Clone() Dense[T] {
	return Dense[T]{shape: cloneInts(d.shape), data: append([]T(nil), d.data...)}
}

// Equal reports whether a and b have the same shape and values.
func Equal[T comparable](a, b Dense[T]) bool {
	if !SameShape(a.shape, b.shape) {
		return false
	}
	for i := range a.data {
		if a.data[i] != b.data[i] {
			return false
		}
	}
	return true
}

// SameShape reports whether two shapes are identical.
func SameShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func numElements(shape []int) (int, error) {
	n := 1
	for axis, s := range shape {
		if s < 0 {
			return 0, fmt.Errorf("%w: negative length %d on axis %d", ErrShape, s, axis)
		}
		n *= s
	}
	return n, nil
}

// strides returns row-major element strides for shape.
func strides(shape []int) []int {
	st := make([]int, len(shape))
	acc := 1
	for d := len(shape) - 1; d >= 0; d-- {
		st[d] = acc
		acc *= shape[d]
	}
	return st
}

func cloneInts(s []int) []int {
	return append([]int(nil), s...)
}
