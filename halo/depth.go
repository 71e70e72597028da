package halo

import "fmt"

// Depth is the border width on each side of one axis.
type Depth struct {
	Before int
	After  int
}

// Symmetric returns a depth of n on both sides.
func Symmetric(n int) Depth {
	return Depth{Before: n, After: n}
}

// Asymmetric returns a depth with distinct before and after widths.
func Asymmetric(before, after int) Depth {
	return Depth{Before: before, After: after}
}

// IsZero reports whether the depth adds nothing on either side.
func (d Depth) IsZero() bool {
	return d.Before == 0 && d.After == 0
}

// side returns the width on one side.
func (d Depth) side(s Side) int {
	if s == Before {
		return d.Before
	}
	return d.After
}

// DepthSpec maps an axis to its depth. Axes that are not mentioned have
// depth zero.
type DepthSpec map[int]Depth

// UniformDepth returns a symmetric depth of n on every axis of a rank-dimensional array.
func UniformDepth(rank, n int) DepthSpec {
	s := make(DepthSpec, rank)
	for axis := 0; axis < rank; axis++ {
		s[axis] = Symmetric(n)
	}
	return s
}

// Axis returns the depth configured for axis.
func (s DepthSpec) Axis(axis int) Depth {
	return s[axis]
}

func (s DepthSpec) validate(rank int) error {
	for axis, d := range s {
		if axis < 0 || axis >= rank {
			return fmt.Errorf("%w: axis %d out of range for rank %d", ErrDepth, axis, rank)
		}
		if d.Before < 0 || d.After < 0 {
			return fmt.Errorf("%w: axis %d has negative depth (%d, %d)", ErrDepth, axis, d.Before, d.After)
		}
	}
	return nil
}
