package halo

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Policy selects how a border is synthesized where a block has no neighbor.
type Policy int

const (
	PolicyNone Policy = iota
	PolicyPeriodic
	PolicyReflect
	PolicyNearest
	PolicyConstant
)

func (p Policy) String() string {
	switch p {
	case PolicyNone:
		return "none"
	case PolicyPeriodic:
		return "periodic"
	case PolicyReflect:
		return "reflect"
	case PolicyNearest:
		return "nearest"
	case PolicyConstant:
		return "constant"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// Boundary is a boundary policy plus, for PolicyConstant, its fill value.
type Boundary struct {
	Policy Policy
	Value  any
}

// Predefined boundaries.
var (
	// None adds no border where there is no neighbor.
	None = Boundary{Policy: PolicyNone}
	// Periodic wraps around to the block at the opposite end of the axis.
	Periodic = Boundary{Policy: PolicyPeriodic}
	// Reflect mirrors the block's own edge.
	Reflect = Boundary{Policy: PolicyReflect}
	// Nearest repeats the block's outermost slice.
	Nearest = Boundary{Policy: PolicyNearest}
)

// Constant fills missing borders with v. The value is converted to the
// array element type when the overlap runs.
func Constant(v any) Boundary {
	return Boundary{Policy: PolicyConstant, Value: v}
}

// ParseBoundary parses "none", "periodic", "reflect", "nearest",
// "constant:<number>" or a bare number, which is shorthand for a constant.
func ParseBoundary(s string) (Boundary, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "none":
		return None, nil
	case "periodic":
		return Periodic, nil
	case "reflect":
		return Reflect, nil
	case "nearest":
		return Nearest, nil
	}

	num, ok := strings.CutPrefix(strings.ToLower(s), "constant:")
	if !ok {
		num = s
	}
	if i, err := strconv.ParseInt(num, 10, 64); err == nil {
		return Constant(i), nil
	}
	if f, err := strconv.ParseFloat(num, 64); err == nil {
		return Constant(f), nil
	}
	return Boundary{}, fmt.Errorf("%w: cannot parse %q", ErrBoundary, s)
}

func (b Boundary) String() string {
	if b.Policy == PolicyConstant {
		return fmt.Sprintf("constant:%v", b.Value)
	}
	return b.Policy.String()
}

// BoundarySpec maps an axis to its boundary. Axes that are not mentioned
// use None.
type BoundarySpec map[int]Boundary

// UniformBoundary applies b to every axis of a rank-dimensional array.
func UniformBoundary(rank int, b Boundary) BoundarySpec {
	s := make(BoundarySpec, rank)
	for axis := 0; axis < rank; axis++ {
		s[axis] = b
	}
	return s
}

// Axis returns the boundary configured for axis.
func (s BoundarySpec) Axis(axis int) Boundary {
	return s[axis]
}

func (s BoundarySpec) validate(rank int) error {
	for axis, b := range s {
		if axis < 0 || axis >= rank {
			return fmt.Errorf("%w: axis %d out of range for rank %d", ErrBoundary, axis, rank)
		}
		switch b.Policy {
		case PolicyNone, PolicyPeriodic, PolicyReflect, PolicyNearest:
		case PolicyConstant:
			if b.Value == nil {
				return fmt.Errorf("%w: axis %d constant has no value", ErrBoundary, axis)
			}
		default:
			return fmt.Errorf("%w: axis %d has unknown policy %v", ErrBoundary, axis, b.Policy)
		}
	}
	return nil
}

// constantValue converts a constant fill value to the element type T.
// Numeric values convert between numeric kinds; anything else must
// already be of T's kind.
func constantValue[T any](v any) (T, error) {
	var zero T
	if t, ok := v.(T); ok {
		return t, nil
	}

	target := reflect.TypeOf(&zero).Elem()
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return zero, fmt.Errorf("%w: nil constant for element type %v", ErrBoundary, target)
	}

	src := rv.Type()
	convertible := src.ConvertibleTo(target) &&
		(isNumeric(src.Kind()) && isNumeric(target.Kind()) || src.Kind() == target.Kind())
	if !convertible {
		return zero, fmt.Errorf("%w: constant %v (%T) does not convert to %v", ErrBoundary, v, v, target)
	}
	out := rv.Convert(target)
	if !exactConversion(rv, out) {
		return zero, fmt.Errorf("%w: constant %v (%T) does not fit %v", ErrBoundary, v, v, target)
	}
	return out.Interface().(T), nil
}

// exactConversion reports whether out holds the same value as src.
// Integer targets reject overflow, sign loss, fractions, NaN and Inf.
// Float targets only reject finite values beyond their range.
func exactConversion(src, out reflect.Value) bool {
	switch out.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		switch {
		case src.CanInt():
			return !out.OverflowInt(src.Int())
		case src.CanUint():
			u := src.Uint()
			return u <= math.MaxInt64 && !out.OverflowInt(int64(u))
		case src.CanFloat():
			f := src.Float()
			return f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 && !out.OverflowInt(int64(f))
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		switch {
		case src.CanInt():
			i := src.Int()
			return i >= 0 && !out.OverflowUint(uint64(i))
		case src.CanUint():
			return !out.OverflowUint(src.Uint())
		case src.CanFloat():
			f := src.Float()
			return f == math.Trunc(f) && f >= 0 && f < math.MaxUint64 && !out.OverflowUint(uint64(f))
		}
	case reflect.Float32:
		if src.CanFloat() {
			return !out.OverflowFloat(src.Float())
		}
	}
	return true
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
