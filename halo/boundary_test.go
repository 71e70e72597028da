package halo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseBoundary(t *testing.T) {
	tests := []struct {
		in      string
		want    Boundary
		wantErr bool
	}{
		{in: "", want: None},
		{in: "none", want: None},
		{in: "Periodic", want: Periodic},
		{in: " reflect ", want: Reflect},
		{in: "nearest", want: Nearest},
		{in: "constant:0", want: Constant(int64(0))},
		{in: "constant:-2.5", want: Constant(-2.5)},
		{in: "42", want: Constant(int64(42))},
		{in: "1e3", want: Constant(1000.0)},
		{in: "wrap", wantErr: true},
		{in: "constant:", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBoundary(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrBoundary)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestBoundaryString(t *testing.T) {
	require.Equal(t, "periodic", Periodic.String())
	require.Equal(t, "constant:7", Constant(7).String())
	require.Equal(t, "Policy(9)", Policy(9).String())

	// String output parses back to the same policy.
	for _, b := range []Boundary{None, Periodic, Reflect, Nearest} {
		got, err := ParseBoundary(b.String())
		require.NoError(t, err)
		require.Equal(t, b, got)
	}
}

func TestConstantValue(t *testing.T) {
	f, err := constantValue[float32](int64(3))
	require.NoError(t, err)
	require.Equal(t, float32(3), f)

	u, err := constantValue[uint8](2.0)
	require.NoError(t, err)
	require.Equal(t, uint8(2), u)

	s, err := constantValue[string]("x")
	require.NoError(t, err)
	require.Equal(t, "x", s)

	type label string
	l, err := constantValue[label]("edge")
	require.NoError(t, err)
	require.Equal(t, label("edge"), l)

	i8, err := constantValue[int8](int64(-128))
	require.NoError(t, err)
	require.Equal(t, int8(-128), i8)

	u, err = constantValue[uint8](uint64(255))
	require.NoError(t, err)
	require.Equal(t, uint8(255), u)

	f, err = constantValue[float32](0.1)
	require.NoError(t, err)
	require.Equal(t, float32(0.1), f)

	nan, err := ParseBoundary("nan")
	require.NoError(t, err)
	g, err := constantValue[float64](nan.Value)
	require.NoError(t, err)
	require.True(t, math.IsNaN(g))

	_, err = constantValue[string](65)
	require.ErrorIs(t, err, ErrBoundary)
	_, err = constantValue[int](nil)
	require.ErrorIs(t, err, ErrBoundary)
	_, err = constantValue[[]int](1)
	require.ErrorIs(t, err, ErrBoundary)
}

func TestConstantValueRejectsInexact(t *testing.T) {
	inf, err := ParseBoundary("inf")
	require.NoError(t, err)
	nan, err := ParseBoundary("constant:nan")
	require.NoError(t, err)

	tests := []struct {
		name string
		fn   func() error
	}{
		{"uint8 overflow", func() error { _, err := constantValue[uint8](300); return err }},
		{"uint8 negative", func() error { _, err := constantValue[uint8](-1); return err }},
		{"uint64 negative", func() error { _, err := constantValue[uint64](int64(-1)); return err }},
		{"int8 underflow", func() error { _, err := constantValue[int8](-129); return err }},
		{"int from huge uint64", func() error { _, err := constantValue[int](uint64(math.MaxUint64)); return err }},
		{"int from fraction", func() error { _, err := constantValue[int](2.7); return err }},
		{"int from nan", func() error { _, err := constantValue[int](nan.Value); return err }},
		{"int from inf", func() error { _, err := constantValue[int](inf.Value); return err }},
		{"int64 from 2^63", func() error { _, err := constantValue[int64](math.Pow(2, 63)); return err }},
		{"uint32 from 1e10", func() error { _, err := constantValue[uint32](1e10); return err }},
		{"float32 overflow", func() error { _, err := constantValue[float32](1e300); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.fn(), ErrBoundary)
		})
	}
}
