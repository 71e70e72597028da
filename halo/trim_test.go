package halo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOverlapTrimInverse(t *testing.T) {
	ctx := context.Background()
	a := arange(t, []int{9, 10}, []int{3, 4})
	depth := DepthSpec{0: Symmetric(1), 1: Symmetric(2)}

	for _, tt := range allBoundaries {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Overlap(ctx, a, depth, UniformBoundary(2, tt.boundary))
			require.NoError(t, err)
			tr, err := TrimInternal(ctx, g, depth)
			require.NoError(t, err)

			require.Equal(t, a.Layout().Grid(), g.Layout().Grid())
			require.Equal(t, a.Layout().Grid(), tr.Layout().Grid())

			// The only block touching no outer edge is restored exactly.
			require.Equal(t, blockValues(t, a, 1, 1), blockValues(t, tr, 1, 1))

			if tt.boundary.Policy == PolicyNone {
				require.True(t, a.Layout().Equal(tr.Layout()))
				require.Equal(t, denseValues(t, a), denseValues(t, tr))
			}
		})
	}
}

func TestTrimKeepsOuterPadding(t *testing.T) {
	ctx := context.Background()
	a := arange(t, []int{8}, []int{4})
	depth := DepthSpec{0: Symmetric(1)}

	g, err := Overlap(ctx, a, depth, BoundarySpec{0: Constant(-1)})
	require.NoError(t, err)
	tr, err := TrimInternal(ctx, g, depth)
	require.NoError(t, err)

	require.Equal(t, []int{5, 5}, tr.Layout().Sizes(0))
	require.Equal(t, []int{-1, 0, 1, 2, 3}, blockValues(t, tr, 0))
	require.Equal(t, []int{4, 5, 6, 7, -1}, blockValues(t, tr, 1))
}

func TestTrimOuterEdges(t *testing.T) {
	ctx := context.Background()
	a := arange(t, []int{6, 6}, []int{2, 3})
	depth := DepthSpec{0: Asymmetric(1, 2), 1: Symmetric(1)}

	g, err := Overlap(ctx, a, depth, UniformBoundary(2, Periodic))
	require.NoError(t, err)
	tr, err := TrimInternal(ctx, g, depth, WithOuterEdges())
	require.NoError(t, err)

	require.True(t, a.Layout().Equal(tr.Layout()))
	require.Equal(t, denseValues(t, a), denseValues(t, tr))
}

func TestTrimOuterEdgesWithBoundary(t *testing.T) {
	ctx := context.Background()
	a := arange(t, []int{6, 6}, []int{3, 3})
	depth := UniformDepth(2, 1)
	boundary := BoundarySpec{0: Reflect}

	g, err := Overlap(ctx, a, depth, boundary)
	require.NoError(t, err)
	require.Equal(t, []int{5, 5}, g.Layout().Sizes(0))
	require.Equal(t, []int{4, 4}, g.Layout().Sizes(1))

	tr, err := TrimInternal(ctx, g, depth, WithOuterEdges(), WithBoundary(boundary))
	require.NoError(t, err)
	require.Equal(t, denseValues(t, a), denseValues(t, tr))

	// Without the boundary, the unpadded outer edges of axis 1 lose data.
	tr, err = TrimInternal(ctx, g, depth, WithOuterEdges())
	require.NoError(t, err)
	require.Equal(t, []int{2, 2}, tr.Layout().Sizes(1))
}

func TestTrimRejectsExcessDepth(t *testing.T) {
	ctx := context.Background()
	a := arange(t, []int{9}, []int{3})

	_, err := TrimInternal(ctx, a, DepthSpec{0: Symmetric(2)})
	require.ErrorIs(t, err, ErrDepth)

	// Edge blocks survive when outer edges are kept.
	_, err = TrimInternal(ctx, a, DepthSpec{0: Asymmetric(2, 0)})
	require.NoError(t, err)

	_, err = TrimInternal(ctx, a, DepthSpec{0: Symmetric(-1)})
	require.ErrorIs(t, err, ErrDepth)
	_, err = TrimInternal(ctx, a, DepthSpec{1: Symmetric(1)})
	require.ErrorIs(t, err, ErrDepth)
}
