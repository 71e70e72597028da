package halo

import "context"

// MapOverlap runs fn on every block of a with borders of the given depth
// attached, then trims the borders off again, outer edges included. fn
// must preserve block shape. The result has the layout of a.
func MapOverlap[T any](ctx context.Context, a *ChunkedArray[T], fn BlockFunc[T, T], depth DepthSpec, boundary BoundarySpec, opts ...Option) (*ChunkedArray[T], error) {
	// Intermediate arrays get generated names; a caller-supplied name is
	// kept for the result only.
	inner := make([]Option, 0, len(opts)+1)
	inner = append(inner, opts...)
	inner = append(inner, WithName(""))

	g, err := Overlap(ctx, a, depth, boundary, inner...)
	if err != nil {
		return nil, err
	}
	m, err := MapBlocks(ctx, g, fn, inner...)
	if err != nil {
		return nil, err
	}

	final := make([]Option, 0, len(opts)+2)
	final = append(final, opts...)
	final = append(final, WithOuterEdges(), WithBoundary(boundary))
	return TrimInternal(ctx, m, depth, final...)
}
