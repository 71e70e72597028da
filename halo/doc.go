// Package halo runs neighborhood computations (stencils, convolutions,
// sliding windows) independently on every block of a chunked array.
//
// The workflow has three steps:
//
//  1. [Overlap] enlarges every block with a border copied from its
//     neighbors, or synthesized by a [Boundary] policy on the array edge.
//  2. [MapBlocks] runs a block-local function on every enlarged block.
//  3. [TrimInternal] removes the borders again, restoring the original
//     partitioning.
//
// [MapOverlap] chains the three.
//
// # Example
//
//	x, _ := halo.BlockFromFunc([]int{8, 8}, func(i int) int { return i })
//	a, _ := halo.FromDense(x, []int{4, 4})
//	g, err := halo.Overlap(ctx, a,
//	    halo.DepthSpec{0: halo.Symmetric(2), 1: halo.Symmetric(1)},
//	    halo.BoundarySpec{0: halo.Constant(100), 1: halo.Reflect})
//	// every block of g is 8x6
//
// # Boundaries
//
// Where a block has no neighbor on one side, the border is built by the
// axis policy:
//
//   - [Periodic]: the edge of the block at the other end of the axis
//   - [Reflect]: the block's own edge, mirrored
//   - [Nearest]: the block's outermost slice, repeated
//   - [Constant]: a border filled with one value
//   - [None]: no border; the block does not grow on that side
//
// # Corners
//
// Axes are overlapped one at a time, each pass reading the previous pass's
// output. A border copied along axis 1 comes from a neighbor that already
// carries its axis-0 border, so diagonal neighbors contribute their corner
// data without being visited directly.
//
// # Concurrency
//
// Within one pass every block is built independently, in parallel, up to
// [WithConcurrency] at a time. Arrays and blocks are never modified after
// construction, so no locking is needed.
package halo
