// Package chunks describes how an n-dimensional array is partitioned into
// rectangular blocks.
//
// A [Layout] holds, for every axis, the ordered lengths of the blocks along
// that axis. It carries no data. Block positions are addressed with an
// [Index], one coordinate per axis, and blocks are enumerated in row-major
// order with the last axis varying fastest.
//
// # Regular Layouts
//
// [Regular] splits an extent into blocks of a fixed length. When the
// extent is not a multiple of the block length the last block along that
// axis is shorter, the same way edge chunks are clipped to the dataset
// boundary in chunked storage:
//
//	l, _ := chunks.Regular([]int{10, 8}, []int{4, 4})
//	l.Sizes(0)      // [4 4 2]
//	l.Boundaries(0) // [0 4 8 10]
//
// # Irregular Layouts
//
// [New] accepts explicit per-axis sizes. Overlapping enlarges blocks by
// different amounts depending on whether they touch the array edge, so
// layouts derived by the overlap engine are generally irregular.
package chunks
