// Package ndarray provides the dense n-dimensional buffers that hold the
// data of a single block.
//
// A [Dense] value is an immutable row-major buffer with a shape. Every
// operation in this package returns a freshly allocated buffer; no result
// ever aliases the storage of its inputs.
//
// # Row-major Layout
//
// Element (i0, i1, ..., iN) lives at flat offset sum(ik * stride[k]) where
// stride[N] = 1 and stride[k] = stride[k+1] * shape[k+1]. The innermost
// axis is contiguous, so region copies recurse through the outer axes and
// finish with one contiguous copy per innermost row.
//
// # Operations
//
//   - [Dense.Slice] / [Dense.SliceAxis]: rectangular selection (start, count)
//   - [Concat]: concatenation of buffers along one axis
//   - [Dense.Reverse]: mirror along one axis
//   - [Full]: constant-filled buffer
//   - [Assemble]: copy a set of buffers into their offsets of a larger buffer
//
// Axes of length zero are permitted. They describe empty borders and
// concatenate as no-ops.
package ndarray
