package halo

import (
	"runtime"

	"github.com/go-kit/log"
)

// Option configures an engine operation.
type Option func(*options)

type options struct {
	name         string
	concurrency  int
	logger       log.Logger
	metrics      *Metrics
	outputChunks *Chunks
	outerEdges   bool
	boundary     BoundarySpec
}

func defaultOptions() *options {
	return &options{
		concurrency: runtime.GOMAXPROCS(0),
		logger:      log.NewNopLogger(),
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithName sets the name of the resulting array. Block keys are derived
// from it. An empty name selects a generated one.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithConcurrency limits how many blocks are computed at once.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithLogger sets the logger used for pass-level debug output.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics records block and border counters into m.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithOutputChunks declares the block sizes produced by a function that
// changes block shape. Used by MapBlocks.
func WithOutputChunks(c Chunks) Option {
	return func(o *options) {
		o.outputChunks = &c
	}
}

// WithOuterEdges makes TrimInternal also trim the outermost edges of the
// array.
func WithOuterEdges() Option {
	return func(o *options) {
		o.outerEdges = true
	}
}

// WithBoundary tells TrimInternal which boundary policies were used to
// build the overlap, so outer edges that were never padded (policy none)
// are left alone when trimming outer edges.
func WithBoundary(bs BoundarySpec) Option {
	return func(o *options) {
		if bs == nil {
			bs = BoundarySpec{}
		}
		o.boundary = bs
	}
}
