package halo

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters updated by engine operations.
type Metrics struct {
	BlocksBuilt    *prometheus.CounterVec
	BorderElements *prometheus.CounterVec
	BlockFailures  prometheus.Counter
}

// NewMetrics creates and registers all metrics with the provided registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	blocksBuilt := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "halo_blocks_built_total",
		Help: "Total blocks produced, by operation",
	}, []string{"op"})

	borderElements := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "halo_border_elements_total",
		Help: "Total border elements attached to blocks, by source",
	}, []string{"source"})

	blockFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "halo_block_failures_total",
		Help: "Total block functions that returned an error",
	})

	reg.MustRegister(blocksBuilt, borderElements, blockFailures)

	return &Metrics{
		BlocksBuilt:    blocksBuilt,
		BorderElements: borderElements,
		BlockFailures:  blockFailures,
	}
}

func (m *Metrics) blockBuilt(op string) {
	if m == nil {
		return
	}
	m.BlocksBuilt.WithLabelValues(op).Inc()
}

func (m *Metrics) border(source string, elements int) {
	if m == nil || elements == 0 {
		return
	}
	m.BorderElements.WithLabelValues(source).Add(float64(elements))
}

func (m *Metrics) blockFailed() {
	if m == nil {
		return
	}
	m.BlockFailures.Inc()
}
