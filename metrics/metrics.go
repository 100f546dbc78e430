// Package metrics exposes prometheus collectors for prove and verify calls.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/PolyhedraZK/bpgadgets/zkerr"
)

const namespace = "bpgadgets"

// Metrics groups the engine collectors. A nil *Metrics records nothing.
type Metrics struct {
	proveTotal    *prometheus.CounterVec
	verifyTotal   *prometheus.CounterVec
	proveSeconds  *prometheus.HistogramVec
	verifySeconds *prometheus.HistogramVec
	proofBytes    prometheus.Histogram
}

// New creates the collectors and registers them with reg when reg is not nil.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		proveTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "prove_total",
			Help:      "Prove calls by gadget and outcome",
		}, []string{"gadget", "result"}),
		verifyTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verify_total",
			Help:      "Verify calls by gadget and outcome",
		}, []string{"gadget", "result"}),
		proveSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "prove_duration_seconds",
			Help:      "Duration of prove calls",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14), // 1ms ~ 8s
		}, []string{"gadget"}),
		verifySeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "verify_duration_seconds",
			Help:      "Duration of verify calls",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14),
		}, []string{"gadget"}),
		proofBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "proof_bytes",
			Help:      "Size of produced proofs",
			Buckets:   prometheus.LinearBuckets(500, 64, 16),
		}),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range m.collectors() {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{m.proveTotal, m.verifyTotal, m.proveSeconds, m.verifySeconds, m.proofBytes}
}

// ObserveProve records one prove call. proofLen is ignored when err is not nil.
func (m *Metrics) ObserveProve(gadget string, err error, d time.Duration, proofLen int) {
	if m == nil {
		return
	}
	m.proveTotal.WithLabelValues(gadget, zkerr.Kind(err)).Inc()
	m.proveSeconds.WithLabelValues(gadget).Observe(d.Seconds())
	if err == nil {
		m.proofBytes.Observe(float64(proofLen))
	}
}

func (m *Metrics) ObserveVerify(gadget string, err error, d time.Duration) {
	if m == nil {
		return
	}
	m.verifyTotal.WithLabelValues(gadget, zkerr.Kind(err)).Inc()
	m.verifySeconds.WithLabelValues(gadget).Observe(d.Seconds())
}

// Counts returns the number of prove and verify calls recorded for gadget and result.
func (m *Metrics) Counts(gadget, result string) (prove, verify float64) {
	if m == nil {
		return 0, 0
	}
	return counterValue(m.proveTotal, gadget, result), counterValue(m.verifyTotal, gadget, result)
}
