// Package metrics exposes Prometheus metrics for the bot integration.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Connection state gauge values.
const (
	StateConnecting = 0
	StateConnected  = 1
	StateError      = 2
)

type Metrics struct {
	registry        prometheus.Registerer
	updatesTotal    *prometheus.CounterVec
	dispatchTotal   *prometheus.CounterVec
	pollCycles      *prometheus.CounterVec
	batchSize       prometheus.Histogram
	sendFailures    prometheus.Counter
	connectionState prometheus.Gauge
}

func New(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		registry: reg,
		updatesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "updates_total",
				Help:      "Total number of inbound updates by kind",
			},
			[]string{"kind"},
		),
		dispatchTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "dispatch_total",
				Help:      "Total number of dispatched updates by outcome",
			},
			[]string{"outcome"},
		),
		pollCycles: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "poll_cycles_total",
				Help:      "Total number of poll cycles by result",
			},
			[]string{"result"},
		),
		batchSize: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "poll_batch_size",
				Help:      "Number of updates received per poll cycle",
				Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100},
			},
		),
		sendFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "send_failures_total",
				Help:      "Total number of failed outbound sends",
			},
		),
		connectionState: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "connection_state",
				Help:      "Connection state: 0=connecting, 1=connected, 2=error",
			},
		),
	}

	reg.MustRegister(
		m.updatesTotal,
		m.dispatchTotal,
		m.pollCycles,
		m.batchSize,
		m.sendFailures,
		m.connectionState,
	)

	return m
}

func (m *Metrics) RecordUpdate(kind string) {
	if m == nil {
		return
	}
	m.updatesTotal.WithLabelValues(kind).Inc()
}

func (m *Metrics) RecordDispatch(outcome string) {
	if m == nil {
		return
	}
	m.dispatchTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RecordPollCycle(result string, batchSize int) {
	if m == nil {
		return
	}
	m.pollCycles.WithLabelValues(result).Inc()
	if result == "success" {
		m.batchSize.Observe(float64(batchSize))
	}
}

func (m *Metrics) RecordSendFailure() {
	if m == nil {
		return
	}
	m.sendFailures.Inc()
}

func (m *Metrics) SetConnectionState(state float64) {
	if m == nil {
		return
	}
	m.connectionState.Set(state)
}
