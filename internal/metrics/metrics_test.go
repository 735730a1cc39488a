package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Record(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New("storebot", registry)

	m.RecordUpdate("message")
	m.RecordUpdate("message")
	m.RecordUpdate("callback")
	m.RecordDispatch("ok")
	m.RecordDispatch("error")
	m.RecordPollCycle("success", 3)
	m.RecordPollCycle("failure", 0)
	m.RecordSendFailure()
	m.SetConnectionState(StateConnected)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.updatesTotal.WithLabelValues("message")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.updatesTotal.WithLabelValues("callback")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.dispatchTotal.WithLabelValues("ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.dispatchTotal.WithLabelValues("error")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.pollCycles.WithLabelValues("success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.pollCycles.WithLabelValues("failure")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.sendFailures))
	assert.Equal(t, float64(StateConnected), testutil.ToFloat64(m.connectionState))
}

func TestMetrics_RegistersAllCollectors(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New("storebot", registry)
	m.RecordUpdate("message")
	m.RecordPollCycle("success", 1)

	families, err := registry.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}

	assert.True(t, names["storebot_updates_total"])
	assert.True(t, names["storebot_poll_cycles_total"])
	assert.True(t, names["storebot_poll_batch_size"])
}

func TestMetrics_NilReceiverIsSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordUpdate("message")
		m.RecordDispatch("ok")
		m.RecordPollCycle("success", 1)
		m.RecordSendFailure()
		m.SetConnectionState(StateError)
	})
}
