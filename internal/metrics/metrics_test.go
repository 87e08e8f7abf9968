package metrics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCountersAreConcurrencySafe(t *testing.T) {
	m := NewMetrics()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.IncrementCounter(OrdersCreated)
		}()
	}
	wg.Wait()

	require.Equal(t, int64(50), m.GetCounters()[OrdersCreated])
}

func TestRecordTimer(t *testing.T) {
	m := NewMetrics()
	m.RecordTimer("db_select", 10)
	m.RecordTimer("db_select", 30)

	timer := m.GetTimers()["db_select"]
	require.Equal(t, int64(2), timer.Count)
	require.Equal(t, int64(10), timer.MinTimeMs)
	require.Equal(t, int64(30), timer.MaxTimeMs)
	require.InDelta(t, 20.0, timer.AverageTimeMs, 0.001)
}

func TestErrorRate(t *testing.T) {
	m := NewMetrics()
	m.RecordSuccess("db_insert")
	m.RecordSuccess("db_insert")
	m.RecordSuccess("db_insert")
	m.RecordError("db_insert")

	rate := m.GetErrorRates()["db_insert"]
	require.Equal(t, int64(4), rate.Total)
	require.Equal(t, int64(1), rate.Errors)
	require.InDelta(t, 25.0, rate.ErrorRate, 0.001)
}

func TestNilCollectorIsNoop(t *testing.T) {
	var m *Metrics
	require.NotPanics(t, func() {
		m.IncrementCounter(ClientsCreated)
		m.RecordTimer("x", 1)
		m.RecordError("x")
		m.SetHealth("db", true)
	})
}

func TestHealthChecks(t *testing.T) {
	m := NewMetrics()
	m.SetHealth("database", true)
	m.SetHealth("redis", false)

	checks := m.GetHealthChecks()
	require.True(t, checks["database"])
	require.False(t, checks["redis"])
}
