package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsSnapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/api/tickets", "GET", 200, 10*time.Millisecond)
	m.RecordRequest("/api/tickets", "GET", 200, 30*time.Millisecond)
	m.RecordError("/api/complaints", "POST", "OPERATION_FAILED")
	m.RecordExport()

	snap := m.Snapshot()

	require.Len(t, snap.Requests, 1)
	assert.Equal(t, "/api/tickets|GET|200", snap.Requests[0].Key)
	assert.Equal(t, int64(2), snap.Requests[0].Count)
	assert.Equal(t, 20*time.Millisecond, snap.Requests[0].AvgDuration)
	assert.Equal(t, int64(1), snap.Errors["/api/complaints|POST|OPERATION_FAILED"])
	assert.Equal(t, int64(1), snap.Exports)
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, time.Millisecond)
	m.RecordError("/", "GET", "X")
	m.RecordExport()
	assert.Empty(t, m.Snapshot().Requests)
}
