package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordConflict(t *testing.T) {
	m := NewWithRegistry("test", prometheus.NewRegistry())

	m.RecordConflict("create")
	m.RecordConflict("create")
	m.RecordConflict("reschedule")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.SchedulingConflictsTotal.WithLabelValues("create")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SchedulingConflictsTotal.WithLabelValues("reschedule")))
}

func TestRecord_NilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordConflict("create")
		m.RecordAppointmentCreated("create")
	})
}
