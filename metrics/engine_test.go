package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestEngineMetrics(t *testing.T) {
	m := NewMetrics("test")
	em := NewEngineMetrics(m)

	em.ObserveBuild(5, time.Millisecond)
	em.IncUpdate()
	em.IncUpdate()
	em.IncQuery(QueryPath)
	em.IncQuery("unknown")
	em.AddBatchOps("U", 3)

	assert.InDelta(t, 5, testutil.ToFloat64(em.nodes), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(em.updates), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(em.queries[QueryPath]), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(em.queries[QueryNode]), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(em.batchOps.WithLabelValues("U")), 0)
}

func TestEngineMetricsNilSafe(t *testing.T) {
	var em *EngineMetrics
	assert.NotPanics(t, func() {
		em.ObserveBuild(1, time.Second)
		em.IncUpdate()
		em.IncQuery(QueryNode)
		em.AddBatchOps("Q", 1)
	})
}

func TestRegisterBuildInfo(t *testing.T) {
	m := NewMetrics("test")
	m.RegisterBuildInfo("treeops", "")
	assert.InDelta(t, 1, testutil.ToFloat64(m.BuildInfo.WithLabelValues("treeops", "unknown")), 0)
}
