package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// 查询类别标签。
const (
	QueryNode     = "node_value"
	QueryPath     = "path_query"
	QueryPathSum  = "path_sum"
	QueryAncestor = "ancestor"
)

// EngineMetrics 树引擎指标。标签子指标在构造时解析，热路径上只做原子加。
// 所有方法对 nil 接收者安全，未启用指标时引擎可直接持有 nil。
type EngineMetrics struct {
	updates       prometheus.Counter
	queries       map[string]prometheus.Counter
	nodes         prometheus.Gauge
	buildDuration prometheus.Histogram
	batchOps      *prometheus.CounterVec
}

// NewEngineMetrics 在 m 的注册表上注册引擎指标。
func NewEngineMetrics(m *Metrics) *EngineMetrics {
	queries := m.NewCounterVec(prometheus.CounterOpts{
		Name: "treeops_queries_total",
		Help: "Total number of read operations served by the tree engine",
	}, []string{"kind"})

	em := &EngineMetrics{
		updates: m.NewCounter(prometheus.CounterOpts{
			Name: "treeops_updates_total",
			Help: "Total number of subtree updates applied",
		}),
		queries: make(map[string]prometheus.Counter, 4),
		nodes: m.NewGauge(prometheus.GaugeOpts{
			Name: "treeops_tree_nodes",
			Help: "Node count of the most recently built tree",
		}),
		buildDuration: m.NewHistogram(prometheus.HistogramOpts{
			Name:    "treeops_build_duration_seconds",
			Help:    "Time spent building the Euler tour and ancestor table",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		batchOps: m.NewCounterVec(prometheus.CounterOpts{
			Name: "treeops_batch_ops_total",
			Help: "Operations executed from an operation stream",
		}, []string{"op"}),
	}
	for _, kind := range []string{QueryNode, QueryPath, QueryPathSum, QueryAncestor} {
		em.queries[kind] = queries.WithLabelValues(kind)
	}
	return em
}

// ObserveBuild 记录一次建树。
func (em *EngineMetrics) ObserveBuild(nodes int, elapsed time.Duration) {
	if em == nil {
		return
	}
	em.nodes.Set(float64(nodes))
	em.buildDuration.Observe(elapsed.Seconds())
}

// IncUpdate 记录一次子树更新。
func (em *EngineMetrics) IncUpdate() {
	if em == nil {
		return
	}
	em.updates.Inc()
}

// IncQuery 记录一次查询，kind 取本包的 Query* 常量。
func (em *EngineMetrics) IncQuery(kind string) {
	if em == nil {
		return
	}
	if c, ok := em.queries[kind]; ok {
		c.Inc()
	}
}

// AddBatchOps 记录批处理执行的操作数。
func (em *EngineMetrics) AddBatchOps(op string, n int) {
	if em == nil || n == 0 {
		return
	}
	em.batchOps.WithLabelValues(op).Add(float64(n))
}
