package rootedtree

import (
	"github.com/wyfcoding/treeops/logging"
	"github.com/wyfcoding/treeops/metrics"
)

type options struct {
	logger         *logging.Logger
	metrics        *metrics.EngineMetrics
	skipValidation bool
}

// Option 配置 Build 行为。
type Option func(*options)

// WithLogger 指定日志记录器，默认使用 logging.Default()。
func WithLogger(l *logging.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics 挂载引擎指标；nil 表示不采集。
func WithMetrics(m *metrics.EngineMetrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithSkipValidation 跳过边集结构校验，调用方必须保证输入是一棵树。
// 节点编号越界仍会被检查。
func WithSkipValidation() Option {
	return func(o *options) { o.skipValidation = true }
}
