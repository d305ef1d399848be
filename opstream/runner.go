package opstream

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"time"

	"github.com/wyfcoding/treeops/config"
	"github.com/wyfcoding/treeops/logging"
	"github.com/wyfcoding/treeops/metrics"
	"github.com/wyfcoding/treeops/rootedtree"
	"github.com/wyfcoding/treeops/tracing"
	"github.com/wyfcoding/treeops/xerrors"
)

// cancelCheckEvery 每执行这么多条操作检查一次 ctx。
const cancelCheckEvery = 1024

// Stats 汇总一次批处理。
type Stats struct {
	Updates int
	Queries int
	Elapsed time.Duration
}

// Runner 将操作流依次施加到引擎上，查询结果逐行写出。
type Runner struct {
	engine  *rootedtree.Engine
	query   func(u, v int) (int64, error)
	mode    string
	logger  *logging.Logger
	metrics *metrics.EngineMetrics
}

// NewRunner 创建执行器。mode 取 config.PathModeInclusionExclusion（默认）或 config.PathModeSum。
func NewRunner(engine *rootedtree.Engine, mode string, logger *logging.Logger, m *metrics.EngineMetrics) (*Runner, error) {
	if logger == nil {
		logger = logging.Default()
	}
	r := &Runner{engine: engine, mode: mode, logger: logger, metrics: m}
	switch mode {
	case "", config.PathModeInclusionExclusion:
		r.mode = config.PathModeInclusionExclusion
		r.query = engine.PathQuery
	case config.PathModeSum:
		r.query = engine.PathSum
	default:
		return nil, xerrors.InvalidArg("unknown path mode").WithDetail("path mode %q", mode)
	}
	return r, nil
}

// Run 依次执行 ops，每个查询结果写一行。ctx 被取消时提前返回已执行部分的统计。
func (r *Runner) Run(ctx context.Context, ops []Op, w io.Writer) (stats Stats, err error) {
	ctx, span := tracing.StartSpan(ctx, "opstream.Run")
	defer span.End()
	tracing.AddTag(ctx, "ops", len(ops))
	tracing.AddTag(ctx, "path_mode", r.mode)

	start := time.Now()
	defer func() {
		stats.Elapsed = time.Since(start)
		r.metrics.AddBatchOps(OpUpdate.String(), stats.Updates)
		r.metrics.AddBatchOps(OpQuery.String(), stats.Queries)
		if err != nil {
			tracing.SetError(ctx, err)
			r.logger.ErrorContext(ctx, "operation stream aborted", "error", err, "updates", stats.Updates, "queries", stats.Queries)
			return
		}
		r.logger.InfoContext(ctx, "operation stream finished",
			"updates", stats.Updates,
			"queries", stats.Queries,
			"duration", stats.Elapsed,
		)
	}()

	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 24)
	// 取消或出错时也要写出已缓冲的结果，且 w 只会收到完整的行。
	defer func() {
		if flushErr := bw.Flush(); flushErr != nil && err == nil {
			err = xerrors.Wrap(flushErr, xerrors.ErrInternal, "flush results")
		}
	}()

	for i, op := range ops {
		if i%cancelCheckEvery == 0 {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return stats, xerrors.New(xerrors.ErrCanceled, 499, "operation stream canceled", "", ctxErr).WithContext("op", i)
			}
		}

		switch op.Kind {
		case OpUpdate:
			if err = r.engine.ApplyUpdate(op.A, op.V, op.K); err != nil {
				return stats, withOp(err, i)
			}
			stats.Updates++
		case OpQuery:
			v, qErr := r.query(op.A, op.B)
			if qErr != nil {
				return stats, withOp(qErr, i)
			}
			buf = strconv.AppendInt(buf[:0], v, 10)
			buf = append(buf, '\n')
			if bw.Available() < len(buf) {
				if err = bw.Flush(); err != nil {
					return stats, xerrors.Wrap(err, xerrors.ErrInternal, "flush results")
				}
			}
			if _, err = bw.Write(buf); err != nil {
				return stats, xerrors.Wrap(err, xerrors.ErrInternal, "write result")
			}
			stats.Queries++
		default:
			return stats, withOp(xerrors.MalformedInput("unknown operation kind %q", byte(op.Kind)), i)
		}
	}

	return stats, nil
}

func withOp(err error, i int) error {
	if xe, ok := xerrors.FromError(err); ok {
		xe.WithContext("op", i)
	}
	return err
}
