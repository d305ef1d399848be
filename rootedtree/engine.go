// Package rootedtree 实现固定形状有根树上的子树按深度线性更新与路径查询引擎。
//
// 建树时一次显式栈遍历得到欧拉序区间、深度与父节点，随后构建倍增祖先表；
// 更新 (T, V, K) 对 T 的子树内每个节点 x 加 V + K·(depth(x) − depth(T))，
// 拆成三棵树状数组上的区间加，更新与查询均为 O(log N)。
//
// Engine 不是并发安全的：所有方法都假定由单个 goroutine 串行调用。
package rootedtree

import (
	"context"
	"time"

	"github.com/wyfcoding/treeops/algorithm"
	"github.com/wyfcoding/treeops/logging"
	"github.com/wyfcoding/treeops/metrics"
	"github.com/wyfcoding/treeops/xerrors"
)

// Modulus 是所有返回值使用的模数。
const Modulus = algorithm.Modulus

// Engine 持有一棵树的全部状态，构建后形状不可变，只有更新会修改累计值。
type Engine struct {
	tour    *algorithm.EulerTour
	anc     *algorithm.AncestorTable
	values  *algorithm.DepthAffineStore
	rootSum *algorithm.DepthQuadraticStore

	logger  *logging.Logger
	metrics *metrics.EngineMetrics
}

// Build 由 n 个节点、n-1 条边和根 root 构建引擎。
// 输入不是一棵树时返回 xerrors.ErrInvalidTree，root 越界返回 xerrors.ErrInvalidNode。
func Build(n int, edges []Edge, root int, opts ...Option) (*Engine, error) {
	o := options{}
	for _, fn := range opts {
		fn(&o)
	}
	if o.logger == nil {
		o.logger = logging.Default()
	}

	if err := checkEdgeIDs(n, edges); err != nil {
		return nil, err
	}
	if root < 0 || root >= n {
		return nil, xerrors.InvalidNode(root, n)
	}
	if !o.skipValidation {
		if err := validateTree(n, edges); err != nil {
			return nil, err
		}
	}

	start := time.Now()

	adj := make([][]int, n)
	for _, e := range edges {
		adj[e.U] = append(adj[e.U], e.V)
		adj[e.V] = append(adj[e.V], e.U)
	}

	tour := algorithm.NewEulerTour(adj, root)
	e := &Engine{
		tour:    tour,
		anc:     algorithm.NewAncestorTable(tour),
		values:  algorithm.NewDepthAffineStore(n),
		rootSum: algorithm.NewDepthQuadraticStore(n),
		logger:  o.logger,
		metrics: o.metrics,
	}

	elapsed := time.Since(start)
	e.metrics.ObserveBuild(n, elapsed)
	e.logger.DebugContext(context.Background(), "rooted tree built",
		"nodes", n,
		"root", root,
		"height", tour.Height(),
		"levels", e.anc.Levels(),
		"duration", elapsed,
	)

	return e, nil
}

// Size 返回节点数 N。
func (e *Engine) Size() int { return e.tour.Len() }

// Root 返回根节点。
func (e *Engine) Root() int { return e.tour.Root() }

func (e *Engine) check(ids ...int) error {
	n := e.tour.Len()
	for _, id := range ids {
		if id < 0 || id >= n {
			return xerrors.InvalidNode(id, n)
		}
	}
	return nil
}

// ApplyUpdate 对 t 的子树内每个节点 x 加 V + K·(depth(x) − depth(t))。
// v, k 可以为任意 int64（包括负数），内部按模归一化。
func (e *Engine) ApplyUpdate(t int, v, k int64) error {
	if err := e.check(t); err != nil {
		return err
	}
	l, r, d := e.tour.In(t), e.tour.Out(t), e.tour.Depth(t)
	e.values.AddRange(l, r, v, k, d)
	e.rootSum.AddRange(l, r, v, k, d)
	e.metrics.IncUpdate()
	return nil
}

func (e *Engine) nodeValue(x int) int64 {
	return e.values.At(e.tour.In(x), e.tour.Depth(x))
}

func (e *Engine) rootPathSum(x int) int64 {
	return e.rootSum.At(e.tour.In(x), e.tour.Depth(x))
}

// NodeValue 返回节点 x 当前累计值，范围 [0, Modulus)。
func (e *Engine) NodeValue(x int) (int64, error) {
	if err := e.check(x); err != nil {
		return 0, err
	}
	e.metrics.IncQuery(metrics.QueryNode)
	return e.nodeValue(x), nil
}

// combine 计算 f(u) + f(v) − f(a) − f(parent(a))，a 为根时省略最后一项。
func (e *Engine) combine(u, v int, f func(int) int64) int64 {
	a := e.anc.LCA(u, v)
	res := algorithm.SubMod(algorithm.AddMod(f(u), f(v)), f(a))
	if p, ok := e.anc.Parent(a); ok {
		res = algorithm.SubMod(res, f(p))
	}
	return res
}

// PathQuery 返回 NodeValue(u) + NodeValue(v) − NodeValue(a) − NodeValue(parent(a))，a = LCA(u, v)，
// a 为根时最后一项视为 0。
//
// 该容斥式只在节点值是“根路径累计”时等于路径和；这里的节点值是单点值，
// 因此结果一般不等于 u 到 v 路径上的节点值之和。需要真实路径和时使用 PathSum。
func (e *Engine) PathQuery(u, v int) (int64, error) {
	if err := e.check(u, v); err != nil {
		return 0, err
	}
	e.metrics.IncQuery(metrics.QueryPath)
	return e.combine(u, v, e.nodeValue), nil
}

// PathSum 返回 u 到 v 路径上（含两端）所有节点当前值之和，范围 [0, Modulus)。
func (e *Engine) PathSum(u, v int) (int64, error) {
	if err := e.check(u, v); err != nil {
		return 0, err
	}
	e.metrics.IncQuery(metrics.QueryPathSum)
	return e.combine(u, v, e.rootPathSum), nil
}

// LCA 返回 u 和 v 的最近公共祖先。
func (e *Engine) LCA(u, v int) (int, error) {
	if err := e.check(u, v); err != nil {
		return 0, err
	}
	e.metrics.IncQuery(metrics.QueryAncestor)
	return e.anc.LCA(u, v), nil
}

// Lift 返回 v 向上第 k 个祖先；k 超过 v 的深度时 ok 为 false。
func (e *Engine) Lift(v, k int) (ancestor int, ok bool, err error) {
	if err = e.check(v); err != nil {
		return 0, false, err
	}
	e.metrics.IncQuery(metrics.QueryAncestor)
	ancestor, ok = e.anc.Lift(v, k)
	return ancestor, ok, nil
}

// Distance 返回 u 与 v 之间的边数。
func (e *Engine) Distance(u, v int) (int, error) {
	if err := e.check(u, v); err != nil {
		return 0, err
	}
	e.metrics.IncQuery(metrics.QueryAncestor)
	return e.anc.Distance(u, v), nil
}

// IsAncestor 判断 u 是否为 v 的祖先（u == v 时为 true）。
func (e *Engine) IsAncestor(u, v int) (bool, error) {
	if err := e.check(u, v); err != nil {
		return false, err
	}
	return e.tour.Contains(u, v), nil
}

// Depth 返回 v 的深度，根为 0。
func (e *Engine) Depth(v int) (int, error) {
	if err := e.check(v); err != nil {
		return 0, err
	}
	return e.tour.Depth(v), nil
}

// Parent 返回 v 的父节点，根节点 ok 为 false。
func (e *Engine) Parent(v int) (parent int, ok bool, err error) {
	if err = e.check(v); err != nil {
		return 0, false, err
	}
	parent, ok = e.tour.Parent(v)
	return parent, ok, nil
}

// Interval 返回 v 的欧拉序闭区间 [in, out]。
func (e *Engine) Interval(v int) (in, out int, err error) {
	if err = e.check(v); err != nil {
		return 0, 0, err
	}
	return e.tour.In(v), e.tour.Out(v), nil
}

// Height 返回树的最大深度。
func (e *Engine) Height() int { return e.tour.Height() }

// Values 返回所有节点当前值的快照，下标为节点编号。O(N log N)。
func (e *Engine) Values() []int64 {
	out := make([]int64, e.tour.Len())
	for x := range out {
		out[x] = e.nodeValue(x)
	}
	return out
}

// Reset 清除全部累计更新，树形不变。
func (e *Engine) Reset() {
	e.values.Reset()
	e.rootSum.Reset()
}
