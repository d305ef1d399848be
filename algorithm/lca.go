package algorithm

import (
	"math/bits"
)

// AncestorTable 实现了倍增法求最近公共祖先。
// up[k*n+v] 表示节点 v 的第 2^k 个祖先，不存在时为零值 optNode。
// 构建后只读。
type AncestorTable struct {
	up     []optNode
	depth  []int
	n      int
	levels int
}

// NewAncestorTable 基于欧拉序遍历得到的父节点与深度，自底向上构建倍增表，O(N log N)。
func NewAncestorTable(tour *EulerTour) *AncestorTable {
	n := tour.Len()
	// levels = ceil(log2 N)，至少为 1；最大深度 N-1 < 2^levels。
	levels := max(1, bits.Len(uint(max(n-1, 0))))
	at := &AncestorTable{
		up:     make([]optNode, n*levels),
		depth:  tour.depth,
		n:      n,
		levels: levels,
	}

	copy(at.up[:n], tour.parent)
	for k := 1; k < levels; k++ {
		prev := at.up[(k-1)*n : k*n]
		cur := at.up[k*n : (k+1)*n]
		for v := range n {
			// up[k][v] = up[k-1][up[k-1][v]]。
			if mid, ok := prev[v].get(); ok {
				cur[v] = prev[mid]
			}
		}
	}

	return at
}

// Levels 返回倍增表的层数。
func (at *AncestorTable) Levels() int { return at.levels }

// Depth 返回 v 的深度。
func (at *AncestorTable) Depth(v int) int { return at.depth[v] }

// Parent 返回 v 的直接父节点。
func (at *AncestorTable) Parent(v int) (int, bool) { return at.up[v].get() }

// Lift 返回 v 向上第 k 个祖先；k 为负或超过 v 的深度时返回 false。
func (at *AncestorTable) Lift(v, k int) (int, bool) {
	if k < 0 || k > at.depth[v] {
		return 0, false
	}
	for i := 0; k > 0; i++ {
		if k&1 == 1 {
			next, ok := at.up[i*at.n+v].get()
			if !ok {
				return 0, false
			}
			v = next
		}
		k >>= 1
	}
	return v, true
}

// LCA 查询两个节点的最近公共祖先。
func (at *AncestorTable) LCA(u, v int) int {
	if at.depth[u] < at.depth[v] {
		u, v = v, u
	}

	// 1. 将 u 提升到与 v 同一深度。
	u, _ = at.Lift(u, at.depth[u]-at.depth[v])
	if u == v {
		return u
	}

	// 2. 从高位到低位同时提升，只在两侧祖先仍不同时前进，因此不会越过 LCA。
	for k := at.levels - 1; k >= 0; k-- {
		pu, okU := at.up[k*at.n+u].get()
		pv, okV := at.up[k*at.n+v].get()
		if okU && okV && pu != pv {
			u, v = pu, pv
		}
	}

	p, _ := at.up[u].get()
	return p
}

// Distance 计算两个节点之间的路径边数。
func (at *AncestorTable) Distance(u, v int) int {
	ancestor := at.LCA(u, v)
	return at.depth[u] + at.depth[v] - 2*at.depth[ancestor]
}
