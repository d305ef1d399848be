package rootedtree

import (
	"github.com/wyfcoding/treeops/xerrors"
)

// Edge 是一条以 0 起始编号的无向边。
type Edge struct {
	U, V int
}

// checkEdgeIDs 检查端点范围与自环，跳过结构校验时也要做：
// 越界会让建邻接表越界，自环会让欧拉序遍历反复进入同一节点。
func checkEdgeIDs(n int, edges []Edge) error {
	if n < 1 {
		return xerrors.InvalidTree("node count %d must be positive", n)
	}
	if len(edges) != n-1 {
		return xerrors.InvalidTree("got %d edges, a tree on %d nodes has %d", len(edges), n, n-1)
	}
	for i, e := range edges {
		if e.U < 0 || e.U >= n || e.V < 0 || e.V >= n {
			return xerrors.InvalidTree("edge %d (%d,%d) has an endpoint outside [0, %d)", i, e.U, e.V, n)
		}
		if e.U == e.V {
			return xerrors.InvalidTree("edge %d is a self loop on node %d", i, e.U).WithContext("edge", i)
		}
	}
	return nil
}

// validateTree 确认边集无环（含重边），自环已由 checkEdgeIDs 排除。
// 边数已为 n-1，无环即连通。
func validateTree(n int, edges []Edge) error {
	dsu := newDisjointSet(n)
	for i, e := range edges {
		if !dsu.union(e.U, e.V) {
			return xerrors.InvalidTree("edge %d (%d,%d) closes a cycle", i, e.U, e.V).WithContext("edge", i)
		}
	}
	return nil
}

// disjointSet 并查集，按大小合并 + 路径减半。
type disjointSet struct {
	parent []int
	size   []int
}

func newDisjointSet(n int) *disjointSet {
	d := &disjointSet{parent: make([]int, n), size: make([]int, n)}
	for i := range n {
		d.parent[i] = i
		d.size[i] = 1
	}
	return d
}

func (d *disjointSet) find(x int) int {
	for d.parent[x] != x {
		d.parent[x] = d.parent[d.parent[x]]
		x = d.parent[x]
	}
	return x
}

// union 合并两个集合，已在同一集合时返回 false。
func (d *disjointSet) union(a, b int) bool {
	ra, rb := d.find(a), d.find(b)
	if ra == rb {
		return false
	}
	if d.size[ra] < d.size[rb] {
		ra, rb = rb, ra
	}
	d.parent[rb] = ra
	d.size[ra] += d.size[rb]
	return true
}
