package algorithm

import (
	"math/rand/v2"
)

// randomTree 生成 n 个节点、深度不超过 maxDepth 的随机树，节点编号随机打乱。
// 返回邻接表、根以及每个节点的真实父节点（根为 -1），供暴力校验使用。
func randomTree(rng *rand.Rand, n, maxDepth int) (adj [][]int, root int, parent []int) {
	label := rng.Perm(n)
	depth := make([]int, n)
	parent = make([]int, n)
	adj = make([][]int, n)

	parent[label[0]] = -1
	eligible := []int{0} // 以生成顺序计的下标
	for i := 1; i < n; i++ {
		p := eligible[rng.IntN(len(eligible))]
		depth[i] = depth[p] + 1
		if depth[i] < maxDepth {
			eligible = append(eligible, i)
		}
		u, v := label[p], label[i]
		parent[v] = u
		adj[u] = append(adj[u], v)
		adj[v] = append(adj[v], u)
	}
	for _, nb := range adj {
		rng.Shuffle(len(nb), func(i, j int) { nb[i], nb[j] = nb[j], nb[i] })
	}
	return adj, label[0], parent
}

// pathToRoot 返回 v 到根的节点序列（含两端）。
func pathToRoot(parent []int, v int) []int {
	var path []int
	for ; v != -1; v = parent[v] {
		path = append(path, v)
	}
	return path
}

// bruteIsAncestor 判断 u 是否为 v 的祖先（含自身）。
func bruteIsAncestor(parent []int, u, v int) bool {
	for ; v != -1; v = parent[v] {
		if v == u {
			return true
		}
	}
	return false
}

// bruteLCA 取两条根路径上最深的公共节点。
func bruteLCA(parent []int, u, v int) int {
	onPath := make(map[int]bool)
	for _, x := range pathToRoot(parent, u) {
		onPath[x] = true
	}
	for _, x := range pathToRoot(parent, v) {
		if onPath[x] {
			return x
		}
	}
	return -1
}

func chain(n int) [][]int {
	adj := make([][]int, n)
	for i := 1; i < n; i++ {
		adj[i-1] = append(adj[i-1], i)
		adj[i] = append(adj[i], i-1)
	}
	return adj
}
