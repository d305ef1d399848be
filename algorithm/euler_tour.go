package algorithm

// optNode 是可缺省的节点引用：零值表示“不存在”，否则保存 id+1。
type optNode uint32

func someNode(id int) optNode { return optNode(id + 1) }

func (o optNode) get() (int, bool) {
	if o == 0 {
		return 0, false
	}
	return int(o) - 1, true
}

// EulerTour 将有根树压平为一维下标空间：
// 节点 v 的子树恰好对应连续区间 [In(v), Out(v)]。
type EulerTour struct {
	in     []int
	out    []int
	depth  []int
	parent []optNode
	order  []int // order[In(v)] = v
	root   int
}

// tourFrame 是显式栈上的一帧，next 为邻接表中下一个待访问的位置。
type tourFrame struct {
	node   int
	next   int
	parent optNode
}

// NewEulerTour 从 root 出发做一次先序遍历，计算进入/离开时间、深度与父节点。
// adj 必须描述一棵包含全部节点的无向树，本函数不做校验。
// 使用显式栈而非递归，链状树（深度达 10^5 以上）也不会耗尽调用栈。
func NewEulerTour(adj [][]int, root int) *EulerTour {
	n := len(adj)
	t := &EulerTour{
		in:     make([]int, n),
		out:    make([]int, n),
		depth:  make([]int, n),
		parent: make([]optNode, n),
		order:  make([]int, n),
		root:   root,
	}
	if n == 0 {
		return t
	}

	timer := 0
	stack := make([]tourFrame, 0, 64)
	enter := func(v int, p optNode, d int) {
		t.in[v] = timer
		t.order[timer] = v
		timer++
		t.depth[v] = d
		t.parent[v] = p
		stack = append(stack, tourFrame{node: v, parent: p})
	}

	enter(root, 0, 0)
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next < len(adj[top.node]) {
			child := adj[top.node][top.next]
			top.next++
			if p, ok := top.parent.get(); ok && p == child {
				continue
			}
			enter(child, someNode(top.node), t.depth[top.node]+1)
			continue
		}
		t.out[top.node] = timer - 1
		stack = stack[:len(stack)-1]
	}

	return t
}

// Len 返回节点数。
func (t *EulerTour) Len() int { return len(t.in) }

// Root 返回根节点。
func (t *EulerTour) Root() int { return t.root }

// In 返回 v 的进入时间。
func (t *EulerTour) In(v int) int { return t.in[v] }

// Out 返回 v 子树内最后一个进入时间。
func (t *EulerTour) Out(v int) int { return t.out[v] }

// Depth 返回 v 到根的边数，根深度为 0。
func (t *EulerTour) Depth(v int) int { return t.depth[v] }

// Parent 返回 v 的父节点，根节点返回 false。
func (t *EulerTour) Parent(v int) (int, bool) { return t.parent[v].get() }

// At 返回进入时间为 pos 的节点。
func (t *EulerTour) At(pos int) int { return t.order[pos] }

// SubtreeSize 返回以 v 为根的子树节点数。
func (t *EulerTour) SubtreeSize(v int) int { return t.out[v] - t.in[v] + 1 }

// Contains 判断 v 是否在 u 的子树中（u 本身也算）。
func (t *EulerTour) Contains(u, v int) bool {
	return t.in[u] <= t.in[v] && t.in[v] <= t.out[u]
}

// Height 返回最大深度。
func (t *EulerTour) Height() int {
	h := 0
	for _, d := range t.depth {
		h = max(h, d)
	}
	return h
}
