package algorithm

// ModFenwick (树状数组) 在模 Modulus 意义下维护前缀和。
// 下标从 1 开始，底层切片长度为 n+1，下标 0 不存储数据。
// 单点更新与前缀查询均为 O(log N)。
type ModFenwick struct {
	tree []int64
}

// NewModFenwick 创建可容纳 n 个位置的树状数组。
func NewModFenwick(n int) *ModFenwick {
	return &ModFenwick{tree: make([]int64, n+1)}
}

// Len 返回可用位置数 n。
func (f *ModFenwick) Len() int {
	return len(f.tree) - 1
}

// Add 在位置 i 加上 delta。
// i > n 时为空操作，差分区间的右端点恰好落在末尾之后时依赖这一点。
func (f *ModFenwick) Add(i int, delta int64) {
	if i <= 0 {
		return
	}
	d := NormMod(delta)
	if d == 0 {
		return
	}
	for ; i < len(f.tree); i += i & -i {
		f.tree[i] = AddMod(f.tree[i], d)
	}
}

// Prefix 返回位置 1..i 之和，i 超过 n 时按 n 计算。
func (f *ModFenwick) Prefix(i int) int64 {
	if i >= len(f.tree) {
		i = len(f.tree) - 1
	}
	var sum int64
	for ; i > 0; i -= i & -i {
		sum = AddMod(sum, f.tree[i])
	}
	return sum
}

// RangeAdd 对闭区间 [l, r] 做差分加法：位置 l 加 delta，位置 r+1 减 delta。
// 之后 Prefix(i) 即为位置 i 的点值。
func (f *ModFenwick) RangeAdd(l, r int, delta int64) {
	d := NormMod(delta)
	f.Add(l, d)
	f.Add(r+1, SubMod(0, d))
}

// Reset 清零，不重新分配内存。
func (f *ModFenwick) Reset() {
	clear(f.tree)
}
