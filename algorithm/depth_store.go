package algorithm

// DepthAffineStore 用三棵树状数组编码“对欧拉序区间内每个节点 x 加 V + K·(depth(x) − d0)”。
// 直接逐点更新需要 O(子树大小)，拆成三个与深度无关的区间加后每次更新 O(log N)：
//
//	base   ±V
//	slope  ±K          查询时乘以 depth(x)
//	offset ±K·d0       查询时减去
//
// 区间加法满足交换律，任意顺序应用同一组更新得到相同结果。
type DepthAffineStore struct {
	base   *ModFenwick
	slope  *ModFenwick
	offset *ModFenwick
}

// NewDepthAffineStore 创建覆盖 n 个欧拉序位置的存储。
func NewDepthAffineStore(n int) *DepthAffineStore {
	return &DepthAffineStore{
		base:   NewModFenwick(n),
		slope:  NewModFenwick(n),
		offset: NewModFenwick(n),
	}
}

// AddRange 对 0 起始的欧拉序闭区间 [l, r] 施加 V + K·(depth − baseDepth)。
// 对应树状数组下标 l+1 与 r+2。
func (s *DepthAffineStore) AddRange(l, r int, v, k int64, baseDepth int) {
	vn, kn := NormMod(v), NormMod(k)
	off := MulMod(kn, NormMod(int64(baseDepth)))

	s.base.RangeAdd(l+1, r+1, vn)
	s.slope.RangeAdd(l+1, r+1, kn)
	s.offset.RangeAdd(l+1, r+1, off)
}

// At 返回欧拉序位置 pos、深度为 depth 的节点的累计值，范围 [0, Modulus)。
func (s *DepthAffineStore) At(pos, depth int) int64 {
	i := pos + 1
	s1 := s.base.Prefix(i)
	s2 := s.slope.Prefix(i)
	s3 := s.offset.Prefix(i)
	return SubMod(AddMod(s1, MulMod(NormMod(int64(depth)), s2)), s3)
}

// Reset 清除所有更新。
func (s *DepthAffineStore) Reset() {
	s.base.Reset()
	s.slope.Reset()
	s.offset.Reset()
}

// DepthQuadraticStore 维护“根到 x 路径上所有节点值之和”，即每个节点值的根路径累计。
// 一次更新 (T, V, K) 对子树内深度为 D 的节点 x 贡献
//
//	Σ_{j=0}^{D−t} (V + K·j) = (s+1)·V + K·s·(s+1)/2,  s = D − t, t = depth(T)
//
// 展开后是 D 的二次多项式，三个系数各用一棵树状数组做区间加：
//
//	c2 = K/2
//	c1 = V + K/2 − K·t
//	c0 = V − t·V + K/2·(t² − t)
type DepthQuadraticStore struct {
	c0 *ModFenwick
	c1 *ModFenwick
	c2 *ModFenwick
}

// NewDepthQuadraticStore 创建覆盖 n 个欧拉序位置的存储。
func NewDepthQuadraticStore(n int) *DepthQuadraticStore {
	return &DepthQuadraticStore{
		c0: NewModFenwick(n),
		c1: NewModFenwick(n),
		c2: NewModFenwick(n),
	}
}

// AddRange 将更新 V + K·(depth − baseDepth) 的根路径累计加到区间 [l, r]。
func (s *DepthQuadraticStore) AddRange(l, r int, v, k int64, baseDepth int) {
	vn, kn := NormMod(v), NormMod(k)
	t := NormMod(int64(baseDepth))
	halfK := MulMod(kn, Inv2)

	a2 := halfK
	a1 := SubMod(AddMod(vn, halfK), MulMod(kn, t))
	a0 := AddMod(SubMod(vn, MulMod(t, vn)), MulMod(halfK, SubMod(MulMod(t, t), t)))

	s.c0.RangeAdd(l+1, r+1, a0)
	s.c1.RangeAdd(l+1, r+1, a1)
	s.c2.RangeAdd(l+1, r+1, a2)
}

// At 返回欧拉序位置 pos、深度为 depth 的节点的根路径累计值。
func (s *DepthQuadraticStore) At(pos, depth int) int64 {
	i := pos + 1
	d := NormMod(int64(depth))
	v := s.c0.Prefix(i)
	v = AddMod(v, MulMod(s.c1.Prefix(i), d))
	v = AddMod(v, MulMod(s.c2.Prefix(i), MulMod(d, d)))
	return v
}

// Reset 清除所有更新。
func (s *DepthQuadraticStore) Reset() {
	s.c0.Reset()
	s.c1.Reset()
	s.c2.Reset()
}
