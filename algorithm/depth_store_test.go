package algorithm

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

// naiveApply 逐点施加 V + K·(depth(x) − depth(T))。
func naiveApply(vals []int64, tour *EulerTour, parent []int, target int, v, k int64) {
	for x := range vals {
		if !bruteIsAncestor(parent, target, x) {
			continue
		}
		delta := NormMod(v + k*int64(tour.Depth(x)-tour.Depth(target)))
		vals[x] = AddMod(vals[x], delta)
	}
}

func TestDepthStoresMatchNaive(t *testing.T) {
	rng := rand.New(rand.NewPCG(13, 17))
	for iter := range 20 {
		n := 1 + rng.IntN(120)
		adj, root, parent := randomTree(rng, n, 1+rng.IntN(20))
		tour := NewEulerTour(adj, root)

		affine := NewDepthAffineStore(n)
		quad := NewDepthQuadraticStore(n)
		vals := make([]int64, n)

		for range 30 {
			target := rng.IntN(n)
			v := rng.Int64N(2_000_000) - 1_000_000
			k := rng.Int64N(2_000) - 1_000
			affine.AddRange(tour.In(target), tour.Out(target), v, k, tour.Depth(target))
			quad.AddRange(tour.In(target), tour.Out(target), v, k, tour.Depth(target))
			naiveApply(vals, tour, parent, target, v, k)

			for x := range n {
				require.Equal(t, vals[x], affine.At(tour.In(x), tour.Depth(x)), "iter %d node %d", iter, x)

				var rootSum int64
				for _, y := range pathToRoot(parent, x) {
					rootSum = AddMod(rootSum, vals[y])
				}
				require.Equal(t, rootSum, quad.At(tour.In(x), tour.Depth(x)), "iter %d node %d", iter, x)
			}
		}

		affine.Reset()
		quad.Reset()
		for x := range n {
			require.Zero(t, affine.At(tour.In(x), tour.Depth(x)))
			require.Zero(t, quad.At(tour.In(x), tour.Depth(x)))
		}
	}
}

func TestDepthAffineStoreHugeInputs(t *testing.T) {
	adj := chain(3)
	tour := NewEulerTour(adj, 0)
	s := NewDepthAffineStore(3)

	// V 与 K 取极值时仍在模意义下正确。
	const big = int64(9_000_000_000_000_000_000)
	s.AddRange(tour.In(0), tour.Out(0), -big, big, 0)

	want := NormMod(AddMod(NormMod(-big), MulMod(2, NormMod(big))))
	require.Equal(t, want, s.At(tour.In(2), tour.Depth(2)))
}
