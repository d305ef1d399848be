package algorithm

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEulerTourSmall(t *testing.T) {
	// 0 的孩子 1, 2；2 的孩子 3, 4。
	adj := [][]int{{1, 2}, {0}, {0, 3, 4}, {2}, {2}}
	tour := NewEulerTour(adj, 0)

	assert.Equal(t, []int{0, 1, 1, 2, 2}, []int{tour.Depth(0), tour.Depth(1), tour.Depth(2), tour.Depth(3), tour.Depth(4)})
	assert.Equal(t, 0, tour.In(0))
	assert.Equal(t, 4, tour.Out(0))
	assert.Equal(t, 1, tour.In(1))
	assert.Equal(t, 1, tour.Out(1))
	assert.Equal(t, 2, tour.In(2))
	assert.Equal(t, 4, tour.Out(2))
	assert.Equal(t, 3, tour.SubtreeSize(2))
	assert.Equal(t, 2, tour.Height())

	_, ok := tour.Parent(0)
	assert.False(t, ok)
	p, ok := tour.Parent(4)
	require.True(t, ok)
	assert.Equal(t, 2, p)

	for pos := range 5 {
		assert.Equal(t, pos, tour.In(tour.At(pos)))
	}
}

func TestEulerTourSingleNode(t *testing.T) {
	tour := NewEulerTour([][]int{nil}, 0)
	assert.Equal(t, 0, tour.In(0))
	assert.Equal(t, 0, tour.Out(0))
	assert.Equal(t, 0, tour.Depth(0))
}

func TestEulerTourIntervalInvariant(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for iter := range 40 {
		n := 1 + rng.IntN(150)
		adj, root, parent := randomTree(rng, n, 1+rng.IntN(20))
		tour := NewEulerTour(adj, root)

		assert.Equal(t, root, tour.Root())
		for v := range n {
			require.Equal(t, tour.In(v)+len(subtreeOf(parent, v))-1, tour.Out(v), "iter %d node %d", iter, v)
			if p, ok := tour.Parent(v); ok {
				require.Equal(t, parent[v], p)
				require.Equal(t, tour.Depth(p)+1, tour.Depth(v))
			} else {
				require.Equal(t, root, v)
			}
		}
		for u := range n {
			for v := range n {
				require.Equal(t, bruteIsAncestor(parent, u, v), tour.Contains(u, v), "iter %d u %d v %d", iter, u, v)
			}
		}
	}
}

func TestEulerTourDeepChain(t *testing.T) {
	const n = 200_000
	tour := NewEulerTour(chain(n), 0)
	assert.Equal(t, n-1, tour.Depth(n-1))
	assert.Equal(t, n-1, tour.Out(0))
	assert.Equal(t, n-1, tour.In(n-1))

	// 从链尾开始，根在最深处。
	tail := NewEulerTour(chain(n), n-1)
	assert.Equal(t, n-1, tail.Depth(0))
}

func subtreeOf(parent []int, root int) []int {
	var out []int
	for v := range parent {
		if bruteIsAncestor(parent, root, v) {
			out = append(out, v)
		}
	}
	return out
}
