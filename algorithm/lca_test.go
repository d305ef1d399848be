package algorithm

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAncestorTableLevels(t *testing.T) {
	cases := map[int]int{1: 1, 2: 1, 3: 2, 4: 2, 5: 3, 8: 3, 9: 4, 100000: 17}
	for n, want := range cases {
		at := NewAncestorTable(NewEulerTour(chain(n), 0))
		assert.Equal(t, want, at.Levels(), "n=%d", n)
	}
}

func TestLiftOnChain(t *testing.T) {
	const n = 1000
	at := NewAncestorTable(NewEulerTour(chain(n), 0))

	for _, k := range []int{0, 1, 2, 3, 500, 998, 999} {
		v, ok := at.Lift(n-1, k)
		require.True(t, ok, "k=%d", k)
		assert.Equal(t, n-1-k, v)
	}
	_, ok := at.Lift(n-1, n)
	assert.False(t, ok)
	_, ok = at.Lift(5, -1)
	assert.False(t, ok)
	_, ok = at.Parent(0)
	assert.False(t, ok)
}

func TestLCABruteForce(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	for iter := range 15 {
		n := 1 + rng.IntN(200)
		adj, root, parent := randomTree(rng, n, 1+rng.IntN(20))
		at := NewAncestorTable(NewEulerTour(adj, root))

		for u := range n {
			for v := range n {
				want := bruteLCA(parent, u, v)
				require.Equal(t, want, at.LCA(u, v), "iter %d (%d,%d)", iter, u, v)
			}
			path := pathToRoot(parent, u)
			for k, anc := range path {
				got, ok := at.Lift(u, k)
				require.True(t, ok)
				require.Equal(t, anc, got)
			}
			_, ok := at.Lift(u, len(path))
			require.False(t, ok)
		}
	}
}

func TestLCADeepChain(t *testing.T) {
	const n = 100_000
	at := NewAncestorTable(NewEulerTour(chain(n), 0))
	assert.Equal(t, 40_000, at.LCA(40_000, n-1))
	assert.Equal(t, n-1-1, at.Distance(1, n-1))
}

func TestDistance(t *testing.T) {
	adj := [][]int{{1, 2}, {0}, {0, 3, 4}, {2}, {2}}
	at := NewAncestorTable(NewEulerTour(adj, 0))
	assert.Equal(t, 2, at.Distance(3, 4))
	assert.Equal(t, 3, at.Distance(1, 4))
	assert.Equal(t, 0, at.Distance(2, 2))
}
