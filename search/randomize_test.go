package search

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestRandomizeChildrenMatchesVisitProportions exercises the statistical
// property that the first child after randomizeChildren lands on a given
// child with probability proportional to (visits/maxVisits)^(1/temperature):
// with visits [10, 30, 60] and temperature 1, that is close to {0.1, 0.3, 0.6}.
func TestRandomizeChildrenMatchesVisitProportions(t *testing.T) {
	tree := newTestTree()
	tree.RandomTemperature = 1.0
	tree.rand = rand.New(rand.NewSource(7))

	root := tree.alloc()
	tree.nodeFromNaughty(root).Activate()

	visits := []uint32{10, 30, 60}
	kids := make([]naughty, len(visits))
	for i, v := range visits {
		kids[i] = tree.New(0, 0, 0.5)
		n := tree.nodeFromNaughty(kids[i])
		for j := uint32(0); j < v-1; j++ {
			n.Update(0)
		}
		tree.nodeFromNaughty(root).AddChild(kids[i])
	}

	const trials = 20000
	var counts [3]int
	for i := 0; i < trials; i++ {
		order := append([]naughty{}, kids...)
		tree.children[root] = order
		tree.randomizeChildren(root)
		head := tree.children[root][0]
		for idx, kid := range kids {
			if head == kid {
				counts[idx]++
			}
		}
	}

	total := float64(trials)
	assert.InDelta(t, 0.1, float64(counts[0])/total, 0.02)
	assert.InDelta(t, 0.3, float64(counts[1])/total, 0.02)
	assert.InDelta(t, 0.6, float64(counts[2])/total, 0.02)
}
