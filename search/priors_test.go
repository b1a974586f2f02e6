package search

import (
	"testing"

	"github.com/renjuzero/renjuzero/board"
	"github.com/renjuzero/renjuzero/board/renju"
	"github.com/renjuzero/renjuzero/oracle"
	"github.com/stretchr/testify/assert"
)

// Expansion renormalizes every legal move's (possibly tactically boosted)
// prior by their sum, so a freshly expanded node's children priors sum to
// very close to 1 whenever none were skipped by progressive widening.
func TestExpandAndSimulateNormalizesChildPriors(t *testing.T) {
	const size = 5
	b := renju.New(size)
	conf := DefaultConfig(size)

	dummy := oracle.Dummy{ValueFor: map[board.Player]float32{
		renju.BlackP: 0.5,
		renju.WhiteP: 0.5,
	}}

	tree := New(b, conf, dummy)
	parent := tree.alloc()
	tree.nodeFromNaughty(parent).Activate()

	_, ok := tree.expandAndSimulate(parent, b, 0)
	assert.True(t, ok)

	var sum float32
	for _, kid := range tree.Children(parent) {
		sum += tree.nodeFromNaughty(kid).Score()
	}
	assert.InDelta(t, 1.0, float64(sum), 1e-4)
}
