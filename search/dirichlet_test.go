package search

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newNoiseTestTree() *Tree {
	t := newTestTree()
	t.rand = rand.New(rand.NewSource(42))
	return t
}

func TestDirichletNoiseZeroEpsilonLeavesPriorsUnchanged(t *testing.T) {
	tree := newNoiseTestTree()
	root := tree.alloc()
	r := tree.nodeFromNaughty(root)
	r.Activate()

	a := tree.New(0, 0.6, 0.5)
	b := tree.New(1, 0.4, 0.5)
	r.AddChild(a)
	r.AddChild(b)

	tree.applyDirichletNoise(root, 0, 0.03)

	assert.Equal(t, float32(0.6), tree.nodeFromNaughty(a).Score())
	assert.Equal(t, float32(0.4), tree.nodeFromNaughty(b).Score())
}

func TestDirichletNoiseFullEpsilonSumsToOne(t *testing.T) {
	tree := newNoiseTestTree()
	root := tree.alloc()
	r := tree.nodeFromNaughty(root)
	r.Activate()

	a := tree.New(0, 0.6, 0.5)
	b := tree.New(1, 0.4, 0.5)
	c := tree.New(2, 0.0, 0.5)
	r.AddChild(a)
	r.AddChild(b)
	r.AddChild(c)

	tree.applyDirichletNoise(root, 1, 0.03)

	sum := tree.nodeFromNaughty(a).Score() + tree.nodeFromNaughty(b).Score() + tree.nodeFromNaughty(c).Score()
	assert.InDelta(t, 1.0, sum, 1e-5)
	for _, kid := range []naughty{a, b, c} {
		score := tree.nodeFromNaughty(kid).Score()
		assert.True(t, score >= 0 && score <= 1, "eta coordinate %v out of range", score)
	}
}

func TestDirichletNoiseSkipsEmptyChildList(t *testing.T) {
	tree := newNoiseTestTree()
	root := tree.alloc()
	tree.nodeFromNaughty(root).Activate()

	assert.NotPanics(t, func() { tree.applyDirichletNoise(root, 0.25, 0.03) })
}
