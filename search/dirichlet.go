package search

import (
	"math"

	rng "github.com/leesper/go_rng"
)

// applyDirichletNoise perturbs of's children priors with symmetric
// Dirichlet(alpha) noise: each child's prior becomes (1-eps)*prior +
// eps*eta, where eta is one coordinate of a Dirichlet sample built by
// normalizing n i.i.d. Gamma(alpha, 1) draws. Skipped entirely if the
// draws sum to less than the smallest nonzero float64 (that is, to zero),
// rather than dividing by that sum.
func (t *Tree) applyDirichletNoise(of naughty, eps, alpha float32) {
	children := t.Children(of)
	n := len(children)
	if n == 0 {
		return
	}

	gammaGen := rng.NewGammaGenerator(t.rand.Int63())
	samples := make([]float64, n)
	var sum float64
	for i := range samples {
		samples[i] = gammaGen.Gamma(float64(alpha), 1)
		sum += samples[i]
	}
	if sum < math.SmallestNonzeroFloat64 {
		return
	}

	for i, kid := range children {
		eta := float32(samples[i] / sum)
		child := t.nodeFromNaughty(kid)
		child.setScore((1-eps)*child.Score() + eps*eta)
	}
}
