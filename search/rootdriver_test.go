package search

import (
	"testing"

	"github.com/renjuzero/renjuzero/pattern"
	"github.com/stretchr/testify/assert"
)

func TestRootShapeScoreDoubleFourBeatsSingleFour(t *testing.T) {
	single, ok := rootShapeScore(pattern.Tally{Fours: 1})
	assert.True(t, ok)

	double, ok := rootShapeScore(pattern.Tally{Fours: 2})
	assert.True(t, ok)

	assert.Greater(t, double, single)
}

func TestRootShapeScoreFiveBeatsDoubleFour(t *testing.T) {
	double, ok := rootShapeScore(pattern.Tally{Fours: 2})
	assert.True(t, ok)

	five, ok := rootShapeScore(pattern.Tally{Fives: 1})
	assert.True(t, ok)

	assert.Greater(t, five, double)
}

func TestRootShapeScoreDoubleThreeIsNotForcing(t *testing.T) {
	_, ok := rootShapeScore(pattern.Tally{Threes: 2})
	assert.False(t, ok, "open threes alone must not trigger the root override")
}
