package search

import (
	"testing"

	"github.com/renjuzero/renjuzero/board"
	"github.com/renjuzero/renjuzero/pattern"
	"github.com/stretchr/testify/assert"
)

func TestTacticalBoostPrefersCompletingFive(t *testing.T) {
	scan := pattern.New(9)
	b := make([]board.Colour, 9*9)
	// four black stones in a row, columns 2-5 of row 4; column 6 completes a five.
	row := 4
	for col := 2; col <= 5; col++ {
		b[row*9+col] = board.Black
	}

	boost := tacticalBoost(scan, b, row*9+6, board.Black, board.White)
	assert.Equal(t, forcingFive, boost)
}

func TestTacticalBoostRewardsBlockingOpponentFive(t *testing.T) {
	scan := pattern.New(9)
	b := make([]board.Colour, 9*9)
	row := 4
	for col := 2; col <= 5; col++ {
		b[row*9+col] = board.White
	}

	boost := tacticalBoost(scan, b, row*9+6, board.Black, board.White)
	assert.Equal(t, blockingFive, boost)
}

func TestTacticalBoostZeroOnQuietPosition(t *testing.T) {
	scan := pattern.New(9)
	b := make([]board.Colour, 9*9)
	b[40] = board.Black

	boost := tacticalBoost(scan, b, 41, board.Black, board.White)
	assert.Equal(t, float32(0), boost)
}
