package oracle

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/renjuzero/renjuzero/board"
)

func TestRotateBoardFourTimesIsIdentity(t *testing.T) {
	m, n := 5, 5
	plane := []float32{
		-1, 0, 0, 0, 1,
		0, -1, 0, 1, 0,
		0, 0, 0, 0, 0,
		0, 0, 0, 0, 0,
		1, 0, 0, 0, -1,
	}

	rot := plane
	var err error
	for i := 0; i < 4; i++ {
		rot, err = RotateBoard(rot, m, n)
		assert.NoError(t, err)
	}
	assert.Equal(t, plane, rot, "after 4 rotations the plane should be unchanged")
}

func TestRotateBoardRejectsNonSquare(t *testing.T) {
	_, err := RotateBoard([]float32{0, 1, 2, 3}, 1, 4)
	assert.Error(t, err)
}

func TestEncodeTwoPlayerBoard(t *testing.T) {
	b := []board.Colour{board.Black, board.White, board.None}
	enc := EncodeTwoPlayerBoard(b, nil)
	assert.Equal(t, []float32{1, -1, 0}, enc)
}
