package renju

import (
	"fmt"

	"github.com/renjuzero/renjuzero/board"
)

type moveError board.PlayerMove

func (err moveError) Error() string {
	return fmt.Sprintf("unable to make %v", board.PlayerMove(err))
}
