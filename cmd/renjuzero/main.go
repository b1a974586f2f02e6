// Command renjuzero plays a self-contained demonstration game of
// five-in-a-row, printing the board after every move, using the dummy
// oracle so the engine can be exercised without a trained network.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/renjuzero/renjuzero"
	"github.com/renjuzero/renjuzero/board"
	"github.com/renjuzero/renjuzero/board/renju"
	"github.com/renjuzero/renjuzero/oracle"
	"github.com/renjuzero/renjuzero/search"
)

func main() {
	size := flag.Int("size", 15, "board size")
	budget := flag.Int("budget", 4000, "iterations per move")
	timeout := flag.Duration("timeout", 500*time.Millisecond, "time per move")
	noise := flag.Bool("noise", false, "perturb root priors with Dirichlet noise, for self-play variety")
	flag.Parse()

	conf := search.DefaultConfig(*size)
	conf.Timeout = *timeout
	conf.Budget = int32(*budget)
	conf.ResignPercentage = 0.1
	conf.PassPreference = search.DontPreferPass
	conf.Noise = *noise

	nn := oracle.Dummy{ValueFor: map[board.Player]float32{
		renju.BlackP: 0.5,
		renju.WhiteP: 0.5,
	}}

	b := renju.New(*size)
	black := renjuzero.New(b, conf, nn, renju.BlackP)
	white := renjuzero.New(b, conf, nn, renju.WhiteP)

	player := renju.BlackP
	for moveNum := 0; ; moveNum++ {
		if ended, winner := b.Ended(); ended {
			fmt.Printf("game over, winner: %v\n", winner)
			break
		}

		var move board.Single
		if player == renju.BlackP {
			move = black.Move(b)
		} else {
			move = white.Move(b)
		}

		pm := board.PlayerMove{Player: player, Single: move}
		if !b.Check(pm) {
			log.Fatalf("engine produced illegal move %v for %v at move %d", move, player, moveNum)
		}
		b.Apply(pm)
		fmt.Printf("move %d: %v plays %v\n%v\n", moveNum, player, move, b)
		player = renju.Opponent(player)
	}
}
