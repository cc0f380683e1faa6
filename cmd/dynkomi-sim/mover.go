package main

import (
	"math/rand"

	"github.com/hailam/dynkomi/internal/board"
)

// mover plays random moves on empty points for the side to move and
// passes once the board is full.
type mover struct {
	pos *board.Position
	rng *rand.Rand
}

func newMover(pos *board.Position, seed int64) *mover {
	return &mover{pos: pos, rng: rand.New(rand.NewSource(seed))}
}

func (m *mover) play() error {
	if m.pos.FreePoints() == 0 {
		return m.pos.Play(m.pos.ToPlay, board.Pass)
	}
	empty := make([]board.Point, 0, m.pos.FreePoints())
	for p := 0; p < m.pos.Area(); p++ {
		if m.pos.At(board.Point(p)) == board.NoColor {
			empty = append(empty, board.Point(p))
		}
	}
	return m.pos.Play(m.pos.ToPlay, empty[m.rng.Intn(len(empty))])
}
