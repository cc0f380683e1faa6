package engine

import (
	"math/rand"

	"github.com/hailam/dynkomi/internal/board"
)

// Result is the outcome of one playout, from Black's side.
type Result struct {
	Score float64 // final margin after komi and extra komi
	Win   bool
}

// Simulator plays one game out from pos with the given extra komi.
// Playout is called concurrently and must only read pos.
type Simulator interface {
	Playout(pos *board.Position, extraKomi float64, rng *rand.Rand) Result
}

// SyntheticSimulator models the final margin as Black's true advantage
// on the board, minus komi, plus Gaussian noise. The advantage starts
// at the handicap value and shrinks toward Advantage as the board fills.
type SyntheticSimulator struct {
	Advantage  float64 // Black's true margin on an even board, before komi
	StoneValue float64 // points per handicap stone at the start
	Noise      float64 // standard deviation of the margin
}

// Playout implements Simulator.
func (s SyntheticSimulator) Playout(pos *board.Position, extraKomi float64, rng *rand.Rand) Result {
	filled := 1 - float64(pos.FreePoints())/float64(pos.Area())
	handicap := float64(pos.Handicap) * s.StoneValue * (1 - filled)
	margin := s.Advantage + handicap - pos.Komi - extraKomi + rng.NormFloat64()*s.Noise
	return Result{Score: margin, Win: margin > 0}
}
