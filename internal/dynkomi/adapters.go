package dynkomi

import "math"

// adaptRate returns the score indicator's adaptation rate in [0,1] for
// the current game stage.
func (cfg *AdaptiveConfig) adaptRate(b Board) float64 {
	if cfg.Adapter == AdapterLinear {
		return cfg.linearRate(b)
	}
	return cfg.sigmoidRate(b)
}

// sigmoidRate is 0 at the start of the game, crosses 0.5 at game portion
// AdaptPhase and approaches 1 at the end; AdaptRate sets the slope.
func (cfg *AdaptiveConfig) sigmoidRate(b Board) float64 {
	return 1 / (1 + math.Exp(-cfg.AdaptRate*(gamePortion(b, cfg.AdaptAPort)-cfg.AdaptPhase)))
}

// gamePortion estimates how far the game has progressed, in [0,1].
// By default it compares moves played with the estimated moves left;
// with byFreeSpace it uses the share of intersections already filled.
func gamePortion(b Board, byFreeSpace bool) float64 {
	if byFreeSpace {
		area := b.BoardSize() * b.BoardSize()
		if area == 0 {
			return 0
		}
		return 1 - float64(b.FreePoints())/float64(area)
	}
	total := b.MoveNumber() + 2*b.EstimatedMovesLeft()
	if total <= 0 {
		return 0
	}
	return float64(b.MoveNumber()) / float64(total)
}

// linearRate ramps the rate over the first AdaptMoves moves: down from 1
// by |AdaptDir| when AdaptDir is negative, otherwise up from 0 to
// AdaptDir. Past AdaptMoves, or with no horizon, it is 0.
func (cfg *AdaptiveConfig) linearRate(b Board) float64 {
	moves := b.MoveNumber()
	if cfg.AdaptMoves <= 0 || moves > cfg.AdaptMoves {
		return 0
	}
	progress := float64(moves) / float64(cfg.AdaptMoves)
	if cfg.AdaptDir < 0 {
		return 1 - (-cfg.AdaptDir)*progress
	}
	return cfg.AdaptDir * progress
}
