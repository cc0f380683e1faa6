package engine

import (
	"context"
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/hailam/dynkomi/internal/board"
	"github.com/hailam/dynkomi/internal/dynkomi"
)

// SearchInfo describes one finished move search.
type SearchInfo struct {
	Move      int
	ExtraKomi float64
	Playouts  int
	MeanScore float64 // Black's mean margin over this search's playouts
	WinRate   float64 // Black's win rate over this search's playouts
	Time      time.Duration
}

// SearchLimits specifies the size of a move search.
type SearchLimits struct {
	Playouts int // playouts per move
	Threads  int // concurrent playout workers
}

// DefaultLimits is used when a limit is left at zero.
var DefaultLimits = SearchLimits{Playouts: 1000, Threads: 4}

// Tree is the search tree state a dynamic komi strategy sees. Extra komi
// is written between moves and only read while playouts run.
type Tree struct {
	extraKomi float64
	rootColor board.Color
}

// NewTree creates a tree rooted at the side to move.
func NewTree(root board.Color) *Tree {
	return &Tree{rootColor: root}
}

func (t *Tree) ExtraKomi() float64     { return t.extraKomi }
func (t *Tree) RootColor() board.Color { return t.rootColor }

// node is a playout's view of the tree: the move number it evaluates at.
// Playouts here start at the root, so every simulation passes the root
// move number and Linear's per-node recompute equals its per-move value.
// Deeper node numbers are exercised by the dynkomi package tests.
type node int

func (n node) MoveNumber() int { return int(n) }

// Engine runs playouts around a dynamic komi strategy.
type Engine struct {
	strategy dynkomi.Strategy
	sim      Simulator
	tree     *Tree
	mask     map[board.Color]bool
	seed     int64
	log      zerolog.Logger

	// Callbacks
	OnInfo func(SearchInfo)
}

// Options configures an Engine.
type Options struct {
	Strategy dynkomi.Strategy
	Sim      Simulator
	// Mask lists the root colors dynamic komi applies to. Empty means
	// Black only.
	Mask   []board.Color
	Seed   int64
	Logger zerolog.Logger
}

// NewEngine creates an engine driving the given strategy.
func NewEngine(opts Options) *Engine {
	mask := map[board.Color]bool{board.Black: true}
	if len(opts.Mask) > 0 {
		mask = make(map[board.Color]bool, len(opts.Mask))
		for _, c := range opts.Mask {
			mask[c] = true
		}
	}
	return &Engine{
		strategy: opts.Strategy,
		sim:      opts.Sim,
		tree:     NewTree(board.Black),
		mask:     mask,
		seed:     opts.Seed,
		log:      opts.Logger,
	}
}

// Tree returns the engine's search tree.
func (e *Engine) Tree() *Tree {
	return e.tree
}

// Search decides the extra komi for pos, then runs the playouts for the
// move, feeding their results back to the strategy's statistics.
func (e *Engine) Search(ctx context.Context, pos *board.Position, limits SearchLimits) (SearchInfo, error) {
	if limits.Playouts <= 0 {
		limits.Playouts = DefaultLimits.Playouts
	}
	if limits.Threads <= 0 {
		limits.Threads = DefaultLimits.Threads
	}

	start := time.Now()
	e.tree.rootColor = pos.ToPlay

	// No playouts are in flight here, so the per-move decision may
	// update strategy and tree state. For colors outside the mask the
	// tree keeps its extra komi but playouts do not apply it.
	applies := e.mask[e.tree.rootColor]
	komi := 0.0
	if applies {
		e.tree.extraKomi = e.strategy.PerMove(pos, e.tree)
		komi = e.tree.extraKomi
	}

	simEval, _ := e.strategy.(dynkomi.SimEvaluator)
	stats := e.strategy.Stats()

	// Each worker keeps its own totals; they are merged after Wait.
	type tally struct {
		playouts, wins int
		score          float64
	}
	tallies := make([]tally, limits.Threads)
	var next atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < limits.Threads; w++ {
		rng := rand.New(rand.NewSource(e.seed + int64(pos.Moves)*1009 + int64(w)))
		tl := &tallies[w]
		g.Go(func() error {
			for next.Add(1) <= int64(limits.Playouts) {
				if err := ctx.Err(); err != nil {
					return err
				}
				extra := komi
				if applies && simEval != nil {
					extra = simEval.PerSimulation(pos, e.tree, node(pos.Moves))
				}
				res := e.sim.Playout(pos, extra, rng)
				if applies {
					stats.Record(res.Score, res.Win)
				}

				tl.playouts++
				tl.score += res.Score
				if res.Win {
					tl.wins++
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return SearchInfo{}, fmt.Errorf("search move %d: %w", pos.Moves, err)
	}

	info := SearchInfo{
		Move:      pos.Moves,
		ExtraKomi: komi,
		Time:      time.Since(start),
	}
	var wins int
	var score float64
	for _, tl := range tallies {
		info.Playouts += tl.playouts
		wins += tl.wins
		score += tl.score
	}
	if info.Playouts > 0 {
		info.MeanScore = score / float64(info.Playouts)
		info.WinRate = float64(wins) / float64(info.Playouts)
	}

	e.log.Debug().
		Int("move", info.Move).
		Float64("extra_komi", info.ExtraKomi).
		Float64("score", info.MeanScore).
		Float64("winrate", info.WinRate).
		Msg("search done")

	if e.OnInfo != nil {
		e.OnInfo(info)
	}
	return info, nil
}

// Close tears the strategy down. It must be called once, when the
// engine is discarded.
func (e *Engine) Close() {
	e.strategy.Done()
}
