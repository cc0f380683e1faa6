// Package dynkomi computes the extra komi a Monte-Carlo search adds on
// top of the base komi.
//
// Extra komi is kept from Black's side: a positive value is extra komi
// Black gives. A strategy is asked once before each move is searched
// (PerMove) and, when it implements SimEvaluator, once per simulation
// (PerSimulation). PerMove runs with no simulations in flight and may
// update strategy state; PerSimulation may run on many workers at once
// and never writes anything.
package dynkomi

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hailam/dynkomi/internal/board"
)

// Board is the position view a strategy reads.
type Board interface {
	MoveNumber() int
	BoardSize() int
	EstimatedMovesLeft() int
	FreePoints() int
	EffectiveHandicap(firstMoveValue int) float64
}

// Tree is the search tree view a strategy reads.
type Tree interface {
	ExtraKomi() float64
	RootColor() board.Color
}

// Node is a tree node a simulation passes through.
type Node interface {
	// MoveNumber is the absolute game move number at the node. It stays
	// correct when the node is later promoted to root.
	MoveNumber() int
}

// Strategy is one of None, Linear or Adaptive.
type Strategy interface {
	Name() string
	// PerMove returns the extra komi to use for the next move's search.
	PerMove(b Board, t Tree) float64
	// Stats returns the running statistics the search feeds.
	Stats() *Statistics
	// Done releases the strategy. Further calls return zero values.
	Done()

	sealed()
}

// SimEvaluator is implemented by strategies that adjust extra komi for
// each simulation.
type SimEvaluator interface {
	PerSimulation(b Board, t Tree, n Node) float64
}

// SearchContext is the search-wide environment a strategy is built in.
type SearchContext struct {
	Logger zerolog.Logger
}

// Strategy names accepted by New.
const (
	MethodNone     = "none"
	MethodLinear   = "linear"
	MethodAdaptive = "adaptive"
)

// Board sides from which the large-board defaults apply.
const largeBoardSize = 19

// New builds the named strategy from a colon separated option string.
// An empty args means no options. Malformed options yield a
// *ConfigError naming the offending token.
func New(sc SearchContext, method, args string, b Board) (Strategy, error) {
	var (
		s   Strategy
		err error
	)
	switch strings.ToLower(method) {
	case MethodNone:
		s, err = NewNone(sc, args)
	case MethodLinear:
		s, err = NewLinear(sc, args, b)
	case MethodAdaptive:
		s, err = NewAdaptive(sc, args, b)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownMethod, method)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// base carries what every strategy shares.
type base struct {
	log   zerolog.Logger
	stats *Statistics
	done  bool
}

func newBase(sc SearchContext, method string) base {
	return base{
		log:   sc.Logger.With().Str("dynkomi", method).Logger(),
		stats: &Statistics{},
	}
}

func (b *base) Stats() *Statistics { return b.stats }

func (b *base) Done() {
	if b.done {
		return
	}
	b.done = true
	b.stats = &Statistics{}
}

func (*base) sealed() {}
