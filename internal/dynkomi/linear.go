package dynkomi

// LinearConfig configures Linearly Decreasing Handicap Compensation.
type LinearConfig struct {
	HandicapValue int  // points per handicap stone
	Moves         int  // move at which extra komi reaches zero
	RootBased     bool // same extra komi for every simulation of a move
}

// Linear imposes handicap-derived extra komi at move 0 and decreases it
// linearly to 0 at move Moves.
type Linear struct {
	base
	cfg LinearConfig
}

// DefaultLinearConfig returns the defaults for a board of the given side.
// Boards below 19 get Moves 0, so the strategy contributes nothing there
// unless moves is set explicitly.
func DefaultLinearConfig(size int) LinearConfig {
	cfg := LinearConfig{HandicapValue: 7}
	if size >= largeBoardSize {
		cfg.Moves = 200
	}
	return cfg
}

// NewLinear builds the Linear strategy. Options: moves=N, handicap_value=N,
// rootbased[=0|1].
func NewLinear(sc SearchContext, args string, b Board) (*Linear, error) {
	opts, err := parseOptions(MethodLinear, args)
	if err != nil {
		return nil, err
	}

	cfg := DefaultLinearConfig(b.BoardSize())
	r := &optionReader{method: MethodLinear}
	for _, o := range opts {
		switch o.name {
		case "moves":
			cfg.Moves = r.intValue(o)
		case "handicap_value":
			cfg.HandicapValue = r.intValue(o)
		case "rootbased":
			cfg.RootBased = r.boolValue(o)
		default:
			r.unknown(o)
		}
		if r.err != nil {
			return nil, r.err
		}
	}

	l := &Linear{base: newBase(sc, MethodLinear), cfg: cfg}
	l.log.Debug().
		Int("moves", cfg.Moves).
		Int("handicap_value", cfg.HandicapValue).
		Bool("rootbased", cfg.RootBased).
		Msg("linear dynkomi configured")
	return l, nil
}

func (*Linear) Name() string { return MethodLinear }

// Config returns the strategy configuration.
func (l *Linear) Config() LinearConfig { return l.cfg }

func (l *Linear) PerMove(b Board, _ Tree) float64 {
	return l.at(b, b.MoveNumber())
}

// PerSimulation recomputes extra komi for the node's own move number
// instead of reusing the tree value, so values stay right after node
// promotion. With RootBased every simulation gets the tree value.
func (l *Linear) PerSimulation(b Board, t Tree, n Node) float64 {
	if l.done {
		return 0
	}
	if l.cfg.RootBased {
		return t.ExtraKomi()
	}
	move := b.MoveNumber()
	if n != nil {
		move = n.MoveNumber()
	}
	return l.at(b, move)
}

func (l *Linear) at(b Board, move int) float64 {
	if l.done || l.cfg.Moves <= 0 || move >= l.cfg.Moves {
		return 0
	}
	baseKomi := b.EffectiveHandicap(l.cfg.HandicapValue)
	return baseKomi * float64(l.cfg.Moves-move) / float64(l.cfg.Moves)
}
