package dynkomi

import (
	"math"

	"github.com/hailam/dynkomi/internal/board"
)

// TrustworthyPlayouts is the number of playouts a statistic needs before
// it is allowed to move extra komi.
const TrustworthyPlayouts = 200

// Stone value used for the handicap komi during the lead moves.
const leadStoneValue = 7

// Largest share of the observed score the score indicator moves by.
const maxAdaptRate = 0.9

// Indicator selects how Adaptive proposes a new extra komi.
type Indicator int

const (
	// IndicatorScore pushes extra komi toward the average score.
	IndicatorScore Indicator = iota
	// IndicatorValue steps extra komi by the win rate zone.
	IndicatorValue
)

func (i Indicator) String() string {
	if i == IndicatorValue {
		return "value"
	}
	return "score"
}

// Adapter selects the adaptation rate curve of the score indicator.
type Adapter int

const (
	// AdapterSigmoid follows a sigmoid of the game portion.
	AdapterSigmoid Adapter = iota
	// AdapterLinear ramps the rate linearly over AdaptMoves moves.
	AdapterLinear
)

func (a Adapter) String() string {
	if a == AdapterLinear {
		return "linear"
	}
	return "sigmoid"
}

// AdaptiveConfig configures Adaptive Situational Compensation. It is
// fixed once the strategy is built.
type AdaptiveConfig struct {
	// Feedback is ignored for the first LeadMoves moves; the handicap
	// komi is used instead.
	LeadMoves int
	// Most komi the opponent is ever pretended to give.
	MaxLosingKomi float64
	Indicator     Indicator

	// Value indicator.
	ZoneRed, ZoneGreen float64
	ScoreStep          int
	ScoreStepByAvg     float64 // if set, step by this share of the average score
	UseKomiRatchet     bool
	KomiRatchetMaxAge  int // 0 means the ratchet never expires

	// Score indicator.
	Adapter   Adapter
	AdaptBase float64 // [0,1)
	// Sigmoid: rate crosses 0.5 at game portion AdaptPhase with slope
	// AdaptRate.
	AdaptPhase float64 // [0,1]
	AdaptRate  float64 // [1,inf)
	AdaptAPort bool    // measure game portion by free board space
	// Linear: rate ramps over the first AdaptMoves moves.
	AdaptMoves int
	AdaptDir   float64 // [-1,1]
}

// DefaultAdaptiveConfig returns the defaults for a board of the given side.
func DefaultAdaptiveConfig(size int) AdaptiveConfig {
	cfg := AdaptiveConfig{
		LeadMoves:      4,
		MaxLosingKomi:  10,
		Indicator:      IndicatorScore,
		ZoneRed:        0.45,
		ZoneGreen:      0.6,
		ScoreStep:      2,
		UseKomiRatchet: true,
		Adapter:        AdapterSigmoid,
		AdaptPhase:     0.5,
		AdaptRate:      20,
		AdaptMoves:     200,
		AdaptDir:       -0.5,
	}
	if size >= largeBoardSize {
		cfg.LeadMoves = 20
	}
	return cfg
}

// ratchet remembers the last positive extra komi that led into the red
// zone; green zone grants stay below it.
type ratchet struct {
	ceiling float64
	set     bool
	age     int // green grants capped since the last reset
}

// Adaptive adjusts extra komi from playout feedback, once per move.
type Adaptive struct {
	base
	cfg     AdaptiveConfig
	ratchet ratchet
}

// NewAdaptive builds the Adaptive strategy from its option string.
func NewAdaptive(sc SearchContext, args string, b Board) (*Adaptive, error) {
	opts, err := parseOptions(MethodAdaptive, args)
	if err != nil {
		return nil, err
	}

	cfg := DefaultAdaptiveConfig(b.BoardSize())
	r := &optionReader{method: MethodAdaptive}
	for _, o := range opts {
		switch o.name {
		case "lead_moves":
			cfg.LeadMoves = r.intValue(o)
		case "max_losing_komi":
			cfg.MaxLosingKomi = r.floatValue(o)
		case "indicator":
			if r.choice(o, "indicator", "value", "score") == "value" {
				cfg.Indicator = IndicatorValue
			} else {
				cfg.Indicator = IndicatorScore
			}

		case "zone_red":
			cfg.ZoneRed = r.floatValue(o)
		case "zone_green":
			cfg.ZoneGreen = r.floatValue(o)
		case "score_step":
			cfg.ScoreStep = r.intValue(o)
		case "score_step_byavg":
			cfg.ScoreStepByAvg = r.floatValue(o)
		case "use_komi_ratchet":
			cfg.UseKomiRatchet = r.boolValue(o)
		case "komi_ratchet_age":
			cfg.KomiRatchetMaxAge = r.intValue(o)

		case "adapter":
			if r.choice(o, "adapter", "sigmoid", "linear") == "linear" {
				cfg.Adapter = AdapterLinear
			} else {
				cfg.Adapter = AdapterSigmoid
			}
		case "adapt_base":
			cfg.AdaptBase = r.floatValue(o)
		case "adapt_rate":
			cfg.AdaptRate = r.floatValue(o)
		case "adapt_phase":
			cfg.AdaptPhase = r.floatValue(o)
		case "adapt_moves":
			cfg.AdaptMoves = r.intValue(o)
		case "adapt_aport":
			cfg.AdaptAPort = r.boolValue(o)
		case "adapt_dir":
			cfg.AdaptDir = r.floatValue(o)
		default:
			r.unknown(o)
		}
		if r.err != nil {
			return nil, r.err
		}
	}

	a := &Adaptive{base: newBase(sc, MethodAdaptive), cfg: cfg}
	a.log.Debug().
		Int("lead_moves", cfg.LeadMoves).
		Stringer("indicator", cfg.Indicator).
		Stringer("adapter", cfg.Adapter).
		Msg("adaptive dynkomi configured")
	return a, nil
}

func (*Adaptive) Name() string { return MethodAdaptive }

// Config returns the strategy configuration.
func (a *Adaptive) Config() AdaptiveConfig { return a.cfg }

// Ratchet returns the current ratchet ceiling, if one is set, and how
// many green grants it has capped.
func (a *Adaptive) Ratchet() (ceiling float64, set bool, age int) {
	return a.ratchet.ceiling, a.ratchet.set, a.ratchet.age
}

func (a *Adaptive) PerMove(b Board, t Tree) float64 {
	if a.done {
		return 0
	}
	score := a.stats.Score.Snapshot()
	a.log.Debug().
		Int("move", b.MoveNumber()).
		Int("lead_moves", a.cfg.LeadMoves).
		Float64("extra_komi", t.ExtraKomi()).
		Float64("score", score.Value).
		Int("playouts", score.Playouts).
		Msg("permove")

	if b.MoveNumber() <= a.cfg.LeadMoves {
		return b.EffectiveHandicap(leadStoneValue)
	}

	color := t.RootColor().Other()
	// Lower bound on the komi we take, so we don't underperform too much.
	minKomi := board.KomiByColor(-a.cfg.MaxLosingKomi, color)

	var komi float64
	if a.cfg.Indicator == IndicatorValue {
		komi = a.komiByValue(t, color)
	} else {
		komi = a.komiByScore(b, t)
	}
	a.log.Debug().Float64("from", t.ExtraKomi()).Float64("to", komi).Msg("dynkomi")

	if board.KomiByColor(komi-minKomi, color) > 0 {
		return komi
	}
	return minKomi
}

// PerSimulation returns the tree's extra komi; Adaptive only moves komi
// between moves.
func (a *Adaptive) PerSimulation(_ Board, t Tree, _ Node) float64 {
	if a.done {
		return 0
	}
	return t.ExtraKomi()
}

// komiByScore pushes extra komi a fraction of the way toward the
// average score.
func (a *Adaptive) komiByScore(b Board, t Tree) float64 {
	if a.stats.Score.Snapshot().Playouts < TrustworthyPlayouts {
		return t.ExtraKomi()
	}
	score := a.stats.Score.Drain()

	p := a.cfg.adaptRate(b)
	p = a.cfg.AdaptBase + p*(1-a.cfg.AdaptBase)
	if p > maxAdaptRate {
		p = maxAdaptRate
	}
	a.log.Debug().Float64("rate", p).Float64("score", score.Value).Msg("komi by score")
	return t.ExtraKomi() + p*score.Value
}

// komiByValue steps extra komi by which zone the win rate of color is in:
//
//	red zone | yellow zone | green zone
//	     zone_red      zone_green
//
// Red takes extra komi, yellow keeps it, green gives more. Green grants
// never reach the ratchet, the last komi that led into the red zone.
// Komi is normalized to color's side for the arithmetic and converted
// back on return.
func (a *Adaptive) komiByValue(t Tree, color board.Color) float64 {
	if a.stats.Value.Snapshot().Playouts < TrustworthyPlayouts {
		return t.ExtraKomi()
	}
	value := a.stats.Value.Drain().Value
	if color == board.White {
		value = 1 - value
	}

	extraKomi := board.KomiByColor(t.ExtraKomi(), color)
	step := float64(a.cfg.ScoreStep)

	if a.cfg.ScoreStepByAvg != 0 {
		score := a.stats.Score.Drain().Value
		if color == board.White {
			score = -score
		}
		if score >= 0 {
			step = math.Round(score * a.cfg.ScoreStepByAvg)
		}
	}

	switch {
	case value < a.cfg.ZoneRed:
		a.log.Debug().
			Float64("value", value).
			Float64("step", step).
			Float64("ratchet", a.ratchet.ceiling).
			Bool("ratchet_set", a.ratchet.set).
			Float64("extra_komi", extraKomi).
			Msg("red zone")
		if extraKomi > 0 {
			a.ratchet.ceiling = extraKomi
			a.ratchet.set = true
		}
		extraKomi -= step

	case value < a.cfg.ZoneGreen:
		// Yellow zone.

	default:
		extraKomi += step
		a.log.Debug().
			Float64("value", value).
			Float64("step", step).
			Float64("ratchet", a.ratchet.ceiling).
			Bool("ratchet_set", a.ratchet.set).
			Int("age", a.ratchet.age).
			Msg("green zone")
		if a.cfg.KomiRatchetMaxAge > 0 && a.ratchet.age > a.cfg.KomiRatchetMaxAge {
			a.ratchet = ratchet{}
		}
		if a.cfg.UseKomiRatchet && a.ratchet.set && extraKomi >= a.ratchet.ceiling {
			extraKomi = a.ratchet.ceiling - 1
			a.ratchet.age++
		}
	}
	return board.KomiByColor(extraKomi, color)
}
