// Command dynkomi-sim plays a synthetic game to show how a dynamic komi
// strategy moves extra komi over the course of a game.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hailam/dynkomi/internal/board"
	"github.com/hailam/dynkomi/internal/config"
	"github.com/hailam/dynkomi/internal/dynkomi"
	"github.com/hailam/dynkomi/internal/engine"
	"github.com/hailam/dynkomi/internal/storage"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var cfgErr *dynkomi.ConfigError
		if errors.As(err, &cfgErr) {
			fmt.Fprintf(os.Stderr, "dynkomi-sim: invalid dynkomi argument %q: %s\n", cfgErr.Token, cfgErr.Reason)
		} else {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := config.New()
	var cfgFile string

	root := &cobra.Command{
		Use:           "dynkomi-sim",
		Short:         "Simulate dynamic komi strategies",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default ./dynkomi.yaml)")

	run := &cobra.Command{
		Use:   "run",
		Short: "Play a synthetic game and print the extra komi of every move",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v, cfgFile)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runGame(ctx, cfg, newLogger(cfg.LogLevel))
		},
	}
	flags := run.Flags()
	flags.Int("size", 19, "board size")
	flags.Float64("komi", 7.5, "base komi")
	flags.Int("handicap", 0, "handicap stones")
	flags.String("dynkomi", "linear", "dynamic komi method: none, linear or adaptive")
	flags.String("dynkomi-args", "", "colon separated strategy options")
	flags.Int("moves", 250, "moves to play")
	flags.Int("playouts", 1000, "playouts per move")
	flags.Int("threads", 4, "playout workers")
	flags.Bool("trace", false, "record decisions in the trace database")
	for key, name := range map[string]string{
		"board.size":      "size",
		"board.komi":      "komi",
		"board.handicap":  "handicap",
		"dynkomi.method":  "dynkomi",
		"dynkomi.args":    "dynkomi-args",
		"search.moves":    "moves",
		"search.playouts": "playouts",
		"search.threads":  "threads",
		"trace.enabled":   "trace",
	} {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}

	trace := &cobra.Command{
		Use:   "trace [game]",
		Short: "List recorded games, or the decisions of one game",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, cfgFile)
			if err != nil {
				return err
			}
			return showTrace(cmd, cfg, args)
		},
	}

	root.AddCommand(run, trace)
	return root
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(lvl).
		With().Timestamp().Logger()
}

func openTrace(cfg *config.Config) (*storage.Storage, error) {
	if cfg.Trace.Dir != "" {
		return storage.Open(cfg.Trace.Dir)
	}
	return storage.OpenDefault()
}

func runGame(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	pos := board.NewPosition(cfg.Board.Size, cfg.Board.Komi)
	if cfg.Board.Handicap > 0 {
		if err := pos.PlaceHandicap(cfg.Board.Handicap); err != nil {
			return err
		}
	}

	strategy, err := dynkomi.New(dynkomi.SearchContext{Logger: log}, cfg.Dynkomi.Method, cfg.Dynkomi.Args, pos)
	if err != nil {
		return err
	}
	mask, err := cfg.MaskColors()
	if err != nil {
		return err
	}

	eng := engine.NewEngine(engine.Options{
		Strategy: strategy,
		Sim: engine.SyntheticSimulator{
			Advantage:  cfg.Sim.Advantage,
			StoneValue: cfg.Sim.StoneValue,
			Noise:      cfg.Sim.Noise,
		},
		Mask:   mask,
		Seed:   cfg.Search.Seed,
		Logger: log,
	})
	defer eng.Close()

	var trace *storage.Storage
	gameID := time.Now().UTC().Format("20060102T150405")
	if cfg.Trace.Enabled {
		if trace, err = openTrace(cfg); err != nil {
			return err
		}
		defer trace.Close()
		if err := trace.StartGame(storage.GameInfo{
			ID:        gameID,
			BoardSize: cfg.Board.Size,
			Komi:      cfg.Board.Komi,
			Handicap:  cfg.Board.Handicap,
			Method:    strategy.Name(),
			Args:      cfg.Dynkomi.Args,
		}); err != nil {
			return err
		}
		log.Info().Str("game", gameID).Msg("tracing decisions")
	}

	limits := engine.SearchLimits{Playouts: cfg.Search.Playouts, Threads: cfg.Search.Threads}
	mover := newMover(pos, cfg.Search.Seed)
	for pos.Moves < cfg.Search.Moves {
		info, err := eng.Search(ctx, pos, limits)
		if err != nil {
			return err
		}
		fmt.Printf("%4d %-5s extra_komi %7.2f score %7.2f winrate %.3f\n",
			info.Move, pos.ToPlay, info.ExtraKomi, info.MeanScore, info.WinRate)

		if trace != nil {
			if err := trace.Record(storage.Decision{
				Game:      gameID,
				Move:      info.Move,
				ToPlay:    pos.ToPlay.String(),
				Method:    strategy.Name(),
				ExtraKomi: info.ExtraKomi,
				Playouts:  info.Playouts,
				MeanScore: info.MeanScore,
				WinRate:   info.WinRate,
			}); err != nil {
				return err
			}
		}
		if err := mover.play(); err != nil {
			return err
		}
	}
	return nil
}

func showTrace(cmd *cobra.Command, cfg *config.Config, args []string) error {
	trace, err := openTrace(cfg)
	if err != nil {
		return err
	}
	defer trace.Close()

	out := cmd.OutOrStdout()
	if len(args) == 0 {
		ids, err := trace.Games()
		if err != nil {
			return err
		}
		for _, id := range ids {
			g, err := trace.Game(id)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s %dx%d komi %.1f handicap %d %s %s\n",
				g.ID, g.BoardSize, g.BoardSize, g.Komi, g.Handicap, g.Method, g.Args)
		}
		return nil
	}

	decisions, err := trace.Decisions(args[0])
	if err != nil {
		return err
	}
	for _, d := range decisions {
		fmt.Fprintf(out, "%4d %-5s extra_komi %7.2f score %7.2f winrate %.3f\n",
			d.Move, d.ToPlay, d.ExtraKomi, d.MeanScore, d.WinRate)
	}
	return nil
}
