package main

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/dynkomi/internal/board"
	"github.com/hailam/dynkomi/internal/config"
	"github.com/hailam/dynkomi/internal/dynkomi"
	"github.com/hailam/dynkomi/internal/storage"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	chdir(t, t.TempDir())
	cfg, err := config.Load(config.New(), "")
	require.NoError(t, err)
	cfg.Board.Size = 9
	cfg.Search.Moves = 12
	cfg.Search.Playouts = 50
	cfg.Search.Threads = 2
	cfg.Trace.Enabled = true
	cfg.Trace.Dir = t.TempDir()
	return cfg
}

func TestRunGameTracesDecisions(t *testing.T) {
	cfg := testConfig(t)
	cfg.Dynkomi.Method = "adaptive"
	cfg.Dynkomi.Args = "indicator=value"

	require.NoError(t, runGame(context.Background(), cfg, zerolog.Nop()))

	trace, err := storage.Open(cfg.Trace.Dir)
	require.NoError(t, err)
	defer trace.Close()

	ids, err := trace.Games()
	require.NoError(t, err)
	require.Len(t, ids, 1)

	decisions, err := trace.Decisions(ids[0])
	require.NoError(t, err)
	assert.Len(t, decisions, 12)
	for _, d := range decisions {
		assert.Equal(t, "adaptive", d.Method)
		assert.Equal(t, 50, d.Playouts)
	}
}

func TestRunGameBadOptions(t *testing.T) {
	cfg := testConfig(t)
	cfg.Dynkomi.Args = "moves=ten"

	err := runGame(context.Background(), cfg, zerolog.Nop())
	var cfgErr *dynkomi.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "moves=ten", cfgErr.Token)
}

func TestTraceCommand(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, runGame(context.Background(), cfg, zerolog.Nop()))

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	require.NoError(t, showTrace(cmd, cfg, nil))
	assert.Contains(t, out.String(), "9x9 komi 7.5 handicap 0 linear")
}

func TestMoverFillsBoard(t *testing.T) {
	pos := board.NewPosition(3, 0)
	m := newMover(pos, 1)
	for i := 0; i < 9; i++ {
		require.NoError(t, m.play())
	}
	assert.Equal(t, 0, pos.FreePoints())
	require.NoError(t, m.play())
	assert.Equal(t, 10, pos.Moves)
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (stand-in for testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
