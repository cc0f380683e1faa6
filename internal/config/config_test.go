package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/dynkomi/internal/board"
)

func TestDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, 19, cfg.Board.Size)
	assert.Equal(t, 7.5, cfg.Board.Komi)
	assert.Equal(t, "linear", cfg.Dynkomi.Method)
	assert.Equal(t, 1000, cfg.Search.Playouts)
	assert.Equal(t, "info", cfg.LogLevel)

	mask, err := cfg.MaskColors()
	require.NoError(t, err)
	assert.Equal(t, []board.Color{board.Black}, mask)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
board:
  size: 13
  handicap: 3
dynkomi:
  method: adaptive
  args: indicator=value:zone_red=0.4
  mask: [black, white]
search:
  playouts: 400
`), 0644))

	cfg, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, 13, cfg.Board.Size)
	assert.Equal(t, 3, cfg.Board.Handicap)
	assert.Equal(t, "adaptive", cfg.Dynkomi.Method)
	assert.Equal(t, "indicator=value:zone_red=0.4", cfg.Dynkomi.Args)
	assert.Equal(t, 400, cfg.Search.Playouts)
	assert.Equal(t, 4, cfg.Search.Threads)

	mask, err := cfg.MaskColors()
	require.NoError(t, err)
	assert.Equal(t, []board.Color{board.Black, board.White}, mask)
}

func TestEnvOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DYNKOMI_BOARD_KOMI", "0.5")

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, 0.5, cfg.Board.Komi)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		chdir(t, t.TempDir())
		cfg, err := Load(New(), "")
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"size", func(c *Config) { c.Board.Size = 30 }},
		{"handicap one", func(c *Config) { c.Board.Handicap = 1 }},
		{"handicap ten", func(c *Config) { c.Board.Handicap = 10 }},
		{"playouts", func(c *Config) { c.Search.Playouts = 0 }},
		{"moves", func(c *Config) { c.Search.Moves = -1 }},
		{"mask", func(c *Config) { c.Dynkomi.Mask = []string{"green"} }},
	}
	for _, tt := range tests {
		cfg := valid()
		tt.mutate(cfg)
		assert.Error(t, cfg.Validate(), tt.name)
	}
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
