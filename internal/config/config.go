// Package config loads the simulator configuration with viper.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/hailam/dynkomi/internal/board"
)

// Config is the dynkomi-sim configuration.
type Config struct {
	Board struct {
		Size     int     `mapstructure:"size"`
		Komi     float64 `mapstructure:"komi"`
		Handicap int     `mapstructure:"handicap"`
	} `mapstructure:"board"`

	Dynkomi struct {
		Method string   `mapstructure:"method"`
		Args   string   `mapstructure:"args"`
		Mask   []string `mapstructure:"mask"`
	} `mapstructure:"dynkomi"`

	Search struct {
		Moves    int   `mapstructure:"moves"`
		Playouts int   `mapstructure:"playouts"`
		Threads  int   `mapstructure:"threads"`
		Seed     int64 `mapstructure:"seed"`
	} `mapstructure:"search"`

	Sim struct {
		Advantage  float64 `mapstructure:"advantage"`
		StoneValue float64 `mapstructure:"stone_value"`
		Noise      float64 `mapstructure:"noise"`
	} `mapstructure:"sim"`

	Trace struct {
		Enabled bool   `mapstructure:"enabled"`
		Dir     string `mapstructure:"dir"`
	} `mapstructure:"trace"`

	LogLevel string `mapstructure:"log_level"`
}

// SetDefaults registers the default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("board.size", 19)
	v.SetDefault("board.komi", 7.5)
	v.SetDefault("board.handicap", 0)
	v.SetDefault("dynkomi.method", "linear")
	v.SetDefault("dynkomi.args", "")
	v.SetDefault("dynkomi.mask", []string{"black"})
	v.SetDefault("search.moves", 250)
	v.SetDefault("search.playouts", 1000)
	v.SetDefault("search.threads", 4)
	v.SetDefault("search.seed", 1)
	v.SetDefault("sim.advantage", 0)
	v.SetDefault("sim.stone_value", 10)
	v.SetDefault("sim.noise", 15)
	v.SetDefault("trace.enabled", false)
	v.SetDefault("trace.dir", "")
	v.SetDefault("log_level", "info")
}

// New returns a viper instance with defaults, DYNKOMI_ environment
// overrides and the "dynkomi" config file search path set up.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigName("dynkomi")
	v.AddConfigPath(".")
	v.SetEnvPrefix("dynkomi")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file, if one is given or found, and decodes it.
// A missing default config file is not an error.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings no game can be played with.
func (c *Config) Validate() error {
	if c.Board.Size < 2 || c.Board.Size > board.MaxSize {
		return fmt.Errorf("board.size %d out of range 2..%d", c.Board.Size, board.MaxSize)
	}
	if c.Board.Handicap == 1 || c.Board.Handicap < 0 || c.Board.Handicap > 9 {
		return fmt.Errorf("board.handicap %d must be 0 or 2..9", c.Board.Handicap)
	}
	if c.Search.Moves < 0 {
		return fmt.Errorf("search.moves %d is negative", c.Search.Moves)
	}
	if c.Search.Playouts < 1 || c.Search.Threads < 1 {
		return fmt.Errorf("search.playouts and search.threads must be positive")
	}
	if _, err := c.MaskColors(); err != nil {
		return err
	}
	return nil
}

// MaskColors parses dynkomi.mask.
func (c *Config) MaskColors() ([]board.Color, error) {
	var colors []board.Color
	for _, s := range c.Dynkomi.Mask {
		col, err := board.ParseColor(s)
		if err != nil {
			return nil, fmt.Errorf("dynkomi.mask: %w", err)
		}
		colors = append(colors, col)
	}
	return colors, nil
}
