package board

import (
	"fmt"
	"strings"
)

// Color represents the color of a stone or player.
type Color uint8

const (
	Black Color = iota
	White
	NoColor Color = 2
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// ParseColor accepts the GTP spellings "b", "black", "w" and "white".
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(s) {
	case "b", "black":
		return Black, nil
	case "w", "white":
		return White, nil
	}
	return NoColor, fmt.Errorf("invalid color %q", s)
}

// KomiByColor converts a komi value expressed from Black's side into
// the given color's side. It is its own inverse.
func KomiByColor(komi float64, c Color) float64 {
	if c == White {
		return -komi
	}
	return komi
}
