package board

import (
	"errors"
	"fmt"
	"strings"
)

// Estimation constants for the number of moves left in a game.
const (
	minFreeRate  = 20 // percent of the board still free when a game typically ends
	minMovesLeft = 30
)

var (
	ErrOccupied     = errors.New("point is occupied")
	ErrOffBoard     = errors.New("point is off board")
	ErrBadHandicap  = errors.New("invalid handicap")
	ErrHandicapLate = errors.New("handicap must be placed on an empty board")
	ErrBadColor     = errors.New("color must be black or white")
)

// Position represents a Go position. It tracks stones and move count
// only; captures and scoring belong to the playout engine.
type Position struct {
	Size     int
	Komi     float64
	Handicap int
	Moves    int // moves played so far, handicap stones included
	ToPlay   Color

	stones []Color
	free   int
}

// NewPosition creates an empty board with the given side length and komi.
func NewPosition(size int, komi float64) *Position {
	pos := &Position{
		Size:   size,
		Komi:   komi,
		ToPlay: Black,
		stones: make([]Color, size*size),
		free:   size * size,
	}
	for i := range pos.stones {
		pos.stones[i] = NoColor
	}
	return pos
}

// Copy returns a deep copy of the position.
func (pos *Position) Copy() *Position {
	cp := *pos
	cp.stones = append([]Color(nil), pos.stones...)
	return &cp
}

// Area returns the number of intersections.
func (pos *Position) Area() int {
	return pos.Size * pos.Size
}

// At returns the stone at p, or NoColor.
func (pos *Position) At(p Point) Color {
	if p < 0 || int(p) >= len(pos.stones) {
		return NoColor
	}
	return pos.stones[p]
}

// Play places a stone of color c at p. Passing is allowed via Pass.
func (pos *Position) Play(c Color, p Point) error {
	if c != Black && c != White {
		return fmt.Errorf("play %s: %w", p.Format(pos.Size), ErrBadColor)
	}
	if p == Pass {
		pos.Moves++
		pos.ToPlay = c.Other()
		return nil
	}
	if p < 0 || int(p) >= len(pos.stones) {
		return fmt.Errorf("play %s: %w", p.Format(pos.Size), ErrOffBoard)
	}
	if pos.stones[p] != NoColor {
		return fmt.Errorf("play %s: %w", p.Format(pos.Size), ErrOccupied)
	}
	pos.stones[p] = c
	pos.free--
	pos.Moves++
	pos.ToPlay = c.Other()
	return nil
}

// PlaceHandicap puts n black stones on the standard star points, the
// way GTP fixed_handicap does. White moves next.
func (pos *Position) PlaceHandicap(n int) error {
	if pos.Moves > 0 {
		return ErrHandicapLate
	}
	points, err := HandicapPoints(pos.Size, n)
	if err != nil {
		return err
	}
	for _, p := range points {
		if err := pos.Play(Black, p); err != nil {
			return err
		}
	}
	pos.Handicap = n
	pos.ToPlay = White
	return nil
}

// HandicapPoints returns the fixed handicap placement for n stones.
func HandicapPoints(size, n int) ([]Point, error) {
	if size < 7 || n < 2 || n > 9 {
		return nil, fmt.Errorf("%w: %d stones on %dx%d", ErrBadHandicap, n, size, size)
	}
	if (size%2 == 0 || size == 7) && n > 4 {
		return nil, fmt.Errorf("%w: %d stones on %dx%d", ErrBadHandicap, n, size, size)
	}

	d := 3
	if size < 13 {
		d = 2
	}
	lo, mid, hi := d, size/2, size-1-d
	pt := func(col, row int) Point { return NewPoint(size, col, row) }

	corners := []Point{pt(lo, lo), pt(hi, hi), pt(hi, lo), pt(lo, hi)}
	sides := []Point{pt(lo, mid), pt(hi, mid), pt(mid, lo), pt(mid, hi)}
	center := pt(mid, mid)

	var points []Point
	switch n {
	case 2, 3, 4:
		points = corners[:n]
	case 5:
		points = append(corners, center)
	case 6:
		points = append(corners, sides[:2]...)
	case 7:
		points = append(append(corners, sides[:2]...), center)
	case 8:
		points = append(corners, sides...)
	case 9:
		points = append(append(corners, sides...), center)
	}
	return points, nil
}

// FreePoints returns the number of empty intersections.
func (pos *Position) FreePoints() int {
	return pos.free
}

// EstimatedMovesLeft guesses how many moves remain in the game from the
// amount of free space on the board.
func (pos *Position) EstimatedMovesLeft() int {
	left := (pos.free - pos.Area()*minFreeRate/100) / 2
	if left < minMovesLeft {
		return minMovesLeft
	}
	return left
}

// EffectiveHandicap returns the point value of Black's handicap
// advantage given the value of a single stone. Komi already granted to
// White offsets it.
func (pos *Position) EffectiveHandicap(firstMoveValue int) float64 {
	if pos.Handicap == 0 {
		if pos.Komi == 0 {
			return 0.5 * float64(firstMoveValue)
		}
		return 7.5 - pos.Komi
	}
	return float64(pos.Handicap*firstMoveValue) + 0.5 - pos.Komi
}

// MoveNumber returns the number of moves played, handicap stones included.
func (pos *Position) MoveNumber() int { return pos.Moves }

// BoardSize returns the side length of the board.
func (pos *Position) BoardSize() int { return pos.Size }

// String renders the board with X for Black and O for White.
func (pos *Position) String() string {
	var sb strings.Builder
	for row := pos.Size - 1; row >= 0; row-- {
		fmt.Fprintf(&sb, "%2d ", row+1)
		for col := 0; col < pos.Size; col++ {
			switch pos.stones[NewPoint(pos.Size, col, row)] {
			case Black:
				sb.WriteString("X ")
			case White:
				sb.WriteString("O ")
			default:
				sb.WriteString(". ")
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("   ")
	for col := 0; col < pos.Size; col++ {
		sb.WriteByte(columns[col])
		sb.WriteByte(' ')
	}
	sb.WriteByte('\n')
	return sb.String()
}
