package board

import (
	"fmt"
	"strconv"
	"strings"
)

// Point is an intersection index (row*size + col), or Pass.
type Point int

// Pass is the null move.
const Pass Point = -1

// GTP column letters; "I" is skipped.
const columns = "ABCDEFGHJKLMNOPQRSTUVWXYZ"

// MaxSize is the largest board side GTP coordinates can address.
const MaxSize = len(columns)

// NewPoint returns the point at the given zero-based column and row.
func NewPoint(size, col, row int) Point {
	return Point(row*size + col)
}

// Coords returns the zero-based column and row of p.
func (p Point) Coords(size int) (col, row int) {
	return int(p) % size, int(p) / size
}

// Format returns p in GTP notation for the given board size.
func (p Point) Format(size int) string {
	if p == Pass {
		return "pass"
	}
	col, row := p.Coords(size)
	return string(columns[col]) + strconv.Itoa(row+1)
}

// ParsePoint parses a GTP vertex such as "D4" or "pass".
func ParsePoint(s string, size int) (Point, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "PASS" {
		return Pass, nil
	}
	if len(s) < 2 {
		return Pass, fmt.Errorf("invalid vertex %q", s)
	}
	col := strings.IndexByte(columns, s[0])
	row, err := strconv.Atoi(s[1:])
	if col < 0 || col >= size || err != nil || row < 1 || row > size {
		return Pass, fmt.Errorf("invalid vertex %q", s)
	}
	return NewPoint(size, col, row-1), nil
}
