package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKomiByColor(t *testing.T) {
	assert.Equal(t, 7.5, KomiByColor(7.5, Black))
	assert.Equal(t, -7.5, KomiByColor(7.5, White))
	for _, c := range []Color{Black, White} {
		assert.Equal(t, 3.0, KomiByColor(KomiByColor(3, c), c), "not self-inverse for %s", c)
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("W")
	require.NoError(t, err)
	assert.Equal(t, White, c)
	assert.Equal(t, Black, c.Other())

	_, err = ParseColor("red")
	assert.Error(t, err)
}

func TestPointRoundTrip(t *testing.T) {
	for _, s := range []string{"A1", "D4", "J9", "T19", "pass"} {
		p, err := ParsePoint(s, 19)
		require.NoError(t, err, s)
		assert.Equal(t, s, p.Format(19))
	}

	for _, s := range []string{"I5", "Z1", "A0", "A20", "", "D"} {
		_, err := ParsePoint(s, 19)
		assert.Error(t, err, s)
	}
}

func TestPlay(t *testing.T) {
	pos := NewPosition(9, 7.5)
	p, _ := ParsePoint("E5", 9)

	require.NoError(t, pos.Play(Black, p))
	assert.Equal(t, 1, pos.Moves)
	assert.Equal(t, 80, pos.FreePoints())
	assert.Equal(t, White, pos.ToPlay)
	assert.Equal(t, Black, pos.At(p))

	assert.ErrorIs(t, pos.Play(White, p), ErrOccupied)
	assert.ErrorIs(t, pos.Play(White, Point(81)), ErrOffBoard)

	require.NoError(t, pos.Play(White, Pass))
	assert.Equal(t, 2, pos.Moves)
	assert.Equal(t, 80, pos.FreePoints())

	q, _ := ParsePoint("A1", 9)
	assert.ErrorIs(t, pos.Play(NoColor, q), ErrBadColor)
	assert.ErrorIs(t, pos.Play(NoColor, Pass), ErrBadColor)
	assert.Equal(t, 2, pos.Moves)
	assert.Equal(t, 80, pos.FreePoints())
	assert.Equal(t, NoColor, pos.At(q))
}

func TestCopyIsIndependent(t *testing.T) {
	pos := NewPosition(9, 7.5)
	cp := pos.Copy()
	require.NoError(t, cp.Play(Black, NewPoint(9, 4, 4)))

	assert.Equal(t, 0, pos.Moves)
	assert.Equal(t, NoColor, pos.At(NewPoint(9, 4, 4)))
}

func TestHandicapPlacement(t *testing.T) {
	tests := []struct {
		size, stones int
		want         []string
	}{
		{19, 2, []string{"D4", "Q16"}},
		{19, 4, []string{"D4", "Q16", "Q4", "D16"}},
		{19, 5, []string{"D4", "Q16", "Q4", "D16", "K10"}},
		{19, 9, []string{"D4", "Q16", "Q4", "D16", "D10", "Q10", "K4", "K16", "K10"}},
		{9, 3, []string{"C3", "G7", "G3"}},
	}

	for _, tt := range tests {
		points, err := HandicapPoints(tt.size, tt.stones)
		require.NoError(t, err)
		var got []string
		for _, p := range points {
			got = append(got, p.Format(tt.size))
		}
		assert.Equal(t, tt.want, got, "%d stones on %d", tt.stones, tt.size)
	}

	_, err := HandicapPoints(19, 1)
	assert.ErrorIs(t, err, ErrBadHandicap)
	_, err = HandicapPoints(8, 5)
	assert.ErrorIs(t, err, ErrBadHandicap)
}

func TestPlaceHandicap(t *testing.T) {
	pos := NewPosition(19, 0.5)
	require.NoError(t, pos.PlaceHandicap(4))

	assert.Equal(t, 4, pos.Handicap)
	assert.Equal(t, 4, pos.Moves)
	assert.Equal(t, White, pos.ToPlay)
	assert.Equal(t, 361-4, pos.FreePoints())

	assert.ErrorIs(t, pos.PlaceHandicap(2), ErrHandicapLate)
}

func TestEffectiveHandicap(t *testing.T) {
	even := NewPosition(19, 7.5)
	assert.Equal(t, 0.0, even.EffectiveHandicap(7))

	noKomi := NewPosition(19, 0)
	assert.Equal(t, 3.5, noKomi.EffectiveHandicap(7))

	hc := NewPosition(19, 0.5)
	require.NoError(t, hc.PlaceHandicap(4))
	assert.Equal(t, 28.0, hc.EffectiveHandicap(7))
	assert.Equal(t, 40.0, hc.EffectiveHandicap(10))
}

func TestEstimatedMovesLeft(t *testing.T) {
	pos := NewPosition(19, 7.5)
	// (361 - 72) / 2
	assert.Equal(t, 144, pos.EstimatedMovesLeft())

	small := NewPosition(7, 7.5)
	assert.Equal(t, minMovesLeft, small.EstimatedMovesLeft())
}

func TestString(t *testing.T) {
	pos := NewPosition(7, 0)
	require.NoError(t, pos.Play(Black, NewPoint(7, 0, 0)))
	require.NoError(t, pos.Play(White, NewPoint(7, 6, 6)))
	s := pos.String()
	t.Log("\n" + s)
	assert.Contains(t, s, " 1 X . . . . . . \n")
	assert.Contains(t, s, " 7 . . . . . . O \n")
	assert.Contains(t, s, "A B C D E F G")
}
