package grid_test

import (
	"strings"
	"testing"

	"github.com/Mark-Finn/connect4/pkg/board"
	"github.com/Mark-Finn/connect4/pkg/board/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeMoves(t *testing.T) {
	p, err := grid.Decode("001122")
	require.NoError(t, err)

	assert.Equal(t, 6, p.MoveCount())
	assert.Equal(t, board.Player1, p.Turn())
	assert.True(t, p.IsWinningMove(3))

	empty, err := grid.Decode(grid.Empty)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.MoveCount())
	assert.Equal(t, board.NewPosition(), empty)
}

func TestDecodeGrid(t *testing.T) {
	s := "1" +
		"0000000" +
		"0000000" +
		"0000000" +
		"0000000" +
		"2220000" +
		"1110000"

	p, err := grid.Decode(s)
	require.NoError(t, err)

	assert.Equal(t, play(t, "001122"), p)
	assert.Equal(t, s, grid.Encode(p))
}

func TestRoundTrip(t *testing.T) {
	lines := []string{"", "3", "0112233", "65544343", "010101", "6554434331"}

	for _, moves := range lines {
		p := play(t, moves)

		q, err := grid.Decode(grid.Encode(p))
		require.NoError(t, err, "moves: %v", moves)
		assert.Equal(t, p, q, "moves: %v", moves)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []string{
		"7",       // column out of range
		"0000000", // full column
		"01x2",    // not a digit
		strings.Repeat("0", board.BoardSize+2),               // too long
		"3" + strings.Repeat("0", board.BoardSize),           // invalid starting player
		"1" + "110" + strings.Repeat("0", board.BoardSize-3), // extra stone for the player up next
		"1" + "1x0" + strings.Repeat("0", board.BoardSize-3), // invalid cell
	}

	for _, s := range tests {
		_, err := grid.Decode(s)
		assert.Error(t, err, "input: %v", s)
	}
}

func play(t *testing.T, moves string) board.Position {
	t.Helper()

	p, err := grid.Decode(moves)
	require.NoError(t, err)
	return p
}
