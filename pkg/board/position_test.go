package board_test

import (
	"testing"

	"github.com/Mark-Finn/connect4/pkg/board"
	"github.com/Mark-Finn/connect4/pkg/board/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func play(t *testing.T, moves string) board.Position {
	t.Helper()

	p, err := grid.Decode(moves)
	require.NoError(t, err)
	return p
}

func TestIsWinningMove(t *testing.T) {
	tests := []struct {
		moves string
		col   int
	}{
		{"010101", 0},     // vertical
		{"001122", 3},     // horizontal
		{"0112232336", 3}, // positive diagonal
		{"6554434331", 3}, // negative diagonal
	}

	for _, tt := range tests {
		p := play(t, tt.moves)
		assert.True(t, p.IsWinningMove(tt.col), "moves: %v", tt.moves)
		assert.True(t, p.CanWinNextMove(), "moves: %v", tt.moves)
	}
}

func TestPlayInvariants(t *testing.T) {
	lines := []string{"", "3", "33", "0112233", "65544343", "01012245"}

	for _, moves := range lines {
		p := play(t, moves)

		position, mask := p.Bitboards()
		assert.Equal(t, len(moves), p.MoveCount())
		assert.Equal(t, len(moves), mask.PopCount())
		assert.Equal(t, board.EmptyBitboard, position&^mask)
		assert.Equal(t, len(moves)/2, position.PopCount())
		assert.Equal(t, board.EmptyBitboard, mask&^board.BoardMask)

		// The sentinel row is never occupied.
		for col := 0; col < board.Width; col++ {
			assert.False(t, mask.IsSet(col, board.Height))
		}
	}
}

func TestCanPlay(t *testing.T) {
	p := play(t, "333333")
	assert.False(t, p.CanPlay(3))
	for col := 0; col < board.Width; col++ {
		if col != 3 {
			assert.True(t, p.CanPlay(col))
		}
	}
}

func TestTurn(t *testing.T) {
	p := board.NewPosition()
	assert.Equal(t, board.Player1, p.Turn())

	p.Play(3)
	assert.Equal(t, board.Player2, p.Turn())
	assert.Equal(t, board.Player1, p.Turn().Opponent())
}

func TestSymmetricKey(t *testing.T) {
	tests := []struct {
		moves, mirrored string
	}{
		{"", ""},
		{"0", "6"},
		{"010101", "656565"},
		{"001122", "665544"},
		{"0112232336", "6554434330"},
		{"3", "3"},
	}

	for _, tt := range tests {
		p, q := play(t, tt.moves), play(t, tt.mirrored)
		assert.Equal(t, p.SymmetricKey(), q.SymmetricKey(), "moves: %v", tt.moves)
	}

	// Distinct positions keep distinct keys.
	assert.NotEqual(t, play(t, "0").Key(), play(t, "1").Key())
	assert.NotEqual(t, play(t, "01").SymmetricKey(), play(t, "10").SymmetricKey())
}

func TestMovesWithWeight(t *testing.T) {
	t.Run("open position", func(t *testing.T) {
		moves := play(t, "3").MovesWithWeight()
		require.Equal(t, board.Width, len(moves))
		for col, m := range moves {
			assert.Equal(t, col, m.Col)
		}
	})

	t.Run("single forced move", func(t *testing.T) {
		// Three vertical stones force the block on top.
		moves := play(t, "12121").MovesWithWeight()
		assert.Equal(t, []board.Move{{Col: 1, Weight: 0}}, moves)
	})

	t.Run("double threat is lost", func(t *testing.T) {
		// The opponent threatens on both ends of an open three.
		moves := play(t, "2233440").MovesWithWeight()
		assert.Empty(t, moves)
	})

	t.Run("moves below threats are excluded", func(t *testing.T) {
		// The opponent threatens at (1,1) and (5,1); playing below either
		// cell hands over the win.
		moves := play(t, "223344").MovesWithWeight()
		var cols []int
		for _, m := range moves {
			cols = append(cols, m.Col)
		}
		assert.Equal(t, []int{0, 2, 3, 4, 6}, cols)
	})

	t.Run("weights count created threats", func(t *testing.T) {
		// Completing three on the bottom row creates threats on both ends.
		for _, m := range play(t, "2233").MovesWithWeight() {
			switch m.Col {
			case 1, 4:
				assert.Equal(t, 2, m.Weight, "move: %v", m)
			case 6:
				assert.Equal(t, 0, m.Weight, "move: %v", m)
			}
		}
	})
}

func TestIsWon(t *testing.T) {
	assert.False(t, play(t, "010101").IsWon())

	p := play(t, "010101")
	p.Play(0)
	assert.True(t, p.IsWon())
}

func TestPossibleScores(t *testing.T) {
	p := board.NewPosition()
	assert.Equal(t, board.Score(-21), p.MinPossibleScore())
	assert.Equal(t, board.Score(21), p.MaxPossibleScore())
	assert.Equal(t, board.Score(-20), p.NextMinPossibleScore())
	assert.Equal(t, board.Score(20), p.NextMaxPossibleScore())

	q := play(t, "0112233")
	assert.Equal(t, board.Score(-17), q.MinPossibleScore())
	assert.Equal(t, board.Score(18), q.MaxPossibleScore())
}

func TestString(t *testing.T) {
	assert.Equal(t,
		"0 0 0 0 0 0 0 \n"+
			"0 0 0 0 0 0 0 \n"+
			"0 0 0 0 0 0 0 \n"+
			"0 0 0 0 0 0 0 \n"+
			"0 1 2 0 0 0 0 \n"+
			"0 2 1 1 0 0 0 \n",
		play(t, "21123").String())
}
