// Package grid contains utilities for reading and writing positions in
// textual notation.
package grid

import (
	"fmt"
	"strings"

	"github.com/Mark-Finn/connect4/pkg/board"
)

// Empty is the move-list notation of the empty starting position.
const Empty = ""

// Decode returns a position from its textual notation. Two forms are
// accepted:
//
// Move-list form: a string of column digits '0'..'6', one per ply in play
// order from the empty board. Example: "0112233".
//
// Grid form: exactly BoardSize+1 characters. The first is '1' or '2' naming
// the player to move next; the rest are the cells row-major from the top-left,
// '0' for empty and '1'/'2' for that player's stone.
func Decode(s string) (board.Position, error) {
	switch {
	case len(s) == board.BoardSize+1:
		return decodeGrid(s)
	case len(s) > board.BoardSize+1:
		return board.Position{}, fmt.Errorf("position '%v' is too long to parse", s)
	default:
		return decodeMoves(s)
	}
}

func decodeMoves(s string) (board.Position, error) {
	p := board.NewPosition()
	for i, r := range s {
		if r < '0' || r > '9' {
			return board.Position{}, fmt.Errorf("invalid character '%c' at index %v in position '%v'", r, i, s)
		}
		col := int(r - '0')
		if col >= board.Width {
			return board.Position{}, fmt.Errorf("invalid column %v at index %v in position '%v'", col, i, s)
		}
		if !p.CanPlay(col) {
			return board.Position{}, fmt.Errorf("column %v is full on move %v in position '%v'", col, p.MoveCount()+1, s)
		}
		p.Play(col)
	}
	return p, nil
}

func decodeGrid(s string) (board.Position, error) {
	// (1) The leading character names the player up next.

	if s[0] != '1' && s[0] != '2' {
		return board.Position{}, fmt.Errorf("'%c' is not a valid starting player", s[0])
	}

	// (2) Cells are row-major from the top-left. The side to move's stones
	// become the position bits.

	var position, mask board.Bitboard
	moves, nextMoves := 0, 0

	for i, r := range s[1:] {
		if r == '0' {
			continue
		}
		if r != '1' && r != '2' {
			return board.Position{}, fmt.Errorf("invalid character '%c' in position '%v'", r, s)
		}

		row := (board.Height - 1) - i/board.Width
		col := i % board.Width
		cell := board.CellMask(col, row)

		mask |= cell
		moves++
		if byte(r) == s[0] {
			position |= cell
			nextMoves++
		}
	}

	// (3) The player up next cannot have moved more often than the opponent.

	if moves/2 != nextMoves {
		return board.Position{}, fmt.Errorf("one player has made at least one extra move in position '%v'", s)
	}

	return board.MakePosition(position, mask, moves), nil
}

// Encode encodes the position in grid form.
func Encode(p board.Position) string {
	var sb strings.Builder
	sb.WriteString(p.Turn().String())
	for row := board.Height - 1; row >= 0; row-- {
		for col := 0; col < board.Width; col++ {
			if owner, ok := p.Cell(col, row); ok {
				sb.WriteString(owner.String())
			} else {
				sb.WriteByte('0')
			}
		}
	}
	return sb.String()
}
