package book

import (
	"github.com/Mark-Finn/connect4/pkg/board"
)

// Explorer enumerates all reachable positions up to a fixed ply depth,
// emitting their move-list notation for offline solving. Positions that are
// left-right reflections of an already visited position are skipped.
type Explorer struct {
	visited map[uint64]struct{}
	prefix  []byte

	// Output holds the move-list notation of every distinct position at
	// exactly the target depth, in visit order.
	Output []string
}

func NewExplorer() *Explorer {
	return &Explorer{
		visited: map[uint64]struct{}{},
	}
}

// VisitedCount returns the number of distinct positions seen.
func (e *Explorer) VisitedCount() int {
	return len(e.visited)
}

// Explore DFS-visits all positions within depth plies, growing the move
// prefix before each recursive step and shrinking it after. Winning moves end
// the game and are not expanded.
func (e *Explorer) Explore(p board.Position, depth int) {
	key := p.SymmetricKey()
	if _, ok := e.visited[key]; ok || p.MoveCount() > depth {
		return
	}
	e.visited[key] = struct{}{}

	if p.MoveCount() == depth {
		e.Output = append(e.Output, string(e.prefix))
	}

	for col := 0; col < board.Width; col++ {
		if !p.CanPlay(col) || p.IsWinningMove(col) {
			continue
		}

		child := p
		child.Play(col)

		e.prefix = append(e.prefix, byte('0'+col))
		e.Explore(child, depth)
		e.prefix = e.prefix[:len(e.prefix)-1]
	}
}
