// Package search contains the perfect-play solver and its transposition
// table.
package search

import (
	"context"
	"fmt"

	"github.com/Mark-Finn/connect4/pkg/board"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

// Options hold solver options.
type Options struct {
	// Weak solves for win/draw/loss only instead of the exact ply-to-win
	// score. Faster, because the score interval starts collapsed to [-1;1].
	Weak bool
}

func (o Options) String() string {
	return fmt.Sprintf("{weak=%v}", o.Weak)
}

// Solver computes game-theoretic scores under optimal play from both sides.
// It owns a transposition table that is reused across successive Solve and
// Analyze calls. Not thread-safe.
type Solver struct {
	opts  Options
	tt    *TranspositionTable
	nodes uint64
}

// Option is a solver creation option.
type Option func(*Solver)

// WithTable configures the solver to start from the given transposition
// table, usually a re-hydrated opening book.
func WithTable(tt *TranspositionTable) Option {
	return func(s *Solver) {
		s.tt = tt
	}
}

// WithOptions sets the solver options.
func WithOptions(opts Options) Option {
	return func(s *Solver) {
		s.opts = opts
	}
}

// NewSolver returns a new solver with an empty transposition table, unless
// one is provided.
func NewSolver(ctx context.Context, opts ...Option) *Solver {
	s := &Solver{}
	for _, fn := range opts {
		fn(s)
	}
	if s.tt == nil {
		s.tt = NewTranspositionTable(ctx)
	}

	logw.Infof(ctx, "Initialized solver: options=%v, %v", s.opts, s.tt)
	return s
}

// Table returns the solver's transposition table.
func (s *Solver) Table() *TranspositionTable {
	return s.tt
}

// Nodes returns the number of nodes searched over the solver's lifetime.
func (s *Solver) Nodes() uint64 {
	return s.nodes
}

// Solve returns the exact score of the position under optimal play. It
// bisects the score interval with null-window probes, biasing the probe
// point toward zero, until the interval collapses.
func (s *Solver) Solve(ctx context.Context, p board.Position) board.Score {
	if p.CanWinNextMove() {
		return p.MaxPossibleScore()
	}

	min, max := p.MinPossibleScore(), p.MaxPossibleScore()
	if s.opts.Weak {
		min, max = -1, 1
	}

	for {
		median := min + (max-min)/2
		if median <= 0 && min/2 < median {
			median = min / 2
		} else if median >= 0 && max/2 > median {
			median = max / 2
		}

		score := s.negamax(p, median, median+1)
		if score <= median {
			max = score
		} else {
			min = score
		}

		logw.Debugf(ctx, "Probed %v: score=%v, interval=[%v;%v], nodes=%v", median, score, min, max, s.nodes)

		if min >= max {
			return score
		}
	}
}

// Analyze returns the score obtained by playing each column, in column
// order. Full columns yield no score.
func (s *Solver) Analyze(ctx context.Context, p board.Position) []lang.Optional[board.Score] {
	ret := make([]lang.Optional[board.Score], board.Width)
	for col := 0; col < board.Width; col++ {
		switch {
		case !p.CanPlay(col):
			// leave as unknown
		case p.IsWinningMove(col):
			ret[col] = lang.Some(p.MaxPossibleScore())
		default:
			child := p
			child.Play(col)
			ret[col] = lang.Some(-s.Solve(ctx, child))
		}
	}
	return ret
}

// BestMove returns the column with the highest score and that score. Returns
// false iff no column is playable.
func (s *Solver) BestMove(ctx context.Context, p board.Position) (int, board.Score, bool) {
	best, score, found := 0, board.MinScore, false
	for col, v := range s.Analyze(ctx, p) {
		if sc, ok := v.V(); ok && (!found || sc > score) {
			best, score, found = col, sc, true
		}
	}
	return best, score, found
}

// negamax returns the exact score of the position if it lies in
// (alpha, beta), an upper bound if the true score is <= alpha or a lower
// bound if it is >= beta. Positions are scored from the side to move's
// perspective; each child step copies the position.
func (s *Solver) negamax(p board.Position, alpha, beta board.Score) board.Score {
	s.nodes++

	moves := p.MovesWithWeight()
	if len(moves) == 0 {
		// Every move loses: the opponent has two immediate threats, or only
		// losing columns remain.
		return p.MinPossibleScore()
	}

	if p.MoveCount() >= board.BoardSize-2 {
		// No winning move exists and the board fills up within two plies.
		return 0
	}

	min, max := p.NextMinPossibleScore(), p.NextMaxPossibleScore()

	key := p.SymmetricKey()
	if bound, score, ok := s.tt.Get(key); ok {
		if bound == LowerBound {
			min = score
		} else {
			max = score
		}
	}

	if alpha < min {
		alpha = min
		if alpha >= beta {
			return alpha
		}
	}
	if beta > max {
		beta = max
		if alpha >= beta {
			return beta
		}
	}

	ml := NewMoveList(moves, ThreatCenter)
	for {
		move, ok := ml.Next()
		if !ok {
			break
		}

		child := p
		child.Play(move.Col)

		score := -s.negamax(child, -beta, -alpha)
		if score >= beta {
			s.tt.Put(key, LowerBound, score)
			return score
		}
		if score > alpha {
			alpha = score
		}
	}

	s.tt.Put(key, UpperBound, alpha)
	return alpha
}
