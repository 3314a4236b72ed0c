// connect4 is a perfect-play solver for the 7x6 gravity-column alignment
// game. It solves and analyzes positions and builds the opening book used to
// short-circuit the search near the root.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Mark-Finn/connect4/pkg/board"
	"github.com/Mark-Finn/connect4/pkg/board/grid"
	"github.com/Mark-Finn/connect4/pkg/book"
	"github.com/Mark-Finn/connect4/pkg/search"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
)

var version = build.NewVersion(1, 0, 0)

var (
	weak = flag.Bool("weak", false, "Solve for win/draw/loss only instead of the exact score")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: connect4 [options] <command> [args]

connect4 is a perfect-play solver for the 7x6 board. Commands:
  solve <pos>                Print the score of the position.
  analyze <pos>              Print the score of each column.
  best_move <pos>            Print the best column and its score.
  create_position <depth>    Enumerate all positions at the given depth.
  work <depth> [skip take]   Solve enumerated positions, optionally a shard.
  work_all <depth>           Solve all enumerated positions.
  create_book <solved-file>  Build the opening book from solved positions.
  utilization                Print the opening book utilization.

Positions are given as a move list ("0112233") or as a 43-character grid.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	logw.Infof(ctx, "connect4 %v", version)

	cmd, args := args[0], args[1:]
	switch cmd {
	case "solve":
		p := parsePosition(ctx, args)
		s := newSolver(ctx)

		score := s.Solve(ctx, p)
		logw.Infof(ctx, "Solved in %v nodes", s.Nodes())
		fmt.Println(score)

	case "analyze":
		p := parsePosition(ctx, args)
		s := newSolver(ctx)

		var ret []string
		for _, v := range s.Analyze(ctx, p) {
			if score, ok := v.V(); ok {
				ret = append(ret, score.String())
			} else {
				ret = append(ret, "unknown")
			}
		}
		fmt.Println(strings.Join(ret, " "))

	case "best_move":
		p := parsePosition(ctx, args)
		s := newSolver(ctx)

		col, score, ok := s.BestMove(ctx, p)
		if !ok {
			logw.Exitf(ctx, "No playable column")
		}
		fmt.Printf("%v %v\n", col, score)

	case "create_position":
		depth := parseInt(ctx, args, 0, "depth")
		createPosition(ctx, depth)

	case "work":
		depth := parseInt(ctx, args, 0, "depth")
		skip, take := 0, -1
		if len(args) > 1 {
			skip = parseInt(ctx, args, 1, "skip")
			take = parseInt(ctx, args, 2, "take")
		}
		work(ctx, depth, skip, take)

	case "work_all":
		depth := parseInt(ctx, args, 0, "depth")
		work(ctx, depth, 0, -1)

	case "create_book":
		if len(args) < 1 {
			logw.Exitf(ctx, "Missing solved-file argument")
		}
		createBook(ctx, args[0])

	case "utilization":
		tt := book.Load(ctx, book.Path())
		fmt.Printf("%.4f\n", tt.Used())

	default:
		flag.Usage()
		logw.Exitf(ctx, "Unknown command '%v'", cmd)
	}
}

// newSolver returns a solver seeded with the opening book, if present.
func newSolver(ctx context.Context) *search.Solver {
	return search.NewSolver(ctx,
		search.WithTable(book.Load(ctx, book.Path())),
		search.WithOptions(search.Options{Weak: *weak}),
	)
}

func parsePosition(ctx context.Context, args []string) board.Position {
	if len(args) < 1 {
		logw.Exitf(ctx, "Missing position argument")
	}
	p, err := grid.Decode(args[0])
	if err != nil {
		logw.Exitf(ctx, "Invalid position: %v", err)
	}
	return p
}

func parseInt(ctx context.Context, args []string, i int, name string) int {
	if len(args) <= i {
		logw.Exitf(ctx, "Missing %v argument", name)
	}
	v, err := strconv.Atoi(args[i])
	if err != nil || v < 0 {
		logw.Exitf(ctx, "Invalid %v '%v'", name, args[i])
	}
	return v
}

// createPosition enumerates all distinct positions at the given depth and
// writes their move lists, in reverse visit order, for offline solving.
func createPosition(ctx context.Context, depth int) {
	explorer := book.NewExplorer()
	explorer.Explore(board.NewPosition(), depth)

	output := explorer.Output
	for i, j := 0, len(output)-1; i < j; i, j = i+1, j-1 {
		output[i], output[j] = output[j], output[i]
	}

	path := book.PositionsPath(depth)
	if err := os.MkdirAll(book.DataDir, 0755); err != nil {
		logw.Exitf(ctx, "Failed to create %v: %v", book.DataDir, err)
	}
	if err := os.WriteFile(path, []byte(strings.Join(output, "\n")), 0644); err != nil {
		logw.Exitf(ctx, "Failed to write %v: %v", path, err)
	}

	logw.Infof(ctx, "Enumerated %v positions at depth %v (%v visited) to %v", len(output), depth, explorer.VisitedCount(), path)
}

// work solves the enumerated positions at the given depth and writes
// "<position> <score>" lines. A shard of the file is selected by skip/take;
// take < 0 means all.
func work(ctx context.Context, depth, skip, take int) {
	lines, err := book.ReadLines(book.PositionsPath(depth))
	if err != nil {
		logw.Exitf(ctx, "Failed to read positions: %v", err)
	}

	path := book.SolvedPath(depth)
	if take >= 0 {
		path = fmt.Sprintf("%v_%v_%v", path, skip, take)
		if skip >= len(lines) {
			lines = nil
		} else {
			lines = lines[skip:]
		}
		if take < len(lines) {
			lines = lines[:take]
		}
	}

	f, err := os.Create(path)
	if err != nil {
		logw.Exitf(ctx, "Failed to create %v: %v", path, err)
	}
	defer f.Close()

	s := search.NewSolver(ctx, search.WithOptions(search.Options{Weak: *weak}))
	for i, line := range lines {
		p, err := grid.Decode(line)
		if err != nil {
			logw.Exitf(ctx, "Invalid position: %v", err)
		}

		score := s.Solve(ctx, p)
		if _, err := fmt.Fprintf(f, "%v %v\n", line, score); err != nil {
			logw.Exitf(ctx, "Failed to write %v: %v", path, err)
		}

		logw.Debugf(ctx, "Solved %v/%v: %v = %v", i+1, len(lines), line, score)
	}

	logw.Infof(ctx, "Solved %v positions in %v nodes to %v", len(lines), s.Nodes(), path)
}

// createBook combines solved scores into a populated transposition table and
// saves it as the opening book. Exact scores are stored as lower bounds.
func createBook(ctx context.Context, path string) {
	lines, err := book.ReadLines(path)
	if err != nil {
		logw.Exitf(ctx, "Failed to read %v: %v", path, err)
	}

	tt := search.NewTranspositionTable(ctx)
	for _, line := range lines {
		pos, score, err := book.ParseScoreLine(line)
		if err != nil {
			logw.Exitf(ctx, "Invalid score line: %v", err)
		}
		p, err := grid.Decode(pos)
		if err != nil {
			logw.Exitf(ctx, "Invalid position: %v", err)
		}

		tt.Put(p.SymmetricKey(), search.LowerBound, score)
	}

	if err := book.Save(ctx, book.Path(), tt); err != nil {
		logw.Exitf(ctx, "Failed to save opening book: %v", err)
	}
}
