// Package book contains the opening book: a precomputed transposition table
// of scores for all reachable positions up to a given ply depth, plus the
// position explorer and file tooling used to build it offline.
package book

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Mark-Finn/connect4/pkg/board"
	"github.com/Mark-Finn/connect4/pkg/search"
	"github.com/seekerror/logw"
)

// DataDir is the directory holding the opening book and the position files
// of the offline solving pipeline.
const DataDir = "./data"

// Path returns the well-known opening book location for the board dimensions.
func Path() string {
	return filepath.Join(DataDir, fmt.Sprintf("%vx%v_opening_book", board.Width, board.Height))
}

// PositionsPath returns the location of the enumerated positions at the given
// depth.
func PositionsPath(depth int) string {
	return filepath.Join(DataDir, fmt.Sprintf("%v_positions_rev", depth))
}

// SolvedPath returns the location of the solved positions at the given depth.
func SolvedPath(depth int) string {
	return filepath.Join(DataDir, fmt.Sprintf("%v_positions_rev_solved", depth))
}

// Load returns the opening book at the given path. A missing or corrupt book
// yields a fresh empty table.
func Load(ctx context.Context, path string) *search.TranspositionTable {
	f, err := os.Open(path)
	if err != nil {
		logw.Infof(ctx, "No opening book at %v. Starting fresh", path)
		return search.NewTranspositionTable(ctx)
	}
	defer f.Close()

	tt, err := search.DecodeTranspositionTable(f)
	if err != nil {
		logw.Errorf(ctx, "Corrupt opening book at %v: %v. Starting fresh", path, err)
		return search.NewTranspositionTable(ctx)
	}

	logw.Infof(ctx, "Loaded opening book %v: %v", path, tt)
	return tt
}

// Save writes the opening book to the given path, creating the data
// directory if needed.
func Save(ctx context.Context, path string, tt *search.TranspositionTable) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := tt.Encode(f); err != nil {
		return fmt.Errorf("failed to encode opening book: %v", err)
	}

	logw.Infof(ctx, "Saved opening book %v: %v", path, tt)
	return nil
}
