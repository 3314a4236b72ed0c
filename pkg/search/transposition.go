package search

import (
	"context"
	"encoding/gob"
	"fmt"
	"io"

	"github.com/Mark-Finn/connect4/pkg/board"
	"github.com/seekerror/logw"
)

// Bound represents the kind of a cached -- inexact -- search score.
type Bound uint8

const (
	UpperBound Bound = iota
	LowerBound
)

func (b Bound) String() string {
	switch b {
	case UpperBound:
		return "Upper"
	case LowerBound:
		return "Lower"
	default:
		return "?"
	}
}

// tableSize is a prime slightly above 2^23. A prime capacity spreads the
// 56-bit keys evenly over the buckets under modulo indexing.
const tableSize = 1<<23 + 9

// TranspositionTable caches one score bound per position to speed up search.
// It is a fixed-capacity, open-addressed, single-probe table: the most recent
// write for a bucket wins, and only the low 32 bits of the key are kept. A
// truncated-key collision can hand the search a bound that does not apply;
// when such a bound empties the search window, negamax returns it without
// searching the moves, so the reported score can be wrong. The 32-bit key
// check makes such collisions rare. Not thread-safe.
type TranspositionTable struct {
	keys   []uint32
	values []int8
	used   uint64
}

// NewTranspositionTable returns an empty table.
func NewTranspositionTable(ctx context.Context) *TranspositionTable {
	logw.Infof(ctx, "Allocating %vMB transposition table with %v buckets", (tableSize*5)>>20, tableSize)

	t := &TranspositionTable{
		keys:   make([]uint32, tableSize),
		values: make([]int8, tableSize),
	}
	for i := range t.keys {
		t.keys[i] = ^uint32(0)
	}
	return t
}

// Put stores the bound for the given position key. Unconditional overwrite.
func (t *TranspositionTable) Put(key uint64, bound Bound, score board.Score) {
	i := key % tableSize
	if t.values[i] == 0 {
		t.used++
	}
	t.keys[i] = uint32(key)
	t.values[i] = encodeBound(bound, score)
}

// Get returns the cached bound for the given position key, if present.
func (t *TranspositionTable) Get(key uint64) (Bound, board.Score, bool) {
	i := key % tableSize
	if t.keys[i] != uint32(key) || t.values[i] == 0 {
		return 0, 0, false
	}
	bound, score := decodeBound(t.values[i])
	return bound, score, true
}

// Size returns the size of the table in bytes.
func (t *TranspositionTable) Size() uint64 {
	return uint64(len(t.keys))*4 + uint64(len(t.values))
}

// Used returns the utilization as a fraction [0;1].
func (t *TranspositionTable) Used() float64 {
	return float64(t.used) / float64(len(t.values))
}

func (t *TranspositionTable) String() string {
	return fmt.Sprintf("TT[%v @ %v%%]", t.Size(), int(100*t.Used()))
}

// tableDump is the serialized form: the keys array followed by the values
// array, each length-prefixed by the encoding.
type tableDump struct {
	Keys   []uint32
	Values []int8
}

// Encode writes the table to the given writer.
func (t *TranspositionTable) Encode(w io.Writer) error {
	return gob.NewEncoder(w).Encode(tableDump{Keys: t.keys, Values: t.values})
}

// DecodeTranspositionTable reads a table written by Encode.
func DecodeTranspositionTable(r io.Reader) (*TranspositionTable, error) {
	var dump tableDump
	if err := gob.NewDecoder(r).Decode(&dump); err != nil {
		return nil, err
	}
	if len(dump.Keys) != tableSize || len(dump.Values) != tableSize {
		return nil, fmt.Errorf("invalid table dump: %v keys, %v values", len(dump.Keys), len(dump.Values))
	}

	t := &TranspositionTable{keys: dump.Keys, values: dump.Values}
	for _, v := range t.values {
		if v != 0 {
			t.used++
		}
	}
	return t, nil
}

// Bounds are encoded into a single signed byte: upper bounds occupy
// [1, MaxScore-MinScore+1] and lower bounds the range above it. Zero is an
// empty bucket.
func encodeBound(bound Bound, score board.Score) int8 {
	if bound == LowerBound {
		return int8(score) + int8(board.MaxScore) - 2*int8(board.MinScore) + 2
	}
	return int8(score) - int8(board.MinScore) + 1
}

func decodeBound(v int8) (Bound, board.Score) {
	if v > int8(board.MaxScore)-int8(board.MinScore)+1 {
		return LowerBound, board.Score(v) + 2*board.MinScore - board.MaxScore - 2
	}
	return UpperBound, board.Score(v) + board.MinScore - 1
}
