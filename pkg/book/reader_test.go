package book_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Mark-Finn/connect4/pkg/board"
	"github.com/Mark-Finn/connect4/pkg/book"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "positions")
	require.NoError(t, os.WriteFile(path, []byte("001122 2\n\n3 -1\n"), 0644))

	lines, err := book.ReadLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"001122 2", "3 -1"}, lines)

	_, err = book.ReadLines(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}

func TestParseScoreLine(t *testing.T) {
	tests := []struct {
		line  string
		pos   string
		score board.Score
	}{
		{"001122 2", "001122", 2},
		{"3 -1", "3", -1},
		{"6554434331 18", "6554434331", 18},
	}

	for _, tt := range tests {
		pos, score, err := book.ParseScoreLine(tt.line)
		require.NoError(t, err, "line: %v", tt.line)
		assert.Equal(t, tt.pos, pos)
		assert.Equal(t, tt.score, score)
	}

	errors := []string{
		"001122",    // no score
		"001122 x",  // not a number
		"001122 99", // out of range
		"3 -25",     // below minimum
	}
	for _, line := range errors {
		_, _, err := book.ParseScoreLine(line)
		assert.Error(t, err, "line: %v", line)
	}
}
