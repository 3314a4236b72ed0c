package book

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Mark-Finn/connect4/pkg/board"
)

// ReadLines returns the non-empty lines of the given file.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}

// ParseScoreLine parses a "<position> <score>" line of a solved-position
// file.
func ParseScoreLine(line string) (string, board.Score, error) {
	pos, num, ok := strings.Cut(line, " ")
	if !ok {
		return "", 0, fmt.Errorf("invalid score line '%v': expected '<position> <score>'", line)
	}

	score, err := strconv.Atoi(num)
	if err != nil {
		return "", 0, fmt.Errorf("invalid score in line '%v': %v", line, err)
	}
	if score < int(board.MinScore) || score > int(board.MaxScore) {
		return "", 0, fmt.Errorf("score %v out of range [%v;%v] in line '%v'", score, board.MinScore, board.MaxScore, line)
	}
	return pos, board.Score(score), nil
}
