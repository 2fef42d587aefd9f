package notation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nelhage/checkers/checkers"
)

var ErrMalformed = errors.New("malformed move")

// ParseMove reads moves of the form "3a-4b": a rank digit 1-8 counted
// from the bottom of the printed board, then a file letter a-h, for
// each of the start and end squares.
func ParseMove(move string) (checkers.Move, error) {
	bits := strings.Split(strings.TrimSpace(move), "-")
	if len(bits) != 2 {
		return checkers.Move{}, fmt.Errorf("%w: %q: want <digit><letter>-<digit><letter>", ErrMalformed, move)
	}
	sr, sc, err := parseSquare(bits[0])
	if err != nil {
		return checkers.Move{}, fmt.Errorf("%w: %q: %v", ErrMalformed, move, err)
	}
	er, ec, err := parseSquare(bits[1])
	if err != nil {
		return checkers.Move{}, fmt.Errorf("%w: %q: %v", ErrMalformed, move, err)
	}
	return checkers.Move{StartRow: sr, StartCol: sc, EndRow: er, EndCol: ec}, nil
}

func parseSquare(sq string) (r, c int, err error) {
	if len(sq) != 2 {
		return 0, 0, fmt.Errorf("bad square %q", sq)
	}
	rank, file := sq[0], sq[1]
	if rank < '1' || rank > '8' {
		return 0, 0, fmt.Errorf("bad rank %q", rank)
	}
	if file < 'a' || file > 'h' {
		return 0, 0, fmt.Errorf("bad file %q", file)
	}
	return checkers.Size - int(rank-'0'), int(file - 'a'), nil
}

func FormatMove(m checkers.Move) string {
	return FormatSquare(m.StartRow, m.StartCol) + "-" + FormatSquare(m.EndRow, m.EndCol)
}

func FormatSquare(r, c int) string {
	return string([]byte{byte('0' + checkers.Size - r), byte('a' + c)})
}
