package ai

import (
	"math/rand"

	"github.com/nelhage/checkers/checkers"
	"golang.org/x/net/context"
)

// CaptureFirst plays the first capture it finds, scanning the board
// row-major, and otherwise a uniformly random legal move.
type CaptureFirst struct {
	r *rand.Rand
}

func NewCaptureFirst(seed int64) *CaptureFirst {
	return &CaptureFirst{r: rand.New(rand.NewSource(seed))}
}

func (a *CaptureFirst) GetMove(ctx context.Context, p *checkers.Position) (checkers.Move, bool) {
	if ctx.Err() != nil {
		return checkers.Move{}, false
	}
	return a.SelectMove(p)
}

// SelectMove picks a move for the side to move in b. ok is false if
// the side has no legal move.
func (a *CaptureFirst) SelectMove(b Board) (m checkers.Move, ok bool) {
	moves := Candidates(b)
	if len(moves) == 0 {
		return checkers.Move{}, false
	}
	for _, m := range moves {
		if m.IsCapture() {
			return m, true
		}
	}
	return moves[a.r.Intn(len(moves))], true
}

// Candidates enumerates the moves b accepts for the side to move. For
// each piece and each forward diagonal it probes the adjacent square,
// then the square beyond it.
func Candidates(b Board) []checkers.Move {
	side := b.ToMove()
	piece := checkers.PieceOf(side)
	dr := side.Forward()

	var moves []checkers.Move
	for r := 0; r < checkers.Size; r++ {
		for c := 0; c < checkers.Size; c++ {
			if b.At(r, c) != piece {
				continue
			}
			for _, dc := range [2]int{-1, 1} {
				switch {
				case b.IsValidMove(r, c, r+dr, c+dc):
					moves = append(moves, checkers.Move{
						StartRow: r, StartCol: c, EndRow: r + dr, EndCol: c + dc,
					})
				case b.IsValidMove(r, c, r+2*dr, c+2*dc):
					moves = append(moves, checkers.Move{
						StartRow: r, StartCol: c, EndRow: r + 2*dr, EndCol: c + 2*dc,
					})
				}
			}
		}
	}
	return moves
}
