package checkers

import (
	"errors"
	"fmt"
)

type Move struct {
	StartRow, StartCol int
	EndRow, EndCol     int
}

func (m Move) deltas() (dr, dc int) {
	return abs(m.EndRow - m.StartRow), abs(m.EndCol - m.StartCol)
}

// IsCapture reports whether m has the 2,2 diagonal shape of a jump.
func (m Move) IsCapture() bool {
	dr, dc := m.deltas()
	return dr == 2 && dc == 2
}

// Captured returns the square jumped by a capture.
func (m Move) Captured() (r, c int) {
	return (m.StartRow + m.EndRow) / 2, (m.StartCol + m.EndCol) / 2
}

func (m Move) String() string {
	return fmt.Sprintf("(%d,%d)->(%d,%d)", m.StartRow, m.StartCol, m.EndRow, m.EndCol)
}

var (
	ErrOffBoard     = errors.New("square is off the board")
	ErrNotYourPiece = errors.New("no piece of the side to move on start square")
	ErrOccupied     = errors.New("destination is occupied")
	ErrNotDiagonal  = errors.New("move is not a one or two square diagonal")
	ErrNoCapture    = errors.New("no opponent piece to capture")
	ErrNoFollowUp   = errors.New("capture has no further capture from the landing square")
	ErrBackward     = errors.New("piece must move forward")
)

// maxChainDepth bounds the further-capture lookahead. The capture found
// by the probe is not itself required to chain.
const maxChainDepth = 1

var diagonals = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}

// Validate explains why m is illegal for the side to move, or returns
// nil. It never modifies p.
func (p *Position) Validate(m Move) error {
	return p.board.check(p.toMove, p.cfg.Captures, m, 0)
}

func (p *Position) IsValidMove(sr, sc, er, ec int) bool {
	return p.Validate(Move{sr, sc, er, ec}) == nil
}

func (g *grid) check(side Side, rule CaptureRule, m Move, depth int) error {
	if !OnBoard(m.StartRow, m.StartCol) {
		return ErrOffBoard
	}
	if g[m.StartRow][m.StartCol] != PieceOf(side) {
		return ErrNotYourPiece
	}
	if !OnBoard(m.EndRow, m.EndCol) {
		return ErrOffBoard
	}
	if g[m.EndRow][m.EndCol] != Empty {
		return ErrOccupied
	}

	switch dr, dc := m.deltas(); {
	case dr == 1 && dc == 1:
	case dr == 2 && dc == 2:
		cr, cc := m.Captured()
		if g[cr][cc] != PieceOf(side.Flip()) {
			return ErrNoCapture
		}
		if rule == RequireFollowUp && depth < maxChainDepth &&
			!g.followUp(side, rule, m, depth) {
			return ErrNoFollowUp
		}
	default:
		return ErrNotDiagonal
	}

	if (m.EndRow-m.StartRow)*side.Forward() <= 0 {
		return ErrBackward
	}
	return nil
}

// followUp plays the capture m on a copy of g and reports whether the
// piece could capture again from its landing square.
func (g *grid) followUp(side Side, rule CaptureRule, m Move, depth int) bool {
	next := *g
	cr, cc := m.Captured()
	next[m.EndRow][m.EndCol] = next[m.StartRow][m.StartCol]
	next[m.StartRow][m.StartCol] = Empty
	next[cr][cc] = Empty

	for _, d := range diagonals {
		probe := Move{
			StartRow: m.EndRow,
			StartCol: m.EndCol,
			EndRow:   m.EndRow + 2*d[0],
			EndCol:   m.EndCol + 2*d[1],
		}
		if next.check(side, rule, probe, depth+1) == nil {
			return true
		}
	}
	return false
}

// Apply plays m if it is legal. On error p is unchanged.
func (p *Position) Apply(m Move) error {
	if err := p.Validate(m); err != nil {
		return err
	}
	p.board[m.EndRow][m.EndCol] = p.board[m.StartRow][m.StartCol]
	p.board[m.StartRow][m.StartCol] = Empty
	if m.IsCapture() {
		cr, cc := m.Captured()
		p.board[cr][cc] = Empty
	}
	p.toMove = p.toMove.Flip()
	p.move++
	return nil
}

func (p *Position) MakeMove(sr, sc, er, ec int) bool {
	return p.Apply(Move{sr, sc, er, ec}) == nil
}

// ValidMoves lists the legal moves for the side to move, row-major
// over its pieces. For each forward diagonal the single step is tried
// first, then the capture over it.
func (p *Position) ValidMoves() []Move {
	var moves []Move
	piece := PieceOf(p.toMove)
	dr := p.toMove.Forward()
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if p.board[r][c] != piece {
				continue
			}
			for _, dc := range [2]int{-1, 1} {
				step := Move{r, c, r + dr, c + dc}
				if p.Validate(step) == nil {
					moves = append(moves, step)
					continue
				}
				jump := Move{r, c, r + 2*dr, c + 2*dc}
				if p.Validate(jump) == nil {
					moves = append(moves, jump)
				}
			}
		}
	}
	return moves
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
