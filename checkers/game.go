package checkers

import (
	"errors"
	"fmt"
)

const Size = 8

// CaptureRule selects how a 2,2 capture is judged.
type CaptureRule byte

const (
	// RequireFollowUp accepts a capture only if the landing square
	// offers a further capture. This is the reference rule set's
	// behavior and the default. Standard checkers has no such rule.
	RequireFollowUp CaptureRule = iota
	// SingleCapture accepts any capture of an adjacent opponent piece.
	SingleCapture
)

func (r CaptureRule) String() string {
	switch r {
	case RequireFollowUp:
		return "follow-up"
	case SingleCapture:
		return "single"
	default:
		return fmt.Sprintf("CaptureRule(%d)", int(r))
	}
}

// ParseCaptureRule is the inverse of CaptureRule.String.
func ParseCaptureRule(s string) (CaptureRule, error) {
	switch s {
	case "follow-up", "":
		return RequireFollowUp, nil
	case "single":
		return SingleCapture, nil
	default:
		return 0, fmt.Errorf("bad capture rule: %q", s)
	}
}

type Config struct {
	Captures CaptureRule
}

type grid [Size][Size]Cell

type Position struct {
	cfg Config

	toMove Side
	move   int
	board  grid
}

func New(cfg Config) *Position {
	p := &Position{
		cfg:    cfg,
		toMove: X,
	}
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if !Dark(r, c) {
				continue
			}
			switch {
			case r < 3:
				p.board[r][c] = PieceOf(X)
			case r > 4:
				p.board[r][c] = PieceOf(O)
			}
		}
	}
	return p
}

var ErrLightSquare = errors.New("piece on a light square")

// FromRows builds a position from an explicit grid, indexed
// [row][col] with row 0 at X's home edge.
func FromRows(cfg Config, rows [Size][Size]Cell, toMove Side) (*Position, error) {
	if toMove != X && toMove != O {
		return nil, fmt.Errorf("bad side to move: %v", toMove)
	}
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			switch rows[r][c] {
			case Empty:
			case Cell(X), Cell(O):
				if !Dark(r, c) {
					return nil, fmt.Errorf("%w: row=%d col=%d", ErrLightSquare, r, c)
				}
			default:
				return nil, fmt.Errorf("bad cell at row=%d col=%d: %x", r, c, int(rows[r][c]))
			}
		}
	}
	return &Position{
		cfg:    cfg,
		toMove: toMove,
		board:  grid(rows),
	}, nil
}

// Dark reports whether (r, c) is a playable square.
func Dark(r, c int) bool {
	return (r+c)%2 != 0
}

func OnBoard(r, c int) bool {
	return r >= 0 && r < Size && c >= 0 && c < Size
}

func (p *Position) Config() Config {
	return p.cfg
}

func (p *Position) At(r, c int) Cell {
	return p.board[r][c]
}

// Rows returns a copy of the grid.
func (p *Position) Rows() [Size][Size]Cell {
	return p.board
}

func (p *Position) ToMove() Side {
	return p.toMove
}

// MoveNumber counts applied moves (plies) since the position was
// built.
func (p *Position) MoveNumber() int {
	return p.move
}

func (p *Position) Clone() *Position {
	c := *p
	return &c
}

func (p *Position) Count(s Side) int {
	n := 0
	piece := PieceOf(s)
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if p.board[r][c] == piece {
				n++
			}
		}
	}
	return n
}

// NoPiecesLeft reports whether the side to move owns no cells.
func (p *Position) NoPiecesLeft() bool {
	return p.Count(p.toMove) == 0
}

// IsGameOver is reserved and always reports false. Callers decide the
// game with Decided.
func (p *Position) IsGameOver() bool {
	return false
}

func (p *Position) IsPieceOwnedByCurrentPlayer(r, c int) bool {
	if !OnBoard(r, c) {
		return false
	}
	return p.board[r][c] == PieceOf(p.toMove)
}

// Decided reports whether the side to move has lost, either by having
// no pieces or no legal move. The winner is the other side.
func (p *Position) Decided() (winner Side, over bool) {
	if p.NoPiecesLeft() || len(p.ValidMoves()) == 0 {
		return p.toMove.Flip(), true
	}
	return NoSide, false
}
