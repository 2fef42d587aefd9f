// Package session drives a game from square clicks: the first click
// selects a piece of the side to move, the second tries to move it
// there. An illegal target just drops the selection.
//
// A Session is not safe for concurrent use.
package session

import (
	"errors"
	"strconv"

	"github.com/nelhage/checkers/ai"
	"github.com/nelhage/checkers/checkers"
	"github.com/nelhage/checkers/notation"
)

type Outcome byte

const (
	Ignored Outcome = iota
	Selected
	Deselected
	Moved
)

func (o Outcome) String() string {
	switch o {
	case Ignored:
		return "ignored"
	case Selected:
		return "selected"
	case Deselected:
		return "deselected"
	case Moved:
		return "moved"
	default:
		return "Outcome(" + strconv.Itoa(int(o)) + ")"
	}
}

var (
	ErrGameOver     = errors.New("game is over")
	ErrComputerTurn = errors.New("waiting on the computer")
)

type square struct {
	r, c int
}

type Session struct {
	p        *checkers.Position
	computer *ai.CaptureFirst

	selected *square
	moves    []checkers.Move
}

// New starts a game from the standard layout. If computer is non-nil
// it plays O and answers every X move immediately.
func New(cfg checkers.Config, computer *ai.CaptureFirst) *Session {
	return &Session{
		p:        checkers.New(cfg),
		computer: computer,
	}
}

// Position returns a copy of the current position.
func (s *Session) Position() *checkers.Position {
	return s.p.Clone()
}

func (s *Session) Moves() []checkers.Move {
	return append([]checkers.Move(nil), s.moves...)
}

func (s *Session) Selected() (r, c int, ok bool) {
	if s.selected == nil {
		return 0, 0, false
	}
	return s.selected.r, s.selected.c, true
}

func (s *Session) Winner() (checkers.Side, bool) {
	return s.p.Decided()
}

func (s *Session) HasComputer() bool {
	return s.computer != nil
}

func (s *Session) computerToMove() bool {
	return s.computer != nil && s.p.ToMove() == checkers.O
}

// Click handles a click on square (r, c).
func (s *Session) Click(r, c int) Outcome {
	if _, over := s.p.Decided(); over {
		s.selected = nil
		return Ignored
	}
	if s.computerToMove() {
		if s.reply() {
			return Moved
		}
		return Ignored
	}
	if s.selected == nil {
		if !s.p.IsPieceOwnedByCurrentPlayer(r, c) {
			return Ignored
		}
		s.selected = &square{r, c}
		return Selected
	}
	from := *s.selected
	s.selected = nil
	m := checkers.Move{StartRow: from.r, StartCol: from.c, EndRow: r, EndCol: c}
	if s.p.Apply(m) != nil {
		return Deselected
	}
	s.moves = append(s.moves, m)
	s.reply()
	return Moved
}

// Move plays m for the side to move, then lets the computer answer.
func (s *Session) Move(m checkers.Move) error {
	if _, over := s.p.Decided(); over {
		return ErrGameOver
	}
	if s.computerToMove() {
		return ErrComputerTurn
	}
	if err := s.p.Apply(m); err != nil {
		return err
	}
	s.selected = nil
	s.moves = append(s.moves, m)
	s.reply()
	return nil
}

func (s *Session) reply() bool {
	if !s.computerToMove() {
		return false
	}
	m, ok := s.computer.SelectMove(s.p)
	if !ok {
		return false
	}
	if err := s.p.Apply(m); err != nil {
		return false
	}
	s.moves = append(s.moves, m)
	return true
}

// Record transcribes the game so far.
func (s *Session) Record(tags ...notation.Tag) *notation.Record {
	rec := &notation.Record{Tags: tags}
	rec.AddMoves(s.moves)
	if w, over := s.p.Decided(); over {
		rec.Winner = w
	}
	return rec
}
