package checkerstest

import (
	"strings"

	"github.com/nelhage/checkers/checkers"
	"github.com/nelhage/checkers/notation"
)

func Move(s string) checkers.Move {
	m, e := notation.ParseMove(s)
	if e != nil {
		panic(e)
	}
	return m
}

func Moves(s string) []checkers.Move {
	if s == "" {
		return nil
	}
	var ms []checkers.Move
	for _, b := range strings.Fields(s) {
		ms = append(ms, Move(b))
	}
	return ms
}

func FormatMoves(ms []checkers.Move) string {
	var bits []string
	for _, m := range ms {
		bits = append(bits, notation.FormatMove(m))
	}
	return strings.Join(bits, " ")
}

// Position plays ms from the standard layout.
func Position(cfg checkers.Config, ms string) *checkers.Position {
	p := checkers.New(cfg)
	for _, m := range Moves(ms) {
		if e := p.Apply(m); e != nil {
			panic(e)
		}
	}
	return p
}

// Diagram parses a board written as eight rows separated by "/",
// followed by the side to move.
func Diagram(cfg checkers.Config, d string) *checkers.Position {
	p, e := notation.ParseDiagram(cfg, d)
	if e != nil {
		panic(e)
	}
	return p
}
