package notation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nelhage/checkers/checkers"
)

// ParseDiagram reads a one-line board of the form
//
//	_x_x_x_x/x_x_x_x_/_x_x_x_x/________/________/o_o_o_o_/_o_o_o_o/o_o_o_o_ x
//
// Rows are listed from row 0 (X's home edge); the trailing word names
// the side to move.
func ParseDiagram(cfg checkers.Config, diagram string) (*checkers.Position, error) {
	words := strings.Fields(diagram)
	if len(words) != 2 {
		return nil, errors.New("bad diagram: wrong number of words")
	}
	rows := strings.Split(words[0], "/")
	if len(rows) != checkers.Size {
		return nil, fmt.Errorf("bad diagram: %d rows", len(rows))
	}
	var grid [checkers.Size][checkers.Size]checkers.Cell
	for r, row := range rows {
		if len(row) != checkers.Size {
			return nil, fmt.Errorf("row %d bad length: %d", r, len(row))
		}
		for c := 0; c < len(row); c++ {
			cell, err := parseCell(row[c])
			if err != nil {
				return nil, fmt.Errorf("row %d: %v", r, err)
			}
			grid[r][c] = cell
		}
	}
	toMove, err := ParseSide(words[1])
	if err != nil {
		return nil, err
	}
	return checkers.FromRows(cfg, grid, toMove)
}

func parseCell(b byte) (checkers.Cell, error) {
	switch b {
	case '_', '.':
		return checkers.Empty, nil
	case 'x', 'X':
		return checkers.PieceOf(checkers.X), nil
	case 'o', 'O':
		return checkers.PieceOf(checkers.O), nil
	default:
		return checkers.Empty, fmt.Errorf("bad cell %q", b)
	}
}

func ParseSide(s string) (checkers.Side, error) {
	switch strings.ToLower(s) {
	case "x":
		return checkers.X, nil
	case "o":
		return checkers.O, nil
	default:
		return checkers.NoSide, fmt.Errorf("bad side: %q", s)
	}
}

func FormatDiagram(p *checkers.Position) string {
	rows := make([]string, 0, checkers.Size)
	for r := 0; r < checkers.Size; r++ {
		var row strings.Builder
		for c := 0; c < checkers.Size; c++ {
			row.WriteString(p.At(r, c).String())
		}
		rows = append(rows, row.String())
	}
	return fmt.Sprintf("%s %s", strings.Join(rows, "/"), strings.ToLower(p.ToMove().String()))
}
