package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/nelhage/checkers/checkers"
	"github.com/nelhage/checkers/notation"
)

type Player interface {
	// GetMove returns false if the player gives up.
	GetMove(p *checkers.Position) (checkers.Move, bool)
}

type Glyphs struct {
	X, O, Empty string
	Color       bool
}

type CLI struct {
	moves []checkers.Move
	p     *checkers.Position

	Config checkers.Config
	// Start, if set, replaces the standard opening layout.
	Start  *checkers.Position
	Glyphs *Glyphs
	Out    io.Writer
	X      Player
	O      Player
}

var DefaultGlyphs = Glyphs{
	X:     "x",
	O:     "o",
	Empty: "_",
}

var UnicodeGlyphs = Glyphs{
	X:     "●",
	O:     "○",
	Empty: " ",
	Color: true,
}

var (
	xColor = color.New(color.FgRed, color.Bold)
	oColor = color.New(color.FgCyan, color.Bold)
)

// Play runs a game to completion and returns the final position and
// the winner.
func (c *CLI) Play() (*checkers.Position, checkers.Side) {
	c.moves = nil
	if c.Start != nil {
		c.p = c.Start.Clone()
	} else {
		c.p = checkers.New(c.Config)
	}
	for {
		c.render()
		if winner, over := c.p.Decided(); over {
			fmt.Fprintln(c.Out, Result(c.p))
			return c.p, winner
		}
		side := c.p.ToMove()
		player := c.X
		if side == checkers.O {
			player = c.O
		}
		m, ok := player.GetMove(c.p)
		if !ok {
			fmt.Fprintf(c.Out, "Player %s resigns. Player %s wins!\n", side, side.Flip())
			return c.p, side.Flip()
		}
		number := c.p.MoveNumber()/2 + 1
		if err := c.p.Apply(m); err != nil {
			fmt.Fprintln(c.Out, "illegal move:", err)
			continue
		}
		if side == checkers.X {
			fmt.Fprintf(c.Out, "%d. %s\n", number, notation.FormatMove(m))
		} else {
			fmt.Fprintf(c.Out, "%d. ... %s\n", number, notation.FormatMove(m))
		}
		c.moves = append(c.moves, m)
	}
}

// Result says why a decided position is over and who won.
func Result(p *checkers.Position) string {
	winner, _ := p.Decided()
	if p.NoPiecesLeft() {
		return fmt.Sprintf("Player %s has no pieces left. Player %s wins!", p.ToMove(), winner)
	}
	return fmt.Sprintf("No valid moves left for player %s. Player %s wins!", p.ToMove(), winner)
}

func (c *CLI) Moves() []checkers.Move {
	return c.moves
}

func (c *CLI) render() {
	RenderBoard(c.Glyphs, c.Out, c.p)
}

func (g *Glyphs) glyph(cell checkers.Cell) string {
	switch cell {
	case checkers.Empty:
		return g.Empty
	case checkers.PieceOf(checkers.X):
		if g.Color {
			return xColor.Sprint(g.X)
		}
		return g.X
	case checkers.PieceOf(checkers.O):
		if g.Color {
			return oColor.Sprint(g.O)
		}
		return g.O
	default:
		panic(fmt.Sprintf("bad cell %v", cell))
	}
}

func RenderBoard(g *Glyphs, out io.Writer, p *checkers.Position) {
	if g == nil {
		g = &DefaultGlyphs
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "[%s to play]\n", p.ToMove())
	fmt.Fprint(out, "  ")
	for c := 0; c < checkers.Size; c++ {
		fmt.Fprintf(out, " %c", 'a'+c)
	}
	fmt.Fprintln(out)
	for r := 0; r < checkers.Size; r++ {
		fmt.Fprintf(out, "%d ", checkers.Size-r)
		for c := 0; c < checkers.Size; c++ {
			fmt.Fprintf(out, "|%s", g.glyph(p.At(r, c)))
		}
		fmt.Fprintln(out, "|")
	}
	fmt.Fprintf(out, "pieces: X:%d O:%d\n", p.Count(checkers.X), p.Count(checkers.O))
}
