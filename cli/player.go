package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nelhage/checkers/ai"
	"github.com/nelhage/checkers/checkers"
	"github.com/nelhage/checkers/notation"
)

func NewCLIPlayer(out io.Writer, in *bufio.Reader) Player {
	return &cliPlayer{out, in}
}

type cliPlayer struct {
	out io.Writer
	in  *bufio.Reader
}

func (c *cliPlayer) GetMove(p *checkers.Position) (checkers.Move, bool) {
	for {
		fmt.Fprintf(c.out, "%s> ", p.ToMove())
		line, err := c.in.ReadString('\n')
		if strings.TrimSpace(line) == "" {
			if err != nil {
				return checkers.Move{}, false
			}
			continue
		}
		m, perr := notation.ParseMove(line)
		if perr != nil {
			fmt.Fprintln(c.out, "Invalid move format, enter e.g. 6b-5a:", perr)
			if err != nil {
				return checkers.Move{}, false
			}
			continue
		}
		return m, true
	}
}

// NewAIPlayer adapts p to a Player, giving it limit to choose each
// move. Canceling ctx makes it resign.
func NewAIPlayer(ctx context.Context, p ai.Player, limit time.Duration) Player {
	return &aiPlayer{ctx, limit, p}
}

type aiPlayer struct {
	ctx   context.Context
	limit time.Duration
	p     ai.Player
}

func (a *aiPlayer) GetMove(p *checkers.Position) (checkers.Move, bool) {
	ctx, cancel := context.WithTimeout(a.ctx, a.limit)
	defer cancel()
	return a.p.GetMove(ctx, p)
}
