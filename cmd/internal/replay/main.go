package replay

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/google/subcommands"
	"github.com/nelhage/checkers/checkers"
	"github.com/nelhage/checkers/cli"
	"github.com/nelhage/checkers/notation"
)

type Command struct {
	all     bool
	unicode bool
}

func (*Command) Name() string     { return "replay" }
func (*Command) Synopsis() string { return "Replay a game record through the rules engine" }
func (*Command) Usage() string {
	return `replay [flags] FILE

Check every move of a game record and print the final position.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.BoolVar(&c.all, "all", false, "print the board after every move")
	flags.BoolVar(&c.unicode, "unicode", false, "render board with colored utf8 glyphs")
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if flag.NArg() != 1 {
		flag.Usage()
		return subcommands.ExitUsageError
	}
	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Printf("open: %v", err)
		return subcommands.ExitFailure
	}
	defer f.Close()
	rec, err := notation.ParseRecord(f)
	if err != nil {
		log.Printf("parse %s: %v", flag.Arg(0), err)
		return subcommands.ExitFailure
	}

	g := &cli.DefaultGlyphs
	if c.unicode {
		g = &cli.UnicodeGlyphs
	}
	var each func(*checkers.Position)
	if c.all {
		each = func(p *checkers.Position) { cli.RenderBoard(g, os.Stdout, p) }
	}
	p, err := Replay(rec, each)
	if err != nil {
		log.Printf("replay %s: %v", flag.Arg(0), err)
		return subcommands.ExitFailure
	}
	if !c.all {
		cli.RenderBoard(g, os.Stdout, p)
	}
	printResult(os.Stdout, rec, p)
	return subcommands.ExitSuccess
}

// Replay plays rec's moves from its initial position, calling each (if
// non-nil) on every position reached. It fails on the first illegal
// move, or if the record claims a winner the final position
// contradicts.
func Replay(rec *notation.Record, each func(*checkers.Position)) (*checkers.Position, error) {
	p, err := rec.InitialPosition(checkers.Config{})
	if err != nil {
		return nil, err
	}
	if each != nil {
		each(p)
	}
	for i, m := range rec.Moves {
		if err := p.Apply(m); err != nil {
			return p, fmt.Errorf("ply %d (%s): %w", i+1, notation.FormatMove(m), err)
		}
		if each != nil {
			each(p)
		}
	}
	if winner, over := p.Decided(); over && rec.Winner != checkers.NoSide && winner != rec.Winner {
		return p, fmt.Errorf("record says %s wins, but %s won", rec.Winner, winner)
	}
	return p, nil
}

func printResult(out io.Writer, rec *notation.Record, p *checkers.Position) {
	_, over := p.Decided()
	switch {
	case over:
		fmt.Fprintln(out, cli.Result(p))
	case rec.Winner != checkers.NoSide:
		fmt.Fprintf(out, "Player %s resigns. Player %s wins!\n", rec.Winner.Flip(), rec.Winner)
	default:
		fmt.Fprintf(out, "%s to move after %d plies\n", p.ToMove(), p.MoveNumber())
	}
}
