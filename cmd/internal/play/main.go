package play

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/google/subcommands"
	"github.com/nelhage/checkers/checkers"
	"github.com/nelhage/checkers/cli"
	"github.com/nelhage/checkers/cmd/internal/opt"
	"github.com/nelhage/checkers/logs"
	"github.com/nelhage/checkers/notation"
)

type Command struct {
	x     string
	o     string
	rules opt.Rules
	limit time.Duration
	setup string
	out   string
	db    string

	unicode bool
}

func (*Command) Name() string     { return "play" }
func (*Command) Synopsis() string { return "Play checkers from the command line" }
func (*Command) Usage() string {
	return `play [flags]

Play checkers on the command-line, against a human or AI.
Players are "human", "rand[:seed]" or "capture[:seed]".
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.x, "x", "human", "X player")
	flags.StringVar(&c.o, "o", "capture", "O player")
	c.rules.AddFlags(flags)
	flags.DurationVar(&c.limit, "limit", time.Minute, "ai time limit")
	flags.StringVar(&c.setup, "setup", "", "start from this board diagram")
	flags.StringVar(&c.out, "out", "", "write game record to file")
	flags.StringVar(&c.db, "db", "", "log the finished game to this sqlite database")

	flags.BoolVar(&c.unicode, "unicode", false, "render board with colored utf8 glyphs")
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := c.rules.BuildConfig()
	if err != nil {
		log.Print(err)
		return subcommands.ExitUsageError
	}
	in := bufio.NewReader(os.Stdin)
	st := &cli.CLI{
		Config: cfg,
		Out:    os.Stdout,
		Glyphs: glyphs(c.unicode),
	}
	if st.X, err = parsePlayer(ctx, in, os.Stdout, c.x, c.limit); err != nil {
		log.Printf("-x: %v", err)
		return subcommands.ExitUsageError
	}
	if st.O, err = parsePlayer(ctx, in, os.Stdout, c.o, c.limit); err != nil {
		log.Printf("-o: %v", err)
		return subcommands.ExitUsageError
	}
	if c.setup != "" {
		if st.Start, err = notation.ParseDiagram(cfg, c.setup); err != nil {
			log.Printf("-setup: %v", err)
			return subcommands.ExitUsageError
		}
	}

	start := time.Now()
	_, winner := st.Play()

	rec := c.record(cfg, start)
	rec.AddMoves(st.Moves())
	rec.Winner = winner
	if c.out != "" {
		if err := os.WriteFile(c.out, []byte(rec.Render()), 0644); err != nil {
			log.Printf("write record: %v", err)
			return subcommands.ExitFailure
		}
	}
	if c.db != "" {
		if err := logGame(c.db, rec, start); err != nil {
			log.Printf("log game: db=%s err=%v", c.db, err)
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}

func (c *Command) record(cfg checkers.Config, start time.Time) *notation.Record {
	rec := &notation.Record{}
	rec.Tags = []notation.Tag{
		{Name: "Date", Value: start.Format("2006.01.02")},
		{Name: "PlayerX", Value: c.x},
		{Name: "PlayerO", Value: c.o},
		{Name: "Rule", Value: cfg.Captures.String()},
	}
	if c.setup != "" {
		rec.Tags = append(rec.Tags, notation.Tag{Name: "Setup", Value: c.setup})
	}
	return rec
}

func logGame(path string, rec *notation.Record, start time.Time) error {
	repo, err := logs.Open(path)
	if err != nil {
		return err
	}
	defer repo.Close()
	return repo.InsertGame(&logs.Game{
		Timestamp: start,
		PlayerX:   rec.FindTag("PlayerX"),
		PlayerO:   rec.FindTag("PlayerO"),
		Rule:      rec.FindTag("Rule"),
		Winner:    rec.Winner.String(),
		Plies:     len(rec.Moves),
		Record:    rec.Render(),
	})
}

func glyphs(unicode bool) *cli.Glyphs {
	if unicode {
		return &cli.UnicodeGlyphs
	}
	return &cli.DefaultGlyphs
}

func parsePlayer(ctx context.Context, in *bufio.Reader, out io.Writer, s string, limit time.Duration) (cli.Player, error) {
	if s == "human" {
		return cli.NewCLIPlayer(out, in), nil
	}
	p, err := opt.ParseAI(s)
	if err != nil {
		return nil, fmt.Errorf("unparseable player: %w", err)
	}
	return cli.NewAIPlayer(ctx, p, limit), nil
}
