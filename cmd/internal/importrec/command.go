package importrec

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/subcommands"
	"github.com/nelhage/checkers/checkers"
	"github.com/nelhage/checkers/cmd/internal/replay"
	"github.com/nelhage/checkers/logs"
	"github.com/nelhage/checkers/notation"
)

type Command struct {
	db string
}

func (*Command) Name() string     { return "import" }
func (*Command) Synopsis() string { return "Import game records into a game log" }
func (*Command) Usage() string {
	return `import -db GAMES.db FILE...

Check each record against the rules and add the legal ones to the log.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.db, "db", "", "sqlite game log")
}

const ReportInterval = 1000

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.db == "" || flag.NArg() == 0 {
		flag.Usage()
		return subcommands.ExitUsageError
	}
	repo, err := logs.Open(c.db)
	if err != nil {
		log.Printf("open db: path=%s err=%v", c.db, err)
		return subcommands.ExitFailure
	}
	defer repo.Close()

	var games []*logs.Game
	for i, path := range flag.Args() {
		g, err := importOne(path)
		if err != nil {
			log.Printf("could not import: path=%s err=%v", path, err)
			continue
		}
		games = append(games, g)
		if (i+1)%ReportInterval == 0 {
			log.Printf("%d...", i+1)
		}
	}
	if err := repo.InsertGames(games); err != nil {
		log.Printf("insert: %v", err)
		return subcommands.ExitFailure
	}
	log.Printf("imported %d/%d records", len(games), flag.NArg())
	return subcommands.ExitSuccess
}

func importOne(path string) (*logs.Game, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	rec, err := notation.ParseRecord(f)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	p, err := replay.Replay(rec, nil)
	if err != nil {
		return nil, err
	}
	return gameRow(rec, p, path)
}

func gameRow(rec *notation.Record, p *checkers.Position, path string) (*logs.Game, error) {
	winner := rec.Winner
	if w, over := p.Decided(); over {
		winner = w
	}
	ts := time.Now()
	if d := rec.FindTag("Date"); d != "" {
		t, err := time.Parse("2006.01.02", d)
		if err != nil {
			return nil, fmt.Errorf("bad Date %q: %w", d, err)
		}
		ts = t
	} else if st, err := os.Stat(path); err == nil {
		ts = st.ModTime()
	}
	return &logs.Game{
		Timestamp: ts,
		PlayerX:   rec.FindTag("PlayerX"),
		PlayerO:   rec.FindTag("PlayerO"),
		Rule:      p.Config().Captures.String(),
		Winner:    winner.String(),
		Plies:     len(rec.Moves),
		Record:    rec.Render(),
	}, nil
}
