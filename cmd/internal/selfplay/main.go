package selfplay

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"text/tabwriter"
	"time"

	"github.com/google/subcommands"
	"github.com/nelhage/checkers/cmd/internal/opt"
	"github.com/nelhage/checkers/logs"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type Command struct {
	games   int
	threads int
	seed    int64
	cutoff  int
	limit   time.Duration
	swap    bool
	p1, p2  string
	rules   opt.Rules
	out     string
	db      string
	verbose bool
}

func (*Command) Name() string     { return "selfplay" }
func (*Command) Synopsis() string { return "Play two AIs against each other" }
func (*Command) Usage() string {
	return `selfplay [flags]

Play many games between two AIs and report the results.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.IntVar(&c.games, "games", 100, "number of games to play")
	flags.IntVar(&c.threads, "threads", 4, "number of parallel threads")
	flags.Int64Var(&c.seed, "seed", 0, "starting random seed")
	flags.IntVar(&c.cutoff, "cutoff", 0, "cut games off after how many plies (0 for none)")
	flags.DurationVar(&c.limit, "limit", 0, "amount of time to choose each move")
	flags.BoolVar(&c.swap, "swap", true, "swap colors each game")
	flags.StringVar(&c.p1, "p1", "capture", "first player: rand or capture")
	flags.StringVar(&c.p2, "p2", "rand", "second player: rand or capture")
	c.rules.AddFlags(flags)
	flags.StringVar(&c.out, "out", "", "directory to write game records to")
	flags.StringVar(&c.db, "db", "", "log games to this sqlite database")
	flags.BoolVar(&c.verbose, "v", false, "verbose output")
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rules, err := c.rules.BuildConfig()
	if err != nil {
		log.Print(err)
		return subcommands.ExitUsageError
	}
	for _, p := range []string{c.p1, c.p2} {
		if _, err := opt.NewAI(p, 0); err != nil {
			log.Print(err)
			return subcommands.ExitUsageError
		}
	}
	if c.seed == 0 {
		c.seed = time.Now().Unix()
	}

	cfg := &Config{
		Games:   c.games,
		Verbose: c.verbose,
		Rules:   rules,
		P1:      c.p1,
		P2:      c.p2,
		Swap:    c.swap,
		Threads: c.threads,
		Seed:    c.seed,
		Cutoff:  c.cutoff,
		Limit:   c.limit,
	}
	start := time.Now()
	st, err := Simulate(ctx, cfg)
	if err != nil {
		log.Printf("selfplay: %v", err)
		return subcommands.ExitFailure
	}

	if c.out != "" {
		for i := range st.Games {
			if err := writeGame(c.out, cfg, &st.Games[i]); err != nil {
				log.Printf("write game: %v", err)
			}
		}
	}
	if c.db != "" {
		if err := logGames(c.db, cfg, &st, start); err != nil {
			log.Printf("log games: db=%s err=%v", c.db, err)
			return subcommands.ExitFailure
		}
	}

	log.Printf("done games=%d seed=%d x=%d o=%d cutoff=%d rule=%s",
		st.Count(), c.seed, st.X, st.O, st.Cutoff, rules.Captures)
	writeSummary(os.Stderr, &st)
	return subcommands.ExitSuccess
}

func writeSummary(w io.Writer, st *Stats) {
	p := message.NewPrinter(language.English)
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	p.Fprintf(tw, "\tX\tO\tsum\n")
	p.Fprintf(tw, "p1\t%d\t%d\t%d\n", st.Players[0].XWins, st.Players[0].OWins, st.Players[0].Wins)
	p.Fprintf(tw, "p2\t%d\t%d\t%d\n", st.Players[1].XWins, st.Players[1].OWins, st.Players[1].Wins)
	p.Fprintf(tw, "sum\t%d\t%d\t%d\n", st.X, st.O, st.X+st.O)
	tw.Flush()
	if st.Count() > 0 {
		p.Fprintf(w, "p1 won %.1f%% of %d games\n",
			100*float64(st.Players[0].Wins)/float64(st.Count()), st.Count())
	}
}

func writeGame(d string, c *Config, r *Result) error {
	if err := os.MkdirAll(d, 0755); err != nil {
		return err
	}
	rec := r.Record(c)
	name := path.Join(d, fmt.Sprintf("%d.txt", r.spec.i))
	return os.WriteFile(name, []byte(rec.Render()), 0644)
}

func logGames(db string, c *Config, st *Stats, start time.Time) error {
	repo, err := logs.Open(db)
	if err != nil {
		return err
	}
	defer repo.Close()
	gs := make([]*logs.Game, 0, len(st.Games))
	for i := range st.Games {
		r := &st.Games[i]
		rec := r.Record(c)
		gs = append(gs, &logs.Game{
			Timestamp: start,
			PlayerX:   rec.FindTag("PlayerX"),
			PlayerO:   rec.FindTag("PlayerO"),
			Rule:      c.Rules.Captures.String(),
			Winner:    r.Winner.String(),
			Plies:     len(r.Moves),
			Record:    rec.Render(),
		})
	}
	return repo.InsertGames(gs)
}
