package standings

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/google/subcommands"
	"github.com/nelhage/checkers/logs"
)

type Command struct {
	db     string
	recent int
}

func (*Command) Name() string     { return "standings" }
func (*Command) Synopsis() string { return "Summarize logged games" }
func (*Command) Usage() string {
	return `standings -db FILE

Print each player's record and the most recent games from a game log.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.db, "db", "", "sqlite game log")
	flags.IntVar(&c.recent, "recent", 10, "number of recent games to list")
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.db == "" {
		flag.Usage()
		return subcommands.ExitUsageError
	}
	repo, err := logs.Open(c.db)
	if err != nil {
		log.Printf("open db: path=%s err=%v", c.db, err)
		return subcommands.ExitFailure
	}
	defer repo.Close()

	st, err := repo.Standings()
	if err != nil {
		log.Printf("standings: %v", err)
		return subcommands.ExitFailure
	}
	games, err := repo.Games(c.recent)
	if err != nil {
		log.Printf("games: %v", err)
		return subcommands.ExitFailure
	}
	writeStandings(os.Stdout, st)
	fmt.Println()
	writeGames(os.Stdout, games)
	return subcommands.ExitSuccess
}

type record struct {
	win, lose, none int
}

func writeStandings(w io.Writer, st []logs.Standing) {
	byPlayer := make(map[string]*record)
	var players []string
	for _, s := range st {
		r, ok := byPlayer[s.Player]
		if !ok {
			r = &record{}
			byPlayer[s.Player] = r
			players = append(players, s.Player)
		}
		switch s.Result {
		case "win":
			r.win += s.Games
		case "lose":
			r.lose += s.Games
		default:
			r.none += s.Games
		}
	}
	sort.SliceStable(players, func(i, j int) bool {
		return byPlayer[players[i]].win > byPlayer[players[j]].win
	})

	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "player\twon\tlost\tunfinished\n")
	for _, p := range players {
		r := byPlayer[p]
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", p, r.win, r.lose, r.none)
	}
	tw.Flush()
}

func writeGames(w io.Writer, games []logs.Game) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "id\ttime\tx\to\trule\twinner\tplies\n")
	for _, g := range games {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%d\n",
			g.ID, g.Timestamp.Format("2006-01-02 15:04"),
			g.PlayerX, g.PlayerO, g.Rule, g.Winner, g.Plies)
	}
	tw.Flush()
}
