package serve

import (
	"context"
	"flag"
	"log"

	"github.com/google/subcommands"
	"github.com/nelhage/checkers/checkers"
	"github.com/nelhage/checkers/logs"
	"github.com/nelhage/checkers/server"
)

type Command struct {
	addr string
	db   string
	rule string
}

func (*Command) Name() string     { return "serve" }
func (*Command) Synopsis() string { return "Serve checkers games over HTTP and websockets" }
func (*Command) Usage() string {
	return `serve [flags]

Serve games over HTTP. Flags override CHECKERS_ADDR, CHECKERS_DB and
CHECKERS_RULE from the environment.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.addr, "addr", "", "listen address")
	flags.StringVar(&c.db, "db", "", "log finished games to this sqlite database")
	flags.StringVar(&c.rule, "rule", "", "capture rule: follow-up or single")
}

func (c *Command) config() (server.Config, checkers.Config, error) {
	cfg, err := server.LoadConfig()
	if err != nil {
		return cfg, checkers.Config{}, err
	}
	if c.addr != "" {
		cfg.Addr = c.addr
	}
	if c.db != "" {
		cfg.DB = c.db
	}
	if c.rule != "" {
		cfg.Rule = c.rule
	}
	rule, err := checkers.ParseCaptureRule(cfg.Rule)
	if err != nil {
		return cfg, checkers.Config{}, err
	}
	return cfg, checkers.Config{Captures: rule}, nil
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, rules, err := c.config()
	if err != nil {
		log.Printf("config: %v", err)
		return subcommands.ExitUsageError
	}
	var repo *logs.Repository
	if cfg.DB != "" {
		repo, err = logs.Open(cfg.DB)
		if err != nil {
			log.Printf("open db: path=%s err=%v", cfg.DB, err)
			return subcommands.ExitFailure
		}
		defer repo.Close()
	}

	m := server.NewManager(rules, repo)
	m.Retain = cfg.Retain
	app := server.New(m)
	go func() {
		<-ctx.Done()
		app.Shutdown()
	}()
	log.Printf("listening addr=%s rule=%s db=%q", cfg.Addr, rules.Captures, cfg.DB)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Printf("listen: %v", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
