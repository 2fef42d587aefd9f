package sshplay

import (
	"context"
	"errors"
	"flag"
	"log"
	"time"

	"github.com/gliderlabs/ssh"
	"github.com/google/subcommands"
	"github.com/nelhage/checkers/cli"
	"github.com/nelhage/checkers/cmd/internal/opt"
	"github.com/nelhage/checkers/logs"
)

type Command struct {
	addr     string
	hostKey  string
	rules    opt.Rules
	opponent string
	limit    time.Duration
	idle     time.Duration
	db       string
	unicode  bool
}

func (*Command) Name() string     { return "ssh" }
func (*Command) Synopsis() string { return "Serve games against the computer over ssh" }
func (*Command) Usage() string {
	return `ssh [flags]

Accept ssh connections and play each one a game against the computer.
The remote player has X.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.addr, "addr", ":2222", "listen address")
	flags.StringVar(&c.hostKey, "host-key", "", "host key file (default: generate one)")
	c.rules.AddFlags(flags)
	flags.StringVar(&c.opponent, "opponent", "capture", "computer player: rand or capture")
	flags.DurationVar(&c.limit, "limit", 10*time.Second, "ai time limit")
	flags.DurationVar(&c.idle, "idle", 10*time.Minute, "disconnect idle sessions after")
	flags.StringVar(&c.db, "db", "", "log finished games to this sqlite database")
	flags.BoolVar(&c.unicode, "unicode", true, "render board with colored utf8 glyphs")
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := c.rules.BuildConfig()
	if err != nil {
		log.Print(err)
		return subcommands.ExitUsageError
	}
	if _, err := opt.NewAI(c.opponent, 0); err != nil {
		log.Printf("-opponent: %v", err)
		return subcommands.ExitUsageError
	}

	h := &handler{
		cfg:      cfg,
		opponent: c.opponent,
		limit:    c.limit,
		glyphs:   &cli.DefaultGlyphs,
		seed:     func() int64 { return time.Now().UnixNano() },
	}
	if c.unicode {
		h.glyphs = &cli.UnicodeGlyphs
	}
	if c.db != "" {
		h.repo, err = logs.Open(c.db)
		if err != nil {
			log.Printf("open db: path=%s err=%v", c.db, err)
			return subcommands.ExitFailure
		}
		defer h.repo.Close()
	}

	srv := &ssh.Server{
		Addr:        c.addr,
		Handler:     h.handle,
		IdleTimeout: c.idle,
	}
	if c.hostKey != "" {
		if err := srv.SetOption(ssh.HostKeyFile(c.hostKey)); err != nil {
			log.Printf("-host-key: %v", err)
			return subcommands.ExitFailure
		}
	}
	go func() {
		<-ctx.Done()
		srv.Close()
	}()

	log.Printf("ssh listening addr=%s rule=%s opponent=%s", c.addr, cfg.Captures, c.opponent)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		log.Printf("listen: %v", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
