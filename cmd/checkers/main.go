package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
	"github.com/nelhage/checkers/cmd/internal/importrec"
	"github.com/nelhage/checkers/cmd/internal/play"
	"github.com/nelhage/checkers/cmd/internal/replay"
	"github.com/nelhage/checkers/cmd/internal/selfplay"
	"github.com/nelhage/checkers/cmd/internal/serve"
	"github.com/nelhage/checkers/cmd/internal/sshplay"
	"github.com/nelhage/checkers/cmd/internal/standings"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")

	subcommands.Register(&play.Command{}, "")
	subcommands.Register(&selfplay.Command{}, "")
	subcommands.Register(&replay.Command{}, "")
	subcommands.Register(&serve.Command{}, "")
	subcommands.Register(&sshplay.Command{}, "")
	subcommands.Register(&standings.Command{}, "logs")
	subcommands.Register(&importrec.Command{}, "logs")

	flag.Parse()
	ctx := context.Background()
	os.Exit(int(subcommands.Execute(ctx)))
}
