// Command stockchat is a terminal client for the stocktracker server: it can
// ask the analyst a question, fetch quotes, or follow the live quote feed.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
)

const defaultServer = "http://localhost:8080"

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(&chatCmd{}, "")
	subcommands.Register(&quoteCmd{}, "")
	subcommands.Register(&watchCmd{}, "")

	flag.Parse()
	os.Exit(int(subcommands.Execute(context.Background())))
}
