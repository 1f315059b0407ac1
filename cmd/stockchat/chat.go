package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"stocktracker/internal/chatclient"
)

// chatCmd streams one analyst answer to stdout.
type chatCmd struct {
	server string
}

// Name returns the name of the command.
func (*chatCmd) Name() string { return "chat" }

// Synopsis returns a short one-line synopsis of the command.
func (*chatCmd) Synopsis() string { return "Ask the analyst a question and stream the answer." }

// Usage returns a long-form usage string.
func (*chatCmd) Usage() string {
	return `chat [-server URL] <question>:
  Ask the analyst a question and print the answer as it streams in.
`
}

// SetFlags sets the flags for the command.
func (c *chatCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.server, "server", defaultServer, "stocktracker server base URL")
}

// Execute executes the command.
func (c *chatCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	question := strings.TrimSpace(strings.Join(f.Args(), " "))
	if question == "" {
		fmt.Fprintln(os.Stderr, "chat: a question is required")
		return subcommands.ExitUsageError
	}

	failed := false
	client := chatclient.New(c.server)
	client.Stream(question, nil, chatclient.Callbacks{
		OnChunk: func(text string) { fmt.Print(text) },
		OnDone:  func() { fmt.Println() },
		OnError: func(message string) {
			fmt.Fprintln(os.Stderr, "\nchat failed:", message)
			failed = true
		},
	})
	if failed {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
