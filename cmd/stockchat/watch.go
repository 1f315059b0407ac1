package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/subcommands"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"stocktracker/internal/feed"
)

// watchCmd follows the live quote feed and prints each snapshot.
type watchCmd struct {
	server string
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "Follow the live quote feed for one or more symbols." }

func (*watchCmd) Usage() string {
	return `watch [-server URL] SYMBOL [SYMBOL ...]:
  Subscribe to the quote feed and print ticks until interrupted.
`
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.server, "server", defaultServer, "stocktracker server base URL")
}

func (c *watchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "watch: at least one symbol is required")
		return subcommands.ExitUsageError
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	u := wsURL(c.server) + "/api/stream/quotes"
	dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	conn, _, err := websocket.Dial(dialCtx, u, nil)
	cancel()
	if err != nil {
		fmt.Fprintln(os.Stderr, "watch: dial:", err)
		return subcommands.ExitFailure
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	sub := feed.SubscribeMsg{Action: "subscribe", Symbols: f.Args()}
	if err := wsjson.Write(ctx, conn, sub); err != nil {
		fmt.Fprintln(os.Stderr, "watch: subscribe:", err)
		return subcommands.ExitFailure
	}

	for {
		var snap feed.Snapshot
		if err := wsjson.Read(ctx, conn, &snap); err != nil {
			if ctx.Err() != nil {
				return subcommands.ExitSuccess
			}
			fmt.Fprintln(os.Stderr, "watch: read:", err)
			return subcommands.ExitFailure
		}
		for _, q := range snap.Quotes {
			fmt.Printf("%s  %-6s %10.2f  %+7.2f (%+.2f%%)\n",
				snap.At.Local().Format("15:04:05"), q.Symbol, q.Price, q.Change, q.ChangePercent)
		}
	}
}

// wsURL converts an http(s) base URL to its ws(s) equivalent.
func wsURL(base string) string {
	base = strings.TrimRight(base, "/")
	switch {
	case strings.HasPrefix(base, "https://"):
		return "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		return "ws://" + strings.TrimPrefix(base, "http://")
	}
	return base
}
