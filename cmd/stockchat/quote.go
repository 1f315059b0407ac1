package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/subcommands"

	"stocktracker/internal/httpx"
	"stocktracker/internal/market"
)

// quoteCmd prints current quotes for the given symbols.
type quoteCmd struct {
	server string
}

func (*quoteCmd) Name() string     { return "quote" }
func (*quoteCmd) Synopsis() string { return "Fetch current quotes for one or more symbols." }

func (*quoteCmd) Usage() string {
	return `quote [-server URL] [SYMBOL ...]:
  Fetch and print current quotes. Without symbols, prints the whole catalog.
`
}

func (c *quoteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.server, "server", defaultServer, "stocktracker server base URL")
}

func (c *quoteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	u := strings.TrimRight(c.server, "/") + "/api/quotes"
	if f.NArg() > 0 {
		u += "?symbols=" + url.QueryEscape(strings.Join(f.Args(), ","))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "quote:", err)
		return subcommands.ExitFailure
	}
	resp, err := httpx.New(10 * time.Second).Do(ctx, req)
	if err != nil {
		fmt.Fprintln(os.Stderr, "quote:", err)
		return subcommands.ExitFailure
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(os.Stderr, "quote: server returned %s\n", resp.Status)
		return subcommands.ExitFailure
	}

	var body struct {
		Quotes []market.Quote `json:"quotes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		fmt.Fprintln(os.Stderr, "quote: decode:", err)
		return subcommands.ExitFailure
	}
	for _, q := range body.Quotes {
		fmt.Printf("%-6s %10.2f  %+7.2f (%+.2f%%)  vol %.1fM  P/E %.2f\n",
			q.Symbol, q.Price, q.Change, q.ChangePercent, float64(q.Volume)/1e6, q.PERatio)
	}
	return subcommands.ExitSuccess
}
