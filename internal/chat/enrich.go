package chat

import (
	"fmt"
	"strings"

	"stocktracker/internal/market"
)

// enrichmentContext builds the market-data block appended to the system
// instruction. Any catalog symbol appearing as a case-insensitive substring
// of the message gets a quote line; the index summary is always present.
// Substring matching is intentionally naive: a message containing a bare "V"
// matches the symbol V.
func enrichmentContext(board *market.Board, message string) string {
	var b strings.Builder
	b.WriteString("Current market data:\n")

	upper := strings.ToUpper(message)
	for _, sym := range market.Symbols() {
		if !strings.Contains(upper, sym) {
			continue
		}
		q, ok := board.Lookup(sym)
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "%s: $%.2f (%+.2f%%), volume %.1fM, P/E %.2f, market cap $%.1fB\n",
			q.Symbol, q.Price, q.ChangePercent, float64(q.Volume)/1e6, q.PERatio, q.MarketCap/1e9)
	}

	parts := make([]string, 0, 4)
	for _, idx := range board.Indices() {
		parts = append(parts, fmt.Sprintf("%s %.2f (%+.2f%%)", idx.Name, idx.Value, idx.ChangePercent))
	}
	b.WriteString("Market indices: " + strings.Join(parts, ", "))
	return b.String()
}
