package market

import "time"

// Board is the read surface for simulated market data. The clock is
// injectable so tests can pin the minute bucket.
type Board struct {
	Now func() time.Time
}

func NewBoard() *Board {
	return &Board{Now: time.Now}
}

// Lookup returns the current quote for symbol, false if unknown.
func (b *Board) Lookup(symbol string) (Quote, bool) {
	return QuoteAt(symbol, b.Now())
}

// Quotes returns current quotes for the requested symbols, skipping unknown
// ones. An empty request returns the whole catalog in catalog order.
func (b *Board) Quotes(symbols []string) []Quote {
	now := b.Now()
	if len(symbols) == 0 {
		out := make([]Quote, 0, len(catalog))
		for _, l := range catalog {
			out = append(out, quoteFor(l, now))
		}
		return out
	}
	out := make([]Quote, 0, len(symbols))
	for _, s := range symbols {
		if q, ok := QuoteAt(s, now); ok {
			out = append(out, q)
		}
	}
	return out
}

// Indices returns current index snapshots in display order.
func (b *Board) Indices() []Index {
	return IndicesAt(b.Now())
}
