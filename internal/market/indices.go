package market

import "time"

// Index is a computed snapshot of a market index.
type Index struct {
	Name          string  `json:"name"`
	Value         float64 `json:"value"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
}

// IndicesAt computes all index snapshots at time t, in display order. Same
// determinism rule as QuoteAt.
func IndicesAt(t time.Time) []Index {
	out := make([]Index, 0, len(indexBases))
	for _, b := range indexBases {
		v := jitter(b.Name, t)
		value := round2(b.BaseValue * (1 + v))
		out = append(out, Index{
			Name:          b.Name,
			Value:         value,
			Change:        round2(value - b.BaseValue),
			ChangePercent: round2(v * 100),
		})
	}
	return out
}
