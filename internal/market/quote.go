package market

import (
	"hash/fnv"
	"math"
	"time"
)

// Quote is a computed snapshot of a symbol's simulated market data. It has no
// lifecycle of its own: every read recomputes it from the symbol identity and
// the wall-clock minute bucket.
type Quote struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Sector        string  `json:"sector"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	PreviousClose float64 `json:"previousClose"`
	DayLow        float64 `json:"dayLow"`
	DayHigh       float64 `json:"dayHigh"`
	Volume        int64   `json:"volume"`
	MarketCap     float64 `json:"marketCap"`
	PERatio       float64 `json:"peRatio"`
	EPS           float64 `json:"eps"`
	DividendYield float64 `json:"dividendYield"`
	Week52Low     float64 `json:"week52Low"`
	Week52High    float64 `json:"week52High"`
}

// seed folds a symbol into a stable phase offset for the jitter waves.
func seed(symbol string) float64 {
	h := fnv.New32a()
	h.Write([]byte(symbol))
	return float64(h.Sum32()%1000) / 1000.0 * 2 * math.Pi
}

// jitter is the time-seeded variation applied to a base price: two sine
// waves of different periods, bounded to roughly +/-2%.
func jitter(symbol string, t time.Time) float64 {
	m := float64(t.Unix() / 60)
	s := seed(symbol)
	return 0.015*math.Sin(m/7.0+s) + 0.005*math.Sin(m/3.0+2.1*s)
}

func round2(x float64) float64 { return math.Round(x*100) / 100 }

// QuoteAt computes the quote for symbol at time t. The second return is false
// when the symbol is not in the catalog. Deterministic: any two calls within
// the same minute bucket yield identical quotes.
func QuoteAt(symbol string, t time.Time) (Quote, bool) {
	for _, l := range catalog {
		if l.Symbol == symbol {
			return quoteFor(l, t), true
		}
	}
	return Quote{}, false
}

func quoteFor(l listing, t time.Time) Quote {
	v := jitter(l.Symbol, t)
	price := round2(l.BasePrice * (1 + v))
	prev := round2(l.BasePrice)
	change := round2(price - prev)
	changePct := round2(v * 100)

	low := round2(math.Min(price, prev) * 0.99)
	high := round2(math.Max(price, prev) * 1.01)

	// Volume swings on its own wave so it does not track price lockstep.
	vw := math.Sin(float64(t.Unix()/60)/11.0 + 3.7*seed(l.Symbol))
	volume := int64(l.SharesBillion * 1e9 * 0.004 * (1 + 0.4*vw))

	shares := l.SharesBillion * 1e9
	return Quote{
		Symbol:        l.Symbol,
		Name:          l.Name,
		Sector:        l.Sector,
		Price:         price,
		Change:        change,
		ChangePercent: changePct,
		PreviousClose: prev,
		DayLow:        low,
		DayHigh:       high,
		Volume:        volume,
		MarketCap:     math.Round(price * shares),
		PERatio:       round2(price / l.BaseEPS),
		EPS:           l.BaseEPS,
		DividendYield: l.DividendYield,
		Week52Low:     round2(l.BasePrice * 0.72),
		Week52High:    round2(l.BasePrice * 1.28),
	}
}
