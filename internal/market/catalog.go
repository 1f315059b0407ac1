package market

// listing is the static identity of a tracked symbol. Everything dynamic in a
// Quote is derived from BasePrice and the minute bucket at read time.
type listing struct {
	Symbol        string
	Name          string
	Sector        string
	BasePrice     float64
	SharesBillion float64 // shares outstanding, in billions
	BaseEPS       float64
	DividendYield float64 // percent
}

// catalog is the full tracked-symbol universe, in display order.
var catalog = []listing{
	{"AAPL", "Apple Inc.", "Technology", 178.50, 15.40, 6.42, 0.55},
	{"MSFT", "Microsoft Corp.", "Technology", 415.20, 7.43, 11.80, 0.72},
	{"GOOGL", "Alphabet Inc.", "Technology", 162.30, 12.30, 6.97, 0.49},
	{"AMZN", "Amazon.com Inc.", "Consumer Cyclical", 185.60, 10.50, 4.18, 0.00},
	{"NVDA", "NVIDIA Corp.", "Technology", 875.40, 2.46, 24.70, 0.03},
	{"META", "Meta Platforms Inc.", "Technology", 505.75, 2.53, 19.85, 0.40},
	{"TSLA", "Tesla Inc.", "Consumer Cyclical", 248.90, 3.19, 3.91, 0.00},
	{"JPM", "JPMorgan Chase & Co.", "Financial Services", 198.45, 2.87, 16.50, 2.30},
	{"V", "Visa Inc.", "Financial Services", 279.80, 2.03, 9.73, 0.75},
	{"JNJ", "Johnson & Johnson", "Healthcare", 152.30, 2.41, 9.95, 3.10},
	{"WMT", "Walmart Inc.", "Consumer Defensive", 68.75, 8.05, 2.42, 1.20},
	{"PG", "Procter & Gamble Co.", "Consumer Defensive", 166.20, 2.36, 6.43, 2.40},
	{"UNH", "UnitedHealth Group Inc.", "Healthcare", 495.60, 0.92, 27.60, 1.50},
	{"HD", "Home Depot Inc.", "Consumer Cyclical", 345.90, 0.99, 15.11, 2.50},
	{"MA", "Mastercard Inc.", "Financial Services", 462.35, 0.93, 13.10, 0.55},
	{"DIS", "Walt Disney Co.", "Communication Services", 96.40, 1.82, 3.76, 0.90},
	{"BAC", "Bank of America Corp.", "Financial Services", 39.85, 7.80, 3.21, 2.60},
	{"XOM", "Exxon Mobil Corp.", "Energy", 114.70, 3.98, 8.89, 3.30},
	{"KO", "Coca-Cola Co.", "Consumer Defensive", 62.15, 4.31, 2.47, 3.10},
	{"NFLX", "Netflix Inc.", "Communication Services", 628.80, 0.43, 17.67, 0.00},
}

// indexBase is the static identity of a market index.
type indexBase struct {
	Name      string
	BaseValue float64
}

var indexBases = []indexBase{
	{"S&P 500", 5280.40},
	{"Dow Jones", 39150.30},
	{"NASDAQ", 16780.60},
	{"Russell 2000", 2085.75},
}

// Symbols returns every tracked symbol in catalog order.
func Symbols() []string {
	out := make([]string, 0, len(catalog))
	for _, l := range catalog {
		out = append(out, l.Symbol)
	}
	return out
}
