package market

import (
	"testing"
	"time"
)

func TestQuoteAt_DeterministicWithinMinute(t *testing.T) {
	base := time.Date(2025, 3, 14, 15, 9, 2, 0, time.UTC)
	q1, ok := QuoteAt("AAPL", base)
	if !ok { t.Fatal("AAPL should be in the catalog") }
	q2, ok := QuoteAt("AAPL", base.Add(41*time.Second))
	if !ok { t.Fatal("AAPL should be in the catalog") }
	if q1 != q2 {
		t.Fatalf("same minute bucket should give identical quotes:\n%+v\n%+v", q1, q2)
	}
}

func TestQuoteAt_VariesAcrossBuckets(t *testing.T) {
	base := time.Date(2025, 3, 14, 15, 9, 0, 0, time.UTC)
	q1, _ := QuoteAt("MSFT", base)
	changed := false
	// A single bucket step may land on a near-identical phase; any of the
	// next few must differ.
	for i := 1; i <= 5 && !changed; i++ {
		q2, _ := QuoteAt("MSFT", base.Add(time.Duration(i)*time.Minute))
		changed = q1 != q2
	}
	if !changed { t.Fatal("quotes never changed across minute buckets") }
}

func TestQuoteAt_DerivedFields(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 30, 0, 0, time.UTC)
	q, ok := QuoteAt("JPM", now)
	if !ok { t.Fatal("JPM should be in the catalog") }

	if got := round2(q.Price - q.PreviousClose); got != q.Change {
		t.Errorf("change = %v, want price-prev = %v", q.Change, got)
	}
	if q.DayLow > q.Price || q.DayHigh < q.Price {
		t.Errorf("price %v outside day range [%v, %v]", q.Price, q.DayLow, q.DayHigh)
	}
	if q.Week52Low >= q.Week52High {
		t.Errorf("52-week range inverted: [%v, %v]", q.Week52Low, q.Week52High)
	}
	if q.Volume <= 0 {
		t.Errorf("volume = %d, want positive", q.Volume)
	}
	if q.PERatio != round2(q.Price/q.EPS) {
		t.Errorf("P/E = %v, want price/eps = %v", q.PERatio, round2(q.Price/q.EPS))
	}
}

func TestQuoteAt_UnknownSymbol(t *testing.T) {
	if _, ok := QuoteAt("NOPE", time.Now()); ok {
		t.Fatal("unknown symbol should not resolve")
	}
}

func TestBoard_QuotesEmptyReturnsCatalogOrder(t *testing.T) {
	b := &Board{Now: func() time.Time { return time.Date(2025, 1, 6, 9, 30, 0, 0, time.UTC) }}
	qs := b.Quotes(nil)
	if len(qs) != len(catalog) {
		t.Fatalf("got %d quotes, want %d", len(qs), len(catalog))
	}
	for i, l := range catalog {
		if qs[i].Symbol != l.Symbol {
			t.Fatalf("position %d: got %s, want %s", i, qs[i].Symbol, l.Symbol)
		}
	}
}

func TestBoard_QuotesSkipsUnknown(t *testing.T) {
	b := NewBoard()
	qs := b.Quotes([]string{"AAPL", "NOPE", "KO"})
	if len(qs) != 2 || qs[0].Symbol != "AAPL" || qs[1].Symbol != "KO" {
		t.Fatalf("unexpected quotes: %+v", qs)
	}
}

func TestIndicesAt_OrderAndDeterminism(t *testing.T) {
	now := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	first := IndicesAt(now)
	if len(first) != len(indexBases) {
		t.Fatalf("got %d indices, want %d", len(first), len(indexBases))
	}
	for i, b := range indexBases {
		if first[i].Name != b.Name {
			t.Fatalf("position %d: got %s, want %s", i, first[i].Name, b.Name)
		}
	}
	second := IndicesAt(now.Add(30 * time.Second))
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("index %s changed within a minute bucket", first[i].Name)
		}
	}
}
