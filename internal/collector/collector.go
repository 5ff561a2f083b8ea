package collector

import (
	"context"
	"fmt"
	"log"

	"SignalScout/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Bars map[string][]model.Bar
	Errs map[string]error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ context.Context, symbol string, _ int) ([]model.Bar, error) {
	if err, ok := m.Errs[symbol]; ok {
		return nil, err
	}
	return m.Bars[symbol], nil
}

// Collector gathers a multi-symbol price table from a Fetcher.
type Collector struct {
	Fetcher Fetcher
	Symbols []string
	Days    int
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, symbols []string, days int) *Collector {
	return &Collector{Fetcher: fetcher, Symbols: symbols, Days: days}
}

// Collect fetches daily bars for every configured symbol. A symbol that
// fails to fetch is skipped with a warning so one bad symbol does not
// block results for the others; the call fails only when nothing could
// be fetched at all.
func (c *Collector) Collect(ctx context.Context) ([]model.Bar, error) {
	var table []model.Bar
	for _, sym := range c.Symbols {
		bars, err := c.Fetcher.FetchDailyBars(ctx, sym, c.Days)
		if err != nil {
			log.Printf("[WARN] fetch %s: %v", sym, err)
			continue
		}
		if len(bars) == 0 {
			log.Printf("[WARN] no data returned for %s", sym)
			continue
		}
		table = append(table, bars...)
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("no data fetched for any of %d symbols", len(c.Symbols))
	}
	return table, nil
}
