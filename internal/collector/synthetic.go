package collector

import (
	"context"
	"math"
	"math/rand"
	"time"

	"SignalScout/internal/model"
)

// SyntheticFetcher generates a reproducible random-walk price history
// for development and testing. It owns an explicit rand source seeded
// by the caller, so equal seeds produce identical tables and no
// process-wide random state is touched.
type SyntheticFetcher struct {
	rng        *rand.Rand
	basePrices map[string]float64
}

// NewSyntheticFetcher creates a generator from the given seed.
func NewSyntheticFetcher(seed int64) *SyntheticFetcher {
	return &SyntheticFetcher{
		rng:        rand.New(rand.NewSource(seed)),
		basePrices: make(map[string]float64),
	}
}

func (f *SyntheticFetcher) Name() string { return "synthetic" }

// FetchDailyBars generates weekday bars for the trailing days window.
func (f *SyntheticFetcher) FetchDailyBars(_ context.Context, symbol string, days int) ([]model.Bar, error) {
	price, ok := f.basePrices[symbol]
	if !ok {
		price = 50 + f.rng.Float64()*450
	}

	start := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -days)
	bars := make([]model.Bar, 0, days)
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i)
		if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}

		dailyReturn := f.rng.NormFloat64()*0.02 + 0.0005
		open := price * (1 + dailyReturn)
		high := open * (1 + math.Abs(f.rng.NormFloat64())*0.01)
		low := open * (1 - math.Abs(f.rng.NormFloat64())*0.01)
		close := low + f.rng.Float64()*(high-low)
		price = close

		bars = append(bars, model.Bar{
			Date:   date,
			Symbol: symbol,
			Open:   open,
			High:   high,
			Low:    low,
			Close:  close,
			Volume: 1_000_000 + f.rng.Int63n(99_000_000),
		})
	}
	f.basePrices[symbol] = price
	return bars, nil
}
