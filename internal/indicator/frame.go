package indicator

import (
	"errors"
	"fmt"

	"SignalScout/internal/model"
)

// ErrInvalidInput reports a malformed series or out-of-range parameter.
var ErrInvalidInput = errors.New("invalid input")

// Frame is a single-symbol price series augmented with derived
// indicator columns. All columns have the same length as Bars. A Frame
// is freshly allocated on every Compute call and never mutated after.
type Frame struct {
	Bars     []model.Bar
	SMAShort []Value
	SMALong  []Value
	RSI      []float64
}

// Symbol returns the symbol the frame was computed for.
func (f *Frame) Symbol() string {
	if len(f.Bars) == 0 {
		return ""
	}
	return f.Bars[0].Symbol
}

// Compute builds a Frame from a date-ascending, duplicate-free series
// for one symbol. The input is only read.
func Compute(bars []model.Bar, smaShort, smaLong, rsiPeriod int) (*Frame, error) {
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: series is empty", ErrInvalidInput)
	}
	if smaShort <= 0 {
		return nil, fmt.Errorf("%w: sma_short window %d must be positive", ErrInvalidInput, smaShort)
	}
	if smaLong <= 0 {
		return nil, fmt.Errorf("%w: sma_long window %d must be positive", ErrInvalidInput, smaLong)
	}
	if rsiPeriod <= 0 {
		return nil, fmt.Errorf("%w: rsi_period %d must be positive", ErrInvalidInput, rsiPeriod)
	}
	for i := 1; i < len(bars); i++ {
		if !bars[i].Date.After(bars[i-1].Date) {
			return nil, fmt.Errorf("%w: series not sorted by ascending date at index %d", ErrInvalidInput, i)
		}
	}

	closes := extractCloses(bars)
	return &Frame{
		Bars:     bars,
		SMAShort: SMA(closes, smaShort),
		SMALong:  SMA(closes, smaLong),
		RSI:      RSI(closes, rsiPeriod),
	}, nil
}

func extractCloses(bars []model.Bar) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
