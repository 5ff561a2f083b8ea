package engine

import (
	"fmt"
	"sort"

	"SignalScout/internal/indicator"
	"SignalScout/internal/model"
)

// Params holds the signal engine configuration.
type Params struct {
	SMAShort  int
	SMALong   int
	RSIPeriod int
	RSIBuy    float64
	RSISell   float64
}

// Validate rejects out-of-range parameters. The engine never clamps;
// callers that want clamping must do it before calling Evaluate.
func (p Params) Validate() error {
	if p.SMAShort < 2 {
		return fmt.Errorf("%w: sma_short %d must be >= 2", indicator.ErrInvalidInput, p.SMAShort)
	}
	if p.SMALong <= p.SMAShort {
		return fmt.Errorf("%w: sma_long %d must be greater than sma_short %d", indicator.ErrInvalidInput, p.SMALong, p.SMAShort)
	}
	if p.RSIPeriod < 2 {
		return fmt.Errorf("%w: rsi_period %d must be >= 2", indicator.ErrInvalidInput, p.RSIPeriod)
	}
	return nil
}

// MinBars returns the number of bars a symbol needs for a full
// evaluation. Symbols with fewer bars decide HOLD instead of failing.
func (p Params) MinBars() int {
	n := p.SMALong
	if p.RSIPeriod > n {
		n = p.RSIPeriod
	}
	return n + 1
}

// Partition splits a multi-symbol table into per-symbol series sorted
// by ascending date, ordered by each symbol's first appearance in the
// table. The input is only read.
func Partition(table []model.Bar) [][]model.Bar {
	var order []string
	bySymbol := make(map[string][]model.Bar)
	for _, b := range table {
		if _, ok := bySymbol[b.Symbol]; !ok {
			order = append(order, b.Symbol)
		}
		bySymbol[b.Symbol] = append(bySymbol[b.Symbol], b)
	}

	out := make([][]model.Bar, 0, len(order))
	for _, sym := range order {
		bars := bySymbol[sym]
		sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
		out = append(out, bars)
	}
	return out
}

// Evaluate produces one Decision per distinct symbol in the table, in
// the order symbols first appear. A symbol with insufficient history
// decides HOLD rather than aborting the batch; malformed input or
// parameters fail the whole call with ErrInvalidInput.
func Evaluate(table []model.Bar, p Params) ([]model.Decision, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	series := Partition(table)
	decisions := make([]model.Decision, 0, len(series))
	for _, bars := range series {
		sym := bars[0].Symbol
		if len(bars) < p.MinBars() {
			decisions = append(decisions, model.Decision{
				Symbol:    sym,
				Final:     model.Hold,
				SMASignal: model.Hold,
				RSISignal: model.Hold,
				Rationale: "insufficient data",
			})
			continue
		}

		frame, err := indicator.Compute(bars, p.SMAShort, p.SMALong, p.RSIPeriod)
		if err != nil {
			return nil, fmt.Errorf("compute indicators for %s: %w", sym, err)
		}
		decisions = append(decisions, decide(sym, frame, p))
	}
	return decisions, nil
}

func decide(sym string, f *indicator.Frame, p Params) model.Decision {
	last := len(f.Bars) - 1
	prev := last - 1

	smaSig := smaCrossSignal(f.SMAShort[prev], f.SMALong[prev], f.SMAShort[last], f.SMALong[last])
	lastRSI := f.RSI[last]
	rsiSig := rsiThresholdSignal(lastRSI, p.RSIBuy, p.RSISell)

	return model.Decision{
		Symbol:    sym,
		Final:     reduce(smaSig, rsiSig),
		SMASignal: smaSig,
		RSISignal: rsiSig,
		RSI:       lastRSI,
		Rationale: fmt.Sprintf("SMA:%s RSI:%s (rsi=%.1f)", smaSig, rsiSig, lastRSI),
	}
}

// smaCrossSignal fires only when the short average crossed the long one
// within the last step. Undefined averages never fire.
func smaCrossSignal(prevShort, prevLong, lastShort, lastLong indicator.Value) model.Action {
	if !prevShort.Valid || !prevLong.Valid || !lastShort.Valid || !lastLong.Valid {
		return model.Hold
	}
	if lastShort.Float64 > lastLong.Float64 && prevShort.Float64 <= prevLong.Float64 {
		return model.Buy
	}
	if lastShort.Float64 < lastLong.Float64 && prevShort.Float64 >= prevLong.Float64 {
		return model.Sell
	}
	return model.Hold
}

// rsiThresholdSignal checks the buy bound strictly before the sell
// bound, both inclusive. Thresholds may overlap; the buy check wins.
func rsiThresholdSignal(rsi, buy, sell float64) model.Action {
	if rsi <= buy {
		return model.Buy
	}
	if rsi >= sell {
		return model.Sell
	}
	return model.Hold
}

// reduce combines the sub-signals: BUY needs at least one BUY and no
// SELL, SELL needs at least one SELL and no BUY. A BUY/SELL conflict
// therefore falls through to HOLD.
func reduce(a, b model.Action) model.Action {
	anyBuy := a == model.Buy || b == model.Buy
	anySell := a == model.Sell || b == model.Sell
	switch {
	case anyBuy && !anySell:
		return model.Buy
	case anySell && !anyBuy:
		return model.Sell
	default:
		return model.Hold
	}
}
