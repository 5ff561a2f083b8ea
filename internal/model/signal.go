package model

// Action is a trade decision value.
type Action string

const (
	Buy  Action = "BUY"
	Sell Action = "SELL"
	Hold Action = "HOLD"
)

// Decision is the per-symbol output of the signal engine. It is created
// once per run and never modified afterwards.
type Decision struct {
	Symbol    string
	Final     Action
	SMASignal Action
	RSISignal Action
	RSI       float64
	Rationale string
}
