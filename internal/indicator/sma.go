package indicator

// Value is a nullable indicator sample. Valid is false where the
// indicator is undefined because fewer than window bars of history
// exist. Keeping "undefined" explicit means crossover comparisons can
// never silently evaluate against a sentinel.
type Value struct {
	Float64 float64
	Valid   bool
}

// SMA computes the trailing simple moving average of closes over the
// given window, inclusive of the current bar. The first window-1
// entries are invalid.
func SMA(closes []float64, window int) []Value {
	out := make([]Value, len(closes))
	var sum float64
	for i, c := range closes {
		sum += c
		if i >= window {
			sum -= closes[i-window]
		}
		if i >= window-1 {
			out[i] = Value{Float64: sum / float64(window), Valid: true}
		}
	}
	return out
}
