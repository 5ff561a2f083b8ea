package report

import (
	"fmt"
	"strings"
	"time"

	"SignalScout/internal/indicator"
	"SignalScout/internal/model"
)

// FormatRunReport renders the per-run analytics summary for logging.
func FormatRunReport(runAt time.Time, frames []*indicator.Frame, decisions []model.Decision) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("=== SignalScout run | %s ===\n\n", runAt.Format("2006-01-02 15:04")))

	b.WriteString("Price statistics:\n")
	for _, f := range frames {
		b.WriteString(formatFrameStats(f))
	}

	b.WriteString("\nLatest indicators:\n")
	for _, f := range frames {
		b.WriteString(formatLatestIndicators(f))
	}

	b.WriteString("\nSignal decisions:\n")
	for _, d := range decisions {
		b.WriteString(fmt.Sprintf("  %s: %s | %s\n", d.Symbol, d.Final, d.Rationale))
	}

	return b.String()
}

func formatFrameStats(f *indicator.Frame) string {
	if len(f.Bars) == 0 {
		return ""
	}
	min, max := f.Bars[0].Close, f.Bars[0].Close
	sum := 0.0
	var volume int64
	for _, bar := range f.Bars {
		if bar.Close < min {
			min = bar.Close
		}
		if bar.Close > max {
			max = bar.Close
		}
		sum += bar.Close
		volume += bar.Volume
	}
	avg := sum / float64(len(f.Bars))
	return fmt.Sprintf("  %s: %d bars | close min %.2f avg %.2f max %.2f | volume %d\n",
		f.Symbol(), len(f.Bars), min, avg, max, volume)
}

func formatLatestIndicators(f *indicator.Frame) string {
	n := len(f.Bars)
	if n == 0 {
		return ""
	}
	last := f.Bars[n-1]
	return fmt.Sprintf("  %s (%s): close %.2f | SMA short %s | SMA long %s | RSI %.1f\n",
		f.Symbol(), last.Date.Format("2006-01-02"), last.Close,
		formatValue(f.SMAShort[n-1]), formatValue(f.SMALong[n-1]), f.RSI[n-1])
}

func formatValue(v indicator.Value) string {
	if !v.Valid {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", v.Float64)
}
