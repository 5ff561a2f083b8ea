package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"SignalScout/internal/indicator"
	"SignalScout/internal/model"
)

func testFrame(t *testing.T) *indicator.Frame {
	t.Helper()
	base := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	closes := []float64{10, 9, 8, 9, 12}
	bars := make([]model.Bar, len(closes))
	for i, c := range closes {
		bars[i] = model.Bar{Date: base.AddDate(0, 0, i), Symbol: "AAPL", Open: c, High: c, Low: c, Close: c, Volume: 100}
	}
	f, err := indicator.Compute(bars, 2, 3, 2)
	if err != nil {
		t.Fatalf("compute frame: %v", err)
	}
	return f
}

func TestSQLiteRecorder_RecordRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	rec, err := NewSQLiteRecorder(path)
	if err != nil {
		t.Fatalf("open recorder: %v", err)
	}
	defer rec.Close()

	frame := testFrame(t)
	snap := &RunSnapshot{
		RunAt:  time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
		Frames: []*indicator.Frame{frame},
		Decisions: []model.Decision{{
			Symbol: "AAPL", Final: model.Buy, SMASignal: model.Buy,
			RSISignal: model.Hold, RSI: 87.5, Rationale: "SMA:BUY RSI:HOLD (rsi=87.5)",
		}},
	}
	if err := rec.RecordRun(snap); err != nil {
		t.Fatalf("record run: %v", err)
	}

	var barCount int
	if err := rec.db.QueryRow("SELECT COUNT(*) FROM price_bars").Scan(&barCount); err != nil {
		t.Fatalf("count bars: %v", err)
	}
	if barCount != len(frame.Bars) {
		t.Errorf("expected %d bar rows, got %d", len(frame.Bars), barCount)
	}

	// The first bar has no defined SMA; its column must be NULL.
	var nullShort int
	if err := rec.db.QueryRow("SELECT COUNT(*) FROM price_bars WHERE sma_short IS NULL").Scan(&nullShort); err != nil {
		t.Fatalf("count null sma: %v", err)
	}
	if nullShort != 1 {
		t.Errorf("expected 1 NULL sma_short row, got %d", nullShort)
	}

	var final string
	if err := rec.db.QueryRow("SELECT final_signal FROM signal_decisions WHERE symbol = 'AAPL'").Scan(&final); err != nil {
		t.Fatalf("read decision: %v", err)
	}
	if final != "BUY" {
		t.Errorf("expected BUY, got %q", final)
	}
}
