package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"SignalScout/internal/collector"
	"SignalScout/internal/engine"
	"SignalScout/internal/exporter"
	"SignalScout/internal/model"
	"SignalScout/internal/recorder"
)

type captureRecorder struct {
	snaps []*recorder.RunSnapshot
}

func (c *captureRecorder) RecordRun(s *recorder.RunSnapshot) error {
	c.snaps = append(c.snaps, s)
	return nil
}

func (c *captureRecorder) Close() error { return nil }

func mkBars(symbol string, closes []float64) []model.Bar {
	base := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	bars := make([]model.Bar, len(closes))
	for i, c := range closes {
		bars[i] = model.Bar{Date: base.AddDate(0, 0, i), Symbol: symbol, Open: c, High: c, Low: c, Close: c, Volume: 100}
	}
	return bars
}

func TestRunPipeline(t *testing.T) {
	fetcher := &collector.MockFetcher{Bars: map[string][]model.Bar{
		"AAPL": mkBars("AAPL", []float64{10, 9, 8, 9, 12}),
		"MSFT": mkBars("MSFT", []float64{10, 11}),
	}}
	col := collector.NewCollector(fetcher, []string{"AAPL", "MSFT"}, 90)
	rec := &captureRecorder{}
	outDir := t.TempDir()
	exp := exporter.NewExporter(outDir, "demo-project", "financial_data")
	params := engine.Params{SMAShort: 2, SMALong: 3, RSIPeriod: 2, RSIBuy: 30, RSISell: 70}

	s := NewScheduler(context.Background(), col, params, rec, exp)
	if err := s.runPipeline(); err != nil {
		t.Fatalf("run pipeline: %v", err)
	}

	if len(rec.snaps) != 1 {
		t.Fatalf("expected 1 snapshot, got %d", len(rec.snaps))
	}
	snap := rec.snaps[0]

	// Both symbols get a decision; only AAPL has enough bars for a frame.
	if len(snap.Decisions) != 2 {
		t.Fatalf("expected 2 decisions, got %d", len(snap.Decisions))
	}
	if snap.Decisions[0].Symbol != "AAPL" || snap.Decisions[1].Symbol != "MSFT" {
		t.Errorf("unexpected decision order: %v", snap.Decisions)
	}
	if snap.Decisions[1].Final != model.Hold || snap.Decisions[1].Rationale != "insufficient data" {
		t.Errorf("short symbol should hold: %+v", snap.Decisions[1])
	}
	if len(snap.Frames) != 1 || snap.Frames[0].Symbol() != "AAPL" {
		t.Errorf("expected a single AAPL frame, got %d frames", len(snap.Frames))
	}

	for _, name := range []string{"stock_prices.csv", "load_stock_prices.sql"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("expected export %s: %v", name, err)
		}
	}
}

func TestRegister_BadCron(t *testing.T) {
	s := NewScheduler(context.Background(), nil, engine.Params{}, recorder.NewNoopRecorder(), nil)
	err := s.Register("not a cron expr")
	if err == nil {
		t.Fatal("expected error for invalid cron expression")
	}
	if !strings.Contains(err.Error(), "register daily run") {
		t.Errorf("unexpected error: %v", err)
	}
}
