package exporter

import (
	"encoding/json"
	"os"
	"strings"
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
		bars[i] = model.Bar{Date: base.AddDate(0, 0, i), Symbol: "AAPL", Open: c, High: c, Low: c, Close: c, Volume: 1000}
	}
	f, err := indicator.Compute(bars, 2, 3, 2)
	if err != nil {
		t.Fatalf("compute frame: %v", err)
	}
	return f
}

func TestWriteCSV(t *testing.T) {
	e := NewExporter(t.TempDir(), "demo-project", "financial_data")
	frame := testFrame(t)

	path, err := e.WriteCSV([]*indicator.Frame{frame})
	if err != nil {
		t.Fatalf("write csv: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1+len(frame.Bars) {
		t.Fatalf("expected %d lines, got %d", 1+len(frame.Bars), len(lines))
	}
	if lines[0] != "date,symbol,open,high,low,close,volume,sma_short,sma_long,rsi" {
		t.Errorf("unexpected header: %q", lines[0])
	}

	// First bar: no SMA defined yet, cells stay empty; RSI is the
	// neutral 50.
	first := strings.Split(lines[1], ",")
	if first[7] != "" || first[8] != "" {
		t.Errorf("expected empty sma cells on first row, got %q / %q", first[7], first[8])
	}
	if first[9] != "50" {
		t.Errorf("expected neutral rsi 50 on first row, got %q", first[9])
	}

	// Last bar has both SMAs defined.
	last := strings.Split(lines[len(lines)-1], ",")
	if last[7] == "" || last[8] == "" {
		t.Errorf("expected defined sma cells on last row, got %q / %q", last[7], last[8])
	}
}

func TestWriteSQLScript(t *testing.T) {
	e := NewExporter(t.TempDir(), "demo-project", "financial_data")
	frame := testFrame(t)

	path, err := e.WriteSQLScript([]*indicator.Frame{frame})
	if err != nil {
		t.Fatalf("write sql: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sql: %v", err)
	}
	script := string(data)

	if !strings.Contains(script, "BEGIN TRANSACTION;") || !strings.Contains(script, "COMMIT TRANSACTION;") {
		t.Error("script missing transaction wrapper")
	}
	if !strings.Contains(script, "`demo-project.financial_data.stock_prices`") {
		t.Error("script missing fully qualified table name")
	}
	if got := strings.Count(script, "INSERT INTO"); got != len(frame.Bars) {
		t.Errorf("expected %d inserts, got %d", len(frame.Bars), got)
	}
	// Undefined indicators become NULL, not empty strings.
	if !strings.Contains(script, "NULL") {
		t.Error("expected NULL for undefined indicator values")
	}
}

func TestWriteDashboards(t *testing.T) {
	e := NewExporter(t.TempDir(), "demo-project", "financial_data")

	paths, err := e.WriteDashboards()
	if err != nil {
		t.Fatalf("write dashboards: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected 2 dashboards, got %d", len(paths))
	}
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			t.Fatalf("read dashboard %s: %v", p, err)
		}
		var d Dashboard
		if err := json.Unmarshal(data, &d); err != nil {
			t.Fatalf("dashboard %s is not valid JSON: %v", p, err)
		}
		if d.Title == "" || len(d.Elements) == 0 {
			t.Errorf("dashboard %s missing title or elements", p)
		}
	}
}

func TestWriteLookML(t *testing.T) {
	e := NewExporter(t.TempDir(), "demo-project", "financial_data")

	path, err := e.WriteLookML()
	if err != nil {
		t.Fatalf("write lookml: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read lookml: %v", err)
	}
	view := string(data)

	if !strings.Contains(view, "view: stock_prices {") {
		t.Error("missing view declaration")
	}
	if !strings.Contains(view, "sql_table_name: demo-project.financial_data.stock_prices ;;") {
		t.Error("missing qualified table name")
	}
	for _, dim := range []string{"symbol", "close", "sma_short", "sma_long", "rsi"} {
		if !strings.Contains(view, "dimension: "+dim+" {") {
			t.Errorf("missing dimension %q", dim)
		}
	}
}
