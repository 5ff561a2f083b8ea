package exporter

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"SignalScout/internal/indicator"
)

// Exporter writes flat-file artifacts describing the fetched data: an
// indicator CSV, a SQL load script, dashboard configuration documents
// and a LookML view. It performs presentation-layer formatting only;
// indicator values arrive unrounded.
type Exporter struct {
	OutputDir string
	ProjectID string
	DatasetID string
}

// NewExporter creates an Exporter rooted at outputDir.
func NewExporter(outputDir, projectID, datasetID string) *Exporter {
	return &Exporter{OutputDir: outputDir, ProjectID: projectID, DatasetID: datasetID}
}

func (e *Exporter) path(name string) (string, error) {
	if err := os.MkdirAll(e.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	return filepath.Join(e.OutputDir, name), nil
}

// WriteCSV writes all frames as one stock_prices.csv. Undefined
// indicator cells are left empty.
func (e *Exporter) WriteCSV(frames []*indicator.Frame) (string, error) {
	path, err := e.path("stock_prices.csv")
	if err != nil {
		return "", err
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"date", "symbol", "open", "high", "low", "close", "volume", "sma_short", "sma_long", "rsi"}); err != nil {
		return "", err
	}
	for _, frame := range frames {
		for i, b := range frame.Bars {
			row := []string{
				b.Date.Format("2006-01-02"),
				b.Symbol,
				formatFloat(b.Open),
				formatFloat(b.High),
				formatFloat(b.Low),
				formatFloat(b.Close),
				strconv.FormatInt(b.Volume, 10),
				formatValue(frame.SMAShort[i]),
				formatValue(frame.SMALong[i]),
				formatFloat(frame.RSI[i]),
			}
			if err := w.Write(row); err != nil {
				return "", err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("write csv: %w", err)
	}
	return path, nil
}

// WriteSQLScript generates a load script with one INSERT per bar,
// writing NULL where an indicator is undefined.
func (e *Exporter) WriteSQLScript(frames []*indicator.Frame) (string, error) {
	path, err := e.path("load_stock_prices.sql")
	if err != nil {
		return "", err
	}

	table := fmt.Sprintf("`%s.%s.stock_prices`", e.ProjectID, e.DatasetID)
	var b strings.Builder
	b.WriteString("-- Auto-generated SQL load script\n")
	b.WriteString("-- Insert stock prices with indicator columns\n\n")
	b.WriteString("BEGIN TRANSACTION;\n\n")

	for _, frame := range frames {
		for i, bar := range frame.Bars {
			b.WriteString(fmt.Sprintf(
				"INSERT INTO %s\n  (date, symbol, open, high, low, close, volume, sma_short, sma_long, rsi, fetch_timestamp)\nVALUES\n  ('%s', '%s', %s, %s, %s, %s, %d, %s, %s, %s, CURRENT_TIMESTAMP());\n",
				table,
				bar.Date.Format("2006-01-02"),
				bar.Symbol,
				formatFloat(bar.Open),
				formatFloat(bar.High),
				formatFloat(bar.Low),
				formatFloat(bar.Close),
				bar.Volume,
				sqlValue(frame.SMAShort[i]),
				sqlValue(frame.SMALong[i]),
				formatFloat(frame.RSI[i]),
			))
		}
	}

	b.WriteString("\nCOMMIT TRANSACTION;\n")

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", fmt.Errorf("write sql script: %w", err)
	}
	return path, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatValue(v indicator.Value) string {
	if !v.Valid {
		return ""
	}
	return formatFloat(v.Float64)
}

func sqlValue(v indicator.Value) string {
	if !v.Valid {
		return "NULL"
	}
	return formatFloat(v.Float64)
}
