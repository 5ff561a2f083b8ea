package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"

	_ "modernc.org/sqlite"

	"SignalScout/internal/indicator"
)

// SQLiteRecorder persists price bars with their indicator columns and
// the per-run signal decisions to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS price_bars (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			run_at     INTEGER NOT NULL,
			date       TEXT NOT NULL,
			symbol     TEXT NOT NULL,
			open       REAL NOT NULL,
			high       REAL NOT NULL,
			low        REAL NOT NULL,
			close      REAL NOT NULL,
			volume     INTEGER NOT NULL,
			sma_short  REAL,
			sma_long   REAL,
			rsi        REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bars_symbol_date ON price_bars(symbol, date)`,

		`CREATE TABLE IF NOT EXISTS signal_decisions (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			run_at       INTEGER NOT NULL,
			symbol       TEXT NOT NULL,
			final_signal TEXT NOT NULL,
			sma_signal   TEXT NOT NULL,
			rsi_signal   TEXT NOT NULL,
			rsi          REAL,
			rationale    TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_decisions_run ON signal_decisions(run_at)`,
	}
	for _, stmt := range stmts {
		if _, err := r.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// RecordRun writes all bars (with indicator columns) and decisions from
// one pipeline run in a single transaction.
func (r *SQLiteRecorder) RecordRun(snap *RunSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	runAt := snap.RunAt.Unix()

	barStmt, err := tx.Prepare(`INSERT INTO price_bars
		(run_at, date, symbol, open, high, low, close, volume, sma_short, sma_long, rsi)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare bars: %w", err)
	}
	defer barStmt.Close()

	for _, frame := range snap.Frames {
		for i, b := range frame.Bars {
			if _, err := barStmt.Exec(
				runAt,
				b.Date.Format("2006-01-02"),
				b.Symbol,
				b.Open, b.High, b.Low, b.Close, b.Volume,
				nullable(frame.SMAShort[i]),
				nullable(frame.SMALong[i]),
				frame.RSI[i],
			); err != nil {
				return fmt.Errorf("insert bar %s/%s: %w", b.Symbol, b.Date.Format("2006-01-02"), err)
			}
		}
	}

	decStmt, err := tx.Prepare(`INSERT INTO signal_decisions
		(run_at, symbol, final_signal, sma_signal, rsi_signal, rsi, rationale)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare decisions: %w", err)
	}
	defer decStmt.Close()

	for _, d := range snap.Decisions {
		if _, err := decStmt.Exec(
			runAt, d.Symbol, string(d.Final), string(d.SMASignal), string(d.RSISignal),
			d.RSI, d.Rationale,
		); err != nil {
			return fmt.Errorf("insert decision %s: %w", d.Symbol, err)
		}
	}

	return tx.Commit()
}

// Close closes the underlying database.
func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}

func nullable(v indicator.Value) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v.Float64, Valid: v.Valid}
}
