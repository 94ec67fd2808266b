package pricestore

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"PortfolioReporter/internal/model"
)

// SQLiteStore persists price history to a SQLite database.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex

	// Throttle is the delay between consecutive inserts, so a large backfill
	// does not saturate the underlying storage. Zero disables it.
	Throttle time.Duration
}

// NewSQLiteStore opens (or creates) the price index and runs migrations.
func NewSQLiteStore(dbPath string, throttle time.Duration) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so readers are not blocked while a collection run writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db, Throttle: throttle}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] price index opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS price_history (
			symbol TEXT NOT NULL,
			high   REAL,
			low    REAL,
			open   REAL,
			close  REAL,
			time   INTEGER NOT NULL,
			PRIMARY KEY (symbol, time)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_price_time ON price_history(time)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// UpsertBars inserts bars one at a time so each row is durably committed
// before the next is attempted. Duplicate (symbol, time) keys are silently
// ignored; a re-run over the same window inserts nothing new.
func (s *SQLiteStore) UpsertBars(symbol string, bars []model.PriceBar) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inserted := 0
	for i, bar := range bars {
		res, err := s.db.Exec(
			`INSERT OR IGNORE INTO price_history (symbol, high, low, open, close, time) VALUES (?,?,?,?,?,?)`,
			symbol, bar.High, bar.Low, bar.Open, bar.Close, bar.Time.Unix(),
		)
		if err != nil {
			return inserted, fmt.Errorf("insert bar at %d: %w", bar.Time.Unix(), err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return inserted, fmt.Errorf("rows affected: %w", err)
		}
		inserted += int(n)

		if s.Throttle > 0 && i < len(bars)-1 {
			time.Sleep(s.Throttle)
		}
	}
	return inserted, nil
}

// BarsBetween returns the stored bars for [start, end], ascending by time.
func (s *SQLiteStore) BarsBetween(symbol string, start, end time.Time) ([]model.PriceBar, error) {
	rows, err := s.db.Query(
		`SELECT high, low, open, close, time FROM price_history
		 WHERE symbol = ? AND time >= ? AND time <= ? ORDER BY time ASC`,
		symbol, start.Unix(), end.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("query bars: %w", err)
	}
	defer rows.Close()

	var bars []model.PriceBar
	for rows.Next() {
		var bar model.PriceBar
		var ts int64
		if err := rows.Scan(&bar.High, &bar.Low, &bar.Open, &bar.Close, &ts); err != nil {
			return nil, fmt.Errorf("scan bar: %w", err)
		}
		bar.Symbol = symbol
		bar.Time = time.Unix(ts, 0).UTC()
		bars = append(bars, bar)
	}
	return bars, rows.Err()
}

func (s *SQLiteStore) Close() error {
	log.Println("[INFO] closing price index")
	return s.db.Close()
}
