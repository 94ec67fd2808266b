package pricestore

import (
	"time"

	"PortfolioReporter/internal/model"
)

// Store persists minute bars into the durable price index.
type Store interface {
	// UpsertBars inserts bars in the order given, skipping any bar whose
	// (symbol, timestamp) key is already present. It returns the number of
	// rows newly inserted.
	UpsertBars(symbol string, bars []model.PriceBar) (int, error)
	// BarsBetween returns stored bars for [start, end], ascending by time.
	BarsBetween(symbol string, start, end time.Time) ([]model.PriceBar, error)
	Close() error
}
