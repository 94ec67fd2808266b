package marketdata

import (
	"context"
	"time"

	"PortfolioReporter/internal/model"
)

// Fetcher defines the interface for fetching historical market data.
type Fetcher interface {
	// GetBars returns the bars for symbol over [start, end] at the given
	// timeframe, ordered ascending by timestamp. Window end semantics are
	// whatever the upstream service returns.
	GetBars(ctx context.Context, symbol string, tf model.Timeframe, start, end time.Time) ([]model.PriceBar, error)
	Name() string
}

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Bars  map[model.Timeframe][]model.PriceBar
	Err   error
	Delay time.Duration
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) GetBars(ctx context.Context, _ string, tf model.Timeframe, _, _ time.Time) ([]model.PriceBar, error) {
	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Bars[tf], nil
}
