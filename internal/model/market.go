package model

import "time"

// Timeframe selects the granularity of fetched bars.
type Timeframe string

const (
	TimeframeMinute Timeframe = "1Min"
	TimeframeHour   Timeframe = "1Hour"
)

// PriceBar represents a single OHLC bar for a symbol.
type PriceBar struct {
	Symbol string
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
}

// ReportWindow is the time span one report run covers. It is computed once
// per run and shared read-only by all work units.
type ReportWindow struct {
	Start time.Time
	End   time.Time
}

// NewReportWindow returns the 24-hour window ending at now.
func NewReportWindow(now time.Time) ReportWindow {
	return ReportWindow{Start: now.Add(-24 * time.Hour), End: now}
}

// Date returns the calendar date the report is filed under.
func (w ReportWindow) Date() string {
	return w.End.Format("2006-01-02")
}
