package chart

import (
	"time"

	"PortfolioReporter/internal/model"
)

// CandleSeries holds parallel slices of equal length, one entry per hourly
// bar, ascending by time.
type CandleSeries struct {
	Times  []time.Time
	Opens  []float64
	Highs  []float64
	Lows   []float64
	Closes []float64
}

// Len returns the number of candles in the series.
func (s CandleSeries) Len() int { return len(s.Times) }

// BuildSeries assembles a CandleSeries from bars in the order given. Every
// field of each candle comes from its own bar; no resampling or gap-filling.
func BuildSeries(bars []model.PriceBar) CandleSeries {
	s := CandleSeries{
		Times:  make([]time.Time, 0, len(bars)),
		Opens:  make([]float64, 0, len(bars)),
		Highs:  make([]float64, 0, len(bars)),
		Lows:   make([]float64, 0, len(bars)),
		Closes: make([]float64, 0, len(bars)),
	}
	for _, bar := range bars {
		s.Times = append(s.Times, bar.Time)
		s.Opens = append(s.Opens, bar.Open)
		s.Highs = append(s.Highs, bar.High)
		s.Lows = append(s.Lows, bar.Low)
		s.Closes = append(s.Closes, bar.Close)
	}
	return s
}
