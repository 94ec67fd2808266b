package chart

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// RenderCandles writes a candlestick chart for the series to path. The chart
// is rendered into a temp file and renamed over the target only on success,
// so a failed render never clobbers a previous day's artifact.
func RenderCandles(series CandleSeries, symbol, path string) error {
	if series.Len() == 0 {
		return fmt.Errorf("render candles: empty series")
	}

	kline := charts.NewKLine()
	kline.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: symbol}),
		charts.WithYAxisOpts(opts.YAxis{Scale: opts.Bool(true)}),
	)

	x := make([]string, series.Len())
	candles := make([]opts.KlineData, series.Len())
	for i := range series.Times {
		x[i] = series.Times[i].Format("01-02 15:04")
		// echarts candle value order is open, close, low, high.
		candles[i] = opts.KlineData{Value: [4]float64{
			series.Opens[i], series.Closes[i], series.Lows[i], series.Highs[i],
		}}
	}
	kline.SetXAxis(x).AddSeries(symbol, candles)

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	if err := kline.Render(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("render chart: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close chart file: %w", err)
	}
	return os.Rename(tmp, path)
}
