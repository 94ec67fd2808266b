package chart

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"PortfolioReporter/internal/model"
)

func hourBars(count int) []model.PriceBar {
	start := time.Unix(1710000000, 0).UTC()
	bars := make([]model.PriceBar, count)
	for i := 0; i < count; i++ {
		base := float64(100 * (i + 1))
		bars[i] = model.PriceBar{
			Symbol: "BTC/USD",
			Time:   start.Add(time.Duration(i) * time.Hour),
			Open:   base + 1,
			High:   base + 2,
			Low:    base + 3,
			Close:  base + 4,
		}
	}
	return bars
}

func TestBuildSeries_EachFieldFromOwnBar(t *testing.T) {
	bars := hourBars(6)
	series := BuildSeries(bars)

	if series.Len() != len(bars) {
		t.Fatalf("series length %d, want %d", series.Len(), len(bars))
	}
	for _, n := range []int{len(series.Opens), len(series.Highs), len(series.Lows), len(series.Closes)} {
		if n != len(bars) {
			t.Fatalf("parallel slices must have equal length, got %d want %d", n, len(bars))
		}
	}
	for i, bar := range bars {
		if !series.Times[i].Equal(bar.Time) {
			t.Errorf("candle %d: time %v, want %v", i, series.Times[i], bar.Time)
		}
		if series.Opens[i] != bar.Open {
			t.Errorf("candle %d: open %v, want %v", i, series.Opens[i], bar.Open)
		}
		if series.Highs[i] != bar.High {
			t.Errorf("candle %d: high %v, want %v", i, series.Highs[i], bar.High)
		}
		if series.Lows[i] != bar.Low {
			t.Errorf("candle %d: low %v, want %v", i, series.Lows[i], bar.Low)
		}
		if series.Closes[i] != bar.Close {
			t.Errorf("candle %d: close %v, want %v (close must come from the bar itself)", i, series.Closes[i], bar.Close)
		}
	}
}

func TestBuildSeries_GapsKept(t *testing.T) {
	bars := hourBars(5)
	// Remove the middle bar; the series must show exactly 4 candles.
	gapped := append(append([]model.PriceBar{}, bars[:2]...), bars[3:]...)
	series := BuildSeries(gapped)
	if series.Len() != 4 {
		t.Errorf("expected 4 candles with the gap kept, got %d", series.Len())
	}
}

func TestRenderCandles_WritesArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "2024-03-15.candlegraph.html")
	series := BuildSeries(hourBars(24))

	if err := RenderCandles(series, "BTC/USD", path); err != nil {
		t.Fatalf("render: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat artifact: %v", err)
	}
	if info.Size() == 0 {
		t.Error("rendered artifact is empty")
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind after successful render")
	}
}

func TestRenderCandles_FailurePreservesPriorArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "2024-03-15.candlegraph.html")
	if err := os.WriteFile(path, []byte("previous artifact"), 0o644); err != nil {
		t.Fatalf("seed prior artifact: %v", err)
	}

	if err := RenderCandles(CandleSeries{}, "BTC/USD", path); err == nil {
		t.Fatal("expected error for empty series")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if string(data) != "previous artifact" {
		t.Errorf("prior artifact was clobbered by a failed render: %q", string(data))
	}
}
