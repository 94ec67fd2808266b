package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"PortfolioReporter/internal/model"
)

// AlpacaFetcher implements Fetcher using the Alpaca crypto market data API.
type AlpacaFetcher struct {
	Client    *http.Client
	BaseURL   string
	Feed      string
	APIKey    string
	APISecret string
}

// NewAlpacaFetcher creates a new Alpaca data fetcher with optional proxy support.
func NewAlpacaFetcher(baseURL, feed, apiKey, apiSecret, proxyURL string) *AlpacaFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &AlpacaFetcher{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		BaseURL:   baseURL,
		Feed:      feed,
		APIKey:    apiKey,
		APISecret: apiSecret,
	}
}

func (f *AlpacaFetcher) Name() string { return "alpaca" }

// alpacaBars is the response structure from the crypto bars endpoint.
type alpacaBars struct {
	Bars map[string][]struct {
		Timestamp time.Time `json:"t"`
		Open      float64   `json:"o"`
		High      float64   `json:"h"`
		Low       float64   `json:"l"`
		Close     float64   `json:"c"`
	} `json:"bars"`
	NextPageToken *string `json:"next_page_token"`
	Message       string  `json:"message"`
}

// GetBars fetches bars for one symbol, following pagination to exhaustion.
func (f *AlpacaFetcher) GetBars(ctx context.Context, symbol string, tf model.Timeframe, start, end time.Time) ([]model.PriceBar, error) {
	var bars []model.PriceBar
	pageToken := ""

	for {
		page, next, err := f.fetchPage(ctx, symbol, tf, start, end, pageToken)
		if err != nil {
			return nil, err
		}
		bars = append(bars, page...)
		if next == "" {
			break
		}
		pageToken = next
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

func (f *AlpacaFetcher) fetchPage(ctx context.Context, symbol string, tf model.Timeframe, start, end time.Time, pageToken string) ([]model.PriceBar, string, error) {
	q := url.Values{}
	q.Set("symbols", symbol)
	q.Set("timeframe", string(tf))
	q.Set("start", start.UTC().Format(time.RFC3339))
	q.Set("end", end.UTC().Format(time.RFC3339))
	q.Set("limit", "10000")
	if pageToken != "" {
		q.Set("page_token", pageToken)
	}
	u := fmt.Sprintf("%s/v1beta3/crypto/%s/bars?%s", f.BaseURL, url.PathEscape(f.Feed), q.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return nil, "", err
	}
	if f.APIKey != "" {
		req.Header.Set("APCA-API-KEY-ID", f.APIKey)
		req.Header.Set("APCA-API-SECRET-KEY", f.APISecret)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("alpaca fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("alpaca read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("alpaca: status %d, body: %s", resp.StatusCode, string(body))
	}

	var parsed alpacaBars
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, "", fmt.Errorf("alpaca decode: %w", err)
	}

	raw, ok := parsed.Bars[symbol]
	if !ok && pageToken == "" {
		return nil, "", fmt.Errorf("alpaca: no bars returned for %s", symbol)
	}

	bars := make([]model.PriceBar, 0, len(raw))
	for _, b := range raw {
		bars = append(bars, model.PriceBar{
			Symbol: symbol,
			Time:   b.Timestamp,
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
		})
	}

	next := ""
	if parsed.NextPageToken != nil {
		next = *parsed.NextPageToken
	}
	return bars, next, nil
}
