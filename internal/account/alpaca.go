package account

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
)

// AlpacaService implements Service using the Alpaca trading API.
type AlpacaService struct {
	Client    *http.Client
	BaseURL   string
	APIKey    string
	APISecret string
}

// NewAlpacaService creates a trading API client with optional proxy support.
func NewAlpacaService(baseURL, apiKey, apiSecret, proxyURL string) *AlpacaService {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &AlpacaService{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		BaseURL:   baseURL,
		APIKey:    apiKey,
		APISecret: apiSecret,
	}
}

func (a *AlpacaService) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "GET", a.BaseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("APCA-API-KEY-ID", a.APIKey)
	req.Header.Set("APCA-API-SECRET-KEY", a.APISecret)

	resp, err := a.Client.Do(req)
	if err != nil {
		return fmt.Errorf("alpaca %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("alpaca %s read body: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("alpaca %s: status %d, body: %s", path, resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("alpaca %s decode: %w", path, err)
	}
	return nil
}

// The trading API reports monetary fields as decimal strings.
type alpacaAccount struct {
	Equity string `json:"equity"`
	Cash   string `json:"cash"`
}

type alpacaPosition struct {
	Symbol        string `json:"symbol"`
	AvgEntryPrice string `json:"avg_entry_price"`
	CurrentPrice  string `json:"current_price"`
	Qty           string `json:"qty"`
	MarketValue   string `json:"market_value"`
	CostBasis     string `json:"cost_basis"`
	UnrealizedPL  string `json:"unrealized_pl"`
}

func (a *AlpacaService) GetAccount(ctx context.Context) (*Account, error) {
	var raw alpacaAccount
	if err := a.get(ctx, "/v2/account", &raw); err != nil {
		return nil, err
	}
	equity, err := decimal.NewFromString(raw.Equity)
	if err != nil {
		return nil, fmt.Errorf("parse equity %q: %w", raw.Equity, err)
	}
	cash, err := decimal.NewFromString(raw.Cash)
	if err != nil {
		return nil, fmt.Errorf("parse cash %q: %w", raw.Cash, err)
	}
	return &Account{Equity: equity, Cash: cash}, nil
}

func (a *AlpacaService) GetAllPositions(ctx context.Context) ([]Position, error) {
	var raw []alpacaPosition
	if err := a.get(ctx, "/v2/positions", &raw); err != nil {
		return nil, err
	}

	positions := make([]Position, 0, len(raw))
	for _, p := range raw {
		pos := Position{Symbol: p.Symbol}
		fields := []struct {
			name string
			src  string
			dst  *decimal.Decimal
		}{
			{"avg_entry_price", p.AvgEntryPrice, &pos.AvgEntryPrice},
			{"current_price", p.CurrentPrice, &pos.CurrentPrice},
			{"qty", p.Qty, &pos.Qty},
			{"market_value", p.MarketValue, &pos.MarketValue},
			{"cost_basis", p.CostBasis, &pos.CostBasis},
			{"unrealized_pl", p.UnrealizedPL, &pos.UnrealizedPL},
		}
		for _, f := range fields {
			d, err := decimal.NewFromString(f.src)
			if err != nil {
				return nil, fmt.Errorf("position %s: parse %s %q: %w", p.Symbol, f.name, f.src, err)
			}
			*f.dst = d
		}
		positions = append(positions, pos)
	}
	return positions, nil
}
