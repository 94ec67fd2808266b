package snapshot

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"PortfolioReporter/internal/account"
)

// Row is one labeled value in a sheet. Values are formatted strings because
// rounding is a display concern; the unrounded decimals never leave the
// account package.
type Row struct {
	Label string
	Value string
}

// Sheet is an ordered group of rows written under one spreadsheet tab.
// Row order is the display order.
type Sheet struct {
	Name string
	Rows []Row
}

// Snapshotter builds the position snapshot sheets for one report run.
type Snapshotter struct {
	Service account.Service
	Symbol  string // tracked symbol, e.g. "BTC/USD"
}

// Snapshot reads current account state and formats it into sheets: the
// "Investments" summary first, then one sheet per held position in the order
// the account service returned them.
func (s *Snapshotter) Snapshot(ctx context.Context) ([]Sheet, error) {
	acct, err := s.Service.GetAccount(ctx)
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	positions, err := s.Service.GetAllPositions(ctx)
	if err != nil {
		return nil, fmt.Errorf("get positions: %w", err)
	}

	summary := Sheet{
		Name: "Investments",
		Rows: []Row{
			{"Equity", money(acct.Equity)},
			{"Cash", money(acct.Cash)},
		},
	}
	if pl, ok := trackedPL(positions, s.Symbol); ok {
		summary.Rows = append(summary.Rows, Row{"Unrealized P/L", money(pl)})
	}

	sheets := []Sheet{summary}
	for _, pos := range positions {
		sheets = append(sheets, Sheet{
			Name: pos.Symbol,
			Rows: []Row{
				{"Entry Price", money(pos.AvgEntryPrice)},
				{"Current Price", money(pos.CurrentPrice)},
				{"Quantity Held", quantity(pos.Qty)},
				{"Market Value", money(pos.MarketValue)},
				{"Cost Basis", money(pos.CostBasis)},
				{"Profit / Loss", money(pos.UnrealizedPL)},
			},
		})
	}
	return sheets, nil
}

// trackedPL finds the unrealized P/L of the tracked symbol. The trading API
// reports position symbols without the slash ("BTCUSD" for "BTC/USD").
func trackedPL(positions []account.Position, symbol string) (decimal.Decimal, bool) {
	want := strings.ReplaceAll(symbol, "/", "")
	for _, pos := range positions {
		if strings.ReplaceAll(pos.Symbol, "/", "") == want {
			return pos.UnrealizedPL, true
		}
	}
	return decimal.Zero, false
}

// money formats a currency amount at 2 decimal places.
func money(d decimal.Decimal) string { return d.StringFixed(2) }

// quantity formats an asset quantity at 3 decimal places.
func quantity(d decimal.Decimal) string { return d.StringFixed(3) }
