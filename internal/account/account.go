package account

import (
	"context"

	"github.com/shopspring/decimal"
)

// Account holds the top-level balances of the trading account.
type Account struct {
	Equity decimal.Decimal
	Cash   decimal.Decimal
}

// Position describes one held asset. Monetary values stay unrounded here;
// rounding happens at format time only.
type Position struct {
	Symbol        string
	AvgEntryPrice decimal.Decimal
	CurrentPrice  decimal.Decimal
	Qty           decimal.Decimal
	MarketValue   decimal.Decimal
	CostBasis     decimal.Decimal
	UnrealizedPL  decimal.Decimal
}

// Service reads current account state from the brokerage.
type Service interface {
	GetAccount(ctx context.Context) (*Account, error)
	// GetAllPositions returns held positions in the order the brokerage
	// reports them. Callers must not re-sort; that order is the display order.
	GetAllPositions(ctx context.Context) ([]Position, error)
}
