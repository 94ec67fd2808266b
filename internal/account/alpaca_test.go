package account

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetAccount_ParsesDecimals(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/account" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("APCA-API-KEY-ID"); got != "key" {
			t.Errorf("missing auth header, got %q", got)
		}
		fmt.Fprint(w, `{"equity":"1234.5678","cash":"99.999"}`)
	}))
	defer srv.Close()

	svc := NewAlpacaService(srv.URL, "key", "secret", "")
	acct, err := svc.GetAccount(context.Background())
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if acct.Equity.String() != "1234.5678" {
		t.Errorf("equity must stay unrounded: got %s", acct.Equity)
	}
	if acct.Cash.String() != "99.999" {
		t.Errorf("cash must stay unrounded: got %s", acct.Cash)
	}
}

func TestGetAllPositions_PreservesOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[
			{"symbol":"ETHUSD","avg_entry_price":"2000","current_price":"2100","qty":"1.5","market_value":"3150","cost_basis":"3000","unrealized_pl":"150"},
			{"symbol":"BTCUSD","avg_entry_price":"43000","current_price":"45000","qty":"0.123456","market_value":"5555.55","cost_basis":"5308.64","unrealized_pl":"246.91"}
		]`)
	}))
	defer srv.Close()

	svc := NewAlpacaService(srv.URL, "key", "secret", "")
	positions, err := svc.GetAllPositions(context.Background())
	if err != nil {
		t.Fatalf("get positions: %v", err)
	}
	if len(positions) != 2 {
		t.Fatalf("expected 2 positions, got %d", len(positions))
	}
	if positions[0].Symbol != "ETHUSD" || positions[1].Symbol != "BTCUSD" {
		t.Errorf("order not preserved: %s, %s", positions[0].Symbol, positions[1].Symbol)
	}
	if positions[1].Qty.String() != "0.123456" {
		t.Errorf("qty must stay unrounded: got %s", positions[1].Qty)
	}
}

func TestGetAllPositions_BadDecimal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[{"symbol":"BTCUSD","avg_entry_price":"not-a-number","current_price":"1","qty":"1","market_value":"1","cost_basis":"1","unrealized_pl":"1"}]`)
	}))
	defer srv.Close()

	svc := NewAlpacaService(srv.URL, "key", "secret", "")
	if _, err := svc.GetAllPositions(context.Background()); err == nil {
		t.Fatal("expected error for malformed position data")
	}
}
