package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/skander-fourati/zawali/internal/models"
)

func TestHandleInvestmentValuation(t *testing.T) {
	srv, storage := newTestServer(t)

	purchase := time.Now().AddDate(-1, 0, 0).Format("2006-01-02")
	body := jsonBody(t, map[string]interface{}{
		"ticker":           "VWRL",
		"investment_type":  "ETF",
		"account_id":       "acc-1",
		"account_name":     "Vanguard UK [MH]",
		"current_value":    1250.0,
		"purchase_date":    purchase,
		"total_growth_pct": 25.0,
	})
	req := asUser(httptest.NewRequest(http.MethodPost, "/api/investments/valuation", body), "user-1")
	rec := httptest.NewRecorder()
	srv.handleInvestmentValuation(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var inv models.Investment
	decodeResponse(t, rec.Body, &inv)
	if inv.ID == "" || inv.Ticker != "VWRL" {
		t.Errorf("investment = %+v", inv)
	}

	// Back-filled series: one point per whole month plus the purchase point.
	if len(storage.investments.values) < 2 {
		t.Errorf("expected back-filled valuation history, got %d points", len(storage.investments.values))
	}
	// Linking transaction ties the holding to the account.
	if len(storage.txns.txns) != 1 {
		t.Fatalf("expected 1 linking transaction, got %d", len(storage.txns.txns))
	}
	for _, tx := range storage.txns.txns {
		if tx.InvestmentID != inv.ID || tx.AccountID != "acc-1" || tx.Category != models.CategoryInvestment {
			t.Errorf("linking transaction = %+v", tx)
		}
	}
}

func TestHandleInvestmentValuation_Validation(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing ticker", map[string]interface{}{"current_value": 100.0, "purchase_date": "2024-01-15"}},
		{"non-positive value", map[string]interface{}{"ticker": "VWRL", "current_value": 0.0, "purchase_date": "2024-01-15"}},
		{"bad date", map[string]interface{}{"ticker": "VWRL", "current_value": 100.0, "purchase_date": "15/01/2024"}},
	}

	for _, tt := range tests {
		req := asUser(httptest.NewRequest(http.MethodPost, "/api/investments/valuation", jsonBody(t, tt.body)), "user-1")
		rec := httptest.NewRecorder()
		srv.handleInvestmentValuation(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", tt.name, rec.Code)
		}
	}
}

func TestHandleInvestmentsList_Decorated(t *testing.T) {
	srv, storage := newTestServer(t)
	storage.investments.investments["inv-1"] = &models.Investment{
		ID: "inv-1", UserID: "user-1", Ticker: "VWRL", InvestmentType: "ETF",
	}
	storage.investments.values = []*models.InvestmentMarketValue{
		{ID: "mv-1", UserID: "user-1", InvestmentID: "inv-1", MarketValue: 1000, UpdatedAt: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{ID: "mv-2", UserID: "user-1", InvestmentID: "inv-1", MarketValue: 1250, UpdatedAt: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)},
	}
	storage.txns.txns["tx-1"] = &models.Transaction{
		ID: "tx-1", UserID: "user-1",
		Category: models.CategoryInvestment, InvestmentID: "inv-1", AccountID: "acc-1",
	}

	req := asUser(httptest.NewRequest(http.MethodGet, "/api/investments", nil), "user-1")
	rec := httptest.NewRecorder()
	srv.handleInvestmentsRoot(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Investments []struct {
			ID           string   `json:"id"`
			Ticker       string   `json:"ticker"`
			CurrentValue *float64 `json:"current_value"`
			AccountID    string   `json:"account_id"`
		} `json:"investments"`
		Count int `json:"count"`
	}
	decodeResponse(t, rec.Body, &resp)
	if resp.Count != 1 || len(resp.Investments) != 1 {
		t.Fatalf("resp = %+v", resp)
	}
	view := resp.Investments[0]
	// The latest market value by timestamp wins.
	if view.CurrentValue == nil || *view.CurrentValue != 1250 {
		t.Errorf("current_value = %v, want 1250", view.CurrentValue)
	}
	if view.AccountID != "acc-1" {
		t.Errorf("account_id = %q, want acc-1 (from linking transaction)", view.AccountID)
	}
}

func TestHandleInvestmentDelete_RemovesHistory(t *testing.T) {
	srv, storage := newTestServer(t)
	storage.investments.investments["inv-1"] = &models.Investment{
		ID: "inv-1", UserID: "user-1", Ticker: "VWRL",
	}
	storage.investments.values = []*models.InvestmentMarketValue{
		{ID: "mv-1", UserID: "user-1", InvestmentID: "inv-1", MarketValue: 1000},
		{ID: "mv-2", UserID: "user-1", InvestmentID: "inv-1", MarketValue: 1100},
	}

	req := asUser(httptest.NewRequest(http.MethodDelete, "/api/investments/inv-1", nil), "user-1")
	rec := httptest.NewRecorder()
	srv.handleInvestmentDelete(rec, req, "inv-1")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Status        string `json:"status"`
		ValuesDeleted int    `json:"values_deleted"`
	}
	decodeResponse(t, rec.Body, &resp)
	if resp.Status != "deleted" || resp.ValuesDeleted != 2 {
		t.Errorf("resp = %+v", resp)
	}
	if len(storage.investments.investments) != 0 || len(storage.investments.values) != 0 {
		t.Error("holding or history not fully removed")
	}
}

func TestHandleInvestmentGet_CrossUser(t *testing.T) {
	srv, storage := newTestServer(t)
	storage.investments.investments["inv-1"] = &models.Investment{
		ID: "inv-1", UserID: "user-1", Ticker: "VWRL",
	}

	req := asUser(httptest.NewRequest(http.MethodGet, "/api/investments/inv-1", nil), "user-2")
	rec := httptest.NewRecorder()
	srv.handleInvestmentGet(rec, req, "inv-1")

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for other user's holding, got %d", rec.Code)
	}
}

func TestHandleInvestmentValuesList(t *testing.T) {
	srv, storage := newTestServer(t)
	storage.investments.values = []*models.InvestmentMarketValue{
		{ID: "mv-1", UserID: "user-1", InvestmentID: "inv-1", MarketValue: 1000},
	}

	req := asUser(httptest.NewRequest(http.MethodGet, "/api/investments/inv-1/values", nil), "user-1")
	rec := httptest.NewRecorder()
	srv.handleInvestmentValuesList(rec, req, "inv-1")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Values []*models.InvestmentMarketValue `json:"values"`
		Count  int                             `json:"count"`
	}
	decodeResponse(t, rec.Body, &resp)
	if resp.Count != 1 || len(resp.Values) != 1 {
		t.Errorf("resp = %+v", resp)
	}
}
